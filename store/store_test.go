// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ShabbirHasan1/SweetCookieKit/internal/base"
)

func appendVarint(buf []byte, v uint64) []byte {
	for v >= 0x80 {
		buf = append(buf, byte(v)|0x80)
		v >>= 7
	}
	return append(buf, byte(v))
}

func lengthPrefixed(buf []byte, s []byte) []byte {
	buf = appendVarint(buf, uint64(len(s)))
	return append(buf, s...)
}

// buildLogFile builds a single full-record write batch containing one put,
// framed as a minimal LevelDB log file.
func buildLogFile(key, value []byte) []byte {
	batch := make([]byte, 8)
	batch = append(batch, 1, 0, 0, 0)
	batch = append(batch, 1)
	batch = lengthPrefixed(batch, key)
	batch = lengthPrefixed(batch, value)

	header := []byte{0, 0, 0, 0, byte(len(batch)), byte(len(batch) >> 8), 1}
	return append(header, batch...)
}

func writeFileWithTime(t *testing.T, path string, data []byte, modTime time.Time) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, data, 0o644))
	require.NoError(t, os.Chtimes(path, modTime, modTime))
}

func TestReadDirOrdersFilesByMTimeDescending(t *testing.T) {
	dir := t.TempDir()
	older := time.Now().Add(-time.Hour)
	newer := time.Now()

	writeFileWithTime(t, filepath.Join(dir, "000001.log"), buildLogFile([]byte("k"), []byte("old")), older)
	writeFileWithTime(t, filepath.Join(dir, "000002.log"), buildLogFile([]byte("k"), []byte("new")), newer)

	entries := ReadDir(dir, base.NoopSink{})
	require.Len(t, entries, 2)
	require.Equal(t, "new", string(entries[0].Value))
	require.Equal(t, "old", string(entries[1].Value))
}

func TestReadDirSkipsHiddenAndUnrelatedFiles(t *testing.T) {
	dir := t.TempDir()
	now := time.Now()
	writeFileWithTime(t, filepath.Join(dir, "000001.log"), buildLogFile([]byte("k"), []byte("v")), now)
	writeFileWithTime(t, filepath.Join(dir, ".hidden.log"), buildLogFile([]byte("k"), []byte("hidden")), now)
	writeFileWithTime(t, filepath.Join(dir, "MANIFEST-000001"), []byte("not relevant"), now)
	writeFileWithTime(t, filepath.Join(dir, "000001.LDB"), []byte{1, 2, 3}, now) // too short to parse, but case-insensitive extension match

	entries := ReadDir(dir, base.NoopSink{})
	require.Len(t, entries, 1)
	require.Equal(t, "v", string(entries[0].Value))
}

func TestReadDirUnreadableDirectoryIsEmpty(t *testing.T) {
	sink := &recordingSink{}
	entries := ReadDir(filepath.Join(t.TempDir(), "does-not-exist"), sink)
	require.Empty(t, entries)
	require.NotEmpty(t, sink.messages)
}

type recordingSink struct {
	messages []string
}

func (s *recordingSink) Logf(format string, args ...any) {
	s.messages = append(s.messages, format)
}
