// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package sstable

import (
	"math"
	"testing"

	refsnappy "github.com/golang/snappy"
	"github.com/stretchr/testify/require"

	"github.com/ShabbirHasan1/SweetCookieKit/internal/base"
	"github.com/ShabbirHasan1/SweetCookieKit/sstable/block"
)

func appendVarint(buf []byte, v uint64) []byte {
	for v >= 0x80 {
		buf = append(buf, byte(v)|0x80)
		v >>= 7
	}
	return append(buf, byte(v))
}

// buildDataBlockPayload encodes a single key/value pair as an uncompressed
// data block payload: one entry with shared=0, followed by the one-entry
// restart array.
func buildDataBlockPayload(internalKey, value []byte) []byte {
	var buf []byte
	buf = appendVarint(buf, 0) // shared
	buf = appendVarint(buf, uint64(len(internalKey)))
	buf = appendVarint(buf, uint64(len(value)))
	buf = append(buf, internalKey...)
	buf = append(buf, value...)
	restartOffset := uint32(0)
	buf = append(buf, byte(restartOffset), byte(restartOffset>>8), byte(restartOffset>>16), byte(restartOffset>>24))
	buf = append(buf, 1, 0, 0, 0) // restart_count = 1
	return buf
}

// buildIndexBlockPayload encodes a single index entry whose key is ignored
// by this reader and whose value is the serialized data block handle.
func buildIndexBlockPayload(dataBH block.Handle) []byte {
	handleBytes := appendVarint(nil, dataBH.Offset)
	handleBytes = appendVarint(handleBytes, dataBH.Size)

	indexKey := []byte("x")
	var buf []byte
	buf = appendVarint(buf, 0)
	buf = appendVarint(buf, uint64(len(indexKey)))
	buf = appendVarint(buf, uint64(len(handleBytes)))
	buf = append(buf, indexKey...)
	buf = append(buf, handleBytes...)
	buf = append(buf, 0, 0, 0, 0, 1, 0, 0, 0)
	return buf
}

// internalKey appends an 8-byte tag (sequence number 1, the given value
// type) to userKey.
func internalKey(userKey []byte, valueType byte) []byte {
	ik := append([]byte(nil), userKey...)
	tag := uint64(1)<<8 | uint64(valueType)
	return append(ik, byte(tag), byte(tag>>8), byte(tag>>16), byte(tag>>24), byte(tag>>32), byte(tag>>40), byte(tag>>48), byte(tag>>56))
}

// buildTable assembles a minimal, single-data-block table file: one data
// block (optionally Snappy-compressed) followed by an index block and a
// plain 48-byte LevelDB footer. There is no writer in this module, so the
// fixture is hand-assembled rather than round-tripped through one.
func buildTable(internalKeyBytes, value []byte, compress bool) []byte {
	dataPayload := buildDataBlockPayload(internalKeyBytes, value)
	var file []byte
	dataOffset := uint64(len(file))

	var onDisk []byte
	var compressionByte byte
	if compress {
		onDisk = refsnappy.Encode(nil, dataPayload)
		compressionByte = byte(block.SnappyCompression)
	} else {
		onDisk = dataPayload
		compressionByte = byte(block.NoCompression)
	}
	file = append(file, onDisk...)
	file = append(file, compressionByte, 0, 0, 0, 0) // trailer

	dataBH := block.Handle{Offset: dataOffset, Size: uint64(len(onDisk))}

	indexPayload := buildIndexBlockPayload(dataBH)
	indexOffset := uint64(len(file))
	file = append(file, indexPayload...)
	file = append(file, byte(block.NoCompression), 0, 0, 0, 0)
	indexBH := block.Handle{Offset: indexOffset, Size: uint64(len(indexPayload))}

	footerHandles := appendVarint(nil, 0) // metaindex offset (unused)
	footerHandles = appendVarint(footerHandles, 0)
	footerHandles = appendVarint(footerHandles, indexBH.Offset)
	footerHandles = appendVarint(footerHandles, indexBH.Size)
	footer := make([]byte, FooterLen)
	copy(footer, footerHandles)
	file = append(file, footer...)
	return file
}

func TestTableSnappyCompressedDataBlock(t *testing.T) {
	userKey := []byte("\x5Fhttps://example.com\x00access_token")
	ik := internalKey(userKey, 1)
	file := buildTable(ik, []byte("\x01token-123"), true)

	entries := ReadFile(file, "000005.ldb", base.NoopSink{})
	require.Len(t, entries, 1)
	require.Equal(t, userKey, entries[0].UserKey)
	require.Equal(t, "\x01token-123", string(entries[0].Value))
	require.False(t, entries[0].Deletion)
}

func TestTableRawDataBlock(t *testing.T) {
	userKey := []byte("\x5Fhttps://example.com\x00session")
	ik := internalKey(userKey, 1)
	file := buildTable(ik, []byte("value-raw"), false)

	entries := ReadFile(file, "000005.ldb", base.NoopSink{})
	require.Len(t, entries, 1)
	require.Equal(t, userKey, entries[0].UserKey)
	require.Equal(t, "value-raw", string(entries[0].Value))
}

func TestTableDeletionEntry(t *testing.T) {
	userKey := []byte("\x5Fhttps://example.com\x00gone")
	ik := internalKey(userKey, 0)
	file := buildTable(ik, nil, false)

	entries := ReadFile(file, "t.ldb", base.NoopSink{})
	require.Len(t, entries, 1)
	require.True(t, entries[0].Deletion)
	require.Empty(t, entries[0].Value)
}

func TestReadBlockWrappingHandleIsRejected(t *testing.T) {
	file := make([]byte, 64)
	// Offset+Size+trailer wraps uint64 back into range; the handle must
	// still be rejected rather than panicking on the payload slice.
	handles := []block.Handle{
		{Offset: math.MaxUint64 - 3, Size: 0},
		{Offset: 0, Size: math.MaxUint64 - 2},
		{Offset: 32, Size: math.MaxUint64 - 32},
	}
	for _, h := range handles {
		entries, ok := readBlock(file, h, DataBlockKind, "t.ldb", base.NoopSink{})
		require.False(t, ok, "handle %+v", h)
		require.Nil(t, entries)
	}
}

func TestTableTooShortIsEmpty(t *testing.T) {
	entries := ReadFile([]byte{1, 2, 3}, "t.ldb", base.NoopSink{})
	require.Nil(t, entries)
}

func TestTableUnsupportedCompressionSkipsBlock(t *testing.T) {
	userKey := []byte("\x5Fhttps://example.com\x00key")
	ik := internalKey(userKey, 1)
	file := buildTable(ik, []byte("v"), false)
	// Corrupt the data block's compression-type byte (the single byte right
	// after the data payload) to an unsupported value.
	dataPayload := buildDataBlockPayload(ik, []byte("v"))
	file[len(dataPayload)] = 0x7F

	var diagnostics []string
	sink := sinkFunc(func(format string, args ...any) {
		diagnostics = append(diagnostics, format)
	})
	entries := ReadFile(file, "t.ldb", sink)
	require.Empty(t, entries)
	require.NotEmpty(t, diagnostics)
}

type sinkFunc func(format string, args ...any)

func (f sinkFunc) Logf(format string, args ...any) { f(format, args...) }
