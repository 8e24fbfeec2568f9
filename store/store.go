// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package store enumerates the sorted tables and write-ahead logs in a
// directory and concatenates their decoded entries into a single
// recency-ordered stream. It does not itself apply first-seen-wins or
// tombstone semantics; those belong to whichever projection consumes the
// stream (see the localstorage package), since different projections key
// entries differently.
package store

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/edsrzf/mmap-go"

	"github.com/ShabbirHasan1/SweetCookieKit/internal/base"
	"github.com/ShabbirHasan1/SweetCookieKit/internal/entry"
	"github.com/ShabbirHasan1/SweetCookieKit/record"
	"github.com/ShabbirHasan1/SweetCookieKit/sstable"
)

type fileInfo struct {
	path    string
	name    string
	modTime time.Time
	isLDB   bool // true for .ldb, false for .log
}

// ReadDir enumerates the .ldb and .log files in dir, oldest-last, and
// returns the concatenation of every entry each file yields. An unreadable
// directory yields an empty stream and one diagnostic.
func ReadDir(dir string, sink base.DiagnosticSink) []entry.Entry {
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		base.DiagnoseErr(sink, dir, base.Wrapf(err, "cannot read directory"))
		return nil
	}

	var files []fileInfo
	for _, de := range dirEntries {
		name := de.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		lower := strings.ToLower(name)
		isLDB := strings.HasSuffix(lower, ".ldb")
		isLog := strings.HasSuffix(lower, ".log")
		if !isLDB && !isLog {
			continue
		}
		info, err := de.Info()
		var modTime time.Time
		if err == nil {
			modTime = info.ModTime()
		}
		// Files whose timestamp could not be determined sort as the distant
		// past.
		files = append(files, fileInfo{
			path:    filepath.Join(dir, name),
			name:    name,
			modTime: modTime,
			isLDB:   isLDB,
		})
	}

	sort.SliceStable(files, func(i, j int) bool {
		return files[i].modTime.After(files[j].modTime)
	})

	var out []entry.Entry
	for _, f := range files {
		data, ok := loadFile(f.path, sink)
		if !ok {
			continue
		}
		var fileEntries []entry.Entry
		if f.isLDB {
			fileEntries = sstable.ReadFile(data, f.name, sink)
		} else {
			fileEntries = record.ReadFile(data, f.name, sink)
		}
		out = append(out, fileEntries...)
	}
	return out
}

// loadFile returns the whole contents of path, as a plain heap-owned byte
// slice regardless of how it was obtained. Store files can run to hundreds
// of MiB, so they are memory-mapped when the host platform allows it; mmap
// failures (e.g. a zero-length file, or a filesystem that refuses mmap)
// fall back to a plain read. The mapping is always unmapped before loadFile
// returns, with its contents copied out first, so entries the caller later
// decodes from the returned slice can safely outlive this call.
func loadFile(path string, sink base.DiagnosticSink) ([]byte, bool) {
	f, err := os.Open(path)
	if err != nil {
		base.DiagnoseErr(sink, path, base.Wrapf(err, "cannot open"))
		return nil, false
	}
	defer f.Close()

	if info, err := f.Stat(); err == nil && info.Size() > 0 {
		if m, err := mmap.Map(f, mmap.RDONLY, 0); err == nil {
			buf := make([]byte, len(m))
			copy(buf, m)
			m.Unmap()
			return buf, true
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		base.DiagnoseErr(sink, path, base.Wrapf(err, "cannot read"))
		return nil, false
	}
	return data, true
}
