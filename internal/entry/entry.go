// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package entry defines the raw key/value tuple produced by the table and
// record readers and consumed by the store merger. It exists as its own
// package so that sstable and record need not import one another.
package entry

// Entry is a single decoded (user_key, value) pair, or a deletion tombstone
// for user_key when Deletion is true. Value is empty for a deletion.
type Entry struct {
	UserKey  []byte
	Value    []byte
	Deletion bool
}
