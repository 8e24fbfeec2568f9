// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package sstable

import "github.com/ShabbirHasan1/SweetCookieKit/internal/varint"

// BlockKind distinguishes how a block's keys should be interpreted: the
// index block stores plain user keys pointing at data blocks, while a data
// block's keys are internal keys carrying an 8-byte value-type tag.
type BlockKind int

const (
	// DataBlockKind marks a block whose keys are internal keys.
	DataBlockKind BlockKind = iota
	// IndexBlockKind marks a block whose keys are plain user keys.
	IndexBlockKind
)

func (k BlockKind) String() string {
	switch k {
	case DataBlockKind:
		return "data"
	case IndexBlockKind:
		return "index"
	default:
		return "unknown"
	}
}

// rawBlockEntry is one prefix-decoded (full_key, value) pair read from a
// block's entry region, before any internal-key tag has been split off.
type rawBlockEntry struct {
	fullKey []byte
	value   []byte
}

// decodeBlockEntries walks a block's payload from offset 0 to the end of
// its entry region (i.e. payload with the trailing restart array already
// stripped by the caller), reconstructing each entry's full key via prefix
// compression. It stops at the first entry that fails to decode and
// returns everything decoded up to that point, per the reader's per-block
// confinement of corruption.
func decodeBlockEntries(entryRegion []byte) []rawBlockEntry {
	var entries []rawBlockEntry
	var lastFullKey []byte
	r := varint.NewReader(entryRegion)
	for r.Len() > 0 {
		shared, ok := r.Varint32()
		if !ok {
			break
		}
		nonShared, ok := r.Varint32()
		if !ok {
			break
		}
		valueLen, ok := r.Varint32()
		if !ok {
			break
		}
		if int(shared) > len(lastFullKey) {
			break
		}
		keySuffix, ok := r.Bytes(int(nonShared))
		if !ok {
			break
		}
		value, ok := r.Bytes(int(valueLen))
		if !ok {
			break
		}

		fullKey := make([]byte, 0, int(shared)+len(keySuffix))
		fullKey = append(fullKey, lastFullKey[:shared]...)
		fullKey = append(fullKey, keySuffix...)

		entries = append(entries, rawBlockEntry{fullKey: fullKey, value: value})
		lastFullKey = fullKey
	}
	return entries
}

// restartCount reads the trailing uint32 restart count and returns the
// length of the entry region that precedes the restart array, or ok=false
// if the payload is too short to hold a well-formed restart array.
func restartCount(payload []byte) (entryRegionLen int, ok bool) {
	if len(payload) < 4 {
		return 0, false
	}
	r := varint.NewReader(payload[len(payload)-4:])
	count, ok := r.Uint32()
	if !ok {
		return 0, false
	}
	restartBytes := (int(count) + 1) * 4
	if restartBytes > len(payload) {
		return 0, false
	}
	return len(payload) - restartBytes, true
}

// splitInternalKey splits an internal key into its user key and 8-byte tag.
// An internal key shorter than its tag is malformed.
func splitInternalKey(ik []byte) (userKey []byte, valueType byte, ok bool) {
	if len(ik) < 8 {
		return nil, 0, false
	}
	tag := ik[len(ik)-8:]
	return ik[:len(ik)-8], tag[0], true
}
