// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package localstorage

import (
	"github.com/cockroachdb/swiss"

	"github.com/ShabbirHasan1/SweetCookieKit/internal/entry"
)

// Entry is a single resolved local-storage record scoped to one origin.
type Entry struct {
	Origin         string
	Key            string
	Value          string
	RawValueLength int
}

// TextEntry is a key/value pair decoded as text without regard to origin.
type TextEntry struct {
	Key   string
	Value string
}

// ReadEntries applies the origin query over merged: it matches entries
// belonging to origin, resolves first-seen-wins/tombstone semantics per
// payload key, and decodes each surviving value as text. A deletion
// tombstone anywhere in the stream drops that key's value, even one
// accumulated from a newer record.
func ReadEntries(origin string, merged []entry.Entry) []Entry {
	requested := normalizeQueryOrigin(origin)

	tombstoned := swiss.New[string, struct{}](0)
	valued := swiss.New[string, int](0) // payload key -> index into out
	var out []Entry
	var dropped []bool

	for _, e := range merged {
		entryOrigin, key, ok := decodeKey(e.UserKey)
		if !ok {
			continue
		}
		entryOrigin = normalizeOrigin(entryOrigin)
		if !originsMatch(entryOrigin, requested) {
			continue
		}

		if e.Deletion {
			tombstoned.Put(key, struct{}{})
			if idx, ok := valued.Get(key); ok {
				dropped[idx] = true
			}
			continue
		}
		if _, dead := tombstoned.Get(key); dead {
			continue
		}
		if _, present := valued.Get(key); present {
			continue
		}

		value, ok := decodeText(e.Value)
		if !ok {
			// Value decode failure: skip, but leave the key unresolved so a
			// later (older) record for the same key still gets a chance.
			continue
		}
		valued.Put(key, len(out))
		out = append(out, Entry{
			Origin:         entryOrigin,
			Key:            key,
			Value:          value,
			RawValueLength: len(e.Value),
		})
		dropped = append(dropped, false)
	}

	kept := out[:0]
	for i, e := range out {
		if !dropped[i] {
			kept = append(kept, e)
		}
	}
	if len(kept) == 0 {
		return nil
	}
	return kept
}

// ReadTextEntries decodes every merged entry's key as text and pairs it with
// whichever value decoding — prefix-tagged or autodetected — yields the
// longer string.
func ReadTextEntries(merged []entry.Entry) []TextEntry {
	var out []TextEntry
	for _, e := range merged {
		key, ok := decodeText(e.UserKey)
		if !ok {
			continue
		}

		prefixed, prefixedOK := decodePrefixed(e.Value)
		auto, autoOK := decodeAutodetect(e.Value)

		var value string
		switch {
		case prefixedOK && autoOK:
			value = auto
			if len(prefixed) > len(auto) {
				value = prefixed
			}
		case prefixedOK:
			value = prefixed
		case autoOK:
			value = auto
		default:
			continue
		}
		out = append(out, TextEntry{Key: key, Value: trimControl(value)})
	}
	return out
}
