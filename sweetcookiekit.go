// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package sweetcookiekit is a best-effort, read-only reader for Chromium's
// LocalStorage store: a directory of LevelDB-compatible sorted tables and
// write-ahead logs, projected into origin-scoped key/value records. It never
// writes to the store and never fails a whole call on a single corrupt
// block, record, or entry — structural damage is confined to the smallest
// unit that can be skipped, with an optional diagnostic sink told why.
package sweetcookiekit

import (
	"github.com/ShabbirHasan1/SweetCookieKit/internal/base"
	"github.com/ShabbirHasan1/SweetCookieKit/localstorage"
	"github.com/ShabbirHasan1/SweetCookieKit/store"
)

// DiagnosticSink receives human-readable, best-effort diagnostic messages.
// It is invoked synchronously and must not call back into this package.
type DiagnosticSink = base.DiagnosticSink

// LocalStorageEntry is one origin-scoped key/value record surviving
// tombstone and first-seen-wins resolution.
type LocalStorageEntry struct {
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

// ReadEntries returns every LocalStorage record belonging to origin found
// under dir, after merging its tables and logs and applying
// tombstone/first-seen-wins resolution. It never returns an error: an
// unreadable directory or file yields an empty result plus a diagnostic.
func ReadEntries(origin, dir string, sink DiagnosticSink) []LocalStorageEntry {
	merged := store.ReadDir(dir, sink)
	projected := localstorage.ReadEntries(origin, merged)

	out := make([]LocalStorageEntry, len(projected))
	for i, e := range projected {
		out[i] = LocalStorageEntry{
			Origin:         e.Origin,
			Key:            e.Key,
			Value:          e.Value,
			RawValueLength: e.RawValueLength,
		}
	}
	return out
}

// ReadTextEntries decodes every merged entry under dir as a key/value text
// pair, independent of origin.
func ReadTextEntries(dir string, sink DiagnosticSink) []TextEntry {
	merged := store.ReadDir(dir, sink)
	projected := localstorage.ReadTextEntries(merged)

	out := make([]TextEntry, len(projected))
	for i, e := range projected {
		out[i] = TextEntry{Key: e.Key, Value: e.Value}
	}
	return out
}

// ReadTokenCandidates scans every merged entry's key and value bytes under
// dir for ASCII token-shaped runs (secrets, session identifiers, and the
// like). minimumLength below 1 falls back to the default of 60.
func ReadTokenCandidates(dir string, minimumLength int, sink DiagnosticSink) []string {
	merged := store.ReadDir(dir, sink)
	return localstorage.ReadTokenCandidates(merged, minimumLength)
}
