// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package localstorage

import (
	"bytes"

	"github.com/cockroachdb/swiss"

	"github.com/ShabbirHasan1/SweetCookieKit/internal/entry"
)

// defaultMinimumTokenLength is the default floor for a token candidate that
// does not otherwise look dotted/segmented.
const defaultMinimumTokenLength = 60

// isTokenByte reports whether b belongs to the ASCII token alphabet.
func isTokenByte(b byte) bool {
	switch {
	case b >= 'A' && b <= 'Z', b >= 'a' && b <= 'z', b >= '0' && b <= '9':
		return true
	}
	switch b {
	case '.', '_', '-', '+', '/', '=':
		return true
	}
	return false
}

// qualifiesAsToken reports whether run is long enough, or segmented enough,
// to be a token candidate. The segmented form requires at least two dots
// actually separating three non-empty segments (the a.b.c shape of a signed
// token), not merely two dot bytes anywhere in the run.
func qualifiesAsToken(run []byte, minimumLength int) bool {
	if len(run) >= minimumLength {
		return true
	}
	segments := bytes.Split(run, []byte{'.'})
	if len(segments) < 3 {
		return false
	}
	nonEmpty := 0
	for _, s := range segments {
		if len(s) > 0 {
			nonEmpty++
		}
	}
	return nonEmpty >= 3
}

// scanTokenCandidates walks data for maximal runs of token-alphabet bytes,
// appending each qualifying, not-yet-seen run to out.
func scanTokenCandidates(data []byte, minimumLength int, seen *swiss.Map[string, struct{}], out *[]string) {
	start := -1
	flush := func(end int) {
		if start < 0 {
			return
		}
		run := data[start:end]
		start = -1
		if !qualifiesAsToken(run, minimumLength) {
			return
		}
		token := string(run)
		if _, ok := seen.Get(token); ok {
			return
		}
		seen.Put(token, struct{}{})
		*out = append(*out, token)
	}

	for i, b := range data {
		if isTokenByte(b) {
			if start < 0 {
				start = i
			}
			continue
		}
		flush(i)
	}
	flush(len(data))
}

// ReadTokenCandidates scans every merged entry's key and value for
// ASCII token-shaped runs, de-duplicating across the whole stream.
func ReadTokenCandidates(merged []entry.Entry, minimumLength int) []string {
	if minimumLength <= 0 {
		minimumLength = defaultMinimumTokenLength
	}
	seen := swiss.New[string, struct{}](0)
	var out []string
	for _, e := range merged {
		scanTokenCandidates(e.UserKey, minimumLength, seen, &out)
		scanTokenCandidates(e.Value, minimumLength, seen, &out)
	}
	return out
}
