// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package localstorage projects a decoded store stream (see the store
// package) into Chromium LocalStorage records: origin-prefixed keys, text
// values, and a token-candidate scan over both. Encoding detection uses
// golang.org/x/text rather than hand-rolled UTF-16/ISO-8859-1 loops.
package localstorage

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	xunicode "golang.org/x/text/encoding/unicode"
)

var utf16LEDecoder = xunicode.UTF16(xunicode.LittleEndian, xunicode.IgnoreBOM)

// decodePrefixed decodes an encoding-prefixed payload: a leading 0x00 marks a
// UTF-16LE body, 0x01 marks an ISO-8859-1 body. Anything else, or a payload
// shorter than 2 bytes, fails.
func decodePrefixed(b []byte) (string, bool) {
	if len(b) < 2 {
		return "", false
	}
	switch b[0] {
	case 0x00:
		return decodeUTF16LE(b[1:])
	case 0x01:
		return decodeISO88591(b[1:])
	}
	return "", false
}

// decodeAutodetect runs the unprefixed fallback chain: a UTF-16LE heuristic,
// then UTF-8, then UTF-16LE again, then ISO-8859-1 (which never fails, since
// every byte value maps to some Latin-1 code point).
func decodeAutodetect(b []byte) (string, bool) {
	if looksLikeUTF16LE(b) {
		if s, ok := decodeUTF16LE(b); ok {
			return s, true
		}
	}
	if s, ok := decodeUTF8(b); ok {
		return s, true
	}
	if s, ok := decodeUTF16LE(b); ok {
		return s, true
	}
	return decodeISO88591(b)
}

// decodeText is the full text-autodetect chain: encoding-prefixed first,
// then the unprefixed fallback chain, with control characters trimmed from
// whichever result is accepted.
func decodeText(b []byte) (string, bool) {
	if s, ok := decodePrefixed(b); ok {
		return trimControl(s), true
	}
	if s, ok := decodeAutodetect(b); ok {
		return trimControl(s), true
	}
	return "", false
}

func decodeUTF16LE(b []byte) (string, bool) {
	if len(b) == 0 || len(b)%2 != 0 {
		return "", false
	}
	out, err := utf16LEDecoder.NewDecoder().Bytes(b)
	if err != nil {
		return "", false
	}
	return string(out), true
}

func decodeISO88591(b []byte) (string, bool) {
	out, err := charmap.ISO8859_1.NewDecoder().Bytes(b)
	if err != nil {
		return "", false
	}
	return string(out), true
}

func decodeUTF8(b []byte) (string, bool) {
	if !utf8.Valid(b) {
		return "", false
	}
	return string(b), true
}

// looksLikeUTF16LE implements the "every odd byte is zero" byte-distribution
// heuristic over the first 64 bytes.
func looksLikeUTF16LE(b []byte) bool {
	if len(b) < 6 || len(b)%2 != 0 {
		return false
	}
	sample := b
	if len(sample) > 64 {
		sample = sample[:64]
	}
	var oddBytes, zeroOdd int
	for i := 1; i < len(sample); i += 2 {
		oddBytes++
		if sample[i] == 0 {
			zeroOdd++
		}
	}
	if oddBytes == 0 {
		return false
	}
	return float64(zeroOdd)/float64(oddBytes) > 0.6
}

func trimControl(s string) string {
	return strings.TrimFunc(s, unicode.IsControl)
}
