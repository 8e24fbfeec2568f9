// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package localstorage

import (
	"bytes"
	"net/url"
	"strings"

	"github.com/ShabbirHasan1/SweetCookieKit/internal/varint"
)

// storagePrefix marks the prefixed form of a local-storage key.
const storagePrefix = 0x5F

// decodeKey splits a raw user key into its origin and payload-key, trying
// the prefixed form first and falling back to the unprefixed form only when
// the decoded origin looks trustworthy.
func decodeKey(userKey []byte) (origin, key string, ok bool) {
	if len(userKey) == 0 {
		return "", "", false
	}
	if userKey[0] == storagePrefix {
		return splitKey(userKey, 1)
	}

	origin, key, ok = splitKey(userKey, 0)
	if !ok || !looksLikeOrigin(origin) {
		return "", "", false
	}
	return origin, key, true
}

// splitKey divides userKey at the first 0x00 byte at or after start into an
// origin (decoded as text) and a payload key (decoded as a length-prefixed
// string when possible, else as text).
func splitKey(userKey []byte, start int) (origin, key string, ok bool) {
	if start > len(userKey) {
		return "", "", false
	}
	idx := bytes.IndexByte(userKey[start:], 0x00)
	if idx < 0 {
		return "", "", false
	}
	sep := start + idx
	originBytes := userKey[start:sep]
	keyBytes := userKey[sep+1:]

	origin, ok = decodeText(originBytes)
	if !ok {
		return "", "", false
	}
	key, ok = decodeKeyPayload(keyBytes)
	if !ok {
		return "", "", false
	}
	return origin, key, true
}

// decodeKeyPayload prefers a length-prefixed string (a varint length
// followed by exactly that many bytes, with nothing left over) and falls
// back to decoding the whole payload as text.
func decodeKeyPayload(b []byte) (string, bool) {
	r := varint.NewReader(b)
	if lengthPrefixed, ok := r.LengthPrefixed(); ok && r.Done() {
		if s, ok := decodeText(lengthPrefixed); ok {
			return s, true
		}
	}
	return decodeText(b)
}

// looksLikeOrigin is the trust check applied to an unprefixed decoded
// origin: it must resemble an origin rather than an unrelated key from some
// other store sharing the same directory.
func looksLikeOrigin(o string) bool {
	return strings.Contains(o, "://") || strings.HasPrefix(o, "localhost") || strings.Contains(o, ".")
}

// normalizeQueryOrigin prepares a caller-supplied origin for matching.
func normalizeQueryOrigin(o string) string {
	return strings.TrimSuffix(strings.TrimSpace(o), "/")
}

// normalizeOrigin prepares a decoded entry origin for matching: any nonce
// suffix introduced by '^' is dropped, the path beyond the authority is
// truncated, and a trailing slash is stripped.
func normalizeOrigin(o string) string {
	if idx := strings.IndexByte(o, '^'); idx >= 0 {
		o = o[:idx]
	}
	if schemeEnd := strings.Index(o, "://"); schemeEnd >= 0 {
		rest := o[schemeEnd+3:]
		if slash := strings.IndexByte(rest, '/'); slash >= 0 {
			o = o[:schemeEnd+3+slash]
		}
	} else if slash := strings.IndexByte(o, '/'); slash >= 0 {
		o = o[:slash]
	}
	return strings.TrimSuffix(o, "/")
}

// originsMatch implements the three equivalence rules: byte equality, equal
// parsed host(:port), or the entry origin matching the requested origin
// once the requested origin's scheme is stripped.
func originsMatch(entryOrigin, requestedOrigin string) bool {
	if entryOrigin == requestedOrigin {
		return true
	}
	if h1, ok := hostWithPort(entryOrigin); ok {
		if h2, ok := hostWithPort(requestedOrigin); ok && h1 == h2 {
			return true
		}
	}
	return entryOrigin == stripScheme(requestedOrigin)
}

func hostWithPort(o string) (string, bool) {
	u, err := url.Parse(o)
	if err != nil || u.Host == "" {
		return "", false
	}
	return u.Host, true
}

func stripScheme(o string) string {
	if idx := strings.Index(o, "://"); idx >= 0 {
		return o[idx+3:]
	}
	return o
}
