// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package snappy decodes the "Snappy raw block" format used to compress
// individual sstable data blocks: a varint uncompressed-length preamble
// followed by a tag-driven stream of literal and copy operations. It does
// not implement the outer framed-stream format (checksummed frame headers,
// stream identifiers); only the raw block variant that this reader's data
// blocks use.
package snappy

import "github.com/ShabbirHasan1/SweetCookieKit/internal/varint"

// Decode decompresses a single raw Snappy block. It returns (nil, false) on
// any truncation, zero offset, or unrecognized tag combination; there is no
// partial output on failure, matching the table reader's per-block
// confinement of corruption (a failing block is skipped wholesale).
func Decode(src []byte) ([]byte, bool) {
	r := varint.NewReader(src)
	uncompressedLen, ok := r.Varint64()
	if !ok {
		return nil, false
	}

	// uncompressedLen only sizes the output buffer; it is not validated
	// against the actual decoded length. Cap the initial allocation so a
	// corrupt, absurdly large preamble can't force an enormous up-front
	// allocation.
	capHint := uncompressedLen
	const maxPreAlloc = 1 << 20
	if capHint > maxPreAlloc {
		capHint = maxPreAlloc
	}
	out := make([]byte, 0, capHint)

	for r.Len() > 0 {
		tag, ok := r.Byte()
		if !ok {
			return nil, false
		}
		switch tag & 0x3 {
		case 0x0: // literal
			litLen, ok := literalLength(r, tag)
			if !ok {
				return nil, false
			}
			lit, ok := r.Bytes(litLen)
			if !ok {
				return nil, false
			}
			out = append(out, lit...)

		case 0x1: // copy, 1-byte offset
			length := int((tag>>2)&0x7) + 4
			b, ok := r.Byte()
			if !ok {
				return nil, false
			}
			offset := (int(tag>>5) << 8) | int(b)
			if out, ok = applyCopy(out, offset, length); !ok {
				return nil, false
			}

		case 0x2: // copy, 2-byte offset
			length := int(tag>>2) + 1
			off16, ok := r.Uint16()
			if !ok {
				return nil, false
			}
			if out, ok = applyCopy(out, int(off16), length); !ok {
				return nil, false
			}

		case 0x3: // copy, 4-byte offset
			length := int(tag>>2) + 1
			off32, ok := r.Uint32()
			if !ok {
				return nil, false
			}
			if out, ok = applyCopy(out, int(off32), length); !ok {
				return nil, false
			}
		}
	}
	return out, true
}

// literalLength decodes the literal-length field of a literal tag: tag>>2
// directly encodes length-1 when < 60, otherwise it encodes how many
// following little-endian bytes hold (length-1).
func literalLength(r *varint.Reader, tag byte) (int, bool) {
	v := int(tag >> 2)
	if v < 60 {
		return v + 1, true
	}
	extraBytes := v - 59
	b, ok := r.Bytes(extraBytes)
	if !ok {
		return 0, false
	}
	var n uint64
	for i, c := range b {
		n |= uint64(c) << (8 * uint(i))
	}
	return int(n) + 1, true
}

// applyCopy appends length bytes, read starting offset bytes back from the
// current end of out, to out. The source range grows as it is copied, so a
// copy may legitimately read bytes it itself just wrote (the common
// run-length encoding of a repeated byte); it must therefore proceed
// byte-wise rather than via a single slice copy.
func applyCopy(out []byte, offset, length int) ([]byte, bool) {
	if offset < 1 || offset > len(out) {
		return nil, false
	}
	srcStart := len(out) - offset
	for i := 0; i < length; i++ {
		out = append(out, out[srcStart+i])
	}
	return out, true
}
