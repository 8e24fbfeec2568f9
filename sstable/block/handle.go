// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package block holds the block-handle type shared by the footer and index
// block of a table file: a varint-encoded (offset, size) pair, plus the
// compression tag and trailer geometry that frame every block on disk.
package block

import "github.com/ShabbirHasan1/SweetCookieKit/internal/varint"

// CompressionType is the one-byte tag that follows every block's payload.
type CompressionType byte

// The two compression types this reader understands. Any other value is
// unsupported and causes the block to be skipped.
const (
	NoCompression     CompressionType = 0
	SnappyCompression CompressionType = 1
)

// TrailerLen is the number of bytes following a block's payload: one
// compression-type byte plus four trailer bytes this reader does not
// interpret (a checksum in the on-disk format, never verified here).
const TrailerLen = 5

// Handle is a (offset, size) pointer into a table file. Size does not
// include the trailing TrailerLen bytes.
type Handle struct {
	Offset uint64
	Size   uint64
}

// DecodeHandle reads a Handle as two consecutive varints from the front of
// src, returning the number of bytes consumed, or 0 on malformed input.
func DecodeHandle(src []byte) (Handle, int) {
	offset, n := varint.DecodeVarint64(src)
	if n == 0 {
		return Handle{}, 0
	}
	size, m := varint.DecodeVarint64(src[n:])
	if m == 0 {
		return Handle{}, 0
	}
	return Handle{Offset: offset, Size: size}, n + m
}
