// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package record parses a LevelDB-compatible write-ahead log file: 32 KiB
// block framing, full/first/middle/last record fragments, and the
// put/delete write batches those fragments reassemble into. There is no
// writer still appending to the file this reader is handed, so instead of a
// streaming Reader over a live io.Reader, ReadFile decodes a whole log file
// in one pass and returns its entries newest-first.
package record

import (
	"github.com/ShabbirHasan1/SweetCookieKit/internal/base"
	"github.com/ShabbirHasan1/SweetCookieKit/internal/entry"
	"github.com/ShabbirHasan1/SweetCookieKit/internal/varint"
)

// blockSize is the fixed window every log file is framed into.
const blockSize = 32 * 1024

// headerSize is the 7-byte record header: checksum[4] | length[2] | type[1].
const headerSize = 7

// recordType is the tag byte of a log record fragment.
type recordType byte

const (
	fullType   recordType = 1
	firstType  recordType = 2
	middleType recordType = 3
	lastType   recordType = 4
)

func (t recordType) String() string {
	switch t {
	case fullType:
		return "full"
	case firstType:
		return "first"
	case middleType:
		return "middle"
	case lastType:
		return "last"
	default:
		return "unknown"
	}
}

// ReadFile parses the log file held in data and returns every put/delete
// entry it could decode from the write batches within, in reverse order of
// record appearance (the newest record first), so that a consumer applying
// first-seen-wins resolution sees the freshest write for each key first.
func ReadFile(data []byte, fileLabel string, sink base.DiagnosticSink) []entry.Entry {
	var out []entry.Entry
	var reassembly []byte
	reassembling := false

	for blockStart := 0; blockStart < len(data); blockStart += blockSize {
		blockEnd := blockStart + blockSize
		if blockEnd > len(data) {
			blockEnd = len(data)
		}
		block := data[blockStart:blockEnd]
		pos := 0

		for pos+headerSize <= len(block) {
			r := varint.NewReader(block[pos:])
			_, _ = r.Uint32() // checksum: read but never verified.
			length, ok := r.Uint16()
			if !ok {
				break
			}
			typ, ok := r.Byte()
			if !ok {
				break
			}
			if length == 0 {
				// Padding.
				pos += headerSize
				continue
			}
			payloadStart := pos + headerSize
			payloadEnd := payloadStart + int(length)
			if payloadEnd > len(block) {
				// Would cross the window end: stop this window.
				break
			}
			payload := block[payloadStart:payloadEnd]
			pos = payloadEnd

			switch recordType(typ) {
			case fullType:
				out = append(out, decodeWriteBatch(payload, fileLabel, sink)...)
			case firstType:
				reassembly = append([]byte(nil), payload...)
				reassembling = true
			case middleType:
				if reassembling {
					reassembly = append(reassembly, payload...)
				}
			case lastType:
				if reassembling {
					reassembly = append(reassembly, payload...)
					out = append(out, decodeWriteBatch(reassembly, fileLabel, sink)...)
				}
				reassembly = nil
				reassembling = false
			default:
				base.DiagnoseErr(sink, fileLabel, base.CorruptionErrorf("skipping record with unknown type %d", typ))
			}
		}
	}

	// Lenient tail handling: a truncated log may end mid-batch with no
	// closing "last" fragment. Attempt to decode what was reassembled so
	// far rather than discarding it.
	if reassembling && len(reassembly) > 0 {
		out = append(out, decodeWriteBatch(reassembly, fileLabel, sink)...)
	}

	reverse(out)
	return out
}

// decodeWriteBatch decodes a single write batch: an 8-byte sequence number,
// a 4-byte entry count (unused; the loop is tag-driven, not count-driven,
// so a wrong count never desynchronizes decoding), then tagged put/delete
// entries. Any other tag aborts the batch and returns what was decoded so
// far.
func decodeWriteBatch(payload []byte, fileLabel string, sink base.DiagnosticSink) []entry.Entry {
	if len(payload) < 12 {
		base.DiagnoseErr(sink, fileLabel, base.CorruptionErrorf("write batch shorter than its 12-byte header (%d bytes)", len(payload)))
		return nil
	}
	r := varint.NewReader(payload[12:])
	var out []entry.Entry
	for r.Len() > 0 {
		tag, ok := r.Byte()
		if !ok {
			break
		}
		switch writeBatchTag(tag) {
		case deleteTag:
			key, ok := r.LengthPrefixed()
			if !ok {
				return out
			}
			out = append(out, entry.Entry{UserKey: key, Deletion: true})
		case putTag:
			key, ok := r.LengthPrefixed()
			if !ok {
				return out
			}
			value, ok := r.LengthPrefixed()
			if !ok {
				return out
			}
			out = append(out, entry.Entry{UserKey: key, Value: value})
		default:
			return out
		}
	}
	return out
}

// writeBatchTag is the tag byte fronting each entry inside a write batch.
type writeBatchTag byte

const (
	deleteTag writeBatchTag = 0
	putTag    writeBatchTag = 1
)

func (t writeBatchTag) String() string {
	switch t {
	case deleteTag:
		return "delete"
	case putTag:
		return "put"
	default:
		return "unknown"
	}
}

func reverse(entries []entry.Entry) {
	for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
		entries[i], entries[j] = entries[j], entries[i]
	}
}
