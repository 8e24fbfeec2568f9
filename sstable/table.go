// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package sstable parses a LevelDB-compatible sorted-string table file: the
// 48-byte footer, the index block, and the data blocks it points at. It is
// read-only and best-effort — any structural inconsistency is confined to
// the block it was found in, and the reader returns everything it could
// decode rather than failing the whole file.
//
// This package intentionally implements only the classic 48-byte LevelDB
// footer (two block handles, zero-padded, an 8-byte ignored magic). The
// later RocksDB-lineage footer variants (versioned footers, checksum-type
// bytes, two-level indexes, value blocks) are not what a Chromium profile
// store writes, and readFooter makes no attempt to recognize them.
package sstable

import (
	"github.com/ShabbirHasan1/SweetCookieKit/internal/base"
	"github.com/ShabbirHasan1/SweetCookieKit/internal/entry"
	"github.com/ShabbirHasan1/SweetCookieKit/internal/snappy"
	"github.com/ShabbirHasan1/SweetCookieKit/sstable/block"
)

// FooterLen is the fixed size of a classic LevelDB footer.
const FooterLen = 48

// footerPaddedHandlesLen is the zero-padded region the two block handles
// occupy at the front of the footer, before the 8-byte magic.
const footerPaddedHandlesLen = FooterLen - 8

// footer is the decoded form of the last 48 bytes of a table file.
type footer struct {
	metaindexBH block.Handle // parsed but never read; see ReadFile.
	indexBH     block.Handle
}

// readFooter decodes the trailing 48 bytes of a table file. It ignores the
// magic entirely (this reader only ever sees files a caller already
// believes are tables) and returns ok=false when data is shorter than a
// footer or when the handles themselves fail to decode.
func readFooter(data []byte) (footer, bool) {
	if len(data) < FooterLen {
		return footer{}, false
	}
	buf := data[len(data)-FooterLen : len(data)-FooterLen+footerPaddedHandlesLen]

	metaindexBH, n := block.DecodeHandle(buf)
	if n == 0 {
		return footer{}, false
	}
	indexBH, m := block.DecodeHandle(buf[n:])
	if m == 0 {
		return footer{}, false
	}
	return footer{metaindexBH: metaindexBH, indexBH: indexBH}, true
}

// ReadFile parses the table file held in data and returns every entry it
// could decode, in file order. fileLabel is used only to annotate
// diagnostic messages. A file shorter than the footer, or with an
// undecodable footer or index block, yields no entries (and one
// diagnostic); any later per-block failure is confined to that block.
func ReadFile(data []byte, fileLabel string, sink base.DiagnosticSink) []entry.Entry {
	if len(data) < FooterLen {
		base.DiagnoseErr(sink, fileLabel, base.CorruptionErrorf("file too small to contain a footer (%d bytes)", len(data)))
		return nil
	}
	foot, ok := readFooter(data)
	if !ok {
		base.DiagnoseErr(sink, fileLabel, base.CorruptionErrorf("could not decode footer"))
		return nil
	}

	indexEntries, ok := readBlock(data, foot.indexBH, IndexBlockKind, fileLabel, sink)
	if !ok {
		// readBlock has already emitted the diagnostic for this failure.
		return nil
	}

	var out []entry.Entry
	for _, ie := range indexEntries {
		dataBH, n := block.DecodeHandle(ie.value)
		if n == 0 {
			base.DiagnoseErr(sink, fileLabel, base.CorruptionErrorf("corrupt index entry"))
			continue
		}
		dataEntries, ok := readBlock(data, dataBH, DataBlockKind, fileLabel, sink)
		if !ok {
			// Confined to this block; keep going with the remaining index
			// entries.
			continue
		}
		for _, de := range dataEntries {
			userKey, valueType, ok := splitInternalKey(de.fullKey)
			if !ok {
				continue
			}
			if valueType == 0 {
				out = append(out, entry.Entry{UserKey: userKey, Deletion: true})
			} else {
				out = append(out, entry.Entry{UserKey: userKey, Value: de.value})
			}
		}
	}
	return out
}

// readBlock reads, decompresses, and entry-decodes the block at h. kind only
// disambiguates diagnostic messages: for an index block the returned
// rawBlockEntry.fullKey is a plain user key, while for a data block it is an
// internal key the caller must still split.
func readBlock(file []byte, h block.Handle, kind BlockKind, fileLabel string, sink base.DiagnosticSink) ([]rawBlockEntry, bool) {
	// Validate with subtraction only: offset and size come from untrusted
	// varints, and summing them (or adding the trailer) can wrap uint64 and
	// slip past a naive end <= len(file) check.
	fileLen := uint64(len(file))
	if h.Offset > fileLen || h.Size > fileLen-h.Offset || fileLen-h.Offset-h.Size < block.TrailerLen {
		base.DiagnoseErr(sink, fileLabel, base.CorruptionErrorf("%s block handle out of range (offset=%d size=%d)", kind, h.Offset, h.Size))
		return nil, false
	}
	payload := file[h.Offset : h.Offset+h.Size]
	compressionByte := file[h.Offset+h.Size]

	var decoded []byte
	switch block.CompressionType(compressionByte) {
	case block.NoCompression:
		decoded = payload
	case block.SnappyCompression:
		out, ok := snappy.Decode(payload)
		if !ok {
			err := base.Wrapf(base.CorruptionErrorf("snappy block at offset %d", h.Offset), "snappy decode failed for %s block", kind)
			base.DiagnoseErr(sink, fileLabel, err)
			return nil, false
		}
		decoded = out
	default:
		base.DiagnoseErr(sink, fileLabel, base.CorruptionErrorf("unsupported compression type %d for %s block at offset %d", compressionByte, kind, h.Offset))
		return nil, false
	}

	entryRegionLen, ok := restartCount(decoded)
	if !ok {
		base.DiagnoseErr(sink, fileLabel, base.CorruptionErrorf("malformed restart array in %s block at offset %d", kind, h.Offset))
		return nil, false
	}
	return decodeBlockEntries(decoded[:entryRegionLen]), true
}
