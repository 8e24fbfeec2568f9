// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package base holds the small set of types shared by every reader in this
// module: the diagnostic sink callers may supply, and the error constructor
// used to describe a structural corruption that a reader confines to the
// block, record, or entry it was decoding.
package base

import (
	"github.com/cockroachdb/errors"
)

// DiagnosticSink receives human-readable, advisory diagnostic messages.
// Implementations must not be re-entrant: a reader invokes Logf synchronously
// and never calls back into the reader from within it.
type DiagnosticSink interface {
	Logf(format string, args ...any)
}

// NoopSink discards every message. It is used whenever a caller passes a nil
// sink.
type NoopSink struct{}

// Logf implements DiagnosticSink.
func (NoopSink) Logf(string, ...any) {}

// Sink returns s if non-nil, or NoopSink{} otherwise.
func Sink(s DiagnosticSink) DiagnosticSink {
	if s == nil {
		return NoopSink{}
	}
	return s
}

const diagnosticTag = "[chromium-storage]"

// Diagnosef formats a diagnostic message and emits it through sink, prefixed
// with the component tag so callers interleaving several sources can tell
// where a message came from.
func Diagnosef(sink DiagnosticSink, format string, args ...any) {
	Sink(sink).Logf(diagnosticTag+" "+format, args...)
}

// CorruptionErrorf builds an error describing a structural inconsistency
// that a reader confines to the block, record, or entry it was decoding. It
// is never propagated out of a public entry point; callers feed it to
// DiagnoseErr and move on.
func CorruptionErrorf(format string, args ...any) error {
	return errors.Newf(format, args...)
}

// Wrapf annotates err with a message.
func Wrapf(err error, format string, args ...any) error {
	return errors.Wrapf(err, format, args...)
}

// DiagnoseErr is Diagnosef for a caller that has already built an error
// (typically via CorruptionErrorf or Wrapf): it logs the error's formatted
// text under fileLabel and returns, leaving the caller to skip the unit the
// error was confined to.
func DiagnoseErr(sink DiagnosticSink, fileLabel string, err error) {
	Diagnosef(sink, "%s: %v", fileLabel, err)
}
