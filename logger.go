// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package volume

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler is a slog.Handler that discards every record. Enabled reports
// false so callers skip building attributes entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr stores the active logger. It is read on every logged operation
// and may be replaced concurrently by SetLogger.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger configures the logger for volume and its sub-packages.
// By default nothing is logged. Pass nil to restore the silent default.
//
// Log levels used by volume:
//   - [slog.LevelDebug]: per-operation diagnostics (LUT rebuilt, classification
//     timings, cache hits, ray termination counts)
//   - [slog.LevelInfo]: lifecycle events (dataset loaded, frame rendered)
//   - [slog.LevelWarn]: non-fatal conditions (too few control points to build
//     a lookup table)
//
// Example:
//
//	volume.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
}

// Logger returns the current logger. Sub-packages (dataset/, gpu/) call this
// so that one SetLogger call configures the whole module.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
