// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package flow

import (
	"log/slog"

	"github.com/gogpu/gg"

	"github.com/gogpu/flow/internal/flowlog"
)

// SetLogger configures the logger for flow, all its sub-packages and gg.
// By default, flow produces no log output. Call SetLogger to enable logging.
//
// SetLogger is safe for concurrent use: it stores the new logger atomically.
// Pass nil to disable logging (restore default silent behavior).
//
// Log levels used by flow:
//   - [slog.LevelDebug]: per-frame diagnostics (cache evictions, paint task counts)
//   - [slog.LevelWarn]: degraded output (surface acquisition failed, flat color used)
//
// Example:
//
//	// Enable warnings to stderr:
//	flow.SetLogger(slog.Default())
//
//	// Enable debug-level logging for full diagnostics:
//	flow.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	flowlog.Set(l)
	gg.SetLogger(l)
}

// Logger returns the current logger used by flow.
//
// Logger is safe for concurrent use.
func Logger() *slog.Logger {
	return flowlog.Logger()
}
