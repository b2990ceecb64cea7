package core

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler discards every record. Enabled reports false so callers skip
// formatting entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger installs the logger shared by every lightlab package.
// Nothing is logged until SetLogger is called. Passing nil restores the
// silent default.
//
// Levels in use:
//   - [slog.LevelDebug]: per-frame diagnostics (resize, texture uploads)
//   - [slog.LevelInfo]: lifecycle events (GL version, enabled features)
//   - [slog.LevelWarn]: non-fatal degradations (missing texture, no shadows)
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
}

// Logger returns the current logger. Safe for concurrent use; texture
// decode workers log through it.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
