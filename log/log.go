// Copyright (c) 2025 The Meridian developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package log

import (
	"log/slog"
	"os"
	"sync/atomic"
)

// Logger is the logging interface used across the repo.
type Logger interface {
	// With returns a new Logger that has this logger's attributes plus the given attributes
	With(ctx ...any) Logger

	Trace(msg string, ctx ...any)
	Debug(msg string, ctx ...any)
	Info(msg string, ctx ...any)
	Warn(msg string, ctx ...any)
	Error(msg string, ctx ...any)
}

type logger struct {
	inner *slog.Logger
}

// NewLogger returns a Logger backed by the given slog.Handler.
func NewLogger(h slog.Handler) Logger {
	return &logger{slog.New(h)}
}

func (l *logger) With(ctx ...any) Logger {
	return &logger{l.inner.With(ctx...)}
}

func (l *logger) Trace(msg string, ctx ...any) { l.inner.Log(nil, LevelTrace, msg, ctx...) }
func (l *logger) Debug(msg string, ctx ...any) { l.inner.Debug(msg, ctx...) }
func (l *logger) Info(msg string, ctx ...any)  { l.inner.Info(msg, ctx...) }
func (l *logger) Warn(msg string, ctx ...any)  { l.inner.Warn(msg, ctx...) }
func (l *logger) Error(msg string, ctx ...any) { l.inner.Error(msg, ctx...) }

var root atomic.Value

func init() {
	root.Store(&logger{slog.New(DiscardHandler())})
}

// SetDefault sets the default global logger.
func SetDefault(l Logger) {
	root.Store(l)
}

// Root returns the root logger.
func Root() Logger {
	return root.Load().(Logger)
}

// WithContext returns a logger scoped with the given context attributes.
// The root logger is resolved at log time, so package level loggers made
// before SetDefault still pick up the configured handler.
func WithContext(ctx ...any) Logger {
	return &ctxLogger{ctx}
}

type ctxLogger struct {
	ctx []any
}

func (l *ctxLogger) With(ctx ...any) Logger {
	merged := make([]any, 0, len(l.ctx)+len(ctx))
	merged = append(merged, l.ctx...)
	merged = append(merged, ctx...)
	return &ctxLogger{merged}
}

func (l *ctxLogger) Trace(msg string, ctx ...any) { Root().With(l.ctx...).Trace(msg, ctx...) }
func (l *ctxLogger) Debug(msg string, ctx ...any) { Root().With(l.ctx...).Debug(msg, ctx...) }
func (l *ctxLogger) Info(msg string, ctx ...any)  { Root().With(l.ctx...).Info(msg, ctx...) }
func (l *ctxLogger) Warn(msg string, ctx ...any)  { Root().With(l.ctx...).Warn(msg, ctx...) }
func (l *ctxLogger) Error(msg string, ctx ...any) { Root().With(l.ctx...).Error(msg, ctx...) }

// NewTerminalHandlerWithLevel returns a handler writing human readable records
// to stderr, filtering records below the given level.
func NewTerminalHandlerWithLevel(level slog.Level) slog.Handler {
	return NewTerminalHandler(os.Stderr, level)
}
