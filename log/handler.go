// Copyright (c) 2025 The Meridian developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/big"
	"sync"
	"time"

	"github.com/holiman/uint256"
	"github.com/mattn/go-isatty"
)

// LevelTrace is below slog's built-in debug level.
const LevelTrace = slog.Level(-8)

const timeFormat = "2006-01-02T15:04:05-0700"

type discardHandler struct{}

// DiscardHandler returns a no-op handler.
func DiscardHandler() slog.Handler {
	return &discardHandler{}
}

func (h *discardHandler) Handle(_ context.Context, _ slog.Record) error { return nil }

func (h *discardHandler) Enabled(_ context.Context, _ slog.Level) bool { return false }

func (h *discardHandler) WithGroup(_ string) slog.Handler { panic("not implemented") }

func (h *discardHandler) WithAttrs(_ []slog.Attr) slog.Handler { return &discardHandler{} }

// TerminalHandler renders records in a human friendly single-line format.
type TerminalHandler struct {
	mu       sync.Mutex
	wr       io.Writer
	lvl      slog.Level
	useColor bool
	attrs    []slog.Attr
}

// NewTerminalHandler returns a handler which formats log records at all levels
// optimized for human readability on a terminal with color-coded level output.
//
//	[LEVEL] [TIME] MESSAGE key=value key=value ...
func NewTerminalHandler(wr io.Writer, lvl slog.Level) *TerminalHandler {
	useColor := false
	if f, ok := wr.(interface{ Fd() uintptr }); ok {
		useColor = isatty.IsTerminal(f.Fd())
	}
	return &TerminalHandler{
		wr:       wr,
		lvl:      lvl,
		useColor: useColor,
	}
}

func (t *TerminalHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= t.lvl
}

func (t *TerminalHandler) Handle(_ context.Context, r slog.Record) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	buf := make([]byte, 0, 128)
	lvl := levelString(r.Level)
	if t.useColor {
		if color := levelColor(r.Level); color != "" {
			lvl = color + lvl + "\x1b[0m"
		}
	}
	buf = append(buf, lvl...)
	buf = append(buf, '[')
	buf = r.Time.AppendFormat(buf, timeFormat)
	buf = append(buf, "] "...)
	buf = append(buf, r.Message...)

	appendAttr := func(a slog.Attr) bool {
		buf = append(buf, ' ')
		buf = append(buf, a.Key...)
		buf = append(buf, '=')
		buf = append(buf, formatValue(a.Value)...)
		return true
	}
	for _, a := range t.attrs {
		appendAttr(a)
	}
	r.Attrs(appendAttr)
	buf = append(buf, '\n')

	_, err := t.wr.Write(buf)
	return err
}

func (t *TerminalHandler) WithGroup(_ string) slog.Handler {
	panic("not implemented")
}

func (t *TerminalHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &TerminalHandler{
		wr:       t.wr,
		lvl:      t.lvl,
		useColor: t.useColor,
		attrs:    append(append([]slog.Attr{}, t.attrs...), attrs...),
	}
}

func levelString(l slog.Level) string {
	switch {
	case l <= LevelTrace:
		return "TRACE"
	case l <= slog.LevelDebug:
		return "DEBUG"
	case l <= slog.LevelInfo:
		return "INFO "
	case l <= slog.LevelWarn:
		return "WARN "
	default:
		return "ERROR"
	}
}

func levelColor(l slog.Level) string {
	switch {
	case l >= slog.LevelError:
		return "\x1b[31m" // red
	case l >= slog.LevelWarn:
		return "\x1b[33m" // yellow
	case l >= slog.LevelInfo:
		return "\x1b[32m" // green
	default:
		return ""
	}
}

func formatValue(v slog.Value) string {
	switch v.Kind() {
	case slog.KindTime:
		return v.Time().Format(timeFormat)
	case slog.KindDuration:
		return v.Duration().Round(time.Millisecond).String()
	case slog.KindAny:
		switch x := v.Any().(type) {
		case *big.Int:
			if x == nil {
				return "<nil>"
			}
			return x.String()
		case *uint256.Int:
			if x == nil {
				return "<nil>"
			}
			return x.Dec()
		case fmt.Stringer:
			return x.String()
		}
	}
	return v.String()
}
