package clog

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"maps"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
)

type TextOption func(*TextHandler)

func WithLevel(level slog.Level) TextOption {
	return func(h *TextHandler) {
		h.level = level
	}
}

// WithColor forces colored output on or off. By default fatih/color decides
// from the terminal.
func WithColor(enabled bool) TextOption {
	return func(h *TextHandler) {
		h.color = &enabled
	}
}

// headline keys are printed in this order on the first line of a record.
// Everything else follows indented, one attribute per line.
var headline = []string{"method", "procedure", "path", "status", "code", UserIDKey, TaskIDKey}

var levelStyle = map[slog.Level]color.Attribute{
	slog.LevelDebug: color.FgCyan,
	slog.LevelInfo:  color.FgBlue,
	slog.LevelWarn:  color.FgYellow,
	slog.LevelError: color.FgRed,
}

// TextHandler is a human friendly handler for ENV=local.
type TextHandler struct {
	w     io.Writer
	mu    *sync.Mutex
	level slog.Level
	color *bool
	attrs []slog.Attr
}

func NewTextHandler(w io.Writer, opts ...TextOption) *TextHandler {
	h := &TextHandler{w: w, mu: &sync.Mutex{}, level: slog.LevelInfo}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *TextHandler) Enabled(_ context.Context, l slog.Level) bool {
	return l >= h.level
}

func (h *TextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	nh := *h
	nh.attrs = append(slices.Clip(h.attrs), attrs...)
	return &nh
}

// WithGroup is a no-op; group names are not shown.
func (h *TextHandler) WithGroup(string) slog.Handler {
	return h
}

func (h *TextHandler) style(attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	if h.color != nil {
		if *h.color {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return c
}

func (h *TextHandler) Handle(_ context.Context, r slog.Record) error {
	fields := make(map[string]slog.Value, len(h.attrs)+r.NumAttrs())
	for _, a := range h.attrs {
		fields[a.Key] = a.Value
	}
	r.Attrs(func(a slog.Attr) bool {
		fields[a.Key] = a.Value
		return true
	})

	var buf bytes.Buffer
	h.style(color.Faint).Fprint(&buf, r.Time.Format(time.TimeOnly), " ")
	h.style(levelStyle[levelBucket(r.Level)]).Fprintf(&buf, "%-5s ", r.Level)
	for _, k := range headline {
		if v, ok := fields[k]; ok {
			buf.WriteString(v.String())
			buf.WriteByte(' ')
			delete(fields, k)
		}
	}
	h.style(color.FgGreen).Fprintf(&buf, "%q", r.Message)
	if v, ok := fields[ErrorKey]; ok {
		h.style(color.FgRed).Fprintf(&buf, " %q", v.String())
		delete(fields, ErrorKey)
	}
	buf.WriteByte('\n')

	stack, hasStack := fields[StackKey]
	delete(fields, StackKey)
	for _, k := range slices.Sorted(maps.Keys(fields)) {
		buf.WriteString("    " + k + "=" + fields[k].String() + "\n")
	}
	if hasStack {
		for _, line := range strings.Split(strings.TrimSpace(stack.String()), "\n") {
			h.style(color.Faint).Fprintln(&buf, "    "+line)
		}
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := h.w.Write(buf.Bytes())
	return err
}

func levelBucket(l slog.Level) slog.Level {
	switch {
	case l >= slog.LevelError:
		return slog.LevelError
	case l >= slog.LevelWarn:
		return slog.LevelWarn
	case l >= slog.LevelInfo:
		return slog.LevelInfo
	default:
		return slog.LevelDebug
	}
}
