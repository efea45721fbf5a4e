// Package logger implements a logging adapter using log/slog.
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/muesli/termenv"

	"github.com/kiln-lang/kiln/internal/ui/output"
	"github.com/kiln-lang/kiln/internal/ui/style"
)

// PrettyHandler is a slog.Handler that renders records as plain lines
// for terminal display: a level symbol, the message, then attributes as
// key=value pairs. Attribute keys are qualified with the open group
// path joined by dots.
type PrettyHandler struct {
	out      *termenv.Output
	minLevel slog.Level

	// attrs are pre-rendered WithAttrs pairs, qualified with the groups
	// open at the time they were added.
	attrs  []string
	groups []string
}

// NewPrettyHandler creates a new PrettyHandler writing to the provided writer.
func NewPrettyHandler(w io.Writer, opts *slog.HandlerOptions) *PrettyHandler {
	if w == nil {
		w = os.Stderr
	}

	minLevel := slog.LevelInfo
	if opts != nil && opts.Level != nil {
		minLevel = opts.Level.Level()
	}

	return &PrettyHandler{
		out:      output.New(w),
		minLevel: minLevel,
	}
}

// Enabled reports whether the handler handles records at the given level.
func (h *PrettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.minLevel
}

// Handle formats and outputs the log record.
//
//nolint:gocritic // slog.Handler interface requires slog.Record by value
func (h *PrettyHandler) Handle(_ context.Context, r slog.Record) error {
	var b strings.Builder

	var color termenv.Color
	switch r.Level {
	case slog.LevelWarn:
		b.WriteString(style.Warning + " ")
		color = termenv.RGBColor(string(style.Yellow))
	case slog.LevelError:
		b.WriteString(style.Cross + " ")
		color = termenv.RGBColor(string(style.Red))
	default:
		color = termenv.RGBColor(string(style.Slate))
	}
	b.WriteString(r.Message)

	for _, pair := range h.attrs {
		b.WriteString(" ")
		b.WriteString(pair)
	}
	r.Attrs(func(attr slog.Attr) bool {
		b.WriteString(" ")
		b.WriteString(renderAttr(h.qualifier(), attr))
		return true
	})

	styled := h.out.String(b.String()).Foreground(color)
	_, err := h.out.WriteString(styled.String() + "\n")

	return err
}

// WithAttrs returns a handler that prepends the given attributes to
// every record. The attributes are rendered now, under the currently
// open groups; groups opened later do not re-qualify them.
func (h *PrettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}

	clone := *h
	clone.attrs = make([]string, 0, len(h.attrs)+len(attrs))
	clone.attrs = append(clone.attrs, h.attrs...)
	for _, attr := range attrs {
		clone.attrs = append(clone.attrs, renderAttr(h.qualifier(), attr))
	}
	return &clone
}

// WithGroup returns a handler that qualifies subsequent attribute keys
// with name. An empty name leaves the handler unchanged.
func (h *PrettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}

	clone := *h
	clone.groups = make([]string, 0, len(h.groups)+1)
	clone.groups = append(clone.groups, h.groups...)
	clone.groups = append(clone.groups, name)
	return &clone
}

func (h *PrettyHandler) qualifier() string {
	return strings.Join(h.groups, ".")
}

// renderAttr formats one attribute as key=value, qualifying the key
// when a group path is open.
func renderAttr(qualifier string, attr slog.Attr) string {
	key := attr.Key
	if qualifier != "" {
		key = qualifier + "." + key
	}
	return key + "=" + attr.Value.String()
}
