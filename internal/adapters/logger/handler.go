package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/muesli/termenv"
	"go.trai.ch/nvshader/internal/ui/output"
	"go.trai.ch/nvshader/internal/ui/style"
)

// PrettyHandler is a custom slog.Handler that produces human-readable,
// colored output. Cache paths below the user's home directory are shown
// relative to "~".
type PrettyHandler struct {
	out   *termenv.Output
	level slog.Leveler
	home  string
	attrs []slog.Attr
	group string
}

// NewPrettyHandler creates a new PrettyHandler writing to the provided writer.
func NewPrettyHandler(w io.Writer, opts *slog.HandlerOptions) *PrettyHandler {
	if w == nil {
		w = os.Stderr
	}

	var level slog.Leveler = slog.LevelInfo
	if opts != nil && opts.Level != nil {
		level = opts.Level
	}

	return &PrettyHandler{
		out:   output.New(w),
		level: level,
		home:  homePrefix(),
	}
}

// homePrefix returns the home directory with a trailing separator, or
// nothing when it is unknown or the file system root.
func homePrefix() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	home = filepath.Clean(home)
	if home == string(filepath.Separator) || home == "." {
		return ""
	}
	return home + string(filepath.Separator)
}

// Enabled reports whether the handler handles records at the given level.
func (h *PrettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// Handle formats and outputs the log record.
//
//nolint:gocritic // slog.Handler interface requires slog.Record by value
func (h *PrettyHandler) Handle(_ context.Context, r slog.Record) error {
	msg := h.shorten(r.Message)
	color := style.Term(style.Slate)

	switch {
	case r.Level >= slog.LevelError:
		msg = style.Cross + " " + msg
		color = style.Term(style.Red)
	case r.Level >= slog.LevelWarn:
		msg = style.Warning + " " + msg
		color = style.Term(style.Yellow)
	case r.Level < slog.LevelInfo:
		// Debug lines carry span timings and per-unit scan errors.
		msg = style.Dot + " " + msg
	}

	// Build attribute string from handler attrs and record attrs
	attrParts := make([]string, 0, len(h.attrs)+r.NumAttrs())

	// Add handler-level attrs
	for _, attr := range h.attrs {
		attrParts = append(attrParts, h.formatAttr(attr))
	}

	// Add record-level attrs
	r.Attrs(func(attr slog.Attr) bool {
		attrParts = append(attrParts, h.formatAttr(attr))
		return true
	})

	if len(attrParts) > 0 {
		msg += " " + strings.Join(attrParts, " ")
	}

	styled := h.out.String(msg).Foreground(color)
	_, err := h.out.WriteString(styled.String() + "\n")
	return err
}

// WithAttrs returns a new Handler with the given attributes appended.
func (h *PrettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	newAttrs := make([]slog.Attr, len(h.attrs)+len(attrs))
	copy(newAttrs, h.attrs)
	copy(newAttrs[len(h.attrs):], attrs)

	clone := *h
	clone.attrs = newAttrs
	return &clone
}

// WithGroup returns a new Handler whose attribute keys are prefixed with
// name. Nested groups join with a dot.
func (h *PrettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	clone := *h
	if clone.group != "" {
		name = clone.group + "." + name
	}
	clone.group = name
	return &clone
}

// formatAttr formats a single attribute for output.
// If a group is set, the key is prefixed with the group name.
func (h *PrettyHandler) formatAttr(attr slog.Attr) string {
	key := attr.Key
	if h.group != "" {
		key = h.group + "." + key
	}
	return key + "=" + h.shorten(attr.Value.String())
}

// shorten replaces the home directory prefix of every path in s with "~/".
func (h *PrettyHandler) shorten(s string) string {
	if h.home == "" {
		return s
	}
	return strings.ReplaceAll(s, h.home, "~"+string(filepath.Separator))
}
