package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"go.trai.ch/gitres/internal/ui/output"
	"go.trai.ch/gitres/internal/ui/style"
)

// PrettyHandler is a slog.Handler writing one colored line per record:
// a level mark, the message, then key=value pairs.
type PrettyHandler struct {
	out   *termenv.Output
	level slog.Leveler

	// prefix is the already rendered output of WithAttrs.
	prefix []string
	// groups qualifies keys added after WithGroup.
	groups []string
}

// NewPrettyHandler creates a new PrettyHandler writing to w, stderr when w is nil.
func NewPrettyHandler(w io.Writer, opts *slog.HandlerOptions) *PrettyHandler {
	if w == nil {
		w = os.Stderr
	}

	h := &PrettyHandler{out: output.New(w), level: slog.LevelInfo}
	if opts != nil && opts.Level != nil {
		h.level = opts.Level
	}
	return h
}

// Enabled reports whether records at level are written.
func (h *PrettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// levelMark returns the glyph and color a record of level is rendered with.
func levelMark(level slog.Level) (string, lipgloss.Color) {
	switch {
	case level >= slog.LevelError:
		return style.Cross, style.Red
	case level >= slog.LevelWarn:
		return style.Warning, style.Yellow
	case level < slog.LevelInfo:
		return style.Dot, style.Slate
	}
	return "", style.Slate
}

// Handle writes the record.
//
//nolint:gocritic // slog.Handler interface requires slog.Record by value
func (h *PrettyHandler) Handle(_ context.Context, r slog.Record) error {
	mark, color := levelMark(r.Level)

	var b strings.Builder
	if mark != "" {
		b.WriteString(mark)
		b.WriteByte(' ')
	}
	b.WriteString(r.Message)

	fields := slices.Clip(h.prefix)
	r.Attrs(func(a slog.Attr) bool {
		fields = appendAttr(fields, h.groups, a)
		return true
	})
	for _, f := range fields {
		b.WriteByte(' ')
		b.WriteString(f)
	}

	line := h.out.String(b.String()).Foreground(h.out.Color(string(color)))
	_, err := h.out.WriteString(line.String() + "\n")
	return err
}

// WithAttrs returns a handler that renders attrs on every record.
func (h *PrettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}

	prefix := append([]string(nil), h.prefix...)
	for _, a := range attrs {
		prefix = appendAttr(prefix, h.groups, a)
	}

	next := *h
	next.prefix = prefix
	return &next
}

// WithGroup returns a handler qualifying later keys with name.
func (h *PrettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}

	next := *h
	next.groups = append(append([]string(nil), h.groups...), name)
	return &next
}

// appendAttr renders a as key=value, flattening group values into dotted keys.
func appendAttr(fields, groups []string, a slog.Attr) []string {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return fields
	}

	if a.Value.Kind() == slog.KindGroup {
		inner := groups
		if a.Key != "" {
			inner = append(append([]string(nil), groups...), a.Key)
		}
		for _, ga := range a.Value.Group() {
			fields = appendAttr(fields, inner, ga)
		}
		return fields
	}

	key := a.Key
	if len(groups) > 0 {
		key = strings.Join(groups, ".") + "." + key
	}
	return append(fields, key+"="+quoteValue(a.Value.String()))
}

func quoteValue(v string) string {
	if v == "" || strings.ContainsAny(v, " \t\n\"=") {
		return strconv.Quote(v)
	}
	return v
}
