package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
)

// timeFormat keeps wizard output short; the JSON log file carries full timestamps.
const timeFormat = "15:04:05"

// palette holds the colors used by Handler. A nil palette means plain output.
type palette struct {
	time  *color.Color
	key   *color.Color
	level map[slog.Level]*color.Color
}

func newPalette() *palette {
	return &palette{
		time: color.New(color.FgHiBlack),
		key:  color.New(color.FgCyan),
		level: map[slog.Level]*color.Color{
			slog.LevelDebug: color.New(color.FgMagenta),
			slog.LevelInfo:  color.New(color.FgGreen),
			slog.LevelWarn:  color.New(color.FgYellow),
			slog.LevelError: color.New(color.FgRed, color.Bold),
		},
	}
}

// Handler implements slog.Handler for terminal output.
//
// Lines look like:
//
//	14:02:11 INFO  target registered target=web kind=sse endpoint=localhost:8080/mcp duration=12ms
//
// Colors are used only when the writer is a terminal.
type Handler struct {
	opts   slog.HandlerOptions
	out    io.Writer
	mu     *sync.Mutex
	attrs  []prefixedAttr
	groups []string
	colors *palette
}

type prefixedAttr struct {
	prefix string
	attr   slog.Attr
}

// NewHandler creates a terminal handler writing to out.
func NewHandler(out io.Writer, opts *slog.HandlerOptions) *Handler {
	if opts == nil {
		opts = &slog.HandlerOptions{}
	}

	h := &Handler{
		opts: *opts,
		out:  out,
		mu:   &sync.Mutex{},
	}
	if SupportsColor(out) {
		h.colors = newPalette()
	}
	return h
}

// Enabled reports whether the handler handles records at the given level.
func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	minLevel := slog.LevelInfo
	if h.opts.Level != nil {
		minLevel = h.opts.Level.Level()
	}
	return level >= minLevel
}

// Handle formats the record as a single line.
func (h *Handler) Handle(_ context.Context, r slog.Record) error {
	var b strings.Builder

	if !r.Time.IsZero() {
		b.WriteString(h.paint(h.timeColor(), r.Time.Format(timeFormat)))
		b.WriteByte(' ')
	}
	b.WriteString(h.levelLabel(r.Level))
	b.WriteByte(' ')
	b.WriteString(r.Message)

	for _, pa := range h.attrs {
		h.writeAttr(&b, pa.prefix, pa.attr)
	}
	prefix := strings.Join(h.groups, ".")
	r.Attrs(func(a slog.Attr) bool {
		h.writeAttr(&b, prefix, a)
		return true
	})
	b.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.out, b.String())
	return err
}

func (h *Handler) levelLabel(level slog.Level) string {
	label := fmt.Sprintf("%-5s", level.String())
	if h.colors == nil {
		return label
	}
	key := slog.LevelDebug
	switch {
	case level >= slog.LevelError:
		key = slog.LevelError
	case level >= slog.LevelWarn:
		key = slog.LevelWarn
	case level >= slog.LevelInfo:
		key = slog.LevelInfo
	}
	return h.colors.level[key].Sprint(label)
}

func (h *Handler) writeAttr(b *strings.Builder, prefix string, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}

	key := a.Key
	if prefix != "" {
		key = prefix + "." + key
	}

	if a.Value.Kind() == slog.KindGroup {
		// Inline groups (empty key) keep the current prefix.
		if a.Key == "" {
			key = prefix
		}
		for _, ga := range a.Value.Group() {
			h.writeAttr(b, key, ga)
		}
		return
	}

	b.WriteByte(' ')
	b.WriteString(h.paint(h.keyColor(), key))
	b.WriteByte('=')
	b.WriteString(formatValue(a))
}

func formatValue(a slog.Attr) string {
	var s string
	switch a.Value.Kind() {
	case slog.KindDuration:
		s = a.Value.Duration().Round(time.Millisecond).String()
	case slog.KindString:
		s = a.Value.String()
	default:
		s = fmt.Sprint(a.Value.Any())
	}

	if shouldMask(a.Key) || containsTokenPrefix(s) {
		return maskValue(s)
	}
	if s == "" || strings.ContainsAny(s, " \t\"=") {
		return strconv.Quote(s)
	}
	return s
}

func (h *Handler) paint(c *color.Color, s string) string {
	if c == nil {
		return s
	}
	return c.Sprint(s)
}

func (h *Handler) timeColor() *color.Color {
	if h.colors == nil {
		return nil
	}
	return h.colors.time
}

func (h *Handler) keyColor() *color.Color {
	if h.colors == nil {
		return nil
	}
	return h.colors.key
}

// WithAttrs returns a new Handler with the given attributes.
// Attributes keep the group prefix in effect when they were added.
func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	prefix := strings.Join(h.groups, ".")
	newH := *h
	newH.attrs = make([]prefixedAttr, 0, len(h.attrs)+len(attrs))
	newH.attrs = append(newH.attrs, h.attrs...)
	for _, a := range attrs {
		newH.attrs = append(newH.attrs, prefixedAttr{prefix: prefix, attr: a})
	}
	return &newH
}

// WithGroup returns a new Handler with the given group name.
// Groups are rendered as dotted key prefixes.
func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	newH := *h
	newH.groups = make([]string, len(h.groups)+1)
	copy(newH.groups, h.groups)
	newH.groups[len(h.groups)] = name
	return &newH
}
