package target

import (
	"strconv"
	"strings"

	"github.com/mcp-proxy/mcp-proxy/internal/errors"
)

// ErrInvalidDraft is returned by Draft.Build when the draft cannot be turned
// into a target. Callers are expected to validate first.
var ErrInvalidDraft = errors.New("draft is not buildable")

// Draft is the in-progress form state for a target being composed.
// It exists only while the operator edits it and is discarded (reset) once
// the target has been accepted.
//
// Port is kept as typed text; validation decides whether it is a port.
type Draft struct {
	Category Category
	Kind     Kind
	Name     string

	// stdio
	Cmd  string
	Args []string

	// sse, openapi, a2a
	Host string
	Port string
	Path string
}

// NewDraft starts an empty draft for the given category, preselecting the
// category's first kind.
func NewDraft(c Category) *Draft {
	d := &Draft{Category: c}
	if kinds := c.Kinds(); len(kinds) > 0 {
		d.Kind = kinds[0]
	}
	return d
}

// ParsePort parses a port typed by the operator. It accepts unsigned
// base-10 digits in [1, 65535] with optional surrounding whitespace.
func ParsePort(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" || strings.TrimLeft(s, "0123456789") != "" {
		return 0, false
	}
	p, err := strconv.Atoi(s)
	if err != nil || p < 1 || p > 65535 {
		return 0, false
	}
	return p, true
}

// Build converts the draft into a target with exactly one populated group,
// the one matching d.Kind. Text fields are trimmed.
func (d *Draft) Build() (Target, error) {
	name := strings.TrimSpace(d.Name)

	switch d.Kind {
	case KindStdio:
		return FromSpec(name, StdioSpec{Stdio{
			Cmd:  strings.TrimSpace(d.Cmd),
			Args: d.Args,
		}}), nil
	case KindSSE, KindOpenAPI, KindA2A:
		port, ok := ParsePort(d.Port)
		if !ok {
			return Target{}, errors.Wrapf(ErrInvalidDraft, "port %q", d.Port)
		}
		host := strings.TrimSpace(d.Host)
		path := strings.TrimSpace(d.Path)
		switch d.Kind {
		case KindSSE:
			return FromSpec(name, SSESpec{SSE{Host: host, Port: port, Path: path}}), nil
		case KindOpenAPI:
			return FromSpec(name, OpenAPISpec{OpenAPI{Host: host, Port: port}}), nil
		default:
			return FromSpec(name, A2ASpec{A2A{Host: host, Port: port, Path: path}}), nil
		}
	default:
		return Target{}, errors.Wrapf(ErrInvalidDraft, "unknown kind %q", d.Kind)
	}
}

// Reset clears the name and per-variant fields after a successful
// submission. The category and kind stay selected.
func (d *Draft) Reset() {
	*d = Draft{Category: d.Category, Kind: d.Kind}
}
