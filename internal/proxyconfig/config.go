package proxyconfig

import (
	"encoding/json"
	"maps"
	"slices"

	"github.com/mcp-proxy/mcp-proxy/internal/errors"
	"github.com/mcp-proxy/mcp-proxy/internal/target"
)

// targetsKey is the document field holding the target list.
const targetsKey = "targets"

// ErrIndexOutOfRange is returned by RemoveAt for an index outside the list.
var ErrIndexOutOfRange = errors.New("target index out of range")

// Config is the in-progress proxy configuration document.
//
// The zero value is an empty document ready to use. Config is not safe for
// concurrent use.
type Config struct {
	targets []target.Target

	// unknownFields stores top-level fields other than targets.
	unknownFields map[string]json.RawMessage
}

// New returns an empty document.
func New() *Config {
	return &Config{}
}

// Append adds t to the end of the target list and returns its index.
// Only the group t classifies as is stored, so the document never gains an
// ambiguous target. Names are not deduplicated here.
func (c *Config) Append(t target.Target) int {
	c.targets = append(c.targets, target.Normalize(t))
	return len(c.targets) - 1
}

// RemoveAt removes the target at index i, shifting later targets down.
// It changes only the local document; the target stays registered on any
// proxy it was submitted to.
func (c *Config) RemoveAt(i int) error {
	if i < 0 || i >= len(c.targets) {
		return errors.Wrapf(ErrIndexOutOfRange, "index %d, have %d targets", i, len(c.targets))
	}
	c.targets = slices.Delete(c.targets, i, i+1)
	return nil
}

// At returns the target at index i.
func (c *Config) At(i int) (target.Target, bool) {
	if i < 0 || i >= len(c.targets) {
		return target.Target{}, false
	}
	return c.targets[i], true
}

// Targets returns a copy of the target list in order.
func (c *Config) Targets() []target.Target {
	return slices.Clone(c.targets)
}

// Len returns the number of targets.
func (c *Config) Len() int {
	return len(c.targets)
}

// Names returns the target names in order.
func (c *Config) Names() []string {
	names := make([]string, len(c.targets))
	for i, t := range c.targets {
		names[i] = t.Name
	}
	return names
}

// Field returns the raw JSON of a top-level field other than targets.
func (c *Config) Field(name string) (json.RawMessage, bool) {
	raw, ok := c.unknownFields[name]
	return raw, ok
}

// SetField stores v as a top-level field. The targets field cannot be set
// this way.
func (c *Config) SetField(name string, v any) error {
	if name == targetsKey {
		return errors.Newf("field %q is managed through Append and RemoveAt", name)
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return errors.Wrapf(err, "encoding field %q", name)
	}
	if c.unknownFields == nil {
		c.unknownFields = make(map[string]json.RawMessage)
	}
	c.unknownFields[name] = raw
	return nil
}

// Clone returns a deep copy of the document, used to hand a snapshot to
// later steps without sharing the target list.
func (c *Config) Clone() *Config {
	out := &Config{
		targets: make([]target.Target, len(c.targets)),
	}
	for i, t := range c.targets {
		out.targets[i] = cloneTarget(t)
	}
	if c.unknownFields != nil {
		out.unknownFields = make(map[string]json.RawMessage, len(c.unknownFields))
		for k, v := range c.unknownFields {
			out.unknownFields[k] = slices.Clone(v)
		}
	}
	return out
}

func cloneTarget(t target.Target) target.Target {
	out := target.Target{Name: t.Name}
	if t.Stdio != nil {
		s := *t.Stdio
		s.Args = slices.Clone(t.Stdio.Args)
		out.Stdio = &s
	}
	if t.SSE != nil {
		s := *t.SSE
		out.SSE = &s
	}
	if t.OpenAPI != nil {
		s := *t.OpenAPI
		out.OpenAPI = &s
	}
	if t.A2A != nil {
		s := *t.A2A
		out.A2A = &s
	}
	return out
}

// MarshalJSON implements json.Marshaler, writing unknown fields back out
// next to the target list.
func (c *Config) MarshalJSON() ([]byte, error) {
	result := make(map[string]any, len(c.unknownFields)+1)

	for k, v := range c.unknownFields {
		result[k] = v
	}

	targets := c.targets
	if targets == nil {
		targets = []target.Target{}
	}
	result[targetsKey] = targets

	return json.Marshal(result)
}

// UnmarshalJSON implements json.Unmarshaler, keeping fields other than
// targets for round-tripping.
func (c *Config) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	c.targets = nil
	if targetsData, ok := raw[targetsKey]; ok {
		if err := json.Unmarshal(targetsData, &c.targets); err != nil {
			return errors.Wrap(err, "decoding targets")
		}
		delete(raw, targetsKey)
	}

	c.unknownFields = nil
	if len(raw) > 0 {
		c.unknownFields = maps.Clone(raw)
	}

	return nil
}
