package target

import (
	"strconv"
	"strings"
)

// Kind identifies which variant of a Target is populated.
type Kind string

// Target kinds, listed in classification priority order.
const (
	// KindStdio is a local process spoken to over stdin/stdout.
	KindStdio Kind = "stdio"

	// KindSSE is a remote MCP server reached over Server-Sent Events.
	KindSSE Kind = "sse"

	// KindOpenAPI is an HTTP service described by an OpenAPI document.
	KindOpenAPI Kind = "openapi"

	// KindA2A is an agent-to-agent endpoint.
	KindA2A Kind = "a2a"
)

// Kinds returns every kind in classification priority order.
func Kinds() []Kind {
	return []Kind{KindStdio, KindSSE, KindOpenAPI, KindA2A}
}

// Valid reports whether k is one of the four known kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindStdio, KindSSE, KindOpenAPI, KindA2A:
		return true
	}
	return false
}

// Category returns the registration category a kind belongs to.
func (k Kind) Category() Category {
	if k == KindA2A {
		return CategoryA2A
	}
	return CategoryMCP
}

// Category is the operator's choice between registering an MCP target and an
// A2A target. It selects the registration operation and is authoritative at
// creation time, independent of what Classify later infers.
type Category string

// Registration categories.
const (
	CategoryMCP Category = "mcp"
	CategoryA2A Category = "a2a"
)

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	return c == CategoryMCP || c == CategoryA2A
}

// Kinds returns the kinds that can be created under c.
func (c Category) Kinds() []Kind {
	switch c {
	case CategoryMCP:
		return []Kind{KindStdio, KindSSE, KindOpenAPI}
	case CategoryA2A:
		return []Kind{KindA2A}
	}
	return nil
}

// Target is a downstream endpoint the proxy forwards requests to.
//
// Exactly one of Stdio, SSE, OpenAPI or A2A is expected to be set. The
// persisted form carries no explicit discriminant; use [Classify] to derive
// the kind and [Target.Spec] to obtain the typed variant.
type Target struct {
	Name    string   `json:"name" yaml:"name" toml:"name"`
	Stdio   *Stdio   `json:"stdio,omitempty" yaml:"stdio,omitempty" toml:"stdio,omitempty"`
	SSE     *SSE     `json:"sse,omitempty" yaml:"sse,omitempty" toml:"sse,omitempty"`
	OpenAPI *OpenAPI `json:"openapi,omitempty" yaml:"openapi,omitempty" toml:"openapi,omitempty"`
	A2A     *A2A     `json:"a2a,omitempty" yaml:"a2a,omitempty" toml:"a2a,omitempty"`
}

// Stdio launches Cmd with Args and speaks MCP over its standard streams.
type Stdio struct {
	Cmd  string   `json:"cmd" yaml:"cmd" toml:"cmd"`
	Args []string `json:"args,omitempty" yaml:"args,omitempty" toml:"args,omitempty"`
}

// SSE is an MCP server reachable at http://Host:Port/Path.
type SSE struct {
	Host string `json:"host" yaml:"host" toml:"host"`
	Port int    `json:"port" yaml:"port" toml:"port"`
	Path string `json:"path" yaml:"path" toml:"path"`
}

// OpenAPI is an HTTP service at Host:Port.
type OpenAPI struct {
	Host string `json:"host" yaml:"host" toml:"host"`
	Port int    `json:"port" yaml:"port" toml:"port"`
}

// A2A is an agent-to-agent endpoint at http://Host:Port/Path.
type A2A struct {
	Host string `json:"host" yaml:"host" toml:"host"`
	Port int    `json:"port" yaml:"port" toml:"port"`
	Path string `json:"path" yaml:"path" toml:"path"`
}

// Populated lists the populated variant groups in priority order.
// A well-formed target yields exactly one entry.
func (t Target) Populated() []Kind {
	var kinds []Kind
	if t.Stdio != nil {
		kinds = append(kinds, KindStdio)
	}
	if t.SSE != nil {
		kinds = append(kinds, KindSSE)
	}
	if t.OpenAPI != nil {
		kinds = append(kinds, KindOpenAPI)
	}
	if t.A2A != nil {
		kinds = append(kinds, KindA2A)
	}
	return kinds
}

// WellFormed reports whether exactly one variant group is populated.
func (t Target) WellFormed() bool {
	return len(t.Populated()) == 1
}

// Endpoint renders the one-line destination summary shown next to a target:
// "host:port/path" for sse and a2a, "host:port" for openapi and
// "cmd arg..." for stdio.
// Targets with no populated group render as "".
func (t Target) Endpoint() string {
	if len(t.Populated()) == 0 {
		return ""
	}
	switch s := t.Spec().(type) {
	case StdioSpec:
		return strings.TrimSpace(s.Cmd + " " + strings.Join(s.Args, " "))
	case SSESpec:
		return hostPort(s.Host, s.Port) + s.Path
	case OpenAPISpec:
		return hostPort(s.Host, s.Port)
	case A2ASpec:
		return hostPort(s.Host, s.Port) + s.Path
	}
	return ""
}

func hostPort(host string, port int) string {
	return host + ":" + strconv.Itoa(port)
}
