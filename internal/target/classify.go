package target

// DefaultKind is returned by Classify when no variant group is populated.
// It means "inconclusive", not "this is an sse target".
const DefaultKind = KindSSE

// Classify derives a target's kind from its populated field groups.
//
// Groups are checked in priority order stdio, sse, openapi, a2a and the first
// populated one wins, so loosely-typed data with several groups still
// classifies deterministically. A target with no populated group yields
// DefaultKind rather than an error. Classify is pure.
func Classify(t Target) Kind {
	switch {
	case t.Stdio != nil:
		return KindStdio
	case t.SSE != nil:
		return KindSSE
	case t.OpenAPI != nil:
		return KindOpenAPI
	case t.A2A != nil:
		return KindA2A
	default:
		return DefaultKind
	}
}

// Spec is the typed variant of a classified target. Exactly one of
// StdioSpec, SSESpec, OpenAPISpec and A2ASpec implements it, so consumers
// switch on the concrete type instead of re-checking field presence.
type Spec interface {
	Kind() Kind
	isSpec()
}

// StdioSpec is the classified form of a stdio target.
type StdioSpec struct{ Stdio }

// SSESpec is the classified form of an sse target.
type SSESpec struct{ SSE }

// OpenAPISpec is the classified form of an openapi target.
type OpenAPISpec struct{ OpenAPI }

// A2ASpec is the classified form of an a2a target.
type A2ASpec struct{ A2A }

func (StdioSpec) Kind() Kind   { return KindStdio }
func (SSESpec) Kind() Kind     { return KindSSE }
func (OpenAPISpec) Kind() Kind { return KindOpenAPI }
func (A2ASpec) Kind() Kind     { return KindA2A }

func (StdioSpec) isSpec()   {}
func (SSESpec) isSpec()     {}
func (OpenAPISpec) isSpec() {}
func (A2ASpec) isSpec()     {}

// Spec classifies t and returns the matching typed variant. Lower-priority
// groups are ignored. An inconclusive target yields a zero SSESpec.
func (t Target) Spec() Spec {
	switch Classify(t) {
	case KindStdio:
		return StdioSpec{*t.Stdio}
	case KindOpenAPI:
		return OpenAPISpec{*t.OpenAPI}
	case KindA2A:
		return A2ASpec{*t.A2A}
	default:
		if t.SSE == nil {
			return SSESpec{}
		}
		return SSESpec{*t.SSE}
	}
}

// FromSpec builds a well-formed target carrying only the given variant.
func FromSpec(name string, spec Spec) Target {
	t := Target{Name: name}
	switch s := spec.(type) {
	case StdioSpec:
		v := s.Stdio
		v.Args = append([]string(nil), s.Args...)
		t.Stdio = &v
	case SSESpec:
		v := s.SSE
		t.SSE = &v
	case OpenAPISpec:
		v := s.OpenAPI
		t.OpenAPI = &v
	case A2ASpec:
		v := s.A2A
		t.A2A = &v
	}
	return t
}

// Normalize returns a copy of t with only its classified group kept.
// Inconclusive targets are returned unchanged apart from the copy.
func Normalize(t Target) Target {
	if len(t.Populated()) == 0 {
		return Target{Name: t.Name}
	}
	return FromSpec(t.Name, t.Spec())
}
