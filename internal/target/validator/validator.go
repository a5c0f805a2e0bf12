package validator

import (
	"slices"
	"strconv"
	"strings"

	"github.com/mcp-proxy/mcp-proxy/internal/target"
)

// Option configures a Validator.
type Option func(*Validator)

// Validator validates target drafts and accumulated targets.
type Validator struct {
	// strictNames reports duplicate names as errors instead of warnings.
	// Default is false: name uniqueness is advisory.
	strictNames bool
}

// New creates a new Validator with the given options.
func New(opts ...Option) *Validator {
	v := &Validator{}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// WithStrictNames makes duplicate target names a blocking error.
func WithStrictNames(strict bool) Option {
	return func(v *Validator) {
		v.strictNames = strict
	}
}

// Validate checks a draft against the field rules of kind.
//
// existing holds the targets already accumulated; a name clash with one of
// them is reported as a warning unless WithStrictNames is set. Returns nil
// when the draft is clean. Use [HasErrors] to decide whether to submit.
func (v *Validator) Validate(kind target.Kind, d *target.Draft, existing []target.Target) []*ValidationError {
	if d == nil {
		return []*ValidationError{{
			Message:  "draft is nil",
			Severity: SeverityError,
		}}
	}

	var errs []*ValidationError
	name := strings.TrimSpace(d.Name)

	if name == "" {
		errs = append(errs, &ValidationError{
			Field:    "name",
			Message:  "target name is required",
			Severity: SeverityError,
			Err:      ErrMissingName,
		})
	} else if slices.ContainsFunc(existing, func(t target.Target) bool { return t.Name == name }) {
		errs = append(errs, v.duplicate(name))
	}

	if !kind.Valid() {
		errs = append(errs, &ValidationError{
			TargetName: name,
			Field:      "kind",
			Message:    "kind must be one of stdio, sse, openapi, a2a; got " + strconv.Quote(string(kind)),
			Severity:   SeverityError,
			Err:        ErrUnknownKind,
		})
		return errs
	}

	if d.Category != "" && !slices.Contains(d.Category.Kinds(), kind) {
		errs = append(errs, &ValidationError{
			TargetName: name,
			Field:      "kind",
			Message:    string(kind) + " targets cannot be registered as " + string(d.Category),
			Severity:   SeverityError,
			Err:        ErrCategoryMismatch,
		})
	}

	switch kind {
	case target.KindStdio:
		errs = append(errs, checkCommand(name, d.Cmd)...)
	case target.KindSSE, target.KindA2A:
		errs = append(errs, checkHost(name, d.Host)...)
		errs = append(errs, checkPortText(name, d.Port)...)
		errs = append(errs, checkPath(name, d.Path)...)
	case target.KindOpenAPI:
		errs = append(errs, checkHost(name, d.Host)...)
		errs = append(errs, checkPortText(name, d.Port)...)
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// ValidateTargets checks targets that were already accumulated or loaded
// from a document. Inconsistent shapes are warnings, since Classify resolves
// them; missing fields of the classified variant are errors.
func (v *Validator) ValidateTargets(targets []target.Target) []*ValidationError {
	var errs []*ValidationError
	seen := make(map[string]bool, len(targets))

	for i, t := range targets {
		label := t.Name
		if label == "" {
			label = "#" + strconv.Itoa(i)
			errs = append(errs, &ValidationError{
				TargetName: label,
				Field:      "name",
				Message:    "target name is required",
				Severity:   SeverityError,
				Err:        ErrMissingName,
			})
		} else if seen[t.Name] {
			errs = append(errs, v.duplicate(t.Name))
		}
		seen[t.Name] = true

		errs = append(errs, checkShape(label, t)...)

		switch s := t.Spec().(type) {
		case target.StdioSpec:
			errs = append(errs, checkCommand(label, s.Cmd)...)
		case target.SSESpec:
			if t.SSE == nil {
				// inconclusive shape, already reported
				continue
			}
			errs = append(errs, checkHost(label, s.Host)...)
			errs = append(errs, checkPort(label, s.Port)...)
			errs = append(errs, checkPath(label, s.Path)...)
		case target.OpenAPISpec:
			errs = append(errs, checkHost(label, s.Host)...)
			errs = append(errs, checkPort(label, s.Port)...)
		case target.A2ASpec:
			errs = append(errs, checkHost(label, s.Host)...)
			errs = append(errs, checkPort(label, s.Port)...)
			errs = append(errs, checkPath(label, s.Path)...)
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

func (v *Validator) duplicate(name string) *ValidationError {
	severity := SeverityWarning
	if v.strictNames {
		severity = SeverityError
	}
	return &ValidationError{
		TargetName: name,
		Field:      "name",
		Message:    "another target is already named " + strconv.Quote(name),
		Severity:   severity,
		Err:        ErrDuplicateName,
	}
}

func checkShape(name string, t target.Target) []*ValidationError {
	populated := t.Populated()
	switch len(populated) {
	case 1:
		return nil
	case 0:
		return []*ValidationError{{
			TargetName: name,
			Message:    "no variant populated; treated as " + string(target.DefaultKind),
			Severity:   SeverityWarning,
			Err:        ErrInconsistentShape,
		}}
	default:
		kinds := make([]string, len(populated))
		for i, k := range populated {
			kinds[i] = string(k)
		}
		return []*ValidationError{{
			TargetName: name,
			Message:    "several variants populated (" + strings.Join(kinds, ", ") + "); using " + kinds[0],
			Severity:   SeverityWarning,
			Err:        ErrInconsistentShape,
		}}
	}
}

func checkCommand(name, cmd string) []*ValidationError {
	if strings.TrimSpace(cmd) != "" {
		return nil
	}
	return []*ValidationError{{
		TargetName: name,
		Field:      "cmd",
		Message:    "stdio target requires cmd",
		Severity:   SeverityError,
		Err:        ErrMissingCommand,
	}}
}

func checkHost(name, host string) []*ValidationError {
	if strings.TrimSpace(host) != "" {
		return nil
	}
	return []*ValidationError{{
		TargetName: name,
		Field:      "host",
		Message:    "host is required",
		Severity:   SeverityError,
		Err:        ErrMissingHost,
	}}
}

func checkPath(name, path string) []*ValidationError {
	if strings.TrimSpace(path) != "" {
		return nil
	}
	return []*ValidationError{{
		TargetName: name,
		Field:      "path",
		Message:    "path is required",
		Severity:   SeverityError,
		Err:        ErrMissingPath,
	}}
}

func checkPortText(name, port string) []*ValidationError {
	if _, ok := target.ParsePort(port); ok {
		return nil
	}
	return []*ValidationError{invalidPort(name, strconv.Quote(port))}
}

func checkPort(name string, port int) []*ValidationError {
	if port >= 1 && port <= 65535 {
		return nil
	}
	return []*ValidationError{invalidPort(name, strconv.Itoa(port))}
}

func invalidPort(name, got string) *ValidationError {
	return &ValidationError{
		TargetName: name,
		Field:      "port",
		Message:    "port must be an integer between 1 and 65535; got " + got,
		Severity:   SeverityError,
		Err:        ErrInvalidPort,
	}
}
