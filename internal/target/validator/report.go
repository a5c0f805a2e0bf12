package validator

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/fatih/color"
)

// Format specifies the output format for validation reports.
type Format string

const (
	// FormatText produces human-readable text output.
	FormatText Format = "text"
	// FormatJSON produces machine-readable JSON output.
	FormatJSON Format = "json"
)

// Reporter formats and writes validation issues.
type Reporter struct {
	out    io.Writer
	format Format
}

// NewReporter creates a new Reporter.
func NewReporter(out io.Writer, format Format) *Reporter {
	return &Reporter{
		out:    out,
		format: format,
	}
}

// Issue is the JSON form of a ValidationError.
type Issue struct {
	Target   string `json:"target,omitempty"`
	Field    string `json:"field,omitempty"`
	Severity string `json:"severity"`
	Message  string `json:"message"`
}

// Issues converts validation results to their JSON form. The result is
// never nil so it encodes as [].
func Issues(errs []*ValidationError) []Issue {
	out := make([]Issue, len(errs))
	for i, e := range errs {
		out[i] = Issue{
			Target:   e.TargetName,
			Field:    e.Field,
			Severity: e.Severity.String(),
			Message:  e.Message,
		}
	}
	return out
}

// Report writes issues to the output. Nothing is written for no issues in
// text format.
func (r *Reporter) Report(issues []*ValidationError) error {
	switch r.format {
	case FormatJSON:
		return r.reportJSON(issues)
	default:
		r.reportText(issues)
		return nil
	}
}

func (r *Reporter) reportJSON(issues []*ValidationError) error {
	encoder := json.NewEncoder(r.out)
	encoder.SetIndent("", "  ")
	return errors.Wrap(encoder.Encode(Issues(issues)), "encoding JSON report")
}

func (r *Reporter) reportText(issues []*ValidationError) {
	errs := Errors(issues)
	warnings := Warnings(issues)
	if len(errs) == 0 && len(warnings) == 0 {
		return
	}

	for _, issue := range errs {
		r.printIssue(issue, color.FgRed)
	}
	for _, issue := range warnings {
		r.printIssue(issue, color.FgYellow)
	}
}

// printIssue writes one line:  • severity target.field: message
func (r *Reporter) printIssue(i *ValidationError, c color.Attribute) {
	printer := color.New(c).SprintFunc()

	var sb strings.Builder
	sb.WriteString("  • ")
	sb.WriteString(printer(i.Severity.String()))
	sb.WriteString(" ")

	var where []string
	if i.TargetName != "" {
		where = append(where, i.TargetName)
	}
	if i.Field != "" {
		where = append(where, i.Field)
	}
	if len(where) > 0 {
		sb.WriteString(strings.Join(where, "."))
		sb.WriteString(": ")
	}
	sb.WriteString(i.Message)

	fmt.Fprintln(r.out, sb.String())
}
