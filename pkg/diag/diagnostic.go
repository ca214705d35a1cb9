package diag

import (
	"fmt"

	"github.com/yaklabco/dapic/pkg/source"
)

// Diagnostic is one problem found in source text. It implements error so
// parse functions can return it to abort the production being parsed.
type Diagnostic struct {
	Code     string
	Name     string
	Severity Severity
	Message  string

	// Span is the primary location.
	Span source.Span

	// Label is shown next to the caret under Span.
	Label string

	// Help is an optional suggestion shown after the snippet.
	Help string

	Notes []string
}

// New starts a diagnostic of the given code at span. Chain the With
// methods to add detail.
func New(code Code, span source.Span, format string, args ...any) *Diagnostic {
	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}
	return &Diagnostic{
		Code:     code.ID,
		Name:     code.Name,
		Severity: code.Severity,
		Message:  msg,
		Span:     span,
	}
}

// WithLabel sets the text shown under the primary span.
func (d *Diagnostic) WithLabel(format string, args ...any) *Diagnostic {
	d.Label = sprintf(format, args)
	return d
}

// WithHelp sets a suggestion.
func (d *Diagnostic) WithHelp(format string, args ...any) *Diagnostic {
	d.Help = sprintf(format, args)
	return d
}

// WithNote appends a note.
func (d *Diagnostic) WithNote(format string, args ...any) *Diagnostic {
	d.Notes = append(d.Notes, sprintf(format, args))
	return d
}

// WithSeverity overrides the code's default severity.
func (d *Diagnostic) WithSeverity(sev Severity) *Diagnostic {
	d.Severity = sev
	return d
}

func (d *Diagnostic) Error() string {
	return fmt.Sprintf("%s[%s]: %s", d.Severity, d.Code, d.Message)
}

// IsError reports whether the diagnostic has error severity.
func (d *Diagnostic) IsError() bool { return d.Severity == SeverityError }

func sprintf(format string, args []any) string {
	if len(args) == 0 {
		return format
	}
	return fmt.Sprintf(format, args...)
}
