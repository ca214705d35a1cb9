// Package diag defines dapic's diagnostics: the registry of diagnostic
// codes, the Diagnostic value the lexer and parser produce, and the Handler
// that counts and forwards them.
package diag

import "fmt"

// Severity is the level of a diagnostic.
type Severity string

// Severity levels, most severe first.
const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityAdvice  Severity = "advice"
)

// ParseSeverity converts a string to a Severity.
func ParseSeverity(s string) (Severity, error) {
	switch Severity(s) {
	case SeverityError, SeverityWarning, SeverityAdvice:
		return Severity(s), nil
	default:
		return "", fmt.Errorf("invalid severity %q (valid: error, warning, advice)", s)
	}
}

// IsValid reports whether s is a known severity.
func (s Severity) IsValid() bool {
	_, err := ParseSeverity(string(s))
	return err == nil
}

// Rank orders severities; higher is more severe.
func (s Severity) Rank() int {
	switch s {
	case SeverityError:
		return 3
	case SeverityWarning:
		return 2
	case SeverityAdvice:
		return 1
	default:
		return 0
	}
}
