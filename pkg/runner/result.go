package runner

import (
	"time"

	"github.com/yaklabco/dapic/pkg/ast"
	"github.com/yaklabco/dapic/pkg/diag"
	"github.com/yaklabco/dapic/pkg/session"
	"github.com/yaklabco/dapic/pkg/source"
)

// FileOutcome is the result of checking one file.
type FileOutcome struct {
	// Path is the absolute path that was checked.
	Path string

	// File is the registered source, nil if the file could not be read.
	File *source.File

	// Root is the syntax tree, nil if parsing failed.
	Root *ast.Root

	// Diagnostics are the diagnostics located in this file, in emission order.
	Diagnostics []*diag.Diagnostic

	// Lang is set when a file that failed to parse looks like another language.
	Lang string

	// Duration is the time spent reading and parsing.
	Duration time.Duration

	// Error is set if the file could not be read.
	Error error
}

// Parsed reports whether the file produced a syntax tree.
func (o FileOutcome) Parsed() bool { return o.Root != nil }

// Count returns the number of diagnostics of the given severity.
func (o FileOutcome) Count(sev diag.Severity) int {
	n := 0
	for _, d := range o.Diagnostics {
		if d.Severity == sev {
			n++
		}
	}
	return n
}

// Stats captures aggregate information about a run.
type Stats struct {
	// FilesDiscovered is the number of files found during discovery.
	FilesDiscovered int

	// FilesChecked is the number of files that were read and parsed.
	FilesChecked int

	// FilesErrored is the number of files that could not be read.
	FilesErrored int

	// FilesWithIssues is the number of files with at least one diagnostic.
	FilesWithIssues int

	// FilesWithErrors is the number of files that failed to parse or
	// carry an error diagnostic.
	FilesWithErrors int

	// DiagnosticsTotal is the number of diagnostics across all files.
	DiagnosticsTotal int

	// DiagnosticsBySeverity maps severity names to counts.
	DiagnosticsBySeverity map[string]int

	// Suppressed is the number of diagnostics dropped by configuration.
	Suppressed int

	// Duration is the wall time of the run.
	Duration time.Duration
}

// Result is the overall runner result.
type Result struct {
	// Files are ordered by path.
	Files []FileOutcome

	Stats Stats

	// Session is the session every file was checked in. Reporters use its
	// source map to resolve spans.
	Session *session.Session

	// Errors holds failures not tied to one file.
	Errors []error
}

// HasFailures reports whether any error diagnostic was emitted or any
// file could not be read.
func (r *Result) HasFailures() bool {
	if r == nil {
		return false
	}
	return r.Stats.DiagnosticsBySeverity[string(diag.SeverityError)] > 0 || r.Stats.FilesErrored > 0
}

// HasWarnings reports whether any warning was emitted.
func (r *Result) HasWarnings() bool {
	if r == nil {
		return false
	}
	return r.Stats.DiagnosticsBySeverity[string(diag.SeverityWarning)] > 0
}

// HasIssues reports whether any diagnostic was emitted.
func (r *Result) HasIssues() bool {
	if r == nil {
		return false
	}
	return r.Stats.DiagnosticsTotal > 0
}

func newStats() Stats {
	return Stats{DiagnosticsBySeverity: make(map[string]int)}
}

func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		r.Stats.FilesErrored++
		return
	}
	r.Stats.FilesChecked++

	n := len(outcome.Diagnostics)
	r.Stats.DiagnosticsTotal += n
	if n > 0 {
		r.Stats.FilesWithIssues++
	}
	if !outcome.Parsed() || outcome.Count(diag.SeverityError) > 0 {
		r.Stats.FilesWithErrors++
	}
	for _, d := range outcome.Diagnostics {
		r.Stats.DiagnosticsBySeverity[string(d.Severity)]++
	}
}
