package analysis

import "time"

// Report holds the views of a check run that every reporter renders from.
type Report struct {
	// Diagnostics is the flat list, ordered by file then emission.
	Diagnostics []DiagnosticEntry `json:"diagnostics,omitempty"`

	// ByFile groups diagnostics by file path.
	ByFile []FileAnalysis `json:"byFile,omitempty"`

	// ByCode groups diagnostics by diagnostic code.
	ByCode []CodeAnalysis `json:"byCode,omitempty"`

	// Failures lists files that could not be read.
	Failures []FileFailure `json:"failures,omitempty"`

	Totals Totals `json:"summary"`

	// Version is the report format version.
	Version string `json:"version"`

	Timestamp time.Time `json:"timestamp"`
}

// DiagnosticEntry is one diagnostic with its span resolved to lines and
// columns. Lines and columns are 1-based; zero means unknown.
type DiagnosticEntry struct {
	FilePath    string   `json:"filePath"`
	Code        string   `json:"code"`
	Name        string   `json:"name"`
	Display     string   `json:"-"`
	Severity    string   `json:"severity"`
	Message     string   `json:"message"`
	StartLine   int      `json:"startLine"`
	StartColumn int      `json:"startColumn"`
	EndLine     int      `json:"endLine"`
	EndColumn   int      `json:"endColumn"`
	Label       string   `json:"label,omitempty"`
	Help        string   `json:"help,omitempty"`
	Notes       []string `json:"notes,omitempty"`

	// SourceLine is the text of StartLine, used for snippets.
	SourceLine string `json:"-"`
}

// FileFailure is a file the run could not check.
type FileFailure struct {
	Path  string `json:"path"`
	Error string `json:"error"`
}

// Totals contains aggregate statistics for the report.
type Totals struct {
	Files           int `json:"filesChecked"`
	FilesWithIssues int `json:"filesWithIssues"`
	FilesWithErrors int `json:"filesWithErrors"`
	FilesUnreadable int `json:"filesUnreadable"`
	Issues          int `json:"totalIssues"`
	Errors          int `json:"errors"`
	Warnings        int `json:"warnings"`
	Advice          int `json:"advice"`
	Suppressed      int `json:"suppressed"`
	Hidden          int `json:"hidden,omitempty"`
}

// HasIssues returns true if there are any issues.
func (t Totals) HasIssues() bool {
	return t.Issues > 0
}

// HasErrors returns true if there are any errors.
func (t Totals) HasErrors() bool {
	return t.Errors > 0
}

// FileAnalysis contains aggregated data for a single file.
type FileAnalysis struct {
	Path     string   `json:"path"`
	Issues   int      `json:"issues"`
	Errors   int      `json:"errors"`
	Warnings int      `json:"warnings"`
	Advice   int      `json:"advice"`
	Parsed   bool     `json:"parsed"`
	Lang     string   `json:"lang,omitempty"`
	Codes    []string `json:"codes,omitempty"`
}

// CodeAnalysis contains aggregated data for a single diagnostic code.
type CodeAnalysis struct {
	Code     string   `json:"code"`
	Name     string   `json:"name"`
	Issues   int      `json:"issues"`
	Errors   int      `json:"errors"`
	Warnings int      `json:"warnings"`
	Advice   int      `json:"advice"`
	Files    []string `json:"files,omitempty"`
}
