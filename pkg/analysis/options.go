package analysis

import (
	"github.com/yaklabco/dapic/pkg/config"
	"github.com/yaklabco/dapic/pkg/diag"
)

// SortField orders the by-file and by-code views.
type SortField string

const (
	SortByCount    SortField = "count"    // most issues first
	SortByAlpha    SortField = "alpha"    // path or code
	SortBySeverity SortField = "severity" // most errors, then most warnings
)

// IsValid reports whether s is a known sort field.
func (s SortField) IsValid() bool {
	return s == SortByCount || s == SortByAlpha || s == SortBySeverity
}

// Options selects what Analyze builds.
type Options struct {
	IncludeDiagnostics bool
	IncludeByFile      bool
	IncludeByCode      bool

	SortBy   SortField
	SortDesc bool

	// MinSeverity drops less severe diagnostics from the report; they are
	// counted in Totals.Hidden. Empty keeps everything.
	MinSeverity diag.Severity

	// CodeFormat is applied to DiagnosticEntry.Display.
	CodeFormat config.CodeFormat

	// WorkingDir makes reported paths relative. Empty keeps them as given.
	WorkingDir string
}

// DefaultOptions builds every view, sorted by count.
func DefaultOptions() Options {
	return Options{
		IncludeDiagnostics: true,
		IncludeByFile:      true,
		IncludeByCode:      true,
		SortBy:             SortByCount,
		SortDesc:           true,
		CodeFormat:         config.CodeFormatID,
	}
}

func (o Options) shows(sev diag.Severity) bool {
	return o.MinSeverity == "" || sev.Rank() >= o.MinSeverity.Rank()
}
