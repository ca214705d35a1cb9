package reporter

import (
	"io"
	"os"

	"github.com/yaklabco/dapic/pkg/config"
	"github.com/yaklabco/dapic/pkg/diag"
)

// bufWriterSize is the buffer the text and summary renderers write through.
const bufWriterSize = 64 << 10

// SummaryOrder picks which table the summary format prints first.
type SummaryOrder string

const (
	SummaryOrderCodes SummaryOrder = "codes"
	SummaryOrderFiles SummaryOrder = "files"
)

// Options configures New and NewRenderer.
type Options struct {
	Writer io.Writer
	Format Format

	// Color is a --color mode: auto, always or never.
	Color string

	// Width overrides terminal width detection when positive.
	Width int

	// Text format.
	ShowContext bool // source snippet under each diagnostic
	ShowSummary bool // totals after the diagnostics
	GroupByFile bool // one header per file

	// Streamed means a Stream already wrote the diagnostics, so the text
	// format prints only failures and the summary.
	Streamed bool

	// Compact disables indentation in JSON and SARIF.
	Compact bool

	SummaryOrder SummaryOrder

	// MinSeverity hides less severe diagnostics. Empty shows all.
	MinSeverity diag.Severity

	CodeFormat config.CodeFormat

	// WorkingDir makes reported paths relative when set.
	WorkingDir string

	// ToolVersion is the driver version in SARIF output.
	ToolVersion string
}

// DefaultOptions writes grouped text with snippets and a summary to stdout.
func DefaultOptions() Options {
	return Options{
		Writer:       os.Stdout,
		Format:       FormatText,
		Color:        "auto",
		ShowContext:  true,
		ShowSummary:  true,
		GroupByFile:  true,
		SummaryOrder: SummaryOrderCodes,
		CodeFormat:   config.CodeFormatID,
	}
}
