package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/dapic/internal/ui/pretty"
	"github.com/yaklabco/dapic/pkg/analysis"
)

// TextRenderer formats a report as styled terminal output.
type TextRenderer struct {
	opts    Options
	styles  *pretty.Styles
	snippet pretty.SnippetOptions
	bw      *bufio.Writer
}

// NewTextRenderer creates a new text renderer.
func NewTextRenderer(opts Options) *TextRenderer {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	width := opts.Width
	if width <= 0 {
		width = pretty.TerminalWidth(opts.Writer)
	}
	return &TextRenderer{
		opts:    opts,
		styles:  pretty.NewStyles(colorEnabled),
		snippet: pretty.SnippetOptions{ShowContext: opts.ShowContext, Width: width},
		bw:      bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Render implements Renderer.
func (r *TextRenderer) Render(_ context.Context, report *analysis.Report) (err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if report.Totals.Files == 0 {
		if r.opts.ShowSummary {
			fmt.Fprintln(r.bw, r.styles.Success.Render("No files to check."))
		}
		return nil
	}

	switch {
	case r.opts.Streamed:
	case r.opts.GroupByFile:
		r.renderGrouped(report)
	default:
		for _, entry := range report.Diagnostics {
			fmt.Fprintln(r.bw, r.styles.FormatDiagnostic(entry, r.snippet))
		}
	}

	for _, failure := range report.Failures {
		fmt.Fprintf(r.bw, "%s: %s\n",
			r.styles.FilePath.Render(failure.Path),
			r.styles.Error.Render("error: "+failure.Error),
		)
	}

	if r.opts.ShowSummary {
		fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(report.Totals))
	}

	return nil
}

// renderGrouped writes a header per file followed by its diagnostics.
// Report.Diagnostics is already ordered by file.
func (r *TextRenderer) renderGrouped(report *analysis.Report) {
	counts := make(map[string]int)
	for _, entry := range report.Diagnostics {
		counts[entry.FilePath]++
	}

	current := ""
	for i, entry := range report.Diagnostics {
		if i == 0 || entry.FilePath != current {
			current = entry.FilePath
			fmt.Fprintln(r.bw, r.styles.FormatFileHeader(current, counts[current]))
			fmt.Fprintln(r.bw)
		}
		fmt.Fprintln(r.bw, r.styles.FormatDiagnostic(entry, r.snippet))
	}
}
