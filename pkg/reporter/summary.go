package reporter

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/yaklabco/dapic/internal/ui/pretty"
	"github.com/yaklabco/dapic/pkg/analysis"
)

// SummaryRenderer formats a report as per-code and per-file tables.
type SummaryRenderer struct {
	opts   Options
	styles *pretty.Styles
	width  int
	out    io.Writer
}

// NewSummaryRenderer creates a new summary renderer.
func NewSummaryRenderer(opts Options) *SummaryRenderer {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	width := opts.Width
	if width <= 0 {
		width = pretty.TerminalWidth(opts.Writer)
	}
	return &SummaryRenderer{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		width:  width,
		out:    opts.Writer,
	}
}

// Render implements Renderer.
func (r *SummaryRenderer) Render(_ context.Context, report *analysis.Report) error {
	if report.Totals.Issues == 0 && len(report.Failures) == 0 {
		fmt.Fprint(r.out, r.styles.FormatSummaryOneLine(report.Totals))
		return nil
	}

	tables := []func(){
		func() { r.renderCodeTable(report.ByCode) },
		func() { r.renderFileTable(report.ByFile, report.Failures) },
	}
	if r.opts.SummaryOrder == SummaryOrderFiles {
		tables[0], tables[1] = tables[1], tables[0]
	}
	for _, render := range tables {
		render()
	}

	fmt.Fprint(r.out, r.styles.Bold.Render("Total: ")+r.styles.FormatSummaryOneLine(report.Totals))
	return nil
}

func (r *SummaryRenderer) renderCodeTable(codes []analysis.CodeAnalysis) {
	if len(codes) == 0 {
		return
	}

	table := pretty.NewTable(r.styles, r.width,
		pretty.Column{Header: "Code"},
		pretty.Column{Header: "Name", Flex: true},
		pretty.Column{Header: "Count"},
		pretty.Column{Header: "Errors"},
		pretty.Column{Header: "Warnings"},
		pretty.Column{Header: "Advice"},
	)
	for _, code := range codes {
		table.AddRow(rowSeverity(code.Errors, code.Warnings, code.Advice),
			code.Code, code.Name,
			strconv.Itoa(code.Issues), strconv.Itoa(code.Errors),
			strconv.Itoa(code.Warnings), strconv.Itoa(code.Advice))
	}

	fmt.Fprintln(r.out, r.styles.Bold.Render("Codes Summary"))
	fmt.Fprintln(r.out, table.Render())
}

func (r *SummaryRenderer) renderFileTable(files []analysis.FileAnalysis, failures []analysis.FileFailure) {
	if len(files) == 0 && len(failures) == 0 {
		return
	}

	table := pretty.NewTable(r.styles, r.width,
		pretty.Column{Header: "File", Flex: true, KeepTail: true},
		pretty.Column{Header: "Count"},
		pretty.Column{Header: "Errors"},
		pretty.Column{Header: "Warnings"},
		pretty.Column{Header: "Parsed"},
	)
	for _, file := range files {
		parsed := "yes"
		if !file.Parsed {
			parsed = "no"
		}
		table.AddRow(rowSeverity(file.Errors, file.Warnings, file.Advice),
			file.Path, strconv.Itoa(file.Issues), strconv.Itoa(file.Errors),
			strconv.Itoa(file.Warnings), parsed)
	}
	for _, failure := range failures {
		table.AddRow("error", failure.Path, "-", "-", "-", "unreadable")
	}

	fmt.Fprintln(r.out, r.styles.Bold.Render("Files Summary"))
	fmt.Fprintln(r.out, table.Render())
}

func rowSeverity(errors, warnings, advice int) string {
	switch {
	case errors > 0:
		return "error"
	case warnings > 0:
		return "warning"
	case advice > 0:
		return "advice"
	default:
		return ""
	}
}
