package pretty

import (
	"strconv"
	"strings"

	"github.com/yaklabco/dapic/pkg/analysis"
)

const summaryDividerWidth = 40

// FormatSummaryOneLine formats run totals as a single line.
// Example: "3 issues (1 error, 2 warnings) in 2 files".
func (s *Styles) FormatSummaryOneLine(totals analysis.Totals) string {
	if totals.Issues == 0 {
		msg := s.Success.Render("No issues found") +
			s.Dim.Render(" ("+plural(totals.Files, "file", "files")+" checked)")
		if totals.FilesUnreadable > 0 {
			msg += ", " + s.Failure.Render(plural(totals.FilesUnreadable, "file", "files")+" unreadable")
		}
		return msg + "\n"
	}

	var severityParts []string
	if totals.Errors > 0 {
		severityParts = append(severityParts, s.Error.Render(plural(totals.Errors, "error", "errors")))
	}
	if totals.Warnings > 0 {
		severityParts = append(severityParts, s.Warning.Render(plural(totals.Warnings, "warning", "warnings")))
	}
	if totals.Advice > 0 {
		severityParts = append(severityParts, s.Advice.Render(strconv.Itoa(totals.Advice)+" advice"))
	}

	line := plural(totals.Issues, "issue", "issues")
	if len(severityParts) > 0 {
		line += " (" + strings.Join(severityParts, ", ") + ")"
	}
	parts := []string{line + " in " + plural(totals.FilesWithIssues, "file", "files")}

	if totals.FilesUnreadable > 0 {
		parts = append(parts, s.Failure.Render(plural(totals.FilesUnreadable, "file", "files")+" unreadable"))
	}
	if totals.Suppressed > 0 {
		parts = append(parts, s.Dim.Render(strconv.Itoa(totals.Suppressed)+" suppressed"))
	}

	return strings.Join(parts, ", ") + "\n"
}

// FormatSummary formats run totals as a summary block.
func (s *Styles) FormatSummary(totals analysis.Totals) string {
	var builder strings.Builder

	builder.WriteString("\n")
	builder.WriteString(s.SummaryTitle.Render("Summary"))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth))
	builder.WriteString("\n")

	builder.WriteString("  Files checked:     " +
		s.SummaryValue.Render(strconv.Itoa(totals.Files)) + "\n")

	if totals.FilesWithIssues > 0 {
		builder.WriteString("  Files with issues: " +
			s.Failure.Render(strconv.Itoa(totals.FilesWithIssues)) + "\n")
	}
	if totals.FilesWithErrors > 0 {
		builder.WriteString("  Files not parsed:  " +
			s.Failure.Render(strconv.Itoa(totals.FilesWithErrors)) + "\n")
	}
	if totals.FilesUnreadable > 0 {
		builder.WriteString("  Files unreadable:  " +
			s.Failure.Render(strconv.Itoa(totals.FilesUnreadable)) + "\n")
	}

	builder.WriteString("\n")

	builder.WriteString("  Total issues:      " +
		s.SummaryValue.Render(strconv.Itoa(totals.Issues)) + "\n")

	if totals.Errors > 0 {
		builder.WriteString("    Errors:          " + s.Error.Render(strconv.Itoa(totals.Errors)) + "\n")
	}
	if totals.Warnings > 0 {
		builder.WriteString("    Warnings:        " + s.Warning.Render(strconv.Itoa(totals.Warnings)) + "\n")
	}
	if totals.Advice > 0 {
		builder.WriteString("    Advice:          " + s.Advice.Render(strconv.Itoa(totals.Advice)) + "\n")
	}
	if totals.Suppressed > 0 {
		builder.WriteString("    Suppressed:      " + s.Dim.Render(strconv.Itoa(totals.Suppressed)) + "\n")
	}

	builder.WriteString("\n")

	switch {
	case totals.HasErrors():
		builder.WriteString(s.Failure.Render("Check failed with errors"))
	case totals.Warnings > 0:
		builder.WriteString(s.Warning.Render("Check completed with warnings"))
	default:
		builder.WriteString(s.Success.Render("Check passed"))
	}
	builder.WriteString("\n")

	return builder.String()
}
