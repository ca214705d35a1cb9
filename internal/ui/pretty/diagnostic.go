package pretty

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"

	"github.com/yaklabco/dapic/pkg/analysis"
)

const (
	ellipsis = "…"
	tabWidth = 4
)

// SnippetOptions controls FormatDiagnostic.
type SnippetOptions struct {
	// ShowContext prints the source line with carets under the span.
	ShowContext bool

	// Width clips long source lines around the span. 0 disables clipping.
	Width int
}

// FormatDiagnostic renders one diagnostic in the compiler style:
//
//	error[E0104]: we expected a type but found a number literal `5`
//	 --> api.dapi:2:14
//	  |
//	2 | model A { id 5 }
//	  |              ^ expected a type here
//	  = help: ...
func (s *Styles) FormatDiagnostic(entry analysis.DiagnosticEntry, opts SnippetOptions) string {
	var b strings.Builder

	code := entry.Display
	if code == "" {
		code = entry.Code
	}
	b.WriteString(s.FormatSeverity(entry.Severity))
	b.WriteString(s.Code.Render("[" + code + "]"))
	b.WriteString(": ")
	b.WriteString(s.Message.Render(entry.Message))
	b.WriteString("\n")

	gutter := 1
	if entry.StartLine > 0 {
		gutter = len(strconv.Itoa(entry.StartLine))
	}
	pad := strings.Repeat(" ", gutter)

	location := s.FilePath.Render(entry.FilePath)
	if entry.StartLine > 0 {
		location += s.Location.Render(fmt.Sprintf(":%d:%d", entry.StartLine, entry.StartColumn))
	}
	b.WriteString(pad + s.Gutter.Render("--> ") + location + "\n")

	if opts.ShowContext && entry.StartLine > 0 {
		b.WriteString(s.snippet(entry, pad, opts.Width))
	}

	if entry.Help != "" {
		b.WriteString(pad + " " + s.Gutter.Render("=") + " " + s.Help.Render("help: "+entry.Help) + "\n")
	}
	for _, note := range entry.Notes {
		b.WriteString(pad + " " + s.Gutter.Render("=") + " " + s.Note.Render("note: "+note) + "\n")
	}

	return b.String()
}

func (s *Styles) snippet(entry analysis.DiagnosticEntry, pad string, width int) string {
	line := entry.SourceLine
	start := min(max(entry.StartColumn-1, 0), len(line))
	end := start
	if entry.EndLine == entry.StartLine && entry.EndColumn > entry.StartColumn {
		end = min(entry.EndColumn-1, len(line))
	} else if entry.EndLine > entry.StartLine {
		// Multi-line spans are underlined to the end of their first line.
		end = len(line)
	}

	if width > 0 {
		line, start, end = clipLine(line, start, end, width-len(pad)-3)
	}

	carets := max(displayWidth(line[start:end]), 1)
	marker := strings.Repeat(" ", displayWidth(line[:start])) + s.Caret.Render(strings.Repeat("^", carets))
	if entry.Label != "" {
		marker += " " + s.Label.Render(entry.Label)
	}

	bar := s.Gutter.Render("|")
	var b strings.Builder
	b.WriteString(pad + " " + bar + "\n")
	b.WriteString(s.Gutter.Render(strconv.Itoa(entry.StartLine)) + " " + bar + " " +
		s.SourceLine.Render(expandTabs(line)) + "\n")
	b.WriteString(pad + " " + bar + " " + marker + "\n")
	return b.String()
}

// clipLine keeps at most width bytes of line around [start, end) and
// returns the offsets moved into the clipped text.
func clipLine(line string, start, end, width int) (string, int, int) {
	if width <= 0 || len(line) <= width {
		return line, start, end
	}

	lo := max(start-width/3, 0)
	for lo > 0 && !utf8.RuneStart(line[lo]) {
		lo--
	}
	hi := min(lo+width, len(line))
	for hi < len(line) && !utf8.RuneStart(line[hi]) {
		hi--
	}

	clipped := line[lo:hi]
	shift := -lo
	if lo > 0 {
		clipped = ellipsis + clipped
		shift += len(ellipsis)
	}
	if hi < len(line) {
		clipped += ellipsis
	}

	start = min(start+shift, len(clipped))
	end = min(max(end+shift, start), len(clipped))
	return clipped, start, end
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", strings.Repeat(" ", tabWidth))
}

func displayWidth(s string) int {
	return lipgloss.Width(expandTabs(s))
}

// FormatSeverity returns a styled severity string.
func (s *Styles) FormatSeverity(sev string) string {
	switch sev {
	case "error":
		return s.Error.Render(sev)
	case "warning":
		return s.Warning.Render(sev)
	case "advice":
		return s.Advice.Render(sev)
	default:
		return sev
	}
}

// FormatFileHeader formats a file header for grouped output.
func (s *Styles) FormatFileHeader(path string, issueCount int) string {
	header := s.FilePath.Render(path)
	if issueCount > 0 {
		header += s.Dim.Render(" (" + plural(issueCount, "issue", "issues") + ")")
	}
	return header
}

func plural(n int, one, many string) string {
	if n == 1 {
		return "1 " + one
	}
	return strconv.Itoa(n) + " " + many
}
