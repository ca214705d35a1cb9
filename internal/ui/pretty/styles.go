// Package pretty renders diagnostics, tables and summaries for a terminal
// with lipgloss.
package pretty

import (
	"io"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"golang.org/x/term"
)

// DefaultTermWidth is used when the writer is not a terminal and COLUMNS
// is unset.
const DefaultTermWidth = 100

// ANSI palette indexes.
const (
	colorGray   = lipgloss.Color("8")
	colorRed    = lipgloss.Color("9")
	colorGreen  = lipgloss.Color("10")
	colorYellow = lipgloss.Color("11")
	colorBlue   = lipgloss.Color("12")
	colorCyan   = lipgloss.Color("14")
	colorWhite  = lipgloss.Color("7")
)

// Styles holds every style the CLI renders with. Without color each one is
// a no-op.
type Styles struct {
	Error   lipgloss.Style
	Warning lipgloss.Style
	Advice  lipgloss.Style

	// Diagnostic snippets.
	FilePath   lipgloss.Style
	Location   lipgloss.Style
	Code       lipgloss.Style
	Message    lipgloss.Style
	Label      lipgloss.Style
	Help       lipgloss.Style
	Note       lipgloss.Style
	SourceLine lipgloss.Style
	Gutter     lipgloss.Style
	Caret      lipgloss.Style

	SummaryTitle lipgloss.Style
	SummaryValue lipgloss.Style
	Success      lipgloss.Style
	Failure      lipgloss.Style

	TableHeader    lipgloss.Style
	TableSeparator lipgloss.Style
	TableErrorRow  lipgloss.Style
	TableWarnRow   lipgloss.Style
	TableAdviceRow lipgloss.Style

	Dim  lipgloss.Style
	Bold lipgloss.Style
}

// NewStyles returns the color styles, or plain ones when colorEnabled is
// false.
func NewStyles(colorEnabled bool) *Styles {
	base := lipgloss.NewStyle()
	fg := func(c lipgloss.Color) lipgloss.Style { return base.Foreground(c) }
	bold := base.Bold(true)

	if !colorEnabled {
		fg = func(lipgloss.Color) lipgloss.Style { return base }
		bold = base
	}

	return &Styles{
		Error:   fg(colorRed).Inherit(bold),
		Warning: fg(colorYellow).Inherit(bold),
		Advice:  fg(colorBlue).Inherit(bold),

		FilePath:   bold,
		Location:   fg(colorGray),
		Code:       fg(colorGray),
		Message:    bold,
		Label:      fg(colorRed),
		Help:       fg(colorGreen).Italic(colorEnabled),
		Note:       fg(colorCyan),
		SourceLine: fg(colorWhite),
		Gutter:     fg(colorBlue),
		Caret:      fg(colorRed).Inherit(bold),

		SummaryTitle: bold,
		SummaryValue: base,
		Success:      fg(colorGreen).Inherit(bold),
		Failure:      fg(colorRed).Inherit(bold),

		TableHeader:    fg(colorWhite).Inherit(bold),
		TableSeparator: fg(colorGray),
		TableErrorRow:  fg(colorRed),
		TableWarnRow:   fg(colorYellow),
		TableAdviceRow: fg(colorBlue),

		Dim:  fg(colorGray),
		Bold: bold,
	}
}

// IsColorEnabled resolves a --color mode for writer. "always" and "never"
// are absolute; anything else is auto, which needs a terminal and an empty
// NO_COLOR.
func IsColorEnabled(mode string, writer io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}

	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := writer.(*os.File)
	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}

// TerminalWidth returns the width of the terminal behind writer. A file
// that is not a terminal uses COLUMNS when set; anything else gets
// DefaultTermWidth.
func TerminalWidth(writer io.Writer) int {
	f, ok := writer.(*os.File)
	if !ok {
		return DefaultTermWidth
	}
	if width, _, err := term.GetSize(int(f.Fd())); err == nil && width > 0 {
		return width
	}
	if width, err := strconv.Atoi(os.Getenv("COLUMNS")); err == nil && width > 0 {
		return width
	}
	return DefaultTermWidth
}
