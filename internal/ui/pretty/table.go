package pretty

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	tablePadding   = 2
	heavySeparator = "="
	minFlexWidth   = 12
)

// Column describes one table column.
type Column struct {
	Header string

	// MinWidth is the narrowest the column is drawn.
	MinWidth int

	// Flex columns give up width when the table is wider than the terminal.
	Flex bool

	// KeepTail truncates from the left, which suits file paths.
	KeepTail bool
}

type tableRow struct {
	cells    []string
	severity string
}

// Table renders rows of plain text in aligned, width-fitted columns.
// Rows tagged with a severity are drawn in that severity's row style.
type Table struct {
	styles  *Styles
	width   int
	columns []Column
	rows    []tableRow
}

// NewTable creates a table no wider than width. A width of 0 uses
// DefaultTermWidth.
func NewTable(styles *Styles, width int, columns ...Column) *Table {
	if width <= 0 {
		width = DefaultTermWidth
	}
	return &Table{styles: styles, width: width, columns: columns}
}

// AddRow appends a row. Missing cells are blank and extra cells are dropped.
func (t *Table) AddRow(severity string, cells ...string) {
	row := make([]string, len(t.columns))
	copy(row, cells)
	t.rows = append(t.rows, tableRow{cells: row, severity: severity})
}

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.rows) }

// Render draws the table. An empty table renders as "".
func (t *Table) Render() string {
	if len(t.rows) == 0 {
		return ""
	}

	widths := t.columnWidths()
	total := 0
	for _, w := range widths {
		total += w + tablePadding
	}

	var b strings.Builder
	headers := make([]string, len(t.columns))
	for i, c := range t.columns {
		headers[i] = c.Header
	}
	b.WriteString(t.styles.TableHeader.Render(t.line(headers, widths)))
	b.WriteString("\n")
	b.WriteString(t.styles.TableSeparator.Render(strings.Repeat(heavySeparator, total)))
	b.WriteString("\n")

	for _, row := range t.rows {
		b.WriteString(t.rowStyle(row.severity).Render(t.line(row.cells, widths)))
		b.WriteString("\n")
	}

	return b.String()
}

func (t *Table) line(cells []string, widths []int) string {
	var b strings.Builder
	for i, cell := range cells {
		if t.columns[i].KeepTail {
			cell = truncateHead(cell, widths[i])
		} else {
			cell = truncateString(cell, widths[i])
		}
		b.WriteString(" ")
		b.WriteString(cell)
		if i < len(cells)-1 {
			b.WriteString(strings.Repeat(" ", widths[i]-lipgloss.Width(cell)+1))
		}
	}
	return b.String()
}

// columnWidths sizes each column to its widest cell, then shrinks flex
// columns, widest first, until the table fits.
func (t *Table) columnWidths() []int {
	widths := make([]int, len(t.columns))
	for i, c := range t.columns {
		widths[i] = max(c.MinWidth, lipgloss.Width(c.Header))
	}
	for _, row := range t.rows {
		for i, cell := range row.cells {
			widths[i] = max(widths[i], lipgloss.Width(cell))
		}
	}

	total := 0
	for _, w := range widths {
		total += w + tablePadding
	}

	for total > t.width {
		widest := -1
		for i, c := range t.columns {
			if c.Flex && widths[i] > t.floor(i) && (widest < 0 || widths[i] > widths[widest]) {
				widest = i
			}
		}
		if widest < 0 {
			break
		}
		cut := min(total-t.width, widths[widest]-t.floor(widest))
		widths[widest] -= cut
		total -= cut
	}

	return widths
}

func (t *Table) floor(i int) int {
	c := t.columns[i]
	return max(c.MinWidth, lipgloss.Width(c.Header), minFlexWidth)
}

func (t *Table) rowStyle(severity string) lipgloss.Style {
	switch severity {
	case "error":
		return t.styles.TableErrorRow
	case "warning":
		return t.styles.TableWarnRow
	case "advice":
		return t.styles.TableAdviceRow
	default:
		return lipgloss.NewStyle()
	}
}

// truncateString cuts str to maxLen runes, ending in "..." when cut.
func truncateString(str string, maxLen int) string {
	runes := []rune(str)
	if len(runes) <= maxLen {
		return str
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}

// truncateHead cuts str from the front, keeping the end (the file name of a path).
func truncateHead(str string, maxLen int) string {
	runes := []rune(str)
	if len(runes) <= maxLen {
		return str
	}
	if maxLen <= 3 {
		return string(runes[len(runes)-maxLen:])
	}
	return "..." + string(runes[len(runes)-maxLen+3:])
}
