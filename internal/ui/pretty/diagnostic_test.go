package pretty_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/dapic/internal/ui/pretty"
	"github.com/yaklabco/dapic/pkg/analysis"
)

func typeEntry() analysis.DiagnosticEntry {
	return analysis.DiagnosticEntry{
		FilePath:    "api.dapi",
		Code:        "E0104",
		Name:        "expected-type",
		Severity:    "error",
		Message:     "we expected a type",
		StartLine:   2,
		StartColumn: 14,
		EndLine:     2,
		EndColumn:   15,
		Label:       "expected a type here",
		Help:        "h",
		Notes:       []string{"n"},
		SourceLine:  "model A { id 5 }",
	}
}

func TestFormatDiagnostic_Snippet(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	got := styles.FormatDiagnostic(typeEntry(), pretty.SnippetOptions{ShowContext: true})

	want := strings.Join([]string{
		"error[E0104]: we expected a type",
		" --> api.dapi:2:14",
		"  |",
		"2 | model A { id 5 }",
		"  |              ^ expected a type here",
		"  = help: h",
		"  = note: n",
		"",
	}, "\n")
	assert.Equal(t, want, got)
}

func TestFormatDiagnostic_WithoutContext(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	got := styles.FormatDiagnostic(typeEntry(), pretty.SnippetOptions{})

	assert.Contains(t, got, "api.dapi:2:14")
	assert.NotContains(t, got, "model A")
	assert.NotContains(t, got, "^")
	assert.Contains(t, got, "= help: h")
}

func TestFormatDiagnostic_DisplayCode(t *testing.T) {
	t.Parallel()

	entry := typeEntry()
	entry.Display = "E0104/expected-type"

	got := pretty.NewStyles(false).FormatDiagnostic(entry, pretty.SnippetOptions{})
	assert.True(t, strings.HasPrefix(got, "error[E0104/expected-type]: "))
}

func TestFormatDiagnostic_WideSpan(t *testing.T) {
	t.Parallel()

	entry := typeEntry()
	entry.SourceLine = "model Account { id u64 }"
	entry.StartLine = 12
	entry.StartColumn = 7
	entry.EndColumn = 14
	entry.Label = ""

	got := pretty.NewStyles(false).FormatDiagnostic(entry, pretty.SnippetOptions{ShowContext: true})

	assert.Contains(t, got, "  --> api.dapi:12:7\n")
	assert.Contains(t, got, "12 | model Account { id u64 }\n")
	assert.Contains(t, got, "   |       ^^^^^^^\n")
}

func TestFormatDiagnostic_Tabs(t *testing.T) {
	t.Parallel()

	entry := typeEntry()
	entry.SourceLine = "\tid 5"
	entry.StartColumn = 5
	entry.EndColumn = 6
	entry.Label = ""

	got := pretty.NewStyles(false).FormatDiagnostic(entry, pretty.SnippetOptions{ShowContext: true})

	assert.Contains(t, got, "2 |     id 5\n")
	assert.Contains(t, got, "  |        ^\n")
}

func TestFormatDiagnostic_MultiLineSpan(t *testing.T) {
	t.Parallel()

	entry := typeEntry()
	entry.SourceLine = "model A {"
	entry.StartColumn = 9
	entry.EndLine = 4
	entry.EndColumn = 2
	entry.Label = ""

	got := pretty.NewStyles(false).FormatDiagnostic(entry, pretty.SnippetOptions{ShowContext: true})
	assert.Contains(t, got, "  |         ^\n")
}

func TestFormatDiagnostic_ZeroWidthSpan(t *testing.T) {
	t.Parallel()

	entry := typeEntry()
	entry.StartColumn = 1
	entry.EndColumn = 1
	entry.Label = "here"

	got := pretty.NewStyles(false).FormatDiagnostic(entry, pretty.SnippetOptions{ShowContext: true})
	assert.Contains(t, got, "  | ^ here\n")
}

func TestFormatDiagnostic_ClipsLongLines(t *testing.T) {
	t.Parallel()

	entry := typeEntry()
	entry.SourceLine = strings.Repeat("a", 200) + " bad " + strings.Repeat("b", 200)
	entry.StartColumn = 202
	entry.EndColumn = 205
	entry.Label = ""

	got := pretty.NewStyles(false).FormatDiagnostic(entry, pretty.SnippetOptions{ShowContext: true, Width: 60})

	var source, marker string
	for line := range strings.SplitSeq(got, "\n") {
		switch {
		case strings.HasPrefix(line, "2 | "):
			source = strings.TrimPrefix(line, "2 | ")
		case strings.HasPrefix(line, "  | ") && strings.Contains(line, "^"):
			marker = strings.TrimPrefix(line, "  | ")
		}
	}

	assert.True(t, strings.HasPrefix(source, "…"))
	assert.True(t, strings.HasSuffix(source, "…"))
	assert.Less(t, len([]rune(source)), 60)

	col := strings.Index(marker, "^")
	assert.Equal(t, "bad", string([]rune(source)[col:col+3]))
	assert.Equal(t, "^^^", strings.TrimSpace(marker))
}

func TestFormatDiagnostic_NoPosition(t *testing.T) {
	t.Parallel()

	entry := analysis.DiagnosticEntry{
		FilePath: "gone.dapi",
		Code:     "E0002",
		Severity: "error",
		Message:  "boom",
	}

	got := pretty.NewStyles(false).FormatDiagnostic(entry, pretty.SnippetOptions{ShowContext: true})
	assert.Equal(t, "error[E0002]: boom\n --> gone.dapi\n", got)
}

func TestFormatSeverity(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	for _, sev := range []string{"error", "warning", "advice", "other"} {
		assert.Equal(t, sev, styles.FormatSeverity(sev))
	}
}

func TestFormatFileHeader(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)

	assert.Equal(t, "api.dapi (1 issue)", styles.FormatFileHeader("api.dapi", 1))
	assert.Equal(t, "api.dapi (3 issues)", styles.FormatFileHeader("api.dapi", 3))
	assert.Equal(t, "api.dapi", styles.FormatFileHeader("api.dapi", 0))
}
