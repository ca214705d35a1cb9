package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/dapic/pkg/analysis"
)

// JSONOutput is the top-level JSON structure.
type JSONOutput struct {
	Version string           `json:"version"`
	Files   []JSONFileResult `json:"files"`
	Codes   []JSONCodeCount  `json:"codes"`
	Summary analysis.Totals  `json:"summary"`
}

// JSONFileResult holds one file's diagnostics, or the error that kept it
// from being checked.
type JSONFileResult struct {
	Path        string                     `json:"path"`
	Diagnostics []analysis.DiagnosticEntry `json:"diagnostics"`
	Error       string                     `json:"error,omitempty"`
}

// JSONCodeCount is the per-code breakdown.
type JSONCodeCount struct {
	Code   string   `json:"code"`
	Name   string   `json:"name"`
	Issues int      `json:"issues"`
	Files  []string `json:"files"`
}

// JSONRenderer formats a report as JSON.
type JSONRenderer struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONRenderer creates a new JSON renderer.
func NewJSONRenderer(opts Options) *JSONRenderer {
	return &JSONRenderer{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Render implements Renderer.
func (r *JSONRenderer) Render(_ context.Context, report *analysis.Report) (err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	encoder := json.NewEncoder(r.bw)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}

	if err := encoder.Encode(buildJSONOutput(report)); err != nil {
		return fmt.Errorf("encode JSON: %w", err)
	}
	return nil
}

func buildJSONOutput(report *analysis.Report) *JSONOutput {
	output := &JSONOutput{
		Version: report.Version,
		Files:   make([]JSONFileResult, 0, len(report.ByFile)+len(report.Failures)),
		Codes:   make([]JSONCodeCount, 0, len(report.ByCode)),
		Summary: report.Totals,
	}

	index := make(map[string]int)
	for _, entry := range report.Diagnostics {
		i, ok := index[entry.FilePath]
		if !ok {
			i = len(output.Files)
			index[entry.FilePath] = i
			output.Files = append(output.Files, JSONFileResult{Path: entry.FilePath})
		}
		output.Files[i].Diagnostics = append(output.Files[i].Diagnostics, entry)
	}

	for _, failure := range report.Failures {
		output.Files = append(output.Files, JSONFileResult{
			Path:        failure.Path,
			Diagnostics: []analysis.DiagnosticEntry{},
			Error:       failure.Error,
		})
	}

	for _, code := range report.ByCode {
		output.Codes = append(output.Codes, JSONCodeCount{
			Code:   code.Code,
			Name:   code.Name,
			Issues: code.Issues,
			Files:  code.Files,
		})
	}

	return output
}
