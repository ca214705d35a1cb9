// Package reporter writes the results of a check run as text, JSON, SARIF
// or a summary table.
package reporter

import (
	"context"
	"fmt"

	"github.com/yaklabco/dapic/pkg/analysis"
	"github.com/yaklabco/dapic/pkg/runner"
)

// Reporter writes a check run in one output format.
type Reporter interface {
	// Report writes result and returns the number of issues shown.
	Report(ctx context.Context, result *runner.Result) (int, error)
}

// Renderer writes an analyzed report in one output format.
type Renderer interface {
	Render(ctx context.Context, report *analysis.Report) error
}

var _ Reporter = (*analyzingReporter)(nil)

// analyzingReporter analyzes a result once and hands the report to a
// Renderer.
type analyzingReporter struct {
	renderer Renderer
	opts     analysis.Options
}

func (r *analyzingReporter) Report(ctx context.Context, result *runner.Result) (int, error) {
	report := analysis.Analyze(result, r.opts)
	if err := r.renderer.Render(ctx, report); err != nil {
		return 0, fmt.Errorf("render %d issues: %w", report.Totals.Issues, err)
	}
	return report.Totals.Issues, nil
}

// New returns the Reporter for opts.Format.
func New(opts Options) (Reporter, error) {
	renderer, err := NewRenderer(opts)
	if err != nil {
		return nil, err
	}

	analysisOpts := analysis.DefaultOptions()
	analysisOpts.MinSeverity = opts.MinSeverity
	analysisOpts.CodeFormat = opts.CodeFormat
	analysisOpts.WorkingDir = opts.WorkingDir

	return &analyzingReporter{renderer: renderer, opts: analysisOpts}, nil
}

// NewRenderer returns the Renderer for opts.Format. An empty format is
// text and a nil writer is stdout.
func NewRenderer(opts Options) (Renderer, error) {
	if opts.Writer == nil {
		opts.Writer = DefaultOptions().Writer
	}
	if opts.Format == "" {
		opts.Format = FormatText
	}

	switch opts.Format {
	case FormatText:
		return NewTextRenderer(opts), nil
	case FormatJSON:
		return NewJSONRenderer(opts), nil
	case FormatSARIF:
		return NewSARIFRenderer(opts), nil
	case FormatSummary:
		return NewSummaryRenderer(opts), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", opts.Format)
	}
}
