package reporter

import (
	"fmt"
	"io"
	"path/filepath"
	"sync"

	"github.com/yaklabco/dapic/internal/ui/pretty"
	"github.com/yaklabco/dapic/pkg/analysis"
	"github.com/yaklabco/dapic/pkg/diag"
	"github.com/yaklabco/dapic/pkg/source"
)

var _ diag.Emitter = (*Stream)(nil)

// Stream writes diagnostics in the text format as the handler emits them.
// It is the Emitter of a session whose output should not wait for the run
// to finish. Stream is safe for concurrent use.
type Stream struct {
	opts    Options
	w       io.Writer
	styles  *pretty.Styles
	snippet pretty.SnippetOptions

	mu       sync.Mutex
	sm       *source.Map
	fallback string
	shown    int
}

// NewStream returns a Stream writing to opts.Writer. Format, grouping and
// summary options are ignored.
func NewStream(opts Options) *Stream {
	if opts.Writer == nil {
		opts.Writer = DefaultOptions().Writer
	}
	width := opts.Width
	if width <= 0 {
		width = pretty.TerminalWidth(opts.Writer)
	}
	return &Stream{
		opts:    opts,
		w:       opts.Writer,
		styles:  pretty.NewStyles(pretty.IsColorEnabled(opts.Color, opts.Writer)),
		snippet: pretty.SnippetOptions{ShowContext: opts.ShowContext, Width: width},
	}
}

// Bind sets the source map spans are resolved against and the path shown
// for diagnostics whose span lies in no real file.
func (s *Stream) Bind(sm *source.Map, fallback string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sm, s.fallback = sm, fallback
}

// Emit implements diag.Emitter.
func (s *Stream) Emit(d *diag.Diagnostic) {
	if s.opts.MinSeverity != "" && d.Severity.Rank() < s.opts.MinSeverity.Rank() {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entry := analysis.NewEntry(s.sm, s.path(d), d, s.opts.CodeFormat)
	fmt.Fprintln(s.w, s.styles.FormatDiagnostic(entry, s.snippet))
	s.shown++
}

// Shown returns the number of diagnostics written.
func (s *Stream) Shown() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.shown
}

func (s *Stream) path(d *diag.Diagnostic) string {
	if s.sm == nil || d.Span.IsDummy() {
		return s.fallback
	}
	file, ok := s.sm.LookupFile(d.Span.Lo)
	if !ok || !file.Name.IsReal() {
		return s.fallback
	}
	path := file.Name.Path()
	if s.opts.WorkingDir == "" {
		return path
	}
	if rel, err := filepath.Rel(s.opts.WorkingDir, path); err == nil {
		return rel
	}
	return path
}
