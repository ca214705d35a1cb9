package runner

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/yaklabco/dapic/internal/logging"
	"github.com/yaklabco/dapic/pkg/diag"
	"github.com/yaklabco/dapic/pkg/langdetect"
	"github.com/yaklabco/dapic/pkg/parser"
	"github.com/yaklabco/dapic/pkg/session"
	"github.com/yaklabco/dapic/pkg/source"
)

// Runner checks files in one session. All files share its source map,
// handler and the process-wide interner.
type Runner struct {
	Session *session.Session
}

// New returns a Runner for sess, or for a fresh default session if sess
// is nil.
func New(sess *session.Session) *Runner {
	if sess == nil {
		sess = session.Default()
	}
	return &Runner{Session: sess}
}

// Run discovers files and parses them concurrently, at most opts.Jobs at
// a time. Outcomes are ordered by path whatever order the files finish in.
// Diagnostics stream to the session's emitter as they are found.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	start := time.Now()
	logger := logging.FromContext(ctx)

	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}
	logger.Debug("discovered files", logging.FieldFilesDiscovered, len(files))

	result := &Result{
		Files:   make([]FileOutcome, 0, len(files)),
		Stats:   newStats(),
		Session: r.Session,
	}
	result.Stats.FilesDiscovered = len(files)

	if len(files) == 0 {
		return result, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	jobs = min(jobs, len(files))

	suppressedBefore := r.Session.Diag.SuppressedCount()

	outcomes := make([]FileOutcome, len(files))
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(jobs)

	for i, path := range files {
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err //nolint:wrapcheck // Reported once below.
			}
			outcomes[i] = r.checkFile(groupCtx, path, opts)
			return nil
		})
	}
	waitErr := group.Wait()

	byFile := r.diagnosticsByFile()
	for _, outcome := range outcomes {
		if outcome.Path == "" {
			// Never started because the run was cancelled.
			continue
		}
		if outcome.File != nil {
			outcome.Diagnostics = byFile[outcome.File]
		}
		result.accumulate(outcome)
	}

	result.Stats.Suppressed = r.Session.Diag.SuppressedCount() - suppressedBefore
	result.Stats.Duration = time.Since(start)

	logger.Debug("run finished",
		logging.FieldFilesChecked, result.Stats.FilesChecked,
		logging.FieldDiagnosticsTotal, result.Stats.DiagnosticsTotal,
		logging.FieldDuration, result.Stats.Duration,
	)

	if err := ctx.Err(); err != nil {
		return result, fmt.Errorf("run cancelled: %w", err)
	}
	if waitErr != nil {
		return result, fmt.Errorf("run: %w", waitErr)
	}
	return result, nil
}

// CheckFile reads and parses a single file in the runner's session.
func (r *Runner) CheckFile(ctx context.Context, path string, opts Options) FileOutcome {
	outcome := r.checkFile(ctx, path, opts)
	if outcome.File != nil {
		outcome.Diagnostics = r.diagnosticsByFile()[outcome.File]
	}
	return outcome
}

func (r *Runner) checkFile(ctx context.Context, path string, opts Options) FileOutcome {
	start := time.Now()
	ctx = logging.With(ctx, logging.FieldFile, path)
	logger := logging.FromContext(ctx)
	outcome := FileOutcome{Path: path}

	file, err := r.Session.SourceMap.LoadFile(ctx, path)
	if err != nil {
		logger.Warn("cannot read file", logging.FieldError, err)
		outcome.Error = err
		return outcome
	}
	outcome.File = file

	root, err := parser.Parse(r.Session, file)
	outcome.Root = root
	if err != nil {
		r.logAbort(ctx, err)
		if opts.Sniff {
			if lang := langdetect.Sniff(path, []byte(file.Src)); lang != "" {
				outcome.Lang = lang
				r.Session.Diag.Emit(foreignInput(file, lang))
			}
		}
	}

	outcome.Duration = time.Since(start)
	logger.Debug("checked file",
		logging.FieldBytes, len(file.Src),
		logging.FieldDuration, outcome.Duration,
	)
	return outcome
}

// logAbort records where a fatal syntax error stopped the parse.
func (r *Runner) logAbort(ctx context.Context, err error) {
	var d *diag.Diagnostic
	if !errors.As(err, &d) {
		return
	}
	pos, ok := r.Session.Diag.Locate(d)
	if !ok {
		return
	}
	logging.FromContext(ctx).Debug("parse aborted",
		logging.FieldCode, d.Code,
		logging.FieldLine, pos.Line,
		logging.FieldColumn, pos.Column,
	)
}

// diagnosticsByFile groups the session's diagnostics by the file their
// primary span falls in.
func (r *Runner) diagnosticsByFile() map[*source.File][]*diag.Diagnostic {
	out := make(map[*source.File][]*diag.Diagnostic)
	for _, d := range r.Session.Diag.Diagnostics() {
		if d.Span.IsDummy() {
			continue
		}
		if f, ok := r.Session.SourceMap.LookupFile(d.Span.Lo); ok {
			out[f] = append(out[f], d)
		}
	}
	return out
}

func foreignInput(file *source.File, lang string) *diag.Diagnostic {
	return diag.New(diag.ForeignInput, source.NewSpan(file.StartPos, file.StartPos),
		"this file looks like %s source, not a dapi document", lang).
		WithLabel("detected %s here", lang).
		WithHelp("a dapi document starts with a `meta { ... }` block")
}
