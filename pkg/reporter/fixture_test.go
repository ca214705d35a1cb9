package reporter_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/dapic/pkg/ast"
	"github.com/yaklabco/dapic/pkg/diag"
	"github.com/yaklabco/dapic/pkg/reporter"
	"github.com/yaklabco/dapic/pkg/runner"
	"github.com/yaklabco/dapic/pkg/session"
	"github.com/yaklabco/dapic/pkg/source"
)

// newResult builds a run over three files: a.dapi with two warnings,
// b.dapi with one error and an unreadable c.dapi.
func newResult(t *testing.T) *runner.Result {
	t.Helper()

	sess := session.Default()
	a := sess.SourceMap.MustNewFile(source.RealFileName("/w/a.dapi"), "meta {}\nverb get {}\n")
	b := sess.SourceMap.MustNewFile(source.RealFileName("/w/b.dapi"), "meta {}\nmodel A { id 5 }\n")

	at := func(f *source.File, lo, hi int) source.Span {
		return source.NewSpan(f.StartPos.Add(lo), f.StartPos.Add(hi))
	}

	return &runner.Result{
		Session: sess,
		Files: []runner.FileOutcome{
			{Path: "/w/a.dapi", File: a, Root: &ast.Root{}, Diagnostics: []*diag.Diagnostic{
				diag.New(diag.InvalidVerb, at(a, 13, 16), "we expected an HTTP verb but found `get`").
					WithHelp("did you mean `GET`?"),
				diag.New(diag.InvalidVerb, at(a, 13, 16), "again"),
			}},
			{Path: "/w/b.dapi", File: b, Diagnostics: []*diag.Diagnostic{
				diag.New(diag.ExpectedType, at(b, 21, 22), "we expected a type but found a number literal `5`").
					WithLabel("expected a type here"),
			}},
			{Path: "/w/c.dapi", Error: assert.AnError},
		},
		Stats: runner.Stats{Suppressed: 4},
	}
}

func render(t *testing.T, opts reporter.Options, result *runner.Result) (string, int) {
	t.Helper()

	var buf bytes.Buffer
	opts.Writer = &buf
	if opts.Color == "" {
		opts.Color = "never"
	}
	if opts.WorkingDir == "" {
		opts.WorkingDir = "/w"
	}

	rep, err := reporter.New(opts)
	if err != nil {
		t.Fatalf("new reporter: %v", err)
	}
	count, err := rep.Report(t.Context(), result)
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	return buf.String(), count
}
