package reporter_test

import (
	"bytes"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/dapic/pkg/diag"
	"github.com/yaklabco/dapic/pkg/parser"
	"github.com/yaklabco/dapic/pkg/reporter"
	"github.com/yaklabco/dapic/pkg/session"
	"github.com/yaklabco/dapic/pkg/source"
)

func streamingSession(t *testing.T, opts reporter.Options) (*session.Session, *reporter.Stream, *bytes.Buffer) {
	t.Helper()

	var buf bytes.Buffer
	opts.Writer = &buf
	opts.Color = "never"
	opts.Width = 100

	stream := reporter.NewStream(opts)
	sess := session.New(diag.HandlerOptions{Emitter: stream})
	stream.Bind(sess.SourceMap, "input.dapi")
	return sess, stream, &buf
}

func TestStream_WritesAsEmitted(t *testing.T) {
	t.Parallel()

	sess, stream, buf := streamingSession(t, reporter.Options{ShowContext: true, WorkingDir: "/w"})
	f := sess.SourceMap.MustNewFile(source.RealFileName("/w/b.dapi"), "meta {}\nmodel A { id 5 }\n")

	_, err := parser.Parse(sess, f)
	require.ErrorIs(t, err, diag.ErrFatal)

	out := buf.String()
	assert.Contains(t, out, "error[E0104]: we expected a type but found a number literal `5`\n")
	assert.Contains(t, out, " --> b.dapi:2:14\n")
	assert.Contains(t, out, "2 | model A { id 5 }\n")
	assert.Equal(t, 1, stream.Shown())
	assert.True(t, sess.Diag.Degraded())
}

func TestStream_FallbackPath(t *testing.T) {
	t.Parallel()

	sess, _, buf := streamingSession(t, reporter.Options{})
	f := sess.SourceMap.LoadAnon("meta {}\nverb get {}\n")

	_, err := parser.Parse(sess, f)
	require.NoError(t, err)

	assert.Contains(t, buf.String(), " --> input.dapi:2:6\n")
	assert.NotContains(t, buf.String(), "verb get {}", "snippets are off")
}

func TestStream_MinSeverity(t *testing.T) {
	t.Parallel()

	sess, stream, buf := streamingSession(t, reporter.Options{MinSeverity: diag.SeverityError})
	f := sess.SourceMap.LoadAnon("meta {}\nverb get {}\n")

	_, err := parser.Parse(sess, f)
	require.NoError(t, err)

	assert.Empty(t, buf.String())
	assert.Zero(t, stream.Shown())
	assert.Equal(t, 1, sess.Diag.WarningCount(), "hidden diagnostics are still counted")
}

func TestStream_Concurrent(t *testing.T) {
	t.Parallel()

	sess, stream, buf := streamingSession(t, reporter.Options{})

	var wg sync.WaitGroup
	for range 8 {
		wg.Go(func() {
			f := sess.SourceMap.LoadAnon("meta {}\nmodel A { id 5 }\n")
			_, err := parser.Parse(sess, f)
			assert.Error(t, err)
		})
	}
	wg.Wait()

	assert.Equal(t, 8, stream.Shown())
	assert.Equal(t, 8, strings.Count(buf.String(), "error[E0104]"))
}

func TestTextRenderer_Streamed(t *testing.T) {
	t.Parallel()

	out, count := render(t, reporter.Options{
		Format:      reporter.FormatText,
		ShowSummary: true,
		GroupByFile: true,
		Streamed:    true,
	}, newResult(t))

	assert.Equal(t, 3, count)
	assert.NotContains(t, out, "a.dapi (2 issues)")
	assert.NotContains(t, out, "E0104")
	assert.Contains(t, out, "c.dapi: error: "+assert.AnError.Error()+"\n")
	assert.True(t, strings.HasSuffix(out,
		"3 issues (1 error, 2 warnings) in 2 files, 1 file unreadable, 4 suppressed\n"), out)
}
