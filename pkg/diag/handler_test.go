package diag_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/dapic/pkg/diag"
	"github.com/yaklabco/dapic/pkg/source"
)

func TestHandler_Counts(t *testing.T) {
	t.Parallel()

	var streamed []string
	h := diag.NewHandler(diag.HandlerOptions{
		Emitter: diag.EmitterFunc(func(d *diag.Diagnostic) { streamed = append(streamed, d.Code) }),
	})

	assert.False(t, h.Degraded())
	require.NoError(t, h.CheckDegraded())
	assert.Equal(t, "0 errors, 0 warnings and 0 advisories were issued", h.Summary())

	h.Emit(diag.New(diag.InvalidVerb, source.DummySpan, "w"))
	assert.False(t, h.Degraded(), "warnings do not degrade")
	assert.Equal(t, "0 errors, 1 warning and 0 advisories were issued", h.Summary())

	h.Emit(diag.New(diag.UnknownToken, source.DummySpan, "e"))
	h.Emit(diag.New(diag.ForeignInput, source.DummySpan, "a"))
	h.Emit(nil)

	assert.Equal(t, 1, h.ErrorCount())
	assert.Equal(t, 1, h.WarningCount())
	assert.Equal(t, 1, h.AdviceCount())
	assert.True(t, h.Degraded())
	require.ErrorIs(t, h.CheckDegraded(), diag.ErrDegraded)
	assert.Equal(t, "1 error, 1 warning and 1 advisory were issued", h.Summary())
	assert.Equal(t, []string{"W0103", "E0002", "A0300"}, streamed, "emitted immediately, in order")
	assert.Len(t, h.Diagnostics(), 3)
}

func TestHandler_Overrides(t *testing.T) {
	t.Parallel()

	h := diag.NewHandler(diag.HandlerOptions{
		SeverityOverrides: map[string]diag.Severity{"W0103": diag.SeverityError},
		Suppressed:        map[string]bool{"E0002": true},
	})

	h.Emit(diag.New(diag.InvalidVerb, source.DummySpan, "promoted"))
	h.Emit(diag.New(diag.UnknownToken, source.DummySpan, "dropped"))

	assert.Equal(t, 1, h.ErrorCount())
	assert.Equal(t, 0, h.WarningCount())
	assert.Equal(t, 1, h.SuppressedCount())
	require.Len(t, h.Diagnostics(), 1)
	assert.Equal(t, diag.SeverityError, h.Diagnostics()[0].Severity)
}

func TestHandler_EmitFatal(t *testing.T) {
	t.Parallel()

	h := diag.NewHandler(diag.HandlerOptions{})
	err := h.EmitFatal(diag.New(diag.ForeignInput, source.DummySpan, "stop"))

	require.ErrorIs(t, err, diag.ErrFatal)
	var d *diag.Diagnostic
	require.ErrorAs(t, err, &d)
	assert.Equal(t, "A0300", d.Code)
	assert.Equal(t, 1, h.ErrorCount())
}

func TestHandler_Locate(t *testing.T) {
	t.Parallel()

	sm := source.NewMap()
	f := sm.LoadAnon("meta {\n  oops\n}")
	h := diag.NewHandler(diag.HandlerOptions{SourceMap: sm})

	pos, ok := h.Locate(diag.New(diag.UnexpectedToken, source.NewSpan(f.StartPos+9, f.StartPos+13), "x"))
	require.True(t, ok)
	assert.Equal(t, 2, pos.Line)
	assert.Equal(t, 3, pos.Column)

	_, ok = h.Locate(diag.New(diag.UnexpectedToken, source.DummySpan, "x"))
	assert.False(t, ok)
}

func TestHandler_Concurrent(t *testing.T) {
	t.Parallel()

	h := diag.NewHandler(diag.HandlerOptions{})
	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			h.Emit(diag.New(diag.UnknownToken, source.DummySpan, "x"))
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, h.ErrorCount())
	assert.Equal(t, "50 errors, 0 warnings and 0 advisories were issued", h.Summary())
}
