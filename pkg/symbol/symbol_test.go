package symbol_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/dapic/pkg/source"
	"github.com/yaklabco/dapic/pkg/symbol"
)

func TestInterner_Preseeded(t *testing.T) {
	t.Parallel()

	in := symbol.NewInterner()

	tests := []struct {
		text string
		want symbol.Symbol
	}{
		{text: "", want: symbol.Empty},
		{text: "{{root}}", want: symbol.PathRoot},
		{text: "auth", want: symbol.KwAuth},
		{text: "scope", want: symbol.KwScope},
		{text: "true", want: symbol.KwTrue},
		{text: "description", want: symbol.AttrDescription},
		{text: "type", want: symbol.AttrType},
		{text: "CONNECT", want: symbol.MethodConnect},
		{text: "PATCH", want: symbol.MethodPatch},
		{text: "TRACE", want: symbol.MethodTrace},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, in.Intern(tt.text))
			got, ok := in.Lookup(tt.want)
			require.True(t, ok)
			assert.Equal(t, tt.text, got)
		})
	}
}

func TestInterner_Idempotent(t *testing.T) {
	t.Parallel()

	in := symbol.NewInterner()
	inputs := []string{"User", "user", "x", "ünïcødé", "GET", "a b", "User"}

	for _, s := range inputs {
		first := in.Intern(s)
		second := in.Intern(s)
		assert.Equal(t, first, second, "intern(%q) twice", s)

		got, ok := in.Lookup(first)
		require.True(t, ok)
		assert.Equal(t, s, got)
	}

	assert.NotEqual(t, in.Intern("User"), in.Intern("user"))
}

func TestInterner_OwnsCopy(t *testing.T) {
	t.Parallel()

	in := symbol.NewInterner()
	buf := []byte("ephemeral")
	sym := in.Intern(string(buf[:4]))
	buf[0] = 'X'

	got, ok := in.Lookup(sym)
	require.True(t, ok)
	assert.Equal(t, "ephe", got)
}

func TestInterner_LookupUnknown(t *testing.T) {
	t.Parallel()

	in := symbol.NewInterner()
	_, ok := in.Lookup(symbol.Symbol(in.Len() + 5))
	assert.False(t, ok)
}

func TestInterner_Concurrent(t *testing.T) {
	t.Parallel()

	in := symbol.NewInterner()
	const workers = 16

	results := make([][]symbol.Symbol, workers)
	var wg sync.WaitGroup
	for w := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range 100 {
				results[w] = append(results[w], in.Intern(fmt.Sprintf("name%d", i)))
			}
		}()
	}
	wg.Wait()

	for w := 1; w < workers; w++ {
		assert.Equal(t, results[0], results[w])
	}
}

func TestSymbol_Classification(t *testing.T) {
	t.Parallel()

	assert.True(t, symbol.KwModel.IsKeyword())
	assert.True(t, symbol.KwFalse.IsKeyword())
	assert.False(t, symbol.AttrDoc.IsKeyword())
	assert.True(t, symbol.MethodGet.IsHTTPMethod())
	assert.False(t, symbol.KwVerb.IsHTTPMethod())
	assert.True(t, symbol.KwTrue.IsBool())
	assert.True(t, symbol.PathRoot.IsPreseeded())
	assert.False(t, symbol.Intern("not-well-known-at-all").IsPreseeded())

	assert.Len(t, symbol.ItemKeywords(), 12)
	assert.Equal(t,
		[]string{"CONNECT", "DELETE", "GET", "HEAD", "OPTIONS", "PATCH", "POST", "PUT", "TRACE"},
		symbol.Strings(symbol.HTTPMethods()))
}

func TestDefault(t *testing.T) {
	t.Parallel()

	assert.Same(t, symbol.Default(), symbol.Default())

	sym := symbol.Intern("orders")
	assert.Equal(t, "orders", sym.String())
	assert.Equal(t, "model", symbol.KwModel.String())
}

func TestIdent(t *testing.T) {
	t.Parallel()

	assert.True(t, symbol.EmptyIdent.IsEmpty())
	assert.True(t, symbol.EmptyIdent.Span.IsDummy())

	id := symbol.NewIdent(symbol.Intern("User"), source.NewSpan(6, 10))
	assert.False(t, id.IsEmpty())
	assert.Equal(t, "User", id.String())
}
