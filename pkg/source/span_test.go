package source_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/dapic/pkg/source"
)

func TestSpanTo(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		a, b source.Span
		want source.Span
	}{
		{name: "disjoint", a: source.NewSpan(0, 3), b: source.NewSpan(7, 9), want: source.NewSpan(0, 9)},
		{name: "reversed", a: source.NewSpan(7, 9), b: source.NewSpan(0, 3), want: source.NewSpan(0, 9)},
		{name: "nested", a: source.NewSpan(0, 10), b: source.NewSpan(2, 4), want: source.NewSpan(0, 10)},
		{name: "overlapping", a: source.NewSpan(2, 6), b: source.NewSpan(4, 8), want: source.NewSpan(2, 8)},
		{name: "self", a: source.NewSpan(5, 6), b: source.NewSpan(5, 6), want: source.NewSpan(5, 6)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := tt.a.To(tt.b)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, min(tt.a.Lo, tt.b.Lo), got.Lo)
			assert.Equal(t, max(tt.a.Hi, tt.b.Hi), got.Hi)
		})
	}
}

func TestSpanBasics(t *testing.T) {
	t.Parallel()

	s := source.NewSpan(9, 4)
	assert.Equal(t, source.BytePos(4), s.Lo, "bounds are ordered")
	assert.Equal(t, 5, s.Len())
	assert.True(t, s.Contains(4))
	assert.False(t, s.Contains(9))
	assert.Equal(t, "a span from 4 to 9", s.String())
	assert.Equal(t, source.NewSpan(5, 8), s.Shrink(1, 1))

	assert.True(t, source.DummySpan.IsDummy())
	assert.False(t, s.IsDummy())
	assert.Equal(t, "a dummy span", source.DummySpan.String())
}

func TestSpanShrink(t *testing.T) {
	t.Parallel()

	s := source.NewSpan(4, 9)

	tests := []struct {
		name   string
		lo, hi int
		want   source.Span
	}{
		{name: "both ends", lo: 1, hi: 1, want: source.NewSpan(5, 8)},
		{name: "nothing", lo: 0, hi: 0, want: s},
		{name: "exactly empty", lo: 2, hi: 3, want: source.NewSpan(6, 6)},
		{name: "more than its length", lo: 3, hi: 4, want: source.NewSpan(7, 7)},
		{name: "front past the end", lo: 8, hi: 0, want: source.NewSpan(9, 9)},
		{name: "back past the start", lo: 0, hi: 6, want: source.NewSpan(4, 4)},
		{name: "negative counts as zero", lo: -2, hi: 1, want: source.NewSpan(4, 8)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := s.Shrink(tt.lo, tt.hi)
			assert.Equal(t, tt.want, got)
			assert.LessOrEqual(t, got.Lo, got.Hi)
		})
	}
}
