// Package source tracks where text lives: byte positions in a session-wide
// address space, spans over them, and the files that own each range.
package source

import (
	"fmt"
	"math"
)

// BytePos is an absolute offset into the address space shared by every
// file loaded into a Map.
type BytePos uint32

// Add returns p advanced by n bytes.
func (p BytePos) Add(n int) BytePos { return p + BytePos(n) }

// Sub returns the distance from q to p. Only meaningful within one file.
func (p BytePos) Sub(q BytePos) int { return int(p) - int(q) }

// Span is a half-open range [Lo, Hi) of positions.
type Span struct {
	Lo BytePos
	Hi BytePos
}

// DummySpan labels nodes that have no location in any source text.
//
//nolint:gochecknoglobals // Sentinel value.
var DummySpan = Span{Lo: math.MaxUint32, Hi: math.MaxUint32}

// NewSpan returns the span [lo, hi), swapping the bounds if needed.
func NewSpan(lo, hi BytePos) Span {
	if lo > hi {
		lo, hi = hi, lo
	}
	return Span{Lo: lo, Hi: hi}
}

// IsDummy reports whether s is the DummySpan.
func (s Span) IsDummy() bool { return s == DummySpan }

// Len returns the number of bytes covered by s.
func (s Span) Len() int { return int(s.Hi - s.Lo) }

// Contains reports whether pos lies inside s.
func (s Span) Contains(pos BytePos) bool { return pos >= s.Lo && pos < s.Hi }

// To returns the smallest span covering both s and other.
func (s Span) To(other Span) Span {
	return Span{Lo: min(s.Lo, other.Lo), Hi: max(s.Hi, other.Hi)}
}

// Shrink returns s with lo and hi bytes trimmed from each end. Negative
// amounts count as zero. A span too short to trim collapses to an empty
// span that starts at most lo bytes in.
func (s Span) Shrink(lo, hi int) Span {
	lo, hi = max(lo, 0), max(hi, 0)
	if n := s.Len(); lo+hi >= n {
		at := s.Lo.Add(min(lo, n))
		return Span{Lo: at, Hi: at}
	}
	return Span{Lo: s.Lo.Add(lo), Hi: s.Hi - BytePos(hi)}
}

func (s Span) String() string {
	if s.IsDummy() {
		return "a dummy span"
	}
	return fmt.Sprintf("a span from %d to %d", s.Lo, s.Hi)
}
