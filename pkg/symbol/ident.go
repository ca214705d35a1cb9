package symbol

import "github.com/yaklabco/dapic/pkg/source"

// Ident is one occurrence of a name in source text.
type Ident struct {
	Name Symbol
	Span source.Span
}

// EmptyIdent is the placeholder for nodes that have no name.
//
//nolint:gochecknoglobals // Sentinel value.
var EmptyIdent = Ident{Name: Empty, Span: source.DummySpan}

// NewIdent returns an ident for name at span.
func NewIdent(name Symbol, span source.Span) Ident {
	return Ident{Name: name, Span: span}
}

// IsEmpty reports whether the ident names nothing.
func (id Ident) IsEmpty() bool { return id.Name == Empty }

func (id Ident) String() string { return id.Name.String() }
