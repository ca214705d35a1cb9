package ast

import (
	"github.com/yaklabco/dapic/pkg/lexer"
	"github.com/yaklabco/dapic/pkg/source"
	"github.com/yaklabco/dapic/pkg/symbol"
)

// AttrStyle says what an attribute applies to.
type AttrStyle uint8

// Attribute styles.
const (
	// Outer attributes precede the node they describe: `@deprecated`, `## doc`.
	Outer AttrStyle = iota
	// Inner attributes describe the enclosing node: `@!doc(...)`, `##! doc`.
	Inner
	// Inline attributes trail a field between bars: `|@format: uuid|`.
	Inline
)

func (s AttrStyle) String() string {
	switch s {
	case Inner:
		return "inner"
	case Inline:
		return "inline"
	default:
		return "outer"
	}
}

// Attribute annotates a node.
type Attribute struct {
	Kind  AttrKind
	Style AttrStyle
	ID    AttrID
	Span  source.Span
}

// AttrKind is implemented by *DocComment, *MetaAttr and *NormalAttr.
type AttrKind interface {
	attrKind()
	// Name returns the attribute key, or AttrDoc for doc comments.
	Name() symbol.Symbol
}

// DocComment is a `##` or `##!` line.
type DocComment struct {
	Text symbol.Symbol
}

// MetaAttr is `@key` or `@key: value`.
type MetaAttr struct {
	Ident symbol.Ident
	// Value is nil for a bare `@key`.
	Value *Expr
}

// NormalAttr is `@key(tokens)`; the tokens are kept for a later stage.
type NormalAttr struct {
	Path   Path
	Delim  lexer.Delimiter
	Tokens []lexer.Token
}

func (*DocComment) attrKind() {}
func (*MetaAttr) attrKind()   {}
func (*NormalAttr) attrKind() {}

func (*DocComment) Name() symbol.Symbol   { return symbol.AttrDoc }
func (a *MetaAttr) Name() symbol.Symbol   { return a.Ident.Name }
func (a *NormalAttr) Name() symbol.Symbol { return a.Path.Segments[0].Ident.Name }

// FindAttr returns the first attribute named name.
func FindAttr(attrs []*Attribute, name symbol.Symbol) (*Attribute, bool) {
	for _, a := range attrs {
		if a.Kind.Name() == name {
			return a, true
		}
	}
	return nil, false
}

// Docs returns the text of the doc comments in attrs, in order.
func Docs(attrs []*Attribute) []string {
	var out []string
	for _, a := range attrs {
		if doc, ok := a.Kind.(*DocComment); ok {
			out = append(out, doc.Text.String())
		}
	}
	return out
}
