package ast

import (
	"github.com/yaklabco/dapic/pkg/source"
	"github.com/yaklabco/dapic/pkg/symbol"
)

// Item is one declaration. Ident is EmptyIdent for unnamed kinds such as
// headers or body.
type Item struct {
	Attrs []*Attribute
	Kind  ItemKind
	Ident symbol.Ident
	ID    NodeID
	Span  source.Span
}

// ItemKind is implemented by *Meta, *Auth, *Scope, *PathItem, *Model,
// *Enum, *Query, *Headers, *Verb, *StatusCode, *Body and *Params.
type ItemKind interface {
	itemKind()
	// Keyword returns the keyword that introduces the item.
	Keyword() symbol.Symbol
}

// Meta holds document metadata: name, version, servers and the like.
type Meta struct {
	Fields []*PropertyDef
}

// Auth either refers to a named scheme (`auth Basic;`) or defines one.
type Auth struct {
	// Define is false for `auth Name;`.
	Define bool
	Fields []*FieldDef
}

// Scope groups items under a name.
type Scope struct {
	Kind ScopeKind
}

// PathItem is an endpoint path with its nested items.
type PathItem struct {
	Kind  PathKind
	Items []*Item
}

// Model is a named record type.
type Model struct {
	Fields []*FieldDef
}

// Enum is a named set of values.
type Enum struct {
	Variants []*PropertyDef
}

// Query lists query parameters.
type Query struct {
	Fields []*FieldDef
}

// Headers lists header fields.
type Headers struct {
	Fields []*FieldDef
}

// Verb is an HTTP method block.
type Verb struct {
	Method symbol.Ident
	Items  []*Item
}

// StatusCode is a response block for one status.
type StatusCode struct {
	Code  *Expr
	Items []*Item
}

// Body is a request or response body type.
type Body struct {
	Ty *Ty
}

// Params lists path parameters.
type Params struct {
	Fields []*FieldDef
}

func (*Meta) itemKind()       {}
func (*Auth) itemKind()       {}
func (*Scope) itemKind()      {}
func (*PathItem) itemKind()   {}
func (*Model) itemKind()      {}
func (*Enum) itemKind()       {}
func (*Query) itemKind()      {}
func (*Headers) itemKind()    {}
func (*Verb) itemKind()       {}
func (*StatusCode) itemKind() {}
func (*Body) itemKind()       {}
func (*Params) itemKind()     {}

func (*Meta) Keyword() symbol.Symbol       { return symbol.KwMeta }
func (*Auth) Keyword() symbol.Symbol       { return symbol.KwAuth }
func (*Scope) Keyword() symbol.Symbol      { return symbol.KwScope }
func (*PathItem) Keyword() symbol.Symbol   { return symbol.KwPath }
func (*Model) Keyword() symbol.Symbol      { return symbol.KwModel }
func (*Enum) Keyword() symbol.Symbol       { return symbol.KwEnum }
func (*Query) Keyword() symbol.Symbol      { return symbol.KwQuery }
func (*Headers) Keyword() symbol.Symbol    { return symbol.KwHeaders }
func (*Verb) Keyword() symbol.Symbol       { return symbol.KwVerb }
func (*StatusCode) Keyword() symbol.Symbol { return symbol.KwCode }
func (*Body) Keyword() symbol.Symbol       { return symbol.KwBody }
func (*Params) Keyword() symbol.Symbol     { return symbol.KwParams }

// ScopeKind is implemented by *ScopeUnloaded and *ScopeLoaded.
type ScopeKind interface {
	scopeKind()
}

// ScopeUnloaded is `scope name;`: the items live in another file.
type ScopeUnloaded struct{}

// ScopeLoaded is a scope whose items are known.
type ScopeLoaded struct {
	Items []*Item
	// Inline is true when the items were written between braces in the
	// same file, false when a loader spliced them in.
	Inline bool
	Span   source.Span
}

func (*ScopeUnloaded) scopeKind() {}
func (*ScopeLoaded) scopeKind()   {}

// PathKind is implemented by *PathSimple, *PathVariable, *PathCurrent and
// *PathComplex.
type PathKind interface {
	pathKind()
	String() string
}

// PathSimple is a literal segment: `users`.
type PathSimple struct{ Ident symbol.Ident }

// PathVariable is a parameter segment: `{id}`.
type PathVariable struct{ Ident symbol.Ident }

// PathCurrent is `.`, the enclosing path itself.
type PathCurrent struct{}

// PathComplex is a sequence of segments separated by `/`.
type PathComplex struct{ Parts []PathKind }

func (*PathSimple) pathKind()   {}
func (*PathVariable) pathKind() {}
func (*PathCurrent) pathKind()  {}
func (*PathComplex) pathKind()  {}

func (p *PathSimple) String() string   { return p.Ident.Name.String() }
func (p *PathVariable) String() string { return "{" + p.Ident.Name.String() + "}" }
func (*PathCurrent) String() string    { return "." }

func (p *PathComplex) String() string {
	var s string
	for i, part := range p.Parts {
		if i > 0 {
			s += "/"
		}
		s += part.String()
	}
	return s
}
