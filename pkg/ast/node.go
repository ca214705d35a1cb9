// Package ast defines the syntax tree produced by the parser.
//
// Closed sets of alternatives (item kinds, type kinds, expression kinds and
// so on) are sealed interfaces: only the types in this package implement
// them, and consumers switch over them with type switches.
package ast

import (
	"fmt"
	"math"
	"sync/atomic"

	"github.com/yaklabco/dapic/pkg/source"
	"github.com/yaklabco/dapic/pkg/symbol"
)

// NodeID identifies a node. The parser assigns DummyNodeID everywhere
// except the root; a later pass renumbers nodes.
type NodeID uint32

// Well-known node ids.
const (
	RootNodeID  NodeID = 0
	DummyNodeID NodeID = math.MaxUint32
)

func (id NodeID) String() string {
	if id == DummyNodeID {
		return "NodeID(DUMMY)"
	}
	return fmt.Sprintf("%d", uint32(id))
}

// AttrID identifies an attribute. Ids are unique within the process.
type AttrID uint32

//nolint:gochecknoglobals // Process-wide id counter.
var nextAttrID atomic.Uint32

// NewAttrID returns a fresh attribute id.
func NewAttrID() AttrID {
	return AttrID(nextAttrID.Add(1) - 1)
}

// Root is a parsed document.
type Root struct {
	Attrs []*Attribute
	Items []*Item
	ID    NodeID
	Span  source.Span
}

// Path is a dotted name such as `scope.Type`.
type Path struct {
	Segments []PathSegment
	Span     source.Span
}

// PathSegment is one name of a Path.
type PathSegment struct {
	Ident symbol.Ident
	ID    NodeID
}

// NewPath returns a single-segment path.
func NewPath(ident symbol.Ident) Path {
	return Path{
		Segments: []PathSegment{{Ident: ident, ID: DummyNodeID}},
		Span:     ident.Span,
	}
}

func (p Path) String() string {
	var s string
	for i, seg := range p.Segments {
		if i > 0 {
			s += "."
		}
		s += seg.Ident.Name.String()
	}
	return s
}

// FieldDef is a named, typed field: `id u64 "The id" |@format: uuid|`.
type FieldDef struct {
	Attrs []*Attribute
	Ident symbol.Ident
	Ty    *Ty
	ID    NodeID
	Span  source.Span
}

// PropertyDef is a named value: `version 1`.
type PropertyDef struct {
	Attrs []*Attribute
	Ident symbol.Ident
	Expr  *Expr
	ID    NodeID
	Span  source.Span
}
