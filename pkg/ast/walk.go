package ast

import "github.com/yaklabco/dapic/pkg/source"

// Node is any tree node: *Root, *Item, *Attribute, *FieldDef,
// *PropertyDef, *Expr or *Ty.
type Node interface {
	NodeSpan() source.Span
}

func (n *Root) NodeSpan() source.Span        { return n.Span }
func (n *Item) NodeSpan() source.Span        { return n.Span }
func (n *Attribute) NodeSpan() source.Span   { return n.Span }
func (n *FieldDef) NodeSpan() source.Span    { return n.Span }
func (n *PropertyDef) NodeSpan() source.Span { return n.Span }
func (n *Expr) NodeSpan() source.Span        { return n.Span }
func (n *Ty) NodeSpan() source.Span          { return n.Span }

// WalkFunc is called for each node. Return a non-nil error to stop the walk.
type WalkFunc func(n Node) error

// Walk visits root and its descendants in pre-order, children in source
// order with attributes first.
func Walk(root Node, fn WalkFunc) error {
	return WalkWithContext(root, fn, nil)
}

// WalkWithContext calls enter before a node's children and leave after
// them. Either callback may be nil.
func WalkWithContext(root Node, enter, leave WalkFunc) error {
	if isNil(root) {
		return nil
	}

	if enter != nil {
		if err := enter(root); err != nil {
			return err
		}
	}

	for _, child := range Children(root) {
		if err := WalkWithContext(child, enter, leave); err != nil {
			return err
		}
	}

	if leave != nil {
		if err := leave(root); err != nil {
			return err
		}
	}

	return nil
}

// FindAll returns all nodes matching the predicate.
func FindAll(root Node, predicate func(n Node) bool) []Node {
	var result []Node

	//nolint:errcheck // The callback never fails.
	Walk(root, func(n Node) error {
		if predicate(n) {
			result = append(result, n)
		}
		return nil
	})

	return result
}

// FindFirst returns the first node matching the predicate, or nil.
func FindFirst(root Node, predicate func(n Node) bool) Node {
	var found Node

	//nolint:errcheck // errStopWalk is expected.
	Walk(root, func(n Node) error {
		if predicate(n) {
			found = n
			return errStopWalk
		}
		return nil
	})

	return found
}

// Items returns every item under root, nested ones included.
func Items(root Node) []*Item {
	var items []*Item

	//nolint:errcheck // The callback never fails.
	Walk(root, func(n Node) error {
		if item, ok := n.(*Item); ok {
			items = append(items, item)
		}
		return nil
	})

	return items
}

var errStopWalk = &stopWalkError{}

type stopWalkError struct{}

func (e *stopWalkError) Error() string { return "stop walk" }

// Children returns the direct children of n.
func Children(n Node) []Node {
	var out []Node
	addAttrs := func(attrs []*Attribute) {
		for _, a := range attrs {
			out = append(out, a)
		}
	}
	addItems := func(items []*Item) {
		for _, it := range items {
			out = append(out, it)
		}
	}
	addFields := func(fields []*FieldDef) {
		for _, f := range fields {
			out = append(out, f)
		}
	}
	addProps := func(props []*PropertyDef) {
		for _, p := range props {
			out = append(out, p)
		}
	}

	switch n := n.(type) {
	case *Root:
		addAttrs(n.Attrs)
		addItems(n.Items)

	case *Item:
		addAttrs(n.Attrs)
		switch k := n.Kind.(type) {
		case *Meta:
			addProps(k.Fields)
		case *Auth:
			addFields(k.Fields)
		case *Scope:
			if loaded, ok := k.Kind.(*ScopeLoaded); ok {
				addItems(loaded.Items)
			}
		case *PathItem:
			addItems(k.Items)
		case *Model:
			addFields(k.Fields)
		case *Enum:
			addProps(k.Variants)
		case *Query:
			addFields(k.Fields)
		case *Headers:
			addFields(k.Fields)
		case *Verb:
			addItems(k.Items)
		case *StatusCode:
			if k.Code != nil {
				out = append(out, k.Code)
			}
			addItems(k.Items)
		case *Body:
			if k.Ty != nil {
				out = append(out, k.Ty)
			}
		case *Params:
			addFields(k.Fields)
		}

	case *Attribute:
		if meta, ok := n.Kind.(*MetaAttr); ok && meta.Value != nil {
			out = append(out, meta.Value)
		}

	case *FieldDef:
		addAttrs(n.Attrs)
		if n.Ty != nil {
			out = append(out, n.Ty)
		}

	case *PropertyDef:
		addAttrs(n.Attrs)
		if n.Expr != nil {
			out = append(out, n.Expr)
		}

	case *Expr:
		addAttrs(n.Attrs)
		switch k := n.Kind.(type) {
		case *ArrayExpr:
			for _, e := range k.Elems {
				out = append(out, e)
			}
		case *FieldExpr:
			out = append(out, k.Base)
		}

	case *Ty:
		switch k := n.Kind.(type) {
		case *ArrayTy:
			out = append(out, k.Elem)
		case *TupleTy:
			for _, t := range k.Elems {
				out = append(out, t)
			}
		case *ParenTy:
			out = append(out, k.Inner)
		case *InlineModelTy:
			addFields(k.Fields)
		}
	}

	return out
}

func isNil(n Node) bool {
	if n == nil {
		return true
	}
	switch v := n.(type) {
	case *Root:
		return v == nil
	case *Item:
		return v == nil
	case *Attribute:
		return v == nil
	case *FieldDef:
		return v == nil
	case *PropertyDef:
		return v == nil
	case *Expr:
		return v == nil
	case *Ty:
		return v == nil
	}
	return false
}
