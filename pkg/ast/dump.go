package ast

import (
	"fmt"
	"io"
	"strings"

	"github.com/yaklabco/dapic/pkg/lexer"
)

// TreeNode is a printable view of a syntax tree, used by `dapic parse`.
type TreeNode struct {
	Kind     string      `json:"kind"               yaml:"kind"`
	Name     string      `json:"name,omitempty"     yaml:"name,omitempty"`
	Value    string      `json:"value,omitempty"    yaml:"value,omitempty"`
	Style    string      `json:"style,omitempty"    yaml:"style,omitempty"`
	Span     [2]uint32   `json:"span"               yaml:"span,flow"`
	Children []*TreeNode `json:"children,omitempty" yaml:"children,omitempty"`
}

// Dump converts n and its descendants into TreeNodes.
func Dump(n Node) *TreeNode {
	if isNil(n) {
		return nil
	}

	span := n.NodeSpan()
	t := &TreeNode{Span: [2]uint32{uint32(span.Lo), uint32(span.Hi)}}

	switch n := n.(type) {
	case *Root:
		t.Kind = "root"
	case *Item:
		t.Kind = n.Kind.Keyword().String()
		if !n.Ident.IsEmpty() {
			t.Name = n.Ident.Name.String()
		}
		describeItem(t, n)
	case *Attribute:
		t.Kind = "attr"
		t.Style = n.Style.String()
		describeAttr(t, n)
	case *FieldDef:
		t.Kind = "field"
		t.Name = n.Ident.Name.String()
	case *PropertyDef:
		t.Kind = "property"
		t.Name = n.Ident.Name.String()
	case *Expr:
		describeExpr(t, n)
	case *Ty:
		describeTy(t, n)
	}

	for _, child := range Children(n) {
		t.Children = append(t.Children, Dump(child))
	}

	return t
}

func describeItem(t *TreeNode, item *Item) {
	switch k := item.Kind.(type) {
	case *Scope:
		if loaded, ok := k.Kind.(*ScopeLoaded); ok {
			t.Value = fmt.Sprintf("loaded inline=%t", loaded.Inline)
		} else {
			t.Value = "unloaded"
		}
	case *PathItem:
		t.Value = k.Kind.String()
	case *Verb:
		t.Value = k.Method.String()
	case *Auth:
		if k.Define {
			t.Value = "define"
		} else {
			t.Value = "use"
		}
	}
}

func describeAttr(t *TreeNode, a *Attribute) {
	switch k := a.Kind.(type) {
	case *DocComment:
		t.Kind = "doc"
		t.Value = k.Text.String()
	case *MetaAttr:
		t.Name = k.Ident.Name.String()
	case *NormalAttr:
		t.Name = k.Path.String()
		parts := make([]string, len(k.Tokens))
		for i, tok := range k.Tokens {
			parts[i] = tok.Text()
		}
		t.Value = strings.Join(parts, " ")
	}
}

func describeExpr(t *TreeNode, e *Expr) {
	switch k := e.Kind.(type) {
	case *LitExpr:
		t.Kind = k.Kind.String()
		t.Value = k.Value.String()
		if k.Kind == lexer.LitStr {
			t.Value = fmt.Sprintf("%q", t.Value)
		}
	case *ArrayExpr:
		t.Kind = "array"
	case *PathExpr:
		t.Kind = "path"
		t.Value = k.Path.String()
	case *FieldExpr:
		t.Kind = "field-access"
		t.Value = k.Field.Name.String()
	}
}

func describeTy(t *TreeNode, ty *Ty) {
	switch k := ty.Kind.(type) {
	case *PathTy:
		t.Kind = "type"
		t.Value = k.Path.String()
	case *ArrayTy:
		t.Kind = "array-type"
	case *TupleTy:
		t.Kind = "tuple-type"
	case *ParenTy:
		t.Kind = "paren-type"
	case *InlineModelTy:
		t.Kind = "inline-model"
	}
}

// WriteText prints the tree with two-space indentation, one node per line.
func (t *TreeNode) WriteText(w io.Writer) error {
	return t.writeText(w, 0)
}

func (t *TreeNode) writeText(w io.Writer, depth int) error {
	if t == nil {
		return nil
	}

	var b strings.Builder
	b.WriteString(strings.Repeat("  ", depth))
	b.WriteString(t.Kind)
	if t.Style != "" && t.Style != Outer.String() {
		b.WriteString(" [" + t.Style + "]")
	}
	if t.Name != "" {
		b.WriteString(" " + t.Name)
	}
	if t.Value != "" {
		b.WriteString(" = " + t.Value)
	}
	fmt.Fprintf(&b, " @%d..%d\n", t.Span[0], t.Span[1])

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("write tree: %w", err)
	}

	for _, child := range t.Children {
		if err := child.writeText(w, depth+1); err != nil {
			return err
		}
	}
	return nil
}
