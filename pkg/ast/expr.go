package ast

import (
	"github.com/yaklabco/dapic/pkg/lexer"
	"github.com/yaklabco/dapic/pkg/source"
	"github.com/yaklabco/dapic/pkg/symbol"
)

// Expr is a value.
type Expr struct {
	Attrs []*Attribute
	Kind  ExprKind
	ID    NodeID
	Span  source.Span
}

// ExprKind is implemented by *LitExpr, *ArrayExpr, *PathExpr and *FieldExpr.
type ExprKind interface {
	exprKind()
}

// LitExpr is a string, number or boolean literal.
type LitExpr struct {
	Kind  lexer.LitKind
	Value symbol.Symbol
}

// ArrayExpr is `[a b c]` or `[a, b, c]`.
type ArrayExpr struct {
	Elems []*Expr
}

// PathExpr is a bare name used as a value: `date`, `scope.Value`.
type PathExpr struct {
	Path Path
}

// FieldExpr is a field access on another expression.
type FieldExpr struct {
	Base  *Expr
	Field symbol.Ident
}

func (*LitExpr) exprKind()   {}
func (*ArrayExpr) exprKind() {}
func (*PathExpr) exprKind()  {}
func (*FieldExpr) exprKind() {}

// Ty is a type.
type Ty struct {
	Kind TyKind
	ID   NodeID
	Span source.Span
}

// TyKind is implemented by *PathTy, *ArrayTy, *TupleTy, *ParenTy and
// *InlineModelTy.
type TyKind interface {
	tyKind()
}

// PathTy names a type: `string`, `auth.User`.
type PathTy struct{ Path Path }

// ArrayTy is `[T]`.
type ArrayTy struct{ Elem *Ty }

// TupleTy is `(A, B)`, or `()` for the unit type.
type TupleTy struct{ Elems []*Ty }

// ParenTy is `(T)`.
type ParenTy struct{ Inner *Ty }

// InlineModelTy is an anonymous model: `{ error string }`.
type InlineModelTy struct{ Fields []*FieldDef }

func (*PathTy) tyKind()        {}
func (*ArrayTy) tyKind()       {}
func (*TupleTy) tyKind()       {}
func (*ParenTy) tyKind()       {}
func (*InlineModelTy) tyKind() {}
