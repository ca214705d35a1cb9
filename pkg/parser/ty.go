package parser

import (
	"github.com/yaklabco/dapic/pkg/ast"
	"github.com/yaklabco/dapic/pkg/diag"
	"github.com/yaklabco/dapic/pkg/lexer"
)

// parseTy parses a type: a path, `[T]`, `(T)`, a tuple `(A, B)` or `()`,
// or an inline model `{ fields }`.
func (p *Parser) parseTy() (*ast.Ty, error) {
	lo := p.token.Span

	var (
		kind ast.TyKind
		err  error
	)
	switch {
	case p.check(lexer.OpenToken(lexer.Paren)):
		kind, err = p.parseParenTy()
	case p.check(lexer.OpenToken(lexer.Bracket)):
		p.bump()
		var elem *ast.Ty
		if elem, err = p.parseTy(); err == nil {
			err = p.expect(lexer.CloseToken(lexer.Bracket))
		}
		kind = &ast.ArrayTy{Elem: elem}
	case p.check(lexer.OpenToken(lexer.Brace)):
		var fields []*ast.FieldDef
		fields, err = expectBraced(p, p.parseFieldDefs)
		kind = &ast.InlineModelTy{Fields: fields}
	case p.checkIdent():
		var path ast.Path
		path, err = p.parsePath()
		kind = &ast.PathTy{Path: path}
	default:
		return nil, diag.New(diag.ExpectedType, p.token.Span,
			"we expected a type but found %s", p.token.Describe()).
			WithLabel("expected a type here")
	}
	if err != nil {
		return nil, err
	}

	return &ast.Ty{Kind: kind, ID: ast.DummyNodeID, Span: p.span(lo)}, nil
}

func (p *Parser) parseParenTy() (ast.TyKind, error) {
	if err := p.expect(lexer.OpenToken(lexer.Paren)); err != nil {
		return nil, err
	}

	closeParen := lexer.CloseToken(lexer.Paren)
	if p.eat(closeParen) {
		return &ast.TupleTy{}, nil
	}

	first, err := p.parseTy()
	if err != nil {
		return nil, err
	}
	if p.eat(closeParen) {
		return &ast.ParenTy{Inner: first}, nil
	}

	elems := []*ast.Ty{first}
	for p.eat(lexer.KindToken(lexer.Comma)) {
		if p.check(closeParen) {
			break
		}
		elem, err := p.parseTy()
		if err != nil {
			return nil, err
		}
		elems = append(elems, elem)
	}
	if err := p.expect(closeParen); err != nil {
		return nil, err
	}
	return &ast.TupleTy{Elems: elems}, nil
}
