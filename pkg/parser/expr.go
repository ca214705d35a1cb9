package parser

import (
	"strings"

	"github.com/yaklabco/dapic/pkg/ast"
	"github.com/yaklabco/dapic/pkg/diag"
	"github.com/yaklabco/dapic/pkg/lexer"
	"github.com/yaklabco/dapic/pkg/symbol"
)

// parseExpr parses a literal, an array, or a path, followed by any number
// of `.field` accesses.
func (p *Parser) parseExpr() (*ast.Expr, error) {
	lo := p.token.Span

	var (
		kind ast.ExprKind
		err  error
	)
	switch {
	case p.check(lexer.OpenToken(lexer.Bracket)):
		kind, err = p.parseArray()
	case p.token.Kind == lexer.Literal:
		kind = p.parseLiteral()
	case p.token.IsKeyword(symbol.KwTrue), p.token.IsKeyword(symbol.KwFalse):
		kind = &ast.LitExpr{Kind: lexer.LitBool, Value: p.token.Sym}
		p.bump()
	case p.checkIdent():
		var path ast.Path
		path, err = p.parsePath()
		kind = &ast.PathExpr{Path: path}
	default:
		p.expected = append(p.expected, lexer.KindToken(lexer.Literal), lexer.OpenToken(lexer.Bracket))
		return nil, diag.New(diag.ExpectedExpr, p.token.Span,
			"we expected an expression but found %s", p.token.Describe()).
			WithLabel("expected an expression here")
	}
	if err != nil {
		return nil, err
	}

	return p.parseFieldAccess(&ast.Expr{Kind: kind, ID: ast.DummyNodeID, Span: p.span(lo)})
}

func (p *Parser) parseFieldAccess(base *ast.Expr) (*ast.Expr, error) {
	for p.token.Kind == lexer.Dot {
		next, _ := p.lookahead(1)
		if next.Kind != lexer.Ident {
			break
		}
		p.bump()
		field, err := p.parseIdent()
		if err != nil {
			return nil, err
		}
		base = &ast.Expr{
			Kind: &ast.FieldExpr{Base: base, Field: field},
			ID:   ast.DummyNodeID,
			Span: p.span(base.Span),
		}
	}
	return base, nil
}

// parseArray parses `[ expr* ]` with optional commas between elements.
func (p *Parser) parseArray() (*ast.ArrayExpr, error) {
	if err := p.expect(lexer.OpenToken(lexer.Bracket)); err != nil {
		return nil, err
	}

	closeBracket := lexer.CloseToken(lexer.Bracket)
	arr := &ast.ArrayExpr{}
	for !p.eat(closeBracket) {
		if p.token.Kind == lexer.EOF {
			return nil, p.unexpected(closeBracket)
		}
		elem, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		arr.Elems = append(arr.Elems, elem)
		p.eat(lexer.KindToken(lexer.Comma))
	}
	return arr, nil
}

// parseLiteral consumes the current literal. A number written without
// spaces as `1.2.3` or `5xx` is read back as one literal.
func (p *Parser) parseLiteral() *ast.LitExpr {
	lit := &ast.LitExpr{Kind: p.token.Lit, Value: p.token.Sym}
	p.bump()
	if lit.Kind != lexer.LitNumber {
		return lit
	}

	var sb strings.Builder
	sb.WriteString(lit.Value.String())
	joined := false
	for p.spacing == lexer.Joint {
		switch {
		case p.token.Kind == lexer.Dot:
			next, spacing := p.lookahead(1)
			if next.Kind != lexer.Literal || next.Lit != lexer.LitNumber || spacing != lexer.Joint {
				return p.joinedLiteral(lit, &sb, joined)
			}
			p.bump()
			sb.WriteByte('.')
			sb.WriteString(p.token.Sym.String())
			p.bump()
		case p.token.Kind == lexer.Ident:
			sb.WriteString(p.token.Sym.String())
			p.bump()
		default:
			return p.joinedLiteral(lit, &sb, joined)
		}
		joined = true
	}
	return p.joinedLiteral(lit, &sb, joined)
}

func (p *Parser) joinedLiteral(lit *ast.LitExpr, sb *strings.Builder, joined bool) *ast.LitExpr {
	if joined {
		lit.Value = symbol.Intern(sb.String())
	}
	return lit
}

// parsePath parses `ident ( . ident )*`.
func (p *Parser) parsePath() (ast.Path, error) {
	first, err := p.parseIdent()
	if err != nil {
		return ast.Path{}, err
	}
	path := ast.NewPath(first)

	for p.token.Kind == lexer.Dot {
		if next, _ := p.lookahead(1); next.Kind != lexer.Ident {
			break
		}
		p.bump()
		seg, err := p.parseIdent()
		if err != nil {
			return ast.Path{}, err
		}
		path.Segments = append(path.Segments, ast.PathSegment{Ident: seg, ID: ast.DummyNodeID})
	}

	path.Span = p.span(first.Span)
	return path, nil
}

// parseName parses an identifier. Identifiers joined by `-` without
// surrounding spaces, as in `X-Request-Id`, form a single name.
func (p *Parser) parseName() (symbol.Ident, error) {
	ident, err := p.parseIdent()
	if err != nil {
		return symbol.EmptyIdent, err
	}

	var sb strings.Builder
	for p.spacing == lexer.Joint && p.token.Same(lexer.OpToken(lexer.OpMinus)) {
		next, spacing := p.lookahead(1)
		if next.Kind != lexer.Ident || spacing != lexer.Joint {
			break
		}
		if sb.Len() == 0 {
			sb.WriteString(ident.Name.String())
		}
		p.bump()
		sb.WriteByte('-')
		sb.WriteString(p.token.Sym.String())
		p.bump()
	}

	if sb.Len() > 0 {
		ident = symbol.NewIdent(symbol.Intern(sb.String()), p.span(ident.Span))
	}
	return ident, nil
}

func (p *Parser) parsePropertyDefs() ([]*ast.PropertyDef, error) {
	var defs []*ast.PropertyDef
	for {
		def, err := p.parsePropertyDef()
		if err != nil {
			return nil, err
		}
		if def == nil {
			return defs, nil
		}
		defs = append(defs, def)
	}
}

// parsePropertyDef parses `outer_attrs name expr inline_attrs`. It returns
// nil when no property starts here.
func (p *Parser) parsePropertyDef() (*ast.PropertyDef, error) {
	attrs, err := p.parseOuterAttrs()
	if err != nil {
		return nil, err
	}
	if !p.checkIdent() {
		if len(attrs) > 0 {
			return nil, p.unexpected(lexer.IdentToken(symbol.Empty))
		}
		return nil, nil
	}

	lo := p.token.Span
	ident, err := p.parseName()
	if err != nil {
		return nil, err
	}
	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	inline, err := p.parseInlineAttrs()
	if err != nil {
		return nil, err
	}

	return &ast.PropertyDef{
		Attrs: append(attrs, inline...),
		Ident: ident,
		Expr:  expr,
		ID:    ast.DummyNodeID,
		Span:  p.span(lo),
	}, nil
}

func (p *Parser) parseFieldDefs() ([]*ast.FieldDef, error) {
	var defs []*ast.FieldDef
	for {
		def, err := p.parseFieldDef()
		if err != nil {
			return nil, err
		}
		if def == nil {
			return defs, nil
		}
		defs = append(defs, def)
	}
}

// parseFieldDef parses `outer_attrs name ty string? inline_attrs`. A
// string after the type becomes an inline `@description` attribute.
func (p *Parser) parseFieldDef() (*ast.FieldDef, error) {
	attrs, err := p.parseOuterAttrs()
	if err != nil {
		return nil, err
	}
	if !p.checkIdent() {
		if len(attrs) > 0 {
			return nil, p.unexpected(lexer.IdentToken(symbol.Empty))
		}
		return nil, nil
	}

	lo := p.token.Span
	ident, err := p.parseName()
	if err != nil {
		return nil, err
	}
	ty, err := p.parseTy()
	if err != nil {
		return nil, err
	}

	if p.token.Kind == lexer.Literal && p.token.Lit == lexer.LitStr {
		desc := p.token
		p.bump()
		attrs = append(attrs, &ast.Attribute{
			Kind: &ast.MetaAttr{
				Ident: symbol.NewIdent(symbol.AttrDescription, desc.Span),
				Value: &ast.Expr{
					Kind: &ast.LitExpr{Kind: lexer.LitStr, Value: desc.Sym},
					ID:   ast.DummyNodeID,
					Span: desc.Span,
				},
			},
			Style: ast.Inline,
			ID:    ast.NewAttrID(),
			Span:  desc.Span,
		})
	}

	inline, err := p.parseInlineAttrs()
	if err != nil {
		return nil, err
	}

	return &ast.FieldDef{
		Attrs: append(attrs, inline...),
		Ident: ident,
		Ty:    ty,
		ID:    ast.DummyNodeID,
		Span:  p.span(lo),
	}, nil
}
