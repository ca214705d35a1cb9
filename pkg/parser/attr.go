package parser

import (
	"github.com/yaklabco/dapic/pkg/ast"
	"github.com/yaklabco/dapic/pkg/diag"
	"github.com/yaklabco/dapic/pkg/lexer"
)

func (p *Parser) parseInnerAttrs() ([]*ast.Attribute, error) {
	return p.parseAttrs(ast.Inner)
}

func (p *Parser) parseOuterAttrs() ([]*ast.Attribute, error) {
	return p.parseAttrs(ast.Outer)
}

// parseInlineAttrs parses `| attrs |` if present.
func (p *Parser) parseInlineAttrs() ([]*ast.Attribute, error) {
	bar := lexer.OpToken(lexer.OpOr)
	if !p.eat(bar) {
		return nil, nil
	}
	attrs, err := p.parseAttrs(ast.Inline)
	if err != nil {
		return nil, err
	}
	if err := p.expect(bar); err != nil {
		return nil, err
	}
	return attrs, nil
}

// parseAttrs parses a run of attributes for a context expecting style.
// An attribute written in another style is reported and kept with the
// expected style. Inner contexts stop at the first outer attribute so
// that it stays with the item that follows.
func (p *Parser) parseAttrs(style ast.AttrStyle) ([]*ast.Attribute, error) {
	var attrs []*ast.Attribute
	for {
		var attr *ast.Attribute

		switch {
		case p.check(lexer.KindToken(lexer.At)):
			if style == ast.Inner {
				if next, _ := p.lookahead(1); next.Kind != lexer.Bang {
					return attrs, nil
				}
			}
			parsed, err := p.parseAttr(style)
			if err != nil {
				return nil, err
			}
			attr = parsed

		case p.token.Kind == lexer.DocComment && style != ast.Inline:
			if style == ast.Inner && p.token.Doc != lexer.DocInner {
				return attrs, nil
			}
			attr = p.docAttr()

		default:
			return attrs, nil
		}

		if attr.Style != style {
			p.sess.Diag.Emit(diag.New(diag.WrongAttrStyle, attr.Span,
				"we expected an %s attribute but found an %s attribute", style, attr.Style).
				WithLabel("expected %s", style))
			attr.Style = style
		}
		attrs = append(attrs, attr)
	}
}

func (p *Parser) docAttr() *ast.Attribute {
	style := ast.Outer
	if p.token.Doc == lexer.DocInner {
		style = ast.Inner
	}
	attr := &ast.Attribute{
		Kind:  &ast.DocComment{Text: p.token.Sym},
		Style: style,
		ID:    ast.NewAttrID(),
		Span:  p.token.Span,
	}
	p.bump()
	return attr
}

// parseAttr parses `@name`, `@name: expr` or `@name(tokens)`, with `@!`
// marking an inner attribute.
func (p *Parser) parseAttr(requested ast.AttrStyle) (*ast.Attribute, error) {
	lo := p.token.Span
	if err := p.expect(lexer.KindToken(lexer.At)); err != nil {
		return nil, err
	}

	style := requested
	switch {
	case p.eat(lexer.KindToken(lexer.Bang)):
		style = ast.Inner
	case requested == ast.Inner:
		style = ast.Outer
	}

	ident, err := p.parseIdent()
	if err != nil {
		return nil, err
	}

	var kind ast.AttrKind
	switch {
	case p.eat(lexer.KindToken(lexer.Colon)):
		value, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		kind = &ast.MetaAttr{Ident: ident, Value: value}

	case p.token.IsOpenDelim():
		delim, tokens, err := p.parseDelimited()
		if err != nil {
			return nil, err
		}
		kind = &ast.NormalAttr{Path: ast.NewPath(ident), Delim: delim, Tokens: tokens}

	default:
		kind = &ast.MetaAttr{Ident: ident}
	}

	return &ast.Attribute{
		Kind:  kind,
		Style: style,
		ID:    ast.NewAttrID(),
		Span:  p.span(lo),
	}, nil
}
