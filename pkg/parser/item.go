package parser

import (
	"github.com/yaklabco/dapic/pkg/ast"
	"github.com/yaklabco/dapic/pkg/diag"
	"github.com/yaklabco/dapic/pkg/lexer"
	"github.com/yaklabco/dapic/pkg/symbol"
)

// ParseRoot parses a whole document: inner attributes, the meta block,
// then items up to the end of the file.
func (p *Parser) ParseRoot() (*ast.Root, error) {
	lo := p.token.Span

	attrs, err := p.parseInnerAttrs()
	if err != nil {
		return nil, err
	}

	metaAttrs, err := p.parseOuterAttrs()
	if err != nil {
		return nil, err
	}
	if !p.checkKeyword(symbol.KwMeta) {
		return nil, diag.New(diag.ExpectedKeyword, p.token.Span,
			"we expected the `meta` keyword but found %s", p.token.Describe()).
			WithLabel("expected `meta`").
			WithHelp("a document starts with a `meta { ... }` block")
	}
	meta, err := p.parseItem(metaAttrs)
	if err != nil {
		return nil, err
	}

	items, err := p.parseItems(lexer.KindToken(lexer.EOF))
	if err != nil {
		return nil, err
	}

	return &ast.Root{
		Attrs: attrs,
		Items: append([]*ast.Item{meta}, items...),
		ID:    ast.RootNodeID,
		Span:  p.span(lo),
	}, nil
}

// ParseScopeContent parses the items of a scope file up to the end of
// input. Inner attributes at the top are appended to attrs.
func (p *Parser) ParseScopeContent(attrs *[]*ast.Attribute) ([]*ast.Item, error) {
	return p.parseScopeContent(attrs, lexer.KindToken(lexer.EOF))
}

func (p *Parser) parseScopeContent(attrs *[]*ast.Attribute, term lexer.Token) ([]*ast.Item, error) {
	inner, err := p.parseInnerAttrs()
	if err != nil {
		return nil, err
	}
	*attrs = append(*attrs, inner...)
	return p.parseItems(term)
}

// parseItems parses items until term, which is left unconsumed.
func (p *Parser) parseItems(term lexer.Token) ([]*ast.Item, error) {
	var items []*ast.Item
	for !p.check(term) {
		attrs, err := p.parseOuterAttrs()
		if err != nil {
			return nil, err
		}
		item, err := p.parseItem(attrs)
		if err != nil {
			return nil, err
		}
		if item == nil {
			if len(attrs) == 0 && p.check(term) {
				break
			}
			return nil, p.expectedItem(attrs)
		}
		items = append(items, item)
	}
	return items, nil
}

// parseItem parses the item at the current keyword. It returns nil when
// the current token starts no item.
func (p *Parser) parseItem(attrs []*ast.Attribute) (*ast.Item, error) {
	if !p.checkIdent() {
		return nil, nil
	}

	lo := p.token.Span
	item := &ast.Item{Attrs: attrs, Ident: symbol.EmptyIdent, ID: ast.DummyNodeID}

	var err error
	switch p.token.Sym {
	case symbol.KwScope:
		p.bump()
		err = p.parseScope(item)
	case symbol.KwPath:
		p.bump()
		err = p.parsePathItem(item)
	case symbol.KwMeta:
		p.bump()
		var fields []*ast.PropertyDef
		fields, err = expectBraced(p, p.parsePropertyDefs)
		item.Kind = &ast.Meta{Fields: fields}
	case symbol.KwHeaders:
		p.bump()
		var fields []*ast.FieldDef
		fields, err = expectBraced(p, p.parseFieldDefs)
		item.Kind = &ast.Headers{Fields: fields}
	case symbol.KwQuery:
		p.bump()
		var fields []*ast.FieldDef
		fields, err = expectBraced(p, p.parseFieldDefs)
		item.Kind = &ast.Query{Fields: fields}
	case symbol.KwParams:
		p.bump()
		var fields []*ast.FieldDef
		fields, err = expectBraced(p, p.parseFieldDefs)
		item.Kind = &ast.Params{Fields: fields}
	case symbol.KwCode:
		p.bump()
		err = p.parseStatusCode(item)
	case symbol.KwModel:
		p.bump()
		err = p.parseModel(item)
	case symbol.KwEnum:
		p.bump()
		err = p.parseEnum(item)
	case symbol.KwAuth:
		p.bump()
		err = p.parseAuth(item)
	case symbol.KwVerb:
		p.bump()
		err = p.parseVerb(item)
	case symbol.KwBody:
		p.bump()
		var ty *ast.Ty
		ty, err = p.parseTy()
		item.Kind = &ast.Body{Ty: ty}
	default:
		for _, kw := range symbol.ItemKeywords() {
			p.expected = append(p.expected, lexer.IdentToken(kw))
		}
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	item.Span = p.span(lo)
	return item, nil
}

// parseScope parses `name ;` or `name { inner_attrs items }`.
func (p *Parser) parseScope(item *ast.Item) error {
	ident, err := p.parseIdent()
	if err != nil {
		return err
	}
	item.Ident = ident

	if p.eat(lexer.KindToken(lexer.Semi)) {
		item.Kind = &ast.Scope{Kind: &ast.ScopeUnloaded{}}
		return nil
	}

	lo := p.token.Span
	if err := p.expect(lexer.OpenToken(lexer.Brace)); err != nil {
		return err
	}
	closeBrace := lexer.CloseToken(lexer.Brace)
	items, err := p.parseScopeContent(&item.Attrs, closeBrace)
	if err != nil {
		return err
	}
	if err := p.expect(closeBrace); err != nil {
		return err
	}

	item.Kind = &ast.Scope{Kind: &ast.ScopeLoaded{Items: items, Inline: true, Span: p.span(lo)}}
	return nil
}

func (p *Parser) parsePathItem(item *ast.Item) error {
	kind, err := p.parsePathKind()
	if err != nil {
		return err
	}
	items, err := p.parseBracedItems()
	if err != nil {
		return err
	}
	item.Kind = &ast.PathItem{Kind: kind, Items: items}
	return nil
}

// parsePathKind parses segments separated by `/`. A single segment stays
// simple; several are flattened into one PathComplex.
func (p *Parser) parsePathKind() (ast.PathKind, error) {
	var parts []ast.PathKind
	for {
		part, err := p.parsePathSegment()
		if err != nil {
			return nil, err
		}
		if complexPart, ok := part.(*ast.PathComplex); ok {
			parts = append(parts, complexPart.Parts...)
		} else {
			parts = append(parts, part)
		}
		if !p.eat(lexer.OpToken(lexer.OpSlash)) {
			break
		}
	}

	if len(parts) == 1 {
		return parts[0], nil
	}
	return &ast.PathComplex{Parts: parts}, nil
}

func (p *Parser) parsePathSegment() (ast.PathKind, error) {
	switch {
	case p.eat(lexer.KindToken(lexer.Dot)):
		return &ast.PathCurrent{}, nil
	case p.check(lexer.OpenToken(lexer.Brace)):
		ident, err := expectBraced(p, p.parseIdent)
		if err != nil {
			return nil, err
		}
		return &ast.PathVariable{Ident: ident}, nil
	}

	ident, err := p.parseIdent()
	if err != nil {
		return nil, err
	}
	return &ast.PathSimple{Ident: ident}, nil
}

func (p *Parser) parseBracedItems() ([]*ast.Item, error) {
	if err := p.expect(lexer.OpenToken(lexer.Brace)); err != nil {
		return nil, err
	}
	closeBrace := lexer.CloseToken(lexer.Brace)
	items, err := p.parseItems(closeBrace)
	if err != nil {
		return nil, err
	}
	if err := p.expect(closeBrace); err != nil {
		return nil, err
	}
	return items, nil
}

func (p *Parser) parseStatusCode(item *ast.Item) error {
	code, err := p.parseExpr()
	if err != nil {
		return err
	}
	items, err := p.parseBracedItems()
	if err != nil {
		return err
	}
	item.Kind = &ast.StatusCode{Code: code, Items: items}
	return nil
}

func (p *Parser) parseModel(item *ast.Item) error {
	ident, err := p.parseIdent()
	if err != nil {
		return err
	}
	fields, err := expectBraced(p, p.parseFieldDefs)
	if err != nil {
		return err
	}
	item.Ident = ident
	item.Kind = &ast.Model{Fields: fields}
	return nil
}

func (p *Parser) parseEnum(item *ast.Item) error {
	ident, err := p.parseIdent()
	if err != nil {
		return err
	}
	variants, err := expectBraced(p, p.parsePropertyDefs)
	if err != nil {
		return err
	}
	item.Ident = ident
	item.Kind = &ast.Enum{Variants: variants}
	return nil
}

// parseAuth parses `name ;` or `name { fields }`.
func (p *Parser) parseAuth(item *ast.Item) error {
	ident, err := p.parseIdent()
	if err != nil {
		return err
	}
	item.Ident = ident

	if p.eat(lexer.KindToken(lexer.Semi)) {
		item.Kind = &ast.Auth{}
		return nil
	}

	fields, err := expectBraced(p, p.parseFieldDefs)
	if err != nil {
		return err
	}
	item.Kind = &ast.Auth{Define: true, Fields: fields}
	return nil
}

// parseVerb parses `METHOD { items }`. An unknown method is reported as a
// warning and parsing goes on.
func (p *Parser) parseVerb(item *ast.Item) error {
	method, err := p.parseIdent()
	if err != nil {
		return err
	}
	if !method.Name.IsHTTPMethod() {
		p.sess.Diag.Emit(p.invalidVerb(method))
	}

	items, err := p.parseBracedItems()
	if err != nil {
		return err
	}
	item.Kind = &ast.Verb{Method: method, Items: items}
	return nil
}

func (p *Parser) invalidVerb(method symbol.Ident) *diag.Diagnostic {
	d := diag.New(diag.InvalidVerb, method.Span,
		"we expected an HTTP verb but found `%s`", method).
		WithLabel("this is supposed to be a valid verb")
	if s, ok := diag.Suggest(method.String(), symbol.Strings(symbol.HTTPMethods())); ok {
		d.WithHelp("did you mean `%s`?", s)
	}
	return d
}

func (p *Parser) expectedItem(attrs []*ast.Attribute) *diag.Diagnostic {
	if len(attrs) > 0 {
		return diag.New(diag.ExpectedItem, p.token.Span,
			"we expected an item after these attributes but found %s", p.token.Describe()).
			WithLabel("expected an item").
			WithHelp("attributes must be followed by the item they describe")
	}

	d := diag.New(diag.ExpectedItem, p.token.Span,
		"we expected an item but found %s", p.token.Describe()).
		WithLabel("expected an item")
	if p.token.Kind == lexer.Ident {
		if s, ok := diag.Suggest(p.token.Sym.String(), symbol.Strings(symbol.ItemKeywords())); ok {
			d.WithHelp("did you mean `%s`?", s)
		}
	}
	return d
}
