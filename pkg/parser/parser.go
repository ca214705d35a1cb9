// Package parser builds the syntax tree of a dapi document.
//
// The parser is a recursive descent over the rich token stream, one method
// per grammar rule. Lexical errors never stop it. Any other syntax error
// aborts parsing: it is returned as a *diag.Diagnostic error value and
// travels up to the entry point. The one exception is an attribute
// written in the wrong style, which is reported and kept.
package parser

import (
	"errors"
	"strings"

	"github.com/yaklabco/dapic/pkg/ast"
	"github.com/yaklabco/dapic/pkg/diag"
	"github.com/yaklabco/dapic/pkg/lexer"
	"github.com/yaklabco/dapic/pkg/session"
	"github.com/yaklabco/dapic/pkg/source"
	"github.com/yaklabco/dapic/pkg/symbol"
)

// Parser holds the state of one parse over one source file.
type Parser struct {
	sess *session.Session
	file *source.File
	lex  *lexer.Enricher

	// token is the current token and spacing its spacing.
	token   lexer.Token
	spacing lexer.Spacing

	prevToken lexer.Token

	// expected collects what check calls looked for since the last bump.
	expected []lexer.Token

	ahead []buffered
}

type buffered struct {
	tok     lexer.Token
	spacing lexer.Spacing
}

// New returns a parser positioned on the first token of file.
func New(sess *session.Session, file *source.File) *Parser {
	p := &Parser{
		sess:      sess,
		file:      file,
		lex:       lexer.NewEnricher(sess.Diag, file),
		token:     lexer.DummyToken,
		prevToken: lexer.DummyToken,
	}
	p.bump()
	return p
}

// Parse parses file as a root document. A syntax error is emitted to the
// session's handler as fatal and returned wrapping diag.ErrFatal.
func Parse(sess *session.Session, file *source.File) (*ast.Root, error) {
	root, err := New(sess, file).ParseRoot()
	if err != nil {
		return nil, emitErr(sess.Diag, err)
	}
	return root, nil
}

// LoadScope splices the items of file into an unloaded scope item, the way
// an external loader resolves `scope name;`.
func LoadScope(sess *session.Session, file *source.File, item *ast.Item) error {
	scope, ok := item.Kind.(*ast.Scope)
	if !ok {
		return errors.New("load scope: item is not a scope")
	}
	if _, unloaded := scope.Kind.(*ast.ScopeUnloaded); !unloaded {
		return errors.New("load scope: scope is already loaded")
	}

	items, err := New(sess, file).ParseScopeContent(&item.Attrs)
	if err != nil {
		return emitErr(sess.Diag, err)
	}

	scope.Kind = &ast.ScopeLoaded{Items: items, Inline: false, Span: file.Span()}
	return nil
}

// emitErr reports a syntax error diagnostic as fatal. Other errors are
// returned as they are.
func emitErr(h *diag.Handler, err error) error {
	var d *diag.Diagnostic
	if errors.As(err, &d) {
		return h.EmitFatal(d)
	}
	return err
}

func (p *Parser) bump() {
	var next buffered
	if len(p.ahead) > 0 {
		next = p.ahead[0]
		p.ahead = p.ahead[1:]
	} else {
		next = p.pull()
	}

	p.prevToken = p.token
	p.token = next.tok
	p.spacing = next.spacing
	p.expected = p.expected[:0]
}

func (p *Parser) pull() buffered {
	tok, spaced := p.lex.Next()
	if spaced {
		return buffered{tok: tok, spacing: lexer.Alone}
	}
	return buffered{tok: tok, spacing: lexer.Joint}
}

// lookahead returns the token n positions after the current one.
func (p *Parser) lookahead(n int) (lexer.Token, lexer.Spacing) {
	for len(p.ahead) < n {
		p.ahead = append(p.ahead, p.pull())
	}
	b := p.ahead[n-1]
	return b.tok, b.spacing
}

func (p *Parser) check(tok lexer.Token) bool {
	if p.token.Same(tok) {
		return true
	}
	p.expected = append(p.expected, tok)
	return false
}

func (p *Parser) eat(tok lexer.Token) bool {
	if p.check(tok) {
		p.bump()
		return true
	}
	return false
}

func (p *Parser) expect(tok lexer.Token) error {
	if p.eat(tok) {
		return nil
	}
	return p.unexpected(tok)
}

func (p *Parser) checkKeyword(kw symbol.Symbol) bool {
	if p.token.IsKeyword(kw) {
		return true
	}
	p.expected = append(p.expected, lexer.IdentToken(kw))
	return false
}

func (p *Parser) eatKeyword(kw symbol.Symbol) bool {
	if p.checkKeyword(kw) {
		p.bump()
		return true
	}
	return false
}

func (p *Parser) expectKeyword(kw symbol.Symbol) error {
	if p.eatKeyword(kw) {
		return nil
	}
	return diag.New(diag.ExpectedKeyword, p.token.Span,
		"we expected the `%s` keyword but found %s", kw, p.token.Describe()).
		WithLabel("expected `%s`", kw)
}

func (p *Parser) checkIdent() bool {
	return p.token.Kind == lexer.Ident
}

func (p *Parser) eatIdent() (symbol.Ident, bool) {
	ident, ok := p.token.Ident()
	if ok {
		p.bump()
	}
	return ident, ok
}

func (p *Parser) parseIdent() (symbol.Ident, error) {
	if ident, ok := p.eatIdent(); ok {
		return ident, nil
	}
	return symbol.EmptyIdent, p.unexpected(lexer.IdentToken(symbol.Empty))
}

// expectBraced parses `{ f }`.
func expectBraced[T any](p *Parser, f func() (T, error)) (T, error) {
	var zero T
	if err := p.expect(lexer.OpenToken(lexer.Brace)); err != nil {
		return zero, err
	}
	parsed, err := f()
	if err != nil {
		return zero, err
	}
	if err := p.expect(lexer.CloseToken(lexer.Brace)); err != nil {
		return zero, err
	}
	return parsed, nil
}

// parseDelimited consumes a balanced group starting at the current opening
// delimiter and returns the tokens between the delimiters.
func (p *Parser) parseDelimited() (lexer.Delimiter, []lexer.Token, error) {
	if p.token.Kind != lexer.OpenDelim {
		return 0, nil, p.unexpected(lexer.OpenToken(lexer.Paren))
	}

	open := p.token
	delim := open.Delim
	p.bump()

	var tokens []lexer.Token
	nesting := 0
	for {
		switch {
		case p.token.Kind == lexer.EOF:
			return 0, nil, diag.New(diag.UnclosedDelim, open.Span,
				"this %s is never closed", delim).
				WithLabel("unclosed %s", delim).
				WithHelp("add a matching `%s`", lexer.CloseToken(delim).Text())
		case p.token.Kind == lexer.OpenDelim && p.token.Delim == delim:
			nesting++
		case p.token.Kind == lexer.CloseDelim && p.token.Delim == delim:
			if nesting == 0 {
				p.bump()
				return delim, tokens, nil
			}
			nesting--
		}

		tokens = append(tokens, p.token)
		p.bump()
	}
}

// span returns the span from lo to the end of the previous token.
func (p *Parser) span(lo source.Span) source.Span {
	if p.prevToken.Span.IsDummy() {
		return lo
	}
	return lo.To(p.prevToken.Span)
}

func (p *Parser) unexpected(want lexer.Token) *diag.Diagnostic {
	d := diag.New(diag.UnexpectedToken, p.token.Span,
		"we expected %s but found %s", want.DescribeExpected(), p.token.Describe()).
		WithLabel("expected %s", want.DescribeExpected())

	if others := p.expectedOthers(want); len(others) > 0 {
		d.WithNote("also expected one of: %s", strings.Join(others, ", "))
	}
	return d
}

func (p *Parser) expectedOthers(want lexer.Token) []string {
	var out []string
	seen := map[string]bool{want.DescribeExpected(): true}
	for _, tok := range p.expected {
		desc := tok.DescribeExpected()
		if seen[desc] {
			continue
		}
		seen[desc] = true
		out = append(out, desc)
	}
	return out
}
