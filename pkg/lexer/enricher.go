package lexer

import (
	"strings"

	"github.com/yaklabco/dapic/pkg/diag"
	"github.com/yaklabco/dapic/pkg/source"
	"github.com/yaklabco/dapic/pkg/symbol"
)

// Enricher turns the raw tokens of one source file into rich tokens.
// Lexical errors are reported to the handler and the offending text is
// skipped like whitespace, so the stream always continues.
type Enricher struct {
	diag   *diag.Handler
	file   *source.File
	cursor *Cursor
	pos    source.BytePos
	in     *symbol.Interner
}

// NewEnricher returns an Enricher positioned at the start of file.
func NewEnricher(h *diag.Handler, file *source.File) *Enricher {
	return &Enricher{
		diag:   h,
		file:   file,
		cursor: NewCursor(file.Src),
		pos:    file.StartPos,
		in:     symbol.Default(),
	}
}

// Next returns the next rich token and whether whitespace, a comment or
// skipped invalid text came before it. After the end of input it keeps
// returning EOF.
func (e *Enricher) Next() (Token, bool) {
	spaced := false

	for {
		raw := e.cursor.Next()
		start := e.pos
		e.pos = e.pos.Add(raw.Len)
		span := source.Span{Lo: start, Hi: e.pos}

		tok := Token{Span: span}

		switch raw.Kind {
		case RawWhitespace:
			spaced = true
			continue

		case RawLineComment:
			if raw.Doc == DocNone {
				spaced = true
				continue
			}
			tok.Kind = DocComment
			tok.Doc = raw.Doc
			tok.Sym = e.in.Intern(docContent(e.text(span), raw.Doc))

		case RawIdent:
			tok.Kind = Ident
			tok.Sym = e.in.Intern(e.text(span))

		case RawInvalidIdent:
			e.emit(diag.New(diag.InvalidIdentifier, span, "we found an invalid identifier `%s`", e.text(span)).
				WithLabel("invalid identifier").
				WithHelp("identifiers may only contain letters, digits and underscores"))
			spaced = true
			continue

		case RawUnknown:
			e.emit(diag.New(diag.UnknownToken, span, "we found an unknown token `%s`", e.text(span)).
				WithLabel("this character starts no token"))
			spaced = true
			continue

		case RawLiteral:
			tok.Kind = Literal
			tok.Lit = raw.Lit
			tok.Sym = e.in.Intern(e.literalContent(raw, span))

		case RawEOF:
			tok.Kind = EOF

		default:
			tok.Kind, tok.Delim, tok.Op = richKind(raw.Kind)
		}

		return tok, spaced
	}
}

// Tokens drains the enricher, returning every token up to and including
// EOF along with its spacing.
func (e *Enricher) Tokens() ([]Token, []Spacing) {
	var toks []Token
	var spacing []Spacing
	for {
		tok, spaced := e.Next()
		toks = append(toks, tok)
		if spaced {
			spacing = append(spacing, Alone)
		} else {
			spacing = append(spacing, Joint)
		}
		if tok.Kind == EOF {
			return toks, spacing
		}
	}
}

func (e *Enricher) literalContent(raw RawToken, span source.Span) string {
	text := e.text(span)
	if raw.Lit != LitStr {
		return text
	}
	if !raw.Terminated {
		e.emit(diag.New(diag.UnterminatedString, span, "this string literal is never closed").
			WithLabel("unterminated string").
			WithHelp("add a closing `\"`"))
		return text[1:]
	}
	return text[1 : len(text)-1]
}

func (e *Enricher) text(span source.Span) string {
	return e.file.Src[span.Lo-e.file.StartPos : span.Hi-e.file.StartPos]
}

func (e *Enricher) emit(d *diag.Diagnostic) {
	if e.diag != nil {
		e.diag.Emit(d)
	}
}

// docContent strips the comment marker and a trailing carriage return.
func docContent(text string, style DocStyle) string {
	if style == DocInner {
		text = text[len("##!"):]
	} else {
		text = text[len("##"):]
	}
	return strings.TrimSuffix(text, "\r")
}

func richKind(k RawKind) (Kind, Delimiter, OpKind) {
	switch k {
	case RawSemi:
		return Semi, 0, 0
	case RawComma:
		return Comma, 0, 0
	case RawDot:
		return Dot, 0, 0
	case RawOpenParen:
		return OpenDelim, Paren, 0
	case RawCloseParen:
		return CloseDelim, Paren, 0
	case RawOpenBrace:
		return OpenDelim, Brace, 0
	case RawCloseBrace:
		return CloseDelim, Brace, 0
	case RawOpenBracket:
		return OpenDelim, Bracket, 0
	case RawCloseBracket:
		return CloseDelim, Bracket, 0
	case RawAt:
		return At, 0, 0
	case RawTilde:
		return Tilde, 0, 0
	case RawQuestion:
		return Question, 0, 0
	case RawColon:
		return Colon, 0, 0
	case RawDollar:
		return Dollar, 0, 0
	case RawEq:
		return Eq, 0, 0
	case RawBang:
		return Bang, 0, 0
	case RawLt:
		return Op, 0, OpLt
	case RawGt:
		return Op, 0, OpGt
	case RawMinus:
		return Op, 0, OpMinus
	case RawAnd:
		return Op, 0, OpAnd
	case RawOr:
		return Op, 0, OpOr
	case RawPlus:
		return Op, 0, OpPlus
	case RawStar:
		return Op, 0, OpStar
	case RawSlash:
		return Op, 0, OpSlash
	case RawCaret:
		return Op, 0, OpCaret
	case RawPercent:
		return Op, 0, OpPercent
	default:
		return EOF, 0, 0
	}
}
