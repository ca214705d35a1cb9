// Package lexer turns dapi source text into tokens in two passes.
//
// The Cursor splits text into raw tokens that carry only a kind and a
// length. The Enricher runs a Cursor over a registered source file, drops
// whitespace and plain comments, interns names and literal contents, and
// attaches absolute spans.
package lexer

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// RawKind classifies a raw token.
type RawKind uint8

// Raw token kinds.
const (
	RawEOF RawKind = iota
	RawLineComment
	RawWhitespace
	RawIdent
	RawInvalidIdent
	RawLiteral

	RawSemi
	RawComma
	RawDot
	RawOpenParen
	RawCloseParen
	RawOpenBrace
	RawCloseBrace
	RawOpenBracket
	RawCloseBracket
	RawAt
	RawTilde
	RawQuestion
	RawColon
	RawDollar
	RawEq
	RawBang
	RawLt
	RawGt
	RawMinus
	RawAnd
	RawOr
	RawPlus
	RawStar
	RawSlash
	RawCaret
	RawPercent

	RawUnknown
)

//nolint:gochecknoglobals // Read-only lookup table.
var rawKindNames = [...]string{
	RawEOF:          "Eof",
	RawLineComment:  "LineComment",
	RawWhitespace:   "Whitespace",
	RawIdent:        "Ident",
	RawInvalidIdent: "InvalidIdent",
	RawLiteral:      "Literal",
	RawSemi:         "Semi",
	RawComma:        "Comma",
	RawDot:          "Dot",
	RawOpenParen:    "OpenParen",
	RawCloseParen:   "CloseParen",
	RawOpenBrace:    "OpenBrace",
	RawCloseBrace:   "CloseBrace",
	RawOpenBracket:  "OpenBracket",
	RawCloseBracket: "CloseBracket",
	RawAt:           "At",
	RawTilde:        "Tilde",
	RawQuestion:     "Question",
	RawColon:        "Colon",
	RawDollar:       "Dollar",
	RawEq:           "Eq",
	RawBang:         "Bang",
	RawLt:           "Lt",
	RawGt:           "Gt",
	RawMinus:        "Minus",
	RawAnd:          "And",
	RawOr:           "Or",
	RawPlus:         "Plus",
	RawStar:         "Star",
	RawSlash:        "Slash",
	RawCaret:        "Caret",
	RawPercent:      "Percent",
	RawUnknown:      "Unknown",
}

func (k RawKind) String() string {
	if int(k) < len(rawKindNames) {
		return rawKindNames[k]
	}
	return fmt.Sprintf("RawKind(%d)", k)
}

//nolint:gochecknoglobals // Read-only lookup table.
var punctuation = map[byte]RawKind{
	';': RawSemi,
	',': RawComma,
	'.': RawDot,
	'(': RawOpenParen,
	')': RawCloseParen,
	'{': RawOpenBrace,
	'}': RawCloseBrace,
	'[': RawOpenBracket,
	']': RawCloseBracket,
	'@': RawAt,
	'~': RawTilde,
	'?': RawQuestion,
	':': RawColon,
	'$': RawDollar,
	'=': RawEq,
	'!': RawBang,
	'<': RawLt,
	'>': RawGt,
	'-': RawMinus,
	'&': RawAnd,
	'|': RawOr,
	'+': RawPlus,
	'*': RawStar,
	'/': RawSlash,
	'^': RawCaret,
	'%': RawPercent,
}

// DocStyle tags a line comment that is documentation.
type DocStyle uint8

// Doc comment styles. DocNone marks a plain comment.
const (
	DocNone DocStyle = iota
	DocOuter
	DocInner
)

func (s DocStyle) String() string {
	switch s {
	case DocOuter:
		return "outer"
	case DocInner:
		return "inner"
	default:
		return "none"
	}
}

// LitKind distinguishes literal tokens.
type LitKind uint8

// Literal kinds. LitBool is only produced by the parser for true and false.
const (
	LitStr LitKind = iota
	LitNumber
	LitBool
)

func (k LitKind) String() string {
	switch k {
	case LitNumber:
		return "number"
	case LitBool:
		return "bool"
	default:
		return "string"
	}
}

// RawToken is a token as the Cursor sees it: a kind and a byte length
// relative to the end of the previous token.
type RawToken struct {
	Kind RawKind
	Len  int

	// Doc is set on line comments.
	Doc DocStyle

	// Lit and Terminated are set on literals.
	Lit        LitKind
	Terminated bool
}

// Cursor scans a string one raw token at a time. It never backtracks and
// never fails: every byte of the input ends up in exactly one token.
type Cursor struct {
	src string
	pos int
}

// NewCursor returns a Cursor at the start of src.
func NewCursor(src string) *Cursor {
	return &Cursor{src: src}
}

// Pos returns the number of bytes consumed so far.
func (c *Cursor) Pos() int { return c.pos }

// Next returns the next raw token. At the end of input it keeps returning
// a zero-length RawEOF.
func (c *Cursor) Next() RawToken {
	start := c.pos
	tok := c.advance()
	tok.Len = c.pos - start
	return tok
}

// Tokenize returns every raw token of src, ending with RawEOF.
func Tokenize(src string) []RawToken {
	c := NewCursor(src)
	var out []RawToken
	for {
		tok := c.Next()
		out = append(out, tok)
		if tok.Kind == RawEOF {
			return out
		}
	}
}

func (c *Cursor) advance() RawToken {
	if c.pos >= len(c.src) {
		return RawToken{Kind: RawEOF}
	}

	first := c.src[c.pos]
	switch {
	case first == '#':
		return c.lineComment()
	case first == '"':
		c.pos++
		return RawToken{Kind: RawLiteral, Lit: LitStr, Terminated: c.doubleQuotedString()}
	case '0' <= first && first <= '9':
		c.eatWhile(func(r rune) bool { return r == '_' || ('0' <= r && r <= '9') })
		return RawToken{Kind: RawLiteral, Lit: LitNumber, Terminated: true}
	}

	if kind, ok := punctuation[first]; ok {
		c.pos++
		return RawToken{Kind: kind}
	}

	r, size := utf8.DecodeRuneInString(c.src[c.pos:])
	if r == utf8.RuneError && size <= 1 {
		c.pos++
		return RawToken{Kind: RawUnknown}
	}

	switch {
	case isWhitespace(r):
		c.eatWhile(isWhitespace)
		return RawToken{Kind: RawWhitespace}
	case isIDStart(r):
		c.pos += size
		return c.ident()
	default:
		c.pos += size
		return RawToken{Kind: RawUnknown}
	}
}

// lineComment consumes up to, not including, the next newline.
// "##!" opens an inner doc comment and "##" followed by a blank opens an
// outer one.
func (c *Cursor) lineComment() RawToken {
	rest := c.src[c.pos:]
	doc := DocNone
	switch {
	case len(rest) >= 3 && rest[:3] == "##!":
		doc = DocInner
	case len(rest) == 2 && rest == "##":
		doc = DocOuter
	case len(rest) > 2 && rest[:2] == "##" && isBlank(rest[2]):
		doc = DocOuter
	}

	if end := strings.IndexByte(rest, '\n'); end >= 0 {
		c.pos += end
	} else {
		c.pos = len(c.src)
	}
	return RawToken{Kind: RawLineComment, Doc: doc}
}

func isBlank(b byte) bool {
	return b == ' ' || b == '\t' || b == '\r' || b == '\n'
}

func (c *Cursor) ident() RawToken {
	c.eatWhile(isIDContinue)

	r, _ := utf8.DecodeRuneInString(c.src[c.pos:])
	if isEmoji(r) || r == zeroWidthJoiner {
		c.eatWhile(isInvalidIdentContinue)
		return RawToken{Kind: RawInvalidIdent}
	}
	return RawToken{Kind: RawIdent}
}

func isInvalidIdentContinue(r rune) bool {
	return isIDContinue(r) || isEmoji(r) || r == zeroWidthJoiner
}

// doubleQuotedString consumes a string body after the opening quote and
// reports whether the closing quote was found. Escapes are skipped, not
// interpreted.
func (c *Cursor) doubleQuotedString() bool {
	for c.pos < len(c.src) {
		switch c.src[c.pos] {
		case '"':
			c.pos++
			return true
		case '\\':
			c.pos++
			if c.pos < len(c.src) && (c.src[c.pos] == '\\' || c.src[c.pos] == '"') {
				c.pos++
			}
		default:
			c.pos++
		}
	}
	return false
}

// eatWhile consumes runes while pred holds. An invalid UTF-8 byte stops it.
func (c *Cursor) eatWhile(pred func(rune) bool) {
	for c.pos < len(c.src) {
		r, size := utf8.DecodeRuneInString(c.src[c.pos:])
		if (r == utf8.RuneError && size <= 1) || !pred(r) {
			return
		}
		c.pos += size
	}
}
