package lexer

import (
	"fmt"

	"github.com/yaklabco/dapic/pkg/source"
	"github.com/yaklabco/dapic/pkg/symbol"
)

// Kind classifies a rich token.
type Kind uint8

// Rich token kinds.
const (
	EOF Kind = iota
	DocComment
	Ident
	Literal
	Semi
	Comma
	Dot
	OpenDelim
	CloseDelim
	At
	Tilde
	Question
	Colon
	Dollar
	Eq
	Bang
	Op
)

// Delimiter is the shape of a bracketing pair.
type Delimiter uint8

// Delimiters.
const (
	Paren Delimiter = iota
	Brace
	Bracket
)

func (d Delimiter) open() string {
	switch d {
	case Brace:
		return "{"
	case Bracket:
		return "["
	default:
		return "("
	}
}

func (d Delimiter) close() string {
	switch d {
	case Brace:
		return "}"
	case Bracket:
		return "]"
	default:
		return ")"
	}
}

func (d Delimiter) String() string {
	switch d {
	case Brace:
		return "brace"
	case Bracket:
		return "bracket"
	default:
		return "parenthesis"
	}
}

// OpKind is an operator character.
type OpKind uint8

// Operators.
const (
	OpLt OpKind = iota
	OpGt
	OpMinus
	OpAnd
	OpOr
	OpPlus
	OpStar
	OpSlash
	OpCaret
	OpPercent
)

//nolint:gochecknoglobals // Read-only lookup table.
var opText = [...]string{
	OpLt:      "<",
	OpGt:      ">",
	OpMinus:   "-",
	OpAnd:     "&",
	OpOr:      "|",
	OpPlus:    "+",
	OpStar:    "*",
	OpSlash:   "/",
	OpCaret:   "^",
	OpPercent: "%",
}

func (o OpKind) String() string {
	if int(o) < len(opText) {
		return opText[o]
	}
	return "?"
}

// Spacing records whether a token directly follows the previous one.
type Spacing uint8

// Spacing values.
const (
	// Alone means whitespace or a comment came before the token.
	Alone Spacing = iota
	// Joint means the token touches the previous one, as in "a+b".
	Joint
)

func (s Spacing) String() string {
	if s == Joint {
		return "joint"
	}
	return "alone"
}

// Token is a token with its meaning resolved and its absolute span.
type Token struct {
	Kind Kind

	// Sym holds the name of an Ident, the content of a Literal or the text
	// of a DocComment.
	Sym symbol.Symbol

	Delim Delimiter
	Op    OpKind
	Lit   LitKind
	Doc   DocStyle

	Span source.Span
}

// DummyToken is an EOF token with no location.
//
//nolint:gochecknoglobals // Sentinel value.
var DummyToken = Token{Kind: EOF, Span: source.DummySpan}

// IdentToken returns a token template for the identifier sym.
func IdentToken(sym symbol.Symbol) Token { return Token{Kind: Ident, Sym: sym} }

// OpenToken returns a token template for an opening delimiter.
func OpenToken(d Delimiter) Token { return Token{Kind: OpenDelim, Delim: d} }

// CloseToken returns a token template for a closing delimiter.
func CloseToken(d Delimiter) Token { return Token{Kind: CloseDelim, Delim: d} }

// OpToken returns a token template for an operator.
func OpToken(o OpKind) Token { return Token{Kind: Op, Op: o} }

// KindToken returns a token template for a payload-free kind.
func KindToken(k Kind) Token { return Token{Kind: k} }

// Same reports whether t and other have the same kind and payload,
// ignoring spans.
func (t Token) Same(other Token) bool {
	if t.Kind != other.Kind {
		return false
	}
	switch t.Kind {
	case Ident:
		return t.Sym == other.Sym
	case Literal:
		return t.Lit == other.Lit && t.Sym == other.Sym
	case DocComment:
		return t.Doc == other.Doc && t.Sym == other.Sym
	case OpenDelim, CloseDelim:
		return t.Delim == other.Delim
	case Op:
		return t.Op == other.Op
	default:
		return true
	}
}

// Ident returns the token as an identifier.
func (t Token) Ident() (symbol.Ident, bool) {
	if t.Kind != Ident {
		return symbol.EmptyIdent, false
	}
	return symbol.NewIdent(t.Sym, t.Span), true
}

// IsKeyword reports whether t is the identifier kw.
func (t Token) IsKeyword(kw symbol.Symbol) bool {
	return t.Kind == Ident && t.Sym == kw
}

// IsOpenDelim reports whether t opens any delimited group.
func (t Token) IsOpenDelim() bool { return t.Kind == OpenDelim }

// Text returns the source form of t, as closely as it can be rebuilt.
func (t Token) Text() string {
	switch t.Kind {
	case EOF:
		return ""
	case DocComment:
		if t.Doc == DocInner {
			return "##!" + t.Sym.String()
		}
		return "##" + t.Sym.String()
	case Ident:
		return t.Sym.String()
	case Literal:
		if t.Lit == LitStr {
			return `"` + t.Sym.String() + `"`
		}
		return t.Sym.String()
	case OpenDelim:
		return t.Delim.open()
	case CloseDelim:
		return t.Delim.close()
	case Op:
		return t.Op.String()
	default:
		return punctText[t.Kind]
	}
}

//nolint:gochecknoglobals // Read-only lookup table.
var punctText = map[Kind]string{
	Semi:     ";",
	Comma:    ",",
	Dot:      ".",
	At:       "@",
	Tilde:    "~",
	Question: "?",
	Colon:    ":",
	Dollar:   "$",
	Eq:       "=",
	Bang:     "!",
}

//nolint:gochecknoglobals // Read-only lookup table.
var kindNames = map[Kind]string{
	EOF:        "end of file token",
	DocComment: "doc comment",
	Ident:      "ident",
	Literal:    "literal",
	Semi:       "semi",
	Comma:      "comma",
	Dot:        "dot",
	At:         "at",
	Tilde:      "tilde",
	Question:   "question mark",
	Colon:      "colon",
	Dollar:     "dollar",
	Eq:         "equal sign",
	Bang:       "bang",
	Op:         "operator",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	switch k {
	case OpenDelim:
		return "opening delimiter"
	case CloseDelim:
		return "closing delimiter"
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// Describe renders t for messages, for example "an ident `User`" or
// "a semi `;`".
func (t Token) Describe() string {
	var noun string
	switch t.Kind {
	case EOF:
		return "an end of file token"
	case OpenDelim:
		noun = "opening " + t.Delim.String()
	case CloseDelim:
		noun = "closing " + t.Delim.String()
	case Literal:
		noun = t.Lit.String() + " literal"
	case DocComment:
		noun = t.Doc.String() + " doc comment"
		return article(noun) + " " + noun
	default:
		noun = t.Kind.String()
	}

	text := t.Text()
	if text == "" {
		return article(noun) + " " + noun
	}
	return fmt.Sprintf("%s %s `%s`", article(noun), noun, text)
}

// DescribeExpected renders a token template, leaving out payloads that
// only a real token has.
func (t Token) DescribeExpected() string {
	switch {
	case t.Kind == Ident && t.Sym == symbol.Empty:
		return "an identifier"
	case t.Kind == Literal:
		return "a literal"
	case t.Kind == DocComment:
		return "a doc comment"
	}
	return t.Describe()
}

func (t Token) String() string { return t.Describe() }

func article(noun string) string {
	if noun == "" {
		return "a"
	}
	switch noun[0] {
	case 'a', 'e', 'i', 'o', 'u':
		return "an"
	}
	return "a"
}
