package diag

import "strings"

// Code identifies a class of diagnostic. ID is stable (E0100), Name is the
// human alias (unexpected-token) accepted wherever an ID is.
type Code struct {
	ID          string
	Name        string
	Severity    Severity
	Description string
}

// Diagnostic codes emitted by the lexer.
//
//nolint:gochecknoglobals // Read-only registry entries.
var (
	InvalidIdentifier = Code{
		ID: "E0001", Name: "invalid-identifier", Severity: SeverityError,
		Description: "Identifiers may only contain letters, digits and underscores; emoji and joiners are rejected.",
	}
	UnknownToken = Code{
		ID: "E0002", Name: "unknown-token", Severity: SeverityError,
		Description: "A character that starts no token of the language.",
	}
	UnterminatedString = Code{
		ID: "E0003", Name: "unterminated-string", Severity: SeverityError,
		Description: "A string literal reaches the end of the file without a closing quote.",
	}
)

// Diagnostic codes emitted by the parser.
//
//nolint:gochecknoglobals // Read-only registry entries.
var (
	UnexpectedToken = Code{
		ID: "E0100", Name: "unexpected-token", Severity: SeverityError,
		Description: "The parser found a token that cannot appear at this point.",
	}
	ExpectedKeyword = Code{
		ID: "E0101", Name: "expected-keyword", Severity: SeverityError,
		Description: "A specific keyword was required here.",
	}
	WrongAttrStyle = Code{
		ID: "E0102", Name: "wrong-attribute-style", Severity: SeverityError,
		Description: "An inner attribute (@!) was used where an outer one is expected, or the reverse. The attribute is kept.",
	}
	InvalidVerb = Code{
		ID: "W0103", Name: "invalid-verb", Severity: SeverityWarning,
		Description: "A verb block names something that is not a known HTTP method.",
	}
	ExpectedType = Code{
		ID: "E0104", Name: "expected-type", Severity: SeverityError,
		Description: "A type was required: a path, [array], (tuple) or { inline model }.",
	}
	ExpectedExpr = Code{
		ID: "E0105", Name: "expected-expression", Severity: SeverityError,
		Description: "A value was required: a literal, a boolean, a path or an [array].",
	}
	ExpectedItem = Code{
		ID: "E0106", Name: "expected-item", Severity: SeverityError,
		Description: "An item keyword such as model, path or verb was required.",
	}
	UnclosedDelim = Code{
		ID: "E0109", Name: "unclosed-delimiter", Severity: SeverityError,
		Description: "The file ends before a bracket, brace or parenthesis is closed.",
	}
)

// Diagnostic codes emitted by the driver.
//
//nolint:gochecknoglobals // Read-only registry entries.
var (
	ForeignInput = Code{
		ID: "A0300", Name: "foreign-input", Severity: SeverityAdvice,
		Description: "The file looks like source code in another language.",
	}
)

// Codes returns every registered code ordered by ID.
func Codes() []Code {
	return []Code{
		InvalidIdentifier,
		UnknownToken,
		UnterminatedString,
		UnexpectedToken,
		ExpectedKeyword,
		WrongAttrStyle,
		InvalidVerb,
		ExpectedType,
		ExpectedExpr,
		ExpectedItem,
		UnclosedDelim,
		ForeignInput,
	}
}

// LookupCode finds a code by ID or name, ignoring case.
func LookupCode(idOrName string) (Code, bool) {
	for _, c := range Codes() {
		if strings.EqualFold(c.ID, idOrName) || strings.EqualFold(c.Name, idOrName) {
			return c, true
		}
	}
	return Code{}, false
}
