// Package symbol interns strings into small comparable handles.
//
// A fixed table of well-known names (keywords, attribute names and HTTP
// methods) is interned first, at the ids given by the constants below, so
// grammar code can compare against them without a map lookup.
package symbol

import (
	"strings"
	"sync"
)

// Symbol is an interned string. Two symbols are equal exactly when their
// strings are equal, provided both came from the same Interner.
type Symbol uint32

// Well-known symbols, in the order they are pre-seeded.
const (
	Empty Symbol = iota
	PathRoot

	KwAuth
	KwBody
	KwCode
	KwEnum
	KwHeaders
	KwMeta
	KwModel
	KwParams
	KwPath
	KwQuery
	KwScope
	KwVerb
	KwFalse
	KwTrue

	AttrDeprecated
	AttrDescription
	AttrDoc
	AttrFormat
	AttrType

	MethodConnect
	MethodDelete
	MethodGet
	MethodHead
	MethodOptions
	MethodPatch
	MethodPost
	MethodPut
	MethodTrace

	numPreseeded
)

//nolint:gochecknoglobals // Read-only lookup table.
var preseeded = [numPreseeded]string{
	Empty:    "",
	PathRoot: "{{root}}",

	KwAuth:    "auth",
	KwBody:    "body",
	KwCode:    "code",
	KwEnum:    "enum",
	KwHeaders: "headers",
	KwMeta:    "meta",
	KwModel:   "model",
	KwParams:  "params",
	KwPath:    "path",
	KwQuery:   "query",
	KwScope:   "scope",
	KwVerb:    "verb",
	KwFalse:   "false",
	KwTrue:    "true",

	AttrDeprecated:  "deprecated",
	AttrDescription: "description",
	AttrDoc:         "doc",
	AttrFormat:      "format",
	AttrType:        "type",

	MethodConnect: "CONNECT",
	MethodDelete:  "DELETE",
	MethodGet:     "GET",
	MethodHead:    "HEAD",
	MethodOptions: "OPTIONS",
	MethodPatch:   "PATCH",
	MethodPost:    "POST",
	MethodPut:     "PUT",
	MethodTrace:   "TRACE",
}

// Interner maps strings to symbols and back. It is safe for concurrent use;
// resolving a symbol only takes the read lock.
type Interner struct {
	mu      sync.RWMutex
	names   map[string]Symbol
	strings []string
}

// newInterner returns an interner holding the well-known symbols. Only the
// process-wide interner is reachable from other packages, because
// Symbol.String always resolves through it.
func newInterner() *Interner {
	in := &Interner{
		names:   make(map[string]Symbol, 2*len(preseeded)),
		strings: make([]string, 0, 2*len(preseeded)),
	}
	for _, s := range preseeded {
		in.strings = append(in.strings, s)
		in.names[s] = Symbol(len(in.strings) - 1)
	}
	return in
}

// Intern returns the symbol for s, allocating a new one on first sight.
// The interner keeps its own copy of s, so callers may pass substrings of
// large buffers without keeping those buffers alive.
func (in *Interner) Intern(s string) Symbol {
	in.mu.RLock()
	sym, ok := in.names[s]
	in.mu.RUnlock()
	if ok {
		return sym
	}

	in.mu.Lock()
	defer in.mu.Unlock()

	if sym, ok := in.names[s]; ok {
		return sym
	}

	owned := strings.Clone(s)
	in.strings = append(in.strings, owned)
	sym = Symbol(len(in.strings) - 1)
	in.names[owned] = sym

	return sym
}

// Lookup returns the string for sym. It reports false for ids the
// interner never handed out.
func (in *Interner) Lookup(sym Symbol) (string, bool) {
	in.mu.RLock()
	defer in.mu.RUnlock()

	if int(sym) >= len(in.strings) {
		return "", false
	}
	return in.strings[sym], true
}

// Len returns the number of interned strings.
func (in *Interner) Len() int {
	in.mu.RLock()
	defer in.mu.RUnlock()
	return len(in.strings)
}

var (
	defaultInterner *Interner //nolint:gochecknoglobals // Process-wide interner.
	defaultOnce     sync.Once //nolint:gochecknoglobals // Guards defaultInterner.
)

// Default returns the process-wide interner, creating it on first use.
// Every package in dapic interns through it, so symbols produced by
// different goroutines compare equal.
func Default() *Interner {
	defaultOnce.Do(func() {
		defaultInterner = newInterner()
	})
	return defaultInterner
}

// Intern interns s in the process-wide interner.
func Intern(s string) Symbol {
	return Default().Intern(s)
}

// String resolves the symbol through the process-wide interner.
func (s Symbol) String() string {
	str, _ := Default().Lookup(s)
	return str
}

// IsPreseeded reports whether s is one of the well-known symbols.
func (s Symbol) IsPreseeded() bool { return s < numPreseeded }

// IsKeyword reports whether s names an item keyword or a boolean literal.
func (s Symbol) IsKeyword() bool { return s >= KwAuth && s <= KwTrue }

// IsHTTPMethod reports whether s is one of the accepted verb names.
func (s Symbol) IsHTTPMethod() bool { return s >= MethodConnect && s <= MethodTrace }

// IsBool reports whether s is true or false.
func (s Symbol) IsBool() bool { return s == KwTrue || s == KwFalse }

// ItemKeywords returns the keywords that can start an item.
func ItemKeywords() []Symbol {
	return []Symbol{KwScope, KwPath, KwMeta, KwHeaders, KwQuery, KwCode, KwModel, KwEnum, KwAuth, KwVerb, KwBody, KwParams}
}

// HTTPMethods returns the accepted verb names in alphabetical order.
func HTTPMethods() []Symbol {
	out := make([]Symbol, 0, MethodTrace-MethodConnect+1)
	for s := MethodConnect; s <= MethodTrace; s++ {
		out = append(out, s)
	}
	return out
}

// Strings resolves a list of symbols.
func Strings(syms []Symbol) []string {
	out := make([]string, len(syms))
	for i, s := range syms {
		out[i] = s.String()
	}
	return out
}
