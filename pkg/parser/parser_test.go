package parser_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/dapic/pkg/ast"
	"github.com/yaklabco/dapic/pkg/diag"
	"github.com/yaklabco/dapic/pkg/lexer"
	"github.com/yaklabco/dapic/pkg/parser"
	"github.com/yaklabco/dapic/pkg/session"
	"github.com/yaklabco/dapic/pkg/source"
	"github.com/yaklabco/dapic/pkg/symbol"
)

func parse(t *testing.T, src string) (*ast.Root, *source.File, *session.Session) {
	t.Helper()

	sess := session.Default()
	f := sess.SourceMap.LoadAnon(src)
	root, err := parser.Parse(sess, f)
	require.NoError(t, err)
	require.NotNil(t, root)
	return root, f, sess
}

func parseErr(t *testing.T, src string) (*diag.Diagnostic, *session.Session) {
	t.Helper()

	sess := session.Default()
	f := sess.SourceMap.LoadAnon(src)
	root, err := parser.Parse(sess, f)
	require.Error(t, err)
	assert.Nil(t, root)

	require.ErrorIs(t, err, diag.ErrFatal)
	var d *diag.Diagnostic
	require.ErrorAs(t, err, &d)
	return d, sess
}

func TestParse_MinimalDocument(t *testing.T) {
	t.Parallel()

	root, f, sess := parse(t, `meta { name "pets" version 1.0 }`)

	assert.Equal(t, ast.RootNodeID, root.ID)
	assert.Equal(t, `meta { name "pets" version 1.0 }`, f.Slice(root.Span))
	require.Len(t, root.Items, 1)

	meta, ok := root.Items[0].Kind.(*ast.Meta)
	require.True(t, ok)
	require.Len(t, meta.Fields, 2)
	assert.Equal(t, "name", meta.Fields[0].Ident.String())
	assert.Equal(t, &ast.LitExpr{Kind: lexer.LitStr, Value: symbol.Intern("pets")}, meta.Fields[0].Expr.Kind)
	assert.Equal(t, &ast.LitExpr{Kind: lexer.LitNumber, Value: symbol.Intern("1.0")}, meta.Fields[1].Expr.Kind)
	assert.Equal(t, "version 1.0", f.Slice(meta.Fields[1].Span))

	assert.Empty(t, sess.Diag.Diagnostics())
}

func TestParse_MissingMeta(t *testing.T) {
	t.Parallel()

	d, sess := parseErr(t, "model Pet {}")
	assert.Equal(t, diag.ExpectedKeyword.ID, d.Code)
	assert.Contains(t, d.Message, "`meta`")
	assert.Equal(t, 1, sess.Diag.ErrorCount())
}

func TestParse_FieldDefs(t *testing.T) {
	t.Parallel()

	root, f, _ := parse(t, `meta {}
## A pet.
model Pet {
  id u64 "identifier" |@format: uuid|
  X-Request-Id string
  tags [string]
}`)

	require.Len(t, root.Items, 2)
	item := root.Items[1]
	assert.Equal(t, "Pet", item.Ident.String())
	assert.Equal(t, []string{" A pet."}, ast.Docs(item.Attrs))

	model, ok := item.Kind.(*ast.Model)
	require.True(t, ok)
	require.Len(t, model.Fields, 3)

	id := model.Fields[0]
	assert.Equal(t, `id u64 "identifier" |@format: uuid|`, f.Slice(id.Span))
	require.Len(t, id.Attrs, 2)
	for _, a := range id.Attrs {
		assert.Equal(t, ast.Inline, a.Style)
	}

	desc, ok := ast.FindAttr(id.Attrs, symbol.AttrDescription)
	require.True(t, ok)
	assert.Equal(t, &ast.LitExpr{Kind: lexer.LitStr, Value: symbol.Intern("identifier")}, desc.Kind.(*ast.MetaAttr).Value.Kind)

	format, ok := ast.FindAttr(id.Attrs, symbol.AttrFormat)
	require.True(t, ok)
	pathExpr, ok := format.Kind.(*ast.MetaAttr).Value.Kind.(*ast.PathExpr)
	require.True(t, ok)
	assert.Equal(t, "uuid", pathExpr.Path.String())

	assert.Equal(t, "X-Request-Id", model.Fields[1].Ident.String())
	assert.Equal(t, "X-Request-Id", f.Slice(model.Fields[1].Ident.Span))

	arr, ok := model.Fields[2].Ty.Kind.(*ast.ArrayTy)
	require.True(t, ok)
	assert.Equal(t, "string", arr.Elem.Kind.(*ast.PathTy).Path.String())
}

func TestParse_SpacedMinusIsNotJoined(t *testing.T) {
	t.Parallel()

	d, _ := parseErr(t, "meta {}\nheaders { X - Id string }")
	assert.Equal(t, diag.ExpectedType.ID, d.Code)
}

func TestParse_Types(t *testing.T) {
	t.Parallel()

	root, _, _ := parse(t, `meta {}
model T {
  unit ()
  paren (string)
  pair (string, u64,)
  nested { code u16 }
  qualified auth.User
}`)

	fields := root.Items[1].Kind.(*ast.Model).Fields
	require.Len(t, fields, 5)

	assert.Equal(t, &ast.TupleTy{}, fields[0].Ty.Kind)

	paren, ok := fields[1].Ty.Kind.(*ast.ParenTy)
	require.True(t, ok)
	assert.IsType(t, &ast.PathTy{}, paren.Inner.Kind)

	pair, ok := fields[2].Ty.Kind.(*ast.TupleTy)
	require.True(t, ok)
	assert.Len(t, pair.Elems, 2)

	nested, ok := fields[3].Ty.Kind.(*ast.InlineModelTy)
	require.True(t, ok)
	require.Len(t, nested.Fields, 1)
	assert.Equal(t, "code", nested.Fields[0].Ident.String())

	qualified := fields[4].Ty.Kind.(*ast.PathTy).Path
	assert.Equal(t, "auth.User", qualified.String())
	assert.Len(t, qualified.Segments, 2)
}

func TestParse_ExpectedType(t *testing.T) {
	t.Parallel()

	d, _ := parseErr(t, "meta {}\nmodel A { id 5 }")
	assert.Equal(t, diag.ExpectedType.ID, d.Code)
	assert.Equal(t, "we expected a type but found a number literal `5`", d.Message)
}

func TestParse_Scopes(t *testing.T) {
	t.Parallel()

	root, f, _ := parse(t, `meta {}
scope users;
@deprecated
scope pets {
  @!doc("pet store")
  model Pet {}
}`)

	require.Len(t, root.Items, 3)

	unloaded := root.Items[1]
	assert.Equal(t, "users", unloaded.Ident.String())
	assert.IsType(t, &ast.ScopeUnloaded{}, unloaded.Kind.(*ast.Scope).Kind)

	loaded := root.Items[2]
	require.Len(t, loaded.Attrs, 2)
	assert.Equal(t, ast.Outer, loaded.Attrs[0].Style)
	assert.Equal(t, ast.Inner, loaded.Attrs[1].Style)

	normal, ok := loaded.Attrs[1].Kind.(*ast.NormalAttr)
	require.True(t, ok)
	assert.Equal(t, lexer.Paren, normal.Delim)
	require.Len(t, normal.Tokens, 1)
	assert.Equal(t, lexer.Literal, normal.Tokens[0].Kind)

	scope, ok := loaded.Kind.(*ast.Scope).Kind.(*ast.ScopeLoaded)
	require.True(t, ok)
	assert.True(t, scope.Inline)
	require.Len(t, scope.Items, 1)
	assert.Equal(t, "Pet", scope.Items[0].Ident.String())

	body := f.Slice(scope.Span)
	assert.Equal(t, byte('{'), body[0])
	assert.Equal(t, byte('}'), body[len(body)-1])
}

func TestParse_AttrStyleMismatchIsRecovered(t *testing.T) {
	t.Parallel()

	fieldAttrs := func(root *ast.Root) []*ast.Attribute {
		return root.Items[1].Kind.(*ast.Model).Fields[0].Attrs
	}

	tests := []struct {
		name    string
		src     string
		attrs   func(root *ast.Root) []*ast.Attribute
		message string
		style   ast.AttrStyle
		check   func(t *testing.T, attr *ast.Attribute)
	}{
		{
			name:    "inner attribute before a field",
			src:     "meta {}\nmodel A { @!x id u64 }",
			attrs:   fieldAttrs,
			message: "we expected an outer attribute but found an inner attribute",
			style:   ast.Outer,
			check: func(t *testing.T, attr *ast.Attribute) {
				t.Helper()
				assert.Equal(t, "x", attr.Kind.Name().String())
			},
		},
		{
			name:    "inner attribute between bars",
			src:     "meta {}\nmodel A { name string |@!x| }",
			attrs:   fieldAttrs,
			message: "we expected an inline attribute but found an inner attribute",
			style:   ast.Inline,
			check: func(t *testing.T, attr *ast.Attribute) {
				t.Helper()
				assert.Equal(t, "x", attr.Kind.Name().String())
			},
		},
		{
			name: "inner doc comment after the first item",
			src:  "meta {}\n##! late\nmodel A {}",
			attrs: func(root *ast.Root) []*ast.Attribute {
				return root.Items[1].Attrs
			},
			message: "we expected an outer attribute but found an inner attribute",
			style:   ast.Outer,
			check: func(t *testing.T, attr *ast.Attribute) {
				t.Helper()
				assert.Equal(t, []string{" late"}, ast.Docs([]*ast.Attribute{attr}))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			root, _, sess := parse(t, tt.src)

			diags := sess.Diag.Diagnostics()
			require.Len(t, diags, 1)
			assert.Equal(t, diag.WrongAttrStyle.ID, diags[0].Code)
			assert.Equal(t, tt.message, diags[0].Message)

			require.Len(t, root.Items, 2)
			attrs := tt.attrs(root)
			require.Len(t, attrs, 1)
			assert.Equal(t, tt.style, attrs[0].Style)
			tt.check(t, attrs[0])
		})
	}
}

func TestParse_InnerDocsAttachToRoot(t *testing.T) {
	t.Parallel()

	root, _, sess := parse(t, "##! Pet store API\n## The metadata.\nmeta {}")

	require.Len(t, root.Attrs, 1)
	assert.Equal(t, ast.Inner, root.Attrs[0].Style)
	assert.Equal(t, []string{" Pet store API"}, ast.Docs(root.Attrs))

	assert.Equal(t, []string{" The metadata."}, ast.Docs(root.Items[0].Attrs))
	assert.Empty(t, sess.Diag.Diagnostics())
}

func TestParse_PathsAndVerbs(t *testing.T) {
	t.Parallel()

	root, _, sess := parse(t, `meta {}
path users/{id}/. {
  params { id u64 }
  verb GET {
    query { limit u32 }
    code 200 { body User }
    code 5xx { body () }
  }
}`)

	item := root.Items[1]
	pathItem, ok := item.Kind.(*ast.PathItem)
	require.True(t, ok)

	complexKind, ok := pathItem.Kind.(*ast.PathComplex)
	require.True(t, ok)
	require.Len(t, complexKind.Parts, 3)
	assert.Equal(t, "users/{id}/.", complexKind.String())

	require.Len(t, pathItem.Items, 2)
	assert.IsType(t, &ast.Params{}, pathItem.Items[0].Kind)

	verb, ok := pathItem.Items[1].Kind.(*ast.Verb)
	require.True(t, ok)
	assert.Equal(t, symbol.MethodGet, verb.Method.Name)
	require.Len(t, verb.Items, 3)

	ok200 := verb.Items[1].Kind.(*ast.StatusCode)
	assert.Equal(t, &ast.LitExpr{Kind: lexer.LitNumber, Value: symbol.Intern("200")}, ok200.Code.Kind)
	require.Len(t, ok200.Items, 1)
	assert.IsType(t, &ast.Body{}, ok200.Items[0].Kind)

	serverErr := verb.Items[2].Kind.(*ast.StatusCode)
	assert.Equal(t, &ast.LitExpr{Kind: lexer.LitNumber, Value: symbol.Intern("5xx")}, serverErr.Code.Kind)

	assert.Empty(t, sess.Diag.Diagnostics())
}

func TestParse_SimplePaths(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
		want ast.PathKind
	}{
		{name: "simple", src: "path users {}", want: &ast.PathSimple{}},
		{name: "variable", src: "path {id} {}", want: &ast.PathVariable{}},
		{name: "current", src: "path . {}", want: &ast.PathCurrent{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			root, _, _ := parse(t, "meta {}\n"+tt.src)
			assert.IsType(t, tt.want, root.Items[1].Kind.(*ast.PathItem).Kind)
		})
	}
}

func TestParse_InvalidVerbWarns(t *testing.T) {
	t.Parallel()

	root, _, sess := parse(t, "meta {}\nverb get {}")

	diags := sess.Diag.Diagnostics()
	require.Len(t, diags, 1)
	assert.Equal(t, diag.InvalidVerb.ID, diags[0].Code)
	assert.Equal(t, diag.SeverityWarning, diags[0].Severity)
	assert.Equal(t, "did you mean `GET`?", diags[0].Help)

	assert.IsType(t, &ast.Verb{}, root.Items[1].Kind)
	assert.Zero(t, sess.Diag.ErrorCount())
}

func TestParse_AuthAndEnum(t *testing.T) {
	t.Parallel()

	root, _, _ := parse(t, `meta {}
auth Basic;
auth Token { header string }
enum Status { active "active" retired "retired" }`)

	use := root.Items[1].Kind.(*ast.Auth)
	assert.False(t, use.Define)
	assert.Empty(t, use.Fields)

	define := root.Items[2].Kind.(*ast.Auth)
	assert.True(t, define.Define)
	assert.Len(t, define.Fields, 1)

	enum := root.Items[3].Kind.(*ast.Enum)
	assert.Equal(t, "Status", root.Items[3].Ident.String())
	assert.Len(t, enum.Variants, 2)
}

func TestParse_Arrays(t *testing.T) {
	t.Parallel()

	root, _, _ := parse(t, `meta { servers ["a" "b", "c"] flags [true, false] }`)

	fields := root.Items[0].Kind.(*ast.Meta).Fields
	servers := fields[0].Expr.Kind.(*ast.ArrayExpr)
	assert.Len(t, servers.Elems, 3)

	flags := fields[1].Expr.Kind.(*ast.ArrayExpr)
	require.Len(t, flags.Elems, 2)
	assert.Equal(t, &ast.LitExpr{Kind: lexer.LitBool, Value: symbol.KwTrue}, flags.Elems[0].Kind)
}

func TestParse_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
		code string
		help string
	}{
		{name: "unknown item", src: "meta {}\nmdl Pet {}", code: diag.ExpectedItem.ID, help: "did you mean `model`?"},
		{name: "attrs without item", src: "meta {}\n@deprecated", code: diag.ExpectedItem.ID},
		{name: "unclosed attr group", src: "meta {}\nmodel A { @doc(x id u64 }", code: diag.UnclosedDelim.ID},
		{name: "missing brace", src: "meta {}\nmodel A", code: diag.UnexpectedToken.ID},
		{name: "missing expression", src: "meta { name }", code: diag.ExpectedExpr.ID},
		{name: "unterminated array", src: "meta { tags [1 2", code: diag.UnexpectedToken.ID},
		{name: "attrs without field", src: "meta {}\nmodel A { @deprecated }", code: diag.UnexpectedToken.ID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			d, sess := parseErr(t, tt.src)
			assert.Equal(t, tt.code, d.Code)
			if tt.help != "" {
				assert.Equal(t, tt.help, d.Help)
			}
			assert.Equal(t, 1, sess.Diag.ErrorCount())
		})
	}
}

func TestParse_UnexpectedTokenMessage(t *testing.T) {
	t.Parallel()

	d, _ := parseErr(t, "meta {}\nscope users ,")
	assert.Equal(t, diag.UnexpectedToken.ID, d.Code)
	assert.Equal(t, "we expected an opening brace `{` but found a comma `,`", d.Message)
	assert.Equal(t, []string{"also expected one of: a semi `;`"}, d.Notes)
}

func TestParse_LexicalErrorsDoNotStopParsing(t *testing.T) {
	t.Parallel()

	root, _, sess := parse(t, "meta { name \"pets\" }\nmodel Pet { id u64 ` }")

	assert.Len(t, root.Items, 2)
	diags := sess.Diag.Diagnostics()
	require.Len(t, diags, 1)
	assert.Equal(t, diag.UnknownToken.ID, diags[0].Code)
}

func TestLoadScope(t *testing.T) {
	t.Parallel()

	root, _, sess := parse(t, "meta {}\nscope pets;")
	item := root.Items[1]

	f := sess.SourceMap.LoadAnon("##! Pets.\nmodel Pet {}\nmodel Owner {}")
	require.NoError(t, parser.LoadScope(sess, f, item))

	require.Len(t, item.Attrs, 1)
	assert.Equal(t, ast.Inner, item.Attrs[0].Style)

	loaded, ok := item.Kind.(*ast.Scope).Kind.(*ast.ScopeLoaded)
	require.True(t, ok)
	assert.False(t, loaded.Inline)
	assert.Equal(t, f.Span(), loaded.Span)
	assert.Len(t, loaded.Items, 2)

	err := parser.LoadScope(sess, f, item)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already loaded")
}

func TestLoadScope_ReportsSyntaxErrors(t *testing.T) {
	t.Parallel()

	root, _, sess := parse(t, "meta {}\nscope pets;")
	f := sess.SourceMap.LoadAnon("model {}")

	err := parser.LoadScope(sess, f, root.Items[1])

	var d *diag.Diagnostic
	require.True(t, errors.As(err, &d))
	assert.Equal(t, 1, sess.Diag.ErrorCount())
	assert.IsType(t, &ast.ScopeUnloaded{}, root.Items[1].Kind.(*ast.Scope).Kind)
}

func TestParse_SpansAreAbsolute(t *testing.T) {
	t.Parallel()

	sess := session.Default()
	sess.SourceMap.LoadAnon("padding so the next file does not start at zero")
	f := sess.SourceMap.LoadAnon("meta {}\nmodel Pet { id u64 }")

	root, err := parser.Parse(sess, f)
	require.NoError(t, err)

	for _, n := range ast.FindAll(root, func(ast.Node) bool { return true }) {
		span := n.NodeSpan()
		assert.True(t, f.Contains(span.Lo), "span %s starts outside the file", span)
		assert.True(t, f.Contains(span.Hi), "span %s ends outside the file", span)
	}
	assert.Equal(t, "model Pet { id u64 }", f.Slice(root.Items[1].Span))
}

func TestParse_DumpKeepsVerbMethod(t *testing.T) {
	t.Parallel()

	root, _, _ := parse(t, "meta {} path a/{id}/. { verb GET { code 200 { body [User] } } }")

	tree := ast.Dump(root)
	require.Len(t, tree.Children, 2)
	path := tree.Children[1]
	assert.Equal(t, "a/{id}/.", path.Value)
	require.NotEmpty(t, path.Children)

	verb := path.Children[len(path.Children)-1]
	assert.Equal(t, "verb", verb.Kind)
	assert.Equal(t, "GET", verb.Value)

	var buf bytes.Buffer
	require.NoError(t, tree.WriteText(&buf))
	assert.Contains(t, buf.String(), "    verb = GET @")
}
