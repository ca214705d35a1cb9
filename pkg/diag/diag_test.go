package diag_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/dapic/pkg/diag"
	"github.com/yaklabco/dapic/pkg/source"
)

func TestNew(t *testing.T) {
	t.Parallel()

	d := diag.New(diag.UnexpectedToken, source.NewSpan(3, 4), "we expected %s but found %s", "a semi `;`", "a comma `,`").
		WithLabel("here").
		WithHelp("remove the %s", "comma").
		WithNote("first note").
		WithNote("second note")

	assert.Equal(t, "E0100", d.Code)
	assert.Equal(t, "unexpected-token", d.Name)
	assert.Equal(t, diag.SeverityError, d.Severity)
	assert.Equal(t, "we expected a semi `;` but found a comma `,`", d.Message)
	assert.Equal(t, "here", d.Label)
	assert.Equal(t, "remove the comma", d.Help)
	assert.Equal(t, []string{"first note", "second note"}, d.Notes)
	assert.True(t, d.IsError())
	assert.Equal(t, "error[E0100]: we expected a semi `;` but found a comma `,`", d.Error())

	var err error = d
	var target *diag.Diagnostic
	require.ErrorAs(t, err, &target)
}

func TestNew_LiteralPercent(t *testing.T) {
	t.Parallel()

	d := diag.New(diag.UnknownToken, source.DummySpan, "100% unknown")
	assert.Equal(t, "100% unknown", d.Message)
}

func TestLookupCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		query  string
		wantID string
		found  bool
	}{
		{query: "E0100", wantID: "E0100", found: true},
		{query: "e0100", wantID: "E0100", found: true},
		{query: "invalid-verb", wantID: "W0103", found: true},
		{query: "Foreign-Input", wantID: "A0300", found: true},
		{query: "E9999", found: false},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			t.Parallel()

			got, ok := diag.LookupCode(tt.query)
			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.wantID, got.ID)
		})
	}
}

func TestCodes_UniqueAndDescribed(t *testing.T) {
	t.Parallel()

	ids := make(map[string]bool)
	names := make(map[string]bool)
	for _, c := range diag.Codes() {
		assert.False(t, ids[c.ID], "duplicate id %s", c.ID)
		assert.False(t, names[c.Name], "duplicate name %s", c.Name)
		assert.NotEmpty(t, c.Description, c.ID)
		assert.True(t, c.Severity.IsValid(), c.ID)
		ids[c.ID] = true
		names[c.Name] = true
	}
}

func TestParseSeverity(t *testing.T) {
	t.Parallel()

	for _, s := range []string{"error", "warning", "advice"} {
		got, err := diag.ParseSeverity(s)
		require.NoError(t, err)
		assert.Equal(t, diag.Severity(s), got)
	}

	_, err := diag.ParseSeverity("info")
	require.Error(t, err)

	assert.Greater(t, diag.SeverityError.Rank(), diag.SeverityWarning.Rank())
	assert.Greater(t, diag.SeverityWarning.Rank(), diag.SeverityAdvice.Rank())
}

func TestSuggest(t *testing.T) {
	t.Parallel()

	keywords := []string{"scope", "path", "meta", "headers", "query", "code", "model", "enum", "auth", "verb", "body", "params"}

	tests := []struct {
		word string
		want string
		ok   bool
	}{
		{word: "modl", want: "model", ok: true},
		{word: "Model", want: "model", ok: true},
		{word: "hdrs", want: "headers", ok: true},
		{word: "zzz", ok: false},
		{word: "", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			t.Parallel()

			got, ok := diag.Suggest(tt.word, keywords)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
