package analysis_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/dapic/pkg/analysis"
)

func TestSortField_IsValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		field analysis.SortField
		want  bool
	}{
		{analysis.SortByCount, true},
		{analysis.SortByAlpha, true},
		{analysis.SortBySeverity, true},
		{"size", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(string(tt.field), func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.field.IsValid())
		})
	}
}

func TestTotals(t *testing.T) {
	t.Parallel()

	assert.False(t, analysis.Totals{}.HasIssues())
	assert.True(t, analysis.Totals{Issues: 2, Warnings: 2}.HasIssues())
	assert.False(t, analysis.Totals{Issues: 2, Warnings: 2}.HasErrors())
	assert.True(t, analysis.Totals{Issues: 1, Errors: 1}.HasErrors())
}
