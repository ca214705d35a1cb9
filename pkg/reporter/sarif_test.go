package reporter_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/dapic/pkg/diag"
	"github.com/yaklabco/dapic/pkg/reporter"
)

func TestSARIFRenderer(t *testing.T) {
	t.Parallel()

	out, count := render(t, reporter.Options{Format: reporter.FormatSARIF, ToolVersion: "1.2.3"}, newResult(t))
	assert.Equal(t, 3, count)

	var doc reporter.SARIFOutput
	require.NoError(t, json.Unmarshal([]byte(out), &doc))

	assert.Equal(t, "2.1.0", doc.Version)
	require.Len(t, doc.Runs, 1)
	run := doc.Runs[0]

	assert.Equal(t, "dapic", run.Tool.Driver.Name)
	assert.Equal(t, "1.2.3", run.Tool.Driver.Version)

	require.Len(t, run.Tool.Driver.Rules, 2)
	verb := run.Tool.Driver.Rules[0]
	assert.Equal(t, "W0103", verb.ID)
	assert.Equal(t, "invalid-verb", verb.Name)
	assert.Equal(t, diag.InvalidVerb.Description, verb.ShortDescription.Text)
	require.NotNil(t, verb.DefaultConfig)
	assert.Equal(t, "warning", verb.DefaultConfig.Level)

	require.Len(t, run.Results, 3)
	assert.Equal(t, 0, run.Results[1].RuleIndex)
	last := run.Results[2]
	assert.Equal(t, "E0104", last.RuleID)
	assert.Equal(t, 1, last.RuleIndex)
	assert.Equal(t, "error", last.Level)
	assert.Equal(t, "b.dapi", last.Locations[0].PhysicalLocation.ArtifactLocation.URI)
	require.NotNil(t, last.Locations[0].PhysicalLocation.Region)
	assert.Equal(t, 2, last.Locations[0].PhysicalLocation.Region.StartLine)
	assert.Equal(t, 14, last.Locations[0].PhysicalLocation.Region.StartColumn)

	require.Len(t, run.Invocations, 1)
	notes := run.Invocations[0].ToolExecutionNotifications
	require.Len(t, notes, 1)
	assert.Equal(t, "c.dapi", notes[0].Locations[0].PhysicalLocation.ArtifactLocation.URI)
}

func TestSARIFRenderer_Empty(t *testing.T) {
	t.Parallel()

	out, _ := render(t, reporter.Options{Format: reporter.FormatSARIF}, nil)

	var doc reporter.SARIFOutput
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, "dev", doc.Runs[0].Tool.Driver.Version)
	assert.Empty(t, doc.Runs[0].Results)
	assert.Empty(t, doc.Runs[0].Invocations)
}
