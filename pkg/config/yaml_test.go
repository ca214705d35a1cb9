package config_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/dapic/pkg/config"
	"github.com/yaklabco/dapic/pkg/diag"
)

func TestConfigClone(t *testing.T) {
	t.Parallel()

	t.Run("nil config returns nil", func(t *testing.T) {
		t.Parallel()
		var c *config.Config
		assert.Nil(t, c.Clone())
	})

	t.Run("deep copies", func(t *testing.T) {
		t.Parallel()

		severity := "error"
		original := config.NewConfig()
		original.Ignore = []string{"vendor/**"}
		original.Diagnostics["W0103"] = config.DiagnosticConfig{Severity: &severity}

		clone := original.Clone()
		require.NotNil(t, clone)
		assert.Equal(t, original, clone)

		clone.Ignore[0] = "changed"
		clone.Extensions[0] = ".txt"
		*clone.Diagnostics["W0103"].Severity = "advice"

		assert.Equal(t, "vendor/**", original.Ignore[0])
		assert.Equal(t, ".dapi", original.Extensions[0])
		assert.Equal(t, "error", *original.Diagnostics["W0103"].Severity)
	})
}

func TestConfigToYAML(t *testing.T) {
	t.Parallel()

	var nilCfg *config.Config
	data, err := nilCfg.ToYAML()
	require.NoError(t, err)
	assert.Nil(t, data)

	cfg := config.NewConfig()
	cfg.Strict = true
	data, err = cfg.ToYAML()
	require.NoError(t, err)
	assert.Contains(t, string(data), "format: text")
	assert.Contains(t, string(data), "strict: true")
	assert.NotContains(t, string(data), "nocolor")

	data, err = cfg.ToYAMLWithHeader("# header")
	require.NoError(t, err)
	assert.Regexp(t, "^# header\n\nformat: text", string(data))
}

func TestFromYAML(t *testing.T) {
	t.Parallel()

	cfg, err := config.FromYAML([]byte(`
format: sarif
code_format: combined
diagnostics:
  W0103:
    severity: error
  unknown-token:
    enabled: false
`))
	require.NoError(t, err)
	assert.Equal(t, config.FormatSARIF, cfg.Format)
	assert.Equal(t, config.CodeFormatCombined, cfg.CodeFormat)
	require.Contains(t, cfg.Diagnostics, "W0103")
	assert.Equal(t, "error", *cfg.Diagnostics["W0103"].Severity)
	assert.False(t, *cfg.Diagnostics["unknown-token"].Enabled)

	cfg, err = config.FromYAML([]byte("strict: true"))
	require.NoError(t, err)
	assert.NotNil(t, cfg.Diagnostics)

	_, err = config.FromYAML([]byte("format: [unclosed"))
	require.Error(t, err)
}

func TestGenerateTemplate(t *testing.T) {
	t.Parallel()

	minimal, err := config.GenerateTemplate(config.TemplateOptions{})
	require.NoError(t, err)
	parsed, err := config.FromYAML(minimal)
	require.NoError(t, err)
	assert.Equal(t, config.FormatText, parsed.Format)

	full, err := config.GenerateTemplate(config.TemplateOptions{Full: true})
	require.NoError(t, err)
	parsed, err = config.FromYAML(full)
	require.NoError(t, err)
	for _, code := range diag.Codes() {
		require.Contains(t, parsed.Diagnostics, code.ID)
		assert.Equal(t, string(code.Severity), *parsed.Diagnostics[code.ID].Severity)
		assert.Contains(t, string(full), "# "+code.ID+": "+code.Name)
	}

	asJSON, err := config.GenerateTemplate(config.TemplateOptions{Full: true, Format: "json"})
	require.NoError(t, err)
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(asJSON, &decoded))
	assert.Equal(t, "text", decoded["format"])
	assert.Len(t, decoded["diagnostics"], len(diag.Codes()))
}
