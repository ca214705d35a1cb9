package configloader_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/dapic/internal/configloader"
	"github.com/yaklabco/dapic/pkg/config"
)

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("DAPIC_FORMAT", "sarif")
	t.Setenv("DAPIC_STRICT", "1")
	t.Setenv("DAPIC_JOBS", "3")
	t.Setenv("DAPIC_IGNORE", " vendor/** , ,testdata/*")
	t.Setenv("DAPIC_DOC_FLAVOR", "gfm")

	cfg := config.NewConfig()
	require.NoError(t, configloader.LoadFromEnv(cfg))

	assert.Equal(t, config.FormatSARIF, cfg.Format)
	assert.True(t, cfg.Strict)
	assert.Equal(t, 3, cfg.Jobs)
	assert.Equal(t, []string{"vendor/**", "testdata/*"}, cfg.Ignore)
	assert.Equal(t, config.DocFlavorGFM, cfg.DocFlavor)
	assert.Equal(t, []string{".dapi"}, cfg.Extensions)
}

func TestLoadFromEnv_InvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		env     string
		value   string
		wantErr string
	}{
		{"bool", "DAPIC_STRICT", "maybe", "invalid boolean for DAPIC_STRICT"},
		{"int", "DAPIC_JOBS", "many", "invalid integer for DAPIC_JOBS"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.env, tt.value)
			err := configloader.LoadFromEnv(config.NewConfig())
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoad_EnvBetweenFilesAndCLI(t *testing.T) {
	t.Setenv("DAPIC_FORMAT", "json")
	t.Setenv("DAPIC_CODE_FORMAT", "combined")

	tmpDir := t.TempDir()
	writeFile(t, tmpDir+"/.dapic.yml", "format: sarif\ncode_format: name\n")

	opts := isolated(tmpDir)
	opts.IgnoreEnv = false
	opts.CLIConfig = &config.Config{CodeFormat: config.CodeFormatID}

	result, err := configloader.Load(t.Context(), opts)
	require.NoError(t, err)
	assert.Equal(t, config.FormatJSON, result.Config.Format)
	assert.Equal(t, config.CodeFormatID, result.Config.CodeFormat)
}

func TestLoadFromEnv_NilConfig(t *testing.T) {
	t.Parallel()
	assert.NoError(t, configloader.LoadFromEnv(nil))
}

func TestEnvVarNames(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "DAPIC_LOG_LEVEL", configloader.GetEnvVarName("log_level"))
	assert.Empty(t, configloader.GetEnvVarName("fix"))

	vars := configloader.ListEnvVars()
	assert.Len(t, vars, 8)
	assert.Contains(t, vars, "DAPIC_EXTENSIONS")
}
