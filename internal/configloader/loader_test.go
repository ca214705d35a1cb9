package configloader_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/dapic/internal/configloader"
	"github.com/yaklabco/dapic/pkg/config"
)

func isolated(dir string) configloader.LoadOptions {
	return configloader.LoadOptions{
		WorkingDir:         dir,
		IgnoreSystemConfig: true,
		IgnoreUserConfig:   true,
		IgnoreEnv:          true,
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func TestLoad_Defaults(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	// Stop the upward search at the temp dir.
	require.NoError(t, os.Mkdir(filepath.Join(tmpDir, ".git"), 0o755))

	result, err := configloader.Load(context.Background(), isolated(tmpDir))
	require.NoError(t, err)
	require.NotNil(t, result.Config)

	assert.Equal(t, config.FormatText, result.Config.Format)
	assert.Equal(t, config.CodeFormatID, result.Config.CodeFormat)
	assert.Equal(t, []string{".dapi"}, result.Config.Extensions)
	assert.Equal(t, config.DocFlavorCommonMark, result.Config.DocFlavor)
	assert.Empty(t, result.LoadedFrom)
	assert.Empty(t, result.Warnings)
}

func TestLoad_ProjectConfig(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, ".dapic.yml")
	writeFile(t, configPath, `
format: json
strict: true
ignore:
  - "vendor/**"
diagnostics:
  W0103:
    severity: error
`)

	result, err := configloader.Load(context.Background(), isolated(tmpDir))
	require.NoError(t, err)

	assert.Equal(t, []string{configPath}, result.LoadedFrom)
	assert.Equal(t, config.FormatJSON, result.Config.Format)
	assert.True(t, result.Config.Strict)
	assert.Equal(t, []string{"vendor/**"}, result.Config.Ignore)
	require.Contains(t, result.Config.Diagnostics, "W0103")
	assert.Equal(t, "error", *result.Config.Diagnostics["W0103"].Severity)

	// Untouched fields keep their defaults.
	assert.Equal(t, config.CodeFormatID, result.Config.CodeFormat)
}

func TestLoad_ProjectConfigFoundFromSubdirectory(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(tmpDir, ".git"), 0o755))
	configPath := filepath.Join(tmpDir, "dapic.yaml")
	writeFile(t, configPath, "code_format: name\n")

	sub := filepath.Join(tmpDir, "api", "v1")
	require.NoError(t, os.MkdirAll(sub, 0o755))

	result, err := configloader.Load(context.Background(), isolated(sub))
	require.NoError(t, err)
	assert.Equal(t, configPath, result.Paths.Project)
	assert.Equal(t, config.CodeFormatName, result.Config.CodeFormat)
}

func TestLoad_ProjectJSONConfig(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(tmpDir, ".git"), 0o755))
	configPath := filepath.Join(tmpDir, ".dapic.json")
	writeFile(t, configPath, `{"format": "sarif", "strict": true}`)

	result, err := configloader.Load(context.Background(), isolated(tmpDir))
	require.NoError(t, err)
	assert.Equal(t, configPath, result.Paths.Project)
	assert.Equal(t, config.FormatSARIF, result.Config.Format)
	assert.True(t, result.Config.Strict)
}

func TestLoad_ExplicitConfigOverridesProject(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, ".dapic.yml"), "format: json\njobs: 2\n")
	explicit := filepath.Join(tmpDir, "ci", "dapic.yml")
	writeFile(t, explicit, "format: sarif\n")

	opts := isolated(tmpDir)
	opts.ExplicitPath = explicit

	result, err := configloader.Load(context.Background(), opts)
	require.NoError(t, err)

	assert.Len(t, result.LoadedFrom, 2)
	assert.Equal(t, config.FormatSARIF, result.Config.Format)
	assert.Equal(t, 2, result.Config.Jobs)
}

func TestLoad_CLIOverrides(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, ".dapic.yml"), "format: json\n")

	opts := isolated(tmpDir)
	opts.CLIConfig = &config.Config{Format: config.FormatSummary, Jobs: 4}

	result, err := configloader.Load(context.Background(), opts)
	require.NoError(t, err)
	assert.Equal(t, config.FormatSummary, result.Config.Format)
	assert.Equal(t, 4, result.Config.Jobs)
}

func TestLoad_InvalidConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"malformed yaml", "format: [json\n", "parse yaml"},
		{"bad format", "format: table\n", `invalid format "table"`},
		{"bad severity", "diagnostics:\n  E0100:\n    severity: fatal\n", `invalid severity "fatal"`},
		{"negative jobs", "jobs: -1\n", "jobs must be >= 0"},
		{"bad glob", "ignore:\n  - \"[\"\n", "invalid glob pattern"},
		{"bad extension", "extensions:\n  - dapi\n", "must start with a dot"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tmpDir := t.TempDir()
			configPath := filepath.Join(tmpDir, ".dapic.yml")
			writeFile(t, configPath, tt.content)

			_, err := configloader.Load(context.Background(), isolated(tmpDir))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
			assert.Contains(t, err.Error(), configPath)
		})
	}
}

func TestLoad_ContextCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := configloader.Load(ctx, isolated(t.TempDir()))
	require.ErrorIs(t, err, context.Canceled)
}

func TestLoad_NormalizesDiagnosticNames(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, ".dapic.yml"), `
diagnostics:
  unknown-token:
    enabled: false
  Invalid-Verb:
    severity: error
`)

	result, err := configloader.Load(context.Background(), isolated(tmpDir))
	require.NoError(t, err)

	diags := result.Config.Diagnostics
	assert.Len(t, diags, 2)
	require.Contains(t, diags, "E0002")
	assert.False(t, *diags["E0002"].Enabled)
	require.Contains(t, diags, "W0103")
	assert.Equal(t, "error", *diags["W0103"].Severity)
	assert.Empty(t, result.Warnings)
}

func TestLoad_WarnsDuplicateDiagnostics(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, ".dapic.yml"), `
diagnostics:
  E0002:
    enabled: true
  unknown-token:
    enabled: false
`)

	result, err := configloader.Load(context.Background(), isolated(tmpDir))
	require.NoError(t, err)

	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "duplicate diagnostic configuration")
	// Keys are visited in sorted order, so the name wins over the id.
	assert.False(t, *result.Config.Diagnostics["E0002"].Enabled)
}

func TestLoad_WarnsUnknownDiagnostic(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, ".dapic.yml"), "diagnostics:\n  unknown-tokn:\n    enabled: false\n")

	result, err := configloader.Load(context.Background(), isolated(tmpDir))
	require.NoError(t, err)

	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], `unknown diagnostic "unknown-tokn"`)
	assert.Contains(t, result.Warnings[0], `did you mean "unknown-token"?`)
}

func TestResolveCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		key  string
		want string
		ok   bool
	}{
		{"E0100", "E0100", true},
		{"e0100", "E0100", true},
		{"unexpected-token", "E0100", true},
		{"FOREIGN-INPUT", "A0300", true},
		{"MD001", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			t.Parallel()
			got, ok := configloader.ResolveCode(tt.key)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
