package profiling_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/dapic/internal/profiling"
)

func TestModes(t *testing.T) {
	t.Parallel()

	modes := profiling.Modes()
	assert.Contains(t, modes, "cpu")
	assert.Contains(t, modes, "mem")
	assert.IsIncreasing(t, modes)
}

func TestStart_Empty(t *testing.T) {
	t.Parallel()

	stop, err := profiling.Start("", "")
	require.NoError(t, err)
	stop.Stop()
}

func TestStart_Unknown(t *testing.T) {
	t.Parallel()

	_, err := profiling.Start("disk", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown profile mode "disk"`)
}

// Profiles are process-wide, so this test does not run in parallel.
func TestStart_WritesProfile(t *testing.T) {
	dir := t.TempDir()

	stop, err := profiling.Start("mem", dir)
	require.NoError(t, err)
	stop.Stop()

	_, err = os.Stat(filepath.Join(dir, "mem.pprof"))
	assert.NoError(t, err)
}
