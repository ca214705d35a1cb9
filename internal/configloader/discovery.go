package configloader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

const appName = "dapic"

// ConfigPaths are the configuration files found for one run. An empty
// field means no file at that level.
type ConfigPaths struct {
	System   string // /etc/dapic/config.yaml
	User     string // $XDG_CONFIG_HOME/dapic/config.yaml
	Project  string // nearest .dapic.yml at or above the working directory
	Explicit string // --config
}

// ProjectConfigFiles are the names searched for in each directory, in
// order of preference. `dapic init --format json` writes the last one.
//
//nolint:gochecknoglobals // read-only table
var ProjectConfigFiles = []string{
	".dapic.yml",
	".dapic.yaml",
	"dapic.yml",
	"dapic.yaml",
	".dapic.json",
}

//nolint:gochecknoglobals // read-only table
var (
	levelConfigFiles = []string{"config.yaml", "config.yml"}
	vcsRootMarkers   = []string{".git", ".hg", ".svn"}
)

// DiscoverPaths finds the system, user and project configuration files
// for workDir.
func DiscoverPaths(ctx context.Context, workDir string) (*ConfigPaths, error) {
	project, err := FindProjectConfig(ctx, workDir)
	if err != nil {
		return nil, err
	}
	return &ConfigPaths{
		System:  firstFile(systemConfigDir(), levelConfigFiles),
		User:    firstFile(userConfigDir(), levelConfigFiles),
		Project: project,
	}, nil
}

func systemConfigDir() string {
	if runtime.GOOS == "windows" {
		root := os.Getenv("ProgramData")
		if root == "" {
			root = `C:\ProgramData`
		}
		return filepath.Join(root, appName)
	}
	return filepath.Join("/etc", appName)
}

// userConfigDir follows XDG on every platform, so a dotfiles checkout
// works the same on macOS and Linux.
func userConfigDir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", appName)
}

// FindProjectConfig walks up from startDir (the working directory when
// empty) and returns the first project configuration file, or "". The walk
// stops after a VCS root or the home directory.
func FindProjectConfig(ctx context.Context, startDir string) (string, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", startDir, err)
	}
	home, _ := os.UserHomeDir()

	for {
		if err := ctx.Err(); err != nil {
			return "", fmt.Errorf("find project config: %w", err)
		}
		if path := firstFile(dir, ProjectConfigFiles); path != "" {
			return path, nil
		}
		if dir == home || isVCSRoot(dir) {
			return "", nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

// firstFile returns the first regular file dir/name, or "".
func firstFile(dir string, names []string) string {
	if dir == "" {
		return ""
	}
	for _, name := range names {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && info.Mode().IsRegular() {
			return path
		}
	}
	return ""
}

func isVCSRoot(dir string) bool {
	for _, marker := range vcsRootMarkers {
		if info, err := os.Stat(filepath.Join(dir, marker)); err == nil && info.IsDir() {
			return true
		}
	}
	return false
}
