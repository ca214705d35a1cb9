// Package runner checks many dapi files concurrently against one shared
// session.
package runner

import (
	"github.com/yaklabco/dapic/pkg/config"
	"github.com/yaklabco/dapic/pkg/diag"
)

// Options controls a multi-file check.
type Options struct {
	// Paths are the user-specified files or directories. Empty means ".".
	Paths []string

	// WorkingDir resolves relative Paths and glob matches. Empty means
	// the process working directory.
	WorkingDir string

	// Extensions lists the lowercase extensions, with leading dot, picked up
	// when walking directories. Files named explicitly are always checked.
	Extensions []string

	// IncludeGlobs, when set, restricts walked files to those matching one
	// of the patterns.
	IncludeGlobs []string

	// ExcludeGlobs skip files and whole directories.
	ExcludeGlobs []string

	// FollowSymlinks walks into symlinked directories.
	FollowSymlinks bool

	// Jobs caps the number of files checked at once. 0 or less means
	// GOMAXPROCS.
	Jobs int

	// Sniff runs language detection on files that fail to parse.
	Sniff bool
}

// DefaultExtensions returns the extensions of dapi source files.
func DefaultExtensions() []string {
	return []string{config.DefaultExtension}
}

// OptionsFromConfig builds Options for paths from a resolved configuration.
func OptionsFromConfig(cfg *config.Config, paths []string) Options {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	return Options{
		Paths:        paths,
		Extensions:   cfg.Extensions,
		ExcludeGlobs: cfg.Ignore,
		Jobs:         cfg.Jobs,
		Sniff:        cfg.Sniff,
	}
}

// HandlerOptions translates the per-code settings of cfg into handler
// options. Keys must already be canonical code ids; invalid severities are
// ignored since validation rejects them earlier.
func HandlerOptions(cfg *config.Config) diag.HandlerOptions {
	opts := diag.HandlerOptions{
		SeverityOverrides: make(map[string]diag.Severity),
		Suppressed:        make(map[string]bool),
	}
	if cfg == nil {
		return opts
	}

	for id, dc := range cfg.Diagnostics {
		if dc.Enabled != nil && !*dc.Enabled {
			opts.Suppressed[id] = true
			continue
		}
		if dc.Severity == nil {
			continue
		}
		if sev, err := diag.ParseSeverity(*dc.Severity); err == nil {
			opts.SeverityOverrides[id] = sev
		}
	}

	return opts
}

func (o Options) effectiveExtensions() []string {
	if len(o.Extensions) == 0 {
		return DefaultExtensions()
	}
	return o.Extensions
}

func (o Options) effectivePaths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}
