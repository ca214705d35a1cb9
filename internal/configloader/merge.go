package configloader

import (
	"maps"

	"github.com/yaklabco/dapic/pkg/config"
)

// merge combines two configurations, with override taking precedence over base.
// The merge follows these rules:
//   - Scalar values: override overwrites base if override is non-zero
//   - Maps: deep merge, with override's values taking precedence
//   - Slices: override replaces base entirely if override is non-nil
//   - Nil/unset values in override do not override values in base
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := *base

	if override.Format != "" {
		result.Format = override.Format
	}
	if override.CodeFormat != "" {
		result.CodeFormat = override.CodeFormat
	}
	if override.LogLevel != "" {
		result.LogLevel = override.LogLevel
	}
	if override.DocFlavor != "" {
		result.DocFlavor = override.DocFlavor
	}
	if override.Jobs != 0 {
		result.Jobs = override.Jobs
	}

	// false is the zero value, so a later layer can turn strict on but
	// never back off.
	if override.Strict {
		result.Strict = true
	}

	result.Diagnostics = mergeDiagnostics(base.Diagnostics, override.Diagnostics)

	if override.Extensions != nil {
		result.Extensions = override.Extensions
	}
	if override.Ignore != nil {
		result.Ignore = override.Ignore
	}

	return &result
}

func mergeDiagnostics(base, override map[string]config.DiagnosticConfig) map[string]config.DiagnosticConfig {
	if base == nil && override == nil {
		return nil
	}

	result := make(map[string]config.DiagnosticConfig, len(base)+len(override))
	maps.Copy(result, base)

	for key, val := range override {
		existing, ok := result[key]
		if !ok {
			result[key] = val
			continue
		}
		if val.Enabled != nil {
			existing.Enabled = val.Enabled
		}
		if val.Severity != nil {
			existing.Severity = val.Severity
		}
		result[key] = existing
	}

	return result
}

// MergeAll merges configurations in order, later ones taking precedence.
func MergeAll(configs ...*config.Config) *config.Config {
	if len(configs) == 0 {
		return nil
	}

	result := configs[0]
	for _, cfg := range configs[1:] {
		result = merge(result, cfg)
	}
	return result
}
