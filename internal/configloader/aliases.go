package configloader

import (
	"fmt"
	"maps"
	"slices"

	"github.com/yaklabco/dapic/pkg/config"
	"github.com/yaklabco/dapic/pkg/diag"
)

// ResolveCode resolves a diagnostic key, given as a code id or name in any
// case, to its canonical code id.
func ResolveCode(key string) (string, bool) {
	code, ok := diag.LookupCode(key)
	if !ok {
		return "", false
	}
	return code.ID, true
}

// normalizeDiagnosticKeys rewrites the diagnostics map to canonical code
// ids. Unknown keys are kept for validation to report. When one code is
// configured under two keys, the later one wins and a warning is added.
func normalizeDiagnosticKeys(cfg *config.Config, result *LoadResult) {
	if len(cfg.Diagnostics) == 0 {
		return
	}

	normalized := make(map[string]config.DiagnosticConfig, len(cfg.Diagnostics))
	seen := make(map[string]string)

	for _, key := range slices.Sorted(maps.Keys(cfg.Diagnostics)) {
		dc := cfg.Diagnostics[key]
		id, found := ResolveCode(key)
		if !found {
			normalized[key] = dc
			continue
		}

		if original, dup := seen[id]; dup {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("duplicate diagnostic configuration: %q and %q both refer to %s; using %q",
					original, key, id, key))
		}
		seen[id] = key
		normalized[id] = dc
	}

	cfg.Diagnostics = normalized
}
