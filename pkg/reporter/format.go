package reporter

import (
	"fmt"
	"strings"

	"github.com/yaklabco/dapic/pkg/config"
)

// Format selects a Renderer. It is the configuration file's format setting.
type Format = config.OutputFormat

const (
	FormatText    = config.FormatText
	FormatJSON    = config.FormatJSON
	FormatSARIF   = config.FormatSARIF
	FormatSummary = config.FormatSummary
)

// Formats lists every format in the order help text shows them.
func Formats() []Format {
	return []Format{FormatText, FormatJSON, FormatSARIF, FormatSummary}
}

// ParseFormat resolves a --format value. Empty means text.
func ParseFormat(s string) (Format, error) {
	if s == "" {
		return FormatText, nil
	}
	f := Format(strings.ToLower(s))
	if !f.IsValid() {
		names := make([]string, 0, len(Formats()))
		for _, f := range Formats() {
			names = append(names, string(f))
		}
		return "", fmt.Errorf("unknown format %q; valid formats: %s", s, strings.Join(names, ", "))
	}
	return f, nil
}
