// Package config defines the configuration types for dapic.
// These types are plain data; discovery and merging live in
// internal/configloader.
package config

// OutputFormat specifies the output format for diagnostics.
type OutputFormat string

const (
	FormatText    OutputFormat = "text"
	FormatJSON    OutputFormat = "json"
	FormatSARIF   OutputFormat = "sarif"
	FormatSummary OutputFormat = "summary"
)

// IsValid reports whether f is a known format.
func (f OutputFormat) IsValid() bool {
	switch f {
	case FormatText, FormatJSON, FormatSARIF, FormatSummary:
		return true
	default:
		return false
	}
}

// CodeFormat controls how diagnostic codes appear in output.
type CodeFormat string

const (
	CodeFormatID       CodeFormat = "id"       // "E0100"
	CodeFormatName     CodeFormat = "name"     // "unexpected-token"
	CodeFormatCombined CodeFormat = "combined" // "E0100/unexpected-token"
)

// IsValid reports whether f is a known code format.
func (f CodeFormat) IsValid() bool {
	switch f {
	case CodeFormatID, CodeFormatName, CodeFormatCombined:
		return true
	default:
		return false
	}
}

// Doc comment Markdown flavors.
const (
	DocFlavorCommonMark = "commonmark"
	DocFlavorGFM        = "gfm"
)

// DefaultExtension is the extension of dapi source files.
const DefaultExtension = ".dapi"

// DiagnosticConfig adjusts one diagnostic code.
type DiagnosticConfig struct {
	Enabled  *bool   `json:"enabled,omitempty"  yaml:"enabled,omitempty"`
	Severity *string `json:"severity,omitempty" yaml:"severity,omitempty"`
}

// Config is the root configuration structure.
type Config struct {
	// Format is the output format.
	Format OutputFormat `yaml:"format"`

	// CodeFormat controls how codes are printed.
	CodeFormat CodeFormat `yaml:"code_format"`

	// Extensions lists the file extensions picked up when walking
	// directories.
	Extensions []string `yaml:"extensions"`

	// Ignore contains glob patterns for files to skip.
	Ignore []string `yaml:"ignore"`

	// Strict makes warnings fail the run.
	Strict bool `yaml:"strict"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`

	// DocFlavor is the Markdown flavor of doc comments.
	DocFlavor string `yaml:"doc_flavor"`

	// Jobs is the number of files checked in parallel; 0 means GOMAXPROCS.
	Jobs int `yaml:"jobs"`

	// Diagnostics holds per-code settings keyed by code id.
	Diagnostics map[string]DiagnosticConfig `yaml:"diagnostics"`

	// CLI-level options, not persisted.

	// NoColor disables styled output.
	NoColor bool `yaml:"-"`

	// Sniff enables foreign-input detection on files that fail to parse.
	Sniff bool `yaml:"-"`
}

// NewConfig returns a Config with the defaults.
func NewConfig() *Config {
	return &Config{
		Format:      FormatText,
		CodeFormat:  CodeFormatID,
		Extensions:  []string{DefaultExtension},
		LogLevel:    "info",
		DocFlavor:   DocFlavorCommonMark,
		Diagnostics: make(map[string]DiagnosticConfig),
		Sniff:       true,
	}
}
