package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/yaklabco/dapic/pkg/diag"
)

// commentWrapWidth is the maximum width for wrapped comments in templates.
const commentWrapWidth = 70

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Full documents every diagnostic code.
	Full bool

	// Format is the output format: "yaml" or "json".
	Format string
}

// GenerateTemplate creates a configuration file template.
func GenerateTemplate(opts TemplateOptions) ([]byte, error) {
	if opts.Format == "json" {
		return templateToJSON(opts.Full)
	}
	if opts.Full {
		return generateFullTemplate(), nil
	}
	return generateMinimalTemplate(), nil
}

func generateMinimalTemplate() []byte {
	return []byte(DefaultTemplateHeader() + `

# Output format: text, json, sarif or summary
format: text

# How codes are shown: id, name or combined
# code_format: id

# Fail on warnings too
# strict: false

# File patterns to ignore (glob patterns)
# ignore:
#   - "vendor/**"

# Per-diagnostic settings, by code id or name
# diagnostics:
#   W0103:
#     severity: error
#   unknown-token:
#     enabled: false
`)
}

func generateFullTemplate() []byte {
	var buf bytes.Buffer

	buf.WriteString(DefaultTemplateHeader() + `
#
# This template lists every setting and every diagnostic code with its
# default severity. Uncomment and modify settings as needed.

# Output format: text, json, sarif or summary
format: text

# How codes are shown: id, name or combined
code_format: id

# Extensions picked up when a directory is checked
extensions:
  - ".dapi"

# File patterns to ignore (glob patterns)
ignore:
  - "vendor/**"
  - ".git/**"

# Fail on warnings too
strict: false

# Log level: debug, info, warn or error
log_level: info

# Markdown flavor of doc comments: commonmark or gfm
doc_flavor: commonmark

# Number of files checked in parallel (0 = one per CPU)
jobs: 0

# Per-diagnostic settings
diagnostics:
`)

	for _, code := range diag.Codes() {
		fmt.Fprintf(&buf, "\n  # %s: %s\n", code.ID, code.Name)
		fmt.Fprintf(&buf, "  # %s\n", wrapComment(code.Description, commentWrapWidth))
		fmt.Fprintf(&buf, "  %s:\n", code.ID)
		buf.WriteString("    enabled: true\n")
		fmt.Fprintf(&buf, "    severity: %s\n", code.Severity)
	}

	return buf.Bytes()
}

// wrapComment wraps a comment to fit within maxWidth characters.
func wrapComment(text string, maxWidth int) string {
	if len(text) <= maxWidth {
		return text
	}

	var lines []string
	currentLine := ""
	for _, word := range strings.Fields(text) {
		switch {
		case currentLine == "":
			currentLine = word
		case len(currentLine)+1+len(word) <= maxWidth:
			currentLine += " " + word
		default:
			lines = append(lines, currentLine)
			currentLine = word
		}
	}
	if currentLine != "" {
		lines = append(lines, currentLine)
	}

	return strings.Join(lines, "\n  # ")
}

// jsonTemplate mirrors the YAML keys of Config for JSON output.
type jsonTemplate struct {
	Format      OutputFormat                `json:"format"`
	CodeFormat  CodeFormat                  `json:"code_format"`
	Extensions  []string                    `json:"extensions"`
	Ignore      []string                    `json:"ignore"`
	Strict      bool                        `json:"strict"`
	LogLevel    string                      `json:"log_level"`
	DocFlavor   string                      `json:"doc_flavor"`
	Jobs        int                         `json:"jobs"`
	Diagnostics map[string]DiagnosticConfig `json:"diagnostics"`
}

func templateToJSON(full bool) ([]byte, error) {
	defaults := NewConfig()
	tmpl := jsonTemplate{
		Format:      defaults.Format,
		CodeFormat:  defaults.CodeFormat,
		Extensions:  defaults.Extensions,
		Ignore:      []string{},
		LogLevel:    defaults.LogLevel,
		DocFlavor:   defaults.DocFlavor,
		Diagnostics: map[string]DiagnosticConfig{},
	}

	if full {
		enabled := true
		for _, code := range diag.Codes() {
			severity := string(code.Severity)
			tmpl.Diagnostics[code.ID] = DiagnosticConfig{Enabled: &enabled, Severity: &severity}
		}
	}

	out, err := json.MarshalIndent(tmpl, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal JSON: %w", err)
	}
	return out, nil
}

// DefaultTemplateHeader returns the header of generated configs.
func DefaultTemplateHeader() string {
	return `# dapic configuration
# See: https://github.com/yaklabco/dapic`
}
