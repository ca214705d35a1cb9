package configloader

import (
	"fmt"
	"maps"
	"path/filepath"
	"slices"
	"strings"

	"github.com/yaklabco/dapic/internal/logging"
	"github.com/yaklabco/dapic/pkg/config"
	"github.com/yaklabco/dapic/pkg/diag"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Field is the path to the invalid field (e.g., "diagnostics.E0100.severity").
	Field string

	// Value is the invalid value.
	Value any

	// Message describes the validation error.
	Message string

	// FilePath is the config file containing the error (if known).
	FilePath string

	// Line is the line number in the config file (if known).
	Line int
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var parts []string

	if e.FilePath != "" {
		if e.Line > 0 {
			parts = append(parts, fmt.Sprintf("%s:%d", e.FilePath, e.Line))
		} else {
			parts = append(parts, e.FilePath)
		}
	}

	if e.Field != "" {
		parts = append(parts, e.Field)
	}

	parts = append(parts, e.Message)

	return strings.Join(parts, ": ")
}

// ValidationResult contains all validation findings.
type ValidationResult struct {
	// Errors are validation failures that prevent loading.
	Errors []ValidationError

	// Warnings are non-fatal issues (e.g., unknown codes).
	Warnings []ValidationError
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// HasWarnings returns true if there are any warnings.
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// AllMessages returns all error and warning messages combined.
func (r *ValidationResult) AllMessages() []string {
	messages := make([]string, 0, len(r.Errors)+len(r.Warnings))
	for _, e := range r.Errors {
		messages = append(messages, "error: "+e.Error())
	}
	for _, w := range r.Warnings {
		messages = append(messages, "warning: "+w.Error())
	}
	return messages
}

//nolint:gochecknoglobals // Read-only lookup table.
var knownDocFlavors = []string{config.DocFlavorCommonMark, config.DocFlavorGFM}

// Validate checks a configuration for errors and warnings.
func Validate(cfg *config.Config) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		return result
	}

	if cfg.Format != "" && !cfg.Format.IsValid() {
		result.addError("format", cfg.Format,
			"invalid format %q; must be one of: text, json, sarif, summary", cfg.Format)
	}

	if cfg.CodeFormat != "" && !cfg.CodeFormat.IsValid() {
		result.addError("code_format", cfg.CodeFormat,
			"invalid code format %q; must be one of: id, name, combined", cfg.CodeFormat)
	}

	if cfg.LogLevel != "" && !logging.ValidLevel(cfg.LogLevel) {
		result.addError("log_level", cfg.LogLevel,
			"invalid log level %q; must be one of: %s", cfg.LogLevel, strings.Join(logging.Levels(), ", "))
	}

	if cfg.DocFlavor != "" && !slices.Contains(knownDocFlavors, cfg.DocFlavor) {
		result.addError("doc_flavor", cfg.DocFlavor,
			"invalid doc flavor %q; must be one of: %s", cfg.DocFlavor, strings.Join(knownDocFlavors, ", "))
	}

	if cfg.Jobs < 0 {
		result.addError("jobs", cfg.Jobs, "jobs must be >= 0 (0 means auto)")
	}

	for i, ext := range cfg.Extensions {
		if !strings.HasPrefix(ext, ".") || len(ext) < 2 {
			result.addError(fmt.Sprintf("extensions[%d]", i), ext,
				"invalid extension %q; must start with a dot", ext)
		}
	}

	validateDiagnostics(cfg, result)
	validateIgnorePatterns(cfg, result)

	return result
}

func (r *ValidationResult) addError(field string, value any, format string, args ...any) {
	r.Errors = append(r.Errors, ValidationError{
		Field:   field,
		Value:   value,
		Message: fmt.Sprintf(format, args...),
	})
}

// validateDiagnostics checks per-code settings. Unknown codes only warn so a
// config written for a newer dapic still loads.
func validateDiagnostics(cfg *config.Config, result *ValidationResult) {
	for _, key := range slices.Sorted(maps.Keys(cfg.Diagnostics)) {
		dc := cfg.Diagnostics[key]

		if _, known := diag.LookupCode(key); !known {
			msg := fmt.Sprintf("unknown diagnostic %q; it will be ignored", key)
			if s, ok := diag.Suggest(key, codeKeys()); ok {
				msg += fmt.Sprintf(" (did you mean %q?)", s)
			}
			result.Warnings = append(result.Warnings, ValidationError{
				Field:   "diagnostics." + key,
				Value:   key,
				Message: msg,
			})
		}

		if dc.Severity != nil {
			if _, err := diag.ParseSeverity(*dc.Severity); err != nil {
				result.addError("diagnostics."+key+".severity", *dc.Severity, "%v", err)
			}
		}
	}
}

func codeKeys() []string {
	codes := diag.Codes()
	keys := make([]string, 0, 2*len(codes))
	for _, c := range codes {
		keys = append(keys, c.ID, c.Name)
	}
	return keys
}

// validateIgnorePatterns checks that ignore patterns are valid globs.
func validateIgnorePatterns(cfg *config.Config, result *ValidationResult) {
	for i, pattern := range cfg.Ignore {
		// filepath.Match returns an error only for malformed patterns
		if _, err := filepath.Match(pattern, ""); err != nil {
			result.addError(fmt.Sprintf("ignore[%d]", i), pattern, "invalid glob pattern: %v", err)
		}
	}
}

// ValidateWithFile validates configuration and includes file path in errors.
func ValidateWithFile(cfg *config.Config, filePath string) *ValidationResult {
	result := Validate(cfg)

	for i := range result.Errors {
		result.Errors[i].FilePath = filePath
	}
	for i := range result.Warnings {
		result.Warnings[i].FilePath = filePath
	}

	return result
}
