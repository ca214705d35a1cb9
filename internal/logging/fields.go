package logging

// Field name constants for structured logging.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldFiles      = "files"
	FieldWorkingDir = "working_dir"
	FieldDuration   = "duration"

	// Configuration fields.
	FieldConfig     = "config"
	FieldFormat     = "format"
	FieldJobs       = "jobs"
	FieldStrict     = "strict"
	FieldExtensions = "extensions"

	// Compilation fields.
	FieldFile     = "file"
	FieldBytes    = "bytes"
	FieldTokens   = "tokens"
	FieldItems    = "items"
	FieldCode     = "code"
	FieldSeverity = "severity"
	FieldLang     = "lang"
	FieldHash     = "hash"
	FieldLine     = "line"
	FieldColumn   = "column"

	// Statistics fields.
	FieldFilesDiscovered  = "files_discovered"
	FieldFilesChecked     = "files_checked"
	FieldFilesWithErrors  = "files_with_errors"
	FieldDiagnosticsTotal = "diagnostics_total"
	FieldSuppressed       = "suppressed"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
