// Package logging provides a structured logging wrapper around charmbracelet/log.
package logging

// Field name constants for structured logging.
// Using constants prevents typos and enables IDE autocomplete.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldFiles      = "files"
	FieldInput      = "input"
	FieldOutput     = "output"
	FieldConfig     = "config"
	FieldWorkingDir = "working_dir"

	// Run fields.
	FieldMode     = "mode"
	FieldJobs     = "jobs"
	FieldDryRun   = "dry_run"
	FieldDuration = "duration"
	FieldEvent    = "event"

	// Formatting fields.
	FieldChanges  = "changes"
	FieldMarker   = "marker"
	FieldEncoding = "encoding"
	FieldBackup   = "backup"

	// Statistics fields.
	FieldFilesDiscovered = "files_discovered"
	FieldFilesProcessed  = "files_processed"
	FieldFilesChanged    = "files_changed"
	FieldFilesWritten    = "files_written"
	FieldFilesSkipped    = "files_skipped"
	FieldFilesErrored    = "files_errored"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
