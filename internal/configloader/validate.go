package configloader

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/yaklabco/wsfmt/pkg/config"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Field is the path to the invalid field (e.g., "backups.mode").
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

	// Warnings are non-fatal issues (e.g., ineffective settings).
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

// knownBackupModes lists valid backup mode values.
//
//nolint:gochecknoglobals // Read-only lookup table.
var knownBackupModes = map[string]bool{
	"sidecar": true,
	"none":    true,
}

// Validate checks a configuration for errors and warnings. It mirrors
// config.Validate but reports every finding with its field path instead of
// stopping at the first, so the CLI can point at the offending setting.
func Validate(cfg *config.Config) *ValidationResult {
	if cfg == nil {
		return &ValidationResult{}
	}

	result := &ValidationResult{}

	if !cfg.NewLineMarker.IsValid() {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "new_line_marker",
			Value:   cfg.NewLineMarker,
			Message: fmt.Sprintf("invalid marker %q; must be one of: auto, linux, windows, mac", cfg.NewLineMarker),
		})
	}

	if !cfg.NormalizeEmptyFiles.IsValid() {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "normalize_empty_files",
			Value:   cfg.NormalizeEmptyFiles,
			Message: fmt.Sprintf("invalid policy %q; must be one of: ignore, empty, one-line", cfg.NormalizeEmptyFiles),
		})
	}

	if !cfg.NormalizeWhitespaceOnlyFiles.IsValid() {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "normalize_whitespace_only_files",
			Value:   cfg.NormalizeWhitespaceOnlyFiles,
			Message: fmt.Sprintf("invalid policy %q; must be one of: ignore, empty, one-line", cfg.NormalizeWhitespaceOnlyFiles),
		})
	}

	if !cfg.NormalizeNonStandardWhitespace.IsValid() {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "normalize_non_standard_whitespace",
			Value:   cfg.NormalizeNonStandardWhitespace,
			Message: fmt.Sprintf("invalid mode %q; must be one of: ignore, remove, replace", cfg.NormalizeNonStandardWhitespace),
		})
	}

	if cfg.AddNewLineMarkerAtEndOfFile && cfg.RemoveNewLineMarkerFromEndOfFile {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "add_new_line_marker_at_end_of_file",
			Message: "mutually exclusive with remove_new_line_marker_from_end_of_file",
		})
	}

	if !cfg.Encoding.IsValid() {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "encoding",
			Value:   cfg.Encoding,
			Message: fmt.Sprintf("unsupported encoding %q; must be one of: utf-8, latin-1, windows-1252, utf-16le, utf-16be", cfg.Encoding),
		})
	}

	if !cfg.Format.IsValid() {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "format",
			Value:   cfg.Format,
			Message: fmt.Sprintf("invalid format %q; must be one of: text, json, table, diff", cfg.Format),
		})
	}

	if !cfg.Color.IsValid() {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "color",
			Value:   cfg.Color,
			Message: fmt.Sprintf("invalid color mode %q; must be one of: auto, always, never", cfg.Color),
		})
	}

	if cfg.Jobs < 0 {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "jobs",
			Value:   cfg.Jobs,
			Message: "jobs must be >= 0 (0 means auto)",
		})
	}

	if cfg.Backups.Mode != "" && !knownBackupModes[cfg.Backups.Mode] {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "backups.mode",
			Value:   cfg.Backups.Mode,
			Message: fmt.Sprintf("invalid backup mode %q; must be one of: sidecar, none", cfg.Backups.Mode),
		})
	}

	validateExcludePatterns(cfg, result)
	validateExtensions(cfg, result)

	return result
}

// validateExcludePatterns checks that exclude patterns are valid globs.
func validateExcludePatterns(cfg *config.Config, result *ValidationResult) {
	for i, pattern := range cfg.Exclude {
		// filepath.Match returns an error only for malformed patterns
		_, err := filepath.Match(pattern, "")
		if err != nil {
			result.Errors = append(result.Errors, ValidationError{
				Field:   fmt.Sprintf("exclude[%d]", i),
				Value:   pattern,
				Message: fmt.Sprintf("invalid glob pattern: %v", err),
			})
		}
	}
}

// validateExtensions warns about extensions written without the leading dot.
// Discovery normalizes them before matching, so they still work; the warning
// points at the canonical spelling.
func validateExtensions(cfg *config.Config, result *ValidationResult) {
	for i, ext := range cfg.Extensions {
		if ext == "" || strings.HasPrefix(ext, ".") {
			continue
		}
		result.Warnings = append(result.Warnings, ValidationError{
			Field:   fmt.Sprintf("extensions[%d]", i),
			Value:   ext,
			Message: fmt.Sprintf("extension %q has no leading dot; matching it as %q", ext, "."+ext),
		})
	}
}

// ValidateWithFile validates configuration and includes file path in errors.
func ValidateWithFile(cfg *config.Config, filePath string) *ValidationResult {
	result := Validate(cfg)

	// Add file path to all errors and warnings
	for i := range result.Errors {
		result.Errors[i].FilePath = filePath
	}
	for i := range result.Warnings {
		result.Warnings[i].FilePath = filePath
	}

	return result
}

// IsValidBackupMode returns true if the backup mode is valid.
func IsValidBackupMode(mode string) bool {
	return knownBackupModes[mode]
}
