// Package config defines core configuration types for wsfmt.
// These types are pure data structures with no dependency on the loader;
// internal/configloader is responsible for layering them from files,
// environment variables, and flags.
package config

import (
	"fmt"

	"github.com/yaklabco/wsfmt/pkg/charset"
	"github.com/yaklabco/wsfmt/pkg/format"
)

// OutputFormat specifies the output format for reports.
type OutputFormat string

const (
	FormatText  OutputFormat = "text"
	FormatJSON  OutputFormat = "json"
	FormatTable OutputFormat = "table"
	FormatDiff  OutputFormat = "diff"
)

// IsValid returns true if the output format is valid.
func (f OutputFormat) IsValid() bool {
	switch f {
	case FormatText, FormatJSON, FormatTable, FormatDiff:
		return true
	default:
		return false
	}
}

// ColorMode controls when output is colorized.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// IsValid returns true if the color mode is valid.
func (m ColorMode) IsValid() bool {
	switch m {
	case ColorAuto, ColorAlways, ColorNever:
		return true
	default:
		return false
	}
}

// BackupsConfig controls backup behavior when writing formatted files.
type BackupsConfig struct {
	Enabled bool   `mapstructure:"enabled" yaml:"enabled"`
	Mode    string `mapstructure:"mode" yaml:"mode"` // "sidecar" or "none"
}

// Config is the root configuration structure for wsfmt.
type Config struct {
	// Formatting options, persisted to .wsfmt.yaml.

	// NewLineMarker is the target end-of-line marker
	// ("auto", "linux", "mac", or "windows").
	NewLineMarker format.MarkerMode `mapstructure:"new_line_marker" yaml:"new_line_marker"`

	// NormalizeNewLineMarkers rewrites every end-of-line marker to the target.
	NormalizeNewLineMarkers bool `mapstructure:"normalize_new_line_markers" yaml:"normalize_new_line_markers"`

	// NormalizeEmptyFiles is the policy for zero-length files
	// ("ignore", "empty", or "one-line").
	NormalizeEmptyFiles format.FilePolicy `mapstructure:"normalize_empty_files" yaml:"normalize_empty_files"`

	// NormalizeWhitespaceOnlyFiles is the policy for files containing only
	// whitespace ("ignore", "empty", or "one-line").
	NormalizeWhitespaceOnlyFiles format.FilePolicy `mapstructure:"normalize_whitespace_only_files" yaml:"normalize_whitespace_only_files"`

	// RemoveTrailingWhitespace strips whitespace from the ends of lines.
	RemoveTrailingWhitespace bool `mapstructure:"remove_trailing_whitespace" yaml:"remove_trailing_whitespace"`

	// RemoveTrailingEmptyLines removes empty lines at the end of the file.
	RemoveTrailingEmptyLines bool `mapstructure:"remove_trailing_empty_lines" yaml:"remove_trailing_empty_lines"`

	// AddNewLineMarkerAtEndOfFile ensures the file ends with the target marker.
	AddNewLineMarkerAtEndOfFile bool `mapstructure:"add_new_line_marker_at_end_of_file" yaml:"add_new_line_marker_at_end_of_file"`

	// RemoveNewLineMarkerFromEndOfFile strips the marker ending the final line.
	RemoveNewLineMarkerFromEndOfFile bool `mapstructure:"remove_new_line_marker_from_end_of_file" yaml:"remove_new_line_marker_from_end_of_file"`

	// NormalizeNonStandardWhitespace is the policy for vertical tab and form
	// feed characters ("ignore", "remove", or "replace").
	NormalizeNonStandardWhitespace format.NonStandardMode `mapstructure:"normalize_non_standard_whitespace" yaml:"normalize_non_standard_whitespace"`

	// ReplaceTabsWithSpaces expands each tab to this many spaces.
	// Negative keeps tabs, zero deletes them.
	ReplaceTabsWithSpaces int `mapstructure:"replace_tabs_with_spaces" yaml:"replace_tabs_with_spaces"`

	// Encoding is the character encoding used to decode and encode files.
	Encoding charset.Encoding `mapstructure:"encoding" yaml:"encoding"`

	// Exclude contains glob patterns for files to skip during discovery.
	Exclude []string `mapstructure:"exclude" yaml:"exclude"`

	// Extensions limits discovery to the given file extensions.
	// Empty means all files.
	Extensions []string `mapstructure:"extensions" yaml:"extensions"`

	// FollowSymlinks resolves symbolic links during discovery.
	FollowSymlinks bool `mapstructure:"follow_symlinks" yaml:"follow_symlinks"`

	// SkipBinary excludes files with binary content from formatting.
	SkipBinary bool `mapstructure:"skip_binary" yaml:"skip_binary"`

	// Backups configures backup behavior before writing.
	Backups BackupsConfig `mapstructure:"backups" yaml:"backups"`

	// CLI-level options (not persisted to config files).

	// Check reports files that would change without writing them.
	Check bool `mapstructure:"-" yaml:"-"`

	// Diff prints a unified diff for each file that would change.
	Diff bool `mapstructure:"-" yaml:"-"`

	// Quiet suppresses per-change output.
	Quiet bool `mapstructure:"-" yaml:"-"`

	// Strict re-hashes files before writing to detect concurrent modification.
	Strict bool `mapstructure:"-" yaml:"-"`

	// Format specifies the output format.
	Format OutputFormat `mapstructure:"-" yaml:"-"`

	// Color controls when output is colorized.
	Color ColorMode `mapstructure:"-" yaml:"-"`

	// Jobs specifies the number of parallel workers.
	Jobs int `mapstructure:"-" yaml:"-"`
}

// NewConfig returns a Config with sensible defaults. Every formatting
// transform starts disabled; running wsfmt with a default configuration
// changes nothing.
func NewConfig() *Config {
	return &Config{
		NewLineMarker:                  format.MarkerAuto,
		NormalizeEmptyFiles:            format.FilePolicyIgnore,
		NormalizeWhitespaceOnlyFiles:   format.FilePolicyIgnore,
		NormalizeNonStandardWhitespace: format.NonStandardIgnore,
		ReplaceTabsWithSpaces:          -1,
		Encoding:                       charset.Default,
		SkipBinary:                     true,
		Backups: BackupsConfig{
			Enabled: false,
			Mode:    "sidecar",
		},
		Format: FormatText,
		Color:  ColorAuto,
		Jobs:   0, // 0 means use GOMAXPROCS
	}
}

// FormatOptions maps the configuration onto engine options.
func (c *Config) FormatOptions() format.Options {
	return format.Options{
		NewLineMarker:                    c.NewLineMarker,
		NormalizeNewLineMarkers:          c.NormalizeNewLineMarkers,
		NormalizeEmptyFiles:              c.NormalizeEmptyFiles,
		NormalizeWhitespaceOnlyFiles:     c.NormalizeWhitespaceOnlyFiles,
		RemoveTrailingWhitespace:         c.RemoveTrailingWhitespace,
		RemoveTrailingEmptyLines:         c.RemoveTrailingEmptyLines,
		AddNewLineMarkerAtEndOfFile:      c.AddNewLineMarkerAtEndOfFile,
		RemoveNewLineMarkerFromEndOfFile: c.RemoveNewLineMarkerFromEndOfFile,
		NormalizeNonStandardWhitespace:   c.NormalizeNonStandardWhitespace,
		ReplaceTabsWithSpaces:            c.ReplaceTabsWithSpaces,
	}
}

// Validate checks that every enum field holds a recognized value and that
// the formatting options are mutually consistent.
func (c *Config) Validate() error {
	if err := c.FormatOptions().Validate(); err != nil {
		return err
	}

	if !c.Encoding.IsValid() {
		return fmt.Errorf("unsupported encoding %q", string(c.Encoding))
	}

	if !c.Format.IsValid() {
		return fmt.Errorf("invalid output format %q", string(c.Format))
	}

	if !c.Color.IsValid() {
		return fmt.Errorf("invalid color mode %q", string(c.Color))
	}

	switch c.Backups.Mode {
	case "sidecar", "none":
	default:
		return fmt.Errorf("invalid backup mode %q", c.Backups.Mode)
	}

	if c.Jobs < 0 {
		return fmt.Errorf("jobs must be non-negative, got %d", c.Jobs)
	}

	return nil
}

// Clone creates a deep copy of the configuration.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}

	clone := *c

	if c.Exclude != nil {
		clone.Exclude = make([]string, len(c.Exclude))
		copy(clone.Exclude, c.Exclude)
	}
	if c.Extensions != nil {
		clone.Extensions = make([]string, len(c.Extensions))
		copy(clone.Extensions, c.Extensions)
	}

	return &clone
}
