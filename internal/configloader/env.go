package configloader

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/yaklabco/wsfmt/pkg/charset"
	"github.com/yaklabco/wsfmt/pkg/config"
	"github.com/yaklabco/wsfmt/pkg/format"
)

// envVarPrefix is the prefix for all wsfmt environment variables.
const envVarPrefix = "WSFMT_"

// envFieldType represents the type of a configuration field.
type envFieldType int

const (
	envTypeString envFieldType = iota
	envTypeBool
	envTypeInt
	envTypeSlice
)

// envMapping defines environment variable to config field mappings.
type envMapping struct {
	field string
	typ   envFieldType
}

// envMappings maps environment variable names (without prefix) to config fields.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envMappings = map[string]envMapping{
	"NEW_LINE_MARKER":                         {field: "new_line_marker", typ: envTypeString},
	"NORMALIZE_NEW_LINE_MARKERS":              {field: "normalize_new_line_markers", typ: envTypeBool},
	"NORMALIZE_EMPTY_FILES":                   {field: "normalize_empty_files", typ: envTypeString},
	"NORMALIZE_WHITESPACE_ONLY_FILES":         {field: "normalize_whitespace_only_files", typ: envTypeString},
	"REMOVE_TRAILING_WHITESPACE":              {field: "remove_trailing_whitespace", typ: envTypeBool},
	"REMOVE_TRAILING_EMPTY_LINES":             {field: "remove_trailing_empty_lines", typ: envTypeBool},
	"ADD_NEW_LINE_MARKER_AT_END_OF_FILE":      {field: "add_new_line_marker_at_end_of_file", typ: envTypeBool},
	"REMOVE_NEW_LINE_MARKER_FROM_END_OF_FILE": {field: "remove_new_line_marker_from_end_of_file", typ: envTypeBool},
	"NORMALIZE_NON_STANDARD_WHITESPACE":       {field: "normalize_non_standard_whitespace", typ: envTypeString},
	"REPLACE_TABS_WITH_SPACES":                {field: "replace_tabs_with_spaces", typ: envTypeInt},
	"ENCODING":                                {field: "encoding", typ: envTypeString},
	"EXCLUDE":                                 {field: "exclude", typ: envTypeSlice},
	"EXTENSIONS":                              {field: "extensions", typ: envTypeSlice},
	"FOLLOW_SYMLINKS":                         {field: "follow_symlinks", typ: envTypeBool},
	"SKIP_BINARY":                             {field: "skip_binary", typ: envTypeBool},
	"BACKUPS_ENABLED":                         {field: "backups.enabled", typ: envTypeBool},
	"BACKUPS_MODE":                            {field: "backups.mode", typ: envTypeString},
	"CHECK":                                   {field: "check", typ: envTypeBool},
	"QUIET":                                   {field: "quiet", typ: envTypeBool},
	"STRICT":                                  {field: "strict", typ: envTypeBool},
	"FORMAT":                                  {field: "format", typ: envTypeString},
	"COLOR":                                   {field: "color", typ: envTypeString},
	"JOBS":                                    {field: "jobs", typ: envTypeInt},
}

// LoadFromEnv applies environment variable overrides to the configuration.
// Environment variables are prefixed with WSFMT_ (e.g., WSFMT_NEW_LINE_MARKER).
func LoadFromEnv(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}

	for envSuffix, mapping := range envMappings {
		envVar := envVarPrefix + envSuffix
		value := os.Getenv(envVar)
		if value == "" {
			continue
		}

		if err := applyEnvValue(cfg, mapping, value, envVar); err != nil {
			return err
		}
	}

	return nil
}

// applyEnvValue applies a single environment variable value to the config.
func applyEnvValue(cfg *config.Config, mapping envMapping, value, envVar string) error {
	switch mapping.typ {
	case envTypeString:
		return setStringField(cfg, mapping.field, value)
	case envTypeBool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean for %s: %q (expected true/false/1/0)", envVar, value)
		}
		return setBoolField(cfg, mapping.field, b)
	case envTypeInt:
		i, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer for %s: %q", envVar, value)
		}
		return setIntField(cfg, mapping.field, i)
	case envTypeSlice:
		parts := parseSliceValue(value)
		return setSliceField(cfg, mapping.field, parts)
	default:
		return fmt.Errorf("unknown field type for %s", envVar)
	}
}

// parseSliceValue parses a comma-separated string into a slice.
// Each element is trimmed of whitespace.
func parseSliceValue(value string) []string {
	if value == "" {
		return nil
	}

	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// setStringField sets a string field on the config by field path.
func setStringField(cfg *config.Config, field, value string) error {
	switch field {
	case "new_line_marker":
		cfg.NewLineMarker = format.MarkerMode(value)
	case "normalize_empty_files":
		cfg.NormalizeEmptyFiles = format.FilePolicy(value)
	case "normalize_whitespace_only_files":
		cfg.NormalizeWhitespaceOnlyFiles = format.FilePolicy(value)
	case "normalize_non_standard_whitespace":
		cfg.NormalizeNonStandardWhitespace = format.NonStandardMode(value)
	case "encoding":
		cfg.Encoding = charset.Encoding(value)
	case "format":
		cfg.Format = config.OutputFormat(value)
	case "color":
		cfg.Color = config.ColorMode(value)
	case "backups.mode":
		cfg.Backups.Mode = value
	default:
		return fmt.Errorf("unknown string field: %s", field)
	}
	return nil
}

// setBoolField sets a boolean field on the config by field path.
func setBoolField(cfg *config.Config, field string, value bool) error {
	switch field {
	case "normalize_new_line_markers":
		cfg.NormalizeNewLineMarkers = value
	case "remove_trailing_whitespace":
		cfg.RemoveTrailingWhitespace = value
	case "remove_trailing_empty_lines":
		cfg.RemoveTrailingEmptyLines = value
	case "add_new_line_marker_at_end_of_file":
		cfg.AddNewLineMarkerAtEndOfFile = value
	case "remove_new_line_marker_from_end_of_file":
		cfg.RemoveNewLineMarkerFromEndOfFile = value
	case "follow_symlinks":
		cfg.FollowSymlinks = value
	case "skip_binary":
		cfg.SkipBinary = value
	case "backups.enabled":
		cfg.Backups.Enabled = value
	case "check":
		cfg.Check = value
	case "quiet":
		cfg.Quiet = value
	case "strict":
		cfg.Strict = value
	default:
		return fmt.Errorf("unknown boolean field: %s", field)
	}
	return nil
}

// setIntField sets an integer field on the config by field path.
func setIntField(cfg *config.Config, field string, value int) error {
	switch field {
	case "replace_tabs_with_spaces":
		cfg.ReplaceTabsWithSpaces = value
	case "jobs":
		cfg.Jobs = value
	default:
		return fmt.Errorf("unknown integer field: %s", field)
	}
	return nil
}

// setSliceField sets a slice field on the config by field path.
func setSliceField(cfg *config.Config, field string, value []string) error {
	switch field {
	case "exclude":
		cfg.Exclude = value
	case "extensions":
		cfg.Extensions = value
	default:
		return fmt.Errorf("unknown slice field: %s", field)
	}
	return nil
}

// GetEnvVarName returns the full environment variable name for a config field.
func GetEnvVarName(field string) string {
	for suffix, mapping := range envMappings {
		if mapping.field == field {
			return envVarPrefix + suffix
		}
	}
	return ""
}

// ListEnvVars returns a list of all supported environment variables with their descriptions.
func ListEnvVars() map[string]string {
	return map[string]string{
		"WSFMT_NEW_LINE_MARKER":                         "Target end-of-line marker: auto, linux, windows, or mac",
		"WSFMT_NORMALIZE_NEW_LINE_MARKERS":              "Rewrite every marker to the target: true or false",
		"WSFMT_NORMALIZE_EMPTY_FILES":                   "Policy for empty files: ignore, empty, or one-line",
		"WSFMT_NORMALIZE_WHITESPACE_ONLY_FILES":         "Policy for whitespace-only files: ignore, empty, or one-line",
		"WSFMT_REMOVE_TRAILING_WHITESPACE":              "Strip trailing whitespace: true or false",
		"WSFMT_REMOVE_TRAILING_EMPTY_LINES":             "Remove trailing empty lines: true or false",
		"WSFMT_ADD_NEW_LINE_MARKER_AT_END_OF_FILE":      "Ensure a final marker: true or false",
		"WSFMT_REMOVE_NEW_LINE_MARKER_FROM_END_OF_FILE": "Strip the final marker: true or false",
		"WSFMT_NORMALIZE_NON_STANDARD_WHITESPACE":       "Policy for \\v and \\f: ignore, remove, or replace",
		"WSFMT_REPLACE_TABS_WITH_SPACES":                "Spaces per tab (-1 keeps tabs, 0 deletes them)",
		"WSFMT_ENCODING":                                "File encoding: utf-8, latin-1, windows-1252, utf-16le, or utf-16be",
		"WSFMT_EXCLUDE":                                 "Comma-separated list of exclude patterns",
		"WSFMT_EXTENSIONS":                              "Comma-separated list of file extensions",
		"WSFMT_FOLLOW_SYMLINKS":                         "Resolve symbolic links: true or false",
		"WSFMT_SKIP_BINARY":                             "Skip binary files: true or false",
		"WSFMT_BACKUPS_ENABLED":                         "Enable backups when writing: true or false",
		"WSFMT_BACKUPS_MODE":                            "Backup mode: sidecar or none",
		"WSFMT_CHECK":                                   "Report without writing: true or false",
		"WSFMT_QUIET":                                   "Suppress per-file output: true or false",
		"WSFMT_STRICT":                                  "Re-hash files before writing: true or false",
		"WSFMT_FORMAT":                                  "Output format: text, json, table, or diff",
		"WSFMT_COLOR":                                   "Color mode: auto, always, or never",
		"WSFMT_JOBS":                                    "Number of parallel workers (0 = auto)",
	}
}
