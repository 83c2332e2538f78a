package configloader

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/yaklabco/wsfmt/pkg/charset"
	"github.com/yaklabco/wsfmt/pkg/config"
	"github.com/yaklabco/wsfmt/pkg/format"
)

// MigrationResult contains the result of converting an .editorconfig file.
type MigrationResult struct {
	// Config is the converted wsfmt configuration.
	Config *config.Config

	// Warnings contains non-fatal issues encountered during conversion.
	Warnings []string

	// SourcePath is the path to the original .editorconfig file.
	SourcePath string
}

// convertibleKeys are the .editorconfig properties with a wsfmt equivalent.
//
//nolint:gochecknoglobals // Read-only lookup table.
var convertibleKeys = map[string]bool{
	"trim_trailing_whitespace": true,
	"insert_final_newline":     true,
	"end_of_line":              true,
	"indent_style":             true,
	"indent_size":              true,
	"charset":                  true,
}

// ConvertEditorConfig converts an .editorconfig file to a wsfmt configuration.
// Only properties in the [*] section are converted; wsfmt applies one
// configuration to every file, so narrower sections are reported as warnings
// instead. Returns the converted config, any warnings, and an error if the
// file could not be read or parsed.
func ConvertEditorConfig(path string) (*MigrationResult, error) {
	result := &MigrationResult{
		SourcePath: path,
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	sections, err := parseEditorConfig(string(content))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}

	cfg := config.NewConfig()

	for _, section := range sections {
		switch section.pattern {
		case "":
			// Preamble properties other than root apply to no files; root
			// itself only scopes the .editorconfig. Nothing to convert.
		case "*":
			convertProperties(cfg, section.props, result)
		default:
			if hasConvertibleKeys(section.props) {
				result.Warnings = append(result.Warnings,
					fmt.Sprintf("section [%s] not converted; wsfmt has no per-pattern settings", section.pattern))
			}
		}
	}

	result.Config = cfg
	return result, nil
}

// editorConfigSection is one bracketed block of an .editorconfig file.
// The preamble (properties before any section header) uses an empty pattern.
type editorConfigSection struct {
	pattern string
	props   map[string]string
}

// parseEditorConfig parses the INI-style .editorconfig format: full-line
// comments start with # or ;, section headers are bracketed glob patterns,
// and properties are key = value pairs. Keys and values are lowercased, as
// the format is case-insensitive; patterns are kept as written.
func parseEditorConfig(content string) ([]editorConfigSection, error) {
	props := make(map[string]string)
	sections := []editorConfigSection{{props: props}}

	for i, raw := range strings.Split(content, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, ";") {
			continue
		}

		if strings.HasPrefix(line, "[") {
			if !strings.HasSuffix(line, "]") {
				return nil, fmt.Errorf("line %d: unterminated section header %q", i+1, line)
			}
			props = make(map[string]string)
			sections = append(sections, editorConfigSection{
				pattern: line[1 : len(line)-1],
				props:   props,
			})
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			return nil, fmt.Errorf("line %d: expected key = value, got %q", i+1, line)
		}
		key = strings.ToLower(strings.TrimSpace(key))
		if key == "" {
			return nil, fmt.Errorf("line %d: empty property name", i+1)
		}
		props[key] = strings.ToLower(strings.TrimSpace(value))
	}

	return sections, nil
}

// convertProperties maps the [*] section properties onto the configuration.
// Keys are processed in sorted order so warnings come out deterministically.
func convertProperties(cfg *config.Config, props map[string]string, result *MigrationResult) {
	keys := make([]string, 0, len(props))
	for key := range props {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	indentStyle := ""
	indentSize := 0
	indentSizeSet := false

	for _, key := range keys {
		value := props[key]

		// The special value unset clears a property inherited from an outer
		// .editorconfig; there is nothing to convert.
		if value == "unset" {
			continue
		}

		switch key {
		case "trim_trailing_whitespace":
			if b, ok := parseEditorConfigBool(value); ok {
				cfg.RemoveTrailingWhitespace = b
			} else {
				warnInvalidValue(result, key, value)
			}

		case "insert_final_newline":
			if b, ok := parseEditorConfigBool(value); ok {
				cfg.AddNewLineMarkerAtEndOfFile = b
			} else {
				warnInvalidValue(result, key, value)
			}

		case "end_of_line":
			switch value {
			case "lf":
				cfg.NewLineMarker = format.MarkerLinux
			case "crlf":
				cfg.NewLineMarker = format.MarkerWindows
			case "cr":
				cfg.NewLineMarker = format.MarkerMac
			default:
				warnInvalidValue(result, key, value)
				continue
			}
			cfg.NormalizeNewLineMarkers = true

		case "charset":
			convertCharset(cfg, value, result)

		case "indent_style":
			if value != "space" && value != "tab" {
				warnInvalidValue(result, key, value)
				continue
			}
			indentStyle = value

		case "indent_size":
			if value == "tab" {
				result.Warnings = append(result.Warnings,
					"indent_size = tab is not convertible; keeping tabs")
				continue
			}
			size, err := strconv.Atoi(value)
			if err != nil || size < 0 {
				warnInvalidValue(result, key, value)
				continue
			}
			indentSize = size
			indentSizeSet = true

		case "root":
			// Only meaningful to .editorconfig discovery itself.

		default:
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("%s has no wsfmt equivalent; skipping", key))
		}
	}

	// Tab expansion needs both halves: the style decides whether to expand
	// and the size decides the width.
	if indentStyle == "space" {
		if indentSizeSet {
			cfg.ReplaceTabsWithSpaces = indentSize
		} else {
			result.Warnings = append(result.Warnings,
				"indent_style = space without indent_size; tabs left unchanged")
		}
	}
}

// convertCharset maps an .editorconfig charset value onto a wsfmt encoding.
func convertCharset(cfg *config.Config, value string, result *MigrationResult) {
	switch value {
	case "utf-8":
		cfg.Encoding = charset.UTF8
	case "utf-8-bom":
		// The formatter never strips or adds byte order marks; a leading
		// U+FEFF survives as ordinary content.
		cfg.Encoding = charset.UTF8
		result.Warnings = append(result.Warnings,
			"charset utf-8-bom treated as utf-8; the byte order mark is preserved as content")
	case "latin1":
		cfg.Encoding = charset.Latin1
	case "utf-16le":
		cfg.Encoding = charset.UTF16LE
	case "utf-16be":
		cfg.Encoding = charset.UTF16BE
	default:
		warnInvalidValue(result, "charset", value)
	}
}

// parseEditorConfigBool parses the true/false values .editorconfig uses.
// Values arrive lowercased from the parser.
func parseEditorConfigBool(value string) (parsed, ok bool) {
	switch value {
	case "true":
		return true, true
	case "false":
		return false, true
	default:
		return false, false
	}
}

// warnInvalidValue records a warning for a recognized key with an
// unrecognized value.
func warnInvalidValue(result *MigrationResult, key, value string) {
	result.Warnings = append(result.Warnings,
		fmt.Sprintf("invalid value %q for %s; skipping", value, key))
}

// hasConvertibleKeys returns true if any property has a wsfmt equivalent.
func hasConvertibleKeys(props map[string]string) bool {
	for key := range props {
		if convertibleKeys[key] {
			return true
		}
	}
	return false
}

// HasConvertibleSettings reports whether the .editorconfig file at path
// carries at least one whitespace-relevant property in its [*] section.
// Unreadable or malformed files report false; callers use this to decide
// whether suggesting a migration is worthwhile.
func HasConvertibleSettings(path string) bool {
	content, err := os.ReadFile(path)
	if err != nil {
		return false
	}

	sections, err := parseEditorConfig(string(content))
	if err != nil {
		return false
	}

	for _, section := range sections {
		if section.pattern == "*" && hasConvertibleKeys(section.props) {
			return true
		}
	}
	return false
}

// GenerateMigrationHeader returns a header comment for migrated configs.
func GenerateMigrationHeader(sourcePath string) string {
	return fmt.Sprintf(`# wsfmt configuration
# Migrated from: %s
# See: https://github.com/yaklabco/wsfmt
`, filepath.Base(sourcePath))
}
