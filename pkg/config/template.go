package config

// Template returns the contents of a starter .wsfmt.yaml. The minimal
// variant keeps the most common options, mostly commented out; the full
// variant documents every option with its default value.
func Template(full bool) []byte {
	if full {
		return []byte(fullTemplate)
	}
	return []byte(minimalTemplate)
}

// DefaultTemplateHeader returns the default header for generated configs.
func DefaultTemplateHeader() string {
	return `# wsfmt configuration
# See: https://github.com/yaklabco/wsfmt`
}

const minimalTemplate = `# wsfmt configuration
# See: https://github.com/yaklabco/wsfmt

# Target end-of-line marker: auto, linux, windows, or mac.
# "auto" keeps the dominant marker of each file.
new_line_marker: auto

# Rewrite every end-of-line marker to the target
# normalize_new_line_markers: false

# Strip whitespace from the ends of lines
# remove_trailing_whitespace: false

# Remove empty lines at the end of the file
# remove_trailing_empty_lines: false

# Ensure each file ends with the target marker
# add_new_line_marker_at_end_of_file: false

# Character encoding: utf-8, latin-1, windows-1252, utf-16le, or utf-16be
# encoding: utf-8

# File patterns to exclude (glob patterns)
# exclude:
#   - "vendor/**"
#   - "node_modules/**"

# Limit formatting to these extensions (empty = all files)
# extensions:
#   - .txt
#   - .md
#   - .go
`

const fullTemplate = `# wsfmt configuration - Full Template
# See: https://github.com/yaklabco/wsfmt
#
# This template lists every option with its default value.
# Uncomment and modify settings as needed.

# Target end-of-line marker: auto, linux, windows, or mac.
# "auto" keeps the dominant marker of each file.
new_line_marker: auto

# Rewrite every end-of-line marker to the target
normalize_new_line_markers: false

# Policy for zero-length files: ignore, empty, or one-line
normalize_empty_files: ignore

# Policy for files containing only whitespace: ignore, empty, or one-line
normalize_whitespace_only_files: ignore

# Strip whitespace from the ends of lines
remove_trailing_whitespace: false

# Remove empty lines at the end of the file
remove_trailing_empty_lines: false

# Ensure each file ends with the target marker.
# Mutually exclusive with remove_new_line_marker_from_end_of_file.
add_new_line_marker_at_end_of_file: false

# Strip the marker ending the final line
remove_new_line_marker_from_end_of_file: false

# Policy for vertical tab and form feed: ignore, remove, or replace
normalize_non_standard_whitespace: ignore

# Expand each tab to this many spaces (-1 keeps tabs, 0 deletes them)
replace_tabs_with_spaces: -1

# Character encoding: utf-8, latin-1, windows-1252, utf-16le, or utf-16be
encoding: utf-8

# File patterns to exclude (glob patterns)
exclude:
  - "vendor/**"
  - "node_modules/**"
  - ".git/**"

# Limit formatting to these extensions (empty = all files)
# extensions:
#   - .txt
#   - .md

# Resolve symbolic links during discovery
follow_symlinks: false

# Skip files with binary content
skip_binary: true

# Backup configuration for in-place formatting
backups:
  enabled: false
  mode: sidecar
`
