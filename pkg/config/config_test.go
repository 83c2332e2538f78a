package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/wsfmt/pkg/charset"
	"github.com/yaklabco/wsfmt/pkg/config"
	"github.com/yaklabco/wsfmt/pkg/format"
)

func TestNewConfigDefaults(t *testing.T) {
	cfg := config.NewConfig()

	assert.Equal(t, format.MarkerAuto, cfg.NewLineMarker)
	assert.Equal(t, format.FilePolicyIgnore, cfg.NormalizeEmptyFiles)
	assert.Equal(t, format.FilePolicyIgnore, cfg.NormalizeWhitespaceOnlyFiles)
	assert.Equal(t, format.NonStandardIgnore, cfg.NormalizeNonStandardWhitespace)
	assert.Equal(t, -1, cfg.ReplaceTabsWithSpaces)
	assert.Equal(t, charset.Default, cfg.Encoding)
	assert.True(t, cfg.SkipBinary)
	assert.False(t, cfg.Backups.Enabled)
	assert.Equal(t, "sidecar", cfg.Backups.Mode)
	assert.Equal(t, config.FormatText, cfg.Format)
	assert.Equal(t, config.ColorAuto, cfg.Color)
	assert.Equal(t, 0, cfg.Jobs)

	// The default configuration enables no transform, so it must validate.
	assert.NoError(t, cfg.Validate())
}

func TestConfigValidate(t *testing.T) {
	t.Run("all transforms enabled is valid", func(t *testing.T) {
		cfg := config.NewConfig()
		cfg.NewLineMarker = format.MarkerLinux
		cfg.NormalizeNewLineMarkers = true
		cfg.NormalizeEmptyFiles = format.FilePolicyOneLine
		cfg.NormalizeWhitespaceOnlyFiles = format.FilePolicyEmpty
		cfg.RemoveTrailingWhitespace = true
		cfg.RemoveTrailingEmptyLines = true
		cfg.AddNewLineMarkerAtEndOfFile = true
		cfg.NormalizeNonStandardWhitespace = format.NonStandardReplace
		cfg.ReplaceTabsWithSpaces = 4

		assert.NoError(t, cfg.Validate())
	})

	t.Run("conflicting end-of-file options", func(t *testing.T) {
		cfg := config.NewConfig()
		cfg.AddNewLineMarkerAtEndOfFile = true
		cfg.RemoveNewLineMarkerFromEndOfFile = true

		assert.ErrorIs(t, cfg.Validate(), format.ErrConflictingEndOfFileOptions)
	})

	tests := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{
			name:   "invalid new line marker",
			mutate: func(c *config.Config) { c.NewLineMarker = "dos" },
		},
		{
			name:   "invalid empty file policy",
			mutate: func(c *config.Config) { c.NormalizeEmptyFiles = "truncate" },
		},
		{
			name:   "invalid whitespace-only file policy",
			mutate: func(c *config.Config) { c.NormalizeWhitespaceOnlyFiles = "drop" },
		},
		{
			name:   "invalid non-standard whitespace mode",
			mutate: func(c *config.Config) { c.NormalizeNonStandardWhitespace = "strip" },
		},
		{
			name:   "invalid encoding",
			mutate: func(c *config.Config) { c.Encoding = "ebcdic" },
		},
		{
			name:   "invalid output format",
			mutate: func(c *config.Config) { c.Format = "xml" },
		},
		{
			name:   "invalid color mode",
			mutate: func(c *config.Config) { c.Color = "sometimes" },
		},
		{
			name:   "invalid backup mode",
			mutate: func(c *config.Config) { c.Backups.Mode = "xdg" },
		},
		{
			name:   "negative jobs",
			mutate: func(c *config.Config) { c.Jobs = -1 },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.NewConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestConfigFormatOptions(t *testing.T) {
	cfg := config.NewConfig()
	cfg.NewLineMarker = format.MarkerWindows
	cfg.NormalizeNewLineMarkers = true
	cfg.NormalizeEmptyFiles = format.FilePolicyOneLine
	cfg.NormalizeWhitespaceOnlyFiles = format.FilePolicyEmpty
	cfg.RemoveTrailingWhitespace = true
	cfg.RemoveTrailingEmptyLines = true
	cfg.RemoveNewLineMarkerFromEndOfFile = true
	cfg.NormalizeNonStandardWhitespace = format.NonStandardRemove
	cfg.ReplaceTabsWithSpaces = 8

	opts := cfg.FormatOptions()

	assert.Equal(t, format.Options{
		NewLineMarker:                    format.MarkerWindows,
		NormalizeNewLineMarkers:          true,
		NormalizeEmptyFiles:              format.FilePolicyOneLine,
		NormalizeWhitespaceOnlyFiles:     format.FilePolicyEmpty,
		RemoveTrailingWhitespace:         true,
		RemoveTrailingEmptyLines:         true,
		RemoveNewLineMarkerFromEndOfFile: true,
		NormalizeNonStandardWhitespace:   format.NonStandardRemove,
		ReplaceTabsWithSpaces:            8,
	}, opts)
}

func TestTemplate(t *testing.T) {
	t.Run("minimal template parses and validates", func(t *testing.T) {
		cfg, err := config.FromYAML(config.Template(false))
		require.NoError(t, err)
		require.NoError(t, cfg.Validate())

		// The only uncommented option matches the default.
		assert.Equal(t, format.MarkerAuto, cfg.NewLineMarker)
	})

	t.Run("full template parses and validates", func(t *testing.T) {
		cfg, err := config.FromYAML(config.Template(true))
		require.NoError(t, err)
		require.NoError(t, cfg.Validate())

		assert.Equal(t, format.MarkerAuto, cfg.NewLineMarker)
		assert.Equal(t, -1, cfg.ReplaceTabsWithSpaces)
		assert.Equal(t, charset.Default, cfg.Encoding)
		assert.True(t, cfg.SkipBinary)
		assert.Equal(t, "sidecar", cfg.Backups.Mode)
		assert.Equal(t, []string{"vendor/**", "node_modules/**", ".git/**"}, cfg.Exclude)
	})

	t.Run("full template names every persisted option", func(t *testing.T) {
		text := string(config.Template(true))

		for _, key := range []string{
			"new_line_marker:",
			"normalize_new_line_markers:",
			"normalize_empty_files:",
			"normalize_whitespace_only_files:",
			"remove_trailing_whitespace:",
			"remove_trailing_empty_lines:",
			"add_new_line_marker_at_end_of_file:",
			"remove_new_line_marker_from_end_of_file:",
			"normalize_non_standard_whitespace:",
			"replace_tabs_with_spaces:",
			"encoding:",
			"exclude:",
			"extensions:",
			"follow_symlinks:",
			"skip_binary:",
			"backups:",
		} {
			assert.Contains(t, text, key)
		}
	})
}
