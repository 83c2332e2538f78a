package configloader

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/yaklabco/wsfmt/pkg/charset"
	"github.com/yaklabco/wsfmt/pkg/format"
)

// writeEditorConfig writes content to .editorconfig in a temp dir and
// returns the path.
func writeEditorConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), ".editorconfig")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write editorconfig: %v", err)
	}
	return path
}

func TestConvertEditorConfig_Basic(t *testing.T) {
	t.Parallel()

	path := writeEditorConfig(t, `
# Top-level editorconfig
root = true

[*]
charset = utf-8
end_of_line = lf
insert_final_newline = true
trim_trailing_whitespace = true
`)

	result, err := ConvertEditorConfig(path)
	if err != nil {
		t.Fatalf("ConvertEditorConfig() error = %v", err)
	}

	if result.Config == nil {
		t.Fatal("result.Config is nil")
	}

	cfg := result.Config
	if cfg.Encoding != charset.UTF8 {
		t.Errorf("expected encoding %q, got %q", charset.UTF8, cfg.Encoding)
	}
	if cfg.NewLineMarker != format.MarkerLinux {
		t.Errorf("expected marker %q, got %q", format.MarkerLinux, cfg.NewLineMarker)
	}
	if !cfg.NormalizeNewLineMarkers {
		t.Error("expected normalize_new_line_markers true from end_of_line")
	}
	if !cfg.AddNewLineMarkerAtEndOfFile {
		t.Error("expected add_new_line_marker_at_end_of_file true")
	}
	if !cfg.RemoveTrailingWhitespace {
		t.Error("expected remove_trailing_whitespace true")
	}

	if len(result.Warnings) != 0 {
		t.Errorf("expected no warnings, got %v", result.Warnings)
	}
}

func TestConvertEditorConfig_EndOfLine(t *testing.T) {
	t.Parallel()

	tests := []struct {
		value  string
		marker format.MarkerMode
	}{
		{"lf", format.MarkerLinux},
		{"crlf", format.MarkerWindows},
		{"cr", format.MarkerMac},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.value, func(t *testing.T) {
			t.Parallel()

			path := writeEditorConfig(t, "[*]\nend_of_line = "+tt.value+"\n")
			result, err := ConvertEditorConfig(path)
			if err != nil {
				t.Fatalf("ConvertEditorConfig() error = %v", err)
			}

			if result.Config.NewLineMarker != tt.marker {
				t.Errorf("expected marker %q, got %q", tt.marker, result.Config.NewLineMarker)
			}
			if !result.Config.NormalizeNewLineMarkers {
				t.Error("expected normalize_new_line_markers true")
			}
		})
	}
}

func TestConvertEditorConfig_IndentStyleSpace(t *testing.T) {
	t.Parallel()

	path := writeEditorConfig(t, `
[*]
indent_style = space
indent_size = 4
`)

	result, err := ConvertEditorConfig(path)
	if err != nil {
		t.Fatalf("ConvertEditorConfig() error = %v", err)
	}

	if result.Config.ReplaceTabsWithSpaces != 4 {
		t.Errorf("expected replace_tabs_with_spaces 4, got %d", result.Config.ReplaceTabsWithSpaces)
	}
}

func TestConvertEditorConfig_IndentStyleTab(t *testing.T) {
	t.Parallel()

	// indent_size with style tab describes display width, not expansion.
	path := writeEditorConfig(t, `
[*]
indent_style = tab
indent_size = 4
`)

	result, err := ConvertEditorConfig(path)
	if err != nil {
		t.Fatalf("ConvertEditorConfig() error = %v", err)
	}

	if result.Config.ReplaceTabsWithSpaces != -1 {
		t.Errorf("expected replace_tabs_with_spaces -1, got %d", result.Config.ReplaceTabsWithSpaces)
	}
}

func TestConvertEditorConfig_IndentStyleSpaceWithoutSize(t *testing.T) {
	t.Parallel()

	path := writeEditorConfig(t, "[*]\nindent_style = space\n")

	result, err := ConvertEditorConfig(path)
	if err != nil {
		t.Fatalf("ConvertEditorConfig() error = %v", err)
	}

	if result.Config.ReplaceTabsWithSpaces != -1 {
		t.Errorf("expected replace_tabs_with_spaces -1, got %d", result.Config.ReplaceTabsWithSpaces)
	}

	foundWarning := false
	for _, w := range result.Warnings {
		if strings.Contains(w, "indent_size") {
			foundWarning = true
			break
		}
	}
	if !foundWarning {
		t.Errorf("expected warning about missing indent_size, got %v", result.Warnings)
	}
}

func TestConvertEditorConfig_IndentSizeTab(t *testing.T) {
	t.Parallel()

	path := writeEditorConfig(t, `
[*]
indent_style = space
indent_size = tab
`)

	result, err := ConvertEditorConfig(path)
	if err != nil {
		t.Fatalf("ConvertEditorConfig() error = %v", err)
	}

	if result.Config.ReplaceTabsWithSpaces != -1 {
		t.Errorf("expected replace_tabs_with_spaces -1, got %d", result.Config.ReplaceTabsWithSpaces)
	}
	if len(result.Warnings) == 0 {
		t.Error("expected warning for indent_size = tab")
	}
}

func TestConvertEditorConfig_Charset(t *testing.T) {
	t.Parallel()

	tests := []struct {
		value    string
		encoding charset.Encoding
		warns    bool
	}{
		{"utf-8", charset.UTF8, false},
		{"utf-8-bom", charset.UTF8, true},
		{"latin1", charset.Latin1, false},
		{"utf-16le", charset.UTF16LE, false},
		{"utf-16be", charset.UTF16BE, false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.value, func(t *testing.T) {
			t.Parallel()

			path := writeEditorConfig(t, "[*]\ncharset = "+tt.value+"\n")
			result, err := ConvertEditorConfig(path)
			if err != nil {
				t.Fatalf("ConvertEditorConfig() error = %v", err)
			}

			if result.Config.Encoding != tt.encoding {
				t.Errorf("expected encoding %q, got %q", tt.encoding, result.Config.Encoding)
			}
			if tt.warns && len(result.Warnings) == 0 {
				t.Error("expected warning")
			}
			if !tt.warns && len(result.Warnings) != 0 {
				t.Errorf("unexpected warnings: %v", result.Warnings)
			}
		})
	}
}

func TestConvertEditorConfig_SectionWarnings(t *testing.T) {
	t.Parallel()

	path := writeEditorConfig(t, `
[*]
trim_trailing_whitespace = true

[*.md]
trim_trailing_whitespace = false

[Makefile]
indent_style = tab
`)

	result, err := ConvertEditorConfig(path)
	if err != nil {
		t.Fatalf("ConvertEditorConfig() error = %v", err)
	}

	// The [*] section converts; narrower sections warn and do not apply.
	if !result.Config.RemoveTrailingWhitespace {
		t.Error("expected remove_trailing_whitespace true from [*]")
	}

	warned := map[string]bool{}
	for _, w := range result.Warnings {
		for _, pattern := range []string{"*.md", "Makefile"} {
			if strings.Contains(w, pattern) {
				warned[pattern] = true
			}
		}
	}
	if !warned["*.md"] || !warned["Makefile"] {
		t.Errorf("expected warnings for both narrower sections, got %v", result.Warnings)
	}
}

func TestConvertEditorConfig_UnknownKey(t *testing.T) {
	t.Parallel()

	path := writeEditorConfig(t, `
[*]
max_line_length = 80
trim_trailing_whitespace = true
`)

	result, err := ConvertEditorConfig(path)
	if err != nil {
		t.Fatalf("ConvertEditorConfig() error = %v", err)
	}

	if !result.Config.RemoveTrailingWhitespace {
		t.Error("expected remove_trailing_whitespace true")
	}

	foundWarning := false
	for _, w := range result.Warnings {
		if strings.Contains(w, "max_line_length") {
			foundWarning = true
			break
		}
	}
	if !foundWarning {
		t.Errorf("expected warning about max_line_length, got %v", result.Warnings)
	}
}

func TestConvertEditorConfig_UnsetValue(t *testing.T) {
	t.Parallel()

	path := writeEditorConfig(t, "[*]\ntrim_trailing_whitespace = unset\n")

	result, err := ConvertEditorConfig(path)
	if err != nil {
		t.Fatalf("ConvertEditorConfig() error = %v", err)
	}

	if result.Config.RemoveTrailingWhitespace {
		t.Error("unset value must not enable the option")
	}
	if len(result.Warnings) != 0 {
		t.Errorf("unset value must not warn, got %v", result.Warnings)
	}
}

func TestConvertEditorConfig_CaseInsensitive(t *testing.T) {
	t.Parallel()

	path := writeEditorConfig(t, "[*]\nTrim_Trailing_Whitespace = True\nEnd_Of_Line = LF\n")

	result, err := ConvertEditorConfig(path)
	if err != nil {
		t.Fatalf("ConvertEditorConfig() error = %v", err)
	}

	if !result.Config.RemoveTrailingWhitespace {
		t.Error("expected remove_trailing_whitespace true")
	}
	if result.Config.NewLineMarker != format.MarkerLinux {
		t.Errorf("expected marker %q, got %q", format.MarkerLinux, result.Config.NewLineMarker)
	}
}

func TestConvertEditorConfig_InvalidValue(t *testing.T) {
	t.Parallel()

	path := writeEditorConfig(t, "[*]\nend_of_line = lfcr\n")

	result, err := ConvertEditorConfig(path)
	if err != nil {
		t.Fatalf("ConvertEditorConfig() error = %v", err)
	}

	if result.Config.NormalizeNewLineMarkers {
		t.Error("invalid end_of_line must not enable normalization")
	}
	if len(result.Warnings) == 0 {
		t.Error("expected warning for invalid end_of_line value")
	}
}

func TestConvertEditorConfig_MalformedFile(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
	}{
		{"bare word", "[*]\nthis is not a property\n"},
		{"unterminated section", "[*\nend_of_line = lf\n"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			path := writeEditorConfig(t, tt.content)
			_, err := ConvertEditorConfig(path)
			if err == nil {
				t.Fatal("expected parse error")
			}
		})
	}
}

func TestConvertEditorConfig_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := ConvertEditorConfig(filepath.Join(t.TempDir(), ".editorconfig"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestConvertEditorConfig_Comments(t *testing.T) {
	t.Parallel()

	path := writeEditorConfig(t, `
# hash comment
; semicolon comment
[*]
# another comment
trim_trailing_whitespace = true
`)

	result, err := ConvertEditorConfig(path)
	if err != nil {
		t.Fatalf("ConvertEditorConfig() error = %v", err)
	}

	if !result.Config.RemoveTrailingWhitespace {
		t.Error("expected remove_trailing_whitespace true")
	}
	if len(result.Warnings) != 0 {
		t.Errorf("comments must not warn, got %v", result.Warnings)
	}
}

func TestHasConvertibleSettings(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		content  string
		expected bool
	}{
		{
			name:     "relevant settings in star section",
			content:  "[*]\ntrim_trailing_whitespace = true\n",
			expected: true,
		},
		{
			name:     "only root",
			content:  "root = true\n",
			expected: false,
		},
		{
			name:     "only irrelevant keys",
			content:  "[*]\nmax_line_length = 80\n",
			expected: false,
		},
		{
			name:     "relevant keys only in narrow section",
			content:  "[*.md]\ntrim_trailing_whitespace = true\n",
			expected: false,
		},
		{
			name:     "malformed",
			content:  "not an editorconfig\n",
			expected: false,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			path := writeEditorConfig(t, tt.content)
			if got := HasConvertibleSettings(path); got != tt.expected {
				t.Errorf("HasConvertibleSettings() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestHasConvertibleSettings_MissingFile(t *testing.T) {
	t.Parallel()

	if HasConvertibleSettings(filepath.Join(t.TempDir(), ".editorconfig")) {
		t.Error("missing file must report false")
	}
}

func TestGenerateMigrationHeader(t *testing.T) {
	t.Parallel()

	header := GenerateMigrationHeader("/some/project/.editorconfig")
	if !strings.Contains(header, "Migrated from: .editorconfig") {
		t.Errorf("header should name the source file, got %q", header)
	}
}
