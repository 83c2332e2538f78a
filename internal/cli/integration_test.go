package cli_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/wsfmt/internal/cli"
)

// testFileWithTrailingSpaces has trailing spaces on line 1 and a trailing
// tab on line 2, so remove-trailing-whitespace reports two changes.
const testFileWithTrailingSpaces = "hello   \nworld\t\n"

// testFileClean needs no changes under any of the configs used here.
const testFileClean = "hello\nworld\n"

// isolateEnv points configuration discovery at empty locations and moves
// the working directory into a fresh temp dir, so results do not depend on
// the machine running the tests. Setenv and Chdir both require the serial
// test path, so none of these tests call t.Parallel.
func isolateEnv(t *testing.T) string {
	t.Helper()

	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))

	// Clear any WSFMT_* variables inherited from the environment. The
	// loader treats empty values as unset.
	for _, kv := range os.Environ() {
		if name, _, ok := strings.Cut(kv, "="); ok && strings.HasPrefix(name, "WSFMT_") {
			t.Setenv(name, "")
		}
	}

	workDir := t.TempDir()
	oldWd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(workDir))
	t.Setenv("PWD", workDir)
	t.Cleanup(func() {
		if err := os.Chdir(oldWd); err != nil {
			t.Errorf("restore working directory: %v", err)
		}
	})

	return workDir
}

func testBuildInfo() cli.BuildInfo {
	return cli.BuildInfo{
		Version: "test",
		Commit:  "test",
		Date:    "test",
	}
}

// TestIntegration_FormatRewritesFile tests that format rewrites a file in
// place using a project config discovered from the working directory.
func TestIntegration_FormatRewritesFile(t *testing.T) {
	workDir := isolateEnv(t)

	file := filepath.Join(workDir, "test.txt")
	require.NoError(t, os.WriteFile(file, []byte(testFileWithTrailingSpaces), 0644))

	configFile := filepath.Join(workDir, ".wsfmt.yaml")
	require.NoError(t, os.WriteFile(configFile, []byte("remove_trailing_whitespace: true\n"), 0644))

	cmd := cli.NewRootCommand(testBuildInfo())

	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs([]string{
		"format",
		"--color", "never",
		file,
	})

	err := cmd.Execute()
	require.NoError(t, err, "format command should succeed in write mode")

	content, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Equal(t, testFileClean, string(content), "trailing whitespace should be stripped")

	output := stdout.String() + stderr.String()
	assert.Contains(t, output, "rewritten", "summary should report the rewrite")
}

// TestIntegration_CheckReportsChanges tests that check leaves the file
// untouched and signals changes through the exit error.
func TestIntegration_CheckReportsChanges(t *testing.T) {
	workDir := isolateEnv(t)

	file := filepath.Join(workDir, "test.txt")
	require.NoError(t, os.WriteFile(file, []byte(testFileWithTrailingSpaces), 0644))

	cfgDir := t.TempDir()
	configFile := filepath.Join(cfgDir, "custom.yaml")
	require.NoError(t, os.WriteFile(configFile, []byte("remove_trailing_whitespace: true\n"), 0644))

	cmd := cli.NewRootCommand(testBuildInfo())

	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs([]string{
		"check",
		"--config", configFile,
		"--color", "never",
		file,
	})

	err := cmd.Execute()
	require.Error(t, err, "check should fail when changes are required")
	assert.ErrorIs(t, err, cli.ErrChangesRequired)
	assert.Equal(t, cli.ExitChangesRequired, cli.ExitCodeForError(err))

	content, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Equal(t, testFileWithTrailingSpaces, string(content), "check mode should never write")

	output := stdout.String() + stderr.String()
	assert.Contains(t, output, "(trailing-whitespace-removed)",
		"output should name the change kind")
}

// TestIntegration_CheckCleanFile tests that check succeeds on a clean file.
func TestIntegration_CheckCleanFile(t *testing.T) {
	workDir := isolateEnv(t)

	file := filepath.Join(workDir, "clean.txt")
	require.NoError(t, os.WriteFile(file, []byte(testFileClean), 0644))

	cfgDir := t.TempDir()
	configFile := filepath.Join(cfgDir, "custom.yaml")
	require.NoError(t, os.WriteFile(configFile, []byte("remove_trailing_whitespace: true\n"), 0644))

	cmd := cli.NewRootCommand(testBuildInfo())

	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs([]string{
		"check",
		"--config", configFile,
		"--color", "never",
		file,
	})

	err := cmd.Execute()
	require.NoError(t, err, "check should succeed when nothing would change")

	output := stdout.String() + stderr.String()
	assert.Contains(t, output, "No changes needed")
}

// TestIntegration_DiffPreservesFile tests that --diff previews changes as a
// unified diff without writing anything.
func TestIntegration_DiffPreservesFile(t *testing.T) {
	workDir := isolateEnv(t)

	file := filepath.Join(workDir, "test.txt")
	require.NoError(t, os.WriteFile(file, []byte(testFileWithTrailingSpaces), 0644))

	cfgDir := t.TempDir()
	configFile := filepath.Join(cfgDir, "custom.yaml")
	require.NoError(t, os.WriteFile(configFile, []byte("remove_trailing_whitespace: true\n"), 0644))

	cmd := cli.NewRootCommand(testBuildInfo())

	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs([]string{
		"format",
		"--config", configFile,
		"--diff",
		"--color", "never",
		file,
	})

	err := cmd.Execute()
	assert.ErrorIs(t, err, cli.ErrChangesRequired, "diff implies check, so changes set the exit status")

	content, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Equal(t, testFileWithTrailingSpaces, string(content), "diff mode should never write")

	output := stdout.String()
	assert.Contains(t, output, "diff --git a/", "output should use the git diff header")
	assert.Contains(t, output, "+++ b/", "output should carry unified diff headers")
	assert.Contains(t, output, "test.txt")
}

// TestIntegration_JSONOutput tests the JSON output format of check mode.
func TestIntegration_JSONOutput(t *testing.T) {
	workDir := isolateEnv(t)

	file := filepath.Join(workDir, "test.txt")
	require.NoError(t, os.WriteFile(file, []byte(testFileWithTrailingSpaces), 0644))

	cfgDir := t.TempDir()
	configFile := filepath.Join(cfgDir, "custom.yaml")
	require.NoError(t, os.WriteFile(configFile, []byte("remove_trailing_whitespace: true\n"), 0644))

	cmd := cli.NewRootCommand(testBuildInfo())

	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs([]string{
		"check",
		"--config", configFile,
		"--format", "json",
		"--color", "never",
		file,
	})

	_ = cmd.Execute() //nolint:errcheck // Ignore error - check mode reports changes

	output := stdout.String()

	assert.Contains(t, output, `"version"`, "JSON output should carry a schema version")
	assert.Contains(t, output, `"filesChecked"`, "JSON output should include summary fields")
	assert.Contains(t, output, `"trailing-whitespace-removed"`,
		"JSON output should include the change kind")
}

// TestIntegration_FlagOverridesConfig tests that an explicit flag wins over
// the config file even when it restates the default.
func TestIntegration_FlagOverridesConfig(t *testing.T) {
	workDir := isolateEnv(t)

	file := filepath.Join(workDir, "test.txt")
	require.NoError(t, os.WriteFile(file, []byte(testFileWithTrailingSpaces), 0644))

	cfgDir := t.TempDir()
	configFile := filepath.Join(cfgDir, "custom.yaml")
	require.NoError(t, os.WriteFile(configFile, []byte("remove_trailing_whitespace: true\n"), 0644))

	cmd := cli.NewRootCommand(testBuildInfo())

	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs([]string{
		"format",
		"--config", configFile,
		"--remove-trailing-whitespace=false",
		"--color", "never",
		file,
	})

	err := cmd.Execute()
	require.NoError(t, err)

	content, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Equal(t, testFileWithTrailingSpaces, string(content),
		"flag should disable the transform the config enabled")

	output := stdout.String() + stderr.String()
	assert.Contains(t, output, "No changes needed")
}

// TestIntegration_BackupSidecar tests that --backup preserves the original
// content next to the rewritten file.
func TestIntegration_BackupSidecar(t *testing.T) {
	workDir := isolateEnv(t)

	file := filepath.Join(workDir, "test.txt")
	require.NoError(t, os.WriteFile(file, []byte(testFileWithTrailingSpaces), 0644))

	cfgDir := t.TempDir()
	configFile := filepath.Join(cfgDir, "custom.yaml")
	require.NoError(t, os.WriteFile(configFile, []byte("remove_trailing_whitespace: true\n"), 0644))

	cmd := cli.NewRootCommand(testBuildInfo())

	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs([]string{
		"format",
		"--config", configFile,
		"--backup",
		"--color", "never",
		file,
	})

	err := cmd.Execute()
	require.NoError(t, err)

	backup, err := os.ReadFile(file + ".wsfmt.bak")
	require.NoError(t, err, "backup sidecar should exist")
	assert.Equal(t, testFileWithTrailingSpaces, string(backup),
		"backup should hold the original content")

	content, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Equal(t, testFileClean, string(content))
}

// TestIntegration_InvalidFlagValue tests that an unknown enum value is
// rejected as a usage error before any file is touched.
func TestIntegration_InvalidFlagValue(t *testing.T) {
	workDir := isolateEnv(t)

	file := filepath.Join(workDir, "test.txt")
	require.NoError(t, os.WriteFile(file, []byte(testFileWithTrailingSpaces), 0644))

	cmd := cli.NewRootCommand(testBuildInfo())

	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs([]string{
		"format",
		"--new-line-marker", "bogus",
		"--color", "never",
		file,
	})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid new-line-marker")
	assert.Equal(t, cli.ExitInvalidUsage, cli.ExitCodeForError(err))
}

// TestIntegration_InitCreatesConfig tests init in a fresh directory.
func TestIntegration_InitCreatesConfig(t *testing.T) {
	workDir := isolateEnv(t)

	cmd := cli.NewRootCommand(testBuildInfo())
	cmd.SetArgs([]string{"init"})

	err := cmd.Execute()
	require.NoError(t, err)

	configPath := filepath.Join(workDir, ".wsfmt.yaml")
	content, err := os.ReadFile(configPath)
	require.NoError(t, err, "init should create .wsfmt.yaml in the working directory")
	assert.Contains(t, string(content), "new_line_marker")

	// A second init must not clobber the file.
	cmd = cli.NewRootCommand(testBuildInfo())
	cmd.SetArgs([]string{"init"})
	err = cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	// Unless forced.
	cmd = cli.NewRootCommand(testBuildInfo())
	cmd.SetArgs([]string{"init", "--force"})
	require.NoError(t, cmd.Execute())
}

// TestIntegration_InitFullTemplate tests init --full with a custom output path.
func TestIntegration_InitFullTemplate(t *testing.T) {
	workDir := isolateEnv(t)

	outputPath := filepath.Join(workDir, "wsfmt-full.yaml")

	cmd := cli.NewRootCommand(testBuildInfo())
	cmd.SetArgs([]string{"init", "--full", "--output", outputPath})

	err := cmd.Execute()
	require.NoError(t, err)

	content, err := os.ReadFile(outputPath)
	require.NoError(t, err)
	assert.Contains(t, string(content), "backups:",
		"full template should document the backups section")
	assert.Contains(t, string(content), "replace_tabs_with_spaces",
		"full template should document every option")
}

// TestIntegration_MigrateDryRun tests that --dry-run prints the converted
// configuration without writing a file.
func TestIntegration_MigrateDryRun(t *testing.T) {
	workDir := isolateEnv(t)

	editorConfig := filepath.Join(workDir, ".editorconfig")
	require.NoError(t, os.WriteFile(editorConfig, []byte(`root = true

[*]
trim_trailing_whitespace = true
end_of_line = lf
`), 0644))

	cmd := cli.NewRootCommand(testBuildInfo())

	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs([]string{"migrate", "--dry-run", editorConfig})

	err := cmd.Execute()
	require.NoError(t, err)

	output := stdout.String()
	assert.Contains(t, output, "remove_trailing_whitespace: true")
	assert.Contains(t, output, "new_line_marker: linux")
	assert.Contains(t, output, "# Migrated from: .editorconfig")

	_, err = os.Stat(filepath.Join(workDir, ".wsfmt.yaml"))
	assert.True(t, os.IsNotExist(err), "dry run should not write a config file")
}

// TestIntegration_MigrateWritesConfig tests migration with automatic
// .editorconfig detection from the working directory.
func TestIntegration_MigrateWritesConfig(t *testing.T) {
	workDir := isolateEnv(t)

	editorConfig := filepath.Join(workDir, ".editorconfig")
	require.NoError(t, os.WriteFile(editorConfig, []byte(`[*]
insert_final_newline = true
indent_style = space
indent_size = 4
`), 0644))

	cmd := cli.NewRootCommand(testBuildInfo())
	cmd.SetArgs([]string{"migrate"})

	err := cmd.Execute()
	require.NoError(t, err)

	content, err := os.ReadFile(filepath.Join(workDir, ".wsfmt.yaml"))
	require.NoError(t, err, "migrate should write .wsfmt.yaml")
	assert.Contains(t, string(content), "add_new_line_marker_at_end_of_file: true")
	assert.Contains(t, string(content), "replace_tabs_with_spaces: 4")

	// A second migration must not clobber the file.
	cmd = cli.NewRootCommand(testBuildInfo())
	cmd.SetArgs([]string{"migrate"})
	err = cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

// TestIntegration_InspectTable tests the default table output of inspect.
func TestIntegration_InspectTable(t *testing.T) {
	workDir := isolateEnv(t)

	file := filepath.Join(workDir, "test.txt")
	require.NoError(t, os.WriteFile(file, []byte(testFileWithTrailingSpaces), 0644))

	cmd := cli.NewRootCommand(testBuildInfo())

	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs([]string{
		"inspect",
		"--color", "never",
		file,
	})

	err := cmd.Execute()
	require.NoError(t, err, "inspect is informational and should not fail on unclean files")

	output := stdout.String()
	assert.Contains(t, output, "FILE", "table should have a header row")
	assert.Contains(t, output, "TRAIL", "table should report trailing whitespace")
	assert.Contains(t, output, "test.txt")
}

// TestIntegration_InspectJSON tests the JSON output of inspect.
func TestIntegration_InspectJSON(t *testing.T) {
	workDir := isolateEnv(t)

	file := filepath.Join(workDir, "test.txt")
	require.NoError(t, os.WriteFile(file, []byte(testFileClean), 0644))

	cmd := cli.NewRootCommand(testBuildInfo())

	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs([]string{
		"inspect",
		"--format", "json",
		file,
	})

	err := cmd.Execute()
	require.NoError(t, err)

	output := stdout.String()
	assert.Contains(t, output, `"version"`)
	assert.Contains(t, output, `"totals"`)
}
