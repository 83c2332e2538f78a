package cli_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/yaklabco/wsfmt/internal/cli"
)

func TestFormatCommand_MarkerFlagDefaults(t *testing.T) {
	t.Parallel()

	info := cli.BuildInfo{
		Version: "test",
		Commit:  "test",
		Date:    "test",
	}

	cmd := cli.NewRootCommand(info)
	formatCmd, _, err := cmd.Find([]string{"format"})
	if err != nil {
		t.Fatalf("format command not found: %v", err)
	}

	// Check flag exists
	flag := formatCmd.Flags().Lookup("new-line-marker")
	assert.NotNil(t, flag, "new-line-marker flag should exist")
	assert.Equal(t, "auto", flag.DefValue, "default value should be 'auto'")
}

func TestFormatCommand_TransformFlagsDefaultOff(t *testing.T) {
	t.Parallel()

	info := cli.BuildInfo{
		Version: "test",
		Commit:  "test",
		Date:    "test",
	}

	cmd := cli.NewRootCommand(info)
	formatCmd, _, err := cmd.Find([]string{"format"})
	if err != nil {
		t.Fatalf("format command not found: %v", err)
	}

	// Every transform is opt-in, so the boolean transform flags default to false.
	for _, name := range []string{
		"normalize-new-line-markers",
		"remove-trailing-whitespace",
		"remove-trailing-empty-lines",
		"add-new-line-marker-at-end-of-file",
		"remove-new-line-marker-from-end-of-file",
	} {
		flag := formatCmd.Flags().Lookup(name)
		assert.NotNil(t, flag, "%s flag should exist", name)
		assert.Equal(t, "false", flag.DefValue, "%s should default to false", name)
	}

	tabFlag := formatCmd.Flags().Lookup("replace-tabs-with-spaces")
	assert.NotNil(t, tabFlag, "replace-tabs-with-spaces flag should exist")
	assert.Equal(t, "-1", tabFlag.DefValue, "default value should keep tabs")
}

func TestFormatCommand_OutputFormatFlag(t *testing.T) {
	t.Parallel()

	info := cli.BuildInfo{
		Version: "test",
		Commit:  "test",
		Date:    "test",
	}

	cmd := cli.NewRootCommand(info)
	formatCmd, _, err := cmd.Find([]string{"format"})
	if err != nil {
		t.Fatalf("format command not found: %v", err)
	}

	flag := formatCmd.Flags().Lookup("format")
	assert.NotNil(t, flag, "format flag should exist")
	assert.Equal(t, "text", flag.DefValue, "default value should be 'text'")
	assert.Contains(t, flag.Usage, "diff", "format flag help should include 'diff'")

	skipFlag := formatCmd.Flags().Lookup("skip-binary")
	assert.NotNil(t, skipFlag, "skip-binary flag should exist")
	assert.Equal(t, "true", skipFlag.DefValue, "binary files should be skipped by default")
}

func TestInspectCommand_FormatFlag(t *testing.T) {
	t.Parallel()

	info := cli.BuildInfo{
		Version: "test",
		Commit:  "test",
		Date:    "test",
	}

	cmd := cli.NewRootCommand(info)
	inspectCmd, _, err := cmd.Find([]string{"inspect"})
	if err != nil {
		t.Fatalf("inspect command not found: %v", err)
	}

	flag := inspectCmd.Flags().Lookup("format")
	assert.NotNil(t, flag, "format flag should exist")
	assert.Equal(t, "table", flag.DefValue, "default value should be 'table'")
	assert.Contains(t, flag.Usage, "json", "format flag help should include 'json'")
}
