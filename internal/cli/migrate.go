package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/wsfmt/internal/configloader"
	"github.com/yaklabco/wsfmt/internal/logging"
)

// migrateFlags holds the flags for the migrate command.
type migrateFlags struct {
	force  bool
	dryRun bool
	output string
	input  string
}

func newMigrateCommand() *cobra.Command {
	flags := &migrateFlags{}

	cmd := &cobra.Command{
		Use:   "migrate [input]",
		Short: "Convert an .editorconfig to wsfmt format",
		Long: `Convert the whitespace-relevant settings of an .editorconfig file
(trim_trailing_whitespace, insert_final_newline, end_of_line, indent_style
with indent_size, charset) into a .wsfmt.yaml.

If no input file is specified, the command searches for an .editorconfig
in the current directory and its parents. Only the [*] section converts;
wsfmt has no per-pattern settings, so narrower sections are reported and
skipped.

Examples:
  wsfmt migrate                          Auto-detect and convert .editorconfig
  wsfmt migrate path/to/.editorconfig    Convert specific file
  wsfmt migrate --dry-run                Print the result without writing
  wsfmt migrate --output config.yaml     Write to custom output path`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				flags.input = args[0]
			}
			return runMigrate(cmd, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "Overwrite existing output file")
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "Print the converted configuration without writing")
	cmd.Flags().StringVarP(&flags.output, "output", "o", defaultConfigFileName, "Output file path")

	return cmd
}

func runMigrate(cmd *cobra.Command, flags *migrateFlags) error {
	logger := logging.NewInteractive()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	// Find input file
	inputPath := flags.input
	if inputPath == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("get working directory: %w", err)
		}

		inputPath, err = configloader.FindEditorConfig(ctx, cwd)
		if err != nil {
			return fmt.Errorf("find .editorconfig: %w", err)
		}
		if inputPath == "" {
			return errors.New("no .editorconfig found in the current directory or its parents")
		}

		logger.Info("found .editorconfig", logging.FieldPath, inputPath)
	}

	// Check input exists
	if _, err := os.Stat(inputPath); os.IsNotExist(err) {
		return fmt.Errorf("input file does not exist: %s", inputPath)
	}

	// Check there is something to convert
	if !configloader.HasConvertibleSettings(inputPath) {
		return fmt.Errorf("%s has no convertible whitespace settings in its [*] section", inputPath)
	}

	// Perform migration
	result, err := configloader.ConvertEditorConfig(inputPath)
	if err != nil {
		return fmt.Errorf("convert configuration: %w", err)
	}

	// Report warnings
	for _, warning := range result.Warnings {
		logger.Warn(warning)
	}

	header := configloader.GenerateMigrationHeader(inputPath)

	// Dry run prints the result instead of writing it.
	if flags.dryRun {
		content, err := result.Config.ToYAMLWithHeader(header)
		if err != nil {
			return fmt.Errorf("serialize configuration: %w", err)
		}
		fmt.Fprint(cmd.OutOrStdout(), string(content))
		return nil
	}

	// Make output path absolute
	absOutput, err := filepath.Abs(flags.output)
	if err != nil {
		return fmt.Errorf("resolve output path: %w", err)
	}

	// Check output exists
	if _, err := os.Stat(absOutput); err == nil {
		if !flags.force {
			return fmt.Errorf("output file %q already exists; use --force to overwrite", flags.output)
		}
		logger.Warn("overwriting existing file", logging.FieldPath, flags.output)
	}

	// Write output
	if err := configloader.WriteConfig(result.Config, absOutput, header); err != nil {
		return fmt.Errorf("write output file: %w", err)
	}

	logger.Info("migration complete", logging.FieldInput, inputPath, logging.FieldOutput, flags.output)

	if len(result.Warnings) > 0 {
		logger.Warn("review warnings above and verify the migrated configuration")
	}

	logger.Info("the .editorconfig can stay; wsfmt prefers .wsfmt.yaml when both exist")

	return nil
}
