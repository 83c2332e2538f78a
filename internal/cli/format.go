package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/yaklabco/wsfmt/internal/configloader"
	"github.com/yaklabco/wsfmt/internal/logging"
	"github.com/yaklabco/wsfmt/pkg/charset"
	"github.com/yaklabco/wsfmt/pkg/config"
	"github.com/yaklabco/wsfmt/pkg/format"
	"github.com/yaklabco/wsfmt/pkg/pipeline"
	"github.com/yaklabco/wsfmt/pkg/reporter"
	"github.com/yaklabco/wsfmt/pkg/runner"
)

// formatFlags holds the flag values shared by the format, check, and watch
// commands. A value only reaches the configuration when the user actually
// set the flag; see applyFormatFlags.
type formatFlags struct {
	// Engine options.
	newLineMarker                    string
	normalizeNewLineMarkers          bool
	normalizeEmptyFiles              string
	normalizeWhitespaceOnlyFiles     string
	removeTrailingWhitespace         bool
	removeTrailingEmptyLines         bool
	addNewLineMarkerAtEndOfFile      bool
	removeNewLineMarkerFromEndOfFile bool
	normalizeNonStandardWhitespace   string
	replaceTabsWithSpaces            int

	// Output modes.
	check   bool
	diff    bool
	quiet   bool
	verbose bool
	format  string

	// I/O behavior.
	encoding string
	backup   bool
	strict   bool

	// Batch processing.
	jobs           int
	exclude        []string
	extensions     []string
	followSymlinks bool
	skipBinary     bool

	// Watch only.
	debounce time.Duration
}

func newFormatCommand() *cobra.Command {
	flags := &formatFlags{}

	cmd := &cobra.Command{
		Use:   "format [paths...]",
		Short: "Normalize whitespace in files",
		Long:  formatLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFormat(cmd, args, flags, false)
		},
	}

	addEngineFlags(cmd, flags)
	addModeFlags(cmd, flags)
	addIOFlags(cmd, flags)
	addBatchFlags(cmd, flags)

	return cmd
}

const formatLongDescription = `Normalize whitespace in text files.

By default, formats all files in the current directory and subdirectories.
Specify paths to format specific files or directories. Every transform is
opt-in: enable it with a flag or in a .wsfmt.yaml configuration file.
Files are rewritten atomically and only when their content changed.

Examples:
  wsfmt format --remove-trailing-whitespace   # Strip trailing spaces
  wsfmt format --new-line-marker linux docs/  # Rewrite line endings
  wsfmt format --check                        # Report without writing
  wsfmt format --diff README.md               # Preview as unified diff
  wsfmt format --format json                  # Machine-readable output`

func runFormat(cmd *cobra.Command, args []string, flags *formatFlags, forceCheck bool) error {
	logger := logging.Default()

	if err := validateFormatFlags(cmd, flags); err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	loadResult, workDir, err := loadConfiguration(cmd, applyFormatFlags(cmd, flags))
	if err != nil {
		return err
	}

	finalCfg := loadResult.Config

	// Log warnings from config loading.
	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}

	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration from", logging.FieldFiles, loadResult.LoadedFrom)
	}

	if forceCheck {
		finalCfg.Check = true
	}

	// The --diff flag is a preview and never writes. The diff output format
	// needs diffs attached to each outcome regardless of mode.
	if finalCfg.Diff {
		finalCfg.Check = true
		if !cmd.Flags().Changed("format") {
			finalCfg.Format = config.FormatDiff
		}
	}
	if finalCfg.Format == config.FormatDiff {
		finalCfg.Diff = true
	}

	logger.Debug("configuration loaded",
		logging.FieldMarker, finalCfg.NewLineMarker,
		logging.FieldEncoding, finalCfg.Encoding,
		logging.FieldMode, runMode(finalCfg.Check),
		logging.FieldJobs, finalCfg.Jobs,
	)

	// Build the per-file pipeline and the multi-file runner.
	proc := pipeline.New(pipeline.OptionsFromConfig(finalCfg))
	fmtRunner := runner.New(proc)

	runOpts := runner.OptionsFromConfig(finalCfg, args)
	runOpts.WorkingDir = workDir

	logger.Debug("starting run",
		logging.FieldPaths, runOpts.Paths,
		logging.FieldWorkingDir, runOpts.WorkingDir,
		logging.FieldJobs, runOpts.Jobs,
	)

	result, err := fmtRunner.Run(ctx, runOpts)
	if err != nil {
		return errors.Join(errIO, err)
	}

	// Report results.
	repOpts := reporter.OptionsFromConfig(finalCfg, cmd.OutOrStdout(), cmd.ErrOrStderr())
	repOpts.Verbose = flags.verbose
	repOpts.WorkingDir = workDir

	rep, err := reporter.New(repOpts)
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}

	if _, err := rep.Report(ctx, result); err != nil {
		return fmt.Errorf("report results: %w", err)
	}

	// Determine exit code based on result.
	switch ExitCodeFromResult(result, finalCfg.Check) {
	case ExitChangesRequired:
		return ErrChangesRequired
	case ExitIOError:
		return fmt.Errorf("%w for %d of %d files",
			errIO, result.Stats.FilesErrored, result.Stats.FilesDiscovered)
	}

	return nil
}

// runMode names the run mode for log output.
func runMode(check bool) string {
	if check {
		return "check"
	}
	return "write"
}

// loadConfiguration resolves the effective configuration for a command,
// layering config files, environment variables, and the given flag closure.
// It returns the load result and the working directory used for discovery.
func loadConfiguration(cmd *cobra.Command, applyFlags func(*config.Config)) (*configloader.LoadResult, string, error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	// Get the explicit config path from the root command's persistent flag.
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, "", fmt.Errorf("get config flag: %w", err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return nil, "", fmt.Errorf("get working directory: %w", err)
	}

	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		ApplyFlags:   applyFlags,
	})
	if err != nil {
		return nil, "", errors.Join(errConfig, err)
	}

	return loadResult, workDir, nil
}

// validateFormatFlags rejects invalid enum values before any work happens,
// so a typo surfaces as a usage error rather than a failed run.
func validateFormatFlags(cmd *cobra.Command, flags *formatFlags) error {
	if !format.MarkerMode(flags.newLineMarker).IsValid() {
		return fmt.Errorf("%w: invalid new-line-marker %q (valid: auto, linux, mac, windows)",
			errUsage, flags.newLineMarker)
	}

	if !format.FilePolicy(flags.normalizeEmptyFiles).IsValid() {
		return fmt.Errorf("%w: invalid normalize-empty-files policy %q (valid: ignore, empty, one-line)",
			errUsage, flags.normalizeEmptyFiles)
	}

	if !format.FilePolicy(flags.normalizeWhitespaceOnlyFiles).IsValid() {
		return fmt.Errorf("%w: invalid normalize-whitespace-only-files policy %q (valid: ignore, empty, one-line)",
			errUsage, flags.normalizeWhitespaceOnlyFiles)
	}

	if !format.NonStandardMode(flags.normalizeNonStandardWhitespace).IsValid() {
		return fmt.Errorf("%w: invalid normalize-non-standard-whitespace policy %q (valid: ignore, remove, replace)",
			errUsage, flags.normalizeNonStandardWhitespace)
	}

	if !charset.Encoding(flags.encoding).IsValid() {
		return fmt.Errorf("%w: unsupported encoding %q", errUsage, flags.encoding)
	}

	if !config.OutputFormat(flags.format).IsValid() {
		return fmt.Errorf("%w: invalid output format %q (valid: text, json, table, diff)",
			errUsage, flags.format)
	}

	if color, err := cmd.Flags().GetString("color"); err == nil {
		if !config.ColorMode(color).IsValid() {
			return fmt.Errorf("%w: invalid color mode %q (valid: auto, always, never)", errUsage, color)
		}
	}

	return nil
}

// applyFormatFlags returns a closure copying exactly the flags the user set
// onto the configuration. The closure runs after every other source, which
// is how flag values win over files and environment variables without flag
// defaults clobbering them. Flags absent from the command's flag set (the
// watch command carries no mode flags) report Changed as false.
func applyFormatFlags(cmd *cobra.Command, flags *formatFlags) func(*config.Config) {
	return func(cfg *config.Config) {
		fs := cmd.Flags()

		// Engine options.
		if fs.Changed("new-line-marker") {
			cfg.NewLineMarker = format.MarkerMode(flags.newLineMarker)
		}
		if fs.Changed("normalize-new-line-markers") {
			cfg.NormalizeNewLineMarkers = flags.normalizeNewLineMarkers
		}
		if fs.Changed("normalize-empty-files") {
			cfg.NormalizeEmptyFiles = format.FilePolicy(flags.normalizeEmptyFiles)
		}
		if fs.Changed("normalize-whitespace-only-files") {
			cfg.NormalizeWhitespaceOnlyFiles = format.FilePolicy(flags.normalizeWhitespaceOnlyFiles)
		}
		if fs.Changed("remove-trailing-whitespace") {
			cfg.RemoveTrailingWhitespace = flags.removeTrailingWhitespace
		}
		if fs.Changed("remove-trailing-empty-lines") {
			cfg.RemoveTrailingEmptyLines = flags.removeTrailingEmptyLines
		}
		if fs.Changed("add-new-line-marker-at-end-of-file") {
			cfg.AddNewLineMarkerAtEndOfFile = flags.addNewLineMarkerAtEndOfFile
		}
		if fs.Changed("remove-new-line-marker-from-end-of-file") {
			cfg.RemoveNewLineMarkerFromEndOfFile = flags.removeNewLineMarkerFromEndOfFile
		}
		if fs.Changed("normalize-non-standard-whitespace") {
			cfg.NormalizeNonStandardWhitespace = format.NonStandardMode(flags.normalizeNonStandardWhitespace)
		}
		if fs.Changed("replace-tabs-with-spaces") {
			cfg.ReplaceTabsWithSpaces = flags.replaceTabsWithSpaces
		}

		// Output modes.
		if fs.Changed("check") {
			cfg.Check = flags.check
		}
		if fs.Changed("diff") {
			cfg.Diff = flags.diff
		}
		if fs.Changed("quiet") {
			cfg.Quiet = flags.quiet
		}
		if fs.Changed("format") {
			cfg.Format = config.OutputFormat(flags.format)
		}

		// I/O behavior.
		if fs.Changed("encoding") {
			cfg.Encoding = charset.Encoding(flags.encoding)
		}
		if fs.Changed("backup") {
			cfg.Backups.Enabled = flags.backup
		}
		if fs.Changed("strict") {
			cfg.Strict = flags.strict
		}

		// Batch processing.
		if fs.Changed("jobs") {
			cfg.Jobs = flags.jobs
		}
		if fs.Changed("exclude") {
			cfg.Exclude = flags.exclude
		}
		if fs.Changed("extensions") {
			cfg.Extensions = flags.extensions
		}
		if fs.Changed("follow-symlinks") {
			cfg.FollowSymlinks = flags.followSymlinks
		}
		if fs.Changed("skip-binary") {
			cfg.SkipBinary = flags.skipBinary
		}

		// Root persistent flag.
		if fs.Changed("color") {
			if color, err := fs.GetString("color"); err == nil {
				cfg.Color = config.ColorMode(color)
			}
		}
	}
}

func addEngineFlags(cmd *cobra.Command, flags *formatFlags) {
	// Defaults match a fresh configuration, so an unset flag never enables
	// a transform.
	cmd.Flags().StringVar(&flags.newLineMarker, "new-line-marker", "auto",
		"target end-of-line marker: auto, linux, mac, windows")
	cmd.Flags().BoolVar(&flags.normalizeNewLineMarkers, "normalize-new-line-markers", false,
		"rewrite every end-of-line marker to the target")
	cmd.Flags().StringVar(&flags.normalizeEmptyFiles, "normalize-empty-files", "ignore",
		"policy for empty files: ignore, empty, one-line")
	cmd.Flags().StringVar(&flags.normalizeWhitespaceOnlyFiles, "normalize-whitespace-only-files", "ignore",
		"policy for whitespace-only files: ignore, empty, one-line")
	cmd.Flags().BoolVar(&flags.removeTrailingWhitespace, "remove-trailing-whitespace", false,
		"strip whitespace from the ends of lines")
	cmd.Flags().BoolVar(&flags.removeTrailingEmptyLines, "remove-trailing-empty-lines", false,
		"remove empty lines at the end of the file")
	cmd.Flags().BoolVar(&flags.addNewLineMarkerAtEndOfFile, "add-new-line-marker-at-end-of-file", false,
		"ensure the file ends with the target marker")
	cmd.Flags().BoolVar(&flags.removeNewLineMarkerFromEndOfFile, "remove-new-line-marker-from-end-of-file", false,
		"strip the marker ending the final line")
	cmd.Flags().StringVar(&flags.normalizeNonStandardWhitespace, "normalize-non-standard-whitespace", "ignore",
		"policy for \\v and \\f characters: ignore, remove, replace")
	cmd.Flags().IntVar(&flags.replaceTabsWithSpaces, "replace-tabs-with-spaces", -1,
		"spaces per tab (negative keeps tabs, zero deletes them)")
}

func addModeFlags(cmd *cobra.Command, flags *formatFlags) {
	cmd.Flags().BoolVar(&flags.check, "check", false,
		"report files that would change without writing")
	cmd.Flags().BoolVar(&flags.diff, "diff", false,
		"preview changes as unified diffs (implies --check)")
	cmd.Flags().BoolVarP(&flags.quiet, "quiet", "q", false,
		"suppress per-file output for skipped files")
	cmd.Flags().BoolVarP(&flags.verbose, "verbose", "v", false,
		"expand the summary into the block form")
	cmd.Flags().StringVar(&flags.format, "format", "text",
		"output format: text, json, table, diff")
}

func addIOFlags(cmd *cobra.Command, flags *formatFlags) {
	cmd.Flags().StringVar(&flags.encoding, "encoding", "utf-8",
		"file encoding: utf-8, latin-1, windows-1252, utf-16le, utf-16be")
	cmd.Flags().BoolVar(&flags.backup, "backup", false,
		"write a sidecar backup before modifying a file")
	cmd.Flags().BoolVar(&flags.strict, "strict", false,
		"re-hash files before writing to detect concurrent modification")
}

func addBatchFlags(cmd *cobra.Command, flags *formatFlags) {
	cmd.Flags().IntVar(&flags.jobs, "jobs", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().StringSliceVar(&flags.exclude, "exclude", nil, "glob patterns to skip")
	cmd.Flags().StringSliceVar(&flags.extensions, "extensions", nil,
		"limit discovery to these file extensions")
	cmd.Flags().BoolVar(&flags.followSymlinks, "follow-symlinks", false,
		"resolve symbolic links during discovery")
	cmd.Flags().BoolVar(&flags.skipBinary, "skip-binary", true, "skip files with binary content")
}
