package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/wsfmt/internal/logging"
	"github.com/yaklabco/wsfmt/pkg/charset"
	"github.com/yaklabco/wsfmt/pkg/config"
	"github.com/yaklabco/wsfmt/pkg/pipeline"
	"github.com/yaklabco/wsfmt/pkg/reporter"
	"github.com/yaklabco/wsfmt/pkg/runner"
)

// inspectFlags holds the flags for the inspect command.
type inspectFlags struct {
	format         string
	compact        bool
	encoding       string
	jobs           int
	exclude        []string
	extensions     []string
	followSymlinks bool
	skipBinary     bool
}

func newInspectCommand() *cobra.Command {
	flags := &inspectFlags{}

	cmd := &cobra.Command{
		Use:   "inspect [paths...]",
		Short: "Show whitespace statistics for files",
		Long: `Inspect files and report whitespace statistics without changing anything:
line counts, end-of-line markers by kind, the dominant marker, lines with
trailing whitespace, tab and non-standard character counts, and whether
the file ends with a marker.

Examples:
  wsfmt inspect                    # Statistics for the current directory
  wsfmt inspect src/ docs/         # Specific directories
  wsfmt inspect --format json      # Machine-readable output`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(cmd, args, flags)
		},
	}

	cmd.Flags().StringVar(&flags.format, "format", "table", "output format: table, json")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "minify JSON output")
	cmd.Flags().StringVar(&flags.encoding, "encoding", "utf-8",
		"file encoding: utf-8, latin-1, windows-1252, utf-16le, utf-16be")
	cmd.Flags().IntVar(&flags.jobs, "jobs", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().StringSliceVar(&flags.exclude, "exclude", nil, "glob patterns to skip")
	cmd.Flags().StringSliceVar(&flags.extensions, "extensions", nil,
		"limit discovery to these file extensions")
	cmd.Flags().BoolVar(&flags.followSymlinks, "follow-symlinks", false,
		"resolve symbolic links during discovery")
	cmd.Flags().BoolVar(&flags.skipBinary, "skip-binary", true, "skip files with binary content")

	return cmd
}

func runInspect(cmd *cobra.Command, args []string, flags *inspectFlags) error {
	logger := logging.Default()

	outputFormat := config.OutputFormat(flags.format)
	if outputFormat != config.FormatTable && outputFormat != config.FormatJSON {
		return fmt.Errorf("%w: invalid output format %q (valid: table, json)", errUsage, flags.format)
	}

	if !charset.Encoding(flags.encoding).IsValid() {
		return fmt.Errorf("%w: unsupported encoding %q", errUsage, flags.encoding)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	loadResult, workDir, err := loadConfiguration(cmd, applyInspectFlags(cmd, flags))
	if err != nil {
		return err
	}

	finalCfg := loadResult.Config

	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}

	// Inspection reads and decodes the way formatting does but collects
	// statistics instead of applying transforms.
	inspector := pipeline.NewInspector(pipeline.OptionsFromConfig(finalCfg))
	statsRunner := runner.New(inspector)

	runOpts := runner.OptionsFromConfig(finalCfg, args)
	runOpts.WorkingDir = workDir

	logger.Debug("starting inspection",
		logging.FieldPaths, runOpts.Paths,
		logging.FieldWorkingDir, runOpts.WorkingDir,
		logging.FieldJobs, runOpts.Jobs,
	)

	result, err := statsRunner.Run(ctx, runOpts)
	if err != nil {
		return errors.Join(errIO, err)
	}

	repOpts := reporter.OptionsFromConfig(finalCfg, cmd.OutOrStdout(), cmd.ErrOrStderr())
	repOpts.Format = outputFormat
	repOpts.Compact = flags.compact
	repOpts.WorkingDir = workDir

	rep := reporter.NewStatsReporter(repOpts)
	if _, err := rep.Report(ctx, result); err != nil {
		return fmt.Errorf("report statistics: %w", err)
	}

	// Inspection is informational: unclean files do not affect the exit
	// status, only failures do.
	if result.HasErrors() {
		return fmt.Errorf("%w for %d of %d files",
			errIO, result.Stats.FilesErrored, result.Stats.FilesDiscovered)
	}

	return nil
}

// applyInspectFlags returns a closure copying the inspect command's changed
// flags onto the configuration. The output format stays out of the
// configuration because inspect defaults to a table rather than text.
func applyInspectFlags(cmd *cobra.Command, flags *inspectFlags) func(*config.Config) {
	return func(cfg *config.Config) {
		fs := cmd.Flags()

		if fs.Changed("encoding") {
			cfg.Encoding = charset.Encoding(flags.encoding)
		}
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

		if fs.Changed("color") {
			if color, err := fs.GetString("color"); err == nil {
				cfg.Color = config.ColorMode(color)
			}
		}
	}
}
