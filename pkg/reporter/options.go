package reporter

import (
	"io"
	"os"

	"github.com/yaklabco/wsfmt/pkg/config"
)

// bufWriterSize is the buffer size for buffered output writers (64 KiB).
const bufWriterSize = 64 * 1024

// Options configures reporter behavior.
type Options struct {
	// Writer is the destination for output (typically os.Stdout).
	Writer io.Writer

	// ErrorWriter is the destination for errors (typically os.Stderr).
	ErrorWriter io.Writer

	// Format specifies the output format.
	Format config.OutputFormat

	// Color controls colorized output.
	Color config.ColorMode

	// Quiet suppresses per-file output for skipped files. Changed files,
	// errors and the summary are still reported.
	Quiet bool

	// ShowSummary displays aggregate statistics after results.
	ShowSummary bool

	// Verbose expands the one-line summary into the block form
	// (text format only).
	Verbose bool

	// Compact uses compact/minified output where applicable.
	Compact bool

	// WorkingDir is the directory to make paths relative to in diff
	// headers. If empty, the process working directory is used.
	WorkingDir string
}

// DefaultOptions returns Options with sensible defaults.
func DefaultOptions() Options {
	return Options{
		Writer:      os.Stdout,
		ErrorWriter: os.Stderr,
		Format:      config.FormatText,
		Color:       config.ColorAuto,
		ShowSummary: true,
	}
}

// OptionsFromConfig maps a resolved configuration onto reporter options,
// writing to the given streams.
func OptionsFromConfig(cfg *config.Config, out, errOut io.Writer) Options {
	opts := DefaultOptions()
	opts.Writer = out
	opts.ErrorWriter = errOut

	if cfg == nil {
		return opts
	}

	opts.Format = cfg.Format
	opts.Color = cfg.Color
	opts.Quiet = cfg.Quiet

	return opts
}
