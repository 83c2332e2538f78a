package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/wsfmt/internal/ui/pretty"
	"github.com/yaklabco/wsfmt/pkg/runner"
)

// TextReporter formats results as styled terminal output, grouped by file.
// Clean files produce no per-file output; they only appear in the summary.
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &TextReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TextReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil || len(result.Files) == 0 {
		if r.opts.ShowSummary && !r.opts.Quiet {
			fmt.Fprintln(r.bw, r.styles.Dim.Render("No files found."))
		}
		return 0, nil
	}

	var changed int

	for _, file := range result.Files {
		// Handle file errors
		if file.Error != nil {
			fmt.Fprint(r.bw, r.styles.FormatFileError(file.Path, file.Error))
			continue
		}

		res := file.Result
		if res == nil {
			continue
		}

		if res.Skipped {
			if !r.opts.Quiet {
				fmt.Fprint(r.bw, r.styles.FormatFileSkipped(file.Path, res.SkipReason))
			}
			continue
		}

		if !res.Changed {
			continue
		}
		changed++

		// File header
		fmt.Fprintln(r.bw, r.styles.FormatFileHeader(file.Path, len(res.Changes)))

		for _, change := range res.Changes {
			fmt.Fprint(r.bw, r.styles.FormatChange(change))
		}

		if res.BackupPath != "" {
			fmt.Fprintln(r.bw, "  "+r.styles.Dim.Render("backup: "+res.BackupPath))
		}

		// Blank line between files
		fmt.Fprintln(r.bw)
	}

	if r.opts.ShowSummary {
		if r.opts.Verbose {
			fmt.Fprint(r.bw, r.styles.FormatSummary(result.Stats))
		} else {
			fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(result.Stats))
		}
	}

	return changed, nil
}
