// Package reporter renders run results for terminals and machine consumers.
package reporter

import (
	"context"
	"fmt"

	"github.com/yaklabco/wsfmt/pkg/config"
	"github.com/yaklabco/wsfmt/pkg/runner"
)

// Reporter formats and writes run results.
type Reporter interface {
	// Report writes formatted output for the given result. It returns the
	// number of files needing or receiving changes and any write error.
	Report(ctx context.Context, result *runner.Result) (int, error)
}

// New creates a Reporter for the specified options.
func New(opts Options) (Reporter, error) {
	// Default writer to stdout if not specified
	if opts.Writer == nil {
		opts.Writer = DefaultOptions().Writer
	}

	format := opts.Format
	if format == "" {
		format = config.FormatText
	}
	if !format.IsValid() {
		return nil, fmt.Errorf("unsupported format: %s", format)
	}

	switch format {
	case config.FormatJSON:
		return NewJSONReporter(opts), nil
	case config.FormatDiff:
		return NewDiffReporter(opts), nil
	case config.FormatTable:
		return NewTableReporter(opts), nil
	case config.FormatText:
		return NewTextReporter(opts), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

// countChangedFiles counts files whose content differed after formatting.
// Skipped files do not count even when the formatter produced changes for
// them.
func countChangedFiles(result *runner.Result) int {
	var total int
	for _, file := range result.Files {
		if file.Error != nil || file.Result == nil {
			continue
		}
		if file.Result.Changed && !file.Result.Skipped {
			total++
		}
	}
	return total
}
