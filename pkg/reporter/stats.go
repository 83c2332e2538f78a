package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/wsfmt/internal/ui/pretty"
	"github.com/yaklabco/wsfmt/pkg/config"
	"github.com/yaklabco/wsfmt/pkg/runner"
	"github.com/yaklabco/wsfmt/pkg/stats"
)

// JSONStatsOutput is the top-level structure for JSON statistics output.
type JSONStatsOutput struct {
	Version string          `json:"version"`
	Files   []JSONFileStats `json:"files"`
	Totals  stats.Totals    `json:"totals"`
}

// JSONFileStats pairs a file path with its whitespace statistics.
type JSONFileStats struct {
	Path  string           `json:"path"`
	Stats *stats.FileStats `json:"stats,omitempty"`
	Error string           `json:"error,omitempty"`
}

// StatsReporter renders inspection statistics. The table form is the
// default; the json format switches to a machine-readable document.
type StatsReporter struct {
	opts      Options
	styles    *pretty.Styles
	formatter *pretty.TableFormatter
	bw        *bufio.Writer
}

// NewStatsReporter creates a reporter for inspection results.
func NewStatsReporter(opts Options) *StatsReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	styles := pretty.NewStyles(colorEnabled)

	return &StatsReporter{
		opts:      opts,
		styles:    styles,
		formatter: pretty.NewTableFormatter(styles, colorEnabled, getTerminalWidth(opts.Writer)),
		bw:        bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter. The returned count is the number of files
// whose statistics show something to fix.
func (r *StatsReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if r.opts.Format == config.FormatJSON {
		return r.reportJSON(result)
	}
	return r.reportTable(result)
}

func (r *StatsReporter) reportTable(result *runner.Result) (int, error) {
	if result == nil || len(result.Files) == 0 {
		fmt.Fprintln(r.bw, r.styles.Dim.Render("No files found."))
		return 0, nil
	}

	for _, file := range result.Files {
		if file.Error != nil {
			fmt.Fprint(r.bw, r.styles.FormatFileError(file.Path, file.Error))
		}
	}

	table := r.formatter.FormatStatsTable(result)
	if table == "" {
		return 0, nil
	}
	fmt.Fprint(r.bw, table)

	return countUncleanFiles(result), nil
}

func (r *StatsReporter) reportJSON(result *runner.Result) (int, error) {
	output := &JSONStatsOutput{
		Version: jsonSchemaVersion,
		Files:   make([]JSONFileStats, 0),
	}

	var collected []stats.FileStats

	if result != nil {
		for _, file := range result.Files {
			entry := JSONFileStats{Path: file.Path}

			if file.Error != nil {
				entry.Error = file.Error.Error()
			} else if file.Result != nil && file.Result.Stats != nil {
				entry.Stats = file.Result.Stats
				collected = append(collected, *file.Result.Stats)
			}

			output.Files = append(output.Files, entry)
		}
	}

	output.Totals = stats.Aggregate(collected)

	encoder := json.NewEncoder(r.bw)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}

	if err := encoder.Encode(output); err != nil {
		return 0, fmt.Errorf("encode JSON: %w", err)
	}

	return output.Totals.Files - output.Totals.CleanFiles, nil
}

// countUncleanFiles counts inspected files with something to fix.
func countUncleanFiles(result *runner.Result) int {
	var total int
	for _, file := range result.Files {
		if file.Error != nil || file.Result == nil || file.Result.Stats == nil {
			continue
		}
		if !file.Result.Stats.Clean() {
			total++
		}
	}
	return total
}
