package pretty_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/wsfmt/internal/ui/pretty"
	"github.com/yaklabco/wsfmt/pkg/format"
	"github.com/yaklabco/wsfmt/pkg/pipeline"
	"github.com/yaklabco/wsfmt/pkg/runner"
	"github.com/yaklabco/wsfmt/pkg/stats"
)

func newTestFormatter() *pretty.TableFormatter {
	return pretty.NewTableFormatter(pretty.NewStyles(false), false, 120)
}

func TestFormatChangesTable(t *testing.T) {
	formatter := newTestFormatter()

	result := &runner.Result{
		Files: []runner.FileOutcome{
			{
				Path: "a.txt",
				Result: &pipeline.Result{
					Path:    "a.txt",
					Changed: true,
					Written: true,
					Changes: []format.Change{
						{Kind: format.KindTrailingWhitespaceRemoved, Line: 1},
						{Kind: format.KindNewLineMarkerAdded, Line: 2},
					},
				},
			},
			{
				Path:   "b.txt",
				Result: &pipeline.Result{Path: "b.txt"},
			},
			{
				Path:  "c.txt",
				Error: errors.New("read failed"),
			},
		},
	}

	table := formatter.FormatChangesTable(result)

	assert.Contains(t, table, "FILE")
	assert.Contains(t, table, "CHANGES")
	assert.Contains(t, table, "STATUS")
	assert.Contains(t, table, "a.txt")
	assert.Contains(t, table, "formatted")
	assert.Contains(t, table, "error: read failed")
	// Clean files are omitted from the rows.
	assert.NotContains(t, table, "b.txt")
}

func TestFormatChangesTable_Empty(t *testing.T) {
	formatter := newTestFormatter()

	assert.Empty(t, formatter.FormatChangesTable(nil))
	assert.Empty(t, formatter.FormatChangesTable(&runner.Result{}))

	// All-clean results produce no table.
	result := &runner.Result{
		Files: []runner.FileOutcome{
			{Path: "a.txt", Result: &pipeline.Result{Path: "a.txt"}},
		},
	}
	assert.Empty(t, formatter.FormatChangesTable(result))
}

func TestFormatTableSummary(t *testing.T) {
	formatter := newTestFormatter()

	summary := formatter.FormatTableSummary(runner.Stats{
		FilesProcessed: 12,
		FilesChanged:   3,
		FilesWritten:   2,
		FilesSkipped:   1,
		FilesErrored:   1,
	})

	assert.Contains(t, summary, "12 files checked")
	assert.Contains(t, summary, "3 changed")
	assert.Contains(t, summary, "2 rewritten")
	assert.Contains(t, summary, "1 skipped")
	assert.Contains(t, summary, "1 errors")
}

func TestFormatStatsTable(t *testing.T) {
	formatter := newTestFormatter()

	result := &runner.Result{
		Files: []runner.FileOutcome{
			{
				Path: "clean.txt",
				Result: &pipeline.Result{
					Path:  "clean.txt",
					Stats: &stats.FileStats{Lines: 4, LF: 4, Dominant: "LF", EndsWithMarker: true},
				},
			},
			{
				Path: "messy.txt",
				Result: &pipeline.Result{
					Path: "messy.txt",
					Stats: &stats.FileStats{
						Lines:                   10,
						LF:                      6,
						CRLF:                    3,
						Dominant:                "LF",
						TrailingWhitespaceLines: 2,
						Tabs:                    5,
					},
				},
			},
		},
	}

	table := formatter.FormatStatsTable(result)

	assert.Contains(t, table, "FILE")
	assert.Contains(t, table, "LINES")
	assert.Contains(t, table, "EOL")
	assert.Contains(t, table, "clean.txt")
	assert.Contains(t, table, "messy.txt")
	assert.Contains(t, table, "mixed")
	assert.Contains(t, table, "2 files, 14 lines")
	assert.Contains(t, table, "1 mixed markers")
	assert.Contains(t, table, "1 missing final marker")
	assert.Contains(t, table, "2 lines with trailing whitespace")
}

func TestFormatStatsTable_Empty(t *testing.T) {
	formatter := newTestFormatter()

	assert.Empty(t, formatter.FormatStatsTable(nil))
	assert.Empty(t, formatter.FormatStatsTable(&runner.Result{}))
}

func TestFormatStatsTable_TruncatesLongPaths(t *testing.T) {
	styles := pretty.NewStyles(false)
	formatter := pretty.NewTableFormatter(styles, false, 60)

	longPath := "very/long/nested/directory/structure/with/many/levels/file.txt"
	result := &runner.Result{
		Files: []runner.FileOutcome{
			{
				Path: longPath,
				Result: &pipeline.Result{
					Path:  longPath,
					Stats: &stats.FileStats{Lines: 1, LF: 1, Dominant: "LF", EndsWithMarker: true},
				},
			},
		},
	}

	table := formatter.FormatStatsTable(result)

	// Path is truncated from the left, keeping the filename visible.
	assert.Contains(t, table, "file.txt")
	assert.NotContains(t, table, longPath)
}
