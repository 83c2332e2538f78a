package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/yaklabco/wsfmt/pkg/runner"
	"github.com/yaklabco/wsfmt/pkg/stats"
)

// Table formatting constants.
const (
	tablePadding     = 2
	minFileWidth     = 20
	minStatusWidth   = 16
	heavySeparator   = "="
	lightSeparator   = "-"
	defaultTermWidth = 100
)

// ChangeRow represents a single file in the formatting results table.
type ChangeRow struct {
	File    string
	Changes int
	Status  string
	Changed bool
	Errored bool
}

// StatsRow represents a single file in the inspection table.
type StatsRow struct {
	File     string
	Lines    int
	EOL      string
	Trailing int
	Tabs     int
	FinalNL  bool
}

// TableFormatter formats run results as styled tables.
type TableFormatter struct {
	styles       *Styles
	colorEnabled bool
	termWidth    int
}

// NewTableFormatter creates a new table formatter.
func NewTableFormatter(styles *Styles, colorEnabled bool, termWidth int) *TableFormatter {
	if termWidth <= 0 {
		termWidth = defaultTermWidth
	}
	return &TableFormatter{
		styles:       styles,
		colorEnabled: colorEnabled,
		termWidth:    termWidth,
	}
}

// FormatChangesTable formats formatting outcomes as a styled table.
// Clean files are omitted from the rows and appear only in the footer.
func (t *TableFormatter) FormatChangesTable(result *runner.Result) string {
	rows := t.collectChangeRows(result)
	if len(rows) == 0 {
		return ""
	}

	widths := t.changeColumnWidths(rows)

	var builder strings.Builder

	header := fmt.Sprintf(" %-*s  %*s  %-*s",
		widths.file, "FILE",
		widths.changes, "CHANGES",
		widths.status, "STATUS",
	)
	builder.WriteString(t.styles.TableHeader.Render(header))
	builder.WriteString("\n")
	builder.WriteString(t.changeSeparator(widths, heavySeparator))
	builder.WriteString("\n")

	for _, row := range rows {
		builder.WriteString(t.formatChangeRow(row, widths))
		builder.WriteString("\n")
	}

	builder.WriteString(t.changeSeparator(widths, heavySeparator))
	builder.WriteString("\n")

	return builder.String()
}

// collectChangeRows collects one row per file that changed, was skipped,
// or errored.
func (t *TableFormatter) collectChangeRows(result *runner.Result) []ChangeRow {
	if result == nil {
		return nil
	}

	rows := make([]ChangeRow, 0, len(result.Files))

	for _, file := range result.Files {
		if file.Error != nil {
			rows = append(rows, ChangeRow{
				File:    file.Path,
				Status:  "error: " + file.Error.Error(),
				Errored: true,
			})
			continue
		}

		if file.Result == nil {
			continue
		}

		if !file.Result.Changed && !file.Result.Skipped {
			continue
		}

		rows = append(rows, ChangeRow{
			File:    file.Path,
			Changes: len(file.Result.Changes),
			Status:  file.Result.Summary(),
			Changed: file.Result.Changed && !file.Result.Skipped,
		})
	}

	return rows
}

type changeColumnWidths struct {
	file    int
	changes int
	status  int
}

// changeColumnWidths determines column widths based on content.
func (t *TableFormatter) changeColumnWidths(rows []ChangeRow) changeColumnWidths {
	widths := changeColumnWidths{
		file:    minFileWidth,
		changes: len("CHANGES"),
		status:  minStatusWidth,
	}

	for _, row := range rows {
		if len(row.File) > widths.file {
			widths.file = len(row.File)
		}
		if len(row.Status) > widths.status {
			widths.status = len(row.Status)
		}
	}

	// Constrain to terminal width by shrinking the file column first.
	total := t.changeTotalWidth(widths)
	if total > t.termWidth {
		excess := total - t.termWidth
		widths.file = max(minFileWidth, widths.file-excess)

		total = t.changeTotalWidth(widths)
		if total > t.termWidth {
			excess = total - t.termWidth
			widths.status = max(minStatusWidth, widths.status-excess)
		}
	}

	return widths
}

func (t *TableFormatter) changeTotalWidth(widths changeColumnWidths) int {
	return widths.file + widths.changes + widths.status + tablePadding*3
}

func (t *TableFormatter) changeSeparator(widths changeColumnWidths, char string) string {
	return t.styles.TableSeparator.Render(strings.Repeat(char, t.changeTotalWidth(widths)))
}

// formatChangeRow formats a single table row with status-based styling.
func (t *TableFormatter) formatChangeRow(row ChangeRow, widths changeColumnWidths) string {
	file := truncateFilePath(row.File, widths.file)
	status := truncateString(row.Status, widths.status)

	changes := ""
	if row.Changes > 0 {
		changes = strconv.Itoa(row.Changes)
	}

	content := fmt.Sprintf(" %-*s  %*s  %-*s",
		widths.file, file,
		widths.changes, changes,
		widths.status, status,
	)

	return t.changeRowStyle(row).Render(content)
}

// changeRowStyle returns the appropriate style for a row.
func (t *TableFormatter) changeRowStyle(row ChangeRow) lipgloss.Style {
	switch {
	case row.Errored:
		return t.styles.TableErrorRow
	case row.Changed:
		return t.styles.TableChangedRow
	default:
		return lipgloss.NewStyle()
	}
}

// FormatTableSummary formats a one-line footer for the changes table.
func (t *TableFormatter) FormatTableSummary(runStats runner.Stats) string {
	parts := []string{fmt.Sprintf("%d files checked", runStats.FilesProcessed)}

	if runStats.FilesChanged > 0 {
		parts = append(parts, t.styles.Changed.Render(fmt.Sprintf("%d changed", runStats.FilesChanged)))
	}
	if runStats.FilesWritten > 0 {
		parts = append(parts, t.styles.Success.Render(fmt.Sprintf("%d rewritten", runStats.FilesWritten)))
	}
	if runStats.FilesSkipped > 0 {
		parts = append(parts, t.styles.Dim.Render(fmt.Sprintf("%d skipped", runStats.FilesSkipped)))
	}
	if runStats.FilesErrored > 0 {
		parts = append(parts, t.styles.Error.Render(fmt.Sprintf("%d errors", runStats.FilesErrored)))
	}

	return " " + strings.Join(parts, " | ")
}

// FormatStatsTable formats per-file whitespace statistics as a table.
func (t *TableFormatter) FormatStatsTable(result *runner.Result) string {
	rows, collected := t.collectStatsRows(result)
	if len(rows) == 0 {
		return ""
	}

	widths := t.statsColumnWidths(rows)

	var builder strings.Builder

	header := fmt.Sprintf(" %-*s  %*s  %-*s  %*s  %*s  %-*s",
		widths.file, "FILE",
		widths.lines, "LINES",
		widths.eol, "EOL",
		widths.trailing, "TRAIL",
		widths.tabs, "TABS",
		widths.final, "FINAL",
	)
	builder.WriteString(t.styles.TableHeader.Render(header))
	builder.WriteString("\n")
	builder.WriteString(t.statsSeparator(widths, heavySeparator))
	builder.WriteString("\n")

	for _, row := range rows {
		builder.WriteString(t.formatStatsRow(row, widths))
		builder.WriteString("\n")
	}

	builder.WriteString(t.statsSeparator(widths, heavySeparator))
	builder.WriteString("\n")
	builder.WriteString(t.formatStatsSummary(stats.Aggregate(collected)))
	builder.WriteString("\n")

	return builder.String()
}

// collectStatsRows collects one row per inspected file, plus the raw stats
// for aggregation.
func (t *TableFormatter) collectStatsRows(result *runner.Result) ([]StatsRow, []stats.FileStats) {
	if result == nil {
		return nil, nil
	}

	rows := make([]StatsRow, 0, len(result.Files))
	collected := make([]stats.FileStats, 0, len(result.Files))

	for _, file := range result.Files {
		if file.Error != nil || file.Result == nil || file.Result.Stats == nil {
			continue
		}

		fs := *file.Result.Stats
		collected = append(collected, fs)
		rows = append(rows, StatsRow{
			File:     file.Path,
			Lines:    fs.Lines,
			EOL:      markerLabel(fs),
			Trailing: fs.TrailingWhitespaceLines,
			Tabs:     fs.Tabs,
			FinalNL:  fs.EndsWithMarker,
		})
	}

	return rows, collected
}

// markerLabel names the file's end-of-line convention for display. Files
// mixing marker kinds show "mixed" instead of the dominant marker; files
// without any marker show "none".
func markerLabel(fs stats.FileStats) string {
	switch {
	case fs.Mixed():
		return "mixed"
	case fs.LF+fs.CRLF+fs.CR == 0:
		return "none"
	default:
		return fs.Dominant
	}
}

type statsColumnWidths struct {
	file     int
	lines    int
	eol      int
	trailing int
	tabs     int
	final    int
}

// statsColumnWidths determines column widths based on content.
func (t *TableFormatter) statsColumnWidths(rows []StatsRow) statsColumnWidths {
	widths := statsColumnWidths{
		file:     minFileWidth,
		lines:    len("LINES"),
		eol:      len("mixed"),
		trailing: len("TRAIL"),
		tabs:     len("TABS"),
		final:    len("FINAL"),
	}

	for _, row := range rows {
		if len(row.File) > widths.file {
			widths.file = len(row.File)
		}
		if n := len(strconv.Itoa(row.Lines)); n > widths.lines {
			widths.lines = n
		}
		if len(row.EOL) > widths.eol {
			widths.eol = len(row.EOL)
		}
	}

	total := t.statsTotalWidth(widths)
	if total > t.termWidth {
		excess := total - t.termWidth
		widths.file = max(minFileWidth, widths.file-excess)
	}

	return widths
}

func (t *TableFormatter) statsTotalWidth(widths statsColumnWidths) int {
	return widths.file + widths.lines + widths.eol + widths.trailing +
		widths.tabs + widths.final + tablePadding*6
}

func (t *TableFormatter) statsSeparator(widths statsColumnWidths, char string) string {
	return t.styles.TableSeparator.Render(strings.Repeat(char, t.statsTotalWidth(widths)))
}

// formatStatsRow formats a single inspection row. Files with trailing
// whitespace or a missing final marker are highlighted.
func (t *TableFormatter) formatStatsRow(row StatsRow, widths statsColumnWidths) string {
	file := truncateFilePath(row.File, widths.file)

	final := "yes"
	if !row.FinalNL {
		final = "no"
	}

	content := fmt.Sprintf(" %-*s  %*d  %-*s  %*d  %*d  %-*s",
		widths.file, file,
		widths.lines, row.Lines,
		widths.eol, row.EOL,
		widths.trailing, row.Trailing,
		widths.tabs, row.Tabs,
		widths.final, final,
	)

	if row.Trailing > 0 || !row.FinalNL || row.EOL == "mixed" {
		return t.styles.TableChangedRow.Render(content)
	}
	return lipgloss.NewStyle().Render(content)
}

// formatStatsSummary formats a one-line footer for the stats table.
func (t *TableFormatter) formatStatsSummary(totals stats.Totals) string {
	parts := []string{fmt.Sprintf("%d files, %d lines", totals.Files, totals.Lines)}

	if totals.CleanFiles == totals.Files {
		parts = append(parts, t.styles.Success.Render("all clean"))
	} else {
		parts = append(parts, fmt.Sprintf("%d clean", totals.CleanFiles))
	}
	if totals.MixedMarkers > 0 {
		parts = append(parts, t.styles.Changed.Render(fmt.Sprintf("%d mixed markers", totals.MixedMarkers)))
	}
	if totals.MissingFinalMarker > 0 {
		parts = append(parts, t.styles.Changed.Render(fmt.Sprintf("%d missing final marker", totals.MissingFinalMarker)))
	}
	if totals.TrailingWhitespaceLines > 0 {
		parts = append(parts, t.styles.Changed.Render(
			fmt.Sprintf("%d lines with trailing whitespace", totals.TrailingWhitespaceLines)))
	}

	return " " + strings.Join(parts, " | ")
}

// truncateString truncates a string to maxLen, adding "..." if truncated.
func truncateString(str string, maxLen int) string {
	if len(str) <= maxLen {
		return str
	}
	if maxLen <= 3 {
		return str[:maxLen]
	}
	return str[:maxLen-3] + "..."
}

// truncateFilePath truncates a file path, preserving the end (filename) rather than beginning.
func truncateFilePath(path string, maxLen int) string {
	if len(path) <= maxLen {
		return path
	}
	if maxLen <= 3 {
		return path[len(path)-maxLen:]
	}
	return "..." + path[len(path)-maxLen+3:]
}
