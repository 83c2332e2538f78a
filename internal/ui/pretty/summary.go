package pretty

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/yaklabco/wsfmt/pkg/runner"
)

const (
	summaryDividerWidth = 40
	wordFile            = "file"
	wordFiles           = "files"
)

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "7 changes in 3 files, 3 files rewritten (12 files checked)".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats) string {
	if stats.ChangesTotal == 0 && stats.FilesErrored == 0 {
		msg := s.Success.Render("No changes needed") +
			s.Dim.Render(fmt.Sprintf(" (%d files checked)", stats.FilesProcessed))
		if stats.FilesSkipped > 0 {
			msg += s.Dim.Render(fmt.Sprintf(", %d skipped", stats.FilesSkipped))
		}
		return msg + "\n"
	}

	var parts []string

	if stats.ChangesTotal > 0 {
		changeWord := "changes"
		if stats.ChangesTotal == 1 {
			changeWord = "change"
		}
		fileWord := wordFiles
		if stats.FilesChanged == 1 {
			fileWord = wordFile
		}
		parts = append(parts, s.Changed.Render(
			fmt.Sprintf("%d %s in %d %s", stats.ChangesTotal, changeWord, stats.FilesChanged, fileWord)))
	}

	if stats.FilesWritten > 0 {
		fileWord := wordFiles
		if stats.FilesWritten == 1 {
			fileWord = wordFile
		}
		parts = append(parts, s.Success.Render(fmt.Sprintf("%d %s rewritten", stats.FilesWritten, fileWord)))
	}

	if stats.FilesSkipped > 0 {
		parts = append(parts, s.Dim.Render(fmt.Sprintf("%d skipped", stats.FilesSkipped)))
	}

	if stats.FilesErrored > 0 {
		errorWord := "errors"
		if stats.FilesErrored == 1 {
			errorWord = "error"
		}
		parts = append(parts, s.Error.Render(fmt.Sprintf("%d %s", stats.FilesErrored, errorWord)))
	}

	line := strings.Join(parts, ", ")
	line += s.Dim.Render(fmt.Sprintf(" (%d files checked)", stats.FilesProcessed))

	return line + "\n"
}

// FormatSummary formats run statistics as a summary block.
func (s *Styles) FormatSummary(stats runner.Stats) string {
	var builder strings.Builder

	builder.WriteString("\n")
	builder.WriteString(s.SummaryTitle.Render("Summary"))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth))
	builder.WriteString("\n")

	// Files
	builder.WriteString("  Files checked:   " +
		s.SummaryValue.Render(strconv.Itoa(stats.FilesProcessed)) + "\n")

	if stats.FilesChanged > 0 {
		builder.WriteString("  Files changed:   " +
			s.Changed.Render(strconv.Itoa(stats.FilesChanged)) + "\n")
	}

	if stats.FilesWritten > 0 {
		builder.WriteString("  Files rewritten: " +
			s.Success.Render(strconv.Itoa(stats.FilesWritten)) + "\n")
	}

	if stats.FilesSkipped > 0 {
		builder.WriteString("  Files skipped:   " +
			s.SummaryValue.Render(strconv.Itoa(stats.FilesSkipped)) + "\n")
	}

	if stats.FilesErrored > 0 {
		builder.WriteString("  Files errored:   " +
			s.Error.Render(strconv.Itoa(stats.FilesErrored)) + "\n")
	}

	builder.WriteString("\n")

	// Changes by kind
	builder.WriteString("  Total changes:   " +
		s.SummaryValue.Render(strconv.Itoa(stats.ChangesTotal)) + "\n")

	for _, kind := range sortedKinds(stats.ChangesByKind) {
		builder.WriteString(fmt.Sprintf("    %-44s %s\n",
			kind, s.SummaryValue.Render(strconv.Itoa(stats.ChangesByKind[kind]))))
	}

	builder.WriteString("\n")

	// Overall status
	switch {
	case stats.FilesErrored > 0:
		builder.WriteString(s.Failure.Render("Completed with errors"))
	case stats.FilesChanged > 0 && stats.FilesWritten == 0:
		builder.WriteString(s.Changed.Render("Changes required"))
	case stats.FilesChanged > 0:
		builder.WriteString(s.Success.Render("Formatting complete"))
	default:
		builder.WriteString(s.Success.Render("All files clean"))
	}
	builder.WriteString("\n")

	return builder.String()
}

// sortedKinds returns the map keys in deterministic order.
func sortedKinds(byKind map[string]int) []string {
	kinds := make([]string, 0, len(byKind))
	for kind := range byKind {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)
	return kinds
}
