package pretty

import (
	"fmt"
	"strings"

	"github.com/yaklabco/wsfmt/pkg/format"
)

// FormatChange formats a single formatting change for terminal output.
func (s *Styles) FormatChange(change format.Change) string {
	var builder strings.Builder

	builder.WriteString("  ")

	if change.Line > 0 {
		builder.WriteString(s.Location.Render(fmt.Sprintf("line %d", change.Line)))
		builder.WriteString("  ")
	}

	builder.WriteString(s.Message.Render(change.Message()))
	builder.WriteString("  ")
	builder.WriteString(s.Kind.Render("(" + string(change.Kind) + ")"))
	builder.WriteString("\n")

	return builder.String()
}

// FormatFileHeader formats a file header for grouped output.
func (s *Styles) FormatFileHeader(path string, changeCount int) string {
	header := s.FilePath.Render(path)
	if changeCount > 0 {
		word := "changes"
		if changeCount == 1 {
			word = "change"
		}
		header += s.Dim.Render(fmt.Sprintf(" (%d %s)", changeCount, word))
	}
	return header
}

// FormatFileError formats a per-file processing error.
func (s *Styles) FormatFileError(path string, err error) string {
	return fmt.Sprintf("%s: %s\n",
		s.FilePath.Render(path),
		s.Error.Render(fmt.Sprintf("error: %v", err)),
	)
}

// FormatFileSkipped formats a skipped-file notice.
func (s *Styles) FormatFileSkipped(path, reason string) string {
	return fmt.Sprintf("%s: %s\n",
		s.FilePath.Render(path),
		s.Dim.Render("skipped: "+reason),
	)
}
