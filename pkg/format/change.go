package format

import (
	"fmt"
	"strings"
)

// ChangeKind identifies one category of edit the formatter can make.
type ChangeKind string

// The closed set of change kinds. Values are stable identifiers used by
// machine-readable output; do not rename them.
const (
	KindNewLineMarkerAdded                      ChangeKind = "new-line-marker-added"
	KindNewLineMarkerRemoved                    ChangeKind = "new-line-marker-removed"
	KindNewLineMarkerReplaced                   ChangeKind = "new-line-marker-replaced"
	KindTrailingWhitespaceRemoved               ChangeKind = "trailing-whitespace-removed"
	KindTrailingEmptyLinesRemoved               ChangeKind = "trailing-empty-lines-removed"
	KindEmptyFileReplacedWithOneLine            ChangeKind = "empty-file-replaced-with-one-line"
	KindWhitespaceOnlyFileReplacedWithEmptyFile ChangeKind = "whitespace-only-file-replaced-with-empty-file"
	KindWhitespaceOnlyFileReplacedWithOneLine   ChangeKind = "whitespace-only-file-replaced-with-one-line"
	KindTabReplacedWithSpaces                   ChangeKind = "tab-replaced-with-spaces"
	KindTabRemoved                              ChangeKind = "tab-removed"
	KindNonStandardWhitespaceReplaced           ChangeKind = "non-standard-whitespace-replaced"
	KindNonStandardWhitespaceRemoved            ChangeKind = "non-standard-whitespace-removed"
)

// Change records one observable edit made during formatting.
type Change struct {
	// Kind categorizes the edit.
	Kind ChangeKind

	// Line is the 1-based line number the edit applies to.
	Line int

	// From is the replaced text, where the kind carries one.
	From string

	// To is the replacement text, where the kind carries one.
	To string
}

// Message renders the human-readable description of the change. Whitespace
// control characters in snippets appear in their backslash-escaped forms.
func (c Change) Message() string {
	switch c.Kind {
	case KindNewLineMarkerAdded:
		return "New line marker added at the end of the file."
	case KindNewLineMarkerRemoved:
		return "New line marker removed from the end of the file."
	case KindNewLineMarkerReplaced:
		return fmt.Sprintf("New line marker '%s' replaced by '%s'.",
			EscapeWhitespace(c.From), EscapeWhitespace(c.To))
	case KindTrailingWhitespaceRemoved:
		return "Trailing whitespace removed."
	case KindTrailingEmptyLinesRemoved:
		return "Trailing empty lines removed."
	case KindEmptyFileReplacedWithOneLine:
		return "Empty file replaced by a single empty line."
	case KindWhitespaceOnlyFileReplacedWithEmptyFile:
		return "File replaced by an empty file."
	case KindWhitespaceOnlyFileReplacedWithOneLine:
		return "File replaced by a single empty line."
	case KindTabReplacedWithSpaces:
		return "Tab replaced by spaces."
	case KindTabRemoved:
		return "Tab removed."
	case KindNonStandardWhitespaceReplaced:
		return fmt.Sprintf("Non-standard whitespace character '%s' replaced by a space.",
			EscapeWhitespace(c.From))
	case KindNonStandardWhitespaceRemoved:
		return fmt.Sprintf("Non-standard whitespace character '%s' removed.",
			EscapeWhitespace(c.From))
	default:
		return string(c.Kind)
	}
}

var whitespaceEscaper = strings.NewReplacer(
	"\r", `\r`,
	"\n", `\n`,
	"\t", `\t`,
	"\v", `\v`,
	"\f", `\f`,
)

// EscapeWhitespace renders \r, \n, \t, \v and \f as their backslash forms so
// markers and snippets can appear inside single-line messages.
func EscapeWhitespace(s string) string {
	return whitespaceEscaper.Replace(s)
}

// Result is the outcome of one Format call.
type Result struct {
	// Text is the formatted content.
	Text string

	// Changes lists the edits in source order. An empty list means the input
	// was already formatted.
	Changes []Change
}

// Changed reports whether formatting produced any change records.
func (r Result) Changed() bool {
	return len(r.Changes) > 0
}
