package format

import "strings"

// whitespaceCutset is the set of characters the formatter treats as
// whitespace: space, tab, the end-of-line bytes, vertical tab and form feed.
const whitespaceCutset = " \t\n\r\v\f"

// IsWhitespaceOnly reports whether text consists entirely of whitespace
// characters. The empty string is whitespace-only by definition.
func IsWhitespaceOnly(text string) bool {
	return strings.Trim(text, whitespaceCutset) == ""
}
