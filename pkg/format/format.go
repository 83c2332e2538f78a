// Package format implements the whitespace normalization engine: a single
// left-to-right pass over file content that applies the configured transforms
// while tracking line numbers and byte boundaries, producing canonical output
// plus an ordered, line-numbered list of change records.
//
// The engine is a pure function of its inputs. It performs no I/O, keeps no
// global state, runs in time linear in the input length, and returns freshly
// allocated output per call, which makes concurrent invocations safe without
// synchronization.
package format

import "strings"

// scanState tracks the byte boundaries the transforms pivot on during one
// pass. All offsets index the output buffer, not the input, because earlier
// transforms on the same line may already have shifted content.
type scanState struct {
	// line is the current 1-based line number.
	line int

	// prevLineEnd is the offset just past the previous line's marker; the
	// current line's content starts here.
	prevLineEnd int

	// lastNonWhitespace is the offset just past the last non-whitespace byte
	// written for the current line. Trailing-whitespace truncation cuts back
	// to this, never past prevLineEnd.
	lastNonWhitespace int

	// lastNonEmptyEnd is the offset just past the last non-empty line,
	// including its marker. Trailing empty lines are truncated back to it.
	lastNonEmptyEnd int

	// lastNonEmptyLine is the line number of that last non-empty line.
	lastNonEmptyLine int
}

// Format applies the configured transforms to text and returns the rewritten
// content together with the changes made, ordered by position in the source.
// Format assumes opts has passed Validate; it never fails and never inspects
// the file system.
func Format(text string, opts Options) Result {
	guessed := GuessMarker(text)
	target := guessed
	if m, ok := opts.NewLineMarker.marker(); ok {
		target = m
	}

	// Empty and whitespace-only files carry no content for the per-line
	// transforms to act on; their policies decide the whole result.
	if text == "" {
		return formatEmptyFile(opts.NormalizeEmptyFiles, target)
	}
	if IsWhitespaceOnly(text) {
		return formatWhitespaceOnlyFile(text, opts.NormalizeWhitespaceOnlyFiles, target)
	}

	return scan(text, opts, target, guessed)
}

func formatEmptyFile(policy FilePolicy, target Marker) Result {
	if policy == FilePolicyOneLine {
		return Result{
			Text:    string(target),
			Changes: []Change{{Kind: KindEmptyFileReplacedWithOneLine, Line: 1}},
		}
	}
	return Result{}
}

func formatWhitespaceOnlyFile(text string, policy FilePolicy, target Marker) Result {
	switch policy {
	case FilePolicyEmpty:
		return Result{
			Changes: []Change{{Kind: KindWhitespaceOnlyFileReplacedWithEmptyFile, Line: 1}},
		}
	case FilePolicyOneLine:
		if text == string(target) {
			return Result{Text: text}
		}
		return Result{
			Text:    string(target),
			Changes: []Change{{Kind: KindWhitespaceOnlyFileReplacedWithOneLine, Line: 1}},
		}
	default:
		return Result{Text: text}
	}
}

// scan is the single pass over non-trivial input. Transforms interact:
// trailing-whitespace removal decides whether a line counts as empty for
// trailing-empty-line removal, and marker normalization must see the marker
// as it appeared in the input. Running the transforms together over one set
// of boundary trackers keeps those relationships and the line-number
// attribution exact.
func scan(text string, opts Options, target, guessed Marker) Result {
	out := make([]byte, 0, len(text)+len(target))
	var changes []Change
	st := scanState{line: 1}

	var tabSpaces string
	if opts.ReplaceTabsWithSpaces > 0 {
		tabSpaces = strings.Repeat(" ", opts.ReplaceTabsWithSpaces)
	}

	for i := 0; i < len(text); i++ {
		c := text[i]
		switch c {
		case '\n', '\r':
			observed := LF
			if c == '\r' {
				if i+1 < len(text) && text[i+1] == '\n' {
					observed = CRLF
					i++
				} else {
					observed = CR
				}
			}

			if opts.RemoveTrailingWhitespace && st.lastNonWhitespace < len(out) {
				out = out[:st.lastNonWhitespace]
				changes = append(changes, Change{Kind: KindTrailingWhitespaceRemoved, Line: st.line})
			}

			// The line is empty when, after trailing-whitespace truncation,
			// its content boundary coincides with the previous line's end.
			lineEmpty := len(out) == st.prevLineEnd

			if opts.NormalizeNewLineMarkers {
				// A marker counts as replaced unless it already matches both
				// the target and the file's dominant convention: when the
				// dominant convention itself changes, every line's marker is
				// rewritten as part of that change.
				if observed != target || target != guessed {
					changes = append(changes, Change{
						Kind: KindNewLineMarkerReplaced,
						Line: st.line,
						From: string(observed),
						To:   string(target),
					})
				}
				out = append(out, target...)
			} else {
				out = append(out, observed...)
			}

			st.prevLineEnd = len(out)
			st.lastNonWhitespace = len(out)
			if !lineEmpty {
				st.lastNonEmptyEnd = len(out)
				st.lastNonEmptyLine = st.line
			}
			st.line++

		case ' ':
			out = append(out, c)

		case '\t':
			switch {
			case opts.ReplaceTabsWithSpaces < 0:
				out = append(out, c)
			case opts.ReplaceTabsWithSpaces == 0:
				changes = append(changes, Change{Kind: KindTabRemoved, Line: st.line})
			default:
				out = append(out, tabSpaces...)
				changes = append(changes, Change{
					Kind: KindTabReplacedWithSpaces,
					Line: st.line,
					From: "\t",
					To:   tabSpaces,
				})
			}

		case '\v', '\f':
			switch opts.NormalizeNonStandardWhitespace {
			case NonStandardReplace:
				out = append(out, ' ')
				changes = append(changes, Change{
					Kind: KindNonStandardWhitespaceReplaced,
					Line: st.line,
					From: string(c),
					To:   " ",
				})
			case NonStandardRemove:
				changes = append(changes, Change{
					Kind: KindNonStandardWhitespaceRemoved,
					Line: st.line,
					From: string(c),
				})
			default:
				out = append(out, c)
			}

		default:
			out = append(out, c)
			st.lastNonWhitespace = len(out)
		}
	}

	// Trailing whitespace on a final line that has no marker.
	if opts.RemoveTrailingWhitespace && st.lastNonWhitespace < len(out) {
		out = out[:st.lastNonWhitespace]
		changes = append(changes, Change{Kind: KindTrailingWhitespaceRemoved, Line: st.line})
	}

	// Trailing empty lines: applies only when the output ends exactly at a
	// line boundary and closed empty lines follow the last non-empty line.
	// The change is attributed to the line after the last non-empty one.
	if opts.RemoveTrailingEmptyLines && st.prevLineEnd == len(out) && st.lastNonEmptyEnd < len(out) {
		out = out[:st.lastNonEmptyEnd]
		changes = append(changes, Change{Kind: KindTrailingEmptyLinesRemoved, Line: st.lastNonEmptyLine + 1})
		st.prevLineEnd = st.lastNonEmptyEnd
		st.line = st.lastNonEmptyLine + 1
	}

	if opts.AddNewLineMarkerAtEndOfFile {
		if st.prevLineEnd != len(out) {
			out = append(out, target...)
			changes = append(changes, Change{Kind: KindNewLineMarkerAdded, Line: st.line})
		}
	} else if opts.RemoveNewLineMarkerFromEndOfFile {
		if len(out) > 0 && st.prevLineEnd == len(out) {
			out = out[:len(out)-trailingMarkerLen(out)]
			changes = append(changes, Change{Kind: KindNewLineMarkerRemoved, Line: st.lastNonEmptyLine})
		}
	}

	return Result{Text: string(out), Changes: changes}
}

// trailingMarkerLen returns the byte length of the marker terminating out,
// which the caller has already established ends at a line boundary.
func trailingMarkerLen(out []byte) int {
	if len(out) >= 2 && out[len(out)-2] == '\r' && out[len(out)-1] == '\n' {
		return 2
	}
	return 1
}
