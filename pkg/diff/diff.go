// Package diff renders the difference between a file's original content and
// its formatted content as a unified diff. The output is meant for review in
// check mode, not for feeding to patch: carriage returns, vertical tabs and
// form feeds inside lines are shown in backslash-escaped form so that
// end-of-line and non-standard whitespace changes stay visible.
package diff

import (
	"fmt"
	"strings"
)

// Diff is a unified diff between original and formatted content.
type Diff struct {
	// Path is the file path for the diff header.
	Path string

	// Hunks contains the diff hunks in file order.
	Hunks []Hunk

	// Additions is the number of lines added.
	Additions int

	// Deletions is the number of lines removed.
	Deletions int
}

// Hunk is a run of adjacent changes with surrounding context.
type Hunk struct {
	// OriginalStart is the 1-based first line of the hunk in the original.
	OriginalStart int

	// OriginalCount is the number of original lines covered by the hunk.
	OriginalCount int

	// ModifiedStart is the 1-based first line of the hunk in the result.
	ModifiedStart int

	// ModifiedCount is the number of result lines covered by the hunk.
	ModifiedCount int

	// Lines contains the hunk body.
	Lines []Line
}

// Line is a single line of a hunk body.
type Line struct {
	// Kind classifies the line.
	Kind LineKind

	// Content is the line content without the diff prefix or its newline.
	Content string
}

// LineKind classifies a diff line.
type LineKind int

const (
	// LineContext is a line common to both sides.
	LineContext LineKind = iota

	// LineAdded is a line present only in the formatted content.
	LineAdded

	// LineRemoved is a line present only in the original content.
	LineRemoved
)

// contextLines is the number of unchanged lines shown around each change.
const contextLines = 3

// Generate computes the unified diff between the original and formatted
// content of path. It returns nil when the two are identical.
func Generate(path, original, formatted string) *Diff {
	if original == formatted {
		return nil
	}

	origLines := splitLines(original)
	newLines := splitLines(formatted)

	hunks := computeHunks(origLines, newLines)
	if len(hunks) == 0 {
		return nil
	}

	d := &Diff{Path: path, Hunks: hunks}
	for _, hunk := range hunks {
		for _, line := range hunk.Lines {
			switch line.Kind {
			case LineAdded:
				d.Additions++
			case LineRemoved:
				d.Deletions++
			}
		}
	}
	return d
}

// HasChanges reports whether the diff contains any hunks.
func (d *Diff) HasChanges() bool {
	return d != nil && len(d.Hunks) > 0
}

// lineEscaper makes the whitespace bytes a formatter touches visible without
// breaking the one-line-per-row shape of the diff. Newlines never appear in
// line content, so they need no escape here.
var lineEscaper = strings.NewReplacer(
	"\r", `\r`,
	"\v", `\v`,
	"\f", `\f`,
)

// String renders the diff in unified format with ---/+++ headers.
func (d *Diff) String() string {
	if !d.HasChanges() {
		return ""
	}

	path := strings.TrimPrefix(d.Path, "/")

	var b strings.Builder
	fmt.Fprintf(&b, "--- a/%s\n", path)
	fmt.Fprintf(&b, "+++ b/%s\n", path)

	for _, hunk := range d.Hunks {
		fmt.Fprintf(&b, "@@ -%d,%d +%d,%d @@\n",
			hunk.OriginalStart, hunk.OriginalCount,
			hunk.ModifiedStart, hunk.ModifiedCount)

		for _, line := range hunk.Lines {
			switch line.Kind {
			case LineContext:
				renderLine(&b, ' ', line.Content)
			case LineAdded:
				renderLine(&b, '+', line.Content)
			case LineRemoved:
				renderLine(&b, '-', line.Content)
			}
		}
	}

	return b.String()
}

// renderLine writes one prefixed diff row. Lines carry their own LF from
// splitLines; a line without one is a final line missing its marker, flagged
// the way git flags it so that marker additions and removals at the end of
// the file show up in the diff.
func renderLine(b *strings.Builder, prefix byte, content string) {
	line, hadMarker := strings.CutSuffix(content, "\n")
	b.WriteByte(prefix)
	b.WriteString(lineEscaper.Replace(line))
	b.WriteByte('\n')
	if !hadMarker {
		b.WriteString("\\ No newline at end of file\n")
	}
}

// splitLines splits content after each LF, keeping the LF and any carriage
// return attached to the line. Comparing lines with their endings means
// marker rewrites and a changed final marker diff line by line instead of
// comparing equal.
func splitLines(content string) []string {
	if content == "" {
		return nil
	}
	lines := strings.SplitAfter(content, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// computeHunks derives grouped hunks from the line-level LCS.
func computeHunks(orig, mod []string) []Hunk {
	ops := buildOps(orig, mod, longestCommonSubsequence(orig, mod))
	if len(ops) == 0 {
		return nil
	}
	return groupIntoHunks(ops)
}

// op is one line-level diff operation.
type op struct {
	kind    LineKind
	content string
}

// buildOps walks both sides against the LCS, emitting context lines where
// all three agree and add/remove runs elsewhere.
func buildOps(orig, mod, lcs []string) []op {
	var ops []op
	origIdx, modIdx, lcsIdx := 0, 0, 0

	for origIdx < len(orig) || modIdx < len(mod) {
		if lcsIdx < len(lcs) &&
			origIdx < len(orig) && modIdx < len(mod) &&
			orig[origIdx] == lcs[lcsIdx] && mod[modIdx] == lcs[lcsIdx] {
			ops = append(ops, op{kind: LineContext, content: orig[origIdx]})
			origIdx++
			modIdx++
			lcsIdx++
			continue
		}

		for origIdx < len(orig) && (lcsIdx >= len(lcs) || orig[origIdx] != lcs[lcsIdx]) {
			ops = append(ops, op{kind: LineRemoved, content: orig[origIdx]})
			origIdx++
		}

		for modIdx < len(mod) && (lcsIdx >= len(lcs) || mod[modIdx] != lcs[lcsIdx]) {
			ops = append(ops, op{kind: LineAdded, content: mod[modIdx]})
			modIdx++
		}
	}

	return ops
}

// groupIntoHunks merges nearby change runs into hunks with context. Runs
// whose gap fits inside two context windows share a hunk.
func groupIntoHunks(ops []op) []Hunk {
	type changeRange struct {
		start, end int
	}

	var ranges []changeRange
	inChange := false
	rangeStart := 0

	for opIdx, o := range ops {
		isChange := o.kind != LineContext
		if isChange && !inChange {
			rangeStart = opIdx
			inChange = true
		} else if !isChange && inChange {
			ranges = append(ranges, changeRange{rangeStart, opIdx})
			inChange = false
		}
	}
	if inChange {
		ranges = append(ranges, changeRange{rangeStart, len(ops)})
	}
	if len(ranges) == 0 {
		return nil
	}

	var hunks []Hunk
	for rangeIdx := 0; rangeIdx < len(ranges); {
		mergeEnd := rangeIdx + 1
		for mergeEnd < len(ranges) {
			if ranges[mergeEnd].start-ranges[mergeEnd-1].end > contextLines*2 {
				break
			}
			mergeEnd++
		}

		hunk := buildHunk(ops, ranges[rangeIdx].start, ranges[mergeEnd-1].end)
		if len(hunk.Lines) > 0 {
			hunks = append(hunks, hunk)
		}

		rangeIdx = mergeEnd
	}

	return hunks
}

// buildHunk expands one merged change run by the context window and counts
// both sides.
func buildHunk(ops []op, changeStart, changeEnd int) Hunk {
	start := changeStart - contextLines
	if start < 0 {
		start = 0
	}
	end := changeEnd + contextLines
	if end > len(ops) {
		end = len(ops)
	}

	hunk := Hunk{OriginalStart: 1, ModifiedStart: 1}
	for opIdx := 0; opIdx < start; opIdx++ {
		if ops[opIdx].kind != LineAdded {
			hunk.OriginalStart++
		}
		if ops[opIdx].kind != LineRemoved {
			hunk.ModifiedStart++
		}
	}

	for i := start; i < end; i++ {
		hunk.Lines = append(hunk.Lines, Line{Kind: ops[i].kind, Content: ops[i].content})
		switch ops[i].kind {
		case LineContext:
			hunk.OriginalCount++
			hunk.ModifiedCount++
		case LineRemoved:
			hunk.OriginalCount++
		case LineAdded:
			hunk.ModifiedCount++
		}
	}

	return hunk
}

// longestCommonSubsequence computes the LCS of two line slices with the
// usual dynamic program.
func longestCommonSubsequence(orig, mod []string) []string {
	origLen, modLen := len(orig), len(mod)
	if origLen == 0 || modLen == 0 {
		return nil
	}

	dp := make([][]int, origLen+1)
	for idx := range dp {
		dp[idx] = make([]int, modLen+1)
	}
	for row := 1; row <= origLen; row++ {
		for col := 1; col <= modLen; col++ {
			if orig[row-1] == mod[col-1] {
				dp[row][col] = dp[row-1][col-1] + 1
			} else {
				dp[row][col] = max(dp[row-1][col], dp[row][col-1])
			}
		}
	}

	lcsLen := dp[origLen][modLen]
	if lcsLen == 0 {
		return nil
	}

	lcs := make([]string, lcsLen)
	row, col, idx := origLen, modLen, lcsLen-1
	for row > 0 && col > 0 {
		switch {
		case orig[row-1] == mod[col-1]:
			lcs[idx] = orig[row-1]
			row--
			col--
			idx--
		case dp[row-1][col] > dp[row][col-1]:
			row--
		default:
			col--
		}
	}

	return lcs
}
