// Package stats computes per-file whitespace statistics. Collect makes one
// pass over decoded content and counts everything the inspect views need;
// renderers consume the result without re-reading the file.
package stats

import (
	"github.com/yaklabco/wsfmt/pkg/format"
)

// FileStats summarizes the whitespace characteristics of one file.
type FileStats struct {
	// Lines is the number of lines, counting a final line without a marker.
	Lines int `json:"lines"`

	// LF, CRLF and CR count end-of-line markers by kind. Each "\r\n" counts
	// once as CRLF, never additionally as CR or LF.
	LF   int `json:"lf"`
	CRLF int `json:"crlf"`
	CR   int `json:"cr"`

	// Dominant names the file's dominant end-of-line marker.
	Dominant string `json:"dominantMarker"`

	// TrailingWhitespaceLines counts lines that end in whitespace before
	// their marker.
	TrailingWhitespaceLines int `json:"trailingWhitespaceLines"`

	// Tabs counts tab characters.
	Tabs int `json:"tabs"`

	// VerticalTabs and FormFeeds count the non-standard whitespace
	// characters.
	VerticalTabs int `json:"verticalTabs"`
	FormFeeds    int `json:"formFeeds"`

	// Empty reports zero-length content.
	Empty bool `json:"empty"`

	// WhitespaceOnly reports content consisting entirely of whitespace.
	// Empty content counts as whitespace-only.
	WhitespaceOnly bool `json:"whitespaceOnly"`

	// EndsWithMarker reports whether the final line is terminated.
	EndsWithMarker bool `json:"endsWithMarker"`
}

// Clean reports whether the file shows none of the conditions the formatter
// exists to fix: no trailing whitespace, no tabs or non-standard whitespace,
// a single marker kind, and a terminated final line.
func (s FileStats) Clean() bool {
	if s.Empty {
		return true
	}
	return s.TrailingWhitespaceLines == 0 &&
		s.Tabs == 0 && s.VerticalTabs == 0 && s.FormFeeds == 0 &&
		s.markerKinds() <= 1 &&
		s.EndsWithMarker
}

// Mixed reports whether the file uses more than one marker kind.
func (s FileStats) Mixed() bool {
	return s.markerKinds() > 1
}

// markerKinds counts how many distinct marker kinds the file uses.
func (s FileStats) markerKinds() int {
	kinds := 0
	for _, n := range []int{s.LF, s.CRLF, s.CR} {
		if n > 0 {
			kinds++
		}
	}
	return kinds
}

// Collect computes statistics for text in a single scan.
func Collect(text string) FileStats {
	s := FileStats{
		Dominant:       format.GuessMarker(text).String(),
		Empty:          text == "",
		WhitespaceOnly: format.IsWhitespaceOnly(text),
	}

	// lineHasBytes distinguishes an open line from the state right after a
	// marker; trailingSpace tracks whether the line's last byte so far is
	// whitespace.
	lineHasBytes := false
	trailingSpace := false

	endLine := func() {
		s.Lines++
		if lineHasBytes && trailingSpace {
			s.TrailingWhitespaceLines++
		}
		lineHasBytes = false
		trailingSpace = false
	}

	for i := 0; i < len(text); i++ {
		switch c := text[i]; c {
		case '\n':
			s.LF++
			endLine()
		case '\r':
			if i+1 < len(text) && text[i+1] == '\n' {
				s.CRLF++
				i++
			} else {
				s.CR++
			}
			endLine()
		case '\t':
			s.Tabs++
			lineHasBytes = true
			trailingSpace = true
		case '\v':
			s.VerticalTabs++
			lineHasBytes = true
			trailingSpace = true
		case '\f':
			s.FormFeeds++
			lineHasBytes = true
			trailingSpace = true
		case ' ':
			lineHasBytes = true
			trailingSpace = true
		default:
			lineHasBytes = true
			trailingSpace = false
		}
	}

	if lineHasBytes {
		s.Lines++
		if trailingSpace {
			s.TrailingWhitespaceLines++
		}
	} else {
		s.EndsWithMarker = len(text) > 0
	}

	return s
}

// Totals aggregates statistics across files for the inspect summary.
type Totals struct {
	// Files is the number of files aggregated.
	Files int `json:"files"`

	// CleanFiles counts files whose statistics show nothing to fix.
	CleanFiles int `json:"cleanFiles"`

	// Lines sums line counts.
	Lines int `json:"lines"`

	// TrailingWhitespaceLines, Tabs, VerticalTabs and FormFeeds sum the
	// per-file counters.
	TrailingWhitespaceLines int `json:"trailingWhitespaceLines"`
	Tabs                    int `json:"tabs"`
	VerticalTabs            int `json:"verticalTabs"`
	FormFeeds               int `json:"formFeeds"`

	// MissingFinalMarker counts non-empty files whose final line is not
	// terminated.
	MissingFinalMarker int `json:"missingFinalMarker"`

	// MixedMarkers counts files containing more than one marker kind.
	MixedMarkers int `json:"mixedMarkers"`
}

// Aggregate folds per-file statistics into totals.
func Aggregate(files []FileStats) Totals {
	var t Totals
	for _, s := range files {
		t.Files++
		if s.Clean() {
			t.CleanFiles++
		}
		t.Lines += s.Lines
		t.TrailingWhitespaceLines += s.TrailingWhitespaceLines
		t.Tabs += s.Tabs
		t.VerticalTabs += s.VerticalTabs
		t.FormFeeds += s.FormFeeds
		if !s.Empty && !s.EndsWithMarker {
			t.MissingFinalMarker++
		}
		if s.markerKinds() > 1 {
			t.MixedMarkers++
		}
	}
	return t
}
