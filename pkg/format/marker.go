package format

import "strings"

// Marker is one end-of-line convention: LF, CRLF or CR.
type Marker string

const (
	// LF is the Linux convention ("\n").
	LF Marker = "\n"

	// CRLF is the Windows convention ("\r\n").
	CRLF Marker = "\r\n"

	// CR is the classic Mac convention ("\r").
	CR Marker = "\r"
)

// String returns the conventional name of the marker.
func (m Marker) String() string {
	switch m {
	case LF:
		return "LF"
	case CRLF:
		return "CRLF"
	case CR:
		return "CR"
	default:
		return "unknown"
	}
}

// GuessMarker returns the dominant end-of-line marker of text.
//
// Each "\r\n" sequence counts as one CRLF; the remaining standalone "\n" and
// "\r" bytes count as LF and CR. The marker with the strictly highest count
// wins. Ties resolve in the order LF, CRLF, CR, and text containing no marker
// at all defaults to LF. This ordering is relied upon by callers that use the
// guess as the "auto" normalization target; do not reorder it.
func GuessMarker(text string) Marker {
	crlf := strings.Count(text, "\r\n")
	lf := strings.Count(text, "\n") - crlf
	cr := strings.Count(text, "\r") - crlf

	marker, best := LF, lf
	if crlf > best {
		marker, best = CRLF, crlf
	}
	if cr > best {
		marker = CR
	}
	return marker
}
