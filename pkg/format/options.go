package format

import (
	"errors"
	"fmt"
)

// MarkerMode selects the target end-of-line marker for a formatting run.
type MarkerMode string

const (
	// MarkerAuto targets the dominant marker of the original input.
	MarkerAuto MarkerMode = "auto"

	// MarkerLinux targets LF.
	MarkerLinux MarkerMode = "linux"

	// MarkerMac targets CR.
	MarkerMac MarkerMode = "mac"

	// MarkerWindows targets CRLF.
	MarkerWindows MarkerMode = "windows"
)

// IsValid reports whether the mode is one of the recognized values.
func (m MarkerMode) IsValid() bool {
	switch m {
	case MarkerAuto, MarkerLinux, MarkerMac, MarkerWindows:
		return true
	default:
		return false
	}
}

// marker returns the explicit target marker, or false for MarkerAuto.
func (m MarkerMode) marker() (Marker, bool) {
	switch m {
	case MarkerLinux:
		return LF, true
	case MarkerMac:
		return CR, true
	case MarkerWindows:
		return CRLF, true
	default:
		return "", false
	}
}

// FilePolicy controls how empty and whitespace-only files are normalized.
type FilePolicy string

const (
	// FilePolicyIgnore leaves the file unchanged.
	FilePolicyIgnore FilePolicy = "ignore"

	// FilePolicyEmpty replaces the file content with nothing.
	FilePolicyEmpty FilePolicy = "empty"

	// FilePolicyOneLine replaces the file content with a single end-of-line
	// marker.
	FilePolicyOneLine FilePolicy = "one-line"
)

// IsValid reports whether the policy is one of the recognized values.
func (p FilePolicy) IsValid() bool {
	switch p {
	case FilePolicyIgnore, FilePolicyEmpty, FilePolicyOneLine:
		return true
	default:
		return false
	}
}

// NonStandardMode controls how vertical tab and form feed characters are
// handled.
type NonStandardMode string

const (
	// NonStandardIgnore copies the characters through unchanged.
	NonStandardIgnore NonStandardMode = "ignore"

	// NonStandardRemove drops the characters.
	NonStandardRemove NonStandardMode = "remove"

	// NonStandardReplace replaces each character with a single space.
	NonStandardReplace NonStandardMode = "replace"
)

// IsValid reports whether the mode is one of the recognized values.
func (m NonStandardMode) IsValid() bool {
	switch m {
	case NonStandardIgnore, NonStandardRemove, NonStandardReplace:
		return true
	default:
		return false
	}
}

// ErrConflictingEndOfFileOptions is returned by Validate when both
// AddNewLineMarkerAtEndOfFile and RemoveNewLineMarkerFromEndOfFile are set.
var ErrConflictingEndOfFileOptions = errors.New(
	"adding and removing the new line marker at the end of the file are mutually exclusive")

// Options configures a single formatting run. Every field participates in
// every run; there are no hidden defaults at this layer, so callers construct
// Options explicitly (usually from config.Config) and call Validate before
// passing them to Format. Options are read-only during formatting.
type Options struct {
	// NewLineMarker selects the target marker, or MarkerAuto to adopt the
	// dominant marker of the input.
	NewLineMarker MarkerMode

	// NormalizeNewLineMarkers rewrites every end-of-line marker to the target.
	NormalizeNewLineMarkers bool

	// NormalizeEmptyFiles is the policy applied to zero-length input.
	NormalizeEmptyFiles FilePolicy

	// NormalizeWhitespaceOnlyFiles is the policy applied to non-empty input
	// consisting entirely of whitespace.
	NormalizeWhitespaceOnlyFiles FilePolicy

	// RemoveTrailingWhitespace strips whitespace from the end of each line.
	RemoveTrailingWhitespace bool

	// RemoveTrailingEmptyLines truncates empty lines following the last
	// non-empty line.
	RemoveTrailingEmptyLines bool

	// AddNewLineMarkerAtEndOfFile appends the target marker when the final
	// line lacks one. Mutually exclusive with
	// RemoveNewLineMarkerFromEndOfFile.
	AddNewLineMarkerAtEndOfFile bool

	// RemoveNewLineMarkerFromEndOfFile strips the marker terminating the
	// final line.
	RemoveNewLineMarkerFromEndOfFile bool

	// NormalizeNonStandardWhitespace is the policy for vertical tab and form
	// feed characters.
	NormalizeNonStandardWhitespace NonStandardMode

	// ReplaceTabsWithSpaces expands each tab to this many spaces. Negative
	// leaves tabs alone; zero deletes them.
	ReplaceTabsWithSpaces int
}

// Validate checks that every enum field holds a recognized value and that the
// two end-of-file marker options are not enabled together. Format assumes a
// validated Options value.
func (o Options) Validate() error {
	if !o.NewLineMarker.IsValid() {
		return fmt.Errorf("invalid new line marker mode %q", string(o.NewLineMarker))
	}
	if !o.NormalizeEmptyFiles.IsValid() {
		return fmt.Errorf("invalid empty file policy %q", string(o.NormalizeEmptyFiles))
	}
	if !o.NormalizeWhitespaceOnlyFiles.IsValid() {
		return fmt.Errorf("invalid whitespace-only file policy %q", string(o.NormalizeWhitespaceOnlyFiles))
	}
	if !o.NormalizeNonStandardWhitespace.IsValid() {
		return fmt.Errorf("invalid non-standard whitespace mode %q", string(o.NormalizeNonStandardWhitespace))
	}
	if o.AddNewLineMarkerAtEndOfFile && o.RemoveNewLineMarkerFromEndOfFile {
		return ErrConflictingEndOfFileOptions
	}
	return nil
}
