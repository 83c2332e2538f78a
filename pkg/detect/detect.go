// Package detect guards the formatter against content it must not touch.
// It wraps go-enry's git-style heuristics so the pipeline can recognize and
// skip files whose bytes are not text.
package detect

import "github.com/go-enry/go-enry/v2"

// IsBinary reports whether content looks like binary data rather than text.
// Only the leading bytes are inspected, the way git classifies blobs, so the
// guard stays cheap even for large files.
func IsBinary(content []byte) bool {
	return enry.IsBinary(content)
}
