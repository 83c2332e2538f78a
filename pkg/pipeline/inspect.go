package pipeline

import (
	"context"
	"fmt"

	"github.com/yaklabco/wsfmt/pkg/detect"
	"github.com/yaklabco/wsfmt/pkg/fsutil"
	"github.com/yaklabco/wsfmt/pkg/stats"
)

// Inspector collects whitespace statistics for files instead of formatting
// them. It shares the pipeline's read, binary-guard, and decode steps, so
// the runner can drive either one.
type Inspector struct {
	opts Options
}

// NewInspector creates an Inspector with the given options. Only the
// encoding and binary-skip settings apply; an Inspector never writes.
func NewInspector(opts Options) *Inspector {
	return &Inspector{opts: opts}
}

// ProcessFile reads and decodes a file and attaches whitespace statistics
// to the result.
func (i *Inspector) ProcessFile(ctx context.Context, path string) (*Result, error) {
	result := &Result{Path: path}

	content, snap, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return nil, categorizeError(err)
	}
	result.Snapshot = snap

	if i.opts.SkipBinary && detect.IsBinary(content) {
		result.Skipped = true
		result.SkipReason = "binary content"
		return result, nil
	}

	text, err := i.opts.Encoding.Decode(content)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrDecodeFailure, path, err)
	}

	fileStats := stats.Collect(text)
	result.Stats = &fileStats

	return result, nil
}
