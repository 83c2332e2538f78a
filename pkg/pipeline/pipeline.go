// Package pipeline orchestrates the safe processing of a single file: read,
// decode, format, and write back atomically. The runner feeds it paths; the
// engine in pkg/format does the actual whitespace work.
package pipeline

import (
	"context"
	"errors"
	"fmt"

	"github.com/yaklabco/wsfmt/pkg/charset"
	"github.com/yaklabco/wsfmt/pkg/config"
	"github.com/yaklabco/wsfmt/pkg/detect"
	"github.com/yaklabco/wsfmt/pkg/diff"
	"github.com/yaklabco/wsfmt/pkg/format"
	"github.com/yaklabco/wsfmt/pkg/fsutil"
	"github.com/yaklabco/wsfmt/pkg/stats"
)

// Pipeline error types for categorization.
var (
	// ErrReadFailure indicates the file could not be read.
	ErrReadFailure = errors.New("read failure")

	// ErrDecodeFailure indicates the file content is not valid under the
	// configured encoding.
	ErrDecodeFailure = errors.New("decode failure")

	// ErrWriteFailure indicates the formatted content could not be encoded
	// or written.
	ErrWriteFailure = errors.New("write failure")
)

// Result contains the outcome of processing a single file.
type Result struct {
	// Path is the file path that was processed.
	Path string

	// Snapshot is the file state captured when the content was read.
	Snapshot *fsutil.Snapshot

	// Changes lists the whitespace changes the formatter produced,
	// in source-position order.
	Changes []format.Change

	// Changed is true if formatting altered the content.
	Changed bool

	// FormattedContent is the re-encoded content after formatting. It is
	// set once the pipeline reaches the encode step and nil for files that
	// were already clean.
	FormattedContent []byte

	// Diff is the unified diff against the original (nil unless requested).
	Diff *diff.Diff

	// Stats holds whitespace statistics when the file was inspected
	// rather than formatted.
	Stats *stats.FileStats

	// Skipped is true if the file was skipped.
	Skipped bool

	// SkipReason explains why the file was skipped.
	SkipReason string

	// BackupPath is the path of the backup created before writing,
	// or empty when no backup was made.
	BackupPath string

	// Written is true if the file was written to disk.
	Written bool
}

// Summary returns a human-readable summary of the result.
func (r *Result) Summary() string {
	if r.Skipped {
		return "skipped: " + r.SkipReason
	}
	if r.Written {
		if r.BackupPath != "" {
			return "formatted (backup created)"
		}
		return "formatted"
	}
	if r.Changed {
		return "changes required"
	}
	return "ok"
}

// Options controls pipeline behavior. One Options value applies to every
// file in a run.
type Options struct {
	// Format configures the formatting engine.
	Format format.Options

	// Encoding decodes file bytes before formatting and encodes the
	// formatted text before writing.
	Encoding charset.Encoding

	// Check reports whether files would change without writing them.
	Check bool

	// Diff attaches a unified diff to the result of each changed file.
	Diff bool

	// SkipBinary skips files whose content looks binary.
	SkipBinary bool

	// Backup configures backup behavior before writing.
	Backup fsutil.BackupConfig

	// StrictRaceDetection uses hash comparison for modification detection.
	// When false, only mod time and size are checked.
	StrictRaceDetection bool
}

// DefaultOptions returns the options of a default configuration: UTF-8,
// no transforms enabled, binary files skipped.
func DefaultOptions() Options {
	return OptionsFromConfig(config.NewConfig())
}

// OptionsFromConfig maps a resolved configuration onto pipeline options.
func OptionsFromConfig(cfg *config.Config) Options {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	return Options{
		Format:              cfg.FormatOptions(),
		Encoding:            cfg.Encoding,
		Check:               cfg.Check,
		Diff:                cfg.Diff,
		SkipBinary:          cfg.SkipBinary,
		Backup:              BackupConfigFromConfig(cfg),
		StrictRaceDetection: cfg.Strict,
	}
}

// BackupConfigFromConfig creates an fsutil.BackupConfig from config.Config.
func BackupConfigFromConfig(cfg *config.Config) fsutil.BackupConfig {
	if cfg == nil {
		return fsutil.DefaultBackupConfig()
	}
	return fsutil.BackupConfig{
		Enabled: cfg.Backups.Enabled,
		Mode:    fsutil.BackupMode(cfg.Backups.Mode),
	}
}

// Pipeline processes files one at a time. It is safe for concurrent use;
// the options never change after construction.
type Pipeline struct {
	opts Options
}

// New creates a Pipeline with the given options.
func New(opts Options) *Pipeline {
	return &Pipeline{opts: opts}
}

// ProcessFile runs the full pipeline for a single file.
//
// The pipeline performs the following steps:
//  1. Read and hash the original file.
//  2. Skip binary content (if enabled).
//  3. Decode under the configured encoding.
//  4. Format in memory.
//  5. Generate a diff (if requested).
//  6. In check mode, stop here.
//  7. Re-encode the formatted text.
//  8. Check for concurrent modifications.
//  9. Create a backup (if enabled).
//  10. Write the new content atomically, preserving the file mode.
func (p *Pipeline) ProcessFile(ctx context.Context, path string) (*Result, error) {
	result := &Result{Path: path}

	// Step 1: Read and hash the original file.
	content, snap, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return nil, categorizeError(err)
	}
	result.Snapshot = snap

	// Step 2: Binary guard.
	if p.opts.SkipBinary && detect.IsBinary(content) {
		result.Skipped = true
		result.SkipReason = "binary content"
		return result, nil
	}

	// Step 3: Decode under the configured encoding.
	text, err := p.opts.Encoding.Decode(content)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrDecodeFailure, path, err)
	}

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("processing cancelled: %w", ctx.Err())
	default:
	}

	// Step 4: Format in memory.
	res := format.Format(text, p.opts.Format)
	result.Changes = res.Changes

	if !res.Changed() {
		return result, nil
	}
	result.Changed = true

	// Step 5: Generate a diff when requested.
	if p.opts.Diff {
		result.Diff = diff.Generate(path, text, res.Text)
	}

	// Step 6: Check mode never writes.
	if p.opts.Check {
		return result, nil
	}

	// Step 7: Re-encode the formatted text.
	encoded, err := p.opts.Encoding.Encode(res.Text)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrWriteFailure, path, err)
	}
	result.FormattedContent = encoded

	// Step 8: Check for concurrent modifications before writing.
	modified, err := snap.Modified(ctx, p.opts.StrictRaceDetection)
	if err != nil {
		return nil, fmt.Errorf("check modified: %w", err)
	}
	if modified {
		result.Skipped = true
		result.SkipReason = "file modified during processing"
		return result, nil
	}

	// Step 9: Create a backup if enabled.
	if p.opts.Backup.Enabled {
		backupPath, err := fsutil.CreateBackup(ctx, path, p.opts.Backup)
		if err != nil {
			return nil, fmt.Errorf("create backup: %w", err)
		}
		result.BackupPath = backupPath
	}

	// Step 10: Write the new content atomically.
	if err := fsutil.WriteAtomic(ctx, path, encoded, snap.Mode); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrWriteFailure, path, err)
	}
	result.Written = true

	return result, nil
}

// ProcessContent formats in-memory content without touching the filesystem.
// This is useful for testing or when content is already loaded.
func (p *Pipeline) ProcessContent(ctx context.Context, path string, content []byte) (*Result, error) {
	result := &Result{Path: path}

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("processing cancelled: %w", ctx.Err())
	default:
	}

	if p.opts.SkipBinary && detect.IsBinary(content) {
		result.Skipped = true
		result.SkipReason = "binary content"
		return result, nil
	}

	text, err := p.opts.Encoding.Decode(content)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrDecodeFailure, path, err)
	}

	res := format.Format(text, p.opts.Format)
	result.Changes = res.Changes

	if !res.Changed() {
		return result, nil
	}
	result.Changed = true

	if p.opts.Diff {
		result.Diff = diff.Generate(path, text, res.Text)
	}

	encoded, err := p.opts.Encoding.Encode(res.Text)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrWriteFailure, path, err)
	}
	result.FormattedContent = encoded

	return result, nil
}

// categorizeError wraps a read error with ErrReadFailure. The underlying
// fsutil sentinels stay reachable through errors.Is.
func categorizeError(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrReadFailure, err)
}

// IsPipelineError checks if an error is a known pipeline error type.
func IsPipelineError(err error) bool {
	return errors.Is(err, ErrReadFailure) ||
		errors.Is(err, ErrDecodeFailure) ||
		errors.Is(err, ErrWriteFailure)
}
