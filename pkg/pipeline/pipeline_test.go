package pipeline_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/yaklabco/wsfmt/pkg/charset"
	"github.com/yaklabco/wsfmt/pkg/config"
	"github.com/yaklabco/wsfmt/pkg/format"
	"github.com/yaklabco/wsfmt/pkg/fsutil"
	"github.com/yaklabco/wsfmt/pkg/pipeline"
)

// writeTestFile creates a file with the given content and mode.
func writeTestFile(t *testing.T, content []byte, mode os.FileMode) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.txt")
	if err := os.WriteFile(path, content, mode); err != nil {
		t.Fatalf("setup: %v", err)
	}
	return path
}

// trimOptions returns options that remove trailing whitespace and nothing else.
func trimOptions() pipeline.Options {
	opts := pipeline.DefaultOptions()
	opts.Format.RemoveTrailingWhitespace = true
	return opts
}

func TestPipeline_ProcessFile_CleanFile(t *testing.T) {
	t.Parallel()

	path := writeTestFile(t, []byte("hello\nworld\n"), 0644)

	p := pipeline.New(trimOptions())

	result, err := p.ProcessFile(context.Background(), path)
	if err != nil {
		t.Fatalf("ProcessFile() error = %v", err)
	}

	if result.Path != path {
		t.Errorf("Path = %q, want %q", result.Path, path)
	}
	if result.Snapshot == nil {
		t.Error("Snapshot should be set")
	}
	if result.Changed {
		t.Error("Changed should be false for a clean file")
	}
	if result.Written {
		t.Error("Written should be false for a clean file")
	}
	if len(result.Changes) != 0 {
		t.Errorf("Changes = %v, want none", result.Changes)
	}
	if result.Summary() != "ok" {
		t.Errorf("Summary() = %q, want ok", result.Summary())
	}
}

func TestPipeline_ProcessFile_WritesFormatted(t *testing.T) {
	t.Parallel()

	path := writeTestFile(t, []byte("hello  \nworld\t \n"), 0600)

	p := pipeline.New(trimOptions())

	result, err := p.ProcessFile(context.Background(), path)
	if err != nil {
		t.Fatalf("ProcessFile() error = %v", err)
	}

	if !result.Changed {
		t.Error("Changed should be true")
	}
	if !result.Written {
		t.Error("Written should be true")
	}
	if len(result.Changes) != 2 {
		t.Errorf("len(Changes) = %d, want 2", len(result.Changes))
	}
	if result.Summary() != "formatted" {
		t.Errorf("Summary() = %q, want formatted", result.Summary())
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if want := "hello\nworld\n"; string(got) != want {
		t.Errorf("written content = %q, want %q", got, want)
	}
	if !bytes.Equal(result.FormattedContent, got) {
		t.Errorf("FormattedContent = %q, want %q", result.FormattedContent, got)
	}

	// File mode survives the rewrite.
	stat, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if stat.Mode().Perm() != 0600 {
		t.Errorf("mode = %o, want %o", stat.Mode().Perm(), 0600)
	}
}

func TestPipeline_ProcessFile_CheckMode(t *testing.T) {
	t.Parallel()

	original := []byte("hello  \n")
	path := writeTestFile(t, original, 0644)

	opts := trimOptions()
	opts.Check = true
	p := pipeline.New(opts)

	result, err := p.ProcessFile(context.Background(), path)
	if err != nil {
		t.Fatalf("ProcessFile() error = %v", err)
	}

	if !result.Changed {
		t.Error("Changed should be true")
	}
	if result.Written {
		t.Error("Written should be false in check mode")
	}
	if result.Summary() != "changes required" {
		t.Errorf("Summary() = %q, want 'changes required'", result.Summary())
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, original) {
		t.Errorf("file content = %q, want untouched %q", got, original)
	}
}

func TestPipeline_ProcessFile_Diff(t *testing.T) {
	t.Parallel()

	path := writeTestFile(t, []byte("hello  \nworld\n"), 0644)

	opts := trimOptions()
	opts.Check = true
	opts.Diff = true
	p := pipeline.New(opts)

	result, err := p.ProcessFile(context.Background(), path)
	if err != nil {
		t.Fatalf("ProcessFile() error = %v", err)
	}

	if result.Diff == nil {
		t.Fatal("Diff should be set")
	}

	text := result.Diff.String()
	for _, want := range []string{"-hello  ", "+hello", " world"} {
		if !strings.Contains(text, want) {
			t.Errorf("diff missing %q:\n%s", want, text)
		}
	}
}

func TestPipeline_ProcessFile_SkipsBinary(t *testing.T) {
	t.Parallel()

	path := writeTestFile(t, []byte("PK\x03\x04\x00\x00data"), 0644)

	p := pipeline.New(trimOptions())

	result, err := p.ProcessFile(context.Background(), path)
	if err != nil {
		t.Fatalf("ProcessFile() error = %v", err)
	}

	if !result.Skipped {
		t.Error("Skipped should be true for binary content")
	}
	if result.SkipReason != "binary content" {
		t.Errorf("SkipReason = %q, want 'binary content'", result.SkipReason)
	}
	if result.Summary() != "skipped: binary content" {
		t.Errorf("Summary() = %q", result.Summary())
	}
}

func TestPipeline_ProcessFile_DecodeFailure(t *testing.T) {
	t.Parallel()

	path := writeTestFile(t, []byte("caf\xe9\n"), 0644)

	// 0xE9 is not valid UTF-8.
	p := pipeline.New(trimOptions())

	_, err := p.ProcessFile(context.Background(), path)
	if !errors.Is(err, pipeline.ErrDecodeFailure) {
		t.Errorf("error = %v, want ErrDecodeFailure", err)
	}
	if !pipeline.IsPipelineError(err) {
		t.Error("IsPipelineError should be true")
	}
}

func TestPipeline_ProcessFile_ReadFailure(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "absent.txt")

	p := pipeline.New(trimOptions())

	_, err := p.ProcessFile(context.Background(), path)
	if !errors.Is(err, pipeline.ErrReadFailure) {
		t.Errorf("error = %v, want ErrReadFailure", err)
	}
	if !errors.Is(err, fsutil.ErrNotFound) {
		t.Errorf("error = %v, want wrapped fsutil.ErrNotFound", err)
	}
	if !pipeline.IsPipelineError(err) {
		t.Error("IsPipelineError should be true")
	}
}

func TestPipeline_ProcessFile_CreatesBackup(t *testing.T) {
	t.Parallel()

	original := []byte("hello  \n")
	path := writeTestFile(t, original, 0644)

	opts := trimOptions()
	opts.Backup = fsutil.BackupConfig{Enabled: true, Mode: fsutil.BackupModeSidecar}
	p := pipeline.New(opts)

	result, err := p.ProcessFile(context.Background(), path)
	if err != nil {
		t.Fatalf("ProcessFile() error = %v", err)
	}

	if result.BackupPath == "" {
		t.Fatal("BackupPath should be set")
	}
	if result.Summary() != "formatted (backup created)" {
		t.Errorf("Summary() = %q", result.Summary())
	}

	backup, err := os.ReadFile(result.BackupPath)
	if err != nil {
		t.Fatalf("read backup: %v", err)
	}
	if !bytes.Equal(backup, original) {
		t.Errorf("backup = %q, want original %q", backup, original)
	}

	formatted, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if want := "hello\n"; string(formatted) != want {
		t.Errorf("file content = %q, want %q", formatted, want)
	}
}

func TestPipeline_ProcessFile_Latin1RoundTrip(t *testing.T) {
	t.Parallel()

	// "café  \n" in latin-1; the e-acute is the single byte 0xE9.
	original := []byte{'c', 'a', 'f', 0xE9, ' ', ' ', '\n'}
	path := writeTestFile(t, original, 0644)

	opts := trimOptions()
	opts.Encoding = charset.Latin1
	p := pipeline.New(opts)

	result, err := p.ProcessFile(context.Background(), path)
	if err != nil {
		t.Fatalf("ProcessFile() error = %v", err)
	}
	if !result.Written {
		t.Fatal("Written should be true")
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	want := []byte{'c', 'a', 'f', 0xE9, '\n'}
	if !bytes.Equal(got, want) {
		t.Errorf("written content = %v, want %v", got, want)
	}
}

func TestPipeline_ProcessContent(t *testing.T) {
	t.Parallel()

	p := pipeline.New(trimOptions())

	result, err := p.ProcessContent(context.Background(), "buffer.txt", []byte("a  \nb\n"))
	if err != nil {
		t.Fatalf("ProcessContent() error = %v", err)
	}

	if !result.Changed {
		t.Error("Changed should be true")
	}
	if result.Written {
		t.Error("Written should be false for in-memory content")
	}
	if want := "a\nb\n"; string(result.FormattedContent) != want {
		t.Errorf("FormattedContent = %q, want %q", result.FormattedContent, want)
	}
}

func TestPipeline_ProcessContent_RespectsContextCancellation(t *testing.T) {
	t.Parallel()

	p := pipeline.New(trimOptions())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := p.ProcessContent(ctx, "buffer.txt", []byte("a\n")); err == nil {
		t.Error("expected error for cancelled context")
	}
}

func TestOptionsFromConfig(t *testing.T) {
	t.Parallel()

	t.Run("maps all fields", func(t *testing.T) {
		t.Parallel()

		cfg := config.NewConfig()
		cfg.NewLineMarker = format.MarkerWindows
		cfg.RemoveTrailingWhitespace = true
		cfg.Encoding = charset.Latin1
		cfg.Check = true
		cfg.Diff = true
		cfg.Strict = true
		cfg.SkipBinary = false
		cfg.Backups = config.BackupsConfig{Enabled: true, Mode: "sidecar"}

		opts := pipeline.OptionsFromConfig(cfg)

		if opts.Format.NewLineMarker != format.MarkerWindows {
			t.Errorf("Format.NewLineMarker = %q", opts.Format.NewLineMarker)
		}
		if !opts.Format.RemoveTrailingWhitespace {
			t.Error("Format.RemoveTrailingWhitespace should be true")
		}
		if opts.Encoding != charset.Latin1 {
			t.Errorf("Encoding = %q", opts.Encoding)
		}
		if !opts.Check || !opts.Diff || !opts.StrictRaceDetection {
			t.Error("Check, Diff and StrictRaceDetection should be true")
		}
		if opts.SkipBinary {
			t.Error("SkipBinary should be false")
		}
		if !opts.Backup.Enabled || opts.Backup.Mode != fsutil.BackupModeSidecar {
			t.Errorf("Backup = %+v", opts.Backup)
		}
	})

	t.Run("nil config uses defaults", func(t *testing.T) {
		t.Parallel()

		opts := pipeline.OptionsFromConfig(nil)

		if opts.Encoding != charset.UTF8 {
			t.Errorf("Encoding = %q, want utf-8", opts.Encoding)
		}
		if !opts.SkipBinary {
			t.Error("SkipBinary should default to true")
		}
		if opts.Backup.Enabled {
			t.Error("Backup should default to disabled")
		}
	})
}
