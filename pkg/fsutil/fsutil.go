// Package fsutil provides the file system primitives behind the formatter's
// write path: categorized reads, concurrent-modification detection, atomic
// writes and sidecar backups.
package fsutil

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"os"
	"time"
)

// Sentinel errors for categorizing read failures via errors.Is.
var (
	// ErrNotFound indicates the file does not exist.
	ErrNotFound = errors.New("file not found")

	// ErrPermissionDenied indicates a permission error.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrIsDirectory indicates the path is a directory, not a file.
	ErrIsDirectory = errors.New("path is a directory")

	// ErrNilSnapshot is returned when a modification check runs against a
	// nil snapshot.
	ErrNilSnapshot = errors.New("nil snapshot")
)

// Snapshot captures a file's state at the moment it was read. The write path
// compares a fresh stat against it so a file edited between read and write is
// never clobbered.
type Snapshot struct {
	// Path is the path the snapshot was taken from.
	Path string

	// Mode is the file's permission and mode bits, reused on write so
	// formatting preserves permissions.
	Mode os.FileMode

	// ModTime is the modification time at read.
	ModTime time.Time

	// Size is the size in bytes at read.
	Size int64

	// Hash is the SHA-256 of the content at read.
	Hash [32]byte
}

// ReadFile reads a file and returns its raw content along with a snapshot
// for later modification detection.
func ReadFile(ctx context.Context, path string) ([]byte, *Snapshot, error) {
	select {
	case <-ctx.Done():
		return nil, nil, fmt.Errorf("read file: %w", ctx.Err())
	default:
	}

	stat, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, fmt.Errorf("%w: %s: %w", ErrNotFound, path, err)
		}
		if os.IsPermission(err) {
			return nil, nil, fmt.Errorf("%w: %s: %w", ErrPermissionDenied, path, err)
		}
		return nil, nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if stat.IsDir() {
		return nil, nil, fmt.Errorf("%w: %s", ErrIsDirectory, path)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsPermission(err) {
			return nil, nil, fmt.Errorf("%w: %s: %w", ErrPermissionDenied, path, err)
		}
		return nil, nil, fmt.Errorf("read %s: %w", path, err)
	}

	snap := &Snapshot{
		Path:    path,
		Mode:    stat.Mode(),
		ModTime: stat.ModTime(),
		Size:    stat.Size(),
		Hash:    sha256.Sum256(content),
	}
	return content, snap, nil
}

// Modified reports whether the file changed since the snapshot was taken. A
// deleted file counts as modified. The stat comparison catches ordinary
// editor saves; verifyHash additionally re-reads and hashes the content to
// catch rewrites that preserve size and modification time.
func (s *Snapshot) Modified(ctx context.Context, verifyHash bool) (bool, error) {
	if s == nil {
		return false, ErrNilSnapshot
	}

	select {
	case <-ctx.Done():
		return false, fmt.Errorf("check modified: %w", ctx.Err())
	default:
	}

	stat, err := os.Stat(s.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return true, nil
		}
		return false, fmt.Errorf("stat %s: %w", s.Path, err)
	}
	if !stat.ModTime().Equal(s.ModTime) || stat.Size() != s.Size {
		return true, nil
	}

	if !verifyHash {
		return false, nil
	}

	content, err := os.ReadFile(s.Path)
	if err != nil {
		return false, fmt.Errorf("read %s: %w", s.Path, err)
	}
	return sha256.Sum256(content) != s.Hash, nil
}
