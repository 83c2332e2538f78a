// Package runner provides multi-file formatting orchestration.
package runner

import (
	"strings"

	"github.com/yaklabco/wsfmt/pkg/config"
)

// Options controls multi-file formatting behavior.
type Options struct {
	// Paths are the user-specified paths (files or directories) to process.
	// If empty, defaults to the current working directory.
	Paths []string

	// WorkingDir is the base directory used to resolve relative Paths.
	// If empty, the current process working directory is used.
	WorkingDir string

	// Extensions limits directory discovery to files with these extensions
	// (lowercase, with leading dot). Empty means every file is considered.
	// Explicitly listed files bypass this filter.
	Extensions []string

	// ExcludeGlobs are glob patterns used to skip files or directories.
	// These merge exclude rules from config and CLI (e.g. --exclude).
	ExcludeGlobs []string

	// FollowSymlinks controls whether symlinks are traversed.
	FollowSymlinks bool

	// Jobs controls the maximum number of concurrent workers.
	// 0 or negative means "auto" (runtime.NumCPU()).
	Jobs int
}

// OptionsFromConfig maps a resolved configuration onto runner options.
// The paths argument carries the positional CLI arguments.
func OptionsFromConfig(cfg *config.Config, paths []string) Options {
	if cfg == nil {
		cfg = config.NewConfig()
	}

	return Options{
		Paths:          paths,
		Extensions:     NormalizeExtensions(cfg.Extensions),
		ExcludeGlobs:   cfg.Exclude,
		FollowSymlinks: cfg.FollowSymlinks,
		Jobs:           cfg.Jobs,
	}
}

// NormalizeExtensions lowercases extensions and ensures each carries a
// leading dot, so "TXT" and ".txt" select the same files. Blank entries
// are dropped. Returns nil when nothing remains.
func NormalizeExtensions(extensions []string) []string {
	if len(extensions) == 0 {
		return nil
	}

	normalized := make([]string, 0, len(extensions))

	for _, ext := range extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}

		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}

		normalized = append(normalized, ext)
	}

	if len(normalized) == 0 {
		return nil
	}

	return normalized
}

// effectivePaths returns the paths to process, defaulting to "." if empty.
func (o Options) effectivePaths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}

	return o.Paths
}
