package runner

import "github.com/yaklabco/wsfmt/pkg/pipeline"

// FileOutcome wraps a pipeline result with resolved path metadata.
type FileOutcome struct {
	// Path is the file path that was processed.
	Path string

	// Result contains the pipeline result for this file.
	// May be nil if the file encountered an error during processing.
	Result *pipeline.Result

	// Error is set if the file could not be processed.
	Error error
}

// Stats captures aggregate information about a run.
type Stats struct {
	// FilesDiscovered is the total number of files found during discovery.
	FilesDiscovered int

	// FilesProcessed is the number of files successfully processed.
	FilesProcessed int

	// FilesSkipped is the number of files skipped (binary content,
	// concurrent modification).
	FilesSkipped int

	// FilesErrored is the number of files that encountered errors.
	FilesErrored int

	// FilesClean is the number of files that needed no changes.
	FilesClean int

	// FilesChanged is the number of files that needed at least one change.
	FilesChanged int

	// FilesWritten is the number of files rewritten on disk.
	FilesWritten int

	// ChangesTotal is the total number of changes across all files.
	ChangesTotal int

	// ChangesByKind maps change kinds to counts.
	ChangesByKind map[string]int
}

// Result is the overall runner result.
type Result struct {
	// Files contains the outcome for each processed file.
	// Files are ordered deterministically (by path).
	Files []FileOutcome

	// Stats contains aggregate statistics for the run.
	Stats Stats

	// Errors contains any non-file-specific errors encountered.
	Errors []error
}

// HasChanges reports whether any file needed changes. In check mode this
// drives the non-zero exit status.
func (r *Result) HasChanges() bool {
	if r == nil {
		return false
	}
	return r.Stats.FilesChanged > 0
}

// HasErrors reports whether any file failed to process.
func (r *Result) HasErrors() bool {
	if r == nil {
		return false
	}
	return r.Stats.FilesErrored > 0 || len(r.Errors) > 0
}

// newStats creates a new Stats with initialized maps.
func newStats() Stats {
	return Stats{
		ChangesByKind: make(map[string]int),
	}
}

// accumulate updates the result with a file outcome.
func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		r.Stats.FilesErrored++
		return
	}

	if outcome.Result == nil {
		return
	}

	r.Stats.FilesProcessed++

	if outcome.Result.Skipped {
		r.Stats.FilesSkipped++
		return
	}

	if !outcome.Result.Changed {
		r.Stats.FilesClean++
		return
	}

	r.Stats.FilesChanged++
	r.Stats.ChangesTotal += len(outcome.Result.Changes)

	for _, change := range outcome.Result.Changes {
		r.Stats.ChangesByKind[string(change.Kind)]++
	}

	if outcome.Result.Written {
		r.Stats.FilesWritten++
	}
}
