package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/wsfmt/pkg/runner"
)

// jsonSchemaVersion identifies the shape of the JSON document.
const jsonSchemaVersion = "1.0.0"

// JSONOutput is the top-level JSON structure.
type JSONOutput struct {
	Version string           `json:"version"`
	Files   []JSONFileResult `json:"files"`
	Summary JSONSummary      `json:"summary"`
}

// JSONFileResult represents a single file's outcome.
type JSONFileResult struct {
	Path       string       `json:"path"`
	Changes    []JSONChange `json:"changes"`
	Changed    bool         `json:"changed"`
	Written    bool         `json:"written"`
	Skipped    bool         `json:"skipped,omitempty"`
	SkipReason string       `json:"skipReason,omitempty"`
	BackupPath string       `json:"backupPath,omitempty"`
	Error      string       `json:"error,omitempty"`
}

// JSONChange represents a single whitespace change. From and To carry the
// raw byte sequences; JSON string escaping keeps the control characters
// visible.
type JSONChange struct {
	Kind    string `json:"kind"`
	Line    int    `json:"line,omitempty"`
	Message string `json:"message"`
	From    string `json:"from,omitempty"`
	To      string `json:"to,omitempty"`
}

// JSONSummary contains aggregate statistics.
type JSONSummary struct {
	FilesChecked int            `json:"filesChecked"`
	FilesChanged int            `json:"filesChanged"`
	FilesWritten int            `json:"filesWritten"`
	FilesSkipped int            `json:"filesSkipped"`
	FilesErrored int            `json:"filesErrored"`
	TotalChanges int            `json:"totalChanges"`
	ByKind       map[string]int `json:"byKind"`
}

// JSONReporter formats results as JSON.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	output := r.buildOutput(result)

	encoder := json.NewEncoder(r.bw)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}

	if err := encoder.Encode(output); err != nil {
		return 0, fmt.Errorf("encode JSON: %w", err)
	}

	return output.Summary.FilesChanged, nil
}

func (r *JSONReporter) buildOutput(result *runner.Result) *JSONOutput {
	output := &JSONOutput{
		Version: jsonSchemaVersion,
		Files:   make([]JSONFileResult, 0),
		Summary: JSONSummary{
			ByKind: make(map[string]int),
		},
	}

	if result == nil {
		return output
	}

	if len(result.Files) > 0 {
		output.Files = make([]JSONFileResult, 0, len(result.Files))
	}

	for _, file := range result.Files {
		fileResult := JSONFileResult{
			Path:    file.Path,
			Changes: make([]JSONChange, 0),
		}

		if file.Error != nil {
			fileResult.Error = file.Error.Error()
			output.Summary.FilesErrored++
		}

		if res := file.Result; res != nil {
			fileResult.Changed = res.Changed && !res.Skipped
			fileResult.Written = res.Written
			fileResult.Skipped = res.Skipped
			fileResult.SkipReason = res.SkipReason
			fileResult.BackupPath = res.BackupPath

			if res.Skipped {
				output.Summary.FilesSkipped++
			} else {
				for _, change := range res.Changes {
					fileResult.Changes = append(fileResult.Changes, JSONChange{
						Kind:    string(change.Kind),
						Line:    change.Line,
						Message: change.Message(),
						From:    change.From,
						To:      change.To,
					})

					output.Summary.TotalChanges++
					output.Summary.ByKind[string(change.Kind)]++
				}
			}
		}

		if fileResult.Changed {
			output.Summary.FilesChanged++
		}
		if fileResult.Written {
			output.Summary.FilesWritten++
		}

		output.Files = append(output.Files, fileResult)
		output.Summary.FilesChecked++
	}

	return output
}
