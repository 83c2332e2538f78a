package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/yaklabco/wsfmt/internal/logging"
	"github.com/yaklabco/wsfmt/pkg/pipeline"
	"github.com/yaklabco/wsfmt/pkg/runner"
)

// defaultWatchDebounce coalesces the bursts of events editors emit for a
// single save.
const defaultWatchDebounce = 100 * time.Millisecond

func newWatchCommand() *cobra.Command {
	flags := &formatFlags{}

	cmd := &cobra.Command{
		Use:   "watch [paths...]",
		Short: "Watch files and normalize whitespace on change",
		Long: `Watch the given paths and re-format files as they change, until
interrupted. Transforms, exclusions, and encoding come from the same
configuration the format command uses.

Examples:
  wsfmt watch                                     # Watch the current directory
  wsfmt watch src/ --remove-trailing-whitespace   # Strip trailing spaces on save
  wsfmt watch --extensions .go,.md docs/          # Watch specific file types`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd, args, flags)
		},
	}

	addEngineFlags(cmd, flags)
	addIOFlags(cmd, flags)
	addBatchFlags(cmd, flags)
	cmd.Flags().DurationVar(&flags.debounce, "debounce", defaultWatchDebounce,
		"delay before formatting after the last event for a file")

	return cmd
}

func runWatch(cmd *cobra.Command, args []string, flags *formatFlags) error {
	logger := logging.Default()

	if err := validateFormatFlags(cmd, flags); err != nil {
		return err
	}

	loadResult, workDir, err := loadConfiguration(cmd, applyFormatFlags(cmd, flags))
	if err != nil {
		return err
	}

	finalCfg := loadResult.Config

	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}

	// Watch always writes; check and diff modes do not apply here.
	finalCfg.Check = false
	finalCfg.Diff = false

	proc := pipeline.New(pipeline.OptionsFromConfig(finalCfg))

	runOpts := runner.OptionsFromConfig(finalCfg, args)
	runOpts.WorkingDir = workDir

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	dirs, err := runner.DiscoverDirs(ctx, runOpts)
	if err != nil {
		return errors.Join(errIO, err)
	}
	if len(dirs) == 0 {
		return errors.New("no directories to watch")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	for _, dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
	}

	logger.Info("watching for changes",
		"dirs", len(dirs),
		logging.FieldWorkingDir, workDir,
	)

	loop := &watchLoop{
		logger:   logger,
		proc:     proc,
		opts:     runOpts,
		watcher:  watcher,
		debounce: flags.debounce,
		timers:   make(map[string]*time.Timer),
	}

	return loop.run(ctx)
}

// watchLoop owns the event loop state for a single watch run.
type watchLoop struct {
	logger   *log.Logger
	proc     *pipeline.Pipeline
	opts     runner.Options
	watcher  *fsnotify.Watcher
	debounce time.Duration

	mu     sync.Mutex
	timers map[string]*time.Timer
}

func (w *watchLoop) run(ctx context.Context) error {
	defer w.stopTimers()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("stopping watch")
			return nil
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			w.handleEvent(ctx, event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("watch error", logging.FieldError, err)
		}
	}
}

func (w *watchLoop) handleEvent(ctx context.Context, event fsnotify.Event) {
	// Only content-bearing events matter. Chmod carries no content change,
	// and fsnotify drops watches on removed directories by itself.
	if event.Op&(fsnotify.Create|fsnotify.Write) == 0 {
		return
	}

	info, err := os.Stat(event.Name)
	if err != nil {
		// Removed or renamed before we got here.
		return
	}

	if info.IsDir() {
		if event.Op&fsnotify.Create != 0 {
			w.addDir(ctx, event.Name)
		}
		return
	}

	if !w.opts.MatchesFile(event.Name) {
		return
	}

	w.schedule(ctx, event.Name)
}

// addDir starts watching a newly created directory tree.
func (w *watchLoop) addDir(ctx context.Context, path string) {
	if !w.opts.MatchesDir(path) {
		return
	}

	subOpts := w.opts
	subOpts.Paths = []string{path}

	dirs, err := runner.DiscoverDirs(ctx, subOpts)
	if err != nil {
		w.logger.Warn("cannot scan new directory", logging.FieldPath, path, logging.FieldError, err)
		return
	}

	for _, dir := range dirs {
		if err := w.watcher.Add(dir); err != nil {
			w.logger.Warn("cannot watch directory", logging.FieldPath, dir, logging.FieldError, err)
		}
	}
}

// schedule arms (or re-arms) the debounce timer for a path. The timer body
// runs on its own goroutine; the pipeline is safe for concurrent use.
func (w *watchLoop) schedule(ctx context.Context, path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if timer, ok := w.timers[path]; ok {
		timer.Reset(w.debounce)
		return
	}

	w.timers[path] = time.AfterFunc(w.debounce, func() {
		w.mu.Lock()
		delete(w.timers, path)
		w.mu.Unlock()

		w.process(ctx, path)
	})
}

// process formats one file and logs the outcome. Writing the formatted
// file triggers one more event; the next run finds the file clean and
// the cycle stops there.
func (w *watchLoop) process(ctx context.Context, path string) {
	if ctx.Err() != nil {
		return
	}

	result, err := w.proc.ProcessFile(ctx, path)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		w.logger.Error("format failed", logging.FieldPath, path, logging.FieldError, err)
		return
	}

	switch {
	case result.Skipped:
		w.logger.Debug("skipped", logging.FieldPath, path, "reason", result.SkipReason)
	case result.Written:
		w.logger.Info("formatted", logging.FieldPath, path, logging.FieldChanges, len(result.Changes))
	default:
		w.logger.Debug("clean", logging.FieldPath, path)
	}
}

func (w *watchLoop) stopTimers() {
	w.mu.Lock()
	defer w.mu.Unlock()

	for path, timer := range w.timers {
		timer.Stop()
		delete(w.timers, path)
	}
}
