package api

// This file implements a file watcher for sessions. Directories are watched
// instead of the files themselves because many editors save by writing a new
// file and renaming it over the old one, which drops a watch on the file.
//
// Saving a file often produces several events in a row, so changes are
// collected until things have been quiet for a short while and then each
// changed file is pushed into the session once.

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/esdart/esdart/internal/logger"
)

// How long to wait after the last event before rebuilding
const watchDebounce = 50 * time.Millisecond

type WatchOptions struct {
	// Called after each rebuild with the path that changed and the output for
	// the whole session
	OnRebuild func(path string, result TransformResult)

	// Print "[watch]" status lines to stderr
	Log   bool
	Color StderrColor
}

type watcher struct {
	session  *Session
	fs       *fsnotify.Watcher
	options  WatchOptions
	useColor bool

	// Maps cleaned paths to the paths the session knows them by
	paths map[string]string
}

// Watches every file in the session and blocks until the context is done
func (s *Session) Watch(ctx context.Context, options WatchOptions) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to start watching: %w", err)
	}
	defer fsw.Close()

	w := &watcher{
		session: s,
		fs:      fsw,
		options: options,
		paths:   make(map[string]string),
	}

	switch validateColor(options.Color) {
	case logger.ColorAlways:
		w.useColor = logger.SupportsColorEscapes
	case logger.ColorIfTerminal:
		w.useColor = logger.GetTerminalInfo(os.Stderr).UseColorEscapes
	}

	dirs := make(map[string]bool)
	for _, path := range s.Paths() {
		w.paths[filepath.Clean(path)] = path
		dir := filepath.Dir(path)
		if dirs[dir] {
			continue
		}
		if err := fsw.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %q: %w", dir, err)
		}
		dirs[dir] = true
	}

	w.logf("build finished, watching for changes...")
	w.loop(ctx)
	return nil
}

func (w *watcher) logf(format string, args ...interface{}) {
	if !w.options.Log {
		return
	}
	colors := logger.Colors{}
	if w.useColor {
		colors = logger.TerminalColors
	}
	fmt.Fprintf(os.Stderr, "%s[watch] %s%s\n", colors.Dim, fmt.Sprintf(format, args...), colors.Reset)
}

func (w *watcher) loop(ctx context.Context) {
	dirty := make(map[string]bool)
	var quiet <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			path, watched := w.paths[filepath.Clean(event.Name)]
			if !watched || !(event.Has(fsnotify.Write) || event.Has(fsnotify.Create)) {
				continue
			}
			dirty[path] = true
			quiet = time.After(watchDebounce)

		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.logf("error: %v", err)

		case <-quiet:
			quiet = nil
			w.rebuild(dirty)
			dirty = make(map[string]bool)
		}
	}
}

func (w *watcher) rebuild(dirty map[string]bool) {
	paths := make([]string, 0, len(dirty))
	for path := range dirty {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	for _, path := range paths {
		contents, err := os.ReadFile(path)
		if err != nil {
			// The file may be mid-rename. Another event follows once it's back.
			w.logf("skipped %q: %v", path, err)
			continue
		}

		w.logf("build started (change: %q)", path)
		result := w.session.Update(path, string(contents))
		w.logf("build finished")

		if w.options.OnRebuild != nil {
			w.options.OnRebuild(path, result)
		}
	}
}
