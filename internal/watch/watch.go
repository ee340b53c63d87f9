// Package watch reloads AWS profiles when the shared config or credentials file changes.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/vietdv277/awsprof/internal/aws"
)

// DefaultDelay coalesces the burst of events an editor produces when saving a file
const DefaultDelay = 200 * time.Millisecond

// Reloader is the part of the profile manager the watcher drives
type Reloader interface {
	Paths() aws.Paths
	Reload() error
}

// Options configures Run
type Options struct {
	// Delay between the last file event and the reload
	Delay time.Duration
	// OnReload is called after every reload with its result
	OnReload func(error)
	Logger   *zap.SugaredLogger
}

// Run watches the directories holding both shared files and calls Reload after they change.
// Directories are watched rather than files so that editors replacing a file are seen.
// Reload runs on the calling goroutine. Run returns when ctx is done.
func Run(ctx context.Context, r Reloader, opts Options) error {
	if opts.Delay <= 0 {
		opts.Delay = DefaultDelay
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop().Sugar()
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	paths := r.Paths()
	targets := make(map[string]bool)
	for _, file := range []string{paths.ConfigFile, paths.CredentialsFile} {
		if file == "" {
			continue
		}
		targets[filepath.Clean(file)] = true
	}

	dirs := make(map[string]bool)
	for file := range targets {
		dir := filepath.Dir(file)
		if dirs[dir] {
			continue
		}
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
		dirs[dir] = true
		opts.Logger.Debugw("watching directory", "dir", dir)
	}

	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !targets[filepath.Clean(event.Name)] || !relevant(event.Op) {
				continue
			}
			opts.Logger.Debugw("shared file changed", "file", event.Name, "op", event.Op.String())
			pending = time.After(opts.Delay)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			opts.Logger.Warnw("file watcher error", "error", err)

		case <-pending:
			pending = nil
			err := r.Reload()
			if opts.OnReload != nil {
				opts.OnReload(err)
			}
		}
	}
}

func relevant(op fsnotify.Op) bool {
	return op.Has(fsnotify.Write) || op.Has(fsnotify.Create) || op.Has(fsnotify.Remove) || op.Has(fsnotify.Rename)
}
