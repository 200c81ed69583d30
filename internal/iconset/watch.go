// © 2025 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package iconset

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"go.astrophena.name/base/logger"

	"github.com/fsnotify/fsnotify"
)

var watchReadyHook func() // used in tests, called when Watch started watching

// debouncer delays execution of a function until a specified duration has
// passed without any new events.
type debouncer struct {
	d  time.Duration
	mu sync.Mutex
	f  func()
	t  *time.Timer
}

func newDebouncer(d time.Duration, f func()) *debouncer {
	return &debouncer{
		d: d,
		f: f,
	}
}

// Do schedules a function to be executed.
func (d *debouncer) Do() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.t != nil {
		d.t.Stop()
	}

	d.t = time.AfterFunc(d.d, d.f)
}

// Stop cancels the pending execution, if any.
func (d *debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.t != nil {
		d.t.Stop()
	}
}

// Watch generates an iconset and then regenerates it each time the source
// image changes, until ctx is canceled.
func Watch(ctx context.Context, c *Config) error {
	if c.Src == "" {
		return errNoSource
	}
	c.setDefaults()

	var (
		mu      sync.Mutex
		stopped bool
	)
	generate := func() {
		mu.Lock()
		defer mu.Unlock()
		if stopped {
			return
		}
		if err := Generate(ctx, c); err != nil {
			logger.Error(ctx, "failed to generate iconset", slog.Any("err", err))
		}
	}

	logger.Info(ctx, "performing an initial generation")
	generate()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	// Watch the directory, not the file: editors often save by writing a new
	// file and renaming it over the old one, which drops a watch on the file.
	src := filepath.Clean(c.Src)
	if err := watcher.Add(filepath.Dir(src)); err != nil {
		return err
	}

	// Image editors tend to write in several steps.
	debouncer := newDebouncer(250*time.Millisecond, func() {
		logger.Info(ctx, "triggering generation")
		generate()
	})
	defer func() {
		debouncer.Stop()
		// Wait for a generation that is already running.
		mu.Lock()
		stopped = true
		mu.Unlock()
	}()

	logger.Info(ctx, "started watching for changes", slog.String("src", src))
	if watchReadyHook != nil {
		watchReadyHook()
	}

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != src || !shouldRegenerate(event.Name, event.Op) {
				continue
			}
			logger.Info(ctx, "detected change, scheduling generation",
				slog.String("name", event.Name),
				slog.Any("op", event.Op),
			)
			debouncer.Do()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error(ctx, "watcher error", slog.Any("err", err))
		case <-ctx.Done():
			logger.Info(ctx, "stopped watching")
			return nil
		}
	}
}

// Based on
// https://github.com/brandur/modulir/blob/1ff912fdc45a79cb4d8d9f199d213ae9c3598cbd/watch.go#L201.
func shouldRegenerate(path string, op fsnotify.Op) bool {
	base := filepath.Base(path)

	// Mac OS' worst mistake.
	if base == ".DS_Store" {
		return false
	}

	// Vim creates this temporary file to see whether it can write into a target
	// directory.
	if base == "4913" {
		return false
	}

	// Backups.
	if strings.HasSuffix(base, "~") {
		return false
	}

	return op&(fsnotify.Create|fsnotify.Write) != 0
}
