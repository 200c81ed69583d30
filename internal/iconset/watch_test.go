// © 2025 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package iconset

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
)

func TestWatch(t *testing.T) {
	srcDir := t.TempDir()
	src := writeSource(t, srcDir, 64)
	dst := t.TempDir()

	ready := make(chan struct{})
	watchReadyHook = func() { close(ready) }
	t.Cleanup(func() { watchReadyHook = nil })

	var wg sync.WaitGroup
	errCh := make(chan error, 1)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := Watch(ctx, &Config{Src: src, Dst: dst}); err != nil {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		t.Fatalf("Watch failed during startup: %v", err)
	case <-ready:
	case <-time.After(30 * time.Second):
		t.Fatal("timed out waiting for Watch to start")
	}

	// Initial generation happens before watching starts.
	checkIconset(t, dst)

	// Remove one output and touch the source: the output should come back.
	victim := filepath.Join(dst, Sizes[0].Name)
	if err := os.Remove(victim); err != nil {
		t.Fatal(err)
	}
	b, err := os.ReadFile(src)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(src, b, 0o644); err != nil {
		t.Fatal(err)
	}

	// The victim may show up before it is fully written.
	deadline := time.Now().Add(30 * time.Second)
	for verifyIconset(dst) != nil {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for regeneration: %v", verifyIconset(dst))
		}
		time.Sleep(50 * time.Millisecond)
	}

	cancel()
	wg.Wait()
	select {
	case err := <-errCh:
		t.Fatalf("Watch failed: %v", err)
	default:
	}
}

func TestWatchNoSource(t *testing.T) {
	if err := Watch(context.Background(), &Config{}); !errors.Is(err, errNoSource) {
		t.Fatalf("want errNoSource, got %v", err)
	}
}

func TestDebouncer(t *testing.T) {
	var calls atomic.Int32
	done := make(chan struct{}, 10)
	d := newDebouncer(50*time.Millisecond, func() {
		calls.Add(1)
		done <- struct{}{}
	})

	for range 5 {
		d.Do()
	}

	select {
	case <-done:
	case <-time.After(10 * time.Second):
		t.Fatal("debounced function was not called")
	}
	// Give a stray second call a chance to show up.
	time.Sleep(200 * time.Millisecond)
	if got := calls.Load(); got != 1 {
		t.Fatalf("want 1 call, got %d", got)
	}

	d.Do()
	d.Stop()
	time.Sleep(200 * time.Millisecond)
	if got := calls.Load(); got != 1 {
		t.Fatalf("Stop: want 1 call, got %d", got)
	}
}

func TestShouldRegenerate(t *testing.T) {
	cases := map[string]struct {
		path string
		op   fsnotify.Op
		want bool
	}{
		"macOS garbage":   {".DS_Store", fsnotify.Create, false},
		"vim temp file":   {"icons/4913", fsnotify.Write, false},
		"vim backup file": {"icons/icon.png~", fsnotify.Create, false},
		"file creation":   {"icons/icon.png", fsnotify.Create, true},
		"file write":      {"icons/icon.png", fsnotify.Write, true},
		"ignore removal":  {"icons/icon.png", fsnotify.Remove, false},
		"ignore chmod":    {"icons/icon.png", fsnotify.Chmod, false},
		"ignore rename":   {"icons/icon.png", fsnotify.Rename, false},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			got := shouldRegenerate(tc.path, tc.op)
			if got != tc.want {
				t.Fatalf("shouldRegenerate(%q, %+v): want %v, got %v", tc.path, tc.op, tc.want, got)
			}
		})
	}
}
