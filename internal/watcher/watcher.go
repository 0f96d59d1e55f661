// Package watcher monitors the layout document for changes and hands its new
// contents to the TUI. The file's directory is watched rather than the file
// itself because editors usually save by writing a temporary file and
// renaming it over the original, which drops a watch placed on the file.
//
// Events are debounced, and a change is only reported when the content hash
// differs from the last reported one, so touching the file or saving it
// unchanged does not trigger a reload.
package watcher

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/zeebo/xxh3"
)

// Event is sent when the watched file's content changed.
type Event struct {
	Path string
	Data []byte
	Hash uint64
}

// Hash returns the content hash used to detect changes.
func Hash(data []byte) uint64 { return xxh3.Hash(data) }

// Watch monitors the file at path and sends an Event on the returned channel
// each time its content changes. Rapid bursts are coalesced via the debounce
// window.
//
// Call the returned stop function to tear down the watcher.
func Watch(path string, debounce time.Duration, logger *slog.Logger) (<-chan Event, func(), error) {
	if logger == nil {
		logger = slog.Default()
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, nil, fmt.Errorf("resolve %s: %w", path, err)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		_ = w.Close()
		return nil, nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}

	// The initial content is the baseline; only later changes are reported.
	var last uint64
	if data, err := os.ReadFile(abs); err == nil {
		last = Hash(data)
	}

	ch := make(chan Event, 1)
	done := make(chan struct{})

	// jitterRange spreads the reloads of several instances watching the
	// same file.
	jitterRange := debounce / 2

	go func() {
		defer close(ch)
		var timer *time.Timer

		for {
			select {
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != abs || shouldIgnore(ev.Name) {
					continue
				}
				d := debounce
				if jitterRange > 0 {
					d += time.Duration(rand.Int64N(int64(jitterRange)))
				}
				if timer == nil {
					timer = time.NewTimer(d)
				} else {
					timer.Reset(d)
				}
			case <-timerChan(timer):
				timer = nil
				data, err := os.ReadFile(abs)
				if err != nil {
					if !errors.Is(err, os.ErrNotExist) {
						logger.Warn("read watched file", "path", abs, "err", err)
					}
					continue
				}
				h := Hash(data)
				if h == last {
					continue
				}
				last = h
				select {
				case ch <- Event{Path: abs, Data: data, Hash: h}:
				case <-done:
					return
				}
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				logger.Warn("watcher error", "err", err)
			case <-done:
				return
			}
		}
	}()

	stop := func() {
		close(done)
		_ = w.Close()
	}

	return ch, stop, nil
}

// timerChan returns the timer's channel, or a nil channel if timer is nil.
func timerChan(t *time.Timer) <-chan time.Time {
	if t == nil {
		return nil
	}
	return t.C
}

// shouldIgnore returns true for editor artefacts that share the file's name.
func shouldIgnore(path string) bool {
	base := filepath.Base(path)
	return strings.HasSuffix(base, ".swp") || strings.HasSuffix(base, ".swo") ||
		strings.HasSuffix(base, "~") || strings.HasPrefix(base, ".#")
}
