// Copyright 2026 cloudygreybeard
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package watcher watches browser bookmark files and triggers syncs.
//
// Raw filesystem events are debounced per browser: each event resets that
// browser's one-second timer, so a burst of writes collapses into a single
// sync. Successful syncs with a non-empty change set are forwarded to the
// subscribed listeners. Delivery is eventually consistent by design; there
// is no sub-second guarantee.
package watcher

import (
	"context"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/cloudygreybeard/marksync/internal/logger"
	"github.com/cloudygreybeard/marksync/pkg/bookmark"
	"github.com/cloudygreybeard/marksync/pkg/browser"
	"github.com/cloudygreybeard/marksync/pkg/engine"
	"github.com/cloudygreybeard/marksync/pkg/store"
)

// DefaultDebounce is the per-browser quiet window before a sync fires.
const DefaultDebounce = time.Second

// Listener receives the change set of a successful, non-empty sync.
type Listener func(t browser.Type, changes []bookmark.Change)

// Detector is the subset of browser.Detector the watcher needs.
type Detector interface {
	Detect() []browser.Detected
}

// Watcher owns the underlying fsnotify subscription and the per-browser
// debounce timers. Construct with New, then Start/Stop; the zero value is
// not usable.
type Watcher struct {
	detector Detector
	engine   *engine.Engine
	state    *store.State
	log      logger.Logger
	debounce time.Duration

	mu        sync.Mutex
	fsw       *fsnotify.Watcher
	timers    map[browser.Type]*time.Timer
	listeners []Listener
	running   bool
}

// New creates a watcher. The state is consulted at fire time for each
// browser's selected-folder restriction.
func New(detector Detector, eng *engine.Engine, state *store.State, log logger.Logger) *Watcher {
	if log == nil {
		log = logger.Nop()
	}
	return &Watcher{
		detector: detector,
		engine:   eng,
		state:    state,
		log:      log,
		debounce: DefaultDebounce,
		timers:   make(map[browser.Type]*time.Timer),
	}
}

// Subscribe registers a listener for detected changes. Listeners are invoked
// from the watcher's own goroutines and must not block for long.
func (w *Watcher) Subscribe(fn Listener) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.listeners = append(w.listeners, fn)
}

// Start subscribes to every currently accessible bookmark file. Starting
// with no accessible files is a logged no-op, not an error. Parent
// directories are watched rather than the files themselves because browsers
// replace bookmark files by atomic rename, which drops a file-level watch.
func (w *Watcher) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.running {
		return nil
	}

	var dirs []string
	seen := make(map[string]bool)
	accessible := 0
	for _, det := range w.detector.Detect() {
		if !det.Accessible {
			continue
		}
		accessible++
		dir := filepath.Dir(det.BookmarkFilePath)
		if !seen[dir] {
			seen[dir] = true
			dirs = append(dirs, dir)
		}
	}

	if accessible == 0 {
		w.log.Info("no accessible bookmark files, watcher not started")
		return nil
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	for _, dir := range dirs {
		if err := fsw.Add(dir); err != nil {
			w.log.Warn("cannot watch directory", logger.String("dir", dir), logger.Error(err))
		}
	}

	w.fsw = fsw
	w.running = true
	go w.loop(fsw)

	w.log.Info("watcher started", logger.Int("files", accessible))
	return nil
}

// Stop cancels all pending debounce timers and closes the filesystem
// watcher. Subscriptions survive a stop/start cycle; in-flight syncs run to
// completion.
func (w *Watcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.running {
		return
	}

	for t, timer := range w.timers {
		timer.Stop()
		delete(w.timers, t)
	}
	w.fsw.Close()
	w.fsw = nil
	w.running = false

	w.log.Info("watcher stopped")
}

func (w *Watcher) loop(fsw *fsnotify.Watcher) {
	for {
		select {
		case ev, ok := <-fsw.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if t, ok := MatchBrowser(ev.Name); ok {
				w.schedule(t)
			}
		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			w.log.Warn("watch error", logger.Error(err))
		}
	}
}

// schedule resets the browser's debounce timer; only that browser's timer is
// affected, so independent browsers sync independently.
func (w *Watcher) schedule(t browser.Type) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.running {
		return
	}
	if timer, ok := w.timers[t]; ok {
		timer.Reset(w.debounce)
		return
	}
	w.timers[t] = time.AfterFunc(w.debounce, func() { w.fire(t) })
}

func (w *Watcher) fire(t browser.Type) {
	w.mu.Lock()
	delete(w.timers, t)
	running := w.running
	listeners := append([]Listener{}, w.listeners...)
	w.mu.Unlock()

	if !running {
		return
	}

	var selected []string
	if cfg, ok, err := w.state.Config(string(t)); err == nil && ok {
		selected = cfg.SelectedFolderIDs
	}

	result := w.engine.Sync(context.Background(), t, selected)
	if !result.Success || len(result.Changes) == 0 {
		return
	}

	w.log.Info("bookmark changes detected",
		logger.String("browser", string(t)), logger.Int("changes", len(result.Changes)))
	for _, fn := range listeners {
		fn(t, result.Changes)
	}
}

// MatchBrowser maps a changed path back to a browser type by substring
// matching against the registry's known relative paths, with separators
// normalized first. Backslashes are normalized unconditionally so Windows
// paths match regardless of the host platform.
func MatchBrowser(path string) (browser.Type, bool) {
	norm := strings.ReplaceAll(path, `\`, "/")
	for _, t := range browser.All() {
		for _, rel := range browser.AllRelativePaths(t) {
			if strings.Contains(norm, rel) {
				return t, true
			}
		}
	}
	return "", false
}
