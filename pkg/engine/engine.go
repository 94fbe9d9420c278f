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

// Package engine implements the bookmark synchronization engine.
//
// One sync pass over one browser runs a fixed pipeline: wait for the
// bookmark file to stop changing, parse it, backfill Safari first-seen
// dates, optionally filter to selected folders, diff content hashes against
// the previously persisted state, and persist the fresh state. Failures at
// any step are converted into a failed SyncResult; the engine never lets an
// error escape to its caller.
package engine

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/cloudygreybeard/marksync/internal/logger"
	"github.com/cloudygreybeard/marksync/pkg/bookmark"
	"github.com/cloudygreybeard/marksync/pkg/browser"
	"github.com/cloudygreybeard/marksync/pkg/parser"
	"github.com/cloudygreybeard/marksync/pkg/store"
)

// Stability-wait tuning. A file modified within StabilityWindow of the read
// is assumed to still be mid-write by the owning browser; the engine polls
// until a quiet period or the cap elapses. Best effort, not a lock.
const (
	StabilityWindow  = 500 * time.Millisecond
	StabilityPoll    = 100 * time.Millisecond
	StabilityTimeout = 2 * time.Second
)

// PathResolver resolves a browser to its bookmark file path, "" when the
// browser has no file on disk. *browser.Detector satisfies it.
type PathResolver interface {
	FilePath(t browser.Type) string
}

// Engine orchestrates sync passes and owns no cross-invocation state beyond
// the persistent store.
type Engine struct {
	paths PathResolver
	state *store.State
	log   logger.Logger

	// now is injectable for tests.
	now func() time.Time
}

// NewEngine creates a sync engine over the given path resolver and state.
func NewEngine(paths PathResolver, state *store.State, log logger.Logger) *Engine {
	if log == nil {
		log = logger.Nop()
	}
	return &Engine{
		paths: paths,
		state: state,
		log:   log,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// Tree parses the browser's current bookmark file into the canonical tree,
// waiting out a freshly written file first. Safari trees get their
// first-seen dates backfilled, since the plist carries no creation dates.
func (e *Engine) Tree(ctx context.Context, t browser.Type) (*bookmark.Bookmark, error) {
	path := e.paths.FilePath(t)
	if path == "" {
		return nil, fmt.Errorf("no bookmark file found for %s", t)
	}

	e.waitForStability(ctx, path)

	tree, err := parser.Parse(t, path)
	if err != nil {
		return nil, fmt.Errorf("parsing bookmarks: %w", err)
	}

	if t == browser.Safari {
		if err := e.backfillFirstSeen(tree); err != nil {
			return nil, fmt.Errorf("backfilling first-seen dates: %w", err)
		}
	}

	return tree, nil
}

// Sync runs one pass for one browser. A non-empty selectedFolderIDs
// restricts the pass to those folders and their subtrees.
func (e *Engine) Sync(ctx context.Context, t browser.Type, selectedFolderIDs []string) bookmark.SyncResult {
	tree, err := e.Tree(ctx, t)
	if err != nil {
		return e.failed(t, err)
	}

	if len(selectedFolderIDs) > 0 {
		tree = bookmark.FilterToSelected(tree, selectedFolderIDs)
		if tree == nil {
			// Nothing under the selected folders is a valid, empty outcome.
			return e.finish(t, nil, 0)
		}
	}

	changes, hashes := e.diff(t, tree)
	if err := e.state.SetHashes(string(t), hashes); err != nil {
		return e.failed(t, fmt.Errorf("persisting hashes: %w", err))
	}

	return e.finish(t, changes, bookmark.CountBookmarks(tree))
}

// waitForStability delays the read while the file looks freshly written.
func (e *Engine) waitForStability(ctx context.Context, path string) {
	deadline := time.Now().Add(StabilityTimeout)

	for time.Now().Before(deadline) {
		info, err := os.Stat(path)
		if err != nil {
			return
		}
		if time.Since(info.ModTime()) >= StabilityWindow {
			return
		}

		e.log.Debug("bookmark file recently modified, waiting", logger.String("path", path))
		select {
		case <-ctx.Done():
			return
		case <-time.After(StabilityPoll):
		}
	}
}

// backfillFirstSeen assigns DateAdded to every node from the first-seen
// store, recording "now" for nodes seen for the first time. Newly seen IDs
// are persisted in one batch; existing entries are never overwritten.
func (e *Engine) backfillFirstSeen(tree *bookmark.Bookmark) error {
	dates, err := e.state.FirstSeenDates()
	if err != nil {
		return err
	}

	// RFC 3339 storage drops sub-second precision; truncate up front so the
	// date handed out now matches the one read back on the next parse.
	now := e.now().Truncate(time.Second)
	discovered := make(map[string]string)

	var walk func(node *bookmark.Bookmark)
	walk = func(node *bookmark.Bookmark) {
		if raw, ok := dates[node.ID]; ok {
			if parsed, err := time.Parse(time.RFC3339, raw); err == nil {
				t := parsed
				node.DateAdded = &t
			}
		} else {
			t := now
			node.DateAdded = &t
			discovered[node.ID] = now.Format(time.RFC3339)
		}
		for _, child := range node.Children {
			walk(child)
		}
	}
	walk(tree)

	return e.state.RecordFirstSeen(discovered)
}

// diff compares the current snapshot's content hashes against the persisted
// map. Only url nodes are tracked; folders are structural.
func (e *Engine) diff(t browser.Type, tree *bookmark.Bookmark) ([]bookmark.Change, map[string]string) {
	previous, err := e.state.Hashes(string(t))
	if err != nil {
		e.log.Warn("loading previous hashes, treating all as new",
			logger.String("browser", string(t)), logger.Error(err))
		previous = map[string]string{}
	}

	var changes []bookmark.Change
	current := make(map[string]string)

	for _, node := range bookmark.AllBookmarks(tree) {
		hash := ContentHash(node.Name, node.URL)
		current[node.ID] = hash

		prev, known := previous[node.ID]
		switch {
		case !known:
			changes = append(changes, bookmark.Change{Type: bookmark.ChangeAdded, Bookmark: node})
		case prev != hash:
			changes = append(changes, bookmark.Change{Type: bookmark.ChangeModified, Bookmark: node})
		}
	}

	for id := range previous {
		if _, exists := current[id]; !exists {
			changes = append(changes, bookmark.Change{
				Type: bookmark.ChangeDeleted,
				Bookmark: &bookmark.Bookmark{
					ID:   id,
					Name: bookmark.DeletedName,
					Type: bookmark.TypeURL,
				},
			})
		}
	}

	return changes, current
}

func (e *Engine) finish(t browser.Type, changes []bookmark.Change, total int) bookmark.SyncResult {
	syncedAt := e.now()
	if err := e.state.TouchLastSync(string(t), syncedAt); err != nil {
		e.log.Warn("recording last sync time", logger.String("browser", string(t)), logger.Error(err))
	}

	e.log.Info("sync completed",
		logger.String("browser", string(t)),
		logger.Int("bookmarks", total),
		logger.Int("changes", len(changes)))

	return bookmark.SyncResult{
		Success:        true,
		Changes:        changes,
		TotalBookmarks: total,
		SyncedAt:       syncedAt,
	}
}

func (e *Engine) failed(t browser.Type, err error) bookmark.SyncResult {
	e.log.Warn("sync failed", logger.String("browser", string(t)), logger.Error(err))
	return bookmark.SyncResult{
		Success:  false,
		SyncedAt: e.now(),
		Error:    err.Error(),
	}
}
