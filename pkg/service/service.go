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

// Package service exposes the bookmark sync engine as one operation set.
//
// Service is the in-process boundary a hosting layer (CLI, UI bridge)
// programs against: detection, tree and folder queries, permission checks,
// sync config management, manual and bulk syncs, and the live file watcher
// with change subscriptions. All state lives on the instance; there are no
// package-level singletons.
package service

import (
	"context"
	"sync"

	"github.com/cloudygreybeard/marksync/internal/logger"
	"github.com/cloudygreybeard/marksync/pkg/bookmark"
	"github.com/cloudygreybeard/marksync/pkg/browser"
	"github.com/cloudygreybeard/marksync/pkg/engine"
	"github.com/cloudygreybeard/marksync/pkg/permission"
	"github.com/cloudygreybeard/marksync/pkg/store"
	"github.com/cloudygreybeard/marksync/pkg/watcher"
)

// Listener receives change sets from watcher-triggered syncs.
type Listener = watcher.Listener

// Service owns the detector, engine, watcher, and persistent state.
type Service struct {
	detector *browser.Detector
	resolver permission.Resolver
	state    *store.State
	engine   *engine.Engine
	watcher  *watcher.Watcher
	log      logger.Logger

	mu        sync.Mutex
	locks     map[browser.Type]*sync.Mutex
	listeners []Listener
}

// New assembles a service over the given backing store, using the running
// OS's permission strategy and home directory.
func New(kv store.Store, log logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	resolver := permission.Default(log)
	detector := browser.NewDetector(resolver, log)
	return NewWith(detector, resolver, kv, log)
}

// NewWith assembles a service from explicit parts. Tests use it to inject a
// detector rooted at a fixture home directory.
func NewWith(detector *browser.Detector, resolver permission.Resolver, kv store.Store, log logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	state := store.NewState(kv)
	eng := engine.NewEngine(detector, state, log)
	s := &Service{
		detector: detector,
		resolver: resolver,
		state:    state,
		engine:   eng,
		watcher:  watcher.New(detector, eng, state, log),
		log:      log,
		locks:    make(map[browser.Type]*sync.Mutex),
	}
	s.watcher.Subscribe(s.notify)
	return s
}

// DetectBrowsers reports every installed browser with an existing bookmark
// file, classified by accessibility.
func (s *Service) DetectBrowsers() []browser.Detected {
	return s.detector.Detect()
}

// Tree returns the browser's full canonical bookmark tree.
func (s *Service) Tree(ctx context.Context, t browser.Type) (*bookmark.Bookmark, error) {
	return s.engine.Tree(ctx, t)
}

// Folders returns the flat folder list with breadcrumb paths.
func (s *Service) Folders(ctx context.Context, t browser.Type) ([]bookmark.Folder, error) {
	tree, err := s.engine.Tree(ctx, t)
	if err != nil {
		return nil, err
	}
	return bookmark.ExtractFolders(tree), nil
}

// FolderTree returns the hierarchical folder projection with rolled-up
// bookmark counts.
func (s *Service) FolderTree(ctx context.Context, t browser.Type) ([]*bookmark.FolderTreeNode, error) {
	tree, err := s.engine.Tree(ctx, t)
	if err != nil {
		return nil, err
	}
	return bookmark.FolderTree(tree), nil
}

// CheckPermission re-classifies access to the browser's bookmark file.
func (s *Service) CheckPermission(t browser.Type) permission.Status {
	path := s.detector.FilePath(t)
	if path == "" {
		return permission.Unknown
	}
	return s.resolver.Check(string(t), path)
}

// RequestPermission triggers the OS remediation flow for the browser and
// returns user-facing instructions.
func (s *Service) RequestPermission(t browser.Type) permission.Remediation {
	path := s.detector.FilePath(t)
	if path == "" {
		return permission.Remediation{RequiresManualGrant: false}
	}
	return s.resolver.Request(string(t), path)
}

// SaveConfig upserts a browser's sync configuration.
func (s *Service) SaveConfig(cfg store.SyncConfig) error {
	return s.state.SaveConfig(cfg)
}

// Config returns one browser's sync configuration.
func (s *Service) Config(t browser.Type) (store.SyncConfig, bool, error) {
	return s.state.Config(string(t))
}

// Configs returns every persisted sync configuration.
func (s *Service) Configs() ([]store.SyncConfig, error) {
	return s.state.Configs()
}

// Sync runs one sync pass for one browser. Concurrent calls for the same
// browser are serialized so two passes cannot clobber each other's hash
// state; different browsers sync independently.
func (s *Service) Sync(ctx context.Context, t browser.Type, selectedFolderIDs []string) bookmark.SyncResult {
	lock := s.lockFor(t)
	lock.Lock()
	defer lock.Unlock()
	return s.engine.Sync(ctx, t, selectedFolderIDs)
}

// SyncAll runs every enabled configured browser sequentially. One browser's
// failure never aborts its siblings.
func (s *Service) SyncAll(ctx context.Context) map[browser.Type]bookmark.SyncResult {
	results := make(map[browser.Type]bookmark.SyncResult)

	configs, err := s.state.Configs()
	if err != nil {
		s.log.Error("loading sync configs", logger.Error(err))
		return results
	}

	for _, cfg := range configs {
		if !cfg.Enabled {
			continue
		}
		t, ok := browser.ByName(cfg.BrowserType)
		if !ok {
			s.log.Warn("skipping unknown browser in config", logger.String("browser", cfg.BrowserType))
			continue
		}
		results[t] = s.Sync(ctx, t, cfg.SelectedFolderIDs)
	}

	return results
}

// Subscribe registers a listener for watcher-detected changes. Listeners
// persist across watcher restarts.
func (s *Service) Subscribe(fn Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// StartWatcher begins watching accessible bookmark files for live changes.
func (s *Service) StartWatcher() error {
	return s.watcher.Start()
}

// StopWatcher stops the watcher and cancels pending debounced syncs.
func (s *Service) StopWatcher() {
	s.watcher.Stop()
}

func (s *Service) notify(t browser.Type, changes []bookmark.Change) {
	s.mu.Lock()
	listeners := append([]Listener{}, s.listeners...)
	s.mu.Unlock()
	for _, fn := range listeners {
		fn(t, changes)
	}
}

func (s *Service) lockFor(t browser.Type) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.locks[t]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[t] = lock
	}
	return lock
}
