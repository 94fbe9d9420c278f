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

// Package store provides the persistent key/value contract the sync engine
// depends on, plus typed accessors for its three namespaces: per-browser
// sync configs, Safari first-seen dates, and per-browser content hashes.
//
// The engine has no opinion on backing storage beyond the Store interface;
// this package ships a SQLite backend (the default) and an in-memory one.
package store

import (
	"encoding/json"
	"fmt"
	"time"
)

// Store is the minimal durable key/value contract.
type Store interface {
	// Get returns the value for key and whether it exists.
	Get(key string) ([]byte, bool, error)

	// Set writes the value for key, replacing any previous value whole.
	Set(key string, value []byte) error

	// Delete removes the key. Deleting a missing key is not an error.
	Delete(key string) error
}

// Namespace keys. Hash maps are stored one key per browser so each sync
// replaces exactly one browser's map.
const (
	keyConfigs      = "sync_configs"
	keyFirstSeen    = "safari_first_seen"
	keyHashesPrefix = "bookmark_hashes/"
)

// SyncConfig is the persisted per-browser sync configuration. One record
// exists per configured browser, upserted by browser type.
type SyncConfig struct {
	BrowserType       string     `json:"browserType"`
	SelectedFolderIDs []string   `json:"selectedFolderIds"`
	Enabled           bool       `json:"enabled"`
	LastSyncAt        *time.Time `json:"lastSyncAt,omitempty"`
}

// State wraps a Store with the engine's typed namespaces.
type State struct {
	kv Store
}

// NewState creates typed accessors over the given backing store.
func NewState(kv Store) *State {
	return &State{kv: kv}
}

// Configs returns all persisted sync configs.
func (s *State) Configs() ([]SyncConfig, error) {
	data, ok, err := s.kv.Get(keyConfigs)
	if err != nil {
		return nil, fmt.Errorf("loading sync configs: %w", err)
	}
	if !ok {
		return nil, nil
	}
	var configs []SyncConfig
	if err := json.Unmarshal(data, &configs); err != nil {
		return nil, fmt.Errorf("decoding sync configs: %w", err)
	}
	return configs, nil
}

// Config returns the sync config for one browser.
func (s *State) Config(browser string) (SyncConfig, bool, error) {
	configs, err := s.Configs()
	if err != nil {
		return SyncConfig{}, false, err
	}
	for _, cfg := range configs {
		if cfg.BrowserType == browser {
			return cfg, true, nil
		}
	}
	return SyncConfig{}, false, nil
}

// SaveConfig upserts a sync config by browser type.
func (s *State) SaveConfig(cfg SyncConfig) error {
	configs, err := s.Configs()
	if err != nil {
		return err
	}

	replaced := false
	for i := range configs {
		if configs[i].BrowserType == cfg.BrowserType {
			configs[i] = cfg
			replaced = true
			break
		}
	}
	if !replaced {
		configs = append(configs, cfg)
	}

	data, err := json.Marshal(configs)
	if err != nil {
		return fmt.Errorf("encoding sync configs: %w", err)
	}
	return s.kv.Set(keyConfigs, data)
}

// TouchLastSync records a sync completion time on the browser's config,
// creating an enabled default config if none exists yet.
func (s *State) TouchLastSync(browser string, at time.Time) error {
	cfg, ok, err := s.Config(browser)
	if err != nil {
		return err
	}
	if !ok {
		cfg = SyncConfig{BrowserType: browser, Enabled: true}
	}
	cfg.LastSyncAt = &at
	return s.SaveConfig(cfg)
}

// Hashes returns the persisted content-hash map for one browser.
func (s *State) Hashes(browser string) (map[string]string, error) {
	data, ok, err := s.kv.Get(keyHashesPrefix + browser)
	if err != nil {
		return nil, fmt.Errorf("loading hashes for %s: %w", browser, err)
	}
	if !ok {
		return map[string]string{}, nil
	}
	hashes := make(map[string]string)
	if err := json.Unmarshal(data, &hashes); err != nil {
		return nil, fmt.Errorf("decoding hashes for %s: %w", browser, err)
	}
	return hashes, nil
}

// SetHashes replaces the browser's whole hash map. Entries absent from the
// new map are intentionally dropped; that is how deletions age out.
func (s *State) SetHashes(browser string, hashes map[string]string) error {
	data, err := json.Marshal(hashes)
	if err != nil {
		return fmt.Errorf("encoding hashes for %s: %w", browser, err)
	}
	return s.kv.Set(keyHashesPrefix+browser, data)
}

// FirstSeenDates returns the Safari first-discovery date map
// (bookmark ID to RFC 3339 date).
func (s *State) FirstSeenDates() (map[string]string, error) {
	data, ok, err := s.kv.Get(keyFirstSeen)
	if err != nil {
		return nil, fmt.Errorf("loading first-seen dates: %w", err)
	}
	if !ok {
		return map[string]string{}, nil
	}
	dates := make(map[string]string)
	if err := json.Unmarshal(data, &dates); err != nil {
		return nil, fmt.Errorf("decoding first-seen dates: %w", err)
	}
	return dates, nil
}

// RecordFirstSeen merges newly discovered dates into the first-seen map.
// First write wins: an ID already present is never overwritten.
func (s *State) RecordFirstSeen(discovered map[string]string) error {
	if len(discovered) == 0 {
		return nil
	}

	dates, err := s.FirstSeenDates()
	if err != nil {
		return err
	}
	for id, date := range discovered {
		if _, exists := dates[id]; !exists {
			dates[id] = date
		}
	}

	data, err := json.Marshal(dates)
	if err != nil {
		return fmt.Errorf("encoding first-seen dates: %w", err)
	}
	return s.kv.Set(keyFirstSeen, data)
}
