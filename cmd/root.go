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

// Package cmd implements the marksync CLI commands.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cloudygreybeard/marksync/internal/logger"
	"github.com/cloudygreybeard/marksync/pkg/config"
	"github.com/cloudygreybeard/marksync/pkg/service"
	"github.com/cloudygreybeard/marksync/pkg/store"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command.
var rootCmd = &cobra.Command{
	Use:   "marksync",
	Short: "Track browser bookmarks as they change",
	Long: `marksync discovers installed browsers, reads their bookmark stores,
and tracks incremental changes across syncs.

Supported browsers:
  - Chrome, Edge, Chromium, Brave (all platforms)
  - Safari (macOS only)

Examples:
  marksync detect                # List installed browsers and permissions
  marksync folders chrome        # List Chrome's bookmark folders
  marksync sync chrome           # Sync Chrome, report changes
  marksync sync --all            # Sync every enabled browser
  marksync watch                 # Watch bookmark files and sync live
  marksync config set chrome --enabled`,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default: ./marksync.yaml or ~/.marksync/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output to stderr")

	rootCmd.Version = Version
	rootCmd.SetVersionTemplate(fmt.Sprintf("marksync %s (commit: %s, built: %s)\n", Version, Commit, Date))
}

func loadConfig() (config.Config, error) {
	path := cfgFile
	if path == "" {
		path = config.LocalPath()
	}
	if path == "" {
		path = config.DefaultPath()
	}

	cfg, err := config.Load(path)
	if err != nil && !os.IsNotExist(err) {
		return cfg, err
	}

	return cfg, nil
}

// newService assembles the service from config. The returned cleanup closes
// the store and flushes logs.
func newService() (*service.Service, func(), error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}

	level := cfg.Log.Level
	if verbose {
		level = "debug"
	}
	log := logger.New(level, cfg.Log.Pretty)

	kv, err := store.OpenSQLite(cfg.Store.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening state store: %w", err)
	}

	cleanup := func() {
		kv.Close()
		_ = log.Sync()
	}
	return service.New(kv, log), cleanup, nil
}
