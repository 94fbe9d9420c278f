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

package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cloudygreybeard/marksync/pkg/browser"
	"github.com/cloudygreybeard/marksync/pkg/store"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage per-browser sync configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the configured browsers",
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set <browser>",
	Short: "Enable, disable, or restrict a browser's sync",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigSet,
}

func init() {
	configSetCmd.Flags().Bool("enabled", true, "enable syncing for this browser")
	configSetCmd.Flags().StringSlice("folders", nil, "folder IDs to restrict sync to (empty = all)")
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	svc, cleanup, err := newService()
	if err != nil {
		return err
	}
	defer cleanup()

	configs, err := svc.Configs()
	if err != nil {
		return err
	}
	if len(configs) == 0 {
		fmt.Println("No browsers configured.")
		return nil
	}

	for _, cfg := range configs {
		state := "disabled"
		if cfg.Enabled {
			state = "enabled"
		}
		scope := "all folders"
		if len(cfg.SelectedFolderIDs) > 0 {
			scope = "folders: " + strings.Join(cfg.SelectedFolderIDs, ", ")
		}
		last := "never synced"
		if cfg.LastSyncAt != nil {
			last = "last sync " + cfg.LastSyncAt.Format("2006-01-02 15:04:05")
		}
		fmt.Printf("%s: %s, %s, %s\n", cfg.BrowserType, state, scope, last)
	}
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	t, ok := browser.ByName(args[0])
	if !ok {
		return fmt.Errorf("unknown browser: %s", args[0])
	}

	svc, cleanup, err := newService()
	if err != nil {
		return err
	}
	defer cleanup()

	enabled, _ := cmd.Flags().GetBool("enabled")
	folders, _ := cmd.Flags().GetStringSlice("folders")

	// Preserve lastSyncAt across config edits.
	cfg, exists, err := svc.Config(t)
	if err != nil {
		return err
	}
	if !exists {
		cfg = store.SyncConfig{BrowserType: string(t)}
	}
	cfg.Enabled = enabled
	cfg.SelectedFolderIDs = folders

	if err := svc.SaveConfig(cfg); err != nil {
		return err
	}
	fmt.Printf("saved config for %s\n", t)
	return nil
}
