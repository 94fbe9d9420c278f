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
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/cloudygreybeard/marksync/pkg/bookmark"
	"github.com/cloudygreybeard/marksync/pkg/browser"
)

var syncCmd = &cobra.Command{
	Use:   "sync [browser]",
	Short: "Sync one browser's bookmarks, or all enabled browsers",
	Long: `Reads the browser's bookmark file, diffs it against the previously
observed state, and reports added, modified, and deleted bookmarks.

With no browser argument, --all syncs every browser enabled via
'marksync config set'.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSyncCmd,
}

func init() {
	syncCmd.Flags().Bool("all", false, "sync all enabled browsers sequentially")
	syncCmd.Flags().StringSlice("folder", nil, "restrict the sync to these folder IDs")
	syncCmd.Flags().String("format", "text", "output format: text, json, or yaml")
	rootCmd.AddCommand(syncCmd)
}

func runSyncCmd(cmd *cobra.Command, args []string) error {
	all, _ := cmd.Flags().GetBool("all")
	if len(args) == 0 && !all {
		return fmt.Errorf("specify a browser or pass --all")
	}

	svc, cleanup, err := newService()
	if err != nil {
		return err
	}
	defer cleanup()

	format, _ := cmd.Flags().GetString("format")

	if all {
		results := svc.SyncAll(cmd.Context())
		if len(results) == 0 {
			fmt.Fprintln(os.Stderr, "No enabled browsers configured; run 'marksync config set <browser> --enabled' first.")
			return nil
		}
		for t, result := range results {
			if err := printResult(format, string(t), result); err != nil {
				return err
			}
		}
		return nil
	}

	t, ok := browser.ByName(args[0])
	if !ok {
		return fmt.Errorf("unknown browser: %s", args[0])
	}
	folderIDs, _ := cmd.Flags().GetStringSlice("folder")

	result := svc.Sync(cmd.Context(), t, folderIDs)
	return printResult(format, string(t), result)
}

func printResult(format, name string, result bookmark.SyncResult) error {
	switch format {
	case "json":
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
	case "yaml":
		data, err := yaml.Marshal(result)
		if err != nil {
			return err
		}
		fmt.Print(string(data))
	default:
		if !result.Success {
			fmt.Printf("%s: sync failed: %s\n", name, result.Error)
			return nil
		}
		fmt.Printf("%s: %d bookmarks, %d changes\n", name, result.TotalBookmarks, len(result.Changes))
		for _, c := range result.Changes {
			switch c.Type {
			case bookmark.ChangeDeleted:
				fmt.Printf("  - %s (%s)\n", c.Bookmark.ID, c.Type)
			default:
				fmt.Printf("  - %s %q %s (%s)\n", c.Bookmark.ID, c.Bookmark.Name, c.Bookmark.URL, c.Type)
			}
		}
	}
	return nil
}
