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

	"github.com/cloudygreybeard/marksync/pkg/bookmark"
	"github.com/cloudygreybeard/marksync/pkg/browser"
)

var foldersCmd = &cobra.Command{
	Use:   "folders <browser>",
	Short: "List a browser's bookmark folders",
	Args:  cobra.ExactArgs(1),
	RunE:  runFolders,
}

func init() {
	foldersCmd.Flags().Bool("tree", false, "print the hierarchical folder tree with rolled-up counts")
	rootCmd.AddCommand(foldersCmd)
}

func runFolders(cmd *cobra.Command, args []string) error {
	t, ok := browser.ByName(args[0])
	if !ok {
		return fmt.Errorf("unknown browser: %s", args[0])
	}

	svc, cleanup, err := newService()
	if err != nil {
		return err
	}
	defer cleanup()

	if asTree, _ := cmd.Flags().GetBool("tree"); asTree {
		nodes, err := svc.FolderTree(cmd.Context(), t)
		if err != nil {
			return err
		}
		printFolderTree(nodes, 0)
		return nil
	}

	folders, err := svc.Folders(cmd.Context(), t)
	if err != nil {
		return err
	}
	for _, f := range folders {
		fmt.Printf("%s  [%s]  %d bookmarks, %d subfolders\n", f.Path, f.ID, f.BookmarkCount, f.SubfolderCount)
	}
	return nil
}

func printFolderTree(nodes []*bookmark.FolderTreeNode, depth int) {
	indent := strings.Repeat("  ", depth)
	for _, n := range nodes {
		fmt.Printf("%s%s (%d direct, %d total)\n", indent, n.Name, n.BookmarkCount, n.TotalBookmarkCount)
		printFolderTree(n.Children, depth+1)
	}
}
