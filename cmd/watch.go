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
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/cloudygreybeard/marksync/pkg/bookmark"
	"github.com/cloudygreybeard/marksync/pkg/browser"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch bookmark files and sync on change",
	Long: `Watches every accessible bookmark file and runs a sync whenever one
changes. Bursts of filesystem events are debounced per browser, so rapid
edits collapse into a single sync. Runs until interrupted.`,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	svc, cleanup, err := newService()
	if err != nil {
		return err
	}
	defer cleanup()

	svc.Subscribe(func(t browser.Type, changes []bookmark.Change) {
		fmt.Printf("%s: %d changes\n", t, len(changes))
		for _, c := range changes {
			if c.Type == bookmark.ChangeDeleted {
				fmt.Printf("  - %s (%s)\n", c.Bookmark.ID, c.Type)
				continue
			}
			fmt.Printf("  - %q %s (%s)\n", c.Bookmark.Name, c.Bookmark.URL, c.Type)
		}
	})

	if err := svc.StartWatcher(); err != nil {
		return fmt.Errorf("starting watcher: %w", err)
	}
	defer svc.StopWatcher()

	fmt.Fprintln(os.Stderr, "watching bookmark files (Ctrl-C to stop)")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	return nil
}
