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

	"github.com/spf13/cobra"
)

var detectCmd = &cobra.Command{
	Use:   "detect",
	Short: "List installed browsers and their bookmark file accessibility",
	RunE:  runDetect,
}

func init() {
	detectCmd.Flags().Bool("request", false, "trigger the OS permission flow for denied browsers")
	rootCmd.AddCommand(detectCmd)
}

func runDetect(cmd *cobra.Command, args []string) error {
	svc, cleanup, err := newService()
	if err != nil {
		return err
	}
	defer cleanup()

	detected := svc.DetectBrowsers()
	if len(detected) == 0 {
		fmt.Println("No browsers with bookmark files found.")
		return nil
	}

	request, _ := cmd.Flags().GetBool("request")

	for _, d := range detected {
		access := "accessible"
		if !d.Accessible {
			access = "not accessible"
		}
		fmt.Printf("%s (%s, permission: %s)\n", d.DisplayName, access, d.PermissionStatus)
		fmt.Printf("  Path: %s\n", d.BookmarkFilePath)
		if d.Error != "" {
			fmt.Printf("  Note: %s\n", d.Error)
		}

		if request && !d.Accessible {
			rem := svc.RequestPermission(d.Type)
			if rem.RequiresManualGrant {
				fmt.Println("  To grant access:")
				for _, step := range rem.Instructions {
					fmt.Printf("    %s\n", step)
				}
			}
		}
		fmt.Println()
	}

	return nil
}
