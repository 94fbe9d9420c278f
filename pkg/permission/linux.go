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

package permission

import (
	"fmt"
	"os"

	"github.com/cloudygreybeard/marksync/internal/logger"
)

// linuxResolver implements the Linux strategy. Access failures are only
// meaningful inside a Flatpak or Snap sandbox; outside one they are reported
// as Unknown rather than alarming the user.
type linuxResolver struct {
	log logger.Logger

	// flatpakMarker and getenv are injection points for tests.
	flatpakMarker string
	getenv        func(string) string
}

func newLinuxResolver(log logger.Logger) *linuxResolver {
	return &linuxResolver{
		log:           log,
		flatpakMarker: "/.flatpak-info",
		getenv:        os.Getenv,
	}
}

func (r *linuxResolver) Check(browser, path string) Status {
	if err := readable(path); err != nil {
		if r.sandboxed() {
			r.log.Debug("bookmark file blocked by sandbox",
				logger.String("browser", browser), logger.Error(err))
			return Denied
		}
		return Unknown
	}
	return Granted
}

func (r *linuxResolver) Request(browser, path string) Remediation {
	if !r.sandboxed() {
		return Remediation{RequiresManualGrant: false}
	}

	var grant string
	if r.inFlatpak() {
		grant = "flatpak override --user --filesystem=home com.cloudygreybeard.marksync"
	} else {
		grant = "sudo snap connect marksync:home"
	}

	return Remediation{
		RequiresManualGrant: true,
		Instructions: []string{
			fmt.Sprintf("1. Grant home directory access: %s", grant),
			"2. Alternatively grant only the browser config directory (e.g. --filesystem=~/.config)",
			"3. Restart marksync for the grant to take effect",
		},
	}
}

func (r *linuxResolver) inFlatpak() bool {
	_, err := os.Stat(r.flatpakMarker)
	return err == nil
}

func (r *linuxResolver) sandboxed() bool {
	return r.inFlatpak() || r.getenv("SNAP") != ""
}
