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
	"errors"
	"io"
	"io/fs"
	"os"
	"os/exec"

	"github.com/cloudygreybeard/marksync/internal/logger"
)

// fullDiskAccessPane is the deep link into the Full Disk Access pane of the
// macOS privacy settings.
const fullDiskAccessPane = "x-apple.systempreferences:com.apple.preference.security?Privacy_AllFiles"

// darwinResolver implements the macOS strategy. Chromium-family bookmark
// files live under ~/Library/Application Support and need no special grant;
// Safari's plist is guarded by TCC and requires Full Disk Access.
type darwinResolver struct {
	log logger.Logger
}

func (r *darwinResolver) Check(browser, path string) Status {
	if browser != "safari" {
		return NotRequired
	}

	// Classify by actually opening and reading a few bytes. A stat-only
	// probe would pass under TCC and then fail at read time.
	status := func() Status {
		f, err := os.Open(path)
		if err != nil {
			if errors.Is(err, fs.ErrPermission) {
				return Denied
			}
			return Unknown
		}
		defer f.Close()

		buf := make([]byte, 8)
		if _, err := f.Read(buf); err != nil && err != io.EOF {
			if errors.Is(err, fs.ErrPermission) {
				return Denied
			}
			return Unknown
		}
		return Granted
	}()

	if status != Granted {
		r.log.Debug("safari bookmark file not readable",
			logger.String("path", path), logger.String("status", string(status)))
	}
	return status
}

func (r *darwinResolver) Request(browser, path string) Remediation {
	if r.Check(browser, path).Accessible() {
		return Remediation{RequiresManualGrant: false}
	}

	// Best effort: deep-link into the Full Disk Access pane, falling back
	// to the settings app and then the legacy preference pane.
	openTargets := []string{
		fullDiskAccessPane,
		"/System/Applications/System Settings.app",
		"/System/Library/PreferencePanes/Security.prefPane",
	}
	for _, target := range openTargets {
		if err := exec.Command("open", target).Run(); err == nil {
			break
		}
	}

	return Remediation{
		RequiresManualGrant: true,
		Instructions: []string{
			"1. Open System Settings > Privacy & Security > Full Disk Access",
			"2. Click the + button and add marksync (or the terminal application running it)",
			"3. Enable the toggle next to the added application",
			"4. Re-run browser detection",
		},
	}
}
