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

package browser

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/cloudygreybeard/marksync/internal/logger"
	"github.com/cloudygreybeard/marksync/pkg/permission"
)

// Detected describes one installed browser found on disk. Created fresh on
// every detection pass, never persisted.
type Detected struct {
	Type             Type              `json:"type"`
	DisplayName      string            `json:"displayName"`
	BookmarkFilePath string            `json:"bookmarkFilePath"`
	Accessible       bool              `json:"accessible"`
	PermissionStatus permission.Status `json:"permissionStatus"`
	Error            string            `json:"error,omitempty"`
}

// Detector walks the registry and reports which browsers have a bookmark
// file on disk and whether it is readable.
type Detector struct {
	home     string
	goos     string
	resolver permission.Resolver
	log      logger.Logger
}

// NewDetector creates a detector for the running OS and user.
func NewDetector(resolver permission.Resolver, log logger.Logger) *Detector {
	if log == nil {
		log = logger.Nop()
	}
	home, err := os.UserHomeDir()
	if err != nil {
		log.Warn("cannot resolve home directory", logger.Error(err))
	}
	return &Detector{
		home:     home,
		goos:     runtime.GOOS,
		resolver: resolver,
		log:      log,
	}
}

// NewDetectorAt creates a detector rooted at an explicit home directory and
// platform. Used by tests and embedding callers.
func NewDetectorAt(home, goos string, resolver permission.Resolver, log logger.Logger) *Detector {
	if log == nil {
		log = logger.Nop()
	}
	return &Detector{home: home, goos: goos, resolver: resolver, log: log}
}

// Detect scans the registry and returns every browser with an existing
// bookmark file, classified by accessibility. Browsers with no file on disk
// are omitted entirely.
func (d *Detector) Detect() []Detected {
	var found []Detected

	for _, t := range detectionOrder {
		path := d.FilePath(t)
		if path == "" {
			continue
		}

		status := d.resolver.Check(string(t), path)
		det := Detected{
			Type:             t,
			DisplayName:      DisplayName(t),
			BookmarkFilePath: path,
			Accessible:       status.Accessible(),
			PermissionStatus: status,
		}
		if status == permission.Denied {
			det.Error = DisplayName(t) + " bookmarks require a permission grant"
		}

		d.log.Debug("detected browser",
			logger.String("browser", string(t)),
			logger.String("path", path),
			logger.String("status", string(status)))

		found = append(found, det)
	}

	return found
}

// FilePath resolves the bookmark file path for a single browser without any
// permission check. Returns "" when no candidate path exists on disk.
func (d *Detector) FilePath(t Type) string {
	if d.home == "" {
		return ""
	}
	for _, rel := range CandidatePaths(t, d.goos) {
		path := filepath.Join(d.home, filepath.FromSlash(rel))
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
