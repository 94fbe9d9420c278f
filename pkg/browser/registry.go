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

// Package browser provides the browser registry and bookmark file detection.
package browser

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Type identifies a supported browser.
type Type string

const (
	Chrome   Type = "chrome"
	Edge     Type = "edge"
	Brave    Type = "brave"
	Chromium Type = "chromium"
	Safari   Type = "safari"
)

// Family classifies the on-disk bookmark format a browser uses.
type Family string

const (
	// FamilyChromium browsers persist a JSON tree named "Bookmarks".
	FamilyChromium Family = "chromium"

	// FamilySafari persists a binary property list.
	FamilySafari Family = "safari"
)

// bookmarkPaths maps each browser to its candidate bookmark file paths per
// platform, relative to the user home directory and in priority order. The
// first existing candidate wins.
var bookmarkPaths = map[Type]map[string][]string{
	Chrome: {
		"linux":   {".config/google-chrome/Default/Bookmarks"},
		"darwin":  {"Library/Application Support/Google/Chrome/Default/Bookmarks"},
		"windows": {"AppData/Local/Google/Chrome/User Data/Default/Bookmarks"},
	},
	Edge: {
		"linux":   {".config/microsoft-edge/Default/Bookmarks"},
		"darwin":  {"Library/Application Support/Microsoft Edge/Default/Bookmarks"},
		"windows": {"AppData/Local/Microsoft/Edge/User Data/Default/Bookmarks"},
	},
	Brave: {
		"linux":   {".config/BraveSoftware/Brave-Browser/Default/Bookmarks"},
		"darwin":  {"Library/Application Support/BraveSoftware/Brave-Browser/Default/Bookmarks"},
		"windows": {"AppData/Local/BraveSoftware/Brave-Browser/User Data/Default/Bookmarks"},
	},
	Chromium: {
		"linux":   {".config/chromium/Default/Bookmarks", "snap/chromium/common/chromium/Default/Bookmarks"},
		"darwin":  {"Library/Application Support/Chromium/Default/Bookmarks"},
		"windows": {"AppData/Local/Chromium/User Data/Default/Bookmarks"},
	},
	Safari: {
		"darwin": {"Library/Safari/Bookmarks.plist"},
	},
}

var displayNames = map[Type]string{
	Chrome:   "Google Chrome",
	Edge:     "Microsoft Edge",
	Brave:    "Brave",
	Chromium: "Chromium",
	Safari:   "Apple Safari",
}

// detectionOrder fixes the order browsers are reported in. Chrome is probed
// before the Chromium-style forks that share its file naming convention.
var detectionOrder = []Type{Chrome, Edge, Brave, Chromium, Safari}

var titleCaser = cases.Title(language.English)

// All returns every registered browser type in detection order.
func All() []Type {
	out := make([]Type, len(detectionOrder))
	copy(out, detectionOrder)
	return out
}

// ByName returns the browser type for a registry identifier, or false when
// the name is not registered.
func ByName(name string) (Type, bool) {
	for _, t := range detectionOrder {
		if string(t) == name {
			return t, true
		}
	}
	return "", false
}

// DisplayName returns a human-friendly name for the browser.
func DisplayName(t Type) string {
	if name, ok := displayNames[t]; ok {
		return name
	}
	return titleCaser.String(string(t))
}

// FamilyOf returns the bookmark format family for the browser.
func FamilyOf(t Type) Family {
	if t == Safari {
		return FamilySafari
	}
	return FamilyChromium
}

// CandidatePaths returns the home-relative candidate bookmark paths for the
// browser on the given platform, in priority order.
func CandidatePaths(t Type, goos string) []string {
	paths, ok := bookmarkPaths[t]
	if !ok {
		return nil
	}
	return paths[goos]
}

// AllRelativePaths returns every registered relative path for the browser
// across all platforms. The file watcher uses these to map a changed path
// back to its browser.
func AllRelativePaths(t Type) []string {
	paths, ok := bookmarkPaths[t]
	if !ok {
		return nil
	}
	var out []string
	for _, perOS := range paths {
		out = append(out, perOS...)
	}
	return out
}
