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

// Package parser decodes browser bookmark files into the canonical tree.
//
// Two formats are supported: the Chromium-family JSON tree and Safari's
// binary property list. Both decoders are total: they return either a
// populated root node or an error, and never panic across the package
// boundary. Malformed input is an error, not a partial tree.
package parser

import (
	"fmt"

	"github.com/cloudygreybeard/marksync/pkg/bookmark"
	"github.com/cloudygreybeard/marksync/pkg/browser"
)

// Parse decodes the bookmark file at path using the format for the given
// browser.
func Parse(t browser.Type, path string) (*bookmark.Bookmark, error) {
	switch browser.FamilyOf(t) {
	case browser.FamilySafari:
		return ParseSafariFile(path)
	case browser.FamilyChromium:
		return ParseChromiumFile(path)
	default:
		return nil, fmt.Errorf("no parser for browser %q", t)
	}
}
