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

package parser

import (
	"encoding/json"
	"fmt"
	"html"
	"os"
	"strconv"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/cloudygreybeard/marksync/pkg/bookmark"
)

// chromeEpochDeltaMicros is the offset between the Chrome epoch (1601-01-01)
// and the Unix epoch (1970-01-01), in microseconds.
const chromeEpochDeltaMicros = 11644473600000000

// chromiumRootLabels renames Chromium's native top-level containers to
// human labels, in the order they appear in the synthetic root.
var chromiumRootLabels = []struct {
	key   string
	label string
}{
	{"bookmark_bar", "Bookmarks Bar"},
	{"other", "Other Bookmarks"},
	{"synced", "Mobile Bookmarks"},
}

type chromiumNode struct {
	Type      string         `json:"type"`
	ID        string         `json:"id"`
	GUID      string         `json:"guid"`
	Name      string         `json:"name"`
	URL       string         `json:"url"`
	DateAdded string         `json:"date_added"`
	Children  []chromiumNode `json:"children"`
}

// ParseChromiumFile reads a Chromium "Bookmarks" JSON file and returns the
// canonical tree: a synthetic root wrapping the renamed native containers.
func ParseChromiumFile(path string) (*bookmark.Bookmark, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading bookmark file: %w", err)
	}

	var doc struct {
		Roots map[string]json.RawMessage `json:"roots"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decoding bookmark file: %w", err)
	}
	if doc.Roots == nil {
		return nil, fmt.Errorf("bookmark file has no roots key: %s", path)
	}

	root := &bookmark.Bookmark{
		ID:   bookmark.RootID,
		Name: "Bookmarks",
		Type: bookmark.TypeFolder,
	}

	for _, rl := range chromiumRootLabels {
		raw, ok := doc.Roots[rl.key]
		if !ok {
			continue
		}
		var node chromiumNode
		if err := json.Unmarshal(raw, &node); err != nil {
			continue
		}
		converted := convertChromiumNode(node, root.ID)
		converted.Name = rl.label
		root.Children = append(root.Children, converted)
	}

	return root, nil
}

func convertChromiumNode(node chromiumNode, parentID string) *bookmark.Bookmark {
	// The guid field is stable across Chromium sessions; the numeric id is
	// process-local and only a fallback.
	id := node.GUID
	if id == "" {
		id = node.ID
	}
	if id == "" {
		id = ulid.Make().String()
	}

	b := &bookmark.Bookmark{
		ID:       id,
		Name:     html.UnescapeString(node.Name),
		ParentID: parentID,
	}

	if node.Type == "folder" || len(node.Children) > 0 {
		b.Type = bookmark.TypeFolder
		for _, child := range node.Children {
			b.Children = append(b.Children, convertChromiumNode(child, b.ID))
		}
	} else {
		b.Type = bookmark.TypeURL
		b.URL = node.URL
	}

	added := ChromiumTime(node.DateAdded)
	b.DateAdded = &added

	return b
}

// ChromiumTime converts a Chromium date_added value (microseconds since
// 1601-01-01 as a decimal string) to a time. Values converting to a year
// outside [2000, 2100] are clearly corrupt and fall back to the current
// time instead of propagating.
func ChromiumTime(raw string) time.Time {
	micros, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || micros == 0 {
		return time.Now().UTC()
	}

	t := time.UnixMicro(micros - chromeEpochDeltaMicros).UTC()
	if t.Year() < 2000 || t.Year() > 2100 {
		return time.Now().UTC()
	}
	return t
}
