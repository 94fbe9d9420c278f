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
	"fmt"
	"html"
	"os"

	"github.com/oklog/ulid/v2"
	"howett.net/plist"

	"github.com/cloudygreybeard/marksync/pkg/bookmark"
)

// readingListTitle marks Safari's Reading List proxy container, which is
// not a user bookmark folder.
const readingListTitle = "com.apple.ReadingList"

// safariRootLabels renames Safari's known top-level containers.
var safariRootLabels = map[string]string{
	"BookmarksBar":  "Favorites",
	"BookmarksMenu": "Bookmarks Menu",
}

type safariNode struct {
	WebBookmarkType string            `plist:"WebBookmarkType"`
	WebBookmarkUUID string            `plist:"WebBookmarkUUID"`
	Title           string            `plist:"Title"`
	URLString       string            `plist:"URLString"`
	URIDictionary   map[string]string `plist:"URIDictionary"`
	Children        []safariNode      `plist:"Children"`
}

// ParseSafariFile reads a Safari Bookmarks.plist (binary property list) and
// returns the canonical tree.
//
// Safari's plist does not carry creation dates; DateAdded is left nil on
// every node and backfilled by the sync engine with first-seen dates. Nodes
// without a WebBookmarkUUID get a synthesized random ID, which is not stable
// across parses.
func ParseSafariFile(path string) (*bookmark.Bookmark, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading bookmark plist: %w", err)
	}

	// The root is normally a dictionary with a Children array, but some
	// exports are the bare array itself. Accept both shapes.
	var top safariNode
	if _, err := plist.Unmarshal(data, &top); err != nil {
		var arr []safariNode
		if _, arrErr := plist.Unmarshal(data, &arr); arrErr != nil {
			return nil, fmt.Errorf("decoding bookmark plist: %w", err)
		}
		top = safariNode{WebBookmarkType: "WebBookmarkTypeList", Children: arr}
	}

	root := &bookmark.Bookmark{
		ID:   bookmark.RootID,
		Name: "Bookmarks",
		Type: bookmark.TypeFolder,
	}

	for _, child := range top.Children {
		if child.Title == readingListTitle || child.WebBookmarkType == "WebBookmarkTypeProxy" {
			continue
		}
		converted := convertSafariNode(child, root.ID)
		if converted == nil {
			continue
		}
		if label, ok := safariRootLabels[child.Title]; ok {
			converted.Name = label
		}
		root.Children = append(root.Children, converted)
	}

	return root, nil
}

func convertSafariNode(node safariNode, parentID string) *bookmark.Bookmark {
	if node.WebBookmarkType == "WebBookmarkTypeProxy" {
		return nil
	}

	id := node.WebBookmarkUUID
	if id == "" {
		id = ulid.Make().String()
	}

	b := &bookmark.Bookmark{
		ID:       id,
		ParentID: parentID,
	}

	// Folder signals: an explicit list marker, or the presence of children.
	if node.WebBookmarkType == "WebBookmarkTypeList" || len(node.Children) > 0 {
		b.Type = bookmark.TypeFolder
		b.Name = html.UnescapeString(node.Title)
		for _, child := range node.Children {
			if child.Title == readingListTitle {
				continue
			}
			if converted := convertSafariNode(child, b.ID); converted != nil {
				b.Children = append(b.Children, converted)
			}
		}
		return b
	}

	b.Type = bookmark.TypeURL
	b.URL = node.URLString
	if b.URL == "" && node.URIDictionary != nil {
		b.URL = node.URIDictionary[""]
	}

	title := node.Title
	if title == "" && node.URIDictionary != nil {
		title = node.URIDictionary["title"]
	}
	if title == "" {
		title = b.URL
	}
	b.Name = html.UnescapeString(title)

	return b
}
