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

// Package bookmark provides the canonical bookmark tree model.
//
// Both supported on-disk formats (the Chromium JSON tree and Safari's binary
// property list) are normalized into this one structure. Every tree is rooted
// at a synthetic "root" folder whose children are the browser's native
// top-level containers, renamed to human labels ("Bookmarks Bar", "Favorites",
// and so on).
//
// # Core Types
//
// Bookmark is a single node, either a url leaf or a folder:
//
//	b := bookmark.Bookmark{
//	    ID:   "5f2a...",
//	    Name: "GitHub",
//	    URL:  "https://github.com",
//	    Type: bookmark.TypeURL,
//	}
//
// Folder and FolderTreeNode are derived projections used by folder-selection
// callers; Change and SyncResult carry the outcome of a sync pass.
//
// # Design Principles
//
//  1. Source-agnostic: nothing in this package knows which browser a tree
//     came from.
//
//  2. Folders are structural: only url nodes participate in change
//     detection; folders only shape the tree.
//
//  3. Derived data is recomputed: Folder and FolderTreeNode are never
//     persisted, they are projections over the tree computed on demand.
package bookmark

import (
	"time"
)

// Type classifies a tree node.
type Type string

const (
	// TypeURL is a leaf bookmark pointing at an address.
	TypeURL Type = "url"

	// TypeFolder is a container node.
	TypeFolder Type = "folder"
)

// RootID is the ID of the synthetic root folder wrapping a browser's native
// top-level containers.
const RootID = "root"

// DeletedName is the placeholder name used for deleted-change nodes. The
// engine does not retain removed bookmarks' content, only their IDs.
const DeletedName = "Deleted Bookmark"

// Bookmark is a single node in the canonical tree.
//
// Only folder nodes carry children; only url nodes carry a URL. IDs are
// stable within one browser's store: Chromium GUIDs, Safari UUIDs, or a
// synthesized token when the source provides none.
type Bookmark struct {
	// ID identifies the node within its browser's store.
	ID string `json:"id"`

	// Name is the display title, HTML-entity-decoded.
	Name string `json:"name"`

	// URL is the target address. Empty for folders.
	URL string `json:"url,omitempty"`

	// DateAdded is when the bookmark was created. Always set for Chromium;
	// nil for Safari at parse time and backfilled by the sync engine with a
	// locally recorded first-seen date.
	DateAdded *time.Time `json:"dateAdded,omitempty"`

	// Type is url or folder.
	Type Type `json:"type"`

	// ParentID is the ID of the containing folder, empty on the root.
	ParentID string `json:"parentId,omitempty"`

	// Children is the ordered contents of a folder node.
	Children []*Bookmark `json:"children,omitempty"`
}

// IsFolder reports whether the node is a folder.
func (b *Bookmark) IsFolder() bool {
	return b.Type == TypeFolder
}

// Folder is a flat projection of a folder node for selection UIs.
type Folder struct {
	// ID is the folder node's ID.
	ID string `json:"id"`

	// Name is the folder's display name.
	Name string `json:"name"`

	// Path is the breadcrumb from the top level, joined by " > ".
	Path string `json:"path"`

	// BookmarkCount is the number of direct url children.
	BookmarkCount int `json:"bookmarkCount"`

	// SubfolderCount is the number of direct folder children.
	SubfolderCount int `json:"subfolderCount"`
}

// FolderTreeNode is a hierarchical projection of the folder structure,
// with bookmark counts rolled up over each subtree.
type FolderTreeNode struct {
	ID                 string            `json:"id"`
	Name               string            `json:"name"`
	BookmarkCount      int               `json:"bookmarkCount"`
	TotalBookmarkCount int               `json:"totalBookmarkCount"`
	Children           []*FolderTreeNode `json:"children,omitempty"`
}

// ChangeType classifies a detected change.
type ChangeType string

const (
	ChangeAdded    ChangeType = "added"
	ChangeModified ChangeType = "modified"
	ChangeDeleted  ChangeType = "deleted"
)

// Change is one detected difference between two observations of a browser's
// bookmarks. For deleted changes the node is a placeholder carrying only the
// ID, DeletedName, and type, since removed content is not retained.
type Change struct {
	Type     ChangeType `json:"changeType"`
	Bookmark *Bookmark  `json:"bookmark"`
}

// SyncResult is the outcome of one sync pass over one browser.
type SyncResult struct {
	Success        bool      `json:"success"`
	Changes        []Change  `json:"changes"`
	TotalBookmarks int       `json:"totalBookmarks"`
	SyncedAt       time.Time `json:"syncedAt"`
	Error          string    `json:"error,omitempty"`
}
