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

package bookmark

import (
	"strings"
)

// PathSeparator joins breadcrumb segments in Folder.Path.
const PathSeparator = " > "

// ExtractFolders returns a flat list of every folder beneath root, with
// materialized breadcrumb paths. The synthetic root itself is not listed.
func ExtractFolders(root *Bookmark) []Folder {
	var folders []Folder
	if root == nil {
		return folders
	}

	var walk func(node *Bookmark, ancestors []string)
	walk = func(node *Bookmark, ancestors []string) {
		for _, child := range node.Children {
			if !child.IsFolder() {
				continue
			}

			crumb := append(append([]string{}, ancestors...), child.Name)

			direct := 0
			sub := 0
			for _, c := range child.Children {
				if c.IsFolder() {
					sub++
				} else {
					direct++
				}
			}

			folders = append(folders, Folder{
				ID:             child.ID,
				Name:           child.Name,
				Path:           strings.Join(crumb, PathSeparator),
				BookmarkCount:  direct,
				SubfolderCount: sub,
			})

			walk(child, crumb)
		}
	}

	walk(root, nil)
	return folders
}

// FilterToSelected returns a pruned copy of the tree restricted to the given
// folder IDs.
//
// A folder selected directly, or sitting under a selected ancestor, is kept
// verbatim with its entire subtree. Any other folder survives only as a
// pass-through ancestor: its direct url children are dropped, and it is kept
// only if some descendant folder qualifies. Returns nil when nothing in the
// tree matches.
func FilterToSelected(root *Bookmark, selectedIDs []string) *Bookmark {
	if root == nil || len(selectedIDs) == 0 {
		return root
	}

	selected := make(map[string]bool, len(selectedIDs))
	for _, id := range selectedIDs {
		selected[id] = true
	}

	var filter func(node *Bookmark, underSelected bool) *Bookmark
	filter = func(node *Bookmark, underSelected bool) *Bookmark {
		if !node.IsFolder() {
			if underSelected {
				return cloneNode(node)
			}
			return nil
		}

		if underSelected || selected[node.ID] {
			return cloneNode(node)
		}

		// Pass-through ancestor: only qualifying subfolders survive.
		var kept []*Bookmark
		for _, child := range node.Children {
			if !child.IsFolder() {
				continue
			}
			if sub := filter(child, false); sub != nil {
				kept = append(kept, sub)
			}
		}
		if len(kept) == 0 {
			return nil
		}

		copied := *node
		copied.Children = kept
		return &copied
	}

	return filter(root, false)
}

// cloneNode deep-copies a subtree.
func cloneNode(node *Bookmark) *Bookmark {
	copied := *node
	if len(node.Children) > 0 {
		copied.Children = make([]*Bookmark, 0, len(node.Children))
		for _, child := range node.Children {
			copied.Children = append(copied.Children, cloneNode(child))
		}
	}
	return &copied
}

// FlattenToMap returns every node in the tree keyed by ID, root included.
func FlattenToMap(root *Bookmark) map[string]*Bookmark {
	nodes := make(map[string]*Bookmark)
	if root == nil {
		return nodes
	}

	var walk func(node *Bookmark)
	walk = func(node *Bookmark) {
		nodes[node.ID] = node
		for _, child := range node.Children {
			walk(child)
		}
	}

	walk(root)
	return nodes
}

// CountItems returns the total node count, folders and root included.
func CountItems(root *Bookmark) int {
	if root == nil {
		return 0
	}
	count := 1
	for _, child := range root.Children {
		count += CountItems(child)
	}
	return count
}

// CountBookmarks returns the number of url nodes in the tree.
func CountBookmarks(root *Bookmark) int {
	if root == nil {
		return 0
	}
	count := 0
	if root.Type == TypeURL {
		count = 1
	}
	for _, child := range root.Children {
		count += CountBookmarks(child)
	}
	return count
}

// FindByID returns the node with the given ID, or nil.
func FindByID(root *Bookmark, id string) *Bookmark {
	if root == nil {
		return nil
	}
	if root.ID == id {
		return root
	}
	for _, child := range root.Children {
		if found := FindByID(child, id); found != nil {
			return found
		}
	}
	return nil
}

// AllBookmarks returns every url node in the tree in depth-first order.
func AllBookmarks(root *Bookmark) []*Bookmark {
	var urls []*Bookmark
	if root == nil {
		return urls
	}

	var walk func(node *Bookmark)
	walk = func(node *Bookmark) {
		if node.Type == TypeURL {
			urls = append(urls, node)
		}
		for _, child := range node.Children {
			walk(child)
		}
	}

	walk(root)
	return urls
}

// FolderTree converts the tree into the hierarchical folder projection.
// The synthetic root's direct children form the top level; a non-synthetic
// root is included as a node itself. Total counts roll up bottom-up as the
// direct count plus all descendant totals.
func FolderTree(root *Bookmark) []*FolderTreeNode {
	if root == nil {
		return nil
	}

	var build func(node *Bookmark) *FolderTreeNode
	build = func(node *Bookmark) *FolderTreeNode {
		tn := &FolderTreeNode{
			ID:   node.ID,
			Name: node.Name,
		}
		for _, child := range node.Children {
			if child.IsFolder() {
				sub := build(child)
				tn.Children = append(tn.Children, sub)
				tn.TotalBookmarkCount += sub.TotalBookmarkCount
			} else {
				tn.BookmarkCount++
			}
		}
		tn.TotalBookmarkCount += tn.BookmarkCount
		return tn
	}

	if root.ID != RootID && root.IsFolder() {
		return []*FolderTreeNode{build(root)}
	}

	var top []*FolderTreeNode
	for _, child := range root.Children {
		if child.IsFolder() {
			top = append(top, build(child))
		}
	}
	return top
}
