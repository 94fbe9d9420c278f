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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixtureTree builds:
//
//	root
//	├── Bookmarks Bar (b1)
//	│   ├── Example (u1)
//	│   ├── Work (f-work)
//	│   │   ├── Jira (u2)
//	│   │   └── Dev (f-dev)
//	│   │       └── Docs (u3)
//	│   └── Misc (f-misc)
//	│       └── News (u4)
//	└── Other Bookmarks (b2)
//	    └── Blog (u5)
func fixtureTree() *Bookmark {
	url := func(id, name, addr, parent string) *Bookmark {
		return &Bookmark{ID: id, Name: name, URL: addr, Type: TypeURL, ParentID: parent}
	}
	folder := func(id, name, parent string, children ...*Bookmark) *Bookmark {
		return &Bookmark{ID: id, Name: name, Type: TypeFolder, ParentID: parent, Children: children}
	}

	return folder(RootID, "Bookmarks", "",
		folder("b1", "Bookmarks Bar", RootID,
			url("u1", "Example", "https://example.com", "b1"),
			folder("f-work", "Work", "b1",
				url("u2", "Jira", "https://jira.example.com", "f-work"),
				folder("f-dev", "Dev", "f-work",
					url("u3", "Docs", "https://docs.example.com", "f-dev"),
				),
			),
			folder("f-misc", "Misc", "b1",
				url("u4", "News", "https://news.example.com", "f-misc"),
			),
		),
		folder("b2", "Other Bookmarks", RootID,
			url("u5", "Blog", "https://blog.example.com", "b2"),
		),
	)
}

func TestCountItems(t *testing.T) {
	assert.Equal(t, 11, CountItems(fixtureTree()))
	assert.Equal(t, 0, CountItems(nil))
}

func TestCountBookmarks(t *testing.T) {
	assert.Equal(t, 5, CountBookmarks(fixtureTree()))
}

func TestExtractFolders(t *testing.T) {
	folders := ExtractFolders(fixtureTree())
	require.Len(t, folders, 5)

	byID := make(map[string]Folder)
	for _, f := range folders {
		byID[f.ID] = f
	}

	assert.Equal(t, "Bookmarks Bar", byID["b1"].Path)
	assert.Equal(t, "Bookmarks Bar > Work", byID["f-work"].Path)
	assert.Equal(t, "Bookmarks Bar > Work > Dev", byID["f-dev"].Path)

	assert.Equal(t, 1, byID["b1"].BookmarkCount)
	assert.Equal(t, 2, byID["b1"].SubfolderCount)
	assert.Equal(t, 1, byID["f-work"].BookmarkCount)
	assert.Equal(t, 1, byID["f-work"].SubfolderCount)
}

func TestFilterToSelectedKeepsSubtreeAndAncestors(t *testing.T) {
	filtered := FilterToSelected(fixtureTree(), []string{"f-work"})
	require.NotNil(t, filtered)

	// The selected folder and its whole subtree survive.
	assert.NotNil(t, FindByID(filtered, "f-work"))
	assert.NotNil(t, FindByID(filtered, "u2"))
	assert.NotNil(t, FindByID(filtered, "f-dev"))
	assert.NotNil(t, FindByID(filtered, "u3"))

	// Ancestors survive as pass-throughs.
	assert.NotNil(t, FindByID(filtered, "b1"))

	// Ancestors' direct urls and non-qualifying siblings do not.
	assert.Nil(t, FindByID(filtered, "u1"))
	assert.Nil(t, FindByID(filtered, "f-misc"))
	assert.Nil(t, FindByID(filtered, "u4"))
	assert.Nil(t, FindByID(filtered, "b2"))
	assert.Nil(t, FindByID(filtered, "u5"))
}

func TestFilterToSelectedNoMatch(t *testing.T) {
	assert.Nil(t, FilterToSelected(fixtureTree(), []string{"missing"}))
}

func TestFilterToSelectedEmptySelectionIsIdentity(t *testing.T) {
	tree := fixtureTree()
	assert.Equal(t, tree, FilterToSelected(tree, nil))
}

func TestFilterToSelectedDoesNotMutateOriginal(t *testing.T) {
	tree := fixtureTree()
	before := CountItems(tree)
	_ = FilterToSelected(tree, []string{"f-dev"})
	assert.Equal(t, before, CountItems(tree))
}

func TestFlattenToMap(t *testing.T) {
	nodes := FlattenToMap(fixtureTree())
	assert.Len(t, nodes, 11)
	require.Contains(t, nodes, "u3")
	assert.Equal(t, "Docs", nodes["u3"].Name)
	assert.Contains(t, nodes, RootID)
}

func TestFindByID(t *testing.T) {
	tree := fixtureTree()
	require.NotNil(t, FindByID(tree, "f-dev"))
	assert.Equal(t, "Dev", FindByID(tree, "f-dev").Name)
	assert.Nil(t, FindByID(tree, "nope"))
}

func TestAllBookmarks(t *testing.T) {
	urls := AllBookmarks(fixtureTree())
	require.Len(t, urls, 5)
	for _, u := range urls {
		assert.Equal(t, TypeURL, u.Type)
		assert.NotEmpty(t, u.URL)
	}
}

func TestFolderTreeRollsUpTotals(t *testing.T) {
	top := FolderTree(fixtureTree())
	require.Len(t, top, 2)

	b1 := top[0]
	assert.Equal(t, "b1", b1.ID)
	assert.Equal(t, 1, b1.BookmarkCount)
	assert.Equal(t, 4, b1.TotalBookmarkCount)
	require.Len(t, b1.Children, 2)

	work := b1.Children[0]
	assert.Equal(t, "f-work", work.ID)
	assert.Equal(t, 1, work.BookmarkCount)
	assert.Equal(t, 2, work.TotalBookmarkCount)

	b2 := top[1]
	assert.Equal(t, 1, b2.TotalBookmarkCount)
}
