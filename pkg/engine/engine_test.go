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

package engine

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"howett.net/plist"

	"github.com/cloudygreybeard/marksync/pkg/bookmark"
	"github.com/cloudygreybeard/marksync/pkg/browser"
	"github.com/cloudygreybeard/marksync/pkg/store"
)

// staticPaths is a fixed-path PathResolver for tests.
type staticPaths map[browser.Type]string

func (p staticPaths) FilePath(t browser.Type) string { return p[t] }

// writeChromeFixture writes a Chromium bookmark file whose bar contains the
// given url entries, backdated so the stability wait does not trigger.
func writeChromeFixture(t *testing.T, path string, entries ...[2]string) {
	t.Helper()

	children := ""
	for i, e := range entries {
		if i > 0 {
			children += ","
		}
		children += fmt.Sprintf(
			`{"type": "url", "guid": "u%d", "name": %q, "url": %q, "date_added": "13355452800000000"}`,
			i+1, e[0], e[1])
	}
	content := fmt.Sprintf(`{"roots": {"bookmark_bar": {
		"type": "folder", "guid": "bar", "name": "bookmark_bar", "children": [%s]
	}}}`, children)

	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	backdate(t, path)
}

func backdate(t *testing.T, path string) {
	t.Helper()
	old := time.Now().Add(-time.Minute)
	require.NoError(t, os.Chtimes(path, old, old))
}

func newTestEngine(t *testing.T, paths staticPaths) (*Engine, *store.State) {
	t.Helper()
	state := store.NewState(store.NewMemory())
	return NewEngine(paths, state, nil), state
}

func TestSyncLifecycle(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Bookmarks")
	eng, state := newTestEngine(t, staticPaths{browser.Chrome: path})
	ctx := context.Background()

	// First sync: one bookmark, reported as added.
	writeChromeFixture(t, path, [2]string{"Example", "https://example.com"})
	result := eng.Sync(ctx, browser.Chrome, nil)
	require.True(t, result.Success, result.Error)
	assert.Equal(t, 1, result.TotalBookmarks)
	require.Len(t, result.Changes, 1)
	assert.Equal(t, bookmark.ChangeAdded, result.Changes[0].Type)
	assert.Equal(t, "u1", result.Changes[0].Bookmark.ID)

	// Second sync with no edits: no changes.
	result = eng.Sync(ctx, browser.Chrome, nil)
	require.True(t, result.Success)
	assert.Empty(t, result.Changes)
	assert.Equal(t, 1, result.TotalBookmarks)

	// Rename: reported as modified under the same ID.
	writeChromeFixture(t, path, [2]string{"Example Site", "https://example.com"})
	result = eng.Sync(ctx, browser.Chrome, nil)
	require.True(t, result.Success)
	require.Len(t, result.Changes, 1)
	assert.Equal(t, bookmark.ChangeModified, result.Changes[0].Type)
	assert.Equal(t, "u1", result.Changes[0].Bookmark.ID)

	// Removal: reported as deleted with the placeholder name.
	writeChromeFixture(t, path)
	result = eng.Sync(ctx, browser.Chrome, nil)
	require.True(t, result.Success)
	assert.Equal(t, 0, result.TotalBookmarks)
	require.Len(t, result.Changes, 1)
	assert.Equal(t, bookmark.ChangeDeleted, result.Changes[0].Type)
	assert.Equal(t, "u1", result.Changes[0].Bookmark.ID)
	assert.Equal(t, bookmark.DeletedName, result.Changes[0].Bookmark.Name)

	// The deleted entry aged out of the persisted hash map.
	hashes, err := state.Hashes(string(browser.Chrome))
	require.NoError(t, err)
	assert.Empty(t, hashes)
}

func TestSyncRecordsLastSyncTime(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Bookmarks")
	eng, state := newTestEngine(t, staticPaths{browser.Chrome: path})

	writeChromeFixture(t, path, [2]string{"Example", "https://example.com"})
	result := eng.Sync(context.Background(), browser.Chrome, nil)
	require.True(t, result.Success)

	cfg, ok, err := state.Config(string(browser.Chrome))
	require.NoError(t, err)
	require.True(t, ok)
	require.NotNil(t, cfg.LastSyncAt)
	assert.Equal(t, result.SyncedAt, *cfg.LastSyncAt)
}

func TestSyncFilterWithNoMatchIsEmptySuccess(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Bookmarks")
	eng, _ := newTestEngine(t, staticPaths{browser.Chrome: path})

	writeChromeFixture(t, path, [2]string{"Example", "https://example.com"})
	result := eng.Sync(context.Background(), browser.Chrome, []string{"no-such-folder"})
	require.True(t, result.Success)
	assert.Empty(t, result.Changes)
	assert.Equal(t, 0, result.TotalBookmarks)
}

func TestSyncParseFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Bookmarks")
	require.NoError(t, os.WriteFile(path, []byte("{corrupt"), 0o644))
	backdate(t, path)

	eng, _ := newTestEngine(t, staticPaths{browser.Chrome: path})
	result := eng.Sync(context.Background(), browser.Chrome, nil)
	assert.False(t, result.Success)
	assert.NotEmpty(t, result.Error)
	assert.Empty(t, result.Changes)
}

func TestSyncNoBookmarkFile(t *testing.T) {
	eng, _ := newTestEngine(t, staticPaths{})
	result := eng.Sync(context.Background(), browser.Chrome, nil)
	assert.False(t, result.Success)
	assert.Contains(t, result.Error, "no bookmark file")
}

func TestTreeBackfillsSafariDatesStably(t *testing.T) {
	data, err := plist.Marshal(map[string]interface{}{
		"WebBookmarkType": "WebBookmarkTypeList",
		"Children": []interface{}{
			map[string]interface{}{
				"WebBookmarkType": "WebBookmarkTypeLeaf",
				"WebBookmarkUUID": "leaf-uuid",
				"URLString":       "https://example.com",
				"URIDictionary":   map[string]interface{}{"title": "Example"},
			},
		},
	}, plist.BinaryFormat)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "Bookmarks.plist")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	backdate(t, path)

	eng, _ := newTestEngine(t, staticPaths{browser.Safari: path})
	ctx := context.Background()

	first, err := eng.Tree(ctx, browser.Safari)
	require.NoError(t, err)
	require.Len(t, first.Children, 1)
	require.NotNil(t, first.Children[0].DateAdded, "first parse assigns a discovery date")

	second, err := eng.Tree(ctx, browser.Safari)
	require.NoError(t, err)
	require.NotNil(t, second.Children[0].DateAdded)

	// The recorded date survives re-parsing.
	assert.Equal(t, *first.Children[0].DateAdded, *second.Children[0].DateAdded)
}

func TestContentHash(t *testing.T) {
	assert.Equal(t, ContentHash("a", "b"), ContentHash("a", "b"))
	assert.NotEqual(t, ContentHash("a", "b"), ContentHash("a", "c"))
	assert.NotEqual(t, ContentHash("a", "b"), ContentHash("ab", ""))
	assert.Len(t, ContentHash("a", "b"), 16)
}
