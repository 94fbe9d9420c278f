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

package watcher

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cloudygreybeard/marksync/pkg/bookmark"
	"github.com/cloudygreybeard/marksync/pkg/browser"
	"github.com/cloudygreybeard/marksync/pkg/engine"
	"github.com/cloudygreybeard/marksync/pkg/permission"
	"github.com/cloudygreybeard/marksync/pkg/store"
)

type grantAll struct{}

func (grantAll) Check(browser, path string) permission.Status { return permission.Granted }
func (grantAll) Request(browser, path string) permission.Remediation {
	return permission.Remediation{}
}

func TestMatchBrowser(t *testing.T) {
	cases := []struct {
		path string
		want browser.Type
		ok   bool
	}{
		{"/home/me/.config/google-chrome/Default/Bookmarks", browser.Chrome, true},
		{"/Users/me/Library/Safari/Bookmarks.plist", browser.Safari, true},
		{`C:\Users\me\AppData\Local\Microsoft\Edge\User Data\Default\Bookmarks`, browser.Edge, true},
		{"/home/me/snap/chromium/common/chromium/Default/Bookmarks", browser.Chromium, true},
		{"/home/me/Documents/Bookmarks", "", false},
		{"/home/me/.config/google-chrome/Default/Bookmarks.tmp", browser.Chrome, true},
	}

	for _, tc := range cases {
		got, ok := MatchBrowser(tc.path)
		assert.Equal(t, tc.ok, ok, tc.path)
		assert.Equal(t, tc.want, got, tc.path)
	}
}

func TestStartWithNoAccessibleFilesIsNoOp(t *testing.T) {
	det := browser.NewDetectorAt(t.TempDir(), "linux", grantAll{}, nil)
	state := store.NewState(store.NewMemory())
	w := New(det, engine.NewEngine(det, state, nil), state, nil)

	require.NoError(t, w.Start())
	w.Stop() // stopping a never-started watcher is safe
}

func TestWatcherDebouncesIntoSingleSync(t *testing.T) {
	home := t.TempDir()
	path := filepath.Join(home, ".config", "google-chrome", "Default", "Bookmarks")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	writeChrome(t, path, "Example")

	det := browser.NewDetectorAt(home, "linux", grantAll{}, nil)
	state := store.NewState(store.NewMemory())
	eng := engine.NewEngine(det, state, nil)

	w := New(det, eng, state, nil)
	w.debounce = 50 * time.Millisecond

	changesCh := make(chan []bookmark.Change, 4)
	w.Subscribe(func(bt browser.Type, changes []bookmark.Change) {
		assert.Equal(t, browser.Chrome, bt)
		changesCh <- changes
	})

	require.NoError(t, w.Start())
	defer w.Stop()

	// A burst of writes within the debounce window collapses into one sync.
	for i := 0; i < 3; i++ {
		writeChrome(t, path, "Example")
		time.Sleep(10 * time.Millisecond)
	}

	select {
	case changes := <-changesCh:
		require.Len(t, changes, 1)
		assert.Equal(t, bookmark.ChangeAdded, changes[0].Type)
		assert.Equal(t, "Example", changes[0].Bookmark.Name)
	case <-time.After(10 * time.Second):
		t.Fatal("no sync fired")
	}

	select {
	case <-changesCh:
		t.Fatal("burst produced more than one notification")
	case <-time.After(500 * time.Millisecond):
	}
}

func writeChrome(t *testing.T, path, name string) {
	t.Helper()
	content := `{"roots": {"bookmark_bar": {"type": "folder", "guid": "bar", "name": "bookmark_bar",
		"children": [{"type": "url", "guid": "u1", "name": "` + name + `", "url": "https://example.com"}]}}}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}
