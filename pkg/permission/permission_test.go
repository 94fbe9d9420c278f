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

package permission

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cloudygreybeard/marksync/internal/logger"
)

func writeReadableFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "Bookmarks")
	require.NoError(t, os.WriteFile(path, []byte(`{"roots": {}}`), 0o644))
	return path
}

func TestStatusAccessible(t *testing.T) {
	assert.True(t, Granted.Accessible())
	assert.True(t, NotRequired.Accessible())
	assert.False(t, Denied.Accessible())
	assert.False(t, Unknown.Accessible())
}

func TestDarwinResolver(t *testing.T) {
	r := &darwinResolver{log: logger.Nop()}

	assert.Equal(t, NotRequired, r.Check("chrome", "/does/not/matter"),
		"only safari is guarded on macOS")

	path := writeReadableFile(t)
	assert.Equal(t, Granted, r.Check("safari", path))

	assert.Equal(t, Unknown, r.Check("safari", filepath.Join(t.TempDir(), "gone")),
		"a vanished file is ambiguous, not denied")
}

func TestDarwinRequestWhenAccessible(t *testing.T) {
	r := &darwinResolver{log: logger.Nop()}
	rem := r.Request("safari", writeReadableFile(t))
	assert.False(t, rem.RequiresManualGrant)
	assert.Empty(t, rem.Instructions)
}

func TestWindowsResolver(t *testing.T) {
	r := &windowsResolver{log: logger.Nop()}

	assert.Equal(t, Granted, r.Check("chrome", writeReadableFile(t)))
	assert.Equal(t, Unknown, r.Check("chrome", filepath.Join(t.TempDir(), "gone")))

	rem := r.Request("chrome", "any")
	assert.False(t, rem.RequiresManualGrant)
}

func TestLinuxResolverOutsideSandbox(t *testing.T) {
	r := &linuxResolver{
		log:           logger.Nop(),
		flatpakMarker: filepath.Join(t.TempDir(), "no-marker"),
		getenv:        func(string) string { return "" },
	}

	assert.Equal(t, Granted, r.Check("chrome", writeReadableFile(t)))
	assert.Equal(t, Unknown, r.Check("chrome", filepath.Join(t.TempDir(), "gone")),
		"unsandboxed failures stay ambiguous")

	rem := r.Request("chrome", "any")
	assert.False(t, rem.RequiresManualGrant)
}

func TestLinuxResolverInSnap(t *testing.T) {
	r := &linuxResolver{
		log:           logger.Nop(),
		flatpakMarker: filepath.Join(t.TempDir(), "no-marker"),
		getenv: func(key string) string {
			if key == "SNAP" {
				return "/snap/marksync/1"
			}
			return ""
		},
	}

	assert.Equal(t, Denied, r.Check("chrome", filepath.Join(t.TempDir(), "gone")))

	rem := r.Request("chrome", "any")
	assert.True(t, rem.RequiresManualGrant)
	require.NotEmpty(t, rem.Instructions)
	assert.Contains(t, rem.Instructions[0], "snap connect")
}

func TestLinuxResolverInFlatpak(t *testing.T) {
	marker := filepath.Join(t.TempDir(), ".flatpak-info")
	require.NoError(t, os.WriteFile(marker, nil, 0o644))

	r := &linuxResolver{
		log:           logger.Nop(),
		flatpakMarker: marker,
		getenv:        func(string) string { return "" },
	}

	assert.Equal(t, Denied, r.Check("chrome", filepath.Join(t.TempDir(), "gone")))

	rem := r.Request("chrome", "any")
	assert.True(t, rem.RequiresManualGrant)
	require.NotEmpty(t, rem.Instructions)
	assert.Contains(t, rem.Instructions[0], "flatpak override")
}

func TestForOS(t *testing.T) {
	path := writeReadableFile(t)
	for _, goos := range []string{"darwin", "windows", "linux", "freebsd"} {
		r := ForOS(goos, nil)
		require.NotNil(t, r, goos)
		assert.True(t, r.Check("chrome", path).Accessible(), goos)
	}
}
