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

// Package permission classifies access to browser bookmark files per OS.
//
// Each operating system gets its own Resolver strategy: macOS guards Safari's
// file behind its privacy framework (Full Disk Access), Linux may run the
// process inside a Flatpak or Snap sandbox, and Windows needs only a plain
// readability probe.
//
// Resolvers never return errors. Every I/O failure degrades to a conservative
// Status value so that one browser's permission trouble cannot abort
// detection of the others.
package permission

import (
	"runtime"

	"github.com/cloudygreybeard/marksync/internal/logger"
)

// Status classifies access to a bookmark file.
type Status string

const (
	// Granted means the file was successfully read.
	Granted Status = "granted"

	// Denied means the OS refused access and the user must intervene.
	Denied Status = "denied"

	// NotRequired means the file is not guarded by any permission system.
	NotRequired Status = "not_required"

	// Unknown means access failed for an ambiguous reason, for example a
	// file that vanished between detection and probing.
	Unknown Status = "unknown"
)

// Accessible reports whether a status permits reading the file.
func (s Status) Accessible() bool {
	return s == Granted || s == NotRequired
}

// Remediation carries user-facing guidance for a denied status.
type Remediation struct {
	// RequiresManualGrant is true when the user must act outside the
	// application before access can succeed.
	RequiresManualGrant bool `json:"requiresManualGrant"`

	// Instructions are numbered, human-readable steps.
	Instructions []string `json:"instructions,omitempty"`
}

// Resolver decides whether a browser's bookmark file is readable and, when
// it is not, produces remediation guidance.
//
// The browser argument is the registry identifier ("chrome", "safari", ...);
// only some strategies care which browser owns the file.
type Resolver interface {
	// Check classifies access to the file. It never returns an error.
	Check(browser, path string) Status

	// Request attempts any OS-level remediation action (such as opening the
	// privacy settings panel) and returns guidance for the user.
	Request(browser, path string) Remediation
}

// ForOS returns the resolver strategy for the given GOOS value.
func ForOS(goos string, log logger.Logger) Resolver {
	if log == nil {
		log = logger.Nop()
	}
	switch goos {
	case "darwin":
		return &darwinResolver{log: log}
	case "windows":
		return &windowsResolver{log: log}
	default:
		return newLinuxResolver(log)
	}
}

// Default returns the resolver for the running OS.
func Default(log logger.Logger) Resolver {
	return ForOS(runtime.GOOS, log)
}
