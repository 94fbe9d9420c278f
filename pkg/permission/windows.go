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

	"github.com/cloudygreybeard/marksync/internal/logger"
)

// windowsResolver implements the Windows strategy. Bookmark files under the
// user profile are not guarded by any privacy framework; a readability probe
// is sufficient.
type windowsResolver struct {
	log logger.Logger
}

func (r *windowsResolver) Check(browser, path string) Status {
	err := readable(path)
	switch {
	case err == nil:
		return Granted
	case os.IsNotExist(err):
		return Unknown
	default:
		r.log.Debug("bookmark file not readable",
			logger.String("browser", browser), logger.Error(err))
		return Denied
	}
}

func (r *windowsResolver) Request(browser, path string) Remediation {
	return Remediation{RequiresManualGrant: false}
}
