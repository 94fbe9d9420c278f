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
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// ContentHash returns a deterministic digest of a bookmark's name and URL.
// Equal content always hashes equal, which is all change detection needs;
// the original values are not recoverable from it.
func ContentHash(name, url string) string {
	d := xxhash.New()
	d.WriteString(name)
	d.Write([]byte{0})
	d.WriteString(url)
	return fmt.Sprintf("%016x", d.Sum64())
}
