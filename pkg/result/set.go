// Copyright (c) 2026, the Metron authors.  All rights reserved.
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

package result

import "github.com/metron-db/metron/pkg/artifact"

// Set is the finalized artifact set of a successful run: artifact name to
// written path, plus the SHA-256 checksum of each file. Only Writer.Finalize
// produces one, and the uploader consumes it exactly once.
type Set struct {
	// Dir is the per-database directory holding the artifacts.
	Dir string

	// Artifacts maps artifact name (knobs, metrics_before, metrics_after,
	// summary) to the path it was written to.
	Artifacts map[string]string

	// Checksums maps artifact name to the hex SHA-256 of its content.
	Checksums map[string]string
}

// Path returns the written path for the given artifact kind.
func (s *Set) Path(kind artifact.Kind) string {
	return s.Artifacts[kind.String()]
}
