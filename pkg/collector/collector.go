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

package collector

import (
	"context"

	"github.com/metron-db/metron/pkg/artifact"
)

// Collector captures the operational state of one database target.
// All three operations are read-only against the target, open and close
// their own connection, and may be called repeatedly in any order.
type Collector interface {
	// CollectMetrics reads current runtime metrics from the target.
	CollectMetrics(ctx context.Context) (*artifact.Snapshot, error)

	// CollectParameters reads current configuration knobs from the target.
	CollectParameters(ctx context.Context) (*artifact.Snapshot, error)

	// CollectVersion reports the engine's version identifier.
	CollectVersion(ctx context.Context) (string, error)
}

// Target identifies one live database instance.
type Target struct {
	URL      string
	Username string
	Password string
}
