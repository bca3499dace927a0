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

package artifact

import "time"

// Summary is the derived run record computed once the observation window
// closes. Timestamps are epoch milliseconds; the observation time is the
// configured window in whole seconds. The database version comes from the
// collector, not the configuration.
type Summary struct {
	StartTime       int64  `json:"start_time"`
	EndTime         int64  `json:"end_time"`
	ObservationTime int64  `json:"observation_time"`
	DatabaseType    string `json:"database_type"`
	DatabaseVersion string `json:"database_version"`
	WorkloadName    string `json:"workload_name"`
}

// NewSummary assembles a summary from the recorded window boundaries and
// the resolved run identity.
func NewSummary(start, end time.Time, observation time.Duration, databaseType, databaseVersion, workloadName string) *Summary {
	return &Summary{
		StartTime:       start.UnixMilli(),
		EndTime:         end.UnixMilli(),
		ObservationTime: int64(observation / time.Second),
		DatabaseType:    databaseType,
		DatabaseVersion: databaseVersion,
		WorkloadName:    workloadName,
	}
}
