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

package defaults

import "time"

// Run defaults for the capture controller.
const (
	// ObservationTime is the default observation window between the
	// before and after collection phases.
	ObservationTime = 300 * time.Second

	// OutputDirectory is the default base directory for result artifacts.
	OutputDirectory = "output"
)

// Collector timeouts for database introspection operations.
const (
	// CollectorConnectTimeout bounds opening and pinging a database
	// connection before introspection starts.
	CollectorConnectTimeout = 10 * time.Second

	// CollectorQueryTimeout bounds a single introspection query.
	// Collectors should respect parent context deadlines when shorter.
	CollectorQueryTimeout = 30 * time.Second
)

// HTTP client timeouts for the upload collaborator.
const (
	// HTTPClientTimeout is the default total timeout for HTTP requests.
	HTTPClientTimeout = 30 * time.Second

	// UploadRetryMax is the maximum number of transport-level retries the
	// uploader performs. The capture flow itself never retries.
	UploadRetryMax = 3

	// UploadRetryWaitMin is the minimum backoff between upload retries.
	UploadRetryWaitMin = 1 * time.Second

	// UploadRetryWaitMax is the maximum backoff between upload retries.
	UploadRetryWaitMax = 10 * time.Second

	// UploadRequestsPerSecond paces upload request attempts.
	UploadRequestsPerSecond = 2
)

// Metrics listener timeouts.
const (
	// MetricsReadHeaderTimeout prevents slow header attacks on the
	// optional Prometheus exposition listener.
	MetricsReadHeaderTimeout = 5 * time.Second

	// MetricsShutdownTimeout is the maximum duration for graceful shutdown
	// of the metrics listener.
	MetricsShutdownTimeout = 5 * time.Second
)
