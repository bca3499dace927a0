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

// Package cli implements the command-line interface of the metron capture
// controller.
//
// # Overview
//
// The metron CLI runs one capture: it collects database tuning knobs and
// runtime metrics before a workload, waits out the observation window,
// collects metrics again, and delivers the validated artifact set to the
// tuning service. The run configuration (target database, credentials,
// upload endpoint) comes from a JSON file; everything else is flags.
//
//	metron --config config.json [--time SECONDS] [--directory DIR]
//
// # Flags
//
//	--config, -c       Run configuration file (required)
//	--time, -t         Observation window in seconds (default: 300)
//	--directory, -d    Base directory for result artifacts (default: output)
//	--report, -o       Run report destination (default: stdout)
//	--format           Run report format: yaml, json, table (default: yaml)
//	--log-level        Log verbosity: debug, info, warn, error (default: info)
//	--metrics-addr     Serve Prometheus metrics on this address during the run
//
// Every flag also reads a METRON_* environment variable, e.g.
// METRON_CONFIG and METRON_LOG_LEVEL.
//
// # Exit Codes
//
//	0  Capture completed and the artifact set was delivered
//	1  Any failure, including an interrupted observation window
//
// # Architecture
//
// The CLI uses the urfave/cli/v3 framework and delegates to specialized
// packages:
//   - pkg/config - Run configuration loading and validation
//   - pkg/controller - Capture run state machine
//   - pkg/serializer - Run report formatting
//   - pkg/logging - Structured logging
//
// Version information is embedded at build time using ldflags:
//
//	go build -ldflags="-X 'github.com/metron-db/metron/pkg/cli.version=1.0.0'"
package cli
