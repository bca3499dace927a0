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

package controller

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	runDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "metron_capture_run_duration_seconds",
			Help:    "Time taken by a complete capture run including the observation wait",
			Buckets: []float64{1, 5, 30, 60, 300, 600, 1800},
		},
	)

	runsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "metron_capture_runs_total",
			Help: "Total number of capture runs",
		},
		[]string{"status"}, // success or error
	)

	phaseDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "metron_capture_phase_duration_seconds",
			Help:    "Time taken by individual run phases",
			Buckets: []float64{0.1, 0.5, 1, 5, 30, 60, 300, 600},
		},
		[]string{"phase"}, // collecting_before, waiting, collecting_after
	)

	artifactBytes = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "metron_capture_artifact_bytes",
			Help: "Size of the last rendered artifact document",
		},
		[]string{"kind"},
	)
)
