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

package uploader

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	uploadDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "metron_upload_duration_seconds",
			Help:    "Time taken to deliver an artifact set, including retries",
			Buckets: []float64{0.1, 0.5, 1, 5, 10, 30},
		},
	)

	uploadTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "metron_upload_total",
			Help: "Total number of artifact set upload attempts",
		},
		[]string{"status"}, // success or error
	)
)
