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

package report

import (
	"time"

	"github.com/google/uuid"
)

const (
	// KindCaptureReport is the resource kind for run reports.
	KindCaptureReport = "CaptureReport"

	// APIVersion identifies the report schema version.
	APIVersion = "metron.db/v1"
)

// Artifact records where one artifact landed and the checksum of its content.
type Artifact struct {
	Path     string `json:"path" yaml:"path"`
	Checksum string `json:"checksum,omitempty" yaml:"checksum,omitempty"`
}

// Upload records the outcome of the upload handoff.
type Upload struct {
	URL       string `json:"url,omitempty" yaml:"url,omitempty"`
	Delivered bool   `json:"delivered" yaml:"delivered"`
}

// CaptureReport is the human-facing record of one capture run, serialized
// after the run completes. It follows Kubernetes-style resource conventions
// with Kind and APIVersion fields.
type CaptureReport struct {
	// Kind is the type of the report object.
	Kind string `json:"kind" yaml:"kind"`

	// APIVersion is the API version of the report object.
	APIVersion string `json:"apiVersion" yaml:"apiVersion"`

	// RunID uniquely identifies the capture run.
	RunID string `json:"runId" yaml:"runId"`

	// CreatedAt is the RFC3339 creation timestamp of the report.
	CreatedAt string `json:"createdAt" yaml:"createdAt"`

	DatabaseType    string `json:"databaseType" yaml:"databaseType"`
	DatabaseVersion string `json:"databaseVersion,omitempty" yaml:"databaseVersion,omitempty"`
	WorkloadName    string `json:"workloadName" yaml:"workloadName"`

	// StartTime and EndTime bracket the observation window.
	StartTime time.Time `json:"startTime" yaml:"startTime"`
	EndTime   time.Time `json:"endTime" yaml:"endTime"`

	// ObservationSeconds is the configured window length.
	ObservationSeconds int64 `json:"observationSeconds" yaml:"observationSeconds"`

	// Artifacts maps artifact name to its persisted location.
	Artifacts map[string]Artifact `json:"artifacts,omitempty" yaml:"artifacts,omitempty"`

	// Upload records the handoff to the upload endpoint.
	Upload Upload `json:"upload" yaml:"upload"`
}

// New creates a report skeleton with a fresh run ID and creation timestamp.
func New(databaseType, workloadName string) *CaptureReport {
	return &CaptureReport{
		Kind:         KindCaptureReport,
		APIVersion:   APIVersion,
		RunID:        uuid.NewString(),
		CreatedAt:    time.Now().UTC().Format(time.RFC3339),
		DatabaseType: databaseType,
		WorkloadName: workloadName,
		Artifacts:    make(map[string]Artifact),
	}
}
