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

import (
	"encoding/json"

	"github.com/metron-db/metron/pkg/errors"
	"github.com/metron-db/metron/pkg/schema"
)

// Kind identifies one of the four artifact documents a capture run produces.
type Kind string

const (
	// KindKnobs is the pre-workload configuration parameter snapshot.
	KindKnobs Kind = "knobs"
	// KindMetricsBefore is the pre-workload metrics snapshot.
	KindMetricsBefore Kind = "metrics_before"
	// KindMetricsAfter is the post-workload metrics snapshot.
	KindMetricsAfter Kind = "metrics_after"
	// KindSummary is the derived run summary.
	KindSummary Kind = "summary"
)

// Kinds returns all artifact kinds in the order a run produces them.
func Kinds() []Kind {
	return []Kind{KindMetricsBefore, KindKnobs, KindSummary, KindMetricsAfter}
}

// String returns the string representation of the Kind.
func (k Kind) String() string {
	return string(k)
}

// IsValid checks if the Kind is one of the recognized kinds.
func (k Kind) IsValid() bool {
	switch k {
	case KindKnobs, KindMetricsBefore, KindMetricsAfter, KindSummary:
		return true
	default:
		return false
	}
}

// Filename returns the file name the artifact is persisted under.
func (k Kind) Filename() string {
	return string(k) + ".json"
}

// Document is a schema-validated artifact ready for persistence.
// Only NewDocument can construct one, so any Document in hand has
// already passed validation for its kind.
type Document struct {
	kind Kind
	body []byte
}

// NewDocument renders the payload as indented JSON and validates it against
// the schema for the given kind. Payloads that fail their schema never
// produce a Document.
func NewDocument(kind Kind, payload any) (*Document, error) {
	if !kind.IsValid() {
		return nil, errors.New(errors.ErrCodeSchemaInvalid, "unknown artifact kind: "+string(kind))
	}

	body, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeSchemaInvalid, "failed to render "+string(kind)+" artifact", err)
	}

	if err := validateForKind(kind, body); err != nil {
		return nil, errors.WrapWithContext(errors.ErrCodeSchemaInvalid,
			"artifact failed schema validation", err,
			map[string]any{"kind": string(kind)})
	}

	return &Document{kind: kind, body: body}, nil
}

// validateForKind routes the document to the schema for its kind.
// The summary has its own schema; the other three share the output schema.
func validateForKind(kind Kind, body []byte) error {
	if kind == KindSummary {
		return schema.ValidateSummary(body)
	}
	return schema.ValidateOutput(body)
}

// Kind returns the artifact kind of the document.
func (d *Document) Kind() Kind {
	return d.kind
}

// Body returns the rendered JSON content.
func (d *Document) Body() []byte {
	return d.body
}
