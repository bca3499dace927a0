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

package schema

import (
	"bytes"
	"embed"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

//go:embed schemas/*.json
var schemaFS embed.FS

// Schema names map to the embedded schema files.
const (
	NameConfig  = "config.json"
	NameOutput  = "output.json"
	NameSummary = "summary.json"
)

var (
	compileOnce sync.Once
	compileErr  error
	compiled    map[string]*jsonschema.Schema
)

// compile loads and compiles all embedded schemas exactly once.
// The schemas ship with the binary, so a compile failure is a build
// defect and surfaces on first validation.
func compile() error {
	compileOnce.Do(func() {
		c := jsonschema.NewCompiler()
		compiled = make(map[string]*jsonschema.Schema, 3)

		for _, name := range []string{NameConfig, NameOutput, NameSummary} {
			raw, err := schemaFS.ReadFile("schemas/" + name)
			if err != nil {
				compileErr = fmt.Errorf("failed to read embedded schema %s: %w", name, err)
				return
			}

			doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
			if err != nil {
				compileErr = fmt.Errorf("failed to parse embedded schema %s: %w", name, err)
				return
			}

			if err := c.AddResource(name, doc); err != nil {
				compileErr = fmt.Errorf("failed to register schema %s: %w", name, err)
				return
			}

			sch, err := c.Compile(name)
			if err != nil {
				compileErr = fmt.Errorf("failed to compile schema %s: %w", name, err)
				return
			}
			compiled[name] = sch
		}
	})
	return compileErr
}

// validate checks raw JSON against the named compiled schema.
func validate(name string, raw []byte) error {
	if err := compile(); err != nil {
		return err
	}

	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("document is not valid JSON: %w", err)
	}

	if err := compiled[name].Validate(inst); err != nil {
		return fmt.Errorf("document does not conform to %s: %w", name, err)
	}
	return nil
}

// ValidateConfig checks raw JSON against the run configuration schema.
func ValidateConfig(raw []byte) error {
	return validate(NameConfig, raw)
}

// ValidateOutput checks raw JSON against the collector output schema
// shared by the knobs and metrics artifacts.
func ValidateOutput(raw []byte) error {
	return validate(NameOutput, raw)
}

// ValidateSummary checks raw JSON against the run summary schema.
func ValidateSummary(raw []byte) error {
	return validate(NameSummary, raw)
}
