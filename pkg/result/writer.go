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

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/metron-db/metron/pkg/artifact"
	"github.com/metron-db/metron/pkg/errors"
)

// ChecksumFileName is the standard name for the checksum manifest
// written beside the artifacts on finalization.
const ChecksumFileName = "checksums.txt"

// Writer persists validated artifact documents under
// {baseDir}/{databaseName}/{kind}.json, building the artifact set
// incrementally as each document lands. Reruns against the same
// directory are destructive: existing files are overwritten.
type Writer struct {
	dir       string
	artifacts map[artifact.Kind]string
	checksums map[artifact.Kind]string
}

// NewWriter creates a writer rooted at the per-database subdirectory.
func NewWriter(baseDir, databaseName string) *Writer {
	return &Writer{
		dir:       filepath.Join(baseDir, databaseName),
		artifacts: make(map[artifact.Kind]string, 4),
		checksums: make(map[artifact.Kind]string, 4),
	}
}

// Dir returns the per-database artifact directory.
func (w *Writer) Dir() string {
	return w.dir
}

// Write persists the document and records its path and checksum in the
// pending set. The artifact directory is created idempotently on first use.
func (w *Writer) Write(doc *artifact.Document) (string, error) {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return "", errors.Wrap(errors.ErrCodeIOFailed, "cannot create artifact directory", err)
	}

	path := filepath.Join(w.dir, doc.Kind().Filename())
	if err := os.WriteFile(path, doc.Body(), 0o644); err != nil {
		return "", errors.WrapWithContext(errors.ErrCodeIOFailed,
			"cannot write artifact", err,
			map[string]any{"kind": doc.Kind().String(), "path": path})
	}

	sum := sha256.Sum256(doc.Body())
	w.artifacts[doc.Kind()] = path
	w.checksums[doc.Kind()] = hex.EncodeToString(sum[:])

	slog.Debug("artifact written",
		"kind", doc.Kind().String(),
		"path", path,
		"bytes", len(doc.Body()))
	return path, nil
}

// Finalize verifies that all four artifacts were written, emits the
// checksum manifest, and returns the completed set. A partial set never
// finalizes.
func (w *Writer) Finalize() (*Set, error) {
	for _, kind := range artifact.Kinds() {
		if _, ok := w.artifacts[kind]; !ok {
			return nil, errors.NewWithContext(errors.ErrCodeIOFailed,
				"artifact set incomplete",
				map[string]any{"missing": kind.String()})
		}
	}

	lines := make([]string, 0, len(w.artifacts))
	for _, kind := range artifact.Kinds() {
		lines = append(lines, fmt.Sprintf("%s  %s", w.checksums[kind], kind.Filename()))
	}
	manifest := strings.Join(lines, "\n") + "\n"

	manifestPath := filepath.Join(w.dir, ChecksumFileName)
	if err := os.WriteFile(manifestPath, []byte(manifest), 0o644); err != nil {
		return nil, errors.Wrap(errors.ErrCodeIOFailed, "cannot write checksum manifest", err)
	}

	set := &Set{
		Dir:       w.dir,
		Artifacts: make(map[string]string, len(w.artifacts)),
		Checksums: make(map[string]string, len(w.checksums)),
	}
	for kind, path := range w.artifacts {
		set.Artifacts[kind.String()] = path
		set.Checksums[kind.String()] = w.checksums[kind]
	}

	slog.Debug("artifact set finalized", "dir", w.dir, "artifacts", len(set.Artifacts))
	return set, nil
}
