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

// Readings maps a setting or statistic name to its value as reported
// by the database engine. All values are carried as strings; Metron
// captures, it does not interpret.
type Readings map[string]string

// Snapshot is the introspection payload shared by the knobs and metrics
// artifacts: global sections keyed by section name, plus optional
// per-object local sections. A knob capture uses Global only and leaves
// Local nil, which serializes as JSON null.
type Snapshot struct {
	Global map[string]Readings `json:"global"`
	Local  *LocalSnapshot      `json:"local"`
}

// LocalSnapshot carries engine statistics scoped to individual databases,
// tables, and indexes, each keyed by object name.
type LocalSnapshot struct {
	Database map[string]Readings `json:"database,omitempty"`
	Table    map[string]Readings `json:"table,omitempty"`
	Index    map[string]Readings `json:"index,omitempty"`
}

// NewSnapshot creates an empty snapshot with an initialized global map
// and no local sections.
func NewSnapshot() *Snapshot {
	return &Snapshot{
		Global: make(map[string]Readings),
	}
}

// GlobalSection returns the named global section, creating it if needed.
func (s *Snapshot) GlobalSection(name string) Readings {
	sec, ok := s.Global[name]
	if !ok {
		sec = make(Readings)
		s.Global[name] = sec
	}
	return sec
}

// EnsureLocal returns the local snapshot, allocating it on first use.
func (s *Snapshot) EnsureLocal() *LocalSnapshot {
	if s.Local == nil {
		s.Local = &LocalSnapshot{}
	}
	return s.Local
}

// DatabaseSection returns per-database readings for the named database,
// creating the section if needed.
func (l *LocalSnapshot) DatabaseSection(name string) Readings {
	if l.Database == nil {
		l.Database = make(map[string]Readings)
	}
	sec, ok := l.Database[name]
	if !ok {
		sec = make(Readings)
		l.Database[name] = sec
	}
	return sec
}

// TableSection returns per-table readings for the named table,
// creating the section if needed.
func (l *LocalSnapshot) TableSection(name string) Readings {
	if l.Table == nil {
		l.Table = make(map[string]Readings)
	}
	sec, ok := l.Table[name]
	if !ok {
		sec = make(Readings)
		l.Table[name] = sec
	}
	return sec
}

// IndexSection returns per-index readings for the named index,
// creating the section if needed.
func (l *LocalSnapshot) IndexSection(name string) Readings {
	if l.Index == nil {
		l.Index = make(map[string]Readings)
	}
	sec, ok := l.Index[name]
	if !ok {
		sec = make(Readings)
		l.Index[name] = sec
	}
	return sec
}
