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

package collector

import (
	"time"

	"github.com/metron-db/metron/pkg/collector/mysql"
	"github.com/metron-db/metron/pkg/collector/postgres"
	"github.com/metron-db/metron/pkg/collector/saphana"
	"github.com/metron-db/metron/pkg/config"
	"github.com/metron-db/metron/pkg/errors"
)

// Factory creates collectors bound to a target.
// This interface enables dependency injection for testing.
type Factory interface {
	Create(dbType config.DatabaseType, target Target) (Collector, error)
}

// Compile-time variant contract checks.
var (
	_ Collector = (*postgres.Collector)(nil)
	_ Collector = (*mysql.Collector)(nil)
	_ Collector = (*saphana.Collector)(nil)
)

// Option configures a DefaultFactory.
type Option func(*DefaultFactory)

// WithConnectTimeout overrides the connect/ping timeout applied to every
// collector the factory creates.
func WithConnectTimeout(d time.Duration) Option {
	return func(f *DefaultFactory) {
		f.ConnectTimeout = d
	}
}

// DefaultFactory creates collectors against live database targets.
// Creation is a pure mapping from database type to variant; no I/O happens
// until the collector is asked to collect.
type DefaultFactory struct {
	// ConnectTimeout bounds connection establishment for created
	// collectors. Zero keeps each variant's default.
	ConnectTimeout time.Duration
}

// NewDefaultFactory creates a factory with default settings.
func NewDefaultFactory(opts ...Option) *DefaultFactory {
	f := &DefaultFactory{}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Create constructs a new collector variant for the given database type,
// bound to the target's URL and credentials. Every call returns a fresh
// instance; callers must not share instances across collection phases.
func (f *DefaultFactory) Create(dbType config.DatabaseType, target Target) (Collector, error) {
	switch dbType {
	case config.Postgres:
		c := postgres.New(target.URL, target.Username, target.Password)
		c.ConnectTimeout = f.ConnectTimeout
		return c, nil
	case config.MySQL:
		c := mysql.New(target.URL, target.Username, target.Password)
		c.ConnectTimeout = f.ConnectTimeout
		return c, nil
	case config.SAPHana:
		c := saphana.New(target.URL, target.Username, target.Password)
		c.ConnectTimeout = f.ConnectTimeout
		return c, nil
	default:
		return nil, errors.NewWithContext(errors.ErrCodeUnsupportedDatabase,
			"no collector variant for database type",
			map[string]any{"database_type": string(dbType)})
	}
}
