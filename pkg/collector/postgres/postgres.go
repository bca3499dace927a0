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

// Package postgres implements the database collector for PostgreSQL.
package postgres

import (
	"context"
	"database/sql"
	"log/slog"
	"net/url"
	"strings"
	"time"

	// registers the "postgres" driver
	_ "github.com/lib/pq"

	"github.com/metron-db/metron/pkg/artifact"
	"github.com/metron-db/metron/pkg/collector/internal"
	"github.com/metron-db/metron/pkg/dbversion"
)

const driverName = "postgres"

// pg_stat_archiver was introduced in PostgreSQL 9.4.
var archiverMinVersion = [2]int{9, 4}

// Collector captures configuration and statistics from one PostgreSQL
// instance. Every collection call opens and closes its own connection.
type Collector struct {
	dsn string

	// ConnectTimeout bounds connection establishment. Zero uses the
	// package default.
	ConnectTimeout time.Duration
}

// New creates a collector bound to the given URL and credentials.
func New(rawURL, username, password string) *Collector {
	return &Collector{dsn: buildDSN(rawURL, username, password)}
}

// buildDSN injects credentials into the target URL, adding the postgres
// scheme and a default sslmode when absent.
func buildDSN(rawURL, username, password string) string {
	u := rawURL
	if !strings.Contains(u, "://") {
		u = "postgres://" + u
	}

	parsed, err := url.Parse(u)
	if err != nil {
		// let the driver report the malformed URL on connect
		return u
	}
	parsed.User = url.UserPassword(username, password)

	q := parsed.Query()
	if q.Get("sslmode") == "" {
		q.Set("sslmode", "disable")
		parsed.RawQuery = q.Encode()
	}
	return parsed.String()
}

// CollectParameters reads all configuration knobs from pg_settings.
func (c *Collector) CollectParameters(ctx context.Context) (*artifact.Snapshot, error) {
	db, err := internal.Open(ctx, driverName, c.dsn, c.ConnectTimeout)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	knobs, err := internal.QueryKV(ctx, db, "SELECT name, setting FROM pg_settings")
	if err != nil {
		return nil, err
	}

	snap := artifact.NewSnapshot()
	snap.Global["global"] = knobs
	slog.Debug("collected postgres parameters", "count", len(knobs))
	return snap, nil
}

// CollectMetrics reads engine statistics: cluster-wide views into global
// sections, plus per-database, per-table, and per-index statistics into
// the local sections.
func (c *Collector) CollectMetrics(ctx context.Context) (*artifact.Snapshot, error) {
	db, err := internal.Open(ctx, driverName, c.dsn, c.ConnectTimeout)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	snap := artifact.NewSnapshot()

	bgwriter, err := internal.QueryRow(ctx, db, "SELECT * FROM pg_stat_bgwriter")
	if err != nil {
		return nil, err
	}
	snap.Global["pg_stat_bgwriter"] = bgwriter

	if c.hasArchiver(ctx, db) {
		archiver, err := internal.QueryRow(ctx, db, "SELECT * FROM pg_stat_archiver")
		if err != nil {
			return nil, err
		}
		snap.Global["pg_stat_archiver"] = archiver
	}

	local := snap.EnsureLocal()

	databases, err := internal.QueryKeyed(ctx, db, "SELECT * FROM pg_stat_database", "datname")
	if err != nil {
		return nil, err
	}
	local.Database = databases

	tables, err := internal.QueryKeyed(ctx, db, "SELECT * FROM pg_stat_user_tables", "relname")
	if err != nil {
		return nil, err
	}
	local.Table = tables

	indexes, err := internal.QueryKeyed(ctx, db, "SELECT * FROM pg_stat_user_indexes", "indexrelname")
	if err != nil {
		return nil, err
	}
	local.Index = indexes

	return snap, nil
}

// CollectVersion reports the server version string.
func (c *Collector) CollectVersion(ctx context.Context) (string, error) {
	db, err := internal.Open(ctx, driverName, c.dsn, c.ConnectTimeout)
	if err != nil {
		return "", err
	}
	defer db.Close()

	return internal.QueryString(ctx, db, "SHOW server_version")
}

// hasArchiver reports whether the server is new enough to expose
// pg_stat_archiver. An unreadable or unparsable version skips the view
// rather than failing the collection.
func (c *Collector) hasArchiver(ctx context.Context, db *sql.DB) bool {
	raw, err := internal.QueryString(ctx, db, "SHOW server_version")
	if err != nil {
		slog.Warn("cannot determine postgres version, skipping pg_stat_archiver", "error", err)
		return false
	}

	v, err := dbversion.Parse(raw)
	if err != nil {
		slog.Warn("unparsable postgres version, skipping pg_stat_archiver", "version", raw)
		return false
	}
	return v.AtLeast(archiverMinVersion[0], archiverMinVersion[1])
}
