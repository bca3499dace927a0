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

// Package mysql implements the database collector for MySQL.
package mysql

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"

	"github.com/metron-db/metron/pkg/artifact"
	"github.com/metron-db/metron/pkg/collector/internal"
)

const driverName = "mysql"

// Collector captures configuration and statistics from one MySQL
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

// buildDSN assembles a driver DSN from the target URL and credentials.
// The URL is host:port with an optional /database suffix; a mysql://
// scheme prefix is tolerated.
func buildDSN(rawURL, username, password string) string {
	addr := strings.TrimPrefix(rawURL, "mysql://")

	dbName := ""
	if i := strings.Index(addr, "/"); i >= 0 {
		dbName = addr[i+1:]
		addr = addr[:i]
	}

	cfg := mysql.NewConfig()
	cfg.User = username
	cfg.Passwd = password
	cfg.Net = "tcp"
	cfg.Addr = addr
	cfg.DBName = dbName
	return cfg.FormatDSN()
}

// CollectParameters reads all configuration knobs from the global
// server variables.
func (c *Collector) CollectParameters(ctx context.Context) (*artifact.Snapshot, error) {
	db, err := internal.Open(ctx, driverName, c.dsn, c.ConnectTimeout)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	knobs, err := internal.QueryKV(ctx, db, "SHOW GLOBAL VARIABLES")
	if err != nil {
		return nil, err
	}

	snap := artifact.NewSnapshot()
	snap.Global["global"] = knobs
	slog.Debug("collected mysql parameters", "count", len(knobs))
	return snap, nil
}

// CollectMetrics reads server-wide status counters. MySQL exposes no
// per-object statistics in this surface, so the local section stays null.
func (c *Collector) CollectMetrics(ctx context.Context) (*artifact.Snapshot, error) {
	db, err := internal.Open(ctx, driverName, c.dsn, c.ConnectTimeout)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	status, err := internal.QueryKV(ctx, db, "SHOW GLOBAL STATUS")
	if err != nil {
		return nil, err
	}

	snap := artifact.NewSnapshot()
	snap.Global["global"] = status
	return snap, nil
}

// CollectVersion reports the server version string.
func (c *Collector) CollectVersion(ctx context.Context) (string, error) {
	db, err := internal.Open(ctx, driverName, c.dsn, c.ConnectTimeout)
	if err != nil {
		return "", err
	}
	defer db.Close()

	return internal.QueryString(ctx, db, "SELECT VERSION()")
}
