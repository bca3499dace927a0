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

// Package saphana implements the database collector for SAP HANA.
package saphana

import (
	"context"
	"log/slog"
	"net/url"
	"strings"
	"time"

	// registers the "hdb" driver
	_ "github.com/SAP/go-hdb/driver"

	"github.com/metron-db/metron/pkg/artifact"
	"github.com/metron-db/metron/pkg/collector/internal"
	"github.com/metron-db/metron/pkg/errors"
)

const driverName = "hdb"

// Collector captures configuration and statistics from one SAP HANA
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

// buildDSN injects credentials into the target URL, adding the hdb
// scheme when absent.
func buildDSN(rawURL, username, password string) string {
	u := rawURL
	if !strings.Contains(u, "://") {
		u = "hdb://" + u
	}

	parsed, err := url.Parse(u)
	if err != nil {
		// let the driver report the malformed URL on connect
		return u
	}
	parsed.User = url.UserPassword(username, password)
	return parsed.String()
}

// CollectParameters reads all configuration parameters from the system
// ini file contents, one global section per ini section.
func (c *Collector) CollectParameters(ctx context.Context) (*artifact.Snapshot, error) {
	db, err := internal.Open(ctx, driverName, c.dsn, c.ConnectTimeout)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx,
		"SELECT SECTION, KEY, VALUE FROM SYS.M_INIFILE_CONTENTS")
	if err != nil {
		return nil, collectionErr("inifile query failed", err)
	}
	defer rows.Close()

	snap := artifact.NewSnapshot()
	for rows.Next() {
		var section, key, value string
		if err := rows.Scan(&section, &key, &value); err != nil {
			return nil, collectionErr("cannot scan inifile row", err)
		}
		snap.GlobalSection(section)[key] = value
	}
	if err := rows.Err(); err != nil {
		return nil, collectionErr("inifile row iteration failed", err)
	}

	slog.Debug("collected saphana parameters", "sections", len(snap.Global))
	return snap, nil
}

// CollectMetrics reads the system overview into a global section and
// per-host resource utilization into the local database section.
func (c *Collector) CollectMetrics(ctx context.Context) (*artifact.Snapshot, error) {
	db, err := internal.Open(ctx, driverName, c.dsn, c.ConnectTimeout)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	snap := artifact.NewSnapshot()

	overview, err := internal.QueryKV(ctx, db,
		"SELECT NAME, VALUE FROM SYS.M_SYSTEM_OVERVIEW")
	if err != nil {
		return nil, err
	}
	snap.Global["system_overview"] = overview

	hosts, err := internal.QueryKeyed(ctx, db,
		"SELECT * FROM SYS.M_HOST_RESOURCE_UTILIZATION", "HOST")
	if err != nil {
		return nil, err
	}
	snap.EnsureLocal().Database = hosts

	return snap, nil
}

// CollectVersion reports the database version string.
func (c *Collector) CollectVersion(ctx context.Context) (string, error) {
	db, err := internal.Open(ctx, driverName, c.dsn, c.ConnectTimeout)
	if err != nil {
		return "", err
	}
	defer db.Close()

	return internal.QueryString(ctx, db, "SELECT VERSION FROM SYS.M_DATABASE")
}

func collectionErr(msg string, cause error) error {
	return errors.Wrap(errors.ErrCodeCollectionFailed, msg, cause)
}
