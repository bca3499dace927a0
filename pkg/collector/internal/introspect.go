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

// Package internal provides shared introspection plumbing for the
// database collector variants.
package internal

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/metron-db/metron/pkg/artifact"
	"github.com/metron-db/metron/pkg/defaults"
	"github.com/metron-db/metron/pkg/errors"
)

// Open establishes a single-use database connection and verifies it with
// a ping. The caller owns the returned handle and must close it on every
// exit path. A target that cannot be reached yields CONNECTION_FAILED.
func Open(ctx context.Context, driver, dsn string, connectTimeout time.Duration) (*sql.DB, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeConnectionFailed, "cannot open database connection", err)
	}

	// one collection is one sequential read pass
	db.SetMaxOpenConns(1)

	if connectTimeout <= 0 {
		connectTimeout = defaults.CollectorConnectTimeout
	}
	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(errors.ErrCodeConnectionFailed, "database target unreachable", err)
	}
	return db, nil
}

// QueryKV runs a two-column query and returns the rows as readings keyed
// by the first column.
func QueryKV(ctx context.Context, db *sql.DB, query string) (artifact.Readings, error) {
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeCollectionFailed, "introspection query failed", err)
	}
	defer rows.Close()

	readings := make(artifact.Readings)
	for rows.Next() {
		var key string
		var value any
		if err := rows.Scan(&key, &value); err != nil {
			return nil, errors.Wrap(errors.ErrCodeCollectionFailed, "cannot scan introspection row", err)
		}
		readings[key] = FormatValue(value)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeCollectionFailed, "introspection row iteration failed", err)
	}
	return readings, nil
}

// QueryRow runs a query expected to return a single row and flattens it
// into readings keyed by column name.
func QueryRow(ctx context.Context, db *sql.DB, query string) (artifact.Readings, error) {
	sections, _, err := queryKeyed(ctx, db, query, "")
	if err != nil {
		return nil, err
	}
	if len(sections) == 0 {
		return make(artifact.Readings), nil
	}
	// with no key column queryKeyed stores the single row under ""
	return sections[""], nil
}

// QueryKeyed runs a query and groups each row's columns into readings
// keyed by the value of keyColumn. The key column itself is included in
// the readings, matching what the engine reports.
func QueryKeyed(ctx context.Context, db *sql.DB, query, keyColumn string) (map[string]artifact.Readings, error) {
	sections, found, err := queryKeyed(ctx, db, query, keyColumn)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, errors.NewWithContext(errors.ErrCodeCollectionFailed,
			"key column missing from introspection result",
			map[string]any{"column": keyColumn})
	}
	return sections, nil
}

func queryKeyed(ctx context.Context, db *sql.DB, query, keyColumn string) (map[string]artifact.Readings, bool, error) {
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, false, errors.Wrap(errors.ErrCodeCollectionFailed, "introspection query failed", err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, false, errors.Wrap(errors.ErrCodeCollectionFailed, "cannot read result columns", err)
	}

	keyIndex := -1
	for i, col := range columns {
		if strings.EqualFold(col, keyColumn) {
			keyIndex = i
			break
		}
	}
	keyFound := keyColumn == "" || keyIndex >= 0

	out := make(map[string]artifact.Readings)
	values := make([]any, len(columns))
	scanArgs := make([]any, len(columns))
	for i := range values {
		scanArgs[i] = &values[i]
	}

	for rows.Next() {
		if err := rows.Scan(scanArgs...); err != nil {
			return nil, keyFound, errors.Wrap(errors.ErrCodeCollectionFailed, "cannot scan introspection row", err)
		}

		key := ""
		if keyIndex >= 0 {
			key = FormatValue(values[keyIndex])
		}

		readings, ok := out[key]
		if !ok {
			readings = make(artifact.Readings, len(columns))
			out[key] = readings
		}
		for i, col := range columns {
			readings[col] = FormatValue(values[i])
		}
	}
	if err := rows.Err(); err != nil {
		return nil, keyFound, errors.Wrap(errors.ErrCodeCollectionFailed, "introspection row iteration failed", err)
	}
	return out, keyFound, nil
}

// QueryString runs a query returning a single string value, such as a
// version probe.
func QueryString(ctx context.Context, db *sql.DB, query string) (string, error) {
	var value any
	if err := db.QueryRowContext(ctx, query).Scan(&value); err != nil {
		return "", errors.Wrap(errors.ErrCodeCollectionFailed, "introspection query failed", err)
	}
	return FormatValue(value), nil
}

// FormatValue renders a scanned SQL value as the string the artifact
// carries. Drivers hand back a narrow set of types; anything else falls
// through to fmt.
func FormatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case []byte:
		return string(val)
	case string:
		return val
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	case time.Time:
		return val.UTC().Format(time.RFC3339)
	default:
		return fmt.Sprint(val)
	}
}
