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

package config

import (
	"encoding/json"
	"os"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/metron-db/metron/pkg/errors"
	"github.com/metron-db/metron/pkg/schema"
)

// DatabaseType identifies a supported database engine.
type DatabaseType string

const (
	// Postgres targets PostgreSQL.
	Postgres DatabaseType = "Postgres"
	// MySQL targets MySQL.
	MySQL DatabaseType = "MySQL"
	// SAPHana targets SAP HANA.
	SAPHana DatabaseType = "SAPHana"
)

// String returns the canonical name of the database type.
func (t DatabaseType) String() string {
	return string(t)
}

// SupportedDatabaseTypes returns the canonical names of all known engines.
func SupportedDatabaseTypes() []string {
	return []string{string(Postgres), string(MySQL), string(SAPHana)}
}

// titler folds arbitrary input casing into one canonical token so that
// "postgres", "POSTGRES", and "Postgres" all match.
var titler = cases.Title(language.English)

// ParseDatabaseType canonicalizes a raw database type string to its enum
// value. Selection is by declared type only; there is no auto-detection.
func ParseDatabaseType(raw string) (DatabaseType, error) {
	switch titler.String(strings.ToLower(strings.TrimSpace(raw))) {
	case "Postgres":
		return Postgres, nil
	case "Mysql":
		return MySQL, nil
	case "Saphana":
		return SAPHana, nil
	default:
		return "", errors.NewWithContext(errors.ErrCodeConfigInvalid,
			"unknown database type",
			map[string]any{"database_type": raw, "supported": SupportedDatabaseTypes()})
	}
}

// Config is the immutable run configuration. It can only be obtained from
// Load or Parse, both of which validate the raw input against the
// configuration schema first, so a Config in hand is complete.
type Config struct {
	DatabaseType DatabaseType
	Username     string
	Password     string
	DatabaseURL  string
	UploadCode   string
	UploadURL    string
	WorkloadName string
}

// DatabaseName returns the canonical engine name used for the artifact
// subdirectory and the summary's database_type field.
func (c Config) DatabaseName() string {
	return string(c.DatabaseType)
}

// rawConfig mirrors the configuration file layout.
type rawConfig struct {
	DatabaseType string `json:"database_type"`
	Username     string `json:"username"`
	Password     string `json:"password"`
	DatabaseURL  string `json:"database_url"`
	UploadCode   string `json:"upload_code"`
	UploadURL    string `json:"upload_url"`
	WorkloadName string `json:"workload_name"`
}

// Load reads and parses the configuration file at path.
func Load(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeConfigInvalid, "cannot read configuration file", err)
	}
	return Parse(raw)
}

// Parse validates raw configuration bytes against the configuration schema
// and decodes them into a Config. No defaults are substituted for missing
// required fields; nonconforming input is rejected before decoding.
func Parse(raw []byte) (Config, error) {
	if err := schema.ValidateConfig(raw); err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeConfigInvalid, "configuration failed schema validation", err)
	}

	var rc rawConfig
	if err := json.Unmarshal(raw, &rc); err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeConfigInvalid, "cannot decode configuration", err)
	}

	dbType, err := ParseDatabaseType(rc.DatabaseType)
	if err != nil {
		return Config{}, err
	}

	return Config{
		DatabaseType: dbType,
		Username:     rc.Username,
		Password:     rc.Password,
		DatabaseURL:  rc.DatabaseURL,
		UploadCode:   rc.UploadCode,
		UploadURL:    rc.UploadURL,
		WorkloadName: rc.WorkloadName,
	}, nil
}
