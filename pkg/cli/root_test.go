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

package cli

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/metron-db/metron/pkg/errors"
)

func writeConfigFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRootCommandArguments(t *testing.T) {
	validConfig := writeConfigFile(t, `{
		"database_type": "postgres",
		"username": "tuner",
		"password": "secret",
		"database_url": "localhost:5432",
		"upload_code": "ABC123",
		"upload_url": "https://tuning.example.com/upload",
		"workload_name": "tpcc"
	}`)

	tests := []struct {
		name   string
		args   []string
		errMsg string
	}{
		{
			name:   "missing config flag",
			args:   []string{name},
			errMsg: "config",
		},
		{
			name:   "unknown format",
			args:   []string{name, "--config", validConfig, "--format", "xml"},
			errMsg: "unknown output format",
		},
		{
			name:   "negative observation time",
			args:   []string{name, "--config", validConfig, "--time=-1"},
			errMsg: "cannot be negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New().Run(t.Context(), tt.args)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.errMsg) {
				t.Errorf("error %q does not mention %q", err, tt.errMsg)
			}
		})
	}
}

func TestRootCommandConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		path string
		code errors.ErrorCode
	}{
		{
			name: "config file does not exist",
			path: filepath.Join(t.TempDir(), "missing.json"),
			code: errors.ErrCodeConfigInvalid,
		},
		{
			name: "config missing required fields",
			path: writeConfigFile(t, `{"database_type": "postgres"}`),
			code: errors.ErrCodeConfigInvalid,
		},
		{
			name: "unknown database type",
			path: writeConfigFile(t, `{
				"database_type": "oracle",
				"username": "u", "password": "p",
				"database_url": "localhost",
				"upload_code": "c", "upload_url": "https://x",
				"workload_name": "w"
			}`),
			code: errors.ErrCodeConfigInvalid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New().Run(t.Context(), []string{name, "--config", tt.path, "--time", "0"})
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if code := errors.CodeOf(err); code != tt.code {
				t.Errorf("expected %s, got %s (%v)", tt.code, code, err)
			}
		})
	}
}

func TestMetricsServerServesRegistry(t *testing.T) {
	srv := newMetricsServer("127.0.0.1:0")

	// bind explicitly so the test can reach the listener
	srv.srv.Addr = "127.0.0.1:19477"
	srv.Start(t.Context())
	defer func() {
		if err := srv.Stop(); err != nil {
			t.Errorf("Stop() error = %v", err)
		}
	}()

	var resp *http.Response
	var err error
	for i := 0; i < 20; i++ {
		resp, err = http.Get("http://127.0.0.1:19477/metrics")
		if err == nil {
			break
		}
		time.Sleep(50 * time.Millisecond)
	}
	if err != nil {
		t.Fatalf("metrics endpoint unreachable: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("GET /metrics = %d, want 200", resp.StatusCode)
	}
}

func TestMetricsServerStopWithoutTraffic(t *testing.T) {
	srv := newMetricsServer("127.0.0.1:19478")
	srv.Start(t.Context())

	// give the listener a moment to bind before shutting it down
	time.Sleep(50 * time.Millisecond)
	if err := srv.Stop(); err != nil {
		t.Errorf("Stop() error = %v", err)
	}
}
