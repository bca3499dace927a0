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
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/metron-db/metron/pkg/config"
	"github.com/metron-db/metron/pkg/controller"
	"github.com/metron-db/metron/pkg/defaults"
	"github.com/metron-db/metron/pkg/logging"
	"github.com/metron-db/metron/pkg/serializer"
)

const (
	name           = "metron"
	versionDefault = "dev"
)

var (
	// overridden during build with ldflags
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"
)

// New assembles the root command. Flags are built per invocation because
// urfave flags carry parse state.
func New() *cli.Command {
	configFlag := &cli.StringFlag{
		Name:     "config",
		Aliases:  []string{"c"},
		Usage:    "Path to the run configuration file (JSON)",
		Sources:  cli.EnvVars("METRON_CONFIG"),
		Required: true,
	}

	timeFlag := &cli.Int64Flag{
		Name:    "time",
		Aliases: []string{"t"},
		Usage:   "Observation window in seconds between the before and after collections",
		Sources: cli.EnvVars("METRON_TIME"),
		Value:   int64(defaults.ObservationTime / time.Second),
	}

	directoryFlag := &cli.StringFlag{
		Name:    "directory",
		Aliases: []string{"d"},
		Usage:   "Base directory for result artifacts",
		Sources: cli.EnvVars("METRON_DIRECTORY"),
		Value:   defaults.OutputDirectory,
	}

	logLevelFlag := &cli.StringFlag{
		Name:    "log-level",
		Usage:   "Log level (debug, info, warn, error)",
		Sources: cli.EnvVars("METRON_LOG_LEVEL"),
		Value:   "info",
	}

	reportFlag := &cli.StringFlag{
		Name:    "report",
		Aliases: []string{"o"},
		Usage:   "Write the run report to this path (default: stdout)",
		Sources: cli.EnvVars("METRON_REPORT"),
	}

	formatFlag := &cli.StringFlag{
		Name:    "format",
		Usage:   fmt.Sprintf("Run report format (supported values: %s)", serializer.SupportedFormats()),
		Sources: cli.EnvVars("METRON_FORMAT"),
		Value:   string(serializer.FormatYAML),
	}

	metricsAddrFlag := &cli.StringFlag{
		Name:    "metrics-addr",
		Usage:   "Expose Prometheus metrics on this address while the run is active (e.g. :9090)",
		Sources: cli.EnvVars("METRON_METRICS_ADDR"),
	}

	return &cli.Command{
		Name:                  name,
		Version:               version,
		EnableShellCompletion: true,
		Usage:                 "Capture database configuration and runtime metrics around a workload",
		Description: `Orchestrates one timed capture of database state: collect metrics
and tuning knobs before the workload, wait out the observation window,
collect metrics again, assemble a run summary, and deliver the artifact
set to the tuning service.

Supported engines: Postgres, MySQL, SAP HANA.

The artifact set is written under {directory}/{DatabaseType}/ as four
schema-validated JSON documents plus a checksum manifest:

  knobs.json           tuning parameters before the workload
  metrics_before.json  runtime metrics before the workload
  metrics_after.json   runtime metrics after the workload
  summary.json         window boundaries and run identity

# Examples

Run a five minute capture against the target in config.json:

  metron --config config.json

Run back-to-back collections for a dry run, keep the artifacts local:

  metron -c config.json -t 0 -d /tmp/capture

Write the run report as JSON to a file:

  metron -c config.json -o report.json --format json`,
		Flags: []cli.Flag{
			configFlag,
			timeFlag,
			directoryFlag,
			logLevelFlag,
			reportFlag,
			formatFlag,
			metricsAddrFlag,
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			logging.SetDefaultStructuredLoggerWithLevel(name, version, cmd.String("log-level"))
			slog.Info("starting",
				"name", name,
				"version", version,
				"commit", commit,
				"date", date)
			return ctx, nil
		},
		Action: run,
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	outFormat := serializer.Format(cmd.String("format"))
	if outFormat.IsUnknown() {
		return fmt.Errorf("unknown output format: %q", outFormat)
	}

	observation := cmd.Int64("time")
	if observation < 0 {
		return fmt.Errorf("observation time cannot be negative: %d", observation)
	}

	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return err
	}

	// metrics listener lives for the duration of the run only
	var srv *metricsServer
	if addr := cmd.String("metrics-addr"); addr != "" {
		srv = newMetricsServer(addr)
		srv.Start(ctx)
		defer func() {
			if err := srv.Stop(); err != nil {
				slog.Warn("metrics listener shutdown", "error", err)
			}
		}()
	}

	c := &controller.Controller{
		Config:          cfg,
		ObservationTime: time.Duration(observation) * time.Second,
		OutputDir:       cmd.String("directory"),
	}

	rep, runErr := c.Run(ctx)
	if rep != nil {
		writer := serializer.NewFileWriterOrStdout(outFormat, cmd.String("report"))
		defer func() {
			if err := writer.Close(); err != nil {
				slog.Warn("report writer close", "error", err)
			}
		}()
		if err := writer.Serialize(ctx, rep); err != nil {
			slog.Error("cannot write run report", "error", err)
		}
	}
	return runErr
}

// Execute runs the root command. This is called by main.main() and only
// needs to happen once.
func Execute() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle SIGINT/SIGTERM for graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigCh
		fmt.Fprintln(os.Stderr, "\nReceived interrupt signal, shutting down gracefully...")
		cancel()
	}()

	if err := New().Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
