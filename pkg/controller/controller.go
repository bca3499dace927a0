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

package controller

import (
	"context"
	"log/slog"
	"time"

	"github.com/metron-db/metron/pkg/artifact"
	"github.com/metron-db/metron/pkg/collector"
	"github.com/metron-db/metron/pkg/config"
	"github.com/metron-db/metron/pkg/errors"
	"github.com/metron-db/metron/pkg/report"
	"github.com/metron-db/metron/pkg/result"
	"github.com/metron-db/metron/pkg/uploader"
)

// State is the capture run lifecycle state.
type State string

const (
	StateInit             State = "INIT"
	StateCollectingBefore State = "COLLECTING_BEFORE"
	StateWaiting          State = "WAITING"
	StateCollectingAfter  State = "COLLECTING_AFTER"
	StateSummarizing      State = "SUMMARIZING"
	StateComplete         State = "COMPLETE"
	StateFailed           State = "FAILED"
)

// Controller drives one capture run: collect the before snapshots, wait
// out the observation window, summarize, collect the after snapshot, and
// hand the finalized artifact set to the uploader. The run is strictly
// sequential; the only suspension point is the observation wait.
type Controller struct {
	// Config is the validated run configuration, owned by the controller
	// for the lifetime of the run.
	Config config.Config

	// ObservationTime is the wait between the before and after phases.
	// Zero is valid and runs the phases back to back.
	ObservationTime time.Duration

	// OutputDir is the base directory for result artifacts.
	OutputDir string

	// Factory creates collectors. If nil, the default factory is used.
	Factory collector.Factory

	// Uploader delivers the finalized set. If nil, the default HTTP
	// uploader is used.
	Uploader uploader.Uploader

	state State
}

// State returns the current lifecycle state of the run.
func (c *Controller) State() State {
	if c.state == "" {
		return StateInit
	}
	return c.state
}

func (c *Controller) transition(next State) {
	slog.Debug("state transition", "from", string(c.State()), "to", string(next))
	c.state = next
}

// fail moves the run to the terminal FAILED state. No retry happens
// anywhere in the run; the first failure wins.
func (c *Controller) fail(err error) error {
	slog.Error("capture run failed",
		"phase", string(c.State()),
		"code", string(errors.CodeOf(err)),
		"error", err)
	c.state = StateFailed
	return err
}

// Run executes the capture. On success it returns the run report with the
// artifact locations and upload outcome. A non-nil report with a non-nil
// error means the capture itself completed but delivery failed.
func (c *Controller) Run(ctx context.Context) (*report.CaptureReport, error) {
	if c.Factory == nil {
		c.Factory = collector.NewDefaultFactory()
	}
	if c.Uploader == nil {
		c.Uploader = uploader.NewHTTPUploader()
	}

	c.state = StateInit
	runStart := time.Now()
	defer func() {
		runDuration.Observe(time.Since(runStart).Seconds())
		status := "error"
		if c.state == StateComplete {
			status = "success"
		}
		runsTotal.WithLabelValues(status).Inc()
	}()

	if err := ctx.Err(); err != nil {
		return nil, c.fail(errors.Wrap(errors.ErrCodeInterrupted, "run canceled before collection", err))
	}

	target := collector.Target{
		URL:      c.Config.DatabaseURL,
		Username: c.Config.Username,
		Password: c.Config.Password,
	}
	writer := result.NewWriter(c.OutputDir, c.Config.DatabaseName())

	// before phase: metrics first, then knobs, each gated and persisted
	// before the next step runs
	c.transition(StateCollectingBefore)
	phaseStart := time.Now()

	first, err := c.Factory.Create(c.Config.DatabaseType, target)
	if err != nil {
		return nil, c.fail(err)
	}

	slog.Info("first collection of metrics before the workload",
		"database_type", c.Config.DatabaseName())
	metricsBefore, err := first.CollectMetrics(ctx)
	if err != nil {
		return nil, c.fail(err)
	}
	if err := c.persist(writer, artifact.KindMetricsBefore, metricsBefore); err != nil {
		return nil, c.fail(err)
	}

	knobs, err := first.CollectParameters(ctx)
	if err != nil {
		return nil, c.fail(err)
	}
	if err := c.persist(writer, artifact.KindKnobs, knobs); err != nil {
		return nil, c.fail(err)
	}
	phaseDuration.WithLabelValues("collecting_before").Observe(time.Since(phaseStart).Seconds())

	// observation window: a single blocking wait with no activity against
	// the target, so the after snapshot reflects workload effect only
	c.transition(StateWaiting)
	startTime := time.Now()
	slog.Info("starting the experiment", "observation_time", c.ObservationTime.String())

	if err := c.wait(ctx); err != nil {
		return nil, c.fail(err)
	}

	endTime := time.Now()
	slog.Info("done running the experiment")
	phaseDuration.WithLabelValues("waiting").Observe(endTime.Sub(startTime).Seconds())

	version, err := first.CollectVersion(ctx)
	if err != nil {
		return nil, c.fail(err)
	}

	summary := artifact.NewSummary(startTime, endTime, c.ObservationTime,
		c.Config.DatabaseName(), version, c.Config.WorkloadName)
	if err := c.persist(writer, artifact.KindSummary, summary); err != nil {
		return nil, c.fail(err)
	}

	// after phase: a fresh collector instance, metrics only
	c.transition(StateCollectingAfter)
	phaseStart = time.Now()

	if err := ctx.Err(); err != nil {
		return nil, c.fail(errors.Wrap(errors.ErrCodeInterrupted, "run canceled before after-phase collection", err))
	}

	slog.Info("second collection of metrics after the workload")
	second, err := c.Factory.Create(c.Config.DatabaseType, target)
	if err != nil {
		return nil, c.fail(err)
	}
	metricsAfter, err := second.CollectMetrics(ctx)
	if err != nil {
		return nil, c.fail(err)
	}
	if err := c.persist(writer, artifact.KindMetricsAfter, metricsAfter); err != nil {
		return nil, c.fail(err)
	}
	phaseDuration.WithLabelValues("collecting_after").Observe(time.Since(phaseStart).Seconds())

	c.transition(StateSummarizing)
	set, err := writer.Finalize()
	if err != nil {
		return nil, c.fail(err)
	}

	rep := report.New(c.Config.DatabaseName(), c.Config.WorkloadName)
	rep.DatabaseVersion = version
	rep.StartTime = startTime.UTC()
	rep.EndTime = endTime.UTC()
	rep.ObservationSeconds = int64(c.ObservationTime / time.Second)
	for name, path := range set.Artifacts {
		rep.Artifacts[name] = report.Artifact{Path: path, Checksum: set.Checksums[name]}
	}
	rep.Upload.URL = c.Config.UploadURL

	c.transition(StateComplete)

	// the uploader is invoked exactly once, only on a complete set
	uploadTarget := uploader.Target{URL: c.Config.UploadURL, Code: c.Config.UploadCode}
	if err := c.Uploader.Upload(ctx, uploadTarget, set); err != nil {
		slog.Error("artifact set delivery failed", "error", err)
		return rep, err
	}
	rep.Upload.Delivered = true

	slog.Info("capture run complete",
		"run_id", rep.RunID,
		"dir", set.Dir,
		"artifacts", len(set.Artifacts))
	return rep, nil
}

// wait blocks for the observation window. Interruption is fatal: the run
// produces no after-phase artifacts and never uploads.
func (c *Controller) wait(ctx context.Context) error {
	if c.ObservationTime <= 0 {
		if err := ctx.Err(); err != nil {
			return errors.Wrap(errors.ErrCodeInterrupted, "observation wait interrupted", err)
		}
		return nil
	}

	timer := time.NewTimer(c.ObservationTime)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return errors.Wrap(errors.ErrCodeInterrupted, "observation wait interrupted", ctx.Err())
	}
}

// persist gates the payload through its schema and writes the artifact.
func (c *Controller) persist(writer *result.Writer, kind artifact.Kind, payload any) error {
	doc, err := artifact.NewDocument(kind, payload)
	if err != nil {
		return err
	}
	artifactBytes.WithLabelValues(kind.String()).Set(float64(len(doc.Body())))

	if _, err := writer.Write(doc); err != nil {
		return err
	}
	return nil
}
