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
	"errors"
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/metron-db/metron/pkg/defaults"
)

// metricsServer exposes the Prometheus registry for the lifetime of a
// capture run. It serves /metrics only; there is no health surface
// because the process exits when the run does.
type metricsServer struct {
	srv   *http.Server
	group *errgroup.Group
}

func newMetricsServer(addr string) *metricsServer {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	return &metricsServer{
		srv: &http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: defaults.MetricsReadHeaderTimeout,
		},
	}
}

// Start begins serving in the background. Listen errors surface on Stop.
func (m *metricsServer) Start(ctx context.Context) {
	group, _ := errgroup.WithContext(ctx)
	m.group = group

	group.Go(func() error {
		slog.Info("metrics listener started", "addr", m.srv.Addr)
		if err := m.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
}

// Stop gracefully shuts the listener down and reports any serve error.
func (m *metricsServer) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), defaults.MetricsShutdownTimeout)
	defer cancel()

	if err := m.srv.Shutdown(ctx); err != nil {
		return err
	}
	return m.group.Wait()
}
