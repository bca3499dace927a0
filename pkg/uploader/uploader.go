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

package uploader

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-retryablehttp"
	"golang.org/x/time/rate"

	"github.com/metron-db/metron/pkg/defaults"
	"github.com/metron-db/metron/pkg/errors"
	"github.com/metron-db/metron/pkg/result"
)

// uploadCodeField is the form field carrying the upload authorization code.
const uploadCodeField = "upload_code"

// Target identifies the upload endpoint and its authorization code.
type Target struct {
	URL  string
	Code string
}

// Uploader transmits a finalized artifact set to a remote endpoint.
// The capture controller invokes it exactly once, only on a fully
// successful run.
type Uploader interface {
	Upload(ctx context.Context, target Target, set *result.Set) error
}

// Option configures an HTTPUploader.
type Option func(*HTTPUploader)

// WithRetryMax overrides the maximum number of transport retries.
func WithRetryMax(n int) Option {
	return func(u *HTTPUploader) {
		u.client.RetryMax = n
	}
}

// WithRetryWait overrides the retry backoff bounds.
func WithRetryWait(min, max time.Duration) Option {
	return func(u *HTTPUploader) {
		u.client.RetryWaitMin = min
		u.client.RetryWaitMax = max
	}
}

// WithRateLimit overrides the request pacing limit.
func WithRateLimit(perSecond float64) Option {
	return func(u *HTTPUploader) {
		u.limiter = rate.NewLimiter(rate.Limit(perSecond), 1)
	}
}

// HTTPUploader posts the artifact set as one multipart/form-data request:
// the upload code as a form field plus one file part per artifact, named
// by artifact kind. Transport-level retries with bounded backoff are the
// only retries anywhere in a run.
type HTTPUploader struct {
	client  *retryablehttp.Client
	limiter *rate.Limiter
}

// NewHTTPUploader creates an uploader with the default retry policy and
// request pacing.
func NewHTTPUploader(opts ...Option) *HTTPUploader {
	client := retryablehttp.NewClient()
	client.RetryMax = defaults.UploadRetryMax
	client.RetryWaitMin = defaults.UploadRetryWaitMin
	client.RetryWaitMax = defaults.UploadRetryWaitMax
	client.HTTPClient.Timeout = defaults.HTTPClientTimeout
	client.Logger = nil

	u := &HTTPUploader{
		client:  client,
		limiter: rate.NewLimiter(rate.Limit(defaults.UploadRequestsPerSecond), 1),
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// Upload transmits the artifact set to the target endpoint.
func (u *HTTPUploader) Upload(ctx context.Context, target Target, set *result.Set) error {
	start := time.Now()
	status := "success"
	defer func() {
		uploadDuration.Observe(time.Since(start).Seconds())
		uploadTotal.WithLabelValues(status).Inc()
	}()

	if err := u.limiter.Wait(ctx); err != nil {
		status = "error"
		return errors.Wrap(errors.ErrCodeUploadFailed, "upload canceled while rate limited", err)
	}

	body, contentType, err := buildForm(target.Code, set)
	if err != nil {
		status = "error"
		return err
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, target.URL, body)
	if err != nil {
		status = "error"
		return errors.Wrap(errors.ErrCodeUploadFailed, "cannot build upload request", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := u.client.Do(req)
	if err != nil {
		status = "error"
		return errors.Wrap(errors.ErrCodeUploadFailed, "upload request failed", err)
	}
	defer resp.Body.Close()
	// drain so the transport can reuse the connection
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 1<<16))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		status = "error"
		return errors.NewWithContext(errors.ErrCodeUploadFailed,
			"upload endpoint rejected the artifact set",
			map[string]any{"status": resp.StatusCode, "url": target.URL})
	}

	slog.Info("artifact set uploaded",
		"url", target.URL,
		"artifacts", len(set.Artifacts),
		"status", resp.StatusCode)
	return nil
}

// buildForm assembles the multipart body from the artifact files on disk.
func buildForm(code string, set *result.Set) ([]byte, string, error) {
	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)

	if err := form.WriteField(uploadCodeField, code); err != nil {
		return nil, "", errors.Wrap(errors.ErrCodeUploadFailed, "cannot write upload code field", err)
	}

	for name, path := range set.Artifacts {
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, "", errors.WrapWithContext(errors.ErrCodeUploadFailed,
				"cannot read artifact for upload", err,
				map[string]any{"artifact": name, "path": path})
		}

		part, err := form.CreateFormFile(name, name+".json")
		if err != nil {
			return nil, "", errors.Wrap(errors.ErrCodeUploadFailed, "cannot create form part", err)
		}
		if _, err := part.Write(content); err != nil {
			return nil, "", errors.Wrap(errors.ErrCodeUploadFailed, "cannot write form part", err)
		}
	}

	if err := form.Close(); err != nil {
		return nil, "", errors.Wrap(errors.ErrCodeUploadFailed, "cannot finish multipart form", err)
	}
	return buf.Bytes(), form.FormDataContentType(), nil
}
