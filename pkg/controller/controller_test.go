package controller

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/metron-db/metron/pkg/artifact"
	"github.com/metron-db/metron/pkg/collector"
	"github.com/metron-db/metron/pkg/config"
	"github.com/metron-db/metron/pkg/errors"
	"github.com/metron-db/metron/pkg/result"
	"github.com/metron-db/metron/pkg/uploader"
)

func testConfig() config.Config {
	cfg, err := config.Parse([]byte(`{
		"database_type": "postgres",
		"username": "tuner",
		"password": "secret",
		"database_url": "localhost:5432",
		"upload_code": "ABC123",
		"upload_url": "https://tuning.example.com/upload",
		"workload_name": "tpcc"
	}`))
	if err != nil {
		panic(err)
	}
	return cfg
}

func validSnapshot() *artifact.Snapshot {
	snap := artifact.NewSnapshot()
	snap.GlobalSection("global")["reading"] = "1"
	return snap
}

// mockCollector returns canned snapshots and records which operations ran.
type mockCollector struct {
	metrics    *artifact.Snapshot
	parameters *artifact.Snapshot
	version    string

	metricsErr    error
	parametersErr error
	versionErr    error

	metricsCalls    int
	parametersCalls int
	versionCalls    int
}

func (m *mockCollector) CollectMetrics(ctx context.Context) (*artifact.Snapshot, error) {
	m.metricsCalls++
	return m.metrics, m.metricsErr
}

func (m *mockCollector) CollectParameters(ctx context.Context) (*artifact.Snapshot, error) {
	m.parametersCalls++
	return m.parameters, m.parametersErr
}

func (m *mockCollector) CollectVersion(ctx context.Context) (string, error) {
	m.versionCalls++
	return m.version, m.versionErr
}

func newMockCollector() *mockCollector {
	return &mockCollector{
		metrics:    validSnapshot(),
		parameters: validSnapshot(),
		version:    "16.3",
	}
}

// mockFactory hands out a fresh mock collector per Create call.
type mockFactory struct {
	mu      sync.Mutex
	created []*mockCollector
	next    func() *mockCollector
	err     error
}

func (f *mockFactory) Create(dbType config.DatabaseType, target collector.Target) (collector.Collector, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	c := newMockCollector()
	if f.next != nil {
		c = f.next()
	}
	f.created = append(f.created, c)
	return c, nil
}

// mockUploader records invocations.
type mockUploader struct {
	calls  int
	target uploader.Target
	set    *result.Set
	err    error
}

func (u *mockUploader) Upload(ctx context.Context, target uploader.Target, set *result.Set) error {
	u.calls++
	u.target = target
	u.set = set
	return u.err
}

func TestRunSuccess(t *testing.T) {
	dir := t.TempDir()
	factory := &mockFactory{}
	up := &mockUploader{}

	c := &Controller{
		Config:          testConfig(),
		ObservationTime: 0,
		OutputDir:       dir,
		Factory:         factory,
		Uploader:        up,
	}

	started := time.Now()
	rep, err := c.Run(t.Context())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if c.State() != StateComplete {
		t.Errorf("expected COMPLETE, got %s", c.State())
	}

	// four schema-valid artifacts in {outputDirectory}/Postgres/
	for _, kind := range artifact.Kinds() {
		path := filepath.Join(dir, "Postgres", kind.Filename())
		if _, err := os.Stat(path); err != nil {
			t.Errorf("missing artifact %s: %v", kind, err)
		}
	}

	// summary content matches the run identity and timing invariants
	raw, err := os.ReadFile(filepath.Join(dir, "Postgres", "summary.json"))
	if err != nil {
		t.Fatal(err)
	}
	var summary artifact.Summary
	if err := json.Unmarshal(raw, &summary); err != nil {
		t.Fatal(err)
	}
	if summary.DatabaseType != "Postgres" {
		t.Errorf("summary database_type = %q", summary.DatabaseType)
	}
	if summary.WorkloadName != "tpcc" {
		t.Errorf("summary workload_name = %q", summary.WorkloadName)
	}
	if summary.DatabaseVersion != "16.3" {
		t.Errorf("summary database_version = %q", summary.DatabaseVersion)
	}
	if summary.EndTime < summary.StartTime {
		t.Errorf("end_time %d before start_time %d", summary.EndTime, summary.StartTime)
	}
	if summary.ObservationTime != 0 {
		t.Errorf("summary observation_time = %d, want 0", summary.ObservationTime)
	}
	if summary.StartTime < started.UnixMilli() {
		t.Errorf("start_time %d predates the run", summary.StartTime)
	}

	// exactly one upload with the full set and the configured credentials
	if up.calls != 1 {
		t.Fatalf("expected exactly one upload, got %d", up.calls)
	}
	if len(up.set.Artifacts) != 4 {
		t.Errorf("expected 4 artifacts in uploaded set, got %d", len(up.set.Artifacts))
	}
	if up.target.Code != "ABC123" || up.target.URL != "https://tuning.example.com/upload" {
		t.Errorf("unexpected upload target: %+v", up.target)
	}

	// a fresh collector instance for the after phase
	if len(factory.created) != 2 {
		t.Fatalf("expected 2 collector instances, got %d", len(factory.created))
	}
	first, second := factory.created[0], factory.created[1]
	if first == second {
		t.Error("expected distinct collector instances")
	}
	if first.metricsCalls != 1 || first.parametersCalls != 1 || first.versionCalls != 1 {
		t.Errorf("unexpected first collector calls: %+v", first)
	}
	if second.metricsCalls != 1 || second.parametersCalls != 0 || second.versionCalls != 0 {
		t.Errorf("after phase must collect metrics only: %+v", second)
	}

	// report reflects the run
	if rep == nil {
		t.Fatal("expected report")
	}
	if !rep.Upload.Delivered {
		t.Error("expected delivered upload")
	}
	if len(rep.Artifacts) != 4 {
		t.Errorf("expected 4 report artifacts, got %d", len(rep.Artifacts))
	}
}

func TestRunBeforePhaseSchemaFailure(t *testing.T) {
	dir := t.TempDir()
	factory := &mockFactory{
		next: func() *mockCollector {
			c := newMockCollector()
			// nil global serializes as null and fails the output schema
			c.metrics = &artifact.Snapshot{}
			return c
		},
	}
	up := &mockUploader{}

	c := &Controller{
		Config:    testConfig(),
		OutputDir: dir,
		Factory:   factory,
		Uploader:  up,
	}

	_, err := c.Run(t.Context())
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if code := errors.CodeOf(err); code != errors.ErrCodeSchemaInvalid {
		t.Errorf("expected SCHEMA_INVALID, got %s", code)
	}
	if c.State() != StateFailed {
		t.Errorf("expected FAILED, got %s", c.State())
	}

	// aborts before the wait: nothing written, nothing uploaded
	entries, _ := os.ReadDir(filepath.Join(dir, "Postgres"))
	if len(entries) != 0 {
		t.Errorf("expected no artifacts, found %d", len(entries))
	}
	if up.calls != 0 {
		t.Errorf("expected no upload, got %d", up.calls)
	}
}

func TestRunCollectionFailure(t *testing.T) {
	dir := t.TempDir()
	factory := &mockFactory{
		next: func() *mockCollector {
			c := newMockCollector()
			c.metricsErr = errors.New(errors.ErrCodeCollectionFailed, "introspection rejected")
			return c
		},
	}
	up := &mockUploader{}

	c := &Controller{Config: testConfig(), OutputDir: dir, Factory: factory, Uploader: up}

	_, err := c.Run(t.Context())
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if code := errors.CodeOf(err); code != errors.ErrCodeCollectionFailed {
		t.Errorf("expected COLLECTION_FAILED, got %s", code)
	}
	if up.calls != 0 {
		t.Error("expected no upload after collection failure")
	}
}

func TestRunUnsupportedDatabase(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig()
	cfg.DatabaseType = config.DatabaseType("Oracle")
	up := &mockUploader{}

	c := &Controller{Config: cfg, OutputDir: dir, Uploader: up}

	_, err := c.Run(t.Context())
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if code := errors.CodeOf(err); code != errors.ErrCodeUnsupportedDatabase {
		t.Errorf("expected UNSUPPORTED_DATABASE, got %s", code)
	}
	if c.State() != StateFailed {
		t.Errorf("expected FAILED, got %s", c.State())
	}
	if up.calls != 0 {
		t.Error("expected no upload")
	}
}

func TestRunInterruptedWait(t *testing.T) {
	dir := t.TempDir()
	factory := &mockFactory{}
	up := &mockUploader{}

	ctx, cancel := context.WithCancel(t.Context())

	c := &Controller{
		Config:          testConfig(),
		ObservationTime: time.Hour,
		OutputDir:       dir,
		Factory:         factory,
		Uploader:        up,
	}

	done := make(chan error, 1)
	go func() {
		_, err := c.Run(ctx)
		done <- err
	}()

	// let the before phase land, then interrupt the wait
	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if code := errors.CodeOf(err); code != errors.ErrCodeInterrupted {
			t.Errorf("expected INTERRUPTED, got %s (%v)", code, err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("run did not abort after interruption")
	}

	// before-phase artifacts exist, after-phase artifacts do not
	for _, kind := range []artifact.Kind{artifact.KindMetricsBefore, artifact.KindKnobs} {
		if _, err := os.Stat(filepath.Join(dir, "Postgres", kind.Filename())); err != nil {
			t.Errorf("expected %s to be written: %v", kind, err)
		}
	}
	for _, kind := range []artifact.Kind{artifact.KindSummary, artifact.KindMetricsAfter} {
		if _, err := os.Stat(filepath.Join(dir, "Postgres", kind.Filename())); err == nil {
			t.Errorf("expected %s to be absent", kind)
		}
	}
	if up.calls != 0 {
		t.Error("expected no upload after interruption")
	}
}

func TestRunWriteFailureSkipsUpload(t *testing.T) {
	base := t.TempDir()
	// occupy the artifact directory path with a file to force a write failure
	if err := os.WriteFile(filepath.Join(base, "Postgres"), []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}
	up := &mockUploader{}

	c := &Controller{Config: testConfig(), OutputDir: base, Factory: &mockFactory{}, Uploader: up}

	_, err := c.Run(t.Context())
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if code := errors.CodeOf(err); code != errors.ErrCodeIOFailed {
		t.Errorf("expected IO_FAILED, got %s", code)
	}
	if up.calls != 0 {
		t.Error("write failures must never lead to an upload")
	}
}

func TestRunUploadFailure(t *testing.T) {
	dir := t.TempDir()
	up := &mockUploader{err: errors.New(errors.ErrCodeUploadFailed, "endpoint rejected")}

	c := &Controller{Config: testConfig(), OutputDir: dir, Factory: &mockFactory{}, Uploader: up}

	rep, err := c.Run(t.Context())
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if code := errors.CodeOf(err); code != errors.ErrCodeUploadFailed {
		t.Errorf("expected UPLOAD_FAILED, got %s", code)
	}

	// the capture itself completed; the report records the failed delivery
	if c.State() != StateComplete {
		t.Errorf("expected COMPLETE, got %s", c.State())
	}
	if rep == nil {
		t.Fatal("expected report alongside upload error")
	}
	if rep.Upload.Delivered {
		t.Error("expected undelivered upload in report")
	}
	if up.calls != 1 {
		t.Errorf("expected exactly one upload attempt, got %d", up.calls)
	}
}

func TestRunCanceledBeforeStart(t *testing.T) {
	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	dir := t.TempDir()
	up := &mockUploader{}
	c := &Controller{Config: testConfig(), OutputDir: dir, Factory: &mockFactory{}, Uploader: up}

	_, err := c.Run(ctx)
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if code := errors.CodeOf(err); code != errors.ErrCodeInterrupted {
		t.Errorf("expected INTERRUPTED, got %s", code)
	}
	if entries, _ := os.ReadDir(dir); len(entries) != 0 {
		t.Error("expected no artifacts for a canceled run")
	}
}

func TestRunChecksumManifest(t *testing.T) {
	dir := t.TempDir()
	c := &Controller{Config: testConfig(), OutputDir: dir, Factory: &mockFactory{}, Uploader: &mockUploader{}}

	if _, err := c.Run(t.Context()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	manifest, err := os.ReadFile(filepath.Join(dir, "Postgres", result.ChecksumFileName))
	if err != nil {
		t.Fatalf("expected checksum manifest: %v", err)
	}
	for _, kind := range artifact.Kinds() {
		if !containsLineFor(string(manifest), kind.Filename()) {
			t.Errorf("manifest missing entry for %s", kind.Filename())
		}
	}
}

func containsLineFor(manifest, filename string) bool {
	for _, line := range splitLines(manifest) {
		if len(line) > len(filename) && line[len(line)-len(filename):] == filename {
			return true
		}
	}
	return false
}

func splitLines(s string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			lines = append(lines, s[start:i])
			start = i + 1
		}
	}
	if start < len(s) {
		lines = append(lines, s[start:])
	}
	return lines
}
