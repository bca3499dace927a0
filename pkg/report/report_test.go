package report

import (
	"testing"
	"time"
)

func TestNew(t *testing.T) {
	r := New("Postgres", "tpcc")

	if r.Kind != KindCaptureReport {
		t.Errorf("expected kind %s, got %s", KindCaptureReport, r.Kind)
	}
	if r.APIVersion != APIVersion {
		t.Errorf("expected apiVersion %s, got %s", APIVersion, r.APIVersion)
	}
	if r.RunID == "" {
		t.Error("expected a run ID")
	}
	if r.DatabaseType != "Postgres" || r.WorkloadName != "tpcc" {
		t.Errorf("run identity not preserved: %+v", r)
	}
	if _, err := time.Parse(time.RFC3339, r.CreatedAt); err != nil {
		t.Errorf("createdAt is not RFC3339: %q", r.CreatedAt)
	}
	if r.Artifacts == nil {
		t.Error("expected initialized artifacts map")
	}
}

func TestNewUniqueRunIDs(t *testing.T) {
	a := New("Postgres", "tpcc")
	b := New("Postgres", "tpcc")
	if a.RunID == b.RunID {
		t.Error("expected distinct run IDs")
	}
}
