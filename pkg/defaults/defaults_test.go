package defaults

import (
	"testing"
	"time"
)

func TestTimeoutRelationships(t *testing.T) {
	tests := []struct {
		name    string
		shorter time.Duration
		longer  time.Duration
	}{
		{
			name:    "connect timeout within query timeout",
			shorter: CollectorConnectTimeout,
			longer:  CollectorQueryTimeout,
		},
		{
			name:    "upload retry wait min within max",
			shorter: UploadRetryWaitMin,
			longer:  UploadRetryWaitMax,
		},
		{
			name:    "upload retry wait max within client timeout",
			shorter: UploadRetryWaitMax,
			longer:  HTTPClientTimeout,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.shorter >= tt.longer {
				t.Errorf("expected %v < %v", tt.shorter, tt.longer)
			}
		})
	}
}

func TestRunDefaults(t *testing.T) {
	if ObservationTime != 300*time.Second {
		t.Errorf("expected 300s observation window, got %v", ObservationTime)
	}
	if OutputDirectory != "output" {
		t.Errorf("expected output directory 'output', got %q", OutputDirectory)
	}
}
