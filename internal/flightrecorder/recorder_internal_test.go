package flightrecorder

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Faraz-Ibrar/AI-Powered-Workout-Generation-System/internal/testhelpers"
)

func newTestRecorder(t *testing.T, dir string) *Recorder {
	t.Helper()
	r, err := New(Config{
		Logger:    testhelpers.NewLogger(testhelpers.NewWriter(t)),
		Directory: dir,
		MinAge:    0,
		MaxBytes:  0,
		Cooldown:  time.Minute,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err = r.Start(t.Context()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	t.Cleanup(func() { r.Stop(t.Context()) })
	return r
}

func TestNew_invalidConfig(t *testing.T) {
	file := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(file, nil, 0o600); err != nil {
		t.Fatal(err)
	}
	logger := testhelpers.NewLogger(testhelpers.NewWriter(t))

	tests := []struct {
		name string
		cfg  Config
	}{
		{name: "missing logger", cfg: Config{Logger: nil, Directory: t.TempDir(), MinAge: 0, MaxBytes: 0, Cooldown: 0}},
		{name: "missing directory", cfg: Config{Logger: logger, Directory: "", MinAge: 0, MaxBytes: 0, Cooldown: 0}},
		{name: "directory is a file", cfg: Config{Logger: logger, Directory: file, MinAge: 0, MaxBytes: 0, Cooldown: 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.cfg); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestNew_defaults(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "traces")
	r, err := New(Config{
		Logger:    testhelpers.NewLogger(testhelpers.NewWriter(t)),
		Directory: dir,
		MinAge:    0,
		MaxBytes:  0,
		Cooldown:  0,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if r.minAge != defaultMinAge || r.maxBytes != defaultMaxBytes || r.cooldown != defaultCooldown {
		t.Errorf("defaults not applied: %v %v %v", r.minAge, r.maxBytes, r.cooldown)
	}
	if _, err = os.Stat(dir); err != nil {
		t.Errorf("directory not created: %v", err)
	}
}

func TestRecorder_Capture(t *testing.T) {
	dir := t.TempDir()
	r := newTestRecorder(t, dir)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	r.now = func() time.Time { return now }

	path, err := r.Capture(t.Context(), "generate-timeout")
	if err != nil {
		t.Fatalf("Capture: %v", err)
	}
	if want := filepath.Join(dir, "generate-timeout-20260301-120000.000.trace"); path != want {
		t.Errorf("path = %q, want %q", path, want)
	}

	// Within the cooldown nothing is written.
	now = now.Add(30 * time.Second)
	path, err = r.Capture(t.Context(), "generate-timeout")
	if err != nil || path != "" {
		t.Errorf("Capture during cooldown = %q, %v", path, err)
	}

	now = now.Add(time.Minute)
	if path, err = r.Capture(t.Context(), "generate-timeout"); err != nil || path == "" {
		t.Errorf("Capture after cooldown = %q, %v", path, err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d trace files, want 2", len(entries))
	}
	for _, e := range entries {
		if !strings.HasPrefix(e.Name(), "generate-timeout-") || !strings.HasSuffix(e.Name(), ".trace") {
			t.Errorf("unexpected trace file name %q", e.Name())
		}
	}
}
