// Package flightrecorder keeps a rolling execution trace in memory and dumps it to disk when a plan generation
// overruns its deadline.
package flightrecorder

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime/trace"
	"sync/atomic"
	"time"
)

const (
	defaultMinAge   = 2 * time.Minute
	defaultMaxBytes = 32 * 1024 * 1024
	defaultCooldown = 10 * time.Minute
)

// Config configures a Recorder. Zero durations and sizes fall back to defaults.
type Config struct {
	Logger *slog.Logger
	// Directory receives the captured trace files. It is created if missing.
	Directory string
	MinAge    time.Duration
	MaxBytes  uint64
	// Cooldown is the minimum time between two captures.
	Cooldown time.Duration
}

// Recorder wraps a [trace.FlightRecorder] and rate limits snapshots.
type Recorder struct {
	logger    *slog.Logger
	fr        *trace.FlightRecorder
	directory string
	minAge    time.Duration
	maxBytes  uint64
	cooldown  time.Duration
	now       func() time.Time
	// lastCapture holds the Unix nanoseconds of the latest snapshot.
	lastCapture atomic.Int64
}

// New validates cfg and prepares the trace directory. Call Start to begin recording.
func New(cfg Config) (*Recorder, error) {
	if cfg.Logger == nil {
		return nil, errors.New("logger is required")
	}
	if cfg.Directory == "" {
		return nil, errors.New("trace directory is required")
	}
	if err := os.MkdirAll(cfg.Directory, 0o750); err != nil {
		return nil, fmt.Errorf("create trace directory: %w", err)
	}
	if stat, err := os.Stat(cfg.Directory); err != nil {
		return nil, fmt.Errorf("stat trace directory: %w", err)
	} else if !stat.IsDir() {
		return nil, fmt.Errorf("trace path is not a directory: %s", cfg.Directory)
	}

	r := &Recorder{ //nolint:exhaustruct // fr is set below and lastCapture starts at zero.
		logger:    cfg.Logger,
		directory: cfg.Directory,
		minAge:    cmpOr(cfg.MinAge, defaultMinAge),
		maxBytes:  cmpOr(cfg.MaxBytes, defaultMaxBytes),
		cooldown:  cmpOr(cfg.Cooldown, defaultCooldown),
		now:       time.Now,
	}
	r.fr = trace.NewFlightRecorder(trace.FlightRecorderConfig{
		MinAge:   r.minAge,
		MaxBytes: r.maxBytes,
	})
	return r, nil
}

func cmpOr[T comparable](v, fallback T) T {
	var zero T
	if v == zero {
		return fallback
	}
	return v
}

// Start begins recording. Only one flight recorder may run per process.
func (r *Recorder) Start(ctx context.Context) error {
	if err := r.fr.Start(); err != nil {
		return fmt.Errorf("start flight recorder: %w", err)
	}
	r.logger.LogAttrs(ctx, slog.LevelInfo, "flight recorder started",
		slog.String("directory", r.directory),
		slog.Duration("min_age", r.minAge),
		slog.Uint64("max_bytes", r.maxBytes),
		slog.Duration("cooldown", r.cooldown))
	return nil
}

// Stop ends recording.
func (r *Recorder) Stop(ctx context.Context) {
	r.fr.Stop()
	r.logger.LogAttrs(ctx, slog.LevelInfo, "flight recorder stopped")
}

// Capture writes the buffered trace to <directory>/<reason>-<timestamp>.trace and returns the file path. It returns
// an empty path when a capture happened within the cooldown or another goroutine won the race to capture.
func (r *Recorder) Capture(ctx context.Context, reason string) (string, error) {
	now := r.now()
	last := r.lastCapture.Load()
	if last != 0 && now.Sub(time.Unix(0, last)) < r.cooldown {
		r.logger.LogAttrs(ctx, slog.LevelDebug, "skipping trace capture during cooldown",
			slog.Time("last_capture", time.Unix(0, last)))
		return "", nil
	}
	if !r.lastCapture.CompareAndSwap(last, now.UnixNano()) {
		return "", nil
	}

	path := filepath.Join(r.directory, fmt.Sprintf("%s-%s.trace", reason, now.UTC().Format("20060102-150405.000")))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create trace file: %w", err)
	}
	n, err := r.fr.WriteTo(f)
	if closeErr := f.Close(); closeErr != nil {
		err = errors.Join(err, closeErr)
	}
	if err != nil {
		return "", fmt.Errorf("write trace file %s: %w", path, err)
	}

	r.logger.LogAttrs(ctx, slog.LevelWarn, "captured execution trace",
		slog.String("reason", reason), slog.String("file", path), slog.Int64("bytes", n))
	return path, nil
}
