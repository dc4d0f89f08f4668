package vrcstats

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/spf13/afero"
)

// DefaultMaxFileBytes is the default per-file read limit (512MB).
// VRChat keeps one log per session, and long sessions with verbose
// logging reach a few hundred megabytes.
const DefaultMaxFileBytes = 512 * 1024 * 1024

// ParseOption configures Extract, ParseFile and ParseDir behavior.
type ParseOption func(*parseConfig)

// parseConfig holds internal configuration for parsing.
type parseConfig struct {
	logger       *slog.Logger
	fs           afero.Fs
	location     *time.Location
	since        time.Time
	until        time.Time
	workers      int
	maxFileBytes int64
}

// discardLogger returns a logger that discards all output.
var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// defaultParseConfig returns a parseConfig with sensible defaults.
func defaultParseConfig() *parseConfig {
	return &parseConfig{
		logger:       discardLogger,
		fs:           afero.NewOsFs(),
		location:     time.Local,
		workers:      1,
		maxFileBytes: DefaultMaxFileBytes,
	}
}

// applyParseOptions applies functional options to a parseConfig.
func applyParseOptions(opts []ParseOption) *parseConfig {
	cfg := defaultParseConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(cfg)
		}
	}
	return cfg
}

// validate checks for invalid option combinations.
func (c *parseConfig) validate() error {
	if c.workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.workers)
	}
	if c.maxFileBytes < 0 {
		return fmt.Errorf("maxFileBytes must be non-negative, got %d", c.maxFileBytes)
	}
	if !c.since.IsZero() && !c.until.IsZero() && !c.since.Before(c.until) {
		return fmt.Errorf("since (%s) must be before until (%s)",
			c.since.Format(time.RFC3339), c.until.Format(time.RFC3339))
	}
	return nil
}

// WithLogger sets a logger for per-file diagnostics.
// If logger is nil, logging is disabled (default behavior).
func WithLogger(logger *slog.Logger) ParseOption {
	return func(c *parseConfig) {
		if logger == nil {
			logger = discardLogger
		}
		c.logger = logger
	}
}

// WithFS sets the filesystem log files are read from.
// Default: the operating system filesystem.
func WithFS(fs afero.Fs) ParseOption {
	return func(c *parseConfig) {
		if fs != nil {
			c.fs = fs
		}
	}
}

// WithLocation sets the time zone log timestamps and file names are read in.
// VRChat writes local wall-clock time. Default: time.Local.
func WithLocation(loc *time.Location) ParseOption {
	return func(c *parseConfig) {
		if loc != nil {
			c.location = loc
		}
	}
}

// WithFileTimeRange selects only log files whose name timestamp (the
// session start) is within the range. since is inclusive, until is
// exclusive. Zero values are ignored (no filtering for that boundary).
//
// Selection is per file, never per event, so a session that starts before
// until is counted in full.
func WithFileTimeRange(since, until time.Time) ParseOption {
	return func(c *parseConfig) {
		c.since = since
		c.until = until
	}
}

// WithFileSince selects only log files started at or after since.
func WithFileSince(since time.Time) ParseOption {
	return func(c *parseConfig) {
		c.since = since
	}
}

// WithFileUntil selects only log files started before until.
func WithFileUntil(until time.Time) ParseOption {
	return func(c *parseConfig) {
		c.until = until
	}
}

// WithWorkers sets how many files ParseDir processes concurrently.
// Default: 1 (sequential).
func WithWorkers(n int) ParseOption {
	return func(c *parseConfig) {
		c.workers = n
	}
}

// WithMaxFileBytes sets the maximum size of a single log file.
// Larger files are reported as failed. 0 means unlimited.
// Default: DefaultMaxFileBytes.
func WithMaxFileBytes(n int64) ParseOption {
	return func(c *parseConfig) {
		c.maxFileBytes = n
	}
}
