// Package config loads the optional vrcstats YAML config file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"
	_ "time/tzdata" // Windows hosts often lack a zoneinfo database

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/vrclog/vrcstats-go/internal/safefile"
)

const (
	// MaxFileSize is the maximum allowed size for a config file (64KB).
	MaxFileSize = 64 * 1024

	// SupportedVersion is the currently supported config file format version.
	SupportedVersion = 1

	// MaxTop is the largest accepted world ranking length.
	MaxTop = 1000

	// MaxWorkers is the largest accepted worker count.
	MaxWorkers = 64
)

// Output formats.
const (
	FormatPretty = "pretty"
	FormatJSON   = "json"
)

// Color modes.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

var (
	formats    = []string{FormatPretty, FormatJSON}
	colorModes = []string{ColorAuto, ColorAlways, ColorNever}
)

// dateLayouts are the accepted forms of since/until, tried in order.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Config mirrors the CLI flags. Zero values mean "not set" and leave the
// flag default in place.
type Config struct {
	Version  int    `yaml:"version"`
	LogDir   string `yaml:"log_dir,omitempty"`
	Format   string `yaml:"format,omitempty"`
	Top      int    `yaml:"top,omitempty"`
	Workers  int    `yaml:"workers,omitempty"`
	Timezone string `yaml:"timezone,omitempty"`
	Since    string `yaml:"since,omitempty"`
	Until    string `yaml:"until,omitempty"`
	Color    string `yaml:"color,omitempty"`
}

// ValidationError represents a schema-level validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
}

// Load reads and parses a config file from fs.
//
// Special files (FIFO, device, symlink) are rejected and the file must
// not exceed MaxFileSize.
//
// Example:
//
//	cfg, err := config.Load(afero.NewOsFs(), "vrcstats.yaml")
//	if err != nil {
//	    log.Fatalf("failed to load config file: %v", err)
//	}
func Load(fs afero.Fs, path string) (*Config, error) {
	data, err := safefile.ReadRegular(fs, path, MaxFileSize)
	switch {
	case errors.Is(err, safefile.ErrNotRegularFile):
		return nil, errors.New("config file must be a regular file (not FIFO, device, or special file)")
	case errors.Is(err, safefile.ErrTooLarge):
		return nil, fmt.Errorf("config file too large (max %d bytes)", MaxFileSize)
	case err != nil:
		return nil, fmt.Errorf("failed to read config file: %w", safefile.SanitizePathError(err))
	}
	return LoadBytes(data)
}

// LoadBytes parses a config file from a byte slice.
func LoadBytes(data []byte) (*Config, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.New("config file is empty")
	}
	if len(data) > MaxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", len(data), MaxFileSize)
	}

	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks field values. Since and until are checked in the
// configured timezone.
func (c *Config) Validate() error {
	if c.Version != SupportedVersion {
		return &ValidationError{
			Field:   "version",
			Message: fmt.Sprintf("unsupported version %d (only version %d is supported)", c.Version, SupportedVersion),
		}
	}
	if c.Format != "" && !slices.Contains(formats, c.Format) {
		return &ValidationError{
			Field:   "format",
			Message: fmt.Sprintf("unknown format %q (valid: %s)", c.Format, strings.Join(formats, ", ")),
		}
	}
	if c.Color != "" && !slices.Contains(colorModes, c.Color) {
		return &ValidationError{
			Field:   "color",
			Message: fmt.Sprintf("unknown color mode %q (valid: %s)", c.Color, strings.Join(colorModes, ", ")),
		}
	}
	if c.Top < 0 || c.Top > MaxTop {
		return &ValidationError{
			Field:   "top",
			Message: fmt.Sprintf("must be between 0 and %d, got %d", MaxTop, c.Top),
		}
	}
	if c.Workers < 0 || c.Workers > MaxWorkers {
		return &ValidationError{
			Field:   "workers",
			Message: fmt.Sprintf("must be between 0 and %d, got %d", MaxWorkers, c.Workers),
		}
	}

	loc, err := c.Location()
	if err != nil {
		return &ValidationError{Field: "timezone", Message: err.Error()}
	}
	since, err := ParseTime(c.Since, loc)
	if err != nil {
		return &ValidationError{Field: "since", Message: err.Error()}
	}
	until, err := ParseTime(c.Until, loc)
	if err != nil {
		return &ValidationError{Field: "until", Message: err.Error()}
	}
	if !since.IsZero() && !until.IsZero() && !since.Before(until) {
		return &ValidationError{Field: "until", Message: "must be after since"}
	}
	return nil
}

// Location returns the configured timezone, time.Local when unset.
func (c *Config) Location() (*time.Location, error) {
	return LoadLocation(c.Timezone)
}

// LoadLocation resolves an IANA zone name. Empty and "Local" mean
// time.Local.
func LoadLocation(name string) (*time.Location, error) {
	if name == "" || name == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("unknown timezone %q", name)
	}
	return loc, nil
}

// ParseTime parses a since/until value. Dates without an offset are read
// in loc. An empty value returns the zero time.
func ParseTime(value string, loc *time.Location) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid time %q (use YYYY-MM-DD or RFC3339)", value)
}
