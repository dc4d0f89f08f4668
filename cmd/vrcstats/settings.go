package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/afero"
	"github.com/spf13/pflag"

	"github.com/vrclog/vrcstats-go/internal/config"
	"github.com/vrclog/vrcstats-go/internal/logfinder"
	"github.com/vrclog/vrcstats-go/pkg/vrcstats"
)

// defaultConfigName is looked up in os.UserConfigDir()/vrcstats.
const defaultConfigName = "vrcstats.yaml"

// settings are the effective options after merging the config file and
// the command line. Flags that were set explicitly win.
type settings struct {
	logDir  string
	format  string
	top     int
	workers int
	color   string
	loc     *time.Location
	since   time.Time
	until   time.Time
}

// loadSettings reads the config file named by --config, or the default
// one if it exists, and merges flags over it. The report settings (format,
// top, color) are only taken from flags when report is set.
func loadSettings(flags *pflag.FlagSet, report bool) (*settings, error) {
	file, err := loadConfigFile(afero.NewOsFs(), configPath)
	if err != nil {
		return nil, err
	}
	return resolveSettings(flags, file, report)
}

func loadConfigFile(fsys afero.Fs, path string) (*config.Config, error) {
	explicit := path != ""
	if !explicit {
		dir, err := os.UserConfigDir()
		if err != nil {
			return nil, nil
		}
		path = filepath.Join(dir, "vrcstats", defaultConfigName)
	}

	cfg, err := config.Load(fsys, path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("config file %s: %w", filepath.Base(path), err)
	}
	return cfg, nil
}

func resolveSettings(flags *pflag.FlagSet, file *config.Config, report bool) (*settings, error) {
	if file == nil {
		file = &config.Config{Version: config.SupportedVersion}
	}

	merged := config.Config{
		Version:  config.SupportedVersion,
		LogDir:   stringSetting(flags, "log-dir", file.LogDir),
		Workers:  intSetting(flags, "workers", file.Workers),
		Timezone: stringSetting(flags, "timezone", file.Timezone),
		Since:    stringSetting(flags, "since", file.Since),
		Until:    stringSetting(flags, "until", file.Until),
	}
	if report {
		merged.Format = stringSetting(flags, "format", file.Format)
		merged.Top = intSetting(flags, "top", file.Top)
		merged.Color = stringSetting(flags, "color", file.Color)
		if noColor, err := flags.GetBool("no-color"); err == nil && noColor {
			merged.Color = config.ColorNever
		}
	}
	if err := merged.Validate(); err != nil {
		return nil, fmt.Errorf("invalid option: %w", err)
	}
	if report && merged.Top < 1 {
		return nil, fmt.Errorf("invalid option: --top must be at least 1, got %d", merged.Top)
	}
	if merged.Workers < 1 {
		return nil, fmt.Errorf("invalid option: --workers must be at least 1, got %d", merged.Workers)
	}

	// Validate already parsed these once; errors cannot occur here.
	loc, _ := merged.Location()
	s := &settings{
		logDir:  merged.LogDir,
		format:  merged.Format,
		top:     merged.Top,
		workers: merged.Workers,
		color:   merged.Color,
		loc:     loc,
	}
	s.since, _ = config.ParseTime(merged.Since, loc)
	s.until, _ = config.ParseTime(merged.Until, loc)
	return s, nil
}

// stringSetting returns the flag value when the flag was set or the
// config file has no value, and the config file value otherwise. Flags
// the command does not define always yield the config file value.
func stringSetting(flags *pflag.FlagSet, name, fromFile string) string {
	f := flags.Lookup(name)
	if f == nil {
		return fromFile
	}
	if f.Changed || fromFile == "" {
		return f.Value.String()
	}
	return fromFile
}

func intSetting(flags *pflag.FlagSet, name string, fromFile int) int {
	f := flags.Lookup(name)
	if f == nil {
		return fromFile
	}
	if f.Changed || fromFile == 0 {
		n, _ := strconv.Atoi(f.Value.String())
		return n
	}
	return fromFile
}

// resolveLogDir applies the log directory search order.
func (s *settings) resolveLogDir() (string, error) {
	return logfinder.FindLogDir(s.logDir)
}

func (s *settings) parseOptions(logger *slog.Logger) []vrcstats.ParseOption {
	return []vrcstats.ParseOption{
		vrcstats.WithLogger(logger),
		vrcstats.WithLocation(s.loc),
		vrcstats.WithFileTimeRange(s.since, s.until),
		vrcstats.WithWorkers(s.workers),
	}
}

// colorEnabled decides whether output to fd is colored. NO_COLOR turns
// color off in auto mode.
func colorEnabled(mode string, fd uintptr) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
