// Package logfinder provides VRChat log directory and file detection.
package logfinder

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"time"

	"github.com/spf13/afero"
)

// EnvLogDir is the environment variable name for specifying log directory.
const EnvLogDir = "VRCSTATS_LOGDIR"

// Sentinel errors.
var (
	ErrLogDirNotFound = errors.New("log directory not found")
	ErrNoLogFiles     = errors.New("no log files found")
)

// fileNamePattern matches VRChat log file names exactly:
// "output_log_2024-01-15_23-59-59.txt".
// Captures: (1) session start timestamp
var fileNamePattern = regexp.MustCompile(`^output_log_(\d{4}-\d{2}-\d{2}_\d{2}-\d{2}-\d{2})\.txt$`)

const fileNameLayout = "2006-01-02_15-04-05"

// LogFile is a log file selected from a directory.
type LogFile struct {
	// Name is the base name of the file.
	Name string
	// Path is the directory joined with Name.
	Path string
	// Start is the session start encoded in the name. It is zero when the
	// name has the right shape but an impossible date (e.g. month 13).
	Start time.Time
	// ModTime is the file's modification time.
	ModTime time.Time
}

// MatchFileName reports whether name is a VRChat log file name and returns
// the session start it encodes, interpreted in loc (nil means time.Local).
func MatchFileName(name string, loc *time.Location) (time.Time, bool) {
	match := fileNamePattern.FindStringSubmatch(name)
	if match == nil {
		return time.Time{}, false
	}
	if loc == nil {
		loc = time.Local
	}
	start, err := time.ParseInLocation(fileNameLayout, match[1], loc)
	if err != nil {
		return time.Time{}, true
	}
	return start, true
}

// ListLogFiles returns the log files in dir, sorted by name. The fixed-width
// timestamp in the name makes this chronological order.
// Directories are skipped; other non-regular entries are returned so that
// the caller can report them when reading fails.
//
// Returns an error wrapping ErrLogDirNotFound if dir is missing or not a
// directory. An empty result is not an error.
func ListLogFiles(fs afero.Fs, dir string, loc *time.Location) ([]LogFile, error) {
	info, err := fs.Stat(dir)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrLogDirNotFound, filepath.Base(dir))
	}

	entries, err := afero.ReadDir(fs, dir)
	if err != nil {
		return nil, fmt.Errorf("reading log directory: %w", err)
	}

	var files []LogFile
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		start, ok := MatchFileName(e.Name(), loc)
		if !ok {
			continue
		}
		files = append(files, LogFile{
			Name:    e.Name(),
			Path:    filepath.Join(dir, e.Name()),
			Start:   start,
			ModTime: e.ModTime(),
		})
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].Name < files[j].Name
	})
	return files, nil
}

// Latest returns the most recently modified of files.
//
// Returns ErrNoLogFiles if files is empty.
func Latest(files []LogFile) (LogFile, error) {
	var latest LogFile
	found := false
	for _, f := range files {
		if !found || f.ModTime.After(latest.ModTime) {
			latest = f
			found = true
		}
	}
	if !found {
		return LogFile{}, ErrNoLogFiles
	}
	return latest, nil
}

// DefaultLogDirs returns candidate VRChat log directories in priority order.
// The directories are OS-specific (Windows only for VRChat PC).
func DefaultLogDirs() []string {
	localAppData := os.Getenv("LOCALAPPDATA")
	if localAppData == "" {
		// Fallback: try to construct from USERPROFILE
		userProfile := os.Getenv("USERPROFILE")
		if userProfile != "" {
			localAppData = filepath.Join(userProfile, "AppData", "Local")
		}
	}

	if localAppData == "" {
		return nil
	}

	// LocalLow is one level up from Local
	localLow := filepath.Join(filepath.Dir(localAppData), "LocalLow")

	return []string{
		filepath.Join(localLow, "VRChat", "VRChat"),
		filepath.Join(localLow, "VRChat", "vrchat"),
	}
}

// FindLogDir returns the VRChat log directory.
//
// Priority:
//  1. explicit (if non-empty)
//  2. VRCSTATS_LOGDIR environment variable
//  3. Auto-detect from DefaultLogDirs()
//
// An explicit or environment directory only has to exist; an empty one is
// reported later as "no data". Auto-detected candidates must contain log
// files. Returns ErrLogDirNotFound if no valid directory is found.
// The returned path has symlinks resolved for consistency.
func FindLogDir(explicit string) (string, error) {
	// 1. Check explicit
	if explicit != "" {
		if resolved := resolveDir(explicit); resolved != "" {
			return resolved, nil
		}
		return "", fmt.Errorf("%w: specified directory does not exist", ErrLogDirNotFound)
	}

	// 2. Check environment variable
	if envDir := os.Getenv(EnvLogDir); envDir != "" {
		if resolved := resolveDir(envDir); resolved != "" {
			return resolved, nil
		}
		return "", fmt.Errorf("%w: %s environment variable points to invalid directory", ErrLogDirNotFound, EnvLogDir)
	}

	// 3. Auto-detect
	for _, dir := range DefaultLogDirs() {
		if resolved := resolveDir(dir); resolved != "" && hasLogFiles(resolved) {
			return resolved, nil
		}
	}

	return "", ErrLogDirNotFound
}

// resolveDir resolves symlinks and checks the result is a directory.
// Returns the resolved path if valid, empty string otherwise.
func resolveDir(dir string) string {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return ""
	}

	// Resolve symlinks (works with Windows Junctions in Go 1.20+)
	resolved, err := filepath.EvalSymlinks(dir)
	if err != nil {
		// Broken or malicious symlinks are treated as invalid
		return ""
	}
	return resolved
}

func hasLogFiles(dir string) bool {
	files, err := ListLogFiles(afero.NewOsFs(), dir, nil)
	return err == nil && len(files) > 0
}
