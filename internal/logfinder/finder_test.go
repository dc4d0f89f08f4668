package logfinder

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/afero"
)

func TestMatchFileName(t *testing.T) {
	tests := []struct {
		name      string
		wantOK    bool
		wantStart time.Time
	}{
		{"output_log_2024-01-15_23-59-59.txt", true, time.Date(2024, 1, 15, 23, 59, 59, 0, time.UTC)},
		{"output_log_2024-13-15_23-59-59.txt", true, time.Time{}},
		{"output_log_2024-1-15_23-59-59.txt", false, time.Time{}},
		{"output_log_2024-01-15_23-59-59.txt.bak", false, time.Time{}},
		{"old_output_log_2024-01-15_23-59-59.txt", false, time.Time{}},
		{"output_log_2024-01-15_23-59-59.log", false, time.Time{}},
		{"output_log_test.txt", false, time.Time{}},
		{"", false, time.Time{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, ok := MatchFileName(tt.name, time.UTC)
			if ok != tt.wantOK {
				t.Fatalf("MatchFileName() ok = %v, want %v", ok, tt.wantOK)
			}
			if !start.Equal(tt.wantStart) {
				t.Errorf("MatchFileName() start = %v, want %v", start, tt.wantStart)
			}
		})
	}
}

func TestListLogFiles(t *testing.T) {
	fs := afero.NewMemMapFs()
	names := []string{
		"output_log_2024-01-03_00-00-00.txt",
		"output_log_2024-01-01_12-30-00.txt",
		"output_log_2024-01-02_00-00-00.txt",
		"output_log_test.txt",
		"Player.log",
	}
	for _, name := range names {
		if err := afero.WriteFile(fs, filepath.Join("/logs", name), []byte("test"), 0644); err != nil {
			t.Fatal(err)
		}
	}
	if err := fs.MkdirAll("/logs/output_log_2024-01-04_00-00-00.txt", 0755); err != nil {
		t.Fatal(err)
	}

	got, err := ListLogFiles(fs, "/logs", time.UTC)
	if err != nil {
		t.Fatalf("ListLogFiles() error = %v", err)
	}

	want := []string{
		"output_log_2024-01-01_12-30-00.txt",
		"output_log_2024-01-02_00-00-00.txt",
		"output_log_2024-01-03_00-00-00.txt",
	}
	if len(got) != len(want) {
		t.Fatalf("ListLogFiles() returned %d files, want %d", len(got), len(want))
	}
	for i, name := range want {
		if got[i].Name != name {
			t.Errorf("ListLogFiles()[%d].Name = %q, want %q", i, got[i].Name, name)
		}
		if got[i].Path != filepath.Join("/logs", name) {
			t.Errorf("ListLogFiles()[%d].Path = %q", i, got[i].Path)
		}
	}
	wantStart := time.Date(2024, 1, 1, 12, 30, 0, 0, time.UTC)
	if !got[0].Start.Equal(wantStart) {
		t.Errorf("ListLogFiles()[0].Start = %v, want %v", got[0].Start, wantStart)
	}
}

func TestListLogFiles_EmptyDir(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := fs.MkdirAll("/logs", 0755); err != nil {
		t.Fatal(err)
	}

	got, err := ListLogFiles(fs, "/logs", nil)
	if err != nil {
		t.Fatalf("ListLogFiles() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("ListLogFiles() returned %d files, want 0", len(got))
	}
}

func TestListLogFiles_NotADirectory(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, "/logs.txt", []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	for _, dir := range []string{"/missing", "/logs.txt"} {
		_, err := ListLogFiles(fs, dir, nil)
		if !errors.Is(err, ErrLogDirNotFound) {
			t.Errorf("ListLogFiles(%q) error = %v, want %v", dir, err, ErrLogDirNotFound)
		}
	}
}

func TestLatest(t *testing.T) {
	fs := afero.NewMemMapFs()

	// Name order and modification order deliberately disagree.
	files := []string{
		"output_log_2024-01-03_00-00-00.txt",
		"output_log_2024-01-01_00-00-00.txt",
		"output_log_2024-01-02_00-00-00.txt",
	}
	base := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)
	for i, name := range files {
		path := filepath.Join("/logs", name)
		if err := afero.WriteFile(fs, path, []byte("test"), 0644); err != nil {
			t.Fatal(err)
		}
		modTime := base.Add(time.Duration(i) * time.Hour)
		if err := fs.Chtimes(path, modTime, modTime); err != nil {
			t.Fatal(err)
		}
	}

	listed, err := ListLogFiles(fs, "/logs", time.UTC)
	if err != nil {
		t.Fatalf("ListLogFiles() error = %v", err)
	}
	got, err := Latest(listed)
	if err != nil {
		t.Fatalf("Latest() error = %v", err)
	}

	want := files[len(files)-1]
	if got.Name != want {
		t.Errorf("Latest() = %v, want %v", got.Name, want)
	}
}

func TestLatest_NoFiles(t *testing.T) {
	for _, files := range [][]LogFile{nil, {}} {
		_, err := Latest(files)
		if !errors.Is(err, ErrNoLogFiles) {
			t.Errorf("Latest(%v) error = %v, want %v", files, err, ErrNoLogFiles)
		}
	}
}

func TestFindLogDir_EnvVar(t *testing.T) {
	dir := resolvedTempDir(t)
	t.Setenv(EnvLogDir, dir)

	got, err := FindLogDir("")
	if err != nil {
		t.Fatalf("FindLogDir() error = %v", err)
	}
	if got != dir {
		t.Errorf("FindLogDir() = %v, want %v", got, dir)
	}
}

func TestFindLogDir_Explicit(t *testing.T) {
	dir := resolvedTempDir(t)

	// Explicit should take priority over env
	t.Setenv(EnvLogDir, "/some/other/path")

	got, err := FindLogDir(dir)
	if err != nil {
		t.Fatalf("FindLogDir() error = %v", err)
	}
	if got != dir {
		t.Errorf("FindLogDir() = %v, want %v", got, dir)
	}
}

func TestFindLogDir_ExplicitInvalid(t *testing.T) {
	_, err := FindLogDir("/nonexistent/path")
	if !errors.Is(err, ErrLogDirNotFound) {
		t.Errorf("FindLogDir() error = %v, want %v", err, ErrLogDirNotFound)
	}
}

func TestFindLogDir_EnvVarInvalid(t *testing.T) {
	t.Setenv(EnvLogDir, "/nonexistent/path")

	_, err := FindLogDir("")
	if !errors.Is(err, ErrLogDirNotFound) {
		t.Errorf("FindLogDir() error = %v, want %v", err, ErrLogDirNotFound)
	}
}

func TestHasLogFiles(t *testing.T) {
	dir := t.TempDir()
	if hasLogFiles(dir) {
		t.Error("hasLogFiles() = true, want false for empty dir")
	}

	logFile := filepath.Join(dir, "output_log_2024-01-01_00-00-00.txt")
	if err := os.WriteFile(logFile, []byte("test"), 0644); err != nil {
		t.Fatal(err)
	}
	if !hasLogFiles(dir) {
		t.Error("hasLogFiles() = false, want true for dir with log file")
	}
}

// resolvedTempDir returns a temp dir with symlinks resolved, since FindLogDir
// resolves them too (macOS /var is a symlink).
func resolvedTempDir(t *testing.T) string {
	t.Helper()
	dir, err := filepath.EvalSymlinks(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	return dir
}
