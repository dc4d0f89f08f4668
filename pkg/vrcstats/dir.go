package vrcstats

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/vrclog/vrcstats-go/internal/logfinder"
	"github.com/vrclog/vrcstats-go/internal/parser"
	"github.com/vrclog/vrcstats-go/internal/safefile"
)

// FileStatus is the outcome of processing one log file.
type FileStatus string

const (
	// FileFolded means the file had events and is part of Report.Totals.
	FileFolded FileStatus = "folded"
	// FileEmpty means the file had no valid events and was skipped.
	FileEmpty FileStatus = "empty"
	// FileFailed means the file could not be read and was skipped.
	FileFailed FileStatus = "failed"
)

// FileReport describes how one log file was processed.
type FileReport struct {
	Name   string
	Start  time.Time // session start from the file name
	Status FileStatus

	// Events is the number of events extracted.
	Events int
	// Malformed is the number of event lines skipped for bad timestamps.
	Malformed int

	// Result is the file's own aggregate. It is empty unless Status is
	// FileFolded.
	Result Result

	// Err is a *FileError when Status is FileFailed.
	Err error
}

// Report is the outcome of ParseDir.
type Report struct {
	// Files lists every selected log file in name (chronological) order.
	Files []FileReport

	// Totals is the fold of all files with events, or nil if there were
	// none. A nil Totals means "no data", which is different from a
	// folded result with zero time.
	Totals *Result
}

// HasData reports whether at least one file was folded.
func (r *Report) HasData() bool {
	return r != nil && r.Totals != nil
}

// Count returns how many files ended with the given status.
func (r *Report) Count(status FileStatus) int {
	n := 0
	for _, f := range r.Files {
		if f.Status == status {
			n++
		}
	}
	return n
}

// LogFile is a log file found in a log directory.
type LogFile = logfinder.LogFile

// LogFiles lists the log files of dir that ParseDir would process, in name
// (chronological) order. Only WithFS, WithLocation and the file time range
// options affect it.
func LogFiles(dir string, opts ...ParseOption) ([]LogFile, error) {
	cfg := applyParseOptions(opts)
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg.listFiles(dir)
}

// ExtractFile reads a single log file and returns its events in
// chronological order. Read failures are returned as *FileError.
func ExtractFile(ctx context.Context, path string, opts ...ParseOption) ([]Event, error) {
	cfg := applyParseOptions(opts)
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := cfg.readFile(path)
	if err != nil {
		return nil, err
	}
	return parser.Extract(string(data), cfg.location).Events, nil
}

// ParseFile reads, extracts and aggregates a single log file.
// A file without events returns an empty Result and no error.
// Read failures are returned as *FileError.
func ParseFile(ctx context.Context, path string, opts ...ParseOption) (Result, error) {
	cfg := applyParseOptions(opts)
	if err := cfg.validate(); err != nil {
		return Result{}, err
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	rep := processFile(cfg, LogFile{Name: filepath.Base(path), Path: path})
	if rep.Err != nil {
		return Result{}, rep.Err
	}
	if rep.Status == FileEmpty {
		return NewResult(), nil
	}
	return rep.Result, nil
}

// ParseDir processes every log file in dir whose name matches
// output_log_YYYY-MM-DD_HH-MM-SS.txt and folds the per-file results.
//
// Files without valid events and unreadable files are skipped and listed
// in Report.Files. The returned error is non-nil only when dir itself is
// unusable (wrapping ErrLogDirNotFound), an option is invalid, or ctx is
// cancelled.
//
// Example:
//
//	rep, err := vrcstats.ParseDir(ctx, dir, vrcstats.WithWorkers(4))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if !rep.HasData() {
//	    log.Fatal(vrcstats.ErrNoData)
//	}
//	fmt.Println(rep.Totals.CategoryHours())
func ParseDir(ctx context.Context, dir string, opts ...ParseOption) (*Report, error) {
	cfg := applyParseOptions(opts)
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	files, err := cfg.listFiles(dir)
	if err != nil {
		return nil, err
	}
	cfg.logger.Debug("selected log files", "count", len(files), "workers", cfg.workers)

	// Per-file work shares nothing; each goroutine owns one slot.
	reports := make([]FileReport, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.workers)
	for i, f := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			reports[i] = processFile(cfg, f)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("parsing log directory: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parsing log directory: %w", err)
	}

	rep := &Report{Files: reports}
	var folded []Result
	for _, fr := range reports {
		if fr.Status == FileFolded {
			folded = append(folded, fr.Result)
		}
	}
	if len(folded) > 0 {
		totals := Fold(folded...)
		rep.Totals = &totals
	}

	cfg.logger.Debug("log directory processed",
		"folded", rep.Count(FileFolded),
		"empty", rep.Count(FileEmpty),
		"failed", rep.Count(FileFailed),
	)
	return rep, nil
}

func (c *parseConfig) listFiles(dir string) ([]LogFile, error) {
	files, err := logfinder.ListLogFiles(c.fs, dir, c.location)
	if err != nil {
		return nil, err
	}
	return c.selectFiles(files), nil
}

// readFile reads path within the size limit. Errors are *FileError and
// name only the base file name.
func (c *parseConfig) readFile(path string) ([]byte, error) {
	data, err := safefile.ReadRegular(c.fs, path, c.maxFileBytes)
	if err != nil {
		return nil, &FileError{Name: filepath.Base(path), Err: safefile.SanitizePathError(err)}
	}
	return data, nil
}

// selectFiles applies the file time range. Files whose name carries an
// impossible date cannot be placed in time and are dropped when a range
// is set.
func (c *parseConfig) selectFiles(files []LogFile) []LogFile {
	if c.since.IsZero() && c.until.IsZero() {
		return files
	}
	out := files[:0:0]
	for _, f := range files {
		switch {
		case f.Start.IsZero():
			c.logger.Debug("skipping log file with invalid name date", "file", f.Name)
			continue
		case !c.since.IsZero() && f.Start.Before(c.since):
			continue
		case !c.until.IsZero() && !f.Start.Before(c.until):
			continue
		}
		out = append(out, f)
	}
	return out
}

func processFile(cfg *parseConfig, f LogFile) FileReport {
	rep := FileReport{Name: f.Name, Start: f.Start}

	data, err := cfg.readFile(f.Path)
	if err != nil {
		rep.Status = FileFailed
		rep.Err = err
		cfg.logger.Warn("skipping unreadable log file", "file", f.Name, "error", rep.Err)
		return rep
	}

	ext := parser.Extract(string(data), cfg.location)
	rep.Events = len(ext.Events)
	rep.Malformed = ext.Malformed

	res := Aggregate(ext.Events)
	if res.Empty() {
		rep.Status = FileEmpty
		cfg.logger.Debug("no valid events in log file", "file", f.Name, "malformed", ext.Malformed)
		return rep
	}

	rep.Status = FileFolded
	rep.Result = res
	cfg.logger.Debug("parsed log file",
		"file", f.Name,
		"events", rep.Events,
		"malformed", rep.Malformed,
		"first", res.DateRange.First,
		"last", res.DateRange.Last,
	)
	return rep
}
