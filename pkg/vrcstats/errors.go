package vrcstats

import (
	"errors"
	"fmt"

	"github.com/vrclog/vrcstats-go/internal/logfinder"
	"github.com/vrclog/vrcstats-go/internal/parser"
	"github.com/vrclog/vrcstats-go/internal/safefile"
)

// Sentinel errors.
var (
	// ErrLogDirNotFound is returned when the log directory is missing or
	// not a directory. It is fatal for ParseDir.
	ErrLogDirNotFound = logfinder.ErrLogDirNotFound

	// ErrNoData reports that no log file yielded a valid event. ParseDir
	// signals this with a nil Report.Totals; callers that treat it as an
	// error use this value.
	ErrNoData = errors.New("no valid log data found")

	// ErrMalformedTimestamp is returned by ParseLine for event lines with an
	// invalid timestamp.
	ErrMalformedTimestamp = parser.ErrMalformedTimestamp

	// ErrNotRegularFile is wrapped by FileError for symlinks, FIFOs and
	// other special files.
	ErrNotRegularFile = safefile.ErrNotRegularFile

	// ErrFileTooLarge is wrapped by FileError for files over the size limit.
	ErrFileTooLarge = safefile.ErrTooLarge
)

// FileError is a per-file failure. It excludes the file from the fold but
// never stops ParseDir.
type FileError struct {
	// Name is the base name of the file. Full paths are not included to
	// avoid leaking user directory names.
	Name string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("log file %s: %v", e.Name, e.Err)
}

// Unwrap returns the underlying cause of the error.
func (e *FileError) Unwrap() error {
	return e.Err
}
