// Package safefile provides security-hardened file reads.
package safefile

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/afero"
)

// ErrNotRegularFile is returned when attempting to read a file that is not a regular file.
// This includes symlinks, FIFOs, devices, sockets, and directories.
var ErrNotRegularFile = errors.New("not a regular file")

// ErrTooLarge is returned when a file exceeds the caller's size limit.
var ErrTooLarge = errors.New("file too large")

// ReadRegular reads a whole file after verifying it is a regular file.
// maxBytes <= 0 means no size limit.
//
// The function:
//  1. Lstats the path without following symlinks (when fs supports it)
//  2. Opens the file
//  3. Stats the open file to verify it is still regular and within the limit
//  4. Reads through an io.LimitReader so a growing file cannot exceed the limit
//
// Note: There is still a small TOCTOU window between Lstat and Open. Go's
// standard library doesn't expose O_NOFOLLOW in a cross-platform way.
func ReadRegular(fs afero.Fs, path string, maxBytes int64) ([]byte, error) {
	linkInfo, err := lstat(fs, path)
	if err != nil {
		return nil, err
	}

	// Reject symlinks, FIFOs, devices, sockets, directories
	if !linkInfo.Mode().IsRegular() {
		return nil, ErrNotRegularFile
	}

	f, err := fs.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	// Stat the open file to catch a replacement between Lstat and Open
	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	if !info.Mode().IsRegular() {
		return nil, ErrNotRegularFile
	}
	if maxBytes > 0 && info.Size() > maxBytes {
		return nil, fmt.Errorf("%w: %d bytes (max %d)", ErrTooLarge, info.Size(), maxBytes)
	}

	var r io.Reader = f
	if maxBytes > 0 {
		// Read one extra byte to detect growth past the limit
		r = io.LimitReader(f, maxBytes+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if maxBytes > 0 && int64(len(data)) > maxBytes {
		return nil, fmt.Errorf("%w: more than %d bytes", ErrTooLarge, maxBytes)
	}
	return data, nil
}

// SanitizePathError removes the path from os.PathError so error messages
// don't expose file system paths to users.
func SanitizePathError(err error) error {
	var pathErr *os.PathError
	if errors.As(err, &pathErr) {
		return fmt.Errorf("%s: %w", pathErr.Op, pathErr.Err)
	}
	return err
}

func lstat(fs afero.Fs, path string) (os.FileInfo, error) {
	if l, ok := fs.(afero.Lstater); ok {
		info, _, err := l.LstatIfPossible(path)
		return info, err
	}
	return fs.Stat(path)
}
