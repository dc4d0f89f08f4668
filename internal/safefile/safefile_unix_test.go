//go:build !windows

package safefile

import (
	"errors"
	"os"
	"path/filepath"
	"syscall"
	"testing"

	"github.com/spf13/afero"
)

func TestReadRegular_RejectsFIFO(t *testing.T) {
	dir := t.TempDir()
	fifo := filepath.Join(dir, "fifo")

	if err := syscall.Mkfifo(fifo, 0644); err != nil {
		t.Fatal(err)
	}

	_, err := ReadRegular(afero.NewOsFs(), fifo, 0)
	if !errors.Is(err, ErrNotRegularFile) {
		t.Errorf("ReadRegular() error = %v, want ErrNotRegularFile", err)
	}
}

func TestReadRegular_RejectsSymlink(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "target.txt")
	link := filepath.Join(dir, "link.txt")

	if err := os.WriteFile(target, []byte("test"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.Symlink(target, link); err != nil {
		t.Fatal(err)
	}

	_, err := ReadRegular(afero.NewOsFs(), link, 0)
	if !errors.Is(err, ErrNotRegularFile) {
		t.Errorf("ReadRegular() error = %v, want ErrNotRegularFile", err)
	}
}
