// Package fileutil implements bulk file operations: copying, moving, and
// deleting file sets, plus size reporting. Missing sources are skipped
// rather than failing the batch; every operation reports how many files it
// actually touched.
package fileutil

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	pberrors "github.com/pagebinder/pagebinder/pkg/errors"
)

// CopyFiles copies each source file into destDir, creating it if needed.
// Sources that do not exist are skipped, as are sources whose destination
// already exists unless overwrite is set. Returns the number of files copied.
func CopyFiles(sources []string, destDir string, overwrite bool) (int, error) {
	if err := os.MkdirAll(destDir, 0755); err != nil {
		return 0, err
	}
	copied := 0
	for _, src := range sources {
		info, err := os.Stat(src)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return copied, err
		}
		if info.IsDir() {
			return copied, pberrors.New(pberrors.ErrCodeInvalidPath, "%s is a directory", src)
		}
		dest := filepath.Join(destDir, filepath.Base(src))
		if !overwrite && exists(dest) {
			continue
		}
		if err := copyFile(src, dest, info.Mode()); err != nil {
			return copied, err
		}
		copied++
	}
	return copied, nil
}

// MoveFiles moves each source file into destDir. Sources that do not exist
// are skipped, as are sources whose destination already exists unless
// overwrite is set. Falls back to copy-and-delete when rename crosses
// devices.
func MoveFiles(sources []string, destDir string, overwrite bool) (int, error) {
	if err := os.MkdirAll(destDir, 0755); err != nil {
		return 0, err
	}
	moved := 0
	for _, src := range sources {
		info, err := os.Stat(src)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return moved, err
		}
		dest := filepath.Join(destDir, filepath.Base(src))
		if !overwrite && exists(dest) {
			continue
		}
		if err := os.Rename(src, dest); err != nil {
			if err := copyFile(src, dest, info.Mode()); err != nil {
				return moved, err
			}
			if err := os.Remove(src); err != nil {
				return moved, err
			}
		}
		moved++
	}
	return moved, nil
}

// DeleteFiles removes each named file. Files that do not exist are skipped.
// Returns the number of files deleted.
func DeleteFiles(paths []string) (int, error) {
	deleted := 0
	for _, p := range paths {
		err := os.Remove(p)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return deleted, err
		}
		deleted++
	}
	return deleted, nil
}

// FileSize returns the size in bytes of the file at path.
func FileSize(path string) (int64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, pberrors.Wrap(pberrors.ErrCodeFileNotFound, err, "stat %s", path)
	}
	return info.Size(), nil
}

// HumanSize formats a byte count with a binary-unit suffix, e.g. "1.5 MB".
func HumanSize(size int64) string {
	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%d B", size)
	}
	div, exp := int64(unit), 0
	for n := size / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(size)/float64(div), "KMGTPE"[exp])
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func copyFile(src, dest string, mode os.FileMode) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
