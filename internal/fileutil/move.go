package fileutil

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// Move relocates src to dst. A same-filesystem move is a single rename; when
// the rename crosses devices the file is copied with verification, stamped
// with the source modification time and the source removed. If the source
// cannot be removed the copy is deleted again so exactly one file remains.
func Move(src, dst string) error {
	err := os.Rename(src, dst)
	if err == nil {
		return nil
	}
	if !errors.Is(err, unix.EXDEV) {
		return err
	}

	info, statErr := os.Stat(src)
	if statErr != nil {
		return statErr
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("cross-device move of non-regular file %s: %w", src, err)
	}
	if copyErr := CopyFileVerified(src, dst, info.Mode().Perm()); copyErr != nil {
		return fmt.Errorf("cross-device copy: %w", copyErr)
	}
	_ = os.Chtimes(dst, info.ModTime(), info.ModTime())
	if removeErr := os.Remove(src); removeErr != nil {
		_ = os.Remove(dst)
		return fmt.Errorf("remove source after copy: %w", removeErr)
	}
	return nil
}

// Exists reports whether anything (file, directory or dangling symlink) is
// present at path. Errors other than not-exist are returned.
func Exists(path string) (bool, error) {
	_, err := os.Lstat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, err
}
