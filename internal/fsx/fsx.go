package fsx

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
)

// Replaceable so tests can force a failed rename.
var renameFunc = os.Rename

// PathTypeConflictError means the destination exists but is not a regular
// file, for example a directory with the same name.
type PathTypeConflictError struct {
	Path string
	Want string
	Got  string
}

func (e *PathTypeConflictError) Error() string {
	return fmt.Sprintf("destination %q is a %s, want %s", e.Path, e.Got, e.Want)
}

// IsPathTypeConflict reports whether err is a *PathTypeConflictError.
func IsPathTypeConflict(err error) bool {
	var e *PathTypeConflictError
	return errors.As(err, &e)
}

// WriteFileAtomic writes data to dir/name through a temp file in dir and a
// rename. An existing regular file is replaced.
func WriteFileAtomic(dir, name string, data []byte, perm os.FileMode) error {
	return writeAtomic(dir, name, perm, func(w io.Writer) error {
		_, err := w.Write(data)
		return err
	})
}

// CopyFile copies src to dir/name atomically, keeping the permission bits
// and timestamps of src.
func CopyFile(src, dir, name string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	fi, err := in.Stat()
	if err != nil {
		return err
	}
	if !fi.Mode().IsRegular() {
		return &PathTypeConflictError{Path: src, Want: "regular file", Got: fi.Mode().Type().String()}
	}

	err = writeAtomic(dir, name, fi.Mode().Perm(), func(w io.Writer) error {
		_, err := io.Copy(w, in)
		return err
	})
	if err != nil {
		return err
	}

	// A zero atime is left unchanged.
	return os.Chtimes(filepath.Join(dir, name), accessTime(fi), fi.ModTime())
}

func writeAtomic(dir, name string, perm os.FileMode, fill func(io.Writer) error) error {
	dst := filepath.Join(dir, name)
	if err := checkDestination(dst); err != nil {
		return err
	}

	// Same directory as dst so the rename stays on one filesystem.
	tmp, err := os.CreateTemp(dir, "."+name+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
	}()

	if err := fill(tmp); err != nil {
		return err
	}
	if err := tmp.Chmod(perm); err != nil {
		return err
	}
	if err := tmp.Sync(); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := renameFunc(tmpName, dst); err != nil {
		return err
	}

	_ = syncDirBestEffort(dir)
	return nil
}

func checkDestination(dst string) error {
	fi, err := os.Lstat(dst)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if fi.IsDir() {
		return &PathTypeConflictError{Path: dst, Want: "file", Got: "dir"}
	}
	if !fi.Mode().IsRegular() {
		return &PathTypeConflictError{Path: dst, Want: "regular file", Got: fi.Mode().Type().String()}
	}
	return nil
}

func syncDirBestEffort(dir string) error {
	// Directory sync is unsupported on Windows.
	if runtime.GOOS == "windows" {
		return nil
	}
	f, err := os.Open(dir)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.Sync()
}
