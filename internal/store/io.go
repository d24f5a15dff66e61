package store

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

const (
	dirMode  os.FileMode = 0o700
	fileMode os.FileMode = 0o600
)

// readFile reads the file at path; a missing file yields nil, nil.
func readFile(path string) ([]byte, error) {
	b, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", filepath.Base(path))
	}
	return b, nil
}

// writeFile writes bytes via a temp file, then atomically replaces the target.
func writeFile(path string, b []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, dirMode); err != nil {
		return errors.Wrap(err, "create state directory")
	}

	f, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return errors.Wrap(err, "create temp file")
	}
	tmp := f.Name()

	// Best-effort cleanup if anything fails before rename.
	defer func() { _ = os.Remove(tmp) }()

	if _, err := f.Write(b); err != nil {
		_ = f.Close()
		return errors.Wrap(err, "write temp file")
	}
	if err := f.Chmod(fileMode); err != nil {
		_ = f.Close()
		return errors.Wrap(err, "chmod temp file")
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		return errors.Wrap(err, "sync temp file")
	}
	if err := f.Close(); err != nil {
		return errors.Wrap(err, "close temp file")
	}
	return errors.Wrapf(os.Rename(tmp, path), "replace %s", filepath.Base(path))
}

// removeFile deletes path; a missing file is not an error.
func removeFile(path string) error {
	err := os.Remove(path)
	if err == nil || errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return errors.Wrapf(err, "remove %s", filepath.Base(path))
}
