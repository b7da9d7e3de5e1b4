// Package filex has the few filesystem helpers the CLI needs.
package filex

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

var ErrNotRegularFile = errors.New("not a regular file")

// EnsureSubdDir creates dirName under the working directory if needed and
// returns its absolute path.
func EnsureSubdDir(dirName string) (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getwd: %w", err)
	}

	dir := filepath.Join(cwd, dirName)

	if err := os.MkdirAll(dir, 0o770); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", dir, err)
	}

	return dir, nil
}

// OpenForUpload opens the file at path and returns it with the name a
// browser would send for it (the base name). The caller closes the file.
func OpenForUpload(path string) (*os.File, string, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, "", err
	}
	if !fi.Mode().IsRegular() {
		return nil, "", fmt.Errorf("%w: %s", ErrNotRegularFile, path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, "", err
	}
	return f, filepath.Base(path), nil
}
