// Package fsutil provides path resolution and crash-safe file replacement.
package fsutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// tmpPattern is the CreateTemp pattern for in-flight writes.
const tmpPattern = ".*.themefix-tmp"

var (
	// ErrEmptyPath indicates a path argument was empty.
	ErrEmptyPath = errors.New("path is empty")
	// ErrPathContainsNUL indicates the path contains a NUL byte.
	ErrPathContainsNUL = errors.New("path contains NUL byte")
	// ErrDirectoryPath indicates a file operation was attempted on a directory.
	ErrDirectoryPath = errors.New("path points to a directory")
)

// Resolve cleans path, makes it absolute and stats it.
func Resolve(path string) (string, os.FileInfo, error) {
	if strings.TrimSpace(path) == "" {
		return "", nil, ErrEmptyPath
	}

	if strings.ContainsRune(path, '\x00') {
		return "", nil, fmt.Errorf("%w: %q", ErrPathContainsNUL, path)
	}

	absPath, err := filepath.Abs(filepath.Clean(path))
	if err != nil {
		return "", nil, fmt.Errorf("resolve absolute path for %q: %w", path, err)
	}

	info, err := os.Stat(absPath)
	if err != nil {
		return "", nil, fmt.Errorf("stat %s: %w", absPath, err)
	}

	return absPath, info, nil
}

// ResolveFile is Resolve that rejects directories.
func ResolveFile(path string) (string, error) {
	absPath, info, err := Resolve(path)
	if err != nil {
		return "", err
	}

	if info.IsDir() {
		return "", fmt.Errorf("%w: %s", ErrDirectoryPath, absPath)
	}

	return absPath, nil
}

// WriteFileAtomic replaces path with data. The data is written to a temporary
// file in the same directory, synced, and renamed over the target, so readers
// see either the old or the new content. The original file mode is kept when
// the target exists. On any failure the target is left untouched.
func WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	if info, statErr := os.Stat(path); statErr == nil {
		perm = info.Mode().Perm()
	}

	dir := filepath.Dir(path)

	tmp, createErr := os.CreateTemp(dir, tmpPattern)
	if createErr != nil {
		return fmt.Errorf("create temp file in %s: %w", dir, createErr)
	}

	tmpPath := tmp.Name()

	committed := false
	defer func() {
		if !committed {
			os.Remove(tmpPath)
		}
	}()

	_, writeErr := tmp.Write(data)
	if writeErr != nil {
		tmp.Close()

		return fmt.Errorf("write temp file: %w", writeErr)
	}

	syncErr := tmp.Sync()
	if syncErr != nil {
		tmp.Close()

		return fmt.Errorf("sync temp file: %w", syncErr)
	}

	closeErr := tmp.Close()
	if closeErr != nil {
		return fmt.Errorf("close temp file: %w", closeErr)
	}

	chmodErr := os.Chmod(tmpPath, perm)
	if chmodErr != nil {
		return fmt.Errorf("chmod temp file: %w", chmodErr)
	}

	renameErr := os.Rename(tmpPath, path)
	if renameErr != nil {
		return fmt.Errorf("rename %s: %w", path, renameErr)
	}

	committed = true

	return nil
}
