package rewrite

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/src-d/enry/v2"
)

// skipReason names why a candidate file is left alone.
type skipReason string

const (
	skipNone      skipReason = ""
	skipGenerated skipReason = "generated"
	skipExcluded  skipReason = "excluded"
	skipVendor    skipReason = "vendor"
	skipOversize  skipReason = "oversize"
)

// Discover returns every regular file under root whose name ends in
// Extension, in lexical walk order. Unreadable subdirectories are logged and
// skipped.
func Discover(root string, logger *slog.Logger) ([]string, error) {
	var files []string

	walkErr := filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}

			logger.Warn("skip unreadable path", "path", path, "error", err)

			if entry != nil && entry.IsDir() {
				return filepath.SkipDir
			}

			return nil
		}

		if entry.Type().IsRegular() && strings.HasSuffix(entry.Name(), Extension) {
			files = append(files, path)
		}

		return nil
	})
	if walkErr != nil {
		return nil, fmt.Errorf("walk %s: %w", root, walkErr)
	}

	return files, nil
}

// IsGenerated reports whether path contains a generated-file marker.
func IsGenerated(path string) bool {
	for _, marker := range GeneratedMarkers {
		if strings.Contains(path, marker) {
			return true
		}
	}

	return false
}

// classify decides whether a discovered file is processed.
func classify(root, path string, opts Options) skipReason {
	if IsGenerated(path) {
		return skipGenerated
	}

	rel := relativeSlash(root, path)

	for _, pattern := range opts.Exclude {
		matched, err := doublestar.Match(pattern, rel)
		if err == nil && matched {
			return skipExcluded
		}
	}

	if opts.SkipVendor && enry.IsVendor(rel) {
		return skipVendor
	}

	if opts.MaxFileSize > 0 {
		info, err := os.Stat(path)
		if err == nil && uint64(info.Size()) > opts.MaxFileSize { //nolint:gosec // size is non-negative.
			return skipOversize
		}
	}

	return skipNone
}

func relativeSlash(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return filepath.ToSlash(path)
	}

	if rel == "." {
		rel = filepath.Base(path)
	}

	return filepath.ToSlash(rel)
}

// errRootNotFound wraps a stat failure for the scan root.
func errRootNotFound(root string, cause error) error {
	if errors.Is(cause, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s", ErrRootNotFound, root)
	}

	return fmt.Errorf("%w: %s: %w", ErrRootNotFound, root, cause)
}
