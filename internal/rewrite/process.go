package rewrite

import (
	"errors"
	"fmt"
	"os"
	"unicode/utf8"

	"github.com/Sumatoshi-tech/themefix/internal/fsutil"
	"github.com/Sumatoshi-tech/themefix/internal/palette"
	"github.com/Sumatoshi-tech/themefix/internal/themeimport"
)

// defaultPerm is used only when the target disappears before the write.
const defaultPerm = 0o644

// ErrNotText indicates a file is not valid UTF-8 text.
var ErrNotText = errors.New("file is not valid UTF-8 text")

// FileResult describes what happened to one file.
type FileResult struct {
	Path         string
	Original     string
	Rewritten    string
	Replacements int
	ImportAdded  bool
	Written      bool
}

// Changed reports whether the file content differs after rewriting.
func (r FileResult) Changed() bool {
	return r.Original != r.Rewritten
}

// RewriteContent applies the mapping and, when anything was replaced, makes
// sure the theme import is present. It never touches the filesystem.
func RewriteContent(mapping palette.Mapping, content, path string) (rewritten string, replacements int, importAdded bool) {
	rewritten, replacements = mapping.Rewrite(content)
	if replacements == 0 {
		return content, 0, false
	}

	rewritten, importAdded = themeimport.Ensure(rewritten, path)

	return rewritten, replacements, importAdded
}

// ProcessFile rewrites a single file. Files without matches are returned
// with zero replacements and are never written. In dry-run mode nothing is
// written either, but the result still carries the would-be content.
func ProcessFile(path string, mapping palette.Mapping, dryRun bool) (FileResult, error) {
	data, readErr := os.ReadFile(path) //nolint:gosec // path comes from walking the user-selected root.
	if readErr != nil {
		return FileResult{Path: path}, fmt.Errorf("read: %w", readErr)
	}

	if !utf8.Valid(data) {
		return FileResult{Path: path}, ErrNotText
	}

	original := string(data)
	rewritten, replacements, importAdded := RewriteContent(mapping, original, path)

	res := FileResult{
		Path:         path,
		Original:     original,
		Rewritten:    rewritten,
		Replacements: replacements,
		ImportAdded:  importAdded,
	}

	if replacements == 0 || dryRun {
		return res, nil
	}

	writeErr := fsutil.WriteFileAtomic(path, []byte(rewritten), defaultPerm)
	if writeErr != nil {
		return res, fmt.Errorf("write: %w", writeErr)
	}

	res.Written = true

	return res, nil
}
