package rewrite

import (
	"cmp"
	"slices"
)

// FileChange is one tracker row: a modified file and its replacement count.
type FileChange struct {
	Path         string `json:"path"         yaml:"path"`
	Replacements int    `json:"replacements" yaml:"replacements"`
}

// Tracker accumulates the outcome of a run. It is owned by the run loop and
// only updated through Record, Skip and Fail.
type Tracker struct {
	FilesScanned      int          `json:"files_scanned"      yaml:"files_scanned"`
	FilesSkipped      int          `json:"files_skipped"      yaml:"files_skipped"`
	FilesModified     int          `json:"files_modified"     yaml:"files_modified"`
	TotalReplacements int          `json:"total_replacements" yaml:"total_replacements"`
	ImportsAdded      int          `json:"imports_added"      yaml:"imports_added"`
	FileErrors        int          `json:"file_errors"        yaml:"file_errors"`
	Changes           []FileChange `json:"changes"            yaml:"changes"`
}

// Record folds one processed file into the tracker. Files without
// replacements leave no trace.
func (t *Tracker) Record(res FileResult) {
	if res.Replacements <= 0 {
		return
	}

	t.FilesModified++
	t.TotalReplacements += res.Replacements
	t.Changes = append(t.Changes, FileChange{Path: res.Path, Replacements: res.Replacements})

	if res.ImportAdded {
		t.ImportsAdded++
	}
}

// Skip counts a file that was filtered out before processing.
func (t *Tracker) Skip() {
	t.FilesSkipped++
}

// Fail counts a file that could not be processed.
func (t *Tracker) Fail() {
	t.FileErrors++
}

// TopFiles returns up to n changes ordered by replacement count, highest
// first. Ties keep processing order. n <= 0 returns every change.
func (t *Tracker) TopFiles(n int) []FileChange {
	sorted := slices.Clone(t.Changes)
	slices.SortStableFunc(sorted, func(a, b FileChange) int {
		return cmp.Compare(b.Replacements, a.Replacements)
	})

	if n > 0 && len(sorted) > n {
		sorted = sorted[:n]
	}

	return sorted
}
