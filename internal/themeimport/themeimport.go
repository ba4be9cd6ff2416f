// Package themeimport makes sure rewritten files import the theme library
// that declares the AppColors constants.
package themeimport

import (
	"path/filepath"
	"slices"
	"strings"
)

// Statement is the line inserted into files that lack the theme import.
const Statement = "import 'package:artisans_circle/core/theme.dart';"

// Recognized import forms. Either one anywhere in a file counts as present.
const (
	importForm = "import 'package:artisans_circle/core/theme.dart'"
	exportForm = "from 'package:artisans_circle/core/theme.dart'"
)

// Path fragments identifying the theme definition itself.
const (
	themeFile = "lib/core/theme.dart"
	themeDir  = "lib/core/theme/"
)

const importKeyword = "import "

// HasImport reports whether content already references the theme library.
func HasImport(content string) bool {
	return strings.Contains(content, importForm) || strings.Contains(content, exportForm)
}

// IsThemeSource reports whether path points at the theme definition.
func IsThemeSource(path string) bool {
	slashed := filepath.ToSlash(path)

	return strings.Contains(slashed, themeFile) || strings.Contains(slashed, themeDir)
}

// Ensure returns content with the theme import added when it is missing.
// The import goes right after the last existing import line. A file with no
// imports gets it as the first line followed by a blank line. Files that are
// empty or blank, the theme sources themselves and files that already import
// the theme are returned unchanged with added == false.
func Ensure(content, path string) (string, bool) {
	if HasImport(content) {
		return content, false
	}

	if IsThemeSource(path) {
		return content, false
	}

	lines := strings.Split(content, "\n")

	last := lastImportLine(lines)
	if last >= 0 {
		lines = slices.Insert(lines, last+1, Statement)

		return strings.Join(lines, "\n"), true
	}

	if !hasText(lines) {
		return content, false
	}

	lines = slices.Insert(lines, 0, Statement, "")

	return strings.Join(lines, "\n"), true
}

func lastImportLine(lines []string) int {
	last := -1

	for i, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), importKeyword) {
			last = i
		}
	}

	return last
}

func hasText(lines []string) bool {
	return slices.ContainsFunc(lines, func(line string) bool {
		return strings.TrimSpace(line) != ""
	})
}
