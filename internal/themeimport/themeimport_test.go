package themeimport_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"github.com/Sumatoshi-tech/themefix/internal/themeimport"
)

func TestEnsure_AfterLastImport(t *testing.T) {
	t.Parallel()

	content := strings.Join([]string{
		"import 'package:flutter/material.dart';",
		"import 'package:provider/provider.dart';",
		"",
		"class A {}",
	}, "\n")

	got, added := themeimport.Ensure(content, "lib/features/a.dart")

	want := strings.Join([]string{
		"import 'package:flutter/material.dart';",
		"import 'package:provider/provider.dart';",
		themeimport.Statement,
		"",
		"class A {}",
	}, "\n")

	assert.True(t, added)

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Ensure() mismatch (-want +got):\n%s", diff)
	}
}

func TestEnsure_IndentedImportCounts(t *testing.T) {
	t.Parallel()

	content := "library x;\n  import 'a.dart';\nvoid main() {}"

	got, added := themeimport.Ensure(content, "lib/x.dart")

	assert.True(t, added)
	assert.Equal(t, "library x;\n  import 'a.dart';\n"+themeimport.Statement+"\nvoid main() {}", got)
}

func TestEnsure_NoImports_PrependsWithBlankLine(t *testing.T) {
	t.Parallel()

	got, added := themeimport.Ensure("Widget x = AppColors.orange;", "lib/x.dart")

	assert.True(t, added)
	assert.Equal(t, themeimport.Statement+"\n\nWidget x = AppColors.orange;", got)
}

func TestEnsure_LeadingBlankLineStillPrepends(t *testing.T) {
	t.Parallel()

	got, added := themeimport.Ensure("\nclass A {}", "lib/x.dart")

	assert.True(t, added)
	assert.Equal(t, themeimport.Statement+"\n\n\nclass A {}", got)
}

func TestEnsure_BlankContentUnchanged(t *testing.T) {
	t.Parallel()

	for _, content := range []string{"", "\n", "  \n\t\n"} {
		got, added := themeimport.Ensure(content, "lib/x.dart")

		assert.False(t, added)
		assert.Equal(t, content, got)
	}
}

func TestEnsure_AlreadyImported(t *testing.T) {
	t.Parallel()

	forms := []string{
		"import 'package:artisans_circle/core/theme.dart';\nclass A {}",
		"import 'package:artisans_circle/core/theme.dart' show AppColors;\nclass A {}",
		"export 'x.dart';\n// re-exported from 'package:artisans_circle/core/theme.dart'\nclass A {}",
	}

	for _, content := range forms {
		got, added := themeimport.Ensure(content, "lib/x.dart")

		assert.False(t, added)
		assert.Equal(t, content, got)
	}
}

func TestEnsure_ThemeSourceNeverImportsItself(t *testing.T) {
	t.Parallel()

	paths := []string{
		"/repo/lib/core/theme.dart",
		"/repo/lib/core/theme/colors.dart",
	}

	for _, path := range paths {
		got, added := themeimport.Ensure("import 'x.dart';\nclass A {}", path)

		assert.False(t, added, path)
		assert.Equal(t, "import 'x.dart';\nclass A {}", got)
	}
}

func TestIsThemeSource(t *testing.T) {
	t.Parallel()

	assert.True(t, themeimport.IsThemeSource("lib/core/theme.dart"))
	assert.True(t, themeimport.IsThemeSource("app/lib/core/theme/app_colors.dart"))
	assert.False(t, themeimport.IsThemeSource("lib/core/themes.dart"))
	assert.False(t, themeimport.IsThemeSource("lib/features/theme.dart"))
}
