package commands_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/themefix/cmd/themefix/commands"
	"github.com/Sumatoshi-tech/themefix/internal/config"
	"github.com/Sumatoshi-tech/themefix/internal/report"
	"github.com/Sumatoshi-tech/themefix/internal/rewrite"
)

const widgetSource = "Widget x = Color(0xFFE9692D);"

func setup(t *testing.T, cfgContent string) (root, cfgPath string) {
	t.Helper()

	dir := t.TempDir()
	root = filepath.Join(dir, "lib")
	require.NoError(t, os.MkdirAll(root, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "widget.dart"), []byte(widgetSource), 0o644))

	cfgPath = filepath.Join(dir, "themefix.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfgContent), 0o600))

	return root, cfgPath
}

func execute(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()

	var out, errOut bytes.Buffer

	cmd := commands.NewRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)

	err = cmd.Execute()

	return out.String(), errOut.String(), err
}

func TestRootCommand_DryRun(t *testing.T) {
	t.Parallel()

	root, cfgPath := setup(t, "report:\n  top_files: 10\n")

	stdout, _, err := execute(t, "--config", cfgPath, "--dry-run", "--no-color", root)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(stdout, commands.DryRunBanner+"\n\n"))
	assert.Contains(t, stdout, "Found 1 Dart files\n")
	assert.Contains(t, stdout, "✓ widget.dart: 1 replacements\n")
	assert.Contains(t, stdout, report.Title)
	assert.Contains(t, stdout, "Files Modified: 1\n")
	assert.True(t, strings.HasSuffix(stdout, "\n"+report.DryRunHint+"\n"))

	data, readErr := os.ReadFile(filepath.Join(root, "widget.dart"))
	require.NoError(t, readErr)
	assert.Equal(t, widgetSource, string(data))
}

func TestRootCommand_Apply(t *testing.T) {
	t.Parallel()

	root, cfgPath := setup(t, "report:\n  top_files: 5\n")

	stdout, _, err := execute(t, "--config", cfgPath, "--no-color", root)
	require.NoError(t, err)

	assert.NotContains(t, stdout, commands.DryRunBanner)
	assert.NotContains(t, stdout, report.DryRunHint)
	assert.Contains(t, stdout, "Top 5 Files by Changes:")

	data, readErr := os.ReadFile(filepath.Join(root, "widget.dart"))
	require.NoError(t, readErr)
	assert.Contains(t, string(data), "Widget x = AppColors.orange;")
}

func TestRootCommand_RootFromConfig(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	root := filepath.Join(dir, "src")
	require.NoError(t, os.MkdirAll(root, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "a.dart"), []byte(widgetSource), 0o644))

	cfgPath := filepath.Join(dir, "themefix.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("rewrite:\n  root: "+root+"\n"), 0o600))

	stdout, _, err := execute(t, "--config", cfgPath, "--dry-run", "--no-color")
	require.NoError(t, err)
	assert.Contains(t, stdout, "✓ a.dart: 1 replacements")
}

func TestRootCommand_JSONKeepsStdoutClean(t *testing.T) {
	t.Parallel()

	root, cfgPath := setup(t, "report:\n  top_files: 10\n")

	stdout, stderr, err := execute(t, "--config", cfgPath, "--dry-run", "--format", config.FormatJSON, "--no-color", root)
	require.NoError(t, err)

	var summary report.Summary
	require.NoError(t, json.Unmarshal([]byte(stdout), &summary))

	assert.True(t, summary.DryRun)
	assert.Equal(t, 1, summary.TotalReplacements)
	assert.Contains(t, stderr, commands.DryRunBanner)
	assert.Contains(t, stderr, "✓ widget.dart")
}

func TestRootCommand_Diff(t *testing.T) {
	t.Parallel()

	root, cfgPath := setup(t, "report:\n  top_files: 10\n")

	stdout, _, err := execute(t, "--config", cfgPath, "--dry-run", "--diff", "--no-color", root)
	require.NoError(t, err)

	assert.Contains(t, stdout, "-"+widgetSource+"\n")
	assert.Contains(t, stdout, "+Widget x = AppColors.orange;\n")
}

func TestRootCommand_Quiet(t *testing.T) {
	t.Parallel()

	root, cfgPath := setup(t, "report:\n  top_files: 10\n")

	stdout, _, err := execute(t, "--config", cfgPath, "--dry-run", "-q", root)
	require.NoError(t, err)

	assert.NotContains(t, stdout, "Found 1 Dart files")
	assert.Contains(t, stdout, "Total Replacements: 1")
}

func TestRootCommand_MetricsFile(t *testing.T) {
	t.Parallel()

	root, cfgPath := setup(t, "report:\n  top_files: 10\n")
	metricsPath := filepath.Join(t.TempDir(), "themefix.prom")

	_, _, err := execute(t, "--config", cfgPath, "--dry-run", "-q", "--metrics-file", metricsPath, root)
	require.NoError(t, err)

	data, readErr := os.ReadFile(metricsPath)
	require.NoError(t, readErr)
	assert.Contains(t, string(data), "themefix_replacements 1")
	assert.Contains(t, string(data), "themefix_dry_run 1")
}

func TestRootCommand_MissingRoot(t *testing.T) {
	t.Parallel()

	_, cfgPath := setup(t, "report:\n  top_files: 10\n")

	_, _, err := execute(t, "--config", cfgPath, filepath.Join(t.TempDir(), "missing"))
	require.ErrorIs(t, err, rewrite.ErrRootNotFound)
}

func TestRootCommand_InvalidFormat(t *testing.T) {
	t.Parallel()

	root, cfgPath := setup(t, "report:\n  top_files: 10\n")

	_, _, err := execute(t, "--config", cfgPath, "--format", "xml", root)
	require.ErrorIs(t, err, config.ErrInvalidFormat)
}

func TestRootCommand_TooManyArgs(t *testing.T) {
	t.Parallel()

	_, cfgPath := setup(t, "report:\n  top_files: 10\n")

	_, _, err := execute(t, "--config", cfgPath, "a", "b")
	require.Error(t, err)
}

func TestRootCommand_QuietStillReportsFailures(t *testing.T) {
	t.Parallel()

	root, cfgPath := setup(t, "report:\n  top_files: 10\n")
	bad := filepath.Join(root, "bad.dart")
	require.NoError(t, os.WriteFile(bad, []byte("Color(0xFFE9692D)\xff"), 0o644))

	stdout, stderr, err := execute(t, "--config", cfgPath, "--dry-run", "-q", "--no-color", root)
	require.NoError(t, err)

	assert.Contains(t, stderr, "✗ Error processing "+bad+": ")
	assert.NotContains(t, stdout, "widget.dart: 1 replacements")
	assert.Contains(t, stdout, "Files With Errors: 1")
}

func TestRootCommand_ZeroTopFilesRejected(t *testing.T) {
	t.Parallel()

	root, cfgPath := setup(t, "report:\n  top_files: 0\n")

	_, _, err := execute(t, "--config", cfgPath, "--dry-run", root)
	require.ErrorIs(t, err, config.ErrSchemaViolation)
}
