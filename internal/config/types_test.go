package config_test

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/themefix/internal/config"
)

func validConfig() config.Config {
	return config.Config{
		Rewrite: config.RewriteConfig{
			Root:        "lib",
			Exclude:     []string{"**/generated/**", "test/**"},
			MaxFileSize: "512KB",
		},
		Report: config.ReportConfig{
			Format:   config.FormatText,
			TopFiles: 10,
		},
		Splitscan: config.SplitscanConfig{
			Target: config.DefaultSplitscanTarget,
		},
		Logging: config.LoggingConfig{
			Level: "info",
		},
		Telemetry: config.TelemetryConfig{
			SampleRatio: 0.5,
		},
	}
}

func TestValidate_ValidConfig_NoError(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	require.NoError(t, cfg.Validate())
}

func TestValidate_MinimalConfig_NoError(t *testing.T) {
	t.Parallel()

	cfg := config.Config{Report: config.ReportConfig{TopFiles: 1}}
	require.NoError(t, cfg.Validate())
}

func TestValidate_InvalidFormat_ReturnsError(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	cfg.Report.Format = "xml"

	require.ErrorIs(t, cfg.Validate(), config.ErrInvalidFormat)
}

func TestValidate_NegativeTopFiles_ReturnsError(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	cfg.Report.TopFiles = -1

	require.ErrorIs(t, cfg.Validate(), config.ErrInvalidTopFiles)
}

func TestValidate_ZeroTopFiles_ReturnsError(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	cfg.Report.TopFiles = 0

	require.ErrorIs(t, cfg.Validate(), config.ErrInvalidTopFiles)
}

func TestValidate_InvalidMaxFileSize_ReturnsError(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	cfg.Rewrite.MaxFileSize = "lots"

	require.ErrorIs(t, cfg.Validate(), config.ErrInvalidMaxFileSize)
}

func TestValidate_InvalidExclude_ReturnsError(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	cfg.Rewrite.Exclude = []string{"lib/[unclosed"}

	require.ErrorIs(t, cfg.Validate(), config.ErrInvalidExclude)
}

func TestValidate_InvalidLogLevel_ReturnsError(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	cfg.Logging.Level = "loud"

	require.ErrorIs(t, cfg.Validate(), config.ErrInvalidLogLevel)
}

func TestValidate_SampleRatioOutOfRange_ReturnsError(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	cfg.Telemetry.SampleRatio = 1.5

	require.ErrorIs(t, cfg.Validate(), config.ErrInvalidSampleRatio)
}

func TestMaxFileSizeBytes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want uint64
	}{
		{name: "empty is unlimited", in: "", want: 0},
		{name: "blank is unlimited", in: "  ", want: 0},
		{name: "kilobytes", in: "512KB", want: 512000},
		{name: "kibibytes", in: "1KiB", want: 1024},
		{name: "plain bytes", in: "2048", want: 2048},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := config.RewriteConfig{MaxFileSize: tt.in}.MaxFileSizeBytes()
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	level, err := config.ParseLevel("")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelWarn, level)

	level, err = config.ParseLevel("DEBUG")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)

	level, err = config.ParseLevel("error")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelError, level)
}
