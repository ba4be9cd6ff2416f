// Package config loads themefix and splitscan settings from file, environment
// and defaults.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/dustin/go-humanize"
)

// Report formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Default values.
const (
	DefaultRoot            = "lib"
	DefaultSkipVendor      = false
	DefaultMaxFileSize     = ""
	DefaultReportFormat    = FormatText
	DefaultReportTopFiles  = 10
	DefaultMetricsFile     = ""
	DefaultSplitscanTarget = "lib/features/messages/presentation/pages/messages_flow.dart"
	DefaultLogLevel        = "warn"
	DefaultLogJSON         = false
	DefaultOTLPEndpoint    = ""
	DefaultOTLPInsecure    = false
	DefaultTraceVerbose    = false
	DefaultSampleRatio     = 0.0
)

// Config is the top-level configuration struct.
// Field tags use mapstructure for viper unmarshalling.
type Config struct {
	Rewrite   RewriteConfig   `mapstructure:"rewrite"`
	Report    ReportConfig    `mapstructure:"report"`
	Splitscan SplitscanConfig `mapstructure:"splitscan"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
}

// RewriteConfig holds the value rewriter scan settings.
type RewriteConfig struct {
	// Root is the tree scanned when no path argument is given.
	Root string `mapstructure:"root"`
	// Exclude lists doublestar globs matched against root-relative paths.
	Exclude []string `mapstructure:"exclude"`
	// SkipVendor drops vendored paths (vendor/, third_party/, node_modules/ ...).
	SkipVendor bool `mapstructure:"skip_vendor"`
	// MaxFileSize skips larger files, e.g. "512KB". Empty means no limit.
	MaxFileSize string `mapstructure:"max_file_size"`
}

// ReportConfig holds report rendering settings.
type ReportConfig struct {
	Format      string `mapstructure:"format"`
	TopFiles    int    `mapstructure:"top_files"`
	MetricsFile string `mapstructure:"metrics_file"`
}

// SplitscanConfig holds split-point analyzer settings.
type SplitscanConfig struct {
	Target string `mapstructure:"target"`
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	Level string `mapstructure:"level"`
	JSON  bool   `mapstructure:"json"`
}

// TelemetryConfig holds OpenTelemetry export settings.
type TelemetryConfig struct {
	OTLPEndpoint string  `mapstructure:"otlp_endpoint"`
	OTLPInsecure bool    `mapstructure:"otlp_insecure"`
	OTLPHeaders  string  `mapstructure:"otlp_headers"`
	TraceVerbose bool    `mapstructure:"trace_verbose"`
	SampleRatio  float64 `mapstructure:"sample_ratio"`
}

// sampleRatioMax is the upper bound for the trace sample ratio.
const sampleRatioMax = 1.0

// Sentinel errors for configuration validation.
var (
	// ErrInvalidFormat indicates an unsupported report format.
	ErrInvalidFormat = errors.New("report.format must be one of text, json, yaml")
	// ErrInvalidTopFiles indicates a top files count below one.
	ErrInvalidTopFiles = errors.New("report.top_files must be at least 1")
	// ErrInvalidMaxFileSize indicates an unparsable size string.
	ErrInvalidMaxFileSize = errors.New("rewrite.max_file_size is not a valid size")
	// ErrInvalidExclude indicates a malformed exclude glob.
	ErrInvalidExclude = errors.New("rewrite.exclude contains an invalid glob")
	// ErrInvalidLogLevel indicates an unknown log level name.
	ErrInvalidLogLevel = errors.New("logging.level must be one of debug, info, warn, error")
	// ErrInvalidSampleRatio indicates the sample ratio is out of range.
	ErrInvalidSampleRatio = errors.New("telemetry.sample_ratio must be between 0 and 1")
)

// Validate checks Config invariants and returns the first error found.
func (c *Config) Validate() error {
	rewriteErr := c.validateRewrite()
	if rewriteErr != nil {
		return rewriteErr
	}

	switch c.Report.Format {
	case "", FormatText, FormatJSON, FormatYAML:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidFormat, c.Report.Format)
	}

	if c.Report.TopFiles < 1 {
		return ErrInvalidTopFiles
	}

	_, levelErr := ParseLevel(c.Logging.Level)
	if levelErr != nil {
		return levelErr
	}

	if c.Telemetry.SampleRatio < 0 || c.Telemetry.SampleRatio > sampleRatioMax {
		return ErrInvalidSampleRatio
	}

	return nil
}

func (c *Config) validateRewrite() error {
	_, sizeErr := c.Rewrite.MaxFileSizeBytes()
	if sizeErr != nil {
		return sizeErr
	}

	for _, pattern := range c.Rewrite.Exclude {
		if !doublestar.ValidatePattern(pattern) {
			return fmt.Errorf("%w: %q", ErrInvalidExclude, pattern)
		}
	}

	return nil
}

// MaxFileSizeBytes parses MaxFileSize. Zero means unlimited.
func (r RewriteConfig) MaxFileSizeBytes() (uint64, error) {
	trimmed := strings.TrimSpace(r.MaxFileSize)
	if trimmed == "" {
		return 0, nil
	}

	size, err := humanize.ParseBytes(trimmed)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidMaxFileSize, r.MaxFileSize)
	}

	return size, nil
}

// ParseLevel maps a level name to a slog level. Empty selects the default.
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "":
		return slog.LevelWarn, nil
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidLogLevel, name)
	}
}
