// Package commands implements the themefix command line.
package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/themefix/internal/config"
	"github.com/Sumatoshi-tech/themefix/internal/observability"
	"github.com/Sumatoshi-tech/themefix/internal/palette"
	"github.com/Sumatoshi-tech/themefix/internal/report"
	"github.com/Sumatoshi-tech/themefix/internal/rewrite"
	"github.com/Sumatoshi-tech/themefix/pkg/version"
)

// DryRunBanner is printed before anything else in dry-run mode.
const DryRunBanner = "DRY RUN MODE - No files will be modified"

// RewriteCommand holds the flags of the root themefix command.
type RewriteCommand struct {
	configPath  string
	format      string
	metricsFile string
	dryRun      bool
	diff        bool
	verbose     bool
	quiet       bool
	noColor     bool
}

// NewRootCommand creates the themefix root command.
func NewRootCommand() *cobra.Command {
	rc := &RewriteCommand{}

	cmd := &cobra.Command{
		Use:   "themefix [path]",
		Short: "Replace hardcoded Flutter colors with theme constants",
		Long: `themefix scans a Flutter source tree, replaces known hardcoded Color
literals with AppColors references, adds the theme import where needed and
prints a change report.

The path defaults to rewrite.root from the config file (lib).`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          rc.run,
	}

	cmd.Flags().BoolVar(&rc.dryRun, "dry-run", false, "Show what would be changed without modifying files")
	cmd.Flags().BoolVar(&rc.diff, "diff", false, "Print a line diff of every changed file")
	cmd.Flags().StringVar(&rc.format, "format", "", "Report format: text, json, yaml (default from config)")
	cmd.Flags().StringVar(&rc.metricsFile, "metrics-file", "", "Write run counters in Prometheus textfile format")
	cmd.Flags().StringVar(&rc.configPath, "config", "", "Config file (default .themefix.yaml in CWD or $HOME)")
	cmd.PersistentFlags().BoolVarP(&rc.verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().BoolVarP(&rc.quiet, "quiet", "q", false, "suppress progress output")
	cmd.Flags().BoolVar(&rc.noColor, "no-color", false, "Disable colored output")

	return cmd
}

func (rc *RewriteCommand) run(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(rc.configPath)
	if err != nil {
		return err
	}

	rc.applyOverrides(cmd, cfg)

	validateErr := cfg.Validate()
	if validateErr != nil {
		return fmt.Errorf("validate flags: %w", validateErr)
	}

	providers, err := observability.Init(rc.observabilityConfig(cfg), cmd.ErrOrStderr())
	if err != nil {
		return fmt.Errorf("init observability: %w", err)
	}

	defer func() {
		shutdownErr := providers.Shutdown(context.Background())
		if shutdownErr != nil {
			providers.Logger.Warn("telemetry shutdown failed", "error", shutdownErr)
		}
	}()

	root := cfg.Rewrite.Root
	if len(args) == 1 {
		root = args[0]
	}

	// Already checked by Validate.
	maxSize, _ := cfg.Rewrite.MaxFileSizeBytes()

	out := cmd.OutOrStdout()

	// Machine-readable reports keep stdout clean.
	progress := out
	if !isText(cfg.Report.Format) {
		progress = cmd.ErrOrStderr()
	}

	if rc.dryRun {
		fmt.Fprintln(progress, DryRunBanner)
		fmt.Fprintln(progress)
	}

	opts := rewrite.Options{
		DryRun:      rc.dryRun,
		Mapping:     palette.Default,
		Exclude:     cfg.Rewrite.Exclude,
		SkipVendor:  cfg.Rewrite.SkipVendor,
		MaxFileSize: maxSize,
		Logger:      providers.Logger,
		Tracer:      providers.Tracer,
		Observer: report.NewConsole(progress, cmd.ErrOrStderr(), report.ConsoleOptions{
			Diff:    rc.diff,
			NoColor: rc.noColor,
			Quiet:   rc.quiet,
		}),
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	start := time.Now()

	tracker, err := rewrite.Run(ctx, root, opts)
	if err != nil {
		return err
	}

	elapsed := time.Since(start)

	topN := cfg.Report.TopFiles

	writeErr := report.Write(out, report.NewSummary(tracker, topN, rc.dryRun), cfg.Report.Format, topN)
	if writeErr != nil {
		return writeErr
	}

	if rc.dryRun && isText(cfg.Report.Format) {
		fmt.Fprintln(out)
		fmt.Fprintln(out, report.DryRunHint)
	}

	if cfg.Report.MetricsFile != "" {
		metricsErr := writeMetrics(cfg.Report.MetricsFile, tracker, rc.dryRun, elapsed)
		if metricsErr != nil {
			return metricsErr
		}
	}

	providers.Logger.InfoContext(ctx, "report written", "format", cfg.Report.Format, "elapsed", elapsed)

	return nil
}

func (rc *RewriteCommand) applyOverrides(cmd *cobra.Command, cfg *config.Config) {
	if cmd.Flags().Changed("format") {
		cfg.Report.Format = rc.format
	}

	if cmd.Flags().Changed("metrics-file") {
		cfg.Report.MetricsFile = rc.metricsFile
	}
}

func (rc *RewriteCommand) observabilityConfig(cfg *config.Config) observability.Config {
	obsCfg := observability.DefaultConfig()
	obsCfg.ServiceVersion = version.Version
	obsCfg.OTLPEndpoint = cfg.Telemetry.OTLPEndpoint
	obsCfg.OTLPInsecure = cfg.Telemetry.OTLPInsecure
	obsCfg.OTLPHeaders = observability.ParseOTLPHeaders(cfg.Telemetry.OTLPHeaders)
	obsCfg.SampleRatio = cfg.Telemetry.SampleRatio
	obsCfg.TraceVerbose = cfg.Telemetry.TraceVerbose
	obsCfg.LogJSON = cfg.Logging.JSON

	// Validated by LoadConfig.
	obsCfg.LogLevel, _ = config.ParseLevel(cfg.Logging.Level)

	switch {
	case rc.quiet:
		obsCfg.LogLevel = slog.LevelError
	case rc.verbose:
		obsCfg.LogLevel = slog.LevelDebug
	}

	return obsCfg
}

func writeMetrics(path string, tracker *rewrite.Tracker, dryRun bool, elapsed time.Duration) error {
	rm, err := observability.NewRunMetrics()
	if err != nil {
		return err
	}

	rm.Observe(observability.RunStats{
		FilesScanned:      tracker.FilesScanned,
		FilesSkipped:      tracker.FilesSkipped,
		FilesModified:     tracker.FilesModified,
		FileErrors:        tracker.FileErrors,
		TotalReplacements: tracker.TotalReplacements,
		ImportsAdded:      tracker.ImportsAdded,
		DryRun:            dryRun,
		DurationSeconds:   elapsed.Seconds(),
	})

	return rm.WriteTextfile(path)
}

func isText(format string) bool {
	return format == "" || format == config.FormatText
}
