// Package main provides the entry point for the splitscan CLI tool.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/themefix/internal/config"
	"github.com/Sumatoshi-tech/themefix/internal/observability"
	"github.com/Sumatoshi-tech/themefix/internal/splitscan"
	"github.com/Sumatoshi-tech/themefix/pkg/version"
)

func main() {
	version.InitBinaryVersion()

	err := newRootCommand().Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "splitscan [path]",
		Short: "Report the page class sections of a large Dart file",
		Long: `splitscan locates the MessagesListPage and ChatPage classes in a large
Dart source file and prints their sizes. It never modifies the file.

The path defaults to splitscan.target from the config file.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          run,
	}

	rootCmd.AddCommand(versionCmd())

	return rootCmd
}

func run(cmd *cobra.Command, args []string) error {
	obsCfg := observability.DefaultConfig()
	obsCfg.ServiceName = "splitscan"
	obsCfg.ServiceVersion = version.Version

	target := config.DefaultSplitscanTarget

	cfg, err := config.LoadConfig("")
	if err == nil {
		obsCfg.LogJSON = cfg.Logging.JSON
		obsCfg.LogLevel, _ = config.ParseLevel(cfg.Logging.Level)
		target = cfg.Splitscan.Target
	}

	logger := observability.NewLogger(obsCfg, cmd.ErrOrStderr())

	if err != nil {
		logger.Warn("ignoring config, using defaults", "error", err)
	}

	if len(args) == 1 {
		target = args[0]
	}

	logger.Debug("analyzing", "target", target)

	return splitscan.Run(cmd.OutOrStdout(), target)
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.String("splitscan"))
		},
	}
}
