package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/canaryct/canarywatch/internal/app"
)

var version = "dev"

var (
	configPath string
	prefsPath  string
	apiURL     string
	pollEvery  time.Duration
	debug      bool
)

var rootCmd = &cobra.Command{
	Use:          "canarywatch",
	Short:        "Live terminal dashboard for the canary CT match service",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return app.Run(cmd.Context(), options())
	},
}

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Load the dashboard once and print the first page",
	RunE: func(cmd *cobra.Command, args []string) error {
		return app.Snapshot(cmd.Context(), options(), cmd.OutOrStdout())
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "canarywatch %s\n", version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file (default ~/.config/canarywatch/config.toml)")
	rootCmd.PersistentFlags().StringVar(&prefsPath, "prefs", "", "preferences file (default ~/.config/canarywatch/prefs.toml)")
	rootCmd.PersistentFlags().StringVar(&apiURL, "api", "", "canary API base URL, overrides api_url")
	rootCmd.PersistentFlags().DurationVar(&pollEvery, "poll", 0, "refresh interval, overrides poll_interval")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "write debug-level entries to the log file")

	rootCmd.AddCommand(snapshotCmd)
	rootCmd.AddCommand(versionCmd)
}

func options() app.Options {
	return app.Options{
		ConfigPath: configPath,
		PrefsPath:  prefsPath,
		PollEvery:  pollEvery,
		APIURL:     apiURL,
		Debug:      debug,
	}
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		cancel()
		os.Exit(1)
	}
}
