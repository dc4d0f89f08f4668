// Command vrcstats summarizes time spent in VRChat from its log files.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	// global flags
	verbose    bool
	configPath string
	logDir     string
	timezone   string
	since      string
	until      string
	workers    int
)

var rootCmd = &cobra.Command{
	Use:   "vrcstats",
	Short: "Summarize VRChat instance and world statistics",
	Long: `vrcstats reads VRChat log files and reports how much time was spent
in each instance category (public, friends, invite, group, ...) and in
each world, plus how often each world was visited.

Running vrcstats without a subcommand prints the summary report.

The log directory is taken from --log-dir, the config file, the
VRCSTATS_LOGDIR environment variable, or the standard VRChat location,
in that order.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runSummary,
}

func init() {
	addGlobalFlags(rootCmd.PersistentFlags())
	addSummaryFlags(rootCmd)
}

// addGlobalFlags registers the flags shared by every command.
func addGlobalFlags(pf *pflag.FlagSet) {
	pf.BoolVarP(&verbose, "verbose", "v", false, "Log per-file diagnostics to stderr")
	pf.StringVarP(&configPath, "config", "c", "",
		"Config file (default: vrcstats.yaml in the user config directory, if present)")
	pf.StringVarP(&logDir, "log-dir", "d", "",
		"VRChat log directory (auto-detected if not specified)")
	pf.StringVar(&timezone, "timezone", "",
		"IANA timezone the logs were written in (default: local)")
	pf.StringVar(&since, "since", "",
		"Only read log files started at or after this time (YYYY-MM-DD or RFC3339)")
	pf.StringVar(&until, "until", "",
		"Only read log files started before this time (YYYY-MM-DD or RFC3339)")
	pf.IntVarP(&workers, "workers", "w", 1, "Number of log files to read concurrently")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newLogger writes text logs to stderr. Warnings are always shown.
func newLogger() *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
