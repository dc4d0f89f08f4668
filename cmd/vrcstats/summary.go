package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vrclog/vrcstats-go/internal/config"
	"github.com/vrclog/vrcstats-go/internal/report"
	"github.com/vrclog/vrcstats-go/pkg/vrcstats"
)

var (
	// summary flags
	summaryFormat string
	summaryTop    int
	colorMode     string
	noColor       bool
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Print time spent per instance category and per world",
	Long: `Read every VRChat log file in the log directory and print:

  - the share of time spent in each instance category
  - the hours spent in each instance category
  - the top worlds by time spent
  - the top worlds by number of visits

Log files with no recognized events are skipped. Unreadable files are
skipped with a warning.

Examples:
  # Report on all logs (auto-detect log directory)
  vrcstats summary

  # Only sessions started in January 2024, top 5 worlds
  vrcstats summary --since 2024-01-01 --until 2024-02-01 --top 5

  # Machine-readable output
  vrcstats summary --format json | jq '.top_worlds_by_time[0]'`,
	RunE: runSummary,
}

func init() {
	addSummaryFlags(summaryCmd)
	rootCmd.AddCommand(summaryCmd)
}

// addSummaryFlags registers the report flags. The root command shares them
// because it runs the summary by default.
func addSummaryFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&summaryFormat, "format", "f", config.FormatPretty,
		"Output format: pretty, json")
	cmd.Flags().IntVarP(&summaryTop, "top", "n", report.DefaultTop,
		"Number of worlds in each ranking")
	cmd.Flags().StringVar(&colorMode, "color", config.ColorAuto,
		"Color output: auto, always, never")
	cmd.Flags().BoolVar(&noColor, "no-color", false,
		"Disable color output (same as --color never)")

	registerValues(cmd, "format", config.FormatPretty, config.FormatJSON)
	registerValues(cmd, "color", config.ColorAuto, config.ColorAlways, config.ColorNever)
}

func runSummary(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	s, err := loadSettings(cmd.Flags(), true)
	if err != nil {
		return err
	}
	dir, err := s.resolveLogDir()
	if err != nil {
		return err
	}

	rep, err := vrcstats.ParseDir(ctx, dir, s.parseOptions(newLogger())...)
	if err != nil {
		return err
	}
	if n := rep.Count(vrcstats.FileFailed); n > 0 {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %d log file(s) could not be read\n", n)
	}

	sum, err := report.NewSummary(rep, s.top)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if s.format == config.FormatJSON {
		return report.WriteJSON(out, sum)
	}
	return report.NewPrinter(out, colorEnabled(s.color, outputFd(out))).Print(sum)
}

// outputFd returns the descriptor of w if it is a file, so color detection
// follows redirects. Other writers are never terminals.
func outputFd(w any) uintptr {
	if f, ok := w.(*os.File); ok {
		return f.Fd()
	}
	return ^uintptr(0)
}
