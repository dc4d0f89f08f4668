package main

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vrclog/vrcstats-go/internal/logfinder"
	"github.com/vrclog/vrcstats-go/pkg/vrcstats"
	"github.com/vrclog/vrcstats-go/pkg/vrcstats/event"
)

var (
	// events flags
	eventsFormat string
	eventTypes   []string
	allFiles     bool
)

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Print the session events extracted from VRChat logs",
	Long: `Print the instance joins, world joins and room leaves found in VRChat
log files, in chronological order per file.

By default only the most recently written of the log files selected by
--since and --until is read. Use --all to read all of them.

Events are output as JSON Lines by default (one JSON object per line),
which makes it easy to process with tools like jq.

Examples:
  # Events of the latest session
  vrcstats events

  # Human-readable output of all January sessions
  vrcstats events --all --since 2024-01-01 --until 2024-02-01 --format pretty

  # Only instance joins, counted per category
  vrcstats events --all --types instance_join | jq -r .category | sort | uniq -c`,
	RunE: runEvents,
}

func init() {
	addEventsFlags(eventsCmd)
	rootCmd.AddCommand(eventsCmd)
}

func addEventsFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&eventsFormat, "format", "f", formatJSONL,
		"Output format: jsonl, pretty")
	cmd.Flags().StringSliceVarP(&eventTypes, "types", "t", nil,
		"Event types to show (comma-separated: "+strings.Join(event.TypeNames(), ",")+")")
	cmd.Flags().BoolVarP(&allFiles, "all", "a", false,
		"Read all selected log files instead of only the latest")

	registerValues(cmd, "format", formatJSONL, formatPretty)
	registerValues(cmd, "types", event.TypeNames()...)
}

func runEvents(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if !ValidFormats[eventsFormat] {
		return fmt.Errorf("unknown format: %s", eventsFormat)
	}
	typeFilter, err := normalizeEventTypes(eventTypes)
	if err != nil {
		return err
	}

	s, err := loadSettings(cmd.Flags(), false)
	if err != nil {
		return err
	}
	dir, err := s.resolveLogDir()
	if err != nil {
		return err
	}
	opts := s.parseOptions(newLogger())

	// --since, --until and --timezone select files in both modes.
	files, err := vrcstats.LogFiles(dir, opts...)
	if err != nil {
		return err
	}
	if !allFiles {
		latest, err := logfinder.Latest(files)
		if err != nil {
			return err
		}
		files = []vrcstats.LogFile{latest}
	}

	out := cmd.OutOrStdout()
	for _, f := range files {
		evs, err := vrcstats.ExtractFile(ctx, f.Path, opts...)
		if err != nil {
			var fileErr *vrcstats.FileError
			if errors.As(err, &fileErr) && allFiles {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v\n", err)
				continue
			}
			return err
		}
		if eventsFormat == formatPretty && allFiles {
			fmt.Fprintf(out, "== %s ==\n", f.Name)
		}
		for _, ev := range evs {
			if len(typeFilter) > 0 && !typeFilter[ev.Type] {
				continue
			}
			if err := OutputEvent(eventsFormat, f.Name, ev, out); err != nil {
				return fmt.Errorf("output error: %w", err)
			}
		}
	}
	return nil
}

// normalizeEventTypes validates --types values. Names are
// case-insensitive; an empty list means no filtering.
func normalizeEventTypes(names []string) (map[vrcstats.EventType]bool, error) {
	filter := make(map[vrcstats.EventType]bool, len(names))
	for _, name := range names {
		t, ok := event.ParseType(name)
		if !ok {
			return nil, fmt.Errorf("unknown event type %q (valid: %s)",
				strings.TrimSpace(name), strings.Join(event.TypeNames(), ", "))
		}
		filter[t] = true
	}
	return filter, nil
}
