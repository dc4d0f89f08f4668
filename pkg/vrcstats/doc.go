// Package vrcstats aggregates VRChat session statistics from log files.
//
// This package allows you to:
//   - Extract instance joins, world joins and room leaves from log text
//   - Replay them into time spent per instance category and per world
//   - Count world visits and track the covered date range
//   - Fold the results of many log files into one
//
// # Basic Usage
//
// To aggregate every log file in the default VRChat log directory:
//
//	rep, err := vrcstats.ParseDir(ctx, dir,
//	    vrcstats.WithWorkers(4),
//	    vrcstats.WithLogger(slog.Default()),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if !rep.HasData() {
//	    log.Fatal(vrcstats.ErrNoData)
//	}
//	for cat, hours := range rep.Totals.CategoryHours() {
//	    fmt.Printf("%s: %.2fh\n", cat, hours)
//	}
//
// To aggregate a single log text:
//
//	res := vrcstats.AggregateText(text)
//	fmt.Println(res.TopWorldsByTime(10))
//
// # Sessions
//
// A session opens on an instance join and closes on the next instance join,
// on a room leave, or at the last event of the file. Its duration is
// credited to the category of the instance (see the [instance] package) and
// to the world most recently named by a world join. Time spent before any
// world join names a world is credited to [UnknownWorld].
//
// Each file is replayed on its own. Results are combined with
// [Result.Merge], which is associative and commutative; folding in any
// order gives the same totals.
//
// # Platform Support
//
// VRChat runs on Windows, and log paths are auto-detected from standard
// Windows locations by the vrcstats command. The package itself reads any
// directory on any platform, or an [afero.Fs] passed with [WithFS].
//
// # Disclaimer
//
// This is an unofficial tool and is not affiliated with VRChat Inc.
package vrcstats
