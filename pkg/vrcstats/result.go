package vrcstats

import (
	"cmp"
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/vrclog/vrcstats-go/pkg/vrcstats/instance"
)

// UnknownWorld is the WorldTime key for time spent in an instance before
// any "Joining or Creating Room" line named its world.
const UnknownWorld = ""

// Date is a calendar date in the location the log timestamps were read in.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// DateOf returns the calendar date of t in t's location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// Compare returns -1, 0 or +1 depending on whether d is before, equal to,
// or after other.
func (d Date) Compare(other Date) int {
	if c := cmp.Compare(d.Year, other.Year); c != 0 {
		return c
	}
	if c := cmp.Compare(d.Month, other.Month); c != 0 {
		return c
	}
	return cmp.Compare(d.Day, other.Day)
}

// String formats the date as YYYY-MM-DD.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// MarshalText implements encoding.TextMarshaler.
func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Date) UnmarshalText(text []byte) error {
	t, err := time.Parse(time.DateOnly, string(text))
	if err != nil {
		return fmt.Errorf("invalid date %q: %w", text, err)
	}
	*d = DateOf(t)
	return nil
}

// DateRange is the inclusive range of calendar dates covered by events.
type DateRange struct {
	First Date `json:"first"`
	Last  Date `json:"last"`
}

// Include returns the smallest range covering both r and d.
func (r DateRange) Include(d Date) DateRange {
	if d.Compare(r.First) < 0 {
		r.First = d
	}
	if d.Compare(r.Last) > 0 {
		r.Last = d
	}
	return r
}

// Result holds aggregated statistics for one log file or a fold of many.
//
// A Result with a nil DateRange carries no data. Results are values: Merge
// never modifies its inputs.
type Result struct {
	// CategoryTime is the time spent per instance category.
	CategoryTime map[instance.Category]time.Duration

	// WorldTime is the time spent per world name. Time spent before any
	// world name was seen is keyed by UnknownWorld.
	WorldTime map[string]time.Duration

	// WorldVisits counts "Joining or Creating Room" lines per world name.
	WorldVisits map[string]int

	// DateRange covers the dates of all processed events, nil if none.
	DateRange *DateRange
}

// NewResult returns an empty Result with initialized maps.
func NewResult() Result {
	return Result{
		CategoryTime: make(map[instance.Category]time.Duration),
		WorldTime:    make(map[string]time.Duration),
		WorldVisits:  make(map[string]int),
	}
}

// Empty reports whether the result contains no data.
func (r Result) Empty() bool {
	return r.DateRange == nil
}

// Merge returns the fold of r and other: per-key sums of all maps (missing
// keys count as zero) and the union of date ranges. Merge is associative
// and commutative, and an empty Result is its identity.
func (r Result) Merge(other Result) Result {
	out := NewResult()
	for _, src := range []Result{r, other} {
		for k, v := range src.CategoryTime {
			out.CategoryTime[k] += v
		}
		for k, v := range src.WorldTime {
			out.WorldTime[k] += v
		}
		for k, v := range src.WorldVisits {
			out.WorldVisits[k] += v
		}
	}
	out.DateRange = mergeRanges(r.DateRange, other.DateRange)
	return out
}

// Fold merges all results into one. Fold of no results is an empty Result.
func Fold(results ...Result) Result {
	out := NewResult()
	for _, r := range results {
		out = out.Merge(r)
	}
	return out
}

func mergeRanges(a, b *DateRange) *DateRange {
	switch {
	case a == nil && b == nil:
		return nil
	case a == nil:
		r := *b
		return &r
	case b == nil:
		r := *a
		return &r
	}
	r := a.Include(b.First).Include(b.Last)
	return &r
}

// TotalTime returns the time accounted to any category.
func (r Result) TotalTime() time.Duration {
	var total time.Duration
	for _, d := range r.CategoryTime {
		total += d
	}
	return total
}

// CategoryHours returns hours per category for all eight categories,
// including those with no time.
func (r Result) CategoryHours() map[instance.Category]float64 {
	out := make(map[instance.Category]float64, len(instance.Categories()))
	for _, c := range instance.Categories() {
		out[c] = r.CategoryTime[c].Hours()
	}
	return out
}

// WorldHours returns hours per world name.
func (r Result) WorldHours() map[string]float64 {
	out := make(map[string]float64, len(r.WorldTime))
	for k, v := range r.WorldTime {
		out[k] = v.Hours()
	}
	return out
}

// WorldStat is one row of a world ranking.
type WorldStat struct {
	Name   string        `json:"name"`
	Time   time.Duration `json:"-"`
	Hours  float64       `json:"hours"`
	Visits int           `json:"visits"`
}

// TopWorldsByTime returns up to n worlds ordered by descending time spent.
// Ties are ordered by name. n <= 0 returns all worlds.
func (r Result) TopWorldsByTime(n int) []WorldStat {
	return r.topWorlds(n, func(a, b WorldStat) int {
		return cmp.Compare(b.Time, a.Time)
	})
}

// TopWorldsByVisits returns up to n worlds ordered by descending visits.
// Ties are ordered by name. n <= 0 returns all worlds.
func (r Result) TopWorldsByVisits(n int) []WorldStat {
	return r.topWorlds(n, func(a, b WorldStat) int {
		return cmp.Compare(b.Visits, a.Visits)
	})
}

func (r Result) topWorlds(n int, order func(a, b WorldStat) int) []WorldStat {
	names := make(map[string]struct{}, len(r.WorldTime)+len(r.WorldVisits))
	for k := range r.WorldTime {
		names[k] = struct{}{}
	}
	for k := range r.WorldVisits {
		names[k] = struct{}{}
	}

	stats := make([]WorldStat, 0, len(names))
	for _, name := range slices.Sorted(maps.Keys(names)) {
		d := r.WorldTime[name]
		stats = append(stats, WorldStat{
			Name:   name,
			Time:   d,
			Hours:  d.Hours(),
			Visits: r.WorldVisits[name],
		})
	}

	// Stable over name-sorted input keeps ties ordered by name.
	slices.SortStableFunc(stats, order)
	if n > 0 && len(stats) > n {
		stats = stats[:n]
	}
	return stats
}
