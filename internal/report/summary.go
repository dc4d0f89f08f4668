// Package report renders aggregated session statistics for the terminal
// and as JSON.
package report

import (
	"github.com/vrclog/vrcstats-go/pkg/vrcstats"
	"github.com/vrclog/vrcstats-go/pkg/vrcstats/instance"
)

// DefaultTop is the default length of the world rankings.
const DefaultTop = 10

// Summary is the presentation view of a folded Report.
type Summary struct {
	DateRange   vrcstats.DateRange   `json:"date_range"`
	TotalHours  float64              `json:"total_hours"`
	Categories  []CategoryRow        `json:"categories"`
	TopByTime   []vrcstats.WorldStat `json:"top_worlds_by_time"`
	TopByVisits []vrcstats.WorldStat `json:"top_worlds_by_visits"`
	Files       FileCounts           `json:"files"`
}

// CategoryRow is the time spent in one instance category. Share is the
// fraction of the total in [0, 1], zero when nothing was accounted.
type CategoryRow struct {
	Category instance.Category `json:"category"`
	Hours    float64           `json:"hours"`
	Share    float64           `json:"share"`
}

// FileCounts tallies per-file outcomes.
type FileCounts struct {
	Folded int `json:"folded"`
	Empty  int `json:"empty"`
	Failed int `json:"failed"`
}

// NewSummary builds the view of rep with rankings of at most top worlds
// (DefaultTop when top <= 0). It returns vrcstats.ErrNoData when rep has
// no folded file.
func NewSummary(rep *vrcstats.Report, top int) (*Summary, error) {
	if !rep.HasData() {
		return nil, vrcstats.ErrNoData
	}
	if top <= 0 {
		top = DefaultTop
	}

	totals := rep.Totals
	s := &Summary{
		TotalHours:  totals.TotalTime().Hours(),
		TopByTime:   totals.TopWorldsByTime(top),
		TopByVisits: totals.TopWorldsByVisits(top),
		Files: FileCounts{
			Folded: rep.Count(vrcstats.FileFolded),
			Empty:  rep.Count(vrcstats.FileEmpty),
			Failed: rep.Count(vrcstats.FileFailed),
		},
	}
	if totals.DateRange != nil {
		s.DateRange = *totals.DateRange
	}

	total := totals.TotalTime()
	for _, c := range instance.Categories() {
		d := totals.CategoryTime[c]
		row := CategoryRow{Category: c, Hours: d.Hours()}
		if total > 0 {
			row.Share = float64(d) / float64(total)
		}
		s.Categories = append(s.Categories, row)
	}
	return s, nil
}
