package vrcstats

import (
	"slices"
	"time"

	"github.com/vrclog/vrcstats-go/pkg/vrcstats/event"
	"github.com/vrclog/vrcstats-go/pkg/vrcstats/instance"
)

// session tracks the single instance the user is in while replaying one
// file. joinedAt is only meaningful while open is set.
type session struct {
	category instance.Category
	world    string // UnknownWorld until a world join names it
	joinedAt time.Time
	open     bool
}

// Aggregate replays a file's events and returns the time spent per category
// and per world, the world visit counts and the covered date range.
//
// Events are expected in chronological order as returned by Extract; other
// input is stably sorted by timestamp first. An instance join closes the
// previous session, a room leave closes the current one, and a session
// still open at the end is closed at the last event's timestamp. No events
// yield an empty Result with a nil DateRange.
func Aggregate(events []event.Event) Result {
	if !slices.IsSortedFunc(events, compareTimestamp) {
		events = slices.Clone(events)
		slices.SortStableFunc(events, compareTimestamp)
	}

	res := NewResult()
	var s session

	for _, ev := range events {
		d := DateOf(ev.Timestamp)
		if res.DateRange == nil {
			res.DateRange = &DateRange{First: d, Last: d}
		} else {
			*res.DateRange = res.DateRange.Include(d)
		}

		switch ev.Type {
		case event.InstanceJoin:
			s.close(ev.Timestamp, &res)
			s.category = instance.Classify(ev.InstanceID)
			s.joinedAt = ev.Timestamp
			s.open = true
		case event.WorldJoin:
			s.world = ev.WorldName
			res.WorldVisits[ev.WorldName]++
		case event.RoomLeave:
			// A leave while idle keeps the world from a preceding world join.
			if s.close(ev.Timestamp, &res) {
				s = session{}
			}
		}
	}

	if len(events) > 0 {
		s.close(events[len(events)-1].Timestamp, &res)
	}
	return res
}

// close credits the open session, if any, up to ts, and reports whether
// one was open. World state is kept; only a room leave resets it.
func (s *session) close(ts time.Time, res *Result) bool {
	if !s.open {
		return false
	}
	d := ts.Sub(s.joinedAt)
	if d < 0 {
		d = 0
	}
	res.CategoryTime[s.category] += d
	res.WorldTime[s.world] += d
	s.open = false
	s.joinedAt = time.Time{}
	return true
}

func compareTimestamp(a, b event.Event) int {
	return a.Timestamp.Compare(b.Timestamp)
}
