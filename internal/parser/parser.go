// Package parser extracts session events from VRChat log text.
package parser

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/vrclog/vrcstats-go/pkg/vrcstats/event"
)

// ErrMalformedTimestamp is returned for event lines whose timestamp token
// has the right shape but is not a valid date or time.
var ErrMalformedTimestamp = errors.New("malformed timestamp")

// byteOrderMark may prefix the first line of a log written by Unity.
const byteOrderMark = "\ufeff"

// newlines turns CRLF and bare CR line endings into LF.
var newlines = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// matcher recognizes one event kind and returns the raw timestamp token
// with a partially filled event. Matchers are tried in order and the first
// hit wins, so a line yields at most one event.
type matcher func(line string) (ts string, ev *event.Event)

var matchers = []matcher{
	matchWorldJoin,
	matchInstanceJoin,
	matchRoomLeave,
}

// Parse parses a VRChat log line into an Event.
// Timestamps are interpreted in loc; nil means time.Local.
//
// Returns:
//   - (*Event, nil): Successfully parsed
//   - (nil, nil): Not a recognized event pattern
//   - (nil, error): Event line with a malformed timestamp
func Parse(line string, loc *time.Location) (*event.Event, error) {
	// Trim trailing CR for Windows CRLF compatibility
	line = strings.TrimRight(line, "\r\n")

	for _, m := range matchers {
		token, ev := m(line)
		if ev == nil {
			continue
		}
		ts, err := parseTimestamp(token, loc)
		if err != nil {
			return nil, err
		}
		ev.Timestamp = ts
		return ev, nil
	}

	// Not a recognized event
	return nil, nil
}

// Extraction is the result of scanning a whole log text.
type Extraction struct {
	// Events in chronological order. Events sharing a timestamp keep
	// their line order.
	Events []event.Event

	// Malformed counts event lines skipped because of a bad timestamp.
	Malformed int
}

// Extract scans text top to bottom and returns its events sorted by time.
// Text without any event lines yields an empty Extraction, not an error.
func Extract(text string, loc *time.Location) Extraction {
	text = strings.TrimPrefix(text, byteOrderMark)
	if strings.Contains(text, "\r") {
		text = newlines.Replace(text)
	}

	var out Extraction
	lineNo := 0
	for line := range strings.Lines(text) {
		lineNo++
		ev, err := Parse(line, loc)
		if err != nil {
			out.Malformed++
			continue
		}
		if ev == nil {
			continue
		}
		ev.Line = lineNo
		out.Events = append(out.Events, *ev)
	}

	// Stable: equal timestamps stay in scan order, which is line order.
	slices.SortStableFunc(out.Events, func(a, b event.Event) int {
		return a.Timestamp.Compare(b.Timestamp)
	})
	return out
}

func parseTimestamp(token string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	ts, err := time.ParseInLocation(timestampLayout, token, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrMalformedTimestamp, token)
	}
	return ts, nil
}

func matchWorldJoin(line string) (string, *event.Event) {
	match := worldJoinPattern.FindStringSubmatch(line)
	if match == nil {
		return "", nil
	}
	name := strings.TrimSpace(match[2])
	if name == "" {
		return "", nil
	}
	return match[1], &event.Event{
		Type:      event.WorldJoin,
		WorldName: name,
	}
}

func matchInstanceJoin(line string) (string, *event.Event) {
	match := instanceJoinPattern.FindStringSubmatch(line)
	if match == nil {
		return "", nil
	}
	rest := strings.TrimSpace(match[3])
	if rest == "" {
		return "", nil
	}
	return match[1], &event.Event{
		Type:       event.InstanceJoin,
		WorldID:    match[2],
		InstanceID: match[2] + ":" + rest,
	}
}

func matchRoomLeave(line string) (string, *event.Event) {
	match := roomLeavePattern.FindStringSubmatch(line)
	if match == nil {
		return "", nil
	}
	return match[1], &event.Event{Type: event.RoomLeave}
}
