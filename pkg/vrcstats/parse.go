package vrcstats

import (
	"github.com/vrclog/vrcstats-go/internal/parser"
	"github.com/vrclog/vrcstats-go/pkg/vrcstats/event"
)

// Event is an alias for event.Event.
type Event = event.Event

// EventType is an alias for event.Type.
type EventType = event.Type

// Event type constants.
const (
	EventInstanceJoin = event.InstanceJoin
	EventWorldJoin    = event.WorldJoin
	EventRoomLeave    = event.RoomLeave
)

// ParseLine parses a single VRChat log line into an Event.
// Timestamps are read in time.Local.
//
// Return values:
//   - (*Event, nil): Successfully parsed event
//   - (nil, nil): Line doesn't match any known event pattern (not an error)
//   - (nil, error): Event line with a malformed timestamp
//
// Example:
//
//	line := "2024.01.15 23:59:59 Log        -  [Behaviour] OnLeftRoom"
//	ev, err := vrcstats.ParseLine(line)
//	if err != nil {
//	    log.Printf("parse error: %v", err)
//	} else if ev != nil {
//	    fmt.Printf("%s at %s\n", ev.Type, ev.Timestamp)
//	}
func ParseLine(line string) (*Event, error) {
	return parser.Parse(line, nil)
}

// Extract returns the events of a whole log text in chronological order.
// Events sharing a timestamp keep their line order. Lines that are not
// events, or whose timestamp is malformed, are skipped. Only WithLocation
// affects Extract.
func Extract(text string, opts ...ParseOption) []Event {
	cfg := applyParseOptions(opts)
	return parser.Extract(text, cfg.location).Events
}

// AggregateText extracts and aggregates a whole log text.
func AggregateText(text string, opts ...ParseOption) Result {
	return Aggregate(Extract(text, opts...))
}
