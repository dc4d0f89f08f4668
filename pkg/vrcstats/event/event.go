// Package event defines the Event type extracted from VRChat log files.
//
// This package is separated from the main vrcstats package to avoid import
// cycles between pkg/vrcstats and internal/parser.
package event

import (
	"sort"
	"strings"
	"time"
)

// Type represents the kind of session event found in a log.
type Type string

const (
	// InstanceJoin indicates the local user started joining an instance
	// ("Joining wrld_xxx:instance").
	InstanceJoin Type = "instance_join"

	// WorldJoin indicates the room for a world was joined or created
	// ("Joining or Creating Room: name"). It carries the world name.
	WorldJoin Type = "world_join"

	// RoomLeave indicates the local user left the current room ("OnLeftRoom").
	RoomLeave Type = "room_leave"
)

// allTypes is the canonical list of all event types.
var allTypes = []Type{InstanceJoin, WorldJoin, RoomLeave}

// TypeNames returns a sorted list of all valid event type names.
func TypeNames() []string {
	names := make([]string, len(allTypes))
	for i, t := range allTypes {
		names[i] = string(t)
	}
	sort.Strings(names)
	return names
}

var typeByName = func() map[string]Type {
	m := make(map[string]Type, len(allTypes))
	for _, t := range allTypes {
		m[string(t)] = t
	}
	return m
}()

// ParseType converts a string to Type if valid.
// It is case-insensitive and trims leading/trailing whitespace.
func ParseType(name string) (Type, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	t, ok := typeByName[name]
	return t, ok
}

// Event represents a parsed session event.
type Event struct {
	// Type is the event type.
	Type Type `json:"type"`

	// Timestamp is when the event occurred (second resolution).
	Timestamp time.Time `json:"timestamp"`

	// Line is the 1-based line number in the source text.
	// It breaks ties between events sharing a timestamp.
	Line int `json:"line,omitempty"`

	// InstanceID is the raw instance identifier including the world ID
	// (e.g. "wrld_xxx:12345~private(usr_xxx)~canRequestInvite").
	InstanceID string `json:"instance_id,omitempty"`

	// WorldID is the wrld_xxx part of InstanceID.
	WorldID string `json:"world_id,omitempty"`

	// WorldName is the display name of the world (world joins only).
	WorldName string `json:"world_name,omitempty"`
}

// Before reports whether e sorts before other in chronological order.
func (e Event) Before(other Event) bool {
	if !e.Timestamp.Equal(other.Timestamp) {
		return e.Timestamp.Before(other.Timestamp)
	}
	return e.Line < other.Line
}
