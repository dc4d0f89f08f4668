package event_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vrclog/vrcstats-go/pkg/vrcstats/event"
)

func TestTypeNames(t *testing.T) {
	assert.Equal(t, []string{"instance_join", "room_leave", "world_join"}, event.TypeNames())
}

func TestParseType(t *testing.T) {
	tests := []struct {
		in     string
		want   event.Type
		wantOK bool
	}{
		{"instance_join", event.InstanceJoin, true},
		{" WORLD_JOIN ", event.WorldJoin, true},
		{"Room_Leave", event.RoomLeave, true},
		{"player_join", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := event.ParseType(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEvent_Before(t *testing.T) {
	base := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	early := event.Event{Timestamp: base, Line: 5}
	later := event.Event{Timestamp: base.Add(time.Second), Line: 1}
	sameTimeNextLine := event.Event{Timestamp: base, Line: 6}

	assert.True(t, early.Before(later))
	assert.False(t, later.Before(early))
	assert.True(t, early.Before(sameTimeNextLine))
	assert.False(t, sameTimeNextLine.Before(early))
	assert.False(t, early.Before(early))
}
