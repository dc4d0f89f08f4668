package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/vrclog/vrcstats-go/pkg/vrcstats"
	"github.com/vrclog/vrcstats-go/pkg/vrcstats/instance"
)

// Event output formats.
const (
	formatJSONL  = "jsonl"
	formatPretty = "pretty"
)

// ValidFormats lists all valid event output formats.
var ValidFormats = map[string]bool{
	formatJSONL:  true,
	formatPretty: true,
}

// eventRecord is the JSON Lines form of an event. Instance joins carry
// their category so the stream can be filtered with jq alone.
type eventRecord struct {
	vrcstats.Event
	File     string            `json:"file,omitempty"`
	Category instance.Category `json:"category,omitempty"`
}

// OutputEvent writes an event in the specified format to the writer.
// file is the base name of the log file the event came from.
func OutputEvent(format, file string, event vrcstats.Event, out io.Writer) error {
	switch format {
	case formatJSONL:
		return OutputJSON(file, event, out)
	case formatPretty:
		return OutputPretty(event, out)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// OutputJSON writes an event as JSON Lines format.
func OutputJSON(file string, event vrcstats.Event, out io.Writer) error {
	rec := eventRecord{Event: event, File: file}
	if event.Type == vrcstats.EventInstanceJoin {
		rec.Category = instance.Classify(event.InstanceID)
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, string(data))
	return err
}

// OutputPretty writes an event in human-readable format.
func OutputPretty(event vrcstats.Event, out io.Writer) error {
	ts := event.Timestamp.Format("2006-01-02 15:04:05")

	var err error
	switch event.Type {
	case vrcstats.EventInstanceJoin:
		_, err = fmt.Fprintf(out, "[%s] > Joined instance: %s (%s)\n",
			ts, event.InstanceID, instance.Classify(event.InstanceID))
	case vrcstats.EventWorldJoin:
		_, err = fmt.Fprintf(out, "[%s] + Entered world: %s\n", ts, event.WorldName)
	case vrcstats.EventRoomLeave:
		_, err = fmt.Fprintf(out, "[%s] - Left room\n", ts)
	default:
		_, err = fmt.Fprintf(out, "[%s] ? %s\n", ts, event.Type)
	}
	return err
}
