package parser

import "regexp"

// Timestamp format in VRChat logs: "2024.01.15 23:59:59"
const timestampLayout = "2006.01.02 15:04:05"

// timestampPrefix matches the timestamp token and the "Log" level that
// start every event line. Warning and Error lines never carry events.
// Captures: (1) timestamp
const timestampPrefix = `(\d{4}\.\d{2}\.\d{2} \d{2}:\d{2}:\d{2}) Log\b.*?`

// Event bodies, matched after timestampPrefix on the same line.
const (
	// Matches: "[Behaviour] Joining or Creating Room: World Name"
	// Captures: (1) world name
	worldJoinBody = `\[Behaviour\] Joining or Creating Room: (.+)$`

	// Matches: "[Behaviour] Joining wrld_xxx:12345~private(usr_xxx)~region(jp)"
	// Does not match "Joining or Creating" or "Joining friend".
	// Captures: (1) world ID, (2) instance part after the colon
	instanceJoinBody = `\[Behaviour\] Joining (wrld_[^:\s]+):(.+)$`

	// Matches: "[Behaviour] OnLeftRoom"
	roomLeaveBody = `\[Behaviour\] OnLeftRoom\b`
)

// Compiled regex patterns for event detection.
var (
	worldJoinPattern    = withTimestamp(worldJoinBody)
	instanceJoinPattern = withTimestamp(instanceJoinBody)
	roomLeavePattern    = withTimestamp(roomLeaveBody)
)

func withTimestamp(body string) *regexp.Regexp {
	return regexp.MustCompile(timestampPrefix + body)
}
