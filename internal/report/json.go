package report

import (
	"encoding/json"
	"io"
)

// WriteJSON writes s as indented JSON. World names keep the raw
// UnknownWorld key (an empty string).
func WriteJSON(w io.Writer, s *Summary) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}
