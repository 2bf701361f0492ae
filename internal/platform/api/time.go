package api

import (
	"encoding/json"
	"fmt"
	"time"
)

// wireFormats are the serialized time shapes the service emits: full RFC 3339
// timestamps (with or without fractional seconds) and bare dates.
var wireFormats = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// Time is a timestamp as it travels on the wire. It decodes any of the
// service's serialized forms and always marshals back as RFC 3339 UTC, the
// form the service accepts on writes.
type Time struct {
	time.Time
}

// NewTime wraps a time.Time for a wire payload.
func NewTime(t time.Time) *Time {
	return &Time{Time: t}
}

func (t Time) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.UTC().Format(time.RFC3339))
}

func (t *Time) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for _, format := range wireFormats {
		parsed, err := time.Parse(format, raw)
		if err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("unrecognized time %q", raw)
}
