package request

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// localLayout is an ISO-8601 timestamp without a zone, read as UTC.
const localLayout = "2006-01-02T15:04:05"

// Time accepts RFC 3339 timestamps as well as zone-less ones like "2025-01-02T10:00:00".
type Time struct {
	time.Time
}

func (t *Time) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return nil
	}

	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("timestamp must be a string: %w", err)
	}

	parsed, err := ParseTime(raw)
	if err != nil {
		return err
	}
	t.Time = parsed
	return nil
}

func (t Time) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Time)
}

// ParseTime parses an RFC 3339 or zone-less timestamp.
func ParseTime(raw string) (time.Time, error) {
	if ts, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		return ts, nil
	}
	ts, err := time.ParseInLocation(localLayout, raw, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q", raw)
	}
	return ts, nil
}
