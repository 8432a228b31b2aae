package booking

import (
	"fmt"
	"time"
)

// DateError names the booking date that failed validation.
type DateError struct {
	Field  string
	Reason string
}

func (e *DateError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

// ValidateDates checks a requested booking window against now.
// Both dates must be present, not in the past, and start must come strictly before end.
func ValidateDates(start, end, now time.Time) error {
	switch {
	case start.IsZero():
		return &DateError{Field: "start", Reason: "is required"}
	case end.IsZero():
		return &DateError{Field: "end", Reason: "is required"}
	case start.Before(now):
		return &DateError{Field: "start", Reason: "must not be in the past"}
	case end.Before(now):
		return &DateError{Field: "end", Reason: "must not be in the past"}
	case !start.Before(end):
		return &DateError{Field: "end", Reason: "must be after start"}
	}
	return nil
}
