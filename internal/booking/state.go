package booking

import (
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
)

// State is a view over bookings relative to the current time.
type State string

const (
	StateAll      State = "ALL"
	StateCurrent  State = "CURRENT"
	StatePast     State = "PAST"
	StateFuture   State = "FUTURE"
	StateWaiting  State = "WAITING"
	StateRejected State = "REJECTED"
)

// ParseState reads a state case-insensitively. Empty input means ALL.
func ParseState(raw string) (State, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return StateAll, nil
	}
	switch s := State(strings.ToUpper(raw)); s {
	case StateAll, StateCurrent, StatePast, StateFuture, StateWaiting, StateRejected:
		return s, nil
	}
	return "", ErrUnknownState.WithDetail(raw, nil)
}

// Condition returns the SQL predicate for the state over the bookings table aliased as b.
// ALL has no predicate and returns nil.
func (s State) Condition(now time.Time) squirrel.Sqlizer {
	switch s {
	case StateCurrent:
		return squirrel.And{
			squirrel.LtOrEq{"b.start_date": now},
			squirrel.GtOrEq{"b.end_date": now},
			squirrel.Eq{"b.status": StatusApproved},
		}
	case StatePast:
		return squirrel.Lt{"b.end_date": now}
	case StateFuture:
		return squirrel.Gt{"b.start_date": now}
	case StateWaiting:
		return squirrel.Eq{"b.status": StatusWaiting}
	case StateRejected:
		return squirrel.Eq{"b.status": StatusRejected}
	}
	return nil
}

// Matches applies the same predicate as Condition to a loaded booking.
func (s State) Matches(b *Booking, now time.Time) bool {
	switch s {
	case StateCurrent:
		return !b.Start.After(now) && !b.End.Before(now) && b.Status == StatusApproved
	case StatePast:
		return b.End.Before(now)
	case StateFuture:
		return b.Start.After(now)
	case StateWaiting:
		return b.Status == StatusWaiting
	case StateRejected:
		return b.Status == StatusRejected
	}
	return true
}
