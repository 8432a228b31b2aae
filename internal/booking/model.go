package booking

import (
	"time"

	"github.com/nekogravitycat/shareit/internal/item"
	"github.com/nekogravitycat/shareit/internal/pkg/apperror"
	"github.com/nekogravitycat/shareit/internal/user"
)

var (
	ErrNotFound        = apperror.NotFound("booking not found")
	ErrOwnerCannotBook = apperror.Validation("owner cannot book own item")
	ErrItemUnavailable = apperror.Validation("item is not available for booking")
	ErrInvalidDates    = apperror.Validation("invalid booking dates")
	ErrNotItemOwner    = apperror.Validation("only owner may approve")
	ErrNotAuthorized   = apperror.Validation("not authorized to view")
	ErrAlreadyDecided  = apperror.Validation("booking has already been decided")
	ErrUnknownState    = apperror.BadRequest("Unknown state")
)

type Status string

const (
	StatusWaiting  Status = "WAITING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
)

// transitions lists the statuses each status may move to.
var transitions = map[Status][]Status{
	StatusWaiting: {StatusApproved, StatusRejected},
}

// CanTransitionTo reports whether a booking in status s may move to next.
func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Booking is a reservation of an item by a booker over [Start, End].
// Item and Booker are resolved when the booking is read.
type Booking struct {
	ID       int64
	Start    time.Time
	End      time.Time
	ItemID   int64
	BookerID int64
	Status   Status

	Item   *item.Item
	Booker *user.User
}

// Filter selects bookings for a booker or for the owner of the booked items.
type Filter struct {
	BookerID int64
	OwnerID  int64
	State    State
	Now      time.Time
}
