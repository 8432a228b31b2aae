package item

import (
	"net/http"
	"time"

	"github.com/nekogravitycat/shareit/internal/pkg/apperror"
)

var (
	ErrNotFound            = apperror.NotFound("item not found")
	ErrNoItems             = apperror.NotFound("no items for owner")
	ErrRequestNotFound     = apperror.NotFound("item request not found")
	ErrNotOwner            = apperror.Validation("only the owner may modify the item")
	ErrEmptyName           = apperror.Validation("name cannot be empty")
	ErrEmptyDescription    = apperror.Validation("description cannot be empty")
	ErrAvailableRequired   = apperror.Validation("available must be set")
	ErrEmptyCommentText    = apperror.Validation("comment text cannot be empty")
	ErrCannotReview        = apperror.BadRequest("cannot review without a completed booking")
	ErrHasBookingsOrReview = apperror.New(http.StatusConflict, "item has bookings or comments")
)

// Item is a thing a user lends out. RequestID links it to the request it fulfills.
type Item struct {
	ID          int64
	Name        string
	Description string
	Available   bool
	OwnerID     int64
	RequestID   *int64
}

// Comment is a review left by a past booker.
type Comment struct {
	ID         int64
	Text       string
	ItemID     int64
	AuthorID   int64
	AuthorName string
	Created    time.Time
}

// BookingBrief is the slice of a booking shown next to an item.
type BookingBrief struct {
	ID       int64
	BookerID int64
	Start    time.Time
	End      time.Time
}

// Adjacent holds the last finished and the next upcoming approved booking of an item.
type Adjacent struct {
	Last *BookingBrief
	Next *BookingBrief
}

// Details is an item with its comments and, for the owner, its surrounding bookings.
type Details struct {
	*Item
	LastBooking *BookingBrief
	NextBooking *BookingBrief
	Comments    []*Comment
}
