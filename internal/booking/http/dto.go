package http

import (
	"time"

	"github.com/nekogravitycat/shareit/internal/booking"
	itemhttp "github.com/nekogravitycat/shareit/internal/item/http"
	"github.com/nekogravitycat/shareit/internal/pkg/request"
	userhttp "github.com/nekogravitycat/shareit/internal/user/http"
)

type BookingResponse struct {
	ID     int64                 `json:"id"`
	Start  time.Time             `json:"start"`
	End    time.Time             `json:"end"`
	Status string                `json:"status"`
	Item   itemhttp.ItemResponse `json:"item"`
	Booker userhttp.UserResponse `json:"booker"`
}

func NewBookingResponse(b *booking.Booking) BookingResponse {
	return BookingResponse{
		ID:     b.ID,
		Start:  b.Start,
		End:    b.End,
		Status: string(b.Status),
		Item:   itemhttp.NewItemResponse(b.Item),
		Booker: userhttp.NewUserResponse(b.Booker),
	}
}

func NewBookingListResponse(list []*booking.Booking) []BookingResponse {
	out := make([]BookingResponse, len(list))
	for i, b := range list {
		out[i] = NewBookingResponse(b)
	}
	return out
}

// CreateBookingRequest defines the payload for POST /bookings.
type CreateBookingRequest struct {
	ItemID int64         `json:"itemId" binding:"required,min=1"`
	Start  *request.Time `json:"start" binding:"required"`
	End    *request.Time `json:"end" binding:"required"`
}

// ApproveQuery carries the owner's decision on PATCH /bookings/:id.
type ApproveQuery struct {
	Approved *bool `form:"approved" binding:"required"`
}

type ListQuery struct {
	State string `form:"state"`
}
