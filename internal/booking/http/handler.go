package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nekogravitycat/shareit/internal/auth"
	"github.com/nekogravitycat/shareit/internal/booking"
	"github.com/nekogravitycat/shareit/internal/pkg/request"
	"github.com/nekogravitycat/shareit/internal/pkg/response"
)

type BookingHandler struct {
	bookingService booking.Service
}

func NewHandler(bookingService booking.Service) *BookingHandler {
	return &BookingHandler{bookingService: bookingService}
}

// Create books an item for the caller. The booking starts out WAITING.
func (h *BookingHandler) Create(c *gin.Context) {
	var body CreateBookingRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	b, err := h.bookingService.Create(c.Request.Context(), auth.GetUserID(c), booking.CreateRequest{
		ItemID: body.ItemID,
		Start:  body.Start.Time,
		End:    body.End.Time,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewBookingResponse(b))
}

// Approve lets the item owner approve or reject a booking.
func (h *BookingHandler) Approve(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid booking id")
		return
	}

	var q ApproveQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, "query parameter 'approved' must be true or false")
		return
	}

	b, err := h.bookingService.Approve(c.Request.Context(), uri.ID, auth.GetUserID(c), *q.Approved)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(b))
}

func (h *BookingHandler) Get(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid booking id")
		return
	}

	b, err := h.bookingService.GetByID(c.Request.Context(), uri.ID, auth.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(b))
}

// ListOwn returns the caller's bookings as a booker.
func (h *BookingHandler) ListOwn(c *gin.Context) {
	state, ok := bindState(c)
	if !ok {
		return
	}

	list, err := h.bookingService.ListForUser(c.Request.Context(), auth.GetUserID(c), state)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewBookingListResponse(list))
}

// ListOwner returns bookings of the caller's items.
func (h *BookingHandler) ListOwner(c *gin.Context) {
	state, ok := bindState(c)
	if !ok {
		return
	}

	list, err := h.bookingService.ListForOwner(c.Request.Context(), auth.GetUserID(c), state)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewBookingListResponse(list))
}

func bindState(c *gin.Context) (booking.State, bool) {
	var q ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, "invalid query parameters")
		return "", false
	}

	state, err := booking.ParseState(q.State)
	if err != nil {
		response.Error(c, err)
		return "", false
	}
	return state, true
}
