package gateway

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"github.com/nekogravitycat/shareit/internal/api"
	"github.com/nekogravitycat/shareit/internal/auth"
	"github.com/nekogravitycat/shareit/internal/booking"
	"github.com/nekogravitycat/shareit/internal/pkg/apperror"
	"github.com/nekogravitycat/shareit/internal/pkg/request"
	"github.com/nekogravitycat/shareit/internal/pkg/response"
)

var ErrServerUnavailable = apperror.New(http.StatusBadGateway, "server unavailable")

// Forwarder sends a validated call to the server tier.
type Forwarder interface {
	Forward(ctx context.Context, call Call) (*Reply, error)
}

// Handler validates incoming calls and relays them to the server.
type Handler struct {
	server Forwarder
	now    func() time.Time
}

func NewHandler(server Forwarder) *Handler {
	return &Handler{server: server, now: time.Now}
}

// Body returns a handler that binds and validates the JSON body made by newBody before forwarding.
func (h *Handler) Body(newBody func() validator) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !bindPathID(c) {
			return
		}

		body := newBody()
		if err := c.ShouldBindBodyWith(body, binding.JSON); err != nil {
			response.Error(c, apperror.Validation("invalid request body: "+err.Error()))
			return
		}
		if err := body.Validate(h.now()); err != nil {
			response.Error(c, apperror.Validation(err.Error()))
			return
		}

		raw, _ := c.Get(gin.BodyBytesKey)
		data, _ := raw.([]byte)
		h.forward(c, data)
	}
}

// Plain forwards a call that carries no body, after checking the path id if any.
func (h *Handler) Plain(c *gin.Context) {
	if !bindPathID(c) {
		return
	}
	h.forward(c, nil)
}

// Approve checks the approved flag before forwarding.
func (h *Handler) Approve(c *gin.Context) {
	if !bindPathID(c) {
		return
	}
	var q ApproveQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, "query parameter 'approved' must be true or false")
		return
	}
	h.forward(c, nil)
}

// ListBookings checks the state filter before forwarding.
func (h *Handler) ListBookings(c *gin.Context) {
	var q StateQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, "invalid query parameters")
		return
	}
	if _, err := booking.ParseState(q.State); err != nil {
		response.Error(c, err)
		return
	}
	h.forward(c, nil)
}

func (h *Handler) forward(c *gin.Context, body []byte) {
	reply, err := h.server.Forward(c.Request.Context(), Call{
		Method:    c.Request.Method,
		Path:      c.Request.URL.Path,
		RawQuery:  c.Request.URL.RawQuery,
		UserID:    c.GetHeader(auth.HeaderUserID),
		RequestID: c.Writer.Header().Get(api.HeaderRequestID),
		Body:      body,
	})
	if err != nil {
		response.Error(c, apperror.Wrap(err, ErrServerUnavailable.Code, ErrServerUnavailable.Message))
		return
	}

	if len(reply.Body) == 0 {
		c.Status(reply.Status)
		return
	}
	c.Data(reply.Status, reply.ContentType, reply.Body)
}

// bindPathID validates an :id path parameter when the route has one.
func bindPathID(c *gin.Context) bool {
	if c.Param("id") == "" {
		return true
	}
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		response.BadRequest(c, "path id must be a positive integer")
		return false
	}
	return true
}
