package gateway

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/nekogravitycat/shareit/internal/api"
	"github.com/nekogravitycat/shareit/internal/auth"
	"github.com/nekogravitycat/shareit/internal/metrics"
	"github.com/nekogravitycat/shareit/internal/pkg/apperror"
	"github.com/nekogravitycat/shareit/internal/pkg/response"
)

var ErrRateLimited = apperror.New(http.StatusTooManyRequests, "rate limit exceeded")

// Config bundles what the gateway router needs.
type Config struct {
	IsProduction bool
	ProdOrigins  string
	Logger       zerolog.Logger
	Server       Forwarder
	Limiter      Limiter
}

// NewRouter builds the gateway: same REST surface as the server, validated and rate limited.
func NewRouter(cfg Config) *gin.Engine {
	r := api.NewEngine("gateway", cfg.IsProduction, cfg.ProdOrigins, cfg.Logger)
	h := NewHandler(cfg.Server)

	root := r.Group("", RateLimit(cfg.Limiter))

	users := root.Group("/users")
	{
		users.POST("", h.Body(func() validator { return &CreateUserRequest{} }))
		users.GET("", h.Plain)
		users.GET("/:id", h.Plain)
		users.PATCH("/:id", h.Body(func() validator { return &UpdateUserRequest{} }))
		users.DELETE("/:id", h.Plain)
	}

	items := root.Group("/items", auth.SharerRequired())
	{
		items.POST("", h.Body(func() validator { return &CreateItemRequest{} }))
		items.GET("", h.Plain)
		items.GET("/search", h.Plain)
		items.GET("/:id", h.Plain)
		items.PATCH("/:id", h.Body(func() validator { return &UpdateItemRequest{} }))
		items.DELETE("/:id", h.Plain)
		items.POST("/:id/comment", h.Body(func() validator { return &CreateCommentRequest{} }))
	}

	bookings := root.Group("/bookings", auth.SharerRequired())
	{
		bookings.POST("", h.Body(func() validator { return &CreateBookingRequest{} }))
		bookings.GET("", h.ListBookings)
		bookings.GET("/owner", h.ListBookings)
		bookings.GET("/:id", h.Plain)
		bookings.PATCH("/:id", h.Approve)
	}

	requests := root.Group("/requests", auth.SharerRequired())
	{
		requests.POST("", h.Body(func() validator { return &CreateItemRequestRequest{} }))
		requests.GET("", h.Plain)
		requests.GET("/all", h.Plain)
		requests.GET("/:id", h.Plain)
	}

	return r
}

// RateLimit throttles callers by X-Sharer-User-Id, or by client IP when the header is absent.
func RateLimit(limiter Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := "ip:" + c.ClientIP()
		if id, err := auth.ParseUserID(c.GetHeader(auth.HeaderUserID)); err == nil {
			key = "user:" + strconv.FormatInt(id, 10)
		}

		allowed, err := limiter.Allow(c.Request.Context(), key)
		if err != nil {
			// fail open
			zerolog.Ctx(c.Request.Context()).Error().Err(err).Msg("rate limiter failed")
			c.Next()
			return
		}
		if !allowed {
			metrics.IncRateLimited()
			response.Error(c, ErrRateLimited)
			return
		}
		c.Next()
	}
}
