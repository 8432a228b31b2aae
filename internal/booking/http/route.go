package http

import (
	"github.com/gin-gonic/gin"

	"github.com/nekogravitycat/shareit/internal/auth"
)

// RegisterRoutes registers all booking-related routes.
func RegisterRoutes(g *gin.RouterGroup, h *BookingHandler) {
	group := g.Group("/bookings", auth.SharerRequired())
	{
		group.POST("", h.Create)
		group.GET("", h.ListOwn)
		group.GET("/owner", h.ListOwner)
		group.GET("/:id", h.Get)
		group.PATCH("/:id", h.Approve)
	}
}
