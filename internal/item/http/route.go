package http

import (
	"github.com/gin-gonic/gin"

	"github.com/nekogravitycat/shareit/internal/auth"
)

// RegisterRoutes registers all item-related routes.
func RegisterRoutes(g *gin.RouterGroup, h *ItemHandler) {
	group := g.Group("/items", auth.SharerRequired())
	{
		group.POST("", h.Create)
		group.GET("", h.ListOwn)
		group.GET("/search", h.Search)
		group.GET("/:id", h.Get)
		group.PATCH("/:id", h.Update)
		group.DELETE("/:id", h.Delete)
		group.POST("/:id/comment", h.AddComment)
	}
}
