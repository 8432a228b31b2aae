package http

import (
	"github.com/gin-gonic/gin"

	"github.com/nekogravitycat/shareit/internal/auth"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler) {
	group := g.Group("/requests", auth.SharerRequired())
	{
		group.POST("", h.Create)
		group.GET("", h.ListOwn)
		group.GET("/all", h.ListAll)
		group.GET("/:id", h.Get)
	}
}
