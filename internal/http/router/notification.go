package router

import (
	"github.com/gin-gonic/gin"

	"threadbase.app/comments/internal/http/handler"
)

func NotificationRouter(rg *gin.RouterGroup, h *handler.NotificationHandler) {
	rg.GET("", h.List)
	rg.GET("/unread-count", h.UnreadCount)
	rg.POST("", h.Create)
	rg.POST("/read-all", h.MarkAllRead)
	rg.GET("/:id", h.GetByID)
	rg.POST("/:id/read", h.MarkRead)
	rg.DELETE("/:id", h.Delete)
}
