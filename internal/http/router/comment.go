package router

import (
	"github.com/gin-gonic/gin"

	"threadbase.app/comments/internal/http/handler"
)

func CommentRouter(rg *gin.RouterGroup, h *handler.CommentHandler) {
	rg.POST("", h.Create)
	rg.GET("", h.List)
	rg.GET("/:id", h.GetByID)
	rg.PATCH("/:id", h.Update)
	rg.DELETE("/:id", h.Delete)
	rg.GET("/:id/replies", h.ListReplies)
	rg.POST("/:id/replies", h.CreateReply)
}
