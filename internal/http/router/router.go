package router

import (
	"github.com/gin-gonic/gin"

	"threadbase.app/comments/internal/http/handler"
	"threadbase.app/comments/internal/service"
)

func SetupRoutes(router *gin.Engine, services *service.Services) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")
	{
		commentHandler := handler.NewCommentHandler(services.Comments())
		CommentRouter(v1.Group("/comments"), commentHandler)

		notificationHandler := handler.NewNotificationHandler(services.Notifications())
		NotificationRouter(v1.Group("/notifications"), notificationHandler)
	}
}
