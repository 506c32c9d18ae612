package router

import (
	"github.com/gin-gonic/gin"
	"voxel.app/studio/internal/http/handler"
)

func VideoRouter(router *gin.RouterGroup, handler *handler.VideoHandler) {
	router.POST("/jobs", handler.Create)
	router.GET("/jobs/:id", handler.Get)
	router.GET("/jobs/:id/content", handler.Content)
}
