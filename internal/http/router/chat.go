package router

import (
	"github.com/gin-gonic/gin"
	"voxel.app/studio/internal/http/handler"
)

func ChatRouter(router *gin.RouterGroup, handler *handler.ChatHandler) {
	router.POST("", handler.Send)
	router.DELETE("/:session_id", handler.Clear)
}
