package router

import (
	"github.com/gin-gonic/gin"
	"voxel.app/studio/internal/chat"
	"voxel.app/studio/internal/http/handler"
	"voxel.app/studio/internal/store"
)

type Config struct {
	ChatEnabled bool
}

// Deps carries everything the handlers need. Chat is nil when the configured
// endpoint cannot serve chat.
type Deps struct {
	Chat         handler.Completer
	Sessions     *store.SessionStore
	Video        handler.Submitter
	Registry     *store.JobRegistry
	Watcher      handler.Watcher
	ChatDefaults chat.Options
	KeepPairs    int
}

func SetupRoutes(router *gin.Engine, deps Deps, cfg Config) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	pageHandler := handler.NewPageHandler(cfg.ChatEnabled)
	router.GET("/", pageHandler.Index)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/meta", pageHandler.Meta)

		chatHandler := handler.NewChatHandler(deps.Chat, deps.Sessions, deps.ChatDefaults, deps.KeepPairs)
		ChatRouter(v1.Group("/chat"), chatHandler)

		videoHandler := handler.NewVideoHandler(deps.Video, deps.Registry, deps.Watcher)
		VideoRouter(v1.Group("/video"), videoHandler)
	}
}
