package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"voxel.app/studio/common/id"
	"voxel.app/studio/common/logger"
	"voxel.app/studio/common/otel"
	"voxel.app/studio/core/config"
	"voxel.app/studio/internal/chat"
	"voxel.app/studio/internal/http/handler"
	"voxel.app/studio/internal/http/middleware"
	httprouter "voxel.app/studio/internal/http/router"
	"voxel.app/studio/internal/store"
	"voxel.app/studio/internal/video"
	"voxel.app/studio/internal/worker"
)

func main() {
	fmt.Printf("%s\n", banner)
	ctx := context.Background()

	cfg, err := config.Load(config.ServiceTypeServer)
	if err != nil {
		slog.ErrorContext(ctx, "failed to load config", "error", err)
		os.Exit(1)
	}

	// OTel must init before logger (logger uses OTel provider in production)
	telemetry, err := otel.Setup(ctx, cfg.OTel)
	if err != nil {
		// Can't use slog yet — OTel failed before logger setup
		os.Stderr.WriteString("failed to initialize otel: " + err.Error() + "\n")
		os.Exit(1)
	}

	logger.Setup(cfg)

	if telemetry != nil {
		slog.InfoContext(ctx, "otel initialized", "endpoint", cfg.OTel.Endpoint)
	} else {
		slog.InfoContext(ctx, "otel disabled (no endpoint configured)")
	}

	slog.InfoContext(ctx, "studio starting", "env", cfg.Env, "service", cfg.OTel.ServiceName)
	if err := id.Init(1); err != nil {
		slog.ErrorContext(ctx, "failed to initialize snowflake id generator", "error", err)
		os.Exit(1)
	}

	var completer handler.Completer
	if cfg.ChatEnabled() && cfg.Chat.Deployment != "" {
		chatClient, err := chat.NewClient(chat.Config{
			APIKey:     cfg.Azure.APIKey,
			Endpoint:   cfg.Azure.Endpoint,
			APIVersion: cfg.Azure.APIVersion,
			Deployment: cfg.Chat.Deployment,
		})
		if err != nil {
			slog.ErrorContext(ctx, "failed to create chat client", "error", err)
			os.Exit(1)
		}
		completer = chatClient
	} else {
		slog.InfoContext(ctx, "chat disabled",
			"jobs_endpoint", cfg.Azure.IsJobsEndpoint(),
			"deployment_set", cfg.Chat.Deployment != "")
	}

	videoClient, err := video.NewClient(video.Config{
		APIKey:     cfg.Azure.APIKey,
		Endpoint:   cfg.Video.Endpoint,
		APIVersion: cfg.Video.APIVersion,
		Deployment: cfg.Video.Deployment,
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to create video client", "error", err)
		os.Exit(1)
	}

	sessions := store.NewSessionStore()
	registry := store.NewJobRegistry()

	watcher := worker.New(videoClient, registry, video.PollOptions{
		Interval: cfg.Video.PollInterval,
		Timeout:  cfg.Video.PollTimeout,
	})

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := setupRouter(cfg, httprouter.Deps{
		Chat:     completer,
		Sessions: sessions,
		Video:    videoClient,
		Registry: registry,
		Watcher:  watcher,
		ChatDefaults: chat.Options{
			Temperature: cfg.Chat.Temperature,
			TopP:        cfg.Chat.TopP,
			MaxTokens:   cfg.Chat.MaxTokens,
		},
		KeepPairs: cfg.Chat.KeepPairs,
	})

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		slog.InfoContext(ctx, "http server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.ErrorContext(ctx, "http server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.InfoContext(ctx, "shutting down...")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.ErrorContext(shutdownCtx, "http server shutdown error", "error", err)
	}

	if err := watcher.Shutdown(shutdownCtx); err != nil {
		slog.ErrorContext(shutdownCtx, "watcher shutdown error", "error", err)
	}

	if telemetry != nil {
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			slog.ErrorContext(shutdownCtx, "otel shutdown error", "error", err)
		}
	}

	slog.InfoContext(shutdownCtx, "shutdown complete")
}

func setupRouter(cfg config.Config, deps httprouter.Deps) *gin.Engine {
	router := gin.New()

	// Order matters: OTel creates span → Recovery catches panics → Logger logs with trace context
	if cfg.OTel.Enabled() {
		router.Use(otelgin.Middleware(cfg.OTel.ServiceName))
	}
	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())

	httprouter.SetupRoutes(router, deps, httprouter.Config{
		ChatEnabled: cfg.ChatEnabled() && deps.Chat != nil,
	})

	return router
}

const banner = `
███████╗████████╗██╗   ██╗██████╗ ██╗ ██████╗
██╔════╝╚══██╔══╝██║   ██║██╔══██╗██║██╔═══██╗
███████╗   ██║   ██║   ██║██║  ██║██║██║   ██║
╚════██║   ██║   ██║   ██║██║  ██║██║██║   ██║
███████║   ██║   ╚██████╔╝██████╔╝██║╚██████╔╝
╚══════╝   ╚═╝    ╚═════╝ ╚═════╝ ╚═╝ ╚═════╝
`
