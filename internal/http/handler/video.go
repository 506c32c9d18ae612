package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"
	"voxel.app/studio/common/logger"
	"voxel.app/studio/internal/http/dto"
	"voxel.app/studio/internal/store"
	"voxel.app/studio/internal/video"
)

// Submitter is the part of the video client the handler needs.
type Submitter interface {
	Submit(ctx context.Context, req video.GenerationRequest) (string, error)
}

// Watcher starts a background watch for a submitted job.
type Watcher interface {
	Watch(jobID, traceID string)
}

type VideoHandler struct {
	client   Submitter
	registry *store.JobRegistry
	watcher  Watcher
}

func NewVideoHandler(client Submitter, registry *store.JobRegistry, watcher Watcher) *VideoHandler {
	return &VideoHandler{
		client:   client,
		registry: registry,
		watcher:  watcher,
	}
}

// Create validates and submits a generation job, then hands it to the
// background watcher and returns immediately with the job ID.
func (h *VideoHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.CreateVideoJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.WarnContext(ctx, "invalid request body", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	genReq := video.GenerationRequest{
		Prompt:  req.Prompt,
		Width:   req.Width,
		Height:  req.Height,
		Seconds: req.Seconds,
	}
	if err := genReq.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	jobID, err := h.client.Submit(ctx, genReq)
	if err != nil {
		slog.ErrorContext(ctx, "video job submission failed", "error", err.Error())
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	ctx = logger.WithLogFields(ctx, logger.LogFields{
		JobID:     logger.Ptr(jobID),
		Component: "studio.http.video",
	})

	rec := h.registry.Add(jobID, currentTraceID(ctx))
	h.watcher.Watch(jobID, rec.TraceID)

	slog.InfoContext(ctx, "video job accepted")
	c.JSON(http.StatusAccepted, dto.ToVideoJobResponse(rec))
}

// Get reports the registry's view of a watched job.
func (h *VideoHandler) Get(c *gin.Context) {
	rec, err := h.registry.Get(c.Param("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "job not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read job"})
		return
	}

	c.JSON(http.StatusOK, dto.ToVideoJobResponse(rec))
}

// Content serves the cached artifact of a succeeded job.
func (h *VideoHandler) Content(c *gin.Context) {
	rec, err := h.registry.Get(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "job not found"})
		return
	}

	if rec.Artifact == nil {
		if rec.Done() {
			c.JSON(http.StatusNotFound, gin.H{"error": "no content available for this job"})
			return
		}
		c.JSON(http.StatusConflict, gin.H{"error": "job is still in progress"})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+rec.ID+`.mp4"`)
	c.Data(http.StatusOK, "video/mp4", rec.Artifact.Bytes)
}

// currentTraceID extracts the active trace ID so the background watch can
// link its spans to the originating request.
func currentTraceID(ctx context.Context) string {
	sc := trace.SpanFromContext(ctx).SpanContext()
	if !sc.IsValid() {
		return ""
	}
	return sc.TraceID().String()
}
