package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"voxel.app/studio/common/logger"
	"voxel.app/studio/internal/store"
	"voxel.app/studio/internal/video"
)

// JobClient is the part of the video client the watcher needs.
// Defined here to keep the watcher testable without HTTP.
type JobClient interface {
	RunUntilTerminal(ctx context.Context, jobID string, opts video.PollOptions) (video.Result, error)
	FetchArtifact(ctx context.Context, generationID string) (video.Artifact, error)
}

// Watcher follows submitted video jobs in the background, recording progress
// in the job registry and caching the artifact once a job succeeds.
type Watcher struct {
	client   JobClient
	registry *store.JobRegistry
	opts     video.PollOptions

	baseCtx context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

func New(client JobClient, registry *store.JobRegistry, opts video.PollOptions) *Watcher {
	ctx, cancel := context.WithCancel(context.Background())
	return &Watcher{
		client:   client,
		registry: registry,
		opts:     opts,
		baseCtx:  ctx,
		cancel:   cancel,
	}
}

// Watch starts a background watch for a submitted job. The job must already
// be registered. traceID links the watch to the request that created the job.
func (w *Watcher) Watch(jobID, traceID string) {
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		w.runSafe(jobID, traceID)
	}()
}

// Shutdown cancels running watches and waits for them to wind down.
func (w *Watcher) Shutdown(ctx context.Context) error {
	w.cancel()

	done := make(chan struct{})
	go func() {
		w.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (w *Watcher) runSafe(jobID, traceID string) {
	ctx := logger.WithLogFields(w.baseCtx, logger.LogFields{
		JobID:     logger.Ptr(jobID),
		Component: "studio.video.watcher",
	})

	defer func() {
		if r := recover(); r != nil {
			slog.ErrorContext(ctx, "panic recovered in video watch", "panic", r)
			w.registry.Fail(jobID, video.StatusUnknown, fmt.Sprintf("panic: %v", r))
		}
	}()

	sc := logger.StartSpanFromTraceID(ctx, traceID, "video.watch")
	defer sc.End()

	w.run(sc.Context(), jobID, sc)
}

func (w *Watcher) run(ctx context.Context, jobID string, sc *logger.SpanContext) {
	opts := w.opts
	opts.OnUpdate = func(job video.Job) {
		w.registry.SetStatus(jobID, job.Status)
	}

	result, err := w.client.RunUntilTerminal(ctx, jobID, opts)
	if err != nil {
		sc.RecordError(err)

		var failed *video.JobFailedError
		var timedOut *video.TimeoutError
		switch {
		case errors.As(err, &failed):
			w.registry.Fail(jobID, failed.Status, failed.Error())
		case errors.As(err, &timedOut):
			w.registry.Fail(jobID, video.StatusUnknown, timedOut.Error())
		default:
			// Context cancellation, typically server shutdown.
			w.registry.Fail(jobID, video.StatusCancelled, "watch cancelled")
		}
		return
	}

	w.registry.Complete(jobID, result.GenerationID)

	if result.GenerationID == "" {
		slog.WarnContext(ctx, "job succeeded but no generation id was provided")
		w.registry.Fail(jobID, video.StatusSucceeded, "job completed but no generation ID was provided")
		return
	}

	artifact, err := w.client.FetchArtifact(ctx, result.GenerationID)
	if err != nil {
		sc.RecordError(err)
		slog.ErrorContext(ctx, "artifact download failed", "error", err.Error())
		w.registry.Fail(jobID, video.StatusSucceeded, err.Error())
		return
	}

	w.registry.AttachArtifact(jobID, artifact)
}
