package video

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"voxel.app/studio/common/logger"
)

// Default pacing for RunUntilTerminal.
const (
	DefaultPollInterval = 3 * time.Second
	DefaultPollTimeout  = 600 * time.Second
)

// PollOptions control the watch loop. A non-positive Interval falls back to
// DefaultPollInterval. Timeout is taken as given: a zero timeout expires
// before the first poll is sent. OnUpdate, when set, is called after every
// successful poll with the observed job state.
type PollOptions struct {
	Interval time.Duration
	Timeout  time.Duration
	OnUpdate func(Job)
}

// DefaultPollOptions returns the pacing used when the caller supplies none.
func DefaultPollOptions() PollOptions {
	return PollOptions{
		Interval: DefaultPollInterval,
		Timeout:  DefaultPollTimeout,
	}
}

// RunUntilTerminal polls the job until it reaches a terminal state.
//
// Transport failures on individual polls are logged and swallowed; the loop
// keeps going until the deadline. The three ways out are distinguishable:
// ctx cancellation returns ctx.Err(), an exhausted time budget returns a
// TimeoutError, and a remote failure state returns a JobFailedError carrying
// the raw payload. On success the result includes the generation ID when the
// terminal payload names one.
func (c *Client) RunUntilTerminal(ctx context.Context, jobID string, opts PollOptions) (Result, error) {
	interval := opts.Interval
	if interval <= 0 {
		interval = DefaultPollInterval
	}

	ctx = logger.WithLogFields(ctx, logger.LogFields{
		JobID:     logger.Ptr(jobID),
		Component: "studio.video.poller",
	})

	deadline := time.Now().Add(opts.Timeout)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		// The deadline gate runs before any request, so a zero time budget
		// fails without touching the network.
		if !time.Now().Before(deadline) {
			slog.WarnContext(ctx, "gave up waiting for video job", "timeout", opts.Timeout.String())
			return Result{}, &TimeoutError{JobID: jobID, Timeout: opts.Timeout}
		}

		select {
		case <-ctx.Done():
			slog.InfoContext(ctx, "video watch cancelled")
			return Result{}, ctx.Err()
		case <-ticker.C:
		}

		job, err := c.Poll(ctx, jobID)
		if err != nil {
			var te *TransportError
			if errors.As(err, &te) {
				slog.WarnContext(ctx, "poll attempt failed", "error", err.Error())
				continue
			}
			return Result{}, err
		}

		if opts.OnUpdate != nil {
			opts.OnUpdate(job)
		}

		switch {
		case job.Status == StatusSucceeded:
			generationID := generationIDFrom(job.Raw)
			slog.InfoContext(ctx, "video job succeeded", "generation_id", generationID)
			return Result{Job: job, GenerationID: generationID}, nil
		case job.Status.Terminal():
			slog.WarnContext(ctx, "video job failed", "status", string(job.Status))
			return Result{}, &JobFailedError{JobID: jobID, Status: job.Status, Payload: job.Raw}
		}

		slog.DebugContext(ctx, "video job in progress", "status", string(job.Status))
	}
}
