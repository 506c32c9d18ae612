package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"voxel.app/studio/core/config"
	"voxel.app/studio/internal/video"
)

const (
	defaultWidth   = 1080
	defaultHeight  = 1080
	defaultSeconds = 5
)

type videoParams struct {
	Prompt  string
	Width   int
	Height  int
	Seconds int
	Output  string
}

func runVideo(params videoParams) error {
	ctx := context.Background()

	cfg, err := config.Load(config.ServiceTypeStudio)
	if err != nil {
		return err
	}

	client, err := video.NewClient(video.Config{
		APIKey:     cfg.Azure.APIKey,
		Endpoint:   cfg.Video.Endpoint,
		APIVersion: cfg.Video.APIVersion,
		Deployment: cfg.Video.Deployment,
	})
	if err != nil {
		return err
	}

	req := video.GenerationRequest{
		Prompt:  params.Prompt,
		Width:   params.Width,
		Height:  params.Height,
		Seconds: params.Seconds,
	}
	if strings.TrimSpace(params.Prompt) == "" {
		req, err = promptForGeneration(params)
		if err != nil {
			return err
		}

		confirmed, err := promptForConfirmation(req)
		if err != nil {
			return err
		}
		if !confirmed {
			displayInfo("Cancelled.")
			return nil
		}
	}
	if err := req.Validate(); err != nil {
		return err
	}

	displayInfo(fmt.Sprintf("Submitting job to %s...", cfg.Video.Deployment))
	jobID, err := client.Submit(ctx, req)
	if err != nil {
		return err
	}
	displaySuccess("Job " + jobID + " submitted")

	var last video.Status
	result, err := client.RunUntilTerminal(ctx, jobID, video.PollOptions{
		Interval: cfg.Video.PollInterval,
		Timeout:  cfg.Video.PollTimeout,
		OnUpdate: func(job video.Job) {
			if job.Status == last {
				return
			}
			last = job.Status
			displayInfo("Status: " + string(job.Status))
		},
	})
	if err != nil {
		return err
	}

	displayInfo("Downloading video...")
	artifact, err := client.FetchArtifact(ctx, result.GenerationID)
	if err != nil {
		return err
	}

	output := params.Output
	if output == "" {
		output = fmt.Sprintf("video_%s.mp4", result.Job.ID)
	}
	if err := os.WriteFile(output, artifact.Bytes, 0o644); err != nil {
		return fmt.Errorf("failed to write video file: %w", err)
	}

	displaySuccess(fmt.Sprintf("Saved %s (%d bytes)", output, len(artifact.Bytes)))
	return nil
}
