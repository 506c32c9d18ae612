package video

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"voxel.app/studio/common/logger"
)

// Per-call timeouts. Submission and download move real payloads; a poll is a
// small status read.
const (
	submitTimeout   = 60 * time.Second
	pollStepTimeout = 30 * time.Second
	fetchTimeout    = 120 * time.Second
)

// Config holds connection settings for the video jobs API.
type Config struct {
	APIKey     string
	Endpoint   string
	APIVersion string
	Deployment string
}

// Client talks to the Azure OpenAI video generations jobs API.
type Client struct {
	http       *resty.Client
	endpoint   string
	apiVersion string
	deployment string
}

// NewClient creates a video jobs client. The API key is passed through on
// every request as the api-key header.
func NewClient(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("endpoint is required")
	}

	apiVersion := cfg.APIVersion
	if apiVersion == "" {
		apiVersion = "preview"
	}
	deployment := cfg.Deployment
	if deployment == "" {
		deployment = "sora"
	}

	client := resty.New()
	client.SetHeaders(map[string]string{
		"api-key":      cfg.APIKey,
		"Content-Type": "application/json",
		"Accept":       "application/json",
	})

	return &Client{
		http:       client,
		endpoint:   cfg.Endpoint,
		apiVersion: apiVersion,
		deployment: deployment,
	}, nil
}

// JobsURL returns the job creation URL the client submits to.
func (c *Client) JobsURL() (string, error) {
	return BuildJobsURL(c.endpoint, c.apiVersion)
}

// Submit creates a video generation job and returns its ID.
func (c *Client) Submit(ctx context.Context, req GenerationRequest) (string, error) {
	if err := req.Validate(); err != nil {
		return "", &SubmissionError{Err: err}
	}

	jobsURL, err := BuildJobsURL(c.endpoint, c.apiVersion)
	if err != nil {
		return "", &SubmissionError{Err: err}
	}

	callCtx, cancel := context.WithTimeout(ctx, submitTimeout)
	defer cancel()

	resp, err := c.http.R().
		SetContext(callCtx).
		SetBody(req.body(c.deployment)).
		Post(jobsURL)
	if err != nil {
		return "", &SubmissionError{Err: fmt.Errorf("posting job: %w", err)}
	}
	if resp.StatusCode() >= 400 {
		return "", &SubmissionError{
			StatusCode: resp.StatusCode(),
			Body:       logger.Truncate(resp.String(), 512),
		}
	}

	payload := map[string]any{}
	if err := json.Unmarshal(resp.Body(), &payload); err != nil {
		return "", &SubmissionError{Err: fmt.Errorf("decoding job response: %w", err)}
	}

	jobID := jobIDFrom(payload)
	if jobID == "" {
		return "", &SubmissionError{Err: fmt.Errorf("no job id in response: %s", logger.Truncate(resp.String(), 512))}
	}

	slog.InfoContext(ctx, "video job created",
		"job_id", jobID,
		"deployment", c.deployment,
		"width", req.Width,
		"height", req.Height,
		"seconds", req.Seconds)

	return jobID, nil
}

// Poll reads the job's current state once. A response that is not JSON, or
// that carries no recognizable status field, leaves the job at unknown
// without an error; only request-level failures produce a TransportError.
func (c *Client) Poll(ctx context.Context, jobID string) (Job, error) {
	jobsURL, err := BuildJobsURL(c.endpoint, c.apiVersion)
	if err != nil {
		return Job{}, &TransportError{JobID: jobID, Err: err}
	}
	statusURL, err := BuildStatusURL(jobsURL, jobID)
	if err != nil {
		return Job{}, &TransportError{JobID: jobID, Err: err}
	}

	callCtx, cancel := context.WithTimeout(ctx, pollStepTimeout)
	defer cancel()

	resp, err := c.http.R().
		SetContext(callCtx).
		Get(statusURL)
	if err != nil {
		return Job{}, &TransportError{JobID: jobID, Err: err}
	}

	job := Job{ID: jobID, Status: StatusUnknown}

	contentType := resp.Header().Get("Content-Type")
	if !strings.HasPrefix(contentType, "application/json") {
		return job, nil
	}

	payload := map[string]any{}
	if err := json.Unmarshal(resp.Body(), &payload); err != nil {
		return job, nil
	}

	job.Raw = payload
	job.Status = ClassifyStatus(extractStatus(payload))
	return job, nil
}

// FetchArtifact downloads the content of a finished generation.
func (c *Client) FetchArtifact(ctx context.Context, generationID string) (Artifact, error) {
	if generationID == "" {
		return Artifact{}, &ArtifactFetchError{Err: fmt.Errorf("generation id is empty")}
	}

	contentURL := BuildContentURL(c.endpoint, c.apiVersion, generationID)

	callCtx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	resp, err := c.http.R().
		SetContext(callCtx).
		Get(contentURL)
	if err != nil {
		return Artifact{}, &ArtifactFetchError{URL: contentURL, Err: err}
	}
	if resp.StatusCode() >= 400 {
		return Artifact{}, &ArtifactFetchError{URL: contentURL, StatusCode: resp.StatusCode()}
	}
	if len(resp.Body()) == 0 {
		return Artifact{}, &ArtifactFetchError{URL: contentURL, Err: fmt.Errorf("empty response body")}
	}

	slog.InfoContext(ctx, "video content downloaded",
		"generation_id", generationID,
		"bytes", len(resp.Body()))

	return Artifact{Bytes: resp.Body(), SourceURL: contentURL}, nil
}
