package video

import (
	"fmt"
	"time"
)

// SubmissionError reports a failed job creation: transport failure, an error
// status from the API, or a response with no readable job ID.
type SubmissionError struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *SubmissionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("video job submission failed: %v", e.Err)
	}
	return fmt.Sprintf("video job submission failed: status %d: %s", e.StatusCode, e.Body)
}

func (e *SubmissionError) Unwrap() error {
	return e.Err
}

// TransportError reports a single failed poll attempt. The watch loop logs
// and swallows these; the job may still complete on a later attempt.
type TransportError struct {
	JobID string
	Err   error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("polling job %s: %v", e.JobID, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// TimeoutError reports that a job did not reach a terminal state within the
// allowed time.
type TimeoutError struct {
	JobID   string
	Timeout time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("timed out after %s waiting for job %s to complete", e.Timeout, e.JobID)
}

// JobFailedError reports a job that ended in a failure state. Payload holds
// the raw terminal response for diagnosis.
type JobFailedError struct {
	JobID   string
	Status  Status
	Payload map[string]any
}

func (e *JobFailedError) Error() string {
	return fmt.Sprintf("job %s ended with status %s", e.JobID, e.Status)
}

// ArtifactFetchError reports a failed or empty content download.
type ArtifactFetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *ArtifactFetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fetching video content: %v", e.Err)
	}
	return fmt.Sprintf("fetching video content: status %d from %s", e.StatusCode, e.URL)
}

func (e *ArtifactFetchError) Unwrap() error {
	return e.Err
}
