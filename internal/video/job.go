package video

import "strings"

// Status is the normalized state of a remote video job.
type Status string

const (
	StatusPending   Status = "pending"
	StatusRunning   Status = "running"
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
	StatusCancelled Status = "cancelled"
	StatusUnknown   Status = "unknown"
)

// Terminal reports whether the status ends the watch loop.
func (s Status) Terminal() bool {
	switch s {
	case StatusSucceeded, StatusFailed, StatusCancelled:
		return true
	}
	return false
}

// ClassifyStatus maps a raw remote status string onto the normalized set.
// Matching is case-insensitive. Anything unrecognized (including an empty
// string) is non-terminal unknown, which keeps the watch loop going.
func ClassifyStatus(raw string) Status {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "succeeded", "completed", "done":
		return StatusSucceeded
	case "cancelled":
		return StatusCancelled
	case "failed", "error":
		return StatusFailed
	case "pending", "queued", "notstarted":
		return StatusPending
	case "running", "processing", "preprocessing", "in_progress":
		return StatusRunning
	default:
		return StatusUnknown
	}
}

// Job is one observation of a remote video job.
type Job struct {
	ID     string
	Status Status
	Raw    map[string]any
}

// Result is a successfully completed job plus the generation it produced.
type Result struct {
	Job          Job
	GenerationID string
}

// Artifact is downloaded video content plus the URL it came from.
type Artifact struct {
	Bytes     []byte
	SourceURL string
}

// statusFields are tried in order when reading the state from a poll response.
var statusFields = []string{"status", "state", "job_status"}

func extractStatus(payload map[string]any) string {
	for _, key := range statusFields {
		if v, ok := payload[key].(string); ok && v != "" {
			return v
		}
	}
	return ""
}

// jobIDFrom extracts the job ID from a creation response, trying id, job_id,
// then data.id. Returns "" when none is present.
func jobIDFrom(payload map[string]any) string {
	if v, ok := payload["id"].(string); ok && v != "" {
		return v
	}
	if v, ok := payload["job_id"].(string); ok && v != "" {
		return v
	}
	if data, ok := payload["data"].(map[string]any); ok {
		if v, ok := data["id"].(string); ok && v != "" {
			return v
		}
	}
	return ""
}

// generationIDFrom pulls generations[0].id out of a terminal payload.
func generationIDFrom(payload map[string]any) string {
	gens, ok := payload["generations"].([]any)
	if !ok || len(gens) == 0 {
		return ""
	}
	first, ok := gens[0].(map[string]any)
	if !ok {
		return ""
	}
	v, _ := first["id"].(string)
	return v
}
