package dto

import (
	"time"

	"voxel.app/studio/internal/store"
)

type CreateVideoJobRequest struct {
	Prompt  string `json:"prompt" binding:"required,min=1"`
	Width   int    `json:"width" binding:"required"`
	Height  int    `json:"height" binding:"required"`
	Seconds int    `json:"n_seconds" binding:"required"`
}

type VideoJobResponse struct {
	JobID        string    `json:"job_id"`
	Status       string    `json:"status"`
	GenerationID string    `json:"generation_id,omitempty"`
	Error        string    `json:"error,omitempty"`
	HasContent   bool      `json:"has_content"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func ToVideoJobResponse(rec store.JobRecord) VideoJobResponse {
	return VideoJobResponse{
		JobID:        rec.ID,
		Status:       string(rec.Status),
		GenerationID: rec.GenerationID,
		Error:        rec.Error,
		HasContent:   rec.Artifact != nil,
		CreatedAt:    rec.CreatedAt,
		UpdatedAt:    rec.UpdatedAt,
	}
}
