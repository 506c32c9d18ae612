package store

import (
	"errors"
	"testing"

	"voxel.app/studio/internal/video"
)

func TestJobRegistry_AddAndGet(t *testing.T) {
	registry := NewJobRegistry()

	rec := registry.Add("job-1", "trace-abc")

	if rec.Status != video.StatusPending {
		t.Errorf("status = %s, want pending", rec.Status)
	}
	if rec.TraceID != "trace-abc" {
		t.Errorf("TraceID = %q, want trace-abc", rec.TraceID)
	}
	if rec.Done() {
		t.Error("freshly added job reports Done")
	}

	got, err := registry.Get("job-1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.ID != "job-1" {
		t.Errorf("ID = %q, want job-1", got.ID)
	}
}

func TestJobRegistry_GetUnknown(t *testing.T) {
	registry := NewJobRegistry()

	_, err := registry.Get("nope")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestJobRegistry_StatusProgression(t *testing.T) {
	registry := NewJobRegistry()
	registry.Add("job-1", "")

	registry.SetStatus("job-1", video.StatusRunning)

	got, _ := registry.Get("job-1")
	if got.Status != video.StatusRunning {
		t.Errorf("status = %s, want running", got.Status)
	}
	if got.Done() {
		t.Error("running job reports Done")
	}

	registry.Complete("job-1", "gen-1")

	got, _ = registry.Get("job-1")
	if got.Status != video.StatusSucceeded {
		t.Errorf("status = %s, want succeeded", got.Status)
	}
	if got.GenerationID != "gen-1" {
		t.Errorf("GenerationID = %q, want gen-1", got.GenerationID)
	}
	if !got.Done() {
		t.Error("succeeded job does not report Done")
	}
}

func TestJobRegistry_Fail(t *testing.T) {
	registry := NewJobRegistry()
	registry.Add("job-1", "")

	registry.Fail("job-1", video.StatusUnknown, "timed out after 10m0s waiting for job job-1 to complete")

	got, _ := registry.Get("job-1")
	if got.Status != video.StatusUnknown {
		t.Errorf("status = %s, want unknown", got.Status)
	}
	if got.Error == "" {
		t.Error("Error message not recorded")
	}
	if !got.Done() {
		t.Error("failed job does not report Done")
	}
}

func TestJobRegistry_AttachArtifact(t *testing.T) {
	registry := NewJobRegistry()
	registry.Add("job-1", "")
	registry.Complete("job-1", "gen-1")

	registry.AttachArtifact("job-1", video.Artifact{
		Bytes:     []byte("clip"),
		SourceURL: "https://res.openai.azure.com/openai/v1/video/generations/gen-1/content/video?api-version=preview",
	})

	got, _ := registry.Get("job-1")
	if got.Artifact == nil {
		t.Fatal("Artifact not attached")
	}
	if string(got.Artifact.Bytes) != "clip" {
		t.Errorf("artifact bytes = %q, want clip", got.Artifact.Bytes)
	}
}

func TestJobRegistry_UpdatesToUnknownJobAreIgnored(t *testing.T) {
	registry := NewJobRegistry()

	registry.SetStatus("ghost", video.StatusRunning)
	registry.Complete("ghost", "gen-1")
	registry.Fail("ghost", video.StatusFailed, "boom")

	if _, err := registry.Get("ghost"); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}
