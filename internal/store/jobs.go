package store

import (
	"sync"
	"time"

	"voxel.app/studio/internal/video"
)

// JobRecord tracks one video job watched by a background poller. The poller
// is the record's only writer after creation.
type JobRecord struct {
	ID           string
	TraceID      string
	Status       video.Status
	GenerationID string
	Error        string
	Artifact     *video.Artifact
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Done reports whether the watch has finished, successfully or not.
func (r JobRecord) Done() bool {
	return r.Status.Terminal() || r.Error != ""
}

// JobRegistry keeps watched jobs keyed by their remote job ID.
type JobRegistry struct {
	mu   sync.RWMutex
	jobs map[string]*JobRecord
}

func NewJobRegistry() *JobRegistry {
	return &JobRegistry{jobs: make(map[string]*JobRecord)}
}

// Add registers a freshly submitted job. TraceID links the background watch
// back to the request that created the job.
func (r *JobRegistry) Add(jobID, traceID string) JobRecord {
	now := time.Now()
	rec := &JobRecord{
		ID:        jobID,
		TraceID:   traceID,
		Status:    video.StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.jobs[jobID] = rec
	return *rec
}

// Get returns a copy of the record.
func (r *JobRegistry) Get(jobID string) (JobRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.jobs[jobID]
	if !ok {
		return JobRecord{}, ErrNotFound
	}
	return *rec, nil
}

// SetStatus records a non-terminal progress update.
func (r *JobRegistry) SetStatus(jobID string, status video.Status) {
	r.update(jobID, func(rec *JobRecord) {
		rec.Status = status
	})
}

// Complete marks the job succeeded and remembers its generation ID.
func (r *JobRegistry) Complete(jobID, generationID string) {
	r.update(jobID, func(rec *JobRecord) {
		rec.Status = video.StatusSucceeded
		rec.GenerationID = generationID
	})
}

// Fail records a terminal failure. status distinguishes a remote failure
// from a timeout or cancellation observed locally.
func (r *JobRegistry) Fail(jobID string, status video.Status, message string) {
	r.update(jobID, func(rec *JobRecord) {
		rec.Status = status
		rec.Error = message
	})
}

// AttachArtifact caches downloaded content so it is fetched only once.
func (r *JobRegistry) AttachArtifact(jobID string, artifact video.Artifact) {
	r.update(jobID, func(rec *JobRecord) {
		rec.Artifact = &artifact
	})
}

func (r *JobRegistry) update(jobID string, fn func(*JobRecord)) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.jobs[jobID]
	if !ok {
		return
	}
	fn(rec)
	rec.UpdatedAt = time.Now()
}
