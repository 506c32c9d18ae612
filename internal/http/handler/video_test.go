package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"voxel.app/studio/internal/http/handler"
	"voxel.app/studio/internal/store"
	"voxel.app/studio/internal/video"
)

var _ = Describe("VideoHandler", func() {
	var (
		router    *gin.Engine
		submitter *mockSubmitter
		watcher   *mockWatcher
		registry  *store.JobRegistry
		watched   []string
	)

	createJob := func(payload map[string]any) *httptest.ResponseRecorder {
		body, _ := json.Marshal(payload)
		req := httptest.NewRequest(http.MethodPost, "/api/v1/video/jobs", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	getPath := func(path string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	BeforeEach(func() {
		gin.SetMode(gin.TestMode)
		registry = store.NewJobRegistry()
		submitter = &mockSubmitter{}
		watched = nil
		watcher = &mockWatcher{
			watchFn: func(jobID, _ string) {
				watched = append(watched, jobID)
			},
		}

		router = gin.New()
		h := handler.NewVideoHandler(submitter, registry, watcher)
		grp := router.Group("/api/v1/video")
		grp.POST("/jobs", h.Create)
		grp.GET("/jobs/:id", h.Get)
		grp.GET("/jobs/:id/content", h.Content)
	})

	Describe("Create", func() {
		It("returns 202 and hands the job to the background watcher", func() {
			var submitted video.GenerationRequest
			submitter.submitFn = func(_ context.Context, req video.GenerationRequest) (string, error) {
				submitted = req
				return "job-123", nil
			}

			w := createJob(map[string]any{
				"prompt":    "a red fox running through fresh snow",
				"width":     1080,
				"height":    1080,
				"n_seconds": 5,
			})

			Expect(w.Code).To(Equal(http.StatusAccepted))

			Expect(submitted.Prompt).To(Equal("a red fox running through fresh snow"))
			Expect(submitted.Width).To(Equal(1080))
			Expect(submitted.Height).To(Equal(1080))
			Expect(submitted.Seconds).To(Equal(5))

			var resp map[string]any
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp["job_id"]).To(Equal("job-123"))
			Expect(resp["status"]).To(Equal("pending"))
			Expect(resp["has_content"]).To(BeFalse())

			Expect(watched).To(Equal([]string{"job-123"}))

			rec, err := registry.Get("job-123")
			Expect(err).NotTo(HaveOccurred())
			Expect(rec.Status).To(Equal(video.StatusPending))
		})

		It("returns 400 on an incomplete request body", func() {
			w := createJob(map[string]any{"prompt": "just a prompt"})

			Expect(w.Code).To(Equal(http.StatusBadRequest))
			Expect(watched).To(BeEmpty())
		})

		It("returns 400 when the dimensions fail validation", func() {
			w := createJob(map[string]any{
				"prompt":    "a red fox",
				"width":     100,
				"height":    1080,
				"n_seconds": 5,
			})

			Expect(w.Code).To(Equal(http.StatusBadRequest))

			var resp map[string]any
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp["error"]).To(ContainSubstring("multiple"))
			Expect(watched).To(BeEmpty())
		})

		It("returns 502 when submission to the upstream fails", func() {
			submitter.submitFn = func(_ context.Context, _ video.GenerationRequest) (string, error) {
				return "", &video.SubmissionError{StatusCode: 503, Body: "overloaded"}
			}

			w := createJob(map[string]any{
				"prompt":    "a red fox",
				"width":     1080,
				"height":    1080,
				"n_seconds": 5,
			})

			Expect(w.Code).To(Equal(http.StatusBadGateway))

			var resp map[string]any
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp["error"]).To(ContainSubstring("submission failed"))
			Expect(watched).To(BeEmpty())
		})
	})

	Describe("Get", func() {
		It("returns 200 with the registry view of the job", func() {
			registry.Add("job-9", "")
			registry.Complete("job-9", "gen-1")

			w := getPath("/api/v1/video/jobs/job-9")

			Expect(w.Code).To(Equal(http.StatusOK))

			var resp map[string]any
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp["job_id"]).To(Equal("job-9"))
			Expect(resp["status"]).To(Equal("succeeded"))
			Expect(resp["generation_id"]).To(Equal("gen-1"))
			Expect(resp["has_content"]).To(BeFalse())
		})

		It("returns 404 for an unknown job", func() {
			w := getPath("/api/v1/video/jobs/nope")

			Expect(w.Code).To(Equal(http.StatusNotFound))

			var resp map[string]any
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp["error"]).To(Equal("job not found"))
		})
	})

	Describe("Content", func() {
		It("serves the cached video once the artifact is in", func() {
			registry.Add("job-7", "")
			registry.Complete("job-7", "gen-7")
			registry.AttachArtifact("job-7", video.Artifact{Bytes: []byte("mp4 data")})

			w := getPath("/api/v1/video/jobs/job-7/content")

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Header().Get("Content-Type")).To(Equal("video/mp4"))
			Expect(w.Header().Get("Content-Disposition")).To(Equal(`attachment; filename="job-7.mp4"`))
			Expect(w.Body.Bytes()).To(Equal([]byte("mp4 data")))
		})

		It("returns 409 while the job is still in progress", func() {
			registry.Add("job-8", "")

			w := getPath("/api/v1/video/jobs/job-8/content")

			Expect(w.Code).To(Equal(http.StatusConflict))

			var resp map[string]any
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp["error"]).To(Equal("job is still in progress"))
		})

		It("returns 404 when the job finished without content", func() {
			registry.Add("job-6", "")
			registry.Fail("job-6", video.StatusFailed, "model refused the prompt")

			w := getPath("/api/v1/video/jobs/job-6/content")

			Expect(w.Code).To(Equal(http.StatusNotFound))

			var resp map[string]any
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp["error"]).To(Equal("no content available for this job"))
		})

		It("returns 404 for an unknown job", func() {
			w := getPath("/api/v1/video/jobs/ghost/content")

			Expect(w.Code).To(Equal(http.StatusNotFound))
		})
	})
})
