package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"voxel.app/studio/internal/chat"
	"voxel.app/studio/internal/http/handler"
	"voxel.app/studio/internal/store"
)

var _ = Describe("ChatHandler", func() {
	var (
		router    *gin.Engine
		completer *mockCompleter
		sessions  *store.SessionStore
	)

	defaults := chat.Options{Temperature: 0.7, TopP: 1.0, MaxTokens: 500}

	newRouter := func(client handler.Completer) *gin.Engine {
		r := gin.New()
		h := handler.NewChatHandler(client, sessions, defaults, 20)
		grp := r.Group("/api/v1/chat")
		grp.POST("", h.Send)
		grp.DELETE("/:session_id", h.Clear)
		return r
	}

	sendRequest := func(r *gin.Engine, payload map[string]any) *httptest.ResponseRecorder {
		body, _ := json.Marshal(payload)
		req := httptest.NewRequest(http.MethodPost, "/api/v1/chat", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	BeforeEach(func() {
		gin.SetMode(gin.TestMode)
		sessions = store.NewSessionStore()
		completer = &mockCompleter{}
		router = newRouter(completer)
	})

	Describe("Send", func() {
		It("returns 200 with the reply and a new session id", func() {
			completer.completeFn = func(_ context.Context, transcript chat.Transcript, _ chat.Options) (string, error) {
				Expect(transcript).To(HaveLen(1))
				Expect(transcript[0].Role).To(Equal(chat.RoleUser))
				Expect(transcript[0].Content).To(Equal("Hi"))
				return "Hello there!", nil
			}

			w := sendRequest(router, map[string]any{"message": "Hi"})

			Expect(w.Code).To(Equal(http.StatusOK))

			var resp map[string]any
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp["reply"]).To(Equal("Hello there!"))
			Expect(resp["session_id"]).To(BeAssignableToTypeOf(""))

			sessionID, err := strconv.ParseInt(resp["session_id"].(string), 10, 64)
			Expect(err).NotTo(HaveOccurred())

			sess, err := sessions.Get(sessionID)
			Expect(err).NotTo(HaveOccurred())
			Expect(sess.Transcript).To(HaveLen(2))
			Expect(sess.Transcript[1].Role).To(Equal(chat.RoleAssistant))
			Expect(sess.Transcript[1].Content).To(Equal("Hello there!"))
		})

		It("continues an existing session with the accumulated transcript", func() {
			calls := 0
			replies := []string{"reply one", "reply two"}
			completer.completeFn = func(_ context.Context, transcript chat.Transcript, _ chat.Options) (string, error) {
				calls++
				if calls == 2 {
					Expect(transcript).To(HaveLen(3))
					Expect(transcript[0].Content).To(Equal("First"))
					Expect(transcript[1].Content).To(Equal("reply one"))
					Expect(transcript[2].Content).To(Equal("Second"))
				}
				return replies[calls-1], nil
			}

			w := sendRequest(router, map[string]any{"message": "First"})
			Expect(w.Code).To(Equal(http.StatusOK))

			var first map[string]any
			Expect(json.Unmarshal(w.Body.Bytes(), &first)).To(Succeed())
			sessionID := first["session_id"].(string)

			w = sendRequest(router, map[string]any{"session_id": sessionID, "message": "Second"})
			Expect(w.Code).To(Equal(http.StatusOK))

			var second map[string]any
			Expect(json.Unmarshal(w.Body.Bytes(), &second)).To(Succeed())
			Expect(second["session_id"]).To(Equal(sessionID))
			Expect(second["reply"]).To(Equal("reply two"))
			Expect(calls).To(Equal(2))
		})

		It("applies settings overrides and keeps unset defaults", func() {
			var gotOpts chat.Options
			completer.completeFn = func(_ context.Context, _ chat.Transcript, opts chat.Options) (string, error) {
				gotOpts = opts
				return "ok", nil
			}

			w := sendRequest(router, map[string]any{
				"message": "Hi",
				"settings": map[string]any{
					"temperature":    0.2,
					"max_tokens":     100,
					"keep_pairs":     4,
					"global_context": "answer in French",
				},
			})

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(gotOpts.Temperature).To(Equal(0.2))
			Expect(gotOpts.MaxTokens).To(Equal(100))
			Expect(gotOpts.GlobalContext).To(Equal("answer in French"))
			Expect(gotOpts.TopP).To(Equal(1.0))

			var resp map[string]any
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
			sessionID, _ := strconv.ParseInt(resp["session_id"].(string), 10, 64)

			sess, err := sessions.Get(sessionID)
			Expect(err).NotTo(HaveOccurred())
			Expect(sess.KeepPairs).To(Equal(4))
		})

		It("returns 400 when the message is missing", func() {
			w := sendRequest(router, map[string]any{})

			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})

		It("returns 400 for a malformed session id", func() {
			w := sendRequest(router, map[string]any{"session_id": "not-a-number", "message": "Hi"})

			Expect(w.Code).To(Equal(http.StatusBadRequest))

			var resp map[string]any
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp["error"]).To(Equal("invalid session id"))
		})

		It("returns 404 for an unknown session", func() {
			w := sendRequest(router, map[string]any{"session_id": "123456789", "message": "Hi"})

			Expect(w.Code).To(Equal(http.StatusNotFound))

			var resp map[string]any
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp["error"]).To(Equal("session not found"))
		})

		It("returns 502 and rolls back the user turn when the upstream call fails", func() {
			sess := sessions.Create(defaults, 20)

			completer.completeFn = func(_ context.Context, _ chat.Transcript, _ chat.Options) (string, error) {
				return "", &chat.CallError{Deployment: "gpt-4o", Err: errors.New("boom")}
			}

			w := sendRequest(router, map[string]any{
				"session_id": strconv.FormatInt(sess.ID, 10),
				"message":    "Hi",
			})

			Expect(w.Code).To(Equal(http.StatusBadGateway))

			var resp map[string]any
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp["error"]).To(ContainSubstring("gpt-4o"))

			after, err := sessions.Get(sess.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(after.Transcript).To(BeEmpty())
		})

		It("returns 503 when chat is disabled", func() {
			disabled := newRouter(nil)

			w := sendRequest(disabled, map[string]any{"message": "Hi"})

			Expect(w.Code).To(Equal(http.StatusServiceUnavailable))

			var resp map[string]any
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp["error"]).To(ContainSubstring("chat is disabled"))
		})
	})

	Describe("Clear", func() {
		It("returns 204 and clears the transcript but keeps settings", func() {
			sess := sessions.Create(chat.Options{Temperature: 0.3, TopP: 1.0, MaxTokens: 200}, 6)
			Expect(sessions.Update(sess.ID, func(s *store.Session) {
				s.Transcript.Append(chat.RoleUser, "Hi")
				s.Transcript.Append(chat.RoleAssistant, "Hello")
			})).To(Succeed())

			req := httptest.NewRequest(http.MethodDelete, "/api/v1/chat/"+strconv.FormatInt(sess.ID, 10), nil)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusNoContent))

			after, err := sessions.Get(sess.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(after.Transcript).To(BeEmpty())
			Expect(after.Settings.MaxTokens).To(Equal(200))
			Expect(after.KeepPairs).To(Equal(6))
		})

		It("returns 404 for an unknown session", func() {
			req := httptest.NewRequest(http.MethodDelete, "/api/v1/chat/999", nil)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusNotFound))
		})

		It("returns 400 for a non-numeric session id", func() {
			req := httptest.NewRequest(http.MethodDelete, "/api/v1/chat/abc", nil)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})
	})
})
