package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"voxel.app/studio/common/logger"
	"voxel.app/studio/internal/chat"
	"voxel.app/studio/internal/http/dto"
	"voxel.app/studio/internal/store"
)

// Completer is the part of the chat client the handler needs.
type Completer interface {
	Complete(ctx context.Context, transcript chat.Transcript, opts chat.Options) (string, error)
}

type ChatHandler struct {
	client    Completer
	sessions  *store.SessionStore
	defaults  chat.Options
	keepPairs int
}

// NewChatHandler wires the chat endpoints. client may be nil when chat is
// disabled (the configured endpoint addresses the video jobs API); requests
// then get a clear 503 instead of a confusing upstream error.
func NewChatHandler(client Completer, sessions *store.SessionStore, defaults chat.Options, keepPairs int) *ChatHandler {
	return &ChatHandler{
		client:    client,
		sessions:  sessions,
		defaults:  defaults,
		keepPairs: keepPairs,
	}
}

func (h *ChatHandler) Send(c *gin.Context) {
	ctx := c.Request.Context()

	if h.client == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "chat is disabled because the endpoint points to the video jobs API",
		})
		return
	}

	var req dto.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.WarnContext(ctx, "invalid request body", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sess, ok := h.resolveSession(c, req)
	if !ok {
		return
	}

	ctx = logger.WithLogFields(ctx, logger.LogFields{
		SessionID: logger.Ptr(sess.ID),
		Component: "studio.http.chat",
	})

	err := h.sessions.Update(sess.ID, func(s *store.Session) {
		s.Transcript.Append(chat.RoleUser, req.Message)
		s.Transcript = s.Transcript.Prune(s.KeepPairs)
	})
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}

	sess, err = h.sessions.Get(sess.ID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}

	reply, err := h.client.Complete(ctx, sess.Transcript, sess.Settings)
	if err != nil {
		slog.ErrorContext(ctx, "chat completion failed", "error", err.Error())
		// Roll back the user turn so a retry does not duplicate it.
		_ = h.sessions.Update(sess.ID, func(s *store.Session) {
			s.Transcript.DropLast()
		})
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	_ = h.sessions.Update(sess.ID, func(s *store.Session) {
		s.Transcript.Append(chat.RoleAssistant, reply)
	})

	c.JSON(http.StatusOK, dto.ChatResponse{
		SessionID: sess.ID,
		Reply:     reply,
	})
}

// Clear resets a session's transcript. Settings survive.
func (h *ChatHandler) Clear(c *gin.Context) {
	ctx := c.Request.Context()

	sessionID, err := strconv.ParseInt(c.Param("session_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid session id"})
		return
	}

	if err := h.sessions.Reset(sessionID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to clear session"})
		return
	}

	slog.InfoContext(ctx, "session cleared", "session_id", sessionID)
	c.Status(http.StatusNoContent)
}

// resolveSession loads the requested session or creates a fresh one, applying
// any settings overrides from the request. Replies with an error itself when
// resolution fails.
func (h *ChatHandler) resolveSession(c *gin.Context, req dto.ChatRequest) (store.Session, bool) {
	if req.SessionID == "" {
		settings, keepPairs := h.applySettings(h.defaults, h.keepPairs, req.Settings)
		return h.sessions.Create(settings, keepPairs), true
	}

	sessionID, err := strconv.ParseInt(req.SessionID, 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid session id"})
		return store.Session{}, false
	}

	sess, err := h.sessions.Get(sessionID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return store.Session{}, false
	}

	if req.Settings != nil {
		settings, keepPairs := h.applySettings(sess.Settings, sess.KeepPairs, req.Settings)
		_ = h.sessions.Update(sess.ID, func(s *store.Session) {
			s.Settings = settings
			s.KeepPairs = keepPairs
		})
		sess.Settings = settings
		sess.KeepPairs = keepPairs
	}

	return sess, true
}

func (h *ChatHandler) applySettings(base chat.Options, keepPairs int, overrides *dto.ChatSettings) (chat.Options, int) {
	if overrides == nil {
		return base, keepPairs
	}
	if overrides.Temperature != nil {
		base.Temperature = *overrides.Temperature
	}
	if overrides.TopP != nil {
		base.TopP = *overrides.TopP
	}
	if overrides.MaxTokens != nil {
		base.MaxTokens = *overrides.MaxTokens
	}
	if overrides.GlobalContext != nil {
		base.GlobalContext = *overrides.GlobalContext
	}
	if overrides.KeepPairs != nil {
		keepPairs = *overrides.KeepPairs
	}
	return base, keepPairs
}
