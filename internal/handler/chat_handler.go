package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/shankar1om/AI-Powered-Customer-Support-Chat-Application/internal/repository"
	"github.com/shankar1om/AI-Powered-Customer-Support-Chat-Application/internal/service"
)

// ChatHandler exposes the end-user chat API.
type ChatHandler struct {
	chatService service.ChatService
}

// NewChatHandler creates a new ChatHandler instance.
func NewChatHandler(chatService service.ChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

type sendMessageRequest struct {
	Message  string `json:"message"`
	UserID   string `json:"userId"`
	ImageURL string `json:"imageUrl"`
}

// SendMessage handles POST /chat/:sessionId/message.
func (h *ChatHandler) SendMessage(c *gin.Context) {
	sessionID := c.Param("sessionId")

	var req sendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.chatService.SendMessage(
		c.Request.Context(),
		sessionID,
		req.UserID,
		req.Message,
		req.ImageURL,
		c.Request.UserAgent(),
		c.ClientIP(),
	)
	if err != nil {
		if errors.Is(err, service.ErrEmptyMessage) {
			respondError(c, http.StatusBadRequest, err.Error())
			return
		}
		respondError(c, http.StatusInternalServerError, "failed to process message")
		return
	}

	respondOK(c, http.StatusOK, result)
}

// GetSession handles GET /chat/:sessionId.
func (h *ChatHandler) GetSession(c *gin.Context) {
	sessionID := c.Param("sessionId")

	detail, err := h.chatService.GetSession(c.Request.Context(), sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, http.StatusNotFound, "session not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "failed to load session")
		return
	}

	respondOK(c, http.StatusOK, detail)
}

// ListSessions handles GET /chat.
func (h *ChatHandler) ListSessions(c *gin.Context) {
	q := repository.SessionListQuery{
		Page:  intQuery(c, "page", 1),
		Limit: intQuery(c, "limit", 20),
	}
	if active := c.Query("active"); active != "" {
		v := active == "true"
		q.Active = &v
	}

	sessions, total, err := h.chatService.ListSessions(q)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to list sessions")
		return
	}

	respondOK(c, http.StatusOK, gin.H{
		"sessions": sessions,
		"total":    total,
		"page":     q.Page,
		"limit":    q.Limit,
	})
}

// EndSession handles DELETE /chat/:sessionId.
func (h *ChatHandler) EndSession(c *gin.Context) {
	sessionID := c.Param("sessionId")

	if err := h.chatService.DeactivateSession(sessionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, http.StatusNotFound, "session not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "failed to end session")
		return
	}

	respondOK(c, http.StatusOK, gin.H{"sessionId": sessionID, "ended": true})
}

// intQuery reads a positive integer query parameter with a default.
func intQuery(c *gin.Context, key string, def int) int {
	raw := c.Query(key)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 1 {
		return def
	}
	return v
}
