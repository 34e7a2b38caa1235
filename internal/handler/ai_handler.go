package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shankar1om/AI-Powered-Customer-Support-Chat-Application/internal/service"
)

// AIHandler exposes the provider diagnostics API.
type AIHandler struct {
	aiService service.AIService
}

// NewAIHandler creates a new AIHandler instance.
func NewAIHandler(aiService service.AIService) *AIHandler {
	return &AIHandler{aiService: aiService}
}

type testRequest struct {
	Message  string `json:"message"`
	ImageURL string `json:"imageUrl"`
}

// Test handles POST /ai/test. It runs one dispatch without touching any
// session, for verifying provider connectivity from the admin UI.
func (h *AIHandler) Test(c *gin.Context) {
	var req testRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.aiService.GenerateResponse(c.Request.Context(), req.Message, nil, nil, nil, req.ImageURL)
	if err != nil {
		if errors.Is(err, service.ErrEmptyMessage) {
			respondError(c, http.StatusBadRequest, err.Error())
			return
		}
		respondError(c, http.StatusInternalServerError, "test dispatch failed")
		return
	}
	respondOK(c, http.StatusOK, resp)
}

// Health handles GET /ai/health.
func (h *AIHandler) Health(c *gin.Context) {
	respondOK(c, http.StatusOK, h.aiService.Health())
}

// Provider handles GET /ai/provider.
func (h *AIHandler) Provider(c *gin.Context) {
	health := h.aiService.Health()
	respondOK(c, http.StatusOK, gin.H{
		"provider": health.Provider,
		"model":    health.Model,
	})
}
