package handler

import (
	"errors"
	"io"
	"net/http"

	"kanbanapi/internal/assistant"
	"kanbanapi/internal/service"

	"github.com/gin-gonic/gin"
)

type ChatbotHandler struct {
	assistant *service.AssistantService
}

func NewChatbotHandler(svc *service.AssistantService) *ChatbotHandler {
	return &ChatbotHandler{assistant: svc}
}

type ChatRequest struct {
	Messages []assistant.Message `json:"messages"`
}

type ContextResponse struct {
	Boards      []BoardResponse `json:"boards"`
	Context     string          `json:"context"`
	TotalBoards int             `json:"totalBoards"`
	TotalCards  int             `json:"totalCards"`
}

// Chat godoc
// @Summary      Ask the assistant about the caller's boards
// @Tags         chatbot
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request body ChatRequest true "Conversation"
// @Success      200 {object} map[string]string
// @Failure      400 {object} map[string]string
// @Failure      401 {object} map[string]string
// @Failure      429 {object} map[string]string
// @Failure      500 {object} map[string]string
// @Router       /api/chatbot/chat [post]
func (h *ChatbotHandler) Chat(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	// An empty body is left to the service, which reports missing messages
	// after checking the assistant is configured.
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		badRequest(c, "Invalid request body")
		return
	}

	referer := c.GetHeader("Origin")
	if referer == "" {
		referer = c.GetHeader("Referer")
	}

	reply, err := h.assistant.Chat(c.Request.Context(), userID, req.Messages, referer)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"response": reply})
}

// Context godoc
// @Summary      Get the board context the assistant sees
// @Tags         chatbot
// @Security     BearerAuth
// @Produce      json
// @Success      200 {object} ContextResponse
// @Failure      401 {object} map[string]string
// @Router       /api/chatbot/context [get]
func (h *ChatbotHandler) Context(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	actx, err := h.assistant.Context(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ContextResponse{
		Boards:      toBoardResponses(actx.Boards),
		Context:     actx.Context,
		TotalBoards: actx.TotalBoards,
		TotalCards:  actx.TotalCards,
	})
}
