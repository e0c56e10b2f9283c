package handler

import (
	"net/http"
	"strconv"

	"kanbanapi/internal/model"
	"kanbanapi/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CardHandler struct {
	cards *service.CardService
}

func NewCardHandler(cards *service.CardService) *CardHandler {
	return &CardHandler{cards: cards}
}

type CreateCardRequest struct {
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Priority    model.Priority `json:"priority"`
	DueDate     *service.Date  `json:"dueDate" swaggertype:"string" format:"date-time"`
	AssignedTo  []uuid.UUID    `json:"assignedTo"`
	Labels      []model.Label  `json:"labels"`
}

type MoveCardRequest struct {
	NewColumnID uuid.UUID `json:"newColumnId"`
	NewPosition *int      `json:"newPosition"`
}

type CommentRequest struct {
	Text string `json:"text"`
}

type ChecklistItemRequest struct {
	Completed bool `json:"completed"`
}

// GetByColumnID godoc
// @Summary      List a column's cards
// @Tags         cards
// @Security     BearerAuth
// @Produce      json
// @Param        columnId path string true "Column ID"
// @Success      200 {array} CardResponse
// @Failure      403 {object} map[string]string
// @Failure      404 {object} map[string]string
// @Router       /api/cards/column/{columnId} [get]
func (h *CardHandler) GetByColumnID(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	columnID, ok := pathID(c, "columnId", "column")
	if !ok {
		return
	}

	cards, err := h.cards.List(c.Request.Context(), columnID, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCardResponses(cards))
}

// GetByID godoc
// @Summary      Get a card
// @Tags         cards
// @Security     BearerAuth
// @Produce      json
// @Param        id path string true "Card ID"
// @Success      200 {object} CardResponse
// @Failure      403 {object} map[string]string
// @Failure      404 {object} map[string]string
// @Router       /api/cards/{id} [get]
func (h *CardHandler) GetByID(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	cardID, ok := pathID(c, "id", "card")
	if !ok {
		return
	}

	card, err := h.cards.Get(c.Request.Context(), cardID, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCardResponse(card))
}

// Create godoc
// @Summary      Create a card at the end of a column
// @Tags         cards
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        columnId path string true "Column ID"
// @Param        request body CreateCardRequest true "Card data"
// @Success      201 {object} CardResponse
// @Failure      400 {object} map[string]string
// @Failure      403 {object} map[string]string
// @Failure      404 {object} map[string]string
// @Router       /api/cards/column/{columnId} [post]
func (h *CardHandler) Create(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	columnID, ok := pathID(c, "columnId", "column")
	if !ok {
		return
	}
	var req CreateCardRequest
	if !bind(c, &req) {
		return
	}

	card, err := h.cards.Create(c.Request.Context(), columnID, userID, service.CreateCardInput{
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		DueDate:     req.DueDate.TimePtr(),
		AssignedTo:  req.AssignedTo,
		Labels:      req.Labels,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toCardResponse(card))
}

// Update godoc
// @Summary      Update card fields
// @Tags         cards
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id path string true "Card ID"
// @Param        request body service.CardPatch true "Fields to change; null clears dueDate"
// @Success      200 {object} CardResponse
// @Failure      400 {object} map[string]string
// @Failure      403 {object} map[string]string
// @Failure      404 {object} map[string]string
// @Router       /api/cards/{id} [put]
func (h *CardHandler) Update(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	cardID, ok := pathID(c, "id", "card")
	if !ok {
		return
	}
	var patch service.CardPatch
	if !bindStrict(c, &patch) {
		return
	}

	card, err := h.cards.Update(c.Request.Context(), cardID, userID, patch)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCardResponse(card))
}

// Delete godoc
// @Summary      Delete a card
// @Tags         cards
// @Security     BearerAuth
// @Produce      json
// @Param        id path string true "Card ID"
// @Success      200 {object} map[string]string
// @Failure      403 {object} map[string]string
// @Failure      404 {object} map[string]string
// @Router       /api/cards/{id} [delete]
func (h *CardHandler) Delete(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	cardID, ok := pathID(c, "id", "card")
	if !ok {
		return
	}

	if err := h.cards.Delete(c.Request.Context(), cardID, userID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Card deleted successfully"})
}

// Move godoc
// @Summary      Move a card to another column of the same board
// @Tags         cards
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id path string true "Card ID"
// @Param        request body MoveCardRequest true "Target column and position"
// @Success      200 {object} CardResponse
// @Failure      400 {object} map[string]string
// @Failure      403 {object} map[string]string
// @Failure      404 {object} map[string]string
// @Router       /api/cards/{id}/move [put]
func (h *CardHandler) Move(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	cardID, ok := pathID(c, "id", "card")
	if !ok {
		return
	}
	var req MoveCardRequest
	if !bind(c, &req) {
		return
	}
	if req.NewColumnID == uuid.Nil {
		badRequest(c, "New column ID is required")
		return
	}

	card, err := h.cards.Move(c.Request.Context(), cardID, userID, req.NewColumnID, req.NewPosition)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCardResponse(card))
}

// AddComment godoc
// @Summary      Add a comment
// @Tags         cards
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id path string true "Card ID"
// @Param        request body CommentRequest true "Comment"
// @Success      200 {object} CardResponse
// @Failure      400 {object} map[string]string
// @Failure      403 {object} map[string]string
// @Failure      404 {object} map[string]string
// @Router       /api/cards/{id}/comments [post]
func (h *CardHandler) AddComment(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	cardID, ok := pathID(c, "id", "card")
	if !ok {
		return
	}
	var req CommentRequest
	if !bind(c, &req) {
		return
	}

	card, err := h.cards.AddComment(c.Request.Context(), cardID, userID, req.Text)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCardResponse(card))
}

// UpdateChecklistItem godoc
// @Summary      Mark a checklist item
// @Description  A non-numeric or out of range index changes nothing.
// @Tags         cards
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id path string true "Card ID"
// @Param        itemIndex path integer true "Item index"
// @Param        request body ChecklistItemRequest true "Completion flag"
// @Success      200 {object} CardResponse
// @Failure      400 {object} map[string]string
// @Failure      403 {object} map[string]string
// @Failure      404 {object} map[string]string
// @Router       /api/cards/{id}/checklist/{itemIndex} [put]
func (h *CardHandler) UpdateChecklistItem(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	cardID, ok := pathID(c, "id", "card")
	if !ok {
		return
	}
	index, err := strconv.Atoi(c.Param("itemIndex"))
	if err != nil {
		index = -1
	}
	var req ChecklistItemRequest
	if !bind(c, &req) {
		return
	}

	card, err := h.cards.UpdateChecklistItem(c.Request.Context(), cardID, userID, index, req.Completed)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCardResponse(card))
}
