package handler

import (
	"net/http"

	"kanbanapi/internal/service"

	"github.com/gin-gonic/gin"
)

type ColumnHandler struct {
	columns *service.ColumnService
}

func NewColumnHandler(columns *service.ColumnService) *ColumnHandler {
	return &ColumnHandler{columns: columns}
}

type CreateColumnRequest struct {
	Title string `json:"title"`
	Color string `json:"color"`
	Limit *int   `json:"limit"`
}

type ReorderColumnsRequest struct {
	ColumnOrders []service.ColumnOrder `json:"columnOrders"`
}

// GetAll godoc
// @Summary      List a board's columns with cards
// @Tags         columns
// @Security     BearerAuth
// @Produce      json
// @Param        boardId path string true "Board ID"
// @Success      200 {array} ColumnResponse
// @Failure      403 {object} map[string]string
// @Failure      404 {object} map[string]string
// @Router       /api/columns/board/{boardId} [get]
func (h *ColumnHandler) GetAll(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	boardID, ok := pathID(c, "boardId", "board")
	if !ok {
		return
	}

	columns, err := h.columns.List(c.Request.Context(), boardID, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toColumnResponses(columns))
}

// Create godoc
// @Summary      Append a column to a board
// @Tags         columns
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        boardId path string true "Board ID"
// @Param        request body CreateColumnRequest true "Column data"
// @Success      201 {object} ColumnResponse
// @Failure      400 {object} map[string]string
// @Failure      403 {object} map[string]string
// @Failure      404 {object} map[string]string
// @Router       /api/columns/board/{boardId} [post]
func (h *ColumnHandler) Create(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	boardID, ok := pathID(c, "boardId", "board")
	if !ok {
		return
	}
	var req CreateColumnRequest
	if !bind(c, &req) {
		return
	}

	column, err := h.columns.Create(c.Request.Context(), boardID, userID, service.CreateColumnInput{
		Title: req.Title,
		Color: req.Color,
		Limit: req.Limit,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toColumnResponse(column))
}

// Update godoc
// @Summary      Update column fields
// @Tags         columns
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id path string true "Column ID"
// @Param        request body service.ColumnPatch true "Fields to change; null clears limit"
// @Success      200 {object} ColumnResponse
// @Failure      400 {object} map[string]string
// @Failure      403 {object} map[string]string
// @Failure      404 {object} map[string]string
// @Router       /api/columns/{id} [put]
func (h *ColumnHandler) Update(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	columnID, ok := pathID(c, "id", "column")
	if !ok {
		return
	}
	var patch service.ColumnPatch
	if !bindStrict(c, &patch) {
		return
	}

	column, err := h.columns.Update(c.Request.Context(), columnID, userID, patch)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toColumnResponse(column))
}

// Delete godoc
// @Summary      Delete a column and its cards
// @Tags         columns
// @Security     BearerAuth
// @Produce      json
// @Param        id path string true "Column ID"
// @Success      200 {object} map[string]string
// @Failure      403 {object} map[string]string
// @Failure      404 {object} map[string]string
// @Router       /api/columns/{id} [delete]
func (h *ColumnHandler) Delete(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	columnID, ok := pathID(c, "id", "column")
	if !ok {
		return
	}

	if err := h.columns.Delete(c.Request.Context(), columnID, userID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Column deleted successfully"})
}

// Reorder godoc
// @Summary      Set column positions
// @Tags         columns
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        boardId path string true "Board ID"
// @Param        request body ReorderColumnsRequest true "New positions"
// @Success      200 {array} ColumnResponse
// @Failure      400 {object} map[string]string
// @Failure      403 {object} map[string]string
// @Failure      404 {object} map[string]string
// @Router       /api/columns/board/{boardId}/reorder [put]
func (h *ColumnHandler) Reorder(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	boardID, ok := pathID(c, "boardId", "board")
	if !ok {
		return
	}
	var req ReorderColumnsRequest
	if !bind(c, &req) {
		return
	}
	if req.ColumnOrders == nil {
		badRequest(c, "Column orders are required")
		return
	}

	columns, err := h.columns.Reorder(c.Request.Context(), boardID, userID, req.ColumnOrders)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toColumnResponses(columns))
}
