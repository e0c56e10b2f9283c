package handler

import (
	"context"
	"net/http"

	"kanbanapi/internal/model"
	"kanbanapi/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BoardHandler struct {
	boards *service.BoardService
}

func NewBoardHandler(boards *service.BoardService) *BoardHandler {
	return &BoardHandler{boards: boards}
}

type CreateBoardRequest struct {
	Title           string      `json:"title"`
	Description     string      `json:"description"`
	BackgroundColor string      `json:"backgroundColor"`
	IsPublic        bool        `json:"isPublic"`
	Notes           string      `json:"notes"`
	Members         []uuid.UUID `json:"members"`
}

type MemberRequest struct {
	UserID uuid.UUID `json:"userId"`
}

type NotesPayload struct {
	Notes string `json:"notes"`
}

// Create godoc
// @Summary      Create a board
// @Description  Creates a board owned by the caller with "To Do", "In Progress" and "Done" columns.
// @Tags         boards
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request body CreateBoardRequest true "Board data"
// @Success      201 {object} BoardResponse
// @Failure      400 {object} map[string]string
// @Router       /api/boards [post]
func (h *BoardHandler) Create(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req CreateBoardRequest
	if !bind(c, &req) {
		return
	}

	board, err := h.boards.Create(c.Request.Context(), userID, service.CreateBoardInput{
		Title:           req.Title,
		Description:     req.Description,
		BackgroundColor: req.BackgroundColor,
		IsPublic:        req.IsPublic,
		Notes:           req.Notes,
		Members:         req.Members,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toBoardResponse(board))
}

// GetAll godoc
// @Summary      List the caller's boards
// @Tags         boards
// @Security     BearerAuth
// @Produce      json
// @Success      200 {array} BoardResponse
// @Router       /api/boards [get]
func (h *BoardHandler) GetAll(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	boards, err := h.boards.List(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toBoardResponses(boards))
}

// GetByID godoc
// @Summary      Get a board with its columns and cards
// @Tags         boards
// @Security     BearerAuth
// @Produce      json
// @Param        id path string true "Board ID"
// @Success      200 {object} BoardResponse
// @Failure      403 {object} map[string]string
// @Failure      404 {object} map[string]string
// @Router       /api/boards/{id} [get]
func (h *BoardHandler) GetByID(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	boardID, ok := pathID(c, "id", "board")
	if !ok {
		return
	}

	board, err := h.boards.Get(c.Request.Context(), boardID, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toBoardResponse(board))
}

// Update godoc
// @Summary      Update board fields (owner only)
// @Tags         boards
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id path string true "Board ID"
// @Param        request body service.BoardPatch true "Fields to change"
// @Success      200 {object} BoardResponse
// @Failure      400 {object} map[string]string
// @Failure      403 {object} map[string]string
// @Failure      404 {object} map[string]string
// @Router       /api/boards/{id} [put]
func (h *BoardHandler) Update(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	boardID, ok := pathID(c, "id", "board")
	if !ok {
		return
	}
	var patch service.BoardPatch
	if !bindStrict(c, &patch) {
		return
	}

	board, err := h.boards.Update(c.Request.Context(), boardID, userID, patch)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toBoardResponse(board))
}

// Delete godoc
// @Summary      Delete a board with its columns and cards (owner only)
// @Tags         boards
// @Security     BearerAuth
// @Produce      json
// @Param        id path string true "Board ID"
// @Success      200 {object} map[string]string
// @Failure      403 {object} map[string]string
// @Failure      404 {object} map[string]string
// @Router       /api/boards/{id} [delete]
func (h *BoardHandler) Delete(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	boardID, ok := pathID(c, "id", "board")
	if !ok {
		return
	}

	if err := h.boards.Delete(c.Request.Context(), boardID, userID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Board deleted successfully"})
}

// AddMember godoc
// @Summary      Add a member (owner only)
// @Tags         boards
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id path string true "Board ID"
// @Param        request body MemberRequest true "User to add"
// @Success      200 {object} BoardResponse
// @Failure      400 {object} map[string]string
// @Failure      403 {object} map[string]string
// @Failure      404 {object} map[string]string
// @Router       /api/boards/{id}/members [post]
func (h *BoardHandler) AddMember(c *gin.Context) {
	h.changeMembers(c, h.boards.AddMember)
}

// RemoveMember godoc
// @Summary      Remove a member (owner only)
// @Tags         boards
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id path string true "Board ID"
// @Param        request body MemberRequest true "User to remove"
// @Success      200 {object} BoardResponse
// @Failure      400 {object} map[string]string
// @Failure      403 {object} map[string]string
// @Failure      404 {object} map[string]string
// @Router       /api/boards/{id}/members [delete]
func (h *BoardHandler) RemoveMember(c *gin.Context) {
	h.changeMembers(c, h.boards.RemoveMember)
}

type memberChange func(ctx context.Context, boardID, actor, userID uuid.UUID) (*model.Board, error)

func (h *BoardHandler) changeMembers(c *gin.Context, apply memberChange) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	boardID, ok := pathID(c, "id", "board")
	if !ok {
		return
	}
	var req MemberRequest
	if !bind(c, &req) {
		return
	}
	if req.UserID == uuid.Nil {
		badRequest(c, "User ID is required")
		return
	}

	board, err := apply(c.Request.Context(), boardID, userID, req.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toBoardResponse(board))
}

// GetNotes godoc
// @Summary      Get board notes
// @Tags         boards
// @Security     BearerAuth
// @Produce      json
// @Param        id path string true "Board ID"
// @Success      200 {object} NotesPayload
// @Failure      403 {object} map[string]string
// @Failure      404 {object} map[string]string
// @Router       /api/boards/{id}/notes [get]
func (h *BoardHandler) GetNotes(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	boardID, ok := pathID(c, "id", "board")
	if !ok {
		return
	}

	notes, err := h.boards.GetNotes(c.Request.Context(), boardID, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, NotesPayload{Notes: notes})
}

// UpdateNotes godoc
// @Summary      Replace board notes
// @Tags         boards
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id path string true "Board ID"
// @Param        request body NotesPayload true "Notes"
// @Success      200 {object} NotesPayload
// @Failure      400 {object} map[string]string
// @Failure      403 {object} map[string]string
// @Failure      404 {object} map[string]string
// @Router       /api/boards/{id}/notes [put]
func (h *BoardHandler) UpdateNotes(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	boardID, ok := pathID(c, "id", "board")
	if !ok {
		return
	}
	var req NotesPayload
	if !bind(c, &req) {
		return
	}

	notes, err := h.boards.UpdateNotes(c.Request.Context(), boardID, userID, req.Notes)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, NotesPayload{Notes: notes})
}
