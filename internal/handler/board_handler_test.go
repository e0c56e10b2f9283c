package handler_test

import (
	"net/http"
	"testing"

	"kanbanapi/internal/handler"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateBoard_DefaultColumns(t *testing.T) {
	router := setupTest(t)
	alice := register(t, router, "alice")

	board := createBoard(t, router, alice.Token, map[string]any{"title": "Roadmap"})

	assert.Equal(t, "Roadmap", board.Title)
	assert.Equal(t, "#ffffff", board.BackgroundColor)
	require.NotNil(t, board.Owner)
	assert.Equal(t, alice.User.ID, board.Owner.ID)
	assert.Empty(t, board.Members)
	require.Len(t, board.ColumnIDs, 3)

	resp := do(t, router, http.MethodGet, "/boards/"+board.ID.String(), alice.Token, nil)
	require.Equal(t, http.StatusOK, resp.Code)
	full := decode[handler.BoardResponse](t, resp)
	require.Len(t, full.Columns, 3)
	assert.Equal(t, "To Do", full.Columns[0].Title)
	assert.Equal(t, "In Progress", full.Columns[1].Title)
	assert.Equal(t, "Done", full.Columns[2].Title)
}

func TestCreateBoard_TitleRequired(t *testing.T) {
	router := setupTest(t)
	alice := register(t, router, "alice")

	resp := do(t, router, http.MethodPost, "/boards", alice.Token, map[string]any{"description": "no title"})

	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestGetBoard_Access(t *testing.T) {
	router := setupTest(t)
	alice := register(t, router, "alice")
	bob := register(t, router, "bob")

	private := createBoard(t, router, alice.Token, map[string]any{"title": "Private"})
	public := createBoard(t, router, alice.Token, map[string]any{"title": "Public", "isPublic": true})

	resp := do(t, router, http.MethodGet, "/boards/"+private.ID.String(), bob.Token, nil)
	assert.Equal(t, http.StatusForbidden, resp.Code)
	assert.Equal(t, "Access denied", message(t, resp))

	resp = do(t, router, http.MethodGet, "/boards/"+public.ID.String(), bob.Token, nil)
	assert.Equal(t, http.StatusOK, resp.Code)

	// Публичная доска не попадает в список чужих досок
	resp = do(t, router, http.MethodGet, "/boards", bob.Token, nil)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Empty(t, decode[[]handler.BoardResponse](t, resp))
}

func TestGetBoard_NotFoundAndInvalidID(t *testing.T) {
	router := setupTest(t)
	alice := register(t, router, "alice")

	resp := do(t, router, http.MethodGet, "/boards/"+uuid.NewString(), alice.Token, nil)
	assert.Equal(t, http.StatusNotFound, resp.Code)
	assert.Equal(t, "Board not found", message(t, resp))

	resp = do(t, router, http.MethodGet, "/boards/not-a-uuid", alice.Token, nil)
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Equal(t, "Invalid board ID", message(t, resp))
}

func TestUpdateBoard(t *testing.T) {
	router := setupTest(t)
	alice := register(t, router, "alice")
	bob := register(t, router, "bob")
	board := createBoard(t, router, alice.Token, map[string]any{"title": "Roadmap", "members": []uuid.UUID{bob.User.ID}})
	path := "/boards/" + board.ID.String()

	t.Run("owner", func(t *testing.T) {
		resp := do(t, router, http.MethodPut, path, alice.Token, `{"title":"Renamed","isPublic":true}`)
		require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
		updated := decode[handler.BoardResponse](t, resp)
		assert.Equal(t, "Renamed", updated.Title)
		assert.True(t, updated.IsPublic)
	})

	t.Run("member is not allowed", func(t *testing.T) {
		resp := do(t, router, http.MethodPut, path, bob.Token, `{"title":"Hijacked"}`)
		assert.Equal(t, http.StatusForbidden, resp.Code)
		assert.Equal(t, "Only board owner can update board", message(t, resp))
	})

	t.Run("unknown field", func(t *testing.T) {
		resp := do(t, router, http.MethodPut, path, alice.Token, `{"owner":"`+bob.User.ID.String()+`"}`)
		assert.Equal(t, http.StatusBadRequest, resp.Code)
	})
}

func TestAddMember(t *testing.T) {
	router := setupTest(t)
	alice := register(t, router, "alice")
	bob := register(t, router, "bob")
	board := createBoard(t, router, alice.Token, map[string]any{"title": "Roadmap"})
	path := "/boards/" + board.ID.String() + "/members"

	resp := do(t, router, http.MethodPost, path, alice.Token, handler.MemberRequest{})
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Equal(t, "User ID is required", message(t, resp))

	resp = do(t, router, http.MethodPost, path, alice.Token, handler.MemberRequest{UserID: bob.User.ID})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	updated := decode[handler.BoardResponse](t, resp)
	require.Len(t, updated.Members, 1)
	assert.Equal(t, bob.User.ID, updated.Members[0].ID)

	resp = do(t, router, http.MethodPost, path, alice.Token, handler.MemberRequest{UserID: bob.User.ID})
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Equal(t, "User is already a member of this board", message(t, resp))

	// Участник видит доску в своем списке
	resp = do(t, router, http.MethodGet, "/boards", bob.Token, nil)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Len(t, decode[[]handler.BoardResponse](t, resp), 1)
}

func TestBoardNotes(t *testing.T) {
	router := setupTest(t)
	alice := register(t, router, "alice")
	bob := register(t, router, "bob")
	board := createBoard(t, router, alice.Token, map[string]any{"title": "Roadmap", "members": []uuid.UUID{bob.User.ID}})
	path := "/boards/" + board.ID.String() + "/notes"

	resp := do(t, router, http.MethodPut, path, bob.Token, handler.NotesPayload{Notes: "ship it"})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	resp = do(t, router, http.MethodGet, path, alice.Token, nil)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "ship it", decode[handler.NotesPayload](t, resp).Notes)
}

func TestDeleteBoard(t *testing.T) {
	router := setupTest(t)
	alice := register(t, router, "alice")
	board := createBoard(t, router, alice.Token, map[string]any{"title": "Roadmap"})
	path := "/boards/" + board.ID.String()

	resp := do(t, router, http.MethodDelete, path, alice.Token, nil)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "Board deleted successfully", message(t, resp))

	resp = do(t, router, http.MethodGet, path, alice.Token, nil)
	assert.Equal(t, http.StatusNotFound, resp.Code)

	resp = do(t, router, http.MethodGet, "/columns/board/"+board.ID.String(), alice.Token, nil)
	assert.Equal(t, http.StatusNotFound, resp.Code)
}
