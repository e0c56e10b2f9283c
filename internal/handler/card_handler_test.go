package handler_test

import (
	"net/http"
	"testing"
	"time"

	"kanbanapi/internal/handler"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boardColumns(t *testing.T, r *gin.Engine, token string, boardID uuid.UUID) []handler.ColumnResponse {
	t.Helper()
	resp := do(t, r, http.MethodGet, "/columns/board/"+boardID.String(), token, nil)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	return decode[[]handler.ColumnResponse](t, resp)
}

func createCard(t *testing.T, r *gin.Engine, token string, columnID uuid.UUID, body any) handler.CardResponse {
	t.Helper()
	resp := do(t, r, http.MethodPost, "/cards/column/"+columnID.String(), token, body)
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())
	return decode[handler.CardResponse](t, resp)
}

func TestCreateCard(t *testing.T) {
	router := setupTest(t)
	alice := register(t, router, "alice")
	board := createBoard(t, router, alice.Token, map[string]any{"title": "Roadmap"})
	todo := boardColumns(t, router, alice.Token, board.ID)[0]

	card := createCard(t, router, alice.Token, todo.ID, map[string]any{
		"title":      "Write docs",
		"assignedTo": []uuid.UUID{alice.User.ID},
	})

	assert.Equal(t, "medium", string(card.Priority))
	assert.Equal(t, todo.ID, card.ColumnID)
	assert.Equal(t, board.ID, card.BoardID)
	require.Len(t, card.AssignedTo, 1)
	assert.Equal(t, "alice", card.AssignedTo[0].Username)

	resp := do(t, router, http.MethodPost, "/cards/column/"+todo.ID.String(), alice.Token, map[string]any{
		"title":    "Bad priority",
		"priority": "critical",
	})
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Equal(t, "Priority must be one of low, medium, high, urgent", message(t, resp))

	resp = do(t, router, http.MethodPost, "/cards/column/"+uuid.NewString(), alice.Token, map[string]any{"title": "x"})
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestCreateCard_Forbidden(t *testing.T) {
	router := setupTest(t)
	alice := register(t, router, "alice")
	bob := register(t, router, "bob")
	board := createBoard(t, router, alice.Token, map[string]any{"title": "Roadmap", "isPublic": true})
	todo := boardColumns(t, router, alice.Token, board.ID)[0]

	// Публичная доска доступна на чтение, но не на запись
	resp := do(t, router, http.MethodPost, "/cards/column/"+todo.ID.String(), bob.Token, map[string]any{"title": "x"})
	assert.Equal(t, http.StatusForbidden, resp.Code)
	assert.Equal(t, "Access denied", message(t, resp))
}

func TestUpdateCard_StrictBody(t *testing.T) {
	router := setupTest(t)
	alice := register(t, router, "alice")
	board := createBoard(t, router, alice.Token, map[string]any{"title": "Roadmap"})
	todo := boardColumns(t, router, alice.Token, board.ID)[0]
	card := createCard(t, router, alice.Token, todo.ID, map[string]any{"title": "Write docs"})
	path := "/cards/" + card.ID.String()

	resp := do(t, router, http.MethodPut, path, alice.Token, `{"column":"`+uuid.NewString()+`"}`)
	assert.Equal(t, http.StatusBadRequest, resp.Code)

	resp = do(t, router, http.MethodPut, path, alice.Token, `{"title":"Write better docs","isCompleted":true}`)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	updated := decode[handler.CardResponse](t, resp)
	assert.Equal(t, "Write better docs", updated.Title)
	assert.True(t, updated.IsCompleted)
	assert.Equal(t, todo.ID, updated.ColumnID)
}

func TestMoveCard(t *testing.T) {
	router := setupTest(t)
	alice := register(t, router, "alice")
	board := createBoard(t, router, alice.Token, map[string]any{"title": "Roadmap"})
	columns := boardColumns(t, router, alice.Token, board.ID)
	card := createCard(t, router, alice.Token, columns[0].ID, map[string]any{"title": "Write docs"})
	path := "/cards/" + card.ID.String() + "/move"

	resp := do(t, router, http.MethodPut, path, alice.Token, map[string]any{"newColumnId": columns[2].ID, "newPosition": 3})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	moved := decode[handler.CardResponse](t, resp)
	assert.Equal(t, columns[2].ID, moved.ColumnID)
	assert.Equal(t, 3, moved.Position)

	columns = boardColumns(t, router, alice.Token, board.ID)
	assert.Empty(t, columns[0].CardIDs)
	assert.Equal(t, []uuid.UUID{card.ID}, columns[2].CardIDs)

	resp = do(t, router, http.MethodPut, path, alice.Token, map[string]any{"newColumnId": uuid.New()})
	assert.Equal(t, http.StatusNotFound, resp.Code)
	assert.Equal(t, "Target column not found", message(t, resp))

	resp = do(t, router, http.MethodPut, path, alice.Token, map[string]any{})
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestMoveCard_OtherBoard(t *testing.T) {
	router := setupTest(t)
	alice := register(t, router, "alice")
	first := createBoard(t, router, alice.Token, map[string]any{"title": "First"})
	second := createBoard(t, router, alice.Token, map[string]any{"title": "Second"})
	card := createCard(t, router, alice.Token, boardColumns(t, router, alice.Token, first.ID)[0].ID, map[string]any{"title": "x"})
	target := boardColumns(t, router, alice.Token, second.ID)[0]

	resp := do(t, router, http.MethodPut, "/cards/"+card.ID.String()+"/move", alice.Token, map[string]any{"newColumnId": target.ID})

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Equal(t, "Cannot move card to a column of another board", message(t, resp))
}

func TestCommentsAndChecklist(t *testing.T) {
	router := setupTest(t)
	alice := register(t, router, "alice")
	board := createBoard(t, router, alice.Token, map[string]any{"title": "Roadmap"})
	todo := boardColumns(t, router, alice.Token, board.ID)[0]
	card := createCard(t, router, alice.Token, todo.ID, map[string]any{"title": "Write docs"})
	cardPath := "/cards/" + card.ID.String()

	resp := do(t, router, http.MethodPost, cardPath+"/comments", alice.Token, handler.CommentRequest{Text: "  "})
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Equal(t, "Comment text is required", message(t, resp))

	resp = do(t, router, http.MethodPost, cardPath+"/comments", alice.Token, handler.CommentRequest{Text: "Looks good"})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	commented := decode[handler.CardResponse](t, resp)
	require.Len(t, commented.Comments, 1)
	require.NotNil(t, commented.Comments[0].User)
	assert.Equal(t, "alice", commented.Comments[0].User.Username)

	resp = do(t, router, http.MethodPut, cardPath, alice.Token, `{"checklist":[{"text":"outline","completed":false}]}`)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	resp = do(t, router, http.MethodPut, cardPath+"/checklist/0", alice.Token, handler.ChecklistItemRequest{Completed: true})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	checked := decode[handler.CardResponse](t, resp)
	require.Len(t, checked.Checklist, 1)
	assert.True(t, checked.Checklist[0].Completed)

	// Индекс вне диапазона ничего не меняет
	for _, index := range []string{"5", "abc"} {
		resp = do(t, router, http.MethodPut, cardPath+"/checklist/"+index, alice.Token, handler.ChecklistItemRequest{Completed: false})
		require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
		assert.True(t, decode[handler.CardResponse](t, resp).Checklist[0].Completed)
	}
}

func TestReorderColumns(t *testing.T) {
	router := setupTest(t)
	alice := register(t, router, "alice")
	board := createBoard(t, router, alice.Token, map[string]any{"title": "Roadmap"})
	columns := boardColumns(t, router, alice.Token, board.ID)
	path := "/columns/board/" + board.ID.String() + "/reorder"

	resp := do(t, router, http.MethodPut, path, alice.Token, map[string]any{})
	assert.Equal(t, http.StatusBadRequest, resp.Code)

	resp = do(t, router, http.MethodPut, path, alice.Token, map[string]any{
		"columnOrders": []map[string]any{
			{"id": columns[2].ID, "position": 0},
			{"id": columns[0].ID, "position": 2},
		},
	})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	reordered := decode[[]handler.ColumnResponse](t, resp)
	require.Len(t, reordered, 3)
	assert.Equal(t, "Done", reordered[0].Title)
	assert.Equal(t, "In Progress", reordered[1].Title)
	assert.Equal(t, "To Do", reordered[2].Title)
}

func TestDeleteColumn_RemovesCards(t *testing.T) {
	router := setupTest(t)
	alice := register(t, router, "alice")
	board := createBoard(t, router, alice.Token, map[string]any{"title": "Roadmap"})
	todo := boardColumns(t, router, alice.Token, board.ID)[0]
	card := createCard(t, router, alice.Token, todo.ID, map[string]any{"title": "Write docs"})

	resp := do(t, router, http.MethodDelete, "/columns/"+todo.ID.String(), alice.Token, nil)
	require.Equal(t, http.StatusOK, resp.Code)

	resp = do(t, router, http.MethodGet, "/cards/"+card.ID.String(), alice.Token, nil)
	assert.Equal(t, http.StatusNotFound, resp.Code)
	assert.Equal(t, "Card not found", message(t, resp))

	resp = do(t, router, http.MethodGet, "/boards/"+board.ID.String(), alice.Token, nil)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Len(t, decode[handler.BoardResponse](t, resp).ColumnIDs, 2)
}

func TestChatbot(t *testing.T) {
	router := setupTest(t)
	alice := register(t, router, "alice")
	board := createBoard(t, router, alice.Token, map[string]any{"title": "Roadmap"})
	createCard(t, router, alice.Token, boardColumns(t, router, alice.Token, board.ID)[0].ID, map[string]any{"title": "Write docs"})

	resp := do(t, router, http.MethodGet, "/chatbot/context", alice.Token, nil)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	ctx := decode[handler.ContextResponse](t, resp)
	assert.Equal(t, 1, ctx.TotalBoards)
	assert.Equal(t, 1, ctx.TotalCards)
	assert.Contains(t, ctx.Context, "Write docs")

	// Без ключа API чат недоступен, даже без тела запроса
	resp = do(t, router, http.MethodPost, "/chatbot/chat", alice.Token, "")
	assert.Equal(t, http.StatusInternalServerError, resp.Code)
	assert.Contains(t, message(t, resp), "OPENROUTER_API_KEY")
}

func TestCardDueDate(t *testing.T) {
	router := setupTest(t)
	alice := register(t, router, "alice")
	board := createBoard(t, router, alice.Token, map[string]any{"title": "Roadmap"})
	todo := boardColumns(t, router, alice.Token, board.ID)[0]
	due := time.Date(2025, time.January, 31, 0, 0, 0, 0, time.UTC)

	// Дата без времени, как из <input type="date">
	card := createCard(t, router, alice.Token, todo.ID, `{"title":"Ship","dueDate":"2025-01-31"}`)
	require.NotNil(t, card.DueDate)
	assert.True(t, due.Equal(*card.DueDate))
	path := "/cards/" + card.ID.String()

	resp := do(t, router, http.MethodPut, path, alice.Token, `{"dueDate":"2025-02-01T09:00:00Z"}`)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	require.NotNil(t, decode[handler.CardResponse](t, resp).DueDate)

	resp = do(t, router, http.MethodPut, path, alice.Token, `{"dueDate":null}`)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	assert.Nil(t, decode[handler.CardResponse](t, resp).DueDate)

	resp = do(t, router, http.MethodGet, path, alice.Token, nil)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Nil(t, decode[handler.CardResponse](t, resp).DueDate)

	resp = do(t, router, http.MethodPut, path, alice.Token, `{"dueDate":"soon"}`)
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestColumnLimitCanBeCleared(t *testing.T) {
	router := setupTest(t)
	alice := register(t, router, "alice")
	board := createBoard(t, router, alice.Token, map[string]any{"title": "Roadmap"})
	path := "/columns/" + boardColumns(t, router, alice.Token, board.ID)[1].ID.String()

	resp := do(t, router, http.MethodPut, path, alice.Token, `{"limit":3}`)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	column := decode[handler.ColumnResponse](t, resp)
	require.NotNil(t, column.Limit)
	assert.Equal(t, 3, *column.Limit)

	resp = do(t, router, http.MethodPut, path, alice.Token, `{"limit":null}`)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	assert.Nil(t, decode[handler.ColumnResponse](t, resp).Limit)

	columns := boardColumns(t, router, alice.Token, board.ID)
	assert.Nil(t, columns[1].Limit)
}
