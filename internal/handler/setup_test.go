package handler_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"kanbanapi/internal/auth"
	"kanbanapi/internal/database"
	"kanbanapi/internal/handler"
	"kanbanapi/internal/middleware"
	"kanbanapi/internal/repository"
	"kanbanapi/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	gormlogger "gorm.io/gorm/logger"
)

// Роутер поверх sqlite в памяти, по базе на тест
func setupTest(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := database.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name), gormlogger.Silent)
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	require.NoError(t, database.Migrate(db))

	stores := service.Stores{
		Users:   repository.NewUserRepository(db),
		Boards:  repository.NewBoardRepository(db),
		Members: repository.NewMemberRepository(db),
		Columns: repository.NewColumnRepository(db),
		Cards:   repository.NewCardRepository(db),
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	tokens := auth.NewTokenManager("test-secret", time.Hour)

	userHandler := handler.NewUserHandler(service.NewUserService(stores.Users, tokens, logger))
	boardHandler := handler.NewBoardHandler(service.NewBoardService(stores, logger))
	columnHandler := handler.NewColumnHandler(service.NewColumnService(stores, logger))
	cardHandler := handler.NewCardHandler(service.NewCardService(stores, logger))
	chatbotHandler := handler.NewChatbotHandler(service.NewAssistantService(stores, nil, logger))

	r := gin.New()
	r.POST("/register", userHandler.Register)
	r.POST("/login", userHandler.Login)

	authorized := r.Group("/")
	authorized.Use(middleware.JWTAuthMiddleware(tokens))
	authorized.GET("/users/search", userHandler.Search)
	authorized.GET("/users/profile", userHandler.Profile)
	authorized.PUT("/users/profile", userHandler.UpdateProfile)
	authorized.PUT("/users/change-password", userHandler.ChangePassword)
	authorized.POST("/boards", boardHandler.Create)
	authorized.GET("/boards", boardHandler.GetAll)
	authorized.GET("/boards/:id", boardHandler.GetByID)
	authorized.PUT("/boards/:id", boardHandler.Update)
	authorized.DELETE("/boards/:id", boardHandler.Delete)
	authorized.POST("/boards/:id/members", boardHandler.AddMember)
	authorized.GET("/boards/:id/notes", boardHandler.GetNotes)
	authorized.PUT("/boards/:id/notes", boardHandler.UpdateNotes)
	authorized.GET("/columns/board/:boardId", columnHandler.GetAll)
	authorized.POST("/columns/board/:boardId", columnHandler.Create)
	authorized.PUT("/columns/board/:boardId/reorder", columnHandler.Reorder)
	authorized.PUT("/columns/:id", columnHandler.Update)
	authorized.DELETE("/columns/:id", columnHandler.Delete)
	authorized.POST("/cards/column/:columnId", cardHandler.Create)
	authorized.GET("/cards/:id", cardHandler.GetByID)
	authorized.PUT("/cards/:id", cardHandler.Update)
	authorized.PUT("/cards/:id/move", cardHandler.Move)
	authorized.POST("/cards/:id/comments", cardHandler.AddComment)
	authorized.PUT("/cards/:id/checklist/:itemIndex", cardHandler.UpdateChecklistItem)
	authorized.POST("/chatbot/chat", chatbotHandler.Chat)
	authorized.GET("/chatbot/context", chatbotHandler.Context)
	return r
}

func do(t *testing.T, r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = strings.NewReader(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func decode[T any](t *testing.T, resp *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &out), resp.Body.String())
	return out
}

func message(t *testing.T, resp *httptest.ResponseRecorder) string {
	t.Helper()
	return decode[map[string]string](t, resp)["message"]
}

// register создает пользователя и возвращает его токен
func register(t *testing.T, r *gin.Engine, username string) handler.AuthResponse {
	t.Helper()
	resp := do(t, r, http.MethodPost, "/register", "", handler.RegisterRequest{
		Username: username,
		Email:    username + "@example.com",
		Password: "password123",
	})
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())
	return decode[handler.AuthResponse](t, resp)
}

func createBoard(t *testing.T, r *gin.Engine, token string, body any) handler.BoardResponse {
	t.Helper()
	resp := do(t, r, http.MethodPost, "/boards", token, body)
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())
	return decode[handler.BoardResponse](t, resp)
}
