package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"kanbanapi/internal/assistant"
	"kanbanapi/internal/auth"
	"kanbanapi/internal/config"
	"kanbanapi/internal/database"
	"kanbanapi/internal/handler"
	"kanbanapi/internal/logging"
	"kanbanapi/internal/middleware"
	"kanbanapi/internal/repository"
	"kanbanapi/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

type Server struct {
	Engine *gin.Engine
	DB     *gorm.DB
	Config *config.Config
	Logger *slog.Logger
}

// Init connects to the database, migrates the schema and builds the router.
func Init(cfg *config.Config, logger *slog.Logger) (*Server, error) {
	db, err := database.Open(cfg.DatabaseURL, logging.GormLevel(cfg.LogLevel))
	if err != nil {
		return nil, fmt.Errorf("❌ failed to connect to DB: %w", err)
	}
	if err := database.Migrate(db); err != nil {
		return nil, fmt.Errorf("❌ failed to migrate DB: %w", err)
	}
	logger.Info("✅ Connected to database")

	var completer assistant.Completer
	if cfg.OpenRouterAPIKey != "" {
		completer = assistant.NewOpenRouter(cfg.OpenRouterBaseURL, cfg.OpenRouterAPIKey, cfg.OpenRouterModel, cfg.OpenRouterTimeout)
	} else {
		logger.Warn("⚠️  OPENROUTER_API_KEY is not set, chatbot is disabled")
	}

	return New(cfg, db, logger, completer), nil
}

// New builds a server around an already migrated database. A nil completer
// leaves the chatbot unconfigured.
func New(cfg *config.Config, db *gorm.DB, logger *slog.Logger, completer assistant.Completer) *Server {
	stores := service.Stores{
		Users:   repository.NewUserRepository(db),
		Boards:  repository.NewBoardRepository(db),
		Members: repository.NewMemberRepository(db),
		Columns: repository.NewColumnRepository(db),
		Cards:   repository.NewCardRepository(db),
	}
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTExpiry)

	userHandler := handler.NewUserHandler(service.NewUserService(stores.Users, tokens, logger))
	boardHandler := handler.NewBoardHandler(service.NewBoardService(stores, logger))
	columnHandler := handler.NewColumnHandler(service.NewColumnService(stores, logger))
	cardHandler := handler.NewCardHandler(service.NewCardService(stores, logger))
	chatbotHandler := handler.NewChatbotHandler(service.NewAssistantService(stores, completer, logger))

	r := gin.New()
	r.Use(logging.Middleware(logger), gin.CustomRecovery(handler.Recovery))

	r.GET("/", handler.Welcome)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api")
	api.GET("/health", handler.Health)

	// Public routes
	api.POST("/auth/register", userHandler.Register)
	api.POST("/auth/login", userHandler.Login)

	// Protected routes - require authentication
	authorized := api.Group("/")
	authorized.Use(middleware.JWTAuthMiddleware(tokens))
	{
		// Board routes
		authorized.GET("/boards", boardHandler.GetAll)
		authorized.POST("/boards", boardHandler.Create)
		authorized.GET("/boards/:id", boardHandler.GetByID)
		authorized.PUT("/boards/:id", boardHandler.Update)
		authorized.DELETE("/boards/:id", boardHandler.Delete)
		authorized.POST("/boards/:id/members", boardHandler.AddMember)
		authorized.DELETE("/boards/:id/members", boardHandler.RemoveMember)
		authorized.GET("/boards/:id/notes", boardHandler.GetNotes)
		authorized.PUT("/boards/:id/notes", boardHandler.UpdateNotes)

		// Column routes
		authorized.GET("/columns/board/:boardId", columnHandler.GetAll)
		authorized.POST("/columns/board/:boardId", columnHandler.Create)
		authorized.PUT("/columns/board/:boardId/reorder", columnHandler.Reorder)
		authorized.PUT("/columns/:id", columnHandler.Update)
		authorized.DELETE("/columns/:id", columnHandler.Delete)

		// Card routes
		authorized.GET("/cards/column/:columnId", cardHandler.GetByColumnID)
		authorized.POST("/cards/column/:columnId", cardHandler.Create)
		authorized.GET("/cards/:id", cardHandler.GetByID)
		authorized.PUT("/cards/:id", cardHandler.Update)
		authorized.DELETE("/cards/:id", cardHandler.Delete)
		authorized.PUT("/cards/:id/move", cardHandler.Move)
		authorized.POST("/cards/:id/comments", cardHandler.AddComment)
		authorized.PUT("/cards/:id/checklist/:itemIndex", cardHandler.UpdateChecklistItem)

		// User routes
		authorized.GET("/users/search", userHandler.Search)
		authorized.GET("/users/profile", userHandler.Profile)
		authorized.PUT("/users/profile", userHandler.UpdateProfile)
		authorized.PUT("/users/change-password", userHandler.ChangePassword)

		// Chatbot routes
		authorized.POST("/chatbot/chat", chatbotHandler.Chat)
		authorized.GET("/chatbot/context", chatbotHandler.Context)
	}

	r.NoRoute(handler.NotFound)

	return &Server{
		Engine: r,
		DB:     db,
		Config: cfg,
		Logger: logger,
	}
}

// Handler wraps the router with CORS.
func (s *Server) Handler() http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins:   s.Config.CORSAllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	})
	return c.Handler(s.Engine)
}

func (s *Server) Run() {
	srv := &http.Server{
		Addr:         ":" + s.Config.ServerPort,
		Handler:      s.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: s.Config.OpenRouterTimeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		s.Logger.Info(fmt.Sprintf("🚀 Server running on port %s", s.Config.ServerPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.Logger.Error("❌ Failed to listen", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	s.Logger.Info("🛑 Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		s.Logger.Error("❌ Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	if sqlDB, err := s.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
	s.Logger.Info("✅ Server exited properly")
}
