package main

import (
	"log"
	"os"

	_ "kanbanapi/docs"
	"kanbanapi/internal/config"
	"kanbanapi/internal/logging"
	"kanbanapi/internal/server"

	"github.com/gin-gonic/gin"
	"github.com/spf13/pflag"
)

// @title           Kanban API
// @version         1.0
// @description     Kanban boards with columns, cards, members and an AI assistant.

// @host      localhost:3001
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @schemes http
func main() {
	envFile := pflag.String("env-file", ".env", "path to the .env file")
	port := pflag.String("port", "", "port to listen on, overrides PORT")
	pflag.Parse()

	cfg := config.Load(*envFile)
	if *port != "" {
		cfg.ServerPort = *port
	}
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	logger := logging.New(os.Stdout, cfg.LogLevel)

	s, err := server.Init(cfg, logger)
	if err != nil {
		log.Fatalf("❌ Server initialization failed: %v", err)
	}

	s.Run()
}
