package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Health godoc
// @Summary      Health check
// @Tags         health
// @Produce      json
// @Success      200 {object} map[string]string
// @Router       /api/health [get]
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "OK", "message": "Kanban API is running"})
}

func Welcome(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Welcome to the Kanban API",
		"endpoints": gin.H{
			"auth":    "/api/auth",
			"boards":  "/api/boards",
			"columns": "/api/columns",
			"cards":   "/api/cards",
			"users":   "/api/users",
			"chatbot": "/api/chatbot",
			"health":  "/api/health",
			"docs":    "/swagger/index.html",
		},
	})
}

func NotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{"message": "Route not found"})
}

// Recovery answers panics with a generic 500.
func Recovery(c *gin.Context, err any) {
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "Something went wrong!"})
}
