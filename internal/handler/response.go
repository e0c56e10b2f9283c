package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"kanbanapi/internal/middleware"
	"kanbanapi/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/google/uuid"
)

func statusFor(kind service.Kind) int {
	switch kind {
	case service.KindNotFound:
		return http.StatusNotFound
	case service.KindAccessDenied:
		return http.StatusForbidden
	case service.KindValidation:
		return http.StatusBadRequest
	case service.KindUpstreamAuthFailed:
		return http.StatusUnauthorized
	case service.KindUpstreamRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes err as {"message": ...}. Internal causes are attached
// to the gin context so the request logger records them.
func respondError(c *gin.Context, err error) {
	var svcErr *service.Error
	if !errors.As(err, &svcErr) {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Something went wrong!"})
		return
	}
	if svcErr.Err != nil {
		_ = c.Error(svcErr)
	}
	c.JSON(statusFor(svcErr.Kind), gin.H{"message": svcErr.Message})
}

func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{"message": message})
}

// currentUser returns the id set by the auth middleware.
func currentUser(c *gin.Context) (uuid.UUID, bool) {
	value, exists := c.Get(middleware.UserIDKey)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Not authenticated"})
		return uuid.Nil, false
	}
	userID, ok := value.(uuid.UUID)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Invalid user ID format"})
		return uuid.Nil, false
	}
	return userID, true
}

func pathID(c *gin.Context, param, what string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		badRequest(c, "Invalid "+what+" ID")
		return uuid.Nil, false
	}
	return id, true
}

// bindStrict decodes the JSON body into obj, rejecting unknown fields, then
// runs the binding validator.
func bindStrict(c *gin.Context, obj any) bool {
	decoder := json.NewDecoder(c.Request.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(obj); err != nil {
		badRequest(c, "Invalid request body: "+err.Error())
		return false
	}
	if err := binding.Validator.ValidateStruct(obj); err != nil {
		badRequest(c, "Invalid request body: "+err.Error())
		return false
	}
	return true
}

func bind(c *gin.Context, obj any) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		badRequest(c, "Invalid request body")
		return false
	}
	return true
}
