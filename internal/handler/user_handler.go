package handler

import (
	"net/http"
	"strconv"

	"kanbanapi/internal/service"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	users *service.UserService
}

func NewUserHandler(users *service.UserService) *UserHandler {
	return &UserHandler{users: users}
}

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResponse struct {
	User  UserResponse `json:"user"`
	Token string       `json:"token"`
}

type UpdateProfileRequest struct {
	Username *string `json:"username"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// Register godoc
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body RegisterRequest true "User data"
// @Success      201 {object} AuthResponse
// @Failure      400 {object} map[string]string
// @Router       /api/auth/register [post]
func (h *UserHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if !bind(c, &req) {
		return
	}

	session, err := h.users.Register(c.Request.Context(), service.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, AuthResponse{User: toUserResponse(*session.User), Token: session.Token})
}

// Login godoc
// @Summary      Log in and receive a token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body LoginRequest true "Credentials"
// @Success      200 {object} AuthResponse
// @Failure      400 {object} map[string]string
// @Router       /api/auth/login [post]
func (h *UserHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !bind(c, &req) {
		return
	}

	session, err := h.users.Login(c.Request.Context(), service.LoginInput{Email: req.Email, Password: req.Password})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, AuthResponse{User: toUserResponse(*session.User), Token: session.Token})
}

// Search godoc
// @Summary      Search users by username
// @Tags         users
// @Security     BearerAuth
// @Produce      json
// @Param        query query string true "At least 2 characters"
// @Param        limit query integer false "Default 10, max 50"
// @Success      200 {array} UserResponse
// @Failure      400 {object} map[string]string
// @Failure      401 {object} map[string]string
// @Router       /api/users/search [get]
func (h *UserHandler) Search(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "0"))
	if err != nil {
		limit = 0
	}

	users, err := h.users.Search(c.Request.Context(), userID, c.Query("query"), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toUserResponses(users))
}

// Profile godoc
// @Summary      Get the caller's profile
// @Tags         users
// @Security     BearerAuth
// @Produce      json
// @Success      200 {object} UserResponse
// @Failure      401 {object} map[string]string
// @Failure      404 {object} map[string]string
// @Router       /api/users/profile [get]
func (h *UserHandler) Profile(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	user, err := h.users.Profile(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toUserResponse(*user))
}

// UpdateProfile godoc
// @Summary      Change the caller's username
// @Tags         users
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request body UpdateProfileRequest true "Profile fields"
// @Success      200 {object} UserResponse
// @Failure      400 {object} map[string]string
// @Failure      401 {object} map[string]string
// @Router       /api/users/profile [put]
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req UpdateProfileRequest
	if !bindStrict(c, &req) {
		return
	}

	user, err := h.users.UpdateProfile(c.Request.Context(), userID, req.Username)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toUserResponse(*user))
}

// ChangePassword godoc
// @Summary      Change the caller's password
// @Tags         users
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request body ChangePasswordRequest true "Passwords"
// @Success      200 {object} map[string]string
// @Failure      400 {object} map[string]string
// @Failure      401 {object} map[string]string
// @Router       /api/users/change-password [put]
func (h *UserHandler) ChangePassword(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req ChangePasswordRequest
	if !bind(c, &req) {
		return
	}

	err := h.users.ChangePassword(c.Request.Context(), userID, service.ChangePasswordInput{
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password updated successfully"})
}
