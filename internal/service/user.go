package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"unicode/utf8"

	"kanbanapi/internal/auth"
	"kanbanapi/internal/model"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

const (
	defaultSearchLimit = 10
	maxSearchLimit     = 50
)

type UserService struct {
	users    UserStore
	tokens   *auth.TokenManager
	validate *validator.Validate
	logger   *slog.Logger
}

func NewUserService(users UserStore, tokens *auth.TokenManager, logger *slog.Logger) *UserService {
	return &UserService{
		users:    users,
		tokens:   tokens,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		logger:   logger,
	}
}

type RegisterInput struct {
	Username string `validate:"required,min=3"`
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=6"`
}

type LoginInput struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

type ChangePasswordInput struct {
	CurrentPassword string `validate:"required"`
	NewPassword     string `validate:"required,min=6"`
}

// Session is returned by register and login.
type Session struct {
	User  *model.User
	Token string
}

var fieldMessages = map[string]map[string]string{
	"Username":        {"required": "Username is required", "min": "Username must be at least 3 characters long"},
	"Email":           {"required": "Email is required", "email": "Please provide a valid email"},
	"Password":        {"required": "Password is required", "min": "Password must be at least 6 characters long"},
	"CurrentPassword": {"required": "Current password and new password are required"},
	"NewPassword":     {"required": "Current password and new password are required", "min": "New password must be at least 6 characters long"},
}

// check runs struct validation and turns the first failure into a
// validation error with a readable message.
func (s *UserService) check(in any) error {
	err := s.validate.Struct(in)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		if msg, ok := fieldMessages[fe.Field()][fe.Tag()]; ok {
			return invalid(msg)
		}
		return invalid(fe.Field() + " is invalid")
	}
	return internal("Failed to validate input", err)
}

func (s *UserService) Register(ctx context.Context, in RegisterInput) (*Session, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if err := s.check(in); err != nil {
		return nil, err
	}

	existing, err := s.users.FindByEmail(ctx, in.Email)
	if err != nil {
		return nil, internal("Failed to check email", err)
	}
	if existing != nil {
		return nil, invalid("Email already exists")
	}
	existing, err = s.users.FindByUsername(ctx, in.Username)
	if err != nil {
		return nil, internal("Failed to check username", err)
	}
	if existing != nil {
		return nil, invalid("Username already taken")
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, internal("Failed to hash password", err)
	}
	user := &model.User{
		Username:       in.Username,
		Email:          in.Email,
		HashedPassword: hash,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, internal("Failed to create user", err)
	}

	s.logger.Info("user registered", "user_id", user.ID)
	return s.session(user)
}

func (s *UserService) Login(ctx context.Context, in LoginInput) (*Session, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if err := s.check(in); err != nil {
		return nil, err
	}

	user, err := s.users.FindByEmail(ctx, in.Email)
	if err != nil {
		return nil, internal("Failed to retrieve user", err)
	}
	if user == nil || !auth.CheckPassword(user.HashedPassword, in.Password) {
		return nil, invalid("Invalid credentials")
	}
	return s.session(user)
}

func (s *UserService) session(user *model.User) (*Session, error) {
	token, err := s.tokens.GenerateToken(user.ID.String())
	if err != nil {
		return nil, internal("Failed to generate token", err)
	}
	return &Session{User: user, Token: token}, nil
}

// Search finds other users by username. limit <= 0 means the default.
func (s *UserService) Search(ctx context.Context, actor uuid.UUID, query string, limit int) ([]model.User, error) {
	query = strings.TrimSpace(query)
	if utf8.RuneCountInString(query) < 2 {
		return nil, invalid("Query must be at least 2 characters long")
	}
	if limit <= 0 {
		limit = defaultSearchLimit
	}
	if limit > maxSearchLimit {
		limit = maxSearchLimit
	}

	users, err := s.users.Search(ctx, query, actor, limit)
	if err != nil {
		return nil, internal("Failed to search users", err)
	}
	return users, nil
}

func (s *UserService) Profile(ctx context.Context, actor uuid.UUID) (*model.User, error) {
	user, err := s.users.GetByID(ctx, actor)
	if err != nil {
		return nil, internal("Failed to retrieve user", err)
	}
	if user == nil {
		return nil, notFound("User not found")
	}
	return user, nil
}

func (s *UserService) UpdateProfile(ctx context.Context, actor uuid.UUID, username *string) (*model.User, error) {
	user, err := s.Profile(ctx, actor)
	if err != nil {
		return nil, err
	}
	if username == nil {
		return user, nil
	}

	name := strings.TrimSpace(*username)
	if utf8.RuneCountInString(name) < 3 {
		return nil, invalid("Username must be at least 3 characters long")
	}
	if name == user.Username {
		return user, nil
	}
	taken, err := s.users.FindByUsername(ctx, name)
	if err != nil {
		return nil, internal("Failed to check username", err)
	}
	if taken != nil && taken.ID != actor {
		return nil, invalid("Username already taken")
	}

	if err := s.users.UpdateUsername(ctx, actor, name); err != nil {
		return nil, internal("Failed to update profile", err)
	}
	user.Username = name
	return user, nil
}

func (s *UserService) ChangePassword(ctx context.Context, actor uuid.UUID, in ChangePasswordInput) error {
	if err := s.check(in); err != nil {
		return err
	}
	user, err := s.Profile(ctx, actor)
	if err != nil {
		return err
	}
	if !auth.CheckPassword(user.HashedPassword, in.CurrentPassword) {
		return invalid("Current password is incorrect")
	}

	hash, err := auth.HashPassword(in.NewPassword)
	if err != nil {
		return internal("Failed to hash password", err)
	}
	if err := s.users.UpdatePassword(ctx, actor, hash); err != nil {
		return internal("Failed to update password", err)
	}
	return nil
}
