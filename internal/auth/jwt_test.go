package auth_test

import (
	"testing"
	"time"

	"kanbanapi/internal/auth"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
)

const testSecret = "test-secret-key"

func TestGenerateAndParseToken(t *testing.T) {
	tokens := auth.NewTokenManager(testSecret, 24*time.Hour)

	// Генерируем токен
	userID := "test-user-id"
	token, err := tokens.GenerateToken(userID)

	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	// Парсим токен и сверяем ID пользователя
	parsedUserID, err := tokens.ParseToken(token)

	assert.NoError(t, err)
	assert.Equal(t, userID, parsedUserID)
}

func TestParseToken_InvalidToken(t *testing.T) {
	tokens := auth.NewTokenManager(testSecret, time.Hour)

	_, err := tokens.ParseToken("invalid-token")

	assert.Error(t, err)
	assert.Equal(t, "invalid token", err.Error())
}

func TestParseToken_WrongSecret(t *testing.T) {
	issuer := auth.NewTokenManager("other-secret", time.Hour)
	token, err := issuer.GenerateToken("test-user-id")
	assert.NoError(t, err)

	_, err = auth.NewTokenManager(testSecret, time.Hour).ParseToken(token)

	assert.Error(t, err)
	assert.Equal(t, "invalid token", err.Error())
}

func TestParseToken_ExpiredToken(t *testing.T) {
	tokens := auth.NewTokenManager(testSecret, time.Hour)

	// Токен истек 1 час назад
	claims := jwt.MapClaims{
		"user_id": "test-user-id",
		"exp":     time.Now().Add(-1 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	expiredToken, _ := token.SignedString([]byte(testSecret))

	_, err := tokens.ParseToken(expiredToken)

	assert.Error(t, err)
	assert.Equal(t, "invalid token", err.Error())
}

func TestParseToken_MissingClaims(t *testing.T) {
	tokens := auth.NewTokenManager(testSecret, time.Hour)

	// Отсутствует "user_id"
	claims := jwt.MapClaims{
		"exp": time.Now().Add(24 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenWithoutUserID, _ := token.SignedString([]byte(testSecret))

	_, err := tokens.ParseToken(tokenWithoutUserID)

	assert.Error(t, err)
	assert.Equal(t, "invalid claims", err.Error())
}

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := auth.HashPassword("secret123")

	assert.NoError(t, err)
	assert.NotEqual(t, "secret123", hash)
	assert.True(t, auth.CheckPassword(hash, "secret123"))
	assert.False(t, auth.CheckPassword(hash, "wrong"))
}
