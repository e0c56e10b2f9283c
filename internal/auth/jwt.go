package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const userIDClaim = "user_id"

// TokenManager issues and verifies HS256 tokens carrying the user id.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	return &TokenManager{secret: []byte(secret), ttl: ttl}
}

func (m *TokenManager) GenerateToken(userID string) (string, error) {
	claims := jwt.MapClaims{
		userIDClaim: userID,
		"exp":       time.Now().Add(m.ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

func (m *TokenManager) ParseToken(tokenStr string) (string, error) {
	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		return m.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return "", errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", errors.New("invalid claims")
	}
	userID, ok := claims[userIDClaim].(string)
	if !ok || userID == "" {
		return "", errors.New("invalid claims")
	}

	return userID, nil
}
