// internal/auth/jwt.go
package auth

import (
	"errors"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"signup-bonus-tracker/internal/config"
)

var ErrInvalidUserID = errors.New("invalid user_id")

type TokenService struct {
	secretKey []byte
	expiresIn time.Duration
}

func NewTokenService(cfg config.Config) *TokenService {
	return &TokenService{
		secretKey: []byte(cfg.JWTSecret),
		expiresIn: cfg.JWTExpiresIn,
	}
}

// Генерация токена. userID — UUID пользователя.
func (s *TokenService) GenerateToken(userID string) (string, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return "", ErrInvalidUserID
	}

	expTime := time.Now().Add(s.expiresIn)
	claims := jwt.MapClaims{
		"user_id": id.String(),
		"exp":     expTime.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenStr, err := token.SignedString(s.secretKey)
	if err == nil {
		slog.Info("JWT generated", "user_id", id.String(), "expires_at", expTime.Format("2006-01-02 15:04:05"))
	}
	return tokenStr, err
}

// Парсинг токена
func (s *TokenService) ParseToken(tokenStr string) (string, error) {
	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secretKey, nil
	})
	if err != nil {
		return "", err
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		if raw, ok := claims["user_id"].(string); ok {
			id, err := uuid.Parse(raw)
			if err != nil || id == uuid.Nil {
				return "", ErrInvalidUserID
			}
			slog.Debug("JWT parsed successfully", "user_id", id.String())
			return id.String(), nil
		}
	}
	return "", errors.New("invalid token claims")
}
