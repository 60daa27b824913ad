// utils/jwt.go
package utils

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"isip/config"
)

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

type Claims struct {
	UserID    string `json:"userID"`
	Username  string `json:"username"`
	TokenType string `json:"type"`
	jwt.RegisteredClaims
}

// GenerateAccessToken issues the short-lived bearer token used on every
// authenticated request.
func GenerateAccessToken(userID, username string) (string, error) {
	return generateToken(userID, username, TokenTypeAccess, config.JWTExpiration)
}

// GenerateRefreshToken issues the long-lived token exchanged for new
// access tokens.
func GenerateRefreshToken(userID, username string) (string, error) {
	return generateToken(userID, username, TokenTypeRefresh, config.RefreshExpiration)
}

func generateToken(userID, username, tokenType string, ttl time.Duration) (string, error) {
	claims := Claims{
		UserID:    userID,
		Username:  username,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(config.JWTKey)
}

// ValidateToken parses the token and checks it carries the expected type,
// so a refresh token cannot be used as a bearer credential.
func ValidateToken(tokenString, wantType string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return config.JWTKey, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	if claims.TokenType != wantType {
		return nil, fmt.Errorf("wrong token type: got %q, want %q", claims.TokenType, wantType)
	}
	return claims, nil
}
