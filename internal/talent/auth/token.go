// Package auth guards the tool API with HS256 bearer tokens.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// GenerateToken mints a signed token for an agent caller.
func GenerateToken(agentID string, secret string) (string, error) {
	claims := jwt.MapClaims{
		"sub": agentID,
		"exp": time.Now().Add(time.Hour * 24).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
