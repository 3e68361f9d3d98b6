// Package token validates the bearer tokens issued by the external identity
// collaborator. Issuance lives outside this service; only HS256 validation is
// needed here.
package token

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"hustings/internal/platform/middleware"
)

// JWTValidator validates HS256-signed session tokens.
type JWTValidator struct {
	signingKey []byte
}

// NewJWTValidator constructs a validator with the shared signing key.
func NewJWTValidator(signingKey string) *JWTValidator {
	return &JWTValidator{signingKey: []byte(signingKey)}
}

type sessionClaims struct {
	SessionID string `json:"sid,omitempty"`
	jwt.RegisteredClaims
}

// ValidateToken parses and verifies a token, returning the identity claims.
// Expired or malformed tokens return an error; expiry checking is handled by
// the jwt library's default validator.
func (v *JWTValidator) ValidateToken(tokenString string) (*middleware.Claims, error) {
	var claims sessionClaims
	tok, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return v.signingKey, nil
	})
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}
	if !tok.Valid {
		return nil, fmt.Errorf("token is not valid")
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("token missing subject")
	}
	return &middleware.Claims{
		IdentityID: claims.Subject,
		SessionID:  claims.SessionID,
	}, nil
}
