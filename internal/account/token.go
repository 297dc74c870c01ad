package account

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenClaims are the readable parts of a service-issued token. ExpiresAt
// is zero when the token carries no exp claim.
type TokenClaims struct {
	UserName  string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// InspectToken decodes token without verifying its signature; the suite
// never holds the service's key.
func InspectToken(token string) (TokenClaims, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return TokenClaims{}, fmt.Errorf("parse token: %w", err)
	}

	var out TokenClaims
	if name, ok := claims["userName"].(string); ok {
		out.UserName = name
	}
	if iat, err := claims.GetIssuedAt(); err == nil && iat != nil {
		out.IssuedAt = iat.Time
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		out.ExpiresAt = exp.Time
	}
	return out, nil
}
