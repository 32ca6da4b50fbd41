package session

import (
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
)

// TokenClaims is what the client can read out of a service-issued bearer
// token without the signing secret. The token stays opaque for auth
// purposes; claim inspection is only used to discard a stored token that is
// already dead instead of burning a round-trip on a guaranteed 401.
type TokenClaims struct {
	Role string `json:"role,omitempty"` // "rider" or "driver"
	jwtlib.RegisteredClaims
}

// InspectToken decodes claims without verifying the signature. An error
// means the token is not a well-formed JWT; callers must then treat it as an
// opaque credential and let the server judge it.
func InspectToken(raw string) (*TokenClaims, error) {
	claims := &TokenClaims{}
	parser := jwtlib.NewParser()
	if _, _, err := parser.ParseUnverified(raw, claims); err != nil {
		return nil, err
	}
	return claims, nil
}

// Expired reports whether the token carries an expiry in the past.
func (claims *TokenClaims) Expired(now time.Time) bool {
	return claims.ExpiresAt != nil && now.After(claims.ExpiresAt.Time)
}
