package jwtx

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claim names used on the wire. ClaimUser carries the principal; the
// registered "sub" claim is not used by the clinic tokens.
const (
	ClaimUser      = "user"
	ClaimIsRefresh = "is_refresh"
	ClaimIssuer    = "iss"
	ClaimAudience  = "aud"
	ClaimIssuedAt  = "iat"
	ClaimExpiresAt = "exp"
)

// Claims is the payload of both clinic token kinds. Access and refresh
// tokens share the layout and differ only in IsRefresh and expiry.
type Claims struct {
	jwt.RegisteredClaims

	// User is the authenticated principal, also its role literal.
	User string `json:"user"`

	// IsRefresh is set on refresh tokens only.
	IsRefresh bool `json:"is_refresh,omitempty"`
}

// NewClaims builds the claim set for one token of a pair.
func NewClaims(
	user, issuer, audience string,
	ttl time.Duration,
	refresh bool,
	now time.Time,
) Claims {
	now = now.UTC()
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Audience:  jwt.ClaimStrings{audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		User:      user,
		IsRefresh: refresh,
	}
}
