package domain

import "time"

const TokenTypeBearer = "Bearer"

// TokenPair is the result of one issuance: an access token and a refresh
// token for the same subject, signed with the same key.
type TokenPair struct {
	AccessToken      string
	ExpiresAt        time.Time
	RefreshToken     string
	RefreshExpiresAt time.Time
	TokenType        string
}

// TokenData is the registered claim metadata of a token.
type TokenData struct {
	Issuer     string
	Audience   string
	IssuedAt   time.Time
	Expiration time.Time
}
