package jwtx

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// MinHS256KeySize is the smallest accepted HMAC key, in bytes (256 bits).
const MinHS256KeySize = 32

var ErrWeakKey = errors.New("jwtx: HS256 key must be at least 32 bytes")

// HS256Signer signs with HMAC-SHA256 using a shared symmetric key.
type HS256Signer struct {
	key []byte
}

// NewSignerHS256 uses key as raw HMAC key material.
func NewSignerHS256(key []byte) (*HS256Signer, error) {
	if len(key) < MinHS256KeySize {
		return nil, fmt.Errorf("%w, got %d", ErrWeakKey, len(key))
	}
	k := make([]byte, len(key))
	copy(k, key)
	return &HS256Signer{key: k}, nil
}

// Sign serializes c as header.payload.signature.
func (s *HS256Signer) Sign(c Claims) (string, error) {
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	out, err := tok.SignedString(s.key)
	if err != nil {
		return "", fmt.Errorf("jwtx: sign: %w", err)
	}
	return out, nil
}

// Verifier returns the matching verifier for tokens produced by s.
func (s *HS256Signer) Verifier() *HS256Verifier {
	return &HS256Verifier{key: s.key}
}
