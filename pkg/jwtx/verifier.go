package jwtx

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// Verifier checks the structure and signature of a token and hands back the
// raw claim set. Claim semantics (expiry, required claims) are left to the
// caller so missing claims stay observable.
type Verifier interface {
	Verify(token string) (jwt.MapClaims, error)
}

var (
	ErrMalformed   = errors.New("jwtx: malformed token")
	ErrAlgMismatch = errors.New("jwtx: algorithm mismatch")
	ErrInvalidSig  = errors.New("jwtx: invalid signature")
)

// HS256Verifier validates HMAC-SHA256 signatures with a shared key.
type HS256Verifier struct {
	key []byte
}

func NewVerifierHS256(key []byte) *HS256Verifier {
	k := make([]byte, len(key))
	copy(k, key)
	return &HS256Verifier{key: k}
}

// Verify only accepts HS256; "none" and asymmetric algorithms are refused
// before the key is ever handed out.
func (v *HS256Verifier) Verify(tokenStr string) (jwt.MapClaims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
		jwt.WithJSONNumber(),
	)

	claims := jwt.MapClaims{}
	token, err := parser.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrAlgMismatch
		}
		return v.key, nil
	})
	if err != nil {
		return nil, classify(err)
	}
	if !token.Valid {
		return nil, ErrInvalidSig
	}

	return claims, nil
}

// classify folds the library's parse errors into the package sentinels.
func classify(err error) error {
	switch {
	case errors.Is(err, ErrAlgMismatch):
		return ErrAlgMismatch
	case errors.Is(err, jwt.ErrSignatureInvalid):
		return fmt.Errorf("%w: %w", ErrInvalidSig, err)
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		// raised by WithValidMethods before any key is used
		return fmt.Errorf("%w: %w", ErrAlgMismatch, err)
	default:
		return fmt.Errorf("%w: %w", ErrMalformed, err)
	}
}
