package jwtx_test

import (
	"encoding/base64"
	"strings"
	"testing"
	"time"

	"github.com/benjaminBJ/taller-api-rest/pkg/jwtx"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

var testKey = []byte("0123456789abcdef0123456789abcdef")

func newPair(t *testing.T) (*jwtx.HS256Signer, *jwtx.HS256Verifier) {
	t.Helper()
	s, err := jwtx.NewSignerHS256(testKey)
	require.NoError(t, err)
	return s, s.Verifier()
}

func TestHS256RoundTrip(t *testing.T) {
	s, v := newPair(t)

	now := time.Now().UTC()
	tok, err := s.Sign(jwtx.NewClaims("admin", "iss", "aud", time.Minute, true, now))
	require.NoError(t, err)
	require.Len(t, strings.Split(tok, "."), 3)

	unverified, _, err := jwt.NewParser().ParseUnverified(tok, jwt.MapClaims{})
	require.NoError(t, err)
	require.Equal(t, "HS256", unverified.Method.Alg())

	claims, err := v.Verify(tok)
	require.NoError(t, err)
	require.Equal(t, "admin", claims[jwtx.ClaimUser])
	require.Equal(t, true, claims[jwtx.ClaimIsRefresh])
	require.Equal(t, "iss", claims[jwtx.ClaimIssuer])
	require.Contains(t, claims, jwtx.ClaimExpiresAt)
	require.Contains(t, claims, jwtx.ClaimIssuedAt)
}

func TestHS256AccessTokenOmitsRefreshFlag(t *testing.T) {
	s, v := newPair(t)
	tok, err := s.Sign(jwtx.NewClaims("user", "iss", "aud", time.Minute, false, time.Now()))
	require.NoError(t, err)

	claims, err := v.Verify(tok)
	require.NoError(t, err)
	require.NotContains(t, claims, jwtx.ClaimIsRefresh)
}

func TestHS256RejectsShortKey(t *testing.T) {
	_, err := jwtx.NewSignerHS256([]byte("too-short"))
	require.ErrorIs(t, err, jwtx.ErrWeakKey)
}

func TestHS256ExpiredTokenStillVerifies(t *testing.T) {
	// expiry is judged by the caller, not the verifier
	s, v := newPair(t)
	past := time.Now().Add(-2 * time.Hour)
	tok, err := s.Sign(jwtx.NewClaims("admin", "iss", "aud", time.Minute, false, past))
	require.NoError(t, err)

	_, err = v.Verify(tok)
	require.NoError(t, err)
}

func TestHS256Failures(t *testing.T) {
	s, v := newPair(t)
	tok, err := s.Sign(jwtx.NewClaims("admin", "iss", "aud", time.Minute, false, time.Now()))
	require.NoError(t, err)

	t.Run("wrong key", func(t *testing.T) {
		other := jwtx.NewVerifierHS256([]byte("ffffffffffffffffffffffffffffffff"))
		_, err := other.Verify(tok)
		require.ErrorIs(t, err, jwtx.ErrInvalidSig)
	})

	t.Run("tampered payload", func(t *testing.T) {
		parts := strings.Split(tok, ".")
		parts[1] = base64.RawURLEncoding.EncodeToString([]byte(`{"user":"root"}`))
		_, err := v.Verify(strings.Join(parts, "."))
		require.ErrorIs(t, err, jwtx.ErrInvalidSig)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := v.Verify("not.a.jwt")
		require.ErrorIs(t, err, jwtx.ErrMalformed)
	})

	t.Run("empty", func(t *testing.T) {
		_, err := v.Verify("")
		require.ErrorIs(t, err, jwtx.ErrMalformed)
	})

	t.Run("alg none", func(t *testing.T) {
		none := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"user": "admin"})
		raw, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)
		_, err = v.Verify(raw)
		require.ErrorIs(t, err, jwtx.ErrAlgMismatch)
	})

	t.Run("other hmac alg", func(t *testing.T) {
		hs512 := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.MapClaims{"user": "admin"})
		raw, err := hs512.SignedString(testKey)
		require.NoError(t, err)
		_, err = v.Verify(raw)
		require.ErrorIs(t, err, jwtx.ErrAlgMismatch)
	})
}
