package httpx_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/benjaminBJ/taller-api-rest/pkg/httpx"
	"github.com/benjaminBJ/taller-api-rest/pkg/jwtx"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

type stubValidator struct {
	valid bool
}

func (s stubValidator) ValidateTokenData(jwt.MapClaims) bool { return s.valid }

func (s stubValidator) ExtractUser(c jwt.MapClaims) (string, error) {
	u, ok := c["user"].(string)
	if !ok {
		return "", errors.New("Invalid token")
	}
	return u, nil
}

func TestChainOrder(t *testing.T) {
	var seen []string
	mw := func(name string) httpx.Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				seen = append(seen, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	h := httpx.Chain(okHandler, mw("a"), mw("b"), mw("c"))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, []string{"a", "b", "c"}, seen)
}

func signed(t *testing.T, user string, refresh bool) (string, *jwtx.HS256Verifier) {
	t.Helper()
	s, err := jwtx.NewSignerHS256([]byte(strings.Repeat("k", 32)))
	require.NoError(t, err)
	tok, err := s.Sign(jwtx.NewClaims(user, "iss", "aud", time.Minute, refresh, time.Now()))
	require.NoError(t, err)
	return tok, s.Verifier()
}

func TestAuthnMiddleware(t *testing.T) {
	var gotUser string
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser, _ = httpx.UserFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	serve := func(v jwtx.Verifier, cv httpx.ClaimsValidator, header string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		rec := httptest.NewRecorder()
		httpx.Chain(inner, httpx.AuthnMiddleware(v, cv)).ServeHTTP(rec, req)
		return rec
	}

	tok, v := signed(t, "admin", false)

	t.Run("valid token", func(t *testing.T) {
		rec := serve(v, stubValidator{valid: true}, "Bearer "+tok)
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "admin", gotUser)
	})

	t.Run("missing header", func(t *testing.T) {
		rec := serve(v, stubValidator{valid: true}, "")
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Contains(t, rec.Header().Get("WWW-Authenticate"), `error="invalid_token"`)
	})

	t.Run("wrong scheme", func(t *testing.T) {
		rec := serve(v, stubValidator{valid: true}, "Basic "+tok)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("bad signature", func(t *testing.T) {
		other := jwtx.NewVerifierHS256([]byte(strings.Repeat("x", 32)))
		rec := serve(other, stubValidator{valid: true}, "Bearer "+tok)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("claims rejected", func(t *testing.T) {
		rec := serve(v, stubValidator{valid: false}, "Bearer "+tok)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("refresh token accepted like an access token", func(t *testing.T) {
		refresh, v := signed(t, "admin", true)
		rec := serve(v, stubValidator{valid: true}, "Bearer "+refresh)
		require.Equal(t, http.StatusOK, rec.Code)
		require.Empty(t, rec.Header().Get("WWW-Authenticate"))
	})
}

func TestRequireRole(t *testing.T) {
	adminOnly := func(u string) (bool, bool) {
		return u == "admin" || u == "user", u == "admin"
	}

	serve := func(user string) *httptest.ResponseRecorder {
		tok, v := signed(t, user, false)
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req.Header.Set("Authorization", "Bearer "+tok)
		rec := httptest.NewRecorder()
		httpx.Chain(okHandler,
			httpx.AuthnMiddleware(v, stubValidator{valid: true}),
			httpx.RequireRole(adminOnly),
		).ServeHTTP(rec, req)
		return rec
	}

	require.Equal(t, http.StatusOK, serve("admin").Code)

	rec := serve("user")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.JSONEq(t, `{"message":"`+httpx.MsgNoPermission+`"}`, rec.Body.String())

	rec = serve("mallory")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.JSONEq(t, `{"message":"`+httpx.MsgInvalidUser+`"}`, rec.Body.String())
}

func TestDecodeJSON(t *testing.T) {
	type body struct {
		Name string `json:"name"`
	}

	t.Run("ok", func(t *testing.T) {
		var b body
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"Rex"}`))
		require.NoError(t, httpx.DecodeJSON(req, &b))
		require.Equal(t, "Rex", b.Name)
	})

	t.Run("unknown field", func(t *testing.T) {
		var b body
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"nme":"Rex"}`))
		require.Error(t, httpx.DecodeJSON(req, &b))
	})

	t.Run("trailing data", func(t *testing.T) {
		var b body
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"a"}{"name":"b"}`))
		require.ErrorIs(t, httpx.DecodeJSON(req, &b), httpx.ErrTrailingData)
	})
}
