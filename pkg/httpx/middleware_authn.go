package httpx

import (
	"net/http"
	"strings"

	"github.com/benjaminBJ/taller-api-rest/pkg/jwtx"
	"github.com/benjaminBJ/taller-api-rest/pkg/slogx"
	"github.com/golang-jwt/jwt/v5"
)

// ClaimsValidator applies claim level rules to a signature-verified token.
type ClaimsValidator interface {
	ValidateTokenData(claims jwt.MapClaims) bool
	ExtractUser(claims jwt.MapClaims) (string, error)
}

// AuthnMiddleware requires a token in the Authorization header whose
// signature verifies and whose claims pass cv.
func AuthnMiddleware(v jwtx.Verifier, cv ClaimsValidator) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			raw, ok := bearerToken(r)
			if !ok {
				writeBearerError(w, "missing bearer token")
				return
			}

			claims, err := v.Verify(raw)
			if err != nil {
				log.Warn("jwt verify failed", "err", err)
				writeBearerError(w, "token verification failed")
				return
			}

			if !cv.ValidateTokenData(claims) {
				writeBearerError(w, "token expired or incomplete")
				return
			}

			user, err := cv.ExtractUser(claims)
			if err != nil {
				writeBearerError(w, "invalid token")
				return
			}

			ctx = contextWithUser(ctx, user)
			ctx = slogx.With(ctx, "user", user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	h := r.Header.Get("Authorization")
	scheme, tok, found := strings.Cut(h, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	tok = strings.TrimSpace(tok)
	return tok, tok != ""
}

// RFC 6750 error response for bearer auth.
func writeBearerError(w http.ResponseWriter, desc string) {
	w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token", error_description="`+desc+`"`)
	WriteMessage(w, http.StatusUnauthorized, desc)
}
