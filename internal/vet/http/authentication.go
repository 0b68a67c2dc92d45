package http

import (
	"net/http"

	"github.com/benjaminBJ/taller-api-rest/internal/vet/service"
	"github.com/benjaminBJ/taller-api-rest/pkg/httpx"
	"github.com/benjaminBJ/taller-api-rest/pkg/slogx"
	"github.com/benjaminBJ/taller-api-rest/pkg/vetsdk"
)

type AuthenticationHandler struct {
	TokenService *service.TokenService
}

// ServeHTTP handles GET /v1/auth/authentication
//
//	@Summary		Authenticate
//	@Description	Checks a user name and password and issues an access token and a refresh token.
//	@Description	Both are HS256 JWTs carrying the user name in the "user" claim.
//	@Tags			Auth
//	@Produce		json
//	@Param			user		query		string					true	"User name"
//	@Param			password	query		string					true	"Password"
//	@Success		200			{object}	vetsdk.TokenResponse	"token pair"
//	@Failure		401			{object}	vetsdk.ErrorResponse	"message"
//	@Failure		429			{object}	vetsdk.ErrorResponse	"message"
//	@Failure		500			{object}	vetsdk.ErrorResponse	"message"
//	@Router			/v1/auth/authentication [get].
func (h *AuthenticationHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	q := r.URL.Query()
	user := q.Get("user")
	if !service.CheckCredentials(user, q.Get("password")) {
		log.Info("authentication failed", "user", user)
		vetsdk.ErrInvalidCredentials.WriteError(w)
		return
	}

	pair, err := h.TokenService.Issue(user)
	if err != nil {
		log.Error("failed to issue tokens", "error", err)
		vetsdk.ErrServerError.WriteError(w)
		return
	}

	log.Info("tokens issued", "user", user)
	httpx.WriteJSON(w, http.StatusOK, vetsdk.TokenResponse{
		AccessToken:      pair.AccessToken,
		ExpiresAt:        pair.ExpiresAt,
		RefreshToken:     pair.RefreshToken,
		RefreshExpiresAt: pair.RefreshExpiresAt,
		TokenType:        pair.TokenType,
	})
}
