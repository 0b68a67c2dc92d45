package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/benjaminBJ/taller-api-rest/internal/vet/service"
	"github.com/benjaminBJ/taller-api-rest/internal/vet/store"
	"github.com/benjaminBJ/taller-api-rest/pkg/slogx"
	"github.com/benjaminBJ/taller-api-rest/pkg/vetsdk"
)

// writeError maps service and store errors onto API answers. what names the
// resource in not-found messages.
func writeError(w http.ResponseWriter, r *http.Request, err error, what string) {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		msg := strings.TrimPrefix(err.Error(), service.ErrInvalidInput.Error()+": ")
		vetsdk.NewAPIError(http.StatusBadRequest, msg).WriteError(w)
	case errors.Is(err, store.ErrInvalidReference):
		vetsdk.NewAPIError(http.StatusBadRequest, "referenced record does not exist").WriteError(w)
	case errors.Is(err, store.ErrNotFound):
		vetsdk.NewAPIError(http.StatusNotFound, what+" not found").WriteError(w)
	default:
		slogx.FromContext(r.Context()).Error("request failed", "error", err, "path", r.URL.Path)
		vetsdk.ErrServerError.WriteError(w)
	}
}

// pathID parses the {id} wildcard. It writes a 400 and returns false when
// the value is not a positive integer.
func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		vetsdk.NewAPIError(http.StatusBadRequest, "id must be a positive integer").WriteError(w)
		return 0, false
	}
	return id, true
}
