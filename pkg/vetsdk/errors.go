package vetsdk

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/benjaminBJ/taller-api-rest/pkg/httpx"
)

// APIError is an error answer of the API. Handlers write it with WriteError
// and the client hands it back from every call.
type APIError struct {
	StatusCode int    `json:"-"`
	Message    string `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("vet api: %d: %s", e.StatusCode, e.Message)
}

func (e *APIError) WriteError(w http.ResponseWriter) {
	httpx.WriteJSON(w, e.StatusCode, ErrorResponse{Message: e.Message})
}

// Is lets errors.Is match on status code alone, so a not-found with any
// message matches ErrNotFound.
func (e *APIError) Is(target error) bool {
	t, ok := target.(*APIError)
	return ok && t.StatusCode == e.StatusCode
}

func NewAPIError(status int, msg string) *APIError {
	return &APIError{StatusCode: status, Message: msg}
}

var (
	ErrInvalidCredentials = &APIError{StatusCode: http.StatusUnauthorized, Message: "invalid credentials"}
	ErrBadRequest         = &APIError{StatusCode: http.StatusBadRequest, Message: "malformed request"}
	ErrNotFound           = &APIError{StatusCode: http.StatusNotFound, Message: "not found"}
	ErrServerError        = &APIError{StatusCode: http.StatusInternalServerError, Message: "internal server error"}
	ErrTooManyRequests    = &APIError{StatusCode: http.StatusTooManyRequests, Message: "too many requests"}
)

// parseErrorResponse turns a non-2xx answer into an *APIError, falling back
// to the status text when the body is not the usual {"message": ...}.
func parseErrorResponse(resp *http.Response, body []byte) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	var er ErrorResponse
	if err := json.Unmarshal(body, &er); err == nil && er.Message != "" {
		return &APIError{StatusCode: resp.StatusCode, Message: er.Message}
	}

	return &APIError{
		StatusCode: resp.StatusCode,
		Message:    fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode)),
	}
}
