package rest

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/you/estately/domain"
)

// errorBody is the error envelope the API uses when it has one.
type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// mapStatus translates an HTTP failure into the domain error taxonomy. The
// server's own message, when present, is carried as wrapping context so the
// sentinel stays matchable with errors.Is.
func mapStatus(status int, body []byte) error {
	var sentinel error
	switch status {
	case http.StatusBadRequest:
		sentinel = domain.ErrBadRequest
	case http.StatusUnauthorized:
		sentinel = domain.ErrAuthFailed
	case http.StatusForbidden:
		sentinel = domain.ErrForbidden
	case http.StatusConflict:
		sentinel = domain.ErrEmailTaken
	case http.StatusUnprocessableEntity:
		sentinel = domain.ErrPhoneNotVerified
	default:
		sentinel = fmt.Errorf("unexpected status %d", status)
	}

	if msg := serverMessage(body); msg != "" {
		return fmt.Errorf("%w: %s", sentinel, msg)
	}
	return sentinel
}

func serverMessage(body []byte) string {
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err != nil {
		return ""
	}
	if eb.Message != "" {
		return eb.Message
	}
	return eb.Error
}
