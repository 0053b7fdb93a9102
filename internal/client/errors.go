package client

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/xavierca1/lead-intake/internal/entity"
)

var (
	// ErrNetwork wraps transport failures: the service was never reached or
	// the response could not be read.
	ErrNetwork = errors.New("network error")

	ErrUnauthorized = errors.New("invalid credentials")
	ErrNotLoggedIn  = errors.New("not logged in")
)

// StatusError is a non-2xx answer from the lead service.
type StatusError struct {
	Method  string
	Code    int
	Message string
	Fields  []string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s: %d %s", e.Method, e.Code, http.StatusText(e.Code))
	}
	return fmt.Sprintf("%s: %d %s", e.Method, e.Code, e.Message)
}

func (e *StatusError) Unwrap() error {
	switch {
	case e.Code == http.StatusNotFound:
		return entity.ErrLeadNotFound
	case e.Code == http.StatusUnauthorized:
		return ErrUnauthorized
	case e.Code == http.StatusBadRequest && e.Method == http.MethodPatch:
		return entity.ErrInvalidID
	case e.Code == http.StatusBadRequest && e.Method == http.MethodPost:
		return entity.ErrValidation
	}
	return nil
}
