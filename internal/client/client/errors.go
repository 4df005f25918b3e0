package client

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrUnavailable marks transport-level failures: the request never got
	// an HTTP response.
	ErrUnavailable = errors.New("server unavailable")

	// ErrBadStatus matches every *StatusError.
	ErrBadStatus = errors.New("unexpected status")

	// ErrNotFound matches a *StatusError carrying 404.
	ErrNotFound = errors.New("not found")
)

// StatusError is a non-2xx HTTP response.
type StatusError struct {
	Code    int
	Status  string // reason phrase, e.g. "Not Found"
	Message string // backend-provided {"error": ...} text, if any
	Op      string
}

func (e *StatusError) Error() string {
	msg := e.Status
	if msg == "" {
		msg = fmt.Sprintf("status %d", e.Code)
	}
	if e.Message != "" {
		msg = msg + " (" + e.Message + ")"
	}
	if e.Op != "" {
		return e.Op + ": " + msg
	}
	return msg
}

func (e *StatusError) Is(target error) bool {
	switch target {
	case ErrBadStatus:
		return true
	case ErrNotFound:
		return e.Code == http.StatusNotFound
	}
	return false
}
