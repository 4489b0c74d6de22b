package services

import (
	"errors"
	"fmt"
)

// Error taxonomy shared by every service. Handlers match these with
// errors.Is to pick the HTTP status; the wrapped message is user-facing.
var (
	ErrNotFound          = errors.New("not found")
	ErrInvalidRequest    = errors.New("invalid request")
	ErrInsufficientStock = errors.New("insufficient stock")
)

// ServiceError attaches a user-facing French message to one of the sentinel
// errors above.
type ServiceError struct {
	Err     error
	Message string
}

func (e *ServiceError) Error() string { return e.Message }

func (e *ServiceError) Unwrap() error { return e.Err }

func fail(sentinel error, format string, args ...interface{}) error {
	return &ServiceError{Err: sentinel, Message: fmt.Sprintf(format, args...)}
}

// UserMessage extracts the user-facing message from a service error, or
// returns a generic server error message.
func UserMessage(err error) string {
	var se *ServiceError
	if errors.As(err, &se) {
		return se.Message
	}
	return "Erreur serveur"
}
