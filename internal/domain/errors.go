package domain

import (
	"errors"
	"fmt"
)

// Error kinds. Match them with errors.Is.
var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("conflict")
	ErrInvalid  = errors.New("invalid")
)

// Error is a business error carrying one of the kinds above and a message
// meant for the caller.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Kind
}

func NewNotFound(msg string) error {
	return &Error{Kind: ErrNotFound, Message: msg}
}

func NewConflict(msg string) error {
	return &Error{Kind: ErrConflict, Message: msg}
}

func NewInvalid(msg string) error {
	return &Error{Kind: ErrInvalid, Message: msg}
}

func NotFoundf(format string, args ...any) error {
	return NewNotFound(fmt.Sprintf(format, args...))
}

func Conflictf(format string, args ...any) error {
	return NewConflict(fmt.Sprintf(format, args...))
}

// IsBusinessError reports whether err carries one of the business kinds.
func IsBusinessError(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, ErrConflict) || errors.Is(err, ErrInvalid)
}
