package service

import (
	"errors"
	"fmt"
)

// Kind classifies a user-facing service failure.
type Kind int

const (
	KindNotFound Kind = iota
	KindValidation
	KindConflict
	KindUnauthorized
)

// Error carries a failure kind plus a message handlers can surface directly.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func notFoundf(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func validationf(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func conflictf(format string, args ...any) *Error {
	return &Error{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

// Unauthorizedf builds the failure returned when the acting user may not
// perform the request. Exported because authorization is decided at the HTTP
// layer, not inside the services.
func Unauthorizedf(format string, args ...any) *Error {
	return &Error{Kind: KindUnauthorized, Message: fmt.Sprintf(format, args...)}
}

func kindOf(err error) (Kind, bool) {
	var serviceErr *Error
	if errors.As(err, &serviceErr) {
		return serviceErr.Kind, true
	}
	return 0, false
}

// IsNotFound reports whether err is a service failure for an unknown entity.
func IsNotFound(err error) bool {
	kind, ok := kindOf(err)
	return ok && kind == KindNotFound
}

// IsValidation reports whether err is a failed field validation.
func IsValidation(err error) bool {
	kind, ok := kindOf(err)
	return ok && kind == KindValidation
}

// IsConflict reports whether err is a uniqueness or membership conflict.
func IsConflict(err error) bool {
	kind, ok := kindOf(err)
	return ok && kind == KindConflict
}

// IsUnauthorized reports whether err is an authorization failure.
func IsUnauthorized(err error) bool {
	kind, ok := kindOf(err)
	return ok && kind == KindUnauthorized
}
