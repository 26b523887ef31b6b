package errors

import "fmt"

// UserError is the error interface exposed to API consumers. Errors that do
// not implement it are reported as opaque internal errors.
type UserError interface {
	error

	// Status is the HTTP status code to respond with.
	Status() int
	// Code is a machine-readable error code.
	Code() string
	// Message is a human-readable error message.
	Message() string
}

// userError implements UserError, optionally wrapping a causing error.
type userError struct {
	err     error
	status  int
	code    string
	message string
}

// Error implements error.
func (e *userError) Error() string {
	return fmt.Sprintf("[%d] (%s) %s", e.status, e.code, e.message)
}

// Status implements UserError.
func (e *userError) Status() int {
	return e.status
}

// Code implements UserError.
func (e *userError) Code() string {
	return e.code
}

// Message implements UserError.
func (e *userError) Message() string {
	return e.message
}

// NewUserError creates a new UserError wrapping the provided error (which
// can be nil).
func NewUserError(
	err error,
	status int,
	code string,
	message string,
) UserError {
	return &userError{err, status, code, message}
}

// NewUserErrorf creates a new UserError from a format string.
func NewUserErrorf(
	err error,
	status int,
	code string,
	format string,
	args ...interface{},
) UserError {
	return &userError{err, status, code, fmt.Sprintf(format, args...)}
}

// ExtractUserError walks the error annotations and returns the first
// UserError found, or nil if there is none.
func ExtractUserError(
	err error,
) UserError {
	for err != nil {
		switch e := err.(type) {
		case *traced:
			err = e.err
		case UserError:
			return e
		default:
			return nil
		}
	}
	return nil
}

// ConcreteUserError is the concrete representation of a UserError as it is
// serialized in API responses.
type ConcreteUserError struct {
	ErrStatus  int    `json:"status"`
	ErrCode    string `json:"code"`
	ErrMessage string `json:"message"`
}

// Build constructs a ConcreteUserError from a UserError.
func Build(
	e UserError,
) *ConcreteUserError {
	return &ConcreteUserError{
		ErrStatus:  e.Status(),
		ErrCode:    e.Code(),
		ErrMessage: e.Message(),
	}
}
