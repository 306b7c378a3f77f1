package apperr

import (
	"errors"
	"fmt"
)

// Codes callers of the data layer can branch on.
const (
	CodeNetworkFailure   = "network_failure"
	CodeNotAuthenticated = "not_authenticated"
	CodeAlreadySaved     = "already_saved"
	CodeNotFound         = "not_found"
)

// Error standardizes failures crossing package boundaries. Remote clients
// wrap transport errors but keep the upstream message intact.
type Error struct {
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Helpers
func NetworkFailure(msg string, err error) *Error {
	return &Error{Code: CodeNetworkFailure, Message: msg, Err: err}
}
func NotAuthenticated(msg string) *Error {
	return &Error{Code: CodeNotAuthenticated, Message: msg}
}
func AlreadySaved(msg string) *Error {
	return &Error{Code: CodeAlreadySaved, Message: msg}
}
func NotFound(msg string, err error) *Error {
	return &Error{Code: CodeNotFound, Message: msg, Err: err}
}

// Is compares target code regardless of wrapped error.
func Is(err error, code string) bool {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Code == code
	}
	return false
}
