package apierr

import (
	"fmt"
	"net/http"
)

// Error carries the HTTP status and machine code for a failed operation.
// Services build these; the HTTP layer unwraps them with errors.As.
type Error struct {
	Status int
	Code   string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Code != "" {
		return e.Code
	}
	if e.Status != 0 {
		return fmt.Sprintf("api error (%d)", e.Status)
	}
	return "api error"
}

func (e *Error) Unwrap() error { return e.Err }

func New(status int, code string, err error) *Error {
	return &Error{Status: status, Code: code, Err: err}
}

// Validation is malformed or out-of-range caller input.
func Validation(err error) *Error {
	return New(http.StatusBadRequest, "validation_failed", err)
}

// NotFound is a referenced id that does not exist.
func NotFound(code string, err error) *Error {
	if code == "" {
		code = "not_found"
	}
	return New(http.StatusNotFound, code, err)
}

// Conflict is a uniqueness or state violation on add.
func Conflict(code string, err error) *Error {
	if code == "" {
		code = "conflict"
	}
	return New(http.StatusConflict, code, err)
}

// Forbidden is a mutation attempted by a non-owner.
func Forbidden(err error) *Error {
	return New(http.StatusForbidden, "forbidden", err)
}
