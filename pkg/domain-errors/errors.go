// Package domainerrors defines coded errors for failures that cross the
// service boundary. Handlers translate codes into HTTP status and a JSON
// body; services and stores never write HTTP responses themselves.
package domainerrors

import "net/http"

// Code identifies a failure class. Codes are stable; messages are not.
type Code string

const (
	CodeInvalidInput  Code = "invalid_input"
	CodeNotReady      Code = "service_not_ready"
	CodeMisconfigured Code = "misconfigured_day_table"
	CodeBusy          Code = "service_busy"
	CodeInternal      Code = "internal_error"
)

// Error is a coded error with a human-readable message. The message is
// user-visible for every code except CodeInternal.
type Error struct {
	Code    Code
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return string(e.Code) + ": " + e.Message + ": " + e.cause.Error()
	}
	return string(e.Code) + ": " + e.Message
}

func (e *Error) Unwrap() error { return e.cause }

// New builds a coded error without a cause.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Wrap builds a coded error preserving the underlying cause for errors.Is/As.
func Wrap(code Code, message string, cause error) *Error {
	return &Error{Code: code, Message: message, cause: cause}
}

// ToHTTPStatus maps a code to its HTTP status.
func ToHTTPStatus(code Code) int {
	switch code {
	case CodeInvalidInput:
		return http.StatusBadRequest
	case CodeNotReady, CodeBusy:
		return http.StatusServiceUnavailable
	case CodeMisconfigured, CodeInternal:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
