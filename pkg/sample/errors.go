package sample

import (
	"errors"
	"fmt"
)

// ErrorCode classifies why a metric is unavailable.
type ErrorCode string

const (
	ErrCodeReadFailed        ErrorCode = "read_failed"
	ErrCodeCounterRegression ErrorCode = "counter_regression"
	ErrCodeMissingDevice     ErrorCode = "missing_device"
	ErrCodeNoData            ErrorCode = "no_data"
	ErrCodeInterrupted       ErrorCode = "interrupted"
)

// Error is the reason attached to an unavailable Result.
type Error struct {
	Code    ErrorCode
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: [%s] %s: %v", e.Kind, e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: [%s] %s", e.Kind, e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches any *Error with the same code, so the sentinels below work
// with errors.Is regardless of Kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

func newError(code ErrorCode, kind Kind, message string, cause error) *Error {
	return &Error{Code: code, Kind: kind, Message: message, Cause: cause}
}

// Sentinels for errors.Is.
var (
	ErrReadFailed        = &Error{Code: ErrCodeReadFailed, Message: "collaborator read failed"}
	ErrCounterRegression = &Error{Code: ErrCodeCounterRegression, Message: "counter decreased between reads"}
	ErrMissingDevice     = &Error{Code: ErrCodeMissingDevice, Message: "device not reported"}
	ErrNoData            = &Error{Code: ErrCodeNoData, Message: "no data"}
	ErrInterrupted       = &Error{Code: ErrCodeInterrupted, Message: "wait interrupted"}
)

// CodeOf returns the ErrorCode carried by err, or "" if err is not an *Error.
func CodeOf(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}
