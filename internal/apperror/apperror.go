package apperror

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrValidation    = errors.New("validation error")
	ErrConflict      = errors.New("conflict")
	ErrNetwork       = errors.New("upstream unreachable")
	ErrParse         = errors.New("unexpected upstream response")
	ErrNoContestData = errors.New("no contest data")
	ErrDuplicateKey  = errors.New("duplicate key")
)

type AppError struct {
	Err      error  // one of the sentinel kinds above
	Message  string // human-readable
	Field    string // set for validation failures
	Platform string // set for adapter failures
	Cause    error  // underlying error, if any
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() []error {
	if e.Cause != nil {
		return []error{e.Err, e.Cause}
	}
	return []error{e.Err}
}

func NotFound(resource, id string) *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Message: fmt.Sprintf("%s not found with id %s", resource, id),
	}
}

func ValidationFailed(field, message string) *AppError {
	return &AppError{
		Err:     ErrValidation,
		Message: message,
		Field:   field,
	}
}

func Conflict(resource, id string) *AppError {
	return &AppError{
		Err:     ErrConflict,
		Message: fmt.Sprintf("%s conflict with id %s", resource, id),
	}
}

// Network reports an unreachable or timed out upstream.
func Network(platform string, cause error) *AppError {
	return &AppError{
		Err:      ErrNetwork,
		Message:  fmt.Sprintf("%s: request failed", platform),
		Platform: platform,
		Cause:    cause,
	}
}

// Parse reports an upstream response whose shape changed.
func Parse(platform, message string, cause error) *AppError {
	return &AppError{
		Err:      ErrParse,
		Message:  fmt.Sprintf("%s: %s", platform, message),
		Platform: platform,
		Cause:    cause,
	}
}

func UserNotFound(platform, handle string) *AppError {
	return &AppError{
		Err:      ErrNotFound,
		Message:  fmt.Sprintf("%s: user %q not found", platform, handle),
		Platform: platform,
	}
}

func NoContestData(platform, handle string) *AppError {
	return &AppError{
		Err:      ErrNoContestData,
		Message:  fmt.Sprintf("%s: user %q has no contest data", platform, handle),
		Platform: platform,
	}
}

func DuplicateKey(resource, key string, cause error) *AppError {
	return &AppError{
		Err:     ErrDuplicateKey,
		Message: fmt.Sprintf("%s already exists with key %s", resource, key),
		Cause:   cause,
	}
}
