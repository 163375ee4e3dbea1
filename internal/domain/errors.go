package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for the job aggregation core.
var (
	// ErrTransport covers network failures, timeouts and non-2xx responses.
	ErrTransport = errors.New("transport failure")

	// ErrDataShape marks a successful response with an unexpected structure.
	ErrDataShape = errors.New("unexpected response shape")

	// ErrStore wraps failures of the persistent store.
	ErrStore = errors.New("persistent store failure")

	// ErrJobNotFound indicates the store holds no job with the given id.
	ErrJobNotFound = errors.New("job not found")

	// ErrValidation marks a request rejected before reaching the core.
	ErrValidation = errors.New("invalid request")
)

// FetchError is returned once the external fetcher gives up.
type FetchError struct {
	// Provider is the provider name (e.g. "jobfeed").
	Provider string

	// Attempts is how many attempts were made.
	Attempts int

	// Err is the last observed error.
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("%s fetch failed after %d attempt(s): %v", e.Provider, e.Attempts, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// ValidationError describes a rejected request field.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Msg
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Msg)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// IsTransport returns true if err is a retryable transport failure.
func IsTransport(err error) bool {
	return errors.Is(err, ErrTransport)
}

// IsDataShape returns true if err comes from an unexpected response body.
func IsDataShape(err error) bool {
	return errors.Is(err, ErrDataShape)
}

// IsStore returns true if err comes from the persistent store.
func IsStore(err error) bool {
	return errors.Is(err, ErrStore)
}

// IsNotFound returns true if no job matched.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrJobNotFound)
}

// IsValidation returns true if the request was rejected by validation.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}
