package nutrition

import (
	"errors"
	"fmt"
)

// Client input errors.
var (
	ErrInvalidBody = errors.New("invalid request body")
	ErrMissingFood = errors.New("missing food field")
	ErrEmptyFood   = errors.New("food is empty")
	ErrFoodTooLong = errors.New("food is too long")
)

var (
	// ErrUpstreamFormat indicates the completion text was not a JSON object.
	ErrUpstreamFormat = errors.New("model did not return valid json")
	// ErrNotConfigured is matched by every ConfigError.
	ErrNotConfigured = errors.New("completion credential not configured")
)

// UpstreamFormatError carries the raw completion text for diagnostics.
type UpstreamFormatError struct {
	Raw   string
	Cause error
}

func (e *UpstreamFormatError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%v: %v", ErrUpstreamFormat, e.Cause)
	}
	return ErrUpstreamFormat.Error()
}

func (e *UpstreamFormatError) Unwrap() error { return ErrUpstreamFormat }

// ConfigError reports a missing credential. Name is the environment variable.
type ConfigError struct {
	Name string
}

func (e *ConfigError) Error() string { return e.Name + " is not set on the server." }

func (e *ConfigError) Unwrap() error { return ErrNotConfigured }

// IsClientError reports whether err is a request validation failure.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidBody) ||
		errors.Is(err, ErrMissingFood) ||
		errors.Is(err, ErrEmptyFood) ||
		errors.Is(err, ErrFoodTooLong)
}

// Message returns the fixed user-facing text for a pipeline error.
func Message(err error) string {
	var cfgErr *ConfigError
	switch {
	case errors.Is(err, ErrInvalidBody):
		return "Invalid JSON body."
	case errors.Is(err, ErrMissingFood):
		return "Missing 'food' (string)."
	case errors.Is(err, ErrEmptyFood):
		return "'food' must not be empty."
	case errors.Is(err, ErrFoodTooLong):
		return "'food' is too long."
	case errors.Is(err, ErrUpstreamFormat):
		return "Model did not return valid JSON."
	case errors.As(err, &cfgErr):
		return cfgErr.Error()
	default:
		return "Server error while analyzing."
	}
}
