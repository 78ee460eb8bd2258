package domain

import (
	"errors"
	"fmt"
)

// PlaceholderAPIKey is the sample value shipped in example env files.
const PlaceholderAPIKey = "your-api-key-here"

// ErrMissingAPIKey is wrapped by ConfigurationError when no usable Scorecard
// credential is configured.
var ErrMissingAPIKey = errors.New("COLLEGE_SCORECARD_API_KEY is not set. Get a free key at https://api.data.gov/signup/")

// ConfigurationError reports a setup problem detected before any network call.
// It is never worth retrying.
type ConfigurationError struct {
	Err error
}

func (e *ConfigurationError) Error() string { return e.Err.Error() }

func (e *ConfigurationError) Unwrap() error { return e.Err }

// UpstreamError reports a non-success status from the Scorecard API.
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("API error: %d", e.StatusCode)
}

// ValidateAPIKey returns a ConfigurationError for an empty or placeholder key.
func ValidateAPIKey(key string) error {
	if key == "" || key == PlaceholderAPIKey {
		return &ConfigurationError{Err: ErrMissingAPIKey}
	}
	return nil
}
