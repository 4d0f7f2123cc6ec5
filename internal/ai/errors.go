package ai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	// ErrNonJSONOutput means the model text could not be parsed after fence stripping.
	ErrNonJSONOutput = errors.New("ai returned non-JSON output")
	// ErrSchemaValidation means parsed output does not have the shape a caller requires.
	ErrSchemaValidation = errors.New("ai output did not match schema")
	// ErrUpstream means the text-generation provider itself failed.
	ErrUpstream = errors.New("ai upstream failure")
	// ErrNotConfigured means no text generator is available, e.g. no API key was set.
	ErrNotConfigured = errors.New("text generator is not configured")
)

// UpstreamKind classifies provider failures for callers that map them to responses.
type UpstreamKind string

const (
	UpstreamUnknown   UpstreamKind = "unknown"
	UpstreamRateLimit UpstreamKind = "rate_limit"
	UpstreamAuth      UpstreamKind = "auth"
	UpstreamForbidden UpstreamKind = "forbidden"
	UpstreamTimeout   UpstreamKind = "timeout"
)

// UpstreamError wraps a provider failure. errors.Is(err, ErrUpstream) is true for it.
type UpstreamError struct {
	Provider   string
	Kind       UpstreamKind
	StatusCode int
	Err        error
}

func (e *UpstreamError) Error() string {
	provider := e.Provider
	if provider == "" {
		provider = "ai"
	}
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s upstream %s (status %d): %v", provider, e.Kind, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s upstream %s: %v", provider, e.Kind, e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

func (e *UpstreamError) Is(target error) bool { return target == ErrUpstream }

// NewUpstreamError classifies err using the HTTP status reported by the provider
// (0 when unknown), its message and context expiry.
func NewUpstreamError(provider string, status int, err error) *UpstreamError {
	return &UpstreamError{
		Provider:   provider,
		Kind:       Classify(status, err),
		StatusCode: status,
		Err:        err,
	}
}

// Classify derives an UpstreamKind from a status code and error text.
func Classify(status int, err error) UpstreamKind {
	if errors.Is(err, context.DeadlineExceeded) {
		return UpstreamTimeout
	}

	switch status {
	case http.StatusTooManyRequests:
		return UpstreamRateLimit
	case http.StatusUnauthorized:
		return UpstreamAuth
	case http.StatusForbidden:
		return UpstreamForbidden
	case http.StatusGatewayTimeout, http.StatusRequestTimeout:
		return UpstreamTimeout
	}

	if err == nil {
		return UpstreamUnknown
	}

	lower := strings.ToLower(err.Error())
	switch {
	case strings.Contains(lower, "quota"),
		strings.Contains(lower, "rate limit"),
		strings.Contains(lower, "resource has been exhausted"),
		strings.Contains(lower, "resource_exhausted"):
		return UpstreamRateLimit
	case strings.Contains(lower, "invalid api key"),
		strings.Contains(lower, "api key not valid"),
		strings.Contains(lower, "api_key_invalid"):
		return UpstreamAuth
	}

	return UpstreamUnknown
}

// UpstreamKindOf returns the kind of the first UpstreamError in err's chain.
func UpstreamKindOf(err error) (UpstreamKind, bool) {
	var upstream *UpstreamError
	if errors.As(err, &upstream) {
		return upstream.Kind, true
	}
	return "", false
}
