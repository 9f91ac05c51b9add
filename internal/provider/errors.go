// File: internal/provider/errors.go
package provider

import (
	"errors"
	"fmt"
)

// ErrorKind classifies provider failures into the categories the application
// branches on. Callers must switch on kinds, never on error message text.
type ErrorKind string

const (
	KindInvalidCredentials ErrorKind = "invalid_credentials"
	KindUserAlreadyExists  ErrorKind = "user_already_exists"
	KindUserNotFound       ErrorKind = "user_not_found"
	KindSessionNotFound    ErrorKind = "session_not_found"
	KindSessionConflict    ErrorKind = "session_conflict"
	KindRateLimited        ErrorKind = "rate_limited"
	KindInvalidToken       ErrorKind = "invalid_token"
	KindUnavailable        ErrorKind = "unavailable"
	KindInternal           ErrorKind = "internal"
	KindUnknown            ErrorKind = "unknown"
)

// Error is a classified failure returned by the provider boundary.
type Error struct {
	Kind       ErrorKind
	StatusCode int
	// ProviderType is the provider's machine-readable error code, kept for
	// diagnostics. It is never shown to end users.
	ProviderType string
	Message      string
	cause        error
}

func (e *Error) Error() string {
	if e.ProviderType != "" {
		return fmt.Sprintf("provider: %s (%s): %s", e.Kind, e.ProviderType, e.Message)
	}
	return fmt.Sprintf("provider: %s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.cause
}

// newError wraps a transport-level failure with a kind.
func newError(kind ErrorKind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, cause: cause}
}

// Kind extracts the ErrorKind from err, or KindUnknown when err did not
// originate at the provider boundary.
func Kind(err error) ErrorKind {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Kind
	}
	return KindUnknown
}

// IsKind reports whether err is a provider error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	return Kind(err) == kind
}

// kindForResponse maps the provider's machine error code and HTTP status to a
// kind. Unrecognized 5xx responses collapse to KindInternal so transient
// provider trouble is distinguishable from caller mistakes.
func kindForResponse(statusCode int, providerType string) ErrorKind {
	switch providerType {
	case "user_invalid_credentials", "user_password_mismatch":
		return KindInvalidCredentials
	case "user_already_exists", "user_email_already_exists":
		return KindUserAlreadyExists
	case "user_not_found":
		return KindUserNotFound
	case "user_session_not_found", "general_unauthorized_scope":
		return KindSessionNotFound
	case "user_session_already_exists":
		return KindSessionConflict
	case "general_rate_limit_exceeded":
		return KindRateLimited
	case "user_invalid_token", "user_token_expired":
		return KindInvalidToken
	}
	if statusCode == 429 {
		return KindRateLimited
	}
	if statusCode == 401 {
		return KindSessionNotFound
	}
	if statusCode >= 500 {
		return KindInternal
	}
	return KindUnknown
}
