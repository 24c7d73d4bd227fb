package services

import (
	"errors"
	"fmt"

	"github.com/desertthunder/spotx/internal/shared"
	"golang.org/x/oauth2"
)

// ValidationError is a local precondition failure. It is returned before any request is built.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return shared.ErrInvalidArgument }

func invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// AuthError is a failure to obtain or refresh a token from the accounts service.
//
// Code and Description carry the provider's "error" and "error_description" fields when the
// token endpoint returned them. StatusCode is zero when no response was received.
type AuthError struct {
	StatusCode  int
	Code        string
	Description string
	Err         error
}

func (e *AuthError) Error() string {
	switch {
	case e.Code != "" && e.Description != "":
		return fmt.Sprintf("authentication failed: %s: %s (status %d)", e.Code, e.Description, e.StatusCode)
	case e.Code != "":
		return fmt.Sprintf("authentication failed: %s (status %d)", e.Code, e.StatusCode)
	case e.Err != nil:
		return fmt.Sprintf("authentication failed: %v", e.Err)
	default:
		return "authentication failed"
	}
}

// Unwrap matches both [shared.ErrAuthFailed] and the underlying cause.
func (e *AuthError) Unwrap() []error {
	if e.Err == nil {
		return []error{shared.ErrAuthFailed}
	}
	return []error{shared.ErrAuthFailed, e.Err}
}

// newAuthError extracts the provider error fields from an [oauth2.RetrieveError].
func newAuthError(err error) *AuthError {
	var ae *AuthError
	if errors.As(err, &ae) {
		return ae
	}

	authErr := &AuthError{Err: err}

	var re *oauth2.RetrieveError
	if errors.As(err, &re) {
		authErr.Code = re.ErrorCode
		authErr.Description = re.ErrorDescription
		if re.Response != nil {
			authErr.StatusCode = re.Response.StatusCode
		}
	}
	return authErr
}
