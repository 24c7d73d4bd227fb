package models

import (
	"slices"
	"time"
)

// AccessCredential is the token a client holds for a session.
//
// It is replaced, never mutated, when the token is refreshed.
type AccessCredential struct {
	AccessToken  string
	TokenType    string
	ExpiresIn    time.Duration
	ExpiresAt    time.Time
	RefreshToken string // empty for client credentials
	Scopes       []string
}

// Expired reports whether the token is past its expiry at now. A zero ExpiresAt never expires.
func (c AccessCredential) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && !now.Before(c.ExpiresAt)
}

// CanRefresh reports whether a refresh token was issued.
func (c AccessCredential) CanRefresh() bool { return c.RefreshToken != "" }

// HasScope reports whether scope was granted.
func (c AccessCredential) HasScope(scope string) bool {
	return slices.Contains(c.Scopes, scope)
}
