package models

import (
	"fmt"
	"time"

	"github.com/desertthunder/spotx/internal/shared"
)

// FlowKind names the grant a credential was obtained with.
type FlowKind string

const (
	FlowClientCredentials FlowKind = "client_credentials"
	FlowAuthorizationCode FlowKind = "authorization_code"
	FlowPKCE              FlowKind = "authorization_code_pkce"
)

// ParseFlowKind resolves a flow name from configuration.
func ParseFlowKind(s string) (FlowKind, error) {
	switch k := FlowKind(s); k {
	case FlowClientCredentials, FlowAuthorizationCode, FlowPKCE:
		return k, nil
	case "pkce":
		return FlowPKCE, nil
	default:
		return "", fmt.Errorf("%w: flow %q", shared.ErrUnrecognizedValue, s)
	}
}

// Session is a stored [AccessCredential] keyed by a profile name, so that a browser consent
// performed once can be reused by later CLI invocations.
type Session struct {
	id         string
	sequence   int
	name       string
	flow       FlowKind
	userID     string
	credential AccessCredential
	createdAt  time.Time
	updatedAt  time.Time
	deletedAt  *time.Time
}

// NewSession creates an unsaved session for the named profile.
func NewSession(sequence int, name string, flow FlowKind, credential AccessCredential) *Session {
	now := time.Now()
	return &Session{
		sequence:   sequence,
		name:       name,
		flow:       flow,
		credential: credential,
		createdAt:  now,
		updatedAt:  now,
	}
}

func (s *Session) ID() string                   { return s.id }
func (s *Session) Sequence() int                { return s.sequence }
func (s *Session) Name() string                 { return s.name }
func (s *Session) Flow() FlowKind               { return s.flow }
func (s *Session) UserID() string               { return s.userID }
func (s *Session) Credential() AccessCredential { return s.credential }
func (s *Session) CreatedAt() time.Time         { return s.createdAt }
func (s *Session) UpdatedAt() time.Time         { return s.updatedAt }
func (s *Session) DeletedAt() *time.Time        { return s.deletedAt }
func (s *Session) IsDeleted() bool              { return s.deletedAt != nil }

func (s *Session) SetID(id string)                  { s.id = id }
func (s *Session) SetSequence(seq int)              { s.sequence = seq }
func (s *Session) SetUserID(id string)              { s.userID = id }
func (s *Session) SetCreatedAt(t time.Time)         { s.createdAt = t }
func (s *Session) SetUpdatedAt(t time.Time)         { s.updatedAt = t }
func (s *Session) SetDeletedAt(t *time.Time)        { s.deletedAt = t }
func (s *Session) SetCredential(c AccessCredential) { s.credential = c }

// Validate checks the fields required for persistence.
func (s *Session) Validate() error {
	if s.name == "" {
		return fmt.Errorf("%w: session name is required", shared.ErrInvalidInput)
	}
	if _, err := ParseFlowKind(string(s.flow)); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrInvalidInput, err)
	}
	if s.credential.AccessToken == "" {
		return fmt.Errorf("%w: access token is required", shared.ErrInvalidInput)
	}
	return nil
}

var _ Model = (*Session)(nil)
