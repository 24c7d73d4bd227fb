package models

import (
	"fmt"

	"github.com/desertthunder/spotx/internal/shared"
)

// Error is the decoded body of a non-success API response.
type Error struct {
	Status  int
	Message string
}

func (e Error) Error() string {
	return fmt.Sprintf("spotify API error: status %d: %s", e.Status, e.Message)
}

// Unwrap lets callers match any API error with errors.Is(err, shared.ErrAPIRequest).
func (e Error) Unwrap() error { return shared.ErrAPIRequest }
