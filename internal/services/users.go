package services

import (
	"context"

	"github.com/desertthunder/spotx/internal/models"
)

// GetCurrentUserProfile retrieves the current authenticated user's profile.
func (s *SpotifyService) GetCurrentUserProfile(ctx context.Context) (*models.PrivateUser, error) {
	w, err := get[privateUserJSON](ctx, s, "/me", nil)
	if err != nil {
		return nil, err
	}
	user := privateUserFromJSON(w)
	return &user, nil
}

// GetUserProfile retrieves a user's public profile.
func (s *SpotifyService) GetUserProfile(ctx context.Context, userID string) (*models.PublicUser, error) {
	if err := requireID("user_id", userID); err != nil {
		return nil, err
	}

	w, err := get[publicUserJSON](ctx, s, apiPath("users", userID), nil)
	if err != nil {
		return nil, err
	}
	user := publicUserFromJSON(w)
	return &user, nil
}
