package services

import (
	"strings"

	"github.com/samber/lo"
)

// Documented bounds.
const (
	maxPageLimit            = 50
	maxPlaylistItemsLimit   = 100
	maxRecommendationsLimit = 100
	maxSearchOffset         = 2000
	maxRecommendationSeeds  = 5
	maxAlbumIDs             = 20
	maxBatchIDs             = 50
	maxAudioFeatureIDs      = 100
	maxPlaylistFollowerIDs  = 5
)

func requireID(field, id string) error {
	if strings.TrimSpace(id) == "" {
		return invalid(field, "must not be empty")
	}
	return nil
}

// validateIDs requires between 1 and ceiling non-blank ids.
func validateIDs(field string, ids []string, ceiling int) error {
	if len(ids) == 0 {
		return invalid(field, "at least one id is required")
	}
	if len(ids) > ceiling {
		return invalid(field, "%d ids given, at most %d allowed", len(ids), ceiling)
	}
	if lo.ContainsBy(ids, func(id string) bool { return strings.TrimSpace(id) == "" }) {
		return invalid(field, "ids must not be empty")
	}
	return nil
}

func validateRange(field string, v, floor, ceiling int) error {
	if v < floor || v > ceiling {
		return invalid(field, "%d is outside [%d, %d]", v, floor, ceiling)
	}
	return nil
}

// validateEnum requires every value to be one of allowed.
func validateEnum[T ~string](field string, allowed []T, values ...T) error {
	for _, v := range values {
		if !lo.Contains(allowed, v) {
			return invalid(field, "%q is not one of %v", v, allowed)
		}
	}
	return nil
}

// joinIDs builds the comma separated ids parameter.
func joinIDs(ids []string) string {
	return strings.Join(ids, ",")
}
