package services

import (
	"context"

	"github.com/desertthunder/spotx/internal/models"
)

// GetTrack retrieves a single track by ID. Supports [Market].
func (s *SpotifyService) GetTrack(ctx context.Context, id string, opts ...RequestOption) (*models.Track, error) {
	if err := requireID("id", id); err != nil {
		return nil, err
	}
	o := processOptions(opts...)

	w, err := get[trackJSON](ctx, s, apiPath("tracks", id), o.query("market"))
	if err != nil {
		return nil, err
	}
	track := trackFromJSON(w)
	return &track, nil
}

// GetTracks retrieves multiple tracks by their IDs (up to 50). Unknown IDs are omitted. Supports [Market].
func (s *SpotifyService) GetTracks(ctx context.Context, ids []string, opts ...RequestOption) ([]models.Track, error) {
	if err := validateIDs("ids", ids, maxBatchIDs); err != nil {
		return nil, err
	}
	o := processOptions(opts...)

	response, err := get[tracksEnvelope](ctx, s, "/tracks", idsQuery(ids, o.query("market")))
	if err != nil {
		return nil, err
	}
	return mapPresent(response.Tracks, trackFromJSON), nil
}

// GetAudioFeatures retrieves the audio features of a track.
func (s *SpotifyService) GetAudioFeatures(ctx context.Context, id string) (*models.AudioFeatures, error) {
	if err := requireID("id", id); err != nil {
		return nil, err
	}

	w, err := get[audioFeaturesJSON](ctx, s, apiPath("audio-features", id), nil)
	if err != nil {
		return nil, err
	}
	features := audioFeaturesFromJSON(w)
	return &features, nil
}

// GetAudioFeaturesMultiple retrieves audio features for up to 100 tracks. Unknown IDs are omitted.
func (s *SpotifyService) GetAudioFeaturesMultiple(ctx context.Context, ids []string) ([]models.AudioFeatures, error) {
	if err := validateIDs("ids", ids, maxAudioFeatureIDs); err != nil {
		return nil, err
	}

	response, err := get[audioFeaturesEnvelope](ctx, s, "/audio-features", idsQuery(ids, nil))
	if err != nil {
		return nil, err
	}
	return mapPresent(response.AudioFeatures, audioFeaturesFromJSON), nil
}

// GetAudioAnalysis retrieves the low level audio analysis of a track.
func (s *SpotifyService) GetAudioAnalysis(ctx context.Context, id string) (*models.AudioAnalysis, error) {
	if err := requireID("id", id); err != nil {
		return nil, err
	}

	w, err := get[audioAnalysisJSON](ctx, s, apiPath("audio-analysis", id), nil)
	if err != nil {
		return nil, err
	}
	analysis := audioAnalysisFromJSON(w)
	return &analysis, nil
}
