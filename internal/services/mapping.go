package services

import (
	"time"

	"github.com/desertthunder/spotx/internal/models"
	"github.com/samber/lo"
)

// Mappings from wire shapes to [models] types. All are total and keep slice order.

func deref[T any](p *T) T {
	if p == nil {
		var zero T
		return zero
	}
	return *p
}

func millis(ms int) time.Duration { return time.Duration(ms) * time.Millisecond }

// pagingFromJSON converts the items of a page and carries every navigation field over unchanged.
func pagingFromJSON[W, D any](p pagingJSON[W], fn func(W) D) models.Paging[D] {
	return models.Paging[D]{
		Href:     p.Href,
		Items:    mapSlice(p.Items, fn),
		Limit:    p.Limit,
		Offset:   p.Offset,
		Total:    p.Total,
		Next:     deref(p.Next),
		Previous: deref(p.Previous),
	}
}

func cursorPagingFromJSON[W, D any](p cursorPagingJSON[W], fn func(W) D) models.CursorPaging[D] {
	page := models.CursorPaging[D]{
		Href:  p.Href,
		Items: mapSlice(p.Items, fn),
		Limit: p.Limit,
		Total: p.Total,
		Next:  deref(p.Next),
	}
	if p.Cursors != nil {
		page.Cursors = models.Cursors{After: deref(p.Cursors.After), Before: deref(p.Cursors.Before)}
	}
	return page
}

// mapSlice adapts [lo.Map] to mapping functions that ignore the index.
func mapSlice[W, D any](in []W, fn func(W) D) []D {
	return lo.Map(in, func(w W, _ int) D { return fn(w) })
}

// mapPresent maps the non-nil entries of a batch response. The API answers unknown ids with null.
func mapPresent[W, D any](in []*W, fn func(W) D) []D {
	return lo.FilterMap(in, func(w *W, _ int) (D, bool) {
		if w == nil {
			var zero D
			return zero, false
		}
		return fn(*w), true
	})
}

func imageFromJSON(i imageJSON) models.Image {
	return models.Image{URL: i.URL, Height: deref(i.Height), Width: deref(i.Width)}
}

func imagesFromJSON(in []imageJSON) []models.Image { return mapSlice(in, imageFromJSON) }

func followersFromJSON(f followersJSON) models.Followers {
	return models.Followers{Href: deref(f.Href), Total: f.Total}
}

func restrictionsFromJSON(r *restrictionsJSON) *models.Restrictions {
	if r == nil {
		return nil
	}
	return &models.Restrictions{Reason: r.Reason}
}

func copyrightsFromJSON(in []copyrightJSON) []models.Copyright {
	return mapSlice(in, func(c copyrightJSON) models.Copyright {
		return models.Copyright{Text: c.Text, Type: models.CopyrightType(c.Type)}
	})
}

func simpleArtistFromJSON(a simpleArtistJSON) models.SimpleArtist {
	return models.SimpleArtist{
		ID:           a.ID,
		Name:         a.Name,
		URI:          a.URI,
		Href:         a.Href,
		Type:         models.ObjectType(a.Type),
		ExternalURLs: a.ExternalURLs,
	}
}

func artistFromJSON(a artistJSON) models.Artist {
	return models.Artist{
		SimpleArtist: simpleArtistFromJSON(a.simpleArtistJSON),
		Followers:    followersFromJSON(a.Followers),
		Genres:       a.Genres,
		Images:       imagesFromJSON(a.Images),
		Popularity:   a.Popularity,
	}
}

func simpleAlbumFromJSON(a simpleAlbumJSON) models.SimpleAlbum {
	return models.SimpleAlbum{
		ID:                   a.ID,
		Name:                 a.Name,
		URI:                  a.URI,
		Href:                 a.Href,
		AlbumType:            models.ParseAlbumType(a.AlbumType),
		AlbumGroup:           models.AlbumGroup(a.AlbumGroup),
		TotalTracks:          a.TotalTracks,
		AvailableMarkets:     a.AvailableMarkets,
		Artists:              mapSlice(a.Artists, simpleArtistFromJSON),
		Images:               imagesFromJSON(a.Images),
		ReleaseDate:          a.ReleaseDate,
		ReleaseDatePrecision: models.ReleaseDatePrecision(a.ReleaseDatePrecision),
		Restrictions:         restrictionsFromJSON(a.Restrictions),
		ExternalURLs:         a.ExternalURLs,
	}
}

func albumFromJSON(a albumJSON) models.Album {
	return models.Album{
		SimpleAlbum: simpleAlbumFromJSON(a.simpleAlbumJSON),
		Copyrights:  copyrightsFromJSON(a.Copyrights),
		ExternalIDs: a.ExternalIDs,
		Genres:      a.Genres,
		Label:       a.Label,
		Popularity:  a.Popularity,
		Tracks:      pagingFromJSON(a.Tracks, simpleTrackFromJSON),
	}
}

func simpleTrackFromJSON(t simpleTrackJSON) models.SimpleTrack {
	track := models.SimpleTrack{
		ID:               t.ID,
		Name:             t.Name,
		URI:              t.URI,
		Href:             t.Href,
		PreviewURL:       deref(t.PreviewURL),
		Artists:          mapSlice(t.Artists, simpleArtistFromJSON),
		AvailableMarkets: t.AvailableMarkets,
		DiscNumber:       t.DiscNumber,
		TrackNumber:      t.TrackNumber,
		Duration:         millis(t.DurationMS),
		Explicit:         t.Explicit,
		IsLocal:          t.IsLocal,
		IsPlayable:       t.IsPlayable == nil || *t.IsPlayable,
		Restrictions:     restrictionsFromJSON(t.Restrictions),
		ExternalURLs:     t.ExternalURLs,
	}
	if t.LinkedFrom != nil {
		track.LinkedFrom = &models.TrackLink{
			ID:           t.LinkedFrom.ID,
			URI:          t.LinkedFrom.URI,
			Href:         t.LinkedFrom.Href,
			ExternalURLs: t.LinkedFrom.ExternalURLs,
		}
	}
	return track
}

func trackFromJSON(t trackJSON) models.Track {
	return models.Track{
		SimpleTrack: simpleTrackFromJSON(t.simpleTrackJSON),
		Album:       simpleAlbumFromJSON(t.Album),
		ExternalIDs: t.ExternalIDs,
		Popularity:  t.Popularity,
	}
}

func simpleShowFromJSON(s simpleShowJSON) models.SimpleShow {
	return models.SimpleShow{
		ID:                 s.ID,
		Name:               s.Name,
		Description:        s.Description,
		HTMLDescription:    s.HTMLDescription,
		Publisher:          s.Publisher,
		MediaType:          s.MediaType,
		URI:                s.URI,
		Href:               s.Href,
		AvailableMarkets:   s.AvailableMarkets,
		Copyrights:         copyrightsFromJSON(s.Copyrights),
		Explicit:           s.Explicit,
		IsExternallyHosted: deref(s.IsExternallyHosted),
		Images:             imagesFromJSON(s.Images),
		Languages:          s.Languages,
		TotalEpisodes:      s.TotalEpisodes,
		ExternalURLs:       s.ExternalURLs,
	}
}

func showFromJSON(s showJSON) models.Show {
	return models.Show{
		SimpleShow: simpleShowFromJSON(s.simpleShowJSON),
		Episodes:   pagingFromJSON(s.Episodes, simpleEpisodeFromJSON),
	}
}

func simpleEpisodeFromJSON(e simpleEpisodeJSON) models.SimpleEpisode {
	episode := models.SimpleEpisode{
		ID:                   e.ID,
		Name:                 e.Name,
		Description:          e.Description,
		HTMLDescription:      e.HTMLDescription,
		AudioPreviewURL:      deref(e.AudioPreviewURL),
		URI:                  e.URI,
		Href:                 e.Href,
		Duration:             millis(e.DurationMS),
		Explicit:             e.Explicit,
		IsExternallyHosted:   e.IsExternallyHosted,
		IsPlayable:           e.IsPlayable,
		Images:               imagesFromJSON(e.Images),
		Languages:            e.Languages,
		ReleaseDate:          e.ReleaseDate,
		ReleaseDatePrecision: models.ReleaseDatePrecision(e.ReleaseDatePrecision),
		Restrictions:         restrictionsFromJSON(e.Restrictions),
		ExternalURLs:         e.ExternalURLs,
	}
	if e.ResumePoint != nil {
		episode.ResumePoint = &models.ResumePoint{
			FullyPlayed:    e.ResumePoint.FullyPlayed,
			ResumePosition: millis(e.ResumePoint.ResumePositionMS),
		}
	}
	return episode
}

func episodeFromJSON(e episodeJSON) models.Episode {
	return models.Episode{
		SimpleEpisode: simpleEpisodeFromJSON(e.simpleEpisodeJSON),
		Show:          simpleShowFromJSON(e.Show),
	}
}

func publicUserFromJSON(u publicUserJSON) models.PublicUser {
	user := models.PublicUser{
		ID:           u.ID,
		DisplayName:  deref(u.DisplayName),
		URI:          u.URI,
		Href:         u.Href,
		Images:       imagesFromJSON(u.Images),
		ExternalURLs: u.ExternalURLs,
	}
	if u.Followers != nil {
		user.Followers = followersFromJSON(*u.Followers)
	}
	return user
}

func privateUserFromJSON(u privateUserJSON) models.PrivateUser {
	user := models.PrivateUser{
		PublicUser: publicUserFromJSON(u.publicUserJSON),
		Country:    u.Country,
		Email:      u.Email,
		Product:    u.Product,
	}
	if u.ExplicitContent != nil {
		user.ExplicitContent = models.ExplicitContent{
			FilterEnabled: u.ExplicitContent.FilterEnabled,
			FilterLocked:  u.ExplicitContent.FilterLocked,
		}
	}
	return user
}

func simplePlaylistFromJSON(p simplePlaylistJSON) models.SimplePlaylist {
	return models.SimplePlaylist{
		ID:            p.ID,
		Name:          p.Name,
		Description:   deref(p.Description),
		SnapshotID:    p.SnapshotID,
		URI:           p.URI,
		Href:          p.Href,
		Collaborative: p.Collaborative,
		Public:        p.Public,
		Images:        imagesFromJSON(p.Images),
		Owner:         publicUserFromJSON(p.Owner),
		Tracks:        models.PlaylistTracksRef{Href: p.Tracks.Href, Total: p.Tracks.Total},
		ExternalURLs:  p.ExternalURLs,
	}
}

func playlistFromJSON(p playlistJSON) models.Playlist {
	return models.Playlist{
		ID:            p.ID,
		Name:          p.Name,
		Description:   deref(p.Description),
		SnapshotID:    p.SnapshotID,
		URI:           p.URI,
		Href:          p.Href,
		Collaborative: p.Collaborative,
		Public:        p.Public,
		Images:        imagesFromJSON(p.Images),
		Owner:         publicUserFromJSON(p.Owner),
		Followers:     followersFromJSON(p.Followers),
		Tracks:        pagingFromJSON(p.Tracks, playlistTrackFromJSON),
		ExternalURLs:  p.ExternalURLs,
	}
}

func playlistTrackFromJSON(p playlistTrackJSON) models.PlaylistTrack {
	item := models.PlaylistTrack{AddedAt: deref(p.AddedAt), IsLocal: p.IsLocal}
	if p.AddedBy != nil {
		user := publicUserFromJSON(*p.AddedBy)
		item.AddedBy = &user
	}
	if p.Track != nil {
		switch {
		case p.Track.Track != nil:
			track := trackFromJSON(*p.Track.Track)
			item.Track = &track
		case p.Track.Episode != nil:
			episode := episodeFromJSON(*p.Track.Episode)
			item.Episode = &episode
		}
	}
	return item
}

func savedAlbumFromJSON(s savedAlbumJSON) models.SavedAlbum {
	return models.SavedAlbum{AddedAt: s.AddedAt, Album: albumFromJSON(s.Album)}
}

func savedTrackFromJSON(s savedTrackJSON) models.SavedTrack {
	return models.SavedTrack{AddedAt: s.AddedAt, Track: trackFromJSON(s.Track)}
}

func savedShowFromJSON(s savedShowJSON) models.SavedShow {
	return models.SavedShow{AddedAt: s.AddedAt, Show: simpleShowFromJSON(s.Show)}
}

func categoryFromJSON(c categoryJSON) models.Category {
	return models.Category{ID: c.ID, Name: c.Name, Href: c.Href, Icons: imagesFromJSON(c.Icons)}
}

// recommendationsFromJSON decodes seeds and tracks independently and recombines them.
func recommendationsFromJSON(r recommendationsJSON) models.Recommendations {
	return models.Recommendations{
		Seeds: mapSlice(r.Seeds, func(s recommendationSeedJSON) models.RecommendationSeed {
			return models.RecommendationSeed{
				ID:                 s.ID,
				Type:               s.Type,
				Href:               deref(s.Href),
				InitialPoolSize:    s.InitialPoolSize,
				AfterFilteringSize: s.AfterFilteringSize,
				AfterRelinkingSize: s.AfterRelinkingSize,
			}
		}),
		Tracks: mapSlice(r.Tracks, trackFromJSON),
	}
}

func audioFeaturesFromJSON(a audioFeaturesJSON) models.AudioFeatures {
	return models.AudioFeatures{
		ID:               a.ID,
		URI:              a.URI,
		TrackHref:        a.TrackHref,
		AnalysisURL:      a.AnalysisURL,
		Acousticness:     a.Acousticness,
		Danceability:     a.Danceability,
		Energy:           a.Energy,
		Instrumentalness: a.Instrumentalness,
		Liveness:         a.Liveness,
		Loudness:         a.Loudness,
		Speechiness:      a.Speechiness,
		Tempo:            a.Tempo,
		Valence:          a.Valence,
		Duration:         millis(a.DurationMS),
		Key:              models.Key(a.Key),
		Mode:             models.Mode(a.Mode),
		TimeSignature:    a.TimeSignature,
	}
}

func timeIntervalFromJSON(t timeIntervalJSON) models.TimeInterval {
	return models.TimeInterval{Start: t.Start, Duration: t.Duration, Confidence: t.Confidence}
}

func audioAnalysisFromJSON(a audioAnalysisJSON) models.AudioAnalysis {
	return models.AudioAnalysis{
		Meta: models.AnalysisMeta{
			AnalyzerVersion: a.Meta.AnalyzerVersion,
			Platform:        a.Meta.Platform,
			DetailedStatus:  a.Meta.DetailedStatus,
			StatusCode:      a.Meta.StatusCode,
			Timestamp:       a.Meta.Timestamp,
			AnalysisTime:    a.Meta.AnalysisTime,
			InputProcess:    a.Meta.InputProcess,
		},
		Track: models.AnalysisTrack{
			NumSamples:              a.Track.NumSamples,
			Duration:                a.Track.Duration,
			SampleMD5:               a.Track.SampleMD5,
			OffsetSeconds:           a.Track.OffsetSeconds,
			WindowSeconds:           a.Track.WindowSeconds,
			AnalysisSampleRate:      a.Track.AnalysisSampleRate,
			AnalysisChannels:        a.Track.AnalysisChannels,
			EndOfFadeIn:             a.Track.EndOfFadeIn,
			StartOfFadeOut:          a.Track.StartOfFadeOut,
			Loudness:                a.Track.Loudness,
			Tempo:                   a.Track.Tempo,
			TempoConfidence:         a.Track.TempoConfidence,
			TimeSignature:           a.Track.TimeSignature,
			TimeSignatureConfidence: a.Track.TimeSignatureConfidence,
			Key:                     models.Key(a.Track.Key),
			KeyConfidence:           a.Track.KeyConfidence,
			Mode:                    models.Mode(a.Track.Mode),
			ModeConfidence:          a.Track.ModeConfidence,
		},
		Bars:   mapSlice(a.Bars, timeIntervalFromJSON),
		Beats:  mapSlice(a.Beats, timeIntervalFromJSON),
		Tatums: mapSlice(a.Tatums, timeIntervalFromJSON),
		Sections: mapSlice(a.Sections, func(s sectionJSON) models.Section {
			return models.Section{
				TimeInterval:            timeIntervalFromJSON(s.timeIntervalJSON),
				Loudness:                s.Loudness,
				Tempo:                   s.Tempo,
				TempoConfidence:         s.TempoConfidence,
				Key:                     models.Key(s.Key),
				KeyConfidence:           s.KeyConfidence,
				Mode:                    models.Mode(s.Mode),
				ModeConfidence:          s.ModeConfidence,
				TimeSignature:           s.TimeSignature,
				TimeSignatureConfidence: s.TimeSignatureConfidence,
			}
		}),
		Segments: mapSlice(a.Segments, func(s segmentJSON) models.Segment {
			return models.Segment{
				TimeInterval:    timeIntervalFromJSON(s.timeIntervalJSON),
				LoudnessStart:   s.LoudnessStart,
				LoudnessMax:     s.LoudnessMax,
				LoudnessMaxTime: s.LoudnessMaxTime,
				LoudnessEnd:     s.LoudnessEnd,
				Pitches:         s.Pitches,
				Timbre:          s.Timbre,
			}
		}),
	}
}
