package services

import (
	"context"
	"fmt"
	"maps"
	"strings"

	"github.com/desertthunder/spotx/internal/models"
	"github.com/desertthunder/spotx/internal/shared"
	"github.com/samber/lo"
)

// Search looks up query in the catalog for each of types, issuing one request per type concurrently
// through the service's [Group]. Results are returned in the order of types. The first failing request
// cancels the others and its error is returned.
//
// Supports [Market], [Limit] (1-50), [Offset] (0-2000) and [IncludeExternalAudio].
func (s *SpotifyService) Search(ctx context.Context, query string, types []models.ObjectType, opts ...RequestOption) ([]models.SearchResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, invalid("q", "must not be empty")
	}
	if len(types) == 0 {
		return nil, invalid("type", "at least one type is required")
	}
	if err := validateEnum("type", models.SearchableTypes, types...); err != nil {
		return nil, err
	}
	if dups := lo.FindDuplicates(types); len(dups) > 0 {
		return nil, invalid("type", "duplicate types %v", dups)
	}

	o := processOptions(opts...)
	if err := o.validateLimit(1, maxPageLimit); err != nil {
		return nil, err
	}
	if err := o.validateOffset(maxSearchOffset); err != nil {
		return nil, err
	}

	base := o.query("market", "limit", "offset", "include_external")
	base.Set("q", query)

	results := make([]models.SearchResult, len(types))
	g, gctx := s.newGroup(ctx)

	for i, t := range types {
		g.Go(func() error {
			q := maps.Clone(base)
			q.Set("type", string(t))

			env, err := get[searchEnvelope](gctx, s, "/search", q)
			if err != nil {
				return err
			}

			result, err := searchResultFromJSON(t, env)
			if err != nil {
				return err
			}
			results[i] = result
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// searchResultFromJSON picks the page for t out of its envelope.
func searchResultFromJSON(t models.ObjectType, env searchEnvelope) (models.SearchResult, error) {
	result := models.SearchResult{Type: t}
	missing := false

	switch t {
	case models.ObjectTypeAlbum:
		if missing = env.Albums == nil; !missing {
			page := pagingFromJSON(*env.Albums, simpleAlbumFromJSON)
			result.Albums = &page
		}
	case models.ObjectTypeArtist:
		if missing = env.Artists == nil; !missing {
			page := pagingFromJSON(*env.Artists, artistFromJSON)
			result.Artists = &page
		}
	case models.ObjectTypeTrack:
		if missing = env.Tracks == nil; !missing {
			page := pagingFromJSON(*env.Tracks, trackFromJSON)
			result.Tracks = &page
		}
	case models.ObjectTypeShow:
		if missing = env.Shows == nil; !missing {
			page := pagingFromJSON(*env.Shows, simpleShowFromJSON)
			result.Shows = &page
		}
	case models.ObjectTypeEpisode:
		if missing = env.Episodes == nil; !missing {
			page := pagingFromJSON(*env.Episodes, simpleEpisodeFromJSON)
			result.Episodes = &page
		}
	}

	if missing {
		return result, fmt.Errorf("%w: search response has no %s page", shared.ErrUnexpectedResponse, t)
	}
	return result, nil
}
