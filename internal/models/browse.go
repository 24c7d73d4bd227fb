package models

// Category is a browse category used to tag items.
type Category struct {
	ID    string
	Name  string
	Href  string
	Icons []Image
}

// FeaturedPlaylists pairs the localized editorial message with the page of playlists.
type FeaturedPlaylists struct {
	Message   string
	Playlists Paging[SimplePlaylist]
}

// RecommendationSeed describes how one seed contributed to a recommendation pool.
type RecommendationSeed struct {
	ID                 string
	Type               string // artist, track or genre
	Href               string
	InitialPoolSize    int
	AfterFilteringSize int
	AfterRelinkingSize int
}

// Recommendations is the result of the recommendations endpoint.
type Recommendations struct {
	Seeds  []RecommendationSeed
	Tracks []Track
}

// SearchResult holds the page returned for one searched object type.
// The page matching Type is set and the others are nil.
type SearchResult struct {
	Type     ObjectType
	Albums   *Paging[SimpleAlbum]
	Artists  *Paging[Artist]
	Tracks   *Paging[Track]
	Shows    *Paging[SimpleShow]
	Episodes *Paging[SimpleEpisode]
}

// Total reports the total number of matches for the result's type.
func (r SearchResult) Total() int {
	switch {
	case r.Albums != nil:
		return r.Albums.Total
	case r.Artists != nil:
		return r.Artists.Total
	case r.Tracks != nil:
		return r.Tracks.Total
	case r.Shows != nil:
		return r.Shows.Total
	case r.Episodes != nil:
		return r.Episodes.Total
	default:
		return 0
	}
}
