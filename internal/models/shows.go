package models

import "time"

// SimpleShow is the show reference embedded in episodes and listings.
type SimpleShow struct {
	ID                 string
	Name               string
	Description        string
	HTMLDescription    string
	Publisher          string
	MediaType          string
	URI                string
	Href               string
	AvailableMarkets   []string
	Copyrights         []Copyright
	Explicit           bool
	IsExternallyHosted bool
	Images             []Image
	Languages          []string
	TotalEpisodes      int
	ExternalURLs       map[string]string
}

// Show is the full show object including its first page of episodes.
type Show struct {
	SimpleShow
	Episodes Paging[SimpleEpisode]
}

// SimpleEpisode is the episode object embedded in shows.
type SimpleEpisode struct {
	ID                   string
	Name                 string
	Description          string
	HTMLDescription      string
	AudioPreviewURL      string
	URI                  string
	Href                 string
	Duration             time.Duration
	Explicit             bool
	IsExternallyHosted   bool
	IsPlayable           bool
	Images               []Image
	Languages            []string
	ReleaseDate          string
	ReleaseDatePrecision ReleaseDatePrecision
	ResumePoint          *ResumePoint
	Restrictions         *Restrictions
	ExternalURLs         map[string]string
}

// Episode is the full episode object.
type Episode struct {
	SimpleEpisode
	Show SimpleShow
}
