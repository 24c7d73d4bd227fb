// Package models defines the domain entities returned by the Spotify Web API client and the persisted records used by the CLI.
//
// The package contains three categories of types:
//
// 1. Catalog entities: normalized records decoded from API responses
//   - [Album], [Artist], [Track], [Episode], [Show], [Playlist] and their simplified forms
//   - [PublicUser] and [PrivateUser] profiles
//   - [AudioFeatures] and [AudioAnalysis] for track analysis
//   - [Recommendations], [Category], [FeaturedPlaylists] for browse endpoints
//
// 2. Wrappers and values
//   - [Paging] and [CursorPaging] : a page of items with navigation metadata
//   - [Copyright] with its resolved [CopyrightType]
//   - [AccessCredential] : the token held by the client for a session
//   - [Error] : the decoded body of a failed API call
//
// 3. Persistent entities: database-backed records with lifecycle management
//   - [Session] : a stored [AccessCredential] for reuse across CLI invocations
//
// All persistent entities implement the [Model] interface providing ID generation, timestamps, validation, and soft delete support.
// The [Repository] interface defines standard CRUD operations for database access.
//
// Entities are values. Durations reported in milliseconds upstream are exposed as [time.Duration], timestamps as [time.Time],
// and string codes as typed enums.
package models
