// Package services implements a typed client for the Spotify Web API.
//
// # Authentication
//
// An [AuthFlow] obtains an access token from the accounts service:
//   - [ClientCredentials] : application token, no user context, refreshed by repeating the exchange
//   - [AuthorizationCode] : user token from a consent code, refreshed with its refresh token
//   - [AuthorizationCodePKCE] : the same for public clients, using a code verifier instead of a secret
//   - [StoredCredential] : resumes a previously persisted credential
//
// [NewSpotifyService] authenticates eagerly and fails with an [*AuthError] when it cannot.
// [AuthorizeURL] and [NewPKCE] build the consent URL for the code flows.
//
// # Requests
//
// [SpotifyService] exposes one method per endpoint. Each method validates its arguments locally,
// attaches the bearer token, performs one request and maps the JSON response to [models] types.
// Optional parameters are passed as [RequestOption] values and omitted from the query when empty.
//
// [SpotifyService.Search] issues one request per object type concurrently through a [Group]
// (an [errgroup.Group] unless replaced with [WithSearchGroup]) and keeps the caller's type order.
//
// # Error Handling
//
// Errors are returned as values:
//   - [*ValidationError] : a parameter violated a documented bound; no request was sent (matches [shared.ErrInvalidArgument])
//   - [*AuthError] : the token endpoint refused or returned garbage (matches [shared.ErrAuthFailed])
//   - [models.Error] : the API answered with a non-2xx status (matches [shared.ErrAPIRequest])
//   - [shared.ErrUnexpectedResponse] : a success body could not be decoded
//
// # API Mappings
//
// Responses are decoded into unexported wire structs mirroring the JSON and converted by pure
// mapping functions: durations become [time.Duration], enum strings become typed values, and
// nullable fields become zero values. Paging wrappers keep their navigation metadata unchanged.
package services
