// Package server provides HTTP routing, middleware, and the OAuth redirect handler for the CLI login flow.
//
// # Routing
//
// [CallbackRouter] registers each path a [Handler] reports as a GET route on an [http.ServeMux] and wraps it
// in [Middleware], the first added running outermost. [RequestLogger] is the only middleware the CLI uses.
//
// # OAuth Callback Handler
//
// [OAuthHandler] receives the redirect of the authorization code flow on the path of the configured
// redirect URI. It validates the state parameter, optionally exchanges the code through an [ExchangeFunc],
// and sends the result through a channel. Only the first callback is processed.
//
// [CallbackServer] runs the router on the loopback address for the duration of a login.
package server
