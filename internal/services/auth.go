package services

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/desertthunder/spotx/internal/models"
	"github.com/desertthunder/spotx/internal/shared"
	spotifyauth "github.com/zmb3/spotify/v2/auth"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

// AuthFlow obtains and refreshes access credentials from the accounts service.
//
// Implementations post to the token endpoint and return an [*AuthError] on failure. They do not retry.
// The HTTP client used is taken from the context under [oauth2.HTTPClient] when present.
type AuthFlow interface {
	Authenticate(ctx context.Context) (*models.AccessCredential, error)
	RequestRefreshedToken(ctx context.Context, refreshToken string) (*models.AccessCredential, error)
}

var (
	_ AuthFlow = (*ClientCredentials)(nil)
	_ AuthFlow = (*AuthorizationCode)(nil)
	_ AuthFlow = (*AuthorizationCodePKCE)(nil)
	_ AuthFlow = (*StoredCredential)(nil)
)

// ClientCredentials authenticates the application itself, without a user.
// No refresh token is issued, so refreshing repeats the exchange.
type ClientCredentials struct {
	ClientID     string
	ClientSecret string
	Scopes       []string
	TokenURL     string // defaults to the accounts service
}

func (f *ClientCredentials) config() *clientcredentials.Config {
	return &clientcredentials.Config{
		ClientID:     f.ClientID,
		ClientSecret: f.ClientSecret,
		TokenURL:     orDefault(f.TokenURL, spotifyauth.TokenURL),
		Scopes:       f.Scopes,
		AuthStyle:    oauth2.AuthStyleInHeader,
	}
}

// Authenticate performs the client_credentials grant.
func (f *ClientCredentials) Authenticate(ctx context.Context) (*models.AccessCredential, error) {
	if f.ClientID == "" || f.ClientSecret == "" {
		return nil, &AuthError{Code: "invalid_client", Description: "client id and secret are required", Err: shared.ErrMissingCredentials}
	}
	tok, err := f.config().Token(ctx)
	if err != nil {
		return nil, newAuthError(err)
	}
	return credentialFromToken(tok, f.Scopes), nil
}

// RequestRefreshedToken ignores refreshToken and performs a new exchange.
func (f *ClientCredentials) RequestRefreshedToken(ctx context.Context, _ string) (*models.AccessCredential, error) {
	return f.Authenticate(ctx)
}

// AuthorizationCode exchanges a code obtained from the user consent redirect for a token with a refresh token.
//
// Code may be empty when the flow is only used to refresh.
type AuthorizationCode struct {
	ClientID     string
	ClientSecret string
	Code         string
	RedirectURI  string
	Scopes       []string
	TokenURL     string
}

func (f *AuthorizationCode) config() *oauth2.Config {
	return oauthConfig(f.ClientID, f.ClientSecret, f.RedirectURI, f.TokenURL, f.Scopes, oauth2.AuthStyleInHeader)
}

// Authenticate performs the authorization_code grant.
func (f *AuthorizationCode) Authenticate(ctx context.Context) (*models.AccessCredential, error) {
	if f.Code == "" {
		return nil, &AuthError{Code: "invalid_request", Description: "authorization code is required", Err: shared.ErrMissingArgument}
	}
	tok, err := f.config().Exchange(ctx, f.Code)
	if err != nil {
		return nil, newAuthError(err)
	}
	return credentialFromToken(tok, f.Scopes), nil
}

// RequestRefreshedToken performs the refresh_token grant.
func (f *AuthorizationCode) RequestRefreshedToken(ctx context.Context, refreshToken string) (*models.AccessCredential, error) {
	return refresh(ctx, f.config(), refreshToken, f.Scopes)
}

// AuthorizationCodePKCE is [AuthorizationCode] for public clients. The client secret is replaced by
// the code verifier whose challenge was sent with the consent request.
type AuthorizationCodePKCE struct {
	ClientID    string
	Code        string
	RedirectURI string
	Verifier    string
	Scopes      []string
	TokenURL    string
}

func (f *AuthorizationCodePKCE) config() *oauth2.Config {
	return oauthConfig(f.ClientID, "", f.RedirectURI, f.TokenURL, f.Scopes, oauth2.AuthStyleInParams)
}

// Authenticate performs the authorization_code grant with the code_verifier parameter.
func (f *AuthorizationCodePKCE) Authenticate(ctx context.Context) (*models.AccessCredential, error) {
	if f.Code == "" || f.Verifier == "" {
		return nil, &AuthError{Code: "invalid_request", Description: "authorization code and verifier are required", Err: shared.ErrMissingArgument}
	}
	tok, err := f.config().Exchange(ctx, f.Code, oauth2.VerifierOption(f.Verifier))
	if err != nil {
		return nil, newAuthError(err)
	}
	return credentialFromToken(tok, f.Scopes), nil
}

// RequestRefreshedToken performs the refresh_token grant with the client id in the form body.
func (f *AuthorizationCodePKCE) RequestRefreshedToken(ctx context.Context, refreshToken string) (*models.AccessCredential, error) {
	return refresh(ctx, f.config(), refreshToken, f.Scopes)
}

// StoredCredential resumes a session from a previously issued credential.
//
// Authenticate returns the stored credential while it is valid and otherwise refreshes it through Flow.
type StoredCredential struct {
	Flow       AuthFlow
	Credential models.AccessCredential
	Now        func() time.Time
}

func (f *StoredCredential) Authenticate(ctx context.Context) (*models.AccessCredential, error) {
	now := time.Now
	if f.Now != nil {
		now = f.Now
	}
	if f.Credential.AccessToken != "" && !f.Credential.Expired(now().Add(time.Minute)) {
		cred := f.Credential
		return &cred, nil
	}
	return f.Flow.RequestRefreshedToken(ctx, f.Credential.RefreshToken)
}

func (f *StoredCredential) RequestRefreshedToken(ctx context.Context, refreshToken string) (*models.AccessCredential, error) {
	return f.Flow.RequestRefreshedToken(ctx, refreshToken)
}

// PKCE is a code verifier and its S256 challenge.
type PKCE struct {
	Verifier  string
	Challenge string
}

// NewPKCE generates a random verifier.
func NewPKCE() PKCE {
	v := oauth2.GenerateVerifier()
	return PKCE{Verifier: v, Challenge: oauth2.S256ChallengeFromVerifier(v)}
}

// AuthOption adds the code_challenge parameters to a consent URL.
func (p PKCE) AuthOption() oauth2.AuthCodeOption {
	return oauth2.S256ChallengeOption(p.Verifier)
}

// ShowDialog forces the consent dialog even when the user already approved the app.
var ShowDialog = oauth2.SetAuthURLParam("show_dialog", "true")

// AuthorizeURL builds the consent URL the user visits to obtain an authorization code.
func AuthorizeURL(clientID, redirectURI, state string, scopes []string, opts ...oauth2.AuthCodeOption) string {
	cfg := oauth2.Config{
		ClientID:    clientID,
		RedirectURL: redirectURI,
		Scopes:      scopes,
		Endpoint:    oauth2.Endpoint{AuthURL: spotifyauth.AuthURL, TokenURL: spotifyauth.TokenURL},
	}
	return cfg.AuthCodeURL(state, opts...)
}

// DefaultScopes are requested when the configuration names none.
var DefaultScopes = []string{
	spotifyauth.ScopeUserReadPrivate,
	spotifyauth.ScopeUserReadEmail,
	spotifyauth.ScopeUserLibraryRead,
	spotifyauth.ScopeUserLibraryModify,
	spotifyauth.ScopeUserFollowRead,
	spotifyauth.ScopeUserFollowModify,
	spotifyauth.ScopeUserTopRead,
	spotifyauth.ScopePlaylistReadPrivate,
	spotifyauth.ScopePlaylistReadCollaborative,
}

func oauthConfig(clientID, clientSecret, redirectURI, tokenURL string, scopes []string, style oauth2.AuthStyle) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  redirectURI,
		Scopes:       scopes,
		Endpoint: oauth2.Endpoint{
			AuthURL:   spotifyauth.AuthURL,
			TokenURL:  orDefault(tokenURL, spotifyauth.TokenURL),
			AuthStyle: style,
		},
	}
}

func refresh(ctx context.Context, cfg *oauth2.Config, refreshToken string, scopes []string) (*models.AccessCredential, error) {
	if refreshToken == "" {
		return nil, &AuthError{Code: "invalid_request", Description: "refresh token is empty", Err: shared.ErrNoRefreshToken}
	}
	tok, err := cfg.TokenSource(ctx, &oauth2.Token{RefreshToken: refreshToken}).Token()
	if err != nil {
		return nil, newAuthError(err)
	}
	cred := credentialFromToken(tok, scopes)
	if cred.RefreshToken == "" {
		cred.RefreshToken = refreshToken
	}
	return cred, nil
}

// credentialFromToken converts an [oauth2.Token]. Granted scopes come from the "scope" field
// and fall back to the requested ones when the server omits it.
func credentialFromToken(tok *oauth2.Token, requested []string) *models.AccessCredential {
	cred := &models.AccessCredential{
		AccessToken:  tok.AccessToken,
		TokenType:    tok.Type(),
		RefreshToken: tok.RefreshToken,
		ExpiresAt:    tok.Expiry,
		ExpiresIn:    expiresIn(tok),
		Scopes:       requested,
	}
	if scope, ok := tok.Extra("scope").(string); ok && scope != "" {
		cred.Scopes = strings.Fields(scope)
	}
	return cred
}

func expiresIn(tok *oauth2.Token) time.Duration {
	switch v := tok.Extra("expires_in").(type) {
	case float64:
		return time.Duration(v) * time.Second
	case int64:
		return time.Duration(v) * time.Second
	case string:
		if n, err := strconv.Atoi(v); err == nil {
			return time.Duration(n) * time.Second
		}
	}
	if !tok.Expiry.IsZero() {
		return time.Until(tok.Expiry).Round(time.Second)
	}
	return 0
}

func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
