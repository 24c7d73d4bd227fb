// Spotify Web API facade
//
// Endpoint reference: https://developer.spotify.com/documentation/web-api/reference/
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync/atomic"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/spotx/internal/models"
	"github.com/desertthunder/spotx/internal/shared"
	"golang.org/x/oauth2"
	"golang.org/x/sync/errgroup"
)

// DefaultBaseURL is the Web API root.
const DefaultBaseURL = "https://api.spotify.com/v1"

// Group runs tasks concurrently and waits for all of them, returning the first error.
// [errgroup.Group] satisfies it.
type Group interface {
	Go(func() error)
	Wait() error
}

// GroupFunc creates a [Group] bound to ctx. The returned context is cancelled when a task fails.
type GroupFunc func(ctx context.Context) (Group, context.Context)

func errGroup(ctx context.Context) (Group, context.Context) {
	g, gctx := errgroup.WithContext(ctx)
	return g, gctx
}

// SpotifyService is a typed client for the Web API.
//
// The held [models.AccessCredential] is swapped atomically by [SpotifyService.RequestRefreshedToken].
// Sequencing a refresh against in-flight calls is the caller's job.
type SpotifyService struct {
	flow       AuthFlow
	credential atomic.Pointer[models.AccessCredential]
	httpClient *http.Client
	baseURL    string
	logger     *log.Logger
	newGroup   GroupFunc
	onRefresh  func(models.AccessCredential)
}

// Option configures a [SpotifyService].
type Option func(*SpotifyService)

// WithHTTPClient sets the client used for API and token requests.
func WithHTTPClient(c *http.Client) Option {
	return func(s *SpotifyService) {
		if c != nil {
			s.httpClient = c
		}
	}
}

// WithBaseURL points the service at another API root, such as a test server.
func WithBaseURL(u string) Option {
	return func(s *SpotifyService) { s.baseURL = strings.TrimRight(u, "/") }
}

// WithLogger sets the logger. Requests are logged at debug level.
func WithLogger(l *log.Logger) Option {
	return func(s *SpotifyService) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithSearchGroup replaces the executor used to fan out multi-type searches.
func WithSearchGroup(fn GroupFunc) Option {
	return func(s *SpotifyService) {
		if fn != nil {
			s.newGroup = fn
		}
	}
}

// WithTokenRefreshCallback registers fn to be called with every refreshed credential.
func WithTokenRefreshCallback(fn func(models.AccessCredential)) Option {
	return func(s *SpotifyService) { s.onRefresh = fn }
}

// NewSpotifyService authenticates with flow and returns a ready client.
// If authentication fails no client is returned and the error is an [*AuthError].
func NewSpotifyService(ctx context.Context, flow AuthFlow, opts ...Option) (*SpotifyService, error) {
	if flow == nil {
		return nil, fmt.Errorf("%w: no auth flow", shared.ErrMissingCredentials)
	}

	s := &SpotifyService{
		flow:       flow,
		httpClient: http.DefaultClient,
		baseURL:    DefaultBaseURL,
		logger:     log.New(io.Discard),
		newGroup:   errGroup,
	}
	for _, opt := range opts {
		opt(s)
	}

	cred, err := flow.Authenticate(s.authContext(ctx))
	if err != nil {
		return nil, err
	}
	s.credential.Store(cred)
	s.logger.Info("authenticated with spotify", "token_type", cred.TokenType, "expires_in", cred.ExpiresIn)

	return s, nil
}

// NewClientCredentialsService authenticates as the application, without user context.
func NewClientCredentialsService(ctx context.Context, clientID, clientSecret string, opts ...Option) (*SpotifyService, error) {
	return NewSpotifyService(ctx, &ClientCredentials{ClientID: clientID, ClientSecret: clientSecret}, opts...)
}

// NewAuthorizationCodeService exchanges a consent code for a user token.
func NewAuthorizationCodeService(ctx context.Context, clientID, clientSecret, code, redirectURI string, opts ...Option) (*SpotifyService, error) {
	flow := &AuthorizationCode{ClientID: clientID, ClientSecret: clientSecret, Code: code, RedirectURI: redirectURI}
	return NewSpotifyService(ctx, flow, opts...)
}

// Name identifies the service in logs and CLI output.
func (s *SpotifyService) Name() string {
	return "Spotify"
}

// Credential returns a copy of the held credential.
func (s *SpotifyService) Credential() models.AccessCredential {
	if c := s.credential.Load(); c != nil {
		return *c
	}
	return models.AccessCredential{}
}

// RequestRefreshedToken replaces the held credential with a refreshed one.
// The previous refresh token is kept when the server does not rotate it.
func (s *SpotifyService) RequestRefreshedToken(ctx context.Context) error {
	current := s.Credential()

	cred, err := s.flow.RequestRefreshedToken(s.authContext(ctx), current.RefreshToken)
	if err != nil {
		s.logger.Warn("token refresh failed", "error", err)
		return err
	}

	next := *cred
	if next.RefreshToken == "" {
		next.RefreshToken = current.RefreshToken
	}
	s.credential.Store(&next)
	s.logger.Info("refreshed spotify token", "expires_in", next.ExpiresIn)

	if s.onRefresh != nil {
		s.onRefresh(next)
	}
	return nil
}

// authContext makes the token endpoint calls use the configured HTTP client.
func (s *SpotifyService) authContext(ctx context.Context) context.Context {
	return context.WithValue(ctx, oauth2.HTTPClient, s.httpClient)
}

// send performs an authenticated request. The caller closes the body.
func (s *SpotifyService) send(ctx context.Context, method, endpoint string, query url.Values, body any) (*http.Response, error) {
	cred := s.credential.Load()
	if cred == nil {
		return nil, shared.ErrNotAuthenticated
	}

	apiURL := s.baseURL + endpoint
	if len(query) > 0 {
		apiURL += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, apiURL, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+cred.AccessToken)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %s: %w", shared.ErrAPIRequest, method, endpoint, err)
	}

	s.logger.Debug("spotify request", "method", method, "path", endpoint, "status", resp.StatusCode)
	return resp, nil
}

// doRequest performs an authenticated request and decodes a successful body into result.
// A non-2xx response is returned as a [models.Error].
func (s *SpotifyService) doRequest(ctx context.Context, method, endpoint string, query url.Values, body, result any) error {
	resp, err := s.send(ctx, method, endpoint, query, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeError(resp)
	}

	if result == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("%w: %s %s: %w", shared.ErrUnexpectedResponse, method, endpoint, err)
	}
	return nil
}

// expectStatus performs a request whose success response has no body and requires the exact status want.
func (s *SpotifyService) expectStatus(ctx context.Context, method, endpoint string, query url.Values, body any, want int) error {
	resp, err := s.send(ctx, method, endpoint, query, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == want:
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return fmt.Errorf("%w: %s %s returned %d, expected %d", shared.ErrUnexpectedStatus, method, endpoint, resp.StatusCode, want)
	default:
		return decodeError(resp)
	}
}

// decodeError reads the error envelope of a failed response. An empty body yields the status text.
func decodeError(resp *http.Response) error {
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: status %d: failed to read body: %w", shared.ErrUnexpectedResponse, resp.StatusCode, err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return models.Error{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
	}

	var env errorEnvelope
	if err := json.Unmarshal(data, &env); err != nil || env.Error == nil {
		return fmt.Errorf("%w: status %d: undecodable error body", shared.ErrUnexpectedResponse, resp.StatusCode)
	}

	apiErr := models.Error{Status: env.Error.Status, Message: env.Error.Message}
	if apiErr.Status == 0 {
		apiErr.Status = resp.StatusCode
	}
	return apiErr
}

// get decodes the body of a GET request into a value of type W.
func get[W any](ctx context.Context, s *SpotifyService, endpoint string, query url.Values) (W, error) {
	var w W
	err := s.doRequest(ctx, http.MethodGet, endpoint, query, nil, &w)
	return w, err
}

// apiPath joins escaped segments onto a leading slash.
func apiPath(segments ...string) string {
	var b strings.Builder
	for _, seg := range segments {
		b.WriteByte('/')
		b.WriteString(url.PathEscape(seg))
	}
	return b.String()
}

func idsQuery(ids []string, extra url.Values) url.Values {
	if extra == nil {
		extra = url.Values{}
	}
	extra.Set("ids", joinIDs(ids))
	return extra
}
