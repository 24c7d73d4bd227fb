package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/desertthunder/spotx/internal/formatter"
	"github.com/desertthunder/spotx/internal/models"
	"github.com/desertthunder/spotx/internal/server"
	"github.com/desertthunder/spotx/internal/services"
	"github.com/desertthunder/spotx/internal/shared"
	"github.com/urfave/cli/v3"
	"golang.org/x/oauth2"
)

// AuthLogin performs the user consent step and stores the resulting credential under --session.
//
// Starts the callback server, opens the browser at the consent page and exchanges the code
// delivered to the redirect URI.
func (r *Runner) AuthLogin(ctx context.Context, cmd *cli.Command) error {
	if err := r.config.Validate(); err != nil {
		return err
	}

	kind, err := r.flowKind(cmd)
	if err != nil {
		return err
	}

	if kind == models.FlowClientCredentials {
		catalog, err := r.catalogFor(ctx, cmd)
		if err != nil {
			return err
		}
		cred := catalog.Credential()
		r.writePlain("✓ Client credentials verified, no login is needed\n")
		return r.writePlain("Token expires in %v\n", cred.ExpiresIn)
	}

	creds := r.config.Credentials.Spotify
	if kind == models.FlowAuthorizationCode && creds.ClientSecret == "" {
		return fmt.Errorf("%w: credentials.spotify.client_secret is required for %s, or use --pkce", shared.ErrMissingCredentials, kind)
	}

	state, err := shared.GenerateState()
	if err != nil {
		return err
	}

	var (
		verifier string
		opts     []oauth2.AuthCodeOption
	)
	if kind == models.FlowPKCE {
		pkce := services.NewPKCE()
		verifier = pkce.Verifier
		opts = append(opts, pkce.AuthOption())
	}
	if cmd.Bool("show-dialog") {
		opts = append(opts, services.ShowDialog)
	}

	exchange := func(ctx context.Context, code string) (*models.AccessCredential, error) {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, r.httpClient)
		return r.userFlow(kind, code, verifier).Authenticate(ctx)
	}

	handler, err := server.NewOAuthHandler(creds.RedirectURI, state, exchange)
	if err != nil {
		return err
	}

	router := server.NewCallbackRouter()
	router.Use(server.RequestLogger(r.logger))
	router.Handler(handler)

	srv, err := server.Listen(r.config.Server.Addr(), router)
	if err != nil {
		return err
	}
	go func() {
		if err := srv.Serve(); err != nil {
			r.logger.Error("callback server stopped", "error", err)
		}
	}()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			r.logger.Warn("failed to stop callback server", "error", err)
		}
	}()

	r.logger.Info("waiting for authorization", "addr", srv.Addr(), "flow", kind)

	authURL := services.AuthorizeURL(creds.ClientID, creds.RedirectURI, state, r.scopes(), opts...)
	r.writePlain("Open this URL to authorize spotx:\n\n%s\n\n", authURL)
	if err := r.openBrowser(authURL); err != nil {
		r.logger.Warn("failed to open browser, open the URL manually", "error", err)
	}

	var result server.OAuthResult
	select {
	case result = <-handler.Result():
	case <-time.After(cmd.Duration("timeout")):
		return fmt.Errorf("%w: no authorization received after %v", shared.ErrTimeout, cmd.Duration("timeout"))
	case <-ctx.Done():
		return ctx.Err()
	}
	if err := result.Error(); err != nil {
		return err
	}

	session := models.NewSession(0, cmd.String("session"), kind, *result.Credential)

	svc, err := services.NewSpotifyService(ctx,
		&services.StoredCredential{Flow: r.userFlow(kind, "", ""), Credential: *result.Credential},
		r.serviceOptions()...,
	)
	if err != nil {
		return err
	}
	user, err := svc.GetCurrentUserProfile(ctx)
	if err != nil {
		r.logger.Warn("failed to fetch user profile", "error", err)
	} else {
		session.SetUserID(user.ID)
	}

	store, err := r.sessionStore()
	if err != nil {
		return err
	}
	if err := store.Save(session); err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}
	r.catalog = svc

	name := session.UserID()
	if user != nil && user.DisplayName != "" {
		name = user.DisplayName
	}
	r.writePlain("✓ Logged in as %s\n", name)
	return r.writePlain("✓ Session %q saved to %s\n", session.Name(), r.config.Database.Path)
}

// AuthStatus lists stored sessions. Tokens are never printed.
func (r *Runner) AuthStatus(ctx context.Context, cmd *cli.Command) error {
	store, err := r.sessionStore()
	if err != nil {
		return err
	}

	sessions, err := store.List(nil)
	if err != nil {
		return err
	}

	if len(sessions) == 0 {
		r.logger.Info("no stored sessions, run 'spotx auth login'")
	}
	return r.render(cmd, sessionSummaries(sessions, r.now()), formatter.SessionsTable(sessions, r.now()))
}

// AuthRefresh refreshes the current credential and writes it back to the session store.
func (r *Runner) AuthRefresh(ctx context.Context, cmd *cli.Command) error {
	catalog, err := r.catalogFor(ctx, cmd)
	if err != nil {
		return err
	}

	if err := catalog.RequestRefreshedToken(ctx); err != nil {
		return err
	}
	cred := catalog.Credential()

	kind, err := r.flowKind(cmd)
	if err != nil {
		return err
	}
	if kind != models.FlowClientCredentials {
		store, err := r.sessionStore()
		if err != nil {
			return err
		}
		session, err := store.GetByName(cmd.String("session"))
		if err != nil {
			return err
		}
		session.SetCredential(cred)
		if err := store.Save(session); err != nil {
			return fmt.Errorf("failed to store session: %w", err)
		}
	}

	r.logger.Info("token refreshed", "session", cmd.String("session"), "expires_in", cred.ExpiresIn)
	return r.writePlain("✓ Token refreshed, expires %s\n", cred.ExpiresAt.Local().Format(time.DateTime))
}

// AuthLogout deletes the current session.
func (r *Runner) AuthLogout(ctx context.Context, cmd *cli.Command) error {
	store, err := r.sessionStore()
	if err != nil {
		return err
	}

	name := cmd.String("session")
	session, err := store.GetByName(name)
	if errors.Is(err, shared.ErrSessionNotFound) {
		return fmt.Errorf("%w: no session %q", shared.ErrNotAuthenticated, name)
	} else if err != nil {
		return err
	}

	if err := store.Delete(session.ID()); err != nil {
		return err
	}
	return r.writePlain("✓ Logged out of session %q\n", name)
}

type sessionSummary struct {
	Name        string    `json:"name"`
	Flow        string    `json:"flow"`
	UserID      string    `json:"user_id,omitempty"`
	Scopes      []string  `json:"scopes"`
	ExpiresAt   time.Time `json:"expires_at"`
	Expired     bool      `json:"expired"`
	Refreshable bool      `json:"refreshable"`
}

func sessionSummaries(sessions []*models.Session, now time.Time) []sessionSummary {
	out := make([]sessionSummary, 0, len(sessions))
	for _, s := range sessions {
		cred := s.Credential()
		out = append(out, sessionSummary{
			Name:        s.Name(),
			Flow:        string(s.Flow()),
			UserID:      s.UserID(),
			Scopes:      cred.Scopes,
			ExpiresAt:   cred.ExpiresAt,
			Expired:     cred.Expired(now),
			Refreshable: cred.CanRefresh(),
		})
	}
	return out
}
