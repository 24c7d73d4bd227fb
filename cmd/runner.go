package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/spotx/internal/formatter"
	"github.com/desertthunder/spotx/internal/models"
	"github.com/desertthunder/spotx/internal/repositories"
	"github.com/desertthunder/spotx/internal/services"
	"github.com/desertthunder/spotx/internal/shared"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
//
// The catalog and the session store are built on first use so that commands like setup work without credentials.
type Runner struct {
	config      *shared.Config
	catalog     services.Catalog
	sessions    *repositories.SessionRepository
	db          *sql.DB
	httpClient  *http.Client
	logger      *log.Logger
	output      io.Writer
	openBrowser func(string) error
	tokenURL    string
	now         func() time.Time
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config      *shared.Config
	Catalog     services.Catalog
	Sessions    *repositories.SessionRepository
	HTTPClient  *http.Client
	Logger      *log.Logger
	Output      io.Writer
	OpenBrowser func(string) error
	TokenURL    string // accounts token endpoint, empty for the default
}

// NewRunner creates a new Runner with the provided configuration.
// A nil Config is loaded from the --config flag when a command runs.
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}
	if opts.OpenBrowser == nil {
		opts.OpenBrowser = shared.NewBrowserOpener(opts.Logger)
	}

	return &Runner{
		config:      opts.Config,
		catalog:     opts.Catalog,
		sessions:    opts.Sessions,
		httpClient:  opts.HTTPClient,
		logger:      opts.Logger,
		output:      opts.Output,
		openBrowser: opts.OpenBrowser,
		tokenURL:    opts.TokenURL,
		now:         time.Now,
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, authCommand, meCommand, albumCommand, artistCommand, trackCommand, playlistCommand,
		searchCommand, libraryCommand, followCommand, unfollowCommand, topCommand, browseCommand,
		recommendCommand, marketsCommand, exportCommand, apiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// action loads the configuration before running fn.
func (r *Runner) action(fn cli.ActionFunc) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		if err := r.configure(cmd); err != nil {
			return err
		}
		return fn(ctx, cmd)
	}
}

func (r *Runner) configure(cmd *cli.Command) error {
	if r.config == nil {
		path := cmd.String("config")
		if _, err := os.Stat(path); err == nil {
			config, err := shared.LoadConfig(path)
			if err != nil {
				return fmt.Errorf("%w: %v", shared.ErrInvalidConfig, err)
			}
			r.config = config
		} else {
			r.logger.Debug("config file not found, using defaults", "path", path)
			r.config = shared.DefaultConfig()
		}
	}

	level := cmd.String("log-level")
	if level == "" {
		level = r.config.Log.Level
	}
	ll, err := shared.ParseLogLevel(level)
	if err != nil {
		return err
	}
	shared.SetLogLevel(r.logger, ll)
	return nil
}

// Close releases the session store.
func (r *Runner) Close() error {
	if r.db == nil {
		return nil
	}
	err := r.db.Close()
	r.db = nil
	return err
}

func (r *Runner) sessionStore() (*repositories.SessionRepository, error) {
	if r.sessions != nil {
		return r.sessions, nil
	}

	db, err := shared.OpenDatabase(r.config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to open session store: %w", err)
	}
	r.db = db
	r.sessions = repositories.NewSessionRepository(db)
	return r.sessions, nil
}

func (r *Runner) flowKind(cmd *cli.Command) (models.FlowKind, error) {
	if cmd.Bool("pkce") {
		return models.FlowPKCE, nil
	}
	return models.ParseFlowKind(r.config.Credentials.Spotify.Flow)
}

func (r *Runner) scopes() []string {
	if scopes := r.config.Credentials.Spotify.Scopes; len(scopes) > 0 {
		return scopes
	}
	return services.DefaultScopes
}

// userFlow builds the flow used to exchange or refresh user tokens. code and verifier may be empty
// when the flow only refreshes.
func (r *Runner) userFlow(kind models.FlowKind, code, verifier string) services.AuthFlow {
	creds := r.config.Credentials.Spotify
	if kind == models.FlowPKCE {
		return &services.AuthorizationCodePKCE{
			ClientID:    creds.ClientID,
			Code:        code,
			RedirectURI: creds.RedirectURI,
			Verifier:    verifier,
			Scopes:      r.scopes(),
			TokenURL:    r.tokenURL,
		}
	}
	return &services.AuthorizationCode{
		ClientID:     creds.ClientID,
		ClientSecret: creds.ClientSecret,
		Code:         code,
		RedirectURI:  creds.RedirectURI,
		Scopes:       r.scopes(),
		TokenURL:     r.tokenURL,
	}
}

func (r *Runner) serviceOptions(extra ...services.Option) []services.Option {
	client := r.httpClient
	if timeout := r.config.API.Timeout(); timeout > 0 && client.Timeout == 0 {
		c := *client
		c.Timeout = timeout
		client = &c
	}
	opts := []services.Option{
		services.WithHTTPClient(client),
		services.WithBaseURL(r.config.API.BaseURL),
		services.WithLogger(shared.WithLogger(r.logger, "service", "spotify")),
	}
	return append(opts, extra...)
}

// catalogFor returns the injected catalog or authenticates a new service.
//
// Client credentials authenticate on every run. User flows resume the session named by --session
// and write refreshed credentials back to the store.
func (r *Runner) catalogFor(ctx context.Context, cmd *cli.Command) (services.Catalog, error) {
	if r.catalog != nil {
		return r.catalog, nil
	}

	if err := r.config.Validate(); err != nil {
		return nil, err
	}

	kind, err := r.flowKind(cmd)
	if err != nil {
		return nil, err
	}

	if kind == models.FlowClientCredentials {
		creds := r.config.Credentials.Spotify
		flow := &services.ClientCredentials{ClientID: creds.ClientID, ClientSecret: creds.ClientSecret, TokenURL: r.tokenURL}
		svc, err := services.NewSpotifyService(ctx, flow, r.serviceOptions()...)
		if err != nil {
			return nil, err
		}
		r.catalog = svc
		return svc, nil
	}

	store, err := r.sessionStore()
	if err != nil {
		return nil, err
	}
	session, err := store.GetByName(cmd.String("session"))
	if errors.Is(err, shared.ErrSessionNotFound) {
		return nil, fmt.Errorf("%w: no session %q, run 'spotx auth login' first", shared.ErrNotAuthenticated, cmd.String("session"))
	} else if err != nil {
		return nil, err
	}

	persist := func(c models.AccessCredential) {
		session.SetCredential(c)
		if err := store.Save(session); err != nil {
			r.logger.Warn("failed to store refreshed credential", "session", session.Name(), "error", err)
		}
	}

	flow := &services.StoredCredential{Flow: r.userFlow(session.Flow(), "", ""), Credential: session.Credential()}
	svc, err := services.NewSpotifyService(ctx, flow, r.serviceOptions(services.WithTokenRefreshCallback(persist))...)
	if err != nil {
		return nil, err
	}
	if cred := svc.Credential(); cred.AccessToken != session.Credential().AccessToken {
		r.logger.Info("access token refreshed", "session", session.Name())
		persist(cred)
	}

	r.catalog = svc
	return svc, nil
}

func (r *Runner) market(cmd *cli.Command) string {
	if m := cmd.String("market"); m != "" {
		return m
	}
	return r.config.API.Market
}

func (r *Runner) format(cmd *cli.Command) (formatter.Format, error) {
	return formatter.ParseFormat(cmd.String("format"))
}

// render writes value in the --format selected for cmd.
func (r *Runner) render(cmd *cli.Command, value any, tables ...formatter.Table) error {
	format, err := r.format(cmd)
	if err != nil {
		return err
	}
	if err := formatter.Render(r.output, format, value, tables...); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
