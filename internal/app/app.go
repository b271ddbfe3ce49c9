// Package app wires the session, the API client, the registry selection and
// the browse navigator into one application state.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/scottbass3/dgui/internal/api"
	"github.com/scottbass3/dgui/internal/browse"
	"github.com/scottbass3/dgui/internal/config"
	"github.com/scottbass3/dgui/internal/registry"
	"github.com/scottbass3/dgui/internal/session"
)

var ErrNotLoggedIn = errors.New("not logged in")

type Option func(*options)

type options struct {
	logger        *slog.Logger
	requestLogger api.RequestLogger
	httpClient    *http.Client
	clock         func() time.Time
	retryDelay    *time.Duration
	sessionStore  *session.FileStore
}

func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

func WithRequestLogger(logger api.RequestLogger) Option {
	return func(o *options) { o.requestLogger = logger }
}

func WithHTTPClient(client *http.Client) Option {
	return func(o *options) { o.httpClient = client }
}

func WithClock(now func() time.Time) Option {
	return func(o *options) { o.clock = now }
}

func WithRetryDelay(delay time.Duration) Option {
	return func(o *options) { o.retryDelay = &delay }
}

// WithSessionFile overrides the snapshot file named in the configuration.
func WithSessionFile(store *session.FileStore) Option {
	return func(o *options) { o.sessionStore = store }
}

// App is the client state shared by the terminal UI and the CLI commands.
type App struct {
	Config    config.Config
	Session   *session.Store
	API       *api.Client
	Selection *registry.Selection
	Nav       *browse.Navigator

	logger *slog.Logger
}

// New restores the persisted session and builds every component around it.
// A corrupt snapshot is logged and treated as logged out.
func New(cfg config.Config, opts ...Option) (*App, error) {
	o := options{logger: slog.New(slog.DiscardHandler), clock: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	if o.sessionStore == nil {
		o.sessionStore = session.NewFileStore(cfg.SessionFile)
	}

	snapshot, err := o.sessionStore.Load()
	if err != nil {
		o.logger.Warn("discarding unreadable session snapshot", "path", o.sessionStore.Path(), "error", err)
		snapshot = session.Snapshot{}
	}

	a := &App{Config: cfg, logger: o.logger}
	a.Session = session.New(snapshot,
		session.WithClock(o.clock),
		session.WithHook(o.sessionStore.Hook(o.logger)),
	)

	apiOpts := []api.Option{
		api.WithTimeout(cfg.Timeout),
		api.WithLogger(o.logger),
		api.WithRequestLogger(o.requestLogger),
		api.WithClock(o.clock),
	}
	if o.httpClient != nil {
		apiOpts = append(apiOpts, api.WithHTTPClient(o.httpClient))
	}
	if o.retryDelay != nil {
		apiOpts = append(apiOpts, api.WithRetryDelay(*o.retryDelay))
	}
	a.API, err = api.New(cfg.Server, a.Session, apiOpts...)
	if err != nil {
		return nil, fmt.Errorf("create api client: %w", err)
	}

	a.Selection = registry.NewSelection(a.API,
		registry.WithLogger(o.logger),
		registry.WithActivateHook(func(ctx context.Context, _ api.Registry) {
			if err := a.Reset(ctx); err != nil {
				a.logger.Warn("reload after registry switch failed", "error", err)
			}
		}),
	)

	a.Nav = browse.NewNavigator(cfg.PageSize)
	if cfg.Location != "" {
		loc, err := browse.ParseLocation(cfg.Location)
		if err != nil {
			return nil, fmt.Errorf("start location: %w", err)
		}
		a.Nav.Restore(loc)
	}
	return a, nil
}

// Authenticated reports whether a usable session exists, logging out an
// expired one.
func (a *App) Authenticated() bool {
	return a.Session.CheckAuth()
}

// Start loads the active registry when a session exists.
func (a *App) Start(ctx context.Context) error {
	if !a.Authenticated() {
		return nil
	}
	return a.Selection.Load(ctx)
}

func (a *App) Login(ctx context.Context, username, password string) (session.User, error) {
	resp, err := a.API.Login(ctx, username, password)
	if err != nil {
		return session.User{}, err
	}
	// Cached reads belong to whoever was logged in before.
	a.API.ResetCache()
	a.Session.Login(resp.Token, resp.User, resp.ExpiresAt)
	a.logger.Info("logged in", "user", resp.User.Username)

	if err := a.Selection.Load(ctx); err != nil && !api.IsNotFound(err) {
		a.logger.Warn("load active registry after login failed", "error", err)
	}
	return resp.User, nil
}

func (a *App) Logout() {
	a.Session.Logout()
	a.API.ResetCache()
	a.Nav.Reset()
	a.Selection.Clear()
	a.logger.Info("logged out")
}

// Reset drops every cached read and browse position and reloads the active
// registry, as a cold start would.
func (a *App) Reset(ctx context.Context) error {
	a.API.ResetCache()
	a.Nav.Reset()
	if err := a.Selection.Load(ctx); err != nil {
		if api.IsNotFound(err) {
			return nil
		}
		return err
	}
	return nil
}

func (a *App) Activate(ctx context.Context, id int64) (api.Registry, error) {
	return a.Selection.Activate(ctx, id)
}

// DeleteImage deletes repository:tag. When the deleted tag is the one being
// browsed the navigator steps back to the tag listing.
func (a *App) DeleteImage(ctx context.Context, repository, tag string) error {
	if err := a.API.DeleteImage(ctx, repository, tag); err != nil {
		return err
	}
	loc := a.Nav.Location()
	if loc.Repository == repository && loc.Tag == tag {
		a.Nav.Back()
	}
	a.logger.Info("image deleted", "repository", repository, "tag", tag)
	return nil
}

// PullCommand is the pull command of repository:tag on the active registry.
func (a *App) PullCommand(repository, tag string) string {
	return a.Selection.PullCommand(repository, tag)
}

// RequireSession fails with an auth error when no usable session exists.
func (a *App) RequireSession() error {
	if a.Authenticated() {
		return nil
	}
	return ErrNotLoggedIn
}
