package registry

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/scottbass3/dgui/internal/api"
)

// Backend is the part of the API the selection store needs.
type Backend interface {
	ActiveRegistry(ctx context.Context) (api.Registry, error)
	ActivateRegistry(ctx context.Context, id int64) (api.Registry, error)
}

type Option func(*Selection)

// WithActivateHook runs after every successful activation. It is where the
// caller drops everything scoped to the previous registry.
func WithActivateHook(hook func(ctx context.Context, active api.Registry)) Option {
	return func(s *Selection) {
		s.onActivate = hook
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Selection) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Selection mirrors the registry the backend currently treats as active.
type Selection struct {
	backend    Backend
	onActivate func(ctx context.Context, active api.Registry)
	logger     *slog.Logger

	mu     sync.RWMutex
	active *api.Registry
}

func NewSelection(backend Backend, opts ...Option) *Selection {
	s := &Selection{
		backend: backend,
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load refreshes the active registry from the backend. Any failure leaves
// no registry selected.
func (s *Selection) Load(ctx context.Context) error {
	active, err := s.backend.ActiveRegistry(ctx)
	if err != nil {
		s.set(nil)
		return fmt.Errorf("load active registry: %w", err)
	}
	s.set(&active)
	return nil
}

// Activate switches the backend to registry id. On success the held
// registry is replaced before the activate hook runs; on failure nothing
// changes.
func (s *Selection) Activate(ctx context.Context, id int64) (api.Registry, error) {
	active, err := s.backend.ActivateRegistry(ctx, id)
	if err != nil {
		return api.Registry{}, fmt.Errorf("activate registry %d: %w", id, err)
	}
	active.IsActive = true
	s.set(&active)
	s.logger.Info("registry activated", "id", active.ID, "name", active.Name)
	if s.onActivate != nil {
		s.onActivate(ctx, active)
	}
	return active, nil
}

func (s *Selection) Active() (api.Registry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.active == nil {
		return api.Registry{}, false
	}
	return *s.active, true
}

func (s *Selection) Clear() {
	s.set(nil)
}

// PullCommand builds the pull command of repository:tag on the active
// registry.
func (s *Selection) PullCommand(repository, tag string) string {
	active, _ := s.Active()
	return PullCommand(active.URL, repository, tag)
}

func (s *Selection) set(active *api.Registry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = active
}
