// Package session holds the client's authentication state and its lifecycle.
//
// The Store is the only state that survives restarts. State transitions are
// pure; persistence and UI notification are post-commit hooks registered with
// WithHook or OnChange.
package session

import (
	"sync"
	"time"
)

type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	IsAdmin  bool   `json:"is_admin"`
}

// Snapshot is the persisted shape of a session.
type Snapshot struct {
	Token           string `json:"token"`
	User            *User  `json:"user"`
	ExpiresAt       int64  `json:"expiresAt"`
	IsAuthenticated bool   `json:"isAuthenticated"`
}

// Hook runs after every committed transition with the new snapshot.
type Hook func(Snapshot)

type Option func(*Store)

func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

func WithHook(hook Hook) Option {
	return func(s *Store) {
		if hook != nil {
			s.hooks = append(s.hooks, hook)
		}
	}
}

type Store struct {
	mu    sync.RWMutex
	state Snapshot
	now   func() time.Time

	hookMu sync.RWMutex
	hooks  []Hook
}

// New builds a store seeded with a previously persisted snapshot.
func New(initial Snapshot, opts ...Option) *Store {
	s := &Store{
		state: cloneSnapshot(initial),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// OnChange registers a hook after construction.
func (s *Store) OnChange(hook Hook) {
	if hook == nil {
		return
	}
	s.hookMu.Lock()
	s.hooks = append(s.hooks, hook)
	s.hookMu.Unlock()
}

// Login overwrites the session unconditionally.
func (s *Store) Login(token string, user User, expiresAt int64) {
	s.commit(func(st *Snapshot) {
		u := user
		st.Token = token
		st.User = &u
		st.ExpiresAt = expiresAt
		st.IsAuthenticated = true
	})
}

// Logout clears the session. Calling it on an empty session is harmless.
func (s *Store) Logout() {
	s.commit(func(st *Snapshot) {
		*st = Snapshot{}
	})
}

// CheckAuth reports whether the session holds a token that has not expired.
// A missing or expired token logs the session out as a side effect. Expiry is
// only noticed here or through a 401 response; nothing runs in the background.
// The check and the logout happen under one lock so a concurrent Login is
// never cleared.
func (s *Store) CheckAuth() bool {
	valid := true
	s.commitIf(func(st *Snapshot) bool {
		if st.Token != "" && st.ExpiresAt > s.now().Unix() {
			return false
		}
		valid = false
		*st = Snapshot{}
		return true
	})
	return valid
}

func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Token
}

func (s *Store) User() (User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state.User == nil {
		return User{}, false
	}
	return *s.state.User, true
}

// IsAuthenticated returns the flag as of the last transition. Use CheckAuth to
// also account for expiry.
func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.IsAuthenticated
}

func (s *Store) ExpiresAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state.ExpiresAt == 0 {
		return time.Time{}
	}
	return time.Unix(s.state.ExpiresAt, 0)
}

func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneSnapshot(s.state)
}

func (s *Store) commit(mutate func(*Snapshot)) {
	s.commitIf(func(st *Snapshot) bool {
		mutate(st)
		return true
	})
}

// commitIf runs hooks only when mutate reports a change.
func (s *Store) commitIf(mutate func(*Snapshot) bool) {
	s.mu.Lock()
	if !mutate(&s.state) {
		s.mu.Unlock()
		return
	}
	snap := cloneSnapshot(s.state)
	s.mu.Unlock()

	s.hookMu.RLock()
	hooks := append([]Hook(nil), s.hooks...)
	s.hookMu.RUnlock()
	for _, hook := range hooks {
		hook(snap)
	}
}

func cloneSnapshot(snap Snapshot) Snapshot {
	if snap.User != nil {
		u := *snap.User
		snap.User = &u
	}
	return snap
}
