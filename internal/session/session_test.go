package session

import (
	"sync"
	"testing"
	"time"
)

func fixedClock(now time.Time) func() time.Time {
	return func() time.Time { return now }
}

func TestCheckAuth(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)

	tests := []struct {
		name      string
		initial   Snapshot
		want      bool
		wantClear bool
	}{
		{
			name:      "no token",
			initial:   Snapshot{},
			want:      false,
			wantClear: true,
		},
		{
			name:      "expired token",
			initial:   Snapshot{Token: "t", User: &User{ID: 1, Username: "admin"}, ExpiresAt: now.Unix() - 1, IsAuthenticated: true},
			want:      false,
			wantClear: true,
		},
		{
			name:      "expiry equal to now counts as expired",
			initial:   Snapshot{Token: "t", ExpiresAt: now.Unix(), IsAuthenticated: true},
			want:      false,
			wantClear: true,
		},
		{
			name:    "valid token",
			initial: Snapshot{Token: "t", User: &User{ID: 1, Username: "admin"}, ExpiresAt: now.Unix() + 60, IsAuthenticated: true},
			want:    true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			commits := 0
			s := New(tc.initial, WithClock(fixedClock(now)), WithHook(func(Snapshot) { commits++ }))

			if got := s.CheckAuth(); got != tc.want {
				t.Fatalf("expected CheckAuth %v, got %v", tc.want, got)
			}
			snap := s.Snapshot()
			if tc.wantClear {
				if snap.Token != "" || snap.User != nil || snap.ExpiresAt != 0 || snap.IsAuthenticated {
					t.Fatalf("expected cleared session, got %+v", snap)
				}
				if commits != 1 {
					t.Fatalf("expected logout to be committed once, got %d", commits)
				}
				return
			}
			if snap.Token != tc.initial.Token || snap.ExpiresAt != tc.initial.ExpiresAt || !snap.IsAuthenticated {
				t.Fatalf("expected state unchanged, got %+v", snap)
			}
			if commits != 0 {
				t.Fatalf("expected no commits for a valid session, got %d", commits)
			}
		})
	}
}

func TestLoginThenCheckAuth(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	s := New(Snapshot{}, WithClock(fixedClock(now)))

	s.Login("token-1", User{ID: 7, Username: "admin", IsAdmin: true}, now.Unix()+3600)

	if !s.CheckAuth() {
		t.Fatalf("expected fresh login to be authenticated")
	}
	if !s.IsAuthenticated() {
		t.Fatalf("expected authenticated flag")
	}
	if s.Token() != "token-1" {
		t.Fatalf("unexpected token %q", s.Token())
	}
	user, ok := s.User()
	if !ok || user.Username != "admin" || !user.IsAdmin {
		t.Fatalf("unexpected user %+v", user)
	}
}

func TestCheckAuthDoesNotClearConcurrentLogin(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	var (
		s        *Store
		once     sync.Once
		loggedIn = make(chan struct{})
	)
	// The expiry check reads the clock; a login racing it starts right there.
	clock := func() time.Time {
		once.Do(func() {
			go func() {
				s.Login("fresh", User{ID: 2, Username: "admin"}, now.Unix()+3600)
				close(loggedIn)
			}()
			select {
			case <-loggedIn:
			case <-time.After(50 * time.Millisecond):
			}
		})
		return now
	}
	s = New(Snapshot{Token: "stale", ExpiresAt: now.Unix() - 1, IsAuthenticated: true}, WithClock(clock))

	if s.CheckAuth() {
		t.Fatalf("expected expired session to fail the check")
	}
	<-loggedIn
	if s.Token() != "fresh" || !s.IsAuthenticated() {
		t.Fatalf("expected the concurrent login to survive, got %+v", s.Snapshot())
	}
}

func TestLoginOverwritesPreviousSession(t *testing.T) {
	s := New(Snapshot{Token: "old", User: &User{ID: 1, Username: "old"}, ExpiresAt: 10, IsAuthenticated: true})
	s.Login("new", User{ID: 2, Username: "new"}, 20)

	snap := s.Snapshot()
	if snap.Token != "new" || snap.User.Username != "new" || snap.ExpiresAt != 20 {
		t.Fatalf("expected login to overwrite, got %+v", snap)
	}
}

func TestLogoutIsIdempotent(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	var snapshots []Snapshot
	s := New(Snapshot{}, WithClock(fixedClock(now)), WithHook(func(snap Snapshot) {
		snapshots = append(snapshots, snap)
	}))
	s.Login("token", User{ID: 1, Username: "admin"}, now.Unix()+60)

	s.Logout()
	s.Logout()

	if s.CheckAuth() {
		t.Fatalf("expected CheckAuth false after logout")
	}
	if len(snapshots) != 4 {
		t.Fatalf("expected a persisted snapshot per transition, got %d", len(snapshots))
	}
	for _, snap := range snapshots[1:] {
		if snap.IsAuthenticated || snap.Token != "" {
			t.Fatalf("expected cleared snapshot, got %+v", snap)
		}
	}
}

func TestSnapshotIsDetached(t *testing.T) {
	s := New(Snapshot{})
	s.Login("token", User{ID: 1, Username: "admin"}, 100)

	snap := s.Snapshot()
	snap.User.Username = "mutated"

	user, _ := s.User()
	if user.Username != "admin" {
		t.Fatalf("expected store state to be isolated from snapshots, got %q", user.Username)
	}
}

func TestOnChange(t *testing.T) {
	s := New(Snapshot{})
	var got Snapshot
	s.OnChange(func(snap Snapshot) { got = snap })

	s.Login("token", User{ID: 3, Username: "ops"}, 100)

	if got.Token != "token" || !got.IsAuthenticated {
		t.Fatalf("expected hook to observe login, got %+v", got)
	}
}
