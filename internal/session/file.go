package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/gofrs/flock"
)

// SnapshotName is the file name of the persisted session.
const SnapshotName = "dgui-auth.json"

// DefaultPath returns the snapshot location under the XDG state directory.
func DefaultPath() string {
	path, err := xdg.StateFile(filepath.Join("dgui", SnapshotName))
	if err != nil {
		return SnapshotName
	}
	return path
}

// FileStore persists snapshots as JSON next to an advisory lock file, so two
// clients sharing a state directory never observe a torn write.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		trimmed = DefaultPath()
	}
	return &FileStore{path: trimmed}
}

func (f *FileStore) Path() string {
	return f.path
}

// Load returns the logged-out snapshot when nothing was persisted yet.
func (f *FileStore) Load() (Snapshot, error) {
	var snap Snapshot
	err := f.withLock(false, func() error {
		data, err := os.ReadFile(f.path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return nil
			}
			return err
		}
		if len(strings.TrimSpace(string(data))) == 0 {
			return nil
		}
		if err := json.Unmarshal(data, &snap); err != nil {
			return fmt.Errorf("session snapshot %s is corrupt: %w", f.path, err)
		}
		return nil
	})
	if err != nil {
		return Snapshot{}, err
	}
	return snap, nil
}

func (f *FileStore) Save(snap Snapshot) error {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return err
	}
	return f.withLock(true, func() error {
		tmp := f.path + ".tmp"
		if err := os.WriteFile(tmp, data, 0o600); err != nil {
			return err
		}
		return os.Rename(tmp, f.path)
	})
}

// Hook adapts Save into a post-commit hook. Failures are logged, never
// surfaced: a session that could not be written is still valid in memory.
func (f *FileStore) Hook(logger *slog.Logger) Hook {
	if logger == nil {
		logger = slog.Default()
	}
	return func(snap Snapshot) {
		if err := f.Save(snap); err != nil {
			logger.Warn("failed to persist session", "path", f.path, "error", err)
			return
		}
		logger.Debug("session persisted", "path", f.path, "authenticated", snap.IsAuthenticated)
	}
}

func (f *FileStore) withLock(exclusive bool, fn func() error) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return err
	}
	lock := flock.New(f.path + ".lock")
	var err error
	if exclusive {
		err = lock.Lock()
	} else {
		err = lock.RLock()
	}
	if err != nil {
		return fmt.Errorf("lock session snapshot: %w", err)
	}
	defer func() {
		_ = lock.Unlock()
	}()
	return fn()
}
