// Package session persists the login session across invocations. It
// is the single owner of the stored credential; the REST client and
// the chat engine only read it.
package session

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/bytedance/sonic"

	"github.com/renoribeiro/whatsapp-automation-v0-sub001/internal/domain"
)

const sessionFileName = "session.json"

// Store reads and writes the session record under a well-known path
// in the user's home directory (~/.wactl/session.json). The file
// survives process restarts; the token inside is opaque to this layer.
type Store struct {
	// dir overrides the storage directory; empty means ~/.wactl.
	dir string
}

// NewStore creates a store rooted at the default location.
func NewStore() *Store {
	return &Store{}
}

// NewStoreAt creates a store rooted at dir. Used by tests.
func NewStoreAt(dir string) *Store {
	return &Store{dir: dir}
}

func (s *Store) path() (string, error) {
	dir := s.dir
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		dir = filepath.Join(home, ".wactl")
	}
	return filepath.Join(dir, sessionFileName), nil
}

// Load returns the stored session, or nil when no session exists.
// A missing file is not an error; a corrupt file is.
func (s *Store) Load() (*domain.Session, error) {
	file, err := s.path()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(file)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read session file: %w", err)
	}

	var sess domain.Session
	if err := sonic.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("failed to parse session file: %w", err)
	}
	if sess.Token == "" {
		return nil, nil
	}

	return &sess, nil
}

// Save writes the session atomically-enough for a single-user CLI:
// directory created on demand, file mode 0600 (the token is a
// credential).
func (s *Store) Save(sess *domain.Session) error {
	if sess == nil || sess.Token == "" {
		return fmt.Errorf("refusing to save empty session")
	}
	if sess.IssuedAt.IsZero() {
		sess.IssuedAt = time.Now()
	}

	file, err := s.path()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(file), 0755); err != nil {
		return fmt.Errorf("failed to create session directory: %w", err)
	}

	data, err := sonic.MarshalIndent(sess, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	if err := os.WriteFile(file, data, 0600); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}

	return nil
}

// Clear removes the stored session. Clearing an absent session is a
// no-op.
func (s *Store) Clear() error {
	file, err := s.path()
	if err != nil {
		return err
	}
	if err := os.Remove(file); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove session file: %w", err)
	}
	return nil
}
