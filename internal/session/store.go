package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/soares-ari/HelpDesk-AI/internal/api"
)

// Storage key names, kept stable so a profile survives client upgrades:
// an opaque bearer string and a JSON-encoded identity.
const (
	tokenKey = "auth_token"
	userKey  = "current_user"
)

// Store persists a session between runs.
type Store interface {
	// Load returns the persisted token and identity. A missing session is
	// ("", nil, nil), not an error.
	Load() (token string, user *api.User, err error)
	// Save overwrites the persisted token and identity. No merge.
	Save(token string, user api.User) error
	// Clear removes both keys. Idempotent.
	Clear() error
}

// FileStore keeps the session as two files in a state directory, standing
// in for the browser profile's local storage.
type FileStore struct {
	dir string
}

// NewFileStore creates a store rooted at dir, creating it if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create state dir: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) tokenPath() string { return filepath.Join(s.dir, tokenKey) }
func (s *FileStore) userPath() string  { return filepath.Join(s.dir, userKey) }

// Load reads the persisted token and identity.
func (s *FileStore) Load() (string, *api.User, error) {
	raw, err := os.ReadFile(s.tokenPath())
	if os.IsNotExist(err) {
		return "", nil, nil
	}
	if err != nil {
		return "", nil, fmt.Errorf("read token: %w", err)
	}
	token := strings.TrimSpace(string(raw))

	userRaw, err := os.ReadFile(s.userPath())
	if os.IsNotExist(err) {
		return token, nil, nil
	}
	if err != nil {
		return "", nil, fmt.Errorf("read user: %w", err)
	}

	var user api.User
	if err := json.Unmarshal(userRaw, &user); err != nil {
		return "", nil, fmt.Errorf("decode user: %w", err)
	}
	return token, &user, nil
}

// Save overwrites both keys.
func (s *FileStore) Save(token string, user api.User) error {
	if err := os.WriteFile(s.tokenPath(), []byte(token), 0o600); err != nil {
		return fmt.Errorf("write token: %w", err)
	}
	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}
	if err := os.WriteFile(s.userPath(), raw, 0o600); err != nil {
		return fmt.Errorf("write user: %w", err)
	}
	return nil
}

// Clear removes both keys unconditionally.
func (s *FileStore) Clear() error {
	if err := os.Remove(s.tokenPath()); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove token: %w", err)
	}
	if err := os.Remove(s.userPath()); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove user: %w", err)
	}
	return nil
}

// MemStore is an in-memory Store for tests.
type MemStore struct {
	token string
	user  *api.User
}

// Load returns the in-memory session.
func (s *MemStore) Load() (string, *api.User, error) {
	return s.token, s.user, nil
}

// Save overwrites the in-memory session.
func (s *MemStore) Save(token string, user api.User) error {
	s.token = token
	u := user
	s.user = &u
	return nil
}

// Clear drops the in-memory session.
func (s *MemStore) Clear() error {
	s.token = ""
	s.user = nil
	return nil
}
