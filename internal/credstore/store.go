// Package credstore persists the access token and user record between runs.
//
// Each key is a file in the state directory, written atomically with owner
// only permissions. Values are read fresh on every call so that a login or
// logout from another process is seen immediately.
package credstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mfgtrace/tracectl/pkg/domain"
)

// Storage keys.
const (
	KeyToken = "access_token"
	KeyUser  = "user"
)

// ErrCorruptUser is returned by Get when a token is stored but the user
// record cannot be decoded. The returned Session still carries the token.
var ErrCorruptUser = errors.New("stored user record is corrupt")

// Session is the persisted authentication state.
type Session struct {
	Token string
	User  *domain.User
}

// Authenticated reports whether a token is present.
func (s Session) Authenticated() bool {
	return s.Token != ""
}

// Store is a file-backed credential store.
type Store struct {
	dir string
}

// New returns a store rooted at dir. The directory is created on first write.
func New(dir string) *Store {
	return &Store{dir: dir}
}

// Dir returns the state directory.
func (s *Store) Dir() string {
	return s.dir
}

// Get reads the session. Missing keys yield an empty session and no error.
func (s *Store) Get() (Session, error) {
	token, err := s.read(KeyToken)
	if err != nil {
		return Session{}, fmt.Errorf("credstore.Get: %w", err)
	}
	sess := Session{Token: strings.TrimSpace(token)}

	raw, err := s.read(KeyUser)
	if err != nil {
		return sess, fmt.Errorf("credstore.Get: %w", err)
	}
	if strings.TrimSpace(raw) == "" {
		return sess, nil
	}
	var u domain.User
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		return sess, fmt.Errorf("credstore.Get: %w: %v", ErrCorruptUser, err)
	}
	if u.Username == "" {
		return sess, fmt.Errorf("credstore.Get: %w: missing username", ErrCorruptUser)
	}
	sess.User = &u
	return sess, nil
}

// Token returns the stored access token, or "" if none is readable.
func (s *Store) Token() string {
	token, err := s.read(KeyToken)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(token)
}

// Set stores the token and user record together.
func (s *Store) Set(token string, user domain.User) error {
	if token == "" {
		return fmt.Errorf("credstore.Set: empty token")
	}
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("credstore.Set: marshal user: %w", err)
	}
	if err := s.write(KeyToken, []byte(token)); err != nil {
		return fmt.Errorf("credstore.Set: %w", err)
	}
	if err := s.write(KeyUser, data); err != nil {
		return fmt.Errorf("credstore.Set: %w", err)
	}
	return nil
}

// Clear removes both keys. Clearing an empty store is not an error.
func (s *Store) Clear() error {
	var errs []error
	for _, key := range []string{KeyToken, KeyUser} {
		if err := os.Remove(s.path(key)); err != nil && !os.IsNotExist(err) {
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("credstore.Clear: %w", err)
	}
	return nil
}

func (s *Store) path(key string) string {
	return filepath.Join(s.dir, key)
}

func (s *Store) read(key string) (string, error) {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("read %s: %w", key, err)
	}
	return string(data), nil
}

// write stages the value next to its final path and renames it into place.
func (s *Store) write(key string, data []byte) error {
	if err := os.MkdirAll(s.dir, 0700); err != nil {
		return fmt.Errorf("create %s: %w", s.dir, err)
	}
	stage := s.path(key) + ".new"
	if err := os.WriteFile(stage, data, 0600); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	if err := os.Rename(stage, s.path(key)); err != nil {
		os.Remove(stage) //nolint:errcheck
		return fmt.Errorf("replace %s: %w", key, err)
	}
	return nil
}
