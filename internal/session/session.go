// Package session decides whether the operator is authenticated and owns
// the in-memory identity for the life of the process.
package session

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/mfgtrace/tracectl/internal/credstore"
	"github.com/mfgtrace/tracectl/pkg/domain"
)

// Well-known paths.
const (
	LoginPath    = "/login"
	RegisterPath = "/register"
	HomePath     = "/dashboard"
)

// Store is the persisted side of a session.
type Store interface {
	Get() (credstore.Session, error)
	Set(token string, user domain.User) error
	Clear() error
}

// Navigator exposes the current location and moves away from it.
type Navigator interface {
	Path() string
	Redirect(path string)
}

// Outcome is the result of EnsureAuthenticated.
type Outcome int

const (
	// Authenticated: a valid session was loaded into the Context.
	Authenticated Outcome = iota
	// RedirectedToLogin: no token; the navigator was sent to the login page.
	RedirectedToLogin
	// Anonymous: no token, but already on the login or registration page.
	Anonymous
	// ForcedLogout: stored credentials were unreadable and have been cleared.
	ForcedLogout
)

func (o Outcome) String() string {
	switch o {
	case Authenticated:
		return "authenticated"
	case RedirectedToLogin:
		return "redirected"
	case Anonymous:
		return "anonymous"
	case ForcedLogout:
		return "forced-logout"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// Context is the process-wide session context. It is created once at
// startup and passed by pointer to whatever needs the current identity.
type Context struct {
	user *domain.User
}

// User returns the current user, or nil when logged out.
func (c *Context) User() *domain.User {
	if c == nil {
		return nil
	}
	return c.user
}

// Username returns the current username, or "".
func (c *Context) Username() string {
	if u := c.User(); u != nil {
		return u.Username
	}
	return ""
}

// Manager gates pages on authentication.
type Manager struct {
	store Store
	nav   Navigator
	ctx   *Context
}

// NewManager returns a manager. ctx must not be nil.
func NewManager(store Store, nav Navigator, ctx *Context) *Manager {
	return &Manager{store: store, nav: nav, ctx: ctx}
}

// Context returns the session context the manager populates.
func (m *Manager) Context() *Context {
	return m.ctx
}

// EnsureAuthenticated loads the stored session into the Context. Without a
// token it redirects to the login page unless the current path already is
// the login or registration page. Any failure reading the stored
// credentials forces a full logout.
func (m *Manager) EnsureAuthenticated() Outcome {
	sess, err := m.store.Get()
	if err != nil {
		log.Warn().Err(err).Msg("auth check failed, logging out")
		m.Logout()
		return ForcedLogout
	}
	if !sess.Authenticated() {
		m.ctx.user = nil
		if onAuthPage(m.nav.Path()) {
			return Anonymous
		}
		m.nav.Redirect(LoginPath)
		return RedirectedToLogin
	}
	if sess.User == nil {
		log.Warn().Msg("token stored without user record, logging out")
		m.Logout()
		return ForcedLogout
	}
	m.ctx.user = sess.User
	return Authenticated
}

// Login stores freshly issued credentials and makes them current.
func (m *Manager) Login(token string, user domain.User) error {
	if err := m.store.Set(token, user); err != nil {
		return fmt.Errorf("session.Login: %w", err)
	}
	u := user
	m.ctx.user = &u
	return nil
}

// Logout clears stored credentials and the current user, then navigates to
// the login page. Safe to call when already logged out.
func (m *Manager) Logout() {
	if err := m.store.Clear(); err != nil {
		log.Error().Err(err).Msg("could not clear stored credentials")
	}
	m.ctx.user = nil
	m.nav.Redirect(LoginPath)
}

func onAuthPage(path string) bool {
	return strings.Contains(path, LoginPath) || strings.Contains(path, RegisterPath)
}
