package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mfgtrace/tracectl/internal/credstore"
	"github.com/mfgtrace/tracectl/pkg/domain"
)

type fakeNav struct {
	path      string
	redirects []string
}

func (n *fakeNav) Path() string { return n.path }

func (n *fakeNav) Redirect(path string) {
	n.redirects = append(n.redirects, path)
	n.path = path
}

func newManager(t *testing.T, path string) (*Manager, *credstore.Store, *fakeNav) {
	t.Helper()
	store := credstore.New(t.TempDir())
	nav := &fakeNav{path: path}
	return NewManager(store, nav, &Context{}), store, nav
}

func TestEnsureAuthenticated_NoToken(t *testing.T) {
	tests := []struct {
		path         string
		wantOutcome  Outcome
		wantRedirect bool
	}{
		{"/products", RedirectedToLogin, true},
		{"/dashboard", RedirectedToLogin, true},
		{"/", RedirectedToLogin, true},
		{"/login", Anonymous, false},
		{"/register", Anonymous, false},
		{"/auth/login?next=/products", Anonymous, false},
	}
	for _, tc := range tests {
		t.Run(tc.path, func(t *testing.T) {
			m, _, nav := newManager(t, tc.path)
			if got := m.EnsureAuthenticated(); got != tc.wantOutcome {
				t.Errorf("EnsureAuthenticated() = %v, want %v", got, tc.wantOutcome)
			}
			if tc.wantRedirect {
				if len(nav.redirects) != 1 || nav.redirects[0] != LoginPath {
					t.Errorf("redirects = %v, want [/login]", nav.redirects)
				}
			} else if len(nav.redirects) != 0 {
				t.Errorf("redirects = %v, want none", nav.redirects)
			}
			if m.Context().User() != nil {
				t.Error("expected no current user")
			}
		})
	}
}

func TestEnsureAuthenticated_ValidSession(t *testing.T) {
	m, store, nav := newManager(t, "/dashboard")
	if err := store.Set("abc123", domain.User{Username: "alice"}); err != nil {
		t.Fatal(err)
	}

	if got := m.EnsureAuthenticated(); got != Authenticated {
		t.Fatalf("EnsureAuthenticated() = %v, want authenticated", got)
	}
	if len(nav.redirects) != 0 {
		t.Errorf("redirects = %v, want none", nav.redirects)
	}
	if m.Context().Username() != "alice" {
		t.Errorf("Username() = %q, want alice", m.Context().Username())
	}
}

func TestEnsureAuthenticated_CorruptUser(t *testing.T) {
	m, store, nav := newManager(t, "/products")
	writeKey(t, store.Dir(), credstore.KeyToken, "abc123")
	writeKey(t, store.Dir(), credstore.KeyUser, "{oops")

	if got := m.EnsureAuthenticated(); got != ForcedLogout {
		t.Fatalf("EnsureAuthenticated() = %v, want forced logout", got)
	}
	assertLoggedOut(t, store, nav)
}

func TestEnsureAuthenticated_TokenWithoutUser(t *testing.T) {
	m, store, nav := newManager(t, "/tracking")
	writeKey(t, store.Dir(), credstore.KeyToken, "abc123")

	if got := m.EnsureAuthenticated(); got != ForcedLogout {
		t.Fatalf("EnsureAuthenticated() = %v, want forced logout", got)
	}
	assertLoggedOut(t, store, nav)
}

func TestLogout_Idempotent(t *testing.T) {
	m, store, nav := newManager(t, "/dashboard")
	if err := store.Set("abc123", domain.User{Username: "alice"}); err != nil {
		t.Fatal(err)
	}
	m.EnsureAuthenticated()

	m.Logout()
	assertLoggedOut(t, store, nav)

	m.Logout()
	if len(nav.redirects) != 2 || nav.redirects[1] != LoginPath {
		t.Errorf("redirects = %v, want login twice", nav.redirects)
	}
	if m.Context().User() != nil {
		t.Error("expected no current user after second logout")
	}
}

func TestLogin(t *testing.T) {
	m, store, _ := newManager(t, "/login")
	if err := m.Login("tok", domain.User{Username: "bob"}); err != nil {
		t.Fatalf("Login() error: %v", err)
	}
	if m.Context().Username() != "bob" {
		t.Errorf("Username() = %q, want bob", m.Context().Username())
	}
	sess, err := store.Get()
	if err != nil || sess.Token != "tok" {
		t.Errorf("stored session = %+v, %v", sess, err)
	}
}

func TestContext_Nil(t *testing.T) {
	var c *Context
	if c.User() != nil || c.Username() != "" {
		t.Error("nil context should report no user")
	}
}

func assertLoggedOut(t *testing.T, store *credstore.Store, nav *fakeNav) {
	t.Helper()
	sess, err := store.Get()
	if err != nil {
		t.Fatalf("store.Get() after logout error: %v", err)
	}
	if sess.Authenticated() {
		t.Error("expected storage cleared")
	}
	if len(nav.redirects) == 0 || nav.redirects[len(nav.redirects)-1] != LoginPath {
		t.Errorf("redirects = %v, want last redirect to /login", nav.redirects)
	}
}

func writeKey(t *testing.T, dir, key, value string) {
	t.Helper()
	if err := os.MkdirAll(dir, 0700); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, key), []byte(value), 0600); err != nil {
		t.Fatal(err)
	}
}
