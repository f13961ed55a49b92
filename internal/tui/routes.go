package tui

import (
	"strings"

	"github.com/mfgtrace/tracectl/internal/session"
)

type page int

const (
	pageNone page = iota
	pageLogin
	pageDashboard
	pageProducts
	pageTracking
	pageQuality
	pageSuppliers
	pageDevices
)

// route binds a path fragment to a page. Matching is by substring in table
// order; the first match wins.
type route struct {
	fragment string
	page     page
	key      string
	title    string
}

var routes = []route{
	{"dashboard", pageDashboard, "1", "仪表盘"},
	{"products", pageProducts, "2", "产品管理"},
	{"tracking", pageTracking, "3", "产品追溯"},
	{"quality", pageQuality, "4", "质量检测"},
	{"suppliers", pageSuppliers, "5", "供应商"},
	{"devices", pageDevices, "6", "设备管理"},
}

// matchRoute returns the first route whose fragment occurs in path.
func matchRoute(path string) (route, bool) {
	for _, r := range routes {
		if strings.Contains(path, r.fragment) {
			return r, true
		}
	}
	return route{}, false
}

// routeForKey returns the route bound to a navigation key.
func routeForKey(key string) (route, bool) {
	for _, r := range routes {
		if r.key == key {
			return r, true
		}
	}
	return route{}, false
}

func isAuthPath(path string) bool {
	return strings.Contains(path, session.LoginPath) || strings.Contains(path, session.RegisterPath)
}

// Router holds the current location. It is the session.Navigator for the
// TUI: Redirect records the new path and the app re-routes on the next
// message it handles.
type Router struct {
	path    string
	pending bool
}

// NewRouter returns a router positioned at path ("/dashboard" when empty).
// A bare page name such as "products" is accepted.
func NewRouter(path string) *Router {
	return &Router{path: normalizePath(path)}
}

// Path returns the current path.
func (r *Router) Path() string {
	return r.path
}

// Redirect moves to path.
func (r *Router) Redirect(path string) {
	r.path = normalizePath(path)
	r.pending = true
}

// takePending reports whether a redirect happened since the last call.
func (r *Router) takePending() bool {
	p := r.pending
	r.pending = false
	return p
}

func normalizePath(path string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		return session.HomePath
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return path
}
