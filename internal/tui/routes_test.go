package tui

import "testing"

func TestMatchRoute(t *testing.T) {
	tests := []struct {
		path   string
		want   page
		wantOK bool
	}{
		{"/dashboard", pageDashboard, true},
		{"/admin/devices/7", pageDevices, true},
		{"/tracking?qr=1", pageTracking, true},
		{"/products/dashboard", pageDashboard, true},
		{"/quality/suppliers", pageQuality, true},
		{"/", pageNone, false},
		{"/reports", pageNone, false},
	}
	for _, tc := range tests {
		t.Run(tc.path, func(t *testing.T) {
			r, ok := matchRoute(tc.path)
			if ok != tc.wantOK || r.page != tc.want {
				t.Errorf("matchRoute(%q) = %d, %v; want %d, %v", tc.path, r.page, ok, tc.want, tc.wantOK)
			}
		})
	}
}

func TestRouteForKey(t *testing.T) {
	for i, r := range routes {
		got, ok := routeForKey(r.key)
		if !ok || got.page != routes[i].page {
			t.Errorf("routeForKey(%q) = %d, %v", r.key, got.page, ok)
		}
	}
	if _, ok := routeForKey("9"); ok {
		t.Error("routeForKey(9) should not match")
	}
}

func TestRouter(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", "/dashboard"},
		{"products", "/products"},
		{"/tracking", "/tracking"},
		{"  devices ", "/devices"},
	}
	for _, tc := range tests {
		if got := NewRouter(tc.in).Path(); got != tc.want {
			t.Errorf("NewRouter(%q).Path() = %q, want %q", tc.in, got, tc.want)
		}
	}

	r := NewRouter("/dashboard")
	if r.takePending() {
		t.Error("new router should have no pending redirect")
	}
	r.Redirect("/login")
	if r.Path() != "/login" || !r.takePending() {
		t.Error("Redirect should update path and mark pending")
	}
	if r.takePending() {
		t.Error("takePending should reset")
	}
}

func TestIsAuthPath(t *testing.T) {
	for _, p := range []string{"/login", "/register", "/auth/login?next=/"} {
		if !isAuthPath(p) {
			t.Errorf("isAuthPath(%q) = false", p)
		}
	}
	if isAuthPath("/dashboard") {
		t.Error("isAuthPath(/dashboard) = true")
	}
}
