package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/mfgtrace/tracectl/pkg/domain"
)

type notice struct {
	title    string
	message  string
	severity domain.Severity
}

type recordingNotifier struct {
	mu      sync.Mutex
	notices []notice
}

func (r *recordingNotifier) Notify(title, message string, severity domain.Severity) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notices = append(r.notices, notice{title, message, severity})
}

func (r *recordingNotifier) all() []notice {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]notice(nil), r.notices...)
}

func newTestClient(t *testing.T, h http.HandlerFunc, token string) (*Client, *recordingNotifier) {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	n := &recordingNotifier{}
	return New(srv.URL+"/api", StaticToken(token), n), n
}

func TestRequest_Success(t *testing.T) {
	c, n := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/products" {
			http.NotFound(w, r)
			return
		}
		if got := r.Header.Get("Content-Type"); got != "application/json" {
			t.Errorf("Content-Type = %q, want application/json", got)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer abc123" {
			t.Errorf("Authorization = %q, want %q", got, "Bearer abc123")
		}
		json.NewEncoder(w).Encode(map[string]any{"products": []any{}}) //nolint:errcheck
	}, "abc123")

	raw, err := c.Request(context.Background(), "/products", "", nil)
	if err != nil {
		t.Fatalf("Request() error: %v", err)
	}
	var body map[string][]any
	if err := json.Unmarshal(raw, &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	products, ok := body["products"]
	if !ok || len(products) != 0 {
		t.Errorf("body = %s, want {\"products\":[]}", raw)
	}
	if got := n.all(); len(got) != 0 {
		t.Errorf("got %d notifications on success, want 0", len(got))
	}
}

func TestRequest_NoTokenNoAuthorization(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "" {
			t.Errorf("Authorization = %q, want none", got)
		}
		w.Write([]byte(`{}`)) //nolint:errcheck
	}, "")

	if _, err := c.Request(context.Background(), "/dashboard/stats", http.MethodGet, nil); err != nil {
		t.Fatalf("Request() error: %v", err)
	}
}

func TestRequest_TokenReadPerCall(t *testing.T) {
	var seen []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, r.Header.Get("Authorization"))
		w.Write([]byte(`{}`)) //nolint:errcheck
	}))
	defer srv.Close()

	tok := &mutableToken{}
	c := New(srv.URL, tok, nil)
	c.Request(context.Background(), "/a", "", nil) //nolint:errcheck
	tok.value = "later"
	c.Request(context.Background(), "/b", "", nil) //nolint:errcheck

	if len(seen) != 2 || seen[0] != "" || seen[1] != "Bearer later" {
		t.Errorf("Authorization headers = %q, want [\"\" \"Bearer later\"]", seen)
	}
}

type mutableToken struct{ value string }

func (m *mutableToken) Token() string { return m.value }

func TestRequest_BodyOnlyForPostAndPut(t *testing.T) {
	tests := []struct {
		method   string
		wantBody bool
	}{
		{http.MethodGet, false},
		{http.MethodDelete, false},
		{http.MethodPost, true},
		{http.MethodPut, true},
	}
	for _, tc := range tests {
		t.Run(tc.method, func(t *testing.T) {
			c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				if r.Method != tc.method {
					t.Errorf("method = %s, want %s", r.Method, tc.method)
				}
				data, _ := io.ReadAll(r.Body) //nolint:errcheck
				if tc.wantBody && string(data) != `{"qr_code":"Q1"}` {
					t.Errorf("body = %q, want JSON payload", data)
				}
				if !tc.wantBody && len(data) != 0 {
					t.Errorf("body = %q, want empty", data)
				}
				w.Write([]byte(`{"ok":true}`)) //nolint:errcheck
			}, "tok")

			if _, err := c.Request(context.Background(), "/tracking/scan", tc.method, map[string]string{"qr_code": "Q1"}); err != nil {
				t.Fatalf("Request() error: %v", err)
			}
		})
	}
}

func TestRequest_APIErrorWithServerMessage(t *testing.T) {
	c, n := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"message": "未找到对应的产品信息"}) //nolint:errcheck
	}, "tok")

	_, err := c.Request(context.Background(), "/tracking/scan", http.MethodPost, map[string]string{"qr_code": "x"})
	if err == nil {
		t.Fatal("expected error for 404 response")
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error = %T, want *APIError", err)
	}
	if apiErr.StatusCode != http.StatusNotFound {
		t.Errorf("StatusCode = %d, want 404", apiErr.StatusCode)
	}
	if err.Error() != "未找到对应的产品信息" {
		t.Errorf("error = %q, want server message", err.Error())
	}
	if !IsStatus(err, http.StatusNotFound) {
		t.Error("IsStatus(err, 404) = false, want true")
	}

	got := n.all()
	if len(got) != 1 {
		t.Fatalf("got %d notifications, want exactly 1", len(got))
	}
	if got[0].severity != domain.SeverityError || got[0].message != "未找到对应的产品信息" {
		t.Errorf("notification = %+v", got[0])
	}
}

func TestRequest_APIErrorFallsBackToStatus(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"html body", "<html>bad gateway</html>"},
		{"json without message", `{"error":"boom"}`},
		{"empty body", ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c, n := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusBadGateway)
				w.Write([]byte(tc.body)) //nolint:errcheck
			}, "tok")

			_, err := c.Request(context.Background(), "/devices", "", nil)
			if err == nil {
				t.Fatal("expected error for 502 response")
			}
			if !strings.Contains(err.Error(), "502") {
				t.Errorf("error = %q, want it to contain the status code", err.Error())
			}
			if got := n.all(); len(got) != 1 {
				t.Errorf("got %d notifications, want exactly 1", len(got))
			}
		})
	}
}

func TestRequest_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close() // nothing listens any more

	n := &recordingNotifier{}
	c := New(url+"/api", StaticToken("tok"), n)
	_, err := c.Request(context.Background(), "/products", "", nil)
	if err == nil {
		t.Fatal("expected error when the server is unreachable")
	}
	if !IsTransport(err) {
		t.Fatalf("error = %T, want *TransportError", err)
	}
	if err.Error() != msgRequestFailed {
		t.Errorf("error = %q, want generic %q", err.Error(), msgRequestFailed)
	}
	got := n.all()
	if len(got) != 1 || got[0].severity != domain.SeverityError {
		t.Errorf("notifications = %+v, want exactly one error", got)
	}
}

func TestRequest_InvalidJSONOnSuccess(t *testing.T) {
	c, n := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("<html>login</html>")) //nolint:errcheck
	}, "tok")

	raw, err := c.Request(context.Background(), "/dashboard/stats", "", nil)
	if err == nil {
		t.Fatalf("expected error for non-JSON body, got %s", raw)
	}
	if !IsTransport(err) {
		t.Errorf("error = %T, want *TransportError", err)
	}
	if got := n.all(); len(got) != 1 {
		t.Errorf("got %d notifications, want exactly 1", len(got))
	}
}

func TestRequest_CancelledContext(t *testing.T) {
	c, n := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{}`)) //nolint:errcheck
	}, "tok")
	ctx, cancel := context.WithCancel(context.Background())
	cancel() // cancel immediately

	_, err := c.Request(ctx, "/products", "", nil)
	if err == nil {
		t.Fatal("expected error for canceled context")
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want it to wrap context.Canceled", err)
	}
	if got := n.all(); len(got) != 1 {
		t.Errorf("got %d notifications, want exactly 1", len(got))
	}
}

type countingTransport struct {
	calls int
	next  http.RoundTripper
}

func (c *countingTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	c.calls++
	return c.next.RoundTrip(r)
}

func TestWithHTTPClient(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{}`)) //nolint:errcheck
	}))
	defer srv.Close()

	rt := &countingTransport{next: http.DefaultTransport}
	c := New(srv.URL, nil, nil, WithHTTPClient(&http.Client{Transport: rt}))
	if _, err := c.Request(context.Background(), "/dashboard/stats", "", nil); err != nil {
		t.Fatalf("Request() error: %v", err)
	}
	if rt.calls != 1 {
		t.Errorf("transport calls = %d, want 1", rt.calls)
	}
}
