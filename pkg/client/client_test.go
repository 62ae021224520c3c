package client

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/investorion/cli/pkg/credentials"
	cerrors "github.com/investorion/cli/pkg/errors"
)

func newTestClient(serverURL string) (*Client, *credentials.MemoryStore) {
	store := credentials.NewMemoryStore()
	return New(serverURL, 5*time.Second, store), store
}

func TestAPIPathPrefixing(t *testing.T) {
	tests := []struct {
		in       string
		expected string
	}{
		{"/assets", "/api/v1/assets"},
		{"/auth/token", "/api/v1/auth/token"},
		{"/api/v1/assets", "/api/v1/assets"},
		{"/api/health", "/api/health"},
	}

	for _, tt := range tests {
		if got := apiPath(tt.in); got != tt.expected {
			t.Errorf("apiPath(%q) = %q, want %q", tt.in, got, tt.expected)
		}
	}
}

func TestBearerInjection(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	c, store := newTestClient(server.URL)
	store.Save(credentials.TokenPair{AccessToken: "access-1", RefreshToken: "refresh-1"})

	if _, err := c.Do(http.MethodGet, "/assets", nil); err != nil {
		t.Fatalf("Do failed: %v", err)
	}
	if gotAuth != "Bearer access-1" {
		t.Errorf("Authorization = %q, want %q", gotAuth, "Bearer access-1")
	}
}

func TestNoBearerWithoutTokens(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	c, _ := newTestClient(server.URL)
	if _, err := c.Do(http.MethodGet, "/assets", nil); err != nil {
		t.Fatalf("Do failed: %v", err)
	}
	if gotAuth != "" {
		t.Errorf("Authorization = %q, want empty", gotAuth)
	}
}

func TestSingleRetryOn401(t *testing.T) {
	var refreshCalls, assetCalls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1/auth/refresh":
			atomic.AddInt32(&refreshCalls, 1)
			w.Write([]byte(`{"access_token":"access-2","refresh_token":"refresh-2"}`))
		case "/api/v1/assets":
			atomic.AddInt32(&assetCalls, 1)
			if r.Header.Get("Authorization") != "Bearer access-2" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			w.Write([]byte(`[{"id":"a1"}]`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	c, store := newTestClient(server.URL)
	store.Save(credentials.TokenPair{AccessToken: "stale", RefreshToken: "refresh-1"})

	body, err := c.Do(http.MethodGet, "/assets", nil)
	if err != nil {
		t.Fatalf("Do failed: %v", err)
	}
	if string(body) != `[{"id":"a1"}]` {
		t.Errorf("unexpected body: %s", body)
	}
	if got := atomic.LoadInt32(&refreshCalls); got != 1 {
		t.Errorf("refresh calls = %d, want 1", got)
	}
	if got := atomic.LoadInt32(&assetCalls); got != 2 {
		t.Errorf("asset calls = %d, want 2 (original + one retry)", got)
	}

	pair := store.Get()
	if pair == nil || pair.AccessToken != "access-2" || pair.RefreshToken != "refresh-2" {
		t.Errorf("stored pair = %+v, want refreshed pair", pair)
	}
}

func TestSecond401SurfacesFailure(t *testing.T) {
	var refreshCalls, assetCalls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1/auth/refresh":
			atomic.AddInt32(&refreshCalls, 1)
			w.Write([]byte(`{"access_token":"access-2","refresh_token":"refresh-2"}`))
		default:
			// Server rejects even the refreshed token.
			atomic.AddInt32(&assetCalls, 1)
			w.WriteHeader(http.StatusUnauthorized)
		}
	}))
	defer server.Close()

	c, store := newTestClient(server.URL)
	store.Save(credentials.TokenPair{AccessToken: "stale", RefreshToken: "refresh-1"})

	_, err := c.Do(http.MethodGet, "/assets", nil)
	if err == nil {
		t.Fatal("expected error when retried request also returns 401")
	}
	if got := atomic.LoadInt32(&refreshCalls); got != 1 {
		t.Errorf("refresh calls = %d, want 1 (no infinite loop)", got)
	}
	if got := atomic.LoadInt32(&assetCalls); got != 2 {
		t.Errorf("asset calls = %d, want 2", got)
	}
}

func TestRefreshFailureClearsTokens(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/v1/auth/refresh" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	c, store := newTestClient(server.URL)
	store.Save(credentials.TokenPair{AccessToken: "stale", RefreshToken: "dead"})

	_, err := c.Do(http.MethodGet, "/assets", nil)
	if err == nil {
		t.Fatal("expected session expired error")
	}
	if !cerrors.IsSessionExpired(err) {
		t.Errorf("error = %v, want session expired", err)
	}
	if pair := store.Get(); pair != nil {
		t.Errorf("tokens still present after failed refresh: %+v", pair)
	}
}

func TestNo401RetryWithoutRefreshToken(t *testing.T) {
	var refreshCalls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/v1/auth/refresh" {
			atomic.AddInt32(&refreshCalls, 1)
		}
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	c, _ := newTestClient(server.URL)

	_, err := c.Do(http.MethodGet, "/assets", nil)
	if err == nil {
		t.Fatal("expected error")
	}
	if got := atomic.LoadInt32(&refreshCalls); got != 0 {
		t.Errorf("refresh calls = %d, want 0 (no refresh token available)", got)
	}
}

func TestConcurrent401sShareOneRefresh(t *testing.T) {
	var refreshCalls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1/auth/refresh":
			atomic.AddInt32(&refreshCalls, 1)
			time.Sleep(100 * time.Millisecond)
			w.Write([]byte(`{"access_token":"access-2","refresh_token":"refresh-2"}`))
		default:
			if r.Header.Get("Authorization") != "Bearer access-2" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			w.Write([]byte(`{}`))
		}
	}))
	defer server.Close()

	c, store := newTestClient(server.URL)
	store.Save(credentials.TokenPair{AccessToken: "stale", RefreshToken: "refresh-1"})

	var wg sync.WaitGroup
	errs := make([]error, 5)
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = c.Do(http.MethodGet, "/assets", nil)
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Errorf("request %d failed: %v", i, err)
		}
	}
	if got := atomic.LoadInt32(&refreshCalls); got != 1 {
		t.Errorf("refresh calls = %d, want 1 (single-flight)", got)
	}
}

func TestNoContentResolvesEmpty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	c, _ := newTestClient(server.URL)
	body, err := c.Do(http.MethodDelete, "/assets/a1", nil)
	if err != nil {
		t.Fatalf("Do failed: %v", err)
	}
	if body != nil {
		t.Errorf("body = %q, want nil", body)
	}
}

func TestErrorMessageExtraction(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		expected string
	}{
		{"detail string", 400, `{"detail":"ticker already exists"}`, "ticker already exists"},
		{"detail list", 422, `{"detail":[{"msg":"field required"},{"msg":"other"}]}`, "field required"},
		{"message field", 400, `{"message":"bad request"}`, "bad request"},
		{"fallback", 418, `not json at all`, "HTTP 418 calling the Investorion API"},
		{"empty body", 500, ``, "HTTP 500 calling the Investorion API"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			c, _ := newTestClient(server.URL)
			_, err := c.Do(http.MethodGet, "/assets", nil)
			if err == nil {
				t.Fatal("expected error")
			}
			if err.Error() != tt.expected {
				t.Errorf("error = %q, want %q", err.Error(), tt.expected)
			}
		})
	}
}

func TestFormEncodedBody(t *testing.T) {
	var gotContentType, gotBody string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		r.ParseForm()
		gotBody = r.PostForm.Encode()
		w.Write([]byte(`{"access_token":"a","refresh_token":"r"}`))
	}))
	defer server.Close()

	c, _ := newTestClient(server.URL)
	form := url.Values{}
	form.Set("username", "user@example.com")
	form.Set("password", "secret")

	_, err := c.Do(http.MethodPost, "/auth/token", &Options{Form: form, NoAuth: true})
	if err != nil {
		t.Fatalf("Do failed: %v", err)
	}
	if gotContentType != "application/x-www-form-urlencoded" {
		t.Errorf("Content-Type = %q", gotContentType)
	}
	if gotBody != "password=secret&username=user%40example.com" {
		t.Errorf("form body = %q", gotBody)
	}
}

func TestDoJSONRawTextFallback(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("plain text response"))
	}))
	defer server.Close()

	c, _ := newTestClient(server.URL)
	var raw string
	if err := c.DoJSON(http.MethodGet, "/assets", nil, &raw); err != nil {
		t.Fatalf("DoJSON failed: %v", err)
	}
	if raw != "plain text response" {
		t.Errorf("raw = %q", raw)
	}
}
