package session

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/investorion/cli/pkg/client"
	"github.com/investorion/cli/pkg/credentials"
	cerrors "github.com/investorion/cli/pkg/errors"
)

func setupSessionTest(t *testing.T, handler http.Handler) (*Manager, *credentials.MemoryStore) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	store := credentials.NewMemoryStore()
	client.SetDefault(client.New(server.URL, 5*time.Second, store))
	return NewManager(store), store
}

func authBackend(t *testing.T, registered map[string]string) http.Handler {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/auth/register", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":"u1"}`))
	})
	mux.HandleFunc("POST /api/v1/auth/token", func(w http.ResponseWriter, r *http.Request) {
		r.ParseForm()
		if registered[r.PostForm.Get("username")] != r.PostForm.Get("password") {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"detail":"Incorrect email or password"}`))
			return
		}
		w.Write([]byte(`{"access_token":"acc","refresh_token":"ref"}`))
	})
	mux.HandleFunc("GET /api/v1/profile/me", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer acc" {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"detail":"Not authenticated"}`))
			return
		}
		w.Write([]byte(`{"id":"u1","email":"user@example.com","full_name":"User Example"}`))
	})
	return mux
}

func TestLoginEstablishesSession(t *testing.T) {
	creds := map[string]string{"user@example.com": "s3cret"}
	m, store := setupSessionTest(t, authBackend(t, creds))

	if err := m.Login("user@example.com", "s3cret"); err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if m.State() != StateAuthenticated {
		t.Errorf("state = %s", m.State())
	}
	if m.User() == nil || m.User().Email != "user@example.com" {
		t.Errorf("user = %+v", m.User())
	}
	if store.Get() == nil {
		t.Error("tokens not persisted")
	}
}

func TestLoginBadCredentialsLeavesNoTokens(t *testing.T) {
	m, store := setupSessionTest(t, authBackend(t, map[string]string{}))

	err := m.Login("user@example.com", "wrong")
	if err == nil {
		t.Fatal("expected login failure")
	}
	if m.State() != StateAnonymous {
		t.Errorf("state = %s", m.State())
	}
	if store.Get() != nil {
		t.Error("tokens stored despite failed login")
	}
}

func TestLoginProfileFailureClearsTokens(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/auth/token", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"access_token":"acc","refresh_token":"ref"}`))
	})
	mux.HandleFunc("GET /api/v1/profile/me", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"detail":"boom"}`))
	})
	m, store := setupSessionTest(t, mux)

	if err := m.Login("user@example.com", "s3cret"); err == nil {
		t.Fatal("expected failure when profile fetch breaks")
	}
	if store.Get() != nil {
		t.Error("tokens left behind after failed login")
	}
	if m.State() != StateAnonymous {
		t.Errorf("state = %s", m.State())
	}
}

func TestRegisterThenLoginFailureIsDistinguishable(t *testing.T) {
	// Registration succeeds but the token grant rejects the credentials, so
	// the caller can tell "account exists, login failed" apart from a plain
	// registration error.
	m, store := setupSessionTest(t, authBackend(t, map[string]string{}))

	err := m.Register("user@example.com", "s3cret", "User", "Example")
	if !errors.Is(err, ErrLoginAfterRegister) {
		t.Fatalf("err = %v, want ErrLoginAfterRegister", err)
	}
	if store.Get() != nil {
		t.Error("tokens left behind after failed register+login")
	}
	if m.State() != StateAnonymous {
		t.Errorf("state = %s", m.State())
	}
}

func TestRegisterSuccessLogsIn(t *testing.T) {
	creds := map[string]string{"user@example.com": "s3cret"}
	m, _ := setupSessionTest(t, authBackend(t, creds))

	if err := m.Register("user@example.com", "s3cret", "User", "Example"); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if m.State() != StateAuthenticated {
		t.Errorf("state = %s", m.State())
	}
}

func TestRestoreWithoutTokensIsAnonymous(t *testing.T) {
	m, _ := setupSessionTest(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected without stored tokens")
	}))

	if err := m.Restore(); err != nil {
		t.Fatalf("Restore failed: %v", err)
	}
	if m.State() != StateAnonymous {
		t.Errorf("state = %s", m.State())
	}
	if m.Loading() {
		t.Error("session still loading after restore")
	}
}

func TestRestoreWithValidTokens(t *testing.T) {
	creds := map[string]string{"user@example.com": "s3cret"}
	m, store := setupSessionTest(t, authBackend(t, creds))
	store.Save(credentials.TokenPair{AccessToken: "acc", RefreshToken: "ref"})

	if err := m.Restore(); err != nil {
		t.Fatalf("Restore failed: %v", err)
	}
	if m.State() != StateAuthenticated {
		t.Errorf("state = %s", m.State())
	}
	if m.User() == nil || m.User().FullName != "User Example" {
		t.Errorf("user = %+v", m.User())
	}
}

func TestRestoreFailureClearsTokens(t *testing.T) {
	m, store := setupSessionTest(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail":"Not authenticated"}`))
	}))
	store.Save(credentials.TokenPair{AccessToken: "stale", RefreshToken: "stale"})

	if err := m.Restore(); err == nil {
		t.Fatal("expected restore failure with rejected tokens")
	}
	if store.Get() != nil {
		t.Error("stale tokens not cleared")
	}
	if m.State() != StateAnonymous {
		t.Errorf("state = %s", m.State())
	}
}

func TestLogoutAlwaysSucceedsLocally(t *testing.T) {
	creds := map[string]string{"user@example.com": "s3cret"}
	m, store := setupSessionTest(t, authBackend(t, creds))
	if err := m.Login("user@example.com", "s3cret"); err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	m.Logout()
	if m.State() != StateAnonymous || m.User() != nil {
		t.Errorf("state = %s, user = %v", m.State(), m.User())
	}
	if store.Get() != nil {
		t.Error("tokens survived logout")
	}
}

func TestUpdatePasswordRequiresProofOfIdentity(t *testing.T) {
	m, _ := setupSessionTest(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected for local validation failure")
	}))

	err := m.UpdatePassword("newpass", UpdatePasswordOptions{})
	var cliErr *cerrors.CLIError
	if !errors.As(err, &cliErr) || cliErr.Type != cerrors.ErrorTypePrecondition {
		t.Errorf("err = %v, want precondition error", err)
	}
}

func TestUpdatePasswordWithResetTokenReestablishesSession(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/auth/reset-password", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"access_token":"acc","refresh_token":"ref"}`))
	})
	mux.HandleFunc("GET /api/v1/profile/me", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id":"u1","email":"user@example.com"}`))
	})
	m, store := setupSessionTest(t, mux)

	if err := m.UpdatePassword("newpass", UpdatePasswordOptions{ResetToken: "tok-123"}); err != nil {
		t.Fatalf("UpdatePassword failed: %v", err)
	}
	if m.State() != StateAuthenticated {
		t.Errorf("state = %s", m.State())
	}
	pair := store.Get()
	if pair == nil || pair.AccessToken != "acc" {
		t.Errorf("pair = %+v", pair)
	}
}

func TestUpdatePasswordWithCurrentPassword(t *testing.T) {
	var gotPath string
	m, _ := setupSessionTest(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	}))

	if err := m.UpdatePassword("newpass", UpdatePasswordOptions{CurrentPassword: "oldpass"}); err != nil {
		t.Fatalf("UpdatePassword failed: %v", err)
	}
	if gotPath != "/api/v1/auth/change-password" {
		t.Errorf("path = %s", gotPath)
	}
}

func TestResetTokenCacheSingleUse(t *testing.T) {
	cache := NewResetTokenCache(time.Minute)
	cache.Put("tok-1")

	token, ok := cache.Consume()
	if !ok || token != "tok-1" {
		t.Fatalf("first consume = %q, %v", token, ok)
	}
	if _, ok := cache.Consume(); ok {
		t.Error("second consume should miss")
	}
}

func TestResetTokenCacheExpires(t *testing.T) {
	cache := NewResetTokenCache(time.Minute)
	base := time.Now()
	cache.now = func() time.Time { return base }
	cache.Put("tok-1")

	cache.now = func() time.Time { return base.Add(2 * time.Minute) }
	if _, ok := cache.Consume(); ok {
		t.Error("expired token should miss")
	}
}

func TestRequestPasswordResetCachesToken(t *testing.T) {
	m, _ := setupSessionTest(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"reset_token":"tok-9"}`))
	}))

	token, err := m.RequestPasswordReset("user@example.com")
	if err != nil {
		t.Fatalf("RequestPasswordReset failed: %v", err)
	}
	if token != "tok-9" {
		t.Errorf("token = %q", token)
	}
	cached, ok := m.ConsumeCachedResetToken()
	if !ok || cached != "tok-9" {
		t.Errorf("cached = %q, %v", cached, ok)
	}
}
