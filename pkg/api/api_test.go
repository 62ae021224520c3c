package api

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/investorion/cli/pkg/client"
	"github.com/investorion/cli/pkg/credentials"
)

func setupAPITest(t *testing.T, handler http.Handler) *credentials.MemoryStore {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	store := credentials.NewMemoryStore()
	client.SetDefault(client.New(server.URL, 5*time.Second, store))
	return store
}

func TestTokenGrantIsFormEncoded(t *testing.T) {
	setupAPITest(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/auth/token" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); !strings.HasPrefix(ct, "application/x-www-form-urlencoded") {
			t.Errorf("Content-Type = %s", ct)
		}
		if r.Header.Get("Authorization") != "" {
			t.Error("token grant must not carry Authorization")
		}
		r.ParseForm()
		if r.PostForm.Get("username") != "user@example.com" {
			t.Errorf("username = %s", r.PostForm.Get("username"))
		}
		if r.PostForm.Get("password") != "s3cret" {
			t.Errorf("password field missing")
		}
		w.Write([]byte(`{"access_token":"acc","refresh_token":"ref"}`))
	}))

	pair, err := Token("user@example.com", "s3cret")
	if err != nil {
		t.Fatalf("Token failed: %v", err)
	}
	if pair.AccessToken != "acc" || pair.RefreshToken != "ref" {
		t.Errorf("pair = %+v", pair)
	}
}

func TestGetAssetsActiveOnlyFilter(t *testing.T) {
	setupAPITest(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("active_only") != "true" {
			t.Errorf("active_only query missing, got %q", r.URL.RawQuery)
		}
		w.Write([]byte(`[{"id":"a1","ticker":"PETR4","quantity":"10","average_price":"28.4","is_active":true}]`))
	}))

	assets, err := GetAssets(true)
	if err != nil {
		t.Fatalf("GetAssets failed: %v", err)
	}
	if len(assets) != 1 {
		t.Fatalf("len(assets) = %d", len(assets))
	}
	if assets[0].Quantity.Float64() != 10 {
		t.Errorf("quantity = %v", assets[0].Quantity.Float64())
	}
}

func TestRequestPasswordResetNullToken(t *testing.T) {
	setupAPITest(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"reset_token":null}`))
	}))

	token, err := RequestPasswordReset("user@example.com")
	if err != nil {
		t.Fatalf("RequestPasswordReset failed: %v", err)
	}
	if token != "" {
		t.Errorf("token = %q, want empty (email-delivery path)", token)
	}
}

func TestVoteSuggestionPath(t *testing.T) {
	var gotPath, gotMethod string
	setupAPITest(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotMethod = r.Method
		w.WriteHeader(http.StatusNoContent)
	}))

	if err := VoteSuggestion("s42"); err != nil {
		t.Fatalf("VoteSuggestion failed: %v", err)
	}
	if gotPath != "/api/v1/suggestions/s42/vote" || gotMethod != http.MethodPost {
		t.Errorf("request = %s %s", gotMethod, gotPath)
	}
}

func TestUploadAvatarMultipart(t *testing.T) {
	setupAPITest(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("not multipart: %v", err)
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			t.Fatalf("file field missing: %v", err)
		}
		defer file.Close()
		if header.Filename != "me.png" {
			t.Errorf("filename = %s", header.Filename)
		}
		content, _ := io.ReadAll(file)
		if string(content) != "png-bytes" {
			t.Errorf("content = %q", content)
		}
		w.Write([]byte(`{"avatar_url":"/media/avatars/me.png"}`))
	}))

	url, err := UploadAvatar("me.png", []byte("png-bytes"))
	if err != nil {
		t.Fatalf("UploadAvatar failed: %v", err)
	}
	if url != "/media/avatars/me.png" {
		t.Errorf("avatar_url = %q", url)
	}
}

func TestDeleteTransactionNoContent(t *testing.T) {
	setupAPITest(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			t.Errorf("method = %s", r.Method)
		}
		w.WriteHeader(http.StatusNoContent)
	}))

	if err := DeleteTransaction("t1"); err != nil {
		t.Fatalf("DeleteTransaction failed: %v", err)
	}
}
