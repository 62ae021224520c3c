package credentials

import (
	"os"
	"path/filepath"
	"testing"
)

func newTestFileStore(t *testing.T) *FileStore {
	t.Helper()
	dir := t.TempDir()
	return NewFileStore(filepath.Join(dir, "credentials"))
}

func TestFileStoreRoundTrip(t *testing.T) {
	store := newTestFileStore(t)

	pair := TokenPair{AccessToken: "access-123", RefreshToken: "refresh-456"}
	if err := store.Save(pair); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got := store.Get()
	if got == nil {
		t.Fatal("Get returned nil after Save")
	}
	if got.AccessToken != pair.AccessToken || got.RefreshToken != pair.RefreshToken {
		t.Errorf("Get returned %+v, want %+v", got, pair)
	}
}

func TestFileStoreGetMissingFile(t *testing.T) {
	store := newTestFileStore(t)

	if got := store.Get(); got != nil {
		t.Errorf("Get on missing file returned %+v, want nil", got)
	}
}

func TestFileStoreHalfWrittenPairIsAbsent(t *testing.T) {
	store := newTestFileStore(t)

	// A pair missing either value must read back as absent.
	if err := os.WriteFile(store.path, []byte(`{"access_token":"only-access"}`), 0600); err != nil {
		t.Fatal(err)
	}
	if got := store.Get(); got != nil {
		t.Errorf("Get with missing refresh token returned %+v, want nil", got)
	}

	if err := os.WriteFile(store.path, []byte(`{"refresh_token":"only-refresh"}`), 0600); err != nil {
		t.Fatal(err)
	}
	if got := store.Get(); got != nil {
		t.Errorf("Get with missing access token returned %+v, want nil", got)
	}
}

func TestFileStoreCorruptFileIsAbsent(t *testing.T) {
	store := newTestFileStore(t)

	if err := os.WriteFile(store.path, []byte("not json"), 0600); err != nil {
		t.Fatal(err)
	}
	if got := store.Get(); got != nil {
		t.Errorf("Get on corrupt file returned %+v, want nil", got)
	}
}

func TestFileStoreClear(t *testing.T) {
	store := newTestFileStore(t)

	if err := store.Save(TokenPair{AccessToken: "a", RefreshToken: "r"}); err != nil {
		t.Fatal(err)
	}
	if err := store.Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if got := store.Get(); got != nil {
		t.Errorf("Get after Clear returned %+v, want nil", got)
	}

	// Clearing twice must not fail.
	if err := store.Clear(); err != nil {
		t.Errorf("Clear on missing file failed: %v", err)
	}
}

func TestFileStorePermissions(t *testing.T) {
	store := newTestFileStore(t)

	if err := store.Save(TokenPair{AccessToken: "a", RefreshToken: "r"}); err != nil {
		t.Fatal(err)
	}

	info, err := os.Stat(store.path)
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("credentials file mode = %o, want 0600", perm)
	}
}

func TestMemoryStoreAtomicity(t *testing.T) {
	store := NewMemoryStore()

	if got := store.Get(); got != nil {
		t.Errorf("empty MemoryStore returned %+v, want nil", got)
	}

	store.Save(TokenPair{AccessToken: "a", RefreshToken: "r"})
	if got := store.Get(); got == nil {
		t.Fatal("Get returned nil after Save")
	}

	store.Save(TokenPair{AccessToken: "a"})
	if got := store.Get(); got != nil {
		t.Errorf("half pair returned %+v, want nil", got)
	}

	store.Clear()
	if got := store.Get(); got != nil {
		t.Errorf("Get after Clear returned %+v, want nil", got)
	}
}
