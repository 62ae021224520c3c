package credentials

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/investorion/cli/pkg/config"
)

// TokenPair is the access/refresh token pair issued by the API. Both values
// are opaque bearer strings; expiry is only ever discovered by a rejected
// request, never inspected locally.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// Store persists a token pair across process restarts. A pair with only one
// of the two values present is treated as absent.
type Store interface {
	Get() *TokenPair
	Save(pair TokenPair) error
	Clear() error
}

// FileStore keeps the token pair in a JSON file under the config directory.
type FileStore struct {
	path string
}

// NewFileStore creates a file-backed store at the given path. An empty path
// falls back to the configured credentials path.
func NewFileStore(path string) *FileStore {
	if path == "" {
		path = config.GetCredentialsPath()
	}
	return &FileStore{path: path}
}

// Get returns the stored pair, or nil when the file is missing, unreadable,
// or holds a half-written pair.
func (s *FileStore) Get() *TokenPair {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil
	}

	var pair TokenPair
	if err := json.Unmarshal(data, &pair); err != nil {
		return nil
	}

	if pair.AccessToken == "" || pair.RefreshToken == "" {
		return nil
	}
	return &pair
}

// Save persists both values together. The write goes through a temp file and
// rename so a crash never leaves a partial pair behind.
func (s *FileStore) Save(pair TokenPair) error {
	data, err := json.MarshalIndent(pair, "", "  ")
	if err != nil {
		return err
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".credentials-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, 0600); err != nil {
		os.Remove(tmpName)
		return err
	}

	return os.Rename(tmpName, s.path)
}

// Clear removes both values together. A missing file is not an error.
func (s *FileStore) Clear() error {
	err := os.Remove(s.path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// MemoryStore is an in-memory Store used by tests and mock mode.
type MemoryStore struct {
	mu   sync.Mutex
	pair *TokenPair
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Get() *TokenPair {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pair == nil || s.pair.AccessToken == "" || s.pair.RefreshToken == "" {
		return nil
	}
	p := *s.pair
	return &p
}

func (s *MemoryStore) Save(pair TokenPair) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pair = &pair
	return nil
}

func (s *MemoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pair = nil
	return nil
}

var defaultStore Store

// Default returns the process-wide store, creating a file-backed one on
// first use.
func Default() Store {
	if defaultStore == nil {
		defaultStore = NewFileStore("")
	}
	return defaultStore
}

// SetDefault replaces the process-wide store.
func SetDefault(store Store) {
	defaultStore = store
}
