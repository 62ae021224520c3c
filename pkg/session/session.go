// Package session tracks the authenticated user across CLI invocations. It
// owns the login/register/logout flows and the password-reset hand-off; the
// token pair itself lives in the credentials store shared with the HTTP
// client.
package session

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/investorion/cli/pkg/api"
	"github.com/investorion/cli/pkg/client"
	"github.com/investorion/cli/pkg/credentials"
	cerrors "github.com/investorion/cli/pkg/errors"
	"github.com/investorion/cli/pkg/logger"
	"github.com/investorion/cli/pkg/portfolio"
)

// State is the session lifecycle state.
type State int

const (
	StateUninitialized State = iota
	StateRestoring
	StateAuthenticated
	StateAnonymous
)

func (s State) String() string {
	switch s {
	case StateRestoring:
		return "restoring"
	case StateAuthenticated:
		return "authenticated"
	case StateAnonymous:
		return "anonymous"
	default:
		return "uninitialized"
	}
}

// ErrLoginAfterRegister marks the case where the account was created but the
// follow-up login failed: the account exists server-side, yet no session was
// started.
var ErrLoginAfterRegister = errors.New("account created, but signing in failed")

// UpdatePasswordOptions selects one of the two password-update modes.
type UpdatePasswordOptions struct {
	CurrentPassword string
	ResetToken      string
}

// Manager drives the session state machine.
type Manager struct {
	mu          sync.Mutex
	store       credentials.Store
	state       State
	user        *api.Profile
	resetTokens *ResetTokenCache
}

// NewManager creates a session manager over the given token store.
func NewManager(store credentials.Store) *Manager {
	return &Manager{
		store:       store,
		state:       StateUninitialized,
		resetTokens: NewResetTokenCache(0),
	}
}

// State returns the current lifecycle state.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Loading reports whether the session is still being established.
func (m *Manager) Loading() bool {
	s := m.State()
	return s == StateUninitialized || s == StateRestoring
}

// User returns the cached profile, or nil when anonymous.
func (m *Manager) User() *api.Profile {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.user
}

func (m *Manager) setAuthenticated(profile *api.Profile) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.user = profile
	m.state = StateAuthenticated
}

func (m *Manager) setAnonymous() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.user = nil
	m.state = StateAnonymous
}

// Restore rebuilds the session from stored tokens by fetching the current
// profile. With no stored tokens, or when the fetch fails, the session ends
// up anonymous and the tokens are cleared.
func (m *Manager) Restore() error {
	m.mu.Lock()
	m.state = StateRestoring
	m.mu.Unlock()

	if m.store.Get() == nil {
		m.setAnonymous()
		return nil
	}

	profile, err := m.fetchProfile()
	if err != nil {
		logger.Debug("Session restore failed", "error", err)
		m.store.Clear()
		m.setAnonymous()
		return err
	}

	m.setAuthenticated(profile)
	return nil
}

// Login exchanges credentials for a token pair and fetches the profile. Any
// step failing leaves the session anonymous with no tokens stored.
func (m *Manager) Login(email, password string) error {
	pair, err := api.Token(email, password)
	if err != nil {
		m.setAnonymous()
		return err
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		m.setAnonymous()
		return cerrors.AuthError("login response missing tokens")
	}

	if err := m.store.Save(*pair); err != nil {
		m.setAnonymous()
		return err
	}

	profile, err := m.fetchProfile()
	if err != nil {
		m.store.Clear()
		m.setAnonymous()
		return err
	}

	m.setAuthenticated(profile)
	logger.Debug("Login successful", "email", email)
	return nil
}

// Register creates the account and then logs in with the same credentials.
// Registration success does not imply login success: a login failure after a
// successful registration surfaces as ErrLoginAfterRegister.
func (m *Manager) Register(email, password, firstName, lastName string) error {
	fullName := strings.TrimSpace(firstName + " " + lastName)
	if fullName == "" {
		fullName = email
	}

	if err := api.Register(email, password, fullName); err != nil {
		return err
	}

	if err := m.Login(email, password); err != nil {
		return fmt.Errorf("%w: %v", ErrLoginAfterRegister, err)
	}
	return nil
}

// Logout clears tokens and the cached profile. It always succeeds locally,
// backend reachability notwithstanding.
func (m *Manager) Logout() {
	m.store.Clear()
	m.setAnonymous()
	logger.Debug("Logged out")
}

// RequestPasswordReset asks the backend for a reset token. When the backend
// returns one directly it is cached for the password-update step; an empty
// token means the email-delivery path and is not an error.
func (m *Manager) RequestPasswordReset(email string) (string, error) {
	token, err := api.RequestPasswordReset(email)
	if err != nil {
		return "", err
	}
	if token != "" {
		m.resetTokens.Put(token)
	}
	return token, nil
}

// ConsumeCachedResetToken hands out the cached reset token exactly once.
func (m *Manager) ConsumeCachedResetToken() (string, bool) {
	return m.resetTokens.Consume()
}

// UpdatePassword changes the password in one of two mutually exclusive
// modes: with a reset token (re-establishing the session from the returned
// pair) or with the current password (under the existing session). Omitting
// both is a local validation failure; no request is made.
func (m *Manager) UpdatePassword(newPassword string, opts UpdatePasswordOptions) error {
	if opts.ResetToken != "" {
		pair, err := api.ResetPassword(opts.ResetToken, newPassword)
		if err != nil {
			return err
		}
		if err := m.store.Save(*pair); err != nil {
			return err
		}
		profile, err := m.fetchProfile()
		if err != nil {
			return err
		}
		m.setAuthenticated(profile)
		return nil
	}

	if opts.CurrentPassword == "" {
		return cerrors.PreconditionError("provide the current password or a reset token to change the password")
	}

	return api.ChangePassword(opts.CurrentPassword, newPassword)
}

func (m *Manager) fetchProfile() (*api.Profile, error) {
	profile, err := api.GetProfile()
	if err != nil {
		return nil, err
	}
	normalized := portfolio.MapProfile(*profile, client.Default().BaseURL())
	return &normalized, nil
}
