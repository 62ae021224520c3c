package session

import (
	"sync"
	"time"
)

// DefaultResetTokenTTL bounds how long a cached reset token stays usable.
const DefaultResetTokenTTL = 15 * time.Minute

// ResetTokenCache holds the reset token handed back by the
// request-password-reset endpoint until the password-update step consumes
// it. The token is single-use: Consume removes it, and it expires on its own
// after the TTL.
type ResetTokenCache struct {
	mu        sync.Mutex
	token     string
	expiresAt time.Time
	ttl       time.Duration
	now       func() time.Time
}

// NewResetTokenCache creates a cache with the given TTL. A zero TTL uses the
// default.
func NewResetTokenCache(ttl time.Duration) *ResetTokenCache {
	if ttl <= 0 {
		ttl = DefaultResetTokenTTL
	}
	return &ResetTokenCache{ttl: ttl, now: time.Now}
}

// Put stores a token, replacing any previous one.
func (c *ResetTokenCache) Put(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
	c.expiresAt = c.now().Add(c.ttl)
}

// Consume returns the cached token and removes it. Expired or absent tokens
// report a miss.
func (c *ResetTokenCache) Consume() (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	token := c.token
	c.token = ""

	if token == "" || c.now().After(c.expiresAt) {
		return "", false
	}
	return token, true
}
