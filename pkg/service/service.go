// Package service implements the command-facing workflows: each service
// wires the API layer, the session manager and the terminal output together.
package service

import (
	"sync"

	"github.com/investorion/cli/pkg/config"
	"github.com/investorion/cli/pkg/credentials"
	"github.com/investorion/cli/pkg/session"
)

var (
	sessionOnce sync.Once
	sessionMgr  *session.Manager
)

// Session returns the process-wide session manager.
func Session() *session.Manager {
	sessionOnce.Do(func() {
		sessionMgr = session.NewManager(credentials.Default())
	})
	return sessionMgr
}

// mockEnabled reports whether commands should serve offline demo data.
func mockEnabled() bool {
	return config.GetBool("api.mock")
}
