// Package session holds the credential session of the running client and the
// verification state attached to it.
//
// A single Holder is created at start-up and injected into every component
// that reads or changes the session. Each Set and each effective Clear starts
// a new generation; verification results are committed only against the
// generation they were started for, so a result that arrives after logout or
// re-login is dropped.
package session

import (
	"sync"

	"github.com/dmitrijs2005/hwidgate/internal/client/models"
)

// Session is the authenticated identity of the client. Username is only
// meaningful while Token is non-empty.
type Session struct {
	Token    string
	Username string
}

// Authenticated reports whether the session carries a token.
func (s Session) Authenticated() bool {
	return s.Token != ""
}

// Verification is the verification status of one generation.
type Verification struct {
	State   models.VerificationState
	Message string
	Err     error
}

// Snapshot is a consistent copy of the holder's state.
type Snapshot struct {
	Session      Session
	Generation   uint64
	Verification Verification
	// Started is true once a verification run has been claimed for Generation.
	Started bool
}

type Holder struct {
	mu           sync.Mutex
	session      Session
	generation   uint64
	verification Verification
	started      bool
}

func NewHolder() *Holder {
	return &Holder{}
}

// Set installs s as the current session and returns its generation. The
// verification state restarts at StateChecking.
func (h *Holder) Set(s Session) uint64 {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.generation++
	h.session = s
	h.verification = Verification{State: models.StateChecking}
	h.started = false
	return h.generation
}

// Clear drops the current session. Clearing an empty holder changes nothing.
func (h *Holder) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if !h.session.Authenticated() {
		return
	}
	h.generation++
	h.session = Session{}
	h.verification = Verification{State: models.StateChecking}
	h.started = false
}

func (h *Holder) Snapshot() Snapshot {
	h.mu.Lock()
	defer h.mu.Unlock()

	return Snapshot{
		Session:      h.session,
		Generation:   h.generation,
		Verification: h.verification,
		Started:      h.started,
	}
}

// Current returns the current session.
func (h *Holder) Current() Session {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.session
}

// IsCurrent reports whether gen is still the live generation with a token.
func (h *Holder) IsCurrent(gen uint64) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return gen == h.generation && h.session.Authenticated()
}

// Claim marks generation gen as having a verification run in progress. It
// returns false when gen is no longer current, has no token, or was already
// claimed.
func (h *Holder) Claim(gen uint64) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	if gen != h.generation || !h.session.Authenticated() || h.started {
		return false
	}
	h.started = true
	return true
}

// Commit records a terminal verification result for generation gen. It
// returns false, leaving the holder untouched, when gen is stale or the
// generation already reached a terminal state.
func (h *Holder) Commit(gen uint64, v Verification) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	if gen != h.generation || !h.started || h.verification.State.Terminal() {
		return false
	}
	if !v.State.Terminal() {
		return false
	}
	h.verification = v
	return true
}
