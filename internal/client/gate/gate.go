// Package gate decides which screen the client shows for a given session and
// verification state.
package gate

import (
	"github.com/dmitrijs2005/hwidgate/internal/client/models"
	"github.com/dmitrijs2005/hwidgate/internal/client/session"
)

type View int

const (
	ShowAuthForm View = iota
	ShowVerifying
	ShowAuthorized
)

func (v View) String() string {
	switch v {
	case ShowAuthForm:
		return "auth"
	case ShowVerifying:
		return "verifying"
	case ShowAuthorized:
		return "authorized"
	default:
		return "unknown"
	}
}

// Route is a pure function of its inputs. Only a verified session reaches
// authorized content; mismatched and failed sessions stay on the verifying
// screen, which then renders the terminal error.
func Route(s session.Session, state models.VerificationState) View {
	if !s.Authenticated() {
		return ShowAuthForm
	}
	if state == models.StateVerified {
		return ShowAuthorized
	}
	return ShowVerifying
}

// Current evaluates Route against a fresh snapshot of h.
func Current(h *session.Holder) (View, session.Snapshot) {
	snap := h.Snapshot()
	return Route(snap.Session, snap.Verification.State), snap
}
