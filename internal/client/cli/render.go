package cli

import (
	"fmt"

	"github.com/dmitrijs2005/hwidgate/internal/client/gate"
	"github.com/dmitrijs2005/hwidgate/internal/client/models"
)

// render prints the screen for the current gate view.
func (a *App) render() {
	v, snap := gate.Current(a.sessions)

	switch v {
	case gate.ShowAuthForm:
		a.println("Not signed in. Use 'login' or 'register'.")
	case gate.ShowAuthorized:
		a.println(snap.Verification.Message)
		a.println("Authorized as", snap.Session.Username)
	case gate.ShowVerifying:
		switch snap.Verification.State {
		case models.StateMismatched:
			a.println("[BLOCKED]", snap.Verification.Message)
		case models.StateFailed:
			a.println("[ERROR]", snap.Verification.Message)
		default:
			a.println("Verifying device...")
		}
	}
}

func (a *App) printFields(f models.Fields) {
	if len(f) == 0 {
		a.println("(empty)")
		return
	}
	for _, k := range f.Keys() {
		a.println(fmt.Sprintf("  %s: %s", k, f.String(k)))
	}
}
