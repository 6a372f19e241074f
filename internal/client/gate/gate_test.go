package gate

import (
	"testing"

	"github.com/dmitrijs2005/hwidgate/internal/client/models"
	"github.com/dmitrijs2005/hwidgate/internal/client/session"
	"github.com/stretchr/testify/assert"
)

var allStates = []models.VerificationState{
	models.StateChecking,
	models.StateVerified,
	models.StateMismatched,
	models.StateFailed,
}

func TestRoute_NoTokenAlwaysShowsAuthForm(t *testing.T) {
	for _, st := range allStates {
		got := Route(session.Session{Username: "stale-name"}, st)
		assert.Equal(t, ShowAuthForm, got, "state %s", st)
	}
}

func TestRoute_WithToken(t *testing.T) {
	s := session.Session{Token: "t1", Username: "alice"}

	tests := []struct {
		state models.VerificationState
		want  View
	}{
		{models.StateChecking, ShowVerifying},
		{models.StateVerified, ShowAuthorized},
		{models.StateMismatched, ShowVerifying},
		{models.StateFailed, ShowVerifying},
	}
	for _, tt := range tests {
		t.Run(tt.state.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, Route(s, tt.state))
		})
	}
}

func TestCurrent_FollowsHolder(t *testing.T) {
	h := session.NewHolder()

	v, _ := Current(h)
	assert.Equal(t, ShowAuthForm, v)

	gen := h.Set(session.Session{Token: "t1", Username: "alice"})
	v, snap := Current(h)
	assert.Equal(t, ShowVerifying, v)
	assert.Equal(t, gen, snap.Generation)

	h.Claim(gen)
	h.Commit(gen, session.Verification{State: models.StateVerified})
	v, _ = Current(h)
	assert.Equal(t, ShowAuthorized, v)

	h.Clear()
	v, _ = Current(h)
	assert.Equal(t, ShowAuthForm, v)
}

func TestView_String(t *testing.T) {
	assert.Equal(t, "auth", ShowAuthForm.String())
	assert.Equal(t, "verifying", ShowVerifying.String())
	assert.Equal(t, "authorized", ShowAuthorized.String())
	assert.Equal(t, "unknown", View(9).String())
}
