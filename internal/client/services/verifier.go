package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/hwidgate/internal/client/client"
	"github.com/dmitrijs2005/hwidgate/internal/client/hwid"
	"github.com/dmitrijs2005/hwidgate/internal/client/models"
	"github.com/dmitrijs2005/hwidgate/internal/client/session"
	"github.com/dmitrijs2005/hwidgate/internal/logging"
)

// Outcome is what a Verify call observed.
type Outcome struct {
	Generation uint64
	State      models.VerificationState
	Message    string
	Err        error
	// Discarded is true when the session changed while the sequence ran and
	// its result was dropped.
	Discarded bool
}

// Verifier binds the current session to this device.
type Verifier struct {
	api      client.HWIDAPI
	provider hwid.Provider
	sessions *session.Holder
	log      logging.Logger
}

func NewVerifier(api client.HWIDAPI, provider hwid.Provider, sessions *session.Holder, log logging.Logger) *Verifier {
	return &Verifier{api: api, provider: provider, sessions: sessions, log: log}
}

// Verify runs the verification sequence for the current session, once per
// session generation. Later calls for the same generation return the stored
// state without contacting the server. Without a session it returns
// ErrNotAuthenticated in Outcome.Err.
//
// Verify never returns an error or panics; every failure ends in a terminal
// state with a message.
func (v *Verifier) Verify(ctx context.Context) Outcome {
	snap := v.sessions.Snapshot()
	if !snap.Session.Authenticated() {
		return Outcome{Generation: snap.Generation, State: snap.Verification.State, Err: ErrNotAuthenticated}
	}

	gen := snap.Generation
	log := v.log.With("user", snap.Session.Username, "generation", gen)

	if !v.sessions.Claim(gen) {
		cur := v.sessions.Snapshot()
		log.Debug(ctx, "verification already claimed", "state", cur.Verification.State)
		return Outcome{
			Generation: cur.Generation,
			State:      cur.Verification.State,
			Message:    cur.Verification.Message,
			Err:        cur.Verification.Err,
			Discarded:  cur.Generation != gen,
		}
	}

	log.Info(ctx, "verifying hwid")
	result, stale := v.run(ctx, gen, snap.Session.Token, log)

	if stale || !v.sessions.Commit(gen, result) {
		log.Info(ctx, "session changed during verification, result discarded", "state", result.State)
		return Outcome{Generation: gen, State: result.State, Message: result.Message, Err: result.Err, Discarded: true}
	}

	switch result.State {
	case models.StateVerified:
		log.Info(ctx, "hwid verified")
	case models.StateMismatched:
		log.Warn(ctx, "hwid mismatch", "error", result.Err)
	default:
		log.Error(ctx, "hwid verification failed", "error", result.Err)
	}

	return Outcome{Generation: gen, State: result.State, Message: result.Message, Err: result.Err}
}

// run executes fetch → compute → compare or register. stale is true when the
// session changed after a suspension point and the sequence stopped early.
func (v *Verifier) run(ctx context.Context, gen uint64, token string, log logging.Logger) (result session.Verification, stale bool) {
	defer func() {
		if r := recover(); r != nil {
			result = unknown(fmt.Errorf("panic during verification: %v", r))
			stale = false
		}
	}()

	serverHWID, err := v.api.GetHWID(ctx, token)
	if !v.sessions.IsCurrent(gen) {
		return session.Verification{}, true
	}
	if err != nil {
		msg := client.ServerMessage(err)
		if msg == "" {
			msg = MsgVerificationFailed
		}
		return session.Verification{
			State:   models.StateFailed,
			Message: msg,
			Err:     &FingerprintFetchError{Message: msg, Err: err},
		}, false
	}

	local, err := hwid.Compute(ctx, v.provider)
	if !v.sessions.IsCurrent(gen) {
		return session.Verification{}, true
	}
	if err != nil {
		return unknown(fmt.Errorf("compute fingerprint: %w", err)), false
	}

	if serverHWID != "" {
		if serverHWID == local {
			return verified(), false
		}
		return session.Verification{
			State:   models.StateMismatched,
			Message: MsgHWIDMismatch,
			Err:     &FingerprintMismatchError{Message: MsgHWIDMismatch, Server: serverHWID, Local: local},
		}, false
	}

	// First use: bind this device. The state moves to verified right after
	// the call without re-reading the binding; a server that acknowledges
	// but does not store it leaves both sides disagreeing until the next
	// session.
	log.Info(ctx, "no hwid bound, registering this device")
	if err := v.api.RegisterHWID(ctx, token, local); err != nil {
		var apiErr *client.APIError
		if !errors.As(err, &apiErr) {
			return unknown(fmt.Errorf("register fingerprint: %w", err)), false
		}
		log.Warn(ctx, "hwid registration rejected by server", "status", apiErr.Status, "message", apiErr.Message)
	}
	if !v.sessions.IsCurrent(gen) {
		return session.Verification{}, true
	}
	return verified(), false
}

func verified() session.Verification {
	return session.Verification{State: models.StateVerified, Message: MsgVerificationSuccess}
}

func unknown(err error) session.Verification {
	return session.Verification{
		State:   models.StateFailed,
		Message: MsgVerificationError,
		Err:     &UnknownError{Message: MsgVerificationError, Err: err},
	}
}
