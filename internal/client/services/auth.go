package services

import (
	"context"
	"unicode/utf8"

	"github.com/dmitrijs2005/hwidgate/internal/client/client"
	"github.com/dmitrijs2005/hwidgate/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/hwidgate/internal/client/session"
	"github.com/dmitrijs2005/hwidgate/internal/common"
	"github.com/dmitrijs2005/hwidgate/internal/logging"
)

// AuthService manages the credential session.
//
// Contract:
//   - Login: authenticate; on success the returned session becomes current.
//   - Register: validate locally, then create the account; on success the
//     returned session becomes current.
//   - Logout: drop the current session. Always succeeds, safe to repeat.
//   - LastUsername: the last username that signed in on this device.
//
// Each call makes at most one request and never retries.
type AuthService interface {
	Login(ctx context.Context, username string, password []byte) (session.Session, error)
	Register(ctx context.Context, username string, password, confirm []byte) (session.Session, error)
	Logout(ctx context.Context)
	LastUsername(ctx context.Context) string
}

type authService struct {
	api      client.AuthAPI
	sessions *session.Holder
	meta     metadata.Repository
	log      logging.Logger
}

// NewAuthService builds an AuthService. meta may be nil, in which case the
// last username is not remembered.
func NewAuthService(api client.AuthAPI, sessions *session.Holder, meta metadata.Repository, log logging.Logger) AuthService {
	return &authService{api: api, sessions: sessions, meta: meta, log: log}
}

func (a *authService) Login(ctx context.Context, username string, password []byte) (session.Session, error) {
	resp, err := a.api.Login(ctx, username, string(password))
	return a.establish(ctx, "login", username, resp, err)
}

// ValidateRegistration checks the registration form without contacting the
// server.
func ValidateRegistration(password, confirm []byte) error {
	if !common.EqualBytes(password, confirm) {
		return &ValidationError{Message: MsgPasswordsMismatch}
	}
	// Counted in characters, not UTF-16 units: four emoji are four, not eight.
	if utf8.RuneCount(password) < MinPasswordLength {
		return &ValidationError{Message: MsgPasswordTooShort}
	}
	return nil
}

func (a *authService) Register(ctx context.Context, username string, password, confirm []byte) (session.Session, error) {
	if err := ValidateRegistration(password, confirm); err != nil {
		a.log.Info(ctx, "registration rejected locally", "user", username, "reason", err.Error())
		return session.Session{}, err
	}

	resp, err := a.api.Register(ctx, username, string(password))
	return a.establish(ctx, "register", username, resp, err)
}

// establish turns an auth response into the current session.
func (a *authService) establish(ctx context.Context, op, username string, resp *client.AuthResponse, err error) (session.Session, error) {
	if err != nil {
		msg := client.ServerMessage(err)
		if msg == "" {
			msg = MsgGenericError
		}
		a.log.Warn(ctx, op+" failed", "user", username, "error", err)
		return session.Session{}, &AuthError{Message: msg, Err: err}
	}
	if resp == nil || resp.Token == "" {
		a.log.Warn(ctx, op+" returned no token", "user", username)
		return session.Session{}, &AuthError{Message: MsgGenericError}
	}

	s := session.Session{Token: resp.Token, Username: resp.Username}
	if s.Username == "" {
		s.Username = username
	}
	gen := a.sessions.Set(s)
	a.log.Info(ctx, op+" succeeded", "user", s.Username, "generation", gen)

	if a.meta != nil {
		if err := a.meta.Set(ctx, metadata.KeyLastUsername, []byte(s.Username)); err != nil {
			a.log.Warn(ctx, "remember username failed", "error", err)
		}
	}
	return s, nil
}

func (a *authService) Logout(ctx context.Context) {
	user := a.sessions.Current().Username
	a.sessions.Clear()
	a.log.Info(ctx, "logged out", "user", user)
}

func (a *authService) LastUsername(ctx context.Context) string {
	if a.meta == nil {
		return ""
	}
	v, err := a.meta.Get(ctx, metadata.KeyLastUsername)
	if err != nil {
		a.log.Warn(ctx, "read last username failed", "error", err)
		return ""
	}
	return string(v)
}
