package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/hwidgate/internal/client/client"
	"github.com/dmitrijs2005/hwidgate/internal/client/models"
	"github.com/dmitrijs2005/hwidgate/internal/client/session"
	"github.com/dmitrijs2005/hwidgate/internal/logging"
)

// AccountService exposes the account endpoints to a verified session.
// Calls made without a session fail with ErrNotAuthenticated, and calls made
// before verification succeeded fail with ErrNotVerified; neither reaches
// the network.
type AccountService struct {
	api      client.AccountAPI
	sessions *session.Holder
	log      logging.Logger
}

func NewAccountService(api client.AccountAPI, sessions *session.Holder, log logging.Logger) *AccountService {
	return &AccountService{api: api, sessions: sessions, log: log}
}

func (s *AccountService) token() (string, error) {
	snap := s.sessions.Snapshot()
	if !snap.Session.Authenticated() {
		return "", ErrNotAuthenticated
	}
	if snap.Verification.State != models.StateVerified {
		return "", ErrNotVerified
	}
	return snap.Session.Token, nil
}

func (s *AccountService) fetch(ctx context.Context, op string, call func(token string) (models.Fields, error)) (models.Fields, error) {
	token, err := s.token()
	if err != nil {
		return nil, err
	}
	f, err := call(token)
	if err != nil {
		s.log.Warn(ctx, op+" failed", "error", err)
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return f, nil
}

func (s *AccountService) Profile(ctx context.Context) (models.Fields, error) {
	return s.fetch(ctx, "profile", func(token string) (models.Fields, error) {
		return s.api.Profile(ctx, token)
	})
}

func (s *AccountService) CheckSubscription(ctx context.Context) (models.Fields, error) {
	return s.fetch(ctx, "check subscription", func(token string) (models.Fields, error) {
		return s.api.CheckSubscription(ctx, token)
	})
}

func (s *AccountService) IsSubscribed(ctx context.Context) (models.Fields, error) {
	return s.fetch(ctx, "is subscribed", func(token string) (models.Fields, error) {
		return s.api.IsSubscribed(ctx, token)
	})
}

func (s *AccountService) BanStatus(ctx context.Context) (models.Fields, error) {
	return s.fetch(ctx, "ban status", func(token string) (models.Fields, error) {
		return s.api.BanStatus(ctx, token)
	})
}

// Ban asks the server to ban the signed-in account.
func (s *AccountService) Ban(ctx context.Context) error {
	_, err := s.fetch(ctx, "ban", func(token string) (models.Fields, error) {
		return nil, s.api.Ban(ctx, token)
	})
	return err
}

// CreateCheckout starts a subscription checkout; months below 1 count as 1.
func (s *AccountService) CreateCheckout(ctx context.Context, months int) (models.Fields, error) {
	if months < 1 {
		months = 1
	}
	return s.fetch(ctx, "create checkout", func(token string) (models.Fields, error) {
		return s.api.CreateCheckout(ctx, token, months)
	})
}

// PaymentSuccess reports a completed checkout session. It needs no token.
func (s *AccountService) PaymentSuccess(ctx context.Context, sessionID string) (models.Fields, error) {
	f, err := s.api.PaymentSuccess(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("payment success: %w", err)
	}
	return f, nil
}

// PaymentCancel reports an abandoned checkout. It needs no token.
func (s *AccountService) PaymentCancel(ctx context.Context) (models.Fields, error) {
	f, err := s.api.PaymentCancel(ctx)
	if err != nil {
		return nil, fmt.Errorf("payment cancel: %w", err)
	}
	return f, nil
}
