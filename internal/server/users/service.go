package users

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/hwidgate/internal/server/auth"
	"github.com/dmitrijs2005/hwidgate/internal/server/config"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// daysPerMonth converts purchased months into subscription time.
const daysPerMonth = 30

// Session is an issued access token and the account it belongs to.
type Session struct {
	Token    string
	UserName string
}

type Service struct {
	repo          Repository
	checkouts     CheckoutRepository
	jwtSecret     []byte
	tokenValidity time.Duration
	publicURL     string
	now           func() time.Time
}

func NewService(repo Repository, checkouts CheckoutRepository, cfg *config.Config) *Service {
	return &Service{
		repo:          repo,
		checkouts:     checkouts,
		jwtSecret:     []byte(cfg.SecretKey),
		tokenValidity: cfg.TokenValidityDuration,
		publicURL:     strings.TrimRight(cfg.PublicURL, "/"),
		now:           func() time.Time { return time.Now().UTC() },
	}
}

func (s *Service) issue(user *User) (*Session, error) {
	token, err := auth.GenerateToken(user.ID, user.UserName, s.jwtSecret, s.tokenValidity)
	if err != nil {
		return nil, fmt.Errorf("error generating token: %w", err)
	}
	return &Session{Token: token, UserName: user.UserName}, nil
}

func (s *Service) Register(ctx context.Context, username, password string) (*Session, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, ErrInvalidInput
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, ErrInvalidInput
		}
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user, err := s.repo.Create(ctx, &User{
		ID:           uuid.NewString(),
		UserName:     username,
		PasswordHash: hash,
		CreatedAt:    s.now(),
	})
	if err != nil {
		return nil, err
	}

	return s.issue(user)
}

func (s *Service) Login(ctx context.Context, username, password string) (*Session, error) {
	user, err := s.repo.GetUserByLogin(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	if user.Banned {
		return nil, ErrBanned
	}

	return s.issue(user)
}

// Authenticate resolves a bearer token to its user id.
func (s *Service) Authenticate(token string) (string, error) {
	return auth.GetUserIDFromToken(token, s.jwtSecret)
}

func (s *Service) Get(ctx context.Context, userID string) (*User, error) {
	return s.repo.GetUserByID(ctx, userID)
}

// RegisterHWID binds hwid to the account. A binding is permanent.
func (s *Service) RegisterHWID(ctx context.Context, userID, hwid string) error {
	hwid = strings.TrimSpace(hwid)
	if hwid == "" {
		return ErrInvalidInput
	}
	_, err := s.repo.Update(ctx, userID, func(u *User) error {
		if u.HWID != "" {
			return ErrHWIDAlreadyRegistered
		}
		u.HWID = hwid
		return nil
	})
	return err
}

// Ban bans targetID. Accounts may only ban themselves.
func (s *Service) Ban(ctx context.Context, callerID, targetID string) error {
	if targetID == "" {
		return ErrInvalidInput
	}
	if targetID != callerID {
		return ErrForbidden
	}
	_, err := s.repo.Update(ctx, targetID, func(u *User) error {
		u.Banned = true
		return nil
	})
	return err
}

// CreateCheckout opens a checkout session for months of subscription.
func (s *Service) CreateCheckout(ctx context.Context, userID string, months int) (*Checkout, string, error) {
	if months < 1 {
		return nil, "", ErrInvalidInput
	}
	if _, err := s.repo.GetUserByID(ctx, userID); err != nil {
		return nil, "", err
	}

	c := &Checkout{
		SessionID: "cs_" + uuid.NewString(),
		UserID:    userID,
		Months:    months,
		CreatedAt: s.now(),
	}
	if err := s.checkouts.Create(ctx, c); err != nil {
		return nil, "", err
	}
	return c, s.publicURL + "/auth/payment/success?session_id=" + c.SessionID, nil
}

// CompleteCheckout confirms payment for sessionID and extends the
// subscription. Confirming a completed session again changes nothing.
func (s *Service) CompleteCheckout(ctx context.Context, sessionID string) (*User, error) {
	if sessionID == "" {
		return nil, ErrInvalidInput
	}

	var fresh bool
	c, err := s.checkouts.Complete(ctx, sessionID, func(c *Checkout) error {
		if c.Completed() {
			return nil
		}
		c.CompletedAt = s.now()
		fresh = true
		return nil
	})
	if err != nil {
		return nil, err
	}
	if !fresh {
		return s.repo.GetUserByID(ctx, c.UserID)
	}

	return s.repo.Update(ctx, c.UserID, func(u *User) error {
		from := s.now()
		if u.SubscribedUntil.After(from) {
			from = u.SubscribedUntil
		}
		u.SubscribedUntil = from.AddDate(0, 0, daysPerMonth*c.Months)
		return nil
	})
}

// Now returns the service clock.
func (s *Service) Now() time.Time {
	return s.now()
}
