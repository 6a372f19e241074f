package users_test

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/hwidgate/internal/server/auth"
	"github.com/dmitrijs2005/hwidgate/internal/server/config"
	"github.com/dmitrijs2005/hwidgate/internal/server/shared/db"
	"github.com/dmitrijs2005/hwidgate/internal/server/users"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(t *testing.T) *users.Service {
	t.Helper()
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.PublicURL = "http://pay.local/"
	m := db.NewInMemoryRepositoryManager()
	return users.NewService(m.Users(), m.Checkouts(), cfg)
}

func registerAlice(t *testing.T, s *users.Service) string {
	t.Helper()
	sess, err := s.Register(context.Background(), "alice", "secret123")
	require.NoError(t, err)
	id, err := s.Authenticate(sess.Token)
	require.NoError(t, err)
	return id
}

func TestService_RegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	s := newService(t)

	sess, err := s.Register(ctx, " alice ", "secret123")
	require.NoError(t, err)
	assert.Equal(t, "alice", sess.UserName)
	assert.NotEmpty(t, sess.Token)

	_, err = s.Register(ctx, "alice", "other-password")
	assert.ErrorIs(t, err, users.ErrAlreadyExists)

	login, err := s.Login(ctx, "alice", "secret123")
	require.NoError(t, err)
	assert.Equal(t, "alice", login.UserName)

	_, err = s.Login(ctx, "alice", "wrong")
	assert.ErrorIs(t, err, users.ErrInvalidCredentials)

	_, err = s.Login(ctx, "nobody", "secret123")
	assert.ErrorIs(t, err, users.ErrInvalidCredentials)
}

func TestService_Register_InvalidInput(t *testing.T) {
	s := newService(t)

	_, err := s.Register(context.Background(), "", "secret123")
	assert.ErrorIs(t, err, users.ErrInvalidInput)

	_, err = s.Register(context.Background(), "bob", "")
	assert.ErrorIs(t, err, users.ErrInvalidInput)
}

func TestService_Authenticate_RejectsGarbage(t *testing.T) {
	s := newService(t)
	_, err := s.Authenticate("garbage")
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestService_RegisterHWID_IsPermanent(t *testing.T) {
	ctx := context.Background()
	s := newService(t)
	id := registerAlice(t, s)

	assert.ErrorIs(t, s.RegisterHWID(ctx, id, "  "), users.ErrInvalidInput)
	require.NoError(t, s.RegisterHWID(ctx, id, "abc123"))
	assert.ErrorIs(t, s.RegisterHWID(ctx, id, "def456"), users.ErrHWIDAlreadyRegistered)

	u, err := s.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "abc123", u.HWID)
}

func TestService_Ban(t *testing.T) {
	ctx := context.Background()
	s := newService(t)
	id := registerAlice(t, s)

	assert.ErrorIs(t, s.Ban(ctx, id, ""), users.ErrInvalidInput)
	assert.ErrorIs(t, s.Ban(ctx, id, "someone-else"), users.ErrForbidden)
	require.NoError(t, s.Ban(ctx, id, id))

	_, err := s.Login(ctx, "alice", "secret123")
	assert.ErrorIs(t, err, users.ErrBanned)
}

func TestService_CheckoutExtendsSubscription(t *testing.T) {
	ctx := context.Background()
	s := newService(t)
	id := registerAlice(t, s)

	_, _, err := s.CreateCheckout(ctx, id, 0)
	assert.ErrorIs(t, err, users.ErrInvalidInput)

	c, url, err := s.CreateCheckout(ctx, id, 2)
	require.NoError(t, err)
	assert.Equal(t, "http://pay.local/auth/payment/success?session_id="+c.SessionID, url)

	u, err := s.CompleteCheckout(ctx, c.SessionID)
	require.NoError(t, err)
	assert.True(t, u.Subscribed(time.Now()))
	first := u.SubscribedUntil
	assert.WithinDuration(t, time.Now().AddDate(0, 0, 60), first, time.Minute)

	again, err := s.CompleteCheckout(ctx, c.SessionID)
	require.NoError(t, err)
	assert.True(t, first.Equal(again.SubscribedUntil))

	c2, _, err := s.CreateCheckout(ctx, id, 1)
	require.NoError(t, err)
	u, err = s.CompleteCheckout(ctx, c2.SessionID)
	require.NoError(t, err)
	assert.True(t, first.AddDate(0, 0, 30).Equal(u.SubscribedUntil))

	_, err = s.CompleteCheckout(ctx, "cs_unknown")
	assert.ErrorIs(t, err, users.ErrCheckoutNotFound)
	_, err = s.CompleteCheckout(ctx, "")
	assert.ErrorIs(t, err, users.ErrInvalidInput)
}
