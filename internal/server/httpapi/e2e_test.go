package httpapi

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/dmitrijs2005/hwidgate/internal/client/client"
	"github.com/dmitrijs2005/hwidgate/internal/client/gate"
	"github.com/dmitrijs2005/hwidgate/internal/client/hwid"
	"github.com/dmitrijs2005/hwidgate/internal/client/models"
	"github.com/dmitrijs2005/hwidgate/internal/client/services"
	"github.com/dmitrijs2005/hwidgate/internal/client/session"
	"github.com/dmitrijs2005/hwidgate/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type clientStack struct {
	sessions *session.Holder
	auth     services.AuthService
	verifier *services.Verifier
	account  *services.AccountService
}

func newClientStack(baseURL string, id hwid.Identity) clientStack {
	log := logging.Discard()
	api := client.NewHTTPClient(baseURL, 0, log)
	h := session.NewHolder()
	return clientStack{
		sessions: h,
		auth:     services.NewAuthService(api, h, nil, log),
		verifier: services.NewVerifier(api, hwid.StaticProvider{ID: id}, h, log),
		account:  services.NewAccountService(api, h, log),
	}
}

func TestEndToEnd_BindThenMismatch(t *testing.T) {
	ts := httptest.NewServer(newTestServer(t).Handler())
	defer ts.Close()
	ctx := context.Background()

	laptop := newClientStack(ts.URL, hwid.Identity{UniqueID: "u1", DeviceID: "laptop", SystemName: "linux", SystemVersion: "22.04"})

	_, err := laptop.auth.Register(ctx, "alice", []byte("secret123"), []byte("secret123"))
	require.NoError(t, err)

	out := laptop.verifier.Verify(ctx)
	require.Equal(t, models.StateVerified, out.State)
	view, _ := gate.Current(laptop.sessions)
	assert.Equal(t, gate.ShowAuthorized, view)

	profile, err := laptop.account.Profile(ctx)
	require.NoError(t, err)
	assert.Equal(t, "alice", profile.String("username"))

	checkout, err := laptop.account.CreateCheckout(ctx, 1)
	require.NoError(t, err)
	paid, err := laptop.account.PaymentSuccess(ctx, checkout.String("sessionId"))
	require.NoError(t, err)
	assert.True(t, paid.Bool("isSubscribed"))

	desktop := newClientStack(ts.URL, hwid.Identity{UniqueID: "u2", DeviceID: "desktop", SystemName: "windows", SystemVersion: "11"})
	_, err = desktop.auth.Login(ctx, "alice", []byte("secret123"))
	require.NoError(t, err)

	out = desktop.verifier.Verify(ctx)
	assert.Equal(t, models.StateMismatched, out.State)
	view, _ = gate.Current(desktop.sessions)
	assert.Equal(t, gate.ShowVerifying, view)

	// The laptop keeps working and can ban its own account.
	require.NoError(t, laptop.account.Ban(ctx))
	banned, err := laptop.account.BanStatus(ctx)
	require.NoError(t, err)
	assert.True(t, banned.Bool("isBanned"))

	_, err = desktop.auth.Login(ctx, "alice", []byte("secret123"))
	require.Error(t, err)
	assert.Equal(t, "User is banned", services.UserMessage(err))
}

func TestEndToEnd_LoginRejectedMessage(t *testing.T) {
	ts := httptest.NewServer(newTestServer(t).Handler())
	defer ts.Close()

	c := newClientStack(ts.URL, hwid.Identity{})
	_, err := c.auth.Login(context.Background(), "ghost", []byte("whatever1"))
	require.Error(t, err)
	assert.Equal(t, "Invalid credentials", services.UserMessage(err))
}
