package client

import (
	"context"

	"github.com/dmitrijs2005/hwidgate/internal/client/models"
)

// AuthResponse is the success body of /auth/login and /auth/register.
type AuthResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
}

// AuthAPI covers the unauthenticated credential endpoints.
type AuthAPI interface {
	Register(ctx context.Context, username, password string) (*AuthResponse, error)
	Login(ctx context.Context, username, password string) (*AuthResponse, error)
}

// HWIDAPI covers the device binding endpoints.
type HWIDAPI interface {
	// GetHWID returns the fingerprint bound to the account, or "" when none
	// is bound yet.
	GetHWID(ctx context.Context, token string) (string, error)
	RegisterHWID(ctx context.Context, token, hwid string) error
}

// AccountAPI covers profile, subscription, ban and payment endpoints.
type AccountAPI interface {
	Profile(ctx context.Context, token string) (models.Fields, error)
	CheckSubscription(ctx context.Context, token string) (models.Fields, error)
	IsSubscribed(ctx context.Context, token string) (models.Fields, error)
	BanStatus(ctx context.Context, token string) (models.Fields, error)
	Ban(ctx context.Context, token string) error
	CreateCheckout(ctx context.Context, token string, months int) (models.Fields, error)
	PaymentSuccess(ctx context.Context, sessionID string) (models.Fields, error)
	PaymentCancel(ctx context.Context) (models.Fields, error)
}

// Client is the full remote API surface used by the client.
type Client interface {
	AuthAPI
	HWIDAPI
	AccountAPI
}
