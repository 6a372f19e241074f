package users

import (
	"context"
)

// Repository stores accounts. Update applies fn to the stored user
// atomically; an error from fn aborts the update.
type Repository interface {
	Create(ctx context.Context, user *User) (*User, error)
	GetUserByLogin(ctx context.Context, login string) (*User, error)
	GetUserByID(ctx context.Context, id string) (*User, error)
	Update(ctx context.Context, id string, fn func(u *User) error) (*User, error)
}

// CheckoutRepository stores checkout sessions.
type CheckoutRepository interface {
	Create(ctx context.Context, c *Checkout) error
	Get(ctx context.Context, sessionID string) (*Checkout, error)
	Complete(ctx context.Context, sessionID string, fn func(c *Checkout) error) (*Checkout, error)
}
