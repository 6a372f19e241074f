package users

import "time"

type User struct {
	ID              string
	UserName        string
	PasswordHash    []byte
	HWID            string
	Banned          bool
	SubscribedUntil time.Time
	CreatedAt       time.Time
}

// Subscribed reports whether the subscription is active at now.
func (u *User) Subscribed(now time.Time) bool {
	return u.SubscribedUntil.After(now)
}

// Checkout is a pending or completed subscription purchase.
type Checkout struct {
	SessionID   string
	UserID      string
	Months      int
	CreatedAt   time.Time
	CompletedAt time.Time
}

// Completed reports whether the payment for c was confirmed.
func (c *Checkout) Completed() bool {
	return !c.CompletedAt.IsZero()
}
