// Package metadata persists small client-side key/value facts in the local
// SQLite database: the per-install device id and the last signed-in username.
package metadata

import (
	"context"
)

// Well-known keys.
const (
	KeyInstallID    = "install_id"
	KeyLastUsername = "last_username"
)

type Repository interface {
	// Get returns (nil, nil) when key is absent.
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	// SetIfAbsent stores value only when key has no value yet and returns
	// whatever value is stored after the call.
	SetIfAbsent(ctx context.Context, key string, value []byte) ([]byte, error)
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) (map[string][]byte, error)
	Clear(ctx context.Context) error
}
