// Package db provides the repository managers of the server: PostgreSQL for
// persistent deployments and an in-memory one for local runs and tests.
package db

import (
	"github.com/dmitrijs2005/hwidgate/internal/server/users"
)

type RepositoryManager interface {
	Users() users.Repository
	Checkouts() users.CheckoutRepository
	Close() error
}
