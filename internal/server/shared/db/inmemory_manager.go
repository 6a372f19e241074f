package db

import (
	"context"
	"strings"
	"sync"

	"github.com/dmitrijs2005/hwidgate/internal/server/users"
)

// InMemoryRepositoryManager keeps all state in process memory. Stored values
// are copied on the way in and out so callers cannot alias them.
type InMemoryRepositoryManager struct {
	users     *memoryUsers
	checkouts *memoryCheckouts
}

func NewInMemoryRepositoryManager() *InMemoryRepositoryManager {
	return &InMemoryRepositoryManager{
		users:     &memoryUsers{byID: map[string]*users.User{}, byLogin: map[string]string{}},
		checkouts: &memoryCheckouts{items: map[string]*users.Checkout{}},
	}
}

func (m *InMemoryRepositoryManager) Users() users.Repository {
	return m.users
}

func (m *InMemoryRepositoryManager) Checkouts() users.CheckoutRepository {
	return m.checkouts
}

func (m *InMemoryRepositoryManager) Close() error {
	return nil
}

type memoryUsers struct {
	mu      sync.RWMutex
	byID    map[string]*users.User
	byLogin map[string]string
}

func loginKey(login string) string {
	return strings.ToLower(login)
}

func copyUser(u *users.User) *users.User {
	c := *u
	c.PasswordHash = append([]byte(nil), u.PasswordHash...)
	return &c
}

func (r *memoryUsers) Create(_ context.Context, user *users.User) (*users.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := loginKey(user.UserName)
	if _, ok := r.byLogin[key]; ok {
		return nil, users.ErrAlreadyExists
	}
	r.byID[user.ID] = copyUser(user)
	r.byLogin[key] = user.ID
	return copyUser(user), nil
}

func (r *memoryUsers) GetUserByLogin(_ context.Context, login string) (*users.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byLogin[loginKey(login)]
	if !ok {
		return nil, users.ErrNotFound
	}
	return copyUser(r.byID[id]), nil
}

func (r *memoryUsers) GetUserByID(_ context.Context, id string) (*users.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return nil, users.ErrNotFound
	}
	return copyUser(u), nil
}

func (r *memoryUsers) Update(_ context.Context, id string, fn func(u *users.User) error) (*users.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.byID[id]
	if !ok {
		return nil, users.ErrNotFound
	}
	next := copyUser(u)
	if err := fn(next); err != nil {
		return nil, err
	}
	r.byID[id] = next
	return copyUser(next), nil
}

type memoryCheckouts struct {
	mu    sync.Mutex
	items map[string]*users.Checkout
}

func (r *memoryCheckouts) Create(_ context.Context, c *users.Checkout) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cp := *c
	r.items[c.SessionID] = &cp
	return nil
}

func (r *memoryCheckouts) Get(_ context.Context, sessionID string) (*users.Checkout, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.items[sessionID]
	if !ok {
		return nil, users.ErrCheckoutNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *memoryCheckouts) Complete(_ context.Context, sessionID string, fn func(c *users.Checkout) error) (*users.Checkout, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.items[sessionID]
	if !ok {
		return nil, users.ErrCheckoutNotFound
	}
	next := *c
	if err := fn(&next); err != nil {
		return nil, err
	}
	r.items[sessionID] = &next
	cp := next
	return &cp, nil
}
