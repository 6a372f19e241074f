package services

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/hwidgate/internal/client/client"
	"github.com/dmitrijs2005/hwidgate/internal/client/hwid"
	"github.com/dmitrijs2005/hwidgate/internal/client/models"
	"github.com/dmitrijs2005/hwidgate/internal/client/session"
)

type authCall struct {
	op       string
	username string
	password string
}

type fakeAuthAPI struct {
	mu    sync.Mutex
	calls []authCall
	resp  *client.AuthResponse
	err   error
}

func (f *fakeAuthAPI) record(op, u, p string) (*client.AuthResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, authCall{op: op, username: u, password: p})
	return f.resp, f.err
}

func (f *fakeAuthAPI) Register(_ context.Context, u, p string) (*client.AuthResponse, error) {
	return f.record("register", u, p)
}

func (f *fakeAuthAPI) Login(_ context.Context, u, p string) (*client.AuthResponse, error) {
	return f.record("login", u, p)
}

func (f *fakeAuthAPI) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

type registerCall struct {
	token string
	hwid  string
}

type fakeHWIDAPI struct {
	mu        sync.Mutex
	bound     string
	getErr    error
	regErr    error
	getCalls  int
	registers []registerCall

	// block, when set, is waited on inside GetHWID after entered is closed.
	entered chan struct{}
	block   chan struct{}
	panicOn bool
}

func (f *fakeHWIDAPI) GetHWID(_ context.Context, _ string) (string, error) {
	f.mu.Lock()
	f.getCalls++
	entered, block := f.entered, f.block
	f.mu.Unlock()

	if entered != nil {
		close(entered)
	}
	if block != nil {
		<-block
	}
	if f.panicOn {
		panic("boom")
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	return f.bound, f.getErr
}

func (f *fakeHWIDAPI) RegisterHWID(_ context.Context, token, hwid string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.registers = append(f.registers, registerCall{token: token, hwid: hwid})
	return f.regErr
}

type fakeAccountAPI struct {
	mu      sync.Mutex
	calls   []string
	tokens  []string
	months  int
	session string
	fields  models.Fields
	err     error
}

func (f *fakeAccountAPI) record(op, token string) (models.Fields, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, op)
	f.tokens = append(f.tokens, token)
	return f.fields, f.err
}

func (f *fakeAccountAPI) Profile(_ context.Context, token string) (models.Fields, error) {
	return f.record("profile", token)
}

func (f *fakeAccountAPI) CheckSubscription(_ context.Context, token string) (models.Fields, error) {
	return f.record("check-subscription", token)
}

func (f *fakeAccountAPI) IsSubscribed(_ context.Context, token string) (models.Fields, error) {
	return f.record("is-subscribed", token)
}

func (f *fakeAccountAPI) BanStatus(_ context.Context, token string) (models.Fields, error) {
	return f.record("is-banned", token)
}

func (f *fakeAccountAPI) Ban(_ context.Context, token string) error {
	_, err := f.record("ban", token)
	return err
}

func (f *fakeAccountAPI) CreateCheckout(_ context.Context, token string, months int) (models.Fields, error) {
	f.mu.Lock()
	f.months = months
	f.mu.Unlock()
	return f.record("create-checkout", token)
}

func (f *fakeAccountAPI) PaymentSuccess(_ context.Context, sessionID string) (models.Fields, error) {
	f.mu.Lock()
	f.session = sessionID
	f.mu.Unlock()
	return f.record("payment-success", "")
}

func (f *fakeAccountAPI) PaymentCancel(context.Context) (models.Fields, error) {
	return f.record("payment-cancel", "")
}

type memMeta struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMemMeta() *memMeta { return &memMeta{data: map[string][]byte{}} }

func (m *memMeta) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data[key], nil
}

func (m *memMeta) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *memMeta) SetIfAbsent(_ context.Context, key string, value []byte) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if v, ok := m.data[key]; ok {
		return v, nil
	}
	m.data[key] = value
	return value, nil
}

func (m *memMeta) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *memMeta) List(context.Context) (map[string][]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string][]byte, len(m.data))
	for k, v := range m.data {
		out[k] = v
	}
	return out, nil
}

func (m *memMeta) Clear(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = map[string][]byte{}
	return nil
}

// logoutProvider signs the user out while the identity is being read.
type logoutProvider struct {
	sessions *session.Holder
	err      error
}

func (p logoutProvider) Identity(context.Context) (hwid.Identity, error) {
	p.sessions.Clear()
	if p.err != nil {
		return hwid.Identity{}, p.err
	}
	return testIdentity, nil
}
