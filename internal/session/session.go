// Package session holds the authenticated identity and bearer token for
// the running client. It is the single owner of the persisted session:
// every mutation goes through Login, Register, or Logout, and dependents
// observe changes through Subscribe rather than reaching into storage.
package session

import (
	"context"
	"sync"

	"github.com/soares-ari/HelpDesk-AI/internal/api"
)

// Authenticator is the slice of the API client the session needs to
// exchange credentials for a token.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (*api.AuthResponse, error)
	Register(ctx context.Context, name, email, password string) (*api.AuthResponse, error)
}

// Listener is notified after every session mutation. active is true while
// an identity is established.
type Listener func(active bool, user *api.User)

// Manager is the session state holder. In-memory state is derived from the
// store once at construction and kept in sync on every mutation.
type Manager struct {
	mu        sync.RWMutex
	store     Store
	token     string
	user      *api.User
	listeners []Listener
}

// New creates a manager seeded from the persisted store. A store read
// failure starts the session signed out rather than failing the client.
func New(store Store) *Manager {
	m := &Manager{store: store}
	if token, user, err := store.Load(); err == nil {
		m.token = token
		m.user = user
	}
	return m
}

// Login authenticates against the remote service and, on success, persists
// the new token and identity, overwriting any previous session.
func (m *Manager) Login(ctx context.Context, auth Authenticator, email, password string) (*api.User, error) {
	resp, err := auth.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	return m.establish(resp)
}

// Register creates an account and establishes the session, with the same
// persistence contract as Login.
func (m *Manager) Register(ctx context.Context, auth Authenticator, name, email, password string) (*api.User, error) {
	resp, err := auth.Register(ctx, name, email, password)
	if err != nil {
		return nil, err
	}
	return m.establish(resp)
}

func (m *Manager) establish(resp *api.AuthResponse) (*api.User, error) {
	user := resp.User()
	if err := m.store.Save(resp.Token, user); err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.token = resp.Token
	m.user = &user
	m.mu.Unlock()

	m.notify()
	return &user, nil
}

// Logout clears the persisted token and identity unconditionally.
// Idempotent; safe to call while already signed out.
func (m *Manager) Logout() {
	_ = m.store.Clear()

	m.mu.Lock()
	m.token = ""
	m.user = nil
	m.mu.Unlock()

	m.notify()
}

// Token returns the bearer token, or "" when signed out. Implements
// api.TokenSource.
func (m *Manager) Token() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token
}

// CurrentUser returns the signed-in identity, or nil.
func (m *Manager) CurrentUser() *api.User {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.user == nil {
		return nil
	}
	u := *m.user
	return &u
}

// Active reports whether a token is present. Presence is the only check
// performed locally; the server re-validates on every API call.
func (m *Manager) Active() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token != ""
}

// Subscribe registers a listener for session changes. Listeners run
// synchronously after each mutation, in registration order.
func (m *Manager) Subscribe(fn Listener) {
	m.mu.Lock()
	m.listeners = append(m.listeners, fn)
	m.mu.Unlock()
}

func (m *Manager) notify() {
	m.mu.RLock()
	active := m.token != ""
	user := m.user
	listeners := make([]Listener, len(m.listeners))
	copy(listeners, m.listeners)
	m.mu.RUnlock()

	for _, fn := range listeners {
		fn(active, user)
	}
}
