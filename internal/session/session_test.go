package session

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soares-ari/HelpDesk-AI/internal/api"
)

// stubAuth implements Authenticator for tests.
type stubAuth struct {
	resp *api.AuthResponse
	err  error
}

func (s *stubAuth) Login(ctx context.Context, email, password string) (*api.AuthResponse, error) {
	return s.resp, s.err
}

func (s *stubAuth) Register(ctx context.Context, name, email, password string) (*api.AuthResponse, error) {
	return s.resp, s.err
}

func annResponse() *api.AuthResponse {
	return &api.AuthResponse{Token: "T", Type: "Bearer", UserID: 1, Email: "a@b.com", Name: "Ann"}
}

func TestLogin_EstablishesAndPersistsSession(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	require.NoError(t, err)

	m := New(store)
	require.False(t, m.Active())

	user, err := m.Login(context.Background(), &stubAuth{resp: annResponse()}, "a@b.com", "secret")
	require.NoError(t, err)

	assert.Equal(t, &api.User{ID: 1, Email: "a@b.com", Name: "Ann"}, user)
	assert.True(t, m.Active())
	assert.Equal(t, "T", m.Token())
	assert.Equal(t, "Ann", m.CurrentUser().Name)

	// Persisted layout: opaque token plus JSON identity
	raw, err := os.ReadFile(filepath.Join(dir, "auth_token"))
	require.NoError(t, err)
	assert.Equal(t, "T", string(raw))

	userRaw, err := os.ReadFile(filepath.Join(dir, "current_user"))
	require.NoError(t, err)
	var persisted api.User
	require.NoError(t, json.Unmarshal(userRaw, &persisted))
	assert.Equal(t, api.User{ID: 1, Email: "a@b.com", Name: "Ann"}, persisted)
}

func TestLogin_FailureLeavesSessionUntouched(t *testing.T) {
	store := &MemStore{}
	m := New(store)

	_, err := m.Login(context.Background(), &stubAuth{err: errors.New("bad credentials")}, "a@b.com", "wrong")
	require.Error(t, err)

	assert.False(t, m.Active())
	assert.Empty(t, m.Token())
	assert.Nil(t, m.CurrentUser())
}

func TestLogin_OverwritesPreviousSession(t *testing.T) {
	store := &MemStore{}
	m := New(store)

	_, err := m.Login(context.Background(), &stubAuth{resp: annResponse()}, "a@b.com", "secret")
	require.NoError(t, err)

	second := &api.AuthResponse{Token: "T2", UserID: 2, Email: "b@c.com", Name: "Bob"}
	_, err = m.Login(context.Background(), &stubAuth{resp: second}, "b@c.com", "secret")
	require.NoError(t, err)

	assert.Equal(t, "T2", m.Token())
	assert.Equal(t, int64(2), m.CurrentUser().ID)

	token, user, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "T2", token)
	assert.Equal(t, "Bob", user.Name)
}

func TestLogout_ClearsBothKeys(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	require.NoError(t, err)

	m := New(store)
	_, err = m.Login(context.Background(), &stubAuth{resp: annResponse()}, "a@b.com", "secret")
	require.NoError(t, err)

	m.Logout()

	assert.False(t, m.Active())
	assert.Nil(t, m.CurrentUser())
	assert.NoFileExists(t, filepath.Join(dir, "auth_token"))
	assert.NoFileExists(t, filepath.Join(dir, "current_user"))

	// Idempotent
	m.Logout()
	assert.False(t, m.Active())
}

func TestNew_SeedsFromPersistedStore(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.Save("T", api.User{ID: 1, Email: "a@b.com", Name: "Ann"}))

	m := New(store)
	assert.True(t, m.Active())
	assert.Equal(t, "T", m.Token())
	assert.Equal(t, "Ann", m.CurrentUser().Name)
}

func TestNew_MissingSessionStartsSignedOut(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	m := New(store)
	assert.False(t, m.Active())
	assert.Nil(t, m.CurrentUser())
}

func TestSubscribe(t *testing.T) {
	m := New(&MemStore{})

	var events []bool
	m.Subscribe(func(active bool, user *api.User) {
		events = append(events, active)
	})

	_, err := m.Login(context.Background(), &stubAuth{resp: annResponse()}, "a@b.com", "secret")
	require.NoError(t, err)
	m.Logout()

	assert.Equal(t, []bool{true, false}, events)
}

func TestRegister_EstablishesSession(t *testing.T) {
	m := New(&MemStore{})

	user, err := m.Register(context.Background(), &stubAuth{resp: annResponse()}, "Ann", "a@b.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, "Ann", user.Name)
	assert.True(t, m.Active())
}
