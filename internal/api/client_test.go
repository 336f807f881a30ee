package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// staticToken implements TokenSource for tests.
type staticToken string

func (s staticToken) Token() string { return string(s) }

func TestClient_AttachesBearerToken(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := New(server.URL, WithTokenSource(staticToken("T")))

	_, err := client.ListDocuments(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer T", gotAuth)
}

func TestClient_NoTokenOnCredentialExchange(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"token":"new","userId":1,"email":"a@b.com","name":"Ann"}`))
	}))
	defer server.Close()

	client := New(server.URL, WithTokenSource(staticToken("stale")))

	_, err := client.Login(context.Background(), "a@b.com", "secret")
	require.NoError(t, err)
	assert.Empty(t, gotAuth, "login must not carry a bearer token")
}

func TestClient_RequestIDHeader(t *testing.T) {
	var gotID string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID = r.Header.Get("X-Request-ID")
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := New(server.URL)
	_, err := client.ListDocuments(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, gotID)
}

func TestClient_UnauthorizedHandler(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	calls := 0
	client := New(server.URL,
		WithTokenSource(staticToken("stale")),
		WithUnauthorizedHandler(func() { calls++ }),
	)

	_, err := client.ListDocuments(context.Background())
	require.Error(t, err)
	assert.True(t, IsUnauthorized(err))
	assert.Equal(t, 1, calls, "handler fires once per rejected request")
}

func TestClient_UnauthorizedHandlerSkippedForLogin(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"status":401,"error":"Authentication Failed","message":"Invalid credentials"}`))
	}))
	defer server.Close()

	calls := 0
	client := New(server.URL, WithUnauthorizedHandler(func() { calls++ }))

	_, err := client.Login(context.Background(), "a@b.com", "wrong")
	require.Error(t, err)
	assert.Equal(t, 0, calls, "bad credentials must not tear down the session")
}

func TestParseError(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantMsg string
	}{
		{
			name:    "server error body",
			status:  404,
			body:    `{"status":404,"error":"Resource Not Found","message":"Document not found with id: 9"}`,
			wantMsg: "Document not found with id: 9",
		},
		{
			name:    "plain text body",
			status:  500,
			body:    "boom",
			wantMsg: "boom",
		},
		{
			name:    "empty body falls back to status text",
			status:  502,
			body:    "",
			wantMsg: "Bad Gateway",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			apiErr := parseError(tt.status, []byte(tt.body))
			assert.Equal(t, tt.status, apiErr.StatusCode)
			assert.Equal(t, tt.wantMsg, apiErr.Message)
		})
	}
}

func TestErrorMessage(t *testing.T) {
	apiErr := &Error{StatusCode: 500, Message: "server says no"}
	assert.Equal(t, "server says no", ErrorMessage(apiErr, "fallback"))
	assert.Equal(t, "fallback", ErrorMessage(context.DeadlineExceeded, "fallback"))
}
