package iics

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nrislani/iics-promote/errors"
)

func TestLoginSuccess(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		fmt.Fprint(w, `{
			"userInfo": {"sessionId": "session-abc"},
			"products": [{"name": "Integration Cloud", "baseApiUrl": "https://usw3.dm-us.informaticacloud.com/saas"}]
		}`)
	}))
	defer srv.Close()

	session, err := Login(context.Background(), srv.URL, "", "dev_user", "dev_pass")
	require.NoError(t, err)

	assert.Equal(t, "/saas/public/core/v3/login", gotPath)
	assert.Equal(t, "session-abc", session.SessionID)
	// Pod URL falls back to the product base API URL when not configured.
	assert.Equal(t, "https://usw3.dm-us.informaticacloud.com/saas", session.PodURL)
	assert.True(t, session.Valid())
}

func TestLoginConfiguredPodURLWins(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{
			"userInfo": {"sessionId": "session-abc"},
			"products": [{"name": "Integration Cloud", "baseApiUrl": "https://other.example.com/saas"}]
		}`)
	}))
	defer srv.Close()

	session, err := Login(context.Background(), srv.URL, "https://configured.example.com/saas", "u", "p")
	require.NoError(t, err)
	assert.Equal(t, "https://configured.example.com/saas", session.PodURL)
}

func TestLoginInvalidCredentials(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		http.Error(w, `{"error":{"message":"Invalid login"}}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	session, err := Login(context.Background(), srv.URL, "", "dev_user", "wrong_pass")
	require.Error(t, err)

	assert.Nil(t, session, "no session on failed login")
	assert.True(t, errors.Is(err, errors.ErrCodeAuthFailed))
	assert.Equal(t, 1, calls, "login never retries")

	var perr *errors.PromoteError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, http.StatusUnauthorized, perr.Details["status"])
	assert.Contains(t, perr.Details["response"], "Invalid login")
}

func TestLoginMalformedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"userInfo": {}}`)
	}))
	defer srv.Close()

	_, err := Login(context.Background(), srv.URL, "", "u", "p")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeAuthFailed))
}

func TestLoginMissingInputsFailBeforeAnyCall(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer srv.Close()

	_, err := Login(context.Background(), srv.URL, "", "", "pass")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeConfigInvalid))
	assert.Equal(t, 0, calls)
}

func TestLogoutBestEffort(t *testing.T) {
	var gotPath string
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		http.Error(w, "already expired", http.StatusUnauthorized)
	}))

	// Must not panic or surface an error.
	c.Logout(context.Background())
	assert.Equal(t, "/public/core/v3/logout", gotPath)
}

func TestSessionValid(t *testing.T) {
	assert.False(t, (&Session{}).Valid())
	assert.False(t, (&Session{SessionID: "s"}).Valid())
	assert.False(t, (&Session{PodURL: "https://pod"}).Valid())
	assert.True(t, (&Session{PodURL: "https://pod", SessionID: "s"}).Valid())

	var nilSession *Session
	assert.False(t, nilSession.Valid())
}
