package iics

import (
	"context"
	"fmt"
	"net/http"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nrislani/iics-promote/errors"
)

func TestPullChanges(t *testing.T) {
	var statusPolls int32
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/public/core/v3/pullByCommitHash":
			require.Equal(t, http.MethodPost, r.Method)
			fmt.Fprint(w, `{"pullActionId": "pull-1"}`)
		case "/public/core/v3/sourceControlAction/pull-1":
			if atomic.AddInt32(&statusPolls, 1) < 3 {
				fmt.Fprint(w, `{"status": {"state": "IN_PROGRESS"}}`)
				return
			}
			fmt.Fprint(w, `{"status": {"state": "SUCCESSFUL"}}`)
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))

	result, err := c.PullChanges(context.Background(), "def456")
	require.NoError(t, err)
	assert.Equal(t, StatusSuccess, result.Status)
	assert.Equal(t, int32(3), atomic.LoadInt32(&statusPolls))
}

func TestPullChangesIsNeverRetried(t *testing.T) {
	calls := 0
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		http.Error(w, "server error", http.StatusInternalServerError)
	}))

	_, err := c.PullChanges(context.Background(), "def456")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodePullFailed))
	assert.Equal(t, 1, calls, "a pull mutates UAT state and must not be retried")
}

func TestPullChangesSurfacesFailedAction(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/public/core/v3/pullByCommitHash":
			fmt.Fprint(w, `{"pullActionId": "pull-1"}`)
		default:
			fmt.Fprint(w, `{"status": {"state": "FAILED", "message": "merge conflict"}}`)
		}
	}))

	_, err := c.PullChanges(context.Background(), "def456")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodePullFailed))

	var perr *errors.PromoteError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "FAILED", perr.Details["state"])
}

func TestPullChangesMissingActionID(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{}`)
	}))

	_, err := c.PullChanges(context.Background(), "def456")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodePullFailed))
}

func TestPullObject(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/public/core/v3/pull":
			fmt.Fprint(w, `{"pullActionId": "pull-2"}`)
		case "/public/core/v3/sourceControlAction/pull-2":
			fmt.Fprint(w, `{"status": {"state": "SUCCESSFUL"}}`)
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))

	result, err := c.PullObject(context.Background(), "def456", "obj-9")
	require.NoError(t, err)
	assert.Equal(t, StatusSuccess, result.Status)
}
