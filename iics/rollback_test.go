package iics

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nrislani/iics-promote/errors"
)

func TestRollback(t *testing.T) {
	var gotQuery string
	var gotPull pullRequest
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/public/core/v3/commitHistory":
			gotQuery = r.URL.Query().Get("q")
			fmt.Fprint(w, `{"commits": [{"hash": "newest"}, {"hash": "previous"}, {"hash": "oldest"}]}`)
		case "/public/core/v3/lookup":
			fmt.Fprint(w, `{"objects": [{"id": "obj-9"}]}`)
		case "/public/core/v3/pull":
			require.NoError(t, json.NewDecoder(r.Body).Decode(&gotPull))
			fmt.Fprint(w, `{"pullActionId": "pull-3"}`)
		case "/public/core/v3/sourceControlAction/pull-3":
			fmt.Fprint(w, `{"status": {"state": "SUCCESSFUL"}}`)
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))

	result, err := c.Rollback(context.Background(), "Default", "m_load_customers", "dtemplate")
	require.NoError(t, err)

	assert.Equal(t, StatusSuccess, result.Status)
	assert.Equal(t, "path=='Default/m_load_customers' and type=='DTEMPLATE'", gotQuery)
	// The immediately preceding version, not the newest one.
	assert.Equal(t, "previous", gotPull.CommitHash)
	require.Len(t, gotPull.Objects, 1)
	assert.Equal(t, "obj-9", gotPull.Objects[0].ID)
}

func TestRollbackSingleVersionHistory(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/public/core/v3/commitHistory":
			fmt.Fprint(w, `{"commits": [{"hash": "only"}]}`)
		default:
			t.Errorf("rollback should stop before %s", r.URL.Path)
		}
	}))

	_, err := c.Rollback(context.Background(), "Default", "m_load_customers", "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeRollbackFailed))
}

func TestRollbackObjectNotFound(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/public/core/v3/commitHistory":
			fmt.Fprint(w, `{"commits": [{"hash": "newest"}, {"hash": "previous"}]}`)
		case "/public/core/v3/lookup":
			fmt.Fprint(w, `{"objects": []}`)
		default:
			t.Errorf("rollback should stop before %s", r.URL.Path)
		}
	}))

	_, err := c.Rollback(context.Background(), "Default", "m_load_customers", "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeObjectNotFound))
}

func TestRollbackDefaultsObjectType(t *testing.T) {
	var gotLookup lookupRequest
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/public/core/v3/commitHistory":
			fmt.Fprint(w, `{"commits": [{"hash": "newest"}, {"hash": "previous"}]}`)
		case "/public/core/v3/lookup":
			require.NoError(t, json.NewDecoder(r.Body).Decode(&gotLookup))
			fmt.Fprint(w, `{"objects": [{"id": "obj-9"}]}`)
		case "/public/core/v3/pull":
			fmt.Fprint(w, `{"pullActionId": "pull-4"}`)
		case "/public/core/v3/sourceControlAction/pull-4":
			fmt.Fprint(w, `{"status": {"state": "SUCCESSFUL"}}`)
		}
	}))

	_, err := c.Rollback(context.Background(), "Default", "m_load_customers", "")
	require.NoError(t, err)

	require.Len(t, gotLookup.Objects, 1)
	assert.Equal(t, DefaultRollbackType, gotLookup.Objects[0].Type)
	assert.Equal(t, "Default/m_load_customers", gotLookup.Objects[0].Path)
}

func TestRollbackRequiresPathAndName(t *testing.T) {
	c := NewClient(&Session{PodURL: "https://pod", SessionID: "s"})

	_, err := c.Rollback(context.Background(), "", "m_load_customers", "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeConfigInvalid))

	_, err = c.Rollback(context.Background(), "Default", "", "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeConfigInvalid))
}
