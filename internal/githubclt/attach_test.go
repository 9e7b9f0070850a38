package githubclt

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simplesurance/prcreator/internal/prcerr"
)

func TestAddAssignees(t *testing.T) {
	var gotBody map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/repos/o/r/issues/3/assignees", r.URL.Path)

		payload, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(payload, &gotBody))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"number": 3}`))
	}))
	t.Cleanup(srv.Close)

	clt := newTestClient(t, srv)

	status, err := clt.AddAssignees(context.Background(), "o", "r", 3, []string{"alice", "bob"})
	require.NoError(t, err)

	assert.Equal(t, http.StatusCreated, status)
	assert.Equal(t, map[string]any{"assignees": []any{"alice", "bob"}}, gotBody)
}

func TestRequestReviewersSendsEmptyList(t *testing.T) {
	var gotBody string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/repos/o/r/pulls/3/requested_reviewers", r.URL.Path)

		payload, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		gotBody = string(payload)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"number": 3}`))
	}))
	t.Cleanup(srv.Close)

	clt := newTestClient(t, srv)

	status, err := clt.RequestReviewers(context.Background(), "o", "r", 3, []string{})
	require.NoError(t, err)

	assert.Equal(t, http.StatusCreated, status)
	assert.JSONEq(t, `{"reviewers": []}`, gotBody)
}

func TestRequestTeamReviewers(t *testing.T) {
	var gotBody string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/repos/o/r/pulls/3/requested_teams", r.URL.Path)

		payload, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		gotBody = string(payload)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"number": 3}`))
	}))
	t.Cleanup(srv.Close)

	clt := newTestClient(t, srv)

	status, err := clt.RequestTeamReviewers(context.Background(), "o", "r", 3, []string{"backend"})
	require.NoError(t, err)

	assert.Equal(t, http.StatusCreated, status)
	assert.JSONEq(t, `{"team_reviewers": ["backend"]}`, gotBody)
}

func TestRequestReviewersRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"message": "Reviews may only be requested from collaborators"}`))
	}))
	t.Cleanup(srv.Close)

	clt := newTestClient(t, srv)

	status, err := clt.RequestReviewers(context.Background(), "o", "r", 3, []string{"stranger"})
	require.Error(t, err)

	assert.Equal(t, http.StatusUnprocessableEntity, status)

	var rejectedErr *prcerr.RejectedError
	require.ErrorAs(t, err, &rejectedErr)
	assert.Equal(t, http.StatusUnprocessableEntity, rejectedErr.StatusCode)
}
