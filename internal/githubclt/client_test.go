package githubclt

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/google/go-github/v59/github"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"golang.org/x/oauth2"

	"github.com/simplesurance/prcreator/internal/prcerr"
)

const testToken = "apitoken123"

// newTestClient returns a Client whose authenticated and anonymous REST
// clients are both pointed at srv.
func newTestClient(t *testing.T, srv *httptest.Server) *Client {
	t.Helper()

	baseURL, err := url.Parse(srv.URL + "/")
	require.NoError(t, err)

	authedHTTPClt := oauth2.NewClient(
		context.Background(),
		oauth2.StaticTokenSource(&oauth2.Token{AccessToken: testToken}),
	)

	restClt := github.NewClient(authedHTTPClt)
	restClt.BaseURL = baseURL

	anonRestClt := github.NewClient(nil)
	anonRestClt.BaseURL = baseURL

	return &Client{
		restClt:     restClt,
		anonRestClt: anonRestClt,
		logger:      zaptest.NewLogger(t).Named(t.Name()),
	}
}

func TestListOpenPullRequests(t *testing.T) {
	var gotQuery url.Values

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/repos/simplesurance/tested/pulls", r.URL.Path)
		gotQuery = r.URL.Query()

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"number": 1, "html_url": "https://localhost/pull/1", "state": "open", "head": {"ref": "other"}},
			{"number": 2, "html_url": "https://localhost/pull/2", "state": "open", "head": {"ref": "feature"}, "node_id": "PR_2"}
		]`))
	}))
	t.Cleanup(srv.Close)

	clt := newTestClient(t, srv)

	prs, err := clt.ListOpenPullRequests(context.Background(), "simplesurance", "tested", "main", "feature")
	require.NoError(t, err)

	assert.Equal(t, "open", gotQuery.Get("state"))
	assert.Equal(t, "main", gotQuery.Get("base"))
	assert.Equal(t, "feature", gotQuery.Get("head"))

	require.Len(t, prs, 2)
	assert.Equal(t, 2, prs[1].Number)
	assert.Equal(t, "feature", prs[1].HeadRef)
	assert.Equal(t, "PR_2", prs[1].NodeID)
	assert.Equal(t, "https://localhost/pull/2", prs[1].HTMLURL)
}

func TestListOpenPullRequestsUpgradesToAuthenticated(t *testing.T) {
	var requests int

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++

		if r.Header.Get("Authorization") == "" {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"message": "Not Found"}`))
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"number": 9, "state": "open", "head": {"ref": "feature"}}]`))
	}))
	t.Cleanup(srv.Close)

	clt := newTestClient(t, srv)

	prs, err := clt.ListOpenPullRequests(context.Background(), "o", "r", "main", "feature")
	require.NoError(t, err)

	assert.Equal(t, 2, requests)
	require.Len(t, prs, 1)
	assert.Equal(t, 9, prs[0].Number)
}

func TestListOpenPullRequestsRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"message": "Forbidden"}`))
	}))
	t.Cleanup(srv.Close)

	clt := newTestClient(t, srv)

	_, err := clt.ListOpenPullRequests(context.Background(), "o", "r", "main", "feature")
	require.Error(t, err)

	var rejectedErr *prcerr.RejectedError
	require.ErrorAs(t, err, &rejectedErr)
	assert.Equal(t, http.StatusForbidden, rejectedErr.StatusCode)
}

func TestCreatePullRequest(t *testing.T) {
	var gotBody map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/repos/o/r/pulls", r.URL.Path)

		payload, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(payload, &gotBody))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"number": 4, "html_url": "https://localhost/pull/4", "state": "open", "head": {"ref": "feature"}}`))
	}))
	t.Cleanup(srv.Close)

	clt := newTestClient(t, srv)

	pr, status, err := clt.CreatePullRequest(context.Background(), "o", "r", &CreatePullRequestRequest{
		Title:      "add feature",
		Body:       "descr",
		BaseBranch: "main",
		HeadBranch: "feature",
		Draft:      true,
	})
	require.NoError(t, err)

	assert.Equal(t, http.StatusCreated, status)
	assert.Equal(t, 4, pr.Number)
	assert.Equal(t, "https://localhost/pull/4", pr.HTMLURL)

	assert.Equal(t, "add feature", gotBody["title"])
	assert.Equal(t, "main", gotBody["base"])
	assert.Equal(t, "feature", gotBody["head"])
	assert.Equal(t, true, gotBody["draft"])
	assert.Equal(t, true, gotBody["maintainer_can_modify"])
}

func TestCreatePullRequestRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"message": "Validation Failed", "errors": [{"message": "A pull request already exists"}]}`))
	}))
	t.Cleanup(srv.Close)

	clt := newTestClient(t, srv)

	_, status, err := clt.CreatePullRequest(context.Background(), "o", "r", &CreatePullRequestRequest{
		Title:      "t",
		BaseBranch: "main",
		HeadBranch: "feature",
	})
	require.Error(t, err)

	assert.Equal(t, http.StatusUnprocessableEntity, status)

	var rejectedErr *prcerr.RejectedError
	require.ErrorAs(t, err, &rejectedErr)
	assert.Equal(t, http.StatusUnprocessableEntity, rejectedErr.StatusCode)
	assert.Contains(t, rejectedErr.Body, "A pull request already exists")
}

func TestUpdatePullRequestDefaultsStateToOpen(t *testing.T) {
	var gotBody map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPatch, r.Method)
		require.Equal(t, "/repos/o/r/pulls/17", r.URL.Path)

		payload, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(payload, &gotBody))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"number": 17, "html_url": "https://localhost/pull/17", "state": "open", "head": {"ref": "feature"}}`))
	}))
	t.Cleanup(srv.Close)

	clt := newTestClient(t, srv)

	pr, status, err := clt.UpdatePullRequest(context.Background(), "o", "r", 17, &UpdatePullRequestRequest{
		Title:      "new title",
		Body:       "new body",
		BaseBranch: "main",
	})
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, 17, pr.Number)

	assert.Equal(t, "new title", gotBody["title"])
	assert.Equal(t, "open", gotBody["state"])
	assert.Equal(t, map[string]any{"ref": "main"}, gotBody["base"])
}

func TestDefaultBranchUpgradesToAuthenticated(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/repos/o/r", r.URL.Path)

		if r.Header.Get("Authorization") == "" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"message": "Requires authentication"}`))
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"name": "r", "default_branch": "devel"}`))
	}))
	t.Cleanup(srv.Close)

	clt := newTestClient(t, srv)

	branch, err := clt.DefaultBranch(context.Background(), "o", "r")
	require.NoError(t, err)
	assert.Equal(t, "devel", branch)
}
