// Package githubclt provides a github API client.
package githubclt

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/go-github/v59/github"
	"github.com/shurcooL/githubv4"
	"go.uber.org/zap"
	"golang.org/x/oauth2"

	"github.com/simplesurance/prcreator/internal/logfields"
	"github.com/simplesurance/prcreator/internal/prcerr"
)

const DefaultHTTPClientTimeout = time.Minute

const loggerName = "github_client"

// New returns a new github api client.
// Read requests are first sent without credentials, when github answers
// with 401 or 404 they are repeated once with the token attached.
// Write requests always carry the token.
func New(oauthAPItoken string) *Client {
	httpClient := newHTTPClient(oauthAPItoken)

	return &Client{
		restClt: github.NewClient(httpClient),
		anonRestClt: github.NewClient(&http.Client{
			Timeout: DefaultHTTPClientTimeout,
		}),
		graphQLClt: githubv4.NewClient(httpClient),
		logger:     zap.L().Named(loggerName),
	}
}

func newHTTPClient(apiToken string) *http.Client {
	if apiToken == "" {
		return &http.Client{
			Timeout: DefaultHTTPClientTimeout,
		}
	}

	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: apiToken},
	)

	tc := oauth2.NewClient(context.Background(), ts)
	tc.Timeout = DefaultHTTPClientTimeout

	return tc
}

// Client is a github API client.
// Methods return a *prcerr.RejectedError when github answered with a
// non-success status code, callers decide if the rejection is fatal.
type Client struct {
	restClt     *github.Client
	anonRestClt *github.Client
	graphQLClt  *githubv4.Client
	logger      *zap.Logger
}

// PullRequest is the subset of a github pull request object that the
// reconciliation protocol operates on.
type PullRequest struct {
	Number  int
	HTMLURL string
	HeadRef string
	State   string
	Draft   bool
	NodeID  string
}

func toPullRequest(pr *github.PullRequest) *PullRequest {
	if pr == nil {
		return nil
	}

	return &PullRequest{
		Number:  pr.GetNumber(),
		HTMLURL: pr.GetHTMLURL(),
		HeadRef: pr.GetHead().GetRef(),
		State:   pr.GetState(),
		Draft:   pr.GetDraft(),
		NodeID:  pr.GetNodeID(),
	}
}

// CreatePullRequestRequest describes the pull request to open.
type CreatePullRequestRequest struct {
	Title      string
	Body       string
	BaseBranch string
	HeadBranch string
	Draft      bool
}

// UpdatePullRequestRequest describes the fields to change on an
// existing pull request.
// An empty State defaults to keeping the pull request open.
type UpdatePullRequestRequest struct {
	Title      string
	Body       string
	BaseBranch string
	State      string
}

// ListOpenPullRequests returns the open pull requests that github
// matched for the base/head filter pair.
// The request is sent unauthenticated first and upgraded to an
// authenticated one when github answers 401 or 404.
func (clt *Client) ListOpenPullRequests(ctx context.Context, owner, repo, baseBranch, headBranch string) ([]*PullRequest, error) {
	opts := github.PullRequestListOptions{
		State: "open",
		Base:  baseBranch,
		Head:  headBranch,
	}

	prs, _, err := clt.anonRestClt.PullRequests.List(ctx, owner, repo, &opts)
	if clt.needsAuthUpgrade(err) {
		clt.logger.Debug(
			"unauthenticated pull request listing was rejected, retrying with credentials",
			logfields.Event("github_auth_upgrade"),
			logfields.RepositoryOwner(owner),
			logfields.Repository(repo),
		)

		prs, _, err = clt.restClt.PullRequests.List(ctx, owner, repo, &opts)
	}

	if err != nil {
		return nil, clt.wrapRejections(err)
	}

	result := make([]*PullRequest, 0, len(prs))
	for _, pr := range prs {
		result = append(result, toPullRequest(pr))
	}

	return result, nil
}

// CreatePullRequest opens a pull request and returns its record
// together with the HTTP status code of the response.
// Github signals a successful creation with 201.
func (clt *Client) CreatePullRequest(ctx context.Context, owner, repo string, req *CreatePullRequestRequest) (*PullRequest, int, error) {
	pr, resp, err := clt.restClt.PullRequests.Create(ctx, owner, repo, &github.NewPullRequest{
		Title:               github.String(req.Title),
		Body:                github.String(req.Body),
		Base:                github.String(req.BaseBranch),
		Head:                github.String(req.HeadBranch),
		Draft:               github.Bool(req.Draft),
		MaintainerCanModify: github.Bool(true),
	})
	if err != nil {
		return nil, statusCode(resp), clt.wrapRejections(err)
	}

	return toPullRequest(pr), statusCode(resp), nil
}

// UpdatePullRequest changes title, body, base branch and state of the
// pull request and returns the updated record together with the HTTP
// status code of the response.
// Github signals a successful update with 200.
func (clt *Client) UpdatePullRequest(ctx context.Context, owner, repo string, number int, req *UpdatePullRequestRequest) (*PullRequest, int, error) {
	state := req.State
	if state == "" {
		state = "open"
	}

	pr, resp, err := clt.restClt.PullRequests.Edit(ctx, owner, repo, number, &github.PullRequest{
		Title: github.String(req.Title),
		Body:  github.String(req.Body),
		State: github.String(state),
		Base:  &github.PullRequestBranch{Ref: github.String(req.BaseBranch)},
	})
	if err != nil {
		return nil, statusCode(resp), clt.wrapRejections(err)
	}

	return toPullRequest(pr), statusCode(resp), nil
}

// DefaultBranch returns the default branch of the repository.
// Like ListOpenPullRequests it retries once with credentials when the
// unauthenticated request is rejected with 401 or 404.
func (clt *Client) DefaultBranch(ctx context.Context, owner, repo string) (string, error) {
	repository, _, err := clt.anonRestClt.Repositories.Get(ctx, owner, repo)
	if clt.needsAuthUpgrade(err) {
		clt.logger.Debug(
			"unauthenticated repository query was rejected, retrying with credentials",
			logfields.Event("github_auth_upgrade"),
			logfields.RepositoryOwner(owner),
			logfields.Repository(repo),
		)

		repository, _, err = clt.restClt.Repositories.Get(ctx, owner, repo)
	}

	if err != nil {
		return "", clt.wrapRejections(err)
	}

	defaultBranch := repository.GetDefaultBranch()
	if defaultBranch == "" {
		return "", errors.New("github returned a repository object with an empty default_branch field")
	}

	return defaultBranch, nil
}

func (clt *Client) needsAuthUpgrade(err error) bool {
	var respErr *github.ErrorResponse
	if !errors.As(err, &respErr) || respErr.Response == nil {
		return false
	}

	code := respErr.Response.StatusCode

	return code == http.StatusUnauthorized || code == http.StatusNotFound
}

func (clt *Client) wrapRejections(err error) error {
	var respErr *github.ErrorResponse
	if !errors.As(err, &respErr) || respErr.Response == nil {
		return err
	}

	body := respErr.Message
	for _, e := range respErr.Errors {
		body = fmt.Sprintf("%s; %s", body, e.Message)
	}

	return prcerr.NewRejectedError(err, respErr.Response.StatusCode, body)
}

func statusCode(resp *github.Response) int {
	if resp == nil || resp.Response == nil {
		return 0
	}

	return resp.StatusCode
}
