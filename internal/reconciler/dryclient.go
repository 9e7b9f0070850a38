package reconciler

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/simplesurance/prcreator/internal/githubclt"
)

// DryClient is a github client that does not do any changes on github.
// All mutating operations are simulated and always succeed, read
// operations are forwarded to the wrapped client.
type DryClient struct {
	clt    GithubClient
	logger *zap.Logger
}

func NewDryClient(clt GithubClient, logger *zap.Logger) *DryClient {
	return &DryClient{
		clt:    clt,
		logger: logger.Named("dry_github_client"),
	}
}

func (c *DryClient) ListOpenPullRequests(ctx context.Context, owner, repo, baseBranch, headBranch string) ([]*githubclt.PullRequest, error) {
	return c.clt.ListOpenPullRequests(ctx, owner, repo, baseBranch, headBranch)
}

func (c *DryClient) DefaultBranch(ctx context.Context, owner, repo string) (string, error) {
	return c.clt.DefaultBranch(ctx, owner, repo)
}

func (c *DryClient) CreatePullRequest(context.Context, string, string, *githubclt.CreatePullRequestRequest) (*githubclt.PullRequest, int, error) {
	c.logger.Info("simulated creating a pull request, no pull request created on github")
	return nil, http.StatusCreated, nil
}

func (c *DryClient) UpdatePullRequest(_ context.Context, _, _ string, number int, _ *githubclt.UpdatePullRequestRequest) (*githubclt.PullRequest, int, error) {
	c.logger.Info("simulated updating a pull request, nothing changed on github")
	return &githubclt.PullRequest{Number: number, State: "open"}, http.StatusOK, nil
}

func (c *DryClient) SetDraft(context.Context, string, bool) error {
	c.logger.Info("simulated changing the draft state, nothing changed on github")
	return nil
}

func (c *DryClient) AddAssignees(context.Context, string, string, int, []string) (int, error) {
	c.logger.Info("simulated adding assignees, nothing changed on github")
	return http.StatusCreated, nil
}

func (c *DryClient) RequestReviewers(context.Context, string, string, int, []string) (int, error) {
	c.logger.Info("simulated requesting reviewers, nothing changed on github")
	return http.StatusCreated, nil
}

func (c *DryClient) RequestTeamReviewers(context.Context, string, string, int, []string) (int, error) {
	c.logger.Info("simulated requesting team reviewers, nothing changed on github")
	return http.StatusCreated, nil
}
