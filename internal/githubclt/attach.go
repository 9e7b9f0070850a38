package githubclt

import (
	"context"
	"fmt"
)

// AddAssignees assigns users to the pull request.
// The returned status code is 201 on success.
func (clt *Client) AddAssignees(ctx context.Context, owner, repo string, number int, assignees []string) (int, error) {
	_, resp, err := clt.restClt.Issues.AddAssignees(ctx, owner, repo, number, assignees)
	if err != nil {
		return statusCode(resp), clt.wrapRejections(err)
	}

	return statusCode(resp), nil
}

// RequestReviewers requests reviews from individual users.
// The call is also issued for an empty reviewer list, github treats it
// as a no-op. The returned status code is 201 on success.
func (clt *Client) RequestReviewers(ctx context.Context, owner, repo string, number int, reviewers []string) (int, error) {
	u := fmt.Sprintf("repos/%v/%v/pulls/%d/requested_reviewers", owner, repo, number)

	body := struct {
		Reviewers []string `json:"reviewers"`
	}{Reviewers: reviewers}

	req, err := clt.restClt.NewRequest("POST", u, body)
	if err != nil {
		return 0, err
	}

	resp, err := clt.restClt.Do(ctx, req, nil)
	if err != nil {
		return statusCode(resp), clt.wrapRejections(err)
	}

	return statusCode(resp), nil
}

// RequestTeamReviewers requests reviews from teams, identified by their
// slug. The returned status code is 201 on success.
func (clt *Client) RequestTeamReviewers(ctx context.Context, owner, repo string, number int, teamReviewers []string) (int, error) {
	u := fmt.Sprintf("repos/%v/%v/pulls/%d/requested_teams", owner, repo, number)

	body := struct {
		TeamReviewers []string `json:"team_reviewers"`
	}{TeamReviewers: teamReviewers}

	req, err := clt.restClt.NewRequest("POST", u, body)
	if err != nil {
		return 0, err
	}

	resp, err := clt.restClt.Do(ctx, req, nil)
	if err != nil {
		return statusCode(resp), clt.wrapRejections(err)
	}

	return statusCode(resp), nil
}
