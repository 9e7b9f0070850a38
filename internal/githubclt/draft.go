package githubclt

import (
	"context"
	"fmt"

	"github.com/shurcooL/githubv4"
)

// SetDraft converts the pull request to a draft or marks it as ready
// for review.
// The REST API does not support changing the draft flag of an existing
// pull request, only the GraphQL mutations do. They identify the pull
// request by its GraphQL node id.
func (clt *Client) SetDraft(ctx context.Context, pullRequestNodeID string, draft bool) error {
	if draft {
		var m struct {
			ConvertPullRequestToDraft struct {
				PullRequest struct {
					IsDraft githubv4.Boolean
				}
			} `graphql:"convertPullRequestToDraft(input: $input)"`
		}

		input := githubv4.ConvertPullRequestToDraftInput{
			PullRequestID: githubv4.ID(pullRequestNodeID),
		}

		if err := clt.graphQLClt.Mutate(ctx, &m, input, nil); err != nil {
			return fmt.Errorf("converting pull request to draft failed: %w", err)
		}

		return nil
	}

	var m struct {
		MarkPullRequestReadyForReview struct {
			PullRequest struct {
				IsDraft githubv4.Boolean
			}
		} `graphql:"markPullRequestReadyForReview(input: $input)"`
	}

	input := githubv4.MarkPullRequestReadyForReviewInput{
		PullRequestID: githubv4.ID(pullRequestNodeID),
	}

	if err := clt.graphQLClt.Mutate(ctx, &m, input, nil); err != nil {
		return fmt.Errorf("marking pull request ready for review failed: %w", err)
	}

	return nil
}
