package reconciler

import "github.com/simplesurance/prcreator/internal/githubclt"

// matchPullRequest returns the first pull request whose head branch
// name equals sourceBranch, comparison is case-sensitive and exact.
// Nil is returned when no pull request matches.
func matchPullRequest(prs []*githubclt.PullRequest, sourceBranch string) *githubclt.PullRequest {
	for _, pr := range prs {
		if pr.HeadRef == sourceBranch {
			return pr
		}
	}

	return nil
}
