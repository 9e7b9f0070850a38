// Package reconciler implements the pull request reconciliation
// protocol: look up the open pull request for a source/target branch
// pair, create it when it is missing or update the existing one, attach
// assignees and reviewers and export the outcome as action outputs.
package reconciler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"

	"go.uber.org/zap"

	"github.com/simplesurance/prcreator/internal/actionenv"
	"github.com/simplesurance/prcreator/internal/githubclt"
	"github.com/simplesurance/prcreator/internal/logfields"
	"github.com/simplesurance/prcreator/internal/prcerr"
)

const loggerName = "reconciler"

// Names of the exported action outputs.
const (
	OutputNumber           = "PULL_REQUEST_NUMBER"
	OutputReturnCode       = "PULL_REQUEST_RETURN_CODE"
	OutputURL              = "PULL_REQUEST_URL"
	OutputAssigneesRetCode = "ASSIGNEES_RETURN_CODE"
)

//go:generate mockgen -package mocks -destination mocks/githubclient.go github.com/simplesurance/prcreator/internal/reconciler GithubClient

// GithubClient is the github API surface the reconciler drives.
type GithubClient interface {
	ListOpenPullRequests(ctx context.Context, owner, repo, baseBranch, headBranch string) ([]*githubclt.PullRequest, error)
	CreatePullRequest(ctx context.Context, owner, repo string, req *githubclt.CreatePullRequestRequest) (*githubclt.PullRequest, int, error)
	UpdatePullRequest(ctx context.Context, owner, repo string, number int, req *githubclt.UpdatePullRequestRequest) (*githubclt.PullRequest, int, error)
	SetDraft(ctx context.Context, pullRequestNodeID string, draft bool) error
	AddAssignees(ctx context.Context, owner, repo string, number int, assignees []string) (int, error)
	RequestReviewers(ctx context.Context, owner, repo string, number int, reviewers []string) (int, error)
	RequestTeamReviewers(ctx context.Context, owner, repo string, number int, teamReviewers []string) (int, error)
	DefaultBranch(ctx context.Context, owner, repo string) (string, error)
}

// OutputWriter exports a named result value.
type OutputWriter interface {
	Set(name, value string) error
}

// Request is the desired state of the pull request, constructed once
// per run.
type Request struct {
	Title         string
	Body          string
	TargetBranch  string
	SourceBranch  string
	State         string
	Draft         bool
	Assignees     []string
	Reviewers     []string
	TeamReviewers []string
}

// Result is the exported outcome of a run.
// PullRequestNumber and URL are unset when the run was tolerated to
// continue without a pull request record.
type Result struct {
	PullRequestNumber int
	ReturnCode        int
	URL               string
}

// Reconciler drives one reconciliation run against a repository.
type Reconciler struct {
	clt         GithubClient
	outputs     OutputWriter
	owner       string
	repo        string
	passOnError bool

	logger      *zap.Logger
	groupLogOut io.Writer
}

// New returns a Reconciler for the given repository.
// When passOnError is true, rejected remote calls are logged and
// tolerated instead of aborting the run.
func New(clt GithubClient, outputs OutputWriter, owner, repo string, passOnError bool) *Reconciler {
	return &Reconciler{
		clt:         clt,
		outputs:     outputs,
		owner:       owner,
		repo:        repo,
		passOnError: passOnError,
		logger: zap.L().Named(loggerName).With(
			logfields.RepositoryOwner(owner),
			logfields.Repository(repo),
		),
		groupLogOut: os.Stdout,
	}
}

// Reconcile runs one reconciliation pass.
// When updateExisting is true and an open pull request for the source
// branch exists, it is updated, otherwise a new one is created.
func (r *Reconciler) Reconcile(ctx context.Context, req *Request, updateExisting bool) (*Result, error) {
	logger := r.logger.With(
		logfields.BaseBranch(req.TargetBranch),
		logfields.HeadBranch(req.SourceBranch),
	)

	prs, err := r.clt.ListOpenPullRequests(ctx, r.owner, r.repo, req.TargetBranch, req.SourceBranch)
	if err != nil {
		if !r.tolerated(err, "listing open pull requests failed") {
			return nil, fmt.Errorf("listing open pull requests failed: %w", err)
		}

		prs = nil
	}

	match := matchPullRequest(prs, req.SourceBranch)
	if match != nil {
		logger.Info(
			"pull request for source branch is already open",
			logfields.Event("pull_request_match_found"),
			logfields.PullRequest(match.Number),
		)

		if updateExisting {
			return r.update(ctx, req, match)
		}

		// TODO: when update mode is off and a matching pull
		// request exists, the create request below is still sent
		// and github rejects it with a 422. Skipping the create
		// instead would need a change to the exported outputs.
	} else {
		logger.Info(
			"no pull request for source branch is open, creating one",
			logfields.Event("pull_request_match_not_found"),
		)
	}

	return r.create(ctx, req)
}

func (r *Reconciler) create(ctx context.Context, req *Request) (*Result, error) {
	record, status, err := r.clt.CreatePullRequest(ctx, r.owner, r.repo, &githubclt.CreatePullRequestRequest{
		Title:      req.Title,
		Body:       req.Body,
		BaseBranch: req.TargetBranch,
		HeadBranch: req.SourceBranch,
		Draft:      req.Draft,
	})
	if err != nil {
		if !r.tolerated(err, "creating pull request failed") {
			return nil, fmt.Errorf("creating pull request failed: %w", err)
		}

		record = nil
	}

	result, err := r.export(record, status)
	if err != nil {
		return nil, err
	}

	if record == nil {
		// without a pull request number attaching assignees or
		// reviewers is impossible
		return result, nil
	}

	r.logger.Info(
		"created pull request",
		logfields.Event("pull_request_created"),
		logfields.PullRequest(record.Number),
		zap.String("url", record.HTMLURL),
	)

	if err := r.attach(ctx, record.Number, req); err != nil {
		return nil, err
	}

	return result, nil
}

func (r *Reconciler) update(ctx context.Context, req *Request, match *githubclt.PullRequest) (*Result, error) {
	record, status, err := r.clt.UpdatePullRequest(ctx, r.owner, r.repo, match.Number, &githubclt.UpdatePullRequestRequest{
		Title:      req.Title,
		Body:       req.Body,
		BaseBranch: req.TargetBranch,
		State:      req.State,
	})
	if err != nil {
		if !r.tolerated(err, "updating pull request failed") {
			return nil, fmt.Errorf("updating pull request failed: %w", err)
		}

		record = nil
	}

	result, err := r.export(record, status)
	if err != nil {
		return nil, err
	}

	if record != nil {
		r.logger.Info(
			"updated existing pull request",
			logfields.Event("pull_request_updated"),
			logfields.PullRequest(match.Number),
		)

		if record.Draft != req.Draft {
			if err := r.setDraft(ctx, record, req.Draft); err != nil {
				return nil, err
			}
		}
	}

	// assignees and reviewers are attached to the matched pull
	// request, also when the update itself was tolerated to fail
	if err := r.attach(ctx, match.Number, req); err != nil {
		return nil, err
	}

	return result, nil
}

func (r *Reconciler) setDraft(ctx context.Context, record *githubclt.PullRequest, draft bool) error {
	err := r.clt.SetDraft(ctx, record.NodeID, draft)
	if err == nil {
		r.logger.Info(
			"changed draft state of pull request",
			logfields.Event("pull_request_draft_changed"),
			logfields.PullRequest(record.Number),
			zap.Bool("github.draft", draft),
		)

		return nil
	}

	if r.tolerated(err, "changing draft state failed") {
		return nil
	}

	return fmt.Errorf("changing draft state of pull request failed: %w", err)
}

// attach adds assignees and requests reviews.
// The two categories are independent, a tolerated assignee failure does
// not prevent the reviewer calls.
func (r *Reconciler) attach(ctx context.Context, number int, req *Request) error {
	if len(req.Assignees) > 0 {
		if err := r.addAssignees(ctx, number, req.Assignees); err != nil {
			return err
		}
	}

	if len(req.Reviewers) > 0 || len(req.TeamReviewers) > 0 {
		if err := r.requestReviewers(ctx, number, req); err != nil {
			return err
		}
	}

	return nil
}

func (r *Reconciler) addAssignees(ctx context.Context, number int, assignees []string) error {
	status, err := r.clt.AddAssignees(ctx, r.owner, r.repo, number, assignees)
	if err != nil && !r.tolerated(err, "adding assignees failed") {
		return fmt.Errorf("adding assignees failed: %w", err)
	}

	if err == nil {
		r.logger.Info(
			"added assignees to pull request",
			logfields.Event("pull_request_assignees_added"),
			logfields.PullRequest(number),
			zap.Strings("github.assignees", assignees),
		)
	}

	return r.outputs.Set(OutputAssigneesRetCode, strconv.Itoa(normalizeReturnCode(returnCode(status, err))))
}

func (r *Reconciler) requestReviewers(ctx context.Context, number int, req *Request) error {
	// the call is also issued when only team reviewers are
	// configured, github treats the empty reviewer list as a no-op
	_, err := r.clt.RequestReviewers(ctx, r.owner, r.repo, number, req.Reviewers)
	if err != nil && !r.tolerated(err, "requesting reviewers failed") {
		return fmt.Errorf("requesting reviewers failed: %w", err)
	}

	if len(req.TeamReviewers) > 0 {
		_, err := r.clt.RequestTeamReviewers(ctx, r.owner, r.repo, number, req.TeamReviewers)
		if err != nil && !r.tolerated(err, "requesting team reviewers failed") {
			return fmt.Errorf("requesting team reviewers failed: %w", err)
		}
	}

	r.logger.Info(
		"requested reviews for pull request",
		logfields.Event("pull_request_reviewers_requested"),
		logfields.PullRequest(number),
		zap.Strings("github.reviewers", req.Reviewers),
		zap.Strings("github.team_reviewers", req.TeamReviewers),
	)

	return nil
}

// export writes the result values to the action outputs.
// record is nil when the pull request mutation was tolerated to fail,
// number and url are omitted then.
func (r *Reconciler) export(record *githubclt.PullRequest, status int) (*Result, error) {
	result := Result{ReturnCode: normalizeReturnCode(status)}

	if record != nil {
		result.PullRequestNumber = record.Number
		result.URL = record.HTMLURL

		actionenv.LogGroup(r.groupLogOut, "github response", fmt.Sprintf("%+v", record))

		if err := r.outputs.Set(OutputNumber, strconv.Itoa(record.Number)); err != nil {
			return nil, err
		}

		if err := r.outputs.Set(OutputURL, record.HTMLURL); err != nil {
			return nil, err
		}
	}

	if err := r.outputs.Set(OutputReturnCode, strconv.Itoa(result.ReturnCode)); err != nil {
		return nil, err
	}

	return &result, nil
}

// tolerated returns true when the error is a remote rejection and the
// run is configured to continue despite failures.
func (r *Reconciler) tolerated(err error, msg string) bool {
	var rejectedErr *prcerr.RejectedError
	if !r.passOnError || !errors.As(err, &rejectedErr) {
		return false
	}

	r.logger.Warn(
		msg+", continuing because failures are tolerated",
		logfields.Event("remote_rejection_tolerated"),
		zap.Int("http_status_code", rejectedErr.StatusCode),
		zap.Error(err),
	)

	return true
}

// normalizeReturnCode maps the creation-success status to 0, every
// other status is exported unchanged.
func normalizeReturnCode(status int) int {
	if status == http.StatusCreated {
		return 0
	}

	return status
}

func returnCode(status int, err error) int {
	if err == nil {
		return status
	}

	var rejectedErr *prcerr.RejectedError
	if errors.As(err, &rejectedErr) {
		return rejectedErr.StatusCode
	}

	return status
}
