package github

import (
	"context"
	"fmt"

	gh "github.com/google/go-github/v82/github"

	"github.com/ericfisherdev/reviewbot/internal/domain/model"
	"github.com/ericfisherdev/reviewbot/internal/domain/port/driven"
	"github.com/ericfisherdev/reviewbot/internal/review"
)

// Compile-time interface satisfaction check.
var _ driven.ReviewPublisher = (*Client)(nil)

// PublishSummary posts the PR-level summary as an issue comment and returns
// its comment ID.
func (c *Client) PublishSummary(ctx context.Context, repoFullName string, number int, result model.ReviewResult) (int64, error) {
	owner, repo, err := splitRepo(repoFullName)
	if err != nil {
		return 0, err
	}

	body := review.BuildSummary(result)

	var created *gh.IssueComment
	err = c.withRetry(ctx, func(ctx context.Context) error {
		var reqErr error
		created, _, reqErr = c.gh.Issues.CreateComment(ctx, owner, repo, number, &gh.IssueComment{
			Body: gh.Ptr(body),
		})
		return reqErr
	})
	if err != nil {
		return 0, fmt.Errorf("publishing summary on %s#%d: %w", repoFullName, number, err)
	}

	return created.GetID(), nil
}

// PublishInline posts one review comment anchored at the given diff
// position of the PR's head commit.
func (c *Client) PublishInline(ctx context.Context, repoFullName string, number int, commitSHA, path string, position int, f model.Finding) (int64, error) {
	owner, repo, err := splitRepo(repoFullName)
	if err != nil {
		return 0, err
	}

	comment := &gh.PullRequestComment{
		Body:     gh.Ptr(review.InlineBody(f)),
		CommitID: gh.Ptr(commitSHA),
		Path:     gh.Ptr(path),
		Position: gh.Ptr(position),
	}

	var created *gh.PullRequestComment
	err = c.withRetry(ctx, func(ctx context.Context) error {
		var reqErr error
		created, _, reqErr = c.gh.PullRequests.CreateComment(ctx, owner, repo, number, comment)
		return reqErr
	})
	if err != nil {
		return 0, fmt.Errorf("publishing inline comment on %s#%d %s:%d: %w", repoFullName, number, path, position, err)
	}

	return created.GetID(), nil
}

// SetVerdict submits a review carrying the event that corresponds to the
// verdict.
func (c *Client) SetVerdict(ctx context.Context, repoFullName string, number int, verdict model.Verdict) error {
	owner, repo, err := splitRepo(repoFullName)
	if err != nil {
		return err
	}

	reviewReq := &gh.PullRequestReviewRequest{
		Event: gh.Ptr(verdict.Event()),
	}
	// APPROVE rejects an empty body requirement the other events carry.
	if verdict != model.VerdictApprove {
		reviewReq.Body = gh.Ptr("")
	}

	err = c.withRetry(ctx, func(ctx context.Context) error {
		_, resp, reqErr := c.gh.PullRequests.CreateReview(ctx, owner, repo, number, reviewReq)
		logRateLimit(resp, repoFullName+"/create-review")
		return reqErr
	})
	if err != nil {
		return fmt.Errorf("setting verdict %s on %s#%d: %w", verdict, repoFullName, number, err)
	}

	return nil
}
