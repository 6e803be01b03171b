package driven

import (
	"context"

	"github.com/ericfisherdev/reviewbot/internal/domain/model"
)

// ReviewPublisher defines the write-side port for posting review output to
// the hosting platform. Implementations: the live GitHub adapter and a
// dry-run adapter that logs instead of posting; the choice is made once at
// startup, not per call site.
type ReviewPublisher interface {
	// PublishSummary posts the PR-level summary comment and returns its
	// comment ID.
	PublishSummary(ctx context.Context, repoFullName string, number int, result model.ReviewResult) (int64, error)

	// PublishInline posts one inline comment anchored at a diff position.
	// Callers must only pass findings whose head line resolved to a
	// position; commitSHA is the head commit the position was mapped from.
	PublishInline(ctx context.Context, repoFullName string, number int, commitSHA, path string, position int, f model.Finding) (int64, error)

	// SetVerdict submits the review event corresponding to the verdict.
	SetVerdict(ctx context.Context, repoFullName string, number int, verdict model.Verdict) error
}
