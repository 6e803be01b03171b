package driven

import (
	"context"

	"github.com/ericfisherdev/reviewbot/internal/domain/model"
)

// ReviewStateStore defines the driven port for durable review-state
// persistence. Access is single-writer: concurrent scheduler instances
// sharing one store are not supported.
type ReviewStateStore interface {
	// Lookup returns the record for (repo, number), or nil if the pull
	// request has never been reviewed.
	Lookup(ctx context.Context, repoFullName string, number int) (*model.PRRecord, error)

	// RecordReviewed upserts the record for its (repo, number) key.
	// Repeated calls replace the prior record; they never create duplicates.
	RecordReviewed(ctx context.Context, rec model.PRRecord) error

	// ListAll returns every record, for diagnostics.
	ListAll(ctx context.Context) ([]model.PRRecord, error)

	// Clear removes records for one repository, or all records when
	// repoFullName is empty.
	Clear(ctx context.Context, repoFullName string) error
}
