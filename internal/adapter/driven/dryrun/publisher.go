// Package dryrun provides a ReviewPublisher that logs instead of posting.
// It is selected once at startup (the --dry-run flag), so the rest of the
// system is unaware of which publisher it is driving.
package dryrun

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/ericfisherdev/reviewbot/internal/domain/model"
	"github.com/ericfisherdev/reviewbot/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.ReviewPublisher = (*Publisher)(nil)

// Publisher logs every publish call at info level and hands back synthetic
// comment IDs.
type Publisher struct {
	nextID atomic.Int64
}

// NewPublisher creates a dry-run publisher.
func NewPublisher() *Publisher {
	return &Publisher{}
}

func (p *Publisher) PublishSummary(_ context.Context, repoFullName string, number int, result model.ReviewResult) (int64, error) {
	slog.Info("dry-run: summary comment",
		"repo", repoFullName,
		"pr", number,
		"findings", len(result.Findings),
		"verdict", string(result.Verdict),
	)
	return p.nextID.Add(1), nil
}

func (p *Publisher) PublishInline(_ context.Context, repoFullName string, number int, commitSHA, path string, position int, f model.Finding) (int64, error) {
	slog.Info("dry-run: inline comment",
		"repo", repoFullName,
		"pr", number,
		"commit", commitSHA,
		"path", path,
		"position", position,
		"severity", string(f.Severity),
		"message", f.Message,
	)
	return p.nextID.Add(1), nil
}

func (p *Publisher) SetVerdict(_ context.Context, repoFullName string, number int, verdict model.Verdict) error {
	slog.Info("dry-run: review verdict",
		"repo", repoFullName,
		"pr", number,
		"verdict", string(verdict),
	)
	return nil
}
