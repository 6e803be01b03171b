// Package application contains use-case orchestration services.
package application

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ericfisherdev/reviewbot/internal/diff"
	"github.com/ericfisherdev/reviewbot/internal/domain/model"
	"github.com/ericfisherdev/reviewbot/internal/domain/port/driven"
	"github.com/ericfisherdev/reviewbot/internal/review"
)

// ReviewService reviews one pull request: it maps diffs to comment
// positions, runs the orchestrator over the changed files, and drives the
// publisher. It holds no review state; skip decisions belong to the
// MonitorService.
type ReviewService struct {
	host         driven.HostClient
	publisher    driven.ReviewPublisher
	orchestrator *review.Orchestrator
	extensions   []string
}

// NewReviewService creates a ReviewService.
func NewReviewService(
	host driven.HostClient,
	publisher driven.ReviewPublisher,
	orchestrator *review.Orchestrator,
	extensions []string,
) *ReviewService {
	return &ReviewService{
		host:         host,
		publisher:    publisher,
		orchestrator: orchestrator,
		extensions:   extensions,
	}
}

// PRReview is the outcome of reviewing and publishing one pull request.
type PRReview struct {
	Result       model.ReviewResult
	InlinePosted int // Findings that resolved to a diff position.
	SummaryOnly  int // Findings that fell back to summary-only placement.
}

// TargetFiles filters changed files down to reviewable target-language
// files. Removed files have no head content to analyze.
func (s *ReviewService) TargetFiles(files []model.ChangedFile) []model.ChangedFile {
	var target []model.ChangedFile
	for _, f := range files {
		if f.Status == "removed" {
			continue
		}
		for _, ext := range s.extensions {
			if strings.HasSuffix(f.Path, ext) {
				target = append(target, f)
				break
			}
		}
	}
	return target
}

// ReviewChangedFiles analyzes the given target-language files at the PR's
// head commit and publishes the review: summary comment first, then inline
// comments for every finding whose head line resolved to a diff position,
// then the verdict. Any publish failure aborts the sequence so the caller
// does not advance review state.
func (s *ReviewService) ReviewChangedFiles(ctx context.Context, repoFullName string, pr model.PullRequest, files []model.ChangedFile, inline bool) (*PRReview, error) {
	positions := make(map[string]*diff.FileDiff, len(files))
	sources := make([]model.SourceFile, 0, len(files))

	for _, f := range files {
		fd, err := diff.Parse(f.Patch)
		switch {
		case err != nil:
			// Scoped to this file: its findings fall back to the summary.
			slog.Warn("diff parse failed, findings fall back to summary",
				"repo", repoFullName, "pr", pr.Number, "path", f.Path, "error", err)
		case fd.Empty():
			// Rename-only or binary change: nothing to anchor inline.
			slog.Debug("no diff content, findings fall back to summary",
				"repo", repoFullName, "pr", pr.Number, "path", f.Path)
		default:
			positions[f.Path] = fd
		}

		content, err := s.host.FetchFileContent(ctx, repoFullName, f.Path, pr.HeadSHA)
		if err != nil {
			return nil, fmt.Errorf("fetching %s: %w", f.Path, err)
		}
		sources = append(sources, model.SourceFile{Path: f.Path, Content: content})
	}

	result, err := s.orchestrator.Run(ctx, sources)
	if err != nil {
		return nil, fmt.Errorf("running analyzers: %w", err)
	}

	rev := &PRReview{Result: result}

	if _, err := s.publisher.PublishSummary(ctx, repoFullName, pr.Number, result); err != nil {
		return nil, err
	}

	if inline {
		for _, f := range result.Findings {
			pos, ok := s.resolvePosition(positions, f)
			if !ok {
				rev.SummaryOnly++
				continue
			}
			if _, err := s.publisher.PublishInline(ctx, repoFullName, pr.Number, pr.HeadSHA, f.File, pos, f); err != nil {
				return nil, err
			}
			rev.InlinePosted++
		}
	} else {
		rev.SummaryOnly = len(result.Findings)
	}

	if err := s.publisher.SetVerdict(ctx, repoFullName, pr.Number, result.Verdict); err != nil {
		return nil, err
	}

	return rev, nil
}

func (s *ReviewService) resolvePosition(positions map[string]*diff.FileDiff, f model.Finding) (int, bool) {
	if f.Line <= 0 {
		return 0, false
	}
	fd, ok := positions[f.File]
	if !ok {
		return 0, false
	}
	return fd.Position(f.Line)
}
