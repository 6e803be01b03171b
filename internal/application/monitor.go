package application

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ericfisherdev/reviewbot/internal/domain/model"
	"github.com/ericfisherdev/reviewbot/internal/domain/port/driven"
)

// MonitorService polls repositories for open pull requests and reviews
// every PR whose head commit has not been reviewed yet. Review state is
// advanced only after a PR's publish sequence completed, so a crash or
// publish failure means the PR is retried on the next cycle.
type MonitorService struct {
	host     driven.HostClient
	store    driven.ReviewStateStore
	reviewer *ReviewService
	repos    []string
	interval time.Duration
	workers  int
	now      func() time.Time
}

// NewMonitorService creates a MonitorService. workers bounds how many PRs
// of one repository are reviewed concurrently per cycle.
func NewMonitorService(
	host driven.HostClient,
	store driven.ReviewStateStore,
	reviewer *ReviewService,
	repos []string,
	interval time.Duration,
	workers int,
) *MonitorService {
	if workers < 1 {
		workers = 1
	}
	if interval <= 0 {
		interval = time.Minute
	}
	return &MonitorService{
		host:     host,
		store:    store,
		reviewer: reviewer,
		repos:    repos,
		interval: interval,
		workers:  workers,
		now:      time.Now,
	}
}

// CycleStats summarizes one monitoring cycle.
type CycleStats struct {
	Repos         int
	Discovered    int // Open PRs seen across all repos.
	Reviewed      int // PRs reviewed and published this cycle.
	Skipped       int // Up to date or no target-language files.
	Failures      int // Per-PR or per-repo failures, retried next cycle.
	ErrorFindings int // Error-severity findings across reviewed PRs.
}

// Start begins the polling loop. It runs an immediate cycle, then one per
// interval, until the context is canceled. Cancellation takes effect
// between cycles and between PRs; in-flight PRs finish or fail cleanly.
func (s *MonitorService) Start(ctx context.Context) {
	s.runCycleLogged(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("monitor stopped")
			return
		case <-ticker.C:
			s.runCycleLogged(ctx)
		}
	}
}

func (s *MonitorService) runCycleLogged(ctx context.Context) {
	start := s.now()
	stats := s.RunCycle(ctx)
	slog.Info("cycle complete",
		"repos", stats.Repos,
		"discovered", stats.Discovered,
		"reviewed", stats.Reviewed,
		"skipped", stats.Skipped,
		"failures", stats.Failures,
		"duration", time.Since(start).Round(time.Millisecond),
	)
}

// RunCycle performs exactly one polling cycle over all configured
// repositories. Failures are contained per repository and per PR; the
// cycle itself never aborts early except on context cancellation.
func (s *MonitorService) RunCycle(ctx context.Context) CycleStats {
	var stats CycleStats

	for _, repo := range s.repos {
		if ctx.Err() != nil {
			return stats
		}
		stats.Repos++
		s.pollRepo(ctx, repo, &stats)
	}

	return stats
}

// pollRepo reviews every open PR of one repository that needs it. PRs run
// through a bounded worker pool; a failure on one PR never stops the rest.
func (s *MonitorService) pollRepo(ctx context.Context, repo string, stats *CycleStats) {
	prs, err := s.host.FetchOpenPullRequests(ctx, repo)
	if err != nil {
		slog.Error("listing open PRs failed", "repo", repo, "error", err)
		stats.Failures++
		return
	}

	var mu sync.Mutex
	g := new(errgroup.Group)
	g.SetLimit(s.workers)

	for _, pr := range prs {
		// Observe cancellation between PRs: no new work is started, but
		// PRs already handed to a worker run to completion.
		if ctx.Err() != nil {
			break
		}

		mu.Lock()
		stats.Discovered++
		mu.Unlock()

		g.Go(func() error {
			outcome := s.processPR(ctx, repo, pr)

			mu.Lock()
			defer mu.Unlock()
			switch outcome.kind {
			case prReviewed:
				stats.Reviewed++
				stats.ErrorFindings += outcome.errorFindings
			case prSkipped:
				stats.Skipped++
			case prFailed:
				stats.Failures++
			}
			return nil
		})
	}

	_ = g.Wait()
}

type prOutcomeKind int

const (
	prSkipped prOutcomeKind = iota
	prReviewed
	prFailed
)

type prOutcome struct {
	kind          prOutcomeKind
	errorFindings int
}

// processPR decides skip vs. review for one PR and, when due, runs the
// full review-and-publish sequence followed by the state store update.
func (s *MonitorService) processPR(ctx context.Context, repo string, pr model.PullRequest) prOutcome {
	files, err := s.host.FetchChangedFiles(ctx, repo, pr.Number)
	if err != nil {
		slog.Error("fetching changed files failed", "repo", repo, "pr", pr.Number, "error", err)
		return prOutcome{kind: prFailed}
	}

	target := s.reviewer.TargetFiles(files)
	if len(target) == 0 {
		slog.Debug("no target-language files, skipping", "repo", repo, "pr", pr.Number)
		return prOutcome{kind: prSkipped}
	}

	rec, err := s.store.Lookup(ctx, repo, pr.Number)
	if err != nil {
		// A broken lookup means we cannot prove the PR was reviewed;
		// treat it as unreviewed rather than losing the review.
		slog.Warn("state lookup failed, treating PR as unreviewed", "repo", repo, "pr", pr.Number, "error", err)
		rec = nil
	}
	if rec != nil && rec.HeadSHA == pr.HeadSHA {
		slog.Debug("already reviewed at head", "repo", repo, "pr", pr.Number, "head", pr.HeadSHA)
		return prOutcome{kind: prSkipped}
	}

	slog.Info("reviewing pull request", "repo", repo, "pr", pr.Number, "title", pr.Title, "head", pr.HeadSHA)

	rev, err := s.reviewer.ReviewChangedFiles(ctx, repo, pr, target, true)
	if err != nil {
		// State is not advanced, so this PR is retried next cycle.
		slog.Error("review failed", "repo", repo, "pr", pr.Number, "error", err)
		return prOutcome{kind: prFailed}
	}

	record := model.PRRecord{
		RepoFullName:  repo,
		Number:        pr.Number,
		HeadSHA:       pr.HeadSHA,
		ReviewedAt:    s.now().UTC(),
		TouchesTarget: true,
		Success:       true,
	}
	if err := s.store.RecordReviewed(ctx, record); err != nil {
		// The review was published; worst case is a duplicate next cycle.
		slog.Error("recording review state failed", "repo", repo, "pr", pr.Number, "error", err)
	}

	slog.Info("review published",
		"repo", repo,
		"pr", pr.Number,
		"findings", len(rev.Result.Findings),
		"inline", rev.InlinePosted,
		"summary_only", rev.SummaryOnly,
		"verdict", string(rev.Result.Verdict),
	)

	return prOutcome{kind: prReviewed, errorFindings: rev.Result.Counts.Errors}
}
