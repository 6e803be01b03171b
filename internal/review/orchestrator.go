// Package review runs the configured analyzers over a file set and
// aggregates their findings into a deterministic result.
package review

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/ericfisherdev/reviewbot/internal/analyzer"
	"github.com/ericfisherdev/reviewbot/internal/domain/model"
)

// Orchestrator invokes every analyzer against every file and folds the
// findings into a ReviewResult.
type Orchestrator struct {
	analyzers []analyzer.Analyzer
	workers   int
}

// NewOrchestrator creates an Orchestrator over the given analyzer set.
// workers bounds per-file concurrency; values below 1 mean serial.
func NewOrchestrator(analyzers []analyzer.Analyzer, workers int) *Orchestrator {
	if workers < 1 {
		workers = 1
	}
	return &Orchestrator{analyzers: analyzers, workers: workers}
}

// Run checks every file with every analyzer. Files run concurrently;
// analyzers are stateless so interleaving cannot affect the outcome, and
// the final sort in NewReviewResult makes the ordering a pure function of
// the input. An analyzer failure is downgraded to a single info finding
// naming the analyzer and never stops the remaining work.
func (o *Orchestrator) Run(ctx context.Context, files []model.SourceFile) (model.ReviewResult, error) {
	var (
		mu       sync.Mutex
		findings []model.Finding
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(o.workers)

	for _, file := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			fileFindings := o.checkFile(file)

			mu.Lock()
			findings = append(findings, fileFindings...)
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return model.ReviewResult{}, err
	}

	return model.NewReviewResult(findings), nil
}

func (o *Orchestrator) checkFile(file model.SourceFile) []model.Finding {
	var findings []model.Finding

	for _, a := range o.analyzers {
		fs, err := a.Check(file.Path, file.Content)
		if err != nil {
			findings = append(findings, model.Finding{
				File:     file.Path,
				Severity: model.SeverityInfo,
				Category: model.CategoryAnalyzer,
				Message:  fmt.Sprintf("analyzer %s failed: %v", a.Name(), err),
			})
			continue
		}
		findings = append(findings, fs...)
	}

	return findings
}
