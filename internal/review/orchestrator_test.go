package review

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericfisherdev/reviewbot/internal/analyzer"
	"github.com/ericfisherdev/reviewbot/internal/domain/model"
)

// stubAnalyzer returns one canned finding per file, or a canned error.
type stubAnalyzer struct {
	name string
	err  error
}

func (s *stubAnalyzer) Name() string { return s.name }

func (s *stubAnalyzer) Check(path, content string) ([]model.Finding, error) {
	if s.err != nil {
		return nil, s.err
	}
	return []model.Finding{{
		File:     path,
		Line:     1,
		Severity: model.SeverityInfo,
		Category: model.CategoryStyle,
		Message:  fmt.Sprintf("%s saw %d bytes", s.name, len(content)),
	}}, nil
}

func sourceFiles(n int) []model.SourceFile {
	files := make([]model.SourceFile, n)
	for i := range files {
		files[i] = model.SourceFile{Path: fmt.Sprintf("file%02d.go", i), Content: "package demo\n"}
	}
	return files
}

func TestOrchestrator_Run_AllAnalyzersAllFiles(t *testing.T) {
	analyzers := []analyzer.Analyzer{
		&stubAnalyzer{name: "alpha"},
		&stubAnalyzer{name: "beta"},
	}
	o := NewOrchestrator(analyzers, 4)

	result, err := o.Run(context.Background(), sourceFiles(3))
	require.NoError(t, err)
	assert.Len(t, result.Findings, 6)
	assert.Equal(t, model.VerdictComment, result.Verdict)
}

func TestOrchestrator_Run_Deterministic(t *testing.T) {
	analyzers := []analyzer.Analyzer{
		&stubAnalyzer{name: "alpha"},
		&stubAnalyzer{name: "beta"},
	}
	files := sourceFiles(8)

	// Different worker counts interleave file completion differently; the
	// sorted result must be identical every time.
	baseline, err := NewOrchestrator(analyzers, 1).Run(context.Background(), files)
	require.NoError(t, err)

	for _, workers := range []int{2, 4, 8} {
		result, err := NewOrchestrator(analyzers, workers).Run(context.Background(), files)
		require.NoError(t, err)
		assert.Equal(t, baseline, result, "workers=%d", workers)
	}
}

func TestOrchestrator_Run_AnalyzerFailureDowngraded(t *testing.T) {
	analyzers := []analyzer.Analyzer{
		&stubAnalyzer{name: "broken", err: errors.New("boom")},
		&stubAnalyzer{name: "healthy"},
	}
	o := NewOrchestrator(analyzers, 1)

	result, err := o.Run(context.Background(), sourceFiles(1))
	require.NoError(t, err)
	require.Len(t, result.Findings, 2)

	var failure *model.Finding
	for i := range result.Findings {
		if result.Findings[i].Category == model.CategoryAnalyzer {
			failure = &result.Findings[i]
		}
	}
	require.NotNil(t, failure, "expected a finding for the failed analyzer")
	assert.Equal(t, model.SeverityInfo, failure.Severity)
	assert.Contains(t, failure.Message, "broken")
	assert.Contains(t, failure.Message, "boom")
}

func TestOrchestrator_Run_NoFiles(t *testing.T) {
	o := NewOrchestrator([]analyzer.Analyzer{&stubAnalyzer{name: "alpha"}}, 2)

	result, err := o.Run(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, result.Findings)
	assert.Equal(t, model.VerdictApprove, result.Verdict)
}

func TestOrchestrator_Run_CanceledContext(t *testing.T) {
	o := NewOrchestrator([]analyzer.Analyzer{&stubAnalyzer{name: "alpha"}}, 1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := o.Run(ctx, sourceFiles(4))
	require.ErrorIs(t, err, context.Canceled)
}

func TestOrchestrator_RealAnalyzers(t *testing.T) {
	o := NewOrchestrator(analyzer.FromRules(analyzer.DefaultRules()), 2)

	files := []model.SourceFile{{
		Path:    "config.go",
		Content: "package demo\n\nvar APIKey = \"sk-12345\"\n",
	}}

	result, err := o.Run(context.Background(), files)
	require.NoError(t, err)

	assert.Equal(t, model.VerdictRequestChanges, result.Verdict)
	assert.GreaterOrEqual(t, result.Counts.Errors, 1)
}
