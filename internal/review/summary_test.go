package review

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericfisherdev/reviewbot/internal/domain/model"
)

func TestBuildSummary_NoIssues(t *testing.T) {
	summary := BuildSummary(model.NewReviewResult(nil))

	assert.True(t, strings.HasPrefix(summary, "## Automated Code Review"))
	assert.Contains(t, summary, "No issues found")
}

func TestBuildSummary_GroupsByFile(t *testing.T) {
	result := model.NewReviewResult([]model.Finding{
		{File: "a.go", Line: 3, Severity: model.SeverityError, Category: model.CategorySecurity, Message: "hardcoded secret", Suggestion: "use the environment"},
		{File: "a.go", Line: 10, Severity: model.SeverityInfo, Category: model.CategoryStyle, Message: "long line"},
		{File: "b.go", Line: 1, Severity: model.SeverityWarning, Category: model.CategoryDocumentation, Message: "missing doc"},
	})

	summary := BuildSummary(result)

	assert.Contains(t, summary, "❌ **1 error(s)**")
	assert.Contains(t, summary, "⚠️ **1 warning(s)**")
	assert.Contains(t, summary, "ℹ️ **1 info**")

	// Each file heads exactly one section.
	assert.Equal(t, 1, strings.Count(summary, "### `a.go`"))
	assert.Equal(t, 1, strings.Count(summary, "### `b.go`"))
	assert.Less(t, strings.Index(summary, "### `a.go`"), strings.Index(summary, "### `b.go`"))

	assert.Contains(t, summary, "**Line 3:** hardcoded secret")
	assert.Contains(t, summary, "💡 _use the environment_")
}

func TestBuildSummary_FileGroupsOrderedBySeverity(t *testing.T) {
	result := model.NewReviewResult([]model.Finding{
		{File: "a.go", Line: 1, Severity: model.SeverityInfo, Category: model.CategoryStyle, Message: "long line"},
		{File: "a.go", Line: 5, Severity: model.SeverityWarning, Category: model.CategoryDocumentation, Message: "missing doc"},
		{File: "a.go", Line: 10, Severity: model.SeverityError, Category: model.CategorySecurity, Message: "hardcoded secret"},
	})

	// The result itself keeps (file, line, category) order; only the
	// rendered summary reorders within a file, most severe first.
	assert.Equal(t, model.SeverityInfo, result.Findings[0].Severity)

	summary := BuildSummary(result)
	errIdx := strings.Index(summary, "hardcoded secret")
	warnIdx := strings.Index(summary, "missing doc")
	infoIdx := strings.Index(summary, "long line")
	require.NotEqual(t, -1, errIdx)
	assert.Less(t, errIdx, warnIdx)
	assert.Less(t, warnIdx, infoIdx)
}

func TestBuildSummary_SeverityOrderStableWithinLevel(t *testing.T) {
	result := model.NewReviewResult([]model.Finding{
		{File: "a.go", Line: 9, Severity: model.SeverityWarning, Category: model.CategoryDocumentation, Message: "second warning"},
		{File: "a.go", Line: 2, Severity: model.SeverityWarning, Category: model.CategoryDocumentation, Message: "first warning"},
	})

	summary := BuildSummary(result)
	assert.Less(t, strings.Index(summary, "first warning"), strings.Index(summary, "second warning"))
}

func TestBuildSummary_FileLevelFindingHasNoLine(t *testing.T) {
	result := model.NewReviewResult([]model.Finding{
		{File: "a.go", Severity: model.SeverityInfo, Category: model.CategoryAnalyzer, Message: "analyzer x failed: boom"},
	})

	summary := BuildSummary(result)
	assert.NotContains(t, summary, "Line 0")
	assert.Contains(t, summary, "analyzer x failed: boom")
}

func TestInlineBody(t *testing.T) {
	f := model.Finding{
		Severity:   model.SeverityError,
		Category:   model.CategorySecurity,
		Message:    "hardcoded secret",
		Suggestion: "use the environment",
	}

	body := InlineBody(f)
	assert.Contains(t, body, "❌ **SECURITY**: hardcoded secret")
	assert.Contains(t, body, "💡 use the environment")

	f.Suggestion = ""
	assert.NotContains(t, InlineBody(f), "💡")
}
