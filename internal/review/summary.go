package review

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ericfisherdev/reviewbot/internal/domain/model"
)

// severityIcon returns the markdown badge used in published comments.
func severityIcon(s model.Severity) string {
	switch s {
	case model.SeverityError:
		return "❌"
	case model.SeverityWarning:
		return "⚠️"
	default:
		return "ℹ️"
	}
}

// BuildSummary renders the PR-level summary comment: a severity tally
// followed by every finding grouped per file. Findings that could not be
// anchored inline still appear here, so nothing is silently dropped.
func BuildSummary(result model.ReviewResult) string {
	var b strings.Builder

	b.WriteString("## Automated Code Review\n\n")

	if result.Counts.Total() == 0 {
		b.WriteString("✅ **No issues found!**\n")
		return b.String()
	}

	if result.Counts.Errors > 0 {
		fmt.Fprintf(&b, "❌ **%d error(s)** ", result.Counts.Errors)
	}
	if result.Counts.Warnings > 0 {
		fmt.Fprintf(&b, "⚠️ **%d warning(s)** ", result.Counts.Warnings)
	}
	if result.Counts.Infos > 0 {
		fmt.Fprintf(&b, "ℹ️ **%d info** ", result.Counts.Infos)
	}
	b.WriteString("\n")

	// Findings arrive sorted by (file, line, category); group them by file
	// and render each group most severe first. The stable sort keeps the
	// (line, category) order within a severity level.
	for start := 0; start < len(result.Findings); {
		end := start
		for end < len(result.Findings) && result.Findings[end].File == result.Findings[start].File {
			end++
		}

		group := make([]model.Finding, end-start)
		copy(group, result.Findings[start:end])
		sort.SliceStable(group, func(i, j int) bool {
			return group[i].Severity.Rank() > group[j].Severity.Rank()
		})

		fmt.Fprintf(&b, "\n### `%s`\n\n", group[0].File)
		for _, f := range group {
			loc := ""
			if f.Line > 0 {
				loc = fmt.Sprintf("**Line %d:** ", f.Line)
			}
			fmt.Fprintf(&b, "- %s `%s` %s%s\n", severityIcon(f.Severity), f.Category, loc, f.Message)
			if f.Suggestion != "" {
				fmt.Fprintf(&b, "  - 💡 _%s_\n", f.Suggestion)
			}
		}
		start = end
	}

	return b.String()
}

// InlineBody renders the body of one inline comment.
func InlineBody(f model.Finding) string {
	body := fmt.Sprintf("%s **%s**: %s", severityIcon(f.Severity), strings.ToUpper(string(f.Category)), f.Message)
	if f.Suggestion != "" {
		body += "\n\n💡 " + f.Suggestion
	}
	return body
}
