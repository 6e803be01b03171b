package analyzer

import (
	"strings"

	"github.com/ericfisherdev/reviewbot/internal/domain/model"
)

// NestedLoops flags loops opened inside another loop's body, a cheap signal
// for accidental quadratic passes. Detection is textual: it tracks brace
// depth and the depths at which loop bodies opened.
type NestedLoops struct{}

func (a *NestedLoops) Name() string { return "nested-loops" }

func (a *NestedLoops) Check(path, content string) ([]model.Finding, error) {
	var findings []model.Finding

	depth := 0
	var loopDepths []int

	for i, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)

		isLoop := strings.HasPrefix(trimmed, "for ") || trimmed == "for {"
		if isLoop && len(loopDepths) > 0 {
			findings = append(findings, model.Finding{
				File:       path,
				Line:       i + 1,
				Severity:   model.SeverityWarning,
				Category:   model.CategoryAlgorithm,
				Message:    "nested loop detected; worst case is quadratic in the input",
				Suggestion: "consider a map lookup or restructuring to a single pass",
			})
		}

		for _, r := range line {
			switch r {
			case '{':
				if isLoop {
					loopDepths = append(loopDepths, depth)
					isLoop = false
				}
				depth++
			case '}':
				depth--
				if n := len(loopDepths); n > 0 && loopDepths[n-1] == depth {
					loopDepths = loopDepths[:n-1]
				}
			}
		}
	}

	return findings, nil
}
