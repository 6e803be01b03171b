package analyzer

import (
	"fmt"
	"strings"

	"github.com/ericfisherdev/reviewbot/internal/domain/model"
)

// LineLength flags lines longer than Max characters.
type LineLength struct {
	Max int
}

func (a *LineLength) Name() string { return "line-length" }

func (a *LineLength) Check(path, content string) ([]model.Finding, error) {
	var findings []model.Finding

	for i, line := range strings.Split(content, "\n") {
		if len(line) <= a.Max {
			continue
		}
		findings = append(findings, model.Finding{
			File:       path,
			Line:       i + 1,
			Severity:   model.SeverityInfo,
			Category:   model.CategoryStyle,
			Message:    fmt.Sprintf("line exceeds %d characters (%d)", a.Max, len(line)),
			Suggestion: "break this line up for readability",
		})
	}

	return findings, nil
}
