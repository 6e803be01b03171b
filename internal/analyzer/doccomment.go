package analyzer

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/ericfisherdev/reviewbot/internal/domain/model"
)

// DocComment flags exported top-level declarations that have no doc comment
// on the preceding line.
type DocComment struct{}

var exportedDecl = regexp.MustCompile(`^(func|type|var|const) ([A-Z]\w*)`)

func (a *DocComment) Name() string { return "doc-comments" }

func (a *DocComment) Check(path, content string) ([]model.Finding, error) {
	lines := strings.Split(content, "\n")
	var findings []model.Finding

	for i, line := range lines {
		m := exportedDecl.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		if i > 0 && strings.HasPrefix(strings.TrimSpace(lines[i-1]), "//") {
			continue
		}
		findings = append(findings, model.Finding{
			File:       path,
			Line:       i + 1,
			Severity:   model.SeverityWarning,
			Category:   model.CategoryDocumentation,
			Message:    fmt.Sprintf("exported %s %s has no doc comment", m[1], m[2]),
			Suggestion: fmt.Sprintf("add a comment starting with %q above the declaration", m[2]+" ..."),
		})
	}

	return findings, nil
}
