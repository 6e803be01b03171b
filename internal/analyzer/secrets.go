package analyzer

import (
	"fmt"
	"strings"

	"github.com/ericfisherdev/reviewbot/internal/domain/model"
)

// HardcodedSecrets flags lines that assign a quoted literal to a name that
// looks like a credential.
type HardcodedSecrets struct{}

var secretNames = []string{"password", "passwd", "api_key", "apikey", "secret", "token", "private_key"}

func (a *HardcodedSecrets) Name() string { return "hardcoded-secrets" }

func (a *HardcodedSecrets) Check(path, content string) ([]model.Finding, error) {
	var findings []model.Finding

	for i, line := range strings.Split(content, "\n") {
		lower := strings.ToLower(line)
		if !strings.Contains(line, "=") {
			continue
		}
		if !strings.Contains(line, `"`) && !strings.Contains(line, "'") && !strings.Contains(line, "`") {
			continue
		}
		for _, name := range secretNames {
			if strings.Contains(lower, name) {
				findings = append(findings, model.Finding{
					File:       path,
					Line:       i + 1,
					Severity:   model.SeverityError,
					Category:   model.CategorySecurity,
					Message:    fmt.Sprintf("possible hardcoded secret: assignment to a %q-like name", name),
					Suggestion: "load the value from the environment or a secrets manager instead",
				})
				break
			}
		}
	}

	return findings, nil
}
