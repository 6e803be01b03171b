// Package analyzer defines the pluggable check capability and the built-in
// heuristic analyzers composed by the review orchestrator.
package analyzer

import "github.com/ericfisherdev/reviewbot/internal/domain/model"

// Analyzer is one independent check. Implementations must be stateless
// across files so the orchestrator can run them in any order or in
// parallel without interference.
type Analyzer interface {
	// Name identifies the analyzer in logs and failure findings.
	Name() string

	// Check inspects one file's head content and returns its findings in
	// file order.
	Check(path, content string) ([]model.Finding, error)
}

// FromRules builds the analyzer set enabled by the given rules, in a fixed
// registration order.
func FromRules(r *Rules) []Analyzer {
	var analyzers []Analyzer

	if r.Documentation.Enabled && r.Documentation.RequireDocComments {
		analyzers = append(analyzers, &DocComment{})
	}
	if r.Style.Enabled && r.Style.MaxLineLength > 0 {
		analyzers = append(analyzers, &LineLength{Max: r.Style.MaxLineLength})
	}
	if r.Algorithms.Enabled && r.Algorithms.FlagNestedLoops {
		analyzers = append(analyzers, &NestedLoops{})
	}
	if r.Security.Enabled && r.Security.CheckHardcodedSecrets {
		analyzers = append(analyzers, &HardcodedSecrets{})
	}

	return analyzers
}
