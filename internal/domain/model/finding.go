// Package model contains the domain types shared across reviewbot.
package model

import "sort"

// Severity classifies how serious a finding is.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Rank returns a numeric rank for ordering (higher = more severe).
func (s Severity) Rank() int {
	switch s {
	case SeverityError:
		return 3
	case SeverityWarning:
		return 2
	case SeverityInfo:
		return 1
	default:
		return 0
	}
}

// Category tags a finding with the rule family that produced it.
type Category string

const (
	CategoryDocumentation Category = "documentation"
	CategoryStyle         Category = "style"
	CategoryAlgorithm     Category = "algorithm"
	CategorySecurity      Category = "security"
	CategoryAnalyzer      Category = "analyzer"
)

// Finding is a single reported issue. Line always refers to the head
// (new) version of the file; 0 means the finding applies to the whole file.
type Finding struct {
	File       string   `json:"file"`
	Line       int      `json:"line,omitempty"`
	Severity   Severity `json:"severity"`
	Category   Category `json:"category"`
	Message    string   `json:"message"`
	Suggestion string   `json:"suggestion,omitempty"`
}

// SeverityCounts tallies findings per severity level.
type SeverityCounts struct {
	Errors   int `json:"errors"`
	Warnings int `json:"warnings"`
	Infos    int `json:"infos"`
}

// Total returns the sum across all severities.
func (c SeverityCounts) Total() int {
	return c.Errors + c.Warnings + c.Infos
}

// Verdict is the aggregate review outcome.
type Verdict string

const (
	VerdictRequestChanges Verdict = "request_changes"
	VerdictComment        Verdict = "comment"
	VerdictApprove        Verdict = "approve"
)

// Event maps a verdict to the GitHub review event string.
func (v Verdict) Event() string {
	switch v {
	case VerdictRequestChanges:
		return "REQUEST_CHANGES"
	case VerdictApprove:
		return "APPROVE"
	default:
		return "COMMENT"
	}
}

// ReviewResult is the ordered outcome of reviewing one set of files.
type ReviewResult struct {
	Findings []Finding      `json:"findings"`
	Counts   SeverityCounts `json:"counts"`
	Verdict  Verdict        `json:"verdict"`
}

// NewReviewResult sorts findings into their canonical order, tallies
// severities, and computes the verdict. Ordering is (file, line, category,
// message) so identical inputs always produce identical output regardless
// of the order analyzers ran in.
func NewReviewResult(findings []Finding) ReviewResult {
	SortFindings(findings)

	var counts SeverityCounts
	for _, f := range findings {
		switch f.Severity {
		case SeverityError:
			counts.Errors++
		case SeverityWarning:
			counts.Warnings++
		case SeverityInfo:
			counts.Infos++
		}
	}

	verdict := VerdictApprove
	switch {
	case counts.Errors > 0:
		verdict = VerdictRequestChanges
	case counts.Total() > 0:
		verdict = VerdictComment
	}

	return ReviewResult{
		Findings: findings,
		Counts:   counts,
		Verdict:  verdict,
	}
}

// SortFindings orders findings by (file, line, category, message).
func SortFindings(findings []Finding) {
	sort.Slice(findings, func(i, j int) bool {
		a, b := findings[i], findings[j]
		if a.File != b.File {
			return a.File < b.File
		}
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		if a.Category != b.Category {
			return a.Category < b.Category
		}
		return a.Message < b.Message
	})
}
