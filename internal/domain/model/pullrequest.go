package model

import "time"

// PullRequest is the slice of GitHub pull request data reviewbot needs:
// enough to decide whether a review is due and to anchor published comments.
type PullRequest struct {
	Number       int
	RepoFullName string
	Title        string
	Author       string
	HeadSHA      string // Current head commit; reviews are keyed to this.
	URL          string
	UpdatedAt    time.Time
}

// ChangedFile is one file touched by a pull request, with its unified diff
// patch text as returned by the hosting platform.
type ChangedFile struct {
	Path   string
	Status string // "added", "modified", "removed", "renamed"
	Patch  string // Empty for rename-only or binary changes.
}

// SourceFile pairs a path with head-version file content for analysis.
type SourceFile struct {
	Path    string
	Content string
}
