package model

import "time"

// PRRecord is the durable trace of the last review performed for a pull
// request. The unique key is (RepoFullName, Number). A record is written
// only after the review was published successfully, so a missing or stale
// record always means "review (again) at the current head".
type PRRecord struct {
	RepoFullName  string
	Number        int
	HeadSHA       string // Head commit the last review covered.
	ReviewedAt    time.Time
	TouchesTarget bool   // PR contained target-language files at review time.
	Success       bool   // Publish outcome; retained for diagnostics.
	Error         string // Non-empty when Success is false.
}
