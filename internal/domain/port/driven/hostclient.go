// Package driven defines the driven ports: interfaces the application core
// depends on, implemented by outbound adapters.
package driven

import (
	"context"

	"github.com/ericfisherdev/reviewbot/internal/domain/model"
)

// HostClient defines the read-side port for the hosting platform API.
type HostClient interface {
	// FetchOpenPullRequests lists the open pull requests for a repository,
	// including each PR's current head commit SHA.
	FetchOpenPullRequests(ctx context.Context, repoFullName string) ([]model.PullRequest, error)

	// FetchPullRequest retrieves a single pull request by number.
	FetchPullRequest(ctx context.Context, repoFullName string, number int) (*model.PullRequest, error)

	// FetchChangedFiles lists the files touched by a pull request together
	// with their unified diff patch text.
	FetchChangedFiles(ctx context.Context, repoFullName string, number int) ([]model.ChangedFile, error)

	// FetchFileContent returns the content of a file at the given ref
	// (typically the PR head SHA).
	FetchFileContent(ctx context.Context, repoFullName, path, ref string) (string, error)
}
