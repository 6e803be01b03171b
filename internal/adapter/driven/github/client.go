// Package github implements the HostClient and ReviewPublisher ports using
// the go-github library.
package github

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	gh "github.com/google/go-github/v82/github"
	"github.com/gregjones/httpcache"

	"github.com/gofri/go-github-ratelimit/v2/github_ratelimit"

	"github.com/ericfisherdev/reviewbot/internal/domain/model"
	"github.com/ericfisherdev/reviewbot/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.HostClient = (*Client)(nil)

const requestTimeout = 30 * time.Second

// Client implements the HostClient and ReviewPublisher ports using the
// go-github library.
type Client struct {
	gh *gh.Client
}

// NewClient creates a new GitHub API client with the following transport stack:
//  1. httpcache (ETag-based conditional request caching)
//  2. go-github-ratelimit (secondary rate limit middleware, sleeps on 429)
//  3. go-github (GitHub REST API client with PAT auth)
func NewClient(token string) *Client {
	cacheTransport := httpcache.NewMemoryCacheTransport()
	rateLimitClient := github_ratelimit.NewClient(cacheTransport)
	client := gh.NewClient(rateLimitClient).WithAuthToken(token)

	return &Client{gh: client}
}

// NewClientWithHTTPClient creates a Client with a custom http.Client and base URL.
// This constructor is intended for testing, allowing injection of an httptest server.
func NewClientWithHTTPClient(httpClient *http.Client, baseURL string) (*Client, error) {
	client := gh.NewClient(httpClient)

	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing base URL: %w", err)
	}
	client.BaseURL = u

	return &Client{gh: client}, nil
}

// FetchOpenPullRequests retrieves the open pull requests for the given
// repository. It handles pagination automatically and maps go-github types
// to domain model types.
func (c *Client) FetchOpenPullRequests(ctx context.Context, repoFullName string) ([]model.PullRequest, error) {
	owner, repo, err := splitRepo(repoFullName)
	if err != nil {
		return nil, err
	}

	opts := &gh.PullRequestListOptions{
		State:     "open",
		Sort:      "updated",
		Direction: "desc",
		ListOptions: gh.ListOptions{
			PerPage: 100,
		},
	}

	allPRs := []model.PullRequest{}

	for {
		var prs []*gh.PullRequest
		var resp *gh.Response
		err := c.withRetry(ctx, func(ctx context.Context) error {
			prs, resp, err = c.gh.PullRequests.List(ctx, owner, repo, opts)
			return err
		})
		if err != nil {
			return nil, fmt.Errorf("listing pull requests for %s (page %d): %w", repoFullName, opts.Page, err)
		}

		logRateLimit(resp, repoFullName+"/list-prs")

		for _, pr := range prs {
			allPRs = append(allPRs, mapPullRequest(pr, repoFullName))
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return allPRs, nil
}

// FetchPullRequest retrieves a single pull request by number.
func (c *Client) FetchPullRequest(ctx context.Context, repoFullName string, number int) (*model.PullRequest, error) {
	owner, repo, err := splitRepo(repoFullName)
	if err != nil {
		return nil, err
	}

	var pr *gh.PullRequest
	err = c.withRetry(ctx, func(ctx context.Context) error {
		var reqErr error
		pr, _, reqErr = c.gh.PullRequests.Get(ctx, owner, repo, number)
		return reqErr
	})
	if err != nil {
		return nil, fmt.Errorf("fetching PR %s#%d: %w", repoFullName, number, err)
	}

	mapped := mapPullRequest(pr, repoFullName)
	return &mapped, nil
}

// FetchChangedFiles lists the files changed by a pull request together with
// their unified diff patch text. Pagination is handled automatically.
func (c *Client) FetchChangedFiles(ctx context.Context, repoFullName string, number int) ([]model.ChangedFile, error) {
	owner, repo, err := splitRepo(repoFullName)
	if err != nil {
		return nil, err
	}

	opts := &gh.ListOptions{PerPage: 100}
	var allFiles []model.ChangedFile

	for {
		var files []*gh.CommitFile
		var resp *gh.Response
		err := c.withRetry(ctx, func(ctx context.Context) error {
			var reqErr error
			files, resp, reqErr = c.gh.PullRequests.ListFiles(ctx, owner, repo, number, opts)
			return reqErr
		})
		if err != nil {
			return nil, fmt.Errorf("listing files for %s#%d (page %d): %w", repoFullName, number, opts.Page, err)
		}

		for _, f := range files {
			allFiles = append(allFiles, model.ChangedFile{
				Path:   f.GetFilename(),
				Status: f.GetStatus(),
				Patch:  f.GetPatch(),
			})
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return allFiles, nil
}

// FetchFileContent returns the decoded content of a file at the given ref.
func (c *Client) FetchFileContent(ctx context.Context, repoFullName, path, ref string) (string, error) {
	owner, repo, err := splitRepo(repoFullName)
	if err != nil {
		return "", err
	}

	var fileContent *gh.RepositoryContent
	err = c.withRetry(ctx, func(ctx context.Context) error {
		var reqErr error
		fileContent, _, _, reqErr = c.gh.Repositories.GetContents(ctx, owner, repo, path, &gh.RepositoryContentGetOptions{Ref: ref})
		return reqErr
	})
	if err != nil {
		return "", fmt.Errorf("fetching content of %s@%s in %s: %w", path, ref, repoFullName, err)
	}
	if fileContent == nil {
		return "", fmt.Errorf("%s in %s is not a file", path, repoFullName)
	}

	content, err := fileContent.GetContent()
	if err != nil {
		return "", fmt.Errorf("decoding content of %s in %s: %w", path, repoFullName, err)
	}

	return content, nil
}

func mapPullRequest(pr *gh.PullRequest, repoFullName string) model.PullRequest {
	return model.PullRequest{
		Number:       pr.GetNumber(),
		RepoFullName: repoFullName,
		Title:        pr.GetTitle(),
		Author:       pr.GetUser().GetLogin(),
		HeadSHA:      pr.GetHead().GetSHA(),
		URL:          pr.GetHTMLURL(),
		UpdatedAt:    pr.GetUpdatedAt().Time,
	}
}

// splitRepo splits "owner/name" into its two components.
func splitRepo(repoFullName string) (string, string, error) {
	parts := strings.SplitN(repoFullName, "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("invalid repository %q: expected owner/name", repoFullName)
	}
	return parts[0], parts[1], nil
}

func logRateLimit(resp *gh.Response, op string) {
	if resp == nil {
		return
	}
	if resp.Rate.Limit > 0 && resp.Rate.Remaining < 100 {
		slog.Warn("github rate limit low",
			"op", op,
			"remaining", resp.Rate.Remaining,
			"reset", resp.Rate.Reset.Time,
		)
	}
}
