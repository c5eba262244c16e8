// Package github fetches repository structure from the GitHub REST API and
// folds it into repository summaries.
//
// All calls are single-shot: no retry, no backoff, transport-default
// timeouts. Anonymous clients are valid and simply run under GitHub's
// anonymous rate limits; an exhausted limit surfaces as a RemoteError.
package github

import (
	"context"
	"fmt"
	"unicode/utf8"

	gh "github.com/google/go-github/v57/github"
	"go.uber.org/zap"
	"golang.org/x/oauth2"

	"github.com/fyrsmithlabs/readmegen/internal/config"
	"github.com/fyrsmithlabs/readmegen/internal/source"
	"github.com/fyrsmithlabs/readmegen/internal/summary"
)

// MaxFileContentChars caps the text returned by FetchFileContent.
const MaxFileContentChars = 2000

// Fetcher retrieves repository metadata and trees.
type Fetcher struct {
	logger *zap.Logger

	// newClient is swappable so tests can point at a stub API server.
	newClient func(ctx context.Context, token config.Secret) *gh.Client
}

// NewFetcher creates a GitHub fetcher.
func NewFetcher(logger *zap.Logger) *Fetcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Fetcher{
		logger:    logger,
		newClient: newClient,
	}
}

// newClient builds a go-github client. With a token the client carries a
// bearer header via oauth2; without one it is anonymous.
func newClient(ctx context.Context, token config.Secret) *gh.Client {
	if !token.IsSet() {
		return gh.NewClient(nil)
	}
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token.Value()})
	return gh.NewClient(oauth2.NewClient(ctx, ts))
}

// FetchRepository resolves ref, fetches repository metadata and then the
// complete recursive tree of the default branch, and returns a fully
// populated summary.
//
// Failure modes: source.ErrInvalidRef for a malformed reference (before any
// network call), *RemoteError for a non-success API status, *TransportError
// for network failures. A single failed call is reported immediately.
func (f *Fetcher) FetchRepository(ctx context.Context, ref string, token config.Secret) (*summary.RepositorySummary, error) {
	owner, name, err := source.ParseRepoRef(ref)
	if err != nil {
		return nil, err
	}

	client := f.newClient(ctx, token)

	repo, _, err := client.Repositories.Get(ctx, owner, name)
	if err != nil {
		return nil, wrapAPIError(err)
	}

	tree, _, err := client.Git.GetTree(ctx, owner, name, repo.GetDefaultBranch(), true)
	if err != nil {
		return nil, fmt.Errorf("fetching tree: %w", wrapAPIError(err))
	}

	s := summary.New()
	s.Name = repo.GetName()
	s.Description = repo.GetDescription()
	s.Language = repo.GetLanguage()
	s.Stars = repo.GetStargazersCount()
	s.Forks = repo.GetForksCount()
	s.OpenIssues = repo.GetOpenIssuesCount()
	s.Topics = repo.Topics
	s.Owner = owner
	s.RepoURL = fmt.Sprintf("https://github.com/%s/%s", owner, name)
	s.DefaultBranch = repo.GetDefaultBranch()
	if s.Description == "" {
		s.Description = "No description"
	}

	for _, entry := range tree.Entries {
		switch entry.GetType() {
		case "blob":
			s.Record(entry.GetPath())
		case "tree":
			s.RecordDirectory(entry.GetPath())
		}
	}

	f.logger.Debug("fetched repository",
		zap.String("owner", owner),
		zap.String("repo", name),
		zap.Int("files", s.FileCount),
		zap.Bool("truncated", tree.GetTruncated()))

	return s, nil
}

// FetchFileContent fetches one file's decoded content from the contents
// endpoint, truncated to MaxFileContentChars.
//
// This is best-effort prompt enrichment, never a hard dependency: callers
// treat any error as an absent result. The error is still returned so the
// cause stays inspectable.
func (f *Fetcher) FetchFileContent(ctx context.Context, owner, repo, path, branch string, token config.Secret) (string, error) {
	client := f.newClient(ctx, token)

	opts := &gh.RepositoryContentGetOptions{Ref: branch}
	file, _, _, err := client.Repositories.GetContents(ctx, owner, repo, path, opts)
	if err != nil {
		return "", wrapAPIError(err)
	}
	if file == nil {
		return "", fmt.Errorf("%s is not a file", path)
	}

	content, err := file.GetContent()
	if err != nil {
		return "", fmt.Errorf("decoding content: %w", err)
	}
	return truncateRunes(content, MaxFileContentChars), nil
}

// truncateRunes caps s at max characters, never splitting a rune: the cap
// counts code points, not bytes, so multi-byte text stays valid UTF-8.
func truncateRunes(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	return string([]rune(s)[:max])
}
