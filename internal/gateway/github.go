// Package gateway provides a gateway to the GitHub API,
// abstracting away the underlying REST and GraphQL clients.
package gateway

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/google/go-github/v62/github"
	"github.com/shurcooL/githubv4"
	"golang.org/x/oauth2"

	"github.com/gofri/go-github-ratelimit/github_ratelimit"

	"github.com/naka-gawa/repo-detective/internal/domain"
)

const defaultCallTimeout = 10 * time.Second

// Fetcher defines the behavior of a gateway for fetching information from GitHub.
type Fetcher interface {
	// GetRepository returns the repository metadata. Issue, language and
	// contributor fields are left for the caller to fill in.
	GetRepository(ctx context.Context, owner, repo string) (*domain.RepositoryFacts, error)
	CountOpenIssues(ctx context.Context, owner, repo string, limit int) (int, error)
	ListLanguages(ctx context.Context, owner, repo string) (map[string]int, error)
	CountContributors(ctx context.Context, owner, repo string, limit int) (int, error)
	GetUser(ctx context.Context, username string) error
	// ListUserRepositories returns up to limit repository names, most recently updated first.
	ListUserRepositories(ctx context.Context, username string, limit int) ([]string, error)
	FetchOpenIssueTitles(ctx context.Context, owner, repo string, limit int) ([]string, error)
}

// Options tunes the gateway. Zero values select the defaults.
type Options struct {
	// APIURL points the REST client at a GitHub Enterprise host.
	APIURL string
	// GraphQLURL points the GraphQL client at a GitHub Enterprise host.
	GraphQLURL string
	// CallTimeout bounds every single API call.
	CallTimeout time.Duration
	// MaxRateLimitSleep bounds a single secondary rate limit sleep.
	MaxRateLimitSleep time.Duration
}

// GitHubGateway is the concrete implementation of the Fetcher interface.
type GitHubGateway struct {
	restClient    *github.Client
	graphqlClient *githubv4.Client
	timeout       time.Duration
	logger        *log.Logger
}

// openIssuesQuery fetches the most recent open issue titles.
type openIssuesQuery struct {
	Repository struct {
		Issues struct {
			Nodes []struct {
				Title string
			}
		} `graphql:"issues(first: $first, states: OPEN, orderBy: {field: CREATED_AT, direction: DESC})"`
	} `graphql:"repository(owner: $owner, name: $name)"`
}

// NewGitHubGateway is a constructor that creates a new instance of GitHubGateway.
// An empty token yields an unauthenticated client with a lower rate limit.
func NewGitHubGateway(token string, opts Options, logger *log.Logger) (*GitHubGateway, error) {
	maxSleep := opts.MaxRateLimitSleep
	if maxSleep == 0 {
		maxSleep = 1 * time.Minute
	}
	rateLimitWaiter, err := github_ratelimit.NewRateLimitWaiter(nil, github_ratelimit.WithSingleSleepLimit(maxSleep, nil))
	if err != nil {
		return nil, fmt.Errorf("failed to create rate limit waiter: %w", err)
	}

	var transport http.RoundTripper = rateLimitWaiter
	if token != "" {
		transport = &oauth2.Transport{
			Base:   rateLimitWaiter,
			Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}),
		}
	}
	httpClient := &http.Client{Transport: transport}

	restClient := github.NewClient(httpClient)
	if opts.APIURL != "" {
		restClient, err = restClient.WithEnterpriseURLs(opts.APIURL, opts.APIURL)
		if err != nil {
			return nil, fmt.Errorf("failed to configure enterprise url: %w", err)
		}
	}
	graphqlClient := githubv4.NewClient(httpClient)
	if opts.GraphQLURL != "" {
		graphqlClient = githubv4.NewEnterpriseClient(opts.GraphQLURL, httpClient)
	}

	timeout := opts.CallTimeout
	if timeout == 0 {
		timeout = defaultCallTimeout
	}
	return &GitHubGateway{
		restClient:    restClient,
		graphqlClient: graphqlClient,
		timeout:       timeout,
		logger:        logger,
	}, nil
}

func (g *GitHubGateway) GetRepository(ctx context.Context, owner, repo string) (*domain.RepositoryFacts, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	g.logger.Printf("Fetching repository %s/%s...", owner, repo)
	r, resp, err := g.restClient.Repositories.Get(ctx, owner, repo)
	if err != nil {
		return nil, fmt.Errorf("failed to get repository: %w", classify(owner+"/"+repo, resp, err))
	}

	facts := &domain.RepositoryFacts{
		Owner:           r.GetOwner().GetLogin(),
		Name:            r.GetName(),
		Description:     r.Description,
		Stars:           r.GetStargazersCount(),
		Forks:           r.GetForksCount(),
		OpenIssues:      r.GetOpenIssuesCount(),
		PrimaryLanguage: r.GetLanguage(),
		HasWiki:         r.GetHasWiki(),
		HasPages:        r.GetHasPages(),
		HasDownloads:    r.GetHasDownloads(),
		UpdatedAt:       r.GetUpdatedAt().Time,
	}
	if facts.Owner == "" {
		facts.Owner = owner
	}
	if facts.Name == "" {
		facts.Name = repo
	}
	if id := r.GetLicense().GetSPDXID(); id != "" {
		facts.License = &id
	}
	return facts, nil
}

// CountOpenIssues counts the open issues returned on the first page.
// GitHub's issue listing includes pull requests, and so does the count.
func (g *GitHubGateway) CountOpenIssues(ctx context.Context, owner, repo string, limit int) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	opts := &github.IssueListByRepoOptions{
		State:       "open",
		ListOptions: github.ListOptions{PerPage: limit},
	}
	issues, resp, err := g.restClient.Issues.ListByRepo(ctx, owner, repo, opts)
	if err != nil {
		return 0, fmt.Errorf("failed to list open issues: %w", classify(owner+"/"+repo, resp, err))
	}
	return len(issues), nil
}

func (g *GitHubGateway) ListLanguages(ctx context.Context, owner, repo string) (map[string]int, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	languages, resp, err := g.restClient.Repositories.ListLanguages(ctx, owner, repo)
	if err != nil {
		return nil, fmt.Errorf("failed to list languages: %w", classify(owner+"/"+repo, resp, err))
	}
	return languages, nil
}

func (g *GitHubGateway) CountContributors(ctx context.Context, owner, repo string, limit int) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	opts := &github.ListContributorsOptions{ListOptions: github.ListOptions{PerPage: limit}}
	contributors, resp, err := g.restClient.Repositories.ListContributors(ctx, owner, repo, opts)
	if err != nil {
		return 0, fmt.Errorf("failed to list contributors: %w", classify(owner+"/"+repo, resp, err))
	}
	return len(contributors), nil
}

func (g *GitHubGateway) GetUser(ctx context.Context, username string) error {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	g.logger.Printf("Resolving user %s...", username)
	if _, resp, err := g.restClient.Users.Get(ctx, username); err != nil {
		return fmt.Errorf("failed to get user: %w", classify(username, resp, err))
	}
	return nil
}

func (g *GitHubGateway) ListUserRepositories(ctx context.Context, username string, limit int) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	opts := &github.RepositoryListByUserOptions{
		Sort:        "updated",
		ListOptions: github.ListOptions{PerPage: limit},
	}
	repos, resp, err := g.restClient.Repositories.ListByUser(ctx, username, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list user repositories: %w", classify(username, resp, err))
	}

	names := make([]string, 0, len(repos))
	for _, r := range repos {
		if len(names) == limit {
			break
		}
		names = append(names, r.GetName())
	}
	g.logger.Printf("Found %d repositories for %s.", len(names), username)
	return names, nil
}

// FetchOpenIssueTitles uses the GraphQL API, which requires a token.
func (g *GitHubGateway) FetchOpenIssueTitles(ctx context.Context, owner, repo string, limit int) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	variables := map[string]interface{}{
		"owner": githubv4.String(owner),
		"name":  githubv4.String(repo),
		"first": githubv4.Int(limit),
	}
	var q openIssuesQuery
	if err := g.graphqlClient.Query(ctx, &q, variables); err != nil {
		return nil, fmt.Errorf("failed to execute GraphQL query for issue titles: %w", err)
	}

	titles := make([]string, 0, len(q.Repository.Issues.Nodes))
	for _, node := range q.Repository.Issues.Nodes {
		titles = append(titles, node.Title)
	}
	return titles, nil
}

// classify turns a go-github error into the domain error taxonomy.
func classify(target string, resp *github.Response, err error) error {
	var ghErr *github.ErrorResponse
	if errors.As(err, &ghErr) && ghErr.Response != nil {
		return statusError(target, ghErr.Response, ghErr.Message)
	}
	var rlErr *github.RateLimitError
	if errors.As(err, &rlErr) && rlErr.Response != nil {
		return statusError(target, rlErr.Response, rlErr.Message)
	}
	var abuseErr *github.AbuseRateLimitError
	if errors.As(err, &abuseErr) && abuseErr.Response != nil {
		return statusError(target, abuseErr.Response, abuseErr.Message)
	}
	if resp != nil && resp.Response != nil {
		return statusError(target, resp.Response, err.Error())
	}
	return &domain.TransportError{Target: target, Err: err}
}

func statusError(target string, resp *http.Response, message string) error {
	if resp.StatusCode == http.StatusNotFound {
		return &domain.NotFoundError{Target: target}
	}
	status := resp.Status
	if status == "" {
		status = fmt.Sprintf("%d %s", resp.StatusCode, http.StatusText(resp.StatusCode))
	}
	return &domain.UpstreamError{
		Target:     target,
		StatusCode: resp.StatusCode,
		Status:     status,
		Message:    message,
	}
}
