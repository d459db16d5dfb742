// Package usecase contains the business logic of the application.
package usecase

import (
	"context"
	"log"
	"sort"
	"time"

	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"github.com/naka-gawa/repo-detective/internal/domain"
	"github.com/naka-gawa/repo-detective/internal/gateway"
)

const (
	defaultIssueListLimit       = 100
	defaultContributorListLimit = 100
	defaultUserRepoLimit        = 10
	defaultIssueTitleLimit      = 5
	userRepoConcurrency         = 4
)

// Analyzer is the use case for analyzing GitHub repositories.
// It orchestrates fetching facts and mapping them into results.
type Analyzer struct {
	fetcher         gateway.Fetcher
	logger          *log.Logger
	now             func() time.Time
	userRepoLimit   int
	issueTitleLimit int
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithUserRepoLimit caps how many repositories are analyzed for a username.
func WithUserRepoLimit(n int) Option {
	return func(a *Analyzer) {
		if n > 0 {
			a.userRepoLimit = n
		}
	}
}

// WithIssueTitleLimit caps the open issue titles attached to a result.
// Zero disables the lookup.
func WithIssueTitleLimit(n int) Option {
	return func(a *Analyzer) {
		if n >= 0 {
			a.issueTitleLimit = n
		}
	}
}

// WithClock overrides the time source used for relative timestamps.
func WithClock(now func() time.Time) Option {
	return func(a *Analyzer) {
		a.now = now
	}
}

// NewAnalyzer creates a new Analyzer instance.
func NewAnalyzer(fetcher gateway.Fetcher, logger *log.Logger, opts ...Option) *Analyzer {
	a := &Analyzer{
		fetcher:         fetcher,
		logger:          logger,
		now:             time.Now,
		userRepoLimit:   defaultUserRepoLimit,
		issueTitleLimit: defaultIssueTitleLimit,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Analyze resolves input and analyzes the repository or the user's
// repositories it names.
func (a *Analyzer) Analyze(ctx context.Context, input string) ([]*domain.AnalysisResult, error) {
	target, err := domain.ResolveTarget(input)
	if err != nil {
		return nil, err
	}
	if target.IsRepository() {
		result, err := a.AnalyzeRepository(ctx, target)
		if err != nil {
			return nil, err
		}
		return []*domain.AnalysisResult{result}, nil
	}
	return a.AnalyzeUser(ctx, target.Username)
}

// AnalyzeRepository fetches and maps a single repository.
func (a *Analyzer) AnalyzeRepository(ctx context.Context, target domain.Target) (*domain.AnalysisResult, error) {
	facts, err := a.FetchRepository(ctx, target)
	if err != nil {
		return nil, err
	}
	return domain.NewAnalysisResult(facts, a.issueTitles(ctx, facts), a.now()), nil
}

// AnalyzeUser fetches and maps the user's most recently updated repositories.
func (a *Analyzer) AnalyzeUser(ctx context.Context, username string) ([]*domain.AnalysisResult, error) {
	factsList, err := a.FetchUserRepositories(ctx, username)
	if err != nil {
		return nil, err
	}
	now := a.now()
	return lo.Map(factsList, func(f *domain.RepositoryFacts, _ int) *domain.AnalysisResult {
		return domain.NewAnalysisResult(f, a.issueTitles(ctx, f), now)
	}), nil
}

// FetchRepository fetches all facts for one repository.
// The four calls run concurrently; if any fails, no facts are returned.
func (a *Analyzer) FetchRepository(ctx context.Context, target domain.Target) (*domain.RepositoryFacts, error) {
	a.logger.Printf("Usecase: Fetching facts for %s...", target.FullName())

	var (
		facts        *domain.RepositoryFacts
		openIssues   int
		languages    map[string]int
		contributors int
	)

	eg, egCtx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		var err error
		facts, err = a.fetcher.GetRepository(egCtx, target.Owner, target.Repo)
		return err
	})

	eg.Go(func() error {
		var err error
		openIssues, err = a.fetcher.CountOpenIssues(egCtx, target.Owner, target.Repo, defaultIssueListLimit)
		return err
	})

	eg.Go(func() error {
		var err error
		languages, err = a.fetcher.ListLanguages(egCtx, target.Owner, target.Repo)
		return err
	})

	eg.Go(func() error {
		var err error
		contributors, err = a.fetcher.CountContributors(egCtx, target.Owner, target.Repo, defaultContributorListLimit)
		return err
	})

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	facts.OpenIssues = openIssues
	facts.ContributorCount = contributors
	facts.Languages = sortLanguages(languages)
	a.logger.Printf("Usecase: Facts for %s fetched successfully.", target.FullName())
	return facts, nil
}

// FetchUserRepositories resolves the user and fetches facts for each of
// their most recently updated repositories.
func (a *Analyzer) FetchUserRepositories(ctx context.Context, username string) ([]*domain.RepositoryFacts, error) {
	if err := a.fetcher.GetUser(ctx, username); err != nil {
		return nil, err
	}
	names, err := a.fetcher.ListUserRepositories(ctx, username, a.userRepoLimit)
	if err != nil {
		return nil, err
	}
	if len(names) == 0 {
		return nil, &domain.NotFoundError{Target: "public repositories for " + username}
	}

	results := make([]*domain.RepositoryFacts, len(names))
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(userRepoConcurrency)
	for i, name := range names {
		i, name := i, name
		eg.Go(func() error {
			facts, err := a.FetchRepository(egCtx, domain.Target{Owner: username, Repo: name})
			if err != nil {
				return err
			}
			results[i] = facts
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// issueTitles is best effort: any failure yields an empty list.
func (a *Analyzer) issueTitles(ctx context.Context, f *domain.RepositoryFacts) []string {
	if a.issueTitleLimit == 0 {
		return []string{}
	}
	titles, err := a.fetcher.FetchOpenIssueTitles(ctx, f.Owner, f.Name, a.issueTitleLimit)
	if err != nil {
		a.logger.Printf("Usecase: Skipping issue titles for %s: %v", f.FullName(), err)
		return []string{}
	}
	if len(titles) > a.issueTitleLimit {
		titles = titles[:a.issueTitleLimit]
	}
	return titles
}

// sortLanguages orders language names by byte count, largest first.
func sortLanguages(languages map[string]int) []string {
	names := lo.Keys(languages)
	sort.Slice(names, func(i, j int) bool {
		if languages[names[i]] != languages[names[j]] {
			return languages[names[i]] > languages[names[j]]
		}
		return names[i] < names[j]
	})
	return names
}
