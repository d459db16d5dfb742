package domain

import "github.com/samber/lo"

// Improvement suggestions, in evaluation order.
const (
	ImprovementWiki         = "Add/expand Wiki"
	ImprovementDownloads    = "Enable Releases/Downloads"
	ImprovementTriage       = "Triage and label open issues"
	ImprovementContributing = "Add CONTRIBUTING.md"
	ImprovementLicense      = "Add a LICENSE file"
)

const (
	triageIssueThreshold   = 25
	minHealthyContributors = 3
)

type improvementRule struct {
	applies    func(f *RepositoryFacts) bool
	suggestion string
}

var improvementRules = []improvementRule{
	{func(f *RepositoryFacts) bool { return !f.HasWiki }, ImprovementWiki},
	{func(f *RepositoryFacts) bool { return !f.HasDownloads }, ImprovementDownloads},
	{func(f *RepositoryFacts) bool { return f.OpenIssues > triageIssueThreshold }, ImprovementTriage},
	{func(f *RepositoryFacts) bool { return f.ContributorCount < minHealthyContributors }, ImprovementContributing},
	{func(f *RepositoryFacts) bool { return !f.HasLicense() }, ImprovementLicense},
}

// RecommendImprovements evaluates every rule against f and returns the
// suggestions whose condition holds. The result is never nil.
func RecommendImprovements(f *RepositoryFacts) []string {
	out := make([]string, 0, len(improvementRules))
	for _, rule := range improvementRules {
		if rule.applies(f) {
			out = append(out, rule.suggestion)
		}
	}
	return lo.Uniq(out)
}
