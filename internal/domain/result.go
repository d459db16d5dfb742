package domain

import (
	"time"

	"github.com/dustin/go-humanize"
	"github.com/samber/lo"
)

const (
	// DefaultCategory is used until repositories are classified.
	DefaultCategory    = "general"
	defaultDescription = "No description provided."
	unknownLanguage    = "Unknown"
	unknownUpdated     = "unknown"
)

// AnalysisResult is the record produced for one analyzed repository.
type AnalysisResult struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	Category      string   `json:"category"`
	Language      string   `json:"language"`
	Languages     []string `json:"languages,omitempty"`
	Stars         int      `json:"stars"`
	Forks         int      `json:"forks"`
	OpenIssues    int      `json:"openIssues"`
	LastUpdated   string   `json:"lastUpdated"`
	Issues        []string `json:"issues"`
	Improvements  []string `json:"improvements"`
	Pricing       Pricing  `json:"pricing"`
	SecurityScore int      `json:"securityScore"`
	CodeQuality   int      `json:"codeQuality"`
	Documentation int      `json:"documentation"`
}

// Scores returns the three scores grouped.
func (r *AnalysisResult) Scores() Scores {
	return Scores{
		Security:      r.SecurityScore,
		CodeQuality:   r.CodeQuality,
		Documentation: r.Documentation,
	}
}

// NewAnalysisResult maps facts into a result. issues are open issue titles
// and may be nil. now anchors the relative last-updated text.
func NewAnalysisResult(f *RepositoryFacts, issues []string, now time.Time) *AnalysisResult {
	scores := CalculateScores(f)

	description := defaultDescription
	if f.HasDescription() {
		description = *f.Description
	}
	language := f.PrimaryLanguage
	if language == "" && len(f.Languages) > 0 {
		language = f.Languages[0]
	}
	if language == "" {
		language = unknownLanguage
	}
	if issues == nil {
		issues = []string{}
	}

	return &AnalysisResult{
		ID:            f.FullName(),
		Name:          f.FullName(),
		Description:   description,
		Category:      DefaultCategory,
		Language:      language,
		Languages:     f.Languages,
		Stars:         f.Stars,
		Forks:         f.Forks,
		OpenIssues:    f.OpenIssues,
		LastUpdated:   relativeTime(f.UpdatedAt, now),
		Issues:        lo.Uniq(issues),
		Improvements:  RecommendImprovements(f),
		Pricing:       DerivePricing(scores),
		SecurityScore: scores.Security,
		CodeQuality:   scores.CodeQuality,
		Documentation: scores.Documentation,
	}
}

func relativeTime(t, now time.Time) string {
	if t.IsZero() {
		return unknownUpdated
	}
	return humanize.RelTime(t, now, "ago", "from now")
}
