// Package api defines the JSON bodies exchanged with the HTTP API.
package api

import "github.com/naka-gawa/repo-detective/internal/domain"

// AnalyzeRequest is the body of POST /api/analyze.
type AnalyzeRequest struct {
	Target string `json:"target"`
}

// AnalyzeResponse is the 200 body of POST /api/analyze.
type AnalyzeResponse struct {
	Name         string         `json:"name"`
	Description  string         `json:"description"`
	Language     string         `json:"language"`
	Languages    []string       `json:"languages"`
	Stars        int            `json:"stars"`
	Forks        int            `json:"forks"`
	OpenIssues   int            `json:"openIssues"`
	LastUpdated  string         `json:"lastUpdated"`
	Issues       []string       `json:"issues"`
	Scores       domain.Scores  `json:"scores"`
	Improvements []string       `json:"improvements"`
	Pricing      domain.Pricing `json:"pricing"`
}

// FixRequest is the body of POST /api/admin/fixes.
type FixRequest struct {
	Repository   string   `json:"repository"`
	Improvements []string `json:"improvements"`
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// NewAnalyzeResponse converts a result into its wire form.
func NewAnalyzeResponse(r *domain.AnalysisResult) AnalyzeResponse {
	return AnalyzeResponse{
		Name:         r.Name,
		Description:  r.Description,
		Language:     r.Language,
		Languages:    r.Languages,
		Stars:        r.Stars,
		Forks:        r.Forks,
		OpenIssues:   r.OpenIssues,
		LastUpdated:  r.LastUpdated,
		Issues:       r.Issues,
		Scores:       r.Scores(),
		Improvements: r.Improvements,
		Pricing:      r.Pricing,
	}
}

// Result converts the wire form back into an AnalysisResult.
func (a AnalyzeResponse) Result() *domain.AnalysisResult {
	issues := a.Issues
	if issues == nil {
		issues = []string{}
	}
	improvements := a.Improvements
	if improvements == nil {
		improvements = []string{}
	}
	return &domain.AnalysisResult{
		ID:            a.Name,
		Name:          a.Name,
		Description:   a.Description,
		Category:      domain.DefaultCategory,
		Language:      a.Language,
		Languages:     a.Languages,
		Stars:         a.Stars,
		Forks:         a.Forks,
		OpenIssues:    a.OpenIssues,
		LastUpdated:   a.LastUpdated,
		Issues:        issues,
		Improvements:  improvements,
		Pricing:       a.Pricing,
		SecurityScore: a.Scores.Security,
		CodeQuality:   a.Scores.CodeQuality,
		Documentation: a.Scores.Documentation,
	}
}
