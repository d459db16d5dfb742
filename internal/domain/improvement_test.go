package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecommendImprovements(t *testing.T) {
	testCases := []struct {
		name     string
		facts    RepositoryFacts
		expected []string
	}{
		{
			name:  "bare repository triggers every rule except triage",
			facts: RepositoryFacts{},
			expected: []string{
				ImprovementWiki,
				ImprovementDownloads,
				ImprovementContributing,
				ImprovementLicense,
			},
		},
		{
			name: "healthy repository needs nothing",
			facts: RepositoryFacts{
				HasWiki:          true,
				HasDownloads:     true,
				OpenIssues:       25,
				ContributorCount: 3,
				License:          strPtr("MIT"),
			},
			expected: []string{},
		},
		{
			name: "issue backlog above threshold",
			facts: RepositoryFacts{
				HasWiki:          true,
				HasDownloads:     true,
				OpenIssues:       26,
				ContributorCount: 10,
				License:          strPtr("Apache-2.0"),
			},
			expected: []string{ImprovementTriage},
		},
		{
			name: "evaluation order is preserved",
			facts: RepositoryFacts{
				OpenIssues:       100,
				ContributorCount: 1,
				License:          strPtr(""),
			},
			expected: []string{
				ImprovementWiki,
				ImprovementDownloads,
				ImprovementTriage,
				ImprovementContributing,
				ImprovementLicense,
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, RecommendImprovements(&tc.facts))
		})
	}
}
