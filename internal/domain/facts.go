// Package domain contains the core data structures and domain logic for the application.
package domain

import (
	"strings"
	"time"
)

// RepositoryFacts holds the raw metadata fetched for a single repository.
// A value lives for one request and is discarded once mapped.
type RepositoryFacts struct {
	Owner            string
	Name             string
	Description      *string
	Stars            int
	Forks            int
	OpenIssues       int
	Languages        []string
	PrimaryLanguage  string
	ContributorCount int
	HasWiki          bool
	HasPages         bool
	HasDownloads     bool
	License          *string
	UpdatedAt        time.Time
}

// FullName returns owner/name.
func (f *RepositoryFacts) FullName() string {
	return f.Owner + "/" + f.Name
}

// HasDescription reports whether a non-blank description is present.
func (f *RepositoryFacts) HasDescription() bool {
	return f.Description != nil && strings.TrimSpace(*f.Description) != ""
}

// HasLicense reports whether a license identifier is present.
func (f *RepositoryFacts) HasLicense() bool {
	return f.License != nil && *f.License != ""
}

