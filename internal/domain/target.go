package domain

import (
	"regexp"
	"strings"
)

// githubPathPattern captures the owner/repo segment that follows the host.
var githubPathPattern = regexp.MustCompile(`(?i)github\.com/([^/#?]+/[^/#?]+)`)

// Target names either a single repository or a user account.
type Target struct {
	Owner    string
	Repo     string
	Username string
}

// IsRepository reports whether the target names a single repository.
func (t Target) IsRepository() bool {
	return t.Repo != ""
}

// FullName returns owner/repo for repository targets.
func (t Target) FullName() string {
	return t.Owner + "/" + t.Repo
}

func (t Target) String() string {
	if t.IsRepository() {
		return t.FullName()
	}
	return t.Username
}

// ResolveTarget parses free-form input into a Target.
//
// Accepted forms are a github.com URL, "owner/repo" and a bare username.
// Anything else yields a *ValidationError.
func ResolveTarget(input string) (Target, error) {
	s := strings.TrimSpace(input)
	if s == "" {
		return Target{}, &ValidationError{Reason: "target is empty"}
	}
	if strings.Contains(s, "@") {
		return Target{}, &ValidationError{Input: s, Reason: "not a valid repository or user identifier"}
	}

	path := s
	if m := githubPathPattern.FindStringSubmatch(s); m != nil {
		path = strings.TrimSuffix(m[1], ".git")
	} else if strings.Contains(strings.ToLower(s), "github.com") {
		return Target{}, &ValidationError{Input: s, Reason: "url does not name a repository"}
	} else if !strings.Contains(s, "/") {
		return Target{Username: s}, nil
	}

	parts := strings.Split(path, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return Target{}, &ValidationError{Input: s, Reason: "use format owner/repo"}
	}
	return Target{Owner: parts[0], Repo: parts[1]}, nil
}
