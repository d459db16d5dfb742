package usecase

import (
	"context"
	"log"

	"github.com/naka-gawa/repo-detective/internal/domain"
)

const maxFixesPerRun = 5

// ErrFixNotImplemented is reported for every fix request.
const ErrFixNotImplemented = "Fix functionality not implemented"

// FixResult reports the outcome of a fix run.
type FixResult struct {
	Success      bool     `json:"success"`
	AppliedFixes []string `json:"appliedFixes"`
	Errors       []string `json:"errors"`
}

// Fixer is the admin "apply fixes" use case. Nothing is ever applied to a
// repository; every run reports ErrFixNotImplemented.
type Fixer struct {
	logger *log.Logger
}

// NewFixer creates a new Fixer instance.
func NewFixer(logger *log.Logger) *Fixer {
	return &Fixer{logger: logger}
}

// ApplyFixes validates the repository name and reports that no fix was applied.
func (f *Fixer) ApplyFixes(ctx context.Context, repoFullName string, improvements []string) (*FixResult, error) {
	target, err := domain.ResolveTarget(repoFullName)
	if err != nil {
		return nil, err
	}
	if !target.IsRepository() {
		return nil, &domain.ValidationError{Input: repoFullName, Reason: "use format owner/repo"}
	}

	requested := improvements
	if len(requested) > maxFixesPerRun {
		requested = requested[:maxFixesPerRun]
	}
	f.logger.Printf("Usecase: Fix run requested for %s with %d improvements.", target.FullName(), len(requested))

	return &FixResult{
		Success:      false,
		AppliedFixes: []string{},
		Errors:       []string{ErrFixNotImplemented},
	}, nil
}
