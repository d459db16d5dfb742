package domain

import "math"

// Scores holds the three heuristic scores, each an integer in [0,100].
type Scores struct {
	Security      int `json:"securityScore"`
	CodeQuality   int `json:"codeQuality"`
	Documentation int `json:"documentation"`
}

const (
	securityBase        = 30
	securityIssueCredit = 20
	starCap             = 200
	starWeight          = 0.15

	qualityBase    = 40
	contributorCap = 30
	forkCap        = 200
	forkWeight     = 0.15

	documentationBase  = 30
	documentationBonus = 10
)

// CalculateScores derives the scores from facts. It is pure and deterministic.
//
//	security      = 30 + max(0, 20-openIssues) + min(stars, 200)*0.15
//	quality       = 40 + min(contributors, 30) + min(forks, 200)*0.15
//	documentation = 30 + 10 per present {wiki, description, pages}
func CalculateScores(f *RepositoryFacts) Scores {
	security := float64(securityBase) +
		float64(max(0, securityIssueCredit-f.OpenIssues)) +
		float64(min(max(f.Stars, 0), starCap))*starWeight

	quality := float64(qualityBase) +
		float64(min(max(f.ContributorCount, 0), contributorCap)) +
		float64(min(max(f.Forks, 0), forkCap))*forkWeight

	documentation := float64(documentationBase)
	if f.HasWiki {
		documentation += documentationBonus
	}
	if f.HasDescription() {
		documentation += documentationBonus
	}
	if f.HasPages {
		documentation += documentationBonus
	}

	return Scores{
		Security:      clampScore(security),
		CodeQuality:   clampScore(quality),
		Documentation: clampScore(documentation),
	}
}

func clampScore(v float64) int {
	return int(math.Max(0, math.Min(100, math.Round(v))))
}
