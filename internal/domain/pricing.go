package domain

import "github.com/montanaflynn/stats"

// Pricing is a static per-tier quote. It is not backed by a pricing engine.
type Pricing struct {
	Basic      int `json:"basic"`
	Premium    int `json:"premium"`
	Enterprise int `json:"enterprise"`
}

// DerivePricing picks a base price from the mean score: lower scores need
// more work and cost more.
func DerivePricing(s Scores) Pricing {
	mean, err := stats.Mean([]float64{
		float64(s.Security),
		float64(s.CodeQuality),
		float64(s.Documentation),
	})
	if err != nil {
		mean = 0
	}

	base := 75
	switch {
	case mean < 50:
		base = 150
	case mean < 70:
		base = 100
	}
	return Pricing{Basic: base, Premium: base * 2, Enterprise: base * 4}
}
