package service

import (
	"fmt"
	"math/rand"

	"trustdesk/internal/domain"
)

// RiskScore holds one computed evaluation. Severity and report are derived
// once, at creation time, and never recomputed.
type RiskScore struct {
	Impact     float64
	Likelihood float64
	Severity   string
	Report     string
}

// RiskScorer draws impact and likelihood from a seedable source so scenario
// tests can assert exact output.
type RiskScorer struct {
	rng *rand.Rand
}

func NewRiskScorer(rng *rand.Rand) *RiskScorer {
	return &RiskScorer{rng: rng}
}

// Score draws impact and likelihood independently and uniformly over [0, 10).
func (s *RiskScorer) Score() RiskScore {
	impact := s.rng.Float64() * 10
	likelihood := s.rng.Float64() * 10
	severity := DeriveSeverity(impact, likelihood)
	return RiskScore{
		Impact:     impact,
		Likelihood: likelihood,
		Severity:   severity,
		Report:     fmt.Sprintf("Risk Assessment Report: Impact - %v, Likelihood - %v, Severity - %s", impact, likelihood, severity),
	}
}

// DeriveSeverity classifies a score: High only when impact*likelihood is
// strictly above the threshold, so a product of exactly 50 is Low.
func DeriveSeverity(impact, likelihood float64) string {
	if impact*likelihood > domain.SeverityThreshold {
		return domain.SeverityHigh
	}
	return domain.SeverityLow
}
