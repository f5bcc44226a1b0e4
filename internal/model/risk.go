package model

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownRisk     = errors.New("unknown risk tolerance")
	ErrUnknownInterest = errors.New("unknown interest type")
)

// RiskTolerance selects the width of the uncertainty band around a projection.
type RiskTolerance string

const (
	// RiskConservative is the narrowest band.
	RiskConservative RiskTolerance = "Conservative"
	// RiskModerate is the middle band.
	RiskModerate RiskTolerance = "Moderate"
	// RiskHigh is the widest band.
	RiskHigh RiskTolerance = "High Risk"
)

// RiskTolerances lists every supported tolerance.
var RiskTolerances = []RiskTolerance{RiskConservative, RiskModerate, RiskHigh}

// ParseRiskTolerance accepts the display names and common shorthands.
func ParseRiskTolerance(s string) (RiskTolerance, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "conservative", "low":
		return RiskConservative, nil
	case "moderate", "medium":
		return RiskModerate, nil
	case "high", "high risk", "high-risk", "high_risk", "aggressive":
		return RiskHigh, nil
	default:
		return "", fmt.Errorf("%w %q", ErrUnknownRisk, s)
	}
}

// InterestType selects how growth is assumed.
type InterestType string

const (
	// InterestCompound compounds monthly.
	InterestCompound InterestType = "compound"
	// InterestSimple assumes no growth: contributions are straight-line.
	InterestSimple InterestType = "simple"
)

// ParseInterestType accepts "simple" or "compound"; empty means compound.
func ParseInterestType(s string) (InterestType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "compound":
		return InterestCompound, nil
	case "simple":
		return InterestSimple, nil
	default:
		return "", fmt.Errorf("%w %q", ErrUnknownInterest, s)
	}
}
