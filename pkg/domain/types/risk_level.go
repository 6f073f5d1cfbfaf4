package types

import (
	"fmt"
	"strings"
)

// RiskLevel represents a triage risk classification
type RiskLevel string

const (
	RiskLow    RiskLevel = "Low"
	RiskMedium RiskLevel = "Medium"
	RiskHigh   RiskLevel = "High"
)

// AllRiskLevels returns all valid risk levels
func AllRiskLevels() []RiskLevel {
	return []RiskLevel{
		RiskLow,
		RiskMedium,
		RiskHigh,
	}
}

// IsValid checks if the risk level is valid
func (r RiskLevel) IsValid() bool {
	switch r {
	case RiskLow, RiskMedium, RiskHigh:
		return true
	default:
		return false
	}
}

// String returns the string representation of the risk level
func (r RiskLevel) String() string {
	return string(r)
}

// ParseRiskLevel parses a string into a RiskLevel. Matching is
// case-insensitive because model output casing drifts.
func ParseRiskLevel(s string) (RiskLevel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low":
		return RiskLow, nil
	case "medium":
		return RiskMedium, nil
	case "high":
		return RiskHigh, nil
	default:
		return "", fmt.Errorf("invalid risk level: %s", s)
	}
}
