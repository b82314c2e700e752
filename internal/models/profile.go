// internal/models/profile.go
package models

import "strings"

type Role string

const (
	RoleCreator  Role = "creator"
	RoleInvestor Role = "investor"
)

func (r Role) IsValid() bool {
	return r == RoleCreator || r == RoleInvestor
}

// ParseRole normalizes case and whitespace. Unknown values are returned as-is.
func ParseRole(s string) Role {
	return Role(strings.ToLower(strings.TrimSpace(s)))
}

type RiskTolerance string

const (
	RiskLow    RiskTolerance = "low"
	RiskMedium RiskTolerance = "medium"
	RiskHigh   RiskTolerance = "high"
)

func (r RiskTolerance) IsValid() bool {
	switch r {
	case RiskLow, RiskMedium, RiskHigh:
		return true
	}
	return false
}

func ParseRiskTolerance(s string) RiskTolerance {
	return RiskTolerance(strings.ToLower(strings.TrimSpace(s)))
}

type ExperienceLevel string

const (
	ExperienceBeginner     ExperienceLevel = "beginner"
	ExperienceIntermediate ExperienceLevel = "intermediate"
	ExperienceExperienced  ExperienceLevel = "experienced"
	ExperienceSerial       ExperienceLevel = "serial"
)

func (e ExperienceLevel) IsValid() bool {
	switch e {
	case ExperienceBeginner, ExperienceIntermediate, ExperienceExperienced, ExperienceSerial:
		return true
	}
	return false
}

func ParseExperienceLevel(s string) ExperienceLevel {
	return ExperienceLevel(strings.ToLower(strings.TrimSpace(s)))
}

// Range is an inclusive numeric interval. Min <= Max is expected but not enforced.
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// UserProfile carries both creator and investor attributes; which ones are
// populated depends on UserType.
type UserProfile struct {
	ID       string `json:"id"`
	UserType Role   `json:"userType"`
	Name     string `json:"name,omitempty"`

	// creator
	Company         string          `json:"company,omitempty"`
	Industry        string          `json:"industry,omitempty"`
	ExperienceLevel ExperienceLevel `json:"experienceLevel,omitempty"`

	// investor
	InvestmentRange       *Range        `json:"investmentRange,omitempty"`
	PreferredIndustries   []string      `json:"preferredIndustries,omitempty"`
	RiskTolerance         RiskTolerance `json:"riskTolerance,omitempty"`
	GeographicPreferences []string      `json:"geographicPreferences,omitempty"`

	Skills   []string `json:"skills,omitempty"`
	Location string   `json:"location,omitempty"`
}
