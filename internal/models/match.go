// internal/models/match.go
package models

import "time"

type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// MatchFactors holds the four weighted factor scores and the optional bonus
// scores. A nil bonus means it was not computed for the pair.
type MatchFactors struct {
	AmountCompatibility float64  `json:"amountCompatibility"`
	IndustryAlignment   float64  `json:"industryAlignment"`
	StagePreference     float64  `json:"stagePreference"`
	RiskAlignment       float64  `json:"riskAlignment"`
	ExperienceMatch     *float64 `json:"experienceMatch,omitempty"`
	LocationProximity   *float64 `json:"locationProximity,omitempty"`
	NetworkEffect       *float64 `json:"networkEffect,omitempty"`
}

type MatchResult struct {
	ID         string       `json:"id"`
	IdeaID     string       `json:"ideaId"`
	InvestorID string       `json:"investorId"`
	CreatorID  string       `json:"creatorId"`
	OfferID    string       `json:"offerId"`
	MatchScore float64      `json:"matchScore"`
	Factors    MatchFactors `json:"matchFactors"`
	Confidence Confidence   `json:"confidence"`
	Reasoning  []string     `json:"reasoning"`
	CreatedAt  time.Time    `json:"createdAt"`
}

// Clone returns a copy that shares no memory with r.
func (r MatchResult) Clone() MatchResult {
	c := r
	c.Factors.ExperienceMatch = cloneFloat(r.Factors.ExperienceMatch)
	c.Factors.LocationProximity = cloneFloat(r.Factors.LocationProximity)
	c.Factors.NetworkEffect = cloneFloat(r.Factors.NetworkEffect)
	if r.Reasoning != nil {
		c.Reasoning = append(make([]string, 0, len(r.Reasoning)), r.Reasoning...)
	}
	return c
}

func cloneFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	out := *v
	return &out
}

type FactorAverage struct {
	Factor  string  `json:"factor"`
	Average float64 `json:"average"`
}

type MatchStatistics struct {
	TotalMatches     int             `json:"totalMatches"`
	HighConfidence   int             `json:"highConfidence"`
	MediumConfidence int             `json:"mediumConfidence"`
	LowConfidence    int             `json:"lowConfidence"`
	AverageScore     float64         `json:"averageScore"`
	TopFactors       []FactorAverage `json:"topFactors"`
	Suggestions      []string        `json:"suggestions"`
}
