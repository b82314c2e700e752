// internal/matching/factors.go
package matching

import (
	"strings"

	"venture-match/internal/models"
)

// NeutralScore is returned by a factor whose required inputs are missing or
// unrecognized.
const NeutralScore = 0.5

// StageMode selects how a multi-entry stage preference is scored when the
// idea's stage is not in the set.
type StageMode string

const (
	// FirstPreferredStage consults only the first preferred stage.
	FirstPreferredStage StageMode = "first"
	// BestPreferredStage takes the best adjacency across all preferred stages.
	BestPreferredStage StageMode = "best"
)

// NetworkScorer scores the existing relationship between a creator and an
// investor.
type NetworkScorer interface {
	Score(creator, investor *models.UserProfile) float64
}

type neutralNetwork struct{}

func (neutralNetwork) Score(_, _ *models.UserProfile) float64 { return NeutralScore }

// AmountCompatibility scores a funding goal against an offer's amount range.
// Callers must pass goal >= 0.
func AmountCompatibility(goal float64, r models.Range) float64 {
	if r.Contains(goal) {
		return 1.0
	}
	if goal < r.Min {
		if r.Min <= 0 {
			return 0
		}
		return minFloat(1.0, goal/r.Min*1.2)
	}
	if r.Max <= 0 {
		return 0.1
	}
	ratio := goal / r.Max
	switch {
	case ratio <= 1.5:
		return 0.8
	case ratio <= 2.0:
		return 0.5
	default:
		return 0.1
	}
}

// IndustryAlignment returns 0.8 for an investor open to any industry, otherwise
// the best signal across preferred industries: direct substring match (1.0),
// industry table adjacency, or a creator skill in the industry (0.9).
func IndustryAlignment(table *IndustryTable, category string, preferred, skills []string) float64 {
	prefs := nonBlank(preferred)
	if len(prefs) == 0 {
		return 0.8
	}

	cat := normalize(category)
	best := 0.0
	for _, industry := range prefs {
		score := 0.0
		if cat != "" && containsEither(cat, industry) {
			score = 1.0
		}
		if table != nil {
			if v, ok := table.Lookup(cat, industry); ok && v > score {
				score = v
			}
		}
		if score < 0.9 {
			for _, skill := range skills {
				s := normalize(skill)
				if s != "" && containsEither(s, industry) {
					score = 0.9
					break
				}
			}
		}
		if score > best {
			best = score
		}
	}
	return best
}

// StagePreference returns 0.8 with no preference and 1.0 on membership.
// Otherwise it consults the adjacency table, defaulting to NeutralScore for
// unrecognized stages.
func StagePreference(stage models.Stage, preferred []models.Stage, mode StageMode) float64 {
	if len(preferred) == 0 {
		return 0.8
	}
	stage = models.ParseStage(string(stage))
	for _, p := range preferred {
		if models.ParseStage(string(p)) == stage {
			return 1.0
		}
	}

	if mode != BestPreferredStage {
		return stageAdjacencyScore(stage, preferred[0])
	}
	best := 0.0
	for _, p := range preferred {
		if v := stageAdjacencyScore(stage, p); v > best {
			best = v
		}
	}
	return best
}

func stageAdjacencyScore(stage, preferred models.Stage) float64 {
	row, ok := stageAdjacency[models.ParseStage(string(stage))]
	if !ok {
		return NeutralScore
	}
	v, ok := row[models.ParseStage(string(preferred))]
	if !ok {
		return NeutralScore
	}
	return v
}

// RiskAlignment looks up the stage x tolerance table and adds 0.2 (capped at
// 1.0) for concept/mvp ideas led by experienced or serial founders.
func RiskAlignment(stage models.Stage, tolerance models.RiskTolerance, experience models.ExperienceLevel) float64 {
	stage = models.ParseStage(string(stage))
	row, ok := riskByStage[stage]
	if !ok {
		return NeutralScore
	}
	score, ok := row[models.ParseRiskTolerance(string(tolerance))]
	if !ok {
		return NeutralScore
	}

	exp := models.ParseExperienceLevel(string(experience))
	if (stage == models.StageConcept || stage == models.StageMVP) &&
		(exp == models.ExperienceExperienced || exp == models.ExperienceSerial) {
		score = minFloat(1.0, score+0.2)
	}
	return score
}

func ExperienceMatch(level models.ExperienceLevel) float64 {
	if score, ok := experienceScores[models.ParseExperienceLevel(string(level))]; ok {
		return score
	}
	return NeutralScore
}

// LocationProximity compares the creator's location with the investor's
// explicit geographic preferences, or with the investor's own location when
// no preference is declared.
func LocationProximity(creatorLocation, investorLocation string, preferences []string) float64 {
	creator := normalize(creatorLocation)
	if creator == "" {
		return NeutralScore
	}

	if prefs := nonBlank(preferences); len(prefs) > 0 {
		for _, p := range prefs {
			if containsEither(creator, p) {
				return 1.0
			}
		}
		return 0.3
	}

	investor := normalize(investorLocation)
	if investor == "" {
		return NeutralScore
	}
	if creator == investor {
		return 1.0
	}
	if r := regionOf(creator); r != "" && r == regionOf(investor) {
		return 0.9
	}
	return 0.6
}

// nonBlank returns the normalized, non-empty entries.
func nonBlank(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if n := normalize(v); n != "" {
			out = append(out, n)
		}
	}
	return out
}

func containsEither(a, b string) bool {
	return strings.Contains(a, b) || strings.Contains(b, a)
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
