// internal/matching/score.go
package matching

import (
	"fmt"
	"math"

	"venture-match/internal/models"
)

// Bonus thresholds: a bonus factor only contributes when it clears its threshold.
const (
	experienceBonusThreshold = 0.7
	locationBonusThreshold   = 0.8
	networkBonusThreshold    = 0.6

	experienceBonusWeight = 0.10
	locationBonusWeight   = 0.05
	networkBonusWeight    = 0.05

	highConfidenceScore   = 0.8
	mediumConfidenceScore = 0.6
)

// Weights is the relative importance of the four mandatory factors.
type Weights struct {
	Amount   float64
	Industry float64
	Stage    float64
	Risk     float64
}

func DefaultWeights() Weights {
	return Weights{
		Amount:   0.25,
		Industry: 0.35,
		Stage:    0.15,
		Risk:     0.25,
	}
}

func (w Weights) Sum() float64 {
	return w.Amount + w.Industry + w.Stage + w.Risk
}

// Validate checks that weights sum to 1.0 and none are negative.
func (w Weights) Validate() error {
	if math.Abs(w.Sum()-1.0) > 0.001 {
		return fmt.Errorf("weights sum to %.4f, must sum to 1.0", w.Sum())
	}
	for _, v := range []float64{w.Amount, w.Industry, w.Stage, w.Risk} {
		if v < 0 {
			return fmt.Errorf("negative weight: %f", v)
		}
	}
	return nil
}

// OverallScore combines the weighted factors with any earned bonuses and
// clamps the result to [0, 1].
func (w Weights) OverallScore(f models.MatchFactors) float64 {
	score := f.AmountCompatibility*w.Amount +
		f.IndustryAlignment*w.Industry +
		f.StagePreference*w.Stage +
		f.RiskAlignment*w.Risk

	if f.ExperienceMatch != nil && *f.ExperienceMatch > experienceBonusThreshold {
		score += *f.ExperienceMatch * experienceBonusWeight
	}
	if f.LocationProximity != nil && *f.LocationProximity > locationBonusThreshold {
		score += *f.LocationProximity * locationBonusWeight
	}
	if f.NetworkEffect != nil && *f.NetworkEffect > networkBonusThreshold {
		score += *f.NetworkEffect * networkBonusWeight
	}
	return clamp01(score)
}

// OverallScore scores factors with DefaultWeights.
func OverallScore(f models.MatchFactors) float64 {
	return DefaultWeights().OverallScore(f)
}

func ConfidenceLevel(score float64) models.Confidence {
	switch {
	case score >= highConfidenceScore:
		return models.ConfidenceHigh
	case score >= mediumConfidenceScore:
		return models.ConfidenceMedium
	default:
		return models.ConfidenceLow
	}
}

// Scorer computes MatchFactors for a candidate pair.
type Scorer struct {
	industries *IndustryTable
	stageMode  StageMode
	network    NetworkScorer
	weights    Weights
}

func NewScorer(industries *IndustryTable, stageMode StageMode, network NetworkScorer) *Scorer {
	if industries == nil {
		industries = NewIndustryTable(nil)
	}
	if network == nil {
		network = neutralNetwork{}
	}
	if stageMode == "" {
		stageMode = FirstPreferredStage
	}
	return &Scorer{
		industries: industries,
		stageMode:  stageMode,
		network:    network,
		weights:    DefaultWeights(),
	}
}

// Factors scores one idea/offer pair. Profiles may be nil; missing attributes
// fall back to NeutralScore.
func (s *Scorer) Factors(idea *models.BusinessIdea, offer *models.InvestmentOffer, creator, investor *models.UserProfile) models.MatchFactors {
	var (
		skills          []string
		experience      models.ExperienceLevel
		creatorLocation string
	)
	if creator != nil {
		skills = creator.Skills
		experience = creator.ExperienceLevel
		creatorLocation = creator.Location
	}

	var (
		tolerance        models.RiskTolerance
		investorLocation string
		geoPrefs         []string
	)
	if investor != nil {
		tolerance = investor.RiskTolerance
		investorLocation = investor.Location
		geoPrefs = investor.GeographicPreferences
	}

	experienceMatch := ExperienceMatch(experience)
	location := LocationProximity(creatorLocation, investorLocation, geoPrefs)
	network := clamp01(s.network.Score(creator, investor))

	return models.MatchFactors{
		AmountCompatibility: AmountCompatibility(idea.FundingGoal, offer.AmountRange),
		IndustryAlignment:   IndustryAlignment(s.industries, idea.Category, offer.PreferredIndustries, skills),
		StagePreference:     StagePreference(idea.Stage, offer.PreferredStages, s.stageMode),
		RiskAlignment:       RiskAlignment(idea.Stage, tolerance, experience),
		ExperienceMatch:     &experienceMatch,
		LocationProximity:   &location,
		NetworkEffect:       &network,
	}
}

func (s *Scorer) Score(f models.MatchFactors) float64 {
	return s.weights.OverallScore(f)
}
