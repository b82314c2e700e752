// internal/matching/statistics.go
package matching

import (
	"sort"

	"venture-match/internal/models"
)

const (
	lowAverageScore   = 0.6
	weakMatchScore    = 0.5
	weakMatchMaxShare = 0.3
)

const (
	suggestBroadenIndustries = "Consider broadening your industry preferences to reach more potential partners."
	suggestReviewFunding     = "Review your funding goals so they line up with typical investment ranges."
	suggestEnrichProfile     = "Add more detail to your profile, such as skills and location, to improve match quality."
)

// BuildStatistics aggregates a match list. An empty list yields zeroed
// statistics rather than NaN averages.
func BuildStatistics(matches []models.MatchResult) *models.MatchStatistics {
	stats := &models.MatchStatistics{
		TopFactors:  []models.FactorAverage{},
		Suggestions: []string{},
	}
	if len(matches) == 0 {
		return stats
	}

	stats.TotalMatches = len(matches)

	var (
		scoreSum float64
		weak     int
	)
	sums := newFactorSums()
	for _, m := range matches {
		switch m.Confidence {
		case models.ConfidenceHigh:
			stats.HighConfidence++
		case models.ConfidenceMedium:
			stats.MediumConfidence++
		default:
			stats.LowConfidence++
		}
		scoreSum += m.MatchScore
		if m.MatchScore < weakMatchScore {
			weak++
		}
		sums.add(m.Factors)
	}

	stats.AverageScore = scoreSum / float64(len(matches))
	stats.TopFactors = sums.averages()

	if stats.AverageScore < lowAverageScore {
		stats.Suggestions = append(stats.Suggestions, suggestBroadenIndustries, suggestReviewFunding)
	}
	if float64(weak)/float64(len(matches)) > weakMatchMaxShare {
		stats.Suggestions = append(stats.Suggestions, suggestEnrichProfile)
	}

	return stats
}

var factorNames = []string{
	"amountCompatibility",
	"industryAlignment",
	"stagePreference",
	"riskAlignment",
	"experienceMatch",
	"locationProximity",
	"networkEffect",
}

type factorSums struct {
	sum   map[string]float64
	count map[string]int
}

func newFactorSums() *factorSums {
	return &factorSums{sum: make(map[string]float64), count: make(map[string]int)}
}

func (s *factorSums) add(f models.MatchFactors) {
	s.observe("amountCompatibility", &f.AmountCompatibility)
	s.observe("industryAlignment", &f.IndustryAlignment)
	s.observe("stagePreference", &f.StagePreference)
	s.observe("riskAlignment", &f.RiskAlignment)
	s.observe("experienceMatch", f.ExperienceMatch)
	s.observe("locationProximity", f.LocationProximity)
	s.observe("networkEffect", f.NetworkEffect)
}

func (s *factorSums) observe(name string, v *float64) {
	if v == nil {
		return
	}
	s.sum[name] += *v
	s.count[name]++
}

// averages returns per-factor means ranked descending; ties keep declaration order.
func (s *factorSums) averages() []models.FactorAverage {
	out := make([]models.FactorAverage, 0, len(factorNames))
	for _, name := range factorNames {
		if n := s.count[name]; n > 0 {
			out = append(out, models.FactorAverage{Factor: name, Average: s.sum[name] / float64(n)})
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Average > out[j].Average
	})
	return out
}
