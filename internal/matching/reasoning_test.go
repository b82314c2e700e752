// internal/matching/reasoning_test.go
package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"venture-match/internal/models"
)

func TestReasoning(t *testing.T) {
	idea := &models.BusinessIdea{Category: "Fintech", FundingGoal: 250000, EquityOffered: 12, Stage: models.StageMVP}
	offer := &models.InvestmentOffer{
		AmountRange:     models.Range{Min: 100000, Max: 500000},
		PreferredEquity: models.Range{Min: 5, Max: 20},
	}

	t.Run("every factor clears its threshold", func(t *testing.T) {
		f := models.MatchFactors{
			AmountCompatibility: 1.0,
			IndustryAlignment:   0.9,
			StagePreference:     1.0,
			RiskAlignment:       0.8,
			ExperienceMatch:     ptr(0.85),
			LocationProximity:   ptr(0.9),
		}

		assert.Equal(t, []string{
			"Funding goal of $250000 fits the investor's range of $100000 to $500000.",
			"The Fintech category aligns with the investor's preferred industries.",
			"The mvp stage matches what the investor is looking for.",
			"The investor's risk tolerance suits an idea at this stage.",
			"The creator's track record strengthens this opportunity.",
			"Creator and investor are located close to each other.",
			"Equity offered (12.0%) is within the investor's preferred range.",
		}, Reasoning(f, idea, offer))
	})

	t.Run("thresholds are exclusive", func(t *testing.T) {
		f := models.MatchFactors{
			AmountCompatibility: 0.8,
			IndustryAlignment:   0.8,
			StagePreference:     0.8,
			RiskAlignment:       0.7,
			ExperienceMatch:     ptr(0.7),
			LocationProximity:   ptr(0.8),
		}
		noEquity := &models.InvestmentOffer{AmountRange: offer.AmountRange}

		got := Reasoning(f, idea, noEquity)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("missing bonuses contribute nothing", func(t *testing.T) {
		f := models.MatchFactors{RiskAlignment: 0.9}
		outside := &models.InvestmentOffer{PreferredEquity: models.Range{Min: 20, Max: 30}}

		assert.Equal(t, []string{"The investor's risk tolerance suits an idea at this stage."},
			Reasoning(f, idea, outside))
	})
}
