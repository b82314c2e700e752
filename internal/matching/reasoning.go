// internal/matching/reasoning.go
package matching

import (
	"fmt"

	"venture-match/internal/models"
)

// Reasoning explains a match with one sentence per factor that clears its
// quality threshold, in factor declaration order.
func Reasoning(f models.MatchFactors, idea *models.BusinessIdea, offer *models.InvestmentOffer) []string {
	reasons := []string{}

	if f.AmountCompatibility > 0.8 {
		reasons = append(reasons, fmt.Sprintf(
			"Funding goal of $%.0f fits the investor's range of $%.0f to $%.0f.",
			idea.FundingGoal, offer.AmountRange.Min, offer.AmountRange.Max))
	}
	if f.IndustryAlignment > 0.8 {
		reasons = append(reasons, fmt.Sprintf(
			"The %s category aligns with the investor's preferred industries.", idea.Category))
	}
	if f.StagePreference > 0.8 {
		reasons = append(reasons, fmt.Sprintf(
			"The %s stage matches what the investor is looking for.", idea.Stage))
	}
	if f.RiskAlignment > 0.7 {
		reasons = append(reasons, "The investor's risk tolerance suits an idea at this stage.")
	}
	if f.ExperienceMatch != nil && *f.ExperienceMatch > 0.7 {
		reasons = append(reasons, "The creator's track record strengthens this opportunity.")
	}
	if f.LocationProximity != nil && *f.LocationProximity > 0.8 {
		reasons = append(reasons, "Creator and investor are located close to each other.")
	}

	if offer.PreferredEquity.Max > 0 && offer.PreferredEquity.Contains(idea.EquityOffered) {
		reasons = append(reasons, fmt.Sprintf(
			"Equity offered (%.1f%%) is within the investor's preferred range.", idea.EquityOffered))
	}

	return reasons
}
