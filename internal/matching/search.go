// internal/matching/search.go
package matching

import (
	"sort"
	"time"

	"venture-match/internal/common/metrics"
	"venture-match/internal/models"

	"github.com/google/uuid"
)

var matchNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("venture-match/match-result"))

// search scores every candidate pair for the actor, keeps pairs at or above
// the minimum score and returns the best limit results.
func (e *Engine) search(actorID string, role models.Role, limit int) []models.MatchResult {
	start := time.Now()
	results := []models.MatchResult{}

	if _, ok := e.repo.Profile(actorID); !ok {
		e.logger.Debug("actor profile not found", map[string]interface{}{
			"actorId": actorID,
			"role":    role,
		})
		return results
	}

	now := e.now()
	candidates := 0

	switch role {
	case models.RoleCreator:
		creator, _ := e.repo.Profile(actorID)
		offers := e.repo.ActiveOffers()
		for _, idea := range e.repo.IdeasByCreator(actorID) {
			for _, offer := range offers {
				investor, ok := e.repo.Profile(offer.InvestorID)
				if !ok {
					continue
				}
				candidates++
				if m, ok := e.evaluate(idea, offer, creator, investor, now); ok {
					results = append(results, m)
				}
			}
		}
	case models.RoleInvestor:
		investor, _ := e.repo.Profile(actorID)
		ideas := e.repo.PublishedIdeas()
		for _, offer := range e.repo.OffersByInvestor(actorID) {
			for _, idea := range ideas {
				creator, ok := e.repo.Profile(idea.CreatorID)
				if !ok {
					continue
				}
				candidates++
				if m, ok := e.evaluate(idea, offer, creator, investor, now); ok {
					results = append(results, m)
				}
			}
		}
	default:
		e.logger.Warn("unknown actor role", map[string]interface{}{
			"actorId": actorID,
			"role":    role,
		})
		return results
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].MatchScore != results[j].MatchScore {
			return results[i].MatchScore > results[j].MatchScore
		}
		if results[i].IdeaID != results[j].IdeaID {
			return results[i].IdeaID < results[j].IdeaID
		}
		return results[i].OfferID < results[j].OfferID
	})

	accepted := len(results)
	if len(results) > limit {
		results = results[:limit]
	}

	metrics.MatchSearches.WithLabelValues(string(role)).Inc()
	metrics.MatchSearchDuration.WithLabelValues(string(role)).Observe(time.Since(start).Seconds())

	e.logger.Debug("match search completed", map[string]interface{}{
		"actorId":    actorID,
		"role":       role,
		"candidates": candidates,
		"accepted":   accepted,
		"returned":   len(results),
		"durationMs": time.Since(start).Milliseconds(),
	})

	return results
}

func (e *Engine) evaluate(idea *models.BusinessIdea, offer *models.InvestmentOffer, creator, investor *models.UserProfile, now time.Time) (models.MatchResult, bool) {
	factors := e.scorer.Factors(idea, offer, creator, investor)
	score := e.scorer.Score(factors)
	if score < e.config.MinMatchScore {
		return models.MatchResult{}, false
	}
	metrics.MatchScores.Observe(score)

	return models.MatchResult{
		ID:         uuid.NewSHA1(matchNamespace, []byte(idea.ID+":"+offer.ID)).String(),
		IdeaID:     idea.ID,
		InvestorID: offer.InvestorID,
		CreatorID:  idea.CreatorID,
		OfferID:    offer.ID,
		MatchScore: score,
		Factors:    factors,
		Confidence: ConfidenceLevel(score),
		Reasoning:  Reasoning(factors, idea, offer),
		CreatedAt:  now,
	}, true
}
