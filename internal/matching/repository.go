// internal/matching/repository.go
package matching

import (
	"sync"

	"venture-match/internal/models"
)

// Repository holds the loaded catalog. Loads are idempotent upserts keyed by
// id; iteration follows first-load order.
type Repository struct {
	mu sync.RWMutex

	profiles map[string]*models.UserProfile

	ideas     map[string]*models.BusinessIdea
	ideaOrder []string

	offers     map[string]*models.InvestmentOffer
	offerOrder []string
}

func NewRepository() *Repository {
	return &Repository{
		profiles: make(map[string]*models.UserProfile),
		ideas:    make(map[string]*models.BusinessIdea),
		offers:   make(map[string]*models.InvestmentOffer),
	}
}

// LoadProfiles upserts profiles and returns how many were stored.
func (r *Repository) LoadProfiles(profiles []models.UserProfile) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := 0
	for i := range profiles {
		p := profiles[i]
		if p.ID == "" {
			continue
		}
		r.profiles[p.ID] = &p
		stored++
	}
	return stored
}

// LoadIdeas upserts published ideas. A non-published record is not stored and
// evicts any earlier version with the same id.
func (r *Repository) LoadIdeas(ideas []models.BusinessIdea) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := 0
	for i := range ideas {
		idea := ideas[i]
		if idea.ID == "" {
			continue
		}
		if !idea.IsPublished() {
			delete(r.ideas, idea.ID)
			continue
		}
		if _, exists := r.ideas[idea.ID]; !exists {
			r.ideaOrder = append(r.ideaOrder, idea.ID)
		}
		r.ideas[idea.ID] = &idea
		stored++
	}
	r.ideaOrder = compactOrder(r.ideaOrder, func(id string) bool {
		_, ok := r.ideas[id]
		return ok
	})
	return stored
}

// LoadOffers upserts active offers. An inactive record is not stored and
// evicts any earlier version with the same id.
func (r *Repository) LoadOffers(offers []models.InvestmentOffer) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := 0
	for i := range offers {
		offer := offers[i]
		if offer.ID == "" {
			continue
		}
		if !offer.IsActive {
			delete(r.offers, offer.ID)
			continue
		}
		if _, exists := r.offers[offer.ID]; !exists {
			r.offerOrder = append(r.offerOrder, offer.ID)
		}
		r.offers[offer.ID] = &offer
		stored++
	}
	r.offerOrder = compactOrder(r.offerOrder, func(id string) bool {
		_, ok := r.offers[id]
		return ok
	})
	return stored
}

func (r *Repository) Profile(id string) (*models.UserProfile, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.profiles[id]
	return p, ok
}

// PublishedIdeas returns every stored idea in load order.
func (r *Repository) PublishedIdeas() []*models.BusinessIdea {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*models.BusinessIdea, 0, len(r.ideaOrder))
	for _, id := range r.ideaOrder {
		out = append(out, r.ideas[id])
	}
	return out
}

// ActiveOffers returns every stored offer in load order.
func (r *Repository) ActiveOffers() []*models.InvestmentOffer {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*models.InvestmentOffer, 0, len(r.offerOrder))
	for _, id := range r.offerOrder {
		out = append(out, r.offers[id])
	}
	return out
}

func (r *Repository) IdeasByCreator(creatorID string) []*models.BusinessIdea {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*models.BusinessIdea
	for _, id := range r.ideaOrder {
		if idea := r.ideas[id]; idea.CreatorID == creatorID {
			out = append(out, idea)
		}
	}
	return out
}

func (r *Repository) OffersByInvestor(investorID string) []*models.InvestmentOffer {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*models.InvestmentOffer
	for _, id := range r.offerOrder {
		if offer := r.offers[id]; offer.InvestorID == investorID {
			out = append(out, offer)
		}
	}
	return out
}

// Counts returns the number of stored profiles, ideas and offers.
func (r *Repository) Counts() (profiles, ideas, offers int) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.profiles), len(r.ideas), len(r.offers)
}

func compactOrder(order []string, keep func(string) bool) []string {
	out := order[:0]
	for _, id := range order {
		if keep(id) {
			out = append(out, id)
		}
	}
	return out
}
