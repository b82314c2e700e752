// internal/matching/engine.go
package matching

import (
	"context"
	"time"

	"venture-match/internal/common/logger"
	"venture-match/internal/models"
)

// Engine owns the repository and the result cache. It is constructed and torn
// down by the host: Start launches the cache sweep and Close stops it.
type Engine struct {
	config *Config
	repo   *Repository
	scorer *Scorer
	cache  *Cache
	now    func() time.Time
	logger logger.Logger
}

type Option func(*engineOptions)

type engineOptions struct {
	store   Store
	now     func() time.Time
	network NetworkScorer
	weights *Weights
}

// WithStore replaces the default in-memory result store.
func WithStore(store Store) Option {
	return func(o *engineOptions) { o.store = store }
}

// WithClock overrides time.Now for result timestamps and cache expiry.
func WithClock(now func() time.Time) Option {
	return func(o *engineOptions) { o.now = now }
}

func WithNetworkScorer(n NetworkScorer) Option {
	return func(o *engineOptions) { o.network = n }
}

// WithWeights replaces DefaultWeights. Weights that fail Validate are ignored.
func WithWeights(w Weights) Option {
	return func(o *engineOptions) { o.weights = &w }
}

func NewEngine(config *Config, log logger.Logger, opts ...Option) *Engine {
	if config == nil {
		config = LoadConfig()
	}
	o := &engineOptions{now: time.Now}
	for _, opt := range opts {
		opt(o)
	}
	if o.store == nil {
		o.store = NewMemoryStore()
	}

	log = log.WithFields(map[string]interface{}{"component": "matching-engine"})
	scorer := NewScorer(NewIndustryTable(config.IndustryCompatibility), config.StageMode, o.network)
	if o.weights != nil {
		if err := o.weights.Validate(); err != nil {
			log.Warn("ignoring invalid factor weights", map[string]interface{}{"error": err.Error()})
		} else {
			scorer.weights = *o.weights
		}
	}

	return &Engine{
		config: config,
		repo:   NewRepository(),
		scorer: scorer,
		cache:  NewCache(o.store, config.CacheTTL, config.SweepInterval, o.now, log),
		now:    o.now,
		logger: log,
	}
}

func (e *Engine) Start(ctx context.Context) {
	e.cache.Start(ctx)
	e.logger.Info("matching engine started", map[string]interface{}{
		"cacheTtl":      e.config.CacheTTL.String(),
		"sweepInterval": e.config.SweepInterval.String(),
	})
}

func (e *Engine) Close() {
	e.cache.Stop()
	e.logger.Info("matching engine stopped", nil)
}

func (e *Engine) LoadUserProfiles(profiles []models.UserProfile) int {
	n := e.repo.LoadProfiles(profiles)
	e.logger.Info("profiles loaded", map[string]interface{}{"received": len(profiles), "stored": n})
	return n
}

func (e *Engine) LoadBusinessIdeas(ideas []models.BusinessIdea) int {
	n := e.repo.LoadIdeas(ideas)
	e.logger.Info("ideas loaded", map[string]interface{}{"received": len(ideas), "stored": n})
	return n
}

func (e *Engine) LoadInvestmentOffers(offers []models.InvestmentOffer) int {
	n := e.repo.LoadOffers(offers)
	e.logger.Info("offers loaded", map[string]interface{}{"received": len(offers), "stored": n})
	return n
}

// FindMatches returns the actor's best matches, served from cache while fresh.
// An unknown actor or role yields an empty slice. The only error is a context
// that is already done.
func (e *Engine) FindMatches(ctx context.Context, userID string, role models.Role, limit int) ([]models.MatchResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	role = models.ParseRole(string(role))
	if limit <= 0 {
		limit = e.config.DefaultLimit
	}

	results, hit := e.cache.GetOrCompute(ctx, cacheKey(userID, role, limit), func() []models.MatchResult {
		return e.search(userID, role, limit)
	})
	e.logger.Debug("find matches", map[string]interface{}{
		"userId":   userID,
		"role":     role,
		"limit":    limit,
		"count":    len(results),
		"cacheHit": hit,
	})
	return results, nil
}

// GetMatchStatistics summarizes the actor's matches.
func (e *Engine) GetMatchStatistics(ctx context.Context, userID string, role models.Role) (*models.MatchStatistics, error) {
	matches, err := e.FindMatches(ctx, userID, role, e.config.StatisticsLimit)
	if err != nil {
		return nil, err
	}
	return BuildStatistics(matches), nil
}

// InvalidateCache drops every cached result. Loads never call it implicitly.
func (e *Engine) InvalidateCache(ctx context.Context) error {
	if err := e.cache.Clear(ctx); err != nil {
		return err
	}
	e.logger.Info("match cache invalidated", nil)
	return nil
}

// SweepCache removes expired cache entries immediately.
func (e *Engine) SweepCache(ctx context.Context) int {
	return e.cache.Sweep(ctx)
}

func (e *Engine) Counts() (profiles, ideas, offers int) {
	return e.repo.Counts()
}
