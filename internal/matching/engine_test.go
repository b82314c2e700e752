// internal/matching/engine_test.go
package matching

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"venture-match/internal/common/config"
	"venture-match/internal/common/logger"
	"venture-match/internal/models"
)

// ==========================
// Test Helper Functions
// ==========================

type testLogger struct {
	t *testing.T
}

func (tl *testLogger) Debug(msg string, fields map[string]interface{}) {
	tl.t.Logf("DEBUG: %s %v", msg, fields)
}

func (tl *testLogger) Info(msg string, fields map[string]interface{}) {
	tl.t.Logf("INFO: %s %v", msg, fields)
}

func (tl *testLogger) Warn(msg string, fields map[string]interface{}) {
	tl.t.Logf("WARN: %s %v", msg, fields)
}

func (tl *testLogger) Error(msg string, fields map[string]interface{}) {
	tl.t.Logf("ERROR: %s %v", msg, fields)
}

func (tl *testLogger) WithFields(fields map[string]interface{}) logger.Logger {
	return tl
}

func (tl *testLogger) WithError(err error) logger.Logger {
	return tl
}

func (tl *testLogger) With(fields map[string]interface{}) logger.Logger {
	return tl
}

func newTestLogger(t *testing.T) logger.Logger {
	return &testLogger{t: t}
}

// ==========================
// Engine Tests
// ==========================

func TestEngine_FindMatchesServesFromCache(t *testing.T) {
	clock := newTestClock()
	e := NewEngine(LoadConfig(), newTestLogger(t), WithClock(clock.Now))
	seedExampleCatalog(e)
	ctx := context.Background()

	first, err := e.FindMatches(ctx, "creator-1", models.RoleCreator, 10)
	require.NoError(t, err)
	require.Len(t, first, 1)

	clock.Advance(10 * time.Minute)
	second, err := e.FindMatches(ctx, "creator-1", models.RoleCreator, 10)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, fixedNow, second[0].CreatedAt, "cached result keeps its original timestamp")
}

func TestEngine_CachedResultsUnaffectedByCallerChanges(t *testing.T) {
	e := newTestEngine(t)
	seedExampleCatalog(e)
	ctx := context.Background()

	first, err := e.FindMatches(ctx, "creator-1", models.RoleCreator, 10)
	require.NoError(t, err)
	require.Len(t, first, 1)
	require.NotNil(t, first[0].Factors.LocationProximity)
	require.NotEmpty(t, first[0].Reasoning)
	location := *first[0].Factors.LocationProximity
	reasoning := append([]string(nil), first[0].Reasoning...)

	*first[0].Factors.LocationProximity = 0
	first[0].Reasoning[0] = "overwritten"

	second, err := e.FindMatches(ctx, "creator-1", models.RoleCreator, 10)
	require.NoError(t, err)
	require.Len(t, second, 1)
	assert.Equal(t, location, *second[0].Factors.LocationProximity)
	assert.Equal(t, reasoning, second[0].Reasoning)
}

func TestEngine_WithNetworkScorer(t *testing.T) {
	e := newTestEngine(t, WithNetworkScorer(fixedNetwork(0.9)))
	seedExampleCatalog(e)

	results, err := e.FindMatches(context.Background(), "creator-1", models.RoleCreator, 10)
	require.NoError(t, err)
	require.Len(t, results, 1)

	require.NotNil(t, results[0].Factors.NetworkEffect)
	assert.Equal(t, 0.9, *results[0].Factors.NetworkEffect)
	assert.InDelta(t, 0.925+0.9*0.05, results[0].MatchScore, 1e-9)
}

func TestEngine_LoadsDoNotInvalidateCache(t *testing.T) {
	clock := newTestClock()
	e := NewEngine(LoadConfig(), newTestLogger(t), WithClock(clock.Now))
	seedExampleCatalog(e)
	ctx := context.Background()

	before, err := e.FindMatches(ctx, "creator-1", models.RoleCreator, 10)
	require.NoError(t, err)
	require.Len(t, before, 1)

	e.LoadInvestmentOffers([]models.InvestmentOffer{{ID: "offer-1", InvestorID: "investor-1", IsActive: false}})

	stale, err := e.FindMatches(ctx, "creator-1", models.RoleCreator, 10)
	require.NoError(t, err)
	assert.Len(t, stale, 1, "cached entry survives a reload until it expires")

	clock.Advance(30 * time.Minute)
	fresh, err := e.FindMatches(ctx, "creator-1", models.RoleCreator, 10)
	require.NoError(t, err)
	assert.Empty(t, fresh)
}

func TestEngine_InvalidateCache(t *testing.T) {
	e := newTestEngine(t)
	seedExampleCatalog(e)
	ctx := context.Background()

	_, err := e.FindMatches(ctx, "creator-1", models.RoleCreator, 10)
	require.NoError(t, err)

	e.LoadBusinessIdeas([]models.BusinessIdea{{ID: "idea-1", CreatorID: "creator-1", Status: models.IdeaStatusCancelled}})
	require.NoError(t, e.InvalidateCache(ctx))

	results, err := e.FindMatches(ctx, "creator-1", models.RoleCreator, 10)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestEngine_FindMatchesCancelledContext(t *testing.T) {
	e := newTestEngine(t)
	seedExampleCatalog(e)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results, err := e.FindMatches(ctx, "creator-1", models.RoleCreator, 10)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, results)

	_, err = e.GetMatchStatistics(ctx, "creator-1", models.RoleCreator)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestEngine_GetMatchStatistics(t *testing.T) {
	e := newTestEngine(t)
	seedExampleCatalog(e)
	ctx := context.Background()

	stats, err := e.GetMatchStatistics(ctx, "creator-1", models.RoleCreator)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.TotalMatches)
	assert.Equal(t, 1, stats.HighConfidence)
	assert.InDelta(t, 0.925, stats.AverageScore, 1e-9)
	assert.Empty(t, stats.Suggestions)
	require.NotEmpty(t, stats.TopFactors)
	assert.Equal(t, 1.0, stats.TopFactors[0].Average)

	empty, err := e.GetMatchStatistics(ctx, "ghost", models.RoleInvestor)
	require.NoError(t, err)
	assert.Zero(t, empty.TotalMatches)
	assert.Zero(t, empty.AverageScore)
}

func TestEngine_Counts(t *testing.T) {
	e := newTestEngine(t)
	seedExampleCatalog(e)

	profiles, ideas, offers := e.Counts()
	assert.Equal(t, 2, profiles)
	assert.Equal(t, 1, ideas)
	assert.Equal(t, 1, offers)
}

func TestEngine_StartClose(t *testing.T) {
	cfg := LoadConfig()
	cfg.SweepInterval = 5 * time.Millisecond
	cfg.CacheTTL = time.Minute
	clock := newTestClock()
	store := NewMemoryStore()
	e := NewEngine(cfg, newTestLogger(t), WithClock(clock.Now), WithStore(store))
	seedExampleCatalog(e)

	e.Start(context.Background())
	defer e.Close()

	_, err := e.FindMatches(context.Background(), "creator-1", models.RoleCreator, 10)
	require.NoError(t, err)
	require.Equal(t, 1, store.Len())

	clock.Advance(time.Minute)
	assert.Eventually(t, func() bool { return store.Len() == 0 }, time.Second, 5*time.Millisecond)
}

func TestEngine_SweepCache(t *testing.T) {
	clock := newTestClock()
	e := NewEngine(LoadConfig(), newTestLogger(t), WithClock(clock.Now))
	seedExampleCatalog(e)

	_, err := e.FindMatches(context.Background(), "creator-1", models.RoleCreator, 10)
	require.NoError(t, err)

	assert.Zero(t, e.SweepCache(context.Background()))
	clock.Advance(31 * time.Minute)
	assert.Equal(t, 1, e.SweepCache(context.Background()))
}

func TestEngine_ConcurrentAccess(t *testing.T) {
	e := newTestEngine(t)
	seedManyOffers(e, 20)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func(limit int) {
			defer wg.Done()
			results, err := e.FindMatches(ctx, "creator-1", models.RoleCreator, limit)
			assert.NoError(t, err)
			assert.Len(t, results, limit)
		}(i + 1)
		go func() {
			defer wg.Done()
			seedManyOffers(e, 20)
		}()
	}
	wg.Wait()
}

// ==========================
// Config Tests
// ==========================

func TestFromSettings(t *testing.T) {
	cfg := FromSettings(config.MatchingConfig{
		CacheTTL:            5 * time.Minute,
		MinMatchScore:       0.6,
		StagePreferenceMode: "BEST",
		IndustryCompatibility: map[string]map[string]float64{
			"gaming": {"media": 0.9},
		},
	})

	assert.Equal(t, 5*time.Minute, cfg.CacheTTL)
	assert.Equal(t, 30*time.Minute, cfg.SweepInterval)
	assert.Equal(t, 0.6, cfg.MinMatchScore)
	assert.Equal(t, 50, cfg.DefaultLimit)
	assert.Equal(t, 100, cfg.StatisticsLimit)
	assert.Equal(t, BestPreferredStage, cfg.StageMode)
	assert.Contains(t, cfg.IndustryCompatibility, "gaming")
}

func TestFromSettings_MinMatchScoreOnlyRaises(t *testing.T) {
	assert.Equal(t, 0.4, FromSettings(config.MatchingConfig{MinMatchScore: 0.1}).MinMatchScore)
	assert.Equal(t, 0.4, FromSettings(config.MatchingConfig{MinMatchScore: 0.4}).MinMatchScore)
	assert.Equal(t, 0.75, FromSettings(config.MatchingConfig{MinMatchScore: 0.75}).MinMatchScore)
}

func TestParseStageMode(t *testing.T) {
	assert.Equal(t, BestPreferredStage, ParseStageMode(" best "))
	assert.Equal(t, FirstPreferredStage, ParseStageMode("first"))
	assert.Equal(t, FirstPreferredStage, ParseStageMode(""))
	assert.Equal(t, FirstPreferredStage, ParseStageMode("average"))
}

func TestNewEngine_NilConfigUsesDefaults(t *testing.T) {
	e := NewEngine(nil, newTestLogger(t))
	assert.Equal(t, LoadConfig(), e.config)
}
