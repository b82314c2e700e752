// internal/workers/data-access/refresh-catalog/handler_test.go
package refreshcatalog

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/pb"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"venture-match/internal/catalog"
	"venture-match/internal/common/errors"
	"venture-match/internal/common/logger"
	"venture-match/internal/common/metrics"
	"venture-match/internal/matching"
	"venture-match/internal/models"
)

// ==========================
// Test Helper Functions
// ==========================

func createTestConfig() *Config {
	return &Config{Timeout: 5 * time.Second}
}

func createTestLogger(t *testing.T) logger.Logger {
	return logger.NewTestLogger(t)
}

type fakeLoader struct {
	snap *catalog.Snapshot
	err  error
}

func (f *fakeLoader) Load(context.Context) (*catalog.Snapshot, error) {
	return f.snap, f.err
}

type fakeSink struct {
	*matching.Engine
	invalidateErr error
	invalidated   bool
}

func (f *fakeSink) InvalidateCache(ctx context.Context) error {
	if f.invalidateErr != nil {
		return f.invalidateErr
	}
	f.invalidated = true
	return f.Engine.InvalidateCache(ctx)
}

func testSnapshot() *catalog.Snapshot {
	return &catalog.Snapshot{
		Profiles: []models.UserProfile{
			{ID: "creator-1", UserType: models.RoleCreator},
			{ID: "investor-1", UserType: models.RoleInvestor},
			{ID: ""},
		},
		Ideas: []models.BusinessIdea{
			{ID: "idea-1", CreatorID: "creator-1", Category: "saas", FundingGoal: 100000,
				Stage: models.StageMVP, Status: models.IdeaStatusPublished},
			{ID: "idea-2", CreatorID: "creator-1", Status: models.IdeaStatusDraft},
		},
		Offers: []models.InvestmentOffer{
			{ID: "offer-1", InvestorID: "investor-1", AmountRange: models.Range{Min: 50000, Max: 150000}, IsActive: true},
		},
	}
}

// ==========================
// Core Functionality Tests
// ==========================

func TestHandler_Execute_LoadsEngine(t *testing.T) {
	engine := matching.NewEngine(matching.LoadConfig(), createTestLogger(t))
	h := NewHandler(createTestConfig(), &fakeLoader{snap: testSnapshot()}, engine, createTestLogger(t))

	output, err := h.Execute(context.Background(), &Input{})
	require.NoError(t, err)

	assert.Equal(t, 2, output.Profiles)
	assert.Equal(t, 1, output.Ideas)
	assert.Equal(t, 1, output.Offers)
	assert.False(t, output.CacheInvalidated)
	assert.GreaterOrEqual(t, output.LoadTime, int64(0))

	profiles, ideas, offers := engine.Counts()
	assert.Equal(t, 2, profiles)
	assert.Equal(t, 1, ideas)
	assert.Equal(t, 1, offers)
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.CatalogRecords.WithLabelValues("ideas")))
}

func TestHandler_Execute_Idempotent(t *testing.T) {
	engine := matching.NewEngine(matching.LoadConfig(), createTestLogger(t))
	h := NewHandler(createTestConfig(), &fakeLoader{snap: testSnapshot()}, engine, createTestLogger(t))

	_, err := h.Execute(context.Background(), &Input{})
	require.NoError(t, err)
	_, err = h.Execute(context.Background(), &Input{})
	require.NoError(t, err)

	profiles, ideas, offers := engine.Counts()
	assert.Equal(t, 2, profiles)
	assert.Equal(t, 1, ideas)
	assert.Equal(t, 1, offers)
}

func TestHandler_Execute_InvalidatesCache(t *testing.T) {
	engine := matching.NewEngine(matching.LoadConfig(), createTestLogger(t))
	sink := &fakeSink{Engine: engine}
	h := NewHandler(createTestConfig(), &fakeLoader{snap: testSnapshot()}, sink, createTestLogger(t))

	output, err := h.Execute(context.Background(), &Input{InvalidateCache: true})
	require.NoError(t, err)
	assert.True(t, output.CacheInvalidated)
	assert.True(t, sink.invalidated)
}

func TestHandler_Execute_FromPostgres(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`FROM user_profiles`).WillReturnRows(sqlmock.NewRows([]string{
		"id", "user_type", "name", "company", "industry", "experience_level",
		"investment_min", "investment_max", "preferred_industries", "risk_tolerance",
		"geographic_preferences", "skills", "location",
	}).AddRow("creator-1", "creator", "Ada", "", "fintech", "serial", nil, nil, "{}", "", "{}", "{}", "Paris"))
	mock.ExpectQuery(`FROM business_ideas`).WillReturnRows(sqlmock.NewRows([]string{
		"id", "creator_id", "title", "category", "tags",
		"funding_goal", "current_funding", "equity_offered", "stage", "status",
	}).AddRow("idea-1", "creator-1", "Ledger", "fintech", "{}", 100000.0, 0.0, 10.0, "early", "published"))
	mock.ExpectQuery(`FROM investment_offers`).WillReturnRows(sqlmock.NewRows([]string{
		"id", "investor_id", "amount_min", "amount_max", "equity_min", "equity_max",
		"preferred_stages", "preferred_industries", "is_active",
	}))

	engine := matching.NewEngine(matching.LoadConfig(), createTestLogger(t))
	source := catalog.NewSource(db, createTestLogger(t))
	h := NewHandler(createTestConfig(), source, engine, createTestLogger(t))

	output, err := h.Execute(context.Background(), &Input{})
	require.NoError(t, err)
	assert.Equal(t, 1, output.Profiles)
	assert.Equal(t, 1, output.Ideas)
	assert.Equal(t, 0, output.Offers)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// ==========================
// Error Handling Tests
// ==========================

func TestHandler_Execute_LoadFailureAppliesNothing(t *testing.T) {
	engine := matching.NewEngine(matching.LoadConfig(), createTestLogger(t))
	loadErr := errors.NewCatalogLoadFailedError("business_ideas", stderrors.New("connection reset"))
	h := NewHandler(createTestConfig(), &fakeLoader{err: loadErr}, engine, createTestLogger(t))

	_, err := h.Execute(context.Background(), &Input{})
	require.Error(t, err)

	var stdErr *errors.StandardError
	require.True(t, stderrors.As(err, &stdErr))
	assert.Equal(t, errors.ErrCodeCatalogLoadFailed, stdErr.Code)

	profiles, ideas, offers := engine.Counts()
	assert.Zero(t, profiles+ideas+offers)
}

func TestHandler_Execute_InvalidateFailure(t *testing.T) {
	engine := matching.NewEngine(matching.LoadConfig(), createTestLogger(t))
	sink := &fakeSink{Engine: engine, invalidateErr: stderrors.New("redis down")}
	h := NewHandler(createTestConfig(), &fakeLoader{snap: testSnapshot()}, sink, createTestLogger(t))

	_, err := h.Execute(context.Background(), &Input{InvalidateCache: true})
	require.Error(t, err)

	var stdErr *errors.StandardError
	require.True(t, stderrors.As(err, &stdErr))
	assert.Equal(t, errors.ErrCodeCacheBackendFailed, stdErr.Code)
}

func TestParseInput(t *testing.T) {
	input, err := parseInput(entities.Job{ActivatedJob: &pb.ActivatedJob{Variables: `{"invalidateCache":true}`}})
	require.NoError(t, err)
	assert.True(t, input.InvalidateCache)

	input, err = parseInput(entities.Job{ActivatedJob: &pb.ActivatedJob{Variables: `{}`}})
	require.NoError(t, err)
	assert.False(t, input.InvalidateCache)

	_, err = parseInput(entities.Job{ActivatedJob: &pb.ActivatedJob{Variables: `{"invalidateCache":"yes"}`}})
	assert.Error(t, err)
}
