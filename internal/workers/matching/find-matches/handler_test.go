// internal/workers/matching/find-matches/handler_test.go
package findmatches

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/pb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"venture-match/internal/common/errors"
	"venture-match/internal/common/logger"
	"venture-match/internal/matching"
	"venture-match/internal/models"
)

// ==========================
// Test Helper Functions
// ==========================

func createTestConfig() *Config {
	return &Config{
		Timeout:  5 * time.Second,
		MaxLimit: 20,
	}
}

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

type fakeMatcher struct {
	gotUserID string
	gotRole   models.Role
	gotLimit  int
	results   []models.MatchResult
	err       error
}

func (f *fakeMatcher) FindMatches(_ context.Context, userID string, role models.Role, limit int) ([]models.MatchResult, error) {
	f.gotUserID, f.gotRole, f.gotLimit = userID, role, limit
	return f.results, f.err
}

func newJob(variables string) entities.Job {
	return entities.Job{ActivatedJob: &pb.ActivatedJob{
		Key:       1,
		Type:      TaskType,
		Variables: variables,
	}}
}

func seededEngine(t *testing.T) *matching.Engine {
	engine := matching.NewEngine(matching.LoadConfig(), newTestLogger(t))
	engine.LoadUserProfiles([]models.UserProfile{
		{ID: "creator-1", UserType: models.RoleCreator, ExperienceLevel: models.ExperienceExperienced, Location: "Berlin, Germany"},
		{ID: "investor-1", UserType: models.RoleInvestor, RiskTolerance: models.RiskMedium,
			PreferredIndustries: []string{"fintech"}, Location: "Munich, Germany"},
	})
	engine.LoadBusinessIdeas([]models.BusinessIdea{
		{ID: "idea-1", CreatorID: "creator-1", Category: "fintech", FundingGoal: 250000,
			EquityOffered: 10, Stage: models.StageMVP, Status: models.IdeaStatusPublished},
	})
	engine.LoadInvestmentOffers([]models.InvestmentOffer{
		{ID: "offer-1", InvestorID: "investor-1", AmountRange: models.Range{Min: 100000, Max: 500000},
			PreferredEquity: models.Range{Min: 5, Max: 20}, PreferredStages: []models.Stage{models.StageMVP},
			PreferredIndustries: []string{"fintech"}, IsActive: true},
	})
	return engine
}

// ==========================
// Input Parsing Tests
// ==========================

func TestParseInput(t *testing.T) {
	tests := []struct {
		name      string
		variables string
		wantErr   bool
		want      *Input
	}{
		{
			name:      "valid with limit",
			variables: `{"userId":"creator-1","role":"creator","limit":5}`,
			want:      &Input{UserID: "creator-1", Role: "creator", Limit: 5},
		},
		{
			name:      "valid without limit",
			variables: `{"userId":"investor-1","role":"Investor"}`,
			want:      &Input{UserID: "investor-1", Role: "Investor"},
		},
		{name: "missing userId", variables: `{"role":"creator"}`, wantErr: true},
		{name: "empty role", variables: `{"userId":"u","role":""}`, wantErr: true},
		{name: "fractional limit", variables: `{"userId":"u","role":"creator","limit":2.5}`, wantErr: true},
		{name: "not json", variables: `not-json`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input, err := parseInput(newJob(tt.variables))
			if tt.wantErr {
				require.Error(t, err)
				var stdErr *errors.StandardError
				require.True(t, stderrors.As(err, &stdErr))
				assert.Equal(t, errors.ErrCodeInvalidMatchRequest, stdErr.Code)
				assert.False(t, stdErr.Retryable)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, input)
		})
	}
}

// ==========================
// Core Functionality Tests
// ==========================

func TestHandler_Execute_PassesNormalizedRequest(t *testing.T) {
	matcher := &fakeMatcher{results: []models.MatchResult{{ID: "m1", MatchScore: 0.8}}}
	h := NewHandler(createTestConfig(), matcher, newTestLogger(t))

	output, err := h.Execute(context.Background(), &Input{UserID: "u1", Role: " Creator ", Limit: 500})
	require.NoError(t, err)

	assert.Equal(t, "u1", matcher.gotUserID)
	assert.Equal(t, models.RoleCreator, matcher.gotRole)
	assert.Equal(t, 20, matcher.gotLimit, "limit is capped by MaxLimit")
	assert.Equal(t, 1, output.Count)
	assert.Equal(t, "m1", output.Matches[0].ID)
}

func TestHandler_Execute_EmptyIsNotNil(t *testing.T) {
	h := NewHandler(createTestConfig(), &fakeMatcher{}, newTestLogger(t))

	output, err := h.Execute(context.Background(), &Input{UserID: "ghost", Role: "creator"})
	require.NoError(t, err)
	assert.NotNil(t, output.Matches)
	assert.Equal(t, 0, output.Count)
}

func TestHandler_Execute_WithEngine(t *testing.T) {
	h := NewHandler(createTestConfig(), seededEngine(t), newTestLogger(t))

	output, err := h.Execute(context.Background(), &Input{UserID: "creator-1", Role: "creator"})
	require.NoError(t, err)
	require.Equal(t, 1, output.Count)

	match := output.Matches[0]
	assert.Equal(t, "idea-1", match.IdeaID)
	assert.Equal(t, "offer-1", match.OfferID)
	assert.Equal(t, "investor-1", match.InvestorID)
	assert.GreaterOrEqual(t, match.MatchScore, 0.4)
	assert.NotEmpty(t, match.Reasoning)

	fromInvestor, err := h.Execute(context.Background(), &Input{UserID: "investor-1", Role: "investor"})
	require.NoError(t, err)
	require.Equal(t, 1, fromInvestor.Count)
	assert.Equal(t, match.ID, fromInvestor.Matches[0].ID)
}

// ==========================
// Error Handling Tests
// ==========================

func TestHandler_Execute_MatcherError(t *testing.T) {
	h := NewHandler(createTestConfig(), &fakeMatcher{err: context.Canceled}, newTestLogger(t))

	_, err := h.Execute(context.Background(), &Input{UserID: "u1", Role: "creator"})
	require.Error(t, err)

	var stdErr *errors.StandardError
	require.True(t, stderrors.As(err, &stdErr))
	assert.Equal(t, errors.ErrCodeMatchSearchFailed, stdErr.Code)
	assert.True(t, stdErr.Retryable)
}
