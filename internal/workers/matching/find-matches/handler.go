// internal/workers/matching/find-matches/handler.go
package findmatches

import (
	"context"
	"fmt"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"venture-match/internal/common/errors"
	"venture-match/internal/common/logger"
	"venture-match/internal/common/validation"
	"venture-match/internal/models"
)

const TaskType = "find-matches"

// Matcher is the engine operation this worker exposes.
type Matcher interface {
	FindMatches(ctx context.Context, userID string, role models.Role, limit int) ([]models.MatchResult, error)
}

type Handler struct {
	config  *Config
	matcher Matcher
	logger  logger.Logger
}

func NewHandler(config *Config, matcher Matcher, log logger.Logger) *Handler {
	return &Handler{
		config:  config,
		matcher: matcher,
		logger:  log.WithFields(map[string]interface{}{"taskType": TaskType}),
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) error {
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	input, err := parseInput(job)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	output, err := h.execute(ctx, input)
	if err != nil {
		return err
	}
	return h.completeJob(ctx, client, job, output)
}

func parseInput(job entities.Job) (*Input, error) {
	variables, err := job.GetVariablesAsMap()
	if err != nil {
		return nil, errors.NewInvalidMatchRequestError(fmt.Sprintf("parse variables: %v", err))
	}

	result := validation.ValidateInput(variables, InputSchema)
	if !result.Valid {
		return nil, errors.NewInvalidMatchRequestError(fmt.Sprintf("%v", result.GetErrorMessages()))
	}

	var input Input
	if err := job.GetVariablesAs(&input); err != nil {
		return nil, errors.NewInvalidMatchRequestError(fmt.Sprintf("decode variables: %v", err))
	}
	return &input, nil
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	limit := input.Limit
	if h.config.MaxLimit > 0 && limit > h.config.MaxLimit {
		limit = h.config.MaxLimit
	}

	matches, err := h.matcher.FindMatches(ctx, input.UserID, models.ParseRole(input.Role), limit)
	if err != nil {
		return nil, errors.NewMatchSearchFailedError(input.UserID, err)
	}
	if matches == nil {
		matches = []models.MatchResult{}
	}

	h.logger.Info("matches found", map[string]interface{}{
		"userId": input.UserID,
		"role":   input.Role,
		"limit":  limit,
		"count":  len(matches),
	})

	return &Output{Matches: matches, Count: len(matches)}, nil
}

func (h *Handler) completeJob(ctx context.Context, client worker.JobClient, job entities.Job, output *Output) error {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		return fmt.Errorf("create complete job command: %w", err)
	}
	if _, err := cmd.Send(ctx); err != nil {
		return errors.NewExternalServiceError("zeebe", err)
	}
	return nil
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
