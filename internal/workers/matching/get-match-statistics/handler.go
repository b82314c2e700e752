// internal/workers/matching/get-match-statistics/handler.go
package getmatchstatistics

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

const TaskType = "get-match-statistics"

type StatisticsProvider interface {
	GetMatchStatistics(ctx context.Context, userID string, role models.Role) (*models.MatchStatistics, error)
}

type Handler struct {
	config   *Config
	provider StatisticsProvider
	logger   logger.Logger
}

func NewHandler(config *Config, provider StatisticsProvider, log logger.Logger) *Handler {
	return &Handler{
		config:   config,
		provider: provider,
		logger:   log.WithFields(map[string]interface{}{"taskType": TaskType}),
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

func parseInput(job entities.Job) (*Input, error) {
	variables, err := job.GetVariablesAsMap()
	if err != nil {
		return nil, errors.NewInvalidMatchRequestError(fmt.Sprintf("parse variables: %v", err))
	}
	if result := validation.ValidateInput(variables, InputSchema); !result.Valid {
		return nil, errors.NewInvalidMatchRequestError(fmt.Sprintf("%v", result.GetErrorMessages()))
	}

	var input Input
	if err := job.GetVariablesAs(&input); err != nil {
		return nil, errors.NewInvalidMatchRequestError(fmt.Sprintf("decode variables: %v", err))
	}
	return &input, nil
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	stats, err := h.provider.GetMatchStatistics(ctx, input.UserID, models.ParseRole(input.Role))
	if err != nil {
		return nil, errors.NewStatisticsFailedError(input.UserID, err)
	}

	h.logger.Info("statistics computed", map[string]interface{}{
		"userId":       input.UserID,
		"totalMatches": stats.TotalMatches,
		"averageScore": stats.AverageScore,
	})
	return &Output{Statistics: stats}, nil
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
