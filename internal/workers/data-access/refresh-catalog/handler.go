// internal/workers/data-access/refresh-catalog/handler.go
package refreshcatalog

import (
	"context"
	"fmt"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"venture-match/internal/catalog"
	"venture-match/internal/common/errors"
	"venture-match/internal/common/logger"
	"venture-match/internal/common/metrics"
	"venture-match/internal/common/validation"
	"venture-match/internal/models"
)

const TaskType = "refresh-catalog"

type Loader interface {
	Load(ctx context.Context) (*catalog.Snapshot, error)
}

// Sink receives a catalog snapshot. The matching engine implements it.
type Sink interface {
	LoadUserProfiles(profiles []models.UserProfile) int
	LoadBusinessIdeas(ideas []models.BusinessIdea) int
	LoadInvestmentOffers(offers []models.InvestmentOffer) int
	InvalidateCache(ctx context.Context) error
	Counts() (profiles, ideas, offers int)
}

type Handler struct {
	config *Config
	loader Loader
	sink   Sink
	logger logger.Logger
}

func NewHandler(config *Config, loader Loader, sink Sink, log logger.Logger) *Handler {
	return &Handler{
		config: config,
		loader: loader,
		sink:   sink,
		logger: log.WithFields(map[string]interface{}{"taskType": TaskType}),
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

// execute applies a full snapshot. Nothing is loaded into the sink unless the
// whole catalog was read.
func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	start := time.Now()

	snap, err := h.loader.Load(ctx)
	if err != nil {
		return nil, err
	}

	output := &Output{
		Profiles: h.sink.LoadUserProfiles(snap.Profiles),
		Ideas:    h.sink.LoadBusinessIdeas(snap.Ideas),
		Offers:   h.sink.LoadInvestmentOffers(snap.Offers),
	}
	profiles, ideas, offers := h.sink.Counts()
	metrics.CatalogRecords.WithLabelValues("profiles").Set(float64(profiles))
	metrics.CatalogRecords.WithLabelValues("ideas").Set(float64(ideas))
	metrics.CatalogRecords.WithLabelValues("offers").Set(float64(offers))

	if input.InvalidateCache {
		if err := h.sink.InvalidateCache(ctx); err != nil {
			return nil, errors.NewCacheBackendFailedError(err)
		}
		output.CacheInvalidated = true
	}
	output.LoadTime = time.Since(start).Milliseconds()

	h.logger.Info("catalog refreshed", map[string]interface{}{
		"profiles":         output.Profiles,
		"ideas":            output.Ideas,
		"offers":           output.Offers,
		"cacheInvalidated": output.CacheInvalidated,
		"loadTimeMs":       output.LoadTime,
	})
	return output, nil
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
