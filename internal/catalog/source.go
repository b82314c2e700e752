// internal/catalog/source.go
package catalog

import (
	"context"
	"database/sql"
	"database/sql/driver"
	stderrors "errors"
	"fmt"
	"time"

	"venture-match/internal/common/errors"
	"venture-match/internal/common/logger"
	"venture-match/internal/models"
)

// Source reads the matching catalog from PostgreSQL.
type Source struct {
	db     *sql.DB
	logger logger.Logger
}

// Snapshot is one full read of the catalog.
type Snapshot struct {
	Profiles []models.UserProfile
	Ideas    []models.BusinessIdea
	Offers   []models.InvestmentOffer
}

func NewSource(db *sql.DB, log logger.Logger) *Source {
	return &Source{
		db:     db,
		logger: log.WithFields(map[string]interface{}{"component": "catalog"}),
	}
}

// Load reads profiles, ideas and offers in that order. Any failure aborts the
// whole load so callers never apply a partial snapshot.
func (s *Source) Load(ctx context.Context) (*Snapshot, error) {
	start := time.Now()

	profiles, err := s.Profiles(ctx)
	if err != nil {
		return nil, s.wrap(ctx, models.QueryTypeUserProfiles, err)
	}
	ideas, err := s.Ideas(ctx)
	if err != nil {
		return nil, s.wrap(ctx, models.QueryTypeBusinessIdeas, err)
	}
	offers, err := s.Offers(ctx)
	if err != nil {
		return nil, s.wrap(ctx, models.QueryTypeInvestmentOffers, err)
	}

	s.logger.Info("catalog read", map[string]interface{}{
		"profiles":   len(profiles),
		"ideas":      len(ideas),
		"offers":     len(offers),
		"durationMs": time.Since(start).Milliseconds(),
	})
	return &Snapshot{Profiles: profiles, Ideas: ideas, Offers: offers}, nil
}

func (s *Source) wrap(ctx context.Context, queryType models.QueryType, err error) error {
	s.logger.Error("catalog query failed", map[string]interface{}{
		"queryType": string(queryType),
		"error":     err.Error(),
	})
	if stderrors.Is(ctx.Err(), context.DeadlineExceeded) || stderrors.Is(err, context.DeadlineExceeded) {
		return errors.NewQueryTimeoutError(string(queryType))
	}
	if stderrors.Is(err, driver.ErrBadConn) || stderrors.Is(err, sql.ErrConnDone) {
		return errors.NewDatabaseConnectionFailedError(err)
	}
	return errors.NewCatalogLoadFailedError(string(queryType), err)
}

// warnUnknown logs an enum value the matcher does not know. The record is
// still loaded and scores neutrally on that factor.
func (s *Source) warnUnknown(queryType models.QueryType, id, field, value string) {
	s.logger.Warn("unknown value in catalog record", map[string]interface{}{
		"queryType": string(queryType),
		"id":        id,
		"field":     field,
		"value":     value,
	})
}

func scanError(queryType models.QueryType, err error) error {
	return fmt.Errorf("scan %s: %w", queryType, err)
}
