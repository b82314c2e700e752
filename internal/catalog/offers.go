// internal/catalog/offers.go
package catalog

import (
	"context"

	"github.com/lib/pq"

	"venture-match/internal/models"
)

const offersQuery = `
	SELECT id, investor_id, amount_min, amount_max, equity_min, equity_max,
	       preferred_stages, preferred_industries, is_active
	FROM investment_offers
	ORDER BY created_at, id`

func (s *Source) Offers(ctx context.Context) ([]models.InvestmentOffer, error) {
	rows, err := s.db.QueryContext(ctx, offersQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.InvestmentOffer
	for rows.Next() {
		var (
			o                  models.InvestmentOffer
			stages, industries pq.StringArray
		)
		if err := rows.Scan(
			&o.ID, &o.InvestorID,
			&o.AmountRange.Min, &o.AmountRange.Max,
			&o.PreferredEquity.Min, &o.PreferredEquity.Max,
			&stages, &industries, &o.IsActive,
		); err != nil {
			return nil, scanError(models.QueryTypeInvestmentOffers, err)
		}
		for _, st := range stages {
			stage := models.ParseStage(st)
			if !stage.IsValid() {
				s.warnUnknown(models.QueryTypeInvestmentOffers, o.ID, "preferred_stages", st)
			}
			o.PreferredStages = append(o.PreferredStages, stage)
		}
		o.PreferredIndustries = []string(industries)
		out = append(out, o)
	}
	return out, rows.Err()
}
