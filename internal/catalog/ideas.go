// internal/catalog/ideas.go
package catalog

import (
	"context"

	"github.com/lib/pq"

	"venture-match/internal/models"
)

const ideasQuery = `
	SELECT id, creator_id, COALESCE(title, ''), category, tags,
	       funding_goal, current_funding, equity_offered, stage, status
	FROM business_ideas
	ORDER BY created_at, id`

// Ideas returns every idea regardless of status; the repository drops the
// unpublished ones.
func (s *Source) Ideas(ctx context.Context) ([]models.BusinessIdea, error) {
	rows, err := s.db.QueryContext(ctx, ideasQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.BusinessIdea
	for rows.Next() {
		var (
			idea          models.BusinessIdea
			tags          pq.StringArray
			stage, status string
		)
		if err := rows.Scan(
			&idea.ID, &idea.CreatorID, &idea.Title, &idea.Category, &tags,
			&idea.FundingGoal, &idea.CurrentFunding, &idea.EquityOffered, &stage, &status,
		); err != nil {
			return nil, scanError(models.QueryTypeBusinessIdeas, err)
		}
		idea.Tags = []string(tags)
		idea.Stage = models.ParseStage(stage)
		if !idea.Stage.IsValid() {
			s.warnUnknown(models.QueryTypeBusinessIdeas, idea.ID, "stage", stage)
		}
		idea.Status = models.IdeaStatus(status)
		out = append(out, idea)
	}
	return out, rows.Err()
}
