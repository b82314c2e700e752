// internal/catalog/profiles.go
package catalog

import (
	"context"
	"database/sql"

	"github.com/lib/pq"

	"venture-match/internal/models"
)

const profilesQuery = `
	SELECT id, user_type, COALESCE(name, ''), COALESCE(company, ''), COALESCE(industry, ''),
	       COALESCE(experience_level, ''), investment_min, investment_max,
	       preferred_industries, COALESCE(risk_tolerance, ''), geographic_preferences,
	       skills, COALESCE(location, '')
	FROM user_profiles
	ORDER BY created_at, id`

func (s *Source) Profiles(ctx context.Context) ([]models.UserProfile, error) {
	rows, err := s.db.QueryContext(ctx, profilesQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.UserProfile
	for rows.Next() {
		var (
			p                      models.UserProfile
			userType, level, risk  string
			investMin, investMax   sql.NullFloat64
			preferred, geo, skills pq.StringArray
		)
		if err := rows.Scan(
			&p.ID, &userType, &p.Name, &p.Company, &p.Industry,
			&level, &investMin, &investMax,
			&preferred, &risk, &geo,
			&skills, &p.Location,
		); err != nil {
			return nil, scanError(models.QueryTypeUserProfiles, err)
		}

		p.UserType = models.ParseRole(userType)
		p.ExperienceLevel = models.ParseExperienceLevel(level)
		p.RiskTolerance = models.ParseRiskTolerance(risk)
		if !p.UserType.IsValid() {
			s.warnUnknown(models.QueryTypeUserProfiles, p.ID, "user_type", userType)
		}
		if level != "" && !p.ExperienceLevel.IsValid() {
			s.warnUnknown(models.QueryTypeUserProfiles, p.ID, "experience_level", level)
		}
		if risk != "" && !p.RiskTolerance.IsValid() {
			s.warnUnknown(models.QueryTypeUserProfiles, p.ID, "risk_tolerance", risk)
		}
		if investMin.Valid && investMax.Valid {
			p.InvestmentRange = &models.Range{Min: investMin.Float64, Max: investMax.Float64}
		}
		p.PreferredIndustries = []string(preferred)
		p.GeographicPreferences = []string(geo)
		p.Skills = []string(skills)
		out = append(out, p)
	}
	return out, rows.Err()
}
