// internal/workers/matching/find-matches/models.go
package findmatches

import "venture-match/internal/models"

type Input struct {
	UserID string `json:"userId"`
	Role   string `json:"role"`
	Limit  int    `json:"limit,omitempty"`
}

type Output struct {
	Matches []models.MatchResult `json:"matches"`
	Count   int                  `json:"count"`
}

const InputSchema = `{
	"type": "object",
	"properties": {
		"userId": {"type": "string", "minLength": 1},
		"role":   {"type": "string", "minLength": 1},
		"limit":  {"type": "integer"}
	},
	"required": ["userId", "role"]
}`
