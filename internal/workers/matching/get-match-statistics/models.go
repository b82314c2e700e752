// internal/workers/matching/get-match-statistics/models.go
package getmatchstatistics

import "venture-match/internal/models"

type Input struct {
	UserID string `json:"userId"`
	Role   string `json:"role"`
}

type Output struct {
	Statistics *models.MatchStatistics `json:"statistics"`
}

const InputSchema = `{
	"type": "object",
	"properties": {
		"userId": {"type": "string", "minLength": 1},
		"role":   {"type": "string", "minLength": 1}
	},
	"required": ["userId", "role"]
}`
