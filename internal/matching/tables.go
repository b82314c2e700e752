// internal/matching/tables.go
package matching

import (
	"strings"
	"sync"
	"unicode"

	"venture-match/internal/models"
)

// stageAdjacency scores an idea stage (row) against an investor's preferred
// stage (column).
var stageAdjacency = map[models.Stage]map[models.Stage]float64{
	models.StageConcept: {models.StageConcept: 1.0, models.StageMVP: 0.8, models.StageEarly: 0.5, models.StageGrowth: 0.2},
	models.StageMVP:     {models.StageConcept: 0.7, models.StageMVP: 1.0, models.StageEarly: 0.8, models.StageGrowth: 0.4},
	models.StageEarly:   {models.StageConcept: 0.4, models.StageMVP: 0.7, models.StageEarly: 1.0, models.StageGrowth: 0.8},
	models.StageGrowth:  {models.StageConcept: 0.2, models.StageMVP: 0.4, models.StageEarly: 0.7, models.StageGrowth: 1.0},
}

// riskByStage favors high tolerance for early ideas and low tolerance for
// mature ones.
var riskByStage = map[models.Stage]map[models.RiskTolerance]float64{
	models.StageConcept: {models.RiskLow: 0.2, models.RiskMedium: 0.5, models.RiskHigh: 1.0},
	models.StageMVP:     {models.RiskLow: 0.3, models.RiskMedium: 0.7, models.RiskHigh: 0.9},
	models.StageEarly:   {models.RiskLow: 0.5, models.RiskMedium: 0.9, models.RiskHigh: 0.8},
	models.StageGrowth:  {models.RiskLow: 0.9, models.RiskMedium: 0.8, models.RiskHigh: 0.6},
}

var experienceScores = map[models.ExperienceLevel]float64{
	models.ExperienceBeginner:     0.3,
	models.ExperienceIntermediate: 0.6,
	models.ExperienceExperienced:  0.85,
	models.ExperienceSerial:       1.0,
}

var defaultIndustryCompatibility = map[string]map[string]float64{
	"technology": {
		"saas": 0.9, "software": 0.9, "ai": 0.85, "artificial intelligence": 0.85,
		"cybersecurity": 0.8, "fintech": 0.7, "healthtech": 0.6, "edtech": 0.6, "e-commerce": 0.6,
	},
	"saas":           {"software": 0.95, "b2b": 0.8, "ai": 0.7},
	"fintech":        {"finance": 0.9, "financial services": 0.9, "banking": 0.85, "insurance": 0.7, "blockchain": 0.7, "crypto": 0.6},
	"healthcare":     {"medtech": 0.9, "healthtech": 0.9, "biotech": 0.8, "pharmaceuticals": 0.7, "wellness": 0.6},
	"biotech":        {"life sciences": 0.9, "pharmaceuticals": 0.85},
	"e-commerce":     {"retail": 0.9, "marketplace": 0.85, "consumer goods": 0.7, "logistics": 0.6},
	"retail":         {"consumer goods": 0.85, "fashion": 0.7, "food & beverage": 0.6},
	"energy":         {"cleantech": 0.9, "sustainability": 0.85, "climate": 0.85, "manufacturing": 0.5},
	"cleantech":      {"sustainability": 0.9, "climate": 0.9, "agriculture": 0.6},
	"education":      {"edtech": 0.95},
	"real estate":    {"proptech": 0.9, "construction": 0.7},
	"media":          {"entertainment": 0.85, "advertising": 0.75, "gaming": 0.7},
	"transportation": {"mobility": 0.9, "logistics": 0.85, "automotive": 0.8},
	"agriculture":    {"agtech": 0.95, "food & beverage": 0.7},
}

// IndustryTable is a symmetric, case-insensitive adjacency table over an open
// vocabulary of industry names.
type IndustryTable struct {
	mu     sync.RWMutex
	scores map[string]map[string]float64
}

// NewIndustryTable returns the default table with overrides merged on top.
func NewIndustryTable(overrides map[string]map[string]float64) *IndustryTable {
	t := &IndustryTable{scores: make(map[string]map[string]float64)}
	for a, row := range defaultIndustryCompatibility {
		for b, score := range row {
			t.Set(a, b, score)
		}
	}
	for a, row := range overrides {
		for b, score := range row {
			t.Set(a, b, score)
		}
	}
	return t
}

func (t *IndustryTable) Set(a, b string, score float64) {
	a, b = normalize(a), normalize(b)
	if a == "" || b == "" {
		return
	}
	score = clamp01(score)

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.scores[a] == nil {
		t.scores[a] = make(map[string]float64)
	}
	t.scores[a][b] = score
	if t.scores[b] == nil {
		t.scores[b] = make(map[string]float64)
	}
	t.scores[b][a] = score
}

func (t *IndustryTable) Lookup(a, b string) (float64, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	score, ok := t.scores[normalize(a)][normalize(b)]
	return score, ok
}

type region struct {
	name     string
	keywords []string
}

// regions is matched in order; the first keyword found as whole words in a
// location wins.
var regions = []region{
	{"north america", []string{"united states", "usa", "canada", "mexico", "new york", "california", "texas", "san francisco", "toronto"}},
	{"south america", []string{"brazil", "argentina", "chile", "colombia", "peru", "são paulo", "sao paulo"}},
	{"europe", []string{"united kingdom", "england", "london", "germany", "berlin", "france", "paris", "spain", "italy", "netherlands", "amsterdam", "sweden", "switzerland", "ireland", "portugal", "poland"}},
	{"middle east", []string{"uae", "dubai", "israel", "saudi arabia", "qatar", "turkey"}},
	{"africa", []string{"south africa", "nigeria", "kenya", "egypt", "ghana", "lagos", "nairobi"}},
	{"asia", []string{"india", "china", "japan", "singapore", "korea", "hong kong", "indonesia", "vietnam", "thailand", "bangalore", "tokyo", "shanghai"}},
	{"oceania", []string{"australia", "new zealand", "sydney", "melbourne"}},
}

func regionOf(location string) string {
	words := strings.FieldsFunc(normalize(location), func(r rune) bool {
		return !unicode.IsLetter(r)
	})
	if len(words) == 0 {
		return ""
	}
	// padded so a keyword only matches on word boundaries
	loc := " " + strings.Join(words, " ") + " "
	for _, r := range regions {
		for _, kw := range r.keywords {
			if strings.Contains(loc, " "+kw+" ") {
				return r.name
			}
		}
	}
	return ""
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
