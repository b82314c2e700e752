// internal/matching/config.go
package matching

import (
	"strings"
	"time"

	"venture-match/internal/common/config"
)

type Config struct {
	CacheTTL        time.Duration
	SweepInterval   time.Duration
	MinMatchScore   float64
	DefaultLimit    int
	StatisticsLimit int
	StageMode       StageMode

	// IndustryCompatibility is merged over the built-in industry table.
	IndustryCompatibility map[string]map[string]float64
}

func LoadConfig() *Config {
	return &Config{
		CacheTTL:        30 * time.Minute,
		SweepInterval:   30 * time.Minute,
		MinMatchScore:   0.4,
		DefaultLimit:    50,
		StatisticsLimit: 100,
		StageMode:       FirstPreferredStage,
	}
}

// FromSettings builds an engine config from the matching section of the
// application config. Zero values keep the defaults of LoadConfig.
func FromSettings(s config.MatchingConfig) *Config {
	c := LoadConfig()
	if s.CacheTTL > 0 {
		c.CacheTTL = s.CacheTTL
	}
	if s.SweepInterval > 0 {
		c.SweepInterval = s.SweepInterval
	}
	// the threshold can be raised, never lowered
	if s.MinMatchScore > c.MinMatchScore {
		c.MinMatchScore = s.MinMatchScore
	}
	if s.DefaultLimit > 0 {
		c.DefaultLimit = s.DefaultLimit
	}
	if s.StatisticsLimit > 0 {
		c.StatisticsLimit = s.StatisticsLimit
	}
	c.StageMode = ParseStageMode(s.StagePreferenceMode)
	c.IndustryCompatibility = s.IndustryCompatibility
	return c
}

// ParseStageMode maps unknown or empty values to FirstPreferredStage.
func ParseStageMode(s string) StageMode {
	if StageMode(strings.ToLower(strings.TrimSpace(s))) == BestPreferredStage {
		return BestPreferredStage
	}
	return FirstPreferredStage
}
