// internal/workers/matching/get-match-statistics/config.go
package getmatchstatistics

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 10 * time.Second,
	}
}
