// internal/workers/matching/find-matches/config.go
package findmatches

import "time"

type Config struct {
	Timeout time.Duration
	// MaxLimit caps the limit a process may request. Zero disables the cap.
	MaxLimit int
}

func LoadConfig() *Config {
	return &Config{
		Timeout:  10 * time.Second,
		MaxLimit: 200,
	}
}
