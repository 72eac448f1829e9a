// internal/workers/bureau/parse-bureau-report/config.go
package parsebureaureport

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 30 * time.Second,
	}
}
