// internal/workers/statement/parse-statement/config.go
package parsestatement

import "time"

type Config struct {
	Timeout time.Duration
	// MaxPages caps how much of a document is parsed; 0 means no cap.
	MaxPages int
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 30 * time.Second,
	}
}
