// internal/workers/notification/send-notification/config.go
package sendnotification

import (
	"time"

	"credit-pipeline/internal/common/config"
)

type Config struct {
	Enabled   bool
	AWSRegion string
	TopicARN  string
	FromEmail string
	Timeout   time.Duration
}

func LoadConfig(cfg config.NotificationConfig) *Config {
	timeout := time.Duration(cfg.Timeout) * time.Millisecond
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Config{
		Enabled:   cfg.Enabled,
		AWSRegion: cfg.AWSRegion,
		TopicARN:  cfg.TopicARN,
		FromEmail: cfg.FromEmail,
		Timeout:   timeout,
	}
}
