// internal/common/config/config.go
package config

import "fmt"

// Config is the main application configuration struct.
type Config struct {
	App           AppConfig          `mapstructure:"app"`
	Server        ServerConfig       `mapstructure:"server"`
	Database      DatabaseConfig     `mapstructure:"database"`
	Pipeline      PipelineConfig     `mapstructure:"pipeline"`
	Extraction    ExtractionConfig   `mapstructure:"extraction"`
	Notifications NotificationConfig `mapstructure:"notifications"`
	Logging       LoggingConfig      `mapstructure:"logging"`
}

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type ServerConfig struct {
	Port        int `mapstructure:"port"`
	MetricsPort int `mapstructure:"metrics_port"`
}

type DatabaseConfig struct {
	Postgres      PostgresConfig      `mapstructure:"postgres"`
	Elasticsearch ElasticsearchConfig `mapstructure:"elasticsearch"`
	Redis         RedisConfig         `mapstructure:"redis"`
}

type PostgresConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	Database       string `mapstructure:"database"`
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	MaxConnections int    `mapstructure:"max_connections"`
	MaxIdle        int    `mapstructure:"max_idle"`
	SSLMode        string `mapstructure:"sslmode"`
}

// GetDSN returns the PostgreSQL connection string.
func (p PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode,
	)
}

type ElasticsearchConfig struct {
	Addresses     []string `mapstructure:"addresses"`
	Username      string   `mapstructure:"username"`
	Password      string   `mapstructure:"password"`
	AnalysisIndex string   `mapstructure:"analysis_index"`
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// PipelineConfig holds settings for the background analysis runner.
type PipelineConfig struct {
	QueueSize      int `mapstructure:"queue_size"`
	Workers        int `mapstructure:"workers"`
	LenderCacheTTL int `mapstructure:"lender_cache_ttl"` // seconds
	StageTimeout   int `mapstructure:"stage_timeout"`    // milliseconds
}

// ExtractionConfig holds settings for the PDF text/table extraction adapter.
type ExtractionConfig struct {
	OCRLanguage string `mapstructure:"ocr_language"`
	OCRDPIRes   int    `mapstructure:"ocr_dpi"`
	MinTextLen  int    `mapstructure:"min_text_len"` // below this, fall back to OCR
}

// NotificationConfig holds settings for outbound SNS/SES delivery.
type NotificationConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	AWSRegion string `mapstructure:"aws_region"`
	TopicARN  string `mapstructure:"topic_arn"`
	FromEmail string `mapstructure:"from_email"`
	Timeout   int    `mapstructure:"timeout"` // milliseconds
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}
