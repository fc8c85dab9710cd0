package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// GeminiConfig holds the inference service settings. The timing fields keep
// the pipeline's fixed constants: a 5s readiness poll capped at 120s, and a
// 600s cap on one generation call.
type GeminiConfig struct {
	APIKey           string        `env:"API_KEY"`
	Model            string        `env:"MODEL" envDefault:"gemini-2.5-flash"`
	PollInterval     time.Duration `env:"POLL_INTERVAL" envDefault:"5s"`
	MaxWait          time.Duration `env:"MAX_WAIT" envDefault:"120s"`
	InferenceTimeout time.Duration `env:"INFERENCE_TIMEOUT" envDefault:"600s"`
}

// S3Config configures the blob store. An empty Bucket disables S3 and routes
// uploaded videos to the local filesystem instead.
type S3Config struct {
	Bucket          string `env:"BUCKET"`
	EndpointURL     string `env:"ENDPOINT_URL"`
	AccessKeyID     string `env:"ACCESS_KEY_ID"`
	SecretAccessKey string `env:"SECRET_ACCESS_KEY"`
	Region          string `env:"REGION" envDefault:"us-east-1"`
}

// ValkeyConfig configures the key-value store holding analysis records.
// An empty Host disables record persistence and the listing page shows an
// empty shell.
type ValkeyConfig struct {
	Host string `env:"HOST"`
	Port string `env:"PORT" envDefault:"6379"`
}

// PostgresConfig configures the optional analysis index. An empty Host
// disables it.
type PostgresConfig struct {
	Host     string `env:"HOST"`
	Port     string `env:"PORT" envDefault:"5432"`
	User     string `env:"USER"`
	Password string `env:"PASSWORD"`
	DBName   string `env:"DB"`
	SSLMode  string `env:"SSLMODE" envDefault:"disable"`
}

type Config struct {
	Port   string `env:"APP_PORT" envDefault:"8080"`
	APIKey string `env:"API_KEY"`

	// Game is the title every uploaded video is analyzed as; Focus optionally
	// narrows the coaching feedback to one aspect of play.
	Game  string `env:"GAME_NAME" envDefault:"EA FC 24"`
	Focus string `env:"FOCUS_AREA"`

	// VideoDir is where raw uploads land when no S3 bucket is configured.
	VideoDir string `env:"VIDEO_DIR" envDefault:"/tmp"`

	Gemini   GeminiConfig   `envPrefix:"GEMINI_"`
	S3       S3Config       `envPrefix:"S3_"`
	Valkey   ValkeyConfig   `envPrefix:"VALKEY_"`
	Postgres PostgresConfig `envPrefix:"POSTGRES_"`
}

// Load reads .env if present, then parses the environment into a Config.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	if cfg.Gemini.APIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is required")
	}
	return cfg, nil
}

// BlobStoreConfigured reports whether uploads go to S3 rather than disk.
func (c *Config) BlobStoreConfigured() bool { return c.S3.Bucket != "" }

// RecordStoreConfigured reports whether analysis records are persisted.
func (c *Config) RecordStoreConfigured() bool { return c.Valkey.Host != "" }

// IndexConfigured reports whether the Postgres analysis index is enabled.
func (c *Config) IndexConfigured() bool { return c.Postgres.Host != "" }
