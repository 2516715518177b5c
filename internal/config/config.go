package config

import (
	"fmt"
	"log"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Debug bool `envconfig:"DEBUG" default:"false"`

	// Chunking
	Strategy          string `envconfig:"STRATEGY" default:"semantic"`
	MaxChunkTokens    int    `envconfig:"MAX_CHUNK_TOKENS" default:"500"`
	MinParagraphChars int    `envconfig:"MIN_PARAGRAPH_CHARS" default:"50"`

	// Graph construction. The threshold is an unverified design choice;
	// it is exposed here rather than hard-coded.
	SimilarityThreshold float64 `envconfig:"SIMILARITY_THRESHOLD" default:"0.3"`

	// Retrieval
	TopK             int `envconfig:"TOP_K" default:"5"`
	NeighborsPerSeed int `envconfig:"NEIGHBORS_PER_SEED" default:"2"`
	MaxContextChars  int `envconfig:"MAX_CONTEXT_CHARS" default:"8000"`

	// Optional embedding-backed search
	OpenAIAPIKey string `envconfig:"OPENAI_API_KEY"`

	// Telemetry
	SentryDSN   string `envconfig:"SENTRY_DSN"`
	Environment string `envconfig:"ENVIRONMENT" default:"development"`
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("TEXTGRAPH", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}

func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	return cfg
}

func (c *Config) HasOpenAI() bool {
	return c.OpenAIAPIKey != ""
}
