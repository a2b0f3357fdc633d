package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Env            string
	ServiceName    string
	ServiceVersion string

	DatabaseURL string

	RedisURL string

	AuthJWTSecret string
	AuthIssuer    string

	OpenAIKey string
	GroqKey   string

	OtelExporterOTLPEndpoint string
	OtelExporterOTLPHeaders  string
	SentryDSN                string

	Port string

	Generation   GenerationConfig
	Conversation ConversationConfig
}

// GenerationConfig selects the AI providers used for recipe generation.
type GenerationConfig struct {
	Provider         string `yaml:"provider"`
	FallbackEnabled  bool   `yaml:"fallback_enabled"`
	FallbackProvider string `yaml:"fallback_provider"`
	ImageEnabled     bool   `yaml:"image_enabled"`
}

// ConversationConfig holds the intake policy for the chat flow.
// MaxPrepTimeMinutes of 0 means no upper bound is enforced.
type ConversationConfig struct {
	MaxPrepTimeMinutes int `yaml:"max_prep_time_minutes"`
	SessionTTLMinutes  int `yaml:"session_ttl_minutes"`
}

func Load() (*Config, error) {
	cfg := &Config{
		Env:                      os.Getenv("ENV"),
		ServiceName:              os.Getenv("SERVICE_NAME"),
		ServiceVersion:           os.Getenv("SERVICE_VERSION"),
		DatabaseURL:              os.Getenv("DATABASE_URL"),
		RedisURL:                 os.Getenv("REDIS_URL"),
		AuthJWTSecret:            os.Getenv("AUTH_JWT_SECRET"),
		AuthIssuer:               os.Getenv("AUTH_ISSUER"),
		OpenAIKey:                os.Getenv("OPENAI_API_KEY"),
		GroqKey:                  os.Getenv("GROQ_API_KEY"),
		OtelExporterOTLPEndpoint: os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
		OtelExporterOTLPHeaders:  os.Getenv("OTEL_EXPORTER_OTLP_HEADERS"),
		SentryDSN:                os.Getenv("SENTRY_DSN"),
		Port:                     os.Getenv("PORT"),
	}

	// Load from YAML file if available
	if err := cfg.LoadFromYAML("config.yaml"); err != nil {
		return nil, fmt.Errorf("failed to load YAML config: %w", err)
	}

	// Set defaults
	if cfg.Env == "" {
		cfg.Env = "development"
	}
	if cfg.ServiceName == "" {
		cfg.ServiceName = "huevitoia-chef"
	}
	if cfg.ServiceVersion == "" {
		cfg.ServiceVersion = "1.0.0"
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
	}

	cfg.SetGenerationDefaults()
	cfg.SetConversationDefaults()

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}
	return cfg
}

func (c *Config) LoadFromYAML(path string) error {
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // File not found is not an error
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}

	var yamlConfig struct {
		Generation   GenerationConfig   `yaml:"generation"`
		Conversation ConversationConfig `yaml:"conversation"`
	}

	if err := yaml.Unmarshal(data, &yamlConfig); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	if yamlConfig.Generation.Provider != "" {
		c.Generation.Provider = yamlConfig.Generation.Provider
	}
	if yamlConfig.Generation.FallbackEnabled {
		c.Generation.FallbackEnabled = yamlConfig.Generation.FallbackEnabled
	}
	if yamlConfig.Generation.FallbackProvider != "" {
		c.Generation.FallbackProvider = yamlConfig.Generation.FallbackProvider
	}
	if yamlConfig.Generation.ImageEnabled {
		c.Generation.ImageEnabled = yamlConfig.Generation.ImageEnabled
	}
	if yamlConfig.Conversation.MaxPrepTimeMinutes > 0 {
		c.Conversation.MaxPrepTimeMinutes = yamlConfig.Conversation.MaxPrepTimeMinutes
	}
	if yamlConfig.Conversation.SessionTTLMinutes > 0 {
		c.Conversation.SessionTTLMinutes = yamlConfig.Conversation.SessionTTLMinutes
	}

	return nil
}

func (c *Config) SetGenerationDefaults() {
	if c.Generation.Provider == "" {
		c.Generation.Provider = "groq"
	}
	if !c.Generation.FallbackEnabled {
		c.Generation.FallbackEnabled = true
	}
	if c.Generation.FallbackProvider == "" {
		c.Generation.FallbackProvider = "openai"
	}
}

func (c *Config) SetConversationDefaults() {
	// MaxPrepTimeMinutes stays 0 (unbounded) unless configured; one of the
	// product's form variants caps it at 240, so deployments can opt in.
	if c.Conversation.SessionTTLMinutes == 0 {
		c.Conversation.SessionTTLMinutes = 24 * 60
	}
}

func (c *Config) validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.RedisURL == "" {
		return fmt.Errorf("REDIS_URL is required")
	}
	if c.AuthJWTSecret == "" {
		return fmt.Errorf("AUTH_JWT_SECRET is required")
	}
	return nil
}
