package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// DefaultCORSOrigins are the browser origins allowed when CORS_ALLOWED_ORIGINS
// is unset: local development plus the deployed frontends.
const DefaultCORSOrigins = "http://localhost:3000,https://tafsiri-frontend-phi.vercel.app,https://www.tafsiri.site"

type Config struct {
	Environment string `envconfig:"ENVIRONMENT" default:"local"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`

	DatabaseURL string `envconfig:"DATABASE_URL" required:"true"`
	DBMinConns  int32  `envconfig:"TAFSIRI_DB_MIN_CONNS" default:"1"`
	DBMaxConns  int32  `envconfig:"TAFSIRI_DB_MAX_CONNS" default:"8"`

	CORSAllowedOrigins string `envconfig:"CORS_ALLOWED_ORIGINS" default:""`

	// DefaultAdminUID seeds an admin user on startup when the users table is
	// empty. Left blank, no seeding happens.
	DefaultAdminUID  string `envconfig:"DEFAULT_ADMIN_UID" default:""`
	DefaultAdminName string `envconfig:"DEFAULT_ADMIN_NAME" default:"admin"`

	TranslationProvider string        `envconfig:"TRANSLATION_PROVIDER" default:"marian"`
	TranslationEndpoint string        `envconfig:"TRANSLATION_ENDPOINT" default:""`
	TranslationModel    string        `envconfig:"TRANSLATION_MODEL" default:""`
	TranslationTimeout  time.Duration `envconfig:"TRANSLATION_TIMEOUT" default:"30s"`
	HFToken             string        `envconfig:"HF_TOKEN" default:""`
	GoogleCredentials   string        `envconfig:"GOOGLE_APPLICATION_CREDENTIALS" default:""`

	// EnglishDetection rejects pending-sentence submissions that do not look
	// like English.
	EnglishDetection bool `envconfig:"ENGLISH_DETECTION" default:"true"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.DatabaseURL) == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.DBMinConns < 0 {
		return fmt.Errorf("TAFSIRI_DB_MIN_CONNS must be >= 0")
	}
	if c.DBMaxConns < 1 {
		return fmt.Errorf("TAFSIRI_DB_MAX_CONNS must be >= 1")
	}
	if c.DBMinConns > c.DBMaxConns {
		return fmt.Errorf("TAFSIRI_DB_MIN_CONNS (%d) cannot exceed TAFSIRI_DB_MAX_CONNS (%d)", c.DBMinConns, c.DBMaxConns)
	}
	if c.TranslationTimeout <= 0 {
		return fmt.Errorf("TRANSLATION_TIMEOUT must be positive")
	}
	return nil
}

func (c *Config) CORSAllowedOriginsList() []string {
	if c == nil {
		return nil
	}

	raw := c.CORSAllowedOrigins
	if strings.TrimSpace(raw) == "" {
		raw = DefaultCORSOrigins
	}

	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	seen := make(map[string]struct{}, len(parts))
	for _, part := range parts {
		origin := strings.TrimSpace(part)
		if origin == "" {
			continue
		}
		if _, exists := seen[origin]; exists {
			continue
		}
		seen[origin] = struct{}{}
		origins = append(origins, origin)
	}
	return origins
}
