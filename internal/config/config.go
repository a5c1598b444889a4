package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Log      LogConfig
	Database DatabaseConfig
	Site     SiteConfig
	Admin    AdminConfig `envPrefix:"ADMIN_"`
	SMTP     SMTPConfig  `envPrefix:"SMTP_"`
	Privacy  PrivacyConfig
	Contact  ContactConfig
}

type ServerConfig struct {
	Port            string        `env:"PORT" envDefault:"8080"`
	Mode            string        `env:"GIN_MODE" envDefault:"debug"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
	CORSOrigins     []string      `env:"CORS_ORIGINS" envSeparator:"," envDefault:"*"`
}

type LogConfig struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"text"`
}

type DatabaseConfig struct {
	Path string `env:"DATABASE_PATH" envDefault:"portfolio.db"`
}

type SiteConfig struct {
	ImagesDir   string `env:"IMAGES_DIR" envDefault:"./images"`
	CatalogPath string `env:"CATALOG_PATH"`
}

type AdminConfig struct {
	Username string `env:"USERNAME"`
	Password string `env:"PASSWORD"`
}

type SMTPConfig struct {
	Host string `env:"HOST" envDefault:"smtp.gmail.com"`
	Port string `env:"PORT" envDefault:"587"`
	User string `env:"USER"`
	Pass string `env:"PASS"`
}

type PrivacyConfig struct {
	VisitorRetention time.Duration `env:"VISITOR_RETENTION" envDefault:"8760h"`
	CleanupSchedule  string        `env:"CLEANUP_SCHEDULE" envDefault:"@daily"`
}

type ContactConfig struct {
	ToEmail     string `env:"TO_EMAIL"`
	RatePerHour int    `env:"CONTACT_RATE_PER_HOUR" envDefault:"5"`
	Burst       int    `env:"CONTACT_BURST" envDefault:"3"`
}

// Load reads a .env file when present and parses the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	return Parse()
}

// Parse builds the configuration from the current environment only.
func Parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}
	switch c.Server.Mode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("GIN_MODE must be debug, release or test, got %q", c.Server.Mode)
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json", "logfmt":
	default:
		return fmt.Errorf("LOG_FORMAT must be text, json or logfmt, got %q", c.Log.Format)
	}
	if c.Database.Path == "" {
		return fmt.Errorf("DATABASE_PATH is required")
	}
	if c.Privacy.VisitorRetention <= 0 {
		return fmt.Errorf("VISITOR_RETENTION must be positive")
	}
	if c.Contact.RatePerHour <= 0 || c.Contact.Burst <= 0 {
		return fmt.Errorf("CONTACT_RATE_PER_HOUR and CONTACT_BURST must be positive")
	}
	return nil
}

// IsRelease reports whether the server runs in gin release mode.
func (c *Config) IsRelease() bool {
	return c.Server.Mode == "release"
}

// Configured reports whether mail delivery credentials are present.
func (s SMTPConfig) Configured() bool {
	return s.User != "" && s.Pass != ""
}
