package config

import (
	"fmt"

	"github.com/caarlos0/env/v10"
)

const (
	fallbackFromEmail = "no-reply@ramgrowth.dev"
	defaultToEmail    = "leads@ramgrowth.dev"
)

// MailConfig holds the SMTP relay settings used for lead notifications.
// Notifications go to DEFAULT_TO_EMAIL, which falls back to
// defaultToEmail when unset.
type MailConfig struct {
	Host        string `env:"SMTP_HOST"`
	Port        int    `env:"SMTP_PORT" envDefault:"587"`
	Username    string `env:"SMTP_USER"`
	Password    string `env:"SMTP_PASS"`
	To          string `env:"DEFAULT_TO_EMAIL" envDefault:"leads@ramgrowth.dev"` // keep in sync with defaultToEmail
	From        string `env:"FROM_EMAIL"`
	PhoneRegion string `env:"DEFAULT_PHONE_REGION" envDefault:"US"`
}

// Enabled reports whether enough relay credentials are present to send mail.
func (m MailConfig) Enabled() bool {
	return m.Host != "" && m.Port > 0 && m.Username != "" && m.Password != ""
}

// Config aggregates application-wide configuration values.
type Config struct {
	Port           string   `env:"PORT" envDefault:"8000"`
	DatabaseURL    string   `env:"DATABASE_URL"`
	DatabaseName   string   `env:"DATABASE_NAME"`
	LogLevel       string   `env:"LOG_LEVEL" envDefault:"info"`
	LogFile        string   `env:"LOG_FILE"`
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`
	Mail           MailConfig
}

// Load reads configuration from environment variables and applies sane defaults.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	if cfg.Mail.Port <= 0 {
		return nil, fmt.Errorf("invalid SMTP_PORT value: %d", cfg.Mail.Port)
	}
	if cfg.Mail.From == "" {
		cfg.Mail.From = fallback(cfg.Mail.Username, fallbackFromEmail)
	}

	return cfg, nil
}

func fallback(value, def string) string {
	if value != "" {
		return value
	}
	return def
}
