package utils

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Summary body formats understood by the mailer
const (
	SummaryFormatPreformatted = "preformatted"
	SummaryFormatMarkdown     = "markdown"
)

// Settings is the typed view of the process configuration
type Settings struct {
	Port string `env:"PORT" envDefault:"5000"`

	// Completion API key, sent as a bearer token
	GroqAPIKey string `env:"GROQ_API_KEY"`

	// Sender credentials. Leaving either unset selects demo mode
	EmailUser string `env:"EMAIL_USER"`
	EmailPass string `env:"EMAIL_PASS"`
	SMTPHost  string `env:"SMTP_HOST" envDefault:"smtp.gmail.com"`
	SMTPPort  int    `env:"SMTP_PORT" envDefault:"587"`

	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`

	// Deadline applied to each outbound call. Zero means no deadline
	UpstreamTimeout time.Duration `env:"UPSTREAM_TIMEOUT" envDefault:"0s"`

	SummaryFormat string `env:"EMAIL_SUMMARY_FORMAT" envDefault:"preformatted"`
	LogLevel      string `env:"LOG_LEVEL" envDefault:"info"`
}

// LoadSettings parses the typed settings out of a raw config
func LoadSettings(cfg *Config) (Settings, error) {
	var s Settings
	if err := env.ParseWithOptions(&s, env.Options{Environment: cfg.ToMap()}); err != nil {
		return Settings{}, fmt.Errorf("parse settings: %w", err)
	}

	s.SummaryFormat = strings.ToLower(strings.TrimSpace(s.SummaryFormat))
	switch s.SummaryFormat {
	case SummaryFormatPreformatted, SummaryFormatMarkdown:
	default:
		return Settings{}, fmt.Errorf("EMAIL_SUMMARY_FORMAT must be %q or %q, got %q",
			SummaryFormatPreformatted, SummaryFormatMarkdown, s.SummaryFormat)
	}

	if s.UpstreamTimeout < 0 {
		return Settings{}, fmt.Errorf("UPSTREAM_TIMEOUT must not be negative, got %s", s.UpstreamTimeout)
	}

	for i, origin := range s.CORSAllowedOrigins {
		s.CORSAllowedOrigins[i] = strings.TrimSpace(origin)
	}

	return s, nil
}

// SlogLevel maps LOG_LEVEL onto a slog level, defaulting to info
func (s Settings) SlogLevel() slog.Level {
	switch strings.ToLower(s.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
