package api

import (
	"fmt"
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/ethanbaker/minutes/internal/mailer"
	"github.com/ethanbaker/minutes/internal/summarizer"
	"github.com/ethanbaker/minutes/pkg/utils"
)

// NewServices builds the summarizer and the share dispatcher from settings
// The SMTP transport is only created when real credentials are present
func NewServices(settings utils.Settings, log *slog.Logger) Services {
	if settings.GroqAPIKey == "" {
		log.Warn("GROQ_API_KEY is not set, summary generation will fail",
			"component", "api")
	}

	creds := mailer.ResolveCredentials(settings.EmailUser, settings.EmailPass)

	var transport mailer.Transport
	if configured, ok := creds.(mailer.Configured); ok {
		transport = mailer.NewSMTPTransport(settings.SMTPHost, settings.SMTPPort, configured)
	} else {
		log.Info("Email credentials not configured, sharing runs in demo mode",
			"component", "api")
	}

	return Services{
		Summarizer: summarizer.NewGroqSummarizer(settings.GroqAPIKey, settings.UpstreamTimeout, log),
		Dispatcher: mailer.NewDispatcher(creds, transport, mailer.NewRenderer(settings.SummaryFormat), settings.UpstreamTimeout, log),
	}
}

// ConfigureMode applies GIN_MODE from cfg, defaulting to release mode
func ConfigureMode(cfg *utils.Config) error {
	mode := cfg.GetWithDefault("GIN_MODE", gin.ReleaseMode)
	switch mode {
	case gin.DebugMode, gin.ReleaseMode, gin.TestMode:
		gin.SetMode(mode)
		return nil
	default:
		return fmt.Errorf("GIN_MODE must be %q, %q or %q, got %q", gin.DebugMode, gin.ReleaseMode, gin.TestMode, mode)
	}
}
