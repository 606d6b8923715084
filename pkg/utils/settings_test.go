package utils

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSettingsDefaults(t *testing.T) {
	s, err := LoadSettings(NewConfig(nil))
	require.NoError(t, err)

	assert.Equal(t, "5000", s.Port)
	assert.Empty(t, s.GroqAPIKey)
	assert.Empty(t, s.EmailUser)
	assert.Empty(t, s.EmailPass)
	assert.Equal(t, "smtp.gmail.com", s.SMTPHost)
	assert.Equal(t, 587, s.SMTPPort)
	assert.Equal(t, []string{"*"}, s.CORSAllowedOrigins)
	assert.Equal(t, time.Duration(0), s.UpstreamTimeout)
	assert.Equal(t, SummaryFormatPreformatted, s.SummaryFormat)
	assert.Equal(t, slog.LevelInfo, s.SlogLevel())
}

func TestLoadSettingsOverrides(t *testing.T) {
	s, err := LoadSettings(NewConfig(map[string]string{
		"PORT":                 "8081",
		"GROQ_API_KEY":         "gsk_test",
		"EMAIL_USER":           "me@example.com",
		"EMAIL_PASS":           "secret",
		"SMTP_HOST":            "mail.example.com",
		"SMTP_PORT":            "2525",
		"CORS_ALLOWED_ORIGINS": "https://a.example, https://b.example",
		"UPSTREAM_TIMEOUT":     "45s",
		"EMAIL_SUMMARY_FORMAT": "Markdown",
		"LOG_LEVEL":            "debug",
	}))
	require.NoError(t, err)

	assert.Equal(t, "8081", s.Port)
	assert.Equal(t, "gsk_test", s.GroqAPIKey)
	assert.Equal(t, "me@example.com", s.EmailUser)
	assert.Equal(t, "secret", s.EmailPass)
	assert.Equal(t, "mail.example.com", s.SMTPHost)
	assert.Equal(t, 2525, s.SMTPPort)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, s.CORSAllowedOrigins)
	assert.Equal(t, 45*time.Second, s.UpstreamTimeout)
	assert.Equal(t, SummaryFormatMarkdown, s.SummaryFormat)
	assert.Equal(t, slog.LevelDebug, s.SlogLevel())
}

func TestLoadSettingsErrors(t *testing.T) {
	tests := []struct {
		name   string
		values map[string]string
	}{
		{"bad port", map[string]string{"SMTP_PORT": "not-a-port"}},
		{"bad timeout", map[string]string{"UPSTREAM_TIMEOUT": "soon"}},
		{"negative timeout", map[string]string{"UPSTREAM_TIMEOUT": "-1s"}},
		{"unknown format", map[string]string{"EMAIL_SUMMARY_FORMAT": "pdf"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadSettings(NewConfig(tt.values))
			assert.Error(t, err)
		})
	}
}
