package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDefaults(t *testing.T) {
	cfg, err := Parse()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, []string{"*"}, cfg.Server.CORSOrigins)
	assert.Equal(t, "portfolio.db", cfg.Database.Path)
	assert.Equal(t, 365*24*time.Hour, cfg.Privacy.VisitorRetention)
	assert.Equal(t, "@daily", cfg.Privacy.CleanupSchedule)
	assert.Equal(t, "smtp.gmail.com", cfg.SMTP.Host)
	assert.False(t, cfg.SMTP.Configured())
}

func TestParseFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("GIN_MODE", "release")
	t.Setenv("CORS_ORIGINS", "https://a.dev,https://b.dev")
	t.Setenv("ADMIN_USERNAME", "luis")
	t.Setenv("ADMIN_PASSWORD", "s3cret")
	t.Setenv("SMTP_USER", "me@example.com")
	t.Setenv("SMTP_PASS", "app-pass")
	t.Setenv("TO_EMAIL", "inbox@example.com")
	t.Setenv("VISITOR_RETENTION", "720h")

	cfg, err := Parse()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Server.Port)
	assert.True(t, cfg.IsRelease())
	assert.Equal(t, []string{"https://a.dev", "https://b.dev"}, cfg.Server.CORSOrigins)
	assert.Equal(t, "luis", cfg.Admin.Username)
	assert.Equal(t, "s3cret", cfg.Admin.Password)
	assert.True(t, cfg.SMTP.Configured())
	assert.Equal(t, "inbox@example.com", cfg.Contact.ToEmail)
	assert.Equal(t, 720*time.Hour, cfg.Privacy.VisitorRetention)
}

func TestParseRejectsInvalidValues(t *testing.T) {
	tests := map[string]string{
		"GIN_MODE":          "production",
		"LOG_FORMAT":        "xml",
		"VISITOR_RETENTION": "-1h",
		"CONTACT_BURST":     "0",
	}
	for key, value := range tests {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, value)
			_, err := Parse()
			assert.ErrorContains(t, err, key)
		})
	}

	t.Run("malformed duration", func(t *testing.T) {
		t.Setenv("SHUTDOWN_TIMEOUT", "soon")
		_, err := Parse()
		assert.ErrorContains(t, err, "parse env")
	})
}
