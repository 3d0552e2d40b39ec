package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadAppliesDefaults(t *testing.T) {
	t.Setenv("DB_DSN", "postgres://localhost/removals")
	t.Setenv("JWT_ACCESS_SECRET", "secret")
	t.Setenv("COMPANY_EMAIL", "office@example.com")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "0.0.0.0", cfg.HTTP.Host)
	assert.Equal(t, 7090, cfg.HTTP.Port)
	assert.Equal(t, []string{"*"}, cfg.HTTP.AllowedOrigins)
	assert.Equal(t, 15.0, cfg.Documents.DefaultVATPercentage)
	assert.Equal(t, 30, cfg.Documents.InvoiceDueDays)
	assert.Equal(t, 5, cfg.Documents.NumberingMaxAttempts)
	assert.Equal(t, "office@example.com", cfg.Mail.FromEmail)
	assert.Equal(t, "Removals Office", cfg.Mail.FromName)
}

func TestLoadRequiresDSNAndSecret(t *testing.T) {
	t.Setenv("DB_DSN", "")
	t.Setenv("JWT_ACCESS_SECRET", "secret")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_DSN")

	t.Setenv("DB_DSN", "postgres://localhost/removals")
	t.Setenv("JWT_ACCESS_SECRET", "")

	_, err = Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_ACCESS_SECRET")
}

func TestLoadRejectsOutOfRangeVAT(t *testing.T) {
	t.Setenv("DB_DSN", "postgres://localhost/removals")
	t.Setenv("JWT_ACCESS_SECRET", "secret")
	t.Setenv("DOCUMENTS_DEFAULT_VAT", "120")

	_, err := Load()
	require.Error(t, err)
}

func TestParseList(t *testing.T) {
	assert.Nil(t, parseList("  "))
	assert.Equal(t, []string{"a", "b"}, parseList(" a, ,b "))
}
