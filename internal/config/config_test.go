package config

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"DB_PATH", "SERVER_PORT", "LOG_LEVEL", "LEDGERS_DIR", "LEDGER_FILE_PREFIX",
		"MAX_UPLOAD_MB", "LEDGER_BACKFILL_EXTERNAL_ID", "NICKNAME_MATCH_NAME",
		"NICKNAME_MATCH_EXTERNAL_ID", "CORS_ALLOWED_ORIGINS",
	} {
		t.Setenv(key, "")
	}
	t.Chdir(t.TempDir())

	cfg, err := Load(zerolog.Nop())
	require.NoError(t, err)
	require.Equal(t, "putr.db", cfg.DBPath)
	require.Equal(t, "8080", cfg.ServerPort)
	require.Equal(t, "ledgers", cfg.LedgersDir)
	require.Equal(t, "ledger", cfg.LedgerPrefix)
	require.Equal(t, 32, cfg.MaxUploadMB)
	require.True(t, cfg.BackfillExternalID)
	require.False(t, cfg.MatchByName)
	require.False(t, cfg.MatchByExternalID)
	require.Equal(t, []string{"*"}, cfg.CORSAllowedOrigins)
}

func TestLoadOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("DB_PATH", "/tmp/other.db")
	t.Setenv("MAX_UPLOAD_MB", "8")
	t.Setenv("LEDGER_BACKFILL_EXTERNAL_ID", "false")
	t.Setenv("NICKNAME_MATCH_NAME", "1")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")

	cfg, err := Load(zerolog.Nop())
	require.NoError(t, err)
	require.Equal(t, "/tmp/other.db", cfg.DBPath)
	require.Equal(t, 8, cfg.MaxUploadMB)
	require.False(t, cfg.BackfillExternalID)
	require.True(t, cfg.MatchByName)
	require.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Chdir(t.TempDir())

	t.Setenv("MAX_UPLOAD_MB", "lots")
	_, err := Load(zerolog.Nop())
	require.Error(t, err)

	t.Setenv("MAX_UPLOAD_MB", "0")
	_, err = Load(zerolog.Nop())
	require.Error(t, err)

	t.Setenv("MAX_UPLOAD_MB", "")
	t.Setenv("NICKNAME_MATCH_EXTERNAL_ID", "maybe")
	_, err = Load(zerolog.Nop())
	require.Error(t, err)
}
