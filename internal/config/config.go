package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

type Config struct {
	DBPath     string
	ServerPort string
	LogLevel   string

	LedgersDir   string
	LedgerPrefix string
	MaxUploadMB  int

	// Nickname resolution. Exact alias matching is always on; these add
	// fallbacks and enrichment on top of it.
	BackfillExternalID bool
	MatchByName        bool
	MatchByExternalID  bool

	CORSAllowedOrigins []string
}

func Load(logger zerolog.Logger) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Debug().Msg(".env file not found, using environment variables or defaults")
	}

	cfg := &Config{
		DBPath:             getEnv("DB_PATH", "putr.db"),
		ServerPort:         getEnv("SERVER_PORT", "8080"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		LedgersDir:         getEnv("LEDGERS_DIR", "ledgers"),
		LedgerPrefix:       getEnv("LEDGER_FILE_PREFIX", "ledger"),
		CORSAllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),
	}

	var err error
	if cfg.MaxUploadMB, err = getEnvInt("MAX_UPLOAD_MB", 32); err != nil {
		return nil, err
	}
	if cfg.MaxUploadMB <= 0 {
		return nil, fmt.Errorf("MAX_UPLOAD_MB must be positive, got %d", cfg.MaxUploadMB)
	}
	if cfg.BackfillExternalID, err = getEnvBool("LEDGER_BACKFILL_EXTERNAL_ID", true); err != nil {
		return nil, err
	}
	if cfg.MatchByName, err = getEnvBool("NICKNAME_MATCH_NAME", false); err != nil {
		return nil, err
	}
	if cfg.MatchByExternalID, err = getEnvBool("NICKNAME_MATCH_EXTERNAL_ID", false); err != nil {
		return nil, err
	}

	logger.Info().
		Str("db_path", cfg.DBPath).
		Str("server_port", cfg.ServerPort).
		Str("log_level", cfg.LogLevel).
		Str("ledgers_dir", cfg.LedgersDir).
		Str("ledger_prefix", cfg.LedgerPrefix).
		Bool("backfill_external_id", cfg.BackfillExternalID).
		Bool("match_by_name", cfg.MatchByName).
		Bool("match_by_external_id", cfg.MatchByExternalID).
		Msg("configuration loaded")

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvBool(key string, fallback bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return b, nil
}

func getEnvInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return n, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

var Module = fx.Provide(Load)
