package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// Features gates optional response fields. It is passed explicitly into the
// analysis service so components stay independently testable; there is no
// process-wide toggle state.
type Features struct {
	DecisionTrace   bool
	ImpliedCapRate  bool
	MetricBreakdown bool
}

// Config holds all application configuration loaded from environment variables.
type Config struct {
	FMPBaseURL        string
	FMPAPIKey         string
	FMPRetryMax       int
	FMPRetryBaseDelay time.Duration

	DatabaseURL string

	HTTPPort    string
	AdminAPIKey string

	Watchlist            []string
	ExportWorkerInterval time.Duration
	ExportXLSXPath       string
	SheetsSpreadsheetID  string
	SheetsCredentials    string

	Features Features
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	return Config{
		FMPBaseURL:        envOrDefault("FMP_BASE_URL", "https://financialmodelingprep.com"),
		FMPAPIKey:         envOrDefaultWarn("FMP_API_KEY", ""),
		FMPRetryMax:       envOrDefaultInt("FMP_RETRY_MAX", 5),
		FMPRetryBaseDelay: envOrDefaultDuration("FMP_RETRY_BASE_DELAY", 2*time.Second),

		DatabaseURL: envOrDefault("DATABASE_URL", ""),

		HTTPPort:    envOrDefault("HTTP_PORT", "8080"),
		AdminAPIKey: envOrDefault("ADMIN_API_KEY", ""),

		Watchlist:            splitList(envOrDefault("EXPORT_WATCHLIST", "")),
		ExportWorkerInterval: envOrDefaultDuration("EXPORT_WORKER_INTERVAL", 24*time.Hour),
		ExportXLSXPath:       envOrDefault("EXPORT_XLSX_PATH", ""),
		SheetsSpreadsheetID:  envOrDefault("SHEETS_SPREADSHEET_ID", ""),
		SheetsCredentials:    envOrDefault("SHEETS_CREDENTIALS_JSON", ""),

		Features: Features{
			DecisionTrace:   envOrDefaultBool("FEATURE_DECISION_TRACE", true),
			ImpliedCapRate:  envOrDefaultBool("FEATURE_IMPLIED_CAP_RATE", true),
			MetricBreakdown: envOrDefaultBool("FEATURE_METRIC_BREAKDOWN", true),
		},
	}
}

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func envOrDefault(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func envOrDefaultWarn(key, defaultVal string) string {
	v := envOrDefault(key, defaultVal)
	if v == "" {
		slog.Warn("required env var not set", "key", key)
	}
	return v
}

func envOrDefaultInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			slog.Warn("invalid integer env var, using default", "key", key, "value", v, "default", defaultVal)
			return defaultVal
		}
		return n
	}
	return defaultVal
}

func envOrDefaultBool(key string, defaultVal bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			slog.Warn("invalid boolean env var, using default", "key", key, "value", v, "default", defaultVal)
			return defaultVal
		}
		return b
	}
	return defaultVal
}

func envOrDefaultDuration(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			slog.Warn("invalid duration env var, using default", "key", key, "value", v, "default", defaultVal)
			return defaultVal
		}
		return d
	}
	return defaultVal
}
