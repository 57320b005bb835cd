package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the runtime settings the handlers and report pipeline need.
// Values come from the environment (optionally via a .env file) with
// sensible defaults for local runs.
type Config struct {
	UploadDir            string
	ReportDir            string
	MaxUploadMB          int64
	CleanupIntervalHours int
	CompanyName          string
}

func Load() (Config, error) {
	_ = godotenv.Load()

	cwd, err := os.Getwd()
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		UploadDir:            getEnv("UPLOAD_DIR", filepath.Join(cwd, "data", "uploads")),
		ReportDir:            getEnv("REPORT_DIR", filepath.Join(cwd, "data", "reports")),
		MaxUploadMB:          int64(getEnvInt("MAX_UPLOAD_MB", 16)),
		CleanupIntervalHours: getEnvInt("CLEANUP_INTERVAL_HOURS", 24),
		CompanyName:          getEnv("COMPANY_NAME", ""),
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
