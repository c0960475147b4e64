package config

import (
	"encoding/base64"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort string

	MySQLDSN string
	// MySQLPrivilegedDSN is an elevated credential used as a one-shot retry
	// path when the application-level grant rejects a write. Optional; the
	// retry is skipped when empty. Server-only, never exposed to clients.
	MySQLPrivilegedDSN string

	RedisAddr string
	RedisDB   int
	RedisPass string

	JWTSecret string

	MediaBucket          string
	GoogleCredentialsB64 string

	SweepInterval time.Duration

	SwaggerHost string
}

// Load builds Config from environment with sensible defaults. A local .env
// file is honored when present.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		ServerPort:           getEnv("SERVER_PORT", "8080"),
		MySQLDSN:             getEnv("MYSQL_DSN", "votehub:votehub@tcp(localhost:3306)/votehub?charset=utf8mb4&parseTime=True&loc=Local"),
		MySQLPrivilegedDSN:   os.Getenv("MYSQL_PRIVILEGED_DSN"),
		RedisAddr:            getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:              getEnvInt("REDIS_DB", 0),
		RedisPass:            os.Getenv("REDIS_PASSWORD"),
		JWTSecret:            getEnv("JWT_SECRET", "change-me"),
		MediaBucket:          getEnv("MEDIA_BUCKET", "vote-media"),
		GoogleCredentialsB64: os.Getenv("GOOGLE_CREDENTIALS_B64"),
		SweepInterval:        getEnvDuration("STATUS_SWEEP_INTERVAL", time.Minute),
		SwaggerHost:          os.Getenv("SWAGGER_HOST"),
	}
}

// DecodeGoogleCredentials returns the service account key decoded from its
// base64 env representation.
func (c *Config) DecodeGoogleCredentials() ([]byte, error) {
	return base64.StdEncoding.DecodeString(c.GoogleCredentialsB64)
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			return parsed
		}
	}
	return def
}
