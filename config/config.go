package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/fx"
)

type R2Config struct {
	AccountID       string
	AccessKeyID     string
	SecretAccessKey string
	BucketName      string
	PublicBaseURL   string
}

// Enabled reports whether battle logs should be archived.
func (r R2Config) Enabled() bool {
	return r.AccountID != "" && r.AccessKeyID != "" && r.SecretAccessKey != "" && r.BucketName != "" && r.PublicBaseURL != ""
}

type Config struct {
	DatabaseURL        string
	JWTSecretKey       string
	ServerPort         int
	LogLevel           string
	QueueTimeout       time.Duration
	BattleMaxTurns     int
	DBPingTimeout      time.Duration
	CORSAllowedOrigins []string
	R2                 R2Config
}

// Load reads the configuration from the environment. A .env file is loaded
// first when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is not set")
	}

	jwtKey := os.Getenv("JWT_SECRET_KEY")
	if jwtKey == "" {
		return nil, fmt.Errorf("JWT_SECRET_KEY environment variable is not set")
	}

	port, err := strconv.Atoi(getEnv("SERVER_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_PORT environment variable: %w", err)
	}
	if port <= 0 || port > 65535 {
		return nil, fmt.Errorf("SERVER_PORT must be between 1 and 65535, got %d", port)
	}

	queueTimeout, err := time.ParseDuration(getEnv("QUEUE_TIMEOUT", "5m"))
	if err != nil || queueTimeout <= 0 {
		return nil, fmt.Errorf("invalid QUEUE_TIMEOUT environment variable %q", os.Getenv("QUEUE_TIMEOUT"))
	}

	maxTurns, err := strconv.Atoi(getEnv("BATTLE_MAX_TURNS", "50"))
	if err != nil || maxTurns <= 0 {
		return nil, fmt.Errorf("invalid BATTLE_MAX_TURNS environment variable %q", os.Getenv("BATTLE_MAX_TURNS"))
	}

	pingTimeout, err := time.ParseDuration(getEnv("DB_PING_TIMEOUT", "5s"))
	if err != nil || pingTimeout <= 0 {
		return nil, fmt.Errorf("invalid DB_PING_TIMEOUT environment variable %q", os.Getenv("DB_PING_TIMEOUT"))
	}

	cfg := &Config{
		DatabaseURL:        dbURL,
		JWTSecretKey:       jwtKey,
		ServerPort:         port,
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		QueueTimeout:       queueTimeout,
		BattleMaxTurns:     maxTurns,
		DBPingTimeout:      pingTimeout,
		CORSAllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		R2: R2Config{
			AccountID:       os.Getenv("R2_ACCOUNT_ID"),
			AccessKeyID:     os.Getenv("R2_ACCESS_KEY_ID"),
			SecretAccessKey: os.Getenv("R2_SECRET_ACCESS_KEY"),
			BucketName:      os.Getenv("R2_BUCKET_NAME"),
			PublicBaseURL:   os.Getenv("R2_PUBLIC_BASE_URL"),
		},
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

var Module = fx.Provide(Load)
