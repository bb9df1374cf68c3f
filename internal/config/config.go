package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPAddr  string
	PublicURL string

	DBDriver string
	DBDSN    string

	// Directory for uploaded reference material.
	DataDir string

	// Question-generation webhook.
	WebhookURL     string
	WebhookTimeout time.Duration

	// Parser defaults applied when the webhook omits a section.
	DefaultDifficulty string
	DefaultModel      string

	AuthHMACSecret string

	CORSOrigins []string
}

// FromEnv loads configuration from the environment. A .env file next to the
// binary is folded in first when present (existing env vars win).
func FromEnv() Config {
	_ = godotenv.Load()

	addr := os.Getenv("HTTP_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	return Config{
		HTTPAddr:  addr,
		PublicURL: os.Getenv("PUBLIC_URL"),

		DBDriver: envOr("DB_DRIVER", "sqlite"),
		DBDSN:    envOr("DB_DSN", ""),

		DataDir: envOr("DATA_DIR", "./data/materials"),

		WebhookURL:     envOr("WEBHOOK_URL", "https://n8n.mdensino.com.br/webhook-test/medquest"),
		WebhookTimeout: envDuration("WEBHOOK_TIMEOUT", 2*time.Minute),

		DefaultDifficulty: envOr("DEFAULT_DIFFICULTY", "Médio"),
		DefaultModel:      envOr("DEFAULT_MODEL", "Múltipla Escolha"),

		AuthHMACSecret: envOr("AUTH_HMAC_SECRET", "supersecret-dev-key"),

		CORSOrigins: csvOr("CORS_ORIGINS", "http://localhost:3000"),
	}
}

func envOr(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}

func envDuration(k string, def time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(v); err == nil {
		return time.Duration(secs) * time.Second
	}
	return def
}

func csvOr(k, def string) []string {
	v := envOr(k, def)
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
