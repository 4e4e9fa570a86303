package config

import (
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// devSessionSecret is only ever used when APP_ENV is not "production".
const devSessionSecret = "dev-session-secret-do-not-ship"

type Config struct {
	HTTPAddr    string
	DatabaseURL string
	AppEnv      string

	SessionSecret string

	CORSAllowedOrigins   []string
	CORSAllowCredentials bool
}

func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		HTTPAddr:             getenv("HTTP_ADDR", ":8080"),
		DatabaseURL:          mustGetenv("DATABASE_URL"),
		AppEnv:               getenv("APP_ENV", "development"),
		CORSAllowCredentials: getenv("CORS_ALLOW_CREDENTIALS", "false") == "true",
	}

	origins := strings.Split(getenv("CORS_ALLOWED_ORIGINS", ""), ",")
	for _, o := range origins {
		o = strings.TrimSpace(o)
		if o != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, o)
		}
	}

	cfg.SessionSecret = strings.TrimSpace(os.Getenv("SESSION_SECRET"))
	if cfg.SessionSecret == "" {
		if cfg.AppEnv == "production" {
			panic("missing env: SESSION_SECRET")
		}
		slog.Warn("SESSION_SECRET not set, using development placeholder")
		cfg.SessionSecret = devSessionSecret
	}

	return cfg, nil
}

func getenv(key, def string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return v
}

func mustGetenv(key string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		panic("missing env: " + key)
	}
	return v
}
