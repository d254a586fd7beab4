// Package config loads server configuration from the environment, with an
// optional .env file for local development.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds everything the server needs to start.
type Config struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string
	// DBPath is the SQLite database file path.
	DBPath string
	// JWTSecret signs operator tokens. Required.
	JWTSecret string
	// TokenTTL is how long issued tokens stay valid.
	TokenTTL time.Duration
	// CascadeDelete switches group/subscriber deletion from guarded
	// (refuse when dependents exist) to cascading.
	CascadeDelete bool
}

// Load reads configuration from the environment. A .env file in the working
// directory is loaded first if present; real environment variables win.
func Load() (*Config, error) {
	if err := godotenv.Load(); err == nil {
		slog.Debug("Loaded .env file")
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, fmt.Errorf("JWT_SECRET must be set")
	}

	ttlHours := 24
	if v := os.Getenv("TOKEN_TTL_HOURS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("invalid TOKEN_TTL_HOURS %q", v)
		}
		ttlHours = n
	}

	cascade := false
	if v := os.Getenv("CASCADE_DELETE"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("invalid CASCADE_DELETE %q", v)
		}
		cascade = b
	}

	return &Config{
		Addr:          getEnv("ADDR", ":8080"),
		DBPath:        getEnv("DB_PATH", "data/chitledger.db"),
		JWTSecret:     secret,
		TokenTTL:      time.Duration(ttlHours) * time.Hour,
		CascadeDelete: cascade,
	}, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
