package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all service configuration loaded from environment variables.
type Config struct {
	Port             string
	DatabaseUser     string
	DatabasePassword string
	DatabaseHost     string
	DatabasePort     string
	DatabaseName     string
	JWTSecret        string
	TokenTTL         time.Duration
}

func Load() *Config {
	return &Config{
		Port:             getenv("PORT", "8080"),
		DatabaseUser:     getenv("DATABASE_USERNAME", "postgres"),
		DatabasePassword: getenv("DATABASE_PASSWORD", ""),
		DatabaseHost:     getenv("DATABASE_HOSTNAME", "localhost"),
		DatabasePort:     getenv("DATABASE_PORT", "5432"),
		DatabaseName:     getenv("DATABASE_NAME", "postgres"),
		JWTSecret:        getenv("JWT_SECRET", ""),
		TokenTTL:         time.Duration(getenvInt("TOKEN_TTL_MINUTES", 30)) * time.Minute,
	}
}

// PostgresDSN assembles the connection string from the discrete database settings.
func (c *Config) PostgresDSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s",
		c.DatabaseUser, c.DatabasePassword, c.DatabaseHost, c.DatabasePort, c.DatabaseName)
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
