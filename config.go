package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config holds all environment variables for the cakeshop service.
type Config struct {
	Port       string // Service port (default: 8080)
	Env        string // "production" skips auto-migration and uses release mode
	DBDriver   string // "sqlite" or "postgres"
	SQLitePath string // SQLite database file when DBDriver is sqlite
}

// LoadConfig loads environment variables into a Config struct and validates
// them. Postgres credentials are read by the database package itself.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:       os.Getenv("PORT"),
		Env:        os.Getenv("ENV"),
		DBDriver:   os.Getenv("DB_DRIVER"),
		SQLitePath: os.Getenv("SQLITE_PATH"),
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.DBDriver == "" {
		cfg.DBDriver = "sqlite"
	}
	if cfg.SQLitePath == "" {
		cfg.SQLitePath = "cakeshop.db"
	}

	if cfg.DBDriver != "sqlite" && cfg.DBDriver != "postgres" {
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}

	return cfg, nil
}
