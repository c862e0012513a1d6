package config

import (
	"errors"
	"os"

	"github.com/joho/godotenv"
)

// Config holds server settings. Values come from the environment (with an
// optional .env file), and command-line flags may override them.
type Config struct {
	Addr      string
	DBPath    string
	UploadDir string
	LogPath   string
}

// Defaults used when neither the environment nor flags provide a value.
const (
	DefaultAddr      = ":8080"
	DefaultDBPath    = "inventar.sqlite3"
	DefaultUploadDir = "uploads"
)

// Load reads configuration from the environment. A .env file in the working
// directory is loaded first if present; a missing file is not an error.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	return &Config{
		Addr:      envOr("INVENTAR_ADDR", DefaultAddr),
		DBPath:    envOr("INVENTAR_DB", DefaultDBPath),
		UploadDir: envOr("INVENTAR_UPLOAD_DIR", DefaultUploadDir),
		LogPath:   os.Getenv("INVENTAR_LOG"),
	}, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
