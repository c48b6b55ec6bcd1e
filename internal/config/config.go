// Package config loads runtime settings from the environment and an optional
// .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

const (
	StoreSQLite = "sqlite"
	StoreBolt   = "bolt"
)

// EnvFileVar names the variable that points at the env file. It is read
// before the file is loaded, so it is not a Config field.
const EnvFileVar = "QUESTRANK_ENV_FILE"

// Config holds process-level settings. Rules settings live in the persisted
// state, not here.
type Config struct {
	DBPath  string `env:"QUESTRANK_DB_PATH" envDefault:"~/.questrank.db" validate:"required"`
	Store   string `env:"QUESTRANK_STORE" envDefault:"sqlite" validate:"oneof=sqlite bolt"`
	LogMode string `env:"QUESTRANK_LOG_MODE" envDefault:"prod" validate:"oneof=dev prod"`
	LogFile string `env:"QUESTRANK_LOG_FILE"`
	Seed    int64  `env:"QUESTRANK_SEED" validate:"gte=0"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load reads the optional env file, parses the environment and validates the
// result. A missing env file is not an error.
func Load() (Config, error) {
	path := os.Getenv(EnvFileVar)
	if path == "" {
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load %s: %w", path, err)
	}

	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := validator.New().Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
