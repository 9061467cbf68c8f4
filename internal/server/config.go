package server

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config comes from the environment.
type Config struct {
	Addr       string `env:"BAND_IT_ADDR" envDefault:":8080"`
	SaveDir    string `env:"BAND_IT_SAVE_DIR" envDefault:"."`
	Seed       int64  `env:"BAND_IT_SEED" envDefault:"0"`
	SongAPIKey string `env:"BAND_IT_SONG_API_KEY"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}
