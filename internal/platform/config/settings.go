package config

import (
	"fmt"
	"strings"

	"go.uber.org/zap/zapcore"
)

// EnvPrefix is prepended to every setting read from the environment.
const EnvPrefix = "BOARDPLAY_"

// Settings holds process-wide options shared by the boardplay commands.
type Settings struct {
	Locale   string `env:"LOCALE" envDefault:"en-US"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	// Seed drives the move generator. Zero asks for a fresh random seed.
	Seed int64 `env:"SEED" envDefault:"0"`
}

// LoadSettings reads Settings from BOARDPLAY_* variables and validates them.
func LoadSettings() (Settings, error) {
	var settings Settings
	if err := ParseEnvWithPrefix(&settings, EnvPrefix); err != nil {
		return Settings{}, err
	}
	if err := settings.Validate(); err != nil {
		return Settings{}, err
	}
	return settings, nil
}

// Validate normalizes and checks the settings.
func (s *Settings) Validate() error {
	s.Locale = strings.TrimSpace(s.Locale)
	if s.Locale == "" {
		return fmt.Errorf("locale is required")
	}
	s.LogLevel = strings.ToLower(strings.TrimSpace(s.LogLevel))
	if _, err := zapcore.ParseLevel(s.LogLevel); err != nil {
		return fmt.Errorf("log level %q: %w", s.LogLevel, err)
	}
	return nil
}
