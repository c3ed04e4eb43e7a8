package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config carries every tunable of the server. Defaults cover all of them,
// so the config file is optional.
type Config struct {
	Addr     string `mapstructure:"addr"`
	LogLevel string `mapstructure:"log_level"`
	WordFile string `mapstructure:"word_file"`

	RoundSeconds  int `mapstructure:"round_seconds"`
	RoundsPerGame int `mapstructure:"rounds_per_game"`
	RevealSeconds int `mapstructure:"reveal_seconds"`

	PointsCorrectGuess int `mapstructure:"points_correct_guess"`
	PointsDrawingBonus int `mapstructure:"points_drawing_bonus"`

	DefaultMaxPlayers int `mapstructure:"default_max_players"`
	CodeBytes         int `mapstructure:"code_bytes"`

	SweepInterval     time.Duration `mapstructure:"sweep_interval"`
	InactivityTimeout time.Duration `mapstructure:"inactivity_timeout"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("addr", ":3000")
	v.SetDefault("log_level", "info")
	v.SetDefault("word_file", "")
	v.SetDefault("round_seconds", 80)
	v.SetDefault("rounds_per_game", 6)
	v.SetDefault("reveal_seconds", 6)
	v.SetDefault("points_correct_guess", 100)
	v.SetDefault("points_drawing_bonus", 50)
	v.SetDefault("default_max_players", 8)
	v.SetDefault("code_bytes", 4)
	v.SetDefault("sweep_interval", time.Minute)
	v.SetDefault("inactivity_timeout", 30*time.Minute)
}

// Load reads sketchparty.yaml from the working directory if present and
// merges SKETCHPARTY_* environment variables over the defaults.
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("sketchparty")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.SetEnvPrefix("sketchparty")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return &cfg, nil
}
