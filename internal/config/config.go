// Package config loads gowalk settings with viper. Every engine constant has
// a default, so running without a config file reproduces the reference
// walking behavior.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix is prepended to environment overrides, e.g. GOWALK_LOCOMOTION_SPEED
const EnvPrefix = "GOWALK"

// Locomotion holds first-person walking parameters
type Locomotion struct {
	Speed           float64 `mapstructure:"speed"`
	Damping         float64 `mapstructure:"damping"`
	Lookahead       float64 `mapstructure:"lookahead"`
	Buffer          float64 `mapstructure:"buffer"`
	EyeHeight       float64 `mapstructure:"eyeHeight"`
	LookSensitivity float64 `mapstructure:"lookSensitivity"`
}

// Transition holds orbit camera animation parameters
type Transition struct {
	Duration float64 `mapstructure:"duration"`
}

// Minimap holds top-down map parameters
type Minimap struct {
	Size float64 `mapstructure:"size"`
}

// Bounds holds the scene scan schedule
type Bounds struct {
	InitialDelay time.Duration `mapstructure:"initialDelay"`
	RetryDelay   time.Duration `mapstructure:"retryDelay"`
	MaxAttempts  int           `mapstructure:"maxAttempts"`
}

// Viewpoints points at an optional room table file
type Viewpoints struct {
	File string `mapstructure:"file"`
}

// Window holds interactive host settings
type Window struct {
	Width  int `mapstructure:"width"`
	Height int `mapstructure:"height"`
	FPS    int `mapstructure:"fps"`
}

// Config is the complete gowalk configuration
type Config struct {
	LogLevel   string     `mapstructure:"logLevel"`
	Locomotion Locomotion `mapstructure:"locomotion"`
	Transition Transition `mapstructure:"transition"`
	Minimap    Minimap    `mapstructure:"minimap"`
	Bounds     Bounds     `mapstructure:"bounds"`
	Viewpoints Viewpoints `mapstructure:"viewpoints"`
	Window     Window     `mapstructure:"window"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logLevel", "info")

	v.SetDefault("locomotion.speed", 1.5)
	v.SetDefault("locomotion.damping", 8.0)
	v.SetDefault("locomotion.lookahead", 0.8)
	v.SetDefault("locomotion.buffer", 0.5)
	v.SetDefault("locomotion.eyeHeight", 1.7)
	v.SetDefault("locomotion.lookSensitivity", 0.002)

	v.SetDefault("transition.duration", 1.5)

	v.SetDefault("minimap.size", 180.0)

	v.SetDefault("bounds.initialDelay", time.Second)
	v.SetDefault("bounds.retryDelay", 500*time.Millisecond)
	v.SetDefault("bounds.maxAttempts", 0)

	v.SetDefault("viewpoints.file", "")

	v.SetDefault("window.width", 1400)
	v.SetDefault("window.height", 900)
	v.SetDefault("window.fps", 60)
}

// Default returns the configuration without any file or environment input
func Default() Config {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	// Defaults always decode.
	_ = v.Unmarshal(&cfg)
	return cfg
}

// Load reads configuration from path (YAML, JSON or TOML by extension) on top
// of the defaults, then applies GOWALK_* environment overrides. With an empty
// path, ./gowalk.yaml is used when present.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("error reading config file: %w", err)
		}
	} else {
		v.SetConfigName("gowalk")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Config{}, fmt.Errorf("error reading config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("error decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects values that would stall or invert the simulation
func (c Config) Validate() error {
	switch {
	case c.Locomotion.Speed < 0:
		return fmt.Errorf("locomotion.speed must not be negative, got %v", c.Locomotion.Speed)
	case c.Locomotion.Damping < 0:
		return fmt.Errorf("locomotion.damping must not be negative, got %v", c.Locomotion.Damping)
	case c.Locomotion.Lookahead <= 0:
		return fmt.Errorf("locomotion.lookahead must be positive, got %v", c.Locomotion.Lookahead)
	case c.Transition.Duration <= 0:
		return fmt.Errorf("transition.duration must be positive, got %v", c.Transition.Duration)
	case c.Minimap.Size <= 0:
		return fmt.Errorf("minimap.size must be positive, got %v", c.Minimap.Size)
	case c.Bounds.RetryDelay <= 0:
		return fmt.Errorf("bounds.retryDelay must be positive, got %v", c.Bounds.RetryDelay)
	}
	return nil
}
