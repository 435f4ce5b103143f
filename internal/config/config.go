package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix scopes environment overrides, e.g. FORMKIT_LOG_LEVEL.
const EnvPrefix = "FORMKIT"

// Config aggregates CLI settings sourced from an optional file, the
// environment and defaults.
type Config struct {
	Log    LogConfig    `mapstructure:"log"`
	Render RenderConfig `mapstructure:"render"`
	Theme  ThemeConfig  `mapstructure:"theme"`
	API    APIConfig    `mapstructure:"api"`
	Schema SchemaConfig `mapstructure:"schema"`
}

// LogConfig feeds the go-logger provider.
type LogConfig struct {
	Level  string   `mapstructure:"level"`
	Format string   `mapstructure:"format"`
	Focus  []string `mapstructure:"focus"`
}

// RenderConfig selects the renderer and its defaults.
type RenderConfig struct {
	Renderer string `mapstructure:"renderer"`
	Locale   string `mapstructure:"locale"`
	Output   string `mapstructure:"output"`
}

// ThemeConfig points at an on-disk go-theme manifest.
type ThemeConfig struct {
	Dir     string `mapstructure:"dir"`
	Name    string `mapstructure:"name"`
	Variant string `mapstructure:"variant"`
}

// APIConfig configures the posts REST client. An empty BaseURL disables
// publishing.
type APIConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Token   string        `mapstructure:"token"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// SchemaConfig tunes schema loading.
type SchemaConfig struct {
	HTTPTimeout time.Duration `mapstructure:"http_timeout"`
	Preset      string        `mapstructure:"preset"`
}

// Load reads path (when non-empty) and layers FORMKIT_* environment
// variables over it.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path = strings.TrimSpace(path); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	if err := validate(cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// MustLoad wraps Load and panics on failure.
func MustLoad(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		panic(err)
	}
	return cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.focus", []string{})
	v.SetDefault("render.renderer", "vanilla")
	v.SetDefault("render.locale", "en")
	v.SetDefault("render.output", "json")
	v.SetDefault("theme.dir", "")
	v.SetDefault("theme.name", "")
	v.SetDefault("theme.variant", "")
	v.SetDefault("api.base_url", "")
	v.SetDefault("api.token", "")
	v.SetDefault("api.timeout", 15*time.Second)
	v.SetDefault("schema.http_timeout", 10*time.Second)
	v.SetDefault("schema.preset", "")
}

func validate(cfg Config) error {
	switch cfg.Render.Renderer {
	case "vanilla", "tui":
	default:
		return fmt.Errorf("config: unsupported renderer %q", cfg.Render.Renderer)
	}
	switch cfg.Render.Locale {
	case "en", "ar":
	default:
		return fmt.Errorf("config: unsupported locale %q", cfg.Render.Locale)
	}
	if cfg.API.Timeout <= 0 {
		return errors.New("config: api timeout must be positive")
	}
	if cfg.Schema.HTTPTimeout <= 0 {
		return errors.New("config: schema http timeout must be positive")
	}
	return nil
}
