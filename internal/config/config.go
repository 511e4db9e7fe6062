package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Catalog sources.
const (
	SourceFixture = "fixture"
	SourceFile    = "file"
	SourceSQLite  = "sqlite"
)

// Config holds application configuration.
type Config struct {
	Catalog  CatalogConfig  `mapstructure:"catalog"`
	Database DatabaseConfig `mapstructure:"database"`
	UI       UIConfig       `mapstructure:"ui"`
	Log      LogConfig      `mapstructure:"log"`
}

// CatalogConfig selects where election records come from.
type CatalogConfig struct {
	Source string        `mapstructure:"source"`
	Path   string        `mapstructure:"path"`
	Delay  time.Duration `mapstructure:"delay"`
}

// DatabaseConfig holds sqlite settings for the catalog snapshot.
type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	Timezone string   `mapstructure:"timezone"`
	Locale   string   `mapstructure:"locale"`
	Types    []string `mapstructure:"types"`
}

// LogConfig controls the structured log file. An empty path disables logging.
type LogConfig struct {
	Path  string `mapstructure:"path"`
	Level string `mapstructure:"level"`
}

// SlogLevel parses the configured level, defaulting to info.
func (c LogConfig) SlogLevel() (slog.Level, error) {
	var lvl slog.Level
	if strings.TrimSpace(c.Level) == "" {
		return slog.LevelInfo, nil
	}
	if err := lvl.UnmarshalText([]byte(c.Level)); err != nil {
		return slog.LevelInfo, fmt.Errorf("log level %q: %w", c.Level, err)
	}
	return lvl, nil
}

func defaultPath() string {
	return filepath.Join(os.Getenv("HOME"), ".config", "elections", "config.toml")
}

func newViper() *viper.Viper {
	v := viper.New()

	// default values
	v.SetDefault("catalog.source", SourceFixture)
	v.SetDefault("catalog.path", "")
	v.SetDefault("catalog.delay", "1s")
	v.SetDefault("database.path", filepath.Join(os.Getenv("HOME"), ".local", "share", "elections", "elections.db"))
	v.SetDefault("ui.timezone", "Europe/Paris")
	v.SetDefault("ui.locale", "fr-FR")
	v.SetDefault("ui.types", []string{})
	v.SetDefault("log.path", "")
	v.SetDefault("log.level", "info")

	v.SetConfigType("toml")
	v.SetEnvPrefix("ELECTIONS")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	return v
}

// Load reads configuration from file and env. The file is
// $ELECTIONS_CONFIG when set, else ~/.config/elections/config.toml.
// Env var overrides use prefix ELECTIONS_.
func Load() (Config, error) {
	return LoadFrom(os.Getenv("ELECTIONS_CONFIG"))
}

// LoadFrom is Load with an explicit config file. A missing file is only an
// error when path is given explicitly.
func LoadFrom(path string) (Config, error) {
	v := newViper()
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	} else {
		v.AddConfigPath(filepath.Dir(defaultPath()))
		v.SetConfigName("config")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Config{}, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	c.Catalog.Source = strings.ToLower(strings.TrimSpace(c.Catalog.Source))
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate rejects settings the app cannot start with.
func (c Config) Validate() error {
	switch c.Catalog.Source {
	case SourceFixture, SourceSQLite:
	case SourceFile:
		if strings.TrimSpace(c.Catalog.Path) == "" {
			return fmt.Errorf("config: catalog.path is required for source %q", SourceFile)
		}
	default:
		return fmt.Errorf("config: unknown catalog.source %q", c.Catalog.Source)
	}
	if c.Catalog.Delay < 0 {
		return fmt.Errorf("config: catalog.delay must not be negative")
	}
	if c.Catalog.Source == SourceSQLite && strings.TrimSpace(c.Database.Path) == "" {
		return fmt.Errorf("config: database.path is required for source %q", SourceSQLite)
	}
	if _, err := c.Log.SlogLevel(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// Save writes the provided config as TOML to path (the default location
// when empty), creating the config directory if needed.
func Save(cfg Config, path string) error {
	if path == "" {
		path = os.Getenv("ELECTIONS_CONFIG")
	}
	if path == "" {
		path = defaultPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("catalog.source", cfg.Catalog.Source)
	v.Set("catalog.path", cfg.Catalog.Path)
	v.Set("catalog.delay", cfg.Catalog.Delay.String())
	v.Set("database.path", cfg.Database.Path)
	v.Set("ui.timezone", cfg.UI.Timezone)
	v.Set("ui.locale", cfg.UI.Locale)
	v.Set("ui.types", cfg.UI.Types)
	v.Set("log.path", cfg.Log.Path)
	v.Set("log.level", cfg.Log.Level)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
