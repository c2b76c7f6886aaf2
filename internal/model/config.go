package model

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// DisplayConfig holds rendering preferences for the terminal UI.
type DisplayConfig struct {
	Theme string `mapstructure:"theme" yaml:"theme"`

	// CalendarPreview caps how many task titles a calendar cell shows
	// before collapsing the rest into a "+N more" count.
	CalendarPreview int `mapstructure:"calendar_preview" yaml:"calendar_preview"`
}

// AppConfig is the top-level application configuration.
type AppConfig struct {
	// DBPath is where the snapshot database lives.
	DBPath string `mapstructure:"db_path" yaml:"db_path"`

	// RememberUser keeps the signed-in email in the system keyring so
	// the next launch skips the sign-in form.
	RememberUser bool `mapstructure:"remember_user" yaml:"remember_user"`

	Display DisplayConfig `mapstructure:"display" yaml:"display"`
}

// DefaultConfigPath returns the default path for the configuration file,
// located at ~/.config/pastel/config.yaml.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "config.yaml")
	}
	return filepath.Join(home, ".config", "pastel", "config.yaml")
}

// DefaultDBPath returns the default snapshot database location,
// ~/.local/share/pastel/pastel.db.
func DefaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "pastel.db")
	}
	return filepath.Join(home, ".local", "share", "pastel", "pastel.db")
}

// defaultAppConfig returns a sensible default configuration.
func defaultAppConfig() *AppConfig {
	return &AppConfig{
		DBPath:       DefaultDBPath(),
		RememberUser: true,
		Display: DisplayConfig{
			Theme:           "pastel",
			CalendarPreview: 3,
		},
	}
}

// LoadConfig reads configuration from the given YAML file path using Viper.
// If the file does not exist, it returns a default configuration.
func LoadConfig(path string) (*AppConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.SetDefault("db_path", DefaultDBPath())
	v.SetDefault("remember_user", true)
	v.SetDefault("display.theme", "pastel")
	v.SetDefault("display.calendar_preview", 3)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(*os.PathError); ok {
			return defaultAppConfig(), nil
		}
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return defaultAppConfig(), nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg := defaultAppConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if cfg.Display.CalendarPreview <= 0 {
		cfg.Display.CalendarPreview = 3
	}

	return cfg, nil
}

// SaveConfig writes the given configuration to a YAML file at path,
// creating parent directories if needed.
func SaveConfig(path string, cfg *AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("db_path", cfg.DBPath)
	v.Set("remember_user", cfg.RememberUser)
	v.Set("display", cfg.Display)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}

	return nil
}
