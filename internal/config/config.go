package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config holds the resolved application configuration.
type Config struct {
	// Theme name: "dark" (default) or "light".
	Theme string `mapstructure:"theme"`
	// File is the layout document shown when no --file flag is given.
	File string `mapstructure:"file"`
	// StretchLastComponent makes the last component fill the viewport.
	StretchLastComponent bool `mapstructure:"stretch_last_component"`
	// SettleInterval is the wait between a structural change and the
	// height remeasure that runs the caller's completions.
	SettleInterval time.Duration `mapstructure:"settle_interval"`
	// AnimationDuration is how long inserted and reloaded rows stay tinted.
	AnimationDuration time.Duration `mapstructure:"animation_duration"`
	// DefaultKind is used for components whose kind is missing or unknown.
	DefaultKind string `mapstructure:"default_kind"`
	// RemoveEmptyComponents drops components without items on reload.
	RemoveEmptyComponents bool `mapstructure:"remove_empty_components"`
	// Watch reloads the layout file when it changes on disk.
	Watch bool `mapstructure:"watch"`
	// WatchDebounce is the quiet period before a file change is applied.
	WatchDebounce time.Duration `mapstructure:"watch_debounce"`
	// LogFile receives the JSON log; the TUI owns stdout.
	LogFile string `mapstructure:"log_file"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `mapstructure:"log_level"`
	// ScrollStep is how many rows one mouse wheel notch scrolls.
	ScrollStep int `mapstructure:"scroll_step"`
	// ConfirmDestructive prompts before deleting items.
	ConfirmDestructive bool `mapstructure:"confirm_destructive"`
	// Keys overrides individual key bindings.
	Keys KeyBindings `mapstructure:"keys"`
}

// Load reads configuration from ~/.config/spots/config.yaml (or TOML/JSON).
// A missing config file is not an error.
func Load() (*Config, error) {
	return load(viper.New(), configDirectory(), ".")
}

// LoadFile reads configuration from an explicit file.
func LoadFile(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	return load(v)
}

func load(v *viper.Viper, dirs ...string) (*Config, error) {
	if len(dirs) > 0 {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		for _, d := range dirs {
			v.AddConfigPath(d)
		}
	}

	setDefaults(v)

	v.SetEnvPrefix("SPOTS")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// A missing config file means defaults.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.normalize()
	return cfg, nil
}

// Default returns the configuration used when nothing is configured.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return &Config{Theme: "dark", DefaultKind: "list", ScrollStep: 3, Keys: DefaultKeyBindings()}
	}
	cfg.normalize()
	return cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("theme", "dark")
	v.SetDefault("file", "")
	v.SetDefault("stretch_last_component", false)
	v.SetDefault("settle_interval", "150ms")
	v.SetDefault("animation_duration", "250ms")
	v.SetDefault("default_kind", "list")
	v.SetDefault("remove_empty_components", false)
	v.SetDefault("watch", true)
	v.SetDefault("watch_debounce", "300ms")
	v.SetDefault("log_file", filepath.Join(cacheDirectory(), "spots.log"))
	v.SetDefault("log_level", "info")
	v.SetDefault("scroll_step", 3)
	v.SetDefault("confirm_destructive", true)
}

func (c *Config) normalize() {
	c.Keys = c.Keys.WithDefaults()
	if c.ScrollStep < 1 {
		c.ScrollStep = 1
	}
	if c.SettleInterval < 0 {
		c.SettleInterval = 0
	}
	if c.AnimationDuration < 0 {
		c.AnimationDuration = 0
	}
}

func configDirectory() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "spots")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "spots")
}

func cacheDirectory() string {
	if dir, err := os.UserCacheDir(); err == nil {
		return filepath.Join(dir, "spots")
	}
	return filepath.Join(os.TempDir(), "spots")
}
