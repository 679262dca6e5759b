package config

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Logging     LoggingConfig     `mapstructure:"logging"`
	Events      EventsConfig      `mapstructure:"events"`
	Demo        DemoConfig        `mapstructure:"demo"`
	Development DevelopmentConfig `mapstructure:"development"`
}

// LoggingConfig holds process-wide logging settings
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// EventsConfig controls the event-logging subscriber
type EventsConfig struct {
	LogLevel string   `mapstructure:"log_level"`
	Filter   []string `mapstructure:"filter"`
	DevMode  bool     `mapstructure:"dev_mode"`
}

// DemoConfig holds random self-play settings
type DemoConfig struct {
	// Seed 0 means seed from the clock
	Seed       uint64 `mapstructure:"seed"`
	MaxMoves   int    `mapstructure:"max_moves"`
	PrintEvery int    `mapstructure:"print_every"`
	ShowBoard  bool   `mapstructure:"show_board"`
}

// DevelopmentConfig holds development/debug settings
type DevelopmentConfig struct {
	ShowCoordinates bool `mapstructure:"show_coordinates"`
	ColorOutput     bool `mapstructure:"color_output"`
}

var (
	// Global config instance
	cfg *Config
	v   *viper.Viper
	mu  sync.RWMutex

	// overlayFile is the environment overlay merged over the base file, if any
	overlayFile string
)

// setViperDefaults sets all default values using Viper's SetDefault
func setViperDefaults(v *viper.Viper) {
	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	// Event logging defaults
	v.SetDefault("events.log_level", "debug")
	v.SetDefault("events.filter", []string{})
	v.SetDefault("events.dev_mode", false)

	// Demo defaults
	v.SetDefault("demo.seed", 0)
	v.SetDefault("demo.max_moves", 200)
	v.SetDefault("demo.print_every", 10)
	v.SetDefault("demo.show_board", true)

	// Development defaults
	v.SetDefault("development.show_coordinates", false)
	v.SetDefault("development.color_output", true)
}

// Init initializes the configuration
func Init(configPath string) error {
	mu.Lock()
	defer mu.Unlock()

	v = viper.New()
	overlayFile = ""

	// Set defaults before loading any config
	setViperDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/etc/abalone")
	}

	v.SetEnvPrefix("ABALONE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// A missing file is fine: defaults and environment still apply.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	next := &Config{}
	if err := v.Unmarshal(next); err != nil {
		return fmt.Errorf("unable to decode config into struct: %w", err)
	}

	if err := Validate(next); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	cfg = next
	return nil
}

// Get returns the global config instance
func Get() *Config {
	mu.RLock()
	c := cfg
	mu.RUnlock()
	if c != nil {
		return c
	}

	// Initialize with defaults if not already initialized
	if err := Init(""); err != nil {
		panic("failed to initialize config with defaults: " + err.Error())
	}
	mu.RLock()
	defer mu.RUnlock()
	return cfg
}

// GetViper returns the viper instance for advanced usage
func GetViper() *viper.Viper {
	mu.RLock()
	defer mu.RUnlock()
	if v == nil {
		panic("config not initialized - call Init() first")
	}
	return v
}

// LoadEnvironmentConfig merges config.<env>.yaml, found next to the base
// config file, over the loaded config. The base file stays the one that is
// watched; the overlay is merged again on every reload.
func LoadEnvironmentConfig(env string) error {
	if env == "" {
		return nil
	}

	mu.Lock()
	defer mu.Unlock()

	if v == nil {
		return errors.New("config not initialized - call Init() first")
	}

	envFile := fmt.Sprintf("config.%s.yaml", env)
	if used := v.ConfigFileUsed(); used != "" {
		envFile = filepath.Join(filepath.Dir(used), envFile)
	}

	found, err := mergeOverlay(v, envFile)
	if err != nil {
		return err
	}
	if found {
		overlayFile = envFile
	}

	merged := &Config{}
	if err := v.Unmarshal(merged); err != nil {
		return fmt.Errorf("unable to decode merged config into struct: %w", err)
	}
	if err := Validate(merged); err != nil {
		return fmt.Errorf("merged config validation failed: %w", err)
	}
	cfg = merged
	return nil
}

// mergeOverlay reads path with a separate viper instance so the target keeps
// its own config file. A missing overlay is not an error.
func mergeOverlay(target *viper.Viper, path string) (bool, error) {
	overlay := viper.New()
	overlay.SetConfigFile(path)
	if err := overlay.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("error reading environment config %s: %w", path, err)
	}
	if err := target.MergeConfigMap(overlay.AllSettings()); err != nil {
		return false, fmt.Errorf("error merging environment config %s: %w", path, err)
	}
	return true, nil
}

// Set allows runtime config updates
func Set(key string, value interface{}) {
	mu.Lock()
	defer mu.Unlock()

	v.Set(key, value)
	next := &Config{}
	if err := v.Unmarshal(next); err == nil {
		cfg = next
	}
}

// GetString gets a string value from config
func GetString(key string) string {
	return GetViper().GetString(key)
}

// GetInt gets an int value from config
func GetInt(key string) int {
	return GetViper().GetInt(key)
}

// GetBool gets a bool value from config
func GetBool(key string) bool {
	return GetViper().GetBool(key)
}

// ConfigFilePath returns the path of the loaded config file
func ConfigFilePath() string {
	return GetViper().ConfigFileUsed()
}

// WatchConfig enables hot-reloading of the config file. onChange receives the
// reloaded config; a reload that fails validation is dropped and the
// previous config stays active.
func WatchConfig(onChange func(*Config)) {
	watched := GetViper()
	watched.OnConfigChange(func(e fsnotify.Event) {
		next, err := reload(watched)
		if err != nil {
			return
		}
		if onChange != nil {
			onChange(next)
		}
	})
	watched.WatchConfig()
}

func reload(watched *viper.Viper) (*Config, error) {
	mu.Lock()
	defer mu.Unlock()

	if overlayFile != "" {
		if _, err := mergeOverlay(watched, overlayFile); err != nil {
			return nil, err
		}
	}

	next := &Config{}
	if err := watched.Unmarshal(next); err != nil {
		return nil, fmt.Errorf("unable to decode reloaded config: %w", err)
	}
	if err := Validate(next); err != nil {
		return nil, err
	}
	cfg = next
	return next, nil
}

// Validate validates the configuration values
func Validate(c *Config) error {
	if _, err := zerolog.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("logging.level %q is not a valid level", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}

	if _, err := zerolog.ParseLevel(c.Events.LogLevel); err != nil {
		return fmt.Errorf("events.log_level %q is not a valid level", c.Events.LogLevel)
	}

	if c.Demo.MaxMoves <= 0 {
		return fmt.Errorf("demo.max_moves must be positive")
	}
	if c.Demo.PrintEvery < 0 {
		return fmt.Errorf("demo.print_every must be non-negative")
	}

	return nil
}
