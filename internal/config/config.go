package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/meaty/meatymidi/internal/logging"
)

// Config holds application configuration.
type Config struct {
	Window WindowConfig
	Layout LayoutConfig
	Log    LogConfig
}

// WindowConfig holds the fixed window title and size. Sizes are pixels;
// CellWidth and CellHeight map pixels to terminal cells.
type WindowConfig struct {
	Title      string
	Width      int
	Height     int
	CellWidth  int `mapstructure:"cell_width"`
	CellHeight int `mapstructure:"cell_height"`
	Background string
}

// LayoutConfig selects the layout description. Empty means the built-in one.
type LayoutConfig struct {
	Path string
}

// LogConfig holds logger settings. Path "-" disables logging.
type LogConfig struct {
	Level string
	Path  string
}

// Load reads configuration from file and env. Env var overrides use prefix MEATYMIDI_.
func Load() (Config, error) {
	v := viper.New()

	// default values
	v.SetDefault("window.title", "MEATY MIDI Programmer")
	v.SetDefault("window.width", 930)
	v.SetDefault("window.height", 330)
	v.SetDefault("window.cell_width", 10)
	v.SetDefault("window.cell_height", 20)
	v.SetDefault("window.background", "red")
	v.SetDefault("layout.path", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.path", logging.DefaultPath())

	v.SetConfigType("toml")

	cfgPath := os.Getenv("MEATYMIDI_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "meatymidi"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("MEATYMIDI")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// a missing file is fine, a broken one is not
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !(cfgPath == "" && os.IsNotExist(err)) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate rejects sizes that cannot produce a window.
func (c Config) Validate() error {
	w := c.Window
	switch {
	case w.Width <= 0 || w.Height <= 0:
		return fmt.Errorf("window size %dx%d must be positive", w.Width, w.Height)
	case w.CellWidth <= 0 || w.CellHeight <= 0:
		return fmt.Errorf("cell size %dx%d must be positive", w.CellWidth, w.CellHeight)
	case strings.TrimSpace(w.Title) == "":
		return fmt.Errorf("window title is empty")
	}
	return nil
}
