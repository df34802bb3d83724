// Package config loads the global defaults a folder falls back on when its
// sidecar file holds no override.
package config

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	"github.com/lumipallolabs/metafolder/internal/logging"
)

// Config holds the global defaults
type Config struct {
	BackgroundColor string `mapstructure:"background_color"`
	FontColor       string `mapstructure:"font_color"`
	FontSize        string `mapstructure:"font_size"`
	FontBold        bool   `mapstructure:"font_bold"`
	CellSize        int    `mapstructure:"cell_size"`
	DesktopWidth    int    `mapstructure:"desktop_width"`
	DataDir         string `mapstructure:"data_dir"`
	RenameWindowMs  int    `mapstructure:"rename_window_ms"`
}

// SetDefaults registers the built-in defaults on v
func SetDefaults(v *viper.Viper) {
	v.SetDefault("background_color", "rgba(36,31,49,1)")
	v.SetDefault("font_color", "rgba(255,255,255,1)")
	v.SetDefault("font_size", "medium")
	v.SetDefault("font_bold", true)
	v.SetDefault("cell_size", 60)
	v.SetDefault("desktop_width", 1500)
	v.SetDefault("data_dir", "~/.metafolder")
	v.SetDefault("rename_window_ms", 50)
}

// New creates a viper instance configured with file search paths,
// environment binding and defaults
func New() *viper.Viper {
	v := viper.New()
	SetDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.SetEnvPrefix("METAFOLDER")
	v.AutomaticEnv()

	if override := os.Getenv("METAFOLDER_CONFIG_PATH"); override != "" {
		v.AddConfigPath(override)
	}
	if home, err := homedir.Dir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", "metafolder"))
	}
	v.AddConfigPath(".")
	return v
}

// Load reads the config file if there is one and decodes the result.
// A missing config file is not an error.
func Load(v *viper.Viper) (*Config, error) {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
		logging.Core.Debug("no config file, using defaults")
	} else {
		logging.Core.Debugf("config loaded from %s", v.ConfigFileUsed())
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}

	dataDir, err := homedir.Expand(cfg.DataDir)
	if err != nil {
		return nil, err
	}
	cfg.DataDir = dataDir

	if cfg.CellSize <= 0 {
		cfg.CellSize = 60
	}
	if cfg.DesktopWidth <= 0 {
		cfg.DesktopWidth = 1500
	}
	return cfg, nil
}

// Default returns the built-in defaults without consulting files or env
func Default() *Config {
	v := viper.New()
	SetDefaults(v)
	cfg := &Config{}
	_ = v.Unmarshal(cfg)
	if dir, err := homedir.Expand(cfg.DataDir); err == nil {
		cfg.DataDir = dir
	}
	return cfg
}
