// Package config loads runtime settings with viper.
package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

// Config is the typed view of the settings.
type Config struct {
	LogLevel string         `mapstructure:"logLevel"`
	Window   WindowConfig   `mapstructure:"window"`
	Headless HeadlessConfig `mapstructure:"headless"`
	Player   PlayerConfig   `mapstructure:"player"`
	Mouse    MouseConfig    `mapstructure:"mouse"`
	Chat     ChatConfig     `mapstructure:"chat"`
	Scene    SceneConfig    `mapstructure:"scene"`
}

type WindowConfig struct {
	Width  int    `mapstructure:"width"`
	Height int    `mapstructure:"height"`
	Title  string `mapstructure:"title"`
	// Scale divides the window size to get the framebuffer size.
	Scale int `mapstructure:"scale"`
}

type HeadlessConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Hz      int    `mapstructure:"hz"`
	Ticks   uint64 `mapstructure:"ticks"`
}

type PlayerConfig struct {
	MoveSpeed float32 `mapstructure:"moveSpeed"`
}

type MouseConfig struct {
	SensitivityX float32 `mapstructure:"sensitivityX"`
	SensitivityY float32 `mapstructure:"sensitivityY"`
}

type ChatConfig struct {
	PruneEnabled bool  `mapstructure:"pruneEnabled"`
	MaxLength    int32 `mapstructure:"maxLength"`
}

type SceneConfig struct {
	Path string `mapstructure:"path"`
}

// DefaultName is the config file searched for in the working directory
// when no explicit path is given.
const DefaultName = "chatscene"

// New returns a viper instance carrying the defaults.
func New() *viper.Viper {
	v := viper.New()

	v.SetDefault("logLevel", "info")

	v.SetDefault("window.width", 1024)
	v.SetDefault("window.height", 768)
	v.SetDefault("window.title", "chatscene")
	v.SetDefault("window.scale", 2)

	v.SetDefault("headless.enabled", false)
	v.SetDefault("headless.hz", 60)
	v.SetDefault("headless.ticks", 0)

	v.SetDefault("player.moveSpeed", 0.1)

	v.SetDefault("mouse.sensitivityX", 0.002)
	v.SetDefault("mouse.sensitivityY", 0.002)

	v.SetDefault("chat.pruneEnabled", false)
	v.SetDefault("chat.maxLength", 100)

	v.SetDefault("scene.path", "")

	return v
}

// Load reads path into v, or searches the working directory for
// chatscene.toml when path is empty. Only the search tolerates a missing file.
func Load(v *viper.Viper, path string) (Config, error) {
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(DefaultName)
		v.SetConfigType("toml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("error reading config file: %w", err)
		}
	}
	return Decode(v)
}

// Decode unmarshals the current settings of v.
func Decode(v *viper.Viper) (Config, error) {
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if c.Window.Scale < 1 {
		c.Window.Scale = 1
	}
	return c, nil
}
