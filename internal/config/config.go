package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Source SourceConfig
	Docker DockerConfig
	Panel  PanelConfig
	Feed   FeedConfig
	Log    LogConfig
}

// SourceConfig selects the update producer.
type SourceConfig struct {
	Kind string // docker, websocket, jsonl, demo
	URL  string // websocket endpoint
	Path string // jsonl file, "-" for stdin
}

// DockerConfig holds docker engine settings.
type DockerConfig struct {
	Host     string
	Timeout  time.Duration
	Interval time.Duration // container poll interval
}

// PanelConfig holds presentation settings.
type PanelConfig struct {
	Width       int
	Height      int
	StatusDelay time.Duration `mapstructure:"status_delay"`
	TimeStyle   string        `mapstructure:"time_style"` // clock or relative
	TimeLayout  string        `mapstructure:"time_layout"`
	Clipboard   string        // auto, system, osc52
}

// FeedConfig bounds the feed.
type FeedConfig struct {
	Limit int
}

// LogConfig holds log file settings.
type LogConfig struct {
	Path  string
	Level string
}

// setDefaults registers every key so env overrides work without a file.
func setDefaults(v *viper.Viper) {
	v.SetDefault("source.kind", "demo")
	v.SetDefault("source.url", "ws://localhost:8001/ws")
	v.SetDefault("source.path", "-")
	v.SetDefault("docker.host", "unix:///var/run/docker.sock")
	v.SetDefault("docker.timeout", 30*time.Second)
	v.SetDefault("docker.interval", 2*time.Second)
	v.SetDefault("panel.width", 64)
	v.SetDefault("panel.height", 12)
	v.SetDefault("panel.status_delay", 2*time.Second)
	v.SetDefault("panel.time_style", "clock")
	v.SetDefault("panel.time_layout", "15:04:05")
	v.SetDefault("panel.clipboard", "auto")
	v.SetDefault("feed.limit", 500)
	v.SetDefault("log.path", "")
	v.SetDefault("log.level", "info")
}

// Load reads configuration from file and env. Env var overrides use prefix
// UPDATEPANEL_. path, when set, wins over UPDATEPANEL_CONFIG and the default
// location; a missing default file is not an error. Load does not
// validate; callers apply their overrides first and then call Validate.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigType("toml")

	if path == "" {
		path = os.Getenv("UPDATEPANEL_CONFIG")
	}
	explicit := path != ""
	if explicit {
		v.SetConfigFile(path)
	} else {
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "updatepanel"))
		}
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("UPDATEPANEL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicit || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}

// Validate checks values that cannot be defaulted silently.
func (c Config) Validate() error {
	switch c.Source.Kind {
	case "docker", "websocket", "jsonl", "demo":
	default:
		return fmt.Errorf("unknown source kind %q", c.Source.Kind)
	}
	switch c.Panel.TimeStyle {
	case "clock", "relative":
	default:
		return fmt.Errorf("unknown time style %q", c.Panel.TimeStyle)
	}
	if c.Panel.Width < 20 {
		return fmt.Errorf("panel width %d is too small", c.Panel.Width)
	}
	if c.Panel.Height < 1 {
		return fmt.Errorf("panel height must be positive")
	}
	return nil
}
