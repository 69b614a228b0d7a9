// Package config loads vi-racer settings from a JSON file with defaults and env overrides
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// DefaultPath is the config file looked up when no -config flag is given
const DefaultPath = "vi-racer.json"

type AudioConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

type TrackConfig struct {
	File string `mapstructure:"file"` // Empty selects the built-in ring
}

type AIConfig struct {
	Count int `mapstructure:"count"`
}

type InputConfig struct {
	HoldTimeoutMs int `mapstructure:"holdTimeoutMs"`
}

type StoreConfig struct {
	DSN string `mapstructure:"dsn"` // Postgres DSN or sqlite path; empty is in-memory
}

type ContentConfig struct {
	FootballAPIKey string `mapstructure:"footballApiKey"`
	NewsAPIKey     string `mapstructure:"newsApiKey"`
	TimeoutMs      int    `mapstructure:"timeoutMs"`
}

type InfluxConfig struct {
	Enabled    bool   `mapstructure:"enabled"`
	URL        string `mapstructure:"url"`
	Token      string `mapstructure:"token"`
	Org        string `mapstructure:"org"`
	Bucket     string `mapstructure:"bucket"`
	BackupPath string `mapstructure:"backupPath"`
}

type LogConfig struct {
	GelfAddr string `mapstructure:"gelfAddr"`
	Level    string `mapstructure:"level"`
}

// Config is the full settings tree
type Config struct {
	TickRate   int           `mapstructure:"tickRate"`
	RenderRate int           `mapstructure:"renderRate"`
	Debug      bool          `mapstructure:"debug"`
	Audio      AudioConfig   `mapstructure:"audio"`
	Track      TrackConfig   `mapstructure:"track"`
	AI         AIConfig      `mapstructure:"ai"`
	Input      InputConfig   `mapstructure:"input"`
	Store      StoreConfig   `mapstructure:"store"`
	Content    ContentConfig `mapstructure:"content"`
	Influx     InfluxConfig  `mapstructure:"influx"`
	Log        LogConfig     `mapstructure:"log"`

	// File is the config file that was read, empty when defaults only
	File string `mapstructure:"-"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("tickRate", 60)
	v.SetDefault("renderRate", 30)
	v.SetDefault("debug", false)

	v.SetDefault("audio.enabled", true)

	v.SetDefault("track.file", "")

	v.SetDefault("ai.count", 3)

	v.SetDefault("input.holdTimeoutMs", 150)

	v.SetDefault("store.dsn", "")

	v.SetDefault("content.footballApiKey", "")
	v.SetDefault("content.newsApiKey", "")
	v.SetDefault("content.timeoutMs", 5000)

	v.SetDefault("influx.enabled", false)
	v.SetDefault("influx.url", "http://localhost:8086")
	v.SetDefault("influx.token", "")
	v.SetDefault("influx.org", "vi-racer")
	v.SetDefault("influx.bucket", "race_data")
	v.SetDefault("influx.backupPath", "")

	v.SetDefault("log.gelfAddr", "")
	v.SetDefault("log.level", "info")
}

// Load reads path over the defaults; a missing file is not an error
// Environment variables VIRACER_<KEY> override the file, and the API keys also
// honor FOOTBALL_DATA_API_KEY and NEWS_API_KEY
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("VIRACER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv("content.footballApiKey", "VIRACER_CONTENT_FOOTBALLAPIKEY", "FOOTBALL_DATA_API_KEY")
	_ = v.BindEnv("content.newsApiKey", "VIRACER_CONTENT_NEWSAPIKEY", "NEWS_API_KEY")

	file := ""
	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("json")
		err := v.ReadInConfig()
		var notFound viper.ConfigFileNotFoundError
		switch {
		case err == nil:
			file = path
		case errors.Is(err, fs.ErrNotExist), errors.As(err, &notFound):
		default:
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error decoding config: %w", err)
	}
	cfg.File = file

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects values the game cannot run with
func (c *Config) Validate() error {
	if c.TickRate <= 0 {
		return fmt.Errorf("tickRate must be positive, got %d", c.TickRate)
	}
	if c.RenderRate <= 0 {
		return fmt.Errorf("renderRate must be positive, got %d", c.RenderRate)
	}
	if c.AI.Count < 0 {
		return fmt.Errorf("ai.count must not be negative, got %d", c.AI.Count)
	}
	if c.Input.HoldTimeoutMs <= 0 {
		return fmt.Errorf("input.holdTimeoutMs must be positive, got %d", c.Input.HoldTimeoutMs)
	}
	return nil
}

// HoldTimeout is the keyboard hold window
func (c *Config) HoldTimeout() time.Duration {
	return time.Duration(c.Input.HoldTimeoutMs) * time.Millisecond
}

// ContentTimeout bounds one content fetch
func (c *Config) ContentTimeout() time.Duration {
	return time.Duration(c.Content.TimeoutMs) * time.Millisecond
}

// RenderInterval is the time between rendered frames
func (c *Config) RenderInterval() time.Duration {
	return time.Second / time.Duration(c.RenderRate)
}
