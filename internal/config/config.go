package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	"github.com/lepinkainen/smartformat/configs"
	docconfig "github.com/lepinkainen/smartformat/pkg/config"
	"github.com/lepinkainen/smartformat/pkg/filesystem"
)

// Config holds the central application configuration
type Config struct {
	OutputPath       string `mapstructure:"output_path"`       // Default render destination
	DeriveThumbnails bool   `mapstructure:"derive_thumbnails"` // Fill media:thumbnail from content:encoded images
	FallbackDocument string `mapstructure:"fallback_document"` // Local copy used when a remote document cannot be fetched

	Server struct {
		Addr     string `mapstructure:"addr"`      // Listen address
		FeedPath string `mapstructure:"feed_path"` // URL path the feed is served on
		Document string `mapstructure:"document"`  // Feed document path or URL

		RequestTimeout time.Duration `mapstructure:"request_timeout"` // Upper bound for rendering one request
	} `mapstructure:"server"`

	Cache struct {
		Enabled bool          `mapstructure:"enabled"`
		Path    string        `mapstructure:"path"` // sqlite file
		TTL     time.Duration `mapstructure:"ttl"`
	} `mapstructure:"cache"`

	HTTP struct {
		Timeout    time.Duration `mapstructure:"timeout"`
		MaxRetries int           `mapstructure:"max_retries"`
	} `mapstructure:"http"`
}

// resolvePath prefers the working directory, then the executable directory
func resolvePath(path string) string {
	if path == "" {
		path = "config.yaml"
	}
	if filepath.IsAbs(path) {
		return path
	}
	if _, err := os.Stat(path); err == nil {
		return path
	}
	if execPath, err := filesystem.GetDefaultPath(path); err == nil {
		if _, err := os.Stat(execPath); err == nil {
			return execPath
		}
	}
	return path
}

func newViper() (*viper.Viper, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	if err := v.ReadConfig(bytes.NewReader(configs.Defaults)); err != nil {
		return nil, fmt.Errorf("error reading embedded defaults: %w", err)
	}
	return v, nil
}

// LoadConfig loads the configuration from a file. A missing file leaves the embedded defaults.
func LoadConfig(path string) (*Config, error) {
	v, err := newViper()
	if err != nil {
		return nil, err
	}

	path = resolvePath(path)
	if _, statErr := os.Stat(path); statErr == nil {
		v.SetConfigFile(path)
		if err := v.MergeInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	return &config, nil
}

// Loader returns the document loader settings for the HTTP section and fallback copy
func (c *Config) Loader() *docconfig.LoaderConfig {
	loader := docconfig.DefaultLoaderConfig()
	if c.HTTP.Timeout > 0 {
		loader.Timeout = c.HTTP.Timeout
	}
	loader.MaxRetries = c.HTTP.MaxRetries
	loader.LocalPath = c.FallbackDocument
	return loader
}

// SaveConfig saves the configuration to a file
func SaveConfig(config *Config, path string) error {
	v := viper.New()
	v.SetConfigType("yaml")

	v.Set("output_path", config.OutputPath)
	v.Set("derive_thumbnails", config.DeriveThumbnails)
	v.Set("fallback_document", config.FallbackDocument)
	v.Set("server.addr", config.Server.Addr)
	v.Set("server.feed_path", config.Server.FeedPath)
	v.Set("server.document", config.Server.Document)
	v.Set("server.request_timeout", config.Server.RequestTimeout.String())
	v.Set("cache.enabled", config.Cache.Enabled)
	v.Set("cache.path", config.Cache.Path)
	v.Set("cache.ttl", config.Cache.TTL.String())
	v.Set("http.timeout", config.HTTP.Timeout.String())
	v.Set("http.max_retries", config.HTTP.MaxRetries)

	if err := filesystem.EnsureDirectoryExists(path); err != nil {
		return err
	}
	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}
	return nil
}
