package config

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	httputil "github.com/lepinkainen/smartformat/pkg/http"
)

const (
	formatJSON = "json"
	formatYAML = "yaml"
)

// LoaderConfig represents document loading options
type LoaderConfig struct {
	RemoteURL         string
	LocalPath         string
	Timeout           time.Duration
	MaxRetries        int
	FallbackToDefault bool
}

// DefaultLoaderConfig returns default loader configuration
func DefaultLoaderConfig() *LoaderConfig {
	return &LoaderConfig{
		Timeout:           10 * time.Second,
		MaxRetries:        3,
		FallbackToDefault: true,
	}
}

// LoadFromURLWithFallback loads a document from URL with local fallback.
// ctx bounds the remote fetch including its retries.
// With FallbackToDefault set, target is left untouched when both sources fail.
func LoadFromURLWithFallback(ctx context.Context, config *LoaderConfig, target any) error {
	var errs []error

	if config.RemoteURL != "" {
		err := loadFromURL(ctx, config.RemoteURL, config.Timeout, config.MaxRetries, target)
		if err == nil {
			return nil
		}
		slog.Warn("Failed to load remote document", "url", config.RemoteURL, "error", err)
		errs = append(errs, err)
	}

	if config.LocalPath != "" {
		err := loadFromFile(config.LocalPath, target)
		if err == nil {
			return nil
		}
		slog.Warn("Failed to load local document", "path", config.LocalPath, "error", err)
		errs = append(errs, err)
	}

	if !config.FallbackToDefault {
		return fmt.Errorf("failed to load document from URL and local file: %w", errors.Join(errs...))
	}

	return nil
}

// loadFromURL loads a document from a remote URL using the retrying HTTP client
func loadFromURL(ctx context.Context, url string, timeout time.Duration, maxRetries int, target any) error {
	httpConfig := httputil.DefaultConfig()
	httpConfig.Timeout = timeout
	httpConfig.MaxRetries = maxRetries

	client := httputil.NewClient(httpConfig)
	resp, err := client.GetWithContext(ctx, url)
	if err != nil {
		return fmt.Errorf("failed to fetch document from URL: %w", err)
	}

	if err := httputil.EnsureStatusOK(resp); err != nil {
		resp.Body.Close()
		return fmt.Errorf("HTTP error fetching document: %w", err)
	}

	data, err := httputil.ReadResponseBody(resp)
	if err != nil {
		return fmt.Errorf("failed to read document body: %w", err)
	}

	format := detectFormat(strings.SplitN(url, "?", 2)[0], data)
	if strings.Contains(resp.Header.Get("Content-Type"), "json") {
		format = formatJSON
	}

	if err := unmarshal(format, data, target); err != nil {
		return fmt.Errorf("failed to decode document: %w", err)
	}

	return nil
}

// loadFromFile loads a document from a local JSON or YAML file
func loadFromFile(path string, target any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", path, err)
	}

	return unmarshal(detectFormat(path, data), data, target)
}

// detectFormat picks json or yaml from the file extension, then from the content
func detectFormat(path string, data []byte) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return formatJSON
	case ".yaml", ".yml":
		return formatYAML
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[') {
		return formatJSON
	}
	return formatYAML
}

func unmarshal(format string, data []byte, target any) error {
	if format == formatJSON {
		node, err := jsonToNode(data)
		if err != nil {
			return fmt.Errorf("failed to parse JSON: %w", err)
		}
		if err := node.Decode(target); err != nil {
			return fmt.Errorf("failed to parse JSON: %w", err)
		}
		return nil
	}

	if err := yaml.Unmarshal(data, target); err != nil {
		return fmt.Errorf("failed to parse YAML: %w", err)
	}
	return nil
}
