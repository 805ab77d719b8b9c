package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfig_Defaults(t *testing.T) {
	config, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if config.OutputPath != "feed.xml" {
		t.Errorf("OutputPath = %q, want feed.xml", config.OutputPath)
	}
	if config.Server.Addr != ":8080" || config.Server.FeedPath != "/feed.xml" {
		t.Errorf("Server = %+v", config.Server)
	}
	if !config.Cache.Enabled || config.Cache.TTL != 5*time.Minute {
		t.Errorf("Cache = %+v", config.Cache)
	}
	if config.HTTP.Timeout != 10*time.Second || config.HTTP.MaxRetries != 3 {
		t.Errorf("HTTP = %+v", config.HTTP)
	}
	if config.DeriveThumbnails {
		t.Error("DeriveThumbnails should default to false")
	}
	if config.FallbackDocument != "" {
		t.Errorf("FallbackDocument = %q, want empty", config.FallbackDocument)
	}
	if config.Server.RequestTimeout != 30*time.Second {
		t.Errorf("Server.RequestTimeout = %v, want 30s", config.Server.RequestTimeout)
	}
}

func TestLoadConfig_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `output_path: out/news.xml
derive_thumbnails: true
server:
  addr: "127.0.0.1:9000"
cache:
  ttl: 30s
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	config, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if config.OutputPath != "out/news.xml" {
		t.Errorf("OutputPath = %q", config.OutputPath)
	}
	if !config.DeriveThumbnails {
		t.Error("DeriveThumbnails should be true")
	}
	if config.Server.Addr != "127.0.0.1:9000" {
		t.Errorf("Server.Addr = %q", config.Server.Addr)
	}
	// Keys missing from the file keep their defaults
	if config.Server.FeedPath != "/feed.xml" {
		t.Errorf("Server.FeedPath = %q, want default", config.Server.FeedPath)
	}
	if config.Cache.TTL != 30*time.Second || !config.Cache.Enabled {
		t.Errorf("Cache = %+v", config.Cache)
	}
}

func TestLoadConfig_InvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("server: [unclosed"), 0o644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	if _, err := LoadConfig(path); err == nil {
		t.Error("LoadConfig() should fail on malformed YAML")
	}
}

func TestSaveConfig_RoundTrip(t *testing.T) {
	original, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	original.OutputPath = "saved.xml"
	original.Cache.TTL = 90 * time.Second
	original.Server.Document = "https://example.com/feed.yaml"
	original.FallbackDocument = "backup/feed.yaml"
	original.Server.RequestTimeout = 5 * time.Second

	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	if err := SaveConfig(original, path); err != nil {
		t.Fatalf("SaveConfig() error = %v", err)
	}

	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() after save error = %v", err)
	}
	if loaded.OutputPath != "saved.xml" || loaded.Cache.TTL != 90*time.Second {
		t.Errorf("loaded = %+v", loaded)
	}
	if loaded.Server.Document != "https://example.com/feed.yaml" {
		t.Errorf("Server.Document = %q", loaded.Server.Document)
	}
	if loaded.FallbackDocument != "backup/feed.yaml" || loaded.Server.RequestTimeout != 5*time.Second {
		t.Errorf("FallbackDocument = %q, RequestTimeout = %v", loaded.FallbackDocument, loaded.Server.RequestTimeout)
	}
}

func TestConfig_Loader(t *testing.T) {
	config, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	config.HTTP.Timeout = 3 * time.Second
	config.HTTP.MaxRetries = 1
	config.FallbackDocument = "copy.yaml"

	loader := config.Loader()
	if loader.Timeout != 3*time.Second || loader.MaxRetries != 1 || loader.LocalPath != "copy.yaml" {
		t.Errorf("Loader() = %+v", loader)
	}

	config.HTTP.Timeout = 0
	if got := config.Loader().Timeout; got <= 0 {
		t.Errorf("zero HTTP timeout should keep the loader default, got %v", got)
	}
}
