package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	cfgDir := filepath.Join(dir, "config")
	if err := os.Mkdir(cfgDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(cfgDir, "test.yaml"), []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	wd, _ := os.Getwd()
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return dir
}

func TestLoad_DefaultsApplied(t *testing.T) {
	writeConfig(t, "http:\n  port: 8080\n")

	cfg, err := Load("test")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Qdrant.Port != 6334 {
		t.Errorf("expected default qdrant port 6334, got %d", cfg.Qdrant.Port)
	}
	if cfg.Search.Collection != "movies" {
		t.Errorf("expected default collection movies, got %q", cfg.Search.Collection)
	}
	if cfg.Search.VectorSize != 1024 {
		t.Errorf("expected default vector size 1024, got %d", cfg.Search.VectorSize)
	}
	if cfg.Search.ScoreThreshold != 0.3 {
		t.Errorf("expected default score threshold 0.3, got %f", cfg.Search.ScoreThreshold)
	}
	if cfg.Embedding.MaxAttempts != 15 {
		t.Errorf("expected default max attempts 15, got %d", cfg.Embedding.MaxAttempts)
	}
}

func TestLoad_EnvExpansion(t *testing.T) {
	t.Setenv("TEST_COHERE_KEY", "secret-key")
	writeConfig(t, "http:\n  port: 8080\nembedding:\n  api_key: ${TEST_COHERE_KEY}\n  base_url: ${MISSING_URL:-https://fallback.example}\n")

	cfg, err := Load("test")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Embedding.APIKey != "secret-key" {
		t.Errorf("expected env-expanded api key, got %q", cfg.Embedding.APIKey)
	}
	if cfg.Embedding.BaseURL != "https://fallback.example" {
		t.Errorf("expected default-expanded base url, got %q", cfg.Embedding.BaseURL)
	}
}

func TestValidate_Rejects(t *testing.T) {
	tests := []struct {
		name string
		mut  func(*Config)
	}{
		{"bad port", func(c *Config) { c.HTTP.Port = 0 }},
		{"bad threshold", func(c *Config) { c.Search.ScoreThreshold = 1.5 }},
		{"dim mismatch", func(c *Config) { c.Embedding.Dimensions = 384 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Config{HTTP: HTTPConfig{Port: 8080}}
			cfg.ApplyDefaults()
			tt.mut(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}
}
