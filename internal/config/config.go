package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the cinedex API configuration.
type Config struct {
	HTTP      HTTPConfig      `yaml:"http"`
	Qdrant    QdrantConfig    `yaml:"qdrant"`
	Search    SearchConfig    `yaml:"search"`
	Embedding EmbeddingConfig `yaml:"embedding"`
	LLM       LLMConfig       `yaml:"llm"`
	Cache     CacheConfig     `yaml:"cache"`
	Session   SessionConfig   `yaml:"session"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// QdrantConfig holds Qdrant connection settings.
type QdrantConfig struct {
	Host   string `yaml:"host"`
	Port   int    `yaml:"port"` // gRPC port, default 6334
	APIKey string `yaml:"api_key"`
	UseTLS bool   `yaml:"use_tls"`
}

// SearchConfig holds collection and ranking settings.
type SearchConfig struct {
	Collection      string  `yaml:"collection"`
	VectorSize      int     `yaml:"vector_size"`
	ScoreThreshold  float32 `yaml:"score_threshold"`
	InitMaxAttempts int     `yaml:"init_max_attempts"`
	InitRetrySec    int     `yaml:"init_retry_sec"`
}

// EmbeddingConfig holds embedding provider settings.
type EmbeddingConfig struct {
	APIKey      string `yaml:"api_key"`
	BaseURL     string `yaml:"base_url"`
	Model       string `yaml:"model"`
	Dimensions  int    `yaml:"dimensions"`
	InputType   string `yaml:"input_type"` // search_query / search_document
	MaxAttempts int    `yaml:"max_attempts"`
}

// LLMConfig holds the query-intent LLM settings. An empty api_key disables
// the remote classifier; the rule-based fallback is used instead.
type LLMConfig struct {
	APIKey  string `yaml:"api_key"`
	BaseURL string `yaml:"base_url"`
	Model   string `yaml:"model"`
}

// CacheConfig holds the optional Redis embedding cache settings.
// Empty addrs disables the cache.
type CacheConfig struct {
	Addrs    []string `yaml:"addrs"`
	Password string   `yaml:"password"`
	TTLHours int      `yaml:"ttl_hours"`
}

// SessionConfig holds conversation-context retention settings.
type SessionConfig struct {
	TTLMinutes  int `yaml:"ttl_minutes"`
	MaxSessions int `yaml:"max_sessions"`
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string) (Config, error) {
	configPath := findConfigPath(env)

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	// Substitute env variables of the form ${VAR}
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration or panics.
func MustLoad(env string) Config {
	cfg, err := Load(env)
	if err != nil {
		panic(err)
	}
	return cfg
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 30
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.Qdrant.Host == "" {
		c.Qdrant.Host = "localhost"
	}
	if c.Qdrant.Port <= 0 {
		c.Qdrant.Port = 6334
	}
	if c.Search.Collection == "" {
		c.Search.Collection = "movies"
	}
	if c.Search.VectorSize <= 0 {
		c.Search.VectorSize = 1024
	}
	if c.Search.ScoreThreshold <= 0 {
		c.Search.ScoreThreshold = 0.3
	}
	if c.Search.InitMaxAttempts <= 0 {
		c.Search.InitMaxAttempts = 5
	}
	if c.Search.InitRetrySec <= 0 {
		c.Search.InitRetrySec = 2
	}
	if c.Embedding.BaseURL == "" {
		c.Embedding.BaseURL = "https://api.cohere.com/v2"
	}
	if c.Embedding.Model == "" {
		c.Embedding.Model = "embed-english-v3.0"
	}
	if c.Embedding.Dimensions <= 0 {
		c.Embedding.Dimensions = c.Search.VectorSize
	}
	if c.Embedding.InputType == "" {
		c.Embedding.InputType = "search_query"
	}
	if c.Embedding.MaxAttempts <= 0 {
		c.Embedding.MaxAttempts = 15
	}
	if c.LLM.Model == "" {
		c.LLM.Model = "gpt-4o-mini"
	}
	if c.Cache.TTLHours <= 0 {
		c.Cache.TTLHours = 24 * 7
	}
	if c.Session.TTLMinutes <= 0 {
		c.Session.TTLMinutes = 30
	}
	if c.Session.MaxSessions <= 0 {
		c.Session.MaxSessions = 10000
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	if c.Search.ScoreThreshold < 0 || c.Search.ScoreThreshold > 1 {
		return fmt.Errorf("search.score_threshold must be in [0,1], got %f", c.Search.ScoreThreshold)
	}
	if c.Embedding.Dimensions != c.Search.VectorSize {
		return fmt.Errorf("embedding.dimensions (%d) must match search.vector_size (%d)",
			c.Embedding.Dimensions, c.Search.VectorSize)
	}
	return nil
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
