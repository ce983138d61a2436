package model

import (
	"os"
	"path/filepath"
	"time"
)

// Config holds the complete claimtree configuration
type Config struct {
	API         APIConfig         `yaml:"api"`
	HTTP        HTTPConfig        `yaml:"http"`
	Cache       CacheConfig       `yaml:"cache"`
	Concurrency ConcurrencyConfig `yaml:"concurrency"`
	RateLimit   RateLimitConfig   `yaml:"rate_limit"`
	LLM         LLMConfig         `yaml:"llm"`
	Output      OutputConfig      `yaml:"output"`
}

// APIConfig locates the argument-graph API server
type APIConfig struct {
	Endpoint  string `yaml:"endpoint"`   // GraphQL endpoint URL
	AuthToken string `yaml:"auth_token"` // Session token; empty means unauthenticated
}

// HTTPConfig controls the underlying HTTP client
type HTTPConfig struct {
	Timeout      time.Duration `yaml:"timeout"`
	UserAgent    string        `yaml:"user_agent"`
	MaxBodyBytes int64         `yaml:"max_body_bytes"`
	InsecureTLS  bool          `yaml:"insecure_tls"`
}

// CacheConfig controls the point cache
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled"`
	Dir       string        `yaml:"dir"`        // Disk cache directory; empty disables the disk layer
	MemoryTTL time.Duration `yaml:"memory_ttl"`
	DiskTTL   time.Duration `yaml:"disk_ttl"`
}

// ConcurrencyConfig controls prefetch parallelism
type ConcurrencyConfig struct {
	PrefetchWorkers int `yaml:"prefetch_workers"`
}

// RateLimitConfig throttles prefetch traffic against the API host
type RateLimitConfig struct {
	RequestsPerSecond float64 `yaml:"requests_per_second"`
	BurstSize         int     `yaml:"burst_size"`
}

// LLMConfig configures the optional tree summarizer
type LLMConfig struct {
	Provider  string `yaml:"provider"` // "openai", "ollama", "" (disabled)
	Model     string `yaml:"model"`
	APIKey    string `yaml:"api_key,omitempty"`
	BaseURL   string `yaml:"base_url,omitempty"`
	Timeout   int    `yaml:"timeout"` // seconds
	MaxTokens int    `yaml:"max_tokens"`
}

// OutputConfig controls rendering
type OutputConfig struct {
	Verbose  bool `yaml:"verbose"`
	MaxWidth int  `yaml:"max_width"` // Terminal wrap width for point titles
}

// DefaultConfig returns the built-in defaults
func DefaultConfig() *Config {
	cacheDir := ""
	if home, err := os.UserHomeDir(); err == nil {
		cacheDir = filepath.Join(home, ".claimtree", "cache")
	}

	return &Config{
		API: APIConfig{
			Endpoint: "http://localhost:8080/graphql",
		},
		HTTP: HTTPConfig{
			Timeout:      30 * time.Second,
			UserAgent:    "claimtree/0.1 (+https://github.com/claimtree/claimtree)",
			MaxBodyBytes: 4_000_000,
		},
		Cache: CacheConfig{
			Enabled:   true,
			Dir:       cacheDir,
			MemoryTTL: 5 * time.Minute,
			DiskTTL:   24 * time.Hour,
		},
		Concurrency: ConcurrencyConfig{
			PrefetchWorkers: 4,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 5,
			BurstSize:         5,
		},
		LLM: LLMConfig{
			Provider:  "",
			Timeout:   30,
			MaxTokens: 1000,
		},
		Output: OutputConfig{
			MaxWidth: 100,
		},
	}
}
