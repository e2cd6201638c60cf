package model

import (
	"fmt"
	"time"
)

// Boundary caps enforced before the pipeline runs. Callers asking for
// more get clamped, not rejected.
const (
	MaxSentencesCap = 50
	MaxClaimsCap    = 10
)

// Config is the complete Claimscope configuration
type Config struct {
	HTTP        HTTPConfig        `yaml:"http"`
	Cache       CacheConfig       `yaml:"cache"`
	LLM         LLMConfig         `yaml:"llm"`
	Limits      Limits            `yaml:"limits"`
	Concurrency ConcurrencyConfig `yaml:"concurrency"`
	Output      OutputConfig      `yaml:"output"`
}

// HTTPConfig controls article fetching
type HTTPConfig struct {
	Timeout       time.Duration `yaml:"timeout"`
	UserAgent     string        `yaml:"user_agent"`
	MaxBodyBytes  int64         `yaml:"max_body_bytes"`
	RespectRobots bool          `yaml:"respect_robots"`
	HTTPProxy     string        `yaml:"http_proxy"`
	HTTPSProxy    string        `yaml:"https_proxy"`
}

// CacheConfig controls caching of fetched article text
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled"`
	Dir       string        `yaml:"dir"`
	MemoryTTL time.Duration `yaml:"memory_ttl"`
	DiskTTL   time.Duration `yaml:"disk_ttl"`
}

// LLMConfig configures the generative model used for judgments
type LLMConfig struct {
	Provider    string  `yaml:"provider"` // openai, anthropic, ollama
	Model       string  `yaml:"model"`
	APIKey      string  `yaml:"-"` // Never persisted; from env or .env
	BaseURL     string  `yaml:"base_url"`
	Timeout     int     `yaml:"timeout"` // seconds
	MaxTokens   int     `yaml:"max_tokens"`
	Temperature float32 `yaml:"temperature"`
	RateLimit   float64 `yaml:"rate_limit"` // judgment calls per second, 0 = unlimited
}

// ConcurrencyConfig controls parallelism
type ConcurrencyConfig struct {
	SentenceWorkers int `yaml:"sentence_workers"` // concurrent sentences per article
	BatchWorkers    int `yaml:"batch_workers"`    // concurrent URLs in batch mode
}

// OutputConfig controls rendering
type OutputConfig struct {
	Verbose       bool `yaml:"verbose"`
	IncludeFooter bool `yaml:"include_footer"`
}

// DefaultConfig returns sensible defaults. Sentence and claim limits
// mirror the original web defaults: 5 sentences, 10 claims, no skip.
func DefaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Timeout:       30 * time.Second,
			UserAgent:     "Claimscope/0.2 (+https://github.com/avetrov/claimscope)",
			MaxBodyBytes:  2_000_000,
			RespectRobots: true,
		},
		Cache: CacheConfig{
			Enabled:   true,
			Dir:       "",
			MemoryTTL: 15 * time.Minute,
			DiskTTL:   24 * time.Hour,
		},
		LLM: LLMConfig{
			Provider:    "openai",
			Model:       "",
			Timeout:     60,
			MaxTokens:   1000,
			Temperature: 0.1,
		},
		Limits: Limits{
			SkipSentences: 0,
			MaxSentences:  5,
			MaxClaims:     10,
		},
		Concurrency: ConcurrencyConfig{
			SentenceWorkers: 1,
			BatchWorkers:    4,
		},
		Output: OutputConfig{
			IncludeFooter: true,
		},
	}
}

// Validate rejects limits the pipeline must never see. Negative values
// are a caller error; values above the caps are clamped by Clamp, not
// rejected here.
func (l Limits) Validate() error {
	if l.SkipSentences < 0 {
		return fmt.Errorf("skip_sentences must be >= 0, got %d", l.SkipSentences)
	}
	if l.MaxSentences < 0 {
		return fmt.Errorf("max_sentences must be >= 0, got %d", l.MaxSentences)
	}
	if l.MaxClaims < 0 {
		return fmt.Errorf("max_claims must be >= 0, got %d", l.MaxClaims)
	}
	return nil
}

// Clamp applies the boundary caps and returns the limits the pipeline
// actually runs with
func (l Limits) Clamp() Limits {
	if l.MaxSentences > MaxSentencesCap {
		l.MaxSentences = MaxSentencesCap
	}
	if l.MaxClaims > MaxClaimsCap {
		l.MaxClaims = MaxClaimsCap
	}
	return l
}
