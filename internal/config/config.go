// Package config loads and validates llmx configuration. Configuration is
// resolved from defaults, an optional YAML file (.llmx.yaml), and LLMX_*
// environment variables, in that order of precedence.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultFileName is the project-level configuration file name.
const DefaultFileName = ".llmx.yaml"

// Ingest bounds defaults.
const (
	DefaultChunkTargetChars = 4000
	DefaultChunkMaxChars    = 8000
	DefaultMaxFileBytes     = 10_000_000
	DefaultMaxTotalBytes    = 50_000_000
	DefaultMaxChunksPerFile = 2000
)

// Search defaults.
const (
	DefaultBM25Weight     = 0.5
	DefaultSemanticWeight = 0.5
	DefaultRRFConstant    = 60
	DefaultMaxTokens      = 16_000
	DefaultLimit          = 10
)

// Config is the complete llmx configuration.
type Config struct {
	Ingest  IngestConfig  `yaml:"ingest"`
	Search  SearchConfig  `yaml:"search"`
	Embed   EmbedConfig   `yaml:"embeddings"`
	Logging LoggingConfig `yaml:"logging"`
	Watch   WatchConfig   `yaml:"watch"`
}

// IngestConfig carries the chunking and batch bounds applied at ingest time.
type IngestConfig struct {
	// ChunkTargetChars is the soft per-chunk size target.
	ChunkTargetChars int `yaml:"chunk_target_chars"`
	// ChunkMaxChars is the hard per-chunk size cap.
	ChunkMaxChars int `yaml:"chunk_max_chars"`
	// MaxFileBytes skips any single file above this size.
	MaxFileBytes int64 `yaml:"max_file_bytes"`
	// MaxTotalBytes stops ingesting once the batch total exceeds it.
	MaxTotalBytes int64 `yaml:"max_total_bytes"`
	// MaxChunksPerFile drops excess chunks with a warning.
	MaxChunksPerFile int `yaml:"max_chunks_per_file"`
	// AllowedExtensions, when non-empty, restricts ingestion to the listed
	// extensions (leading dot, lowercase).
	AllowedExtensions []string `yaml:"allowed_extensions"`
}

// SearchConfig carries hybrid search parameters.
type SearchConfig struct {
	// BM25Weight and SemanticWeight must each lie in [0,1] and sum to 1.
	BM25Weight     float64 `yaml:"bm25_weight"`
	SemanticWeight float64 `yaml:"semantic_weight"`
	// RRFConstant is the smoothing constant k for reciprocal rank fusion.
	RRFConstant int `yaml:"rrf_constant"`
	// MaxTokens bounds inline chunk content in search responses.
	MaxTokens int `yaml:"max_tokens"`
	// Limit is the default result count.
	Limit int `yaml:"limit"`
}

// EmbedConfig carries embedding settings for the offline static embedder.
type EmbedConfig struct {
	// Dimensions is the vector dimension produced by the static embedder.
	Dimensions int `yaml:"dimensions"`
	// CacheSize is the LRU capacity of the embedding cache.
	CacheSize int `yaml:"cache_size"`
}

// LoggingConfig configures structured logging.
type LoggingConfig struct {
	Level    string `yaml:"level"`
	FilePath string `yaml:"file_path"`
}

// WatchConfig configures the file watcher.
type WatchConfig struct {
	// DebounceMS is the event coalescing window in milliseconds.
	DebounceMS int `yaml:"debounce_ms"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Ingest: IngestConfig{
			ChunkTargetChars: DefaultChunkTargetChars,
			ChunkMaxChars:    DefaultChunkMaxChars,
			MaxFileBytes:     DefaultMaxFileBytes,
			MaxTotalBytes:    DefaultMaxTotalBytes,
			MaxChunksPerFile: DefaultMaxChunksPerFile,
		},
		Search: SearchConfig{
			BM25Weight:     DefaultBM25Weight,
			SemanticWeight: DefaultSemanticWeight,
			RRFConstant:    DefaultRRFConstant,
			MaxTokens:      DefaultMaxTokens,
			Limit:          DefaultLimit,
		},
		Embed: EmbedConfig{
			Dimensions: 256,
			CacheSize:  4096,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		Watch: WatchConfig{
			DebounceMS: 400,
		},
	}
}

// Load resolves configuration for a project root: defaults, then the YAML
// file if present, then environment overrides. A missing file is not an
// error.
func Load(root string) (*Config, error) {
	cfg := Default()

	path := filepath.Join(root, DefaultFileName)
	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv applies LLMX_* environment overrides.
func applyEnv(cfg *Config) {
	if v, ok := envInt("LLMX_CHUNK_TARGET_CHARS"); ok {
		cfg.Ingest.ChunkTargetChars = v
	}
	if v, ok := envInt("LLMX_CHUNK_MAX_CHARS"); ok {
		cfg.Ingest.ChunkMaxChars = v
	}
	if v, ok := envInt64("LLMX_MAX_FILE_BYTES"); ok {
		cfg.Ingest.MaxFileBytes = v
	}
	if v, ok := envInt64("LLMX_MAX_TOTAL_BYTES"); ok {
		cfg.Ingest.MaxTotalBytes = v
	}
	if v, ok := envInt("LLMX_MAX_CHUNKS_PER_FILE"); ok {
		cfg.Ingest.MaxChunksPerFile = v
	}
	if v, ok := envFloat("LLMX_BM25_WEIGHT"); ok {
		cfg.Search.BM25Weight = v
	}
	if v, ok := envFloat("LLMX_SEMANTIC_WEIGHT"); ok {
		cfg.Search.SemanticWeight = v
	}
	if v, ok := envInt("LLMX_RRF_CONSTANT"); ok {
		cfg.Search.RRFConstant = v
	}
	if v := os.Getenv("LLMX_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
}

func envInt(key string) (int, bool) {
	v := os.Getenv(key)
	if v == "" {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}

func envInt64(key string) (int64, bool) {
	v := os.Getenv(key)
	if v == "" {
		return 0, false
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

func envFloat(key string) (float64, bool) {
	v := os.Getenv(key)
	if v == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// Validate checks bounds and weight constraints.
func (c *Config) Validate() error {
	if c.Ingest.ChunkMaxChars <= 0 {
		return fmt.Errorf("chunk_max_chars must be positive, got %d", c.Ingest.ChunkMaxChars)
	}
	if c.Ingest.ChunkTargetChars <= 0 || c.Ingest.ChunkTargetChars > c.Ingest.ChunkMaxChars {
		return fmt.Errorf("chunk_target_chars must be in (0, chunk_max_chars], got %d", c.Ingest.ChunkTargetChars)
	}
	if c.Ingest.MaxChunksPerFile <= 0 {
		return fmt.Errorf("max_chunks_per_file must be positive, got %d", c.Ingest.MaxChunksPerFile)
	}
	sum := c.Search.BM25Weight + c.Search.SemanticWeight
	if c.Search.BM25Weight < 0 || c.Search.BM25Weight > 1 ||
		c.Search.SemanticWeight < 0 || c.Search.SemanticWeight > 1 ||
		sum < 1-1e-6 || sum > 1+1e-6 {
		return fmt.Errorf("search weights must lie in [0,1] and sum to 1, got %.3f + %.3f", c.Search.BM25Weight, c.Search.SemanticWeight)
	}
	if c.Search.RRFConstant <= 0 {
		return fmt.Errorf("rrf_constant must be positive, got %d", c.Search.RRFConstant)
	}
	if c.Search.MaxTokens < 0 {
		return fmt.Errorf("max_tokens must be >= 0, got %d", c.Search.MaxTokens)
	}
	return nil
}

// NormalizedExtensions returns AllowedExtensions lowercased with a leading
// dot, or nil when unrestricted.
func (c *IngestConfig) NormalizedExtensions() map[string]struct{} {
	if len(c.AllowedExtensions) == 0 {
		return nil
	}
	m := make(map[string]struct{}, len(c.AllowedExtensions))
	for _, ext := range c.AllowedExtensions {
		e := strings.ToLower(strings.TrimSpace(ext))
		if e == "" {
			continue
		}
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		m[e] = struct{}{}
	}
	return m
}
