package model

import (
	"runtime"
	"time"
)

// Config is the full runtime configuration. Values are layered from
// defaults, the config file, GAVEL_* environment variables, and flags.
type Config struct {
	Database    DatabaseConfig    `yaml:"database" mapstructure:"database"`
	Fetch       FetchConfig       `yaml:"fetch" mapstructure:"fetch"`
	Concurrency ConcurrencyConfig `yaml:"concurrency" mapstructure:"concurrency"`
	Corpus      CorpusConfig      `yaml:"corpus" mapstructure:"corpus"`
	Output      OutputConfig      `yaml:"output" mapstructure:"output"`
}

// DatabaseConfig holds postgres connection settings.
type DatabaseConfig struct {
	Host     string `yaml:"host" mapstructure:"host"`
	Port     int    `yaml:"port" mapstructure:"port"`
	Name     string `yaml:"name" mapstructure:"name"`
	User     string `yaml:"user" mapstructure:"user"`
	Password string `yaml:"password" mapstructure:"password"`
	SSLMode  string `yaml:"sslmode" mapstructure:"sslmode"`
}

// FetchConfig holds crawler settings.
type FetchConfig struct {
	Timeout           time.Duration `yaml:"timeout" mapstructure:"timeout"`
	UserAgent         string        `yaml:"user_agent" mapstructure:"user_agent"`
	RequestsPerSecond float64       `yaml:"requests_per_second" mapstructure:"requests_per_second"`
	BurstSize         int           `yaml:"burst_size" mapstructure:"burst_size"`
	MaxRetries        int           `yaml:"max_retries" mapstructure:"max_retries"`
	CacheTTL          time.Duration `yaml:"cache_ttl" mapstructure:"cache_ttl"`
	MaxBodyBytes      int64         `yaml:"max_body_bytes" mapstructure:"max_body_bytes"`
}

// ConcurrencyConfig controls the parse worker fan-out.
type ConcurrencyConfig struct {
	Workers int `yaml:"workers" mapstructure:"workers"`
}

// CorpusConfig holds dataset-assembly thresholds.
type CorpusConfig struct {
	MinTokenLength int    `yaml:"min_token_length" mapstructure:"min_token_length"`
	MinDocLength   int    `yaml:"min_doc_length" mapstructure:"min_doc_length"`
	MinDictCount   int    `yaml:"min_dict_count" mapstructure:"min_dict_count"`
	OutputDir      string `yaml:"output_dir" mapstructure:"output_dir"`
	Name           string `yaml:"name" mapstructure:"name"`
}

// OutputConfig controls terminal output.
type OutputConfig struct {
	Verbose bool `yaml:"verbose" mapstructure:"verbose"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			Host:    "localhost",
			Port:    5432,
			Name:    "gavel",
			User:    "gavel",
			SSLMode: "disable",
		},
		Fetch: FetchConfig{
			Timeout:           30 * time.Second,
			UserAgent:         "Gavel/0.1 (+https://github.com/opencapitol/gavel)",
			RequestsPerSecond: 2,
			BurstSize:         4,
			MaxRetries:        3,
			CacheTTL:          6 * time.Hour,
			MaxBodyBytes:      20_000_000,
		},
		Concurrency: ConcurrencyConfig{
			Workers: runtime.NumCPU(),
		},
		Corpus: CorpusConfig{
			MinTokenLength: 3,
			MinDocLength:   5,
			MinDictCount:   5,
			OutputDir:      ".",
			Name:           "corpus",
		},
		Output: OutputConfig{},
	}
}
