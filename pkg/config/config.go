package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Environment string `yaml:"environment"`
	Server      struct {
		Port            int           `yaml:"port"`
		ReadTimeout     time.Duration `yaml:"read_timeout"`
		WriteTimeout    time.Duration `yaml:"write_timeout"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	} `yaml:"server"`
	Metrics struct {
		Enabled bool   `yaml:"enabled"`
		Path    string `yaml:"path"`
	} `yaml:"metrics"`
	Pricing struct {
		MarkupPercent        float64  `yaml:"markup_percent"`
		MaxResults           int      `yaml:"max_results"`
		MinResults           int      `yaml:"min_results"`
		LookbackDays         int      `yaml:"lookback_days"`
		MinPrice             float64  `yaml:"min_price"`
		ExcludeWords         []string `yaml:"exclude_words"`
		OutlierIQRMultiplier float64  `yaml:"outlier_iqr_multiplier"`
		ConfidenceFullSample int      `yaml:"confidence_full_sample_size"`
	} `yaml:"pricing"`
	Ebay struct {
		BaseURL    string        `yaml:"base_url"`
		APIKey     string        `yaml:"api_key"`
		Timeout    time.Duration `yaml:"timeout"`
		RatePerSec float64       `yaml:"rate_per_sec"`
		RateBurst  float64       `yaml:"rate_burst"`
	} `yaml:"ebay"`
	Scraper struct {
		ChromePath  string        `yaml:"chrome_path"`
		PageTimeout time.Duration `yaml:"page_timeout"`
	} `yaml:"scraper"`
	Fetcher struct {
		Backend  string        `yaml:"backend"` // "api" or "scrape"
		CacheTTL time.Duration `yaml:"cache_ttl"`
	} `yaml:"fetcher"`
	Redis struct {
		Enabled  bool   `yaml:"enabled"`
		Host     string `yaml:"host"`
		Port     int    `yaml:"port"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
	} `yaml:"redis"`
	Kafka struct {
		Enabled      bool     `yaml:"enabled"`
		Brokers      []string `yaml:"brokers"`
		ItemsTopic   string   `yaml:"items_topic"`
		ResultsTopic string   `yaml:"results_topic"`
		RequiredAcks int      `yaml:"required_acks"`
		Compression  string   `yaml:"compression"`
		Producer     struct {
			MaxAttempts  int           `yaml:"max_attempts"`
			Linger       time.Duration `yaml:"linger"`
			BatchBytes   int           `yaml:"batch_bytes"`
			BatchSize    int           `yaml:"batch_size"`
			WriteTimeout time.Duration `yaml:"write_timeout"`
			ReadTimeout  time.Duration `yaml:"read_timeout"`
			Async        bool          `yaml:"async"`
		} `yaml:"producer"`
		Consumer struct {
			GroupID    string        `yaml:"group_id"`
			Workers    int           `yaml:"workers"`
			BufferSize int           `yaml:"buffer_size"`
			RetryMax   int           `yaml:"retry_max"`
			BackoffMin time.Duration `yaml:"backoff_min"`
			BackoffMax time.Duration `yaml:"backoff_max"`
			DLQTopic   string        `yaml:"dlq_topic"`
			MinBytes   int           `yaml:"min_bytes"`
			MaxBytes   int           `yaml:"max_bytes"`
		} `yaml:"consumer"`
	} `yaml:"kafka"`
	ClickHouse struct {
		Enabled          bool          `yaml:"enabled"`
		Host             string        `yaml:"host"`
		Port             int           `yaml:"port"`
		Database         string        `yaml:"database"`
		User             string        `yaml:"user"`
		Password         string        `yaml:"password"`
		UseHTTP          bool          `yaml:"use_http"`
		AsyncInsert      bool          `yaml:"async_insert"`
		WaitForAsync     bool          `yaml:"wait_for_async_insert"`
		DialTimeout      time.Duration `yaml:"dial_timeout"`
		ReadTimeout      time.Duration `yaml:"read_timeout"`
		WriteTimeout     time.Duration `yaml:"write_timeout"`
		MaxExecutionTime time.Duration `yaml:"max_execution_time"`
	} `yaml:"clickhouse"`
}

// Load reads and parses a YAML configuration file.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment variables.
func LoadWithEnv(path string) (*Config, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}

	if v := os.Getenv("EBAY_API_KEY"); v != "" {
		c.Ebay.APIKey = v
	}
	if v := os.Getenv("EBAY_BASE_URL"); v != "" {
		c.Ebay.BaseURL = v
	}
	if v := os.Getenv("FETCHER_BACKEND"); v != "" {
		c.Fetcher.Backend = v
	}
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		c.Kafka.Brokers = strings.Split(v, ",")
	}
	if v := os.Getenv("REDIS_HOST"); v != "" {
		c.Redis.Host = v
	}

	return c, nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	if c.Fetcher.Backend == "" {
		return fmt.Errorf("fetcher.backend is required")
	}
	if c.Fetcher.Backend != "api" && c.Fetcher.Backend != "scrape" {
		return fmt.Errorf("fetcher.backend must be 'api' or 'scrape', got '%s'", c.Fetcher.Backend)
	}
	if c.Fetcher.Backend == "api" && c.Ebay.BaseURL == "" {
		return fmt.Errorf("ebay.base_url is required for the api backend")
	}
	if c.Pricing.MinResults < 0 || c.Pricing.MaxResults < 0 {
		return fmt.Errorf("pricing sample limits must be non-negative")
	}
	if c.Pricing.MaxResults > 0 && c.Pricing.MinResults > c.Pricing.MaxResults {
		return fmt.Errorf("pricing.min_results cannot exceed pricing.max_results")
	}
	return nil
}
