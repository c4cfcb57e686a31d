package config

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Config holds the overall configuration for the application.
type Config struct {
	Server        ServerConfig        `yaml:"server"`
	Logging       LoggingConfig       `yaml:"logging"`
	DEXScreener   DEXScreenerConfig   `yaml:"dexScreener"`
	GeckoTerminal GeckoTerminalConfig `yaml:"geckoTerminal"`
	Cache         CacheConfig         `yaml:"cache"`
	Transactions  TransactionsConfig  `yaml:"transactions"`
	TokensFile    string              `yaml:"tokensFile"`
}

// ServerConfig holds the HTTP server configuration.
type ServerConfig struct {
	Port         string `yaml:"port"`
	ReadTimeout  int    `yaml:"readTimeout"`  // seconds
	WriteTimeout int    `yaml:"writeTimeout"` // seconds
	IdleTimeout  int    `yaml:"idleTimeout"`  // seconds
}

// LoggingConfig holds the configuration for logging.
type LoggingConfig struct {
	Level string `yaml:"level"` // e.g., "debug", "info", "warn", "error"
	File  string `yaml:"file"`
}

// DEXScreenerConfig holds the configuration for the DEX Screener client.
type DEXScreenerConfig struct {
	BaseURL              string  `yaml:"baseURL"`
	RequestTimeoutMillis int64   `yaml:"requestTimeoutMillis"`
	RequestsPerSecond    float64 `yaml:"requestsPerSecond"`
	Burst                int     `yaml:"burst"`
}

// GeckoTerminalConfig holds the configuration for the historical-candle
// client.
type GeckoTerminalConfig struct {
	BaseURL              string `yaml:"baseURL"`
	RequestTimeoutMillis int64  `yaml:"requestTimeoutMillis"`
	CandleLimit          int    `yaml:"candleLimit"`
}

// CacheConfig selects the analysis cache backend and its retention.
type CacheConfig struct {
	Backend                string `yaml:"backend"` // "memory" or "redis"
	TTLMinutes             int    `yaml:"ttlMinutes"`
	CleanupIntervalMinutes int    `yaml:"cleanupIntervalMinutes"` // memory backend only
	Redis                  RedisConfig `yaml:"redis"`
}

// RedisConfig holds connection settings for the redis cache backend.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// TransactionsConfig tunes the simulated transaction source.
type TransactionsConfig struct {
	MinFills int `yaml:"minFills"`
	MaxFills int `yaml:"maxFills"`
}

// LoadConfig loads configuration from a YAML file and fills in defaults for
// anything left unset.
func LoadConfig(path string) (*Config, error) {
	logrus.Infof("Loading configuration from path: %s", path)
	data, err := os.ReadFile(path)
	if err != nil {
		logrus.Errorf("Failed to read config file %s: %v", path, err)
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	err = yaml.Unmarshal(data, &cfg)
	if err != nil {
		logrus.Errorf("Failed to unmarshal config data from %s: %v", path, err)
		return nil, fmt.Errorf("failed to unmarshal config data from %s: %w", path, err)
	}

	if cfg.Server.Port == "" {
		cfg.Server.Port = "8080"
		logrus.Infof("Server.Port not set, defaulting to %s", cfg.Server.Port)
	}

	if cfg.DEXScreener.BaseURL == "" {
		cfg.DEXScreener.BaseURL = "https://api.dexscreener.com/latest"
		logrus.Infof("DEXScreener.BaseURL not set, defaulting to %s", cfg.DEXScreener.BaseURL)
	}
	if cfg.DEXScreener.RequestTimeoutMillis == 0 {
		cfg.DEXScreener.RequestTimeoutMillis = 10000
		logrus.Infof("DEXScreener.RequestTimeoutMillis not set, defaulting to %d ms", cfg.DEXScreener.RequestTimeoutMillis)
	}
	if cfg.DEXScreener.RequestsPerSecond <= 0 {
		// DEX Screener allows 300 req/min on the public endpoints.
		cfg.DEXScreener.RequestsPerSecond = 5
		logrus.Infof("DEXScreener.RequestsPerSecond not set, defaulting to %.0f", cfg.DEXScreener.RequestsPerSecond)
	}
	if cfg.DEXScreener.Burst <= 0 {
		cfg.DEXScreener.Burst = 5
	}

	if cfg.GeckoTerminal.BaseURL == "" {
		cfg.GeckoTerminal.BaseURL = "https://api.geckoterminal.com/api/v2"
		logrus.Infof("GeckoTerminal.BaseURL not set, defaulting to %s", cfg.GeckoTerminal.BaseURL)
	}
	if cfg.GeckoTerminal.RequestTimeoutMillis == 0 {
		cfg.GeckoTerminal.RequestTimeoutMillis = 10000
	}
	if cfg.GeckoTerminal.CandleLimit <= 0 {
		cfg.GeckoTerminal.CandleLimit = 365
	}

	if cfg.Cache.Backend == "" {
		cfg.Cache.Backend = "memory"
		logrus.Infof("Cache.Backend not set, defaulting to %s", cfg.Cache.Backend)
	}
	if cfg.Cache.Backend != "memory" && cfg.Cache.Backend != "redis" {
		return nil, fmt.Errorf("unknown cache backend %q (want \"memory\" or \"redis\")", cfg.Cache.Backend)
	}
	if cfg.Cache.TTLMinutes <= 0 {
		cfg.Cache.TTLMinutes = 5
		logrus.Infof("Cache.TTLMinutes not set, defaulting to %d minutes", cfg.Cache.TTLMinutes)
	}
	if cfg.Cache.CleanupIntervalMinutes <= 0 {
		cfg.Cache.CleanupIntervalMinutes = 10
	}
	if cfg.Cache.Backend == "redis" && cfg.Cache.Redis.Addr == "" {
		cfg.Cache.Redis.Addr = "localhost:6379"
		logrus.Infof("Cache.Redis.Addr not set, defaulting to %s", cfg.Cache.Redis.Addr)
	}

	if cfg.Transactions.MinFills <= 0 {
		cfg.Transactions.MinFills = 4
	}
	if cfg.Transactions.MaxFills < cfg.Transactions.MinFills {
		cfg.Transactions.MaxFills = cfg.Transactions.MinFills + 12
	}

	if cfg.TokensFile == "" {
		cfg.TokensFile = "config/tokens.json"
		logrus.Infof("TokensFile not set, defaulting to %s", cfg.TokensFile)
	}

	logrus.Info("Configuration loaded successfully.")
	return &cfg, nil
}
