package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// FileName is the config file looked up in the working directory.
const FileName = "bizledger.yaml"

// Storage backends.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Config represents the top-level bizledger.yaml configuration.
type Config struct {
	Business   BusinessConfig   `yaml:"business"`
	Storage    StorageConfig    `yaml:"storage"`
	Simulation SimulationConfig `yaml:"simulation"`
	Logging    LoggingConfig    `yaml:"logging"`
	Categories []string         `yaml:"categories,omitempty"`
}

// BusinessConfig identifies the business.
type BusinessConfig struct {
	Name string `yaml:"name"`
}

// StorageConfig selects where the KV blobs live.
type StorageConfig struct {
	Backend    string `yaml:"backend"`
	Dir        string `yaml:"dir"`
	SQLitePath string `yaml:"sqlite_path"`
}

// SimulationConfig holds the stand-in delays for payment and auth calls.
type SimulationConfig struct {
	PaymentLatency time.Duration `yaml:"payment_latency"`
	AuthLatency    time.Duration `yaml:"auth_latency"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // console or json
}

// Load reads a bizledger.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default("")
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// LoadOrDefault is Load, falling back to Default when path does not exist.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(""), nil
	}
	return cfg, err
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new project.
func Default(businessName string) *Config {
	return &Config{
		Business: BusinessConfig{Name: businessName},
		Storage: StorageConfig{
			Backend:    BackendFile,
			Dir:        "data",
			SQLitePath: "data/bizledger.db",
		},
		Simulation: SimulationConfig{
			PaymentLatency: time.Second,
			AuthLatency:    time.Second,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// LoadEnvFile loads KEY=VALUE pairs from a .env file into the process
// environment. A missing file is not an error.
func LoadEnvFile(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overrides cfg from BIZLEDGER_* environment variables.
func ApplyEnv(cfg *Config) {
	cfg.Business.Name = getEnv("BIZLEDGER_BUSINESS_NAME", cfg.Business.Name)
	cfg.Storage.Backend = getEnv("BIZLEDGER_STORAGE_BACKEND", cfg.Storage.Backend)
	cfg.Storage.Dir = getEnv("BIZLEDGER_DATA_DIR", cfg.Storage.Dir)
	cfg.Storage.SQLitePath = getEnv("BIZLEDGER_SQLITE_PATH", cfg.Storage.SQLitePath)
	cfg.Simulation.PaymentLatency = getEnvDuration("BIZLEDGER_PAYMENT_LATENCY", cfg.Simulation.PaymentLatency)
	cfg.Simulation.AuthLatency = getEnvDuration("BIZLEDGER_AUTH_LATENCY", cfg.Simulation.AuthLatency)
	cfg.Logging.Level = getEnv("BIZLEDGER_LOG_LEVEL", cfg.Logging.Level)
	cfg.Logging.Format = getEnv("BIZLEDGER_LOG_FORMAT", cfg.Logging.Format)
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var problems []string
	if !slices.Contains([]string{BackendFile, BackendSQLite, BackendMemory}, c.Storage.Backend) {
		problems = append(problems, fmt.Sprintf("unknown storage backend %q", c.Storage.Backend))
	}
	if c.Storage.Backend == BackendFile && c.Storage.Dir == "" {
		problems = append(problems, "storage.dir is required for the file backend")
	}
	if c.Storage.Backend == BackendSQLite && c.Storage.SQLitePath == "" {
		problems = append(problems, "storage.sqlite_path is required for the sqlite backend")
	}
	if c.Simulation.PaymentLatency < 0 || c.Simulation.AuthLatency < 0 {
		problems = append(problems, "simulated latencies must not be negative")
	}
	if c.Logging.Format != "console" && c.Logging.Format != "json" {
		problems = append(problems, fmt.Sprintf("unknown log format %q", c.Logging.Format))
	}
	if len(problems) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(problems, "\n- "))
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
