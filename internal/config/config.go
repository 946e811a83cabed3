package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dreamw/travel-quote/internal/domain"
	"gopkg.in/yaml.v3"
)

const (
	StorageFile  = "file"
	StorageRedis = "redis"

	// DefaultPath is looked up in the working directory
	DefaultPath = "quote-client.yaml"
)

// Config is the quote client configuration file
type Config struct {
	Endpoint string        `yaml:"endpoint"`
	Timeout  time.Duration `yaml:"timeout"`
	LogFile  string        `yaml:"log_file,omitempty"`

	Storage     string `yaml:"storage"`
	HistoryFile string `yaml:"history_file"`

	RedisAddr     string `yaml:"redis_addr,omitempty"`
	RedisPassword string `yaml:"redis_password,omitempty"`
	RedisDB       int    `yaml:"redis_db,omitempty"`
	RedisPrefix   string `yaml:"redis_prefix,omitempty"`

	MaxSubmissions int           `yaml:"max_submissions"`
	Window         time.Duration `yaml:"window"`
}

// Default returns the configuration used for keys the file leaves out
func Default() Config {
	return Config{
		Timeout:        30 * time.Second,
		Storage:        StorageFile,
		HistoryFile:    defaultHistoryFile(),
		RedisPrefix:    "quote",
		MaxSubmissions: domain.DefaultMaxSubmissions,
		Window:         domain.DefaultWindow,
	}
}

func defaultHistoryFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "quote-history.json"
	}
	return filepath.Join(dir, "travel-quote", "history.json")
}

// Load reads and validates the YAML file at path
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes YAML over Default and validates the result
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config YAML: %w", err)
	}
	cfg.Storage = strings.ToLower(strings.TrimSpace(cfg.Storage))
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.Endpoint == "" {
		return errors.New("endpoint required in config")
	}
	u, err := url.Parse(c.Endpoint)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("endpoint must be an http(s) URL, got %q", c.Endpoint)
	}
	switch c.Storage {
	case StorageFile:
		if c.HistoryFile == "" {
			return errors.New("history_file required for file storage")
		}
	case StorageRedis:
		if strings.TrimSpace(c.RedisAddr) == "" {
			return errors.New("redis_addr required for redis storage")
		}
	default:
		return fmt.Errorf("storage must be %q or %q, got %q", StorageFile, StorageRedis, c.Storage)
	}
	if c.MaxSubmissions <= 0 {
		return errors.New("max_submissions must be > 0")
	}
	if c.Window <= 0 {
		return errors.New("window must be > 0")
	}
	if c.Timeout < 0 {
		return errors.New("timeout must be >= 0")
	}
	return nil
}
