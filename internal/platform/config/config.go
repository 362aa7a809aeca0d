package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

const (
	FileName  = "formnav.yaml"
	EnvPrefix = "FORMNAV"

	StoreDriverJSON   = "json"
	StoreDriverSQLite = "sqlite"
	StoreDriverMemory = "memory"
)

// Config is resolved from defaults, then <data dir>/formnav.yaml, then
// FORMNAV_* environment variables.
type Config struct {
	DataDir string `yaml:"-" ignored:"true"`

	StoreDriver string `yaml:"store_driver" envconfig:"STORE_DRIVER"`
	StorePath   string `yaml:"store_path" envconfig:"STORE_PATH"`
	DBPath      string `yaml:"db_path" envconfig:"DB_PATH"`
	StorageKey  string `yaml:"storage_key" envconfig:"STORAGE_KEY"`

	SocketPath string `yaml:"socket_path" envconfig:"SOCKET_PATH"`
	HTTPAddr   string `yaml:"http_addr" envconfig:"HTTP_ADDR"`

	AllowedDomain string `yaml:"allowed_domain" envconfig:"ALLOWED_DOMAIN"`
	AllowLoopback bool   `yaml:"allow_loopback" envconfig:"ALLOW_LOOPBACK"`
	AllowFile     bool   `yaml:"allow_file" envconfig:"ALLOW_FILE"`
	TitleSuffix   string `yaml:"title_suffix" envconfig:"TITLE_SUFFIX"`

	LogLevel       string `yaml:"log_level" envconfig:"LOG_LEVEL"`
	LogDevelopment bool   `yaml:"log_development" envconfig:"LOG_DEV"`

	// LiveBrowserCDP, when set, attaches to a running Chromium over CDP so
	// capture and navigation act on the user's real tab.
	LiveBrowserCDP string `yaml:"live_browser_cdp" envconfig:"LIVE_BROWSER_CDP"`
}

func New(dataDir string) (Config, error) {
	if dataDir == "" {
		return Config{}, fmt.Errorf("data dir is required")
	}
	cfg := Defaults(dataDir)
	if err := cfg.loadFile(filepath.Join(dataDir, FileName)); err != nil {
		return Config{}, err
	}
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return Config{}, fmt.Errorf("load env config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func Defaults(dataDir string) Config {
	return Config{
		DataDir:       dataDir,
		StoreDriver:   StoreDriverJSON,
		StorePath:     filepath.Join(dataDir, "storage.json"),
		DBPath:        filepath.Join(dataDir, "formnav.db"),
		StorageKey:    "gstForms",
		SocketPath:    filepath.Join(dataDir, "bridge.sock"),
		HTTPAddr:      "127.0.0.1:47611",
		AllowedDomain: "fasttax.com",
		AllowLoopback: true,
		AllowFile:     true,
		TitleSuffix:   " - GoSystem Tax",
		LogLevel:      "info",
	}
}

// DefaultDataDir is the per-user config directory, or ./.formnav when the
// platform does not report one.
func DefaultDataDir() string {
	base, err := os.UserConfigDir()
	if err != nil || base == "" {
		return ".formnav"
	}
	return filepath.Join(base, "formnav")
}

func (c Config) Validate() error {
	switch c.StoreDriver {
	case StoreDriverJSON, StoreDriverSQLite, StoreDriverMemory:
	default:
		return fmt.Errorf("unsupported store driver %q", c.StoreDriver)
	}
	if strings.TrimSpace(c.StorageKey) == "" {
		return fmt.Errorf("storage key is required")
	}
	if strings.TrimSpace(c.AllowedDomain) == "" {
		return fmt.Errorf("allowed domain is required")
	}
	return nil
}

func (c *Config) loadFile(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read config file: %w", err)
	}
	decoder := yaml.NewDecoder(bytes.NewReader(b))
	decoder.KnownFields(true)
	if err := decoder.Decode(c); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("decode config file: %w", err)
	}
	return nil
}
