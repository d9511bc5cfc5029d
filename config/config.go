package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/amresh-singh-kipm/quick-admin/pkg/logger"
)

// Duration is a time.Duration that unmarshals from YAML strings like "30s".
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// Config holds the complete console configuration.
type Config struct {
	ListenAddr     string        `yaml:"listenAddr"`
	APIBaseURL     string        `yaml:"apiBaseUrl"`
	SessionFile    string        `yaml:"sessionFile"`
	RequestTimeout Duration      `yaml:"requestTimeout"`
	Log            logger.Config `yaml:"log"`
}

// New returns a Config with default values. The defaults make the binary
// runnable with no config file at all.
func New() *Config {
	sessionFile := ".quickadmin-session.json"
	if home, err := os.UserHomeDir(); err == nil {
		sessionFile = filepath.Join(home, ".quickadmin", "session.json")
	}
	return &Config{
		ListenAddr:     ":8090",
		APIBaseURL:     "http://localhost:3000/api",
		SessionFile:    sessionFile,
		RequestTimeout: Duration(30 * time.Second),
		Log:            logger.DefaultConfig(),
	}
}

// LoadFile merges configuration from a YAML file over the current values.
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}

	var loaded Config
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}
	c.merge(&loaded)
	return nil
}

func (c *Config) merge(loaded *Config) {
	if loaded.ListenAddr != "" {
		c.ListenAddr = loaded.ListenAddr
	}
	if loaded.APIBaseURL != "" {
		c.APIBaseURL = loaded.APIBaseURL
	}
	if loaded.SessionFile != "" {
		c.SessionFile = loaded.SessionFile
	}
	if loaded.RequestTimeout != 0 {
		c.RequestTimeout = loaded.RequestTimeout
	}
	if loaded.Log.Level != "" {
		c.Log.Level = loaded.Log.Level
	}
	if loaded.Log.Format != "" {
		c.Log.Format = loaded.Log.Format
	}
	if loaded.Log.Output != "" {
		c.Log.Output = loaded.Log.Output
	}
}

// ApplyEnv overrides configuration from environment variables.
func (c *Config) ApplyEnv() {
	c.ListenAddr = getEnv("QUICKADMIN_LISTEN_ADDR", c.ListenAddr)
	c.APIBaseURL = getEnv("QUICKADMIN_API_URL", c.APIBaseURL)
	c.SessionFile = getEnv("QUICKADMIN_SESSION_FILE", c.SessionFile)
	c.Log.Level = getEnv("QUICKADMIN_LOG_LEVEL", c.Log.Level)
	c.Log.Format = getEnv("QUICKADMIN_LOG_FORMAT", c.Log.Format)

	if v := os.Getenv("QUICKADMIN_REQUEST_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			c.RequestTimeout = Duration(d)
		}
	}
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.ListenAddr == "" {
		return fmt.Errorf("listen address is required")
	}
	u, err := url.Parse(c.APIBaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid API base URL %q", c.APIBaseURL)
	}
	if c.SessionFile == "" {
		return fmt.Errorf("session file path is required")
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request timeout must be positive")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
