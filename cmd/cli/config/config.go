package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const DefaultAPIURL = "http://localhost:8080"

// Config is the CLI's persisted configuration.
type Config struct {
	APIURL string `yaml:"api_url"`
	Token  string `yaml:"token,omitempty"`
	// Output is "table" (default) or "json".
	Output string `yaml:"output"`
}

func Default() Config {
	return Config{APIURL: DefaultAPIURL, Output: "table"}
}

// Path returns $ITADMIN_CONFIG, or config.yaml under the user config dir.
func Path() (string, error) {
	if p := os.Getenv("ITADMIN_CONFIG"); p != "" {
		return p, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate config dir: %w", err)
	}
	return filepath.Join(dir, "itadmin", "config.yaml"), nil
}

// Load reads the config file, if any, and applies ITADMIN_API_URL and
// ITADMIN_TOKEN on top. A missing file yields the defaults.
func Load() (Config, error) {
	cfg, err := LoadFile()
	if err != nil {
		return cfg, err
	}
	if v := os.Getenv("ITADMIN_API_URL"); v != "" {
		cfg.APIURL = v
	}
	if v := os.Getenv("ITADMIN_TOKEN"); v != "" {
		cfg.Token = v
	}
	return cfg, nil
}

// LoadFile reads only the config file, without environment overrides.
func LoadFile() (Config, error) {
	cfg := Default()

	path, err := Path()
	if err != nil {
		return cfg, err
	}
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return cfg, fmt.Errorf("read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	}

	if cfg.APIURL == "" {
		cfg.APIURL = DefaultAPIURL
	}
	if cfg.Output == "" {
		cfg.Output = "table"
	}
	return cfg, nil
}

// Save writes cfg to Path with owner-only permissions.
func Save(cfg Config) error {
	path, err := Path()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}
