// Package config holds the settings for a test run, read from an optional YAML file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultBaseURL        = "https://kasir-api.zelz.my.id"
	DefaultLatencyCeiling = 5 * time.Second
)

// Config is the file format, for example:
//
//	baseUrl: https://kasir-api.zelz.my.id
//	latencyCeiling: 5s
//	requestTimeout: 30s
//	seed: 12345
type Config struct {
	BaseURL        string        `yaml:"baseUrl"`
	LatencyCeiling time.Duration `yaml:"latencyCeiling"`
	// RequestTimeout of zero means requests never time out on our side.
	RequestTimeout time.Duration `yaml:"requestTimeout"`
	// Seed for the fixture generator. Zero means pick one from the clock.
	Seed int64 `yaml:"seed"`
}

func Default() Config {
	return Config{
		BaseURL:        DefaultBaseURL,
		LatencyCeiling: DefaultLatencyCeiling,
	}
}

// Load reads a config file on top of the defaults. An empty path returns the defaults.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML on top of the defaults. Unknown keys are an error.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("failed to parse YAML config: %w", err)
	}
	return cfg, nil
}

// Validate reports the first setting that can't be used.
func (c Config) Validate() error {
	if c.BaseURL == "" {
		return errors.New("base URL is required")
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid base URL: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("base URL must be an absolute http or https URL: %q", c.BaseURL)
	}
	if c.LatencyCeiling <= 0 {
		return fmt.Errorf("latency ceiling must be positive, was %s", c.LatencyCeiling)
	}
	if c.RequestTimeout < 0 {
		return fmt.Errorf("request timeout must not be negative, was %s", c.RequestTimeout)
	}
	return nil
}
