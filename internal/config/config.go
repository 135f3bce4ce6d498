package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// insecureDefaultSecret is the development fallback; Validate refuses it
// outside a development environment.
const insecureDefaultSecret = "supersecretkey"

type Config struct {
	Addr          string        `yaml:"addr"`
	JWTSecret     string        `yaml:"jwt_secret"`
	APITimeout    time.Duration `yaml:"timeout"`
	DatabasePath  string        `yaml:"database_path"`
	TokenDuration time.Duration `yaml:"token_duration"`
}

// LoadConfig builds the configuration from environment defaults, overridden
// by an optional YAML file.
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{
		Addr:          getEnv("CREWPLAN_ADDR", ":8080"),
		JWTSecret:     getEnv("CREWPLAN_JWT_SECRET", insecureDefaultSecret),
		APITimeout:    15 * time.Second,
		DatabasePath:  getEnv("CREWPLAN_DATABASE_PATH", "crewplan.db"),
		TokenDuration: 1 * time.Hour,
	}
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()

		dec := yaml.NewDecoder(f)
		if err := dec.Decode(cfg); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// Validate checks the loaded configuration for values that must not reach
// production.
func (c *Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("addr is required")
	}
	if c.DatabasePath == "" {
		return fmt.Errorf("database_path is required")
	}
	if c.APITimeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	if c.TokenDuration <= 0 {
		return fmt.Errorf("token_duration must be positive")
	}
	if c.JWTSecret == insecureDefaultSecret && os.Getenv("CREWPLAN_ENV") != "development" {
		return fmt.Errorf("jwt_secret is the insecure default; set CREWPLAN_JWT_SECRET")
	}
	return nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return def
}
