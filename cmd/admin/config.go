package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ardanlabs/conf"
)

type Config struct {
	APIURL    string        `conf:"default:http://localhost:8080,env:API_URL"`
	Token     string        `conf:"env:TOKEN,noprint"`
	TokenFile string        `conf:"env:TOKEN_FILE"`
	Timeout   time.Duration `conf:"default:30s,env:TIMEOUT"`
	LogLevel  string        `conf:"default:warn,env:LOG_LEVEL"`
}

// ReadConfig reads ADMIN_ prefixed environment variables. Command line flags are
// handled by cobra and applied on top.
func ReadConfig() (*Config, error) {
	var cfg Config
	if err := conf.Parse(nil, "ADMIN", &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if cfg.TokenFile == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("locating home directory: %w", err)
		}
		cfg.TokenFile = filepath.Join(home, ".bank-admin-token")
	}

	return &cfg, nil
}

// loadToken prefers the configured token over the one saved by login.
func (c *Config) loadToken() (string, error) {
	if c.Token != "" {
		return c.Token, nil
	}

	raw, err := os.ReadFile(c.TokenFile)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("reading token file: %w", err)
	}
	return strings.TrimSpace(string(raw)), nil
}

func (c *Config) saveToken(token string) error {
	if err := os.WriteFile(c.TokenFile, []byte(token+"\n"), 0o600); err != nil {
		return fmt.Errorf("writing token file: %w", err)
	}
	return nil
}
