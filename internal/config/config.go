// Package config provides configuration loading for readmegen.
//
// Configuration is loaded from a YAML file and overridden by environment
// variables. Tokens and API keys are held in Secret values that redact
// themselves in logs and serialized output.
package config

import (
	"errors"
	"fmt"
	"time"
)

// DefaultLLMBaseURL points the completion client at Groq's
// OpenAI-compatible endpoint.
const DefaultLLMBaseURL = "https://api.groq.com/openai/v1"

// DefaultModel is the completion model used when none is requested.
const DefaultModel = "llama-3.3-70b-versatile"

// Config holds the complete readmegen configuration.
type Config struct {
	Server  ServerConfig  `koanf:"server"`
	Logging LoggingConfig `koanf:"logging"`
	GitHub  GitHubConfig  `koanf:"github"`
	LLM     LLMConfig     `koanf:"llm"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// LoggingConfig holds structured logging configuration.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// GitHubConfig holds hosting API configuration. The token is optional;
// without it the fetcher runs under anonymous rate limits.
type GitHubConfig struct {
	Token Secret `koanf:"token"`
}

// LLMConfig holds completion endpoint configuration. The API key may also
// be supplied per request, overriding this value.
type LLMConfig struct {
	APIKey  Secret `koanf:"api_key"`
	BaseURL string `koanf:"base_url"`
	Model   string `koanf:"model"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d (must be 1-65535)", c.Server.Port)
	}
	if c.Server.ShutdownTimeout <= 0 {
		return errors.New("shutdown timeout must be positive")
	}
	if c.Logging.Format != "json" && c.Logging.Format != "console" {
		return fmt.Errorf("logging format must be 'json' or 'console', got %q", c.Logging.Format)
	}
	if c.LLM.BaseURL == "" {
		return errors.New("llm base URL cannot be empty")
	}
	return nil
}

// applyDefaults sets default values for missing configuration fields.
func applyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 10 * time.Second
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}

	if cfg.LLM.BaseURL == "" {
		cfg.LLM.BaseURL = DefaultLLMBaseURL
	}
	if cfg.LLM.Model == "" {
		cfg.LLM.Model = DefaultModel
	}
}
