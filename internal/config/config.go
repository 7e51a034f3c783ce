// Package config provides application configuration management using koanf
package config

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// envPrefix namespaces environment overrides. Double underscores separate
// nesting levels, e.g. ADS_GEMINI__PROJECT maps to gemini.project and
// ADS_DATABASE__CHUNKS_TABLE to database.chunks_table.
const envPrefix = "ADS_"

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	Server ServerConfig `koanf:"server"`

	// Model-hosting service
	Gemini GeminiConfig `koanf:"gemini"`

	// Chunk and log storage
	Database DatabaseConfig `koanf:"database"`

	// Application settings
	App AppConfig `koanf:"app"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host         string `koanf:"host"`
	Port         int    `koanf:"port"`
	ReadTimeout  int    `koanf:"read_timeout"`  // seconds
	WriteTimeout int    `koanf:"write_timeout"` // seconds
}

// GeminiConfig holds the model-hosting service configuration. Either APIKey
// (Gemini API backend) or Project (Vertex backend) must be set.
type GeminiConfig struct {
	Project        string `koanf:"project"`
	Location       string `koanf:"location"`
	APIKey         string `koanf:"api_key"`
	Model          string `koanf:"model"`
	EmbeddingModel string `koanf:"embedding_model"`
}

// DatabaseConfig holds SQLite storage configuration. ChunksTable and LogTable
// identify the vector-store and log-store tables and have no defaults.
type DatabaseConfig struct {
	Path        string `koanf:"path"`
	ChunksTable string `koanf:"chunks_table"`
	LogTable    string `koanf:"log_table"`
}

// AppConfig holds general application settings
type AppConfig struct {
	Environment string `koanf:"environment"` // "development", "staging", "production"
	LogLevel    string `koanf:"log_level"`   // "debug", "info", "warn", "error"
}

// Load loads configuration from multiple sources with precedence:
// 1. defaults
// 2. config.yaml / config.json (if present)
// 3. Environment variables (highest precedence)
func Load() (*Config, error) {
	k := koanf.New(".")

	setDefaults(k)
	loadConfigFiles(k)

	envOpt := env.Opt{
		Prefix: envPrefix,
		TransformFunc: func(key, value string) (string, any) {
			key = strings.ToLower(strings.TrimPrefix(key, envPrefix))
			return strings.ReplaceAll(key, "__", "."), value
		},
	}
	if err := k.Load(env.Provider(".", envOpt), nil); err != nil {
		return nil, fmt.Errorf("error loading environment variables: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults(k *koanf.Koanf) {
	defaults := map[string]interface{}{
		// Server defaults
		"server.host":          "localhost",
		"server.port":          8080,
		"server.read_timeout":  30,
		"server.write_timeout": 60,

		// Gemini defaults
		"gemini.location":        "us-central1",
		"gemini.model":           "gemini-2.5-flash",
		"gemini.embedding_model": "gemini-embedding-001",

		// Database defaults
		"database.path": "rag_store.db",

		// App defaults
		"app.environment": "development",
		"app.log_level":   "info",
	}

	for key, value := range defaults {
		_ = k.Set(key, value) // Ignore error for setting defaults
	}
}

// loadConfigFiles loads configuration from files
func loadConfigFiles(k *koanf.Koanf) {
	if _, err := os.Stat("config.yaml"); err == nil {
		if err := k.Load(file.Provider("config.yaml"), yaml.Parser()); err != nil {
			log.Printf("Warning: failed to load config.yaml: %v", err)
		}
	}

	if _, err := os.Stat("config.json"); err == nil {
		if err := k.Load(file.Provider("config.json"), json.Parser()); err != nil {
			log.Printf("Warning: failed to load config.json: %v", err)
		}
	}
}

// validate rejects configurations the service cannot start with. Missing
// required values are fatal at startup, not at first use.
func validate(cfg *Config) error {
	if cfg.Gemini.Project == "" && cfg.Gemini.APIKey == "" {
		return fmt.Errorf("gemini.project (or gemini.api_key) is not set")
	}
	if cfg.Gemini.Model == "" {
		return fmt.Errorf("gemini.model is not set")
	}
	if cfg.Gemini.EmbeddingModel == "" {
		return fmt.Errorf("gemini.embedding_model is not set")
	}
	if cfg.Database.ChunksTable == "" {
		return fmt.Errorf("database.chunks_table is not set (e.g. chunks)")
	}
	if cfg.Database.LogTable == "" {
		return fmt.Errorf("database.log_table is not set (e.g. chat_logs)")
	}

	return nil
}

// Addr returns the host:port the server listens on.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// IsProduction returns true if running in production environment
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// IsDevelopment returns true if running in development environment
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}
