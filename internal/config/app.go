package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"summarizer-agent/internal/logger"
	"summarizer-agent/pkg/validation"

	"github.com/sirupsen/logrus"
)

const (
	DefaultAgentVersion   = "v1"
	DefaultAPIVersion     = "2024-12-01-preview"
	DefaultSearchEndpoint = "https://google.serper.dev/search"
	DefaultPollInterval   = time.Second

	databaseEnvPrefix = "NEON_DB_CONNECTION_STRING_"
)

// AppConfig holds all application configuration
type AppConfig struct {
	Platform PlatformConfig
	Database DatabaseConfig
	Search   SearchConfig
	Agent    AgentConfig
	Runner   RunnerConfig
}

// PlatformConfig holds the hosted agent platform connection settings
type PlatformConfig struct {
	ConnectionString string
	Project          ProjectConnection
	APIKey           string
	APIVersion       string
}

// DatabaseConfig holds the connection string of the version's database branch
type DatabaseConfig struct {
	URL            string
	EnvKey         string
	SkipMigrations bool
}

// SearchConfig holds search provider configuration
type SearchConfig struct {
	APIKey   string
	Endpoint string
}

// AgentConfig holds the agent version flag and model deployment
type AgentConfig struct {
	Version string
	Model   string
}

// RunnerConfig holds conversation runner settings
type RunnerConfig struct {
	PollInterval time.Duration
}

// Overrides carries command-line values that take precedence over the environment
type Overrides struct {
	AgentVersion   string
	Model          string
	PollInterval   time.Duration
	SkipMigrations bool
}

// LoadConfig loads and validates application configuration from environment
func LoadConfig(overrides Overrides) (*AppConfig, error) {
	config := &AppConfig{}
	validator := validation.NewConfigValidator()

	// Agent
	version := NormalizeVersion(firstNonEmpty(overrides.AgentVersion, os.Getenv("AGENT_VERSION")))
	if err := validator.ValidateVersion(version); err != nil {
		return nil, err
	}
	config.Agent = AgentConfig{
		Version: version,
		Model:   firstNonEmpty(overrides.Model, os.Getenv("AZURE_OPENAI_DEPLOYMENT_NAME")),
	}
	if err := validator.ValidateRequired("AZURE_OPENAI_DEPLOYMENT_NAME", config.Agent.Model); err != nil {
		return nil, err
	}

	// Platform
	connStr := os.Getenv("PROJECT_CONNECTION_STRING")
	if err := validator.ValidateRequired("PROJECT_CONNECTION_STRING", connStr); err != nil {
		return nil, err
	}
	project, err := ParseProjectConnectionString(connStr)
	if err != nil {
		return nil, fmt.Errorf("invalid PROJECT_CONNECTION_STRING: %w", err)
	}
	config.Platform = PlatformConfig{
		ConnectionString: connStr,
		Project:          project,
		APIKey:           os.Getenv("PROJECT_API_KEY"),
		APIVersion:       getEnvOrDefault("PROJECT_API_VERSION", DefaultAPIVersion),
	}

	// Database, one branch per agent version
	envKey := DatabaseEnvKey(version)
	dbURL := os.Getenv(envKey)
	if err := validator.ValidateRequired(envKey, dbURL); err != nil {
		return nil, err
	}
	if err := validator.ValidateDatabaseURL(dbURL); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", envKey, err)
	}
	config.Database = DatabaseConfig{
		URL:            dbURL,
		EnvKey:         envKey,
		SkipMigrations: overrides.SkipMigrations || getEnvAsBool("SKIP_MIGRATIONS", false),
	}

	// Search
	apiKey := os.Getenv("SERPER_API_KEY")
	if apiKey == "" {
		logger.Log.Warn("SERPER_API_KEY environment variable not set")
	}
	config.Search = SearchConfig{
		APIKey:   apiKey,
		Endpoint: getEnvOrDefault("SERPER_ENDPOINT", DefaultSearchEndpoint),
	}

	// Runner
	poll := overrides.PollInterval
	if poll <= 0 {
		poll = getEnvAsDuration("RUN_POLL_INTERVAL", DefaultPollInterval)
	}
	config.Runner = RunnerConfig{PollInterval: poll}

	return config, nil
}

// LoadDatabaseConfig resolves only the database settings, for commands that never touch the platform
func LoadDatabaseConfig(agentVersion string) (*DatabaseConfig, error) {
	validator := validation.NewConfigValidator()

	version := NormalizeVersion(firstNonEmpty(agentVersion, os.Getenv("AGENT_VERSION")))
	if err := validator.ValidateVersion(version); err != nil {
		return nil, err
	}

	envKey := DatabaseEnvKey(version)
	dbURL := os.Getenv(envKey)
	if err := validator.ValidateRequired(envKey, dbURL); err != nil {
		return nil, err
	}
	if err := validator.ValidateDatabaseURL(dbURL); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", envKey, err)
	}

	return &DatabaseConfig{URL: dbURL, EnvKey: envKey}, nil
}

// NormalizeVersion lowercases the version flag and applies the v1 default
func NormalizeVersion(flag string) string {
	v := strings.ToLower(strings.TrimSpace(flag))
	if v == "" {
		return DefaultAgentVersion
	}
	return v
}

// DatabaseEnvKey returns the environment variable naming the database for a version
func DatabaseEnvKey(version string) string {
	return databaseEnvPrefix + strings.ToUpper(version)
}

// Helper functions for environment variable parsing

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	switch strings.ToLower(os.Getenv(key)) {
	case "":
		return defaultValue
	case "1", "true", "yes":
		return true
	case "0", "false", "no":
		return false
	default:
		logger.Log.WithFields(logrus.Fields{"key": key, "default": defaultValue}).Warn("Invalid boolean value, using default")
		return defaultValue
	}
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil || value <= 0 {
		logger.Log.WithFields(logrus.Fields{"key": key, "default": defaultValue}).Warn("Invalid duration value, using default")
		return defaultValue
	}
	return value
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
