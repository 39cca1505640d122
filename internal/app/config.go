package app

import (
	"summarizer-agent/internal/agent"
	"summarizer-agent/internal/config"
	"summarizer-agent/internal/repository/db"
	"summarizer-agent/internal/tools"
)

// Config holds all application dependencies and configuration
type Config struct {
	// Database interface for data persistence
	DB db.Database
	// Hosted agent platform
	Platform agent.Platform
	// Tools exposed to the agent and dispatched during runs
	Tools *tools.Registry
	// Centralized application configuration
	AppConfig *config.AppConfig
}

// NewConfig creates a new application configuration
func NewConfig(database db.Database, platform agent.Platform, registry *tools.Registry, appConfig *config.AppConfig) *Config {
	return &Config{
		DB:        database,
		Platform:  platform,
		Tools:     registry,
		AppConfig: appConfig,
	}
}

// AgentVersion returns the normalized version flag of this execution
func (c *Config) AgentVersion() string {
	return c.AppConfig.Agent.Version
}
