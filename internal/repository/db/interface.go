package db

import "context"

// Database defines the persistence operations of the QA run
// This allows for easier testing through mocking and decouples the pipeline from the specific database implementation
type Database interface {
	// Agent configs
	CreateAgentConfig(ctx context.Context, agentName, version, promptTemplate string, tools []string, goal string) (*ConfigRecord, error)
	GetAgentConfig(ctx context.Context, id int64) (*ConfigRecord, error)

	// Interaction logs
	CreateInteractionLog(ctx context.Context, entry InteractionLog) (*InteractionLog, error)
	ListInteractionLogs(ctx context.Context, configID int64) ([]InteractionLog, error)

	Close() error
}
