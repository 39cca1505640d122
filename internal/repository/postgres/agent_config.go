package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"summarizer-agent/internal/logger"
	"summarizer-agent/internal/repository/db"

	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
)

// ErrConfigNotFound is returned when no agent config has the requested id
var ErrConfigNotFound = errors.New("agent config not found")

// CreateAgentConfig inserts an agent config and returns it with its generated id
func (p *PostgresDB) CreateAgentConfig(ctx context.Context, agentName, version, promptTemplate string, tools []string, goal string) (*db.ConfigRecord, error) {
	conn := p.conn

	if tools == nil {
		tools = []string{}
	}

	query := `
	INSERT INTO agent_configs (agent_name, version, prompt_template, tools, goal)
	VALUES ($1, $2, $3, $4, $5)
	RETURNING id
	`

	var id int64
	err := conn.QueryRowContext(ctx, query, agentName, version, promptTemplate, pq.Array(tools), goal).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("error creating agent config: %w", err)
	}

	logger.Log.WithFields(logrus.Fields{"config_id": id, "agent_name": agentName, "version": version}).Info("Logged agent config")

	return &db.ConfigRecord{
		ID:             id,
		AgentName:      agentName,
		Version:        version,
		PromptTemplate: promptTemplate,
		Tools:          tools,
		Goal:           goal,
	}, nil
}

// GetAgentConfig retrieves an agent config by id
func (p *PostgresDB) GetAgentConfig(ctx context.Context, id int64) (*db.ConfigRecord, error) {
	conn := p.conn

	var cfg db.ConfigRecord
	query := `SELECT id, agent_name, version, prompt_template, tools, goal FROM agent_configs WHERE id = $1`

	err := conn.QueryRowContext(ctx, query, id).Scan(&cfg.ID, &cfg.AgentName, &cfg.Version, &cfg.PromptTemplate, pq.Array(&cfg.Tools), &cfg.Goal)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: id %d", ErrConfigNotFound, id)
		}
		return nil, fmt.Errorf("error retrieving agent config: %w", err)
	}

	return &cfg, nil
}
