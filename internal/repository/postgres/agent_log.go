package postgres

import (
	"context"
	"fmt"
	"time"

	"summarizer-agent/internal/logger"
	"summarizer-agent/internal/repository/db"

	"github.com/sirupsen/logrus"
)

// CreateInteractionLog inserts the record of one agent interaction
func (p *PostgresDB) CreateInteractionLog(ctx context.Context, entry db.InteractionLog) (*db.InteractionLog, error) {
	conn := p.conn

	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}

	query := `
	INSERT INTO agent_logs (
		config_id, user_input, agent_response,
		tool_used, success, created_at,
		response_length, latency, keyword_hit, heuristic_success
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	RETURNING id
	`

	err := conn.QueryRowContext(ctx, query,
		entry.ConfigID, entry.UserInput, entry.AgentResponse,
		entry.ToolUsed, entry.Success, entry.CreatedAt,
		entry.ResponseLength, entry.Latency, entry.KeywordHit, entry.HeuristicSuccess,
	).Scan(&entry.ID)
	if err != nil {
		return nil, fmt.Errorf("error creating interaction log: %w", err)
	}

	toolStr := "nil"
	if entry.ToolUsed != nil {
		toolStr = *entry.ToolUsed
	}
	logger.Log.WithFields(logrus.Fields{
		"log_id":          entry.ID,
		"config_id":       entry.ConfigID,
		"tool_used":       toolStr,
		"response_length": entry.ResponseLength,
		"latency":         fmt.Sprintf("%.2fs", entry.Latency),
		"success":         entry.Success,
	}).Info("Logged agent interaction")

	return &entry, nil
}

// ListInteractionLogs retrieves the interaction logs of a config, oldest first
func (p *PostgresDB) ListInteractionLogs(ctx context.Context, configID int64) ([]db.InteractionLog, error) {
	conn := p.conn

	query := `
	SELECT id, config_id, user_input, agent_response, tool_used, success, created_at,
	       response_length, latency, keyword_hit, heuristic_success
	FROM agent_logs
	WHERE config_id = $1
	ORDER BY created_at ASC, id ASC
	`

	rows, err := conn.QueryContext(ctx, query, configID)
	if err != nil {
		return nil, fmt.Errorf("error querying interaction logs: %w", err)
	}
	defer rows.Close()

	var logs []db.InteractionLog
	for rows.Next() {
		var l db.InteractionLog
		if err := rows.Scan(&l.ID, &l.ConfigID, &l.UserInput, &l.AgentResponse, &l.ToolUsed, &l.Success, &l.CreatedAt,
			&l.ResponseLength, &l.Latency, &l.KeywordHit, &l.HeuristicSuccess); err != nil {
			return nil, fmt.Errorf("error scanning interaction log: %w", err)
		}
		logs = append(logs, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating interaction logs: %w", err)
	}

	return logs, nil
}
