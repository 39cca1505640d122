package pipeline

import (
	"context"
	"fmt"
	"io"
	"strings"

	"summarizer-agent/internal/repository/db"
)

// ReportService prints what earlier runs logged
type ReportService struct {
	db  db.Database
	out io.Writer
}

// NewReportService creates a new ReportService
func NewReportService(database db.Database, out io.Writer) *ReportService {
	return &ReportService{db: database, out: out}
}

// Show prints the config row with the given id followed by its interaction logs
func (s *ReportService) Show(ctx context.Context, configID int64) error {
	cfg, err := s.db.GetAgentConfig(ctx, configID)
	if err != nil {
		return fmt.Errorf("failed to load agent config: %w", err)
	}

	logs, err := s.db.ListInteractionLogs(ctx, configID)
	if err != nil {
		return fmt.Errorf("failed to load interaction logs: %w", err)
	}

	tools := "none"
	if len(cfg.Tools) > 0 {
		tools = strings.Join(cfg.Tools, ", ")
	}

	fmt.Fprintf(s.out, "Config %d: %s (version %s)\n", cfg.ID, cfg.AgentName, cfg.Version)
	fmt.Fprintf(s.out, "  Goal:   %s\n", cfg.Goal)
	fmt.Fprintf(s.out, "  Prompt: %s\n", cfg.PromptTemplate)
	fmt.Fprintf(s.out, "  Tools:  %s\n", tools)
	fmt.Fprintf(s.out, "Interactions: %d\n", len(logs))

	for _, entry := range logs {
		tool := "None"
		if entry.ToolUsed != nil {
			tool = *entry.ToolUsed
		}
		fmt.Fprintf(s.out, "- #%d at %s: %d words, %.2fs, keywords %s, tool %s, success %s\n",
			entry.ID,
			entry.CreatedAt.Format("2006-01-02 15:04:05"),
			entry.ResponseLength,
			entry.Latency,
			mark(entry.KeywordHit),
			tool,
			mark(entry.HeuristicSuccess),
		)
		fmt.Fprintf(s.out, "  %s\n", entry.AgentResponse)
	}

	return nil
}
