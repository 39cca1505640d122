package pipeline

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"summarizer-agent/internal/repository/db"
	"summarizer-agent/internal/testutil"
)

func TestShow(t *testing.T) {
	ctx := context.Background()
	database := testutil.NewInMemoryDatabase()

	cfg, _ := database.CreateAgentConfig(ctx, "summarizer-v2-080000", "v2", "Summarize content with full detail using the available tools.", []string{"query_summaries"}, "Detailed summarization with tools")
	tool := "query_summaries"
	_, err := database.CreateInteractionLog(ctx, db.InteractionLog{
		ConfigID:         cfg.ID,
		UserInput:        "prompt",
		AgentResponse:    ibmSummary,
		ToolUsed:         &tool,
		Success:          true,
		CreatedAt:        time.Date(2026, 10, 14, 8, 0, 1, 0, time.UTC),
		ResponseLength:   10,
		Latency:          1.234,
		KeywordHit:       true,
		HeuristicSuccess: true,
	})
	if err != nil {
		t.Fatalf("CreateInteractionLog() error = %v", err)
	}

	out := &bytes.Buffer{}
	if err := NewReportService(database, out).Show(ctx, cfg.ID); err != nil {
		t.Fatalf("Show() error = %v", err)
	}

	report := out.String()
	for _, want := range []string{
		"Config 1: summarizer-v2-080000 (version v2)",
		"Tools:  query_summaries",
		"Interactions: 1",
		"#1 at 2026-10-14 08:00:01: 10 words, 1.23s",
		"tool query_summaries",
		ibmSummary,
	} {
		if !strings.Contains(report, want) {
			t.Errorf("report missing %q:\n%s", want, report)
		}
	}
}

func TestShow_UnknownConfig(t *testing.T) {
	err := NewReportService(testutil.NewInMemoryDatabase(), &bytes.Buffer{}).Show(context.Background(), 99)
	if err == nil || !strings.Contains(err.Error(), "failed to load agent config") {
		t.Errorf("Show() error = %v, want config lookup error", err)
	}
}
