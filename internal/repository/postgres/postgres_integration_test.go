//go:build integration

package postgres

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"summarizer-agent/internal/config"
	"summarizer-agent/internal/repository/db"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

var testDB *PostgresDB

func TestMain(m *testing.M) {
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "agents",
			"POSTGRES_PASSWORD": "agents",
			"POSTGRES_DB":       "agents",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to start postgres container: %v\n", err)
		os.Exit(1)
	}

	host, err := container.Host(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to get container host: %v\n", err)
		os.Exit(1)
	}

	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to get container port: %v\n", err)
		os.Exit(1)
	}

	testDB, err = NewPostgresDB(config.DatabaseConfig{
		URL:    fmt.Sprintf("postgres://agents:agents@%s:%s/agents?sslmode=disable", host, port.Port()),
		EnvKey: "NEON_DB_CONNECTION_STRING_TEST",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open database: %v\n", err)
		os.Exit(1)
	}

	code := m.Run()

	_ = testDB.Close()
	_ = container.Terminate(ctx)
	os.Exit(code)
}

func TestAgentConfigRoundTrip(t *testing.T) {
	ctx := context.Background()

	created, err := testDB.CreateAgentConfig(ctx,
		"summarizer-v2-101112", "v2",
		"Summarize content with full detail using the available tools.",
		[]string{"query_summaries"},
		"Detailed summarization with tools",
	)
	require.NoError(t, err)
	require.NotZero(t, created.ID)

	got, err := testDB.GetAgentConfig(ctx, created.ID)
	require.NoError(t, err)

	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "v2", got.Version)
	assert.Equal(t, "Summarize content with full detail using the available tools.", got.PromptTemplate)
	assert.Equal(t, "Detailed summarization with tools", got.Goal)
	assert.Equal(t, "summarizer-v2-101112", got.AgentName)
	assert.Equal(t, []string{"query_summaries"}, []string(got.Tools))
}

func TestAgentConfigEmptyTools(t *testing.T) {
	ctx := context.Background()

	created, err := testDB.CreateAgentConfig(ctx, "summarizer-v1-000000", "v1", "prompt", nil, "Concise summarization")
	require.NoError(t, err)

	got, err := testDB.GetAgentConfig(ctx, created.ID)
	require.NoError(t, err)
	assert.Len(t, got.Tools, 0)
}

func TestGetAgentConfigNotFound(t *testing.T) {
	_, err := testDB.GetAgentConfig(context.Background(), 987654321)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrConfigNotFound))
}

func TestInteractionLogRoundTrip(t *testing.T) {
	ctx := context.Background()

	cfg, err := testDB.CreateAgentConfig(ctx, "summarizer-v2-121314", "v2", "prompt", []string{"query_summaries"}, "goal")
	require.NoError(t, err)

	tool := "query_summaries"
	createdAt := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	entry, err := testDB.CreateInteractionLog(ctx, db.InteractionLog{
		ConfigID:         cfg.ID,
		UserInput:        "Summarize this: IBM Q4 earnings beat expectations but cloud revenue missed.",
		AgentResponse:    "IBM beat expectations while cloud revenue missed forecasts.",
		ToolUsed:         &tool,
		Success:          true,
		CreatedAt:        createdAt,
		ResponseLength:   8,
		Latency:          2.5,
		KeywordHit:       true,
		HeuristicSuccess: true,
	})
	require.NoError(t, err)
	require.NotZero(t, entry.ID)

	logs, err := testDB.ListInteractionLogs(ctx, cfg.ID)
	require.NoError(t, err)
	require.Len(t, logs, 1)

	got := logs[0]
	assert.Equal(t, cfg.ID, got.ConfigID)
	assert.Equal(t, 8, got.ResponseLength)
	assert.InDelta(t, 2.5, got.Latency, 1e-9)
	assert.True(t, got.KeywordHit)
	assert.True(t, got.HeuristicSuccess)
	require.NotNil(t, got.ToolUsed)
	assert.Equal(t, tool, *got.ToolUsed)
	assert.Equal(t, createdAt.Format(time.DateTime), got.CreatedAt.Format(time.DateTime))
}

func TestInteractionLogRequiresConfig(t *testing.T) {
	_, err := testDB.CreateInteractionLog(context.Background(), db.InteractionLog{
		ConfigID:      987654321,
		UserInput:     "x",
		AgentResponse: "y",
	})
	assert.Error(t, err)
}

func TestRunMigrationsIsIdempotent(t *testing.T) {
	require.NoError(t, testDB.RunMigrations())
}
