// Command summarizer provisions a versioned summarization agent, runs it once
// against a fixed prompt, scores the reply and records the interaction.
//
// Usage:
//
//	summarizer run --agent-version v2
//	summarizer show --config-id 42
//	summarizer migrate
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"summarizer-agent/internal/app"
	"summarizer-agent/internal/config"
	"summarizer-agent/internal/logger"
	"summarizer-agent/internal/platform/assistants"
	"summarizer-agent/internal/repository/postgres"
	"summarizer-agent/internal/search"
	"summarizer-agent/internal/service/pipeline"
	"summarizer-agent/internal/tools"

	"github.com/alecthomas/kong"
	"github.com/sirupsen/logrus"
)

// CLI defines the command-line interface.
type CLI struct {
	Run     RunCmd     `cmd:"" default:"1" help:"Provision the agent, run it once and log the interaction."`
	Show    ShowCmd    `cmd:"" help:"Print a logged agent config and its interactions."`
	Migrate MigrateCmd `cmd:"" help:"Apply database migrations and exit."`

	AgentVersion string `name:"agent-version" help:"Agent version flag (overrides AGENT_VERSION)."`
	LogLevel     string `name:"log-level" help:"Log level (debug, info, warn, error)."`
}

// RunCmd executes the full pipeline.
type RunCmd struct {
	Model          string        `help:"Model deployment name (overrides AZURE_OPENAI_DEPLOYMENT_NAME)."`
	PollInterval   time.Duration `name:"poll-interval" help:"Interval between run status polls."`
	SkipMigrations bool          `name:"skip-migrations" help:"Do not apply migrations on startup."`
}

func (c *RunCmd) Run(cli *CLI) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadConfig(config.Overrides{
		AgentVersion:   cli.AgentVersion,
		Model:          c.Model,
		PollInterval:   c.PollInterval,
		SkipMigrations: c.SkipMigrations,
	})
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	platform, err := assistants.NewClient(cfg.Platform)
	if err != nil {
		return fmt.Errorf("failed to create agent platform client: %w", err)
	}

	database, err := postgres.NewPostgresDB(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer database.Close()
	fmt.Printf("🛢️ Connected to database for version '%s'.\n", cfg.Agent.Version)

	registry, err := tools.NewDefaultRegistry(search.NewClient(cfg.Search))
	if err != nil {
		return fmt.Errorf("failed to register tools: %w", err)
	}
	fmt.Println("🛠️ Tools initialized and registered.")

	svc := pipeline.NewPipelineService(app.NewConfig(database, platform, registry, cfg), os.Stdout)
	result, err := svc.Execute(ctx)
	if err != nil {
		return err
	}

	logger.Log.WithFields(logrus.Fields{
		"run_id":    result.RunID,
		"config_id": result.ConfigID,
		"log_id":    result.LogID,
		"success":   result.Metrics.Success,
	}).Info("Run complete")
	return nil
}

// ShowCmd reads back a config row and the interactions that reference it.
type ShowCmd struct {
	ConfigID int64 `name:"config-id" required:"" help:"Agent config id to show."`
}

func (c *ShowCmd) Run(cli *CLI) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbConfig, err := config.LoadDatabaseConfig(cli.AgentVersion)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	dbConfig.SkipMigrations = true

	database, err := postgres.NewPostgresDB(*dbConfig)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer database.Close()

	return pipeline.NewReportService(database, os.Stdout).Show(ctx, c.ConfigID)
}

// MigrateCmd applies the embedded schema migrations.
type MigrateCmd struct{}

func (c *MigrateCmd) Run(cli *CLI) error {
	dbConfig, err := config.LoadDatabaseConfig(cli.AgentVersion)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// NewPostgresDB migrates unless told otherwise
	database, err := postgres.NewPostgresDB(*dbConfig)
	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return database.Close()
}

func main() {
	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load .env: %v\n", err)
		os.Exit(1)
	}

	cli := CLI{}
	ctx := kong.Parse(&cli,
		kong.Name("summarizer"),
		kong.Description("Versioned summarization agent with QA logging"),
		kong.UsageOnError(),
	)

	// Environment may have changed after .env was loaded
	level := cli.LogLevel
	if level == "" {
		level = os.Getenv("LOG_LEVEL")
	}
	logger.SetLevel(level)
	logger.SetFormat(os.Getenv("LOG_FORMAT"))

	if err := ctx.Run(&cli); err != nil {
		logger.Log.WithError(err).Error("summarizer failed")
		os.Exit(1)
	}
}
