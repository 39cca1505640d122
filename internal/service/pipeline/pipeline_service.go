package pipeline

import (
	"context"
	"fmt"
	"io"
	"time"

	"summarizer-agent/internal/agent"
	"summarizer-agent/internal/app"
	"summarizer-agent/internal/logger"
	"summarizer-agent/internal/profile"
	"summarizer-agent/internal/qa"
	"summarizer-agent/internal/repository/db"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Result is everything one execution produced
type Result struct {
	RunID    string
	Profile  profile.Profile
	Agent    agent.Identity
	ConfigID int64
	LogID    int64
	Response string
	Metrics  qa.Metrics
}

// PipelineService runs the provision, converse, evaluate and log sequence once
type PipelineService struct {
	db          db.Database
	config      *app.Config
	provisioner *agent.Provisioner
	runner      *agent.Runner
	out         io.Writer
	now         func() time.Time
}

// NewPipelineService creates a new PipelineService; progress and the QA report are written to out
func NewPipelineService(config *app.Config, out io.Writer) *PipelineService {
	svc := &PipelineService{
		db:     config.DB,
		config: config,
		out:    out,
		now:    time.Now,
	}

	if config.Tools != nil {
		svc.provisioner = agent.NewProvisioner(config.Platform, config.Tools.Definitions())
		svc.runner = agent.NewRunner(config.Platform, config.Tools, config.AppConfig.Runner.PollInterval)
	} else {
		svc.provisioner = agent.NewProvisioner(config.Platform, nil)
		svc.runner = agent.NewRunner(config.Platform, nil, config.AppConfig.Runner.PollInterval)
	}

	return svc
}

// Execute runs steps version selection through interaction logging. The config
// row is committed before the conversation starts and is left in place if a
// later step fails.
func (s *PipelineService) Execute(ctx context.Context) (*Result, error) {
	runID := uuid.New().String()
	version := s.config.AgentVersion()
	log := logger.Log.WithFields(logrus.Fields{"run_id": runID, "version": version})

	if !profile.IsKnown(version) {
		log.Warn("Unknown agent version, using the detailed profile")
	}
	prof := profile.Select(version)
	fmt.Fprintf(s.out, "🧠 Agent behavior configured for version '%s'.\n", version)

	identity, err := s.provisioner.Provision(ctx, prof, s.config.AppConfig.Agent.Model, agent.NewAgentName(version, s.now()))
	if err != nil {
		return nil, fmt.Errorf("failed to provision agent: %w", err)
	}
	log = log.WithField("agent_id", identity.ID)
	fmt.Fprintf(s.out, "🤖 Agent '%s' created.\n", identity.Name)

	cfg, err := s.db.CreateAgentConfig(ctx, identity.Name, version, prof.PromptTemplate, prof.EnabledTools, prof.Goal)
	if err != nil {
		return nil, fmt.Errorf("failed to log agent config: %w", err)
	}
	log = log.WithField("config_id", cfg.ID)
	log.Info("Agent config logged")
	fmt.Fprintf(s.out, "📥 Agent config logged with ID %d.\n", cfg.ID)

	conv, err := s.runner.Run(ctx, identity.ID, agent.UserPrompt)
	if err != nil {
		return nil, fmt.Errorf("agent run failed: %w", err)
	}

	response, err := s.runner.FetchResponse(ctx, conv.ThreadID)
	if err != nil {
		return nil, fmt.Errorf("failed to extract agent response: %w", err)
	}
	fmt.Fprintln(s.out, "🧾 Agent response retrieved.")

	metrics := qa.Evaluate(response, prof.EnabledTools, conv.Latency)
	log.WithFields(logrus.Fields{
		"response_length": metrics.ResponseLength,
		"keyword_hit":     metrics.ContainsKeywords,
		"tool_triggered":  metrics.ToolName(),
		"success":         metrics.Success,
		"latency_s":       metrics.LatencySeconds,
	}).Info("QA evaluation complete")
	s.printReport(metrics)

	entry, err := s.db.CreateInteractionLog(ctx, db.InteractionLog{
		ConfigID:         cfg.ID,
		UserInput:        agent.UserPrompt,
		AgentResponse:    response,
		ToolUsed:         metrics.ToolTriggered,
		Success:          metrics.Success,
		CreatedAt:        s.now(),
		ResponseLength:   metrics.ResponseLength,
		Latency:          metrics.LatencySeconds,
		KeywordHit:       metrics.ContainsKeywords,
		HeuristicSuccess: metrics.Success,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to log interaction: %w", err)
	}
	log.WithField("log_id", entry.ID).Info("Interaction logged")

	fmt.Fprintf(s.out, "✅ Agent '%s' response logged under version '%s'\n\n", identity.Name, version)
	fmt.Fprintln(s.out, response)

	return &Result{
		RunID:    runID,
		Profile:  prof,
		Agent:    *identity,
		ConfigID: cfg.ID,
		LogID:    entry.ID,
		Response: response,
		Metrics:  metrics,
	}, nil
}

func (s *PipelineService) printReport(m qa.Metrics) {
	fmt.Fprintln(s.out, "📐 QA Stats:")
	fmt.Fprintf(s.out, "   - ⏱️ Agent run completed in %.2f seconds.\n", m.LatencySeconds)
	fmt.Fprintf(s.out, "   - 🔤 Response length: %d words\n", m.ResponseLength)
	fmt.Fprintf(s.out, "   - 🔍 Contains key terms: %s\n", mark(m.ContainsKeywords))
	fmt.Fprintf(s.out, "   - 🧰 Tool used in response: %s\n", m.ToolName())
	fmt.Fprintf(s.out, "   - 🎯 Success heuristics passed: %s\n", mark(m.Success))
}

func mark(ok bool) string {
	if ok {
		return "✅"
	}
	return "❌"
}
