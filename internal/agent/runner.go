package agent

import (
	"context"
	"errors"
	"fmt"
	"time"

	"summarizer-agent/internal/logger"

	"github.com/sirupsen/logrus"
)

// UserPrompt is the single message posted to every run
const UserPrompt = "Summarize this: IBM Q4 earnings beat expectations but cloud revenue missed."

// ErrRunNotCompleted is wrapped when a run ends in a terminal status other than completed
var ErrRunNotCompleted = errors.New("run did not complete")

// Conversation is the outcome of one thread and run
type Conversation struct {
	ThreadID      string
	RunID         string
	Status        RunStatus
	ToolCallCount int
	Latency       time.Duration
}

// Runner drives one conversation against a hosted agent
type Runner struct {
	platform     Platform
	tools        ToolExecutor
	pollInterval time.Duration
}

// NewRunner creates a Runner; tool calls requested by the agent go to executor
func NewRunner(platform Platform, executor ToolExecutor, pollInterval time.Duration) *Runner {
	if pollInterval <= 0 {
		pollInterval = time.Second
	}
	return &Runner{platform: platform, tools: executor, pollInterval: pollInterval}
}

// Run creates a thread, posts prompt as the user, and runs the agent to completion
func (r *Runner) Run(ctx context.Context, agentID, prompt string) (*Conversation, error) {
	thread, err := r.platform.CreateThread(ctx)
	if err != nil {
		return nil, fmt.Errorf("error creating thread: %w", err)
	}
	logger.Log.WithField("thread_id", thread.ID).Info("Thread created")

	if err := r.platform.CreateMessage(ctx, thread.ID, RoleUser, prompt); err != nil {
		return nil, fmt.Errorf("error creating message: %w", err)
	}

	start := time.Now()
	run, toolCalls, err := r.createAndProcessRun(ctx, thread.ID, agentID)
	elapsed := time.Since(start)
	if err != nil {
		return nil, err
	}

	logger.Log.WithFields(logrus.Fields{
		"thread_id":  thread.ID,
		"run_id":     run.ID,
		"status":     run.Status,
		"tool_calls": toolCalls,
		"latency_s":  elapsed.Seconds(),
	}).Info("Agent run finished")

	return &Conversation{
		ThreadID:      thread.ID,
		RunID:         run.ID,
		Status:        run.Status,
		ToolCallCount: toolCalls,
		Latency:       elapsed,
	}, nil
}

// FetchResponse returns the text of the last assistant message in the thread
func (r *Runner) FetchResponse(ctx context.Context, threadID string) (string, error) {
	messages, err := r.platform.ListMessages(ctx, threadID)
	if err != nil {
		return "", fmt.Errorf("error listing messages: %w", err)
	}
	return ExtractResponse(messages)
}

func (r *Runner) createAndProcessRun(ctx context.Context, threadID, agentID string) (*Run, int, error) {
	run, err := r.platform.CreateRun(ctx, threadID, agentID)
	if err != nil {
		return nil, 0, fmt.Errorf("error creating run: %w", err)
	}

	toolCalls := 0
	for !run.Status.IsTerminal() {
		if run.Status == RunStatusRequiresAction {
			if len(run.ToolCalls) == 0 {
				return nil, toolCalls, fmt.Errorf("run %s requires action but requested no tool calls", run.ID)
			}

			outputs := make([]ToolOutput, 0, len(run.ToolCalls))
			for _, call := range run.ToolCalls {
				logger.Log.WithFields(logrus.Fields{"run_id": run.ID, "tool": call.Name, "tool_call_id": call.ID}).Info("Agent requested tool call")
				outputs = append(outputs, ToolOutput{
					ToolCallID: call.ID,
					Output:     r.tools.Execute(ctx, call.Name, call.Arguments),
				})
			}
			toolCalls += len(outputs)

			run, err = r.platform.SubmitToolOutputs(ctx, threadID, run.ID, outputs)
			if err != nil {
				return nil, toolCalls, fmt.Errorf("error submitting tool outputs: %w", err)
			}
			continue
		}

		select {
		case <-ctx.Done():
			return nil, toolCalls, ctx.Err()
		case <-time.After(r.pollInterval):
		}

		logger.Log.WithFields(logrus.Fields{"run_id": run.ID, "status": run.Status}).Debug("Polling run")
		run, err = r.platform.GetRun(ctx, threadID, run.ID)
		if err != nil {
			return nil, toolCalls, fmt.Errorf("error polling run: %w", err)
		}
	}

	if run.Status != RunStatusCompleted {
		if run.LastError != nil {
			return nil, toolCalls, fmt.Errorf("%w: run %s ended %s: %s: %s", ErrRunNotCompleted, run.ID, run.Status, run.LastError.Code, run.LastError.Message)
		}
		return nil, toolCalls, fmt.Errorf("%w: run %s ended %s", ErrRunNotCompleted, run.ID, run.Status)
	}

	return run, toolCalls, nil
}
